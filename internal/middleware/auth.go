package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/google/uuid"
	"github.com/localnerve/scriptscope/internal/config"
	"github.com/localnerve/scriptscope/internal/models"
	"github.com/localnerve/scriptscope/internal/services"
	"github.com/localnerve/scriptscope/internal/types"
)

var store *session.Store

const (
	sessionKeyID   = "principal_id"
	sessionKeyKind = "principal_kind"
	sessionKeyName = "principal_name"

	principalLocal = "principal"
)

// InitSessionStore creates the cookie session store backing authentication
func InitSessionStore(cfg *config.Config) {
	store = session.New(session.Config{
		Expiration:     time.Duration(cfg.SessionExpiration) * time.Hour,
		KeyLookup:      "cookie:" + cfg.SessionCookie,
		KeyGenerator:   uuid.NewString,
		CookieHTTPOnly: true,
		CookieSameSite: "Lax",
	})
}

// Login binds a principal to the request's session
func Login(c *fiber.Ctx, p *services.PrincipalContext) error {
	sess, err := store.Get(c)
	if err != nil {
		return err
	}
	sess.Set(sessionKeyID, uint64(p.ID))
	sess.Set(sessionKeyKind, string(p.Kind))
	sess.Set(sessionKeyName, p.Name)
	return sess.Save()
}

// Logout clears the request's session
func Logout(c *fiber.Ctx) error {
	sess, err := store.Get(c)
	if err != nil {
		return err
	}
	return sess.Destroy()
}

// CurrentPrincipal resolves the session principal, nil when nobody is logged in
func CurrentPrincipal(c *fiber.Ctx) *services.PrincipalContext {
	sess, err := store.Get(c)
	if err != nil {
		return nil
	}
	id, ok := sess.Get(sessionKeyID).(uint64)
	if !ok || id == 0 {
		return nil
	}
	kind, _ := sess.Get(sessionKeyKind).(string)
	name, _ := sess.Get(sessionKeyName).(string)
	if kind != string(models.KindAdmin) && kind != string(models.KindUser) {
		return nil
	}
	return &services.PrincipalContext{ID: uint(id), Kind: models.PrincipalKind(kind), Name: name}
}

// RequireAdmin validates that the request carries an admin session
func RequireAdmin() fiber.Handler {
	return requireKind(models.KindAdmin, "Admin login required", "auth.authorization.admin")
}

// RequireUser validates that the request carries a user session
func RequireUser() fiber.Handler {
	return requireKind(models.KindUser, "Please log in to comment", "auth.authorization.user")
}

// RequirePrincipal admits any logged-in account, user or admin
func RequirePrincipal() fiber.Handler {
	return func(c *fiber.Ctx) error {
		p := CurrentPrincipal(c)
		if p == nil {
			return &types.CustomError{
				Code:    fiber.StatusUnauthorized,
				Message: "Login required",
				Type:    "auth.authorization.principal",
			}
		}
		c.Locals(principalLocal, p)
		return c.Next()
	}
}

// requireKind rejects before the handler runs, so an unauthenticated caller
// never reaches an existence or ownership check.
func requireKind(kind models.PrincipalKind, message, errorType string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		p := CurrentPrincipal(c)
		if p == nil || p.Kind != kind {
			return &types.CustomError{
				Code:    fiber.StatusUnauthorized,
				Message: message,
				Type:    errorType,
			}
		}
		c.Locals(principalLocal, p)
		return c.Next()
	}
}

// Principal returns the context stored by the auth middleware
func Principal(c *fiber.Ctx) *services.PrincipalContext {
	if p, ok := c.Locals(principalLocal).(*services.PrincipalContext); ok {
		return p
	}
	return nil
}
