package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/scriptscope/internal/middleware"
	"github.com/localnerve/scriptscope/internal/models"
	"github.com/localnerve/scriptscope/internal/services"
	"github.com/localnerve/scriptscope/internal/utils"
	"gorm.io/gorm"
)

// AuthHandler handles registration, login, and session routes
type AuthHandler struct {
	DB *gorm.DB
}

type loginBody struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterUser handles POST /api/users/register
// @Summary Register a user account
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body services.RegistrationInput true "Registration fields"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 409 {object} utils.ErrorResponseStruct
// @Router /users/register [post]
func (h *AuthHandler) RegisterUser(c *fiber.Ctx) error {
	return h.register(c, models.KindUser)
}

// RegisterAdmin handles POST /api/admins/register
// @Summary Register an admin account
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body services.RegistrationInput true "Registration fields"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 409 {object} utils.ErrorResponseStruct
// @Router /admins/register [post]
func (h *AuthHandler) RegisterAdmin(c *fiber.Ctx) error {
	return h.register(c, models.KindAdmin)
}

func (h *AuthHandler) register(c *fiber.Ctx, kind models.PrincipalKind) error {
	var in services.RegistrationInput
	if err := c.BodyParser(&in); err != nil {
		return utils.ErrorResponse(c, "Invalid input", fiber.StatusBadRequest, "auth.validation.input")
	}

	p, err := services.Register(h.DB, kind, in)
	if err != nil {
		return domainErrorResponse(c, err, "auth.register")
	}

	// Registration logs the new account in, like the original app
	if err := middleware.Login(c, p); err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "auth.session")
	}

	return utils.MutationSuccessResponse(c, fiber.Map{
		"id":   p.ID,
		"kind": p.Kind,
		"name": p.Name,
	})
}

// LoginUser handles POST /api/users/login
// @Summary Log in as a user
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body loginBody true "Credentials"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 401 {object} utils.ErrorResponseStruct
// @Router /users/login [post]
func (h *AuthHandler) LoginUser(c *fiber.Ctx) error {
	return h.login(c, models.KindUser)
}

// LoginAdmin handles POST /api/admins/login
// @Summary Log in as an admin
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body loginBody true "Credentials"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 401 {object} utils.ErrorResponseStruct
// @Router /admins/login [post]
func (h *AuthHandler) LoginAdmin(c *fiber.Ctx) error {
	return h.login(c, models.KindAdmin)
}

func (h *AuthHandler) login(c *fiber.Ctx, kind models.PrincipalKind) error {
	var in loginBody
	if err := c.BodyParser(&in); err != nil {
		return utils.ErrorResponse(c, "Invalid input", fiber.StatusBadRequest, "auth.validation.input")
	}

	p, err := services.Authenticate(h.DB, kind, in.Email, in.Password)
	if err != nil {
		return domainErrorResponse(c, err, "auth.login")
	}

	if err := middleware.Login(c, p); err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "auth.session")
	}

	return utils.MutationSuccessResponse(c, fiber.Map{
		"id":   p.ID,
		"kind": p.Kind,
		"name": p.Name,
	})
}

// Logout handles POST /api/logout
// @Summary Clear the current session
// @Tags Auth
// @Produce json
// @Success 200 {object} utils.SuccessResponseStruct
// @Router /logout [post]
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	if err := middleware.Logout(c); err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "auth.session")
	}
	return utils.MutationSuccessResponse(c, nil)
}

// Session handles GET /api/session
// @Summary Describe the current session principal
// @Tags Auth
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /session [get]
func (h *AuthHandler) Session(c *fiber.Ctx) error {
	p := middleware.CurrentPrincipal(c)
	if p == nil {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"authenticated": false})
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"authenticated": true,
		"id":            p.ID,
		"kind":          p.Kind,
		"name":          p.Name,
	})
}
