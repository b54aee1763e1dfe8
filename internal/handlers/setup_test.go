package handlers_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/scriptscope/internal/config"
	"github.com/localnerve/scriptscope/internal/handlers"
	"github.com/localnerve/scriptscope/internal/middleware"
	"github.com/localnerve/scriptscope/internal/models"
	"github.com/localnerve/scriptscope/internal/types"
	"gorm.io/gorm"
)

const testSessionCookie = "scriptscope_session"

// setupTestDB creates an in-memory SQLite database for testing
func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.Admin{},
		&models.Chapter{},
		&models.Section{},
		&models.ChapterComment{},
		&models.SectionComment{},
	)
	if err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	return db
}

// newTestApp wires the full route table the way the server main does, so the
// middleware ordering under test matches production.
func newTestApp(t *testing.T) (*fiber.App, *gorm.DB) {
	db := setupTestDB(t)

	cfg := &config.Config{
		DBType:            "sqlite",
		DBDatabase:        ":memory:",
		SessionCookie:     testSessionCookie,
		SessionExpiration: 1,
	}
	middleware.InitSessionStore(cfg)

	app := fiber.New(fiber.Config{ErrorHandler: testErrorHandler})

	// The production route table, so middleware ordering matches the server
	api := app.Group("/api")
	handlers.RegisterRoutes(api, cfg, db)

	return app, db
}

// testErrorHandler mirrors the server's global error handler
func testErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := err.Error()
	errorType := "unknown"

	var customErr *types.CustomError
	if errors.As(err, &customErr) {
		code = customErr.Code
		message = customErr.Message
		errorType = customErr.Type
	} else if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	return c.Status(code).JSON(fiber.Map{
		"status":    code,
		"message":   message,
		"ok":        false,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"url":       c.OriginalURL(),
		"type":      errorType,
	})
}

// jsonRequest builds a JSON request, attaching the session cookie if present
func jsonRequest(t *testing.T, method, target string, body interface{}, cookie *http.Cookie) *http.Request {
	var req *http.Request
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("Failed to marshal request body: %v", err)
		}
		req = httptest.NewRequest(method, target, bytes.NewReader(payload))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	if cookie != nil {
		req.AddCookie(cookie)
	}
	return req
}

// doRequest executes a request against the test app
func doRequest(t *testing.T, app *fiber.App, req *http.Request) *http.Response {
	resp, err := app.Test(req, 10000)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	return resp
}

// decodeBody decodes a JSON response body into a map
func decodeBody(t *testing.T, resp *http.Response) map[string]interface{} {
	var result map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	return result
}

// sessionCookie extracts the session cookie set by a login or registration
func sessionCookie(t *testing.T, resp *http.Response) *http.Cookie {
	for _, c := range resp.Cookies() {
		if c.Name == testSessionCookie {
			return c
		}
	}
	t.Fatal("Expected a session cookie in the response")
	return nil
}

// registerPrincipal registers an account over HTTP and returns its session
func registerPrincipal(t *testing.T, app *fiber.App, path, firstName, email string) *http.Cookie {
	req := jsonRequest(t, "POST", path, map[string]interface{}{
		"first_name":       firstName,
		"last_name":        "Tester",
		"email":            email,
		"password":         "secret123",
		"confirm_password": "secret123",
	}, nil)
	resp := doRequest(t, app, req)
	if resp.StatusCode != 200 {
		t.Fatalf("Expected status 200 registering %s, got %d", email, resp.StatusCode)
	}
	return sessionCookie(t, resp)
}
