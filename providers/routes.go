package providers

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v3"
	"github.com/roomhub/socket/src/accounts"
)

type signupRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	UsernameOrEmail string `json:"usernameOrEmail"`
	Password        string `json:"password"`
}

func (a *App) registerRoutes() {
	a.fiber.Get("/healthz", a.handleHealth)
	a.fiber.Get("/ws/info", a.handleInfo)

	api := a.fiber.Group("/api")
	api.Post("/signup", a.handleSignup)
	api.Post("/login", a.handleLogin)
	api.Get("/me", a.handleMe)
}

func (a *App) handleHealth(c fiber.Ctx) error {
	return c.JSON(fiber.Map{"ok": true})
}

func (a *App) handleInfo(c fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"websocket": true,
		"endpoint":  "/ws",
		"clients":   a.hub.ClientCount(),
		"rooms":     a.hub.RoomCount(),
	})
}

func (a *App) handleSignup(c fiber.Ctx) error {
	var req signupRequest
	if err := c.Bind().Body(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid body"})
	}

	session, err := a.accounts.Signup(req.Username, req.Email, req.Password)
	switch {
	case errors.Is(err, accounts.ErrMissingFields):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "missing fields"})
	case errors.Is(err, accounts.ErrDuplicateUser):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "user already exists"})
	case err != nil:
		a.logger.Error().Err(err).Msg("signup failed")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "server error"})
	}
	return c.JSON(session)
}

func (a *App) handleLogin(c fiber.Ctx) error {
	var req loginRequest
	if err := c.Bind().Body(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid body"})
	}

	session, err := a.accounts.Login(req.UsernameOrEmail, req.Password)
	switch {
	case errors.Is(err, accounts.ErrMissingFields):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "missing fields"})
	case errors.Is(err, accounts.ErrInvalidCredentials):
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid credentials"})
	case err != nil:
		a.logger.Error().Err(err).Msg("login failed")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "server error"})
	}
	return c.JSON(session)
}

func (a *App) handleMe(c fiber.Ctx) error {
	header := c.Get(fiber.HeaderAuthorization)
	token := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	if header == "" || token == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "missing authorization header"})
	}

	identity, err := a.verifier.Verify(token)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid token"})
	}
	return c.JSON(fiber.Map{"user": identity})
}
