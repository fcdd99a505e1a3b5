package server

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/mckayn10/ai-chat-app/pkg/users"
)

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResponse struct {
	User  users.User `json:"user"`
	Token string     `json:"token"`
}

func (s *Server) handleRegister(c *fiber.Ctx) error {
	var req registerRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if req.Email == "" || req.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Email and password are required"})
	}
	u, token, err := s.auth.Register(c.Context(), req.Email, req.Password, req.Name)
	if err != nil {
		if errors.Is(err, users.ErrEmailTaken) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Email already registered"})
		}
		s.log.Error("register_failed", "error", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Failed to create user"})
	}
	return c.Status(fiber.StatusCreated).JSON(authResponse{User: u, Token: token})
}

func (s *Server) handleLogin(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	u, token, err := s.auth.Login(c.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, users.ErrBadCredentials) {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid credentials"})
		}
		s.log.Error("login_failed", "error", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Login failed"})
	}
	return c.JSON(authResponse{User: u, Token: token})
}

func (s *Server) handleMe(c *fiber.Ctx) error {
	return c.JSON(currentUser(c))
}
