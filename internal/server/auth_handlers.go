package server

import (
	"soupbox/internal/models"
	"soupbox/internal/service"
	"soupbox/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// Signup handles POST /api/auth/signup
func (s *Server) Signup(c *fiber.Ctx) error {
	form, err := validation.CreateUser.Parse(c)
	if err != nil {
		return s.respond(c, err)
	}

	user, err := s.users.Create(c.UserContext(), service.CreateUserInput{
		Email:    form.Email,
		Password: form.Password,
		Name:     form.Name,
	})
	if err != nil {
		return s.respond(c, err)
	}

	token, err := s.generateToken(user.ID)
	if err != nil {
		return s.respond(c, models.NewInternalError(err))
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"token": token,
		"user":  user,
	})
}

// Login handles POST /api/auth/login
func (s *Server) Login(c *fiber.Ctx) error {
	form, err := validation.Login.Parse(c)
	if err != nil {
		return s.respond(c, err)
	}

	user, err := s.users.Authenticate(c.UserContext(), form.Email, form.Password)
	if err != nil {
		return s.respond(c, err)
	}

	token, err := s.generateToken(user.ID)
	if err != nil {
		return s.respond(c, models.NewInternalError(err))
	}

	return c.JSON(fiber.Map{
		"token": token,
		"user":  user,
	})
}
