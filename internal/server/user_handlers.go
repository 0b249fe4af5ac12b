package server

import (
	"soupbox/internal/pagination"

	"github.com/gofiber/fiber/v2"
)

// GetMyProfile handles GET /api/users/me
func (s *Server) GetMyProfile(c *fiber.Ctx) error {
	user, err := s.users.GetByID(c.UserContext(), currentUser(c))
	if err != nil {
		return s.respond(c, err)
	}
	return c.JSON(user)
}

// GetUserProfile handles GET /api/users/:id
func (s *Server) GetUserProfile(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	user, err := s.users.GetByID(c.UserContext(), id)
	if err != nil {
		return s.respond(c, err)
	}
	return c.JSON(user)
}

// existingUserID parses :id and checks the user exists.
func (s *Server) existingUserID(c *fiber.Ctx) (uint, error) {
	id, err := s.parseID(c, "id")
	if err != nil {
		return 0, err
	}
	if _, err := s.users.GetByID(c.UserContext(), id); err != nil {
		_ = s.respond(c, err)
		return 0, errResponseWritten
	}
	return id, nil
}

func (s *Server) starSoupsOf(c *fiber.Ctx, userID uint) error {
	page, err := s.users.GetStarSoups(c.UserContext(), userID, pagination.FromQuery(c))
	if err != nil {
		return s.respond(c, err)
	}
	return c.JSON(page)
}

func (s *Server) starCommentsOf(c *fiber.Ctx, userID uint) error {
	page, err := s.users.GetStarComments(c.UserContext(), userID, pagination.FromQuery(c))
	if err != nil {
		return s.respond(c, err)
	}
	return c.JSON(page)
}

// GetMyStarSoups handles GET /api/users/me/star-soups
func (s *Server) GetMyStarSoups(c *fiber.Ctx) error {
	return s.starSoupsOf(c, currentUser(c))
}

// GetMyStarComments handles GET /api/users/me/star-comments
func (s *Server) GetMyStarComments(c *fiber.Ctx) error {
	return s.starCommentsOf(c, currentUser(c))
}

// GetUserStarSoups handles GET /api/users/:id/star-soups
func (s *Server) GetUserStarSoups(c *fiber.Ctx) error {
	id, err := s.existingUserID(c)
	if err != nil {
		return nil
	}
	return s.starSoupsOf(c, id)
}

// GetUserStarComments handles GET /api/users/:id/star-comments
func (s *Server) GetUserStarComments(c *fiber.Ctx) error {
	id, err := s.existingUserID(c)
	if err != nil {
		return nil
	}
	return s.starCommentsOf(c, id)
}
