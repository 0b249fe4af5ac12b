package server

import (
	"soupbox/internal/middleware"
	"soupbox/internal/models"
	"soupbox/internal/pagination"
	"soupbox/internal/repository"
	"soupbox/internal/service"
	"soupbox/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// soupFilterFromQuery reads the list filters. created_at is repeated:
// ?created_at=>&created_at=2024-01-01
func soupFilterFromQuery(c *fiber.Ctx) repository.SoupFilter {
	var createdAt []string
	for _, v := range c.Context().QueryArgs().PeekMulti("created_at") {
		createdAt = append(createdAt, string(v))
	}
	return repository.SoupFilter{
		Content:   c.Query("content"),
		CreatedAt: repository.ParseCreatedAtFilter(createdAt),
		Username:  c.Query("username"),
	}
}

// ListSoups handles GET /api/soups
func (s *Server) ListSoups(c *fiber.Ctx) error {
	userID, _ := middleware.UserID(c)
	page, err := s.soups.List(c.UserContext(), service.ListSoupsInput{
		Filter: soupFilterFromQuery(c),
		Page:   pagination.FromQuery(c),
		UserID: userID,
	})
	if err != nil {
		return s.respond(c, err)
	}
	return c.JSON(page)
}

// GetSoup handles GET /api/soups/:id
func (s *Server) GetSoup(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	soup, err := s.soups.GetOne(c.UserContext(), id)
	if err != nil {
		return s.respond(c, err)
	}
	return c.JSON(soup)
}

// CreateSoup handles POST /api/soups
func (s *Server) CreateSoup(c *fiber.Ctx) error {
	form, err := validation.CreateSoup.Parse(c)
	if err != nil {
		return s.respond(c, err)
	}
	soup, err := s.soups.Create(c.UserContext(), service.CreateSoupInput{
		UserID:  currentUser(c),
		Content: form.Content,
	})
	if err != nil {
		return s.respond(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(soup)
}

// ownedSoup loads the soup and checks the caller owns it. On failure the
// response is written and errResponseWritten returned.
func (s *Server) ownedSoup(c *fiber.Ctx) (*models.Soup, error) {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil, err
	}
	soup, err := s.soups.GetOne(c.UserContext(), id)
	if err != nil {
		_ = s.respond(c, err)
		return nil, errResponseWritten
	}
	if soup.UserID != currentUser(c) {
		_ = models.RespondWithError(c, fiber.StatusForbidden,
			models.NewForbiddenError("You can only modify your own soups"))
		return nil, errResponseWritten
	}
	return soup, nil
}

// UpdateSoup handles PUT /api/soups/:id
func (s *Server) UpdateSoup(c *fiber.Ctx) error {
	soup, err := s.ownedSoup(c)
	if err != nil {
		return nil
	}
	form, err := validation.UpdateSoup.Parse(c)
	if err != nil {
		return s.respond(c, err)
	}
	updated, err := s.soups.Update(c.UserContext(), soup.ID, service.UpdateSoupInput{Content: form.Content})
	if err != nil {
		return s.respond(c, err)
	}
	return c.JSON(updated)
}

// DeleteSoup handles DELETE /api/soups/:id
func (s *Server) DeleteSoup(c *fiber.Ctx) error {
	soup, err := s.ownedSoup(c)
	if err != nil {
		return nil
	}
	if err := s.soups.Delete(c.UserContext(), soup.ID); err != nil {
		return s.respond(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// existingSoupID parses :id and checks the soup exists.
func (s *Server) existingSoupID(c *fiber.Ctx) (uint, error) {
	id, err := s.parseID(c, "id")
	if err != nil {
		return 0, err
	}
	if _, err := s.soups.GetOne(c.UserContext(), id); err != nil {
		_ = s.respond(c, err)
		return 0, errResponseWritten
	}
	return id, nil
}

// GetSoupStar handles GET /api/soups/:id/star
func (s *Server) GetSoupStar(c *fiber.Ctx) error {
	id, err := s.existingSoupID(c)
	if err != nil {
		return nil
	}
	count, err := s.soups.StarCount(c.UserContext(), id)
	if err != nil {
		return s.respond(c, err)
	}

	starred := false
	if userID, ok := middleware.UserID(c); ok {
		starred, err = s.soups.IsStarByUser(c.UserContext(), id, userID)
		if err != nil {
			return s.respond(c, err)
		}
	}
	return c.JSON(fiber.Map{"count": count, "starred": starred})
}

func (s *Server) starAction(c *fiber.Ctx, action func(c *fiber.Ctx, soupID, userID uint) (int64, error)) error {
	id, err := s.existingSoupID(c)
	if err != nil {
		return nil
	}
	count, err := action(c, id, currentUser(c))
	if err != nil {
		return s.respond(c, err)
	}
	return c.JSON(fiber.Map{"count": count})
}

// StarSoup handles POST /api/soups/:id/star
func (s *Server) StarSoup(c *fiber.Ctx) error {
	return s.starAction(c, func(c *fiber.Ctx, soupID, userID uint) (int64, error) {
		return s.soups.Star(c.UserContext(), soupID, userID)
	})
}

// UnStarSoup handles DELETE /api/soups/:id/star
func (s *Server) UnStarSoup(c *fiber.Ctx) error {
	return s.starAction(c, func(c *fiber.Ctx, soupID, userID uint) (int64, error) {
		return s.soups.UnStar(c.UserContext(), soupID, userID)
	})
}

// ToggleSoupStar handles POST /api/soups/:id/star/toggle
func (s *Server) ToggleSoupStar(c *fiber.Ctx) error {
	return s.starAction(c, func(c *fiber.Ctx, soupID, userID uint) (int64, error) {
		return s.soups.ToggleStar(c.UserContext(), soupID, userID)
	})
}

// GetSoupComments handles GET /api/soups/:id/comments
func (s *Server) GetSoupComments(c *fiber.Ctx) error {
	id, err := s.existingSoupID(c)
	if err != nil {
		return nil
	}
	page, err := s.soups.GetComments(c.UserContext(), id, pagination.FromQuery(c))
	if err != nil {
		return s.respond(c, err)
	}
	return c.JSON(page)
}

// GetSoupCommentsCount handles GET /api/soups/:id/comments/count
func (s *Server) GetSoupCommentsCount(c *fiber.Ctx) error {
	id, err := s.existingSoupID(c)
	if err != nil {
		return nil
	}
	count, err := s.soups.GetCommentsCountBySoupID(c.UserContext(), id)
	if err != nil {
		return s.respond(c, err)
	}
	return c.JSON(fiber.Map{"count": count})
}

// CreateSoupComment handles POST /api/soups/:id/comments
func (s *Server) CreateSoupComment(c *fiber.Ctx) error {
	id, err := s.existingSoupID(c)
	if err != nil {
		return nil
	}
	form, err := validation.Comment.Parse(c)
	if err != nil {
		return s.respond(c, err)
	}
	comment, err := s.soups.CreateComment(c.UserContext(), id, form.Content, currentUser(c))
	if err != nil {
		return s.respond(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(comment)
}
