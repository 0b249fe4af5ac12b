package server

import (
	"soupbox/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

// existingCommentID parses :id and checks that the comment exists.
// On failure the response is written and errResponseWritten returned.
func (s *Server) existingCommentID(c *fiber.Ctx) (uint, error) {
	id, err := s.parseID(c, "id")
	if err != nil {
		return 0, err
	}
	if _, err := s.comments.GetByID(c.UserContext(), id); err != nil {
		_ = s.respond(c, err)
		return 0, errResponseWritten
	}
	return id, nil
}

// GetCommentStar handles GET /api/comments/:id/star
func (s *Server) GetCommentStar(c *fiber.Ctx) error {
	id, err := s.existingCommentID(c)
	if err != nil {
		return nil
	}
	count, err := s.comments.CommentStarCount(c.UserContext(), id)
	if err != nil {
		return s.respond(c, err)
	}

	starred := false
	if userID, ok := middleware.UserID(c); ok {
		starred, err = s.comments.IsCommentStarByUser(c.UserContext(), id, userID)
		if err != nil {
			return s.respond(c, err)
		}
	}
	return c.JSON(fiber.Map{"count": count, "starred": starred})
}

func (s *Server) commentStarAction(c *fiber.Ctx, action func(c *fiber.Ctx, commentID, userID uint) (int64, error)) error {
	id, err := s.existingCommentID(c)
	if err != nil {
		return nil
	}
	count, err := action(c, id, currentUser(c))
	if err != nil {
		return s.respond(c, err)
	}
	return c.JSON(fiber.Map{"count": count})
}

// StarComment handles POST /api/comments/:id/star
func (s *Server) StarComment(c *fiber.Ctx) error {
	return s.commentStarAction(c, func(c *fiber.Ctx, commentID, userID uint) (int64, error) {
		return s.comments.StarComment(c.UserContext(), commentID, userID)
	})
}

// UnStarComment handles DELETE /api/comments/:id/star
func (s *Server) UnStarComment(c *fiber.Ctx) error {
	return s.commentStarAction(c, func(c *fiber.Ctx, commentID, userID uint) (int64, error) {
		return s.comments.UnStarComment(c.UserContext(), commentID, userID)
	})
}

// ToggleCommentStar handles POST /api/comments/:id/star/toggle
func (s *Server) ToggleCommentStar(c *fiber.Ctx) error {
	return s.commentStarAction(c, func(c *fiber.Ctx, commentID, userID uint) (int64, error) {
		return s.comments.ToggleCommentStar(c.UserContext(), commentID, userID)
	})
}
