package server

import (
	"context"

	"soupbox/internal/models"
	"soupbox/internal/pagination"
	"soupbox/internal/service"
)

// SoupService is the subset of service.SoupService the handlers use.
type SoupService interface {
	GetOne(ctx context.Context, id uint) (*models.Soup, error)
	Create(ctx context.Context, in service.CreateSoupInput) (*models.Soup, error)
	Update(ctx context.Context, id uint, in service.UpdateSoupInput) (*models.Soup, error)
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, in service.ListSoupsInput) (*pagination.Page[models.Soup], error)
	StarCount(ctx context.Context, soupID uint) (int64, error)
	IsStarByUser(ctx context.Context, soupID, userID uint) (bool, error)
	Star(ctx context.Context, soupID, userID uint) (int64, error)
	UnStar(ctx context.Context, soupID, userID uint) (int64, error)
	ToggleStar(ctx context.Context, soupID, userID uint) (int64, error)
	CreateComment(ctx context.Context, soupID uint, content string, userID uint) (*models.Comment, error)
	GetComments(ctx context.Context, soupID uint, p pagination.Param) (*pagination.Page[models.Comment], error)
	GetCommentsCountBySoupID(ctx context.Context, soupID uint) (int64, error)
}

// CommentService is the subset of service.CommentService the handlers use.
type CommentService interface {
	GetByID(ctx context.Context, id uint) (*models.Comment, error)
	CommentStarCount(ctx context.Context, commentID uint) (int64, error)
	IsCommentStarByUser(ctx context.Context, commentID, userID uint) (bool, error)
	StarComment(ctx context.Context, commentID, userID uint) (int64, error)
	UnStarComment(ctx context.Context, commentID, userID uint) (int64, error)
	ToggleCommentStar(ctx context.Context, commentID, userID uint) (int64, error)
}

// UserService is the subset of service.UserService the handlers use.
type UserService interface {
	Create(ctx context.Context, in service.CreateUserInput) (*models.User, error)
	Authenticate(ctx context.Context, email, password string) (*models.User, error)
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetStarSoups(ctx context.Context, userID uint, p pagination.Param) (*pagination.Page[models.Soup], error)
	GetStarComments(ctx context.Context, userID uint, p pagination.Param) (*pagination.Page[models.Comment], error)
}

var (
	_ SoupService    = (*service.SoupService)(nil)
	_ CommentService = (*service.CommentService)(nil)
	_ UserService    = (*service.UserService)(nil)
)
