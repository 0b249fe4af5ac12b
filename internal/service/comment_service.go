package service

import (
	"context"
	"strings"
	"time"

	"soupbox/internal/models"
	"soupbox/internal/observability"
	"soupbox/internal/pagination"
	"soupbox/internal/repository"
)

// MaxCommentLength bounds comment content, in bytes.
const MaxCommentLength = 10000

// CommentService manages comments on any commentable kind. It knows nothing
// about the entities comments are attached to beyond their (type, id) pair.
type CommentService struct {
	comments repository.CommentRepository
	stars    repository.StarRepository
	now      func() time.Time
}

type CreateCommentInput struct {
	Content       string
	CommentType   models.CommentType
	CommentTypeID uint
	UserID        uint
}

func NewCommentService(comments repository.CommentRepository, stars repository.StarRepository) *CommentService {
	return &CommentService{comments: comments, stars: stars, now: time.Now}
}

// Create stores a comment tagged with in.CommentType/in.CommentTypeID and
// returns it with its author loaded.
func (s *CommentService) Create(ctx context.Context, in CreateCommentInput) (*models.Comment, error) {
	if !in.CommentType.Valid() {
		return nil, models.NewValidationError("Validation failed")
	}
	content := strings.TrimSpace(in.Content)
	if content == "" || len(content) > MaxCommentLength {
		return nil, models.NewValidationError("Validation failed")
	}

	now := s.now().UTC()
	comment := &models.Comment{
		CommentType:   in.CommentType,
		CommentTypeID: in.CommentTypeID,
		UserID:        in.UserID,
		Content:       content,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, err
	}
	observability.CommentsCreated.WithLabelValues(string(in.CommentType)).Inc()

	return s.comments.GetByID(ctx, comment.ID)
}

func (s *CommentService) GetByID(ctx context.Context, id uint) (*models.Comment, error) {
	return s.comments.GetByID(ctx, id)
}

func (s *CommentService) GetCommentsByTypeAndTypeID(ctx context.Context, commentType models.CommentType, typeID uint, p pagination.Param) (*pagination.Page[models.Comment], error) {
	return s.comments.ListByTarget(ctx, commentType, typeID, p)
}

func (s *CommentService) GetCommentsCountByTypeAndTypeID(ctx context.Context, commentType models.CommentType, typeID uint) (int64, error) {
	return s.comments.CountByTarget(ctx, commentType, typeID)
}

func (s *CommentService) CommentStarCount(ctx context.Context, commentID uint) (int64, error) {
	return s.stars.Count(ctx, commentID)
}

func (s *CommentService) IsCommentStarByUser(ctx context.Context, commentID, userID uint) (bool, error) {
	return s.stars.Exists(ctx, commentID, userID)
}

// StarComment fails with Forbidden when the user already starred the comment.
func (s *CommentService) StarComment(ctx context.Context, commentID, userID uint) (int64, error) {
	if err := addStar(ctx, s.stars, repository.CommentStars.Kind, commentID, userID); err != nil {
		return 0, err
	}
	return s.stars.Count(ctx, commentID)
}

func (s *CommentService) UnStarComment(ctx context.Context, commentID, userID uint) (int64, error) {
	if err := removeStar(ctx, s.stars, repository.CommentStars.Kind, commentID, userID); err != nil {
		return 0, err
	}
	return s.stars.Count(ctx, commentID)
}

func (s *CommentService) ToggleCommentStar(ctx context.Context, commentID, userID uint) (int64, error) {
	if err := toggleStar(ctx, s.stars, repository.CommentStars.Kind, commentID, userID); err != nil {
		return 0, err
	}
	return s.stars.Count(ctx, commentID)
}
