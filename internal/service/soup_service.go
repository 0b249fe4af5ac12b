package service

import (
	"context"
	"time"

	"soupbox/internal/cache"
	"soupbox/internal/featureflags"
	"soupbox/internal/models"
	"soupbox/internal/observability"
	"soupbox/internal/pagination"
	"soupbox/internal/repository"

	"go.opentelemetry.io/otel/attribute"
)

type SoupService struct {
	soups    repository.SoupRepository
	stars    repository.StarRepository
	comments *CommentService
	cache    *cache.Store
	flags    *featureflags.Manager
	now      func() time.Time
}

type CreateSoupInput struct {
	UserID  uint
	Content string
}

// UpdateSoupInput carries the fields to overwrite. Nil fields keep their value.
type UpdateSoupInput struct {
	Content *string
}

type ListSoupsInput struct {
	Filter repository.SoupFilter
	Page   pagination.Param
	// UserID is the caller, 0 when anonymous. It only drives flag rollout.
	UserID uint
}

// NewSoupService wires the soup use cases. store and flags may be nil.
func NewSoupService(
	soups repository.SoupRepository,
	stars repository.StarRepository,
	comments *CommentService,
	store *cache.Store,
	flags *featureflags.Manager,
) *SoupService {
	return &SoupService{
		soups:    soups,
		stars:    stars,
		comments: comments,
		cache:    store,
		flags:    flags,
		now:      time.Now,
	}
}

// GetOne returns the soup with its owner, or a NotFound error.
func (s *SoupService) GetOne(ctx context.Context, id uint) (*models.Soup, error) {
	var soup models.Soup
	err := s.cache.Aside(ctx, cache.SoupKey(id), cache.FamilySoup, &soup, cache.SoupTTL, func() error {
		found, err := s.soups.GetByID(ctx, id)
		if err != nil {
			return err
		}
		soup = *found
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &soup, nil
}

// Create stores a new soup. Both timestamps are set to the current time.
func (s *SoupService) Create(ctx context.Context, in CreateSoupInput) (*models.Soup, error) {
	now := s.now().UTC()
	soup := &models.Soup{
		Content:   in.Content,
		UserID:    in.UserID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.soups.Create(ctx, soup); err != nil {
		return nil, err
	}
	return soup, nil
}

// Update merges in over the stored soup, bumps updated_at and returns the
// re-fetched soup with its owner.
func (s *SoupService) Update(ctx context.Context, id uint, in UpdateSoupInput) (*models.Soup, error) {
	soup, err := s.soups.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Content != nil {
		soup.Content = *in.Content
	}

	now := s.now().UTC()
	// updated_at must strictly increase even if the clock did not move.
	if !now.After(soup.UpdatedAt) {
		now = soup.UpdatedAt.Add(time.Microsecond)
	}
	soup.UpdatedAt = now

	if err := s.soups.Update(ctx, soup); err != nil {
		return nil, err
	}
	s.cache.Invalidate(ctx, cache.SoupKey(id))

	return s.GetOne(ctx, id)
}

// Delete hard-deletes the soup.
func (s *SoupService) Delete(ctx context.Context, id uint) error {
	if err := s.soups.Delete(ctx, id); err != nil {
		return err
	}
	s.cache.Invalidate(ctx, cache.SoupKey(id), cache.SoupStarsKey(id))
	return nil
}

// List returns a filtered page of soups with their owners.
func (s *SoupService) List(ctx context.Context, in ListSoupsInput) (*pagination.Page[models.Soup], error) {
	withStarCount := s.flags.Enabled(featureflags.SoupListStarCount, in.UserID)

	ctx, span := observability.StartSpan(ctx, "SoupService", "List",
		attribute.Bool("soup.with_star_count", withStarCount),
	)
	page, err := s.soups.List(ctx, in.Filter, in.Page, withStarCount)
	observability.EndSpan(span, err)
	return page, err
}

func (s *SoupService) StarCount(ctx context.Context, soupID uint) (int64, error) {
	var n int64
	err := s.cache.Aside(ctx, cache.SoupStarsKey(soupID), cache.FamilySoupStars, &n, cache.SoupStarsTTL, func() error {
		count, err := s.stars.Count(ctx, soupID)
		if err != nil {
			return err
		}
		n = count
		return nil
	})
	return n, err
}

func (s *SoupService) IsStarByUser(ctx context.Context, soupID, userID uint) (bool, error) {
	return s.stars.Exists(ctx, soupID, userID)
}

// Star records the user's star and returns the new count. A repeated star
// fails with Forbidden and changes nothing.
func (s *SoupService) Star(ctx context.Context, soupID, userID uint) (int64, error) {
	if err := addStar(ctx, s.stars, repository.SoupStars.Kind, soupID, userID); err != nil {
		return 0, err
	}
	return s.refreshStarCount(ctx, soupID)
}

// UnStar removes the user's star, if any, and returns the new count.
func (s *SoupService) UnStar(ctx context.Context, soupID, userID uint) (int64, error) {
	if err := removeStar(ctx, s.stars, repository.SoupStars.Kind, soupID, userID); err != nil {
		return 0, err
	}
	return s.refreshStarCount(ctx, soupID)
}

// ToggleStar flips the user's star and returns the resulting count.
func (s *SoupService) ToggleStar(ctx context.Context, soupID, userID uint) (int64, error) {
	ctx, span := observability.StartSpan(ctx, "SoupService", "ToggleStar",
		attribute.Int64("soup.id", int64(soupID)),
	)
	err := toggleStar(ctx, s.stars, repository.SoupStars.Kind, soupID, userID)
	observability.EndSpan(span, err)
	if err != nil {
		return 0, err
	}
	return s.refreshStarCount(ctx, soupID)
}

func (s *SoupService) refreshStarCount(ctx context.Context, soupID uint) (int64, error) {
	s.cache.Invalidate(ctx, cache.SoupStarsKey(soupID))
	return s.StarCount(ctx, soupID)
}

func (s *SoupService) CreateComment(ctx context.Context, soupID uint, content string, userID uint) (*models.Comment, error) {
	return s.comments.Create(ctx, CreateCommentInput{
		Content:       content,
		CommentType:   models.Soup{}.CommentType(),
		CommentTypeID: soupID,
		UserID:        userID,
	})
}

func (s *SoupService) GetComments(ctx context.Context, soupID uint, p pagination.Param) (*pagination.Page[models.Comment], error) {
	return s.comments.GetCommentsByTypeAndTypeID(ctx, models.Soup{}.CommentType(), soupID, p)
}

func (s *SoupService) GetCommentsCountBySoupID(ctx context.Context, soupID uint) (int64, error) {
	return s.comments.GetCommentsCountByTypeAndTypeID(ctx, models.Soup{}.CommentType(), soupID)
}
