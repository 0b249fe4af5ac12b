package repository

import (
	"context"

	"soupbox/internal/models"
	"soupbox/internal/observability"
	"soupbox/internal/pagination"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CommentRepository defines persistence operations for comments. It is
// generic over the commentable kind.
type CommentRepository interface {
	Create(ctx context.Context, comment *models.Comment) error
	GetByID(ctx context.Context, id uint) (*models.Comment, error)
	ListByTarget(ctx context.Context, commentType models.CommentType, targetID uint, p pagination.Param) (*pagination.Page[models.Comment], error)
	CountByTarget(ctx context.Context, commentType models.CommentType, targetID uint) (int64, error)
	ListStarredBy(ctx context.Context, userID uint, p pagination.Param) (*pagination.Page[models.Comment], error)
}

type commentRepository struct {
	db  *gorm.DB
	log *observability.RepoLogger
}

// NewCommentRepository creates a new CommentRepository
func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db, log: observability.NewRepoLogger("comment")}
}

func (r *commentRepository) Create(ctx context.Context, comment *models.Comment) error {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(comment).Error; err != nil {
		r.log.LogError(ctx, err, "create")
		return models.NewInternalError(err)
	}
	r.log.LogCreate(ctx, map[string]any{
		"comment_id":      comment.ID,
		"comment_type":    comment.CommentType,
		"comment_type_id": comment.CommentTypeID,
	})
	return nil
}

func (r *commentRepository) GetByID(ctx context.Context, id uint) (*models.Comment, error) {
	var comment models.Comment
	if err := r.db.WithContext(ctx).Preload("User", omitPassword).First(&comment, id).Error; err != nil {
		return nil, translate(err, "Comment", id)
	}
	return &comment, nil
}

func (r *commentRepository) byTarget(ctx context.Context, commentType models.CommentType, targetID uint) *gorm.DB {
	return r.db.WithContext(ctx).
		Model(&models.Comment{}).
		Where(`"comment"."comment_type" = ? AND "comment"."comment_type_id" = ?`, commentType, targetID)
}

// ListByTarget pages over the comments of one target, oldest first.
func (r *commentRepository) ListByTarget(ctx context.Context, commentType models.CommentType, targetID uint, p pagination.Param) (*pagination.Page[models.Comment], error) {
	page, err := pagination.Paginate[models.Comment](ctx, r.byTarget(ctx, commentType, targetID), p, func(q *gorm.DB) *gorm.DB {
		return q.Preload("User", omitPassword).Order(`"comment"."id" ASC`)
	})
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return page, nil
}

func (r *commentRepository) CountByTarget(ctx context.Context, commentType models.CommentType, targetID uint) (int64, error) {
	var n int64
	if err := r.byTarget(ctx, commentType, targetID).Count(&n).Error; err != nil {
		return 0, models.NewInternalError(err)
	}
	return n, nil
}

// ListStarredBy pages over the comments userID has starred, newest first.
func (r *commentRepository) ListStarredBy(ctx context.Context, userID uint, p pagination.Param) (*pagination.Page[models.Comment], error) {
	query := r.db.WithContext(ctx).
		Model(&models.Comment{}).
		Joins(`INNER JOIN "user_comment_star" ON "user_comment_star"."comment_id" = "comment"."id"`).
		Where(`"user_comment_star"."user_id" = ?`, userID)

	page, err := pagination.Paginate[models.Comment](ctx, query, p, func(q *gorm.DB) *gorm.DB {
		return q.Select(`"comment".*`).Preload("User", omitPassword).Order(`"comment"."id" DESC`)
	})
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return page, nil
}
