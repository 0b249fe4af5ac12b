package repository

import (
	"context"

	"soupbox/internal/models"
	"soupbox/internal/observability"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// StarTarget describes one user/target star join table.
type StarTarget struct {
	// Kind labels logs and metrics ("soup", "comment").
	Kind   string
	table  string
	column string
	model  interface{}
	newRow func(userID, targetID uint) interface{}
}

var (
	// SoupStars is the user_soup_star table.
	SoupStars = StarTarget{
		Kind:   "soup",
		table:  "user_soup_star",
		column: "soup_id",
		model:  &models.UserSoupStar{},
		newRow: func(userID, targetID uint) interface{} {
			return &models.UserSoupStar{UserID: userID, SoupID: targetID}
		},
	}
	// CommentStars is the user_comment_star table.
	CommentStars = StarTarget{
		Kind:   "comment",
		table:  "user_comment_star",
		column: "comment_id",
		model:  &models.UserCommentStar{},
		newRow: func(userID, targetID uint) interface{} {
			return &models.UserCommentStar{UserID: userID, CommentID: targetID}
		},
	}
)

// StarRepository manages the membership rows of one star join table.
type StarRepository interface {
	// Add inserts the (user, target) row if absent and reports whether a row was inserted.
	Add(ctx context.Context, targetID, userID uint) (bool, error)
	// Remove deletes the row if present. Removing a missing row is not an error.
	Remove(ctx context.Context, targetID, userID uint) error
	Count(ctx context.Context, targetID uint) (int64, error)
	Exists(ctx context.Context, targetID, userID uint) (bool, error)
}

type starRepository struct {
	db     *gorm.DB
	target StarTarget
	log    *observability.RepoLogger
}

// NewStarRepository returns a StarRepository over target's table.
func NewStarRepository(db *gorm.DB, target StarTarget) StarRepository {
	return &starRepository{db: db, target: target, log: observability.NewRepoLogger(target.table)}
}

func (r *starRepository) Add(ctx context.Context, targetID, userID uint) (bool, error) {
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(r.target.newRow(userID, targetID))
	if res.Error != nil {
		r.log.LogError(ctx, res.Error, "create")
		return false, models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return false, nil
	}
	r.log.LogCreate(ctx, map[string]any{r.target.column: targetID, "user_id": userID})
	return true, nil
}

func (r *starRepository) Remove(ctx context.Context, targetID, userID uint) error {
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND "+r.target.column+" = ?", userID, targetID).
		Delete(r.target.model)
	if res.Error != nil {
		r.log.LogError(ctx, res.Error, "delete")
		return models.NewInternalError(res.Error)
	}
	if res.RowsAffected > 0 {
		r.log.LogDelete(ctx, map[string]any{r.target.column: targetID, "user_id": userID})
	}
	return nil
}

func (r *starRepository) Count(ctx context.Context, targetID uint) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(r.target.model).
		Where(r.target.column+" = ?", targetID).
		Count(&n).Error
	if err != nil {
		return 0, models.NewInternalError(err)
	}
	return n, nil
}

func (r *starRepository) Exists(ctx context.Context, targetID, userID uint) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(r.target.model).
		Where("user_id = ? AND "+r.target.column+" = ?", userID, targetID).
		Count(&n).Error
	if err != nil {
		return false, models.NewInternalError(err)
	}
	return n > 0, nil
}
