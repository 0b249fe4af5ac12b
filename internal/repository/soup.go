package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"soupbox/internal/models"
	"soupbox/internal/observability"
	"soupbox/internal/pagination"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CreatedAtFilter compares soup.created_at against Value using Op.
type CreatedAtFilter struct {
	Op    string
	Value time.Time
}

var createdAtOps = map[string]struct{}{
	"=": {}, "<": {}, ">": {}, "<=": {}, ">=": {}, "<>": {}, "!=": {},
}

var createdAtLayouts = []string{time.RFC3339Nano, time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"}

// ParseCreatedAtFilter turns the raw [operator, value] pair into a filter.
// Anything other than exactly two elements, an operator outside the
// comparison whitelist, or an unparseable time yields nil (filter unapplied).
func ParseCreatedAtFilter(raw []string) *CreatedAtFilter {
	if len(raw) != 2 {
		return nil
	}
	op := strings.TrimSpace(raw[0])
	if _, ok := createdAtOps[op]; !ok {
		return nil
	}
	value := strings.TrimSpace(raw[1])
	for _, layout := range createdAtLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return &CreatedAtFilter{Op: op, Value: t}
		}
	}
	return nil
}

// SoupFilter holds the optional list filters. Set filters are AND-combined.
type SoupFilter struct {
	// Content matches soups whose content contains this substring (case-sensitive).
	Content string
	// CreatedAt is nil when the filter is not applied.
	CreatedAt *CreatedAtFilter
	// Username matches the owner's name exactly.
	Username string
}

const listOrder = `"soup"."id" DESC`

// SoupRepository defines persistence operations for soups.
type SoupRepository interface {
	GetByID(ctx context.Context, id uint) (*models.Soup, error)
	Create(ctx context.Context, soup *models.Soup) error
	Update(ctx context.Context, soup *models.Soup) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, filter SoupFilter, p pagination.Param, withStarCount bool) (*pagination.Page[models.Soup], error)
	ListStarredBy(ctx context.Context, userID uint, p pagination.Param) (*pagination.Page[models.Soup], error)
}

type soupRepository struct {
	db  *gorm.DB
	log *observability.RepoLogger
}

// NewSoupRepository returns a new SoupRepository implementation.
func NewSoupRepository(db *gorm.DB) SoupRepository {
	return &soupRepository{db: db, log: observability.NewRepoLogger("soup")}
}

func (r *soupRepository) GetByID(ctx context.Context, id uint) (*models.Soup, error) {
	var soup models.Soup
	err := r.db.WithContext(ctx).
		Preload("User", omitPassword).
		First(&soup, id).Error
	if err != nil {
		return nil, translate(err, "Soup", id)
	}
	return &soup, nil
}

func (r *soupRepository) Create(ctx context.Context, soup *models.Soup) error {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(soup).Error; err != nil {
		r.log.LogError(ctx, err, "create")
		return models.NewInternalError(err)
	}
	r.log.LogCreate(ctx, map[string]any{"soup_id": soup.ID, "user_id": soup.UserID})
	return nil
}

// Update persists the content and updated_at of soup.
func (r *soupRepository) Update(ctx context.Context, soup *models.Soup) error {
	res := r.db.WithContext(ctx).
		Model(&models.Soup{ID: soup.ID}).
		Select("content", "updated_at").
		Updates(map[string]any{"content": soup.Content, "updated_at": soup.UpdatedAt})
	if res.Error != nil {
		r.log.LogError(ctx, res.Error, "update")
		return models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return models.NewNotFoundError("Soup", soup.ID)
	}
	r.log.LogUpdate(ctx, map[string]any{"soup_id": soup.ID})
	return nil
}

// Delete removes the soup together with its stars, its comments and their stars.
func (r *soupRepository) Delete(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&models.Soup{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return models.NewNotFoundError("Soup", id)
		}

		if err := tx.Where("soup_id = ?", id).Delete(&models.UserSoupStar{}).Error; err != nil {
			return err
		}

		comments := tx.Model(&models.Comment{}).Select("id").
			Where("comment_type = ? AND comment_type_id = ?", models.CommentTypeSoup, id)
		if err := tx.Where("comment_id IN (?)", comments).Delete(&models.UserCommentStar{}).Error; err != nil {
			return err
		}
		return tx.Where("comment_type = ? AND comment_type_id = ?", models.CommentTypeSoup, id).
			Delete(&models.Comment{}).Error
	})
	if err != nil {
		if !models.IsCode(err, models.CodeNotFound) {
			r.log.LogError(ctx, err, "delete")
		}
		return translate(err, "Soup", id)
	}
	r.log.LogDelete(ctx, map[string]any{"soup_id": id})
	return nil
}

// List pages over soups left-joined with their owner. When withStarCount is
// set each row also carries its star count.
func (r *soupRepository) List(ctx context.Context, filter SoupFilter, p pagination.Param, withStarCount bool) (*pagination.Page[models.Soup], error) {
	query := r.db.WithContext(ctx).
		Model(&models.Soup{}).
		Joins(`LEFT JOIN "user" "User" ON "User"."id" = "soup"."user_id"`)

	if filter.Content != "" {
		query = query.Where(`"soup"."content" LIKE ? ESCAPE '\'`, containsPattern(filter.Content))
	}
	if f := filter.CreatedAt; f != nil {
		if _, ok := createdAtOps[f.Op]; ok {
			query = query.Where(fmt.Sprintf(`"soup"."created_at" %s ?`, f.Op), f.Value.UTC())
		}
	}
	if filter.Username != "" {
		query = query.Where(`"User"."name" = ?`, filter.Username)
	}

	columns := `"soup".*`
	if withStarCount {
		columns += `, (SELECT COUNT(*) FROM "user_soup_star" WHERE "user_soup_star"."soup_id" = "soup"."id") AS star_count`
	}

	page, err := pagination.Paginate[models.Soup](ctx, query, p, func(q *gorm.DB) *gorm.DB {
		return q.Select(columns).Preload("User", omitPassword).Order(listOrder)
	})
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return page, nil
}

// ListStarredBy pages over the soups userID has starred.
func (r *soupRepository) ListStarredBy(ctx context.Context, userID uint, p pagination.Param) (*pagination.Page[models.Soup], error) {
	query := r.db.WithContext(ctx).
		Model(&models.Soup{}).
		Joins(`INNER JOIN "user_soup_star" ON "user_soup_star"."soup_id" = "soup"."id"`).
		Where(`"user_soup_star"."user_id" = ?`, userID)

	page, err := pagination.Paginate[models.Soup](ctx, query, p, func(q *gorm.DB) *gorm.DB {
		return q.Select(`"soup".*`).Preload("User", omitPassword).Order(listOrder)
	})
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return page, nil
}
