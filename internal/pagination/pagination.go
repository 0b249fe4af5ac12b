// Package pagination turns page/limit request parameters into paged GORM queries.
package pagination

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

const (
	DefaultLimit = 10
	MaxLimit     = 100
)

// Param is the page request shape consumed by listing operations. Page is 1-based.
type Param struct {
	Page  int `query:"page"`
	Limit int `query:"limit"`
}

// Meta describes the returned page.
type Meta struct {
	TotalItems   int64 `json:"total_items"`
	ItemCount    int   `json:"item_count"`
	ItemsPerPage int   `json:"items_per_page"`
	TotalPages   int   `json:"total_pages"`
	CurrentPage  int   `json:"current_page"`
}

// Page is one page of rows plus metadata.
type Page[T any] struct {
	Items []T `json:"items"`
	Meta  Meta `json:"meta"`
}

// Normalize clamps page and limit to usable values.
func (p Param) Normalize() Param {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Limit <= 0 {
		p.Limit = DefaultLimit
	}
	if p.Limit > MaxLimit {
		p.Limit = MaxLimit
	}
	return p
}

// Offset returns the row offset of the page.
func (p Param) Offset() int {
	n := p.Normalize()
	return (n.Page - 1) * n.Limit
}

// FromQuery extracts page and limit query parameters.
func FromQuery(c *fiber.Ctx) Param {
	return Param{
		Page:  c.QueryInt("page", 1),
		Limit: c.QueryInt("limit", DefaultLimit),
	}.Normalize()
}

// Paginate counts the rows matched by query and loads the requested page into a Page[T].
// prepare, when set, is applied to the row query only (projection, preloads, ordering) so
// that it never affects the count.
func Paginate[T any](ctx context.Context, query *gorm.DB, p Param, prepare func(*gorm.DB) *gorm.DB) (*Page[T], error) {
	p = p.Normalize()

	var total int64
	if err := query.Session(&gorm.Session{}).WithContext(ctx).Count(&total).Error; err != nil {
		return nil, err
	}

	items := make([]T, 0, p.Limit)
	if total > 0 {
		rows := query.Session(&gorm.Session{}).WithContext(ctx)
		if prepare != nil {
			rows = prepare(rows)
		}
		if err := rows.Limit(p.Limit).Offset(p.Offset()).Find(&items).Error; err != nil {
			return nil, err
		}
	}

	totalPages := int(total) / p.Limit
	if int(total)%p.Limit != 0 {
		totalPages++
	}

	return &Page[T]{
		Items: items,
		Meta: Meta{
			TotalItems:   total,
			ItemCount:    len(items),
			ItemsPerPage: p.Limit,
			TotalPages:   totalPages,
			CurrentPage:  p.Page,
		},
	}, nil
}
