// Package seed fills a database with fake users, soups, comments and stars
// for development and demos. It goes through the repositories so the rows
// look exactly like the ones the API writes.
package seed

import (
	"context"
	"fmt"
	"strings"
	"time"

	"soupbox/internal/models"
	"soupbox/internal/repository"
	"soupbox/internal/service"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// DefaultPassword is the password of every seeded account.
const DefaultPassword = "password123"

// Options size the generated data set.
type Options struct {
	Users           int
	SoupsPerUser    int
	CommentsPerSoup int
	// StarPercent is the chance, 0-100, that a user stars a given soup or comment.
	StarPercent int
	MaxDays     int
	// RandSeed makes the data set reproducible. Zero picks a time-based seed.
	RandSeed int64
}

func DefaultOptions() Options {
	return Options{Users: 20, SoupsPerUser: 5, CommentsPerSoup: 3, StarPercent: 30, MaxDays: 90}
}

// Result counts what was written.
type Result struct {
	Users        int
	Soups        int
	Comments     int
	SoupStars    int
	CommentStars int
}

type Seeder struct {
	db           *gorm.DB
	faker        *gofakeit.Faker
	users        repository.UserRepository
	soups        repository.SoupRepository
	comments     repository.CommentRepository
	soupStars    repository.StarRepository
	commentStars repository.StarRepository
	now          func() time.Time
}

func NewSeeder(db *gorm.DB, randSeed int64) *Seeder {
	if randSeed == 0 {
		randSeed = time.Now().UnixNano()
	}
	return &Seeder{
		db:           db,
		faker:        gofakeit.New(randSeed),
		users:        repository.NewUserRepository(db),
		soups:        repository.NewSoupRepository(db),
		comments:     repository.NewCommentRepository(db),
		soupStars:    repository.NewStarRepository(db, repository.SoupStars),
		commentStars: repository.NewStarRepository(db, repository.CommentStars),
		now:          time.Now,
	}
}

// ClearAll removes every seeded table's rows, join tables first.
func (s *Seeder) ClearAll(ctx context.Context) error {
	for _, model := range []interface{}{
		&models.UserCommentStar{},
		&models.UserSoupStar{},
		&models.Comment{},
		&models.Soup{},
		&models.User{},
	} {
		if err := s.db.WithContext(ctx).Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(model).Error; err != nil {
			return fmt.Errorf("clear %T: %w", model, err)
		}
	}
	return nil
}

// Run generates the data set described by opts.
func (s *Seeder) Run(ctx context.Context, opts Options) (*Result, error) {
	if opts.MaxDays <= 0 {
		opts.MaxDays = 90
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(DefaultPassword), service.PasswordHashCost)
	if err != nil {
		return nil, err
	}

	res := &Result{}
	users := make([]*models.User, 0, opts.Users)
	for i := 0; i < opts.Users; i++ {
		u := s.buildUser(i, string(hash), opts.MaxDays)
		if err := s.users.Create(ctx, u); err != nil {
			return res, fmt.Errorf("create user: %w", err)
		}
		users = append(users, u)
		res.Users++
	}

	var soups []*models.Soup
	for _, u := range users {
		for j := 0; j < opts.SoupsPerUser; j++ {
			soup := s.buildSoup(u, opts.MaxDays)
			if err := s.soups.Create(ctx, soup); err != nil {
				return res, fmt.Errorf("create soup: %w", err)
			}
			soups = append(soups, soup)
			res.Soups++
		}
	}

	var comments []*models.Comment
	for _, soup := range soups {
		for j := 0; j < opts.CommentsPerSoup && len(users) > 0; j++ {
			author := users[s.faker.Number(0, len(users)-1)]
			c := &models.Comment{
				CommentType:   soup.CommentType(),
				CommentTypeID: soup.ID,
				UserID:        author.ID,
				Content:       s.faker.Sentence(s.faker.Number(3, 12)),
				CreatedAt:     soup.CreatedAt.Add(time.Duration(j+1) * time.Hour),
			}
			c.UpdatedAt = c.CreatedAt
			if err := s.comments.Create(ctx, c); err != nil {
				return res, fmt.Errorf("create comment: %w", err)
			}
			comments = append(comments, c)
			res.Comments++
		}
	}

	for _, u := range users {
		for _, soup := range soups {
			if !s.roll(opts.StarPercent) {
				continue
			}
			inserted, err := s.soupStars.Add(ctx, soup.ID, u.ID)
			if err != nil {
				return res, fmt.Errorf("star soup: %w", err)
			}
			if inserted {
				res.SoupStars++
			}
		}
		for _, c := range comments {
			if !s.roll(opts.StarPercent) {
				continue
			}
			inserted, err := s.commentStars.Add(ctx, c.ID, u.ID)
			if err != nil {
				return res, fmt.Errorf("star comment: %w", err)
			}
			if inserted {
				res.CommentStars++
			}
		}
	}

	return res, nil
}

func (s *Seeder) roll(percent int) bool {
	if percent <= 0 {
		return false
	}
	return s.faker.Number(1, 100) <= percent
}

func (s *Seeder) buildUser(i int, hash string, maxDays int) *models.User {
	first := s.faker.FirstName()
	last := s.faker.LastName()
	return &models.User{
		// the index keeps emails unique even when the faker repeats a name
		Email:     strings.ToLower(fmt.Sprintf("%s.%s.%d@soupbox.local", first, last, i)),
		Password:  hash,
		Name:      first + " " + last,
		CreatedAt: s.pastTime(maxDays),
	}
}

func (s *Seeder) buildSoup(owner *models.User, maxDays int) *models.Soup {
	var dish string
	switch s.faker.Number(0, 2) {
	case 0:
		dish = s.faker.Lunch()
	case 1:
		dish = s.faker.Dinner()
	default:
		dish = s.faker.Snack()
	}
	created := s.pastTime(maxDays)
	return &models.Soup{
		Content:   dish + ". " + s.faker.Sentence(s.faker.Number(5, 15)),
		UserID:    owner.ID,
		CreatedAt: created,
		UpdatedAt: created,
	}
}

func (s *Seeder) pastTime(maxDays int) time.Time {
	back := time.Duration(s.faker.Number(0, maxDays*24*60)) * time.Minute
	return s.now().Add(-back).UTC().Truncate(time.Second)
}
