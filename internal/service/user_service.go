package service

import (
	"context"
	"strings"
	"time"

	"soupbox/internal/models"
	"soupbox/internal/pagination"
	"soupbox/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

// PasswordHashCost is the bcrypt work factor for new accounts. bcrypt.MinCost
// is the lowest cost the library accepts; anything lower is silently raised
// to bcrypt.DefaultCost.
const PasswordHashCost = bcrypt.MinCost

type UserService struct {
	users    repository.UserRepository
	soups    repository.SoupRepository
	comments repository.CommentRepository
	now      func() time.Time
}

type CreateUserInput struct {
	Email    string
	Password string
	Name     string
}

func NewUserService(
	users repository.UserRepository,
	soups repository.SoupRepository,
	comments repository.CommentRepository,
) *UserService {
	return &UserService{users: users, soups: soups, comments: comments, now: time.Now}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// FindOne looks a user up by email with the password hash included.
// It returns nil, nil when no account matches.
func (s *UserService) FindOne(ctx context.Context, email string) (*models.User, error) {
	return s.users.GetByEmailWithPassword(ctx, normalizeEmail(email))
}

// Create hashes the password and stores the account. The returned user still
// carries the hash; it is never serialized.
func (s *UserService) Create(ctx context.Context, in CreateUserInput) (*models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), PasswordHashCost)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	user := &models.User{
		Email:     normalizeEmail(in.Email),
		Password:  string(hash),
		Name:      strings.TrimSpace(in.Name),
		CreatedAt: s.now().UTC(),
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Authenticate returns the account for email when password matches its hash.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.FindOne(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, models.NewUnauthorizedError("Invalid credentials")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, models.NewUnauthorizedError("Invalid credentials")
	}
	return user, nil
}

func (s *UserService) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.users.GetByID(ctx, id)
}

// GetStarSoups pages over the soups userID has starred.
func (s *UserService) GetStarSoups(ctx context.Context, userID uint, p pagination.Param) (*pagination.Page[models.Soup], error) {
	return s.soups.ListStarredBy(ctx, userID, p)
}

// GetStarComments pages over the comments userID has starred.
func (s *UserService) GetStarComments(ctx context.Context, userID uint, p pagination.Param) (*pagination.Page[models.Comment], error) {
	return s.comments.ListStarredBy(ctx, userID, p)
}
