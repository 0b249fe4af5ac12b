package server

import (
	"context"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"soupbox/internal/config"
	"soupbox/internal/middleware"
	"soupbox/internal/models"
	"soupbox/internal/pagination"
	"soupbox/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key-12345678901234567890123456789012"

// MockSoupService is a mock of the SoupService interface
type MockSoupService struct {
	mock.Mock
}

func (m *MockSoupService) GetOne(ctx context.Context, id uint) (*models.Soup, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Soup), args.Error(1)
}

func (m *MockSoupService) Create(ctx context.Context, in service.CreateSoupInput) (*models.Soup, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Soup), args.Error(1)
}

func (m *MockSoupService) Update(ctx context.Context, id uint, in service.UpdateSoupInput) (*models.Soup, error) {
	args := m.Called(ctx, id, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Soup), args.Error(1)
}

func (m *MockSoupService) Delete(ctx context.Context, id uint) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockSoupService) List(ctx context.Context, in service.ListSoupsInput) (*pagination.Page[models.Soup], error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*pagination.Page[models.Soup]), args.Error(1)
}

func (m *MockSoupService) StarCount(ctx context.Context, soupID uint) (int64, error) {
	args := m.Called(ctx, soupID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockSoupService) IsStarByUser(ctx context.Context, soupID, userID uint) (bool, error) {
	args := m.Called(ctx, soupID, userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockSoupService) Star(ctx context.Context, soupID, userID uint) (int64, error) {
	args := m.Called(ctx, soupID, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockSoupService) UnStar(ctx context.Context, soupID, userID uint) (int64, error) {
	args := m.Called(ctx, soupID, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockSoupService) ToggleStar(ctx context.Context, soupID, userID uint) (int64, error) {
	args := m.Called(ctx, soupID, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockSoupService) CreateComment(ctx context.Context, soupID uint, content string, userID uint) (*models.Comment, error) {
	args := m.Called(ctx, soupID, content, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Comment), args.Error(1)
}

func (m *MockSoupService) GetComments(ctx context.Context, soupID uint, p pagination.Param) (*pagination.Page[models.Comment], error) {
	args := m.Called(ctx, soupID, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*pagination.Page[models.Comment]), args.Error(1)
}

func (m *MockSoupService) GetCommentsCountBySoupID(ctx context.Context, soupID uint) (int64, error) {
	args := m.Called(ctx, soupID)
	return args.Get(0).(int64), args.Error(1)
}

// MockCommentService is a mock of the CommentService interface
type MockCommentService struct {
	mock.Mock
}

func (m *MockCommentService) GetByID(ctx context.Context, id uint) (*models.Comment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Comment), args.Error(1)
}

func (m *MockCommentService) CommentStarCount(ctx context.Context, commentID uint) (int64, error) {
	args := m.Called(ctx, commentID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCommentService) IsCommentStarByUser(ctx context.Context, commentID, userID uint) (bool, error) {
	args := m.Called(ctx, commentID, userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockCommentService) StarComment(ctx context.Context, commentID, userID uint) (int64, error) {
	args := m.Called(ctx, commentID, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCommentService) UnStarComment(ctx context.Context, commentID, userID uint) (int64, error) {
	args := m.Called(ctx, commentID, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCommentService) ToggleCommentStar(ctx context.Context, commentID, userID uint) (int64, error) {
	args := m.Called(ctx, commentID, userID)
	return args.Get(0).(int64), args.Error(1)
}

// MockUserService is a mock of the UserService interface
type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) Create(ctx context.Context, in service.CreateUserInput) (*models.User, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserService) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserService) GetByID(ctx context.Context, id uint) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserService) GetStarSoups(ctx context.Context, userID uint, p pagination.Param) (*pagination.Page[models.Soup], error) {
	args := m.Called(ctx, userID, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*pagination.Page[models.Soup]), args.Error(1)
}

func (m *MockUserService) GetStarComments(ctx context.Context, userID uint, p pagination.Param) (*pagination.Page[models.Comment], error) {
	args := m.Called(ctx, userID, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*pagination.Page[models.Comment]), args.Error(1)
}

type testEnv struct {
	app      *fiber.App
	server   *Server
	soups    *MockSoupService
	comments *MockCommentService
	users    *MockUserService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	env := &testEnv{
		soups:    new(MockSoupService),
		comments: new(MockCommentService),
		users:    new(MockUserService),
	}
	env.server = &Server{
		config:   &config.Config{JWTSecret: testSecret},
		soups:    env.soups,
		comments: env.comments,
		users:    env.users,
	}
	env.app = fiber.New(fiber.Config{ErrorHandler: env.server.errorHandler})
	env.server.SetupRoutes(env.app)

	t.Cleanup(func() {
		env.soups.AssertExpectations(t)
		env.comments.AssertExpectations(t)
		env.users.AssertExpectations(t)
	})
	return env
}

func bearer(t *testing.T, userID uint) string {
	t.Helper()
	token, err := middleware.IssueToken(userID, testSecret, time.Now(), time.Hour)
	require.NoError(t, err)
	return "Bearer " + token
}

// do sends a request and returns the status and body. userID 0 sends no token.
func (e *testEnv) do(t *testing.T, method, path, body string, userID uint) (int, string) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if userID != 0 {
		req.Header.Set("Authorization", bearer(t, userID))
	}
	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(raw)
}
