package server

import (
	"net/http"
	"testing"

	"soupbox/internal/models"
	"soupbox/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestCommentStars(t *testing.T) {
	env := newTestEnv(t)
	env.comments.On("GetByID", mock.Anything, uint(2)).Return(&models.Comment{ID: 2}, nil).Times(3)
	env.comments.On("StarComment", mock.Anything, uint(2), uint(1)).Return(int64(1), nil).Once()
	env.comments.On("ToggleCommentStar", mock.Anything, uint(2), uint(1)).Return(int64(0), nil).Once()
	env.comments.On("UnStarComment", mock.Anything, uint(2), uint(1)).Return(int64(0), nil).Once()

	status, body := env.do(t, http.MethodPost, "/api/comments/2/star", "", 1)
	assert.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"count":1}`, body)

	status, body = env.do(t, http.MethodPost, "/api/comments/2/star/toggle", "", 1)
	assert.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"count":0}`, body)

	status, _ = env.do(t, http.MethodDelete, "/api/comments/2/star", "", 1)
	assert.Equal(t, http.StatusOK, status)
}

func TestCommentStars_Errors(t *testing.T) {
	env := newTestEnv(t)
	env.comments.On("GetByID", mock.Anything, uint(3)).Return(nil, models.NewNotFoundError("Comment", uint(3))).Once()
	env.comments.On("GetByID", mock.Anything, uint(2)).Return(&models.Comment{ID: 2}, nil).Once()
	env.comments.On("StarComment", mock.Anything, uint(2), uint(1)).
		Return(int64(0), models.NewForbiddenError(service.AlreadyStarredMessage)).Once()

	status, _ := env.do(t, http.MethodPost, "/api/comments/3/star", "", 1)
	assert.Equal(t, http.StatusNotFound, status)

	status, _ = env.do(t, http.MethodPost, "/api/comments/2/star", "", 1)
	assert.Equal(t, http.StatusForbidden, status)

	status, _ = env.do(t, http.MethodPost, "/api/comments/2/star", "", 0)
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestGetCommentStar(t *testing.T) {
	t.Run("anonymous is never starred", func(t *testing.T) {
		env := newTestEnv(t)
		env.comments.On("GetByID", mock.Anything, uint(2)).Return(&models.Comment{ID: 2}, nil).Once()
		env.comments.On("CommentStarCount", mock.Anything, uint(2)).Return(int64(4), nil).Once()

		status, body := env.do(t, http.MethodGet, "/api/comments/2/star", "", 0)
		assert.Equal(t, http.StatusOK, status)
		assert.JSONEq(t, `{"count":4,"starred":false}`, body)
	})

	t.Run("authenticated caller", func(t *testing.T) {
		env := newTestEnv(t)
		env.comments.On("GetByID", mock.Anything, uint(2)).Return(&models.Comment{ID: 2}, nil).Once()
		env.comments.On("CommentStarCount", mock.Anything, uint(2)).Return(int64(4), nil).Once()
		env.comments.On("IsCommentStarByUser", mock.Anything, uint(2), uint(7)).Return(true, nil).Once()

		status, body := env.do(t, http.MethodGet, "/api/comments/2/star", "", 7)
		assert.Equal(t, http.StatusOK, status)
		assert.JSONEq(t, `{"count":4,"starred":true}`, body)
	})

	t.Run("missing comment", func(t *testing.T) {
		env := newTestEnv(t)
		env.comments.On("GetByID", mock.Anything, uint(9)).Return(nil, models.NewNotFoundError("Comment", uint(9))).Once()

		status, _ := env.do(t, http.MethodGet, "/api/comments/9/star", "", 0)
		assert.Equal(t, http.StatusNotFound, status)
	})
}
