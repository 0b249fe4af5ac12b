package seed

import (
	"context"
	"testing"

	"soupbox/internal/database"
	"soupbox/internal/models"
	"soupbox/internal/observability"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	observability.RepoLogging = false

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, database.Migrate(db))
	return db
}

func count(t *testing.T, db *gorm.DB, model interface{}) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(model).Count(&n).Error)
	return n
}

func TestSeeder_Run(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	s := NewSeeder(db, 42)

	res, err := s.Run(ctx, Options{Users: 4, SoupsPerUser: 2, CommentsPerSoup: 2, StarPercent: 50})
	require.NoError(t, err)

	assert.Equal(t, 4, res.Users)
	assert.Equal(t, 8, res.Soups)
	assert.Equal(t, 16, res.Comments)
	assert.EqualValues(t, res.Users, count(t, db, &models.User{}))
	assert.EqualValues(t, res.Soups, count(t, db, &models.Soup{}))
	assert.EqualValues(t, res.Comments, count(t, db, &models.Comment{}))
	assert.EqualValues(t, res.SoupStars, count(t, db, &models.UserSoupStar{}))
	assert.EqualValues(t, res.CommentStars, count(t, db, &models.UserCommentStar{}))

	var u models.User
	require.NoError(t, db.First(&u).Error)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(DefaultPassword)))

	var soup models.Soup
	require.NoError(t, db.First(&soup).Error)
	assert.True(t, soup.CreatedAt.Equal(soup.UpdatedAt))
}

func TestSeeder_NoStars(t *testing.T) {
	db := setupTestDB(t)
	res, err := NewSeeder(db, 7).Run(context.Background(), Options{Users: 2, SoupsPerUser: 1})
	require.NoError(t, err)
	assert.Zero(t, res.SoupStars)
	assert.Zero(t, res.CommentStars)
	assert.Zero(t, res.Comments)
}

func TestSeeder_ClearAll(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	s := NewSeeder(db, 1)

	_, err := s.Run(ctx, Options{Users: 3, SoupsPerUser: 1, CommentsPerSoup: 1, StarPercent: 100})
	require.NoError(t, err)
	require.NoError(t, s.ClearAll(ctx))

	for _, m := range []interface{}{&models.User{}, &models.Soup{}, &models.Comment{}, &models.UserSoupStar{}, &models.UserCommentStar{}} {
		assert.Zero(t, count(t, db, m))
	}
}
