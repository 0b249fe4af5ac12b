package config

import (
	"os"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validProductionConfig() *Config {
	return &Config{
		Env:                "production",
		Port:               "8375",
		DBDriver:           "postgres",
		DBSSLMode:          "require",
		DBPassword:         "secure-password",
		JWTSecret:          "secure-secret-at-least-32-chars-long",
		TracingSampleRatio: 1,
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(c *Config)
		expectError bool
	}{
		{"valid production", func(c *Config) {}, false},
		{"missing port", func(c *Config) { c.Port = "" }, true},
		{"missing jwt secret", func(c *Config) { c.JWTSecret = "" }, true},
		{"default jwt secret in production", func(c *Config) { c.JWTSecret = defaultJWTSecret }, true},
		{"short jwt secret in production", func(c *Config) { c.JWTSecret = "short" }, true},
		{"short jwt secret in development", func(c *Config) { c.Env = "development"; c.JWTSecret = "short" }, false},
		{"production ssl disabled", func(c *Config) { c.DBSSLMode = "disable" }, true},
		{"prod ssl empty", func(c *Config) { c.Env = "prod"; c.DBSSLMode = "" }, true},
		{"production default db password", func(c *Config) { c.DBPassword = "password" }, true},
		{"sqlite in production", func(c *Config) { c.DBDriver = "sqlite"; c.DBSQLitePath = "x.db" }, true},
		{"sqlite in test", func(c *Config) { c.Env = "test"; c.DBDriver = "sqlite"; c.DBSQLitePath = ":memory:" }, false},
		{"sqlite without path", func(c *Config) { c.Env = "test"; c.DBDriver = "sqlite"; c.DBSQLitePath = "" }, true},
		{"unknown driver", func(c *Config) { c.DBDriver = "mysql" }, true},
		{"sample ratio above one", func(c *Config) { c.TracingSampleRatio = 1.5 }, true},
		{"negative sample ratio", func(c *Config) { c.TracingSampleRatio = -0.1 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := validProductionConfig()
			tt.mutate(c)

			err := c.Validate()
			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestLoadConfig_Normalization(t *testing.T) {
	defer viper.Reset()
	t.Setenv("APP_ENV", "development")
	t.Setenv("DB_SSLMODE", "  DISABLE  ")
	t.Setenv("DB_DRIVER", " SQLite ")
	t.Setenv("DB_SQLITE_PATH", ":memory:")

	c, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "disable", c.DBSSLMode)
	assert.Equal(t, "sqlite", c.DBDriver)
	assert.Equal(t, ":memory:", c.DBSQLitePath)
}

func TestLoadConfig_Defaults(t *testing.T) {
	defer viper.Reset()
	t.Setenv("APP_ENV", "test")
	os.Unsetenv("PORT")

	c, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "8375", c.Port)
	assert.Equal(t, "postgres", c.DBDriver)
	assert.False(t, c.TracingEnabled)
	assert.Equal(t, 1.0, c.TracingSampleRatio)
	assert.False(t, c.IsProduction())
}

func TestLoadConfig_RedisOptional(t *testing.T) {
	defer viper.Reset()
	t.Setenv("APP_ENV", "test")
	t.Setenv("REDIS_URL", "")
	os.Unsetenv("REDIS_URL")

	c, err := LoadConfig()
	require.NoError(t, err)
	assert.Empty(t, c.RedisURL)

	viper.Reset()
	t.Setenv("REDIS_URL", "redis://cache:6379/0")
	c, err = LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "redis://cache:6379/0", c.RedisURL)
}
