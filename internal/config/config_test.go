package config

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validTestConfig() *Config {
	return &Config{
		JWTSecret:    "a-sufficiently-long-secret-for-tests",
		Port:         "8480",
		DBPassword:   "not-the-default",
		DBSSLMode:    "require",
		DBSchemaMode: "hybrid",
		Env:          "development",
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{"Valid development", func(c *Config) {}, ""},
		{"Missing port", func(c *Config) { c.Port = "" }, "PORT is required"},
		{"Missing JWT secret", func(c *Config) { c.JWTSecret = "" }, "JWT_SECRET is required"},
		{
			"Production with default JWT secret",
			func(c *Config) {
				c.Env = "production"
				c.JWTSecret = "your-secret-key-change-in-production"
			},
			"must be changed from the default",
		},
		{
			"Production with short JWT secret",
			func(c *Config) {
				c.Env = "prod"
				c.JWTSecret = "too-short"
			},
			"at least 32 characters",
		},
		{
			"Production with default DB password",
			func(c *Config) {
				c.Env = "production"
				c.DBPassword = "password"
			},
			"strong DB_PASSWORD",
		},
		{
			"Production with empty DB password",
			func(c *Config) {
				c.Env = "production"
				c.DBPassword = ""
			},
			"strong DB_PASSWORD",
		},
		{
			"Valid production",
			func(c *Config) { c.Env = "production" },
			"",
		},
		{
			// Short secrets only warn outside production.
			"Development with short JWT secret",
			func(c *Config) { c.JWTSecret = "short" },
			"",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := validTestConfig()
			tt.mutate(c)

			err := c.Validate()
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestConfig_ValidateSchemaMode(t *testing.T) {
	tests := []struct {
		mode    string
		wantErr bool
	}{
		{"sql", false},
		{"auto", false},
		{"hybrid", false},
		{"HYBRID", false},
		{"  sql  ", false},
		{"", false},
		{"automigrate", true},
		{"yes", true},
	}

	for _, tt := range tests {
		t.Run("mode "+tt.mode, func(t *testing.T) {
			c := validTestConfig()
			c.DBSchemaMode = tt.mode

			err := c.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "DB_SCHEMA_MODE")
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)
	t.Setenv("APP_ENV", "development")

	c, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8480", c.Port)
	assert.Equal(t, "development", c.Env)
	assert.Equal(t, "hybrid", c.DBSchemaMode)
	assert.False(t, c.AllowRerequest)
	assert.False(t, c.DBAutoMigrateAllowDestructive)
	assert.Empty(t, c.FeatureFlags)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)
	t.Setenv("APP_ENV", "development")
	t.Setenv("CONNECTIONS_ALLOW_REREQUEST", "true")
	t.Setenv("DB_SCHEMA_MODE", "sql")
	t.Setenv("FEATURE_FLAGS", "beta_dock=on")

	c, err := LoadConfig()
	require.NoError(t, err)

	assert.True(t, c.AllowRerequest)
	assert.Equal(t, "sql", c.DBSchemaMode)
	assert.Equal(t, "beta_dock=on", c.FeatureFlags)
}
