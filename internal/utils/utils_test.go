package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
DB_HOST: db.internal
DB_NAME: shopping
JWT_SECRET: from-yaml
RATE_LIMIT_MAX: 25
SMTP_PORT: "587"
`), 0o600))

	t.Setenv("JWT_SECRET", "from-env")
	t.Setenv("REDIS_DB", "3")

	LoadConfigFile(path)

	assert.Equal(t, "db.internal", GetConfig("DB_HOST"))
	assert.Equal(t, "shopping", GetConfig("DB_NAME"))
	assert.Equal(t, "from-env", GetConfig("JWT_SECRET"))
	assert.Equal(t, "587", GetConfig("SMTP_PORT"))
	assert.Equal(t, 25, GetConfigInt("RATE_LIMIT_MAX", 10))
	assert.Equal(t, 3, GetConfigInt("REDIS_DB", 0))
	assert.Equal(t, "5432", GetConfig("DB_PORT"))
	assert.Equal(t, "8080", GetConfig("APP_PORT"))
	assert.Equal(t, "", GetConfig("UNKNOWN"))
}

func TestLoadConfigFile_MissingFileKeepsDefaults(t *testing.T) {
	t.Setenv("RATE_LIMIT_MAX", "not-a-number")
	t.Setenv("JWT_SECRET", "")

	LoadConfigFile(filepath.Join(t.TempDir(), "missing.yaml"))

	assert.Equal(t, "info", GetConfig("LOG_LEVEL"))
	assert.Equal(t, 10, GetConfigInt("RATE_LIMIT_MAX", 0))
	assert.Equal(t, 7, GetConfigInt("SMTP_PORT", 7))
}

func TestValidator_ShoppingCategory(t *testing.T) {
	v := NewValidator()

	type req struct {
		Category string  `validate:"omitempty,shopping_category"`
		Optional *string `validate:"omitempty,shopping_category"`
	}

	assert.NoError(t, v.Struct(req{}))
	assert.NoError(t, v.Struct(req{Category: "Produce"}))
	assert.NoError(t, v.Struct(req{Category: "personal care"}))
	assert.Error(t, v.Struct(req{Category: "Toys"}))

	bad := "Toys"
	assert.Error(t, v.Struct(req{Optional: &bad}))
}
