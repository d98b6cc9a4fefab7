package database

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/pageza/devfolio/backend/config"
	"github.com/pageza/devfolio/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSQLiteAndMigrate(t *testing.T) {
	t.Setenv("ENV", "test")
	cfg := &config.Config{
		DBDriver:   "sqlite",
		SQLitePath: filepath.Join(t.TempDir(), "devfolio.db"),
	}

	db, err := New(cfg)
	require.NoError(t, err)

	require.NoError(t, RunMigrations(db, "does-not-matter-on-sqlite"))
	for _, m := range models.All() {
		assert.True(t, db.Migrator().HasTable(m))
	}

	user := models.User{Username: "alice", PasswordHash: "x"}
	require.NoError(t, db.Create(&user).Error)
	assert.NotEqual(t, "", user.ID.String())

	// Running twice is a no-op
	require.NoError(t, RunMigrations(db, ""))
}

func TestPostgresDSN(t *testing.T) {
	cfg := &config.Config{
		DBHost: "db", DBPort: "5432", DBUser: "u", DBPassword: "p", DBName: "n", DBSSLMode: "require",
	}
	assert.Equal(t, "host=db port=5432 user=u password=p dbname=n sslmode=require", PostgresDSN(cfg))
}

func TestNewRedisClientDisabled(t *testing.T) {
	client, err := NewRedisClient(context.Background(), &config.Config{})
	assert.NoError(t, err)
	assert.Nil(t, client)
}
