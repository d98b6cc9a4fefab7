package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/pageza/devfolio/backend/internal/models"
	"github.com/pageza/devfolio/backend/internal/service"
	"github.com/pageza/devfolio/backend/internal/testhelpers"
	"github.com/pageza/devfolio/backend/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTechnologyLifecycle(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)
	svc := service.NewTechnologyService(db)
	ctx := context.Background()
	user, profile := testhelpers.CreateTestUser(t, db, "builder")

	created, err := svc.Create(ctx, user.ID, &types.TechnologyRequest{Name: "PostgreSQL"})
	require.NoError(t, err)
	assert.Equal(t, profile.ID, created.OwnerID)
	assert.Equal(t, models.TechnologyTag, created.Kind())

	updated, err := svc.Update(ctx, user.ID, created.ID, &types.TechnologyRequest{Name: "PostgreSQL", Description: "ten years in production"})
	require.NoError(t, err)
	assert.Equal(t, models.TechnologyMain, updated.Kind())

	list, err := svc.List(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "ten years in production", list[0].Description)

	deleted, err := svc.Delete(ctx, user.ID, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "PostgreSQL", deleted.Name)

	list, err = svc.List(ctx, user.ID)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestTechnologyOwnership(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)
	svc := service.NewTechnologyService(db)
	ctx := context.Background()

	_, owner := testhelpers.CreateTestUser(t, db, "owner")
	intruder, _ := testhelpers.CreateTestUser(t, db, "intruder")
	tech := testhelpers.CreateTestTechnology(t, db, owner, "Rust", "")

	_, err := svc.Update(ctx, intruder.ID, tech.ID, &types.TechnologyRequest{Name: "Hacked"})
	assert.ErrorIs(t, err, service.ErrTechnologyNotFound)

	_, err = svc.Delete(ctx, intruder.ID, tech.ID)
	assert.ErrorIs(t, err, service.ErrTechnologyNotFound)

	_, err = svc.Delete(ctx, intruder.ID, uuid.New())
	assert.ErrorIs(t, err, service.ErrTechnologyNotFound)

	var stored models.Technology
	require.NoError(t, db.First(&stored, "id = ?", tech.ID).Error)
	assert.Equal(t, "Rust", stored.Name)
}

func TestTechnologyWithoutProfile(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)
	svc := service.NewTechnologyService(db)

	_, err := svc.Create(context.Background(), uuid.New(), &types.TechnologyRequest{Name: "Go"})
	assert.ErrorIs(t, err, service.ErrProfileNotFound)
}
