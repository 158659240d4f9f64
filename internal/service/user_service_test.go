package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scward0/SaveHaven/internal/apperr"
	"github.com/scward0/SaveHaven/internal/model"
	"github.com/scward0/SaveHaven/internal/store"
)

func TestMeFallsBackToClaims(t *testing.T) {
	svc := NewUserService(store.NewMemoryStore())

	user, err := svc.Me(testContext("u1"))
	require.NoError(t, err)

	assert.Equal(t, "u1", user.Uid)
	assert.Equal(t, "u1@test.com", user.Email)
	assert.Equal(t, "Test User", user.Username)
}

func TestMePrefersProfileDocument(t *testing.T) {
	mem := store.NewMemoryStore()
	require.NoError(t, mem.PutUser(context.Background(), &model.User{
		Uid:      "u1",
		Username: "saver_sam",
		Email:    "u1@test.com",
	}))
	svc := NewUserService(mem)

	user, err := svc.Me(testContext("u1"))
	require.NoError(t, err)
	assert.Equal(t, "saver_sam", user.Username)
}

func TestUpdateProfile(t *testing.T) {
	mem := store.NewMemoryStore()
	svc := NewUserService(mem)

	user, err := svc.UpdateProfile(testContext("u1"), "frugal_fran")
	require.NoError(t, err)
	assert.Equal(t, "u1", user.Uid, "uid comes from the verified identity")
	assert.Equal(t, "frugal_fran", user.Username)

	stored, err := mem.GetUser(context.Background(), "u1")
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, "frugal_fran", stored.Username)
}

func TestUpdateProfileValidation(t *testing.T) {
	svc := NewUserService(store.NewMemoryStore())

	_, err := svc.UpdateProfile(testContext("u1"), "")
	assert.Equal(t, apperr.CodeInvalidArgument, apperr.CodeOf(err))

	_, err = svc.UpdateProfile(context.Background(), "name")
	assert.Equal(t, apperr.CodeUnauthenticated, apperr.CodeOf(err))
}
