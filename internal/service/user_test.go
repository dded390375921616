package service

import (
	"context"
	"strings"
	"testing"

	"projecthub/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestUserService(repo *stubUserRepository, store *stubStorage) UserService {
	return NewUserService(repo, store, zap.NewNop())
}

func seedUser(t *testing.T, repo *stubUserRepository) string {
	t.Helper()
	svc := newTestAuthService(repo)
	id, err := svc.Register(registerInput())
	require.NoError(t, err)
	return id
}

func TestUpdateWithImage_PartialFields(t *testing.T) {
	repo := newStubUserRepository()
	svc := newTestUserService(repo, newStubStorage())
	id := seedUser(t, repo)

	email := "NEW@EX.Com"
	upd := &models.UserUpdate{Email: &email}
	err := svc.UpdateWithImage(context.Background(), id, upd, nil)
	require.NoError(t, err)

	recorded := repo.updates[id]
	require.NotNil(t, recorded)
	require.NotNil(t, recorded.Email)
	assert.Equal(t, "new@ex.com", *recorded.Email)
	assert.Nil(t, recorded.FirstName)
	assert.Nil(t, recorded.Username)
	assert.Nil(t, recorded.IsDeleted)
	assert.Nil(t, recorded.ProfilePicture)
}

func TestUpdateWithImage_UnknownUser(t *testing.T) {
	repo := newStubUserRepository()
	svc := newTestUserService(repo, newStubStorage())

	name := "Jane"
	err := svc.UpdateWithImage(context.Background(), "8f4f9f2e-0000-4000-8000-000000000000",
		&models.UserUpdate{FirstName: &name}, nil)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateWithImage_InvalidRole(t *testing.T) {
	repo := newStubUserRepository()
	svc := newTestUserService(repo, newStubStorage())
	id := seedUser(t, repo)

	role := "OVERLORD"
	err := svc.UpdateWithImage(context.Background(), id, &models.UserUpdate{Role: &role}, nil)
	assert.ErrorIs(t, err, ErrInvalidRole)
}

func TestUpdateWithImage_StoresProfilePicture(t *testing.T) {
	repo := newStubUserRepository()
	store := newStubStorage()
	svc := newTestUserService(repo, store)
	id := seedUser(t, repo)

	files := makeFileHeaders(t, "avatar.png")
	err := svc.UpdateWithImage(context.Background(), id, &models.UserUpdate{}, files[0])
	require.NoError(t, err)

	require.Len(t, store.saved, 1)
	recorded := repo.updates[id]
	require.NotNil(t, recorded)
	require.NotNil(t, recorded.ProfilePicture)
	assert.True(t, strings.HasPrefix(*recorded.ProfilePicture, "/uploads/"))
	assert.True(t, strings.HasSuffix(*recorded.ProfilePicture, "_avatar.png"))
}

func TestList_EmptyPageIsNotAnError(t *testing.T) {
	repo := newStubUserRepository()
	svc := newTestUserService(repo, newStubStorage())
	seedUser(t, repo)

	users, err := svc.List(5, 10)
	require.NoError(t, err)
	assert.Empty(t, users)
}

func TestList_OffsetWindow(t *testing.T) {
	repo := newStubUserRepository()
	authSvc := newTestAuthService(repo)
	for _, name := range []string{"alice", "bob", "carol"} {
		_, err := authSvc.Register(&RegisterInput{
			FirstName: name,
			Username:  name,
			Email:     name + "@ex.com",
			Password:  "pw",
		})
		require.NoError(t, err)
	}

	svc := newTestUserService(repo, newStubStorage())
	users, err := svc.List(2, 2)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "carol", users[0].Username)
}
