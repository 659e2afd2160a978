package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/it-helpdesk/internal/models"
	"github.com/yukikurage/it-helpdesk/internal/repository"
	"github.com/yukikurage/it-helpdesk/internal/testutil"
)

func TestLogin(t *testing.T) {
	db := testutil.NewDB(t)
	service := NewAuthService(repository.NewUserRepository(db))
	testutil.CreateITAdmin(t, db, "yara")
	testutil.CreateUser(t, db, "zed", func(u *models.User) { u.IsActive = false })

	user, err := service.Login(LoginInput{Username: "yara", Password: testutil.Password})
	require.NoError(t, err)
	assert.NotNil(t, user.LastLogin)
	assert.True(t, user.InGroup("IT Admin"))

	stored, err := service.GetUser(user.ID)
	require.NoError(t, err)
	assert.NotNil(t, stored.LastLogin)

	_, err = service.Login(LoginInput{Username: "yara", Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = service.Login(LoginInput{Username: "nobody", Password: testutil.Password})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = service.Login(LoginInput{Username: "zed", Password: testutil.Password})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestListAssignableUsers_SkipsInactive(t *testing.T) {
	db := testutil.NewDB(t)
	service := NewAuthService(repository.NewUserRepository(db))
	testutil.CreateUser(t, db, "bea")
	testutil.CreateUser(t, db, "al")
	testutil.CreateUser(t, db, "gone", func(u *models.User) { u.IsActive = false })

	users, err := service.ListAssignableUsers()
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "al", users[0].Username)

	_, err = service.GetUser(12345)
	assert.ErrorIs(t, err, ErrUserNotFound)
}
