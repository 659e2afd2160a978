package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/it-helpdesk/internal/auth"
	"github.com/yukikurage/it-helpdesk/internal/models"
	"github.com/yukikurage/it-helpdesk/internal/repository"
	"github.com/yukikurage/it-helpdesk/internal/testutil"
)

func TestSeedEmployees_Idempotent(t *testing.T) {
	db := testutil.NewDB(t)
	service := NewAccountService(repository.NewUserRepository(db))
	testutil.CreateUser(t, db, "emp3")

	first, err := service.SeedEmployees(DefaultEmployeeAccounts())
	require.NoError(t, err)
	assert.Len(t, first.Created, 9)
	assert.Equal(t, []string{"emp3"}, first.Skipped)

	second, err := service.SeedEmployees(DefaultEmployeeAccounts())
	require.NoError(t, err)
	assert.Empty(t, second.Created)
	assert.Len(t, second.Skipped, 10)

	var count int64
	require.NoError(t, db.Model(&models.User{}).Where("username LIKE ?", "emp%").Count(&count).Error)
	assert.Equal(t, int64(10), count)
}

func TestSeededEmployeeCanLogIn(t *testing.T) {
	db := testutil.NewDB(t)
	users := repository.NewUserRepository(db)
	_, err := NewAccountService(users).SeedEmployees(DefaultEmployeeAccounts()[:1])
	require.NoError(t, err)

	user, err := NewAuthService(users).Login(LoginInput{Username: "emp1", Password: "Emp@12345"})
	require.NoError(t, err)
	assert.False(t, auth.IsAdmin(user))
}

func TestCreateAdmin(t *testing.T) {
	db := testutil.NewDB(t)
	users := repository.NewUserRepository(db)
	service := NewAccountService(users)

	created, err := service.CreateAdmin(AdminInput{Username: "", Password: "x"})
	require.NoError(t, err)
	assert.False(t, created)

	created, err = service.CreateAdmin(AdminInput{Username: "root", Password: "s3cret", Email: "root@example.com"})
	require.NoError(t, err)
	assert.True(t, created)

	created, err = service.CreateAdmin(AdminInput{Username: "root", Password: "other"})
	require.NoError(t, err)
	assert.False(t, created)

	user, err := users.FindByUsername("root")
	require.NoError(t, err)
	assert.True(t, user.IsSuperuser)
	assert.True(t, auth.IsAdmin(user))
	assert.Equal(t, "root@example.com", user.Email)
}

func TestEnsureAdminGroup(t *testing.T) {
	db := testutil.NewDB(t)
	service := NewAccountService(repository.NewUserRepository(db))

	first, err := service.EnsureAdminGroup()
	require.NoError(t, err)
	second, err := service.EnsureAdminGroup()
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
}

func TestGrantAdmin(t *testing.T) {
	db := testutil.NewDB(t)
	users := repository.NewUserRepository(db)
	service := NewAccountService(users)
	testutil.CreateUser(t, db, "alice")

	_, err := service.GrantAdmin("nobody")
	assert.ErrorIs(t, err, ErrUserNotFound)

	_, err = service.GrantAdmin("alice")
	require.NoError(t, err)
	_, err = service.GrantAdmin("alice")
	require.NoError(t, err)

	user, err := users.FindByUsername("alice")
	require.NoError(t, err)
	assert.True(t, auth.IsAdmin(user))
	assert.Len(t, user.Groups, 1)
}
