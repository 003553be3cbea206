package repository

import (
	"testing"

	"github.com/beanvanilla/storefront-backend/internal/app/model"
	"github.com/beanvanilla/storefront-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupUserTest(t *testing.T) (*gorm.DB, UserRepository) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)

	return testDB, NewUserRepository(testDB)
}

func TestUserRepository_Create(t *testing.T) {
	testDB, repo := setupUserTest(t)
	defer db.CleanupTestDB(testDB)

	tests := []struct {
		name    string
		user    *model.User
		wantErr bool
	}{
		{
			name: "Valid user",
			user: &model.User{
				Email:        "test@example.com",
				PasswordHash: "hashedpassword",
				Name:         "Test User",
				Role:         model.RoleUser,
			},
			wantErr: false,
		},
		{
			name: "Duplicate email",
			user: &model.User{
				Email:        "test@example.com",
				PasswordHash: "hashedpassword",
				Name:         "Another User",
				Role:         model.RoleUser,
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := repo.Create(tt.user)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.NotZero(t, tt.user.ID)
			}
		})
	}
}

func TestUserRepository_FindByID(t *testing.T) {
	testDB, repo := setupUserTest(t)
	defer db.CleanupTestDB(testDB)

	user := &model.User{
		Email:        "test@example.com",
		PasswordHash: "hashedpassword",
		Name:         "Test User",
		Role:         model.RoleAdmin,
	}
	require.NoError(t, repo.Create(user))

	found, err := repo.FindByID(user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.Email, found.Email)
	assert.True(t, found.IsAdmin())

	found, err = repo.FindByID(9999)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	assert.Nil(t, found)
}

func TestUserRepository_FindByEmail(t *testing.T) {
	testDB, repo := setupUserTest(t)
	defer db.CleanupTestDB(testDB)

	user := &model.User{
		Email:        "test@example.com",
		PasswordHash: "hashedpassword",
		Name:         "Test User",
	}
	require.NoError(t, repo.Create(user))

	found, err := repo.FindByEmail("test@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, found.ID)
	assert.Equal(t, model.RoleUser, found.Role)

	_, err = repo.FindByEmail("nobody@example.com")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestUserRepository_Update(t *testing.T) {
	testDB, repo := setupUserTest(t)
	defer db.CleanupTestDB(testDB)

	user := &model.User{
		Email:        "test@example.com",
		PasswordHash: "hashedpassword",
		Name:         "Test User",
	}
	require.NoError(t, repo.Create(user))

	user.Name = "Renamed User"
	require.NoError(t, repo.Update(user))

	found, err := repo.FindByID(user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Renamed User", found.Name)
}

func TestUserRepository_Delete(t *testing.T) {
	testDB, repo := setupUserTest(t)
	defer db.CleanupTestDB(testDB)

	user := &model.User{
		Email:        "test@example.com",
		PasswordHash: "hashedpassword",
		Name:         "Test User",
	}
	require.NoError(t, repo.Create(user))
	require.NoError(t, repo.Delete(user.ID))

	_, err := repo.FindByID(user.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
