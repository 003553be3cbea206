package controller

import (
	"net/http"
	"testing"
	"time"

	"github.com/beanvanilla/storefront-backend/internal/app/repository"
	"github.com/beanvanilla/storefront-backend/internal/app/service"
	"github.com/beanvanilla/storefront-backend/internal/db"
	apperrors "github.com/beanvanilla/storefront-backend/internal/errors"
	"github.com/beanvanilla/storefront-backend/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupUserControllerTest(t *testing.T) *gin.Engine {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	authService := service.NewAuthService(repository.NewUserRepository(testDB), testJWTSecret, time.Hour, 24*time.Hour)
	ctrl := NewUserController(authService)
	auth := middleware.NewAuthMiddleware(testJWTSecret)

	router := gin.New()
	users := router.Group("/api/users")
	users.POST("", ctrl.Register)
	users.POST("/login", ctrl.Login)
	users.POST("/logout", auth.OptionalAuthenticate(), ctrl.Logout)
	users.GET("/profile", auth.Authenticate(), ctrl.GetProfile)
	users.PUT("/profile", auth.Authenticate(), ctrl.UpdateProfile)
	return router
}

type credentialsBody struct {
	ID           uint   `json:"_id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	IsAdmin      bool   `json:"isAdmin"`
	Token        string `json:"token"`
	RefreshToken string `json:"refreshToken"`
}

func register(t *testing.T, router *gin.Engine, name, email, password string) credentialsBody {
	t.Helper()
	w := performRequest(router, http.MethodPost, "/api/users", gin.H{
		"name": name, "email": email, "password": password,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var creds credentialsBody
	decodeBody(t, w, &creds)
	return creds
}

func TestUserController_Register(t *testing.T) {
	router := setupUserControllerTest(t)

	creds := register(t, router, "Ada", "Ada@Example.com", "secret1")
	assert.NotZero(t, creds.ID)
	assert.Equal(t, "ada@example.com", creds.Email)
	assert.False(t, creds.IsAdmin)
	assert.NotEmpty(t, creds.Token)
	assert.NotEmpty(t, creds.RefreshToken)

	t.Run("duplicate email", func(t *testing.T) {
		w := performRequest(router, http.MethodPost, "/api/users", gin.H{
			"name": "Ada again", "email": "ada@example.com", "password": "secret1",
		})
		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Equal(t, apperrors.AuthEmailAlreadyExists, errorCode(t, w))
	})

	tests := []struct {
		name string
		body gin.H
	}{
		{"missing name", gin.H{"email": "x@example.com", "password": "secret1"}},
		{"bad email", gin.H{"name": "X", "email": "not-an-email", "password": "secret1"}},
		{"short password", gin.H{"name": "X", "email": "x@example.com", "password": "123"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := performRequest(router, http.MethodPost, "/api/users", tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, apperrors.ValidationInvalidInput, errorCode(t, w))
		})
	}
}

func TestUserController_Login(t *testing.T) {
	router := setupUserControllerTest(t)
	register(t, router, "Grace", "grace@example.com", "hopper1")

	w := performRequest(router, http.MethodPost, "/api/users/login", gin.H{
		"email": "grace@example.com", "password": "hopper1",
	})
	require.Equal(t, http.StatusOK, w.Code)
	var creds credentialsBody
	decodeBody(t, w, &creds)
	assert.Equal(t, "Grace", creds.Name)
	assert.NotEmpty(t, creds.Token)

	w = performRequest(router, http.MethodPost, "/api/users/login", gin.H{
		"email": "grace@example.com", "password": "wrong-password",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, apperrors.AuthInvalidCredentials, errorCode(t, w))

	w = performRequest(router, http.MethodPost, "/api/users/login", gin.H{"email": "grace@example.com"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUserController_Profile(t *testing.T) {
	router := setupUserControllerTest(t)
	creds := register(t, router, "Linus", "linus@example.com", "penguin")
	auth := map[string]string{"Authorization": "Bearer " + creds.Token}

	w := performRequest(router, http.MethodGet, "/api/users/profile", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = performRequest(router, http.MethodGet, "/api/users/profile", nil, auth)
	require.Equal(t, http.StatusOK, w.Code)
	var profile credentialsBody
	decodeBody(t, w, &profile)
	assert.Equal(t, creds.ID, profile.ID)
	assert.Empty(t, profile.Token)

	w = performRequest(router, http.MethodPut, "/api/users/profile", gin.H{"name": "Linus T"}, auth)
	require.Equal(t, http.StatusOK, w.Code)
	var updated credentialsBody
	decodeBody(t, w, &updated)
	assert.Equal(t, "Linus T", updated.Name)
	assert.Equal(t, "linus@example.com", updated.Email)
	assert.NotEmpty(t, updated.Token)

	w = performRequest(router, http.MethodPut, "/api/users/profile", gin.H{"password": "123"}, auth)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = performRequest(router, http.MethodPost, "/api/users/logout", nil, auth)
	assert.Equal(t, http.StatusOK, w.Code)
}
