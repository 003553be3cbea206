package controller

import (
	"errors"
	"net/http"

	"github.com/beanvanilla/storefront-backend/internal/app/model"
	"github.com/beanvanilla/storefront-backend/internal/app/service"
	apperrors "github.com/beanvanilla/storefront-backend/internal/errors"
	"github.com/beanvanilla/storefront-backend/internal/middleware"
	"github.com/beanvanilla/storefront-backend/pkg/util"
	"github.com/gin-gonic/gin"
)

type UserController struct {
	authService service.AuthService
}

func NewUserController(authService service.AuthService) *UserController {
	return &UserController{
		authService: authService,
	}
}

type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type UpdateProfileRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email" binding:"omitempty,email"`
	Password string `json:"password" binding:"omitempty,min=6"`
}

// credentials is the payload the storefront keeps as userInfo.
func credentials(user *model.User, tokens *util.TokenPair) gin.H {
	body := gin.H{
		"_id":     user.ID,
		"name":    user.Name,
		"email":   user.Email,
		"isAdmin": user.IsAdmin(),
	}
	if tokens != nil {
		body["token"] = tokens.AccessToken
		body["refreshToken"] = tokens.RefreshToken
	}
	return body
}

// Register handles user registration
// POST /api/users
func (ctrl *UserController) Register(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid registration request", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Name, a valid email and a password of at least 6 characters are required")
		return
	}

	user, tokens, err := ctrl.authService.Register(req.Name, req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmailAlreadyExists):
			apperrors.Conflict(c, apperrors.AuthEmailAlreadyExists, "User already exists")
		case errors.Is(err, service.ErrWeakPassword):
			apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Password must be at least 6 characters")
		default:
			log.Error("Registration failed", err, map[string]interface{}{
				"email": req.Email,
			})
			apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "register user")
		}
		return
	}

	c.JSON(http.StatusCreated, credentials(user, tokens))
}

// Login handles user login
// POST /api/users/login
func (ctrl *UserController) Login(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid login request", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Email and password are required")
		return
	}

	user, tokens, err := ctrl.authService.Login(req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			apperrors.RespondWithError(c, http.StatusUnauthorized, apperrors.AuthInvalidCredentials, "Invalid email or password")
			return
		}
		log.Error("Login failed", err)
		apperrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, credentials(user, tokens))
}

// Logout revokes the presented token when a blacklist is configured
// POST /api/users/logout
func (ctrl *UserController) Logout(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	if err := ctrl.authService.Logout(c.Request.Context(), middleware.GetToken(c)); err != nil {
		log.Error("Logout failed", err)
		apperrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Logged out successfully"})
}

// GetProfile returns the signed-in user
// GET /api/users/profile
func (ctrl *UserController) GetProfile(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		apperrors.Unauthorized(c, "")
		return
	}

	user, err := ctrl.authService.GetUserByID(userID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			apperrors.NotFound(c, apperrors.ResourceNotFound, "User not found")
			return
		}
		middleware.GetLoggerFromContext(c).Error("Failed to load profile", err)
		apperrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, credentials(user, nil))
}

// UpdateProfile changes name, email or password and returns new credentials
// PUT /api/users/profile
func (ctrl *UserController) UpdateProfile(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, ok := middleware.GetUserID(c)
	if !ok {
		apperrors.Unauthorized(c, "")
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid profile update request", map[string]interface{}{
			"user_id": userID,
			"error":   err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Please check the profile fields")
		return
	}

	user, tokens, err := ctrl.authService.UpdateProfile(userID, service.ProfileUpdate{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			apperrors.NotFound(c, apperrors.ResourceNotFound, "User not found")
		case errors.Is(err, service.ErrEmailAlreadyExists):
			apperrors.Conflict(c, apperrors.AuthEmailAlreadyExists, "Email is already in use")
		case errors.Is(err, service.ErrWeakPassword):
			apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Password must be at least 6 characters")
		default:
			log.Error("Profile update failed", err, map[string]interface{}{
				"user_id": userID,
			})
			apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "update profile")
		}
		return
	}

	c.JSON(http.StatusOK, credentials(user, tokens))
}
