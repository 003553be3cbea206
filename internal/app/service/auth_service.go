package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/beanvanilla/storefront-backend/internal/app/model"
	"github.com/beanvanilla/storefront-backend/internal/app/repository"
	"github.com/beanvanilla/storefront-backend/pkg/logger"
	"github.com/beanvanilla/storefront-backend/pkg/util"
	"gorm.io/gorm"
)

var (
	ErrEmailAlreadyExists = errors.New("email already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserNotFound       = errors.New("user not found")
	ErrWeakPassword       = errors.New("password is too short")
)

// TokenBlacklist revokes tokens before they expire.
type TokenBlacklist interface {
	BlacklistToken(ctx context.Context, token string, expiry time.Duration) error
	IsTokenBlacklisted(ctx context.Context, token string) (bool, error)
}

// ProfileUpdate carries the fields a user may change. Empty fields are left as they are.
type ProfileUpdate struct {
	Name     string
	Email    string
	Password string
}

type AuthService interface {
	Register(name, email, password string) (*model.User, *util.TokenPair, error)
	Login(email, password string) (*model.User, *util.TokenPair, error)
	Logout(ctx context.Context, token string) error
	GetUserByID(id uint) (*model.User, error)
	UpdateProfile(userID uint, update ProfileUpdate) (*model.User, *util.TokenPair, error)
}

type authService struct {
	userRepo      repository.UserRepository
	jwtSecret     string
	accessExpiry  time.Duration
	refreshExpiry time.Duration
	blacklist     TokenBlacklist
}

func NewAuthService(
	userRepo repository.UserRepository,
	jwtSecret string,
	accessExpiry, refreshExpiry time.Duration,
	blacklist ...TokenBlacklist,
) AuthService {
	var bl TokenBlacklist
	if len(blacklist) > 0 {
		bl = blacklist[0]
	}
	return &authService{
		userRepo:      userRepo,
		jwtSecret:     jwtSecret,
		accessExpiry:  accessExpiry,
		refreshExpiry: refreshExpiry,
		blacklist:     bl,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *authService) issueTokens(user *model.User) (*util.TokenPair, error) {
	tokens, err := util.GenerateTokenPair(
		user.ID,
		user.Email,
		string(user.Role),
		s.jwtSecret,
		s.accessExpiry,
		s.refreshExpiry,
	)
	if err != nil {
		logger.Error("Failed to generate tokens", err, map[string]interface{}{
			"user_id": user.ID,
		})
		return nil, err
	}
	return tokens, nil
}

// emailTaken reports whether email belongs to a user other than exceptID.
func (s *authService) emailTaken(email string, exceptID uint) (bool, error) {
	existing, err := s.userRepo.FindByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		logger.Error("Failed to check existing user", err, map[string]interface{}{
			"email": email,
		})
		return false, err
	}
	return existing.ID != exceptID, nil
}

func (s *authService) Register(name, email, password string) (*model.User, *util.TokenPair, error) {
	email = normalizeEmail(email)
	logger.Info("Attempting user registration", map[string]interface{}{
		"email": email,
		"name":  name,
	})

	if !util.ValidatePassword(password) {
		return nil, nil, ErrWeakPassword
	}

	taken, err := s.emailTaken(email, 0)
	if err != nil {
		return nil, nil, err
	}
	if taken {
		logger.Warn("Registration failed: email already exists", map[string]interface{}{
			"email": email,
		})
		return nil, nil, ErrEmailAlreadyExists
	}

	hashedPassword, err := util.HashPassword(password)
	if err != nil {
		logger.Error("Failed to hash password", err, map[string]interface{}{
			"email": email,
		})
		return nil, nil, err
	}

	user := &model.User{
		Name:         strings.TrimSpace(name),
		Email:        email,
		PasswordHash: hashedPassword,
		Role:         model.RoleUser,
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, nil, err
	}

	tokens, err := s.issueTokens(user)
	if err != nil {
		return nil, nil, err
	}

	logger.Info("User registered successfully", map[string]interface{}{
		"user_id": user.ID,
		"email":   email,
	})
	return user, tokens, nil
}

func (s *authService) Login(email, password string) (*model.User, *util.TokenPair, error) {
	email = normalizeEmail(email)
	logger.Info("Login attempt", map[string]interface{}{
		"email": email,
	})

	user, err := s.userRepo.FindByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Login failed: user not found", map[string]interface{}{
				"email": email,
			})
			return nil, nil, ErrInvalidCredentials
		}
		return nil, nil, err
	}

	if !util.VerifyPassword(user.PasswordHash, password) {
		logger.Warn("Login failed: invalid password", map[string]interface{}{
			"user_id": user.ID,
		})
		return nil, nil, ErrInvalidCredentials
	}

	tokens, err := s.issueTokens(user)
	if err != nil {
		return nil, nil, err
	}

	logger.Info("User logged in successfully", map[string]interface{}{
		"user_id": user.ID,
		"role":    user.Role,
	})
	return user, tokens, nil
}

// Logout revokes token for the rest of its lifetime. Without a blacklist, or
// for a token that no longer validates, there is nothing to revoke.
func (s *authService) Logout(ctx context.Context, token string) error {
	if s.blacklist == nil || token == "" {
		return nil
	}

	claims, err := util.ValidateToken(token, s.jwtSecret)
	if err != nil {
		return nil
	}

	if err := s.blacklist.BlacklistToken(ctx, token, claims.RemainingValidity(time.Now())); err != nil {
		logger.Error("Failed to revoke token on logout", err, map[string]interface{}{
			"user_id": claims.UserID,
		})
		return err
	}

	logger.Info("User logged out", map[string]interface{}{
		"user_id": claims.UserID,
	})
	return nil
}

func (s *authService) GetUserByID(id uint) (*model.User, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("User not found", map[string]interface{}{
				"user_id": id,
			})
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// UpdateProfile applies update and returns fresh credentials, since the email
// inside the tokens may have changed.
func (s *authService) UpdateProfile(userID uint, update ProfileUpdate) (*model.User, *util.TokenPair, error) {
	logger.Info("Updating user profile", map[string]interface{}{
		"user_id": userID,
	})

	user, err := s.GetUserByID(userID)
	if err != nil {
		return nil, nil, err
	}

	if name := strings.TrimSpace(update.Name); name != "" {
		user.Name = name
	}

	if email := normalizeEmail(update.Email); email != "" && email != user.Email {
		taken, err := s.emailTaken(email, user.ID)
		if err != nil {
			return nil, nil, err
		}
		if taken {
			logger.Warn("Profile update failed: email already exists", map[string]interface{}{
				"user_id": userID,
				"email":   email,
			})
			return nil, nil, ErrEmailAlreadyExists
		}
		user.Email = email
	}

	if update.Password != "" {
		if !util.ValidatePassword(update.Password) {
			return nil, nil, ErrWeakPassword
		}
		hashed, err := util.HashPassword(update.Password)
		if err != nil {
			logger.Error("Failed to hash password", err, map[string]interface{}{
				"user_id": userID,
			})
			return nil, nil, err
		}
		user.PasswordHash = hashed
	}

	if err := s.userRepo.Update(user); err != nil {
		return nil, nil, err
	}

	tokens, err := s.issueTokens(user)
	if err != nil {
		return nil, nil, err
	}

	logger.Info("User profile updated successfully", map[string]interface{}{
		"user_id": user.ID,
	})
	return user, tokens, nil
}
