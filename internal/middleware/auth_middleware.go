package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/beanvanilla/storefront-backend/internal/app/model"
	apperrors "github.com/beanvanilla/storefront-backend/internal/errors"
	"github.com/beanvanilla/storefront-backend/pkg/util"
	"github.com/gin-gonic/gin"
)

// Context keys for user information
const (
	UserIDKey    = "user_id"
	UserEmailKey = "user_email"
	UserRoleKey  = "user_role"
	TokenKey     = "access_token"
)

// RevocationChecker reports whether a token was revoked on logout.
type RevocationChecker interface {
	IsTokenBlacklisted(ctx context.Context, token string) (bool, error)
}

type AuthMiddleware struct {
	jwtSecret string
	revoked   RevocationChecker
}

func NewAuthMiddleware(jwtSecret string, revoked ...RevocationChecker) *AuthMiddleware {
	m := &AuthMiddleware{jwtSecret: jwtSecret}
	if len(revoked) > 0 {
		m.revoked = revoked[0]
	}
	return m
}

var (
	errMissingToken  = errors.New("missing token")
	errMalformedAuth = errors.New("malformed authorization header")
	errRevokedToken  = errors.New("token revoked")
)

// bearerToken reads "Authorization: Bearer <token>", falling back to the token
// query parameter that websocket clients use.
func bearerToken(c *gin.Context) (string, error) {
	header := c.GetHeader("Authorization")
	if header == "" {
		if token := c.Query("token"); token != "" {
			return token, nil
		}
		return "", errMissingToken
	}
	parts := strings.Split(header, " ")
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		return "", errMalformedAuth
	}
	return parts[1], nil
}

func (m *AuthMiddleware) authenticate(c *gin.Context) (*util.Claims, string, error) {
	token, err := bearerToken(c)
	if err != nil {
		return nil, "", err
	}
	claims, err := util.ValidateToken(token, m.jwtSecret)
	if err != nil {
		return nil, token, err
	}
	if claims.TokenType == util.TokenTypeRefresh {
		return nil, token, util.ErrInvalidToken
	}
	if m.revoked != nil {
		revoked, err := m.revoked.IsTokenBlacklisted(c.Request.Context(), token)
		if err != nil {
			// fail open
			GetLoggerFromContext(c).Error("Token blacklist check failed", err)
		} else if revoked {
			return nil, token, errRevokedToken
		}
	}
	return claims, token, nil
}

func setUser(c *gin.Context, claims *util.Claims, token string) {
	c.Set(UserIDKey, claims.UserID)
	c.Set(UserEmailKey, claims.Email)
	c.Set(UserRoleKey, model.UserRole(claims.Role))
	c.Set(TokenKey, token)
}

// Authenticate validates the JWT and rejects the request without one.
func (m *AuthMiddleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		log := GetLoggerFromContext(c)

		claims, token, err := m.authenticate(c)
		if err != nil {
			log.Warn("Authentication failed", map[string]interface{}{
				"path":  c.Request.URL.Path,
				"error": err.Error(),
			})
			switch {
			case errors.Is(err, errMissingToken):
				apperrors.Unauthorized(c, "Not authorized, no token")
			case errors.Is(err, errMalformedAuth):
				apperrors.RespondWithError(c, http.StatusUnauthorized, apperrors.AuthTokenInvalid, "Malformed authorization header")
			case errors.Is(err, util.ErrExpiredToken):
				apperrors.RespondWithError(c, http.StatusUnauthorized, apperrors.AuthTokenExpired, "Session expired, please sign in again")
			case errors.Is(err, errRevokedToken):
				apperrors.RespondWithError(c, http.StatusUnauthorized, apperrors.AuthTokenRevoked, "Session ended, please sign in again")
			default:
				apperrors.RespondWithError(c, http.StatusUnauthorized, apperrors.AuthTokenInvalid, "Not authorized, token failed")
			}
			return
		}

		setUser(c, claims, token)
		log.Debug("User authenticated successfully", map[string]interface{}{
			"user_id": claims.UserID,
			"role":    claims.Role,
		})
		c.Next()
	}
}

// OptionalAuthenticate sets the user when a valid token is present and
// otherwise continues as a guest.
func (m *AuthMiddleware) OptionalAuthenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, token, err := m.authenticate(c)
		if err != nil {
			if !errors.Is(err, errMissingToken) {
				GetLoggerFromContext(c).Debug("Token rejected - continuing as guest", map[string]interface{}{
					"path":  c.Request.URL.Path,
					"error": err.Error(),
				})
			}
			c.Next()
			return
		}

		setUser(c, claims, token)
		c.Next()
	}
}

// RequireRole allows only users with one of roles. It must follow Authenticate.
func (m *AuthMiddleware) RequireRole(roles ...model.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		log := GetLoggerFromContext(c)

		role, ok := GetUserRole(c)
		if !ok {
			apperrors.Unauthorized(c, "")
			return
		}

		for _, r := range roles {
			if role == r {
				c.Next()
				return
			}
		}

		userID, _ := GetUserID(c)
		log.Warn("Insufficient permissions", map[string]interface{}{
			"user_id":        userID,
			"user_role":      role,
			"required_roles": roles,
		})
		if len(roles) == 1 && roles[0] == model.RoleAdmin {
			apperrors.RespondWithError(c, http.StatusForbidden, apperrors.AuthzAdminOnly, "Not authorized as an admin")
			return
		}
		apperrors.Forbidden(c, "")
	}
}

// GetUserID extracts user ID from context
func GetUserID(c *gin.Context) (uint, bool) {
	userID, exists := c.Get(UserIDKey)
	if !exists {
		return 0, false
	}
	id, ok := userID.(uint)
	return id, ok
}

// GetUserEmail extracts user email from context
func GetUserEmail(c *gin.Context) (string, bool) {
	email, exists := c.Get(UserEmailKey)
	if !exists {
		return "", false
	}
	s, ok := email.(string)
	return s, ok
}

// GetUserRole extracts user role from context
func GetUserRole(c *gin.Context) (model.UserRole, bool) {
	role, exists := c.Get(UserRoleKey)
	if !exists {
		return "", false
	}
	r, ok := role.(model.UserRole)
	return r, ok
}

// GetToken returns the access token the request authenticated with.
func GetToken(c *gin.Context) string {
	return c.GetString(TokenKey)
}
