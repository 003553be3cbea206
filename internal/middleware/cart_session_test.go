package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupCartSessionTest() (*gin.Engine, *AuthMiddleware) {
	router, auth := setupMiddlewareTest()
	router.GET("/cart", auth.OptionalAuthenticate(), CartSession(), func(c *gin.Context) {
		key, _ := GetCartKey(c)
		c.String(http.StatusOK, key)
	})
	return router, auth
}

func TestCartSession_SignedInUser(t *testing.T) {
	router, _ := setupCartSessionTest()
	tokens := generateTestTokens(t, 42, "member@example.com", "user")

	req := httptest.NewRequest(http.MethodGet, "/cart", nil)
	req.Header.Set("Authorization", "Bearer "+tokens.AccessToken)
	req.Header.Set(CartSessionHeader, uuid.NewString())
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, "user:42", w.Body.String())
	assert.Empty(t, w.Header().Get(CartSessionHeader))
}

func TestCartSession_GuestWithSession(t *testing.T) {
	router, _ := setupCartSessionTest()
	session := uuid.NewString()

	req := httptest.NewRequest(http.MethodGet, "/cart", nil)
	req.Header.Set(CartSessionHeader, session)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, "guest:"+session, w.Body.String())
	assert.Equal(t, session, w.Header().Get(CartSessionHeader))
}

func TestCartSession_MintsSession(t *testing.T) {
	router, _ := setupCartSessionTest()

	for _, header := range []string{"", "not-a-uuid"} {
		req := httptest.NewRequest(http.MethodGet, "/cart", nil)
		if header != "" {
			req.Header.Set(CartSessionHeader, header)
		}
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		minted := w.Header().Get(CartSessionHeader)
		_, err := uuid.Parse(minted)
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(w.Body.String(), "guest:"))
		assert.Equal(t, "guest:"+minted, w.Body.String())
	}
}
