package controller

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/beanvanilla/storefront-backend/internal/app/model"
	"github.com/beanvanilla/storefront-backend/internal/app/repository"
	"github.com/beanvanilla/storefront-backend/internal/db"
	apperrors "github.com/beanvanilla/storefront-backend/internal/errors"
	"github.com/beanvanilla/storefront-backend/internal/fixture"
	"github.com/beanvanilla/storefront-backend/pkg/util"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const testJWTSecret = "test-secret"

func init() {
	gin.SetMode(gin.TestMode)
}

func performRequest(router http.Handler, method, path string, body interface{}, headers ...map[string]string) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, h := range headers {
		for k, v := range h {
			req.Header.Set(k, v)
		}
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), v))
}

func errorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body apperrors.ErrorResponse
	decodeBody(t, w, &body)
	return body.Error
}

// setupCatalogDB returns a sqlite database holding the fixture catalog under
// its fixture ids.
func setupCatalogDB(t *testing.T) (*gorm.DB, repository.ProductRepository) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	_, err = db.SeedTestProducts(testDB, fixture.Products()...)
	require.NoError(t, err)

	return testDB, repository.NewProductRepository(testDB)
}

func bearer(t *testing.T, user *model.User) map[string]string {
	t.Helper()
	tokens, err := util.GenerateTokenPair(user.ID, user.Email, string(user.Role), testJWTSecret, time.Hour, time.Hour)
	require.NoError(t, err)
	return map[string]string{"Authorization": "Bearer " + tokens.AccessToken}
}
