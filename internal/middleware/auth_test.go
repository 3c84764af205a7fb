package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const testSecret = "test-secret"

func authRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/api/auth/me", UserAuth(testSecret), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"success": true})
	})
	return r
}

func requestWithToken(t *testing.T, r *gin.Engine, token string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	r.ServeHTTP(w, req)
	return w
}

func TestUserAuthAcceptsValidToken(t *testing.T) {
	claims := jwt.MapClaims{
		"userId": primitive.NewObjectID().Hex(),
		"exp":    time.Now().Add(time.Hour).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)

	w := requestWithToken(t, authRouter(), token)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestUserAuthRejectsMissingToken(t *testing.T) {
	w := requestWithToken(t, authRouter(), "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestUserAuthRejectsUnsignedToken(t *testing.T) {
	// A token carrying alg "none" must fail even though it parses.
	claims := jwt.MapClaims{
		"userId": primitive.NewObjectID().Hex(),
		"exp":    time.Now().Add(time.Hour).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	w := requestWithToken(t, authRouter(), token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestUserAuthRejectsWrongSecret(t *testing.T) {
	claims := jwt.MapClaims{
		"userId": primitive.NewObjectID().Hex(),
		"exp":    time.Now().Add(time.Hour).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("other-secret"))
	require.NoError(t, err)

	w := requestWithToken(t, authRouter(), token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
