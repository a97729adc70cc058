package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

const testSecret = "test-secret"

func signToken(t *testing.T, secret string, exp time.Time) string {
	t.Helper()
	claims := jwt.MapClaims{
		"sub":  uuid.New().String(),
		"role": "customer",
		"exp":  exp.Unix(),
		"iat":  time.Now().Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return token
}

func runRequest(mw gin.HandlerFunc, authHeader string) (*httptest.ResponseRecorder, bool) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	reached := false
	router.GET("/", mw, func(c *gin.Context) {
		reached = true
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec, reached
}

func TestAuth_MissingToken(t *testing.T) {
	rec, reached := runRequest(Auth(testSecret), "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, reached)
}

func TestAuth_ValidToken(t *testing.T) {
	token := signToken(t, testSecret, time.Now().Add(time.Hour))
	rec, reached := runRequest(Auth(testSecret), "Bearer "+token)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, reached)
}

func TestAuth_WrongSecret(t *testing.T) {
	token := signToken(t, "other-secret", time.Now().Add(time.Hour))
	rec, reached := runRequest(Auth(testSecret), "Bearer "+token)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.False(t, reached)
}

func TestAuth_ExpiredToken(t *testing.T) {
	token := signToken(t, testSecret, time.Now().Add(-time.Hour))
	rec, _ := runRequest(Auth(testSecret), "Bearer "+token)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestOptionalAuth_NoHeaderPassesAsGuest(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	var gotID *uuid.UUID
	router.GET("/", OptionalAuth(testSecret), func(c *gin.Context) {
		gotID = GetUserID(c)
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Nil(t, gotID)
}

func TestOptionalAuth_InvalidTokenRejected(t *testing.T) {
	rec, reached := runRequest(OptionalAuth(testSecret), "Bearer not-a-token")
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.False(t, reached)
}

func TestAdminOnly(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/", func(c *gin.Context) { c.Set("userRole", "customer") }, AdminOnly(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}
