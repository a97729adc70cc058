package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func probe(name string, err error) ReadinessProbe {
	return ReadinessProbe{Name: name, Check: func(context.Context) error { return err }}
}

func serveReadyz(h *HealthHandler) (*httptest.ResponseRecorder, map[string]string) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/readyz", h.Readyz)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))

	var body map[string]string
	_ = json.Unmarshal(rec.Body.Bytes(), &body)
	return rec, body
}

func TestHealthHandler_Healthz(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/healthz", NewHealthHandler().Healthz)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestHealthHandler_Readyz_AllConnected(t *testing.T) {
	h := NewHealthHandler(
		probe("postgres", nil),
		probe("redis", nil),
		probe("rabbitmq", nil),
	)

	rec, body := serveReadyz(h)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, "connected", body["postgres"])
	assert.Equal(t, "connected", body["redis"])
	assert.Equal(t, "connected", body["rabbitmq"])
}

func TestHealthHandler_Readyz_ReportsEveryDependency(t *testing.T) {
	h := NewHealthHandler(
		probe("postgres", nil),
		probe("redis", errors.New("connection refused")),
		probe("rabbitmq", nil),
	)

	rec, body := serveReadyz(h)
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "degraded", body["status"])
	assert.Equal(t, "unavailable", body["redis"])
	// Healthy dependencies still show up in a degraded response.
	assert.Equal(t, "connected", body["postgres"])
	assert.Equal(t, "connected", body["rabbitmq"])
}
