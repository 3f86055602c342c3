package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"rebirth_backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestMain(m *testing.M) {
	logger.Log = zap.NewNop()
	gin.SetMode(gin.TestMode)
	m.Run()
}

func newDeviceRouter() *gin.Engine {
	router := gin.New()
	router.Use(DeviceMiddleware())
	router.GET("/probe", func(c *gin.Context) {
		c.String(http.StatusOK, GetDevice(c))
	})
	return router
}

func TestDeviceMiddlewareReadsHeader(t *testing.T) {
	router := newDeviceRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	req.Header.Set("X-Device-ID", "dev-abc")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "dev-abc", w.Body.String())
}

func TestDeviceMiddlewareFallsBackToQuery(t *testing.T) {
	router := newDeviceRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/probe?device=dev-xyz", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "dev-xyz", w.Body.String())
}

func TestDeviceMiddlewareRejectsMissingID(t *testing.T) {
	router := newDeviceRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
