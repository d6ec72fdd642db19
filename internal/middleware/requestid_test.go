package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRequestIDRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.Use(RequestID())
	engine.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString(ContextRequestID))
	})
	return engine
}

func TestRequestIDGenerated(t *testing.T) {
	engine := newRequestIDRouter()

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	rid := w.Header().Get(HeaderXRequestID)
	_, err := uuid.Parse(rid)
	require.NoError(t, err)
	// context value and response header carry the same id
	assert.Equal(t, rid, w.Body.String())
}

func TestRequestIDKeepsWellFormedHeader(t *testing.T) {
	engine := newRequestIDRouter()
	supplied := uuid.NewString()

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(HeaderXRequestID, supplied)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Equal(t, supplied, w.Header().Get(HeaderXRequestID))
}

func TestRequestIDReplacesMalformedHeader(t *testing.T) {
	engine := newRequestIDRouter()

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(HeaderXRequestID, "not-a-uuid")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	rid := w.Header().Get(HeaderXRequestID)
	assert.NotEqual(t, "not-a-uuid", rid)
	_, err := uuid.Parse(rid)
	assert.NoError(t, err)
}
