package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func newCORSRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(CORS())
	r.GET("/resource", func(c *gin.Context) { c.String(http.StatusOK, "ok") })
	return r
}

func TestCORSPreflight(t *testing.T) {
	w := httptest.NewRecorder()
	newCORSRouter().ServeHTTP(w, httptest.NewRequest(http.MethodOptions, "/resource", nil))

	require.Equal(t, http.StatusNoContent, w.Code)
	require.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	require.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), http.MethodPut)
	require.Contains(t, w.Header().Get("Access-Control-Allow-Headers"), "Authorization")
}

func TestCORSHeadersOnActualRequest(t *testing.T) {
	w := httptest.NewRecorder()
	newCORSRouter().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/resource", nil))

	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "ok", w.Body.String())
	require.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}
