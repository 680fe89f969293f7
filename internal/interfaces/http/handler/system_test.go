package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"runtime"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meridianfood/backend/internal/interfaces/http/dto"
)

func newSystemEngine() *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	NewSystemHandler().RegisterRoutes(engine.Group("/api/v1"))
	return engine
}

func TestSystemHandler_GetSystemInfo(t *testing.T) {
	engine := newSystemEngine()

	w := httptest.NewRecorder()
	req, err := http.NewRequest(http.MethodGet, "/api/v1/system/info", nil)
	require.NoError(t, err)
	engine.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)

	data := resp.Data.(map[string]interface{})
	assert.Equal(t, "Meridian Planning API", data["name"])
	assert.Equal(t, "1.0.0", data["version"])
	assert.Equal(t, runtime.Version(), data["go_version"])
	assert.NotEmpty(t, data["uptime"])
}

func TestSystemHandler_Ping(t *testing.T) {
	engine := newSystemEngine()

	w := httptest.NewRecorder()
	req, err := http.NewRequest(http.MethodGet, "/api/v1/system/ping", nil)
	require.NoError(t, err)
	engine.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp.Data.(map[string]interface{})
	assert.Equal(t, "pong", data["message"])

	_, err = time.Parse(time.RFC3339, data["timestamp"].(string))
	assert.NoError(t, err)
}
