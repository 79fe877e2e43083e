package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/retailbooks/backend/internal/interfaces/http/dto"
)

func setupSystemTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()

	h := NewSystemHandler(nil)
	h.RegisterRoutes(engine.Group("/api/v1"))

	return engine
}

func TestSystemHandlerHealth(t *testing.T) {
	engine := setupSystemTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/health", nil)
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp dto.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)

	data, ok := resp.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "ok", data["status"])
	assert.Equal(t, "ok", data["database"])
	assert.NotEmpty(t, data["uptime"])
}

func TestSystemHandlerGetSystemInfo(t *testing.T) {
	engine := setupSystemTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/system/info", nil)
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp dto.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)

	data, ok := resp.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "RetailBooks Backend API", data["name"])
	assert.NotEmpty(t, data["go_version"])
}
