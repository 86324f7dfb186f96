package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"recipe-extractor/internal/api/middleware"
	"recipe-extractor/internal/infrastructure/config"
)

func doPost(r *gin.Engine, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestDeduplication_RepeatedExtractBlocked(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.Deduplication(&config.Config{DedupWindow: time.Minute}))
	r.POST("/api/v1/recipe/extract", func(c *gin.Context) { c.Status(http.StatusOK) })

	body := `{"images":["abc"],"refine":false}`
	require.Equal(t, http.StatusOK, doPost(r, "/api/v1/recipe/extract", body).Code)
	assert.Equal(t, http.StatusTooManyRequests, doPost(r, "/api/v1/recipe/extract", body).Code)

	// 同文但 refine 旗標不同，請求體雜湊不同，不算重複
	other := `{"images":["abc"],"refine":true}`
	assert.Equal(t, http.StatusOK, doPost(r, "/api/v1/recipe/extract", other).Code)
}

func TestDeduplication_CheapEndpointsNotDeduplicated(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.Deduplication(&config.Config{DedupWindow: time.Minute}))
	r.POST("/api/v1/translate", func(c *gin.Context) { c.Status(http.StatusOK) })

	body := `{"text":"Salz"}`
	require.Equal(t, http.StatusOK, doPost(r, "/api/v1/translate", body).Code)
	assert.Equal(t, http.StatusOK, doPost(r, "/api/v1/translate", body).Code)
}

func TestRateLimit_ExhaustedTokens(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.RateLimit(2, time.Minute))
	r.POST("/api/v1/recipe/parse", func(c *gin.Context) { c.Status(http.StatusOK) })

	require.Equal(t, http.StatusOK, doPost(r, "/api/v1/recipe/parse", `{"a":1}`).Code)
	require.Equal(t, http.StatusOK, doPost(r, "/api/v1/recipe/parse", `{"a":2}`).Code)

	w := doPost(r, "/api/v1/recipe/parse", `{"a":3}`)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.NotEmpty(t, w.Header().Get("Retry-After"))
}

func TestBodySizeLimit_OversizedRejected(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.BodySizeLimit(16))
	r.POST("/api/v1/recipe/extract", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := doPost(r, "/api/v1/recipe/extract", strings.Repeat("x", 64))
	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
}
