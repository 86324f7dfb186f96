package translation_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"recipe-extractor/internal/api/handlers/translation"
	"recipe-extractor/internal/core/translate"
	"recipe-extractor/internal/infrastructure/config"
)

func newRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	translator := translate.NewService(&config.Config{
		Translation: config.TranslationConfig{
			Enabled: false,
			Timeout: time.Second,
		},
	})
	r := gin.New()
	r.POST("/api/v1/translate", translation.NewHandler(translator).HandleTranslate)
	return r
}

func doJSON(t *testing.T, r *gin.Engine, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/translate", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHandleTranslate_EnglishPassthrough(t *testing.T) {
	w := doJSON(t, newRouter(), `{"text":"Mix the honey and cook the chicken."}`)
	require.Equal(t, http.StatusOK, w.Code)

	var result translate.Result
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Equal(t, "passthrough", result.Method)
	assert.Equal(t, "Mix the honey and cook the chicken.", result.Text)
}

func TestHandleTranslate_GermanDictionary(t *testing.T) {
	w := doJSON(t, newRouter(), `{"text":"Zutaten: Öl, Salz und Gewürze"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var result translate.Result
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Equal(t, "dictionary", result.Method)
	assert.Contains(t, result.Text, "Ingredients")
}

func TestHandleTranslate_BadRequest(t *testing.T) {
	w := doJSON(t, newRouter(), `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
