package recipe_test

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	stdimage "image"
	"image/png"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	recipeHandler "recipe-extractor/internal/api/handlers/recipe"
	"recipe-extractor/internal/core/classify"
	"recipe-extractor/internal/core/image"
	"recipe-extractor/internal/core/storage"
	"recipe-extractor/internal/infrastructure/config"
	"recipe-extractor/internal/pkg/common"
)

type fakeExtractor struct {
	recipe    *common.ParsedRecipe
	err       error
	gotText   string
	gotImages int
	gotRefine bool
	gotOCR    bool
}

func (f *fakeExtractor) ExtractFromImages(ctx context.Context, images [][]byte, refine bool) (*common.ParsedRecipe, error) {
	f.gotImages = len(images)
	f.gotRefine = refine
	return f.recipe, f.err
}

func (f *fakeExtractor) ExtractFromText(ctx context.Context, text string, refine bool) (*common.ParsedRecipe, error) {
	f.gotText = text
	f.gotRefine = refine
	return f.recipe, f.err
}

func (f *fakeExtractor) ExtractFromOCRText(ctx context.Context, text string, refine bool) (*common.ParsedRecipe, error) {
	f.gotText = text
	f.gotRefine = refine
	f.gotOCR = true
	return f.recipe, f.err
}

type fakeFetcher struct {
	text string
	err  error
}

func (f *fakeFetcher) FetchText(ctx context.Context, url string) (string, error) {
	return f.text, f.err
}

func testClassifier() *classify.Classifier {
	return classify.NewClassifier(&config.Config{
		Pipeline: config.PipelineConfig{
			ClassifierThreshold: 2,
			ClassifierMinLen:    120,
			ClassifierMaxLen:    50000,
		},
	})
}

func newRouter(h *recipeHandler.Handler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/api/v1/recipe/extract", h.HandleExtract)
	r.POST("/api/v1/recipe/parse", h.HandleParse)
	r.POST("/api/v1/recipe/ingest", h.HandleIngest)
	r.POST("/api/v1/recipe/classify", h.HandleClassify)
	r.POST("/api/v1/recipes", h.HandleSave)
	r.GET("/api/v1/recipes", h.HandleList)
	r.GET("/api/v1/recipes/:id", h.HandleGet)
	r.DELETE("/api/v1/recipes/:id", h.HandleDelete)
	return r
}

func newHandler(extractor *fakeExtractor, fetcher *fakeFetcher) *recipeHandler.Handler {
	return recipeHandler.NewHandler(
		extractor,
		image.NewService(1<<20),
		fetcher,
		testClassifier(),
		storage.NewMemoryStore(),
	)
}

func testRecipe() *common.ParsedRecipe {
	r := common.NewParsedRecipe()
	r.Title = "Honey Garlic Chicken"
	r.Servings = 4
	r.IngredientsBySection[common.SectionDish] = []common.IngredientItem{
		{Amount: "2", Unit: "lb", Name: "chicken breast"},
		{Amount: "1", Unit: "tbsp", Name: "honey"},
	}
	r.Instructions = []string{"Mix the honey.", "Cook the chicken."}
	return r
}

// pngBase64 產生一張合法的測試圖片
func pngBase64(t *testing.T) string {
	t.Helper()
	var buf bytes.Buffer
	img := stdimage.NewRGBA(stdimage.Rect(0, 0, 2, 2))
	require.NoError(t, png.Encode(&buf, img))
	return base64.StdEncoding.EncodeToString(buf.Bytes())
}

func doJSON(t *testing.T, r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHandleExtract(t *testing.T) {
	extractor := &fakeExtractor{recipe: testRecipe()}
	r := newRouter(newHandler(extractor, &fakeFetcher{}))

	body, err := json.Marshal(gin.H{
		"images": []string{pngBase64(t), pngBase64(t)},
		"refine": true,
	})
	require.NoError(t, err)

	w := doJSON(t, r, http.MethodPost, "/api/v1/recipe/extract", string(body))
	require.Equal(t, http.StatusOK, w.Code)

	assert.Equal(t, 2, extractor.gotImages)
	assert.True(t, extractor.gotRefine)

	var resp recipeHandler.ExtractResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Honey Garlic Chicken", resp.Recipe.Title)
}

func TestHandleExtract_InvalidImage(t *testing.T) {
	r := newRouter(newHandler(&fakeExtractor{recipe: testRecipe()}, &fakeFetcher{}))

	w := doJSON(t, r, http.MethodPost, "/api/v1/recipe/extract",
		`{"images":["not-an-image"]}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandleExtract_MissingImages(t *testing.T) {
	r := newRouter(newHandler(&fakeExtractor{recipe: testRecipe()}, &fakeFetcher{}))

	w := doJSON(t, r, http.MethodPost, "/api/v1/recipe/extract", `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandleParse(t *testing.T) {
	extractor := &fakeExtractor{recipe: testRecipe()}
	r := newRouter(newHandler(extractor, &fakeFetcher{}))

	w := doJSON(t, r, http.MethodPost, "/api/v1/recipe/parse",
		`{"text":"INGREDIENTS\n2 lb chicken breast"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, extractor.gotText, "chicken breast")
	assert.False(t, extractor.gotRefine)
}

func TestHandleParse_OCRSource(t *testing.T) {
	extractor := &fakeExtractor{recipe: testRecipe()}
	r := newRouter(newHandler(extractor, &fakeFetcher{}))

	w := doJSON(t, r, http.MethodPost, "/api/v1/recipe/parse",
		`{"text":"INGREDIENTS\n2 lb chicken breast","source":"ocr"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, extractor.gotOCR)
}

func TestHandleParse_NoRecipeDetected(t *testing.T) {
	extractor := &fakeExtractor{err: common.ErrNoRecipeDetected}
	r := newRouter(newHandler(extractor, &fakeFetcher{}))

	w := doJSON(t, r, http.MethodPost, "/api/v1/recipe/parse", `{"text":"hello"}`)
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)

	var resp common.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, common.ErrCodeNoRecipeDetected, resp.Code)
}

func TestHandleIngest(t *testing.T) {
	extractor := &fakeExtractor{recipe: testRecipe()}
	fetcher := &fakeFetcher{text: "INGREDIENTS\n1 tbsp honey"}
	r := newRouter(newHandler(extractor, fetcher))

	w := doJSON(t, r, http.MethodPost, "/api/v1/recipe/ingest",
		`{"url":"https://example.com/recipe"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "INGREDIENTS\n1 tbsp honey", extractor.gotText)
}

func TestHandleClassify(t *testing.T) {
	r := newRouter(newHandler(&fakeExtractor{}, &fakeFetcher{}))

	// 太短的文字不可能是食譜
	w := doJSON(t, r, http.MethodPost, "/api/v1/recipe/classify", `{"text":"hi"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var resp recipeHandler.ClassifyResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.IsRecipe)
	assert.Zero(t, resp.Score)
}

func TestRecipeStoreLifecycle(t *testing.T) {
	r := newRouter(newHandler(&fakeExtractor{}, &fakeFetcher{}))

	body, err := json.Marshal(recipeHandler.SaveRequest{
		Recipe:    testRecipe(),
		SourceURL: "https://example.com/recipe",
	})
	require.NoError(t, err)

	w := doJSON(t, r, http.MethodPost, "/api/v1/recipes", string(body))
	require.Equal(t, http.StatusCreated, w.Code)

	var stored storage.StoredRecipe
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &stored))
	require.NotEmpty(t, stored.ID)

	w = doJSON(t, r, http.MethodGet, "/api/v1/recipes/"+stored.ID, "")
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodDelete, "/api/v1/recipes/"+stored.ID, "")
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodGet, "/api/v1/recipes/"+stored.ID, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHandleGet_LocalizedUnits(t *testing.T) {
	r := newRouter(newHandler(&fakeExtractor{}, &fakeFetcher{}))

	body, err := json.Marshal(recipeHandler.SaveRequest{Recipe: testRecipe()})
	require.NoError(t, err)

	w := doJSON(t, r, http.MethodPost, "/api/v1/recipes", string(body))
	require.Equal(t, http.StatusCreated, w.Code)

	var stored storage.StoredRecipe
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &stored))

	w = doJSON(t, r, http.MethodGet, "/api/v1/recipes/"+stored.ID+"?lang=de", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Esslöffel")

	// 在地化是讀取時的視圖，保存的資料不變
	w = doJSON(t, r, http.MethodGet, "/api/v1/recipes/"+stored.ID, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "tbsp")
	assert.NotContains(t, w.Body.String(), "Esslöffel")
}
