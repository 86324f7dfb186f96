package pipeline_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"recipe-extractor/internal/core/pipeline"
	"recipe-extractor/internal/infrastructure/config"
	"recipe-extractor/internal/pkg/common"
)

// fakeImages 以固定文字清單模擬 OCR 工作池
type fakeImages struct {
	texts []string
	err   error
}

func (f *fakeImages) ExtractAll(ctx context.Context, images [][]byte) ([]string, error) {
	return f.texts, f.err
}

// fakeCompleter 記錄呼叫與提示詞並回傳固定回應
type fakeCompleter struct {
	calls      int
	userPrompt string
	response   string
	err        error
}

func (f *fakeCompleter) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	f.calls++
	f.userPrompt = userPrompt
	return f.response, f.err
}

func pipelineConfig(refineEnabled bool) *config.Config {
	return &config.Config{
		OpenRouter: config.OpenRouterConfig{
			Enabled: refineEnabled,
			Timeout: time.Second,
		},
		Translation: config.TranslationConfig{Enabled: false},
		Pipeline: config.PipelineConfig{
			SimilarityThreshold: 0.6,
			ClassifierThreshold: 2,
			ClassifierMinLen:    120,
			ClassifierMaxLen:    50000,
			MaxInstructions:     10,
		},
	}
}

const recipeText = `Honey Garlic Chicken

Ingredients:
2 lbs chicken breast
1 tbsp olive oil
1/2 cup honey

Instructions:
1. Mix the honey and oil.
2. Cook the chicken until browned.

Serves 4
`

func TestExtractFromImages_Baseline(t *testing.T) {
	svc := pipeline.NewService(pipelineConfig(false), &fakeImages{texts: []string{recipeText}}, nil, nil)

	recipe, err := svc.ExtractFromImages(context.Background(), [][]byte{[]byte("img")}, false)
	require.NoError(t, err)

	assert.Equal(t, "Honey Garlic Chicken", recipe.Title)
	assert.Equal(t, 4, recipe.Servings)
	assert.Len(t, recipe.Instructions, 2)
	assert.Equal(t, 3, recipe.IngredientCount())
}

func TestExtractFromImages_SingleImageFailureTolerated(t *testing.T) {
	// 第一張沒有文字，第二張有：不致命
	svc := pipeline.NewService(pipelineConfig(false), &fakeImages{texts: []string{"", recipeText}}, nil, nil)

	recipe, err := svc.ExtractFromImages(context.Background(), [][]byte{[]byte("a"), []byte("b")}, false)
	require.NoError(t, err)
	assert.Equal(t, "Honey Garlic Chicken", recipe.Title)
}

func TestExtractFromOCRText_CorrectionApplied(t *testing.T) {
	svc := pipeline.NewService(pipelineConfig(false), &fakeImages{}, nil, nil)

	// 標題行與步驟行的拼寫錯誤會被修復，帶單位的行則原樣保留
	text := "Ingrediants:\n2 lbs chicken breast\n\nInstructions:\n1. Cook the chickn until browned."
	recipe, err := svc.ExtractFromOCRText(context.Background(), text, false)
	require.NoError(t, err)

	items := recipe.IngredientsBySection[common.SectionDish]
	require.Len(t, items, 1)
	assert.Equal(t, "chicken breast", items[0].Name)

	require.Len(t, recipe.Instructions, 1)
	assert.Contains(t, recipe.Instructions[0], "chicken")
}

func TestExtractFromImages_AllImagesEmptyFails(t *testing.T) {
	svc := pipeline.NewService(pipelineConfig(false), &fakeImages{texts: []string{"", "  "}}, nil, nil)

	_, err := svc.ExtractFromImages(context.Background(), [][]byte{[]byte("a"), []byte("b")}, false)
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrNoTextExtracted)
}

func TestExtractFromText_RefinementMerged(t *testing.T) {
	// 模型把 JSON 包在 code fence 裡，管線必須容忍
	completer := &fakeCompleter{response: "```json\n" + `{
		"title": "Refined Honey Garlic Chicken",
		"servings": 0,
		"dishIngredients": [{"amount": "1 1/2", "unit": "lbs", "name": "chicken breast"}],
		"instructions": ["Combine everything.", "Cook it."]
	}` + "\n```"}

	svc := pipeline.NewService(pipelineConfig(true), nil, completer, nil)

	recipe, err := svc.ExtractFromText(context.Background(), recipeText, true)
	require.NoError(t, err)
	assert.Equal(t, 1, completer.calls)

	// 提示詞帶原文與本機抽取草稿
	assert.Contains(t, completer.userPrompt, "Honey Garlic Chicken")
	assert.Contains(t, completer.userPrompt, "[dish]")
	assert.Contains(t, completer.userPrompt, "- 2 lb chicken breast")

	// 精煉非空值勝出
	assert.Equal(t, "Refined Honey Garlic Chicken", recipe.Title)
	// 精煉的零值不覆寫基準
	assert.Equal(t, 4, recipe.Servings)

	dish := recipe.IngredientsBySection[common.SectionDish]
	require.Len(t, dish, 1)
	assert.Equal(t, "1.5", dish[0].Amount)
	assert.Equal(t, common.UnitLb, dish[0].Unit)
	assert.Equal(t, []string{"Combine everything.", "Cook it."}, recipe.Instructions)
}

func TestExtractFromText_RefinementFailureKeepsBaseline(t *testing.T) {
	completer := &fakeCompleter{err: fmt.Errorf("network down")}
	svc := pipeline.NewService(pipelineConfig(true), nil, completer, nil)

	recipe, err := svc.ExtractFromText(context.Background(), recipeText, true)
	// 精煉失敗不得浮出到呼叫端
	require.NoError(t, err)
	assert.Equal(t, 1, completer.calls)
	assert.Equal(t, "Honey Garlic Chicken", recipe.Title)
}

func TestExtractFromText_MalformedRefinementKeepsBaseline(t *testing.T) {
	completer := &fakeCompleter{response: "sorry, I cannot parse that"}
	svc := pipeline.NewService(pipelineConfig(true), nil, completer, nil)

	recipe, err := svc.ExtractFromText(context.Background(), recipeText, true)
	require.NoError(t, err)
	assert.Equal(t, "Honey Garlic Chicken", recipe.Title)
}

func TestExtractFromText_ClassifierGatesRefinement(t *testing.T) {
	completer := &fakeCompleter{response: "{}"}
	svc := pipeline.NewService(pipelineConfig(true), nil, completer, nil)

	// 分類分數不足的文字不觸發精煉，但本機抽取照常進行
	text := "Shopping List\n2 cups flour\n"
	_, err := svc.ExtractFromText(context.Background(), text, true)
	require.NoError(t, err)
	assert.Zero(t, completer.calls)
}

func TestExtractFromText_NotRefineRequested(t *testing.T) {
	completer := &fakeCompleter{response: "{}"}
	svc := pipeline.NewService(pipelineConfig(true), nil, completer, nil)

	_, err := svc.ExtractFromText(context.Background(), recipeText, false)
	require.NoError(t, err)
	assert.Zero(t, completer.calls)
}

func TestExtractFromText_EmptyInput(t *testing.T) {
	svc := pipeline.NewService(pipelineConfig(false), nil, nil, nil)

	_, err := svc.ExtractFromText(context.Background(), "   ", false)
	assert.ErrorIs(t, err, common.ErrNoTextExtracted)
}

func TestExtractFromText_GermanDictionaryEndToEnd(t *testing.T) {
	svc := pipeline.NewService(pipelineConfig(false), nil, nil, nil)

	recipe, err := svc.ExtractFromText(context.Background(), "ZUTATEN\n2 Hähnchenbrust\nSalz", false)
	require.NoError(t, err)

	dish := recipe.IngredientsBySection[common.SectionDish]
	require.Len(t, dish, 1)
	assert.Equal(t, "Chicken breast", dish[0].Name)

	seasoning := recipe.IngredientsBySection[common.SectionSeasoning]
	require.Len(t, seasoning, 1)
	assert.Equal(t, "Salt", seasoning[0].Name)
}
