package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"recipe-extractor/internal/core/extract"
	"recipe-extractor/internal/pkg/common"
)

// Completer 遠端模型補全能力，測試時可注入假實作
type Completer interface {
	Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// refineSystemPrompt 固定的系統指令，列舉輸出結構
const refineSystemPrompt = `You are a recipe parsing assistant. Parse the recipe text provided by the user and respond with a single JSON object only, no prose, using exactly these keys:
{
  "title": string,
  "description": string,
  "servings": int,
  "prepTime": int (minutes),
  "cookTime": int (minutes),
  "dishIngredients": [{"amount": string, "unit": string, "name": string}],
  "marinadeIngredients": [...],
  "seasoningIngredients": [...],
  "batterIngredients": [...],
  "sauceIngredients": [...],
  "baseIngredients": [...],
  "doughIngredients": [...],
  "toppingIngredients": [...],
  "instructions": [string],
  "tips": [string]
}
Use 0 for unknown numbers and empty arrays for missing sections. Amounts must be decimal strings. Units must be one of: tbsp, tsp, cup, g, kg, ml, l, oz, fl_oz, lb, piece, pinch, or empty.`

// refinedIngredient 模型回傳的單一食材
type refinedIngredient struct {
	Amount string `json:"amount"`
	Unit   string `json:"unit"`
	Name   string `json:"name"`
}

// refinedRecipe 模型回傳的完整結構
type refinedRecipe struct {
	Title                string              `json:"title"`
	Description          string              `json:"description"`
	Servings             int                 `json:"servings"`
	PrepTime             int                 `json:"prepTime"`
	CookTime             int                 `json:"cookTime"`
	DishIngredients      []refinedIngredient `json:"dishIngredients"`
	MarinadeIngredients  []refinedIngredient `json:"marinadeIngredients"`
	SeasoningIngredients []refinedIngredient `json:"seasoningIngredients"`
	BatterIngredients    []refinedIngredient `json:"batterIngredients"`
	SauceIngredients     []refinedIngredient `json:"sauceIngredients"`
	BaseIngredients      []refinedIngredient `json:"baseIngredients"`
	DoughIngredients     []refinedIngredient `json:"doughIngredients"`
	ToppingIngredients   []refinedIngredient `json:"toppingIngredients"`
	Instructions         []string            `json:"instructions"`
	Tips                 []string            `json:"tips"`
}

// sectionsOf 依固定分區順序取出各分區的食材
func (r *refinedRecipe) sectionsOf() map[common.IngredientSection][]refinedIngredient {
	return map[common.IngredientSection][]refinedIngredient{
		common.SectionDish:      r.DishIngredients,
		common.SectionMarinade:  r.MarinadeIngredients,
		common.SectionSeasoning: r.SeasoningIngredients,
		common.SectionBatter:    r.BatterIngredients,
		common.SectionSauce:     r.SauceIngredients,
		common.SectionBase:      r.BaseIngredients,
		common.SectionDough:     r.DoughIngredients,
		common.SectionTopping:   r.ToppingIngredients,
	}
}

// refineRecipe 將翻譯後文字連同本機抽取草稿送遠端模型做精煉解析
// 模型可能把 JSON 包在 code fence 裡，解析前先剝除
func refineRecipe(ctx context.Context, completer Completer, text string, baseline *common.ParsedRecipe) (*common.ParsedRecipe, error) {
	raw, err := completer.Complete(ctx, refineSystemPrompt, refineUserPrompt(text, baseline))
	if err != nil {
		return nil, fmt.Errorf("%w: %s", common.ErrRemoteRefinementFailed, err.Error())
	}
	return parseRefined(raw)
}

// refineUserPrompt 原文加上本機抽取的食材草稿，模型在草稿之上修正而非從零解析
func refineUserPrompt(text string, baseline *common.ParsedRecipe) string {
	if baseline == nil || baseline.IngredientCount() == 0 {
		return text
	}
	var sb strings.Builder
	sb.WriteString(text)
	sb.WriteString("\n\nDraft ingredient extraction (correct and complete it):\n")
	sb.WriteString(common.FormatSections(baseline.IngredientsBySection))
	return sb.String()
}

// parseRefined 解析模型回應為結構化食譜
func parseRefined(raw string) (*common.ParsedRecipe, error) {
	payload := common.StripCodeFence(raw)
	var refined refinedRecipe
	if err := json.Unmarshal([]byte(payload), &refined); err != nil {
		return nil, fmt.Errorf("%w: %s", common.ErrMalformedModelResponse, err.Error())
	}

	recipe := common.NewParsedRecipe()
	recipe.Title = strings.TrimSpace(refined.Title)
	recipe.Description = strings.TrimSpace(refined.Description)
	recipe.Servings = refined.Servings
	recipe.PrepTimeMinutes = refined.PrepTime
	recipe.CookTimeMinutes = refined.CookTime
	recipe.Instructions = refined.Instructions
	recipe.Tips = refined.Tips

	for sec, items := range refined.sectionsOf() {
		for _, item := range items {
			name := strings.TrimSpace(item.Name)
			if name == "" {
				continue
			}
			unit := extract.NormalizeUnit(item.Unit)
			recipe.IngredientsBySection[sec] = append(recipe.IngredientsBySection[sec], common.IngredientItem{
				Amount: extract.NormalizeAmount(strings.TrimSpace(item.Amount)),
				Unit:   extract.DisambiguateOz(name, unit),
				Name:   name,
			})
		}
	}
	return recipe, nil
}
