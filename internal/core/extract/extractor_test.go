package extract_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"recipe-extractor/internal/core/extract"
	"recipe-extractor/internal/infrastructure/config"
	"recipe-extractor/internal/pkg/common"
)

func newExtractor() *extract.Extractor {
	return extract.NewExtractor(&config.Config{
		Pipeline: config.PipelineConfig{MaxInstructions: 10},
	})
}

const sampleRecipe = `Honey Garlic Chicken
A quick weeknight dinner.

Prep time: 15 minutes
Cook time: 30 minutes
Serves 4

Ingredients:
2 lbs chicken breast
1 tbsp olive oil
Salt to taste

Sauce:
1/2 cup honey
2 tbsp soy sauce

Instructions:
1. Mix the honey and soy sauce.
2. Heat oil in a pan.
3. Cook chicken until browned.

Tips:
- Serve over rice.
`

func TestExtract_FullRecipe(t *testing.T) {
	recipe, err := newExtractor().Extract(sampleRecipe)
	require.NoError(t, err)

	assert.Equal(t, "Honey Garlic Chicken", recipe.Title)
	assert.Equal(t, "A quick weeknight dinner.", recipe.Description)
	assert.Equal(t, 4, recipe.Servings)
	assert.Equal(t, 15, recipe.PrepTimeMinutes)
	assert.Equal(t, 30, recipe.CookTimeMinutes)

	dish := recipe.IngredientsBySection[common.SectionDish]
	require.Len(t, dish, 2)
	assert.Equal(t, common.IngredientItem{Amount: "2", Unit: common.UnitLb, Name: "chicken breast"}, dish[0])
	assert.Equal(t, common.IngredientItem{Amount: "1", Unit: common.UnitTbsp, Name: "olive oil"}, dish[1])

	seasoning := recipe.IngredientsBySection[common.SectionSeasoning]
	require.Len(t, seasoning, 1)
	assert.Equal(t, "0", seasoning[0].Amount)
	assert.Contains(t, seasoning[0].Name, "to taste")

	sauce := recipe.IngredientsBySection[common.SectionSauce]
	require.Len(t, sauce, 2)
	assert.Equal(t, common.IngredientItem{Amount: "0.5", Unit: common.UnitCup, Name: "honey"}, sauce[0])

	require.Len(t, recipe.Instructions, 3)
	assert.Equal(t, "Mix the honey and soy sauce.", recipe.Instructions[0])

	require.Len(t, recipe.Tips, 1)
	assert.Equal(t, "Serve over rice.", recipe.Tips[0])
}

func TestExtract_NoIngredientDuplicatedAcrossSections(t *testing.T) {
	recipe, err := newExtractor().Extract(sampleRecipe)
	require.NoError(t, err)

	seen := map[string]int{}
	for _, sec := range common.AllSections {
		for _, item := range recipe.IngredientsBySection[sec] {
			seen[item.Amount+"|"+item.Unit+"|"+item.Name]++
		}
	}
	for key, count := range seen {
		assert.Equal(t, 1, count, "ingredient %s appears in more than one section", key)
	}
	assert.Equal(t, 5, recipe.IngredientCount())
}

func TestExtract_TranslatedGermanText(t *testing.T) {
	recipe, err := newExtractor().Extract("INGREDIENTS\n2 Chicken breast\nSalt")
	require.NoError(t, err)

	dish := recipe.IngredientsBySection[common.SectionDish]
	require.Len(t, dish, 1)
	assert.Equal(t, "Chicken breast", dish[0].Name)
	assert.Equal(t, "2", dish[0].Amount)

	seasoning := recipe.IngredientsBySection[common.SectionSeasoning]
	require.Len(t, seasoning, 1)
	assert.Equal(t, "Salt", seasoning[0].Name)
}

func TestExtract_InstructionCap(t *testing.T) {
	var sb strings.Builder
	sb.WriteString("Chopped Salad\n\nInstructions:\n")
	for i := 1; i <= 12; i++ {
		fmt.Fprintf(&sb, "%d. Chop ingredient number %d.\n", i, i)
	}

	recipe, err := newExtractor().Extract(sb.String())
	require.NoError(t, err)
	assert.LessOrEqual(t, len(recipe.Instructions), 10)
	// 合併後首步包含前兩步的內容
	assert.Contains(t, recipe.Instructions[0], "number 1")
	assert.Contains(t, recipe.Instructions[0], "number 2")
}

func TestExtract_SubPreparationOrdering(t *testing.T) {
	text := `Grilled Chicken

Instructions:
1. Prepare the marinade (see page 12).
2. Cook the chicken.

For the marinade:
Mix soy sauce and honey.
`
	recipe, err := newExtractor().Extract(text)
	require.NoError(t, err)

	require.Len(t, recipe.Instructions, 3)
	assert.Equal(t, "Mix soy sauce and honey.", recipe.Instructions[0])
	assert.Equal(t, "Prepare the marinade.", recipe.Instructions[1])
	assert.Equal(t, "Cook the chicken.", recipe.Instructions[2])
	// 頁碼引用必須移除
	assert.NotContains(t, strings.Join(recipe.Instructions, " "), "see page")
}

func TestExtract_OvernightTime(t *testing.T) {
	text := `Overnight Oats

Prep time: overnight

Ingredients:
1 cup oats
`
	recipe, err := newExtractor().Extract(text)
	require.NoError(t, err)
	assert.Equal(t, 1440, recipe.PrepTimeMinutes)
}

func TestExtract_NothingUsableFails(t *testing.T) {
	_, err := newExtractor().Extract("Ingredients:\n\nInstructions:\n")
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrNoRecipeDetected)
}

func TestExtract_QualitativePinch(t *testing.T) {
	recipe, err := newExtractor().Extract("Ingredients:\na pinch of nutmeg\n")
	require.NoError(t, err)

	seasoning := recipe.IngredientsBySection[common.SectionSeasoning]
	require.Len(t, seasoning, 1)
	assert.Equal(t, common.IngredientItem{Amount: "1", Unit: common.UnitPinch, Name: "nutmeg"}, seasoning[0])
}

func TestParseMinutes(t *testing.T) {
	assert.Equal(t, 90, extract.ParseMinutes("1 hour 30 minutes"))
	assert.Equal(t, 60, extract.ParseMinutes("1 hour"))
	assert.Equal(t, 1440, extract.ParseMinutes("overnight"))
	assert.Equal(t, 2880, extract.ParseMinutes("2 days"))
	assert.Equal(t, 0, extract.ParseMinutes("quick"))
}

func TestExtractServings(t *testing.T) {
	assert.Equal(t, 4, extract.ExtractServings("Serves 4"))
	assert.Equal(t, 6, extract.ExtractServings("makes 6 servings"))
	assert.Equal(t, 2, extract.ExtractServings("Servings: 2"))
	// 範圍取第一個值
	assert.Equal(t, 4, extract.ExtractServings("Serves 4-6"))
	assert.Equal(t, 0, extract.ExtractServings("delicious dinner"))
}
