package classify

import (
	"regexp"
	"strings"

	"go.uber.org/zap"

	"recipe-extractor/internal/infrastructure/config"
	"recipe-extractor/internal/pkg/common"
)

var (
	measurementPattern = regexp.MustCompile(`\d+\s*(?:tbsp|tbs|tsp|cups?|g|kg|ml|l|oz|fl_oz|lbs?|grams?|ounces?|pounds?|tablespoons?|teaspoons?|pinch(?:es)?|cloves?|pieces?)\b`)

	stepMarkerPattern = regexp.MustCompile(`(?m)(?:^\s*\d+\.\s+\S|step\s+\d+)`)

	bulletListPattern = regexp.MustCompile(`(?m)^\s*[-•*]\s+\S`)

	measurementWordPattern = regexp.MustCompile(`\d+\s*(?:cups?|tbsp|tsp|g|kg|ml|oz|lbs?)\s+[a-z]+`)

	timeServingPattern = regexp.MustCompile(`(?:prep(?:aration)?\s*time|cook(?:ing)?\s*time|total\s*time|serves\s+\d+|\d+\s+servings?|ready\s+in)`)

	structureKeywords = []string{
		"ingredients", "ingredient", "instructions", "instruction",
		"directions", "recipe", "method", "steps", "servings", "preparation",
	}

	cookingVerbs = []string{
		"preheat", "bake", "boil", "simmer", "saute", "fry", "grill", "roast",
		"mix", "stir", "whisk", "knead", "chop", "dice", "mince", "combine",
		"season", "marinate", "drain", "garnish", "sprinkle", "blend",
	}

	// 常見食材詞彙，約 40 詞
	ingredientVocabulary = []string{
		"chicken", "beef", "pork", "salmon", "shrimp", "tofu", "egg",
		"butter", "sugar", "flour", "salt", "pepper", "garlic", "onion",
		"ginger", "tomato", "potato", "carrot", "celery", "mushroom",
		"spinach", "broccoli", "cheese", "cream", "milk", "yogurt", "honey",
		"vinegar", "sesame", "olive oil", "soy sauce", "chocolate", "vanilla",
		"cinnamon", "paprika", "oregano", "basil", "parsley", "thyme", "lemon",
	}
)

// Classifier 食譜內容分類器
// 以加權訊號評分決定一段文字是否為食譜，刻意偏向寬鬆：
// 偽陽性只會多觸發一次偵測提示，偽陰性會漏掉真食譜
type Classifier struct {
	cfg *config.Config
}

// NewClassifier 創建分類器
func NewClassifier(cfg *config.Config) *Classifier {
	return &Classifier{cfg: cfg}
}

// IsRecipe 判斷文字是否為食譜
func (c *Classifier) IsRecipe(text string) bool {
	score := c.Score(text)
	return score >= c.cfg.Pipeline.ClassifierThreshold
}

// Score 計算食譜訊號總分
// 長度超出範圍直接回 0：過短無意義，過長不可能是單頁食譜
func (c *Classifier) Score(text string) int {
	n := len([]rune(text))
	if n < c.cfg.Pipeline.ClassifierMinLen || n > c.cfg.Pipeline.ClassifierMaxLen {
		return 0
	}

	lower := strings.ToLower(text)
	score := 0

	// 結構關鍵詞
	for _, kw := range structureKeywords {
		if strings.Contains(lower, kw) {
			score += 2
			break
		}
	}

	// 量測樣式
	if measurementPattern.MatchString(lower) {
		score += 2
	}

	// 烹飪動詞：計算相異動詞數
	verbs := 0
	for _, v := range cookingVerbs {
		if containsWord(lower, v) {
			verbs++
			if verbs >= 2 {
				break
			}
		}
	}
	switch {
	case verbs >= 2:
		score += 2
	case verbs == 1:
		score++
	}

	// 步驟標記
	if stepMarkerPattern.MatchString(lower) {
		score++
	}

	// 食材清單樣式
	if strings.Contains(lower, "ingredients:") ||
		bulletListPattern.MatchString(lower) ||
		measurementWordPattern.MatchString(lower) {
		score++
	}

	// 時間或份量樣式
	if timeServingPattern.MatchString(lower) {
		score++
	}

	// 食材詞彙：計算相異命中數
	hits := 0
	for _, ing := range ingredientVocabulary {
		if strings.Contains(lower, ing) {
			hits++
			if hits >= 2 {
				break
			}
		}
	}
	switch {
	case hits >= 2:
		score += 2
	case hits == 1:
		score++
	}

	common.LogDebug("食譜分類評分",
		zap.Int("分數", score),
		zap.Int("文字長度", n),
	)
	return score
}

// containsWord 整詞比對，避免動詞命中較長單字的子字串
func containsWord(text, word string) bool {
	idx := 0
	for {
		i := strings.Index(text[idx:], word)
		if i < 0 {
			return false
		}
		start := idx + i
		end := start + len(word)
		beforeOK := start == 0 || !isLetter(text[start-1])
		afterOK := end == len(text) || !isLetter(text[end])
		if beforeOK && afterOK {
			return true
		}
		idx = start + 1
	}
}

func isLetter(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}
