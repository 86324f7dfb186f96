package extract

import (
	"regexp"
	"strings"

	"recipe-extractor/internal/pkg/common"
)

// sectionHeaderPattern 分區標題行，例如 "Sauce:"、"For the marinade"
var sectionHeaderPattern = regexp.MustCompile(`(?i)^\s*(?:for\s+the\s+)?([a-z ]+?)\s*[:：]?\s*$`)

// headerSections 標題詞到分區的對應
var headerSections = map[string]common.IngredientSection{
	"marinade":   common.SectionMarinade,
	"seasoning":  common.SectionSeasoning,
	"seasonings": common.SectionSeasoning,
	"spices":     common.SectionSeasoning,
	"batter":     common.SectionBatter,
	"sauce":      common.SectionSauce,
	"dressing":   common.SectionSauce,
	"gravy":      common.SectionSauce,
	"base":       common.SectionBase,
	"crust":      common.SectionBase,
	"dough":      common.SectionDough,
	"topping":    common.SectionTopping,
	"toppings":   common.SectionTopping,
	"garnish":    common.SectionTopping,
	"filling":    common.SectionDish,
	"main":       common.SectionDish,
}

// sectionForHeader 判斷一行是否為分區標題
// 「Sauce:」這類標題支配後續食材直到下一個標題或空行
func sectionForHeader(line string) (common.IngredientSection, bool) {
	m := sectionHeaderPattern.FindStringSubmatch(line)
	if m == nil {
		return "", false
	}
	key := strings.ToLower(strings.TrimSpace(m[1]))
	sec, ok := headerSections[key]
	return sec, ok
}

// seasoningWords 預設落入調味分區的食材
var seasoningWords = []string{
	"salt", "pepper", "paprika", "cumin", "oregano", "basil", "thyme",
	"rosemary", "cinnamon", "nutmeg", "chili powder", "curry powder",
	"garlic powder", "onion powder", "five spice", "bay leaf", "msg",
	"seasoning", "spice",
}

// defaultSectionFor 無標題支配時依食材名稱決定分區
// 調味料歸 seasoning，其餘歸 dish
func defaultSectionFor(name string) common.IngredientSection {
	lower := strings.ToLower(name)
	for _, w := range seasoningWords {
		if strings.Contains(lower, w) {
			return common.SectionSeasoning
		}
	}
	return common.SectionDish
}
