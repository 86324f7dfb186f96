package extract

import (
	"strings"

	"recipe-extractor/internal/pkg/common"
)

// unitAliases 單位別名到受控詞彙的對應
var unitAliases = map[string]string{
	"tbsp": common.UnitTbsp, "tbs": common.UnitTbsp,
	"tablespoon": common.UnitTbsp, "tablespoons": common.UnitTbsp,
	"tsp": common.UnitTsp, "teaspoon": common.UnitTsp, "teaspoons": common.UnitTsp,
	"cup": common.UnitCup, "cups": common.UnitCup,
	"g": common.UnitGram, "gram": common.UnitGram, "grams": common.UnitGram,
	"kg": common.UnitKg, "kilogram": common.UnitKg, "kilograms": common.UnitKg,
	"ml": common.UnitMl, "milliliter": common.UnitMl, "milliliters": common.UnitMl,
	"l": common.UnitLiter, "liter": common.UnitLiter, "liters": common.UnitLiter,
	"oz": common.UnitOz, "ounce": common.UnitOz, "ounces": common.UnitOz,
	"fl_oz": common.UnitFlOz, "floz": common.UnitFlOz,
	"lb": common.UnitLb, "lbs": common.UnitLb, "pound": common.UnitLb, "pounds": common.UnitLb,
	"piece": common.UnitPiece, "pieces": common.UnitPiece,
	"pinch": common.UnitPinch, "pinches": common.UnitPinch,
}

// NormalizeUnit 將單位別名轉為受控詞彙，未知單位原樣回傳小寫
func NormalizeUnit(token string) string {
	lower := strings.ToLower(strings.TrimSpace(token))
	lower = strings.TrimSuffix(lower, ".")
	if unit, ok := unitAliases[lower]; ok {
		return unit
	}
	return lower
}

// isKnownUnit 判斷 token 是否為可辨識的單位
func isKnownUnit(token string) bool {
	lower := strings.ToLower(strings.TrimSpace(token))
	lower = strings.TrimSuffix(lower, ".")
	_, ok := unitAliases[lower]
	return ok
}

// 液體與固體食材詞表，oz 與 fl_oz 消歧使用
var (
	liquidWords = []string{
		"water", "milk", "oil", "broth", "stock", "juice", "wine", "vinegar",
		"cream", "sauce", "syrup", "extract", "beer", "coconut milk",
	}
	solidWords = []string{
		"meat", "beef", "chicken", "pork", "flour", "cheese", "butter",
		"sugar", "chocolate", "nuts", "rice", "pasta", "bread", "mushroom",
		"tofu", "shrimp", "fish", "salmon",
	}
)

// DisambiguateOz 依食材名稱修正 oz 與 fl_oz
// 液體配 fl_oz、固體配 oz；無法判斷時保留原單位
func DisambiguateOz(name, unit string) string {
	if unit != common.UnitOz && unit != common.UnitFlOz {
		return unit
	}
	lower := strings.ToLower(name)
	for _, w := range liquidWords {
		if strings.Contains(lower, w) {
			return common.UnitFlOz
		}
	}
	for _, w := range solidWords {
		if strings.Contains(lower, w) {
			return common.UnitOz
		}
	}
	return unit
}
