package pipeline

import (
	"recipe-extractor/internal/pkg/common"
)

// Merge 基準結果與精煉結果的逐欄位合併
// 精煉值只有在非空或非零時才勝出，否則保留基準值；
// 逐欄位覆寫而非深度合併，輸出為新值，兩個輸入皆不被修改
//
// 已知近似：真正合法的零值（例如備料時間確實為 0 分鐘的精煉結果）
// 會被基準值蓋掉，規則上無法與「模型沒給值」區分
func Merge(baseline, refined *common.ParsedRecipe) *common.ParsedRecipe {
	if refined == nil {
		return baseline.Clone()
	}
	if baseline == nil {
		return refined.Clone()
	}

	out := baseline.Clone()

	if refined.Title != "" {
		out.Title = refined.Title
	}
	if refined.Description != "" {
		out.Description = refined.Description
	}
	if refined.Servings != 0 {
		out.Servings = refined.Servings
	}
	if refined.PrepTimeMinutes != 0 {
		out.PrepTimeMinutes = refined.PrepTimeMinutes
	}
	if refined.CookTimeMinutes != 0 {
		out.CookTimeMinutes = refined.CookTimeMinutes
	}

	// 食材以整張表為單位：精煉結果只要有任何分區非空就整表取代
	if refined.IngredientCount() > 0 {
		out.IngredientsBySection = make(map[common.IngredientSection][]common.IngredientItem, len(refined.IngredientsBySection))
		for sec, items := range refined.IngredientsBySection {
			copied := make([]common.IngredientItem, len(items))
			copy(copied, items)
			out.IngredientsBySection[sec] = copied
		}
	}
	if len(refined.Instructions) > 0 {
		out.Instructions = append([]string(nil), refined.Instructions...)
	}
	if len(refined.Tips) > 0 {
		out.Tips = append([]string(nil), refined.Tips...)
	}
	return out
}
