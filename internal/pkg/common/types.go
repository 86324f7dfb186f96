package common

import (
	"fmt"
	"strings"
)

// LanguageTag BCP-47 風格的語言代碼（例如 "de"、"zh-Hans"）
type LanguageTag string

const (
	LangEnglish   LanguageTag = "en"
	LangGerman    LanguageTag = "de"
	LangFrench    LanguageTag = "fr"
	LangSpanish   LanguageTag = "es"
	LangItalian   LanguageTag = "it"
	LangChineseS  LanguageTag = "zh-Hans"
	LangJapanese  LanguageTag = "ja"
	LangKorean    LanguageTag = "ko"
	LangRussian   LanguageTag = "ru"
	LangUndefined LanguageTag = ""
)

// IngredientSection 食材在食譜中的結構角色
type IngredientSection string

const (
	SectionDish      IngredientSection = "dish"
	SectionMarinade  IngredientSection = "marinade"
	SectionSeasoning IngredientSection = "seasoning"
	SectionBatter    IngredientSection = "batter"
	SectionSauce     IngredientSection = "sauce"
	SectionBase      IngredientSection = "base"
	SectionDough     IngredientSection = "dough"
	SectionTopping   IngredientSection = "topping"
)

// AllSections 固定的分區順序，輸出與合併時皆依此順序遍歷
var AllSections = []IngredientSection{
	SectionDish,
	SectionMarinade,
	SectionSeasoning,
	SectionBatter,
	SectionSauce,
	SectionBase,
	SectionDough,
	SectionTopping,
}

// IngredientItem 單一食材
// Amount 以十進位字串保存：原始分數須先轉換，"as needed"/"to taste"
// 這類標記值也要能原樣保留，故不用數值型別
type IngredientItem struct {
	Amount string `json:"amount"`
	Unit   string `json:"unit"`
	Name   string `json:"name"`
}

// 受控單位詞彙
const (
	UnitTbsp  = "tbsp"
	UnitTsp   = "tsp"
	UnitCup   = "cup"
	UnitGram  = "g"
	UnitKg    = "kg"
	UnitMl    = "ml"
	UnitLiter = "l"
	UnitOz    = "oz"
	UnitFlOz  = "fl_oz"
	UnitLb    = "lb"
	UnitPiece = "piece"
	UnitPinch = "pinch"
)

// ParsedRecipe 結構化食譜，管線每次呼叫都會建立新值，回傳後不再修改
type ParsedRecipe struct {
	Title                string                                  `json:"title"`
	Description          string                                  `json:"description"`
	Servings             int                                     `json:"servings"`
	PrepTimeMinutes      int                                     `json:"prep_time_minutes"`
	CookTimeMinutes      int                                     `json:"cook_time_minutes"`
	IngredientsBySection map[IngredientSection][]IngredientItem `json:"ingredients_by_section"`
	Instructions         []string                                `json:"instructions"`
	Tips                 []string                                `json:"tips"`
}

// NewParsedRecipe 建立空白食譜
func NewParsedRecipe() *ParsedRecipe {
	return &ParsedRecipe{
		IngredientsBySection: make(map[IngredientSection][]IngredientItem, len(AllSections)),
	}
}

// IsEmpty 標題、所有分區與所有步驟皆為空時成立
func (r *ParsedRecipe) IsEmpty() bool {
	if r == nil {
		return true
	}
	if strings.TrimSpace(r.Title) != "" {
		return false
	}
	for _, items := range r.IngredientsBySection {
		if len(items) > 0 {
			return false
		}
	}
	return len(r.Instructions) == 0
}

// IngredientCount 所有分區的食材總數
func (r *ParsedRecipe) IngredientCount() int {
	n := 0
	for _, items := range r.IngredientsBySection {
		n += len(items)
	}
	return n
}

// Clone 深拷貝，合併階段以此產生新值而不改動基準結果
func (r *ParsedRecipe) Clone() *ParsedRecipe {
	if r == nil {
		return nil
	}
	out := &ParsedRecipe{
		Title:           r.Title,
		Description:     r.Description,
		Servings:        r.Servings,
		PrepTimeMinutes: r.PrepTimeMinutes,
		CookTimeMinutes: r.CookTimeMinutes,
	}
	out.IngredientsBySection = make(map[IngredientSection][]IngredientItem, len(r.IngredientsBySection))
	for sec, items := range r.IngredientsBySection {
		copied := make([]IngredientItem, len(items))
		copy(copied, items)
		out.IngredientsBySection[sec] = copied
	}
	out.Instructions = append([]string(nil), r.Instructions...)
	out.Tips = append([]string(nil), r.Tips...)
	return out
}

// CorrectionCandidate 單字層級的更正候選，只在 OCR 修正內部使用
type CorrectionCandidate struct {
	Original   string
	Suggestion string
	Similarity float64
}

// FormatIngredientItem 格式化單一食材為可讀字串
func FormatIngredientItem(item IngredientItem) string {
	if item.Amount == "" && item.Unit == "" {
		return item.Name
	}
	return strings.TrimSpace(strings.Join(strings.Fields(fmt.Sprintf("%s %s %s", item.Amount, item.Unit, item.Name)), " "))
}

// FormatSections 格式化分區食材列表（除錯與提示詞使用）
func FormatSections(sections map[IngredientSection][]IngredientItem) string {
	var sb strings.Builder
	for _, sec := range AllSections {
		items := sections[sec]
		if len(items) == 0 {
			continue
		}
		sb.WriteString(fmt.Sprintf("[%s]\n", sec))
		for _, item := range items {
			sb.WriteString("- " + FormatIngredientItem(item) + "\n")
		}
	}
	return sb.String()
}
