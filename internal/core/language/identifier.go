package language

import (
	"regexp"
	"strings"
	"unicode"

	"recipe-extractor/internal/pkg/common"
)

// Identifier 語言識別器，純函數、無 I/O
// 以字母統計與變音符號線索判斷主要語言，非拉丁文字直接看字元區段
type Identifier struct{}

// NewIdentifier 創建語言識別器
func NewIdentifier() *Identifier {
	return &Identifier{}
}

// Detect 偵測文字的主要語言
// 文字過短或線索不足時回傳 (LangUndefined, false)，
// 呼叫端須改用 LooksEnglish 的樣式啟發式而非直接失敗
func (i *Identifier) Detect(text string) (common.LanguageTag, bool) {
	if strings.TrimSpace(text) == "" {
		return common.LangUndefined, false
	}

	var letters, ascii, german, french, spanish, italian int
	var han, kana, hangul, cyrillic int

	for _, r := range text {
		if unicode.IsLetter(r) {
			letters++
		}
		switch {
		case r <= 0x007F:
			if (r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z') {
				ascii++
			}
		case unicode.Is(unicode.Han, r):
			han++
		case unicode.Is(unicode.Hiragana, r) || unicode.Is(unicode.Katakana, r):
			kana++
		case unicode.Is(unicode.Hangul, r):
			hangul++
		case unicode.Is(unicode.Cyrillic, r):
			cyrillic++
		case r >= 0x00C0 && r <= 0x017F:
			// 拉丁補充區的變音符號線索
			switch r {
			case 'ä', 'ö', 'ü', 'Ä', 'Ö', 'Ü', 'ß':
				german++
			case 'è', 'ê', 'à', 'ù', 'ç', 'œ', 'È', 'À', 'Ç':
				french++
			case 'á', 'í', 'ó', 'ú', 'ñ', 'Á', 'Í', 'Ó', 'Ú', 'Ñ', '¿', '¡':
				spanish++
			case 'ì', 'ò', 'Ì', 'Ò':
				italian++
			}
		}
	}

	if letters == 0 {
		return common.LangUndefined, false
	}

	// 非拉丁文字：假名優先於漢字（日文混用兩者）
	if kana > 0 && kana+han >= letters/4 {
		return common.LangJapanese, true
	}
	if hangul > 0 && hangul >= letters/4 {
		return common.LangKorean, true
	}
	if han > 0 && han >= letters/4 {
		return common.LangChineseS, true
	}
	if cyrillic > 0 && cyrillic >= letters/4 {
		return common.LangRussian, true
	}

	// 拉丁文字：比較變音符號線索
	if german > french && german > spanish && german > italian {
		return common.LangGerman, true
	}
	if french > german && french > spanish && french > italian {
		return common.LangFrench, true
	}
	if spanish > german && spanish > french && spanish > italian {
		return common.LangSpanish, true
	}
	if italian > german && italian > french && italian > spanish {
		return common.LangItalian, true
	}

	// 幾乎全為 ASCII 字母時視為英文
	if ascii > 0 && ascii*100/letters > 90 {
		return common.LangEnglish, true
	}

	return common.LangUndefined, false
}

var (
	measurementPattern = regexp.MustCompile(`(?i)\d+\s*(tbsp|tsp|cups?|g|kg|ml|l|oz|lbs?|tablespoons?|teaspoons?|grams?|ounces?|pounds?)\b`)

	englishRecipeWords = []string{
		"ingredient", "instruction", "direction", "recipe", "serving",
		"preheat", "bake", "cook", "minute", "oven", "mix", "stir",
	}
)

// LooksEnglish 樣式啟發式：偵測失敗時判斷文字是否仍像英文食譜
// 以常見英文食譜詞彙與量測樣式為依據
func LooksEnglish(text string) bool {
	lower := strings.ToLower(text)
	hits := 0
	for _, w := range englishRecipeWords {
		if strings.Contains(lower, w) {
			hits++
		}
	}
	if hits >= 2 {
		return true
	}
	return hits >= 1 && measurementPattern.MatchString(lower)
}
