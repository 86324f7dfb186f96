package translate

import (
	"sort"
	"strings"
	"unicode"

	"recipe-extractor/internal/pkg/common"
)

// 靜態詞典：遠端翻譯不可用時的降級路徑
// 只涵蓋食譜領域詞彙（食材、單位、動詞、段落標題），
// 替換採最長鍵優先，避免部分匹配破壞長詞
var dictionaries = map[common.LanguageTag]map[string]string{
	common.LangGerman: {
		// 段落標題
		"zutaten":     "ingredients",
		"zubereitung": "instructions",
		"anleitung":   "instructions",
		"portionen":   "servings",
		"gewürze":     "seasoning",
		"soße":        "sauce",
		"sosse":       "sauce",
		"teig":        "dough",
		"belag":       "topping",
		"tipps":       "tips",
		// 單位
		"esslöffel": "tbsp",
		"teelöffel": "tsp",
		"tasse":     "cup",
		"prise":     "pinch",
		"stück":     "piece",
		// 食材
		"hähnchenbrust":   "chicken breast",
		"hühnerbrust":     "chicken breast",
		"rindfleisch":     "beef",
		"schweinefleisch": "pork",
		"salz":            "salt",
		"pfeffer":         "pepper",
		"zucker":          "sugar",
		"mehl":            "flour",
		"eier":            "eggs",
		"ei":              "egg",
		"milch":           "milk",
		"sahne":           "cream",
		"knoblauch":       "garlic",
		"zwiebel":         "onion",
		"öl":              "oil",
		"wasser":          "water",
		"käse":            "cheese",
		// 動詞
		"vorheizen":  "preheat",
		"backen":     "bake",
		"kochen":     "boil",
		"braten":     "fry",
		"mischen":    "mix",
		"rühren":     "stir",
		"schneiden":  "cut",
		"hinzufügen": "add",
		"servieren":  "serve",
	},
	common.LangFrench: {
		"ingrédients":      "ingredients",
		"préparation":      "instructions",
		"portions":         "servings",
		"assaisonnement":   "seasoning",
		"pâte":             "dough",
		"garniture":        "topping",
		"astuces":          "tips",
		"cuillère à soupe": "tbsp",
		"cuillère à café":  "tsp",
		"pincée":           "pinch",
		"blanc de poulet":  "chicken breast",
		"poulet":           "chicken",
		"boeuf":            "beef",
		"sel":              "salt",
		"poivre":           "pepper",
		"sucre":            "sugar",
		"farine":           "flour",
		"oeufs":            "eggs",
		"lait":             "milk",
		"ail":              "garlic",
		"oignon":           "onion",
		"huile":            "oil",
		"eau":              "water",
		"fromage":          "cheese",
		"beurre":           "butter",
		"préchauffer":      "preheat",
		"cuire":            "cook",
		"mélanger":         "mix",
		"ajouter":          "add",
		"couper":           "cut",
		"servir":           "serve",
	},
	common.LangSpanish: {
		"ingredientes":     "ingredients",
		"preparación":      "instructions",
		"instrucciones":    "instructions",
		"porciones":        "servings",
		"condimentos":      "seasoning",
		"masa":             "dough",
		"cobertura":        "topping",
		"consejos":         "tips",
		"cucharada":        "tbsp",
		"cucharadita":      "tsp",
		"taza":             "cup",
		"pizca":            "pinch",
		"pechuga de pollo": "chicken breast",
		"pollo":            "chicken",
		"carne de res":     "beef",
		"sal":              "salt",
		"pimienta":         "pepper",
		"azúcar":           "sugar",
		"harina":           "flour",
		"huevos":           "eggs",
		"leche":            "milk",
		"ajo":              "garlic",
		"cebolla":          "onion",
		"aceite":           "oil",
		"agua":             "water",
		"queso":            "cheese",
		"mantequilla":      "butter",
		"precalentar":      "preheat",
		"hornear":          "bake",
		"cocinar":          "cook",
		"mezclar":          "mix",
		"añadir":           "add",
		"cortar":           "cut",
		"servir":           "serve",
	},
	common.LangItalian: {
		"ingredienti":    "ingredients",
		"preparazione":   "instructions",
		"porzioni":       "servings",
		"condimento":     "seasoning",
		"impasto":        "dough",
		"cucchiaio":      "tbsp",
		"cucchiaino":     "tsp",
		"pizzico":        "pinch",
		"petto di pollo": "chicken breast",
		"pollo":          "chicken",
		"manzo":          "beef",
		"sale":           "salt",
		"pepe":           "pepper",
		"zucchero":       "sugar",
		"farina":         "flour",
		"uova":           "eggs",
		"latte":          "milk",
		"aglio":          "garlic",
		"cipolla":        "onion",
		"olio":           "oil",
		"acqua":          "water",
		"formaggio":      "cheese",
		"burro":          "butter",
		"preriscaldare":  "preheat",
		"cuocere":        "cook",
		"mescolare":      "mix",
		"aggiungere":     "add",
		"tagliare":       "cut",
		"servire":        "serve",
	},
}

// unitNames 受控單位詞彙在各語言的顯示名稱
var unitNames = map[common.LanguageTag]map[string]string{
	common.LangGerman: {
		common.UnitTbsp: "Esslöffel", common.UnitTsp: "Teelöffel",
		common.UnitCup: "Tasse", common.UnitPinch: "Prise", common.UnitPiece: "Stück",
	},
	common.LangFrench: {
		common.UnitTbsp: "cuillère à soupe", common.UnitTsp: "cuillère à café",
		common.UnitCup: "tasse", common.UnitPinch: "pincée", common.UnitPiece: "pièce",
	},
	common.LangSpanish: {
		common.UnitTbsp: "cucharada", common.UnitTsp: "cucharadita",
		common.UnitCup: "taza", common.UnitPinch: "pizca", common.UnitPiece: "pieza",
	},
}

// LocalizedUnitName 回傳單位在指定語言的顯示名稱，無對應時回傳原 token
func LocalizedUnitName(unit string, lang common.LanguageTag) string {
	if names, ok := unitNames[lang]; ok {
		if name, ok := names[unit]; ok {
			return name
		}
	}
	return unit
}

// dictEntry 已折疊的詞典條目
type dictEntry struct {
	folded      []rune
	replacement string
}

// foldedDictionaries 啟動時預先折疊並依長度排序的詞典
var foldedDictionaries = buildFoldedDictionaries()

func buildFoldedDictionaries() map[common.LanguageTag][]dictEntry {
	out := make(map[common.LanguageTag][]dictEntry, len(dictionaries))
	for lang, table := range dictionaries {
		entries := make([]dictEntry, 0, len(table))
		for key, repl := range table {
			entries = append(entries, dictEntry{folded: foldString(key), replacement: repl})
		}
		// 最長鍵優先，長度相同時按字典序保持確定性
		sort.Slice(entries, func(i, j int) bool {
			if len(entries[i].folded) != len(entries[j].folded) {
				return len(entries[i].folded) > len(entries[j].folded)
			}
			return string(entries[i].folded) < string(entries[j].folded)
		})
		out[lang] = entries
	}
	return out
}

// foldRune 小寫化並去除變音符號，ß 展開為 ss
func foldRune(r rune) []rune {
	r = unicode.ToLower(r)
	switch r {
	case 'ä', 'à', 'á', 'â', 'ã', 'å':
		return []rune{'a'}
	case 'è', 'é', 'ê', 'ë':
		return []rune{'e'}
	case 'ì', 'í', 'î', 'ï':
		return []rune{'i'}
	case 'ö', 'ò', 'ó', 'ô', 'õ':
		return []rune{'o'}
	case 'ü', 'ù', 'ú', 'û':
		return []rune{'u'}
	case 'ç':
		return []rune{'c'}
	case 'ñ':
		return []rune{'n'}
	case 'œ':
		return []rune{'o', 'e'}
	case 'ß':
		return []rune{'s', 's'}
	}
	return []rune{r}
}

func foldString(s string) []rune {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		out = append(out, foldRune(r)...)
	}
	return out
}

// ApplyDictionary 以靜態詞典替換文字中的領域詞彙
// 大小寫與變音符號不敏感；比對以詞邊界為準；
// 替換保留來源的大小寫樣式。回傳替換後文字與替換次數
func ApplyDictionary(text string, lang common.LanguageTag) (string, int) {
	entries, ok := foldedDictionaries[lang]
	if !ok || len(entries) == 0 {
		return text, 0
	}

	orig := []rune(text)
	// 折疊文字並保留每個折疊字元對應的原始 rune 索引
	folded := make([]rune, 0, len(orig))
	origIdx := make([]int, 0, len(orig))
	for i, r := range orig {
		for _, f := range foldRune(r) {
			folded = append(folded, f)
			origIdx = append(origIdx, i)
		}
	}

	var sb strings.Builder
	subs := 0
	fi := 0
	for fi < len(folded) {
		matched := false
		// 只在詞首嘗試匹配
		if isWordBoundary(folded, fi-1) {
			for _, e := range entries {
				end := fi + len(e.folded)
				if end > len(folded) {
					continue
				}
				if string(folded[fi:end]) != string(e.folded) {
					continue
				}
				if !isWordBoundary(folded, end) {
					continue
				}
				// 取得原文區段並套用其大小寫樣式
				startO := origIdx[fi]
				endO := len(orig)
				if end < len(folded) {
					endO = origIdx[end]
				}
				sb.WriteString(applyCasePattern(string(orig[startO:endO]), e.replacement))
				// 跳過原文區段對應的所有折疊字元
				for fi < len(folded) && origIdx[fi] < endO {
					fi++
				}
				subs++
				matched = true
				break
			}
		}
		if !matched {
			sb.WriteRune(orig[origIdx[fi]])
			// 跳過同一原始 rune 的展開字元（ß→ss 這類）
			cur := origIdx[fi]
			for fi < len(folded) && origIdx[fi] == cur {
				fi++
			}
		}
	}
	return sb.String(), subs
}

// isWordBoundary 索引外或該處不是字母即為詞邊界
func isWordBoundary(folded []rune, i int) bool {
	if i < 0 || i >= len(folded) {
		return true
	}
	return !unicode.IsLetter(folded[i])
}

// applyCasePattern 將來源區段的大小寫樣式套到替換字串
func applyCasePattern(source, replacement string) string {
	letters := 0
	upper := 0
	for _, r := range source {
		if unicode.IsLetter(r) {
			letters++
			if unicode.IsUpper(r) {
				upper++
			}
		}
	}
	if letters >= 2 && upper == letters {
		return strings.ToUpper(replacement)
	}
	if letters > 0 {
		first := []rune(source)[0]
		if unicode.IsUpper(first) {
			rs := []rune(replacement)
			if len(rs) > 0 {
				rs[0] = unicode.ToUpper(rs[0])
			}
			return string(rs)
		}
	}
	return replacement
}
