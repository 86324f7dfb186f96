package ocr

import (
	"regexp"
	"strings"
	"unicode"

	"go.uber.org/zap"

	"recipe-extractor/internal/pkg/common"
)

var (
	// measurementLinePattern 行首為數量與單位的行，內容一律不修改
	measurementLinePattern = regexp.MustCompile(`^\s*\d+(?:[./]\d+)?\s*(?:tbsp|tbs|tsp|cups?|g|kg|ml|l|oz|fl_oz|lbs?|grams?|ounces?|pounds?|tablespoons?|teaspoons?|pieces?|pinch(?:es)?|cloves?|cans?|sticks?|liters?)\b`)

	// numberWordPattern 純數字、小數或分數
	numberWordPattern = regexp.MustCompile(`^\d+(?:[./]\d+)?$`)

	// numberedLinePattern 帶序號的行，群組為序號與其餘內容
	numberedLinePattern = regexp.MustCompile(`^(\s*[-•*]?\s*)(\d+)\.\s*(.+)$`)
)

// Corrector OCR 文字修復器
// 決定性、無網路 I/O；任何步驟若會把文字清空就放棄該步驟，
// 修復絕不摧毀內容
type Corrector struct {
	threshold float64
}

// NewCorrector 創建修復器，threshold 為接受建議的最低相似度
func NewCorrector(threshold float64) *Corrector {
	return &Corrector{threshold: threshold}
}

// Correct 修復 OCR 雜訊
// 步驟：統一換行 → 逐行逐詞拼字修復（量測行跳過）→ 結構清理
func (c *Corrector) Correct(raw string) string {
	text := normalizeLineEndings(raw)
	if strings.TrimSpace(text) == "" {
		return raw
	}

	corrected := c.correctLines(text)
	corrected = keepNonEmpty(corrected, text)

	cleaned := structuralCleanup(corrected)
	cleaned = keepNonEmpty(cleaned, corrected)

	return cleaned
}

// keepNonEmpty 結果為空時退回前一個非空版本
func keepNonEmpty(result, previous string) string {
	if strings.TrimSpace(result) == "" {
		return previous
	}
	return result
}

// normalizeLineEndings 統一換行符並移除結尾空白行
// 內部空白行具結構意義（段落邊界），必須保留
func normalizeLineEndings(raw string) string {
	text := strings.ReplaceAll(raw, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	lines := strings.Split(text, "\n")
	end := len(lines)
	for end > 0 && strings.TrimSpace(lines[end-1]) == "" {
		end--
	}
	return strings.Join(lines[:end], "\n")
}

// correctLines 逐行修復，量測行原樣保留
func (c *Corrector) correctLines(text string) string {
	lines := strings.Split(text, "\n")
	out := make([]string, len(lines))
	for i, line := range lines {
		if measurementLinePattern.MatchString(line) {
			out[i] = line
			continue
		}
		out[i] = c.correctWords(line)
	}
	return strings.Join(out, "\n")
}

// correctWords 逐詞修復單行
func (c *Corrector) correctWords(line string) string {
	if strings.TrimSpace(line) == "" {
		return line
	}
	words := strings.Fields(line)
	for i, word := range words {
		words[i] = c.correctWord(word)
	}
	// 保留行首縮排
	indent := line[:len(line)-len(strings.TrimLeft(line, " \t"))]
	return indent + strings.Join(words, " ")
}

// correctWord 修復單一單字
// 先剝除前後標點再比對，回寫時還原標點與大小寫樣式
func (c *Corrector) correctWord(word string) string {
	prefix, core, suffix := splitPunctuation(word)
	if core == "" {
		return word
	}
	lower := strings.ToLower(core)

	// 數字、分數、單位與常用字不修改；含數字的混合 token（350F、3.Preheat）也跳過
	if numberWordPattern.MatchString(lower) || isUnitToken(lower) || isCommonWord(lower) ||
		strings.ContainsAny(lower, "0123456789") {
		return word
	}

	// 固定誤拼對照優先
	if fixed, ok := fixedCorrections[lower]; ok {
		return prefix + applyCasePattern(core, fixed) + suffix
	}

	// 過短的字不做編輯距離修復，誤判率太高
	if len([]rune(lower)) < 3 {
		return word
	}

	cand := c.bestSuggestion(lower)
	if cand.Suggestion == "" || cand.Similarity <= c.threshold {
		return word
	}
	if cand.Suggestion == lower {
		return word
	}
	common.LogDebug("拼字修復",
		zap.String("原字", core),
		zap.String("建議", cand.Suggestion),
		zap.Float64("相似度", cand.Similarity),
	)
	return prefix + applyCasePattern(core, cand.Suggestion) + suffix
}

// bestSuggestion 在詞彙表中找相似度最高的更正候選
func (c *Corrector) bestSuggestion(lower string) common.CorrectionCandidate {
	best := common.CorrectionCandidate{Original: lower}
	for _, candidate := range recipeVocabulary {
		if candidate == lower {
			// 已是正確詞彙
			return common.CorrectionCandidate{Original: lower, Suggestion: candidate, Similarity: 1.0}
		}
		sim := Similarity(candidate, lower)
		if sim > best.Similarity {
			best.Suggestion = candidate
			best.Similarity = sim
		}
	}
	return best
}

// splitPunctuation 剝除前後標點，回傳 (前綴, 核心, 後綴)
func splitPunctuation(word string) (string, string, string) {
	runes := []rune(word)
	start := 0
	for start < len(runes) && !unicode.IsLetter(runes[start]) && !unicode.IsDigit(runes[start]) {
		start++
	}
	end := len(runes)
	for end > start && !unicode.IsLetter(runes[end-1]) && !unicode.IsDigit(runes[end-1]) {
		end--
	}
	return string(runes[:start]), string(runes[start:end]), string(runes[end:])
}

// applyCasePattern 將來源的大小寫樣式套到替換字
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
	if letters > 0 && unicode.IsUpper([]rune(source)[0]) {
		rs := []rune(replacement)
		if len(rs) > 0 {
			rs[0] = unicode.ToUpper(rs[0])
		}
		return string(rs)
	}
	return replacement
}

// instructionVerbs 步驟行開頭常見的動詞，用來區分步驟與食材的序號行
var instructionVerbs = map[string]bool{
	"preheat": true, "heat": true, "mix": true, "stir": true, "add": true,
	"combine": true, "bake": true, "cook": true, "boil": true, "simmer": true,
	"whisk": true, "pour": true, "place": true, "remove": true, "serve": true,
	"season": true, "cover": true, "let": true, "transfer": true, "cut": true,
	"chop": true, "slice": true, "drain": true, "fold": true, "spread": true,
	"sprinkle": true, "marinate": true, "repeat": true, "set": true,
}

// structuralCleanup 序號行清理
// 步驟行統一為「N. 內容」；食材行的「12. chicken」這類句點雜訊改為「12 chicken」，
// 行首的項目符號保留
func structuralCleanup(text string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		m := numberedLinePattern.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		marker, number, rest := m[1], m[2], m[3]
		fields := strings.Fields(rest)
		if len(fields) == 0 {
			continue
		}
		firstWord := strings.ToLower(strings.Trim(fields[0], ",.;:"))
		if instructionVerbs[firstWord] {
			// 步驟行：統一為「N. 內容」
			lines[i] = marker + number + ". " + rest
			continue
		}
		// 食材行：句點是 OCR 雜訊，序號其實是數量
		lines[i] = marker + number + " " + rest
	}
	return strings.Join(lines, "\n")
}
