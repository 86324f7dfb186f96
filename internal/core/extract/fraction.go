package extract

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	mixedNumberPattern    = regexp.MustCompile(`^(\d+)\s+(\d+)\s*/\s*(\d+)$`)
	simpleFractionPattern = regexp.MustCompile(`^(\d+)\s*/\s*(\d+)$`)

	// Unicode 分數字元對應
	vulgarFractions = map[rune]string{
		'½': "1/2", '⅓': "1/3", '⅔': "2/3",
		'¼': "1/4", '¾': "3/4", '⅕': "1/5",
		'⅙': "1/6", '⅛': "1/8", '⅜': "3/8",
		'⅝': "5/8", '⅞': "7/8",
	}
)

// NormalizeAmount 分數與帶分數正規化為十進位字串
// "1 1/2"→"1.5"、"1/12"→"0.083"、"3/4"→"0.75"
// 不符合任一樣式的輸入原樣回傳，已是十進位的字串重複套用不變
func NormalizeAmount(raw string) string {
	s := strings.TrimSpace(expandVulgarFractions(raw))

	if m := mixedNumberPattern.FindStringSubmatch(s); m != nil {
		whole, _ := strconv.ParseFloat(m[1], 64)
		num, _ := strconv.ParseFloat(m[2], 64)
		den, _ := strconv.ParseFloat(m[3], 64)
		if den == 0 {
			return raw
		}
		return formatDecimal(whole + num/den)
	}

	if m := simpleFractionPattern.FindStringSubmatch(s); m != nil {
		num, _ := strconv.ParseFloat(m[1], 64)
		den, _ := strconv.ParseFloat(m[2], 64)
		if den == 0 {
			return raw
		}
		return formatDecimal(num / den)
	}

	return raw
}

// expandVulgarFractions 將 Unicode 分數字元展開成 ASCII 形式
// "1½" 這種緊貼寫法補上空格變成帶分數
func expandVulgarFractions(s string) string {
	var sb strings.Builder
	prevDigit := false
	for _, r := range s {
		if frac, ok := vulgarFractions[r]; ok {
			if prevDigit {
				sb.WriteByte(' ')
			}
			sb.WriteString(frac)
			prevDigit = false
			continue
		}
		sb.WriteRune(r)
		prevDigit = r >= '0' && r <= '9'
	}
	return sb.String()
}

// formatDecimal 保留至多三位小數並去除尾端零
func formatDecimal(f float64) string {
	s := strconv.FormatFloat(f, 'f', 3, 64)
	s = strings.TrimRight(s, "0")
	s = strings.TrimSuffix(s, ".")
	return s
}
