package extract

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	prepTimeLinePattern = regexp.MustCompile(`(?i)prep(?:aration)?\s*time\s*[:\-]?\s*([^\n]+)`)
	cookTimeLinePattern = regexp.MustCompile(`(?i)(?:cook(?:ing)?|bak(?:e|ing))\s*time\s*[:\-]?\s*([^\n]+)`)

	durationPattern = regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*(minutes?|mins?|hours?|hrs?|days?)\b`)

	servesPattern        = regexp.MustCompile(`(?i)\bserves\s+(\d+)`)
	servingsPattern      = regexp.MustCompile(`(?i)\b(\d+)\s+servings?\b`)
	servingsLabelPattern = regexp.MustCompile(`(?i)\bservings?\s*[:\-]?\s*(\d+)`)
)

// ParseMinutes 將時間片語轉為分鐘數
// "1 hour 30 minutes"=90、"overnight"=1440，無法解析回 0（表示未知）
func ParseMinutes(phrase string) int {
	lower := strings.ToLower(phrase)
	if strings.Contains(lower, "overnight") {
		return 1440
	}

	total := 0.0
	for _, m := range durationPattern.FindAllStringSubmatch(phrase, -1) {
		value, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			continue
		}
		unit := strings.ToLower(m[2])
		switch {
		case strings.HasPrefix(unit, "min"):
			total += value
		case strings.HasPrefix(unit, "h"):
			total += value * 60
		case strings.HasPrefix(unit, "day"):
			total += value * 1440
		}
	}
	return int(total)
}

// extractPrepTime 從整段文字取備料時間，缺席回 0
func extractPrepTime(text string) int {
	if m := prepTimeLinePattern.FindStringSubmatch(text); m != nil {
		return ParseMinutes(m[1])
	}
	return 0
}

// extractCookTime 從整段文字取烹調時間，缺席回 0
func extractCookTime(text string) int {
	if m := cookTimeLinePattern.FindStringSubmatch(text); m != nil {
		return ParseMinutes(m[1])
	}
	return 0
}

// ExtractServings 解析份量
// 支援 "serves N"、"N servings"、"servings: N"；範圍取第一個值；缺席回 0
func ExtractServings(text string) int {
	for _, p := range []*regexp.Regexp{servesPattern, servingsPattern, servingsLabelPattern} {
		if m := p.FindStringSubmatch(text); m != nil {
			if n, err := strconv.Atoi(m[1]); err == nil {
				return n
			}
		}
	}
	return 0
}
