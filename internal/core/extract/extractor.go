package extract

import (
	"regexp"
	"strings"

	"go.uber.org/zap"

	"recipe-extractor/internal/infrastructure/config"
	"recipe-extractor/internal/pkg/common"
)

var (
	ingredientsHeaderPattern  = regexp.MustCompile(`(?i)^\s*(?:ingredients?|what you need)\s*[:：]?\s*$`)
	instructionsHeaderPattern = regexp.MustCompile(`(?i)^\s*(?:instructions?|directions?|method|preparation|steps)\s*[:：]?\s*$`)
	tipsHeaderPattern         = regexp.MustCompile(`(?i)^\s*(?:tips?|notes?|chef'?s tips?)\s*[:：]?\s*$`)

	bulletPrefixPattern = regexp.MustCompile(`^\s*[-•*]\s*`)

	// metadataLinePattern 時間與份量行，不當作食材或步驟
	metadataLinePattern = regexp.MustCompile(`(?i)^\s*(?:prep(?:aration)?\s*time|cook(?:ing)?\s*time|bak(?:e|ing)\s*time|total\s*time|serves\s+\d|servings?\b)`)

	// amountTokenPattern 數量 token：整數、小數或分數
	amountTokenPattern = regexp.MustCompile(`^\d+(?:\.\d+)?$|^\d+\s*/\s*\d+$|^\d+/\d+$`)

	pinchPattern = regexp.MustCompile(`(?i)^a\s+pinch\s+of\s+(.+)$`)
)

// 解析區域
type region int

const (
	regionNone region = iota
	regionIngredients
	regionInstructions
	regionTips
)

// Extractor 食譜欄位抽取器
// 輸入為正規化後的英文文字，輸出結構化食譜
// 標題、所有分區與所有步驟皆為空時回傳 NoRecipeDetected
type Extractor struct {
	cfg *config.Config
}

// NewExtractor 創建抽取器
func NewExtractor(cfg *config.Config) *Extractor {
	return &Extractor{cfg: cfg}
}

// Extract 抽取結構化食譜
func (e *Extractor) Extract(text string) (*common.ParsedRecipe, error) {
	recipe := common.NewParsedRecipe()
	recipe.Servings = ExtractServings(text)
	recipe.PrepTimeMinutes = extractPrepTime(text)
	recipe.CookTimeMinutes = extractCookTime(text)

	var (
		current      = regionNone
		section      common.IngredientSection
		hasSection   bool
		mainSteps    []string
		subs         []subPrep
		activeSub    = -1
		descLines    []string
	)

	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			// 空行終止分區標題與附屬製備的支配範圍
			hasSection = false
			activeSub = -1
			continue
		}

		switch {
		case ingredientsHeaderPattern.MatchString(trimmed):
			current = regionIngredients
			hasSection = false
			continue
		case instructionsHeaderPattern.MatchString(trimmed):
			current = regionInstructions
			activeSub = -1
			continue
		case tipsHeaderPattern.MatchString(trimmed):
			current = regionTips
			continue
		}

		if metadataLinePattern.MatchString(trimmed) {
			continue
		}

		switch current {
		case regionIngredients:
			if sec, ok := sectionForHeader(trimmed); ok {
				section = sec
				hasSection = true
				continue
			}
			item, ok := parseIngredientLine(trimmed, true)
			if !ok {
				continue
			}
			target := defaultSectionFor(item.Name)
			if hasSection {
				target = section
			}
			recipe.IngredientsBySection[target] = append(recipe.IngredientsBySection[target], item)

		case regionInstructions:
			if sec, ok := sectionForHeader(trimmed); ok {
				subs = append(subs, subPrep{name: string(sec)})
				activeSub = len(subs) - 1
				continue
			}
			step := stripStepPrefix(trimmed)
			if step == "" {
				continue
			}
			if activeSub >= 0 {
				subs[activeSub].steps = append(subs[activeSub].steps, step)
			} else {
				mainSteps = append(mainSteps, step)
			}

		case regionTips:
			recipe.Tips = append(recipe.Tips, strings.TrimSpace(bulletPrefixPattern.ReplaceAllString(trimmed, "")))

		default:
			// 標題出現前的自由文字：第一行當標題，其後是描述；
			// 沒有標題區也可能直接出現食材行
			if item, ok := parseIngredientLine(trimmed, false); ok {
				target := defaultSectionFor(item.Name)
				recipe.IngredientsBySection[target] = append(recipe.IngredientsBySection[target], item)
				continue
			}
			if recipe.Title == "" {
				recipe.Title = trimmed
			} else {
				descLines = append(descLines, trimmed)
			}
		}
	}

	recipe.Description = strings.Join(descLines, " ")

	steps := orderWithSubPreps(mainSteps, subs)
	recipe.Instructions = CapInstructions(steps, e.cfg.Pipeline.MaxInstructions)

	if recipe.IsEmpty() {
		return nil, common.ErrNoRecipeDetected
	}

	common.LogDebug("欄位抽取完成",
		zap.String("標題", recipe.Title),
		zap.Int("食材數", recipe.IngredientCount()),
		zap.Int("步驟數", len(recipe.Instructions)),
	)
	return recipe, nil
}

// parseIngredientLine 解析單行食材
// inIngredientRegion 為真時允許只有名稱的行；否則必須帶數量或單位
func parseIngredientLine(line string, inIngredientRegion bool) (common.IngredientItem, bool) {
	clean := strings.TrimSpace(bulletPrefixPattern.ReplaceAllString(line, ""))
	if clean == "" {
		return common.IngredientItem{}, false
	}
	lower := strings.ToLower(clean)

	// 質性數量：保留為標記值而非猜測數字
	if m := pinchPattern.FindStringSubmatch(clean); m != nil {
		return common.IngredientItem{Amount: "1", Unit: common.UnitPinch, Name: strings.TrimSpace(m[1])}, true
	}
	if strings.Contains(lower, "to taste") || strings.Contains(lower, "as needed") {
		return common.IngredientItem{Amount: "0", Name: clean}, true
	}

	fields := strings.Fields(expandVulgarFractions(clean))
	if len(fields) == 0 {
		return common.IngredientItem{}, false
	}

	// 取數量 token：整數後接分數視為帶分數
	amountEnd := 0
	if amountTokenPattern.MatchString(fields[0]) {
		amountEnd = 1
		if len(fields) >= 2 && isWholePlusFraction(fields[0], fields[1]) {
			amountEnd = 2
		}
	}
	amount := strings.Join(fields[:amountEnd], " ")

	// 取單位 token
	unit := ""
	nameStart := amountEnd
	if nameStart < len(fields) && isKnownUnit(fields[nameStart]) {
		unit = NormalizeUnit(fields[nameStart])
		nameStart++
	}
	// "2 cups of flour" 的 of 丟棄
	if nameStart < len(fields) && strings.EqualFold(fields[nameStart], "of") {
		nameStart++
	}

	name := strings.Join(fields[nameStart:], " ")
	if name == "" {
		return common.IngredientItem{}, false
	}
	// 食材區之外只認得「數量 單位 名稱」形式，避免把標題誤判成食材
	if !inIngredientRegion && unit == "" {
		return common.IngredientItem{}, false
	}

	return common.IngredientItem{
		Amount: NormalizeAmount(amount),
		Unit:   DisambiguateOz(name, unit),
		Name:   name,
	}, true
}

// isWholePlusFraction 判斷兩個 token 是否構成帶分數（"1" + "1/2"）
func isWholePlusFraction(whole, frac string) bool {
	if strings.ContainsAny(whole, "./") {
		return false
	}
	return simpleFractionPattern.MatchString(frac)
}
