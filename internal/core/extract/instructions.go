package extract

import (
	"regexp"
	"strings"
)

var (
	stepPrefixPattern = regexp.MustCompile(`(?i)^\s*(?:\d+[.)]\s*|[-•*]\s+|step\s+\d+[:.]?\s*)`)

	// pageRefPattern 跨頁引用，例如 "(see page 12)"
	pageRefPattern = regexp.MustCompile(`(?i)\s*\(?\s*see\s+page\s+\d+\s*\)?`)
)

// 步驟階段：備料、烹調、完成
const (
	phasePrep = iota
	phaseCook
	phaseFinish
)

var (
	prepVerbs = []string{
		"chop", "cut", "slice", "dice", "mince", "mix", "whisk", "combine",
		"season", "marinate", "knead", "prepare", "soak", "measure", "beat",
		"preheat", "grease", "rinse", "peel", "fold",
	}
	cookVerbs = []string{
		"bake", "boil", "simmer", "fry", "saute", "grill", "roast", "cook",
		"heat", "melt", "stir", "add", "pour", "reduce", "steam", "toast",
		"flip", "brown",
	}
	finishVerbs = []string{
		"serve", "garnish", "sprinkle", "plate", "cool", "rest", "transfer",
		"drizzle", "top", "slice and serve", "enjoy",
	}
)

// stripStepPrefix 移除序號、項目符號與 "Step N" 前綴
func stripStepPrefix(line string) string {
	return strings.TrimSpace(stepPrefixPattern.ReplaceAllString(line, ""))
}

// phaseOf 判斷步驟所屬階段
// 以最先出現的動詞為準，無動詞時沿用前一步驟的階段
func phaseOf(step string, prev int) int {
	lower := strings.ToLower(step)
	bestIdx := len(lower) + 1
	best := prev
	for _, v := range prepVerbs {
		if i := wordIndex(lower, v); i >= 0 && i < bestIdx {
			bestIdx, best = i, phasePrep
		}
	}
	for _, v := range cookVerbs {
		if i := wordIndex(lower, v); i >= 0 && i < bestIdx {
			bestIdx, best = i, phaseCook
		}
	}
	for _, v := range finishVerbs {
		if i := wordIndex(lower, v); i >= 0 && i < bestIdx {
			bestIdx, best = i, phaseFinish
		}
	}
	return best
}

// wordIndex 整詞出現位置，找不到回 -1
func wordIndex(text, word string) int {
	idx := 0
	for {
		i := strings.Index(text[idx:], word)
		if i < 0 {
			return -1
		}
		start := idx + i
		end := start + len(word)
		beforeOK := start == 0 || !isASCIILetter(text[start-1])
		afterOK := end == len(text) || !isASCIILetter(text[end])
		if beforeOK && afterOK {
			return start
		}
		idx = start + 1
	}
}

func isASCIILetter(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

// CapInstructions 將步驟數壓到上限
// 先合併相鄰同階段步驟，仍超出時合併相鄰步驟，順序不變
func CapInstructions(steps []string, max int) []string {
	if max <= 0 || len(steps) <= max {
		return steps
	}

	phases := make([]int, len(steps))
	prev := phasePrep
	for i, s := range steps {
		phases[i] = phaseOf(s, prev)
		prev = phases[i]
	}

	// 合併相鄰同階段步驟
	for len(steps) > max {
		merged := false
		for i := 0; i+1 < len(steps); i++ {
			if phases[i] == phases[i+1] {
				steps[i] = joinSteps(steps[i], steps[i+1])
				steps = append(steps[:i+1], steps[i+2:]...)
				phases = append(phases[:i+1], phases[i+2:]...)
				merged = true
				break
			}
		}
		if !merged {
			break
		}
	}

	// 階段已無可合併的相鄰組合，強制合併最後兩步
	for len(steps) > max {
		n := len(steps)
		steps[n-2] = joinSteps(steps[n-2], steps[n-1])
		steps = steps[:n-1]
	}
	return steps
}

// joinSteps 合併兩個步驟為一句
func joinSteps(a, b string) string {
	a = strings.TrimSpace(a)
	b = strings.TrimSpace(b)
	if !strings.HasSuffix(a, ".") && !strings.HasSuffix(a, ";") {
		a += "."
	}
	return a + " " + b
}

// subPrep 附屬製備（醃料、醬汁這類）的名稱與步驟
type subPrep struct {
	name  string
	steps []string
}

// orderWithSubPreps 引用附屬製備的步驟前插入該製備的步驟
// 「prepare the marinade (see page 12)」這類引用會把醃料步驟排到消費它的步驟之前，
// 頁碼引用本身移除。未被引用的附屬製備步驟附加在最後
func orderWithSubPreps(main []string, subs []subPrep) []string {
	if len(subs) == 0 {
		return main
	}

	used := make(map[int]bool, len(subs))
	out := make([]string, 0, len(main)+8)
	for _, step := range main {
		lower := strings.ToLower(step)
		for si, sub := range subs {
			if used[si] {
				continue
			}
			if strings.Contains(lower, strings.ToLower(sub.name)) {
				out = append(out, sub.steps...)
				used[si] = true
			}
		}
		out = append(out, strings.TrimSpace(pageRefPattern.ReplaceAllString(step, "")))
	}
	for si, sub := range subs {
		if !used[si] {
			out = append(out, sub.steps...)
		}
	}
	return out
}
