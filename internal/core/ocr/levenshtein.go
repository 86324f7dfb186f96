package ocr

// Levenshtein 計算兩字串的編輯距離
// 標準動態規劃，替換、插入、刪除成本皆為 1，只保留兩列以節省記憶體
func Levenshtein(a, b string) int {
	ra := []rune(a)
	rb := []rune(b)
	if len(ra) == 0 {
		return len(rb)
	}
	if len(rb) == 0 {
		return len(ra)
	}

	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for j := 0; j <= len(rb); j++ {
		prev[j] = j
	}

	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			curr[j] = min3(
				prev[j]+1,      // 刪除
				curr[j-1]+1,    // 插入
				prev[j-1]+cost, // 替換
			)
		}
		prev, curr = curr, prev
	}
	return prev[len(rb)]
}

// Similarity 正規化相似度：1 - 編輯距離 / 較長字串長度
// 兩字串皆空時視為完全相同
func Similarity(a, b string) float64 {
	la := len([]rune(a))
	lb := len([]rune(b))
	maxLen := la
	if lb > maxLen {
		maxLen = lb
	}
	if maxLen == 0 {
		return 1.0
	}
	return 1.0 - float64(Levenshtein(a, b))/float64(maxLen)
}

func min3(a, b, c int) int {
	if b < a {
		a = b
	}
	if c < a {
		a = c
	}
	return a
}
