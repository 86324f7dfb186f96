package ocr

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBestSuggestion(t *testing.T) {
	c := NewCorrector(0.6)

	cand := c.bestSuggestion("chickn")
	assert.Equal(t, "chickn", cand.Original)
	assert.Equal(t, "chicken", cand.Suggestion)
	assert.Greater(t, cand.Similarity, 0.6)

	// 已是正確詞彙時相似度為 1
	exact := c.bestSuggestion("chicken")
	assert.Equal(t, "chicken", exact.Suggestion)
	assert.Equal(t, 1.0, exact.Similarity)

	// 與詞彙表毫無相似之處的字仍回傳最高候選，但相似度低於門檻
	far := c.bestSuggestion("xyzqw")
	assert.LessOrEqual(t, far.Similarity, 0.6)
}
