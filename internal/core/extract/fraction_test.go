package extract_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"recipe-extractor/internal/core/extract"
)

func TestNormalizeAmount(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"1/2", "0.5"},
		{"1 1/2", "1.5"},
		{"1/12", "0.083"},
		{"3/4", "0.75"},
		{"2/3", "0.667"},
		{"2", "2"},
		{"1.5", "1.5"},
		{"", ""},
		{"to taste", "to taste"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, extract.NormalizeAmount(tt.input))
		})
	}
}

func TestNormalizeAmount_Idempotent(t *testing.T) {
	// 已是十進位的字串重複套用不變
	for _, s := range []string{"0.5", "1.5", "0.083", "4"} {
		assert.Equal(t, s, extract.NormalizeAmount(extract.NormalizeAmount(s)))
	}
}

func TestNormalizeAmount_VulgarFractions(t *testing.T) {
	assert.Equal(t, "0.5", extract.NormalizeAmount("½"))
	assert.Equal(t, "1.5", extract.NormalizeAmount("1½"))
	assert.Equal(t, "0.75", extract.NormalizeAmount("¾"))
}

func TestNormalizeAmount_ZeroDenominator(t *testing.T) {
	assert.Equal(t, "1/0", extract.NormalizeAmount("1/0"))
}
