package extract_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"recipe-extractor/internal/core/extract"
	"recipe-extractor/internal/pkg/common"
)

func TestNormalizeUnit(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"tablespoons", common.UnitTbsp},
		{"Tbsp", common.UnitTbsp},
		{"teaspoon", common.UnitTsp},
		{"cups", common.UnitCup},
		{"grams", common.UnitGram},
		{"lbs", common.UnitLb},
		{"oz.", common.UnitOz},
		{"pinches", common.UnitPinch},
		{"handful", "handful"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, extract.NormalizeUnit(tt.input))
	}
}

func TestDisambiguateOz(t *testing.T) {
	tests := []struct {
		name     string
		unit     string
		expected string
	}{
		// 液體配 fl_oz
		{"olive oil", common.UnitOz, common.UnitFlOz},
		{"chicken broth", common.UnitOz, common.UnitFlOz},
		{"whole milk", common.UnitOz, common.UnitFlOz},
		// 固體配 oz
		{"ground beef", common.UnitFlOz, common.UnitOz},
		{"cheddar cheese", common.UnitFlOz, common.UnitOz},
		// 無法判斷時保留原樣
		{"mystery ingredient", common.UnitOz, common.UnitOz},
		{"mystery ingredient", common.UnitFlOz, common.UnitFlOz},
		// 非 oz 單位不受影響
		{"olive oil", common.UnitCup, common.UnitCup},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, extract.DisambiguateOz(tt.name, tt.unit))
	}
}
