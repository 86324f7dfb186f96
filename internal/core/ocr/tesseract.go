package ocr

import (
	"context"
	"strings"
	"time"

	"github.com/otiai10/gosseract/v2"
	"go.uber.org/zap"

	"recipe-extractor/internal/pkg/common"
)

// TextExtractor 圖片轉文字的能力介面
// 管線只依賴此介面，測試時可注入假實作
type TextExtractor interface {
	ExtractText(ctx context.Context, imageData []byte) (string, error)
}

// TesseractExtractor 基於 Tesseract 的本機 OCR 實作
type TesseractExtractor struct {
	languages []string
}

// NewTesseractExtractor 創建 OCR 實作
// languages 為 Tesseract 語言包代碼（例如 "eng"、"deu"）
func NewTesseractExtractor(languages []string) *TesseractExtractor {
	if len(languages) == 0 {
		languages = []string{"eng"}
	}
	return &TesseractExtractor{languages: languages}
}

// ExtractText 對單張圖片執行 OCR
// Tesseract client 非並行安全，每次呼叫建立獨立 client
func (t *TesseractExtractor) ExtractText(ctx context.Context, imageData []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	start := time.Now()
	client := gosseract.NewClient()
	defer client.Close()

	if err := client.SetLanguage(t.languages...); err != nil {
		return "", err
	}
	if err := client.SetImageFromBytes(imageData); err != nil {
		return "", err
	}

	text, err := client.Text()
	if err != nil {
		return "", err
	}

	common.LogDebug("OCR 完成",
		zap.Int("圖片大小", len(imageData)),
		zap.Int("文字長度", len(text)),
		zap.Duration("耗時", time.Since(start)),
	)
	return strings.TrimSpace(text), nil
}
