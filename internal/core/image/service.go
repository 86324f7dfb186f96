package image

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"strings"

	_ "image/gif"  // 支援 GIF
	_ "image/jpeg" // 支援 JPEG
	_ "image/png"  // 支援 PNG

	_ "golang.org/x/image/webp" // 支援 WebP
)

// Service 圖片前處理服務
// 將 API 收到的 base64 圖片解碼、驗證後交給 OCR 工作池
type Service struct {
	maxSizeBytes int64
}

// NewService 創建圖片前處理服務
func NewService(maxSizeBytes int64) *Service {
	return &Service{maxSizeBytes: maxSizeBytes}
}

// Decode 解碼 base64 圖片為原始位元組並驗證格式與大小
// 接受 data URI 或裸 base64 字串
func (s *Service) Decode(imageData string) ([]byte, error) {
	payload := imageData
	if strings.HasPrefix(imageData, "data:image/") {
		parts := strings.SplitN(imageData, ",", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("invalid base64 data format")
		}
		payload = parts[1]
	}

	decoded, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to decode base64 data: %w", err)
	}

	if int64(len(decoded)) > s.maxSizeBytes {
		return nil, fmt.Errorf("image size exceeds maximum limit of %d bytes", s.maxSizeBytes)
	}

	// 解碼圖片驗證格式
	_, format, err := image.Decode(bytes.NewReader(decoded))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	if !isSupportedFormat(format) {
		return nil, fmt.Errorf("unsupported image format: %s", format)
	}

	return decoded, nil
}

// DecodeAll 解碼一批 base64 圖片，任何一張無效就整批拒絕
func (s *Service) DecodeAll(images []string) ([][]byte, error) {
	out := make([][]byte, 0, len(images))
	for i, img := range images {
		decoded, err := s.Decode(img)
		if err != nil {
			return nil, fmt.Errorf("image %d: %w", i, err)
		}
		out = append(out, decoded)
	}
	return out, nil
}

// isSupportedFormat 檢查圖片格式是否支援
func isSupportedFormat(format string) bool {
	supportedFormats := map[string]bool{
		"jpeg": true,
		"jpg":  true,
		"png":  true,
		"gif":  true,
		"webp": true,
	}
	return supportedFormats[format]
}
