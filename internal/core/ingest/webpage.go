package ingest

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"recipe-extractor/internal/infrastructure/config"
	"recipe-extractor/internal/pkg/common"
)

// Fetcher 網頁文字擷取器
// 抓取食譜網頁並還原成接近排版的純文字，供抽取管線使用
type Fetcher struct {
	cfg    *config.Config
	client *http.Client
}

// NewFetcher 創建網頁擷取器
func NewFetcher(cfg *config.Config) *Fetcher {
	return &Fetcher{
		cfg: cfg,
		client: &http.Client{
			Timeout: cfg.Ingest.Timeout,
		},
	}
}

// FetchText 抓取網頁並抽出可讀文字
// 只保留內容節點，script/style/nav 一律剝除
func (f *Fetcher) FetchText(ctx context.Context, url string) (string, error) {
	if !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
		return "", common.NewValidationError("url must start with http:// or https://")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", "recipe-extractor/1.0")

	start := time.Now()
	resp, err := f.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to fetch page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("failed to fetch page: status code %d", resp.StatusCode)
	}

	body := io.LimitReader(resp.Body, f.cfg.Ingest.MaxBodyBytes)
	doc, err := goquery.NewDocumentFromReader(body)
	if err != nil {
		return "", fmt.Errorf("failed to parse page: %w", err)
	}

	text := ExtractReadableText(doc)
	common.LogDebug("網頁擷取完成",
		zap.String("url", url),
		zap.Int("文字長度", len(text)),
		zap.Duration("耗時", time.Since(start)),
	)
	return text, nil
}

// ExtractReadableText 從文件抽出行導向的純文字
// 標題與清單項各自成行，保留食譜的結構線索（區段標題、食材行）
func ExtractReadableText(doc *goquery.Document) string {
	doc.Find("script, style, noscript, nav, footer, header, iframe").Remove()

	root := doc.Find("article").First()
	if root.Length() == 0 {
		root = doc.Find("main").First()
	}
	if root.Length() == 0 {
		root = doc.Find("body").First()
	}

	var lines []string
	root.Find("h1, h2, h3, h4, p, li, td").Each(func(_ int, sel *goquery.Selection) {
		text := strings.TrimSpace(sel.Text())
		if text == "" {
			return
		}
		// 巢狀節點的文字會重複出現在父節點，只收葉端內容
		if sel.Children().Filter("p, li").Length() > 0 {
			return
		}
		lines = append(lines, common.NormalizeSpace(text))
	})

	return strings.Join(lines, "\n")
}
