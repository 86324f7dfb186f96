package translate

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"recipe-extractor/internal/core/language"
	"recipe-extractor/internal/infrastructure/config"
	"recipe-extractor/internal/pkg/common"
)

// Service 翻譯協調器
// 依序嘗試：遠端翻譯端點 → 靜態詞典替換 → 原文透傳
// 任何一層失敗都不會讓管線中斷，輸出永遠非空
type Service struct {
	cfg        *config.Config
	client     *resty.Client
	identifier *language.Identifier
}

// NewService 創建翻譯服務
func NewService(cfg *config.Config) *Service {
	client := resty.New().
		SetTimeout(cfg.Translation.Timeout).
		SetHeader("Content-Type", "application/json").
		SetRetryCount(0)

	return &Service{
		cfg:        cfg,
		client:     client,
		identifier: language.NewIdentifier(),
	}
}

// translateRequest 遠端翻譯端點的請求格式
type translateRequest struct {
	Q      string `json:"q"`
	Source string `json:"source"`
	Target string `json:"target"`
}

// translateResponse 遠端翻譯端點的回應格式
type translateResponse struct {
	TranslatedText string `json:"translatedText"`
}

// Result 翻譯結果與採用的路徑
type Result struct {
	Text          string             `json:"text"`
	SourceLang    common.LanguageTag `json:"source_lang"`
	Method        string             `json:"method"` // remote | dictionary | passthrough
	Substitutions int                `json:"substitutions,omitempty"`
}

// TranslateToEnglish 將文字翻譯成英文
// 只有英文與像英文的文字直接透傳，其餘交給降級鏈處理
func (s *Service) TranslateToEnglish(ctx context.Context, text string) Result {
	lang, ok := s.identifier.Detect(text)
	if !ok {
		// 偵測失敗時用樣式啟發式，像英文食譜就當英文處理
		if language.LooksEnglish(text) {
			return Result{Text: text, SourceLang: common.LangEnglish, Method: "passthrough"}
		}
		// 來源不明的非英文文字仍要嘗試遠端翻譯，端點以 source=auto 自行偵測
		common.LogDebug("語言偵測失敗，以 auto 來源送遠端", zap.Int("長度", len(text)))
		return s.translate(ctx, text, common.LangUndefined, common.LangEnglish)
	}
	if lang == common.LangEnglish {
		return Result{Text: text, SourceLang: lang, Method: "passthrough"}
	}

	return s.translate(ctx, text, lang, common.LangEnglish)
}

// TranslateFromEnglish 將英文文字翻譯成指定語言
func (s *Service) TranslateFromEnglish(ctx context.Context, text string, target common.LanguageTag) Result {
	if target == common.LangEnglish || target == common.LangUndefined {
		return Result{Text: text, SourceLang: common.LangEnglish, Method: "passthrough"}
	}
	return s.translate(ctx, text, common.LangEnglish, target)
}

// translate 執行三層降級翻譯
func (s *Service) translate(ctx context.Context, text string, source, target common.LanguageTag) Result {
	if s.cfg.Translation.Enabled {
		translated, err := s.remoteTranslate(ctx, text, source, target)
		if err == nil && strings.TrimSpace(translated) != "" {
			return Result{Text: translated, SourceLang: source, Method: "remote"}
		}
		common.LogWarn("遠端翻譯不可用，改用詞典替換",
			zap.String("來源語言", string(source)),
			zap.String("目標語言", string(target)),
			zap.Error(err),
		)
	}

	// 詞典只支援外語到英文的方向
	if target == common.LangEnglish {
		if replaced, subs := ApplyDictionary(text, source); subs > 0 {
			return Result{Text: replaced, SourceLang: source, Method: "dictionary", Substitutions: subs}
		}
	}

	return Result{Text: text, SourceLang: source, Method: "passthrough"}
}

// remoteTranslate 依序嘗試所有翻譯端點，第一個成功者勝出
func (s *Service) remoteTranslate(ctx context.Context, text string, source, target common.LanguageTag) (string, error) {
	if len(s.cfg.Translation.Endpoints) == 0 {
		return "", fmt.Errorf("no translation endpoints configured")
	}

	req := translateRequest{
		Q:      text,
		Source: apiLangCode(source),
		Target: apiLangCode(target),
	}

	var lastErr error
	for _, endpoint := range s.cfg.Translation.Endpoints {
		start := time.Now()
		var out translateResponse
		resp, err := s.client.R().
			SetContext(ctx).
			SetBody(req).
			SetResult(&out).
			Post(endpoint)
		if err != nil {
			lastErr = err
			common.LogDebug("翻譯端點請求失敗",
				zap.String("端點", endpoint),
				zap.Error(err),
				zap.Duration("耗時", time.Since(start)),
			)
			continue
		}
		if resp.StatusCode() != 200 {
			lastErr = fmt.Errorf("translation endpoint %s returned status %d", endpoint, resp.StatusCode())
			continue
		}
		if strings.TrimSpace(out.TranslatedText) == "" {
			lastErr = fmt.Errorf("translation endpoint %s returned empty text", endpoint)
			continue
		}
		common.LogDebug("遠端翻譯成功",
			zap.String("端點", endpoint),
			zap.Duration("耗時", time.Since(start)),
		)
		return out.TranslatedText, nil
	}
	if lastErr == nil {
		lastErr = common.ErrTranslationUnavailable
	}
	return "", lastErr
}

// apiLangCode 將內部語言標籤轉為端點使用的雙字母碼
func apiLangCode(lang common.LanguageTag) string {
	switch lang {
	case common.LangChineseS:
		return "zh"
	case common.LangUndefined:
		return "auto"
	}
	return string(lang)
}
