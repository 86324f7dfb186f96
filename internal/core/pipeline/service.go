package pipeline

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"go.uber.org/zap"

	"recipe-extractor/internal/core/ai/cache"
	"recipe-extractor/internal/core/classify"
	"recipe-extractor/internal/core/extract"
	"recipe-extractor/internal/core/ocr"
	"recipe-extractor/internal/core/translate"
	"recipe-extractor/internal/infrastructure/config"
	"recipe-extractor/internal/pkg/common"
)

// ImageExtractor 一批圖片到逐張文字的能力，由 OCR 工作池提供
type ImageExtractor interface {
	ExtractAll(ctx context.Context, images [][]byte) ([]string, error)
}

// Service 抽取管線協調器
// 階段：OCR → 修復 → 翻譯 → 本機抽取 → 可選的遠端精煉 → 合併
// 每次呼叫都是獨立的無狀態鏈，階段失敗走各自的降級路徑，
// 只有 NoTextExtracted 與 NoRecipeDetected 會回傳給呼叫端
type Service struct {
	cfg        *config.Config
	images     ImageExtractor
	corrector  *ocr.Corrector
	translator *translate.Service
	classifier *classify.Classifier
	extractor  *extract.Extractor
	completer  Completer
	cache      cache.Cache
}

// NewService 創建管線服務
// completer 與 resultCache 可為 nil：前者停用精煉，後者停用快取
func NewService(cfg *config.Config, images ImageExtractor, completer Completer, resultCache cache.Cache) *Service {
	return &Service{
		cfg:        cfg,
		images:     images,
		corrector:  ocr.NewCorrector(cfg.Pipeline.SimilarityThreshold),
		translator: translate.NewService(cfg),
		classifier: classify.NewClassifier(cfg),
		extractor:  extract.NewExtractor(cfg),
		completer:  completer,
		cache:      resultCache,
	}
}

// ExtractFromImages 從一批圖片抽取食譜
// 單張 OCR 失敗只記錄不致命，全部無文字時回傳 NoTextExtracted
func (s *Service) ExtractFromImages(ctx context.Context, images [][]byte, refine bool) (*common.ParsedRecipe, error) {
	requestID := common.RequestIDFromContext(ctx)

	start := time.Now()
	texts, err := s.images.ExtractAll(ctx, images)
	common.LogStage("ocr", time.Since(start), err, requestID)
	if err != nil {
		return nil, err
	}

	var nonEmpty []string
	for _, t := range texts {
		if strings.TrimSpace(t) != "" {
			nonEmpty = append(nonEmpty, t)
		}
	}
	if len(nonEmpty) == 0 {
		return nil, common.ErrNoTextExtracted
	}
	combined := strings.Join(nonEmpty, "\n\n")

	start = time.Now()
	corrected := s.corrector.Correct(combined)
	common.LogStage("correct", time.Since(start), nil, requestID)

	return s.run(ctx, corrected, refine)
}

// ExtractFromText 從已是純文字的來源（網頁、剪貼簿）抽取食譜
// 文字來源不經 OCR 修復
func (s *Service) ExtractFromText(ctx context.Context, text string, refine bool) (*common.ParsedRecipe, error) {
	if strings.TrimSpace(text) == "" {
		return nil, common.ErrNoTextExtracted
	}
	return s.run(ctx, text, refine)
}

// ExtractFromOCRText 從外部 OCR 已取得的文字抽取食譜，先經修復再走共同路徑
func (s *Service) ExtractFromOCRText(ctx context.Context, text string, refine bool) (*common.ParsedRecipe, error) {
	if strings.TrimSpace(text) == "" {
		return nil, common.ErrNoTextExtracted
	}
	requestID := common.RequestIDFromContext(ctx)

	start := time.Now()
	corrected := s.corrector.Correct(text)
	common.LogStage("correct", time.Since(start), nil, requestID)

	return s.run(ctx, corrected, refine)
}

// run 翻譯、抽取、精煉與合併的共同路徑
func (s *Service) run(ctx context.Context, text string, refine bool) (*common.ParsedRecipe, error) {
	requestID := common.RequestIDFromContext(ctx)

	cacheKey := cache.Key(cacheKeyPurpose(refine), text)
	if s.cache != nil {
		if cached, ok := s.cache.Get(ctx, cacheKey); ok {
			var recipe common.ParsedRecipe
			if err := json.Unmarshal([]byte(cached), &recipe); err == nil {
				return &recipe, nil
			}
		}
	}

	start := time.Now()
	translated := s.translator.TranslateToEnglish(ctx, text)
	common.LogStage("translate", time.Since(start), nil, requestID)
	common.LogDebug("翻譯結果",
		zap.String("方法", translated.Method),
		zap.String("來源語言", string(translated.SourceLang)),
		zap.String("request_id", requestID),
	)

	start = time.Now()
	baseline, err := s.extractor.Extract(translated.Text)
	common.LogStage("extract", time.Since(start), err, requestID)
	if err != nil {
		return nil, err
	}

	result := baseline
	if refine && s.completer != nil && s.cfg.OpenRouter.Enabled {
		// 分類器只閘控要花錢的精煉呼叫，不閘控本機抽取
		if s.classifier.IsRecipe(translated.Text) {
			start = time.Now()
			refined, rerr := refineRecipe(ctx, s.completer, translated.Text, baseline)
			common.LogStage("refine", time.Since(start), rerr, requestID)
			if rerr != nil {
				// 精煉失敗一律靜默保留基準結果
				common.LogWarn("精煉失敗，保留基準結果",
					zap.Error(rerr),
					zap.String("request_id", requestID),
				)
			} else {
				result = Merge(baseline, refined)
			}
		} else {
			common.LogDebug("分類器判定非食譜，跳過精煉",
				zap.String("request_id", requestID),
			)
		}
	}

	if s.cache != nil {
		if data, err := json.Marshal(result); err == nil {
			if err := s.cache.Set(ctx, cacheKey, string(data)); err != nil {
				common.LogWarn("快取寫入失敗", zap.Error(err))
			}
		}
	}
	return result, nil
}

// cacheKeyPurpose 精煉與否是不同的結果，快取鍵分開
func cacheKeyPurpose(refine bool) string {
	if refine {
		return "extract_refined"
	}
	return "extract"
}
