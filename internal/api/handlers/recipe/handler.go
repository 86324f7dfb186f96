package recipe

import (
	"context"
	"errors"
	"net/http"

	"recipe-extractor/internal/core/classify"
	"recipe-extractor/internal/core/image"
	"recipe-extractor/internal/core/storage"
	"recipe-extractor/internal/pkg/common"

	"github.com/gin-gonic/gin"
)

// Extractor 抽取管線能力，處理程序只依賴這兩個操作
type Extractor interface {
	ExtractFromImages(ctx context.Context, images [][]byte, refine bool) (*common.ParsedRecipe, error)
	ExtractFromText(ctx context.Context, text string, refine bool) (*common.ParsedRecipe, error)
	ExtractFromOCRText(ctx context.Context, text string, refine bool) (*common.ParsedRecipe, error)
}

// PageFetcher 網頁文字擷取能力
type PageFetcher interface {
	FetchText(ctx context.Context, url string) (string, error)
}

// Handler 食譜抽取處理程序
type Handler struct {
	extractor  Extractor
	images     *image.Service
	fetcher    PageFetcher
	classifier *classify.Classifier
	store      storage.Store
}

// NewHandler 創建食譜抽取處理程序
func NewHandler(extractor Extractor, images *image.Service, fetcher PageFetcher, classifier *classify.Classifier, store storage.Store) *Handler {
	return &Handler{
		extractor:  extractor,
		images:     images,
		fetcher:    fetcher,
		classifier: classifier,
		store:      store,
	}
}

// writeError 統一的錯誤響應
// CustomError 依自帶狀態碼輸出，驗證錯誤視為 400，其餘一律 500
func writeError(c *gin.Context, err error) {
	var ce *common.CustomError
	if errors.As(err, &ce) {
		c.JSON(ce.Status, common.ErrorResponse{
			Code:    ce.Code,
			Message: ce.Message,
		})
		return
	}
	if common.IsValidationError(err) {
		c.JSON(http.StatusBadRequest, common.ErrorResponse{
			Code:    common.ErrCodeInvalidRequest,
			Message: err.Error(),
		})
		return
	}
	c.JSON(http.StatusInternalServerError, common.ErrorResponse{
		Code:    common.ErrCodeInternalError,
		Message: "服務器內部錯誤",
	})
}
