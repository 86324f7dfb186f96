package recipe

import (
	"net/http"

	"recipe-extractor/internal/pkg/common"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ExtractRequest 從一批圖片抽取食譜
type ExtractRequest struct {
	Images []string `json:"images" binding:"required,min=1"` // base64 或 data URI 圖片
	Refine bool     `json:"refine,omitempty"`                // 是否嘗試遠端精煉
}

// ParseRequest 從純文字抽取食譜
// Source 標示文字來源："ocr" 會先經 OCR 文字修復，其餘（web、剪貼簿）直接抽取
type ParseRequest struct {
	Text   string `json:"text" binding:"required"`
	Source string `json:"source,omitempty" binding:"omitempty,oneof=ocr web"`
	Refine bool   `json:"refine,omitempty"`
}

// IngestRequest 從網頁 URL 抽取食譜
type IngestRequest struct {
	URL    string `json:"url" binding:"required"`
	Refine bool   `json:"refine,omitempty"`
}

// ExtractResponse 抽取結果
type ExtractResponse struct {
	Recipe *common.ParsedRecipe `json:"recipe"`
}

// HandleExtract 處理圖片抽取請求
func (h *Handler) HandleExtract(c *gin.Context) {
	requestID := requestid.Get(c)

	var req ExtractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.LogWarn("請求格式無效",
			zap.Error(err),
			zap.String("request_id", requestID),
		)
		c.JSON(http.StatusBadRequest, common.ErrorResponse{
			Code:    common.ErrCodeInvalidRequest,
			Message: "Invalid request format",
		})
		return
	}

	decoded, err := h.images.DecodeAll(req.Images)
	if err != nil {
		common.LogWarn("圖片解碼失敗",
			zap.Error(err),
			zap.String("request_id", requestID),
		)
		c.JSON(http.StatusBadRequest, common.ErrorResponse{
			Code:    common.ErrCodeInvalidRequest,
			Message: err.Error(),
		})
		return
	}

	common.LogInfo("開始處理圖片抽取請求",
		zap.Int("圖片數量", len(decoded)),
		zap.Bool("refine", req.Refine),
		zap.String("request_id", requestID),
	)

	recipe, err := h.extractor.ExtractFromImages(c.Request.Context(), decoded, req.Refine)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, ExtractResponse{Recipe: recipe})
}

// HandleParse 處理純文字抽取請求
func (h *Handler) HandleParse(c *gin.Context) {
	requestID := requestid.Get(c)

	var req ParseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, common.ErrorResponse{
			Code:    common.ErrCodeInvalidRequest,
			Message: "Invalid request format",
		})
		return
	}

	common.LogInfo("開始處理文字抽取請求",
		zap.Int("文字長度", len(req.Text)),
		zap.String("source", req.Source),
		zap.Bool("refine", req.Refine),
		zap.String("request_id", requestID),
	)

	var recipe *common.ParsedRecipe
	var err error
	if req.Source == "ocr" {
		recipe, err = h.extractor.ExtractFromOCRText(c.Request.Context(), req.Text, req.Refine)
	} else {
		recipe, err = h.extractor.ExtractFromText(c.Request.Context(), req.Text, req.Refine)
	}
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, ExtractResponse{Recipe: recipe})
}

// HandleIngest 處理網頁抽取請求
func (h *Handler) HandleIngest(c *gin.Context) {
	requestID := requestid.Get(c)

	var req IngestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, common.ErrorResponse{
			Code:    common.ErrCodeInvalidRequest,
			Message: "Invalid request format",
		})
		return
	}

	common.LogInfo("開始處理網頁抽取請求",
		zap.String("url", req.URL),
		zap.Bool("refine", req.Refine),
		zap.String("request_id", requestID),
	)

	text, err := h.fetcher.FetchText(c.Request.Context(), req.URL)
	if err != nil {
		writeError(c, err)
		return
	}

	recipe, err := h.extractor.ExtractFromText(c.Request.Context(), text, req.Refine)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, ExtractResponse{Recipe: recipe})
}
