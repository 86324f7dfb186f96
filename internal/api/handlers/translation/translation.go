package translation

import (
	"net/http"

	"recipe-extractor/internal/core/translate"
	"recipe-extractor/internal/pkg/common"

	"github.com/gin-gonic/gin"
)

// Handler 翻譯處理程序
type Handler struct {
	translator *translate.Service
}

// NewHandler 創建翻譯處理程序
func NewHandler(translator *translate.Service) *Handler {
	return &Handler{translator: translator}
}

// TranslateRequest 翻譯請求
// Target 省略或為 "en" 時視為翻譯成英文
type TranslateRequest struct {
	Text   string `json:"text" binding:"required"`
	Target string `json:"target,omitempty"`
}

// HandleTranslate 處理翻譯請求
// 翻譯服務本身會降級，這個端點除了格式錯誤外不會失敗
func (h *Handler) HandleTranslate(c *gin.Context) {
	var req TranslateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, common.ErrorResponse{
			Code:    common.ErrCodeInvalidRequest,
			Message: "Invalid request format",
		})
		return
	}

	target := common.LanguageTag(req.Target)
	var result translate.Result
	if target == common.LangUndefined || target == common.LangEnglish {
		result = h.translator.TranslateToEnglish(c.Request.Context(), req.Text)
	} else {
		result = h.translator.TranslateFromEnglish(c.Request.Context(), req.Text, target)
	}

	c.JSON(http.StatusOK, result)
}
