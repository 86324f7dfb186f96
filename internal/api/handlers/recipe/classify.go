package recipe

import (
	"net/http"

	"recipe-extractor/internal/pkg/common"

	"github.com/gin-gonic/gin"
)

// ClassifyRequest 判斷文字是否為食譜內容
type ClassifyRequest struct {
	Text string `json:"text" binding:"required"`
}

// ClassifyResponse 分類結果
type ClassifyResponse struct {
	IsRecipe bool `json:"is_recipe"`
	Score    int  `json:"score"`
}

// HandleClassify 處理分類請求
func (h *Handler) HandleClassify(c *gin.Context) {
	var req ClassifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, common.ErrorResponse{
			Code:    common.ErrCodeInvalidRequest,
			Message: "Invalid request format",
		})
		return
	}

	c.JSON(http.StatusOK, ClassifyResponse{
		IsRecipe: h.classifier.IsRecipe(req.Text),
		Score:    h.classifier.Score(req.Text),
	})
}
