package recipe

import (
	"net/http"

	"recipe-extractor/internal/core/storage"
	"recipe-extractor/internal/core/translate"
	"recipe-extractor/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SaveRequest 保存一份抽取結果
type SaveRequest struct {
	Recipe    *common.ParsedRecipe `json:"recipe" binding:"required"`
	SourceURL string               `json:"source_url,omitempty"`
}

// HandleSave 保存食譜
func (h *Handler) HandleSave(c *gin.Context) {
	var req SaveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, common.ErrorResponse{
			Code:    common.ErrCodeInvalidRequest,
			Message: "Invalid request format",
		})
		return
	}

	stored, err := h.store.Save(c.Request.Context(), req.Recipe, req.SourceURL)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, stored)
}

// HandleList 列出所有已保存的食譜
func (h *Handler) HandleList(c *gin.Context) {
	list, err := h.store.List(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"recipes": list,
		"count":   len(list),
	})
}

// HandleGet 取出單一食譜
// lang 查詢參數會將單位代碼換成該語言的顯示名稱
func (h *Handler) HandleGet(c *gin.Context) {
	id := c.Param("id")

	stored, err := h.store.Get(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}

	lang := common.LanguageTag(c.Query("lang"))
	if lang == "" || lang == common.LangEnglish {
		c.JSON(http.StatusOK, stored)
		return
	}

	localized := &storage.StoredRecipe{
		ID:        stored.ID,
		Recipe:    localizeUnits(stored.Recipe, lang),
		SourceURL: stored.SourceURL,
		CreatedAt: stored.CreatedAt,
	}
	c.JSON(http.StatusOK, localized)
}

// HandleDelete 刪除食譜
func (h *Handler) HandleDelete(c *gin.Context) {
	id := c.Param("id")

	if err := h.store.Delete(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}

	common.LogInfo("食譜已刪除", zap.String("id", id))
	c.JSON(http.StatusOK, gin.H{"deleted": id})
}

// localizeUnits 回傳單位名稱在地化後的新食譜，原值不變
func localizeUnits(recipe *common.ParsedRecipe, lang common.LanguageTag) *common.ParsedRecipe {
	out := recipe.Clone()
	for sec, items := range out.IngredientsBySection {
		for i, item := range items {
			items[i].Unit = translate.LocalizedUnitName(item.Unit, lang)
		}
		out.IngredientsBySection[sec] = items
	}
	return out
}
