package storage

import (
	"context"
	"time"

	"recipe-extractor/internal/pkg/common"
)

// StoredRecipe 已保存的食譜與其中繼資料
type StoredRecipe struct {
	ID        string               `json:"id"`
	Recipe    *common.ParsedRecipe `json:"recipe"`
	SourceURL string               `json:"source_url,omitempty"`
	CreatedAt time.Time            `json:"created_at"`
}

// Store 食譜持久層介面
// 抽取管線輸出的結構化食譜由此保存，管線本身不依賴任何實作細節
type Store interface {
	Save(ctx context.Context, recipe *common.ParsedRecipe, sourceURL string) (*StoredRecipe, error)
	Get(ctx context.Context, id string) (*StoredRecipe, error)
	List(ctx context.Context) ([]*StoredRecipe, error)
	Delete(ctx context.Context, id string) error
}
