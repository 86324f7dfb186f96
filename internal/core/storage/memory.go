package storage

import (
	"context"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"

	"recipe-extractor/internal/pkg/common"
)

// MemoryStore 行程內的食譜存放，開發與測試環境使用
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string]*StoredRecipe
}

// NewMemoryStore 創建記憶體存放
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		records: make(map[string]*StoredRecipe),
	}
}

// Save 保存食譜並配發 ID
func (s *MemoryStore) Save(ctx context.Context, recipe *common.ParsedRecipe, sourceURL string) (*StoredRecipe, error) {
	if recipe == nil || recipe.IsEmpty() {
		return nil, common.NewValidationError("recipe must not be empty")
	}

	stored := &StoredRecipe{
		ID:        common.GenerateUUID(),
		Recipe:    recipe.Clone(),
		SourceURL: sourceURL,
		CreatedAt: time.Now(),
	}

	s.mu.Lock()
	s.records[stored.ID] = stored
	s.mu.Unlock()

	common.LogInfo("食譜已保存",
		zap.String("id", stored.ID),
		zap.String("標題", recipe.Title),
	)
	return stored, nil
}

// Get 依 ID 取出食譜
func (s *MemoryStore) Get(ctx context.Context, id string) (*StoredRecipe, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stored, ok := s.records[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	return stored, nil
}

// List 依建立時間新到舊列出所有食譜
func (s *MemoryStore) List(ctx context.Context) ([]*StoredRecipe, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*StoredRecipe, 0, len(s.records))
	for _, r := range s.records {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

// Delete 刪除食譜
func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.records[id]; !ok {
		return common.ErrNotFound
	}
	delete(s.records, id)
	return nil
}
