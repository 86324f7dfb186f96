package ocr

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"recipe-extractor/internal/infrastructure/config"
	"recipe-extractor/internal/pkg/common"
)

// job 單張圖片的 OCR 工作
type job struct {
	ctx    context.Context
	index  int
	image  []byte
	result chan jobResult
}

// jobResult 單張圖片的 OCR 結果
type jobResult struct {
	index int
	text  string
	err   error
}

// PoolStatus 工作池狀態
type PoolStatus struct {
	QueueLength    int `json:"queue_length"`
	ProcessedCount int `json:"processed_count"`
	MaxQueueSize   int `json:"max_queue_size"`
	Workers        int `json:"workers"`
}

// Pool OCR 工作池
// 固定數量的 worker 消化圖片佇列，批次結果依原始順序回傳
type Pool struct {
	cfg       *config.Config
	extractor TextExtractor
	queue     chan *job
	done      chan struct{}
	processed int64
	closeOnce sync.Once
}

// NewPool 創建工作池並啟動 worker
func NewPool(cfg *config.Config, extractor TextExtractor) *Pool {
	p := &Pool{
		cfg:       cfg,
		extractor: extractor,
		queue:     make(chan *job, cfg.OCR.MaxQueue),
		done:      make(chan struct{}),
	}
	for i := 0; i < cfg.OCR.Workers; i++ {
		go p.worker(i)
	}
	return p
}

// worker 持續從佇列取工作直到池關閉
func (p *Pool) worker(id int) {
	for {
		select {
		case <-p.done:
			return
		case j, ok := <-p.queue:
			if !ok {
				return
			}
			text, err := p.extractor.ExtractText(j.ctx, j.image)
			atomic.AddInt64(&p.processed, 1)
			if err != nil {
				common.LogWarn("OCR worker 處理失敗",
					zap.Int("worker", id),
					zap.Int("圖片序號", j.index),
					zap.Error(err),
				)
			}
			j.result <- jobResult{index: j.index, text: text, err: err}
		}
	}
}

// ExtractAll 對一批圖片執行 OCR，結果依輸入順序回傳
// 單張失敗以空字串佔位，不中斷整批；全部失敗由呼叫端判斷
func (p *Pool) ExtractAll(ctx context.Context, images [][]byte) ([]string, error) {
	if len(images) == 0 {
		return nil, fmt.Errorf("no images provided")
	}
	if len(images) > p.cfg.OCR.MaxQueue {
		return nil, fmt.Errorf("batch size %d exceeds queue capacity %d", len(images), p.cfg.OCR.MaxQueue)
	}

	results := make(chan jobResult, len(images))
	for i, img := range images {
		j := &job{ctx: ctx, index: i, image: img, result: results}
		select {
		case p.queue <- j:
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-p.done:
			return nil, fmt.Errorf("ocr pool is closed")
		}
	}

	texts := make([]string, len(images))
	for range images {
		select {
		case r := <-results:
			if r.err == nil {
				texts[r.index] = r.text
			}
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return texts, nil
}

// Status 回傳工作池狀態
func (p *Pool) Status() *PoolStatus {
	return &PoolStatus{
		QueueLength:    len(p.queue),
		ProcessedCount: int(atomic.LoadInt64(&p.processed)),
		MaxQueueSize:   p.cfg.OCR.MaxQueue,
		Workers:        p.cfg.OCR.Workers,
	}
}

// Close 關閉工作池
func (p *Pool) Close() {
	p.closeOnce.Do(func() {
		close(p.done)
	})
}
