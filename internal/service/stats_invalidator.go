package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/d60-Lab/vidhub/pkg/logger"
)

// Invalidator 统计缓存失效入口；写成功后在请求内同步调用
type Invalidator interface {
	Invalidate(ctx context.Context, ownerID string)
}

// StatsCacheStore 失效目标（internal/cache.StatsCache）
type StatsCacheStore interface {
	Invalidate(ctx context.Context, ownerID string) error
}

type invalidateJob struct {
	ownerID string
	enqAt   time.Time
}

// StatsInvalidator 同步失效，失败时转入本地有界重试队列；队列满则丢弃并告警
type StatsInvalidator struct {
	cache     StatsCacheStore
	ch        chan invalidateJob
	metricsCh chan time.Duration
}

func NewStatsInvalidator(cache StatsCacheStore, queueSize int) *StatsInvalidator {
	if queueSize <= 0 {
		queueSize = 10000
	}
	return &StatsInvalidator{cache: cache, ch: make(chan invalidateJob, queueSize), metricsCh: make(chan time.Duration, 1024)}
}

// Start 启动 workers，返回停止函数；停止时给队列一小段时间排空
func (r *StatsInvalidator) Start(workers int) func(context.Context) error {
	if workers <= 0 {
		workers = 2
	}
	stopCh := make(chan struct{})
	for i := 0; i < workers; i++ {
		go func() {
			for {
				select {
				case job := <-r.ch:
					r.handle(job)
				case <-stopCh:
					return
				}
			}
		}()
	}
	return func(ctx context.Context) error {
		close(stopCh)
		// 停止后由调用方 goroutine 直接处理剩余任务
		for {
			select {
			case job := <-r.ch:
				r.handle(job)
			case <-ctx.Done():
				return ctx.Err()
			default:
				return nil
			}
		}
	}
}

func (r *StatsInvalidator) handle(job invalidateJob) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := r.cache.Invalidate(ctx, job.ownerID); err != nil {
		logger.Warn("stats invalidation failed", zap.String("owner", job.ownerID), zap.Error(err))
	}
	select {
	case r.metricsCh <- time.Since(job.enqAt):
	default:
	}
}

// Invalidate 当场删除缓存，本请求随后的读取必然回源；删除失败交给 worker 重试
func (r *StatsInvalidator) Invalidate(ctx context.Context, ownerID string) {
	if ownerID == "" {
		return
	}
	if err := r.cache.Invalidate(ctx, ownerID); err != nil {
		logger.Warn("stats invalidation failed, queued for retry", zap.String("owner", ownerID), zap.Error(err))
		r.Enqueue(ownerID)
	}
}

// Enqueue 异步失效，不阻塞
func (r *StatsInvalidator) Enqueue(ownerID string) {
	if ownerID == "" {
		return
	}
	select {
	case r.ch <- invalidateJob{ownerID: ownerID, enqAt: time.Now()}:
	default:
		logger.Warn("stats invalidation queue full, drop", zap.String("owner", ownerID))
	}
}

// Metrics 返回失效落地耗时的只读通道（每处理一条发送一次 duration）。
func (r *StatsInvalidator) Metrics() <-chan time.Duration { return r.metricsCh }

// QueueLen 返回当前队列长度（采样值）。
func (r *StatsInvalidator) QueueLen() int { return len(r.ch) }

type noopInvalidator struct{}

func (noopInvalidator) Invalidate(context.Context, string) {}

func orNoop(inv Invalidator) Invalidator {
	if inv == nil {
		return noopInvalidator{}
	}
	return inv
}
