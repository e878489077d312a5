package task

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"store_admin_dashboard/internal/model"
)

// OrphanCleaner 未引用上传文件的查询与删除
type OrphanCleaner interface {
	ListOrphans(ctx context.Context, before time.Time, limit int) ([]model.Upload, error)
	DeleteOrphan(ctx context.Context, upload *model.Upload) error
}

// CleanupTask 定期删除超过宽限期且未被广告牌或商品图片引用的上传文件
type CleanupTask struct {
	cleaner OrphanCleaner
	cron    *cron.Cron
	log     *zap.Logger

	spec        string
	gracePeriod time.Duration
	concurrency int
	batchSize   int

	ctx     context.Context
	cancel  context.CancelFunc
	running atomic.Bool
}

func NewCleanupTask(cleaner OrphanCleaner, log *zap.Logger) *CleanupTask {
	if log == nil {
		log = zap.L()
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &CleanupTask{
		cleaner:     cleaner,
		cron:        cron.New(cron.WithSeconds()), // 支持秒级控制
		log:         log.Named("cleanup"),
		spec:        "0 0 * * * *",
		gracePeriod: 24 * time.Hour,
		concurrency: 4,
		batchSize:   100,
		ctx:         ctx,
		cancel:      cancel,
	}
}

// SetSchedule 设置 cron 表达式（含秒）与宽限期
func (t *CleanupTask) SetSchedule(spec string, gracePeriod time.Duration) {
	if spec != "" {
		t.spec = spec
	}
	if gracePeriod > 0 {
		t.gracePeriod = gracePeriod
	}
}

// SetConcurrency 设置并发删除数与每批数量
func (t *CleanupTask) SetConcurrency(concurrency, batchSize int) {
	if concurrency > 0 {
		t.concurrency = concurrency
	}
	if batchSize > 0 {
		t.batchSize = batchSize
	}
}

// Start 启动定时任务，启动时先执行一次
func (t *CleanupTask) Start() error {
	if _, err := t.cron.AddFunc(t.spec, t.runScheduled); err != nil {
		return err
	}

	go t.runScheduled()

	t.cron.Start()
	t.log.Info("上传清理任务已启动", zap.String("spec", t.spec), zap.Duration("grace_period", t.gracePeriod))
	return nil
}

// Stop 停止调度并等待正在执行的任务结束
func (t *CleanupTask) Stop() {
	t.cancel()
	<-t.cron.Stop().Done()
	t.log.Info("上传清理任务已停止")
}

func (t *CleanupTask) runScheduled() {
	// 上一轮未结束时跳过
	if !t.running.CompareAndSwap(false, true) {
		t.log.Debug("上一轮清理仍在执行，跳过")
		return
	}
	defer t.running.Store(false)

	ctx, cancel := context.WithTimeout(t.ctx, 10*time.Minute)
	defer cancel()

	if _, err := t.RunOnce(ctx); err != nil {
		t.log.Error("上传清理失败", zap.Error(err))
	}
}

// RunOnce 执行一轮清理，返回删除的文件数
func (t *CleanupTask) RunOnce(ctx context.Context) (int, error) {
	before := time.Now().Add(-t.gracePeriod)
	total := 0

	for {
		orphans, err := t.cleaner.ListOrphans(ctx, before, t.batchSize)
		if err != nil {
			return total, err
		}
		if len(orphans) == 0 {
			break
		}

		deleted := t.deleteBatch(ctx, orphans)
		total += deleted

		// 本批全部失败或已取完时结束，避免对同一批失败记录反复重试
		if deleted == 0 || len(orphans) < t.batchSize {
			break
		}
	}

	if total > 0 {
		t.log.Info("上传清理完成", zap.Int("deleted", total))
	}
	return total, nil
}

// deleteBatch 信号量控制并发删除
func (t *CleanupTask) deleteBatch(ctx context.Context, orphans []model.Upload) int {
	sem := make(chan struct{}, t.concurrency)
	var wg sync.WaitGroup
	var deleted atomic.Int64

	for i := range orphans {
		select {
		case <-ctx.Done():
			t.log.Warn("清理任务取消", zap.Error(ctx.Err()))
			wg.Wait()
			return int(deleted.Load())
		case sem <- struct{}{}:
		}

		wg.Add(1)
		go func(u *model.Upload) {
			defer wg.Done()
			defer func() { <-sem }()

			if err := t.cleaner.DeleteOrphan(ctx, u); err != nil {
				// 仅记录，不中断其他删除
				t.log.Warn("删除未引用文件失败", zap.String("id", u.ID), zap.String("url", u.URL), zap.Error(err))
				return
			}
			deleted.Add(1)
		}(&orphans[i])
	}

	wg.Wait()
	return int(deleted.Load())
}
