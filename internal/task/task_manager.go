package task

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// ==================== TaskManager 后台任务管理器 ====================

// TaskManager 统一管理后台任务
type TaskManager struct {
	cleanupTask *CleanupTask
	log         *zap.Logger
}

// TaskManagerDeps 任务管理器依赖
type TaskManagerDeps struct {
	Cleaner OrphanCleaner
	Logger  *zap.Logger
}

// TaskManagerConfig 任务管理器配置
type TaskManagerConfig struct {
	CleanupEnabled     bool
	CleanupSpec        string
	CleanupGracePeriod time.Duration
	CleanupConcurrency int
	CleanupBatchSize   int
}

// DefaultConfig 默认配置
func DefaultConfig() *TaskManagerConfig {
	return &TaskManagerConfig{
		CleanupEnabled:     true,
		CleanupSpec:        "0 0 * * * *",
		CleanupGracePeriod: 24 * time.Hour,
		CleanupConcurrency: 4,
		CleanupBatchSize:   100,
	}
}

// NewTaskManager 创建任务管理器
func NewTaskManager(deps *TaskManagerDeps, cfg *TaskManagerConfig) *TaskManager {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	log := deps.Logger
	if log == nil {
		log = zap.L()
	}

	tm := &TaskManager{log: log.Named("task")}

	// 上传清理任务
	if cfg.CleanupEnabled && deps.Cleaner != nil {
		tm.cleanupTask = NewCleanupTask(deps.Cleaner, log)
		tm.cleanupTask.SetSchedule(cfg.CleanupSpec, cfg.CleanupGracePeriod)
		tm.cleanupTask.SetConcurrency(cfg.CleanupConcurrency, cfg.CleanupBatchSize)
	}

	return tm
}

// ==================== 生命周期管理 ====================

// Start 启动所有任务
func (tm *TaskManager) Start() error {
	tm.log.Info("正在启动后台任务")

	if tm.cleanupTask != nil {
		if err := tm.cleanupTask.Start(); err != nil {
			return err
		}
	}
	return nil
}

// Stop 停止所有任务
func (tm *TaskManager) Stop() {
	if tm.cleanupTask != nil {
		tm.cleanupTask.Stop()
	}
	tm.log.Info("后台任务已全部停止")
}

// ==================== 手动触发接口 ====================

// TriggerCleanup 立即执行一轮上传清理
func (tm *TaskManager) TriggerCleanup(ctx context.Context) (int, error) {
	if tm.cleanupTask == nil {
		return 0, ErrTaskDisabled
	}
	return tm.cleanupTask.RunOnce(ctx)
}

// ==================== 状态查询 ====================

// Status 获取任务状态
func (tm *TaskManager) Status() map[string]bool {
	return map[string]bool{
		"cleanup": tm.cleanupTask != nil,
	}
}

// ==================== 错误定义 ====================

type TaskError string

func (e TaskError) Error() string { return string(e) }

const (
	ErrTaskDisabled TaskError = "task is disabled"
)
