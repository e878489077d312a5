package task

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"store_admin_dashboard/internal/api/dto"
	"store_admin_dashboard/internal/model"
	"store_admin_dashboard/internal/repository"
	"store_admin_dashboard/internal/service"
	"store_admin_dashboard/internal/testutil"
	"store_admin_dashboard/pkg/utils"
)

// ==================== 测试替身 ====================

type fakeCleaner struct {
	mu      sync.Mutex
	uploads []model.Upload
	failIDs map[string]bool
	calls   int
}

func (f *fakeCleaner) ListOrphans(ctx context.Context, before time.Time, limit int) ([]model.Upload, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++

	var out []model.Upload
	for _, u := range f.uploads {
		if u.CreatedAt.Before(before) {
			out = append(out, u)
		}
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (f *fakeCleaner) DeleteOrphan(ctx context.Context, upload *model.Upload) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failIDs[upload.ID] {
		return errors.New("storage unavailable")
	}
	for i, u := range f.uploads {
		if u.ID == upload.ID {
			f.uploads = append(f.uploads[:i], f.uploads[i+1:]...)
			break
		}
	}
	return nil
}

func oldUpload(id string) model.Upload {
	u := model.Upload{URL: "http://localhost/uploads/" + id}
	u.ID = id
	u.CreatedAt = time.Now().Add(-48 * time.Hour)
	return u
}

// ==================== CleanupTask ====================

func TestCleanupTask_RunOnce_Batches(t *testing.T) {
	cleaner := &fakeCleaner{}
	for _, id := range []string{"a", "b", "c", "d", "e"} {
		cleaner.uploads = append(cleaner.uploads, oldUpload(id))
	}
	fresh := oldUpload("fresh")
	fresh.CreatedAt = time.Now()
	cleaner.uploads = append(cleaner.uploads, fresh)

	task := NewCleanupTask(cleaner, zap.NewNop())
	task.SetConcurrency(2, 2)

	deleted, err := task.RunOnce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 5, deleted)
	require.Len(t, cleaner.uploads, 1)
	assert.Equal(t, "fresh", cleaner.uploads[0].ID)
}

func TestCleanupTask_RunOnce_FailuresStopLoop(t *testing.T) {
	cleaner := &fakeCleaner{
		uploads: []model.Upload{oldUpload("a"), oldUpload("b")},
		failIDs: map[string]bool{"a": true, "b": true},
	}

	task := NewCleanupTask(cleaner, zap.NewNop())
	task.SetConcurrency(1, 2)

	deleted, err := task.RunOnce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, deleted)
	assert.Equal(t, 1, cleaner.calls)
	assert.Len(t, cleaner.uploads, 2)
}

func TestCleanupTask_StartStop(t *testing.T) {
	cleaner := &fakeCleaner{uploads: []model.Upload{oldUpload("a")}}
	task := NewCleanupTask(cleaner, zap.NewNop())

	require.NoError(t, task.Start())
	assert.Eventually(t, func() bool {
		cleaner.mu.Lock()
		defer cleaner.mu.Unlock()
		return len(cleaner.uploads) == 0
	}, 2*time.Second, 10*time.Millisecond)
	task.Stop()
}

func TestCleanupTask_InvalidSpec(t *testing.T) {
	task := NewCleanupTask(&fakeCleaner{}, zap.NewNop())
	task.SetSchedule("not a cron", 0)
	assert.Error(t, task.Start())
}

// ==================== TaskManager ====================

func TestTaskManager_Disabled(t *testing.T) {
	tm := NewTaskManager(&TaskManagerDeps{Logger: zap.NewNop()}, nil)
	assert.False(t, tm.Status()["cleanup"])

	_, err := tm.TriggerCleanup(context.Background())
	assert.ErrorIs(t, err, ErrTaskDisabled)

	require.NoError(t, tm.Start())
	tm.Stop()
}

// 真实数据库 + 本地存储：只删除未被引用且超过宽限期的文件
func TestTaskManager_TriggerCleanup(t *testing.T) {
	db := testutil.NewDB(t)
	f := testutil.Seed(t, db, "owner", "Main")
	uow := repository.NewUnitOfWork(db)
	guard := service.NewOwnershipGuard(uow.Stores)

	storage, err := service.NewLocalStorage(&service.StorageConfig{BasePath: t.TempDir(), Endpoint: "http://localhost/uploads"})
	require.NoError(t, err)
	uploads := service.NewUploadService(guard, uow.Uploads, storage, utils.NewHTTPClient(time.Second), 1<<20)

	png := []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 0x0d, 'I', 'H', 'D', 'R'}
	orphan, err := uploads.Upload(context.Background(), "owner", f.Store.ID, "a.png", png)
	require.NoError(t, err)
	used, err := uploads.Upload(context.Background(), "owner", f.Store.ID, "b.png", png)
	require.NoError(t, err)

	billboards := service.NewBillboardService(uow.Billboards, guard, uow)
	_, err = billboards.Create(context.Background(), "owner", f.Store.ID, &dto.BillboardReq{Label: "Used", ImageURL: used.URL})
	require.NoError(t, err)

	// 宽限期极短，刚上传的文件也视为过期
	tm := NewTaskManager(&TaskManagerDeps{Cleaner: uploads, Logger: zap.NewNop()}, &TaskManagerConfig{
		CleanupEnabled:     true,
		CleanupSpec:        "0 0 * * * *",
		CleanupGracePeriod: time.Nanosecond,
		CleanupConcurrency: 2,
		CleanupBatchSize:   10,
	})
	time.Sleep(5 * time.Millisecond)

	deleted, err := tm.TriggerCleanup(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, deleted)

	var remaining []model.Upload
	require.NoError(t, db.Find(&remaining).Error)
	require.Len(t, remaining, 1)
	assert.Equal(t, used.ID, remaining[0].ID)
	assert.NotEqual(t, orphan.ID, remaining[0].ID)
}

// 其他存储提供者的过期记录不应挡住当前提供者的清理
func TestCleanupTask_SkipsForeignProvider(t *testing.T) {
	db := testutil.NewDB(t)
	f := testutil.Seed(t, db, "owner", "Main")
	uow := repository.NewUnitOfWork(db)
	guard := service.NewOwnershipGuard(uow.Stores)

	storage, err := service.NewLocalStorage(&service.StorageConfig{BasePath: t.TempDir(), Endpoint: "http://localhost/uploads"})
	require.NoError(t, err)
	uploads := service.NewUploadService(guard, uow.Uploads, storage, utils.NewHTTPClient(time.Second), 1<<20)

	rows := []*model.Upload{
		{StoreID: f.Store.ID, URL: "https://bucket.s3.amazonaws.com/a.png", Provider: "s3"},
		{StoreID: f.Store.ID, URL: "https://bucket.s3.amazonaws.com/b.png", Provider: "s3"},
		{StoreID: f.Store.ID, URL: "http://localhost/uploads/2026/01/01/c.png", Provider: "local"},
	}
	for i, u := range rows {
		require.NoError(t, db.Create(u).Error)
		// s3 记录更早，按创建时间排序时排在前面
		age := time.Duration(72-i) * time.Hour
		require.NoError(t, db.Model(u).Update("created_at", time.Now().Add(-age)).Error)
	}

	task := NewCleanupTask(uploads, zap.NewNop())
	task.SetSchedule("", time.Hour)
	task.SetConcurrency(1, 2)

	deleted, err := task.RunOnce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, deleted)

	var remaining []model.Upload
	require.NoError(t, db.Order("created_at ASC").Find(&remaining).Error)
	require.Len(t, remaining, 2)
	for _, u := range remaining {
		assert.Equal(t, "s3", u.Provider)
	}
}
