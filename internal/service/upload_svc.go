package service

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"store_admin_dashboard/internal/model"
	"store_admin_dashboard/internal/repository"
	"store_admin_dashboard/pkg/utils"
)

// UploadService 图片上传服务
// 上传成功后写入 uploads 记录，未被引用的文件由清理任务回收
type UploadService struct {
	Guard      *OwnershipGuard
	UploadRepo repository.UploadRepository
	Storage    StorageProvider
	HTTP       *resty.Client
	MaxSize    int64
}

// NewUploadService 创建上传服务
func NewUploadService(guard *OwnershipGuard, repo repository.UploadRepository, storage StorageProvider, client *resty.Client, maxSize int64) *UploadService {
	return &UploadService{
		Guard:      guard,
		UploadRepo: repo,
		Storage:    storage,
		HTTP:       client,
		MaxSize:    maxSize,
	}
}

// ==================== 上传 ====================

// Upload 上传图片文件
func (s *UploadService) Upload(ctx context.Context, userID, storeID, filename string, data []byte) (*model.Upload, error) {
	if _, err := s.Guard.Authorize(ctx, userID, storeID); err != nil {
		return nil, err
	}
	return s.store(ctx, storeID, filename, data)
}

// UploadFromURL 下载网络图片并转存
func (s *UploadService) UploadFromURL(ctx context.Context, userID, storeID, sourceURL string) (*model.Upload, error) {
	if _, err := s.Guard.Authorize(ctx, userID, storeID); err != nil {
		return nil, err
	}

	data, _, err := utils.DownloadImage(ctx, s.HTTP, sourceURL, s.MaxSize)
	if err != nil {
		switch {
		case errors.Is(err, utils.ErrDownloadTooLarge):
			return nil, &UploadError{Reason: fmt.Sprintf("file exceeds %d bytes", s.MaxSize)}
		case errors.Is(err, utils.ErrUnsupportedScheme):
			return nil, &UploadError{Reason: "only http and https urls are allowed"}
		}
		// 内网地址与下载失败返回同一原因，不暴露目标主机状态
		return nil, &UploadError{Reason: "could not download image"}
	}
	return s.store(ctx, storeID, path.Base(sourceURL), data)
}

// store 校验内容类型后写入存储并记录
func (s *UploadService) store(ctx context.Context, storeID, filename string, data []byte) (*model.Upload, error) {
	if len(data) == 0 {
		return nil, &UploadError{Reason: "file is empty"}
	}
	if s.MaxSize > 0 && int64(len(data)) > s.MaxSize {
		return nil, &UploadError{Reason: fmt.Sprintf("file exceeds %d bytes", s.MaxSize)}
	}

	mtype := mimetype.Detect(data)
	if !strings.HasPrefix(mtype.String(), "image/") {
		return nil, &UploadError{Reason: "file is not an image"}
	}

	// 以检测到的类型为准，忽略客户端提供的扩展名
	name := strings.TrimSuffix(filename, path.Ext(filename)) + mtype.Extension()
	url, err := s.Storage.Upload(ctx, data, name, mtype.String())
	if err != nil {
		return nil, fmt.Errorf("写入存储失败: %w", err)
	}

	upload := &model.Upload{
		StoreID:     storeID,
		URL:         url,
		Provider:    s.Storage.Name(),
		ContentType: mtype.String(),
		Size:        int64(len(data)),
	}
	if err := s.UploadRepo.Create(ctx, upload); err != nil {
		if delErr := s.Storage.Delete(ctx, url); delErr != nil {
			zap.L().Warn("回滚上传文件失败", zap.String("url", url), zap.Error(delErr))
		}
		return nil, fmt.Errorf("记录上传失败: %w", err)
	}
	return upload, nil
}

// ==================== 清理 ====================

// ListOrphans 当前存储提供者写入、早于 before 且未被引用的上传记录
// 其他提供者的记录无法删除，不参与清理
func (s *UploadService) ListOrphans(ctx context.Context, before time.Time, limit int) ([]model.Upload, error) {
	return s.UploadRepo.FindOrphans(ctx, s.Storage.Name(), before, limit)
}

// DeleteOrphan 删除存储中的文件及其记录
// 由其他存储提供者写入的文件无法在此删除
func (s *UploadService) DeleteOrphan(ctx context.Context, upload *model.Upload) error {
	if upload.Provider != s.Storage.Name() {
		return fmt.Errorf("上传记录属于存储提供者 %s，当前为 %s", upload.Provider, s.Storage.Name())
	}
	if err := s.Storage.Delete(ctx, upload.URL); err != nil {
		return fmt.Errorf("删除存储文件失败: %w", err)
	}
	return s.UploadRepo.Delete(ctx, upload.ID)
}
