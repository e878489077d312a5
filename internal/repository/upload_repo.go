package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"store_admin_dashboard/internal/model"
)

// UploadRepository 上传记录仓储接口
type UploadRepository interface {
	Create(ctx context.Context, upload *model.Upload) error
	FindOrphans(ctx context.Context, provider string, before time.Time, limit int) ([]model.Upload, error)
	Delete(ctx context.Context, id string) error
}

type uploadRepo struct {
	db *gorm.DB
}

// NewUploadRepository 创建上传记录仓储
func NewUploadRepository(db *gorm.DB) UploadRepository {
	return &uploadRepo{db: db}
}

func (r *uploadRepo) Create(ctx context.Context, upload *model.Upload) error {
	return r.db.WithContext(ctx).Create(upload).Error
}

// FindOrphans 查找 provider 写入、早于 before 且未被广告牌或商品图片引用的上传记录
func (r *uploadRepo) FindOrphans(ctx context.Context, provider string, before time.Time, limit int) ([]model.Upload, error) {
	db := r.db.WithContext(ctx)
	billboardURLs := db.Model(&model.Billboard{}).Select("image_url")
	imageURLs := db.Model(&model.Image{}).Select("url")

	var list []model.Upload
	err := db.
		Where("provider = ?", provider).
		Where("created_at < ?", before).
		Where("url NOT IN (?)", billboardURLs).
		Where("url NOT IN (?)", imageURLs).
		Order("created_at ASC").
		Limit(limit).
		Find(&list).Error
	return list, err
}

func (r *uploadRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Upload{}).Error
}
