package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"store_admin_dashboard/internal/model"
)

// BillboardRepository 广告牌仓储接口
type BillboardRepository interface {
	Create(ctx context.Context, billboard *model.Billboard) error
	GetByID(ctx context.Context, storeID, id string) (*model.Billboard, error)
	ListByStore(ctx context.Context, storeID string) ([]model.Billboard, error)
	ExistsByKey(ctx context.Context, storeID, label, imageURL, excludeID string) (bool, error)
	Update(ctx context.Context, billboard *model.Billboard) error
	Delete(ctx context.Context, billboard *model.Billboard) error
}

type billboardRepo struct {
	db *gorm.DB
}

// NewBillboardRepository 创建广告牌仓储
func NewBillboardRepository(db *gorm.DB) BillboardRepository {
	return &billboardRepo{db: db}
}

func (r *billboardRepo) Create(ctx context.Context, billboard *model.Billboard) error {
	return r.db.WithContext(ctx).Create(billboard).Error
}

func (r *billboardRepo) GetByID(ctx context.Context, storeID, id string) (*model.Billboard, error) {
	var billboard model.Billboard
	err := r.db.WithContext(ctx).
		Where("id = ? AND store_id = ?", id, storeID).
		First(&billboard).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &billboard, nil
}

func (r *billboardRepo) ListByStore(ctx context.Context, storeID string) ([]model.Billboard, error) {
	var list []model.Billboard
	err := r.db.WithContext(ctx).
		Where("store_id = ?", storeID).
		Order("created_at DESC").
		Find(&list).Error
	return list, err
}

func (r *billboardRepo) ExistsByKey(ctx context.Context, storeID, label, imageURL, excludeID string) (bool, error) {
	return exists(ctx, r.db, &model.Billboard{}, map[string]interface{}{
		"store_id":  storeID,
		"label":     label,
		"image_url": imageURL,
	}, excludeID)
}

func (r *billboardRepo) Update(ctx context.Context, billboard *model.Billboard) error {
	return r.db.WithContext(ctx).Save(billboard).Error
}

// Delete 删除广告牌，仍被分类引用时由外键约束拒绝
func (r *billboardRepo) Delete(ctx context.Context, billboard *model.Billboard) error {
	return r.db.WithContext(ctx).Delete(billboard).Error
}
