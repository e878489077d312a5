package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"store_admin_dashboard/internal/model"
)

// CategoryRepository 分类仓储接口
type CategoryRepository interface {
	Create(ctx context.Context, category *model.Category) error
	GetByID(ctx context.Context, storeID, id string) (*model.Category, error)
	ListByStore(ctx context.Context, storeID string) ([]model.Category, error)
	ExistsByKey(ctx context.Context, storeID, name, billboardID, excludeID string) (bool, error)
	Update(ctx context.Context, category *model.Category) error
	Delete(ctx context.Context, category *model.Category) error
}

type categoryRepo struct {
	db *gorm.DB
}

// NewCategoryRepository 创建分类仓储
func NewCategoryRepository(db *gorm.DB) CategoryRepository {
	return &categoryRepo{db: db}
}

func (r *categoryRepo) Create(ctx context.Context, category *model.Category) error {
	return r.db.WithContext(ctx).Omit("Billboard").Create(category).Error
}

// GetByID 查询分类，附带广告牌
func (r *categoryRepo) GetByID(ctx context.Context, storeID, id string) (*model.Category, error) {
	var category model.Category
	err := r.db.WithContext(ctx).
		Preload("Billboard").
		Where("id = ? AND store_id = ?", id, storeID).
		First(&category).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *categoryRepo) ListByStore(ctx context.Context, storeID string) ([]model.Category, error) {
	var list []model.Category
	err := r.db.WithContext(ctx).
		Preload("Billboard").
		Where("store_id = ?", storeID).
		Order("created_at DESC").
		Find(&list).Error
	return list, err
}

func (r *categoryRepo) ExistsByKey(ctx context.Context, storeID, name, billboardID, excludeID string) (bool, error) {
	return exists(ctx, r.db, &model.Category{}, map[string]interface{}{
		"store_id":     storeID,
		"name":         name,
		"billboard_id": billboardID,
	}, excludeID)
}

func (r *categoryRepo) Update(ctx context.Context, category *model.Category) error {
	return r.db.WithContext(ctx).Omit("Billboard").Save(category).Error
}

// Delete 删除分类，仍被商品引用时由外键约束拒绝
func (r *categoryRepo) Delete(ctx context.Context, category *model.Category) error {
	return r.db.WithContext(ctx).Delete(category).Error
}
