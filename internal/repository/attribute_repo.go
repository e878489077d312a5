package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"store_admin_dashboard/internal/model"
)

// ==================== 尺码 ====================

// SizeRepository 尺码仓储接口
type SizeRepository interface {
	Create(ctx context.Context, size *model.Size) error
	GetByID(ctx context.Context, storeID, id string) (*model.Size, error)
	FindByIDs(ctx context.Context, storeID string, ids []string) ([]model.Size, error)
	ListByStore(ctx context.Context, storeID string) ([]model.Size, error)
	ExistsByKey(ctx context.Context, storeID, name, value, excludeID string) (bool, error)
	Update(ctx context.Context, size *model.Size) error
	Delete(ctx context.Context, size *model.Size) error
}

type sizeRepo struct {
	db *gorm.DB
}

// NewSizeRepository 创建尺码仓储
func NewSizeRepository(db *gorm.DB) SizeRepository {
	return &sizeRepo{db: db}
}

func (r *sizeRepo) Create(ctx context.Context, size *model.Size) error {
	return r.db.WithContext(ctx).Create(size).Error
}

func (r *sizeRepo) GetByID(ctx context.Context, storeID, id string) (*model.Size, error) {
	var size model.Size
	err := r.db.WithContext(ctx).
		Where("id = ? AND store_id = ?", id, storeID).
		First(&size).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &size, nil
}

// FindByIDs 查询店铺内的一组尺码，不存在或属于其他店铺的 ID 不会返回
func (r *sizeRepo) FindByIDs(ctx context.Context, storeID string, ids []string) ([]model.Size, error) {
	var list []model.Size
	if len(ids) == 0 {
		return list, nil
	}
	err := r.db.WithContext(ctx).
		Where("store_id = ? AND id IN ?", storeID, ids).
		Find(&list).Error
	return list, err
}

func (r *sizeRepo) ListByStore(ctx context.Context, storeID string) ([]model.Size, error) {
	var list []model.Size
	err := r.db.WithContext(ctx).
		Where("store_id = ?", storeID).
		Order("created_at DESC").
		Find(&list).Error
	return list, err
}

func (r *sizeRepo) ExistsByKey(ctx context.Context, storeID, name, value, excludeID string) (bool, error) {
	return exists(ctx, r.db, &model.Size{}, map[string]interface{}{
		"store_id": storeID,
		"name":     name,
		"value":    value,
	}, excludeID)
}

func (r *sizeRepo) Update(ctx context.Context, size *model.Size) error {
	return r.db.WithContext(ctx).Save(size).Error
}

// Delete 删除尺码，仍被商品引用时由中间表外键拒绝
func (r *sizeRepo) Delete(ctx context.Context, size *model.Size) error {
	return r.db.WithContext(ctx).Delete(size).Error
}

// ==================== 颜色 ====================

// ColorRepository 颜色仓储接口
type ColorRepository interface {
	Create(ctx context.Context, color *model.Color) error
	GetByID(ctx context.Context, storeID, id string) (*model.Color, error)
	FindByIDs(ctx context.Context, storeID string, ids []string) ([]model.Color, error)
	ListByStore(ctx context.Context, storeID string) ([]model.Color, error)
	ExistsByKey(ctx context.Context, storeID, name, value, excludeID string) (bool, error)
	Update(ctx context.Context, color *model.Color) error
	Delete(ctx context.Context, color *model.Color) error
}

type colorRepo struct {
	db *gorm.DB
}

// NewColorRepository 创建颜色仓储
func NewColorRepository(db *gorm.DB) ColorRepository {
	return &colorRepo{db: db}
}

func (r *colorRepo) Create(ctx context.Context, color *model.Color) error {
	return r.db.WithContext(ctx).Create(color).Error
}

func (r *colorRepo) GetByID(ctx context.Context, storeID, id string) (*model.Color, error) {
	var color model.Color
	err := r.db.WithContext(ctx).
		Where("id = ? AND store_id = ?", id, storeID).
		First(&color).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &color, nil
}

func (r *colorRepo) FindByIDs(ctx context.Context, storeID string, ids []string) ([]model.Color, error) {
	var list []model.Color
	if len(ids) == 0 {
		return list, nil
	}
	err := r.db.WithContext(ctx).
		Where("store_id = ? AND id IN ?", storeID, ids).
		Find(&list).Error
	return list, err
}

func (r *colorRepo) ListByStore(ctx context.Context, storeID string) ([]model.Color, error) {
	var list []model.Color
	err := r.db.WithContext(ctx).
		Where("store_id = ?", storeID).
		Order("created_at DESC").
		Find(&list).Error
	return list, err
}

func (r *colorRepo) ExistsByKey(ctx context.Context, storeID, name, value, excludeID string) (bool, error) {
	return exists(ctx, r.db, &model.Color{}, map[string]interface{}{
		"store_id": storeID,
		"name":     name,
		"value":    value,
	}, excludeID)
}

func (r *colorRepo) Update(ctx context.Context, color *model.Color) error {
	return r.db.WithContext(ctx).Save(color).Error
}

// Delete 删除颜色，仍被商品引用时由中间表外键拒绝
func (r *colorRepo) Delete(ctx context.Context, color *model.Color) error {
	return r.db.WithContext(ctx).Delete(color).Error
}
