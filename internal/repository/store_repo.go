package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"store_admin_dashboard/internal/model"
)

// ==================== 接口定义 ====================

// StoreRepository 店铺仓储接口
type StoreRepository interface {
	Create(ctx context.Context, store *model.Store) error
	GetByID(ctx context.Context, id string) (*model.Store, error)
	GetOwned(ctx context.Context, id, userID string) (*model.Store, error)
	ListByUserID(ctx context.Context, userID string) ([]model.Store, error)
	ExistsByName(ctx context.Context, name, excludeID string) (bool, error)
	Update(ctx context.Context, store *model.Store) error
	Delete(ctx context.Context, store *model.Store) error
}

// ==================== 仓储实现 ====================

type storeRepo struct {
	db *gorm.DB
}

// NewStoreRepository 创建店铺仓储
func NewStoreRepository(db *gorm.DB) StoreRepository {
	return &storeRepo{db: db}
}

func (r *storeRepo) Create(ctx context.Context, store *model.Store) error {
	return r.db.WithContext(ctx).Create(store).Error
}

func (r *storeRepo) GetByID(ctx context.Context, id string) (*model.Store, error) {
	var store model.Store
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&store).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &store, nil
}

// GetOwned 按店铺 ID + 所有者查询，未命中返回 nil
func (r *storeRepo) GetOwned(ctx context.Context, id, userID string) (*model.Store, error) {
	var store model.Store
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&store).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &store, nil
}

func (r *storeRepo) ListByUserID(ctx context.Context, userID string) ([]model.Store, error) {
	var stores []model.Store
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&stores).Error
	return stores, err
}

func (r *storeRepo) ExistsByName(ctx context.Context, name, excludeID string) (bool, error) {
	return exists(ctx, r.db, &model.Store{}, map[string]interface{}{"name": name}, excludeID)
}

func (r *storeRepo) Update(ctx context.Context, store *model.Store) error {
	return r.db.WithContext(ctx).Save(store).Error
}

// Delete 删除店铺
// 子实体通过 store_id 外键级联删除；商品与尺码/颜色的中间表外键不级联，需先清理
func (r *storeRepo) Delete(ctx context.Context, store *model.Store) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		productIDs := tx.Model(&model.Product{}).Select("id").Where("store_id = ?", store.ID)

		if err := tx.Exec("DELETE FROM product_sizes WHERE product_id IN (?)", productIDs).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM product_colors WHERE product_id IN (?)", productIDs).Error; err != nil {
			return err
		}
		return tx.Delete(store).Error
	})
}

// ==================== 公共辅助 ====================

// exists 按等值条件判断记录是否存在，excludeID 非空时排除该记录（更新场景）
func exists(ctx context.Context, db *gorm.DB, m interface{}, conds map[string]interface{}, excludeID string) (bool, error) {
	var count int64
	query := db.WithContext(ctx).Model(m).Where(conds)
	if excludeID != "" {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
