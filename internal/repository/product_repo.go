package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"store_admin_dashboard/internal/model"
)

// ==================== 接口定义 ====================

// ProductRepository 商品仓储接口
// Create / ReplaceRelations / Delete 包含多步写操作，调用方应在 UnitOfWork 事务内执行
type ProductRepository interface {
	Create(ctx context.Context, product *model.Product) error
	GetByID(ctx context.Context, storeID, id string) (*model.Product, error)
	List(ctx context.Context, filter ProductFilter) ([]model.Product, error)
	ExistsByKey(ctx context.Context, storeID, categoryID, name, excludeID string) (bool, error)
	Update(ctx context.Context, product *model.Product) error
	ReplaceRelations(ctx context.Context, product *model.Product, sizes []model.Size, colors []model.Color, imageURLs []string) error
	Delete(ctx context.Context, product *model.Product) error
}

// ==================== 过滤条件 ====================

// ProductFilter 商品过滤条件
type ProductFilter struct {
	StoreID         string
	CategoryID      string
	BillboardID     string
	SizeIDs         []string // 命中任意一个
	ColorIDs        []string // 命中任意一个
	FeaturedOnly    bool
	IncludeArchived bool
}

// ==================== 仓储实现 ====================

type productRepo struct {
	db *gorm.DB
}

// NewProductRepository 创建商品仓储
func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepo{db: db}
}

// withRelations 预加载分类、尺码、颜色、图片
func withRelations(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Category").
		Preload("Sizes").
		Preload("Colors").
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("images.position ASC")
		})
}

// Create 写入商品本身，关联通过 ReplaceRelations 写入
func (r *productRepo) Create(ctx context.Context, product *model.Product) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(product).Error
}

func (r *productRepo) GetByID(ctx context.Context, storeID, id string) (*model.Product, error) {
	var product model.Product
	err := withRelations(r.db.WithContext(ctx)).
		Where("products.id = ? AND products.store_id = ?", id, storeID).
		First(&product).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// List 商品列表，按创建时间倒序
func (r *productRepo) List(ctx context.Context, filter ProductFilter) ([]model.Product, error) {
	db := r.db.WithContext(ctx)
	query := withRelations(db).Model(&model.Product{}).
		Where("products.store_id = ?", filter.StoreID)

	if filter.CategoryID != "" {
		query = query.Where("products.category_id = ?", filter.CategoryID)
	}
	if filter.BillboardID != "" {
		sub := db.Model(&model.Category{}).Select("id").Where("billboard_id = ?", filter.BillboardID)
		query = query.Where("products.category_id IN (?)", sub)
	}
	if len(filter.SizeIDs) > 0 {
		sub := db.Table("product_sizes").Select("product_id").Where("size_id IN ?", filter.SizeIDs)
		query = query.Where("products.id IN (?)", sub)
	}
	if len(filter.ColorIDs) > 0 {
		sub := db.Table("product_colors").Select("product_id").Where("color_id IN ?", filter.ColorIDs)
		query = query.Where("products.id IN (?)", sub)
	}
	if filter.FeaturedOnly {
		query = query.Where("products.is_featured = ?", true)
	}
	if !filter.IncludeArchived {
		query = query.Where("products.is_archived = ?", false)
	}

	var list []model.Product
	err := query.Order("products.created_at DESC").Find(&list).Error
	return list, err
}

func (r *productRepo) ExistsByKey(ctx context.Context, storeID, categoryID, name, excludeID string) (bool, error) {
	return exists(ctx, r.db, &model.Product{}, map[string]interface{}{
		"store_id":    storeID,
		"category_id": categoryID,
		"name":        name,
	}, excludeID)
}

// Update 只更新商品自身字段
func (r *productRepo) Update(ctx context.Context, product *model.Product) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(product).Error
}

// ReplaceRelations 整体替换尺码、颜色关联与图片
// 图片不做差异比对：先删除全部再按提交顺序重建
func (r *productRepo) ReplaceRelations(ctx context.Context, product *model.Product, sizes []model.Size, colors []model.Color, imageURLs []string) error {
	db := r.db.WithContext(ctx)

	if err := db.Model(product).Association("Sizes").Replace(sizes); err != nil {
		return err
	}
	if err := db.Model(product).Association("Colors").Replace(colors); err != nil {
		return err
	}
	if err := db.Where("product_id = ?", product.ID).Delete(&model.Image{}).Error; err != nil {
		return err
	}

	images := make([]model.Image, 0, len(imageURLs))
	for i, url := range imageURLs {
		images = append(images, model.Image{ProductID: product.ID, URL: url, Position: i})
	}
	if len(images) > 0 {
		if err := db.Create(&images).Error; err != nil {
			return err
		}
	}
	product.Images = images
	return nil
}

// Delete 删除商品及其关联行与图片
func (r *productRepo) Delete(ctx context.Context, product *model.Product) error {
	db := r.db.WithContext(ctx)

	if err := db.Model(product).Association("Sizes").Clear(); err != nil {
		return err
	}
	if err := db.Model(product).Association("Colors").Clear(); err != nil {
		return err
	}
	if err := db.Where("product_id = ?", product.ID).Delete(&model.Image{}).Error; err != nil {
		return err
	}
	return db.Delete(product).Error
}
