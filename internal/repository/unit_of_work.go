package repository

import (
	"context"

	"gorm.io/gorm"
)

// ==================== 事务支持 ====================

// UnitOfWork 工作单元（事务）
// 唯一性检查与写入在同一事务内执行，商品关联替换整体提交或整体回滚
type UnitOfWork struct {
	db         *gorm.DB
	Stores     StoreRepository
	Billboards BillboardRepository
	Categories CategoryRepository
	Sizes      SizeRepository
	Colors     ColorRepository
	Products   ProductRepository
	Uploads    UploadRepository
}

// NewUnitOfWork 创建工作单元
func NewUnitOfWork(db *gorm.DB) *UnitOfWork {
	return &UnitOfWork{
		db:         db,
		Stores:     NewStoreRepository(db),
		Billboards: NewBillboardRepository(db),
		Categories: NewCategoryRepository(db),
		Sizes:      NewSizeRepository(db),
		Colors:     NewColorRepository(db),
		Products:   NewProductRepository(db),
		Uploads:    NewUploadRepository(db),
	}
}

// Transaction 执行事务，fn 返回错误时回滚
func (u *UnitOfWork) Transaction(ctx context.Context, fn func(uow *UnitOfWork) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewUnitOfWork(tx))
	})
}
