package service

import (
	"context"
	"testing"

	"gorm.io/gorm"

	"store_admin_dashboard/internal/repository"
	"store_admin_dashboard/internal/testutil"
)

const (
	ownerID = "user_owner"
	otherID = "user_other"
)

// services 测试用服务集合，共享同一个内存数据库
type services struct {
	db         *gorm.DB
	uow        *repository.UnitOfWork
	guard      *OwnershipGuard
	stores     *StoreService
	billboards *BillboardService
	categories *CategoryService
	sizes      *SizeService
	colors     *ColorService
	products   *ProductService
}

func setupServices(t *testing.T) *services {
	t.Helper()
	db := testutil.NewDB(t)
	uow := repository.NewUnitOfWork(db)
	guard := NewOwnershipGuard(uow.Stores)

	return &services{
		db:         db,
		uow:        uow,
		guard:      guard,
		stores:     NewStoreService(uow.Stores, guard, uow),
		billboards: NewBillboardService(uow.Billboards, guard, uow),
		categories: NewCategoryService(uow.Categories, guard, uow),
		sizes:      NewSizeService(uow.Sizes, guard, uow),
		colors:     NewColorService(uow.Colors, guard, uow),
		products:   NewProductService(uow.Products, guard, uow),
	}
}

func countRows(t *testing.T, db *gorm.DB, table string) int64 {
	t.Helper()
	var n int64
	if err := db.Table(table).Count(&n).Error; err != nil {
		t.Fatalf("统计 %s 失败: %v", table, err)
	}
	return n
}

var bg = context.Background()
