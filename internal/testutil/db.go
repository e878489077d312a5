// Package testutil 测试辅助：内存 SQLite 数据库与基础数据
package testutil

import (
	"context"
	"testing"

	"gorm.io/gorm"

	"store_admin_dashboard/internal/middleware"
	"store_admin_dashboard/internal/model"
	"store_admin_dashboard/pkg/database"
)

// NewDB 创建已迁移的内存数据库（开启外键、错误转换、审计回调）
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := database.Open(database.Options{
		Driver:   "sqlite",
		DSN:      "file::memory:",
		LogLevel: "silent",
	})
	if err != nil {
		t.Fatalf("连接测试数据库失败: %v", err)
	}
	middleware.RegisterAuditCallbacks(db)

	if err := database.Migrate(db, model.AllModels()...); err != nil {
		t.Fatalf("数据库迁移失败: %v", err)
	}

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

// Fixture 一个店铺及其基础数据
type Fixture struct {
	Store     *model.Store
	Billboard *model.Billboard
	Category  *model.Category
	Sizes     []model.Size
	Colors    []model.Color
}

// Seed 为 userID 创建店铺、广告牌、分类、两个尺码和两个颜色
func Seed(t *testing.T, db *gorm.DB, userID, storeName string) *Fixture {
	t.Helper()
	ctx := context.Background()

	f := &Fixture{
		Store: &model.Store{UserID: userID, Name: storeName},
	}
	must(t, db.WithContext(ctx).Create(f.Store).Error)

	f.Billboard = &model.Billboard{StoreID: f.Store.ID, Label: "Summer", ImageURL: "https://cdn.example.com/summer.jpg"}
	must(t, db.Create(f.Billboard).Error)

	f.Category = &model.Category{StoreID: f.Store.ID, Name: "Shirts", BillboardID: f.Billboard.ID}
	must(t, db.Omit("Billboard").Create(f.Category).Error)

	f.Sizes = []model.Size{
		{StoreID: f.Store.ID, Name: "Small", Value: "S"},
		{StoreID: f.Store.ID, Name: "Large", Value: "L"},
	}
	must(t, db.Create(&f.Sizes).Error)

	f.Colors = []model.Color{
		{StoreID: f.Store.ID, Name: "Red", Value: "#ff0000"},
		{StoreID: f.Store.ID, Name: "Blue", Value: "#0000ff"},
	}
	must(t, db.Create(&f.Colors).Error)

	return f
}

func must(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("准备测试数据失败: %v", err)
	}
}
