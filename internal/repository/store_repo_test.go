package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"store_admin_dashboard/internal/model"
	"store_admin_dashboard/internal/testutil"
)

func TestStoreRepository_CRUD(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewStoreRepository(db)
	ctx := context.Background()

	store := &model.Store{UserID: "user_1", Name: "Main"}
	require.NoError(t, repo.Create(ctx, store))
	assert.Len(t, store.ID, 36)

	t.Run("GetOwned", func(t *testing.T) {
		got, err := repo.GetOwned(ctx, store.ID, "user_1")
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, "Main", got.Name)

		got, err = repo.GetOwned(ctx, store.ID, "user_2")
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("ExistsByName", func(t *testing.T) {
		ok, err := repo.ExistsByName(ctx, "Main", "")
		require.NoError(t, err)
		assert.True(t, ok)

		ok, err = repo.ExistsByName(ctx, "Main", store.ID)
		require.NoError(t, err)
		assert.False(t, ok, "更新自身时不应判定为重复")
	})

	t.Run("ListByUserID", func(t *testing.T) {
		require.NoError(t, repo.Create(ctx, &model.Store{UserID: "user_1", Name: "Second"}))
		require.NoError(t, repo.Create(ctx, &model.Store{UserID: "user_2", Name: "Other"}))

		list, err := repo.ListByUserID(ctx, "user_1")
		require.NoError(t, err)
		assert.Len(t, list, 2)
	})

	t.Run("UniqueIndex", func(t *testing.T) {
		err := repo.Create(ctx, &model.Store{UserID: "user_3", Name: "Main"})
		assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)
	})
}

func TestStoreRepository_DeleteCascades(t *testing.T) {
	db := testutil.NewDB(t)
	f := testutil.Seed(t, db, "user_1", "Main")
	ctx := context.Background()

	products := NewProductRepository(db)
	product := &model.Product{StoreID: f.Store.ID, CategoryID: f.Category.ID, Name: "Tee", Price: 10, Quantity: 1}
	require.NoError(t, products.Create(ctx, product))
	require.NoError(t, products.ReplaceRelations(ctx, product, f.Sizes, f.Colors, []string{"u1"}))

	repo := NewStoreRepository(db)
	require.NoError(t, repo.Delete(ctx, f.Store))

	for _, m := range []interface{}{&model.Store{}, &model.Billboard{}, &model.Category{}, &model.Size{}, &model.Color{}, &model.Product{}, &model.Image{}} {
		var count int64
		require.NoError(t, db.Model(m).Count(&count).Error)
		assert.Zero(t, count, "%T 应被级联删除", m)
	}

	var links int64
	db.Table("product_sizes").Count(&links)
	assert.Zero(t, links)
}

func TestUnitOfWork_Rollback(t *testing.T) {
	db := testutil.NewDB(t)
	uow := NewUnitOfWork(db)
	ctx := context.Background()

	err := uow.Transaction(ctx, func(tx *UnitOfWork) error {
		if err := tx.Stores.Create(ctx, &model.Store{UserID: "u", Name: "A"}); err != nil {
			return err
		}
		return tx.Stores.Create(ctx, &model.Store{UserID: "u", Name: "A"})
	})
	require.ErrorIs(t, err, gorm.ErrDuplicatedKey)

	var count int64
	db.Model(&model.Store{}).Count(&count)
	assert.Zero(t, count, "事务失败后不应留下任何店铺")
}
