package service

import (
	"context"
	"fmt"

	"store_admin_dashboard/internal/model"
	"store_admin_dashboard/internal/repository"
)

// OwnershipGuard 店铺归属校验
type OwnershipGuard struct {
	stores repository.StoreRepository
}

// NewOwnershipGuard 创建归属校验
func NewOwnershipGuard(stores repository.StoreRepository) *OwnershipGuard {
	return &OwnershipGuard{stores: stores}
}

// Authorize 校验 userID 是否拥有 storeID
// 无身份 -> ErrUnauthenticated；店铺不存在或不属于该用户 -> ErrUnauthorized
func (g *OwnershipGuard) Authorize(ctx context.Context, userID, storeID string) (*model.Store, error) {
	if userID == "" {
		return nil, ErrUnauthenticated
	}
	store, err := g.stores.GetOwned(ctx, storeID, userID)
	if err != nil {
		return nil, fmt.Errorf("查询店铺失败: %w", err)
	}
	if store == nil {
		return nil, ErrUnauthorized
	}
	return store, nil
}
