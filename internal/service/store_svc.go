package service

import (
	"context"
	"fmt"

	"store_admin_dashboard/internal/api/dto"
	"store_admin_dashboard/internal/model"
	"store_admin_dashboard/internal/repository"
)

// StoreService 店铺服务
type StoreService struct {
	StoreRepo repository.StoreRepository
	Guard     *OwnershipGuard
	Uow       *repository.UnitOfWork
}

// NewStoreService 创建店铺服务
func NewStoreService(storeRepo repository.StoreRepository, guard *OwnershipGuard, uow *repository.UnitOfWork) *StoreService {
	return &StoreService{StoreRepo: storeRepo, Guard: guard, Uow: uow}
}

// ==================== 查询 ====================

// List 当前用户拥有的店铺（店铺切换器）
func (s *StoreService) List(ctx context.Context, userID string) ([]model.Store, error) {
	if userID == "" {
		return nil, ErrUnauthenticated
	}
	return s.StoreRepo.ListByUserID(ctx, userID)
}

// Get 获取当前用户拥有的店铺
func (s *StoreService) Get(ctx context.Context, userID, storeID string) (*model.Store, error) {
	return s.Guard.Authorize(ctx, userID, storeID)
}

// ==================== 写操作 ====================

// Create 创建店铺，名称全局唯一
func (s *StoreService) Create(ctx context.Context, userID string, req *dto.StoreReq) (*model.Store, error) {
	if userID == "" {
		return nil, ErrUnauthenticated
	}

	store := &model.Store{UserID: userID, Name: req.Name}
	err := s.Uow.Transaction(ctx, func(uow *repository.UnitOfWork) error {
		exists, err := uow.Stores.ExistsByName(ctx, req.Name, "")
		if err != nil {
			return err
		}
		if exists {
			return ErrConflict
		}
		return uow.Stores.Create(ctx, store)
	})
	if err != nil {
		return nil, translateWriteError(err, "")
	}
	return store, nil
}

// Update 重命名店铺
func (s *StoreService) Update(ctx context.Context, userID, storeID string, req *dto.StoreReq) (*model.Store, error) {
	store, err := s.Guard.Authorize(ctx, userID, storeID)
	if err != nil {
		return nil, err
	}

	err = s.Uow.Transaction(ctx, func(uow *repository.UnitOfWork) error {
		exists, err := uow.Stores.ExistsByName(ctx, req.Name, store.ID)
		if err != nil {
			return err
		}
		if exists {
			return ErrConflict
		}
		store.Name = req.Name
		return uow.Stores.Update(ctx, store)
	})
	if err != nil {
		return nil, translateWriteError(err, "")
	}
	return store, nil
}

// Delete 删除店铺及其全部子实体
func (s *StoreService) Delete(ctx context.Context, userID, storeID string) (*model.Store, error) {
	store, err := s.Guard.Authorize(ctx, userID, storeID)
	if err != nil {
		return nil, err
	}
	if err := s.StoreRepo.Delete(ctx, store); err != nil {
		return nil, fmt.Errorf("删除店铺失败: %w", err)
	}
	return store, nil
}
