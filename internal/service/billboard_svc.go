package service

import (
	"context"
	"fmt"

	"store_admin_dashboard/internal/api/dto"
	"store_admin_dashboard/internal/model"
	"store_admin_dashboard/internal/repository"
)

// BillboardService 广告牌服务
type BillboardService struct {
	BillboardRepo repository.BillboardRepository
	Guard         *OwnershipGuard
	Uow           *repository.UnitOfWork
}

// NewBillboardService 创建广告牌服务
func NewBillboardService(repo repository.BillboardRepository, guard *OwnershipGuard, uow *repository.UnitOfWork) *BillboardService {
	return &BillboardService{BillboardRepo: repo, Guard: guard, Uow: uow}
}

// ==================== 查询 ====================

func (s *BillboardService) List(ctx context.Context, storeID string) ([]model.Billboard, error) {
	return s.BillboardRepo.ListByStore(ctx, storeID)
}

func (s *BillboardService) Get(ctx context.Context, storeID, id string) (*model.Billboard, error) {
	billboard, err := s.BillboardRepo.GetByID(ctx, storeID, id)
	if err != nil {
		return nil, err
	}
	if billboard == nil {
		return nil, ErrNotFound
	}
	return billboard, nil
}

// ==================== 写操作 ====================

func (s *BillboardService) Create(ctx context.Context, userID, storeID string, req *dto.BillboardReq) (*model.Billboard, error) {
	if _, err := s.Guard.Authorize(ctx, userID, storeID); err != nil {
		return nil, err
	}

	billboard := &model.Billboard{StoreID: storeID, Label: req.Label, ImageURL: req.ImageURL}
	err := s.Uow.Transaction(ctx, func(uow *repository.UnitOfWork) error {
		exists, err := uow.Billboards.ExistsByKey(ctx, storeID, req.Label, req.ImageURL, "")
		if err != nil {
			return err
		}
		if exists {
			return ErrConflict
		}
		return uow.Billboards.Create(ctx, billboard)
	})
	if err != nil {
		return nil, translateWriteError(err, "")
	}
	return billboard, nil
}

func (s *BillboardService) Update(ctx context.Context, userID, storeID, id string, req *dto.BillboardReq) (*model.Billboard, error) {
	if _, err := s.Guard.Authorize(ctx, userID, storeID); err != nil {
		return nil, err
	}

	var billboard *model.Billboard
	err := s.Uow.Transaction(ctx, func(uow *repository.UnitOfWork) error {
		var err error
		billboard, err = uow.Billboards.GetByID(ctx, storeID, id)
		if err != nil {
			return err
		}
		if billboard == nil {
			return ErrNotFound
		}

		exists, err := uow.Billboards.ExistsByKey(ctx, storeID, req.Label, req.ImageURL, id)
		if err != nil {
			return err
		}
		if exists {
			return ErrConflict
		}

		billboard.Label = req.Label
		billboard.ImageURL = req.ImageURL
		return uow.Billboards.Update(ctx, billboard)
	})
	if err != nil {
		return nil, translateWriteError(err, "")
	}
	return billboard, nil
}

// Delete 删除广告牌；仍被分类引用时数据库拒绝删除，按内部错误返回
func (s *BillboardService) Delete(ctx context.Context, userID, storeID, id string) (*model.Billboard, error) {
	if _, err := s.Guard.Authorize(ctx, userID, storeID); err != nil {
		return nil, err
	}

	billboard, err := s.Get(ctx, storeID, id)
	if err != nil {
		return nil, err
	}
	if err := s.BillboardRepo.Delete(ctx, billboard); err != nil {
		return nil, fmt.Errorf("删除广告牌失败: %w", err)
	}
	return billboard, nil
}
