package service

import (
	"context"
	"fmt"

	"store_admin_dashboard/internal/api/dto"
	"store_admin_dashboard/internal/model"
	"store_admin_dashboard/internal/repository"
)

// ==================== 尺码 ====================

// SizeService 尺码服务
type SizeService struct {
	SizeRepo repository.SizeRepository
	Guard    *OwnershipGuard
	Uow      *repository.UnitOfWork
}

// NewSizeService 创建尺码服务
func NewSizeService(repo repository.SizeRepository, guard *OwnershipGuard, uow *repository.UnitOfWork) *SizeService {
	return &SizeService{SizeRepo: repo, Guard: guard, Uow: uow}
}

func (s *SizeService) List(ctx context.Context, storeID string) ([]model.Size, error) {
	return s.SizeRepo.ListByStore(ctx, storeID)
}

func (s *SizeService) Get(ctx context.Context, storeID, id string) (*model.Size, error) {
	size, err := s.SizeRepo.GetByID(ctx, storeID, id)
	if err != nil {
		return nil, err
	}
	if size == nil {
		return nil, ErrNotFound
	}
	return size, nil
}

func (s *SizeService) Create(ctx context.Context, userID, storeID string, req *dto.SizeReq) (*model.Size, error) {
	if _, err := s.Guard.Authorize(ctx, userID, storeID); err != nil {
		return nil, err
	}

	size := &model.Size{StoreID: storeID, Name: req.Name, Value: req.Value}
	err := s.Uow.Transaction(ctx, func(uow *repository.UnitOfWork) error {
		exists, err := uow.Sizes.ExistsByKey(ctx, storeID, req.Name, req.Value, "")
		if err != nil {
			return err
		}
		if exists {
			return ErrConflict
		}
		return uow.Sizes.Create(ctx, size)
	})
	if err != nil {
		return nil, translateWriteError(err, "")
	}
	return size, nil
}

func (s *SizeService) Update(ctx context.Context, userID, storeID, id string, req *dto.SizeReq) (*model.Size, error) {
	if _, err := s.Guard.Authorize(ctx, userID, storeID); err != nil {
		return nil, err
	}

	var size *model.Size
	err := s.Uow.Transaction(ctx, func(uow *repository.UnitOfWork) error {
		var err error
		size, err = uow.Sizes.GetByID(ctx, storeID, id)
		if err != nil {
			return err
		}
		if size == nil {
			return ErrNotFound
		}
		exists, err := uow.Sizes.ExistsByKey(ctx, storeID, req.Name, req.Value, id)
		if err != nil {
			return err
		}
		if exists {
			return ErrConflict
		}
		size.Name = req.Name
		size.Value = req.Value
		return uow.Sizes.Update(ctx, size)
	})
	if err != nil {
		return nil, translateWriteError(err, "")
	}
	return size, nil
}

// Delete 删除尺码；仍被商品引用时删除失败
func (s *SizeService) Delete(ctx context.Context, userID, storeID, id string) (*model.Size, error) {
	if _, err := s.Guard.Authorize(ctx, userID, storeID); err != nil {
		return nil, err
	}
	size, err := s.Get(ctx, storeID, id)
	if err != nil {
		return nil, err
	}
	if err := s.SizeRepo.Delete(ctx, size); err != nil {
		return nil, fmt.Errorf("删除尺码失败: %w", err)
	}
	return size, nil
}

// ==================== 颜色 ====================

// ColorService 颜色服务
type ColorService struct {
	ColorRepo repository.ColorRepository
	Guard     *OwnershipGuard
	Uow       *repository.UnitOfWork
}

// NewColorService 创建颜色服务
func NewColorService(repo repository.ColorRepository, guard *OwnershipGuard, uow *repository.UnitOfWork) *ColorService {
	return &ColorService{ColorRepo: repo, Guard: guard, Uow: uow}
}

func (s *ColorService) List(ctx context.Context, storeID string) ([]model.Color, error) {
	return s.ColorRepo.ListByStore(ctx, storeID)
}

func (s *ColorService) Get(ctx context.Context, storeID, id string) (*model.Color, error) {
	color, err := s.ColorRepo.GetByID(ctx, storeID, id)
	if err != nil {
		return nil, err
	}
	if color == nil {
		return nil, ErrNotFound
	}
	return color, nil
}

func (s *ColorService) Create(ctx context.Context, userID, storeID string, req *dto.ColorReq) (*model.Color, error) {
	if _, err := s.Guard.Authorize(ctx, userID, storeID); err != nil {
		return nil, err
	}

	color := &model.Color{StoreID: storeID, Name: req.Name, Value: req.Value}
	err := s.Uow.Transaction(ctx, func(uow *repository.UnitOfWork) error {
		exists, err := uow.Colors.ExistsByKey(ctx, storeID, req.Name, req.Value, "")
		if err != nil {
			return err
		}
		if exists {
			return ErrConflict
		}
		return uow.Colors.Create(ctx, color)
	})
	if err != nil {
		return nil, translateWriteError(err, "")
	}
	return color, nil
}

func (s *ColorService) Update(ctx context.Context, userID, storeID, id string, req *dto.ColorReq) (*model.Color, error) {
	if _, err := s.Guard.Authorize(ctx, userID, storeID); err != nil {
		return nil, err
	}

	var color *model.Color
	err := s.Uow.Transaction(ctx, func(uow *repository.UnitOfWork) error {
		var err error
		color, err = uow.Colors.GetByID(ctx, storeID, id)
		if err != nil {
			return err
		}
		if color == nil {
			return ErrNotFound
		}
		exists, err := uow.Colors.ExistsByKey(ctx, storeID, req.Name, req.Value, id)
		if err != nil {
			return err
		}
		if exists {
			return ErrConflict
		}
		color.Name = req.Name
		color.Value = req.Value
		return uow.Colors.Update(ctx, color)
	})
	if err != nil {
		return nil, translateWriteError(err, "")
	}
	return color, nil
}

// Delete 删除颜色；仍被商品引用时删除失败
func (s *ColorService) Delete(ctx context.Context, userID, storeID, id string) (*model.Color, error) {
	if _, err := s.Guard.Authorize(ctx, userID, storeID); err != nil {
		return nil, err
	}
	color, err := s.Get(ctx, storeID, id)
	if err != nil {
		return nil, err
	}
	if err := s.ColorRepo.Delete(ctx, color); err != nil {
		return nil, fmt.Errorf("删除颜色失败: %w", err)
	}
	return color, nil
}
