package service

import (
	"context"
	"fmt"

	"store_admin_dashboard/internal/api/dto"
	"store_admin_dashboard/internal/model"
	"store_admin_dashboard/internal/repository"
)

// CategoryService 分类服务
type CategoryService struct {
	CategoryRepo repository.CategoryRepository
	Guard        *OwnershipGuard
	Uow          *repository.UnitOfWork
}

// NewCategoryService 创建分类服务
func NewCategoryService(repo repository.CategoryRepository, guard *OwnershipGuard, uow *repository.UnitOfWork) *CategoryService {
	return &CategoryService{CategoryRepo: repo, Guard: guard, Uow: uow}
}

// ==================== 查询 ====================

func (s *CategoryService) List(ctx context.Context, storeID string) ([]model.Category, error) {
	return s.CategoryRepo.ListByStore(ctx, storeID)
}

func (s *CategoryService) Get(ctx context.Context, storeID, id string) (*model.Category, error) {
	category, err := s.CategoryRepo.GetByID(ctx, storeID, id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, ErrNotFound
	}
	return category, nil
}

// ==================== 写操作 ====================

// Create 创建分类，billboardId 必须是本店铺的广告牌
func (s *CategoryService) Create(ctx context.Context, userID, storeID string, req *dto.CategoryReq) (*model.Category, error) {
	if _, err := s.Guard.Authorize(ctx, userID, storeID); err != nil {
		return nil, err
	}

	category := &model.Category{StoreID: storeID, Name: req.Name, BillboardID: req.BillboardID}
	err := s.Uow.Transaction(ctx, func(uow *repository.UnitOfWork) error {
		billboard, err := uow.Billboards.GetByID(ctx, storeID, req.BillboardID)
		if err != nil {
			return err
		}
		if billboard == nil {
			return &ReferenceError{Field: "billboardId"}
		}

		exists, err := uow.Categories.ExistsByKey(ctx, storeID, req.Name, req.BillboardID, "")
		if err != nil {
			return err
		}
		if exists {
			return ErrConflict
		}
		if err := uow.Categories.Create(ctx, category); err != nil {
			return err
		}
		category.Billboard = billboard
		return nil
	})
	if err != nil {
		return nil, translateWriteError(err, "billboardId")
	}
	return category, nil
}

func (s *CategoryService) Update(ctx context.Context, userID, storeID, id string, req *dto.CategoryReq) (*model.Category, error) {
	if _, err := s.Guard.Authorize(ctx, userID, storeID); err != nil {
		return nil, err
	}

	var category *model.Category
	err := s.Uow.Transaction(ctx, func(uow *repository.UnitOfWork) error {
		var err error
		category, err = uow.Categories.GetByID(ctx, storeID, id)
		if err != nil {
			return err
		}
		if category == nil {
			return ErrNotFound
		}

		billboard, err := uow.Billboards.GetByID(ctx, storeID, req.BillboardID)
		if err != nil {
			return err
		}
		if billboard == nil {
			return &ReferenceError{Field: "billboardId"}
		}

		exists, err := uow.Categories.ExistsByKey(ctx, storeID, req.Name, req.BillboardID, id)
		if err != nil {
			return err
		}
		if exists {
			return ErrConflict
		}

		category.Name = req.Name
		category.BillboardID = req.BillboardID
		if err := uow.Categories.Update(ctx, category); err != nil {
			return err
		}
		category.Billboard = billboard
		return nil
	})
	if err != nil {
		return nil, translateWriteError(err, "billboardId")
	}
	return category, nil
}

// Delete 删除分类；仍有商品引用时删除失败
func (s *CategoryService) Delete(ctx context.Context, userID, storeID, id string) (*model.Category, error) {
	if _, err := s.Guard.Authorize(ctx, userID, storeID); err != nil {
		return nil, err
	}

	category, err := s.Get(ctx, storeID, id)
	if err != nil {
		return nil, err
	}
	if err := s.CategoryRepo.Delete(ctx, category); err != nil {
		return nil, fmt.Errorf("删除分类失败: %w", err)
	}
	return category, nil
}
