package service

import (
	"context"
	"fmt"

	"store_admin_dashboard/internal/api/dto"
	"store_admin_dashboard/internal/model"
	"store_admin_dashboard/internal/repository"
)

// ProductService 商品服务
type ProductService struct {
	ProductRepo repository.ProductRepository
	Guard       *OwnershipGuard
	Uow         *repository.UnitOfWork
}

// NewProductService 创建商品服务
func NewProductService(repo repository.ProductRepository, guard *OwnershipGuard, uow *repository.UnitOfWork) *ProductService {
	return &ProductService{ProductRepo: repo, Guard: guard, Uow: uow}
}

// ==================== 查询 ====================

// List 商品列表
// 默认排除已归档商品；includeArchived 仅店铺所有者可用
func (s *ProductService) List(ctx context.Context, userID, storeID string, query *dto.ProductListQuery) ([]model.Product, error) {
	if query == nil {
		query = &dto.ProductListQuery{}
	}
	if query.IncludeArchived {
		if _, err := s.Guard.Authorize(ctx, userID, storeID); err != nil {
			return nil, err
		}
	}

	return s.ProductRepo.List(ctx, repository.ProductFilter{
		StoreID:         storeID,
		CategoryID:      query.CategoryID,
		BillboardID:     query.BillboardID,
		SizeIDs:         query.SizeIDs,
		ColorIDs:        query.ColorIDs,
		FeaturedOnly:    query.FeaturedOnly(),
		IncludeArchived: query.IncludeArchived,
	})
}

func (s *ProductService) Get(ctx context.Context, storeID, id string) (*model.Product, error) {
	product, err := s.ProductRepo.GetByID(ctx, storeID, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrNotFound
	}
	return product, nil
}

// ==================== 写操作 ====================

// Create 创建商品及其尺码、颜色、图片
func (s *ProductService) Create(ctx context.Context, userID, storeID string, req *dto.ProductReq) (*model.Product, error) {
	if _, err := s.Guard.Authorize(ctx, userID, storeID); err != nil {
		return nil, err
	}

	var created *model.Product
	err := s.Uow.Transaction(ctx, func(uow *repository.UnitOfWork) error {
		sizes, colors, err := resolveProductRefs(ctx, uow, storeID, req)
		if err != nil {
			return err
		}

		exists, err := uow.Products.ExistsByKey(ctx, storeID, req.CategoryID, req.Name, "")
		if err != nil {
			return err
		}
		if exists {
			return ErrConflict
		}

		product := &model.Product{StoreID: storeID}
		applyProductReq(product, req)
		if err := uow.Products.Create(ctx, product); err != nil {
			return err
		}
		if err := uow.Products.ReplaceRelations(ctx, product, sizes, colors, req.ImageURLs()); err != nil {
			return err
		}

		created, err = uow.Products.GetByID(ctx, storeID, product.ID)
		return err
	})
	if err != nil {
		return nil, translateWriteError(err, "categoryId")
	}
	return created, nil
}

// Update 更新商品，尺码、颜色、图片整体替换
func (s *ProductService) Update(ctx context.Context, userID, storeID, id string, req *dto.ProductReq) (*model.Product, error) {
	if _, err := s.Guard.Authorize(ctx, userID, storeID); err != nil {
		return nil, err
	}

	var updated *model.Product
	err := s.Uow.Transaction(ctx, func(uow *repository.UnitOfWork) error {
		product, err := uow.Products.GetByID(ctx, storeID, id)
		if err != nil {
			return err
		}
		if product == nil {
			return ErrNotFound
		}

		sizes, colors, err := resolveProductRefs(ctx, uow, storeID, req)
		if err != nil {
			return err
		}

		exists, err := uow.Products.ExistsByKey(ctx, storeID, req.CategoryID, req.Name, id)
		if err != nil {
			return err
		}
		if exists {
			return ErrConflict
		}

		applyProductReq(product, req)
		if err := uow.Products.Update(ctx, product); err != nil {
			return err
		}
		if err := uow.Products.ReplaceRelations(ctx, product, sizes, colors, req.ImageURLs()); err != nil {
			return err
		}

		updated, err = uow.Products.GetByID(ctx, storeID, id)
		return err
	})
	if err != nil {
		return nil, translateWriteError(err, "categoryId")
	}
	return updated, nil
}

// Delete 删除商品，关联的图片与中间表记录一并删除
func (s *ProductService) Delete(ctx context.Context, userID, storeID, id string) (*model.Product, error) {
	if _, err := s.Guard.Authorize(ctx, userID, storeID); err != nil {
		return nil, err
	}

	var deleted *model.Product
	err := s.Uow.Transaction(ctx, func(uow *repository.UnitOfWork) error {
		product, err := uow.Products.GetByID(ctx, storeID, id)
		if err != nil {
			return err
		}
		if product == nil {
			return ErrNotFound
		}
		if err := uow.Products.Delete(ctx, product); err != nil {
			return fmt.Errorf("删除商品失败: %w", err)
		}
		deleted = product
		return nil
	})
	if err != nil {
		return nil, err
	}
	return deleted, nil
}

// ==================== 辅助 ====================

// resolveProductRefs 校验分类、尺码、颜色均属于本店铺
func resolveProductRefs(ctx context.Context, uow *repository.UnitOfWork, storeID string, req *dto.ProductReq) ([]model.Size, []model.Color, error) {
	category, err := uow.Categories.GetByID(ctx, storeID, req.CategoryID)
	if err != nil {
		return nil, nil, err
	}
	if category == nil {
		return nil, nil, &ReferenceError{Field: "categoryId"}
	}

	sizeIDs := req.SizeIDs()
	sizes, err := uow.Sizes.FindByIDs(ctx, storeID, sizeIDs)
	if err != nil {
		return nil, nil, err
	}
	if len(sizes) != len(sizeIDs) {
		return nil, nil, &ReferenceError{Field: "sizes"}
	}

	colorIDs := req.ColorIDs()
	colors, err := uow.Colors.FindByIDs(ctx, storeID, colorIDs)
	if err != nil {
		return nil, nil, err
	}
	if len(colors) != len(colorIDs) {
		return nil, nil, &ReferenceError{Field: "colors"}
	}

	return sizes, colors, nil
}

func applyProductReq(product *model.Product, req *dto.ProductReq) {
	product.CategoryID = req.CategoryID
	product.Name = req.Name
	product.Price = float64(req.Price)
	product.Quantity = int(req.Quantity)
	product.IsFeatured = req.IsFeatured
	product.IsArchived = req.IsArchived
}
