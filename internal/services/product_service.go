package services

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/vivekdevkar123/BillEase-BE/internal/models/db_models"
	"github.com/vivekdevkar123/BillEase-BE/internal/models/request_models"
	"github.com/vivekdevkar123/BillEase-BE/internal/models/response_models"
	"github.com/vivekdevkar123/BillEase-BE/internal/repositories"
	"github.com/vivekdevkar123/BillEase-BE/pkg/utils"
)

type ProductServiceInterface interface {
	ListProducts(ctx context.Context, userID uuid.UUID) ([]response_models.ProductResponse, error)
	GetProduct(ctx context.Context, userID, id uuid.UUID) (*response_models.ProductResponse, error)
	CreateProduct(ctx context.Context, userID uuid.UUID, req request_models.CreateProductRequest) (*response_models.ProductResponse, error)
	UpdateProduct(ctx context.Context, userID, id uuid.UUID, req request_models.UpdateProductRequest) (*response_models.ProductResponse, error)
	// DeleteProduct deactivates the product; bills referencing it by
	// name keep rendering, it just leaves the catalog.
	DeleteProduct(ctx context.Context, userID, id uuid.UUID) error
}

type ProductService struct {
	productRepo repositories.ProductRepository
}

func NewProductService(productRepo repositories.ProductRepository) ProductServiceInterface {
	return &ProductService{productRepo: productRepo}
}

func (p *ProductService) ListProducts(ctx context.Context, userID uuid.UUID) ([]response_models.ProductResponse, error) {
	products, err := p.productRepo.ListActiveByUser(ctx, userID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	result := make([]response_models.ProductResponse, 0, len(products))
	for i := range products {
		result = append(result, toProductResponse(&products[i]))
	}
	return result, nil
}

func (p *ProductService) GetProduct(ctx context.Context, userID, id uuid.UUID) (*response_models.ProductResponse, error) {
	product, err := p.productRepo.FindByID(ctx, userID, id)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if product == nil {
		return nil, utils.ErrProductNotFound
	}

	resp := toProductResponse(product)
	return &resp, nil
}

func (p *ProductService) CreateProduct(ctx context.Context, userID uuid.UUID, req request_models.CreateProductRequest) (*response_models.ProductResponse, error) {
	if req.Price <= 0 {
		vErr := utils.NewValidationError()
		vErr.Add("price", "Price must be greater than 0")
		return nil, vErr
	}

	// Untracked stock is stored as 0, matching catalog imports.
	stock := 0
	if req.StockQuantity != nil {
		stock = *req.StockQuantity
	}

	product := &db_models.Product{
		UserID:        userID,
		Name:          req.Name,
		Description:   req.Description,
		Price:         decimal.NewFromFloat(req.Price),
		Category:      req.Category,
		StockQuantity: &stock,
		IsActive:      true,
	}
	if req.IsActive != nil {
		product.IsActive = *req.IsActive
	}

	if err := p.productRepo.Insert(ctx, product); err != nil {
		return nil, utils.ErrDatabaseError
	}

	resp := toProductResponse(product)
	return &resp, nil
}

func (p *ProductService) UpdateProduct(ctx context.Context, userID, id uuid.UUID, req request_models.UpdateProductRequest) (*response_models.ProductResponse, error) {
	product, err := p.productRepo.FindByID(ctx, userID, id)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if product == nil {
		return nil, utils.ErrProductNotFound
	}

	if req.Price != nil && *req.Price <= 0 {
		vErr := utils.NewValidationError()
		vErr.Add("price", "Price must be greater than 0")
		return nil, vErr
	}

	if req.Name != nil {
		product.Name = *req.Name
	}
	if req.Description != nil {
		product.Description = *req.Description
	}
	if req.Price != nil {
		product.Price = decimal.NewFromFloat(*req.Price)
	}
	if req.Category != nil {
		product.Category = *req.Category
	}
	if req.StockQuantity != nil {
		product.StockQuantity = req.StockQuantity
	}
	if req.IsActive != nil {
		product.IsActive = *req.IsActive
	}

	if err := p.productRepo.Update(ctx, product); err != nil {
		return nil, utils.ErrDatabaseError
	}

	resp := toProductResponse(product)
	return &resp, nil
}

func (p *ProductService) DeleteProduct(ctx context.Context, userID, id uuid.UUID) error {
	product, err := p.productRepo.FindByID(ctx, userID, id)
	if err != nil {
		return utils.ErrDatabaseError
	}
	if product == nil {
		return utils.ErrProductNotFound
	}

	product.IsActive = false
	if err := p.productRepo.Update(ctx, product); err != nil {
		return utils.ErrDatabaseError
	}
	return nil
}

func toProductResponse(p *db_models.Product) response_models.ProductResponse {
	return response_models.ProductResponse{
		ID:            p.ID,
		Name:          p.Name,
		Description:   p.Description,
		Price:         p.Price.InexactFloat64(),
		Category:      p.Category,
		StockQuantity: p.StockQuantity,
		IsActive:      p.IsActive,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}
