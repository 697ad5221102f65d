package usecase

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/antonyto02/nexsoft-inventory/internal/application/dto"
	"github.com/antonyto02/nexsoft-inventory/internal/application/inventory"
	"github.com/antonyto02/nexsoft-inventory/internal/domain"
	"github.com/antonyto02/nexsoft-inventory/internal/domain/entity"
	"github.com/antonyto02/nexsoft-inventory/internal/domain/repository"
)

// ProductUseCase gestiona el ciclo de vida de productos: alta, consulta,
// edición parcial, baja lógica y los listados del catálogo. El stock nunca se
// edita por aquí: solo los movimientos lo mutan.
type ProductUseCase struct {
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
	unitRepo     repository.UnitRepository
	entryRepo    repository.StockEntryRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(
	productRepo repository.ProductRepository,
	categoryRepo repository.CategoryRepository,
	unitRepo repository.UnitRepository,
	entryRepo repository.StockEntryRepository,
) *ProductUseCase {
	return &ProductUseCase{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		unitRepo:     unitRepo,
		entryRepo:    entryRepo,
	}
}

// Create da de alta un producto con stock 0.
func (uc *ProductUseCase) Create(ctx context.Context, companyID string, in dto.CreateProductRequest) (*dto.CreateProductResponse, error) {
	if !entity.SensorType(in.SensorType).Valid() {
		return nil, domain.ErrInvalidInput
	}
	if strings.TrimSpace(in.Name) == "" {
		return nil, domain.ErrInvalidInput
	}

	category, err := uc.categoryRepo.GetByID(ctx, in.Category)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, domain.ErrInvalidInput
	}
	unit, err := uc.unitRepo.GetByID(ctx, in.UnitType)
	if err != nil {
		return nil, err
	}
	if unit == nil {
		return nil, domain.ErrInvalidInput
	}

	product := &entity.Product{
		CompanyID:   companyID,
		Name:        in.Name,
		Brand:       in.Brand,
		Description: in.Description,
		Stock:       decimal.Zero,
		MinStock:    decimal.NewFromFloat(in.StockMin),
		SensorType:  entity.SensorType(in.SensorType),
		IsActive:    true,
		ImageURL:    in.ImageURL,
		Unit:        *unit,
		Category:    *category,
	}
	if in.StockMax != nil {
		max := decimal.NewFromFloat(*in.StockMax)
		product.MaxStock = &max
	}

	id, err := uc.productRepo.Create(ctx, product)
	if err != nil {
		return nil, err
	}
	return &dto.CreateProductResponse{
		Message:   "Producto creado correctamente",
		ProductID: strconv.FormatInt(id, 10),
	}, nil
}

// GetByID devuelve la vista detallada del producto del tenant.
func (uc *ProductUseCase) GetByID(ctx context.Context, companyID string, id int64) (*dto.ProductDetail, error) {
	product, err := uc.get(ctx, companyID, id)
	if err != nil {
		return nil, err
	}

	var max *float64
	if product.MaxStock != nil {
		v := product.MaxStock.InexactFloat64()
		max = &v
	}
	return &dto.ProductDetail{
		ID:             strconv.FormatInt(product.ID, 10),
		Name:           product.Name,
		Brand:          product.Brand,
		Description:    product.Description,
		StockActual:    product.Stock.InexactFloat64(),
		StockMinimum:   product.MinStock.InexactFloat64(),
		StockMaximum:   max,
		Unit:           product.Unit.Name,
		AllowsDecimals: product.Unit.AllowsDecimals,
		Category:       product.Category.Name,
		SensorType:     string(product.SensorType),
		IsActive:       product.IsActive,
		ImageURL:       product.ImageURL,
		LastUpdated:    product.UpdatedAt.Format(time.RFC3339),
	}, nil
}

// Update aplica un patch parcial sobre el producto.
func (uc *ProductUseCase) Update(ctx context.Context, companyID string, id int64, in dto.UpdateProductRequest) (*dto.MessageResponse, error) {
	product, err := uc.get(ctx, companyID, id)
	if err != nil {
		return nil, err
	}

	if in.Name != nil {
		product.Name = *in.Name
	}
	if in.Brand != nil {
		product.Brand = *in.Brand
	}
	if in.Description != nil {
		product.Description = *in.Description
	}
	if in.StockMinimum != nil {
		product.MinStock = decimal.NewFromFloat(*in.StockMinimum)
	}
	if in.StockMaximum != nil {
		max := decimal.NewFromFloat(*in.StockMaximum)
		product.MaxStock = &max
	}
	if in.ImageURL != nil {
		product.ImageURL = *in.ImageURL
	}
	if in.Category != nil {
		category, err := uc.categoryRepo.GetByID(ctx, *in.Category)
		if err != nil {
			return nil, err
		}
		if category == nil {
			return nil, domain.ErrInvalidInput
		}
		product.Category = *category
	}

	if err := uc.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}
	return &dto.MessageResponse{Message: "Producto actualizado correctamente"}, nil
}

// Remove da de baja lógica el producto. El historial de movimientos no se
// altera: los movimientos son hechos inmutables.
func (uc *ProductUseCase) Remove(ctx context.Context, companyID string, id int64) (*dto.MessageResponse, error) {
	product, err := uc.get(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	if err := uc.productRepo.SoftDelete(ctx, product.ID); err != nil {
		return nil, err
	}
	return &dto.MessageResponse{Message: "Producto eliminado correctamente"}, nil
}

// ListByStatus lista tarjetas del tenant filtradas por estado de tarjeta
// (out_of_stock, low_stock, near_minimum, overstock, expiring, all).
func (uc *ProductUseCase) ListByStatus(ctx context.Context, companyID, status string, page dto.PageRequest) (*dto.ProductListResponse, error) {
	page.DefaultPage()
	products, err := uc.productRepo.List(ctx, companyID, repository.ProductFilter{Limit: page.Limit, Offset: page.Offset()})
	if err != nil {
		return nil, err
	}
	cards, err := uc.buildCards(ctx, products)
	if err != nil {
		return nil, err
	}
	if status != "" && status != "all" {
		filtered := cards[:0]
		for _, c := range cards {
			if c.Status == status {
				filtered = append(filtered, c)
			}
		}
		cards = filtered
	}
	return &dto.ProductListResponse{
		Message:  "Productos obtenidos correctamente",
		Products: cards,
		Page:     page.Page,
		Limit:    page.Limit,
	}, nil
}

// ListGeneral lista tarjetas con filtro opcional por categoría.
func (uc *ProductUseCase) ListGeneral(ctx context.Context, companyID string, categoryID *int, page dto.PageRequest) (*dto.ProductListResponse, error) {
	page.DefaultPage()
	products, err := uc.productRepo.List(ctx, companyID, repository.ProductFilter{
		CategoryID: categoryID,
		Limit:      page.Limit,
		Offset:     page.Offset(),
	})
	if err != nil {
		return nil, err
	}
	cards, err := uc.buildCards(ctx, products)
	if err != nil {
		return nil, err
	}
	return &dto.ProductListResponse{
		Message:  "Productos obtenidos correctamente",
		Products: cards,
		Page:     page.Page,
		Limit:    page.Limit,
	}, nil
}

// Search busca por nombre (mínimo 2 caracteres).
func (uc *ProductUseCase) Search(ctx context.Context, companyID, name string, limit, offset int) (*dto.ProductListResponse, error) {
	name = strings.TrimSpace(name)
	if len(name) < 2 {
		return nil, domain.ErrInvalidInput
	}
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	products, err := uc.productRepo.SearchByName(ctx, companyID, name, limit, offset)
	if err != nil {
		return nil, err
	}
	cards, err := uc.buildCards(ctx, products)
	if err != nil {
		return nil, err
	}
	return &dto.ProductListResponse{
		Message:  "Productos obtenidos correctamente",
		Products: cards,
		Limit:    limit,
	}, nil
}

// get resuelve un producto del tenant o el error de dominio que corresponda.
func (uc *ProductUseCase) get(ctx context.Context, companyID string, id int64) (*entity.Product, error) {
	product, err := uc.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrProductNotFound
	}
	if product.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	return product, nil
}

func (uc *ProductUseCase) buildCards(ctx context.Context, products []*entity.Product) ([]*dto.ProductCard, error) {
	cards := make([]*dto.ProductCard, 0, len(products))
	for _, p := range products {
		card, err := inventory.BuildProductCard(ctx, p, uc.entryRepo)
		if err != nil {
			return nil, err
		}
		cards = append(cards, card)
	}
	return cards, nil
}
