package inventory

import (
	"context"
	"time"

	"github.com/antonyto02/nexsoft-inventory/internal/application/dto"
	"github.com/antonyto02/nexsoft-inventory/internal/domain/entity"
	"github.com/antonyto02/nexsoft-inventory/internal/domain/repository"
)

// homeListLimit elementos por lista del resumen de inicio.
const homeListLimit = 5

// HomeSummaryUseCase arma el resumen de inicio del dashboard: caducidades
// próximas, agotados, bajo mínimo, cerca del mínimo, sobre-stock y listado
// alfabético, todo acotado al tenant.
type HomeSummaryUseCase struct {
	productRepo repository.ProductRepository
	entryRepo   repository.StockEntryRepository
}

// NewHomeSummaryUseCase construye el caso de uso.
func NewHomeSummaryUseCase(productRepo repository.ProductRepository, entryRepo repository.StockEntryRepository) *HomeSummaryUseCase {
	return &HomeSummaryUseCase{productRepo: productRepo, entryRepo: entryRepo}
}

// GetHomeSummary devuelve los seis grupos del resumen.
func (uc *HomeSummaryUseCase) GetHomeSummary(ctx context.Context, companyID string) (*dto.HomeSummaryResponse, error) {
	limitDate := time.Now().Add(expiringWindow)

	expiring, err := uc.entryRepo.ListExpiring(ctx, companyID, limitDate, homeListLimit)
	if err != nil {
		return nil, err
	}
	outOfStock, err := uc.productRepo.ListOutOfStock(ctx, companyID, homeListLimit)
	if err != nil {
		return nil, err
	}
	lowStock, err := uc.productRepo.ListLowStock(ctx, companyID, homeListLimit)
	if err != nil {
		return nil, err
	}
	nearMinimum, err := uc.productRepo.ListNearMinimum(ctx, companyID, homeListLimit)
	if err != nil {
		return nil, err
	}
	overstock, err := uc.productRepo.ListOverstock(ctx, companyID, homeListLimit)
	if err != nil {
		return nil, err
	}
	all, err := uc.productRepo.ListAlphabetical(ctx, companyID, homeListLimit)
	if err != nil {
		return nil, err
	}

	resp := &dto.HomeSummaryResponse{
		Message:     "Resumen cargado correctamente",
		Expiring:    make([]dto.HomeItem, 0, len(expiring)),
		OutOfStock:  homeItems(outOfStock, false, false),
		LowStock:    homeItems(lowStock, true, false),
		NearMinimum: homeItems(nearMinimum, true, false),
		Overstock:   homeItems(overstock, false, true),
		All:         homeItems(all, false, false),
	}
	for _, e := range expiring {
		item := dto.HomeItem{
			Name:        e.Product.Name,
			StockActual: e.Product.Stock.InexactFloat64(),
			ImageURL:    e.Product.ImageURL,
			SensorType:  string(e.Product.SensorType),
		}
		if e.Entry.ExpirationDate != nil {
			item.ExpirationDate = e.Entry.ExpirationDate.Format("2006-01-02")
		}
		resp.Expiring = append(resp.Expiring, item)
	}
	return resp, nil
}

// homeItems mapea productos a elementos del resumen, incluyendo mínimo o
// máximo solo en las listas que los muestran.
func homeItems(products []*entity.Product, withMin, withMax bool) []dto.HomeItem {
	items := make([]dto.HomeItem, 0, len(products))
	for _, p := range products {
		item := dto.HomeItem{
			Name:        p.Name,
			StockActual: p.Stock.InexactFloat64(),
			ImageURL:    p.ImageURL,
			SensorType:  string(p.SensorType),
		}
		if withMin {
			min := p.MinStock.InexactFloat64()
			item.StockMinimum = &min
		}
		if withMax && p.MaxStock != nil {
			max := p.MaxStock.InexactFloat64()
			item.StockMaximum = &max
		}
		items = append(items, item)
	}
	return items
}
