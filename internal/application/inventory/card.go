package inventory

import (
	"context"
	"strconv"
	"time"

	"github.com/antonyto02/nexsoft-inventory/internal/application/dto"
	"github.com/antonyto02/nexsoft-inventory/internal/domain/entity"
	"github.com/antonyto02/nexsoft-inventory/internal/domain/repository"
)

// expiringWindow ventana de "próximo a caducar" para la clasificación de tarjetas.
const expiringWindow = 7 * 24 * time.Hour

// BuildProductCard arma la tarjeta del producto con su clasificación de
// estado. La precedencia es: expiring > out_of_stock > low_stock >
// near_minimum > overstock > all. Para productos RFID consulta las entradas
// abiertas para la caducidad más próxima.
func BuildProductCard(
	ctx context.Context,
	product *entity.Product,
	entries repository.StockEntryRepository,
) (*dto.ProductCard, error) {
	card := buildBaseCard(product)

	if product.SensorType == entity.SensorRFID {
		limit := time.Now().Add(expiringWindow)
		count, err := entries.CountExpiring(ctx, product.ID, limit)
		if err != nil {
			return card, err
		}
		if count > 0 {
			card.Status = "expiring"
		}
		next, err := entries.NextExpiration(ctx, product.ID)
		if err != nil {
			return card, err
		}
		if next != nil {
			card.ExpirationDate = next.Format("2006-01-02")
		}
	}
	return card, nil
}

// buildBaseCard clasifica solo con los campos del producto, sin tocar la BD.
func buildBaseCard(product *entity.Product) *dto.ProductCard {
	stock := product.Stock.InexactFloat64()
	min := product.MinStock.InexactFloat64()

	status := "all"
	switch {
	case stock == 0:
		status = "out_of_stock"
	case stock < min:
		status = "low_stock"
	case stock >= min && stock <= min+1:
		status = "near_minimum"
	case product.MaxStock != nil && stock > product.MaxStock.InexactFloat64():
		status = "overstock"
	}

	var max *float64
	if product.MaxStock != nil {
		v := product.MaxStock.InexactFloat64()
		max = &v
	}

	return &dto.ProductCard{
		ID:           strconv.FormatInt(product.ID, 10),
		Name:         product.Name,
		ImageURL:     product.ImageURL,
		StockActual:  stock,
		StockMinimum: min,
		StockMaximum: max,
		SensorType:   string(product.SensorType),
		Category:     product.Category.Name,
		Status:       status,
		IsActive:     product.IsActive,
	}
}
