package inventory

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/antonyto02/nexsoft-inventory/internal/domain/entity"
)

func TestHomeSummary_AgrupaPorEstado(t *testing.T) {
	f := newFixture()

	f.store.addProduct(testProduct(1, 0))  // agotado
	f.store.addProduct(testProduct(2, 2))  // bajo mínimo (min 5)
	f.store.addProduct(testProduct(3, 5))  // cerca del mínimo
	f.store.addProduct(testProduct(4, 10)) // normal

	over := testProduct(5, 30)
	max := decimal.NewFromInt(20)
	over.MaxStock = &max
	f.store.addProduct(over)

	otraEmpresa := testProduct(6, 0)
	otraEmpresa.CompanyID = "company-2"
	f.store.addProduct(otraEmpresa)

	uc := NewHomeSummaryUseCase(f.products, f.entries)
	resp, err := uc.GetHomeSummary(context.Background(), "company-1")
	require.NoError(t, err)

	assert.Equal(t, "Resumen cargado correctamente", resp.Message)
	require.Len(t, resp.OutOfStock, 1, "los productos de otra empresa no entran al resumen")
	require.Len(t, resp.LowStock, 1)
	require.Len(t, resp.NearMinimum, 1)
	require.Len(t, resp.Overstock, 1)
	assert.Len(t, resp.All, 5)
	assert.Empty(t, resp.Expiring)

	require.NotNil(t, resp.LowStock[0].StockMinimum)
	assert.Equal(t, 5.0, *resp.LowStock[0].StockMinimum)
	assert.Nil(t, resp.LowStock[0].StockMaximum)

	require.NotNil(t, resp.Overstock[0].StockMaximum)
	assert.Equal(t, 20.0, *resp.Overstock[0].StockMaximum)
}

func TestHomeSummary_CaducidadesOrdenadasPorFecha(t *testing.T) {
	f := newFixture()
	f.store.addProduct(rfidProduct(1, 4))

	en5 := time.Now().Add(5 * 24 * time.Hour)
	en2 := time.Now().Add(2 * 24 * time.Hour)
	lejana := time.Now().Add(30 * 24 * time.Hour)
	for _, e := range []*entity.StockEntry{
		{ProductID: 1, RfidTag: "TAG-A", ExpirationDate: &en5},
		{ProductID: 1, RfidTag: "TAG-B", ExpirationDate: &en2},
		{ProductID: 1, RfidTag: "TAG-C", ExpirationDate: &lejana},
	} {
		_, err := f.entries.Create(context.Background(), e)
		require.NoError(t, err)
	}

	uc := NewHomeSummaryUseCase(f.products, f.entries)
	resp, err := uc.GetHomeSummary(context.Background(), "company-1")
	require.NoError(t, err)

	require.Len(t, resp.Expiring, 2, "las caducidades fuera de la ventana no aparecen")
	assert.Equal(t, en2.Format("2006-01-02"), resp.Expiring[0].ExpirationDate)
	assert.Equal(t, en5.Format("2006-01-02"), resp.Expiring[1].ExpirationDate)
}
