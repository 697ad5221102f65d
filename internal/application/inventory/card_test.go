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

func TestCard_ClasificacionPorStock(t *testing.T) {
	max := decimal.NewFromInt(20)
	cases := []struct {
		name   string
		stock  float64
		status string
	}{
		{"agotado", 0, "out_of_stock"},
		{"bajo minimo", 3, "low_stock"},
		{"en el minimo", 5, "near_minimum"},
		{"justo sobre el minimo", 6, "near_minimum"},
		{"normal", 10, "all"},
		{"sobre el maximo", 25, "overstock"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := testProduct(1, tc.stock) // min 5
			p.MaxStock = &max
			card := buildBaseCard(p)
			assert.Equal(t, tc.status, card.Status)
		})
	}
}

func TestCard_SinMaximoNuncaHayOverstock(t *testing.T) {
	p := testProduct(1, 1000)
	card := buildBaseCard(p)
	assert.Equal(t, "all", card.Status)
	assert.Nil(t, card.StockMaximum)
}

func TestCard_ProductoRFIDConCaducidadProxima(t *testing.T) {
	f := newFixture()
	p := f.store.addProduct(rfidProduct(1, 10))

	soon := time.Now().Add(48 * time.Hour)
	far := time.Now().Add(60 * 24 * time.Hour)
	_, err := f.entries.Create(context.Background(), &entity.StockEntry{ProductID: 1, RfidTag: "TAG-A", ExpirationDate: &soon})
	require.NoError(t, err)
	_, err = f.entries.Create(context.Background(), &entity.StockEntry{ProductID: 1, RfidTag: "TAG-B", ExpirationDate: &far})
	require.NoError(t, err)

	card, err := BuildProductCard(context.Background(), p, f.entries)
	require.NoError(t, err)

	assert.Equal(t, "expiring", card.Status, "la caducidad próxima tiene precedencia sobre el estado por stock")
	assert.Equal(t, soon.Format("2006-01-02"), card.ExpirationDate,
		"se muestra la caducidad más próxima entre las entradas abiertas")
}

func TestCard_ProductoRFIDSinCaducidadesCercanas(t *testing.T) {
	f := newFixture()
	p := f.store.addProduct(rfidProduct(1, 10))

	far := time.Now().Add(60 * 24 * time.Hour)
	_, err := f.entries.Create(context.Background(), &entity.StockEntry{ProductID: 1, RfidTag: "TAG-A", ExpirationDate: &far})
	require.NoError(t, err)

	card, err := BuildProductCard(context.Background(), p, f.entries)
	require.NoError(t, err)

	assert.Equal(t, "all", card.Status)
	assert.Equal(t, far.Format("2006-01-02"), card.ExpirationDate)
}
