package inventory

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/antonyto02/nexsoft-inventory/internal/application/dto"
	"github.com/antonyto02/nexsoft-inventory/internal/domain"
	"github.com/antonyto02/nexsoft-inventory/internal/domain/entity"
)

func newRfidUC(f *fixture, entryModeOn bool) *RfidUseCase {
	return NewRfidUseCase(
		&fakeTxRunner{s: f.store}, f.products, f.entries, f.recorder,
		NewEntryMode(entryModeOn), f.broadcaster, testLogger(),
	)
}

func rfidProduct(id int64, stock float64) *entity.Product {
	p := testProduct(id, stock)
	p.SensorType = entity.SensorRFID
	return p
}

func TestRfid_RegistroMasivoCreaEntradasYUnSoloMovimiento(t *testing.T) {
	f := newFixture()
	f.store.addProduct(rfidProduct(1, 0))
	uc := newRfidUC(f, true)

	out, err := uc.RegisterEntries(context.Background(), "company-1", 1, []dto.RfidEntryItem{
		{RfidTag: "TAG-A", ExpirationDate: "2026-09-15"},
		{RfidTag: "TAG-B"},
		{RfidTag: "  "}, // malformado: se omite
		{RfidTag: "TAG-C"},
	})
	require.NoError(t, err)
	assert.Equal(t, 3, out.Registered)
	assert.Equal(t, 0, out.Duplicates)

	assert.Equal(t, 3, f.store.openEntryCount())
	assert.True(t, f.store.stockOf(1).Equal(decimal.NewFromInt(3)))
	require.Equal(t, 1, f.store.movementCount(), "un lote produce un único movimiento por el total")

	f.store.mu.Lock()
	m := f.store.movements[0]
	f.store.mu.Unlock()
	assert.Equal(t, entity.MovementTypeEntry, m.TypeID)
	assert.True(t, m.Quantity.Equal(decimal.NewFromInt(3)))
}

func TestRfid_TagsYaAbiertosCuentanComoDuplicados(t *testing.T) {
	f := newFixture()
	f.store.addProduct(rfidProduct(1, 0))
	uc := newRfidUC(f, true)
	ctx := context.Background()

	_, err := uc.RegisterEntries(ctx, "company-1", 1, []dto.RfidEntryItem{{RfidTag: "TAG-A"}})
	require.NoError(t, err)

	out, err := uc.RegisterEntries(ctx, "company-1", 1, []dto.RfidEntryItem{
		{RfidTag: "TAG-A"},
		{RfidTag: "TAG-B"},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, out.Registered)
	assert.Equal(t, 1, out.Duplicates)
	assert.True(t, f.store.stockOf(1).Equal(decimal.NewFromInt(2)))
}

func TestRfid_RegistroRequiereModoEntrada(t *testing.T) {
	f := newFixture()
	f.store.addProduct(rfidProduct(1, 0))
	uc := newRfidUC(f, false)

	_, err := uc.RegisterEntries(context.Background(), "company-1", 1, []dto.RfidEntryItem{{RfidTag: "TAG-A"}})
	assert.ErrorIs(t, err, domain.ErrEntryModeDisabled)
	assert.Equal(t, 0, f.store.openEntryCount())
}

func TestRfid_RegistroSoloParaProductosRFID(t *testing.T) {
	f := newFixture()
	f.store.addProduct(testProduct(1, 0)) // manual
	uc := newRfidUC(f, true)

	_, err := uc.RegisterEntries(context.Background(), "company-1", 1, []dto.RfidEntryItem{{RfidTag: "TAG-A"}})
	assert.ErrorIs(t, err, domain.ErrNotRfidProduct)
}

func TestRfid_EscaneoConsumeLaEntradaYBajaUno(t *testing.T) {
	f := newFixture()
	f.store.addProduct(rfidProduct(1, 0))
	uc := newRfidUC(f, true)
	ctx := context.Background()

	_, err := uc.RegisterEntries(ctx, "company-1", 1, []dto.RfidEntryItem{{RfidTag: "TAG-A"}})
	require.NoError(t, err)
	require.True(t, f.store.stockOf(1).Equal(decimal.NewFromInt(1)))

	require.NoError(t, uc.HandleTag(ctx, "TAG-A"))
	assert.True(t, f.store.stockOf(1).Equal(decimal.Zero))
	assert.Equal(t, 0, f.store.openEntryCount(), "la entrada consumida queda soft-eliminada")
	assert.Empty(t, f.broadcaster.detectedTags())

	// Segundo escaneo del mismo tag: ya no hay entrada abierta, se notifica sin mutar stock.
	require.NoError(t, uc.HandleTag(ctx, "TAG-A"))
	assert.True(t, f.store.stockOf(1).Equal(decimal.Zero))
	assert.Equal(t, []string{"TAG-A"}, f.broadcaster.detectedTags())
}

func TestRfid_TagDesconocidoSoloNotifica(t *testing.T) {
	f := newFixture()
	f.store.addProduct(rfidProduct(1, 5))
	uc := newRfidUC(f, true)

	require.NoError(t, uc.HandleTag(context.Background(), "  TAG-X "))
	assert.True(t, f.store.stockOf(1).Equal(decimal.NewFromInt(5)))
	assert.Equal(t, 0, f.store.movementCount())
	assert.Equal(t, []string{"TAG-X"}, f.broadcaster.detectedTags(), "el tag se notifica normalizado")
}

func TestRfid_EscaneoEmiteBroadcastDeInventario(t *testing.T) {
	f := newFixture()
	f.store.addProduct(rfidProduct(1, 0))
	uc := newRfidUC(f, true)
	ctx := context.Background()

	_, err := uc.RegisterEntries(ctx, "company-1", 1, []dto.RfidEntryItem{{RfidTag: "TAG-A"}})
	require.NoError(t, err)
	require.NoError(t, uc.HandleTag(ctx, "TAG-A"))

	// Registro + consumo: dos broadcasts.
	require.Eventually(t, func() bool { return f.broadcaster.updateCount() == 2 },
		time.Second, 10*time.Millisecond)
	update := f.broadcaster.lastUpdate()
	assert.Equal(t, "Baja", update.MovementData.Type)
	assert.Equal(t, -1.0, update.MovementData.Quantity)
}

func TestParseExpiration(t *testing.T) {
	assert.Nil(t, parseExpiration(""))
	assert.Nil(t, parseExpiration("15/09/2026"))

	d := parseExpiration("2026-09-15")
	require.NotNil(t, d)
	assert.Equal(t, time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC), *d)
}
