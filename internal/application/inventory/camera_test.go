package inventory

import (
	"context"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/antonyto02/nexsoft-inventory/internal/application/dto"
	"github.com/antonyto02/nexsoft-inventory/internal/domain"
	"github.com/antonyto02/nexsoft-inventory/internal/domain/entity"
)

func newCameraUC(f *fixture, productID int64) *CameraUseCase {
	return NewCameraUseCase(&fakeTxRunner{s: f.store}, f.recorder, productID, testLogger())
}

func cameraProduct(id int64, stock float64) *entity.Product {
	p := testProduct(id, stock)
	p.SensorType = entity.SensorCamera
	return p
}

func TestCamera_ConteoMenorRegistraBajaPorLaDiferencia(t *testing.T) {
	f := newFixture()
	f.store.addProduct(cameraProduct(1, 5))
	uc := newCameraUC(f, 1)

	require.NoError(t, uc.HandleCount(context.Background(), decimal.NewFromInt(3)))

	assert.True(t, f.store.stockOf(1).Equal(decimal.NewFromInt(3)))
	require.Equal(t, 1, f.store.movementCount())
	f.store.mu.Lock()
	m := f.store.movements[0]
	f.store.mu.Unlock()
	assert.Equal(t, entity.MovementTypeExit, m.TypeID)
	assert.True(t, m.Quantity.Equal(decimal.NewFromInt(2)))
}

func TestCamera_ConteoMayorRegistraAlta(t *testing.T) {
	f := newFixture()
	f.store.addProduct(cameraProduct(1, 3))
	uc := newCameraUC(f, 1)

	require.NoError(t, uc.HandleCount(context.Background(), decimal.NewFromInt(7)))

	assert.True(t, f.store.stockOf(1).Equal(decimal.NewFromInt(7)))
	f.store.mu.Lock()
	m := f.store.movements[0]
	f.store.mu.Unlock()
	assert.Equal(t, entity.MovementTypeEntry, m.TypeID)
	assert.True(t, m.Quantity.Equal(decimal.NewFromInt(4)))
}

// Lecturas repetidas del mismo estado son idempotentes.
func TestCamera_ConteoIgualNoProduceMovimiento(t *testing.T) {
	f := newFixture()
	f.store.addProduct(cameraProduct(1, 5))
	uc := newCameraUC(f, 1)
	ctx := context.Background()

	require.NoError(t, uc.HandleCount(ctx, decimal.NewFromInt(5)))
	require.NoError(t, uc.HandleCount(ctx, decimal.NewFromInt(5)))

	assert.Equal(t, 0, f.store.movementCount())
	assert.True(t, f.store.stockOf(1).Equal(decimal.NewFromInt(5)))
}

func TestCamera_ConteoNegativoSeRechaza(t *testing.T) {
	f := newFixture()
	f.store.addProduct(cameraProduct(1, 5))
	uc := newCameraUC(f, 1)

	err := uc.HandleCount(context.Background(), decimal.NewFromInt(-1))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Equal(t, 0, f.store.movementCount())
}

func TestCamera_CanalSinProductoVinculadoDescarta(t *testing.T) {
	f := newFixture()
	uc := newCameraUC(f, 0)

	require.NoError(t, uc.HandleCount(context.Background(), decimal.NewFromInt(4)))
	assert.Equal(t, 0, f.store.movementCount())
}

// Movimientos manuales y conteos de cámara concurrentes sobre el mismo
// producto deben encadenar sus cantidades antes/después sin perder ninguna
// actualización: cada movimiento parte del stock que dejó el anterior.
func TestCamera_ConcurrenciaConMovimientoManualEncadenaCantidades(t *testing.T) {
	f := newFixture()
	// Producto de sensor manual vinculado también al canal de cámara para
	// forzar ambos caminos sobre la misma fila.
	f.store.addProduct(testProduct(1, 10))
	cameraUC := newCameraUC(f, 1)
	manualUC := newManualUC(f)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, err := manualUC.Create(context.Background(), "company-1", 1, dto.CreateMovementRequest{
				Type:     entity.MovementTypeEntry,
				Quantity: 1,
			})
			assert.NoError(t, err)
		}()
		go func() {
			defer wg.Done()
			// El conteo absoluto nunca es menor que cero, así que la
			// reconciliación jamás produce stock insuficiente.
			assert.NoError(t, cameraUC.HandleCount(context.Background(), decimal.NewFromInt(10)))
		}()
	}
	wg.Wait()

	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	require.NotEmpty(t, f.store.movements)
	prev := decimal.NewFromInt(10)
	for _, m := range f.store.movements {
		assert.True(t, m.PreviousQuantity.Equal(prev),
			"movimiento %d: previous_quantity %s no encadena con el final anterior %s",
			m.ID, m.PreviousQuantity, prev)
		expected := m.PreviousQuantity.Sub(m.Quantity)
		if entity.MovementIncreases(m.TypeID) {
			expected = m.PreviousQuantity.Add(m.Quantity)
		}
		assert.True(t, m.FinalQuantity.Equal(expected))
		prev = m.FinalQuantity
	}
	assert.True(t, f.store.products[1].Stock.Equal(prev),
		"el stock final debe ser el final_quantity del último movimiento")
}
