package inventory

import (
	"context"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/antonyto02/nexsoft-inventory/internal/application/dto"
	"github.com/antonyto02/nexsoft-inventory/internal/domain"
	"github.com/antonyto02/nexsoft-inventory/internal/domain/entity"
	"github.com/antonyto02/nexsoft-inventory/internal/domain/repository"
	"github.com/antonyto02/nexsoft-inventory/pkg/logger"
	"github.com/antonyto02/nexsoft-inventory/pkg/timeutil"
)

// Recorder registra un movimiento de stock de forma atómica. Lo implementa
// RecordMovementUseCase; los reconciliadores dependen de esta interfaz.
type Recorder interface {
	Record(ctx context.Context, productID int64, typeID int, quantity decimal.Decimal, comment string) (*entity.Movement, error)
}

// RecordMovementUseCase es el registrador central de movimientos: toda
// mutación de stock (manual o de sensor) pasa por aquí. Bloquea la fila del
// producto (SELECT FOR UPDATE), actualiza el stock desnormalizado y anexa el
// movimiento con cantidades antes/después en una única transacción, y después
// del commit emite el broadcast (best-effort, nunca revierte la mutación).
type RecordMovementUseCase struct {
	txRunner    TxRunner
	entryRepo   repository.StockEntryRepository
	broadcaster Broadcaster
	log         *logger.Logger
}

// NewRecordMovementUseCase construye el caso de uso. entryRepo debe estar
// atado al pool (se usa fuera de transacción, solo para el payload del broadcast).
func NewRecordMovementUseCase(
	txRunner TxRunner,
	entryRepo repository.StockEntryRepository,
	broadcaster Broadcaster,
	log *logger.Logger,
) *RecordMovementUseCase {
	return &RecordMovementUseCase{
		txRunner:    txRunner,
		entryRepo:   entryRepo,
		broadcaster: broadcaster,
		log:         log,
	}
}

// Record abre una transacción, bloquea la fila del producto y registra el
// movimiento. El producto debe existir y estar activo; la cantidad es siempre
// sin signo y la dirección la determina typeID (1 y 3 suman, 2 y 4 restan).
func (uc *RecordMovementUseCase) Record(
	ctx context.Context,
	productID int64,
	typeID int,
	quantity decimal.Decimal,
	comment string,
) (*entity.Movement, error) {
	var (
		movement *entity.Movement
		product  *entity.Product
	)
	err := uc.txRunner.Run(ctx, func(
		movRepo repository.MovementRepository,
		_ repository.StockEntryRepository,
		productRepo repository.ProductRepository,
	) error {
		p, err := productRepo.GetForUpdate(ctx, productID)
		if err != nil {
			return err
		}
		if p == nil {
			return domain.ErrProductNotFound
		}
		m, err := uc.RecordInTx(ctx, movRepo, productRepo, p, typeID, quantity, comment)
		if err != nil {
			return err
		}
		movement = m
		product = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.Broadcast(product, movement)
	return movement, nil
}

// RecordInTx aplica el movimiento usando repositorios de una transacción que
// posee el caller, con el producto ya bloqueado. Actualiza product.Stock en
// memoria para que el caller pueda construir su respuesta. No emite broadcast:
// eso corresponde al caller tras su commit (ver Broadcast).
func (uc *RecordMovementUseCase) RecordInTx(
	ctx context.Context,
	movRepo repository.MovementRepository,
	productRepo repository.ProductRepository,
	product *entity.Product,
	typeID int,
	quantity decimal.Decimal,
	comment string,
) (*entity.Movement, error) {
	if !entity.ValidMovementType(typeID) {
		return nil, domain.ErrInvalidMovementType
	}
	if !quantity.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidQuantity
	}
	if !product.IsActive {
		return nil, domain.ErrProductInactive
	}

	previous := product.Stock
	var final decimal.Decimal
	if entity.MovementIncreases(typeID) {
		final = previous.Add(quantity)
	} else {
		final = previous.Sub(quantity)
		if final.IsNegative() {
			return nil, domain.ErrInsufficientStock
		}
	}

	movement := &entity.Movement{
		ProductID:        product.ID,
		TypeID:           typeID,
		Quantity:         quantity,
		PreviousQuantity: previous,
		FinalQuantity:    final,
		Comment:          comment,
		MovementDate:     timeutil.NowMexicoCity(),
	}
	id, err := movRepo.Create(ctx, movement)
	if err != nil {
		return nil, err
	}
	movement.ID = id

	if err := productRepo.UpdateStock(ctx, product.ID, final); err != nil {
		return nil, err
	}
	product.Stock = final
	product.UpdatedAt = movement.MovementDate
	return movement, nil
}

// Broadcast construye el payload normalizado y lo despacha a los suscriptores
// en una goroutine propia: un fallo aquí se registra y se descarta, jamás
// afecta a la mutación ya confirmada.
func (uc *RecordMovementUseCase) Broadcast(product *entity.Product, movement *entity.Movement) {
	if product == nil || movement == nil {
		return
	}
	p := *product
	m := *movement
	go func() {
		defer func() {
			if r := recover(); r != nil {
				uc.log.Error().Interface("panic", r).Msg("broadcast de inventario abortado")
			}
		}()
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()

		card, err := BuildProductCard(ctx, &p, uc.entryRepo)
		if err != nil {
			// El broadcast sale igualmente, sin datos de caducidad.
			uc.log.Warn().Err(err).Int64("product_id", p.ID).Msg("tarjeta de producto incompleta en broadcast")
			card = buildBaseCard(&p)
		}

		date, clock := timeutil.FormatMexicoCity(m.MovementDate)
		update := &dto.InventoryUpdate{
			CardData: card,
			DetailData: dto.DetailData{
				ID:          strconv.FormatInt(p.ID, 10),
				StockActual: p.Stock.InexactFloat64(),
				LastUpdated: m.MovementDate.Format(time.RFC3339),
			},
			MovementData: dto.MovementData{
				ID:          strconv.FormatInt(m.ID, 10),
				Date:        date,
				Time:        clock,
				Type:        entity.MovementTypeName(m.TypeID),
				StockBefore: m.PreviousQuantity.InexactFloat64(),
				Quantity:    SignedQuantity(&m),
				StockAfter:  m.FinalQuantity.InexactFloat64(),
				Comment:     m.Comment,
			},
		}
		uc.broadcaster.EmitInventoryUpdate(update)
	}()
}

// SignedQuantity devuelve la cantidad con signo según el tipo: negativa en
// bajas y ajustes negativos. Es la convención del historial y los dashboards.
func SignedQuantity(m *entity.Movement) float64 {
	q := m.Quantity.InexactFloat64()
	if !entity.MovementIncreases(m.TypeID) {
		return -q
	}
	return q
}
