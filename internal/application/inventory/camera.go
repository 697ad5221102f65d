package inventory

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/antonyto02/nexsoft-inventory/internal/domain"
	"github.com/antonyto02/nexsoft-inventory/internal/domain/entity"
	"github.com/antonyto02/nexsoft-inventory/internal/domain/repository"
	"github.com/antonyto02/nexsoft-inventory/pkg/logger"
)

// CameraUseCase reconcilia el conteo de botellas de la cámara contra el stock
// del producto fijo vinculado al canal. Lecturas repetidas del mismo estado
// no producen movimientos; la comparación y el registro se hacen con la fila
// bloqueada para que el stock final sea exactamente el conteo reportado.
type CameraUseCase struct {
	txRunner  TxRunner
	recorder  *RecordMovementUseCase
	productID int64
	log       *logger.Logger
}

// NewCameraUseCase construye el reconciliador de cámara. productID 0 significa
// canal sin producto vinculado: las lecturas se descartan con aviso.
func NewCameraUseCase(txRunner TxRunner, recorder *RecordMovementUseCase, productID int64, log *logger.Logger) *CameraUseCase {
	return &CameraUseCase{
		txRunner:  txRunner,
		recorder:  recorder,
		productID: productID,
		log:       log,
	}
}

// HandleCount aplica el conteo reportado por la cámara.
func (uc *CameraUseCase) HandleCount(ctx context.Context, count decimal.Decimal) error {
	if uc.productID == 0 {
		uc.log.Warn().Msg("lectura de cámara descartada: canal sin producto vinculado")
		return nil
	}
	if count.IsNegative() {
		return domain.ErrInvalidInput
	}

	var (
		movement *entity.Movement
		product  *entity.Product
	)
	err := uc.txRunner.Run(ctx, func(
		movRepo repository.MovementRepository,
		_ repository.StockEntryRepository,
		productRepo repository.ProductRepository,
	) error {
		p, err := productRepo.GetForUpdate(ctx, uc.productID)
		if err != nil {
			return err
		}
		if p == nil {
			return domain.ErrProductNotFound
		}
		delta := count.Sub(p.Stock)
		if delta.IsZero() {
			return nil
		}
		typeID := entity.MovementTypeEntry
		if delta.IsNegative() {
			typeID = entity.MovementTypeExit
		}
		m, err := uc.recorder.RecordInTx(ctx, movRepo, productRepo, p, typeID, delta.Abs(), "Conteo de cámara")
		if err != nil {
			return err
		}
		movement = m
		product = p
		return nil
	})
	if err != nil {
		return err
	}
	if movement != nil {
		uc.recorder.Broadcast(product, movement)
	}
	return nil
}
