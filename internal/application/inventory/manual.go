package inventory

import (
	"context"
	"math"

	"github.com/shopspring/decimal"

	"github.com/antonyto02/nexsoft-inventory/internal/application/dto"
	"github.com/antonyto02/nexsoft-inventory/internal/domain"
	"github.com/antonyto02/nexsoft-inventory/internal/domain/entity"
	"github.com/antonyto02/nexsoft-inventory/internal/domain/repository"
	"github.com/antonyto02/nexsoft-inventory/pkg/timeutil"
)

// ManualMovementUseCase valida y aplica movimientos iniciados por un operador
// (alta, baja, ajuste) y expone el historial de movimientos de un producto.
// Solo productos con sensor_type manual admiten movimientos manuales; los
// gobernados por sensor se rechazan aunque la cantidad y el tipo sean válidos.
type ManualMovementUseCase struct {
	productRepo  repository.ProductRepository
	movementRepo repository.MovementRepository
	recorder     Recorder
}

// NewManualMovementUseCase construye el caso de uso con repositorios atados al pool.
func NewManualMovementUseCase(
	productRepo repository.ProductRepository,
	movementRepo repository.MovementRepository,
	recorder Recorder,
) *ManualMovementUseCase {
	return &ManualMovementUseCase{
		productRepo:  productRepo,
		movementRepo: movementRepo,
		recorder:     recorder,
	}
}

// Create aplica un movimiento manual y devuelve el stock resultante.
// El orden de validación es fijo: existe -> activo -> sensor manual ->
// cantidad positiva -> política de decimales -> tipo conocido.
func (uc *ManualMovementUseCase) Create(
	ctx context.Context,
	companyID string,
	productID int64,
	in dto.CreateMovementRequest,
) (*dto.CreateMovementResponse, error) {
	product, err := uc.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrProductNotFound
	}
	if product.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	if !product.IsActive {
		return nil, domain.ErrProductInactive
	}
	if product.SensorType != entity.SensorManual {
		return nil, domain.ErrSensorManaged
	}
	if in.Quantity <= 0 || math.IsNaN(in.Quantity) || math.IsInf(in.Quantity, 0) {
		return nil, domain.ErrInvalidQuantity
	}
	if !product.Unit.AllowsDecimals && in.Quantity != math.Trunc(in.Quantity) {
		return nil, domain.ErrDecimalsNotAllowed
	}
	if !entity.ValidMovementType(in.Type) {
		return nil, domain.ErrInvalidMovementType
	}

	movement, err := uc.recorder.Record(ctx, productID, in.Type, decimal.NewFromFloat(in.Quantity), in.Note)
	if err != nil {
		return nil, err
	}
	return &dto.CreateMovementResponse{
		Message:  "Movimiento registrado correctamente",
		NewStock: movement.FinalQuantity.InexactFloat64(),
	}, nil
}

// History devuelve los movimientos del producto, recientes primero, con la
// fecha y hora locales separadas y la cantidad con signo.
func (uc *ManualMovementUseCase) History(
	ctx context.Context,
	companyID string,
	productID int64,
) (*dto.MovementListResponse, error) {
	product, err := uc.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrProductNotFound
	}
	if product.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}

	movements, err := uc.movementRepo.ListByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}

	items := make([]dto.MovementItem, 0, len(movements))
	for _, m := range movements {
		date, clock := timeutil.FormatMexicoCity(m.MovementDate)
		items = append(items, dto.MovementItem{
			Date:        date,
			Time:        clock,
			Type:        entity.MovementTypeName(m.TypeID),
			StockBefore: m.PreviousQuantity.InexactFloat64(),
			Quantity:    SignedQuantity(m),
			StockAfter:  m.FinalQuantity.InexactFloat64(),
			Comment:     m.Comment,
		})
	}
	return &dto.MovementListResponse{
		Message:   "Movimientos obtenidos correctamente",
		Movements: items,
	}, nil
}
