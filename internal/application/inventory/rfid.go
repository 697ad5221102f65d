package inventory

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/antonyto02/nexsoft-inventory/internal/application/dto"
	"github.com/antonyto02/nexsoft-inventory/internal/domain"
	"github.com/antonyto02/nexsoft-inventory/internal/domain/entity"
	"github.com/antonyto02/nexsoft-inventory/internal/domain/repository"
	"github.com/antonyto02/nexsoft-inventory/pkg/logger"
)

// errEntryConsumed: la entrada desapareció entre la mirada inicial y el lock.
var errEntryConsumed = errors.New("entrada consumida concurrentemente")

// RfidUseCase reconcilia los escaneos de tags y el registro masivo de
// entradas. Un escaneo con entrada abierta consume esa unidad (baja de 1);
// un escaneo sin entrada no es un error: se notifica como "tag detectado sin
// asignar" para que el operador lo vincule vía RegisterEntries.
type RfidUseCase struct {
	txRunner    TxRunner
	productRepo repository.ProductRepository
	entryRepo   repository.StockEntryRepository
	recorder    *RecordMovementUseCase
	entryMode   *EntryMode
	broadcaster Broadcaster
	log         *logger.Logger
}

// NewRfidUseCase construye el reconciliador RFID.
func NewRfidUseCase(
	txRunner TxRunner,
	productRepo repository.ProductRepository,
	entryRepo repository.StockEntryRepository,
	recorder *RecordMovementUseCase,
	entryMode *EntryMode,
	broadcaster Broadcaster,
	log *logger.Logger,
) *RfidUseCase {
	return &RfidUseCase{
		txRunner:    txRunner,
		productRepo: productRepo,
		entryRepo:   entryRepo,
		recorder:    recorder,
		entryMode:   entryMode,
		broadcaster: broadcaster,
		log:         log,
	}
}

// HandleTag procesa un escaneo. El tag se normaliza (trim); si existe una
// entrada abierta se consume de forma atómica (baja + soft-delete de la
// entrada en la misma transacción) y se emite el broadcast; si no existe se
// emite la notificación de tag sin asignar.
func (uc *RfidUseCase) HandleTag(ctx context.Context, tag string) error {
	tag = strings.TrimSpace(tag)
	if tag == "" {
		return domain.ErrInvalidInput
	}

	entry, err := uc.entryRepo.GetOpenByTag(ctx, tag)
	if err != nil {
		return err
	}
	if entry == nil {
		uc.broadcaster.EmitTagDetected(tag)
		return nil
	}

	var (
		movement *entity.Movement
		product  *entity.Product
	)
	err = uc.txRunner.Run(ctx, func(
		movRepo repository.MovementRepository,
		entryRepo repository.StockEntryRepository,
		productRepo repository.ProductRepository,
	) error {
		e, err := entryRepo.GetOpenByTagForUpdate(ctx, tag)
		if err != nil {
			return err
		}
		if e == nil {
			return errEntryConsumed
		}
		p, err := productRepo.GetForUpdate(ctx, e.ProductID)
		if err != nil {
			return err
		}
		if p == nil {
			return domain.ErrProductNotFound
		}
		m, err := uc.recorder.RecordInTx(ctx, movRepo, productRepo, p, entity.MovementTypeExit, decimal.NewFromInt(1), "Salida")
		if err != nil {
			return err
		}
		if err := entryRepo.SoftDelete(ctx, e.ID); err != nil {
			return err
		}
		movement = m
		product = p
		return nil
	})
	if errors.Is(err, errEntryConsumed) {
		// Otro lector ganó la carrera: para este escaneo el tag ya no tiene entrada.
		uc.broadcaster.EmitTagDetected(tag)
		return nil
	}
	if err != nil {
		return err
	}
	uc.recorder.Broadcast(product, movement)
	return nil
}

// RegisterEntries crea las entradas abiertas de un lote de tags y registra un
// único movimiento de alta por el total, todo en una transacción. Requiere
// producto RFID y modo entrada activo. Los elementos malformados se omiten y
// los tags ya abiertos se cuentan como duplicados.
func (uc *RfidUseCase) RegisterEntries(
	ctx context.Context,
	companyID string,
	productID int64,
	items []dto.RfidEntryItem,
) (*dto.RfidEntryResponse, error) {
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
	if product.SensorType != entity.SensorRFID {
		return nil, domain.ErrNotRfidProduct
	}
	if !uc.entryMode.Enabled() {
		return nil, domain.ErrEntryModeDisabled
	}
	if items == nil {
		return nil, domain.ErrInvalidInput
	}

	var (
		registered int
		duplicates int
		movement   *entity.Movement
		locked     *entity.Product
	)
	err = uc.txRunner.Run(ctx, func(
		movRepo repository.MovementRepository,
		entryRepo repository.StockEntryRepository,
		productRepo repository.ProductRepository,
	) error {
		registered, duplicates = 0, 0
		movement, locked = nil, nil

		p, err := productRepo.GetForUpdate(ctx, productID)
		if err != nil {
			return err
		}
		if p == nil {
			return domain.ErrProductNotFound
		}

		for _, item := range items {
			tag := strings.TrimSpace(item.RfidTag)
			if tag == "" {
				continue
			}
			existing, err := entryRepo.GetOpenByTag(ctx, tag)
			if err != nil {
				return err
			}
			if existing != nil {
				duplicates++
				continue
			}
			entry := &entity.StockEntry{
				ProductID:      productID,
				RfidTag:        tag,
				ExpirationDate: parseExpiration(item.ExpirationDate),
			}
			if _, err := entryRepo.Create(ctx, entry); err != nil {
				if errors.Is(err, domain.ErrDuplicate) {
					duplicates++
					continue
				}
				return err
			}
			registered++
		}

		if registered > 0 {
			m, err := uc.recorder.RecordInTx(ctx, movRepo, productRepo, p, entity.MovementTypeEntry, decimal.NewFromInt(int64(registered)), "Registro RFID")
			if err != nil {
				return err
			}
			movement = m
			locked = p
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if movement != nil {
		uc.recorder.Broadcast(locked, movement)
	}
	return &dto.RfidEntryResponse{
		Message:    "Entradas RFID registradas correctamente",
		Registered: registered,
		Duplicates: duplicates,
	}, nil
}

// parseExpiration parsea YYYY-MM-DD; una fecha ausente o malformada se ignora.
func parseExpiration(s string) *time.Time {
	if s == "" {
		return nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil
	}
	return &t
}
