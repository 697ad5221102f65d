package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/antonyto02/nexsoft-inventory/internal/application/dto"
	"github.com/antonyto02/nexsoft-inventory/internal/application/inventory"
	"github.com/antonyto02/nexsoft-inventory/internal/application/ports"
	"github.com/antonyto02/nexsoft-inventory/internal/domain"
	"github.com/antonyto02/nexsoft-inventory/pkg/logger"
)

const voiceTimeout = 10 * time.Second

// VoiceUseCase interpreta un comando dictado y lo ejecuta a través de los
// mismos casos de uso que las llamadas directas. El clasificador es una caja
// negra: su salida jamás se aplica sin la validación normal.
type VoiceUseCase struct {
	classifier ports.IntentClassifier
	movements  *inventory.ManualMovementUseCase
	products   *ProductUseCase
	log        *logger.Logger
}

// NewVoiceUseCase construye el caso de uso.
func NewVoiceUseCase(
	classifier ports.IntentClassifier,
	movements *inventory.ManualMovementUseCase,
	products *ProductUseCase,
	log *logger.Logger,
) *VoiceUseCase {
	return &VoiceUseCase{
		classifier: classifier,
		movements:  movements,
		products:   products,
		log:        log,
	}
}

// Handle procesa un comando de voz del tenant.
func (uc *VoiceUseCase) Handle(ctx context.Context, companyID, command string) (*dto.VoiceResult, error) {
	command = strings.TrimSpace(command)
	if command == "" {
		return nil, domain.ErrInvalidInput
	}

	ctx, cancel := context.WithTimeout(ctx, voiceTimeout)
	defer cancel()

	intent, err := uc.classifier.Interpret(ctx, command)
	if err != nil {
		uc.log.Warn().Err(err).Msg("clasificador de intenciones no disponible")
		return &dto.VoiceResult{Message: "Comando no reconocido"}, nil
	}

	switch intent.Accion {
	case "movimiento":
		if intent.Movement == nil || intent.ProductID <= 0 {
			return &dto.VoiceResult{Message: "Comando no reconocido"}, nil
		}
		res, err := uc.movements.Create(ctx, companyID, intent.ProductID, *intent.Movement)
		if err != nil {
			return nil, err
		}
		return &dto.VoiceResult{Message: res.Message}, nil
	case "editar":
		if intent.Patch == nil || intent.ProductID <= 0 {
			return &dto.VoiceResult{Message: "Comando no reconocido"}, nil
		}
		res, err := uc.products.Update(ctx, companyID, intent.ProductID, *intent.Patch)
		if err != nil {
			return nil, err
		}
		return &dto.VoiceResult{Message: res.Message}, nil
	default:
		return &dto.VoiceResult{Message: "Comando no reconocido"}, nil
	}
}
