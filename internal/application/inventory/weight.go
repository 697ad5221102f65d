package inventory

import (
	"context"
	"math"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/antonyto02/nexsoft-inventory/internal/domain"
	"github.com/antonyto02/nexsoft-inventory/internal/domain/entity"
	"github.com/antonyto02/nexsoft-inventory/pkg/logger"
)

const (
	// jumpThreshold salto mínimo (unidades de báscula) que dispara la espera
	// de estabilización.
	jumpThreshold = 10.0
	// stableReadings lecturas consecutivas dentro del umbral (contando la del
	// salto) necesarias para aceptar un nuevo peso asentado.
	stableReadings = 5
)

// weightChannelState estado en memoria de un canal de báscula. Vive solo
// durante el proceso: tras un reinicio la báscula vuelve a reportar el peso
// actual y el canal se reconstruye.
type weightChannelState struct {
	lastWeight   *float64
	stableWeight float64
	run          int  // longitud de la racha estable durante el asentamiento
	settling     bool // true mientras se persigue un nuevo punto de asentamiento
}

// WeightStabilizer convierte el flujo crudo y ruidoso de lecturas de peso en
// transiciones estables discretas. Las lecturas oscilan mientras se coloca o
// retira producto; solo tras stableReadings lecturas consecutivas próximas
// entre sí se confía en el nuevo peso y se registra la diferencia como
// movimiento sobre el producto vinculado al canal.
//
// Cada canal es de un solo hilo respecto a su propio flujo de mensajes (el
// transporte entrega en orden por canal); el mutex solo protege la creación
// de canales en el mapa.
type WeightStabilizer struct {
	mu       sync.Mutex
	channels map[string]*weightChannelState
	bindings map[string]int64 // canal -> producto
	recorder Recorder
	log      *logger.Logger
}

// NewWeightStabilizer construye el estabilizador con los vínculos
// canal->producto de configuración.
func NewWeightStabilizer(bindings map[string]int64, recorder Recorder, log *logger.Logger) *WeightStabilizer {
	if bindings == nil {
		bindings = make(map[string]int64)
	}
	return &WeightStabilizer{
		channels: make(map[string]*weightChannelState),
		bindings: bindings,
		recorder: recorder,
		log:      log,
	}
}

// HandleReading procesa una lectura cruda del canal indicado.
func (s *WeightStabilizer) HandleReading(ctx context.Context, channel string, value float64) error {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return domain.ErrInvalidInput
	}
	productID, ok := s.bindings[channel]
	if !ok {
		s.log.Warn().Str("channel", channel).Msg("lectura de peso descartada: canal sin producto vinculado")
		return nil
	}

	st := s.state(channel)

	// Primera lectura del canal: fija la línea base sin emitir nada.
	if st.lastWeight == nil {
		st.lastWeight = &value
		st.stableWeight = value
		return nil
	}

	diff := math.Abs(value - *st.lastWeight)
	switch {
	case !st.settling:
		if diff > jumpThreshold {
			st.settling = true
			st.run = 1
		}
	case diff > jumpThreshold:
		// Sigue moviéndose: la racha estable empieza de nuevo con esta lectura.
		st.run = 1
	default:
		st.run++
		if st.run >= stableReadings {
			s.settle(ctx, channel, productID, st, value)
		}
	}

	st.lastWeight = &value
	return nil
}

// settle acepta value como nuevo peso asentado y registra la transición. Si el
// registro falla, la línea base no avanza y la racha queda a una lectura de
// reintentar: la siguiente lectura estable reconcilia el delta pendiente.
func (s *WeightStabilizer) settle(ctx context.Context, channel string, productID int64, st *weightChannelState, value float64) {
	if value == st.stableWeight {
		st.settling = false
		st.run = 0
		return
	}

	delta := value - st.stableWeight
	typeID := entity.MovementTypeEntry
	if delta < 0 {
		typeID = entity.MovementTypeExit
	}
	qty := decimal.NewFromFloat(math.Abs(delta))

	if _, err := s.recorder.Record(ctx, productID, typeID, qty, "Lectura de báscula"); err != nil {
		s.log.Error().Err(err).
			Str("channel", channel).
			Int64("product_id", productID).
			Float64("previous", st.stableWeight).
			Float64("final", value).
			Msg("transición de peso no registrada")
		st.run = stableReadings - 1
		return
	}

	st.stableWeight = value
	st.settling = false
	st.run = 0
}

// state devuelve el estado del canal, creándolo si es la primera lectura.
func (s *WeightStabilizer) state(channel string) *weightChannelState {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.channels[channel]
	if !ok {
		st = &weightChannelState{}
		s.channels[channel] = st
	}
	return st
}
