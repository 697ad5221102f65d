package inventory

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/antonyto02/nexsoft-inventory/pkg/logger"
)

// Handlers de canal; los implementan RfidUseCase, CameraUseCase y WeightStabilizer.
type tagHandler interface {
	HandleTag(ctx context.Context, tag string) error
}

type countHandler interface {
	HandleCount(ctx context.Context, count decimal.Decimal) error
}

type readingHandler interface {
	HandleReading(ctx context.Context, channel string, value float64) error
}

// SensorRouter despacha los mensajes entrantes de sensores al reconciliador
// del canal lógico: rfid, camera o weight/<canal>. Es la única pieza que
// conoce los formatos de payload de cada canal; el transporte (MQTT u otro)
// solo entrega (canal, bytes).
//
// Ningún error de procesamiento escapa al listener: cada mensaje se procesa
// aislado bajo una guarda de recover, los malformados se registran y se
// descartan (una lectura posterior corrige el estado en camera/weight; los
// fallos RFID no se autocorrigen y se registran con nivel error).
type SensorRouter struct {
	rfid   tagHandler
	camera countHandler
	weight readingHandler
	log    *logger.Logger
}

// NewSensorRouter construye el router.
func NewSensorRouter(rfid tagHandler, camera countHandler, weight readingHandler, log *logger.Logger) *SensorRouter {
	return &SensorRouter{rfid: rfid, camera: camera, weight: weight, log: log}
}

type rfidPayload struct {
	RfidTag string `json:"rfid_tag"`
}

type cameraPayload struct {
	Botellas *float64 `json:"botellas"`
}

type weightPayload struct {
	Value *float64 `json:"value"`
}

// HandleMessage procesa un mensaje de sensor. channel es el sufijo del topic
// tras el prefijo común, p. ej. "rfid", "camera" o "weight/bascula1".
func (r *SensorRouter) HandleMessage(ctx context.Context, channel string, payload []byte) {
	defer func() {
		if rec := recover(); rec != nil {
			r.log.Error().Interface("panic", rec).Str("channel", channel).Msg("pánico procesando mensaje de sensor")
		}
	}()

	switch {
	case channel == "rfid":
		var p rfidPayload
		if err := json.Unmarshal(payload, &p); err != nil || strings.TrimSpace(p.RfidTag) == "" {
			r.log.Warn().Str("channel", channel).Msg("payload RFID malformado, mensaje descartado")
			return
		}
		if err := r.rfid.HandleTag(ctx, p.RfidTag); err != nil {
			// Las excepciones RFID no se autocorrigen con lecturas posteriores.
			r.log.Error().Err(err).Str("rfid_tag", p.RfidTag).Msg("fallo procesando escaneo RFID")
		}

	case channel == "camera":
		var p cameraPayload
		if err := json.Unmarshal(payload, &p); err != nil || p.Botellas == nil || *p.Botellas < 0 {
			r.log.Warn().Str("channel", channel).Msg("payload de cámara malformado, mensaje descartado")
			return
		}
		if err := r.camera.HandleCount(ctx, decimal.NewFromFloat(*p.Botellas)); err != nil {
			r.log.Warn().Err(err).Msg("fallo reconciliando conteo de cámara")
		}

	case strings.HasPrefix(channel, "weight/"):
		scale := strings.TrimPrefix(channel, "weight/")
		var p weightPayload
		if err := json.Unmarshal(payload, &p); err != nil || p.Value == nil {
			r.log.Warn().Str("channel", channel).Msg("payload de peso malformado, mensaje descartado")
			return
		}
		if err := r.weight.HandleReading(ctx, scale, *p.Value); err != nil {
			r.log.Warn().Err(err).Str("scale", scale).Msg("fallo procesando lectura de peso")
		}

	default:
		r.log.Debug().Str("channel", channel).Msg("canal de sensor desconocido, mensaje descartado")
	}
}
