package inventory

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubTagHandler struct {
	tags []string
	err  error
}

func (h *stubTagHandler) HandleTag(_ context.Context, tag string) error {
	h.tags = append(h.tags, tag)
	return h.err
}

type stubCountHandler struct {
	counts []decimal.Decimal
}

func (h *stubCountHandler) HandleCount(_ context.Context, count decimal.Decimal) error {
	h.counts = append(h.counts, count)
	return nil
}

type stubReadingHandler struct {
	channels []string
	values   []float64
}

func (h *stubReadingHandler) HandleReading(_ context.Context, channel string, value float64) error {
	h.channels = append(h.channels, channel)
	h.values = append(h.values, value)
	return nil
}

func newRouterFixture() (*SensorRouter, *stubTagHandler, *stubCountHandler, *stubReadingHandler) {
	rfid := &stubTagHandler{}
	camera := &stubCountHandler{}
	weight := &stubReadingHandler{}
	return NewSensorRouter(rfid, camera, weight, testLogger()), rfid, camera, weight
}

func TestRouter_DespachaPorCanal(t *testing.T) {
	router, rfid, camera, weight := newRouterFixture()
	ctx := context.Background()

	router.HandleMessage(ctx, "rfid", []byte(`{"rfid_tag":"TAG-A"}`))
	router.HandleMessage(ctx, "camera", []byte(`{"botellas":12}`))
	router.HandleMessage(ctx, "weight/bascula1", []byte(`{"value":98.5}`))

	assert.Equal(t, []string{"TAG-A"}, rfid.tags)
	require.Len(t, camera.counts, 1)
	assert.True(t, camera.counts[0].Equal(decimal.NewFromInt(12)))
	assert.Equal(t, []string{"bascula1"}, weight.channels)
	assert.Equal(t, []float64{98.5}, weight.values)
}

// Un payload malformado jamás debe tumbar el listener: se registra y se descarta.
func TestRouter_PayloadsMalformadosSeDescartanSinPanico(t *testing.T) {
	router, rfid, camera, weight := newRouterFixture()
	ctx := context.Background()

	router.HandleMessage(ctx, "rfid", []byte(`no es json`))
	router.HandleMessage(ctx, "rfid", []byte(`{"rfid_tag":"   "}`))
	router.HandleMessage(ctx, "camera", []byte(`{}`))
	router.HandleMessage(ctx, "camera", []byte(`{"botellas":-3}`))
	router.HandleMessage(ctx, "weight/bascula1", []byte(`{"value":"alto"}`))
	router.HandleMessage(ctx, "weight/bascula1", []byte(``))

	assert.Empty(t, rfid.tags)
	assert.Empty(t, camera.counts)
	assert.Empty(t, weight.channels)
}

func TestRouter_CanalDesconocidoSeIgnora(t *testing.T) {
	router, rfid, camera, weight := newRouterFixture()

	router.HandleMessage(context.Background(), "temperatura", []byte(`{"value":20}`))

	assert.Empty(t, rfid.tags)
	assert.Empty(t, camera.counts)
	assert.Empty(t, weight.channels)
}

// Un error del handler se registra pero no se propaga al transporte.
func TestRouter_ErrorDelHandlerNoEscapa(t *testing.T) {
	rfid := &stubTagHandler{err: errors.New("bd caída")}
	router := NewSensorRouter(rfid, &stubCountHandler{}, &stubReadingHandler{}, testLogger())

	assert.NotPanics(t, func() {
		router.HandleMessage(context.Background(), "rfid", []byte(`{"rfid_tag":"TAG-A"}`))
	})
	assert.Equal(t, []string{"TAG-A"}, rfid.tags)
}
