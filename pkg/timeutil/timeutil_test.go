package timeutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatMexicoCity_ConvierteDesdeUTC(t *testing.T) {
	// 02:30 UTC del 15 de marzo son las 20:30 del día anterior en CDMX (GMT-6).
	instante := time.Date(2026, time.March, 15, 2, 30, 0, 0, time.UTC)

	fecha, hora := FormatMexicoCity(instante)

	assert.Equal(t, "2026-03-14", fecha)
	assert.Equal(t, "20:30", hora)
}

func TestNowMexicoCity_UsaLaZonaLocal(t *testing.T) {
	now := NowMexicoCity()
	_, offset := now.Zone()
	assert.Equal(t, -6*60*60, offset)
}
