package inventory

import "sync/atomic"

// EntryMode bandera global de proceso que habilita el registro masivo de
// entradas RFID. Se inicializa al arrancar, se muta solo por el endpoint de
// administración y la lee el reconciliador RFID. No afecta a movimientos
// manuales ni a otros canales de sensor.
type EntryMode struct {
	v atomic.Bool
}

// NewEntryMode crea la bandera con su estado inicial.
func NewEntryMode(initial bool) *EntryMode {
	m := &EntryMode{}
	m.v.Store(initial)
	return m
}

// Set cambia el estado del modo entrada.
func (m *EntryMode) Set(enabled bool) {
	m.v.Store(enabled)
}

// Enabled reporta si el modo entrada está activo.
func (m *EntryMode) Enabled() bool {
	return m.v.Load()
}
