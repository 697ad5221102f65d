package dto

// VoiceCommandRequest texto libre dictado por el operador.
type VoiceCommandRequest struct {
	Command string `json:"command"`
}

// VoiceIntent resultado estructurado del clasificador externo de intenciones.
// Accion vacía significa "no reconocido"; nunca se confía en el resto del
// contenido sin pasar por la misma validación que las llamadas directas.
type VoiceIntent struct {
	Accion    string                 `json:"accion"` // "editar" | "movimiento" | ""
	ProductID int64                  `json:"product_id"`
	Movement  *CreateMovementRequest `json:"movement,omitempty"`
	Patch     *UpdateProductRequest  `json:"patch,omitempty"`
}

// VoiceResult respuesta visible para el operador.
type VoiceResult struct {
	Message string `json:"message"`
}
