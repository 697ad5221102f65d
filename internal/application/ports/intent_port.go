package ports

import (
	"context"

	"github.com/antonyto02/nexsoft-inventory/internal/application/dto"
)

// IntentClassifier puerto de salida hacia el clasificador de lenguaje natural.
// Cualquier adaptador (Anthropic, Gemini, mock) debe implementar esta interfaz.
// Un comando no reconocido se devuelve como intent con Accion vacía, no como
// error; los errores se reservan para fallos del servicio externo.
// El contexto debe llevar un timeout para evitar bloqueos en llamadas externas.
type IntentClassifier interface {
	Interpret(ctx context.Context, command string) (*dto.VoiceIntent, error)
}
