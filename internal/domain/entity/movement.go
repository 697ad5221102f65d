package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento: catálogo fijo e inmutable.
const (
	MovementTypeEntry      = 1 // alta
	MovementTypeExit       = 2 // baja
	MovementTypeAdjustUp   = 3 // ajuste positivo
	MovementTypeAdjustDown = 4 // ajuste negativo
)

// MovementTypeName devuelve el nombre visible del tipo, o "" si no existe.
func MovementTypeName(typeID int) string {
	switch typeID {
	case MovementTypeEntry:
		return "Alta"
	case MovementTypeExit:
		return "Baja"
	case MovementTypeAdjustUp:
		return "Ajuste positivo"
	case MovementTypeAdjustDown:
		return "Ajuste negativo"
	}
	return ""
}

// ValidMovementType reporta si typeID pertenece al catálogo.
func ValidMovementType(typeID int) bool {
	return typeID >= MovementTypeEntry && typeID <= MovementTypeAdjustDown
}

// MovementIncreases reporta si el tipo suma stock (alta o ajuste positivo).
func MovementIncreases(typeID int) bool {
	return typeID == MovementTypeEntry || typeID == MovementTypeAdjustUp
}

// Movement es el registro de auditoría de una mutación de stock. La terna
// (previous, quantity, final) es inmutable una vez escrita; el flujo normal
// nunca elimina movimientos aunque exista la columna de soft-delete.
type Movement struct {
	ID               int64
	ProductID        int64
	TypeID           int
	Quantity         decimal.Decimal // siempre sin signo; la dirección la da TypeID
	PreviousQuantity decimal.Decimal
	FinalQuantity    decimal.Decimal
	Comment          string
	MovementDate     time.Time
	DeletedAt        *time.Time
}
