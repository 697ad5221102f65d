package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// SensorType indica qué flujo de reconciliación puede mutar el stock del producto.
type SensorType string

const (
	SensorManual SensorType = "manual"
	SensorRFID   SensorType = "rfid"
	SensorWeight SensorType = "weight"
	SensorCamera SensorType = "camera"
)

// Valid reporta si el tipo de sensor es uno de los cuatro conocidos.
func (s SensorType) Valid() bool {
	switch s {
	case SensorManual, SensorRFID, SensorWeight, SensorCamera:
		return true
	}
	return false
}

// Product representa un producto del inventario. Stock es el estado
// desnormalizado: siempre es la suma neta de sus movimientos desde cero.
// Exactamente un SensorType gobierna qué reconciliador puede mutarlo.
type Product struct {
	ID          int64
	CompanyID   string
	Name        string
	Brand       string
	Description string
	Stock       decimal.Decimal
	MinStock    decimal.Decimal
	MaxStock    *decimal.Decimal // nullable: sin tope configurado
	SensorType  SensorType
	IsActive    bool
	ImageURL    string
	Unit        Unit
	Category    Category
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   *time.Time
}
