package entity

// Unit unidad de medida del producto. AllowsDecimals gobierna la política
// de cantidades fraccionarias en movimientos manuales.
type Unit struct {
	ID             int
	Name           string
	AllowsDecimals bool
}
