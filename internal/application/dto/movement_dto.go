package dto

// CreateMovementRequest movimiento manual: type 1..4, cantidad sin signo.
type CreateMovementRequest struct {
	Type     int     `json:"type"`
	Quantity float64 `json:"quantity"`
	Note     string  `json:"note"`
}

// CreateMovementResponse stock resultante tras aplicar el movimiento.
type CreateMovementResponse struct {
	Message  string  `json:"message"`
	NewStock float64 `json:"new_stock"`
}

// MovementItem una fila del historial. Quantity lleva signo negativo en
// bajas y ajustes negativos, como lo espera el dashboard.
type MovementItem struct {
	Date        string  `json:"date"`
	Time        string  `json:"time"`
	Type        string  `json:"type"`
	StockBefore float64 `json:"stock_before"`
	Quantity    float64 `json:"quantity"`
	StockAfter  float64 `json:"stock_after"`
	Comment     string  `json:"comment,omitempty"`
}

// MovementListResponse historial de movimientos de un producto, recientes primero.
type MovementListResponse struct {
	Message   string         `json:"message"`
	Movements []MovementItem `json:"movements"`
}
