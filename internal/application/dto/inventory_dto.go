package dto

// DetailData resumen del producto para la vista de detalle del dashboard.
type DetailData struct {
	ID          string  `json:"id"`
	StockActual float64 `json:"stock_actual"`
	LastUpdated string  `json:"last_updated"`
}

// MovementData la fila de movimiento incluida en el broadcast.
type MovementData struct {
	ID          string  `json:"id"`
	Date        string  `json:"date"`
	Time        string  `json:"time"`
	Type        string  `json:"type"`
	StockBefore float64 `json:"stock_before"`
	Quantity    float64 `json:"quantity"`
	StockAfter  float64 `json:"stock_after"`
	Comment     string  `json:"comment,omitempty"`
}

// InventoryUpdate payload normalizado emitido tras cada mutación de stock.
type InventoryUpdate struct {
	CardData     *ProductCard `json:"cardData"`
	DetailData   DetailData   `json:"detailData"`
	MovementData MovementData `json:"movementData"`
}

// TagDetected notificación de tag escaneado sin entrada asignada.
type TagDetected struct {
	RfidTag string `json:"rfid_tag"`
}

// HomeItem elemento de una lista del resumen de inicio. Los campos de
// mínimo/máximo/caducidad solo aparecen en las listas que los usan.
type HomeItem struct {
	Name           string   `json:"name"`
	StockActual    float64  `json:"stock_actual"`
	StockMinimum   *float64 `json:"stock_minimum,omitempty"`
	StockMaximum   *float64 `json:"stock_maximum,omitempty"`
	ExpirationDate string   `json:"expiration_date,omitempty"`
	ImageURL       string   `json:"image_url,omitempty"`
	SensorType     string   `json:"sensor_type"`
}

// HomeSummaryResponse grupos del resumen de inicio (5 elementos cada uno).
type HomeSummaryResponse struct {
	Message     string     `json:"message"`
	Expiring    []HomeItem `json:"expiring"`
	OutOfStock  []HomeItem `json:"out_of_stock"`
	LowStock    []HomeItem `json:"low_stock"`
	NearMinimum []HomeItem `json:"near_minimum"`
	Overstock   []HomeItem `json:"overstock"`
	All         []HomeItem `json:"all"`
}
