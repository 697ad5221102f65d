package dto

// CreateProductRequest alta de producto. El stock inicial siempre es 0:
// solo los movimientos mutan stock.
type CreateProductRequest struct {
	Name        string   `json:"name"`
	Brand       string   `json:"brand"`
	Description string   `json:"description"`
	Category    int      `json:"category"`
	UnitType    int      `json:"unit_type"`
	StockMin    float64  `json:"stock_min"`
	StockMax    *float64 `json:"stock_max"`
	SensorType  string   `json:"sensor_type"`
	ImageURL    string   `json:"image_url"`
}

// CreateProductResponse incluye el id asignado.
type CreateProductResponse struct {
	Message   string `json:"message"`
	ProductID string `json:"product_id"`
}

// UpdateProductRequest patch parcial: solo los campos presentes se aplican.
type UpdateProductRequest struct {
	Name         *string  `json:"name"`
	Brand        *string  `json:"brand"`
	Description  *string  `json:"description"`
	StockMinimum *float64 `json:"stock_minimum"`
	StockMaximum *float64 `json:"stock_maximum"`
	ImageURL     *string  `json:"image_url"`
	Category     *int     `json:"category"`
}

// ProductCard tarjeta de producto para listados y broadcasts.
// Status: expiring | out_of_stock | low_stock | near_minimum | overstock | all.
type ProductCard struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	ImageURL       string   `json:"image_url"`
	StockActual    float64  `json:"stock_actual"`
	StockMinimum   float64  `json:"stock_minimum"`
	StockMaximum   *float64 `json:"stock_maximum"`
	SensorType     string   `json:"sensor_type"`
	Category       string   `json:"category"`
	Status         string   `json:"status"`
	IsActive       bool     `json:"is_active"`
	ExpirationDate string   `json:"expiration_date,omitempty"`
}

// ProductDetail vista detallada de un producto.
type ProductDetail struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	Brand          string   `json:"brand"`
	Description    string   `json:"description"`
	StockActual    float64  `json:"stock_actual"`
	StockMinimum   float64  `json:"stock_minimum"`
	StockMaximum   *float64 `json:"stock_maximum"`
	Unit           string   `json:"unit"`
	AllowsDecimals bool     `json:"allows_decimals"`
	Category       string   `json:"category"`
	SensorType     string   `json:"sensor_type"`
	IsActive       bool     `json:"is_active"`
	ImageURL       string   `json:"image_url"`
	LastUpdated    string   `json:"last_updated"`
}

// ProductListResponse listado paginado de tarjetas.
type ProductListResponse struct {
	Message  string         `json:"message"`
	Products []*ProductCard `json:"products"`
	Page     int            `json:"page"`
	Limit    int            `json:"limit"`
}

// UploadURLResponse URL pre-firmada de subida a S3 y URL pública final.
type UploadURLResponse struct {
	UploadURL string `json:"upload_url"`
	FinalURL  string `json:"final_url"`
}
