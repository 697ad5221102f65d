package entity

import "time"

// StockEntry representa una unidad física discreta rastreada por RFID,
// pendiente de consumo. El tag es único entre entradas no eliminadas.
// Se crea al registrar la entrada y se soft-elimina al escanear la salida.
type StockEntry struct {
	ID             int64
	ProductID      int64
	RfidTag        string
	ExpirationDate *time.Time
	CreatedAt      time.Time
	DeletedAt      *time.Time
}
