package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound            = errors.New("recurso no encontrado")
	ErrProductNotFound     = errors.New("producto no encontrado")
	ErrProductInactive     = errors.New("producto inactivo")
	ErrSensorManaged       = errors.New("este producto no permite movimientos manuales porque tiene sensor")
	ErrNotRfidProduct      = errors.New("este producto no utiliza RFID")
	ErrEntryModeDisabled   = errors.New("el modo entrada no está activo")
	ErrInvalidMovementType = errors.New("tipo de movimiento inválido")
	ErrInvalidQuantity     = errors.New("la cantidad debe ser mayor que cero")
	ErrDecimalsNotAllowed  = errors.New("este producto no permite cantidades decimales")
	ErrInsufficientStock   = errors.New("no hay suficiente stock disponible")
	ErrInvalidInput        = errors.New("entrada inválida")
	ErrDuplicate           = errors.New("recurso duplicado")
	ErrUnauthorized        = errors.New("no autorizado")
	ErrForbidden           = errors.New("acceso denegado")
	ErrUpstream            = errors.New("servicio externo no disponible")
)
