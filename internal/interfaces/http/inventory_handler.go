package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/antonyto02/nexsoft-inventory/internal/application/dto"
	"github.com/antonyto02/nexsoft-inventory/internal/application/inventory"
	"github.com/antonyto02/nexsoft-inventory/internal/application/usecase"
)

// InventoryHandler maneja movimientos, resumen de inicio, registro RFID,
// modo entrada y comandos de voz (protegido).
type InventoryHandler struct {
	movements *inventory.ManualMovementUseCase
	summary   *inventory.HomeSummaryUseCase
	rfid      *inventory.RfidUseCase
	entryMode *inventory.EntryMode
	voice     *usecase.VoiceUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(
	movements *inventory.ManualMovementUseCase,
	summary *inventory.HomeSummaryUseCase,
	rfid *inventory.RfidUseCase,
	entryMode *inventory.EntryMode,
	voice *usecase.VoiceUseCase,
) *InventoryHandler {
	return &InventoryHandler{
		movements: movements,
		summary:   summary,
		rfid:      rfid,
		entryMode: entryMode,
		voice:     voice,
	}
}

// CreateMovement godoc
// @Summary      Registrar movimiento manual
// @Tags         movements
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int                        true  "ID del producto"
// @Param        body  body  dto.CreateMovementRequest  true  "type (1 alta, 2 baja, 3/4 ajuste), quantity, note"
// @Success      201   {object}  dto.CreateMovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /inventory/products/{id}/movements [post]
func (h *InventoryHandler) CreateMovement(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	id, err := parseID(c)
	if err != nil {
		return respondError(c, err)
	}
	var in dto.CreateMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.movements.Create(c.Context(), companyID, id, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListMovements godoc
// @Summary      Historial de movimientos de un producto
// @Tags         movements
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID del producto"
// @Success      200  {object}  dto.MovementListResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /inventory/products/{id}/movements [get]
func (h *InventoryHandler) ListMovements(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	id, err := parseID(c)
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.movements.History(c.Context(), companyID, id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// HomeSummary godoc
// @Summary      Resumen de inicio del dashboard
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.HomeSummaryResponse
// @Router       /inventory/home [get]
func (h *InventoryHandler) HomeSummary(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	out, err := h.summary.GetHomeSummary(c.Context(), companyID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// RegisterRfidEntries godoc
// @Summary      Registrar lote de entradas RFID
// @Description  Requiere el modo entrada activo. Crea una entrada por tag y un
//
//	único movimiento de alta por el total registrado.
//
// @Tags         rfid
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int                   true  "ID del producto (sensor RFID)"
// @Param        body  body  dto.RfidEntryRequest  true  "Tags con caducidad opcional"
// @Success      201   {object}  dto.RfidEntryResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /inventory/products/{id}/rfid-entries [post]
func (h *InventoryHandler) RegisterRfidEntries(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	id, err := parseID(c)
	if err != nil {
		return respondError(c, err)
	}
	var in dto.RfidEntryRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.rfid.RegisterEntries(c.Context(), companyID, id, in.Entries)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetEntryMode godoc
// @Summary      Estado del modo entrada RFID
// @Tags         rfid
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.EntryModeResponse
// @Router       /inventory/rfid-mode [get]
func (h *InventoryHandler) GetEntryMode(c *fiber.Ctx) error {
	return c.JSON(dto.EntryModeResponse{EntryMode: h.entryMode.Enabled()})
}

// SetEntryMode godoc
// @Summary      Activar o desactivar el modo entrada RFID
// @Tags         rfid
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.EntryModeRequest  true  "entry_mode"
// @Success      200   {object}  dto.EntryModeResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /inventory/rfid-mode [patch]
func (h *InventoryHandler) SetEntryMode(c *fiber.Ctx) error {
	var in dto.EntryModeRequest
	if err := c.BodyParser(&in); err != nil || in.EntryMode == nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "entry_mode es requerido"})
	}
	h.entryMode.Set(*in.EntryMode)
	return c.JSON(dto.EntryModeResponse{EntryMode: h.entryMode.Enabled()})
}

// VoiceCommand godoc
// @Summary      Ejecutar comando de voz
// @Description  Interpreta el comando con el clasificador de intenciones y lo
//
//	ejecuta con la misma validación que las llamadas directas.
//
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.VoiceCommandRequest  true  "command"
// @Success      200   {object}  dto.VoiceResult
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /inventory/voice-command [post]
func (h *InventoryHandler) VoiceCommand(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	var in dto.VoiceCommandRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.voice.Handle(c.Context(), companyID, in.Command)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
