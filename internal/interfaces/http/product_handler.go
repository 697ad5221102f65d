package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/antonyto02/nexsoft-inventory/internal/application/dto"
	"github.com/antonyto02/nexsoft-inventory/internal/application/ports"
	"github.com/antonyto02/nexsoft-inventory/internal/application/usecase"
	"github.com/antonyto02/nexsoft-inventory/internal/domain"
)

// ProductHandler maneja las peticiones HTTP para productos (protegido).
type ProductHandler struct {
	uc      *usecase.ProductUseCase
	storage ports.ObjectStorage
}

// NewProductHandler construye el handler. storage puede ser nil si no hay
// bucket configurado; en ese caso el endpoint de subida responde 501.
func NewProductHandler(uc *usecase.ProductUseCase, storage ports.ObjectStorage) *ProductHandler {
	return &ProductHandler{uc: uc, storage: storage}
}

// Create godoc
// @Summary      Crear producto
// @Tags         products
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateProductRequest  true  "Datos del producto"
// @Success      201   {object}  dto.CreateProductResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /inventory/products [post]
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "company_id requerido"})
	}
	var in dto.CreateProductRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Create(c.Context(), companyID, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Detalle de producto
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID del producto"
// @Success      200  {object}  dto.ProductDetail
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /inventory/products/{id} [get]
func (h *ProductHandler) GetByID(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	id, err := parseID(c)
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.GetByID(c.Context(), companyID, id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Editar producto (patch parcial)
// @Tags         products
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int                       true  "ID del producto"
// @Param        body  body  dto.UpdateProductRequest  true  "Campos a modificar"
// @Success      200   {object}  dto.MessageResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /inventory/products/{id} [patch]
func (h *ProductHandler) Update(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	id, err := parseID(c)
	if err != nil {
		return respondError(c, err)
	}
	var in dto.UpdateProductRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Update(c.Context(), companyID, id, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Remove godoc
// @Summary      Eliminar producto (baja lógica)
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID del producto"
// @Success      200  {object}  dto.MessageResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /inventory/products/{id} [delete]
func (h *ProductHandler) Remove(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	id, err := parseID(c)
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.Remove(c.Context(), companyID, id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listado general de productos
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        category  query  int  false  "Filtrar por categoría"
// @Param        page      query  int  false  "Página (default 1)"
// @Param        limit     query  int  false  "Elementos por página (default 10)"
// @Success      200  {object}  dto.ProductListResponse
// @Router       /inventory/products [get]
func (h *ProductHandler) List(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	var categoryID *int
	if raw := c.Query("category"); raw != "" {
		id, err := strconv.Atoi(raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "categoría inválida"})
		}
		categoryID = &id
	}
	out, err := h.uc.ListGeneral(c.Context(), companyID, categoryID, page)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ListByStatus godoc
// @Summary      Listado de productos por estado de tarjeta
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        status  path   string  true   "out_of_stock | low_stock | near_minimum | overstock | expiring | all"
// @Param        page    query  int     false  "Página (default 1)"
// @Param        limit   query  int     false  "Elementos por página (default 10)"
// @Success      200  {object}  dto.ProductListResponse
// @Router       /inventory/products/status/{status} [get]
func (h *ProductHandler) ListByStatus(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	out, err := h.uc.ListByStatus(c.Context(), companyID, c.Params("status"), page)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Search godoc
// @Summary      Buscar productos por nombre
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        name    query  string  true   "Texto a buscar (mínimo 2 caracteres)"
// @Param        limit   query  int     false  "Elementos (default 20)"
// @Param        offset  query  int     false  "Desplazamiento"
// @Success      200  {object}  dto.ProductListResponse
// @Router       /inventory/products/search [get]
func (h *ProductHandler) Search(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	limit := c.QueryInt("limit", 20)
	offset := c.QueryInt("offset", 0)
	out, err := h.uc.Search(c.Context(), companyID, c.Query("name"), limit, offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// UploadURL godoc
// @Summary      URL pre-firmada para subir imagen de producto
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        fileType  query  string  true  "Content-Type de la imagen (image/*)"
// @Param        ext       query  string  true  "Extensión del archivo"
// @Success      200  {object}  dto.UploadURLResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /inventory/upload-url [get]
func (h *ProductHandler) UploadURL(c *fiber.Ctx) error {
	if h.storage == nil {
		return c.Status(fiber.StatusNotImplemented).JSON(dto.ErrorResponse{Code: "STORAGE_DISABLED", Message: "almacenamiento de imágenes no configurado"})
	}
	out, err := h.storage.GenerateUploadURL(c.Context(), c.Query("fileType"), c.Query("ext"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// parseID lee el parámetro :id como entero positivo.
func parseID(c *fiber.Ctx) (int64, error) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.ErrInvalidInput
	}
	return id, nil
}
