package http

import (
	"bytes"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/labinventaris/internal/application/dto"
	"github.com/jhoicas/labinventaris/internal/application/inventory"
	"github.com/jhoicas/labinventaris/internal/application/transfer"
)

// ItemHandler maneja el inventario de ítems.
type ItemHandler struct {
	store    *inventory.Store
	transfer *transfer.Service
}

// NewItemHandler construye el handler.
func NewItemHandler(store *inventory.Store, transfer *transfer.Service) *ItemHandler {
	return &ItemHandler{store: store, transfer: transfer}
}

// List godoc
// @Summary      Listar ítems
// @Tags         items
// @Produce      json
// @Param        lab_id  query  string  false  "Filtrar por laboratorio"
// @Success      200     {array}  dto.ItemResponse
// @Router       /api/items [get]
func (h *ItemHandler) List(c *fiber.Ctx) error {
	if labID := c.Query("lab_id"); labID != "" {
		return c.JSON(dto.ItemsFromEntities(h.store.ItemsByLab(labID)))
	}
	return c.JSON(dto.ItemsFromEntities(h.store.Items()))
}

// GetByID godoc
// @Summary      Obtener ítem por ID
// @Tags         items
// @Produce      json
// @Param        id   path  string  true  "ID del ítem"
// @Success      200  {object}  dto.ItemResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/items/{id} [get]
func (h *ItemHandler) GetByID(c *fiber.Ctx) error {
	it, ok := h.store.Item(c.Params("id"))
	if !ok {
		return notFound(c, "ítem no encontrado")
	}
	return c.JSON(dto.ItemFromEntity(it))
}

// Create godoc
// @Summary      Crear ítem
// @Tags         items
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateItemRequest  true  "Datos del ítem"
// @Success      201   {object}  dto.MutationResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/items [post]
func (h *ItemHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateItemRequest
	if ok, err := bindJSON(c, &in); !ok {
		return err
	}
	item, err := in.ToNewItem(h.store.Session().Location)
	if err != nil {
		return invalidBody(c)
	}
	o, err := h.store.AddItem(c.UserContext(), item)
	if err != nil {
		return writeError(c, err)
	}
	return mutationResult(c, o, fiber.StatusCreated, "")
}

// Update godoc
// @Summary      Actualizar ítem (parcial)
// @Tags         items
// @Accept       json
// @Produce      json
// @Param        id    path  string                 true  "ID del ítem"
// @Param        body  body  dto.UpdateItemRequest  true  "Campos a cambiar"
// @Success      200   {object}  dto.MutationResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/items/{id} [patch]
func (h *ItemHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateItemRequest
	if ok, err := bindJSON(c, &in); !ok {
		return err
	}
	patch, err := in.ToPatch(h.store.Session().Location)
	if err != nil {
		return invalidBody(c)
	}
	o, err := h.store.UpdateItem(c.UserContext(), c.Params("id"), patch)
	if err != nil {
		return writeError(c, err)
	}
	return mutationResult(c, o, fiber.StatusOK, "ítem no encontrado")
}

// Delete godoc
// @Summary      Eliminar ítem
// @Tags         items
// @Produce      json
// @Param        id   path  string  true  "ID del ítem"
// @Success      200  {object}  dto.MutationResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/items/{id} [delete]
func (h *ItemHandler) Delete(c *fiber.Ctx) error {
	o, err := h.store.DeleteItem(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return mutationResult(c, o, fiber.StatusOK, "ítem no encontrado")
}

// ReportDamage godoc
// @Summary      Reportar daño (pasa a Maintenance)
// @Tags         items
// @Accept       json
// @Produce      json
// @Param        id    path  string                   true   "ID del ítem"
// @Param        body  body  dto.ReportDamageRequest  false  "Descripción del daño"
// @Success      200   {object}  dto.MutationResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/items/{id}/damage [post]
func (h *ItemHandler) ReportDamage(c *fiber.Ctx) error {
	var in dto.ReportDamageRequest
	if len(c.Body()) > 0 {
		if ok, err := bindJSON(c, &in); !ok {
			return err
		}
	}
	o, err := h.store.ReportDamage(c.UserContext(), c.Params("id"), in.Description)
	if err != nil {
		return writeError(c, err)
	}
	return mutationResult(c, o, fiber.StatusOK, "ítem no encontrado")
}

// CompleteMaintenance godoc
// @Summary      Finalizar mantenimiento
// @Tags         items
// @Produce      json
// @Param        id   path  string  true  "ID del ítem"
// @Success      200  {object}  dto.MutationResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/items/{id}/maintenance/complete [post]
func (h *ItemHandler) CompleteMaintenance(c *fiber.Ctx) error {
	o, err := h.store.CompleteMaintenance(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return mutationResult(c, o, fiber.StatusOK, "ítem no encontrado")
}

// Import godoc
// @Summary      Importar ítems desde CSV o XLSX
// @Tags         items
// @Accept       multipart/form-data
// @Produce      json
// @Param        file      formData  file    true   "Archivo .csv o .xlsx"
// @Param        encoding  formData  string  false  "Codificación del CSV (windows-1252, iso-8859-1)"
// @Success      201       {object}  dto.ImportResponse
// @Failure      400       {object}  dto.ErrorResponse
// @Failure      415       {object}  dto.ErrorResponse
// @Router       /api/items/import [post]
func (h *ItemHandler) Import(c *fiber.Ctx) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "file es requerido"})
	}
	f, err := fh.Open()
	if err != nil {
		return writeError(c, err)
	}
	defer f.Close()

	res, err := h.transfer.Import(c.UserContext(), fh.Filename, f, c.FormValue("encoding"))
	if res == nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ImportResponse{Imported: res.Rows, Persisted: res.Outcome.Persisted})
}

// Template godoc
// @Summary      Descargar plantilla XLSX de importación
// @Tags         items
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success      200
// @Router       /api/items/import/template [get]
func (h *ItemHandler) Template(c *fiber.Ctx) error {
	var buf bytes.Buffer
	if err := h.transfer.Template(&buf); err != nil {
		return writeError(c, err)
	}
	c.Attachment(transfer.TemplateFilename)
	c.Set(fiber.HeaderContentType, transfer.FormatXLSX.ContentType())
	return c.Send(buf.Bytes())
}

// Export godoc
// @Summary      Exportar inventario
// @Tags         items
// @Produce      text/csv
// @Param        format  query  string  false  "csv | xlsx | pdf"  default(csv)
// @Success      200
// @Failure      415  {object}  dto.ErrorResponse
// @Router       /api/items/export [get]
func (h *ItemHandler) Export(c *fiber.Ctx) error {
	f, err := transfer.ParseFormat(c.Query("format"))
	if err != nil {
		return writeError(c, err)
	}
	var buf bytes.Buffer
	name, err := h.transfer.ExportItems(c.UserContext(), &buf, f)
	if err != nil {
		return writeError(c, err)
	}
	c.Attachment(name)
	c.Set(fiber.HeaderContentType, f.ContentType())
	return c.Send(buf.Bytes())
}
