package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/labinventaris/internal/application/dto"
	"github.com/jhoicas/labinventaris/internal/application/inventory"
)

// LabHandler maneja los laboratorios.
type LabHandler struct {
	store *inventory.Store
}

// NewLabHandler construye el handler.
func NewLabHandler(store *inventory.Store) *LabHandler {
	return &LabHandler{store: store}
}

// List godoc
// @Summary      Listar laboratorios
// @Tags         labs
// @Produce      json
// @Success      200  {array}  dto.LabResponse
// @Router       /api/labs [get]
func (h *LabHandler) List(c *fiber.Ctx) error {
	counts := make(map[string]int)
	for _, it := range h.store.Items() {
		counts[it.LabID]++
	}
	labs := h.store.Labs()
	out := make([]dto.LabResponse, 0, len(labs))
	for _, l := range labs {
		out = append(out, dto.LabFromEntity(l, counts[l.ID]))
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Laboratorio con sus ítems
// @Tags         labs
// @Produce      json
// @Param        id   path  string  true  "ID del laboratorio"
// @Success      200  {object}  dto.LabDetailResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/labs/{id} [get]
func (h *LabHandler) GetByID(c *fiber.Ctx) error {
	lab, ok := h.store.Lab(c.Params("id"))
	if !ok {
		return notFound(c, "laboratorio no encontrado")
	}
	items := h.store.ItemsByLab(lab.ID)
	return c.JSON(dto.LabDetailResponse{
		LabResponse: dto.LabFromEntity(lab, len(items)),
		Items:       dto.ItemsFromEntities(items),
	})
}

// Update godoc
// @Summary      Actualizar laboratorio (parcial)
// @Tags         labs
// @Accept       json
// @Produce      json
// @Param        id    path  string                true  "ID del laboratorio"
// @Param        body  body  dto.UpdateLabRequest  true  "Campos a cambiar"
// @Success      200   {object}  dto.MutationResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/labs/{id} [patch]
func (h *LabHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateLabRequest
	if ok, err := bindJSON(c, &in); !ok {
		return err
	}
	o, err := h.store.UpdateLab(c.UserContext(), c.Params("id"), in.ToPatch())
	if err != nil {
		return writeError(c, err)
	}
	return mutationResult(c, o, fiber.StatusOK, "laboratorio no encontrado")
}
