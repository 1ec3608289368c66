package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/labinventaris/internal/application/dto"
	"github.com/jhoicas/labinventaris/internal/application/inventory"
)

// StateHandler expone el estado completo, la bitácora, las notificaciones y el perfil.
type StateHandler struct {
	store *inventory.Store
}

// NewStateHandler construye el handler.
func NewStateHandler(store *inventory.Store) *StateHandler {
	return &StateHandler{store: store}
}

// Snapshot godoc
// @Summary      Estado completo del store
// @Description  Ítems, préstamos (con vencimiento calculado), bitácora, laboratorios, notificaciones y perfil.
// @Tags         state
// @Produce      json
// @Success      200  {object}  dto.StateResponse
// @Router       /api/state [get]
func (h *StateHandler) Snapshot(c *fiber.Ctx) error {
	snap := h.store.Snapshot()
	loans := h.store.LoanViews(inventory.LoanFilter{}, h.store.Now())
	return c.JSON(dto.StateFromSnapshot(snap, loans))
}

// Logs godoc
// @Summary      Bitácora de actividad (más reciente primero)
// @Tags         logs
// @Produce      json
// @Success      200  {array}  dto.ActivityLogResponse
// @Router       /api/logs [get]
func (h *StateHandler) Logs(c *fiber.Ctx) error {
	return c.JSON(dto.LogsFromEntities(h.store.Logs()))
}

// Notifications godoc
// @Summary      Notificaciones
// @Tags         notifications
// @Produce      json
// @Success      200  {object}  dto.NotificationListResponse
// @Router       /api/notifications [get]
func (h *StateHandler) Notifications(c *fiber.Ctx) error {
	return c.JSON(dto.NotificationListResponse{
		Unread: h.store.UnreadNotifications(),
		Items:  dto.NotificationsFromEntities(h.store.Notifications()),
	})
}

// MarkNotificationRead godoc
// @Summary      Marcar notificación como leída
// @Tags         notifications
// @Produce      json
// @Param        id   path  string  true  "ID de la notificación"
// @Success      200  {object}  dto.MutationResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/notifications/{id}/read [post]
func (h *StateHandler) MarkNotificationRead(c *fiber.Ctx) error {
	o, err := h.store.MarkNotificationRead(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return mutationResult(c, o, fiber.StatusOK, "notificación no encontrada")
}

// ClearNotifications godoc
// @Summary      Borrar todas las notificaciones
// @Tags         notifications
// @Produce      json
// @Success      200  {object}  dto.MutationResponse
// @Router       /api/notifications [delete]
func (h *StateHandler) ClearNotifications(c *fiber.Ctx) error {
	o, err := h.store.ClearNotifications(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return mutationResult(c, o, fiber.StatusOK, "")
}

// Profile godoc
// @Summary      Perfil del usuario
// @Tags         profile
// @Produce      json
// @Success      200  {object}  dto.ProfileResponse
// @Router       /api/profile [get]
func (h *StateHandler) Profile(c *fiber.Ctx) error {
	return c.JSON(dto.ProfileFromEntity(h.store.Profile()))
}

// UpdateProfile godoc
// @Summary      Actualizar perfil (parcial)
// @Tags         profile
// @Accept       json
// @Produce      json
// @Param        body  body  dto.UpdateProfileRequest  true  "Campos a cambiar"
// @Success      200   {object}  dto.MutationResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/profile [patch]
func (h *StateHandler) UpdateProfile(c *fiber.Ctx) error {
	var in dto.UpdateProfileRequest
	if ok, err := bindJSON(c, &in); !ok {
		return err
	}
	o, err := h.store.UpdateUserProfile(c.UserContext(), in.ToPatch())
	if err != nil {
		return writeError(c, err)
	}
	return mutationResult(c, o, fiber.StatusOK, "")
}
