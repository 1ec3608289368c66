package dto

import "github.com/jhoicas/labinventaris/internal/domain/entity"

// ActivityLogResponse entrada de bitácora.
type ActivityLogResponse struct {
	ID        string `json:"id"`
	Action    string `json:"action"`
	User      string `json:"user"`
	Timestamp string `json:"timestamp"`
	Type      string `json:"type"`
}

// LogsFromEntities mapea la bitácora.
func LogsFromEntities(list []entity.ActivityLog) []ActivityLogResponse {
	out := make([]ActivityLogResponse, 0, len(list))
	for _, l := range list {
		out = append(out, ActivityLogResponse{ID: l.ID, Action: l.Action, User: l.User, Timestamp: l.Timestamp, Type: string(l.Type)})
	}
	return out
}

// NotificationResponse notificación.
type NotificationResponse struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Message string `json:"message"`
	Date    string `json:"date"`
	Read    bool   `json:"read"`
	Type    string `json:"type"`
}

// NotificationListResponse respuesta de GET /api/notifications.
type NotificationListResponse struct {
	Unread int                    `json:"unread"`
	Items  []NotificationResponse `json:"items"`
}

// NotificationsFromEntities mapea las notificaciones.
func NotificationsFromEntities(list []entity.Notification) []NotificationResponse {
	out := make([]NotificationResponse, 0, len(list))
	for _, n := range list {
		out = append(out, NotificationResponse{ID: n.ID, Title: n.Title, Message: n.Message, Date: n.Date, Read: n.Read, Type: string(n.Type)})
	}
	return out
}

// ProfileResponse perfil del usuario.
type ProfileResponse struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Role   string `json:"role"`
	Avatar string `json:"avatar"`
}

// ProfileFromEntity mapea el perfil.
func ProfileFromEntity(p entity.UserProfile) ProfileResponse {
	return ProfileResponse{ID: p.ID, Name: p.Name, Role: p.Role, Avatar: p.Avatar}
}

// UpdateProfileRequest body para PATCH /api/profile.
type UpdateProfileRequest struct {
	Name   *string `json:"name" validate:"omitempty,min=1,max=120"`
	Role   *string `json:"role" validate:"omitempty,max=120"`
	Avatar *string `json:"avatar"`
}

// ToPatch convierte el request.
func (r UpdateProfileRequest) ToPatch() entity.UserProfilePatch {
	return entity.UserProfilePatch{Name: r.Name, Role: r.Role, Avatar: r.Avatar}
}
