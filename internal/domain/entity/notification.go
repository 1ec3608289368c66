package entity

import "time"

// NotificationType severidad de una notificación.
type NotificationType string

const (
	NotificationInfo    NotificationType = "info"
	NotificationWarning NotificationType = "warning"
	NotificationAlert   NotificationType = "alert"
)

// Notification alerta visible para el usuario. Se crea fuera del store (seed o backend).
type Notification struct {
	ID        string
	Title     string
	Message   string
	Date      string // etiqueta legible ("Hari Ini", "Kemarin", ...)
	Read      bool
	Type      NotificationType
	CreatedAt time.Time
}
