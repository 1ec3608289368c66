package entity

import "time"

// LogType tipo de entrada de auditoría.
type LogType string

const (
	LogTypeAdd         LogType = "add"
	LogTypeEdit        LogType = "edit"
	LogTypeDelete      LogType = "delete"
	LogTypeBorrow      LogType = "borrow"
	LogTypeReturn      LogType = "return"
	LogTypeMaintenance LogType = "maintenance"
)

// ActivityLog entrada de auditoría, solo se agrega. User es una copia del nombre
// visible del perfil al momento de la acción; Timestamp ya viene formateado.
type ActivityLog struct {
	ID        string
	Action    string
	User      string
	Timestamp string
	Type      LogType
	CreatedAt time.Time
}
