package inventory

import (
	"time"

	"github.com/jhoicas/labinventaris/internal/domain/entity"
)

// DefaultTimestampLayout equivale a toLocaleString('id-ID'): 14/3/2024, 08.30.00
const DefaultTimestampLayout = "2/1/2006, 15.04.05"

// Session contexto explícito del usuario que opera el store (reemplaza el estado global de usuario).
type Session struct {
	ProfileID       string
	DefaultProfile  entity.UserProfile // se usa si la fila del perfil no existe
	Location        *time.Location
	TimestampLayout string
}

// DefaultSession sesión con el perfil USER-001 y hora de Yakarta si está disponible.
func DefaultSession() Session {
	loc, err := time.LoadLocation("Asia/Jakarta")
	if err != nil {
		loc = time.Local
	}
	return Session{
		ProfileID: entity.DefaultProfileID,
		DefaultProfile: entity.UserProfile{
			ID:   entity.DefaultProfileID,
			Name: "Dr. Arini",
			Role: "Kepala Laboratorium",
		},
		Location:        loc,
		TimestampLayout: DefaultTimestampLayout,
	}
}

func (s Session) normalized() Session {
	if s.ProfileID == "" {
		s.ProfileID = entity.DefaultProfileID
	}
	if s.DefaultProfile.ID == "" {
		s.DefaultProfile.ID = s.ProfileID
	}
	if s.Location == nil {
		s.Location = time.Local
	}
	if s.TimestampLayout == "" {
		s.TimestampLayout = DefaultTimestampLayout
	}
	return s
}

// FormatTimestamp formatea t con el layout y zona horaria de la sesión.
func (s Session) FormatTimestamp(t time.Time) string {
	return t.In(s.Location).Format(s.TimestampLayout)
}

// Today fecha calendario (00:00 en la zona de la sesión) correspondiente a t.
func (s Session) Today(t time.Time) time.Time {
	lt := t.In(s.Location)
	return time.Date(lt.Year(), lt.Month(), lt.Day(), 0, 0, 0, 0, s.Location)
}

// CalendarDate reinterpreta el año, mes y día de t como 00:00 en la zona de la sesión,
// sin convertir entre zonas. Los gateways devuelven las columnas DATE en UTC.
func (s Session) CalendarDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, s.Location)
}

func (s Session) calendarDatePtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	d := s.CalendarDate(*t)
	return &d
}
