package inventory

import (
	"context"

	"github.com/google/uuid"

	"github.com/jhoicas/labinventaris/internal/domain/entity"
)

// addLog agrega una entrada de bitácora (más reciente primero) y la persiste.
// Un fallo de persistencia solo se registra: la bitácora nunca hace fallar la operación.
func (s *Store) addLog(ctx context.Context, action string, typ entity.LogType) *entity.ActivityLog {
	now := s.now()
	s.mu.Lock()
	entry := &entity.ActivityLog{
		ID:        uuid.NewString(),
		Action:    action,
		User:      s.profile.Name,
		Timestamp: s.session.FormatTimestamp(now),
		Type:      typ,
		CreatedAt: now,
	}
	s.logs = insertAt(s.logs, 0, entry)
	copied := *entry
	s.mu.Unlock()

	if err := s.gw.Logs.Create(ctx, &copied); err != nil {
		s.log.Warn().Err(err).Str("log_type", string(typ)).Msg("bitácora no persistida")
		s.rec.PersistFailure("add_log", "logs")
	}
	return &copied
}
