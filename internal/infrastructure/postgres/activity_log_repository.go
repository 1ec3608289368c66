package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/labinventaris/internal/domain/entity"
	"github.com/jhoicas/labinventaris/internal/domain/repository"
)

var _ repository.ActivityLogRepository = (*ActivityLogRepo)(nil)

// ActivityLogRepo bitácora de solo-agregar sobre PostgreSQL.
type ActivityLogRepo struct {
	q Querier
}

// NewActivityLogRepository construye el adaptador.
func NewActivityLogRepository(q Querier) *ActivityLogRepo {
	return &ActivityLogRepo{q: q}
}

// List devuelve la bitácora ordenada por created_at descendente.
func (r *ActivityLogRepo) List(ctx context.Context) ([]*entity.ActivityLog, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, action, user_name, ts_label, log_type, created_at
		FROM activity_logs ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list activity logs: %w", err)
	}
	defer rows.Close()

	var list []*entity.ActivityLog
	for rows.Next() {
		var (
			l   entity.ActivityLog
			typ string
		)
		if err := rows.Scan(&l.ID, &l.Action, &l.User, &l.Timestamp, &typ, &l.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan activity log: %w", err)
		}
		l.Type = entity.LogType(typ)
		list = append(list, &l)
	}
	return list, rows.Err()
}

// Create agrega una entrada.
func (r *ActivityLogRepo) Create(ctx context.Context, l *entity.ActivityLog) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO activity_logs (id, action, user_name, ts_label, log_type, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		l.ID, l.Action, l.User, l.Timestamp, string(l.Type), l.CreatedAt,
	)
	if err != nil {
		return wrapWrite("insert activity log", err)
	}
	return nil
}
