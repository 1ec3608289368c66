package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/labinventaris/internal/domain/entity"
	"github.com/jhoicas/labinventaris/internal/domain/repository"
)

var _ repository.NotificationRepository = (*NotificationRepo)(nil)

// NotificationRepo notificaciones sobre PostgreSQL.
type NotificationRepo struct {
	q Querier
}

// NewNotificationRepository construye el adaptador.
func NewNotificationRepository(q Querier) *NotificationRepo {
	return &NotificationRepo{q: q}
}

func (r *NotificationRepo) List(ctx context.Context) ([]*entity.Notification, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, title, message, date_label, read, type, created_at
		FROM notifications ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	defer rows.Close()

	var list []*entity.Notification
	for rows.Next() {
		var (
			n   entity.Notification
			typ string
		)
		if err := rows.Scan(&n.ID, &n.Title, &n.Message, &n.Date, &n.Read, &typ, &n.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan notification: %w", err)
		}
		n.Type = entity.NotificationType(typ)
		list = append(list, &n)
	}
	return list, rows.Err()
}

func (r *NotificationRepo) Create(ctx context.Context, n *entity.Notification) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO notifications (id, title, message, date_label, read, type, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		n.ID, n.Title, n.Message, n.Date, n.Read, string(n.Type), n.CreatedAt,
	)
	if err != nil {
		return wrapWrite("insert notification", err)
	}
	return nil
}

func (r *NotificationRepo) MarkRead(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `UPDATE notifications SET read = TRUE WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("mark notification read: %w", err)
	}
	return expectRow(tag, "notification", id)
}

func (r *NotificationRepo) DeleteAll(ctx context.Context) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM notifications`); err != nil {
		return fmt.Errorf("delete notifications: %w", err)
	}
	return nil
}
