package repository

import (
	"context"

	"github.com/jhoicas/labinventaris/internal/domain/entity"
)

// NotificationRepository puerto de persistencia para notificaciones (más recientes primero).
type NotificationRepository interface {
	List(ctx context.Context) ([]*entity.Notification, error)
	Create(ctx context.Context, n *entity.Notification) error
	MarkRead(ctx context.Context, id string) error
	DeleteAll(ctx context.Context) error
}
