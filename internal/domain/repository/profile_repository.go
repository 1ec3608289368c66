package repository

import (
	"context"

	"github.com/jhoicas/labinventaris/internal/domain/entity"
)

// ProfileRepository puerto para el perfil singleton. Get devuelve (nil, nil) si no existe.
type ProfileRepository interface {
	Get(ctx context.Context, id string) (*entity.UserProfile, error)
	Upsert(ctx context.Context, profile *entity.UserProfile) error
}
