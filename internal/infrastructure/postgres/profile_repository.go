package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/labinventaris/internal/domain/entity"
	"github.com/jhoicas/labinventaris/internal/domain/repository"
)

var _ repository.ProfileRepository = (*ProfileRepo)(nil)

// ProfileRepo perfil singleton sobre PostgreSQL.
type ProfileRepo struct {
	q Querier
}

// NewProfileRepository construye el adaptador.
func NewProfileRepository(q Querier) *ProfileRepo {
	return &ProfileRepo{q: q}
}

// Get devuelve (nil, nil) si la fila no existe.
func (r *ProfileRepo) Get(ctx context.Context, id string) (*entity.UserProfile, error) {
	var p entity.UserProfile
	err := r.q.QueryRow(ctx, `SELECT id, name, role, avatar FROM profiles WHERE id = $1`, id).
		Scan(&p.ID, &p.Name, &p.Role, &p.Avatar)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get profile: %w", err)
	}
	return &p, nil
}

// Upsert escribe el perfil completo.
func (r *ProfileRepo) Upsert(ctx context.Context, p *entity.UserProfile) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO profiles (id, name, role, avatar) VALUES ($1, $2, $3, $4)
		ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name, role = EXCLUDED.role, avatar = EXCLUDED.avatar`,
		p.ID, p.Name, p.Role, p.Avatar,
	)
	if err != nil {
		return fmt.Errorf("upsert profile: %w", err)
	}
	return nil
}
