package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/labinventaris/internal/domain/entity"
	"github.com/jhoicas/labinventaris/internal/domain/repository"
	"github.com/jhoicas/labinventaris/internal/infrastructure/sqlpatch"
)

var _ repository.LabRepository = (*LabRepo)(nil)

// LabRepo laboratorios sobre PostgreSQL, en orden de alta.
type LabRepo struct {
	q Querier
}

// NewLabRepository construye el adaptador.
func NewLabRepository(q Querier) *LabRepo {
	return &LabRepo{q: q}
}

func (r *LabRepo) List(ctx context.Context) ([]*entity.Lab, error) {
	rows, err := r.q.Query(ctx, `SELECT id, name, location, description, image FROM labs ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("list labs: %w", err)
	}
	defer rows.Close()

	var list []*entity.Lab
	for rows.Next() {
		var l entity.Lab
		if err := rows.Scan(&l.ID, &l.Name, &l.Location, &l.Description, &l.Image); err != nil {
			return nil, fmt.Errorf("scan lab: %w", err)
		}
		list = append(list, &l)
	}
	return list, rows.Err()
}

func (r *LabRepo) Create(ctx context.Context, l *entity.Lab) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO labs (id, name, location, description, image) VALUES ($1, $2, $3, $4, $5)`,
		l.ID, l.Name, l.Location, l.Description, l.Image,
	)
	if err != nil {
		return wrapWrite("insert lab "+l.ID, err)
	}
	return nil
}

func (r *LabRepo) Update(ctx context.Context, id string, patch entity.LabPatch) error {
	query, args, ok := sqlpatch.Update(dialect, "labs", sqlpatch.Lab(patch), id)
	if !ok {
		return nil
	}
	tag, err := r.q.Exec(ctx, query, args...)
	if err != nil {
		return wrapWrite("update lab", err)
	}
	return expectRow(tag, "lab", id)
}
