package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/labinventaris/internal/domain/entity"
	"github.com/jhoicas/labinventaris/internal/domain/repository"
	"github.com/jhoicas/labinventaris/internal/infrastructure/sqlpatch"
)

var _ repository.ItemRepository = (*ItemRepo)(nil)

const itemColumns = `id, lab_id, name, category, quantity, unit, location, status,
	description, supplier, serial_number, acquisition_date, image`

// ItemRepo implementación del puerto ItemRepository sobre PostgreSQL.
type ItemRepo struct {
	q  Querier
	tx *TxRunner
}

// NewItemRepository construye el adaptador. tx se usa para CreateMany; nil = ejecutar sobre q
// (útil cuando q ya es una transacción).
func NewItemRepository(q Querier, tx *TxRunner) *ItemRepo {
	return &ItemRepo{q: q, tx: tx}
}

// List devuelve los ítems, los más recientes primero.
func (r *ItemRepo) List(ctx context.Context) ([]*entity.Item, error) {
	rows, err := r.q.Query(ctx, `SELECT `+itemColumns+` FROM items ORDER BY seq DESC`)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	defer rows.Close()

	var list []*entity.Item
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		list = append(list, it)
	}
	return list, rows.Err()
}

// Create inserta un ítem.
func (r *ItemRepo) Create(ctx context.Context, item *entity.Item) error {
	return insertItem(ctx, r.q, item)
}

// CreateMany inserta el lote en una transacción: todas las filas o ninguna.
// Se insertan en orden inverso para que la primera fila quede como la más reciente.
func (r *ItemRepo) CreateMany(ctx context.Context, items []*entity.Item) error {
	run := func(q Querier) error {
		for i := len(items) - 1; i >= 0; i-- {
			if err := insertItem(ctx, q, items[i]); err != nil {
				return err
			}
		}
		return nil
	}
	if r.tx == nil {
		return run(r.q)
	}
	return r.tx.Run(ctx, run)
}

// Update aplica solo las columnas presentes en el patch.
func (r *ItemRepo) Update(ctx context.Context, id string, patch entity.ItemPatch) error {
	query, args, ok := sqlpatch.Update(dialect, "items", sqlpatch.Item(patch), id)
	if !ok {
		return nil
	}
	tag, err := r.q.Exec(ctx, query, args...)
	if err != nil {
		return wrapWrite("update item", err)
	}
	return expectRow(tag, "item", id)
}

// Delete elimina el ítem. Los préstamos que lo referencian se conservan.
func (r *ItemRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM items WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete item: %w", err)
	}
	return expectRow(tag, "item", id)
}

func insertItem(ctx context.Context, q Querier, it *entity.Item) error {
	_, err := q.Exec(ctx, `INSERT INTO items (`+itemColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		it.ID, it.LabID, it.Name, string(it.Category), it.Quantity, it.Unit, it.Location, string(it.Status),
		it.Description, it.Supplier, it.SerialNumber, it.AcquisitionDate, it.Image,
	)
	if err != nil {
		return wrapWrite("insert item "+it.ID, err)
	}
	return nil
}

func scanItem(row pgx.Row) (*entity.Item, error) {
	var (
		it       entity.Item
		category string
		status   string
	)
	err := row.Scan(
		&it.ID, &it.LabID, &it.Name, &category, &it.Quantity, &it.Unit, &it.Location, &status,
		&it.Description, &it.Supplier, &it.SerialNumber, &it.AcquisitionDate, &it.Image,
	)
	if err != nil {
		return nil, err
	}
	it.Category = entity.ItemCategory(category)
	it.Status = entity.ItemStatus(status)
	return &it, nil
}
