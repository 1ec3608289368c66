package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/labinventaris/internal/domain/entity"
	"github.com/jhoicas/labinventaris/internal/domain/repository"
	"github.com/jhoicas/labinventaris/internal/infrastructure/sqlpatch"
)

var _ repository.LoanRepository = (*LoanRepo)(nil)

const loanColumns = `id, item_id, item_name, borrower, borrower_id, id_card_image,
	borrow_date, due_date, return_date, status, quantity_borrowed`

// LoanRepo implementación del puerto LoanRepository sobre PostgreSQL.
type LoanRepo struct {
	q Querier
}

// NewLoanRepository construye el adaptador. Pasar pool o tx (Querier).
func NewLoanRepository(q Querier) *LoanRepo {
	return &LoanRepo{q: q}
}

// List devuelve los préstamos, los más recientes primero.
func (r *LoanRepo) List(ctx context.Context) ([]*entity.Loan, error) {
	rows, err := r.q.Query(ctx, `SELECT `+loanColumns+` FROM loans ORDER BY seq DESC`)
	if err != nil {
		return nil, fmt.Errorf("list loans: %w", err)
	}
	defer rows.Close()

	var list []*entity.Loan
	for rows.Next() {
		l, err := scanLoan(rows)
		if err != nil {
			return nil, fmt.Errorf("scan loan: %w", err)
		}
		list = append(list, l)
	}
	return list, rows.Err()
}

// Create inserta un préstamo.
func (r *LoanRepo) Create(ctx context.Context, l *entity.Loan) error {
	_, err := r.q.Exec(ctx, `INSERT INTO loans (`+loanColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		l.ID, l.ItemID, l.ItemName, l.Borrower, l.BorrowerID, l.IDCardImage,
		l.BorrowDate, l.DueDate, l.ReturnDate, string(l.Status), l.QuantityBorrowed,
	)
	if err != nil {
		return wrapWrite("insert loan "+l.ID, err)
	}
	return nil
}

// Update aplica solo las columnas presentes en el patch.
func (r *LoanRepo) Update(ctx context.Context, id string, patch entity.LoanPatch) error {
	query, args, ok := sqlpatch.Update(dialect, "loans", sqlpatch.Loan(patch), id)
	if !ok {
		return nil
	}
	tag, err := r.q.Exec(ctx, query, args...)
	if err != nil {
		return wrapWrite("update loan", err)
	}
	return expectRow(tag, "loan", id)
}

// Delete elimina el registro del préstamo.
func (r *LoanRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM loans WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete loan: %w", err)
	}
	return expectRow(tag, "loan", id)
}

func scanLoan(row pgx.Row) (*entity.Loan, error) {
	var (
		l      entity.Loan
		status string
	)
	err := row.Scan(
		&l.ID, &l.ItemID, &l.ItemName, &l.Borrower, &l.BorrowerID, &l.IDCardImage,
		&l.BorrowDate, &l.DueDate, &l.ReturnDate, &status, &l.QuantityBorrowed,
	)
	if err != nil {
		return nil, err
	}
	l.Status = entity.LoanStatus(status)
	return &l, nil
}
