package repository

import (
	"context"

	"github.com/jhoicas/labinventaris/internal/domain/entity"
)

// LoanRepository define el puerto de persistencia para Loan.
type LoanRepository interface {
	List(ctx context.Context) ([]*entity.Loan, error)
	Create(ctx context.Context, loan *entity.Loan) error
	Update(ctx context.Context, id string, patch entity.LoanPatch) error
	Delete(ctx context.Context, id string) error
}
