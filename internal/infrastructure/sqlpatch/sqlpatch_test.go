package sqlpatch_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/labinventaris/internal/domain/entity"
	"github.com/jhoicas/labinventaris/internal/infrastructure/sqlpatch"
)

func TestUpdate_Postgres(t *testing.T) {
	qty := 4
	st := entity.ItemStatusLowStock
	q, args, ok := sqlpatch.Update(sqlpatch.Postgres, "items", sqlpatch.Item(entity.ItemPatch{Quantity: &qty, Status: &st}), "ITEM-1")

	assert.True(t, ok)
	assert.Equal(t, "UPDATE items SET quantity = $1, status = $2 WHERE id = $3", q)
	assert.Equal(t, []any{4, "Stok Rendah", "ITEM-1"}, args)
}

func TestUpdate_BindConvierteFechas(t *testing.T) {
	d := sqlpatch.Dialect{
		Placeholder: func(int) string { return "?" },
		Bind: func(v any) any {
			if tm, ok := v.(time.Time); ok {
				return tm.Format("2006-01-02")
			}
			return v
		},
	}
	ret := time.Date(2024, 3, 14, 0, 0, 0, 0, time.UTC)
	status := entity.LoanStatusReturned
	q, args, ok := sqlpatch.Update(d, "loans", sqlpatch.Loan(entity.LoanPatch{Status: &status, ReturnDate: &ret}), "L-1")

	assert.True(t, ok)
	assert.Equal(t, "UPDATE loans SET status = ?, return_date = ? WHERE id = ?", q)
	assert.Equal(t, []any{"Dikembalikan", "2024-03-14", "L-1"}, args)
}

func TestUpdate_PatchVacio(t *testing.T) {
	_, _, ok := sqlpatch.Update(sqlpatch.Postgres, "labs", sqlpatch.Lab(entity.LabPatch{}), "LAB-01")
	assert.False(t, ok)
}
