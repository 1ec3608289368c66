package inventory_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/labinventaris/internal/domain/entity"
	"github.com/jhoicas/labinventaris/internal/domain/inventory"
)

func TestItemStatusFromQuantity(t *testing.T) {
	cases := []struct {
		qty  int
		want entity.ItemStatus
	}{
		{0, entity.ItemStatusOutOfStock},
		{1, entity.ItemStatusLowStock},
		{4, entity.ItemStatusLowStock},
		{5, entity.ItemStatusAvailable},
		{120, entity.ItemStatusAvailable},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, inventory.ItemStatusFromQuantity(c.qty), "cantidad %d", c.qty)
	}
}

// El límite de devolución es distinto: 5 unidades tras devolver sigue en Stok Rendah.
func TestItemStatusAfterReturn_LimiteAsimetrico(t *testing.T) {
	assert.Equal(t, entity.ItemStatusLowStock, inventory.ItemStatusAfterReturn(5))
	assert.Equal(t, entity.ItemStatusAvailable, inventory.ItemStatusAfterReturn(6))
	assert.Equal(t, entity.ItemStatusLowStock, inventory.ItemStatusAfterReturn(0))
	assert.NotEqual(t, inventory.ItemStatusFromQuantity(5), inventory.ItemStatusAfterReturn(5))
}

func TestRecomputeStatus_MantenimientoPersiste(t *testing.T) {
	assert.Equal(t, entity.ItemStatusMaintenance, inventory.RecomputeStatus(entity.ItemStatusMaintenance, 0))
	assert.Equal(t, entity.ItemStatusMaintenance, inventory.RecomputeStatus(entity.ItemStatusMaintenance, 50))
	assert.Equal(t, entity.ItemStatusOutOfStock, inventory.RecomputeStatus(entity.ItemStatusAvailable, 0))
	assert.Equal(t, entity.ItemStatusAvailable, inventory.RecomputeStatus(entity.ItemStatusBorrowed, 9))
}

func TestLoanIsOverdue(t *testing.T) {
	now := time.Date(2024, 3, 14, 10, 0, 0, 0, time.UTC)
	yesterday := now.AddDate(0, 0, -1)
	tomorrow := now.AddDate(0, 0, 1)

	// Persistido como Dipinjam pero vencido: se calcula como atrasado.
	assert.True(t, inventory.LoanIsOverdue(yesterday, entity.LoanStatusBorrowed, now))
	assert.False(t, inventory.LoanIsOverdue(tomorrow, entity.LoanStatusBorrowed, now))
	// Terlambat persistido siempre cuenta, aunque la fecha sea futura.
	assert.True(t, inventory.LoanIsOverdue(tomorrow, entity.LoanStatusOverdue, now))
	// Un préstamo devuelto nunca está atrasado.
	assert.False(t, inventory.LoanIsOverdue(yesterday, entity.LoanStatusReturned, now))

	assert.Equal(t, entity.LoanStatusOverdue, inventory.DisplayLoanStatus(yesterday, entity.LoanStatusBorrowed, now))
	assert.Equal(t, entity.LoanStatusBorrowed, inventory.DisplayLoanStatus(tomorrow, entity.LoanStatusBorrowed, now))
}
