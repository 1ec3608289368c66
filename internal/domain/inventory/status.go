package inventory

import (
	"time"

	"github.com/jhoicas/labinventaris/internal/domain/entity"
)

// LowStockThreshold por debajo de este valor (y sobre cero) el ítem queda en Stok Rendah.
const LowStockThreshold = 5

// ItemStatusFromQuantity estado al crear, al prestar y al terminar mantenimiento:
// 0 → Stok Habis; 1..4 → Stok Rendah; >=5 → Tersedia.
func ItemStatusFromQuantity(quantity int) entity.ItemStatus {
	switch {
	case quantity <= 0:
		return entity.ItemStatusOutOfStock
	case quantity < LowStockThreshold:
		return entity.ItemStatusLowStock
	default:
		return entity.ItemStatusAvailable
	}
}

// ItemStatusAfterReturn estado tras una devolución: >5 → Tersedia, si no Stok Rendah.
// El límite en exactamente 5 difiere de ItemStatusFromQuantity y se conserva así.
func ItemStatusAfterReturn(quantity int) entity.ItemStatus {
	if quantity > LowStockThreshold {
		return entity.ItemStatusAvailable
	}
	return entity.ItemStatusLowStock
}

// RecomputeStatus aplica ItemStatusFromQuantity salvo que el ítem esté en mantenimiento.
func RecomputeStatus(current entity.ItemStatus, quantity int) entity.ItemStatus {
	if current == entity.ItemStatusMaintenance {
		return current
	}
	return ItemStatusFromQuantity(quantity)
}

// LoanIsOverdue se calcula en lectura: el estado persistido puede seguir en Dipinjam
// aunque la fecha de vencimiento ya pasó.
func LoanIsOverdue(dueDate time.Time, status entity.LoanStatus, now time.Time) bool {
	if status == entity.LoanStatusOverdue {
		return true
	}
	return status == entity.LoanStatusBorrowed && dueDate.Before(now)
}

// DisplayLoanStatus estado que debe mostrarse para un préstamo en now.
func DisplayLoanStatus(dueDate time.Time, status entity.LoanStatus, now time.Time) entity.LoanStatus {
	if LoanIsOverdue(dueDate, status, now) {
		return entity.LoanStatusOverdue
	}
	return status
}
