package entity

import "time"

// LoanStatus estado persistido de un préstamo.
type LoanStatus string

const (
	LoanStatusBorrowed LoanStatus = "Dipinjam"
	LoanStatusReturned LoanStatus = "Dikembalikan"
	LoanStatusOverdue  LoanStatus = "Terlambat"
)

// Loan préstamo de un ítem. ItemName es una copia tomada al crear el préstamo
// y no sigue los renombres posteriores del ítem.
type Loan struct {
	ID               string
	ItemID           string
	ItemName         string
	Borrower         string
	BorrowerID       string // NIM/NIP/NIK
	IDCardImage      string
	BorrowDate       time.Time
	DueDate          time.Time
	ReturnDate       *time.Time
	Status           LoanStatus
	QuantityBorrowed int
}

// LoanPatch actualización parcial de un préstamo.
type LoanPatch struct {
	Status     *LoanStatus
	ReturnDate *time.Time
	DueDate    *time.Time
}

// Apply mezcla el patch sobre el préstamo.
func (p LoanPatch) Apply(l *Loan) {
	if p.Status != nil {
		l.Status = *p.Status
	}
	if p.ReturnDate != nil {
		d := *p.ReturnDate
		l.ReturnDate = &d
	}
	if p.DueDate != nil {
		l.DueDate = *p.DueDate
	}
}

// Clone copia profunda.
func (l *Loan) Clone() *Loan {
	c := *l
	if l.ReturnDate != nil {
		d := *l.ReturnDate
		c.ReturnDate = &d
	}
	return &c
}
