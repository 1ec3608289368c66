package dto

import (
	"github.com/jhoicas/labinventaris/internal/application/inventory"
)

// LoanResponse préstamo con su estado calculado al momento de la consulta.
type LoanResponse struct {
	ID               string  `json:"id"`
	ItemID           string  `json:"item_id"`
	ItemName         string  `json:"item_name"`
	Borrower         string  `json:"borrower"`
	BorrowerID       string  `json:"borrower_id"`
	IDCardImage      string  `json:"id_card_image,omitempty"`
	BorrowDate       string  `json:"borrow_date"`
	DueDate          string  `json:"due_date"`
	ReturnDate       *string `json:"return_date"`
	Status           string  `json:"status"`
	DisplayStatus    string  `json:"display_status"`
	Overdue          bool    `json:"overdue"`
	QuantityBorrowed int     `json:"quantity_borrowed"`
}

// LoanFromView mapea la vista del store al DTO.
func LoanFromView(v inventory.LoanView) LoanResponse {
	return LoanResponse{
		ID:               v.ID,
		ItemID:           v.ItemID,
		ItemName:         v.ItemName,
		Borrower:         v.Borrower,
		BorrowerID:       v.BorrowerID,
		IDCardImage:      v.IDCardImage,
		BorrowDate:       formatDate(v.BorrowDate),
		DueDate:          formatDate(v.DueDate),
		ReturnDate:       formatDatePtr(v.ReturnDate),
		Status:           string(v.Status),
		DisplayStatus:    string(v.DisplayStatus),
		Overdue:          v.Overdue,
		QuantityBorrowed: v.QuantityBorrowed,
	}
}

// LoansFromViews mapea una lista.
func LoansFromViews(list []inventory.LoanView) []LoanResponse {
	out := make([]LoanResponse, 0, len(list))
	for _, v := range list {
		out = append(out, LoanFromView(v))
	}
	return out
}

// BorrowRequest body para POST /api/loans.
type BorrowRequest struct {
	ItemID      string `json:"item_id" validate:"required"`
	Borrower    string `json:"borrower" validate:"required,max=120"`
	BorrowerID  string `json:"borrower_id" validate:"max=40"`
	IDCardImage string `json:"id_card_image" validate:"omitempty,max=2048"`
	Quantity    int    `json:"quantity" validate:"required,min=1"`
	DueDate     string `json:"due_date" validate:"omitempty,datetime=2006-01-02"`
}

// LoanListQuery filtros de GET /api/loans.
type LoanListQuery struct {
	Status string `query:"status" validate:"omitempty,oneof=Semua Dipinjam Dikembalikan Terlambat"`
	Q      string `query:"q"`
	From   string `query:"from" validate:"omitempty,datetime=2006-01-02"`
	To     string `query:"to" validate:"omitempty,datetime=2006-01-02"`
}
