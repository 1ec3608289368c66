package http

import (
	"bytes"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/labinventaris/internal/application/dto"
	"github.com/jhoicas/labinventaris/internal/application/inventory"
	"github.com/jhoicas/labinventaris/internal/application/transfer"
)

// LoanHandler maneja préstamos y devoluciones.
type LoanHandler struct {
	store    *inventory.Store
	transfer *transfer.Service
}

// NewLoanHandler construye el handler.
func NewLoanHandler(store *inventory.Store, transfer *transfer.Service) *LoanHandler {
	return &LoanHandler{store: store, transfer: transfer}
}

// List godoc
// @Summary      Listar préstamos con estado calculado
// @Tags         loans
// @Produce      json
// @Param        status  query  string  false  "Semua | Dipinjam | Dikembalikan | Terlambat"
// @Param        q       query  string  false  "Búsqueda por ítem, prestatario o NIM/NIP"
// @Param        from    query  string  false  "Fecha de préstamo desde (YYYY-MM-DD)"
// @Param        to      query  string  false  "Fecha de préstamo hasta, inclusiva (YYYY-MM-DD)"
// @Success      200     {array}   dto.LoanResponse
// @Failure      400     {object}  dto.ErrorResponse
// @Router       /api/loans [get]
func (h *LoanHandler) List(c *fiber.Ctx) error {
	filter, ok, err := h.filter(c)
	if !ok {
		return err
	}
	return c.JSON(dto.LoansFromViews(h.store.LoanViews(filter, h.store.Now())))
}

// Borrow godoc
// @Summary      Registrar préstamo
// @Tags         loans
// @Accept       json
// @Produce      json
// @Param        body  body  dto.BorrowRequest  true  "Datos del préstamo"
// @Success      201   {object}  dto.MutationResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse  "Stock insuficiente"
// @Router       /api/loans [post]
func (h *LoanHandler) Borrow(c *fiber.Ctx) error {
	var in dto.BorrowRequest
	if ok, err := bindJSON(c, &in); !ok {
		return err
	}
	due, err := dto.ParseDate(in.DueDate, h.store.Session().Location)
	if err != nil {
		return invalidBody(c)
	}
	o, err := h.store.BorrowItem(c.UserContext(), inventory.BorrowRequest{
		ItemID:      in.ItemID,
		Borrower:    in.Borrower,
		BorrowerID:  in.BorrowerID,
		IDCardImage: in.IDCardImage,
		Quantity:    in.Quantity,
		DueDate:     due,
	})
	if err != nil {
		return writeError(c, err)
	}
	return mutationResult(c, o, fiber.StatusCreated, "ítem no encontrado")
}

// Return godoc
// @Summary      Registrar devolución
// @Tags         loans
// @Produce      json
// @Param        id   path  string  true  "ID del préstamo"
// @Success      200  {object}  dto.MutationResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse  "Ya devuelto"
// @Router       /api/loans/{id}/return [post]
func (h *LoanHandler) Return(c *fiber.Ctx) error {
	o, err := h.store.MarkLoanReturned(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return mutationResult(c, o, fiber.StatusOK, "préstamo no encontrado")
}

// Delete godoc
// @Summary      Eliminar préstamo (no repone stock)
// @Tags         loans
// @Produce      json
// @Param        id   path  string  true  "ID del préstamo"
// @Success      200  {object}  dto.MutationResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/loans/{id} [delete]
func (h *LoanHandler) Delete(c *fiber.Ctx) error {
	o, err := h.store.DeleteLoan(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return mutationResult(c, o, fiber.StatusOK, "préstamo no encontrado")
}

// Export godoc
// @Summary      Exportar préstamos
// @Tags         loans
// @Produce      text/csv
// @Param        format  query  string  false  "csv | xlsx | pdf"  default(csv)
// @Param        status  query  string  false  "Mismo filtro que el listado"
// @Success      200
// @Failure      415  {object}  dto.ErrorResponse
// @Router       /api/loans/export [get]
func (h *LoanHandler) Export(c *fiber.Ctx) error {
	f, err := transfer.ParseFormat(c.Query("format"))
	if err != nil {
		return writeError(c, err)
	}
	filter, ok, err := h.filter(c)
	if !ok {
		return err
	}
	var buf bytes.Buffer
	name, err := h.transfer.ExportLoans(c.UserContext(), &buf, f, filter)
	if err != nil {
		return writeError(c, err)
	}
	c.Attachment(name)
	c.Set(fiber.HeaderContentType, f.ContentType())
	return c.Send(buf.Bytes())
}

// filter lee y valida los filtros de la query. Si falla ya respondió.
func (h *LoanHandler) filter(c *fiber.Ctx) (inventory.LoanFilter, bool, error) {
	var q dto.LoanListQuery
	if ok, err := bindQuery(c, &q); !ok {
		return inventory.LoanFilter{}, false, err
	}
	loc := h.store.Session().Location
	from, err := dto.ParseDate(q.From, loc)
	if err != nil {
		return inventory.LoanFilter{}, false, invalidBody(c)
	}
	to, err := dto.ParseDate(q.To, loc)
	if err != nil {
		return inventory.LoanFilter{}, false, invalidBody(c)
	}
	return inventory.LoanFilter{Status: q.Status, Search: q.Q, From: from, To: to}, true, nil
}
