package transfer

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/jhoicas/labinventaris/internal/application/inventory"
	"github.com/jhoicas/labinventaris/internal/domain/entity"
)

// Inventory lo que importación y exportación necesitan del store.
type Inventory interface {
	Items() []entity.Item
	Labs() []entity.Lab
	LoanViews(f inventory.LoanFilter, now time.Time) []inventory.LoanView
	ImportItems(ctx context.Context, rows []entity.NewItem) (*inventory.Outcome, error)
	Now() time.Time
	Session() inventory.Session
}

// Service casos de uso de importación y exportación sobre el store.
type Service struct {
	inv      Inventory
	exporter *Exporter
}

// NewService construye el servicio.
func NewService(inv Inventory, exporter *Exporter) *Service {
	return &Service{inv: inv, exporter: exporter}
}

// ImportResult resultado de una importación.
type ImportResult struct {
	Rows    int
	Outcome *inventory.Outcome
}

// Import lee el archivo, mapea las filas y las agrega al store como un solo lote.
// Un error de persistencia se devuelve junto con el resultado (el lote ya está en memoria).
func (s *Service) Import(ctx context.Context, filename string, r io.Reader, enc string) (*ImportResult, error) {
	rows, err := Read(filename, r, enc)
	if err != nil {
		return nil, err
	}
	session := s.inv.Session()
	today := session.Today(s.inv.Now())
	items, err := MapRows(rows, s.inv.Labs(), today)
	if err != nil {
		return nil, err
	}
	o, err := s.inv.ImportItems(ctx, items)
	if o == nil {
		return nil, err
	}
	return &ImportResult{Rows: len(items), Outcome: o}, err
}

// Template escribe la plantilla de importación usando el primer laboratorio como ejemplo.
func (s *Service) Template(w io.Writer) error {
	labName := ""
	if labs := s.inv.Labs(); len(labs) > 0 {
		labName = labs[0].Name
	}
	return Template(w, labName)
}

// ExportItems escribe el inventario y devuelve el nombre de archivo sugerido.
func (s *Service) ExportItems(ctx context.Context, w io.Writer, f Format) (string, error) {
	now := s.inv.Now().In(s.inv.Session().Location)
	if err := s.exporter.Items(ctx, w, f, s.inv.Items(), s.inv.Labs(), now); err != nil {
		return "", fmt.Errorf("exportar inventario: %w", err)
	}
	return ItemsFilename(f, now), nil
}

// ExportLoans escribe los préstamos que cumplen filter y devuelve el nombre de archivo sugerido.
func (s *Service) ExportLoans(ctx context.Context, w io.Writer, f Format, filter inventory.LoanFilter) (string, error) {
	now := s.inv.Now().In(s.inv.Session().Location)
	if err := s.exporter.Loans(ctx, w, f, s.inv.LoanViews(filter, now), now); err != nil {
		return "", fmt.Errorf("exportar préstamos: %w", err)
	}
	return LoansFilename(f, now), nil
}
