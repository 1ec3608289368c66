package transfer

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/jhoicas/labinventaris/internal/application/inventory"
	"github.com/jhoicas/labinventaris/internal/domain"
	"github.com/jhoicas/labinventaris/internal/domain/entity"
)

// Format formato de exportación.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
	FormatPDF  Format = "pdf"
)

// ParseFormat valida el formato pedido; vacío equivale a CSV.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return FormatCSV, nil
	case FormatCSV, FormatXLSX, FormatPDF:
		return f, nil
	default:
		return "", fmt.Errorf("formato %q: %w", s, domain.ErrUnsupportedFormat)
	}
}

// ContentType tipo MIME de la descarga.
func (f Format) ContentType() string {
	switch f {
	case FormatXLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case FormatPDF:
		return "application/pdf"
	default:
		return "text/csv; charset=utf-8"
	}
}

// ItemsFilename ej: ekspor_inventaris_2024-03-14.csv
func ItemsFilename(f Format, now time.Time) string {
	return fmt.Sprintf("ekspor_inventaris_%s.%s", now.Format("2006-01-02"), f)
}

// LoansFilename ej: ekspor_peminjaman_2024-03-14.xlsx
func LoansFilename(f Format, now time.Time) string {
	return fmt.Sprintf("ekspor_peminjaman_%s.%s", now.Format("2006-01-02"), f)
}

// UnknownLab texto para ítems cuyo laboratorio ya no existe.
const UnknownLab = "Lab Tidak Diketahui"

// ItemColumns cabecera de la exportación de inventario.
var ItemColumns = []string{"Nama Item", "Kategori", "Kuantitas", "Satuan", "Status", "Nama Lab", "Lokasi", "Tanggal Perolehan"}

// LoanColumns cabecera de la exportación de préstamos.
var LoanColumns = []string{"ID Peminjaman", "Nama Item", "Peminjam", "NIM/NIP", "Jumlah", "Tanggal Pinjam", "Jatuh Tempo", "Tanggal Kembali", "Status"}

// Column columna de un reporte PDF. Width en unidades de la grilla de 12.
type Column struct {
	Header string
	Width  int
	Right  bool
}

// Report tabla genérica que el renderizador PDF dibuja.
type Report struct {
	Title       string
	Subtitle    string
	Columns     []Column
	Rows        [][]string
	Footer      []string
	GeneratedAt time.Time
}

// PDFRenderer genera el documento PDF de un reporte.
type PDFRenderer interface {
	RenderReport(ctx context.Context, r Report) ([]byte, error)
}

// Exporter escribe inventario y préstamos en el formato pedido.
type Exporter struct {
	pdf     PDFRenderer
	printer *message.Printer
}

// NewExporter construye el exportador. pdf puede ser nil si no se exporta a PDF.
func NewExporter(pdf PDFRenderer) *Exporter {
	return &Exporter{pdf: pdf, printer: message.NewPrinter(language.Indonesian)}
}

// Items exporta el inventario.
func (e *Exporter) Items(ctx context.Context, w io.Writer, f Format, items []entity.Item, labs []entity.Lab, now time.Time) error {
	names := make(map[string]string, len(labs))
	for _, l := range labs {
		names[l.ID] = l.Name
	}
	labName := func(id string) string {
		if n, ok := names[id]; ok {
			return n
		}
		return UnknownLab
	}

	switch f {
	case FormatCSV:
		rows := make([][]string, 0, len(items))
		for _, it := range items {
			rows = append(rows, []string{
				it.Name, string(it.Category), strconv.Itoa(it.Quantity), it.Unit,
				string(it.Status), labName(it.LabID), it.Location, dateOrEmpty(it.AcquisitionDate),
			})
		}
		return writeCSV(w, ItemColumns, rows)
	case FormatXLSX:
		rows := make([][]any, 0, len(items))
		for _, it := range items {
			rows = append(rows, []any{
				it.Name, string(it.Category), it.Quantity, it.Unit,
				string(it.Status), labName(it.LabID), it.Location, dateOrEmpty(it.AcquisitionDate),
			})
		}
		return writeSheet(w, "Inventaris", ItemColumns, rows)
	case FormatPDF:
		units := 0
		rows := make([][]string, 0, len(items))
		for _, it := range items {
			units += it.Quantity
			rows = append(rows, []string{
				it.Name, string(it.Category), e.printer.Sprintf("%d", it.Quantity) + " " + it.Unit,
				string(it.Status), labName(it.LabID), it.Location,
			})
		}
		return e.renderPDF(ctx, w, Report{
			Title:    "Laporan Inventaris Laboratorium",
			Subtitle: "Per " + now.Format("02/01/2006 15:04"),
			Columns: []Column{
				{Header: "Nama Item", Width: 3}, {Header: "Kategori", Width: 2},
				{Header: "Kuantitas", Width: 1, Right: true}, {Header: "Status", Width: 2},
				{Header: "Nama Lab", Width: 2}, {Header: "Lokasi", Width: 2},
			},
			Rows: rows,
			Footer: []string{
				e.printer.Sprintf("Total item: %d", len(items)),
				e.printer.Sprintf("Total unit: %d", units),
			},
			GeneratedAt: now,
		})
	default:
		return fmt.Errorf("formato %q: %w", f, domain.ErrUnsupportedFormat)
	}
}

// Loans exporta los préstamos con su estado calculado.
func (e *Exporter) Loans(ctx context.Context, w io.Writer, f Format, loans []inventory.LoanView, now time.Time) error {
	switch f {
	case FormatCSV:
		rows := make([][]string, 0, len(loans))
		for _, l := range loans {
			rows = append(rows, []string{
				l.ID, l.ItemName, l.Borrower, l.BorrowerID, strconv.Itoa(l.QuantityBorrowed),
				l.BorrowDate.Format("2006-01-02"), l.DueDate.Format("2006-01-02"),
				dateOrEmpty(l.ReturnDate), string(l.DisplayStatus),
			})
		}
		return writeCSV(w, LoanColumns, rows)
	case FormatXLSX:
		rows := make([][]any, 0, len(loans))
		for _, l := range loans {
			rows = append(rows, []any{
				l.ID, l.ItemName, l.Borrower, l.BorrowerID, l.QuantityBorrowed,
				l.BorrowDate.Format("2006-01-02"), l.DueDate.Format("2006-01-02"),
				dateOrEmpty(l.ReturnDate), string(l.DisplayStatus),
			})
		}
		return writeSheet(w, "Peminjaman", LoanColumns, rows)
	case FormatPDF:
		overdue := 0
		rows := make([][]string, 0, len(loans))
		for _, l := range loans {
			if l.Overdue {
				overdue++
			}
			rows = append(rows, []string{
				l.ItemName, l.Borrower, e.printer.Sprintf("%d", l.QuantityBorrowed),
				l.BorrowDate.Format("02/01/2006"), l.DueDate.Format("02/01/2006"), string(l.DisplayStatus),
			})
		}
		return e.renderPDF(ctx, w, Report{
			Title:    "Laporan Peminjaman",
			Subtitle: "Per " + now.Format("02/01/2006 15:04"),
			Columns: []Column{
				{Header: "Nama Item", Width: 3}, {Header: "Peminjam", Width: 3},
				{Header: "Jumlah", Width: 1, Right: true}, {Header: "Pinjam", Width: 2},
				{Header: "Jatuh Tempo", Width: 2}, {Header: "Status", Width: 1},
			},
			Rows: rows,
			Footer: []string{
				e.printer.Sprintf("Total peminjaman: %d", len(loans)),
				e.printer.Sprintf("Terlambat: %d", overdue),
			},
			GeneratedAt: now,
		})
	default:
		return fmt.Errorf("formato %q: %w", f, domain.ErrUnsupportedFormat)
	}
}

func (e *Exporter) renderPDF(ctx context.Context, w io.Writer, r Report) error {
	if e.pdf == nil {
		return fmt.Errorf("pdf no configurado: %w", domain.ErrUnsupportedFormat)
	}
	b, err := e.pdf.RenderReport(ctx, r)
	if err != nil {
		return fmt.Errorf("generar pdf: %w", err)
	}
	_, err = w.Write(b)
	return err
}

func writeCSV(w io.Writer, header []string, rows [][]string) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return err
	}
	if err := cw.WriteAll(rows); err != nil {
		return fmt.Errorf("escribir csv: %w", err)
	}
	return nil
}

func dateOrEmpty(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("2006-01-02")
}
