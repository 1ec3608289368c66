package transfer

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

// TemplateFilename nombre de descarga de la plantilla de importación.
const TemplateFilename = "template_import_inventaris.xlsx"

const templateSheet = "Template"

// Template escribe la plantilla XLSX de importación con una fila de ejemplo.
// labName aparece en la columna "Nama Lab" del ejemplo.
func Template(w io.Writer, labName string) error {
	if labName == "" {
		labName = "Lab Manufaktur"
	}
	example := []any{
		"Contoh Item", "Peralatan", 10, "pcs", labName, "Rak A1",
		"Deskripsi item...", "PT. Contoh", "SN12345", "2023-01-01", "",
	}
	return writeSheet(w, templateSheet, ImportColumns, [][]any{example})
}

// writeSheet crea un libro de una hoja con cabecera en negrita.
func writeSheet(w io.Writer, sheet string, header []string, rows [][]any) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return fmt.Errorf("xlsx: renombrar hoja: %w", err)
	}
	head := make([]any, len(header))
	for i, h := range header {
		head[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &head); err != nil {
		return fmt.Errorf("xlsx: cabecera: %w", err)
	}
	for i, r := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &r); err != nil {
			return fmt.Errorf("xlsx: fila %d: %w", i+1, err)
		}
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("xlsx: estilo: %w", err)
	}
	if err := f.SetRowStyle(sheet, 1, 1, bold); err != nil {
		return fmt.Errorf("xlsx: estilo cabecera: %w", err)
	}
	last, err := excelize.ColumnNumberToName(len(header))
	if err != nil {
		return err
	}
	if err := f.SetColWidth(sheet, "A", last, 18); err != nil {
		return fmt.Errorf("xlsx: ancho de columnas: %w", err)
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("xlsx: escribir: %w", err)
	}
	return nil
}
