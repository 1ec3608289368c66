// Package transfer importa y exporta el inventario en CSV, XLSX y PDF.
package transfer

import (
	"encoding/csv"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/labinventaris/internal/domain"
)

// Row fila de una hoja indexada por el texto de su cabecera.
type Row map[string]string

// Get devuelve el valor sin espacios alrededor.
func (r Row) Get(header string) string { return strings.TrimSpace(r[header]) }

// decoders codificaciones heredadas aceptadas para CSV.
var decoders = map[string]*charmap.Charmap{
	"windows-1252": charmap.Windows1252,
	"cp1252":       charmap.Windows1252,
	"iso-8859-1":   charmap.ISO8859_1,
	"latin1":       charmap.ISO8859_1,
	"iso-8859-15":  charmap.ISO8859_15,
}

func decoder(name string) (*encoding.Decoder, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" || name == "utf-8" || name == "utf8" {
		return nil, nil
	}
	cm, ok := decoders[name]
	if !ok {
		return nil, fmt.Errorf("codificación %q: %w", name, domain.ErrUnsupportedFormat)
	}
	return cm.NewDecoder(), nil
}

// Read elige el lector según la extensión del archivo (.csv, .xlsx).
// enc solo aplica a CSV; vacío equivale a UTF-8.
func Read(filename string, r io.Reader, enc string) ([]Row, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv":
		return ReadCSV(r, enc)
	case ".xlsx":
		return ReadXLSX(r)
	default:
		return nil, fmt.Errorf("archivo %q: %w", filename, domain.ErrUnsupportedFormat)
	}
}

// ReadCSV lee un CSV con cabecera. Acepta coma o punto y coma como separador.
func ReadCSV(r io.Reader, enc string) ([]Row, error) {
	dec, err := decoder(enc)
	if err != nil {
		return nil, err
	}
	if dec != nil {
		r = transform.NewReader(r, dec)
	}
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("leer csv: %w", err)
	}
	text := strings.TrimPrefix(string(raw), "\ufeff")

	cr := csv.NewReader(strings.NewReader(text))
	cr.Comma = sniffComma(text)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("leer csv: %v: %w", err, domain.ErrInvalidInput)
	}
	return toRows(records), nil
}

// sniffComma usa ';' cuando la cabecera lo tiene y no tiene comas (Excel en locales con coma decimal).
func sniffComma(text string) rune {
	header, _, _ := strings.Cut(text, "\n")
	if strings.Contains(header, ";") && !strings.Contains(header, ",") {
		return ';'
	}
	return ','
}

// ReadXLSX lee la primera hoja del libro.
func ReadXLSX(r io.Reader) ([]Row, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("abrir xlsx: %v: %w", err, domain.ErrInvalidInput)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("xlsx sin hojas: %w", domain.ErrInvalidInput)
	}
	records, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("leer hoja %q: %w", sheets[0], err)
	}
	return toRows(records), nil
}

// toRows convierte registros con cabecera en filas. Las filas vacías se descartan.
func toRows(records [][]string) []Row {
	if len(records) == 0 {
		return nil
	}
	header := make([]string, len(records[0]))
	for i, h := range records[0] {
		header[i] = strings.TrimSpace(h)
	}
	rows := make([]Row, 0, len(records)-1)
	for _, rec := range records[1:] {
		row := make(Row, len(header))
		empty := true
		for i, h := range header {
			if h == "" || i >= len(rec) {
				continue
			}
			row[h] = rec[i]
			if strings.TrimSpace(rec[i]) != "" {
				empty = false
			}
		}
		if !empty {
			rows = append(rows, row)
		}
	}
	return rows
}
