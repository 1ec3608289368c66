package transfer

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jhoicas/labinventaris/internal/domain"
	"github.com/jhoicas/labinventaris/internal/domain/entity"
)

// Cabeceras de la hoja de importación.
const (
	ColName        = "Nama Item"
	ColCategory    = "Kategori"
	ColQuantity    = "Jumlah"
	ColUnit        = "Satuan"
	ColLabName     = "Nama Lab"
	ColLab         = "Lab"
	ColLocation    = "Lokasi"
	ColDescription = "Deskripsi"
	ColSupplier    = "Supplier"
	ColSerial      = "Serial Number"
	ColAcquired    = "Tanggal Perolehan"
	ColImage       = "URL Gambar"
)

// ImportColumns orden de las columnas de la plantilla.
var ImportColumns = []string{
	ColName, ColCategory, ColQuantity, ColUnit, ColLabName, ColLocation,
	ColDescription, ColSupplier, ColSerial, ColAcquired, ColImage,
}

const defaultUnit = "pcs"

// Formatos de fecha aceptados en "Tanggal Perolehan". Excel suele entregar mm-dd-yy.
var dateLayouts = []string{"2006-01-02", "02/01/2006", "2/1/2006", "01-02-06", "1/2/06"}

// MapRows convierte filas de la hoja en ítems nuevos. Una fila sin nombre o sin
// cantidad rechaza el lote completo; el error indica la fila (1 = primera fila de datos).
func MapRows(rows []Row, labs []entity.Lab, today time.Time) ([]entity.NewItem, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("archivo sin filas de datos: %w", domain.ErrInvalidInput)
	}
	if len(labs) == 0 {
		return nil, fmt.Errorf("no hay laboratorios para asignar los ítems: %w", domain.ErrInvalidInput)
	}
	byName := make(map[string]string, len(labs))
	for _, l := range labs {
		byName[l.Name] = l.ID
	}

	out := make([]entity.NewItem, 0, len(rows))
	for i, row := range rows {
		name, qty := row.Get(ColName), row.Get(ColQuantity)
		if name == "" || qty == "" {
			return nil, fmt.Errorf("fila %d: kolom %q dan %q wajib diisi: %w", i+1, ColName, ColQuantity, domain.ErrInvalidInput)
		}

		quantity, err := parseQuantity(qty)
		if err != nil {
			return nil, fmt.Errorf("fila %d: %q: %w", i+1, ColQuantity, err)
		}

		labName := row.Get(ColLabName)
		if labName == "" {
			labName = row.Get(ColLab)
		}
		labID, ok := byName[labName]
		if !ok {
			labID = labs[0].ID
		}

		category, ok := entity.ParseCategory(row.Get(ColCategory))
		if !ok {
			category = entity.CategoryEquipment
		}

		unit := row.Get(ColUnit)
		if unit == "" {
			unit = defaultUnit
		}

		acquired := today
		if s := row.Get(ColAcquired); s != "" {
			d, err := parseDate(s, today.Location())
			if err != nil {
				return nil, fmt.Errorf("fila %d: %q: %w", i+1, ColAcquired, err)
			}
			acquired = d
		}

		out = append(out, entity.NewItem{
			LabID:           labID,
			Name:            name,
			Category:        category,
			Quantity:        quantity,
			Unit:            unit,
			Location:        row.Get(ColLocation),
			Description:     row.Get(ColDescription),
			Supplier:        row.Get(ColSupplier),
			SerialNumber:    row.Get(ColSerial),
			AcquisitionDate: &acquired,
			Image:           row.Get(ColImage),
		})
	}
	return out, nil
}

// parseQuantity toma el entero inicial ("12 unit" -> 12). Sin dígitos devuelve 0; un
// número fuera de rango es error.
func parseQuantity(s string) (int, error) {
	s = strings.TrimSpace(s)
	start := 0
	if start < len(s) && (s[start] == '-' || s[start] == '+') {
		start++
	}
	end := start
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == start {
		return 0, nil
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0, fmt.Errorf("cantidad fuera de rango %q: %w", s[:end], domain.ErrInvalidInput)
	}
	return n, nil
}

func parseDate(s string, loc *time.Location) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("fecha no reconocida %q: %w", s, domain.ErrInvalidInput)
}
