// Package sqlpatch traduce los patches del dominio a sentencias UPDATE parciales,
// compartido por los gateways postgres y sqlite.
package sqlpatch

import (
	"fmt"
	"strings"

	"github.com/jhoicas/labinventaris/internal/domain/entity"
)

// Assignment una columna del SET.
type Assignment struct {
	Column string
	Value  any
}

// Dialect diferencias de placeholder y de representación de valores entre motores.
type Dialect struct {
	// Placeholder devuelve el placeholder del argumento n (1-based).
	Placeholder func(n int) string
	// Bind convierte el valor antes de enviarlo (p. ej. fechas a TEXT en sqlite). Puede ser nil.
	Bind func(v any) any
}

// Postgres usa $1, $2...
var Postgres = Dialect{Placeholder: func(n int) string { return fmt.Sprintf("$%d", n) }}

// Update arma `UPDATE table SET a = $1, b = $2 WHERE id = $3`. ok=false si no hay columnas.
func Update(d Dialect, table string, set []Assignment, id string) (query string, args []any, ok bool) {
	if len(set) == 0 {
		return "", nil, false
	}
	cols := make([]string, 0, len(set))
	args = make([]any, 0, len(set)+1)
	for i, a := range set {
		cols = append(cols, fmt.Sprintf("%s = %s", a.Column, d.Placeholder(i+1)))
		v := a.Value
		if d.Bind != nil {
			v = d.Bind(v)
		}
		args = append(args, v)
	}
	args = append(args, id)
	query = fmt.Sprintf("UPDATE %s SET %s WHERE id = %s", table, strings.Join(cols, ", "), d.Placeholder(len(set)+1))
	return query, args, true
}

// Item columnas de un ItemPatch, en orden estable.
func Item(p entity.ItemPatch) []Assignment {
	var set []Assignment
	add := func(col string, v any) { set = append(set, Assignment{Column: col, Value: v}) }
	if p.LabID != nil {
		add("lab_id", *p.LabID)
	}
	if p.Name != nil {
		add("name", *p.Name)
	}
	if p.Category != nil {
		add("category", string(*p.Category))
	}
	if p.Quantity != nil {
		add("quantity", *p.Quantity)
	}
	if p.Unit != nil {
		add("unit", *p.Unit)
	}
	if p.Location != nil {
		add("location", *p.Location)
	}
	if p.Status != nil {
		add("status", string(*p.Status))
	}
	if p.Description != nil {
		add("description", *p.Description)
	}
	if p.Supplier != nil {
		add("supplier", *p.Supplier)
	}
	if p.SerialNumber != nil {
		add("serial_number", *p.SerialNumber)
	}
	if p.AcquisitionDate != nil {
		add("acquisition_date", *p.AcquisitionDate)
	}
	if p.Image != nil {
		add("image", *p.Image)
	}
	return set
}

// Loan columnas de un LoanPatch.
func Loan(p entity.LoanPatch) []Assignment {
	var set []Assignment
	if p.Status != nil {
		set = append(set, Assignment{"status", string(*p.Status)})
	}
	if p.ReturnDate != nil {
		set = append(set, Assignment{"return_date", *p.ReturnDate})
	}
	if p.DueDate != nil {
		set = append(set, Assignment{"due_date", *p.DueDate})
	}
	return set
}

// Lab columnas de un LabPatch.
func Lab(p entity.LabPatch) []Assignment {
	var set []Assignment
	if p.Name != nil {
		set = append(set, Assignment{"name", *p.Name})
	}
	if p.Location != nil {
		set = append(set, Assignment{"location", *p.Location})
	}
	if p.Description != nil {
		set = append(set, Assignment{"description", *p.Description})
	}
	if p.Image != nil {
		set = append(set, Assignment{"image", *p.Image})
	}
	return set
}
