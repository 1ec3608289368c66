// Package pdf genera los reportes de inventario y préstamos con Maroto v2.
//
// Layout de la página A4 (horizontal):
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Título del reporte      │  Fecha de generación     │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: cabecera con fondo + una fila por registro          │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RESUMEN: totales                                           │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/orientation"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/labinventaris/internal/application/transfer"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 19, Green: 91, Blue: 236}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorStripe  = &props.Color{Red: 243, Green: 244, Blue: 246}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoReportGenerator implementa transfer.PDFRenderer usando Maroto v2.
type MarotoReportGenerator struct {
	author string
}

// NewMarotoReportGenerator construye el generador. author va en los metadatos del PDF.
func NewMarotoReportGenerator(author string) *MarotoReportGenerator {
	return &MarotoReportGenerator{author: author}
}

// RenderReport genera el PDF y devuelve sus bytes.
func (g *MarotoReportGenerator) RenderReport(ctx context.Context, r transfer.Report) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithOrientation(orientation.Horizontal).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(r.Title, true).
		WithAuthor(g.author, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(r))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(row.New(3))

	m.AddRows(tableHeaderRow(r.Columns))
	m.AddRows(tableRows(r.Columns, r.Rows)...)

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(footerRows(r.Footer)...)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: título y subtítulo (izq), fecha de generación (der).
func headerRow(r transfer.Report) core.Row {
	return row.New(16).Add(
		col.New(8).Add(
			text.New(r.Title, props.Text{
				Style: fontstyle.Bold, Size: 14, Color: colorPrimary, Top: 1,
			}),
			text.New(r.Subtitle, props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(4).Add(
			text.New("Dicetak: "+r.GeneratedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 2, Color: colorGray,
			}),
		),
	)
}

// tableHeaderRow: cabecera de la tabla con fondo de color.
func tableHeaderRow(cols []transfer.Column) core.Row {
	cells := make([]core.Col, 0, len(cols))
	for _, c := range cols {
		cells = append(cells, col.New(c.Width).Add(text.New(c.Header, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: alignOf(c),
			Color: colorWhite, Top: 2, Left: 1, Right: 1,
		})))
	}
	return row.New(8).Add(cells...).WithStyle(&props.Cell{BackgroundColor: colorPrimary})
}

// tableRows: una fila por registro, con franjas alternadas.
func tableRows(cols []transfer.Column, data [][]string) []core.Row {
	result := make([]core.Row, 0, len(data))
	for i, values := range data {
		cells := make([]core.Col, 0, len(cols))
		for j, c := range cols {
			v := ""
			if j < len(values) {
				v = values[j]
			}
			cells = append(cells, col.New(c.Width).Add(text.New(v, props.Text{
				Size: 8, Align: alignOf(c), Top: 1, Left: 1, Right: 1,
			})))
		}
		r := row.New(7).Add(cells...)
		if i%2 == 1 {
			r = r.WithStyle(&props.Cell{BackgroundColor: colorStripe})
		}
		result = append(result, r)
	}
	if len(data) == 0 {
		result = append(result, row.New(10).Add(col.New(12).Add(
			text.New("Tidak ada data.", props.Text{Size: 9, Align: align.Center, Top: 3, Color: colorGray}),
		)))
	}
	return result
}

// footerRows: líneas de resumen alineadas a la derecha.
func footerRows(lines []string) []core.Row {
	rows := make([]core.Row, 0, len(lines))
	for _, l := range lines {
		rows = append(rows, row.New(6).Add(
			col.New(6),
			col.New(6).Add(text.New(l, props.Text{
				Style: fontstyle.Bold, Size: 9, Align: align.Right, Top: 1, Right: 1,
			})),
		))
	}
	return rows
}

func alignOf(c transfer.Column) align.Type {
	if c.Right {
		return align.Right
	}
	return align.Left
}
