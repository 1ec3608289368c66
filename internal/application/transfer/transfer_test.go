package transfer_test

import (
	"bytes"
	"context"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/labinventaris/internal/application/inventory"
	"github.com/jhoicas/labinventaris/internal/application/transfer"
	"github.com/jhoicas/labinventaris/internal/domain"
	"github.com/jhoicas/labinventaris/internal/domain/entity"
	"github.com/jhoicas/labinventaris/internal/infrastructure/memory"
)

var (
	wib   = time.FixedZone("WIB", 7*3600)
	now   = time.Date(2024, 3, 14, 8, 30, 0, 0, wib)
	today = time.Date(2024, 3, 14, 0, 0, 0, 0, wib)
	labs  = []entity.Lab{{ID: "LAB-01", Name: "Lab Kimia"}, {ID: "LAB-02", Name: "Lab Fisika"}}
)

// ──────────────────────────────────────────────────────────────────────────────
// Lectura
// ──────────────────────────────────────────────────────────────────────────────

func TestReadCSV_Windows1252YPuntoYComa(t *testing.T) {
	raw := []byte("Nama Item;Jumlah;Lokasi\nCawan Petri;12;Rak \xc9\n;;\n")
	rows, err := transfer.ReadCSV(bytes.NewReader(raw), "windows-1252")
	require.NoError(t, err)
	require.Len(t, rows, 1, "las filas vacías se descartan")
	assert.Equal(t, "Cawan Petri", rows[0].Get("Nama Item"))
	assert.Equal(t, "12", rows[0].Get("Jumlah"))
	assert.Equal(t, "Rak É", rows[0].Get("Lokasi"))
}

func TestReadCSV_CodificacionDesconocida(t *testing.T) {
	_, err := transfer.ReadCSV(strings.NewReader("a\n1\n"), "ebcdic")
	assert.ErrorIs(t, err, domain.ErrUnsupportedFormat)
}

func TestRead_ExtensionNoSoportada(t *testing.T) {
	_, err := transfer.Read("datos.ods", strings.NewReader(""), "")
	assert.ErrorIs(t, err, domain.ErrUnsupportedFormat)
}

func TestTemplate_SeLeeComoXLSX(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, transfer.Template(&buf, "Lab Kimia"))

	rows, err := transfer.ReadXLSX(&buf)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Contoh Item", rows[0].Get(transfer.ColName))
	assert.Equal(t, "10", rows[0].Get(transfer.ColQuantity))
	assert.Equal(t, "Lab Kimia", rows[0].Get(transfer.ColLabName))
}

// ──────────────────────────────────────────────────────────────────────────────
// Mapeo
// ──────────────────────────────────────────────────────────────────────────────

func TestMapRows_ValoresPorDefecto(t *testing.T) {
	rows := []transfer.Row{
		{"Nama Item": "Multimeter", "Jumlah": "7", "Kategori": "Elektronik", "Nama Lab": "Lab Fisika", "Tanggal Perolehan": "2023-01-01"},
		{"Nama Item": "Sarung Tangan", "Jumlah": "abc", "Kategori": "Desconocida", "Lab": "Lab Inexistente"},
		{"Nama Item": "Kabel", "Jumlah": "12 roll", "Satuan": "roll", "Lab": "Lab Fisika"},
	}
	items, err := transfer.MapRows(rows, labs, today)
	require.NoError(t, err)
	require.Len(t, items, 3)

	assert.Equal(t, entity.CategoryElectronics, items[0].Category)
	assert.Equal(t, "LAB-02", items[0].LabID)
	assert.Equal(t, 7, items[0].Quantity)
	assert.Equal(t, "pcs", items[0].Unit)
	require.NotNil(t, items[0].AcquisitionDate)
	assert.Equal(t, "2023-01-01", items[0].AcquisitionDate.Format("2006-01-02"))

	assert.Equal(t, entity.CategoryEquipment, items[1].Category, "categoría desconocida cae en Peralatan")
	assert.Equal(t, "LAB-01", items[1].LabID, "laboratorio desconocido cae en el primero")
	assert.Equal(t, 0, items[1].Quantity)
	assert.True(t, items[1].AcquisitionDate.Equal(today))

	assert.Equal(t, "LAB-02", items[2].LabID, "la columna Lab sirve de alternativa")
	assert.Equal(t, 12, items[2].Quantity)
	assert.Equal(t, "roll", items[2].Unit)
}

func TestMapRows_FilaIncompletaRechazaTodo(t *testing.T) {
	rows := []transfer.Row{
		{"Nama Item": "Multimeter", "Jumlah": "7"},
		{"Nama Item": "Sin cantidad"},
	}
	items, err := transfer.MapRows(rows, labs, today)
	assert.Nil(t, items)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Contains(t, err.Error(), "fila 2")
}

func TestMapRows_CantidadFueraDeRangoRechazaTodo(t *testing.T) {
	rows := []transfer.Row{
		{"Nama Item": "Multimeter", "Jumlah": "7"},
		{"Nama Item": "Resistor", "Jumlah": "99999999999999999999"},
	}
	items, err := transfer.MapRows(rows, labs, today)
	assert.Nil(t, items)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Contains(t, err.Error(), "fila 2")
}

func TestMapRows_SinLaboratorios(t *testing.T) {
	_, err := transfer.MapRows([]transfer.Row{{"Nama Item": "X", "Jumlah": "1"}}, nil, today)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// Exportación
// ──────────────────────────────────────────────────────────────────────────────

func TestParseFormatYNombres(t *testing.T) {
	f, err := transfer.ParseFormat("")
	require.NoError(t, err)
	assert.Equal(t, transfer.FormatCSV, f)

	f, err = transfer.ParseFormat("XLSX")
	require.NoError(t, err)
	assert.Equal(t, transfer.FormatXLSX, f)

	_, err = transfer.ParseFormat("docx")
	assert.ErrorIs(t, err, domain.ErrUnsupportedFormat)

	assert.Equal(t, "ekspor_inventaris_2024-03-14.csv", transfer.ItemsFilename(transfer.FormatCSV, now))
	assert.Equal(t, "ekspor_peminjaman_2024-03-14.pdf", transfer.LoansFilename(transfer.FormatPDF, now))
}

func TestExporterItems_CSV(t *testing.T) {
	acq := time.Date(2023, 1, 1, 0, 0, 0, 0, wib)
	items := []entity.Item{
		{Name: `Gelas "Ukur"`, Category: entity.CategoryTool, Quantity: 3, Unit: "pcs", Status: entity.ItemStatusLowStock, LabID: "LAB-01", Location: "Rak 1", AcquisitionDate: &acq},
		{Name: "Huérfano", Category: entity.CategoryMaterial, Quantity: 0, Unit: "kg", Status: entity.ItemStatusOutOfStock, LabID: "LAB-99"},
	}
	var buf bytes.Buffer
	require.NoError(t, transfer.NewExporter(nil).Items(context.Background(), &buf, transfer.FormatCSV, items, labs, now))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, transfer.ItemColumns, records[0])
	assert.Equal(t, []string{`Gelas "Ukur"`, "Alat", "3", "pcs", "Stok Rendah", "Lab Kimia", "Rak 1", "2023-01-01"}, records[1])
	assert.Equal(t, transfer.UnknownLab, records[2][5])
	assert.Equal(t, "", records[2][7])
}

func TestExporterItems_XLSXSeReleeConLasMismasCabeceras(t *testing.T) {
	items := []entity.Item{{Name: "Oven", Category: entity.CategoryMachinery, Quantity: 2, Unit: "unit", Status: entity.ItemStatusLowStock, LabID: "LAB-02"}}
	var buf bytes.Buffer
	require.NoError(t, transfer.NewExporter(nil).Items(context.Background(), &buf, transfer.FormatXLSX, items, labs, now))

	rows, err := transfer.ReadXLSX(&buf)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Oven", rows[0].Get("Nama Item"))
	assert.Equal(t, "2", rows[0].Get("Kuantitas"))
	assert.Equal(t, "Lab Fisika", rows[0].Get("Nama Lab"))
}

type fakePDF struct{ got transfer.Report }

func (f *fakePDF) RenderReport(_ context.Context, r transfer.Report) ([]byte, error) {
	f.got = r
	return []byte("%PDF-fake"), nil
}

func TestExporterItems_PDFUsaSeparadorDeMiles(t *testing.T) {
	pdf := &fakePDF{}
	items := []entity.Item{
		{Name: "Baut", Quantity: 1500, Unit: "pcs", LabID: "LAB-01"},
		{Name: "Mur", Quantity: 250, Unit: "pcs", LabID: "LAB-01"},
	}
	var buf bytes.Buffer
	require.NoError(t, transfer.NewExporter(pdf).Items(context.Background(), &buf, transfer.FormatPDF, items, labs, now))

	assert.Equal(t, "%PDF-fake", buf.String())
	require.Len(t, pdf.got.Rows, 2)
	assert.Equal(t, "1.500 pcs", pdf.got.Rows[0][2])
	assert.Contains(t, pdf.got.Footer, "Total unit: 1.750")
	width := 0
	for _, c := range pdf.got.Columns {
		width += c.Width
	}
	assert.Equal(t, 12, width)
}

func TestExporter_PDFSinRenderizador(t *testing.T) {
	var buf bytes.Buffer
	err := transfer.NewExporter(nil).Loans(context.Background(), &buf, transfer.FormatPDF, nil, now)
	assert.ErrorIs(t, err, domain.ErrUnsupportedFormat)
}

// ──────────────────────────────────────────────────────────────────────────────
// Service sobre el store
// ──────────────────────────────────────────────────────────────────────────────

func newService(t *testing.T) (*transfer.Service, *inventory.Store) {
	t.Helper()
	ctx := context.Background()
	gw := memory.NewGateway()
	for i := range labs {
		require.NoError(t, gw.Labs.Create(ctx, &labs[i]))
	}
	store := inventory.NewStore(gw, inventory.Session{Location: wib}, inventory.WithClock(func() time.Time { return now }))
	require.NoError(t, store.Load(ctx))
	return transfer.NewService(store, transfer.NewExporter(&fakePDF{})), store
}

func TestService_ImportYExport(t *testing.T) {
	svc, store := newService(t)
	ctx := context.Background()

	csvIn := "Nama Item,Jumlah,Nama Lab\nPipet,4,Lab Fisika\nBuret,9,Lab Kimia\n"
	res, err := svc.Import(ctx, "lote.csv", strings.NewReader(csvIn), "")
	require.NoError(t, err)
	assert.Equal(t, 2, res.Rows)
	assert.True(t, res.Outcome.Persisted)

	items := store.Items()
	require.Len(t, items, 2)
	assert.Equal(t, "Pipet", items[0].Name, "la primera fila queda primero")
	assert.Equal(t, entity.ItemStatusLowStock, items[0].Status)
	assert.Equal(t, "Import data: 2 item ditambahkan", store.Logs()[0].Action)

	var out bytes.Buffer
	name, err := svc.ExportItems(ctx, &out, transfer.FormatCSV)
	require.NoError(t, err)
	assert.Equal(t, "ekspor_inventaris_2024-03-14.csv", name)
	assert.Contains(t, out.String(), "Pipet,Peralatan,4,pcs,Stok Rendah,Lab Fisika")
}

func TestService_ImportInvalidoNoMuta(t *testing.T) {
	svc, store := newService(t)
	_, err := svc.Import(context.Background(), "lote.csv", strings.NewReader("Nama Item,Jumlah\nPipet,\n"), "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Empty(t, store.Items())
	assert.Empty(t, store.Logs())
}

func TestService_ExportLoansFiltrados(t *testing.T) {
	svc, store := newService(t)
	ctx := context.Background()
	o, err := store.AddItem(ctx, entity.NewItem{LabID: "LAB-01", Name: "Mikroskop", Category: entity.CategoryEquipment, Quantity: 10})
	require.NoError(t, err)
	_, err = store.BorrowItem(ctx, inventory.BorrowRequest{ItemID: o.EntityID, Borrower: "Budi", BorrowerID: "1301", Quantity: 2})
	require.NoError(t, err)

	var out bytes.Buffer
	name, err := svc.ExportLoans(ctx, &out, transfer.FormatCSV, inventory.LoanFilter{Status: inventory.LoanFilterBorrowed})
	require.NoError(t, err)
	assert.Equal(t, "ekspor_peminjaman_2024-03-14.csv", name)

	records, err := csv.NewReader(&out).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "Mikroskop", records[1][1])
	assert.Equal(t, "Budi", records[1][2])
	assert.Equal(t, "2024-03-21", records[1][6])
	assert.Equal(t, "Dipinjam", records[1][8])
}
