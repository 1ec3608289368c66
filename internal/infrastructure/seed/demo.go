// Package seed carga los datos de demostración (laboratorios, ítems, préstamos, bitácora,
// notificaciones y perfil) en cualquier gateway.
package seed

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jhoicas/labinventaris/internal/domain"
	"github.com/jhoicas/labinventaris/internal/domain/entity"
	"github.com/jhoicas/labinventaris/internal/domain/repository"
)

// Dataset conjunto de filas a insertar.
type Dataset struct {
	Labs          []*entity.Lab
	Items         []*entity.Item
	Loans         []*entity.Loan
	Logs          []*entity.ActivityLog
	Notifications []*entity.Notification
	Profile       entity.UserProfile
}

// Demo datos de ejemplo. Los préstamos se fechan relativo a today: uno ya vencido y otro vigente.
func Demo(today time.Time) Dataset {
	day := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, today.Location())
	yesterday := day.AddDate(0, 0, -1)
	tomorrow := day.AddDate(0, 0, 1)
	acquired := time.Date(2023, 1, 15, 0, 0, 0, 0, time.UTC)
	logAt := func(hh, mm int) time.Time { return time.Date(2024, 3, 14, hh, mm, 0, 0, today.Location()) }

	img := func(n int) string { return fmt.Sprintf("https://picsum.photos/id/%d/600/400", n) }

	return Dataset{
		Labs: []*entity.Lab{
			{ID: "LAB-01", Name: "Lab Proses Manufaktur", Location: "Gedung A, Lantai 1", Description: "CNC, bubut dan milling.", Image: img(20)},
			{ID: "LAB-02", Name: "Lab Material Teknik", Location: "Gedung A, Lantai 2", Description: "Pengujian dan metalurgi.", Image: img(21)},
			{ID: "LAB-03", Name: "Lab Pengelasan", Location: "Gedung B, Lantai 1", Description: "Las SMAW, MIG dan TIG.", Image: img(22)},
			{ID: "LAB-04", Name: "Lab Otomasi", Location: "Gedung C, Lantai 2", Description: "PLC dan robotika.", Image: img(23)},
			{ID: "LAB-05", Name: "Lab Desain", Location: "Gedung C, Lantai 3", Description: "CAD dan cetak 3D.", Image: img(24)},
		},
		Items: []*entity.Item{
			{ID: "TOOL-001", LabID: "LAB-01", Name: "Mata Bor Carbide End Mill 10mm", Category: entity.CategoryTool, Quantity: 12, Unit: "pcs",
				Location: "Rak Perkakas A1", Status: entity.ItemStatusAvailable, Description: "Mata bor 4-flute carbide untuk CNC milling.",
				Supplier: "Sandvik Coromant", AcquisitionDate: &acquired, Image: img(1)},
			{ID: "MACH-002", LabID: "LAB-01", Name: "Insert Bubut CNC CNMG", Category: entity.CategoryTool, Quantity: 50, Unit: "pcs",
				Location: "Laci B2", Status: entity.ItemStatusAvailable, Image: img(2)},
			{ID: "COOL-003", LabID: "LAB-01", Name: "Cairan Pendingin (Coolant)", Category: entity.CategoryChemical, Quantity: 20, Unit: "liter",
				Location: "Ruang Penyimpanan", Status: entity.ItemStatusLowStock, Image: img(3)},
			{ID: "MAT-001", LabID: "LAB-02", Name: "Spesimen Uji Tarik Baja", Category: entity.CategoryMaterial, Quantity: 100, Unit: "pcs",
				Location: "Kabinet M1", Status: entity.ItemStatusAvailable, Description: "Spesimen uji tarik standar ASTM.", Image: img(4)},
			{ID: "EQP-005", LabID: "LAB-02", Name: "Digital Hardness Tester", Category: entity.CategoryEquipment, Quantity: 2, Unit: "unit",
				Location: "Meja 3", Status: entity.ItemStatusAvailable, Image: img(5)},
			{ID: "WELD-001", LabID: "LAB-03", Name: "Elektroda Las E6013", Category: entity.CategoryMaterial, Quantity: 5, Unit: "kotak",
				Location: "Rak W1", Status: entity.ItemStatusLowStock, Image: img(6)},
			{ID: "SAFE-002", LabID: "LAB-03", Name: "Helm Las Auto-Darkening", Category: entity.CategorySafety, Quantity: 15, Unit: "pcs",
				Location: "Loker Keselamatan", Status: entity.ItemStatusAvailable, Image: img(7)},
			{ID: "GAS-003", LabID: "LAB-03", Name: "Tabung Gas Argon", Category: entity.CategoryMaterial, Quantity: 0, Unit: "tabung",
				Location: "Penyimpanan Gas", Status: entity.ItemStatusOutOfStock, Image: img(8)},
			{ID: "ELEC-001", LabID: "LAB-04", Name: "Unit PLC Siemens S7-1200", Category: entity.CategoryElectronics, Quantity: 8, Unit: "unit",
				Location: "Rak PLC-01", Status: entity.ItemStatusAvailable, Image: img(9)},
			{ID: "ELEC-002", LabID: "LAB-04", Name: "Sensor Proximity Induktif", Category: entity.CategoryElectronics, Quantity: 3, Unit: "pcs",
				Location: "Laci E4", Status: entity.ItemStatusLowStock, Image: img(10)},
			{ID: "MAT-010", LabID: "LAB-05", Name: "Filamen PLA Putih 1.75mm", Category: entity.CategoryMaterial, Quantity: 10, Unit: "roll",
				Location: "Kabinet 3D", Status: entity.ItemStatusAvailable, Image: img(11)},
			{ID: "TOOL-005", LabID: "LAB-05", Name: "Jangka Sorong Digital 150mm", Category: entity.CategoryTool, Quantity: 25, Unit: "pcs",
				Location: "Laci D1", Status: entity.ItemStatusAvailable, Image: img(12)},
		},
		Loans: []*entity.Loan{
			{ID: "L-101", ItemID: "TOOL-005", ItemName: "Jangka Sorong Digital 150mm", Borrower: "Ahmad Fauzi", BorrowerID: "21000154",
				BorrowDate: yesterday, DueDate: day, Status: entity.LoanStatusOverdue, QuantityBorrowed: 1},
			{ID: "L-102", ItemID: "ELEC-001", ItemName: "Unit PLC Siemens S7-1200", Borrower: "Siti Aminah", BorrowerID: "21000233",
				BorrowDate: day, DueDate: tomorrow, Status: entity.LoanStatusBorrowed, QuantityBorrowed: 1},
		},
		Logs: []*entity.ActivityLog{
			{ID: "1", Action: "Menambahkan 10 roll Filamen PLA", User: "Dr. Arini", Timestamp: "2024-03-14 08:30", Type: entity.LogTypeAdd, CreatedAt: logAt(8, 30)},
			{ID: "2", Action: "Tabung Gas Argon dilaporkan kosong", User: "Asisten Lab", Timestamp: "2024-03-14 10:15", Type: entity.LogTypeEdit, CreatedAt: logAt(10, 15)},
			{ID: "3", Action: "Peminjaman tercatat untuk Ahmad Fauzi", User: "Admin", Timestamp: "2024-03-14 11:00", Type: entity.LogTypeBorrow, CreatedAt: logAt(11, 0)},
		},
		Notifications: []*entity.Notification{
			{ID: "1", Title: "Peminjaman Terlambat", Message: "Jangka Sorong Digital yang dipinjam oleh Ahmad Fauzi sudah melewati batas waktu.",
				Date: "Hari Ini", Type: entity.NotificationWarning, CreatedAt: day},
			{ID: "2", Title: "Peringatan Stok Rendah", Message: "Tabung Gas Argon stok habis.",
				Date: "Kemarin", Type: entity.NotificationAlert, CreatedAt: yesterday},
			{ID: "3", Title: "Jadwal Maintenance", Message: "Maintenance Mesin CNC Milling dijadwalkan minggu depan.",
				Date: "2 hari yang lalu", Read: true, Type: entity.NotificationInfo, CreatedAt: day.AddDate(0, 0, -2)},
		},
		Profile: entity.UserProfile{ID: entity.DefaultProfileID, Name: "Dr. Arini", Role: "Kepala Laboratorium"},
	}
}

// Result filas insertadas por tabla.
type Result struct {
	Labs, Items, Loans, Logs, Notifications int
}

// Apply inserta el dataset. Las filas que ya existen (domain.ErrConflict) se omiten,
// así el seed puede correr varias veces. El perfil solo se crea si no existe.
func Apply(ctx context.Context, gw repository.Gateway, ds Dataset) (Result, error) {
	var res Result
	insert := func(n *int, fn func() error) error {
		err := fn()
		switch {
		case err == nil:
			*n++
			return nil
		case errors.Is(err, domain.ErrConflict):
			return nil
		default:
			return err
		}
	}

	for _, l := range ds.Labs {
		if err := insert(&res.Labs, func() error { return gw.Labs.Create(ctx, l) }); err != nil {
			return res, fmt.Errorf("seed lab %s: %w", l.ID, err)
		}
	}
	// Orden inverso: el primer ítem del dataset queda como el más reciente.
	for i := len(ds.Items) - 1; i >= 0; i-- {
		it := ds.Items[i]
		if err := insert(&res.Items, func() error { return gw.Items.Create(ctx, it) }); err != nil {
			return res, fmt.Errorf("seed item %s: %w", it.ID, err)
		}
	}
	for i := len(ds.Loans) - 1; i >= 0; i-- {
		l := ds.Loans[i]
		if err := insert(&res.Loans, func() error { return gw.Loans.Create(ctx, l) }); err != nil {
			return res, fmt.Errorf("seed loan %s: %w", l.ID, err)
		}
	}
	for _, l := range ds.Logs {
		if err := insert(&res.Logs, func() error { return gw.Logs.Create(ctx, l) }); err != nil {
			return res, fmt.Errorf("seed log %s: %w", l.ID, err)
		}
	}
	for _, n := range ds.Notifications {
		if err := insert(&res.Notifications, func() error { return gw.Notifications.Create(ctx, n) }); err != nil {
			return res, fmt.Errorf("seed notification %s: %w", n.ID, err)
		}
	}

	existing, err := gw.Profiles.Get(ctx, ds.Profile.ID)
	if err != nil {
		return res, fmt.Errorf("seed profile: %w", err)
	}
	if existing == nil {
		p := ds.Profile
		if err := gw.Profiles.Upsert(ctx, &p); err != nil {
			return res, fmt.Errorf("seed profile: %w", err)
		}
	}
	return res, nil
}
