package inventory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/labinventaris/internal/application/inventory"
	"github.com/jhoicas/labinventaris/internal/domain"
	"github.com/jhoicas/labinventaris/internal/domain/entity"
	"github.com/jhoicas/labinventaris/internal/domain/repository"
	"github.com/jhoicas/labinventaris/internal/infrastructure/memory"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

var (
	wib     = time.FixedZone("WIB", 7*3600)
	fixedAt = time.Date(2024, 3, 14, 8, 30, 0, 0, wib)
	errDown = errors.New("gateway caído")
)

func testSession() inventory.Session {
	return inventory.Session{
		ProfileID:      entity.DefaultProfileID,
		DefaultProfile: entity.UserProfile{ID: entity.DefaultProfileID, Name: "Dr. Arini", Role: "Kepala Laboratorium"},
		Location:       wib,
	}
}

// newTestStore crea un store sobre un gateway en memoria con un laboratorio y los ítems indicados.
func newTestStore(t *testing.T, gw repository.Gateway, items []*entity.Item, opts ...inventory.Option) *inventory.Store {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, gw.Labs.Create(ctx, &entity.Lab{ID: "LAB-01", Name: "Lab Kimia"}))
	for _, it := range items {
		require.NoError(t, gw.Items.Create(ctx, it))
	}
	opts = append([]inventory.Option{inventory.WithClock(func() time.Time { return fixedAt })}, opts...)
	s := inventory.NewStore(gw, testSession(), opts...)
	require.NoError(t, s.Load(ctx))
	return s
}

func itemX(qty int, status entity.ItemStatus) *entity.Item {
	return &entity.Item{
		ID: "ITEM-X", LabID: "LAB-01", Name: "Mikroskop", Category: entity.CategoryEquipment,
		Quantity: qty, Unit: "unit", Status: status,
	}
}

func mustItem(t *testing.T, s *inventory.Store, id string) entity.Item {
	t.Helper()
	it, ok := s.Item(id)
	require.True(t, ok, "el ítem %s debe existir", id)
	return it
}

// failingItems envuelve el repositorio de ítems y falla todas las escrituras.
type failingItems struct{ repository.ItemRepository }

func (failingItems) Create(context.Context, *entity.Item) error { return errDown }
func (failingItems) CreateMany(context.Context, []*entity.Item) error { return errDown }
func (failingItems) Update(context.Context, string, entity.ItemPatch) error { return errDown }
func (failingItems) Delete(context.Context, string) error { return errDown }

type failingLogs struct{ repository.ActivityLogRepository }

func (failingLogs) Create(context.Context, *entity.ActivityLog) error { return errDown }

type failingLoans struct{ repository.LoanRepository }

func (failingLoans) List(context.Context) ([]*entity.Loan, error) { return nil, errDown }

// recorder cuenta las llamadas del store.
type recorder struct {
	mutations map[string]int
	failures  map[string]int
}

func newRecorder() *recorder {
	return &recorder{mutations: map[string]int{}, failures: map[string]int{}}
}

func (r *recorder) Mutation(op string, applied, persisted bool) {
	if applied {
		r.mutations[op]++
	}
}
func (r *recorder) PersistFailure(op, resource string) { r.failures[op+"/"+resource]++ }

// ──────────────────────────────────────────────────────────────────────────────
// Escenarios de préstamo y devolución
// ──────────────────────────────────────────────────────────────────────────────

func TestBorrowAndReturn_EscenarioCompleto(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, memory.NewGateway(), []*entity.Item{itemX(10, entity.ItemStatusAvailable)})

	first, err := s.BorrowItem(ctx, inventory.BorrowRequest{ItemID: "ITEM-X", Borrower: "Budi", BorrowerID: "123", Quantity: 6})
	require.NoError(t, err)
	assert.True(t, first.Applied)
	assert.True(t, first.Persisted)
	it := mustItem(t, s, "ITEM-X")
	assert.Equal(t, 4, it.Quantity)
	assert.Equal(t, entity.ItemStatusLowStock, it.Status)

	_, err = s.BorrowItem(ctx, inventory.BorrowRequest{ItemID: "ITEM-X", Borrower: "Sari", Quantity: 4})
	require.NoError(t, err, "pedir exactamente el stock disponible debe funcionar")
	it = mustItem(t, s, "ITEM-X")
	assert.Equal(t, 0, it.Quantity)
	assert.Equal(t, entity.ItemStatusOutOfStock, it.Status)

	_, err = s.MarkLoanReturned(ctx, first.EntityID)
	require.NoError(t, err)
	it = mustItem(t, s, "ITEM-X")
	assert.Equal(t, 6, it.Quantity)
	assert.Equal(t, entity.ItemStatusAvailable, it.Status)

	loan, ok := s.Loan(first.EntityID)
	require.True(t, ok)
	assert.Equal(t, entity.LoanStatusReturned, loan.Status)
	require.NotNil(t, loan.ReturnDate)
	assert.Equal(t, "2024-03-14", loan.ReturnDate.Format("2006-01-02"))
}

func TestBorrowItem_StockInsuficienteNoMuta(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, memory.NewGateway(), []*entity.Item{itemX(3, entity.ItemStatusLowStock)})
	logsBefore := len(s.Logs())

	o, err := s.BorrowItem(ctx, inventory.BorrowRequest{ItemID: "ITEM-X", Borrower: "Budi", Quantity: 4})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Nil(t, o)
	assert.Equal(t, 3, mustItem(t, s, "ITEM-X").Quantity)
	assert.Empty(t, s.Loans())
	assert.Len(t, s.Logs(), logsBefore)
}

func TestBorrowItem_ValidaCantidadYPrestatario(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, memory.NewGateway(), []*entity.Item{itemX(3, entity.ItemStatusLowStock)})

	_, err := s.BorrowItem(ctx, inventory.BorrowRequest{ItemID: "ITEM-X", Borrower: "Budi", Quantity: 0})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = s.BorrowItem(ctx, inventory.BorrowRequest{ItemID: "ITEM-X", Borrower: "  ", Quantity: 1})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestBorrowItem_FechaDeVencimientoPorDefecto(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, memory.NewGateway(), []*entity.Item{itemX(10, entity.ItemStatusAvailable)})

	o, err := s.BorrowItem(ctx, inventory.BorrowRequest{ItemID: "ITEM-X", Borrower: "Budi", Quantity: 1})
	require.NoError(t, err)
	loan, ok := s.Loan(o.EntityID)
	require.True(t, ok)
	assert.Regexp(t, `^L-[0-9A-F]{8}$`, loan.ID)
	assert.Equal(t, "Mikroskop", loan.ItemName)
	assert.Equal(t, entity.LoanStatusBorrowed, loan.Status)
	assert.Equal(t, "2024-03-14", loan.BorrowDate.Format("2006-01-02"))
	assert.Equal(t, "2024-03-21", loan.DueDate.Format("2006-01-02"))
}

func TestBorrowReturn_LimiteAsimetricoEnCinco(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, memory.NewGateway(), []*entity.Item{itemX(5, entity.ItemStatusAvailable)})

	o, err := s.BorrowItem(ctx, inventory.BorrowRequest{ItemID: "ITEM-X", Borrower: "Budi", Quantity: 2})
	require.NoError(t, err)
	_, err = s.MarkLoanReturned(ctx, o.EntityID)
	require.NoError(t, err)

	it := mustItem(t, s, "ITEM-X")
	assert.Equal(t, 5, it.Quantity, "el ida y vuelta restaura la cantidad")
	assert.Equal(t, entity.ItemStatusLowStock, it.Status, "5 tras devolución es Stok Rendah")
}

func TestMarkLoanReturned_DobleDevolucionEsConflicto(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, memory.NewGateway(), []*entity.Item{itemX(10, entity.ItemStatusAvailable)})

	o, err := s.BorrowItem(ctx, inventory.BorrowRequest{ItemID: "ITEM-X", Borrower: "Budi", Quantity: 2})
	require.NoError(t, err)
	_, err = s.MarkLoanReturned(ctx, o.EntityID)
	require.NoError(t, err)
	_, err = s.MarkLoanReturned(ctx, o.EntityID)
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.Equal(t, 10, mustItem(t, s, "ITEM-X").Quantity)
}

func TestDeleteLoan_NoReponeCantidad(t *testing.T) {
	ctx := context.Background()
	gw := memory.NewGateway()
	s := newTestStore(t, gw, []*entity.Item{itemX(10, entity.ItemStatusAvailable)})

	o, err := s.BorrowItem(ctx, inventory.BorrowRequest{ItemID: "ITEM-X", Borrower: "Budi", Quantity: 3})
	require.NoError(t, err)
	del, err := s.DeleteLoan(ctx, o.EntityID)
	require.NoError(t, err)
	assert.True(t, del.Applied)

	assert.Equal(t, 7, mustItem(t, s, "ITEM-X").Quantity)
	assert.Empty(t, s.Loans())
	remote, err := gw.Loans.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, remote)
	assert.Equal(t, "Data peminjaman dihapus: Mikroskop", s.Logs()[0].Action)
}

func TestBorrowAndReturn_MantenimientoEsPersistente(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, memory.NewGateway(), []*entity.Item{itemX(10, entity.ItemStatusMaintenance)})

	o, err := s.BorrowItem(ctx, inventory.BorrowRequest{ItemID: "ITEM-X", Borrower: "Budi", Quantity: 8})
	require.NoError(t, err)
	assert.Equal(t, entity.ItemStatusMaintenance, mustItem(t, s, "ITEM-X").Status)
	_, err = s.MarkLoanReturned(ctx, o.EntityID)
	require.NoError(t, err)
	assert.Equal(t, entity.ItemStatusMaintenance, mustItem(t, s, "ITEM-X").Status)
}

// ──────────────────────────────────────────────────────────────────────────────
// Mantenimiento
// ──────────────────────────────────────────────────────────────────────────────

func TestReportDamage_YCompleteMaintenance(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, memory.NewGateway(), []*entity.Item{itemX(0, entity.ItemStatusOutOfStock)})

	o, err := s.ReportDamage(ctx, "ITEM-X", "lensa retak")
	require.NoError(t, err)
	assert.True(t, o.Applied)
	it := mustItem(t, s, "ITEM-X")
	assert.Equal(t, entity.ItemStatusMaintenance, it.Status)
	assert.Equal(t, 0, it.Quantity)
	assert.Equal(t, "Kerusakan dilaporkan: Mikroskop (lensa retak)", s.Logs()[0].Action)
	assert.Equal(t, entity.LogTypeMaintenance, s.Logs()[0].Type)

	_, err = s.CompleteMaintenance(ctx, "ITEM-X")
	require.NoError(t, err)
	assert.Equal(t, entity.ItemStatusOutOfStock, mustItem(t, s, "ITEM-X").Status)
	assert.Equal(t, "Maintenance selesai: Mikroskop", s.Logs()[0].Action)
}

// ──────────────────────────────────────────────────────────────────────────────
// CRUD de ítems
// ──────────────────────────────────────────────────────────────────────────────

func TestAddItem_GeneraIDEstadoEImagen(t *testing.T) {
	ctx := context.Background()
	gw := memory.NewGateway()
	s := newTestStore(t, gw, nil)

	o, err := s.AddItem(ctx, entity.NewItem{LabID: "LAB-01", Name: "Pipet", Quantity: 3})
	require.NoError(t, err)
	require.True(t, o.Persisted)

	items := s.Items()
	require.Len(t, items, 1)
	it := items[0]
	assert.Regexp(t, `^ITEM-[0-9A-F]{8}$`, it.ID)
	assert.Equal(t, entity.ItemStatusLowStock, it.Status)
	assert.Equal(t, entity.CategoryEquipment, it.Category)
	assert.Equal(t, "pcs", it.Unit)
	assert.Contains(t, it.Image, "picsum.photos")

	logs := s.Logs()
	require.Len(t, logs, 1)
	assert.Equal(t, "Item baru ditambahkan: Pipet", logs[0].Action)
	assert.Equal(t, "Dr. Arini", logs[0].User)
	assert.Equal(t, "14/3/2024, 08.30.00", logs[0].Timestamp)

	remote, err := gw.Items.List(ctx)
	require.NoError(t, err)
	require.Len(t, remote, 1)
	assert.Equal(t, it.ID, remote[0].ID)
}

func TestAddItem_RechazaLabDesconocidoYCantidadNegativa(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, memory.NewGateway(), nil)

	_, err := s.AddItem(ctx, entity.NewItem{LabID: "LAB-99", Name: "Pipet", Quantity: 3})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = s.AddItem(ctx, entity.NewItem{LabID: "LAB-01", Name: "Pipet", Quantity: -1})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Empty(t, s.Items())
}

func TestUpdateItem_RecalculaEstadoSalvoMantenimiento(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, memory.NewGateway(), []*entity.Item{
		itemX(10, entity.ItemStatusAvailable),
		{ID: "ITEM-M", LabID: "LAB-01", Name: "Oven", Quantity: 2, Status: entity.ItemStatusMaintenance},
	})

	qty := 2
	_, err := s.UpdateItem(ctx, "ITEM-X", entity.ItemPatch{Quantity: &qty})
	require.NoError(t, err)
	assert.Equal(t, entity.ItemStatusLowStock, mustItem(t, s, "ITEM-X").Status)

	qty = 20
	_, err = s.UpdateItem(ctx, "ITEM-M", entity.ItemPatch{Quantity: &qty})
	require.NoError(t, err)
	m := mustItem(t, s, "ITEM-M")
	assert.Equal(t, 20, m.Quantity)
	assert.Equal(t, entity.ItemStatusMaintenance, m.Status)

	name := "Mikroskop Binokuler"
	_, err = s.UpdateItem(ctx, "ITEM-X", entity.ItemPatch{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Item diperbarui: Mikroskop Binokuler", s.Logs()[0].Action)
}

func TestOperaciones_IDDesconocidoEsNoOpSilencioso(t *testing.T) {
	ctx := context.Background()
	rec := newRecorder()
	s := newTestStore(t, memory.NewGateway(), nil, inventory.WithRecorder(rec))
	name := "x"

	cases := map[string]func() (*inventory.Outcome, error){
		"update":   func() (*inventory.Outcome, error) { return s.UpdateItem(ctx, "NOPE", entity.ItemPatch{Name: &name}) },
		"delete":   func() (*inventory.Outcome, error) { return s.DeleteItem(ctx, "NOPE") },
		"borrow":   func() (*inventory.Outcome, error) { return s.BorrowItem(ctx, inventory.BorrowRequest{ItemID: "NOPE", Borrower: "B", Quantity: 1}) },
		"return":   func() (*inventory.Outcome, error) { return s.MarkLoanReturned(ctx, "NOPE") },
		"loan":     func() (*inventory.Outcome, error) { return s.DeleteLoan(ctx, "NOPE") },
		"damage":   func() (*inventory.Outcome, error) { return s.ReportDamage(ctx, "NOPE", "") },
		"complete": func() (*inventory.Outcome, error) { return s.CompleteMaintenance(ctx, "NOPE") },
		"lab":      func() (*inventory.Outcome, error) { return s.UpdateLab(ctx, "NOPE", entity.LabPatch{Name: &name}) },
		"notif":    func() (*inventory.Outcome, error) { return s.MarkNotificationRead(ctx, "NOPE") },
	}
	for label, op := range cases {
		t.Run(label, func(t *testing.T) {
			o, err := op()
			require.NoError(t, err)
			require.NotNil(t, o)
			assert.False(t, o.Applied)
		})
	}
	assert.Empty(t, s.Logs(), "los no-op no escriben bitácora")
	assert.Empty(t, rec.mutations)
}

// ──────────────────────────────────────────────────────────────────────────────
// Importación
// ──────────────────────────────────────────────────────────────────────────────

func TestImportItems_TodoONada(t *testing.T) {
	ctx := context.Background()
	gw := memory.NewGateway()
	s := newTestStore(t, gw, nil)

	_, err := s.ImportItems(ctx, []entity.NewItem{
		{LabID: "LAB-01", Name: "Gelas Ukur", Quantity: 12},
		{LabID: "LAB-01", Name: "", Quantity: 2},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Empty(t, s.Items())
	remote, err := gw.Items.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, remote, "no debe quedar ninguna fila parcial")

	o, err := s.ImportItems(ctx, []entity.NewItem{
		{LabID: "LAB-01", Name: "Gelas Ukur", Quantity: 12},
		{LabID: "LAB-01", Name: "Tabung Reaksi", Quantity: 0},
	})
	require.NoError(t, err)
	assert.True(t, o.Persisted)
	items := s.Items()
	require.Len(t, items, 2)
	assert.Equal(t, entity.ItemStatusAvailable, items[0].Status)
	assert.Equal(t, entity.ItemStatusOutOfStock, items[1].Status)
	assert.Equal(t, "Import data: 2 item ditambahkan", s.Logs()[0].Action)
	assert.Len(t, s.Logs(), 1, "una sola entrada agregada")
}

func TestImportItems_FalloRemotoSeDevuelveSinRevertir(t *testing.T) {
	ctx := context.Background()
	gw := memory.NewGateway()
	gw.Items = failingItems{gw.Items}
	s := newTestStore(t, gw, nil)

	o, err := s.ImportItems(ctx, []entity.NewItem{{LabID: "LAB-01", Name: "Gelas Ukur", Quantity: 12}})
	require.Error(t, err)
	assert.ErrorIs(t, err, errDown)
	require.NotNil(t, o)
	assert.False(t, o.Persisted)
	assert.Len(t, s.Items(), 1, "el alta local se conserva")

	o.Revert()
	assert.Empty(t, s.Items())
	assert.True(t, o.Reverted)
}

// ──────────────────────────────────────────────────────────────────────────────
// Fallos de persistencia
// ──────────────────────────────────────────────────────────────────────────────

func TestPersistFailure_ConservaEstadoLocalPorDefecto(t *testing.T) {
	ctx := context.Background()
	gw := memory.NewGateway()
	rec := newRecorder()
	s := newTestStore(t, gw, []*entity.Item{itemX(10, entity.ItemStatusAvailable)}, inventory.WithRecorder(rec))
	gw.Items = failingItems{gw.Items}
	s = inventory.NewStore(gw, testSession(), inventory.WithRecorder(rec), inventory.WithClock(func() time.Time { return fixedAt }))
	require.NoError(t, s.Load(ctx))

	o, err := s.DeleteItem(ctx, "ITEM-X")
	require.NoError(t, err)
	assert.True(t, o.Applied)
	assert.False(t, o.Persisted)
	assert.ErrorIs(t, o.Err, errDown)
	_, ok := s.Item("ITEM-X")
	assert.False(t, ok, "sin rollback el borrado local se mantiene")
	assert.Equal(t, 1, rec.failures["delete_item/items"])
	assert.Equal(t, "Item dihapus: Mikroskop", s.Logs()[0].Action, "la bitácora se escribe igual")

	o.Revert()
	assert.Equal(t, 10, mustItem(t, s, "ITEM-X").Quantity)
}

func TestPersistFailure_RollbackAutomatico(t *testing.T) {
	ctx := context.Background()
	gw := memory.NewGateway()
	require.NoError(t, gw.Labs.Create(ctx, &entity.Lab{ID: "LAB-01", Name: "Lab Kimia"}))
	require.NoError(t, gw.Items.Create(ctx, itemX(10, entity.ItemStatusAvailable)))
	gw.Items = failingItems{gw.Items}
	s := inventory.NewStore(gw, testSession(), inventory.WithRollbackOnFailure(true))
	require.NoError(t, s.Load(ctx))

	o, err := s.BorrowItem(ctx, inventory.BorrowRequest{ItemID: "ITEM-X", Borrower: "Budi", Quantity: 4})
	require.NoError(t, err)
	assert.True(t, o.Reverted)
	assert.ErrorIs(t, o.Err, errDown)
	assert.Equal(t, 10, mustItem(t, s, "ITEM-X").Quantity)
	assert.Empty(t, s.Loans(), "el préstamo local también se revierte")
}

func TestAddLog_FalloDeBitacoraNoAfectaOperacion(t *testing.T) {
	ctx := context.Background()
	gw := memory.NewGateway()
	gw.Logs = failingLogs{gw.Logs}
	s := newTestStore(t, gw, []*entity.Item{itemX(10, entity.ItemStatusAvailable)})

	o, err := s.ReportDamage(ctx, "ITEM-X", "")
	require.NoError(t, err)
	assert.True(t, o.Persisted)
	assert.NoError(t, o.Err)
	assert.Len(t, s.Logs(), 1)
}

// ──────────────────────────────────────────────────────────────────────────────
// Carga, perfil, laboratorios y notificaciones
// ──────────────────────────────────────────────────────────────────────────────

func TestLoad_PerfilPorDefectoYErroresTragados(t *testing.T) {
	ctx := context.Background()
	gw := memory.NewGateway()
	gw.Loans = failingLoans{gw.Loans}
	require.NoError(t, gw.Items.Create(ctx, itemX(1, entity.ItemStatusLowStock)))

	s := inventory.NewStore(gw, testSession())
	assert.True(t, s.Loading())
	err := s.Load(ctx)
	assert.ErrorIs(t, err, errDown)
	assert.False(t, s.Loading())
	assert.Len(t, s.Items(), 1, "las demás tablas se cargan")
	assert.Equal(t, "Dr. Arini", s.Profile().Name)
}

func TestUpdateUserProfile_PersisteYFirmaBitacora(t *testing.T) {
	ctx := context.Background()
	gw := memory.NewGateway()
	s := newTestStore(t, gw, nil)

	name := "Ir. Bambang"
	_, err := s.UpdateUserProfile(ctx, entity.UserProfilePatch{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Ir. Bambang", s.Profile().Name)

	stored, err := gw.Profiles.Get(ctx, entity.DefaultProfileID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, "Ir. Bambang", stored.Name)
	assert.Equal(t, "Kepala Laboratorium", stored.Role)
	assert.Equal(t, "Ir. Bambang", s.Logs()[0].User)
	assert.Equal(t, "Profil pengguna diperbarui", s.Logs()[0].Action)
}

func TestUpdateLab(t *testing.T) {
	ctx := context.Background()
	gw := memory.NewGateway()
	s := newTestStore(t, gw, nil)

	loc := "Gedung B"
	o, err := s.UpdateLab(ctx, "LAB-01", entity.LabPatch{Location: &loc})
	require.NoError(t, err)
	assert.True(t, o.Applied)
	lab, ok := s.Lab("LAB-01")
	require.True(t, ok)
	assert.Equal(t, "Gedung B", lab.Location)
	assert.Equal(t, "Lab Kimia", lab.Name)
	assert.Equal(t, "Detail Lab diperbarui: LAB-01", s.Logs()[0].Action)
}

func TestNotifications_MarcarLeidaYBorradoDuro(t *testing.T) {
	ctx := context.Background()
	gw := memory.NewGateway()
	require.NoError(t, gw.Notifications.Create(ctx, &entity.Notification{ID: "N1", Title: "Stok rendah", Type: entity.NotificationWarning}))
	require.NoError(t, gw.Notifications.Create(ctx, &entity.Notification{ID: "N2", Title: "Info", Type: entity.NotificationInfo}))
	s := newTestStore(t, gw, nil)
	assert.Equal(t, 2, s.UnreadNotifications())

	_, err := s.MarkNotificationRead(ctx, "N1")
	require.NoError(t, err)
	assert.Equal(t, 1, s.UnreadNotifications())

	_, err = s.ClearNotifications(ctx)
	require.NoError(t, err)
	assert.Empty(t, s.Notifications())
	remote, err := gw.Notifications.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, remote, "el borrado también se refleja en el gateway")
	assert.Empty(t, s.Logs())
}

// ──────────────────────────────────────────────────────────────────────────────
// Vistas de préstamos
// ──────────────────────────────────────────────────────────────────────────────

func TestLoanViews_VencidoCalculadoEnLectura(t *testing.T) {
	ctx := context.Background()
	gw := memory.NewGateway()
	past := time.Date(2024, 3, 1, 0, 0, 0, 0, wib)
	require.NoError(t, gw.Loans.Create(ctx, &entity.Loan{
		ID: "L-101", ItemID: "ITEM-X", ItemName: "Mikroskop", Borrower: "Budi Santoso", BorrowerID: "2101",
		BorrowDate: past.AddDate(0, 0, -7), DueDate: past, Status: entity.LoanStatusBorrowed, QuantityBorrowed: 1,
	}))
	require.NoError(t, gw.Loans.Create(ctx, &entity.Loan{
		ID: "L-102", ItemID: "ITEM-X", ItemName: "Mikroskop", Borrower: "Siti", BorrowerID: "2102",
		BorrowDate: fixedAt, DueDate: fixedAt.AddDate(0, 0, 7), Status: entity.LoanStatusBorrowed, QuantityBorrowed: 1,
	}))
	s := newTestStore(t, gw, []*entity.Item{itemX(10, entity.ItemStatusAvailable)})

	overdue := s.LoanViews(inventory.LoanFilter{Status: inventory.LoanFilterOverdue}, fixedAt)
	require.Len(t, overdue, 1)
	assert.Equal(t, "L-101", overdue[0].ID)
	assert.Equal(t, entity.LoanStatusBorrowed, overdue[0].Status, "el estado persistido no cambia")
	assert.Equal(t, entity.LoanStatusOverdue, overdue[0].DisplayStatus)

	all := s.LoanViews(inventory.LoanFilter{Status: inventory.LoanFilterAll}, fixedAt)
	assert.Len(t, all, 2)

	bySearch := s.LoanViews(inventory.LoanFilter{Search: "siti"}, fixedAt)
	require.Len(t, bySearch, 1)
	assert.Equal(t, "L-102", bySearch[0].ID)

	from := fixedAt
	to := fixedAt
	byDate := s.LoanViews(inventory.LoanFilter{From: &from, To: &to}, fixedAt)
	require.Len(t, byDate, 1)
	assert.Equal(t, "L-102", byDate[0].ID)
}

func TestSnapshot_ItemsYPrestamosCoherentesBajoConcurrencia(t *testing.T) {
	const stock = 40
	ctx := context.Background()
	s := newTestStore(t, memory.NewGateway(), []*entity.Item{itemX(stock, entity.ItemStatusAvailable)})

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < stock; i++ {
			_, _ = s.BorrowItem(ctx, inventory.BorrowRequest{ItemID: "ITEM-X", Borrower: "Budi", Quantity: 1})
		}
	}()

	check := func() {
		snap := s.Snapshot()
		total := 0
		for _, it := range snap.Items {
			if it.ID == "ITEM-X" {
				total += it.Quantity
			}
		}
		for _, l := range snap.Loans {
			if l.ItemID == "ITEM-X" {
				total += l.QuantityBorrowed
			}
		}
		require.Equal(t, stock, total)
	}
	for {
		select {
		case <-done:
			check()
			assert.Len(t, s.Loans(), stock)
			return
		default:
			check()
		}
	}
}
