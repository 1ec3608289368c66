// Package inventory contiene el store de estado del dominio: espejo en memoria de items,
// préstamos, bitácora, laboratorios, notificaciones y perfil, con las reglas de negocio
// de préstamo, devolución y mantenimiento.
package inventory

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jhoicas/labinventaris/internal/domain"
	"github.com/jhoicas/labinventaris/internal/domain/entity"
	domaininv "github.com/jhoicas/labinventaris/internal/domain/inventory"
	"github.com/jhoicas/labinventaris/internal/domain/repository"
)

const (
	defaultLoanDays    = 7
	defaultUnit        = "pcs"
	defaultPlaceholder = "https://picsum.photos/seed/%s/600/400"
)

// Store fuente única de verdad en memoria. Cada mutación se aplica primero en memoria
// (optimista), luego se persiste vía gateway y por último se registra en la bitácora.
type Store struct {
	gw          repository.Gateway
	session     Session
	log         zerolog.Logger
	rec         Recorder
	now         func() time.Time
	placeholder string
	rollback    bool

	mu            sync.RWMutex
	loading       bool
	items         []*entity.Item
	loans         []*entity.Loan
	logs          []*entity.ActivityLog
	labs          []*entity.Lab
	notifications []*entity.Notification
	profile       entity.UserProfile
}

// Option configura el Store.
type Option func(*Store)

// WithLogger canal de diagnóstico para fallos de persistencia.
func WithLogger(l zerolog.Logger) Option { return func(s *Store) { s.log = l } }

// WithRecorder métricas de mutaciones.
func WithRecorder(r Recorder) Option {
	return func(s *Store) {
		if r != nil {
			s.rec = r
		}
	}
}

// WithClock reloj inyectable (tests).
func WithClock(now func() time.Time) Option { return func(s *Store) { s.now = now } }

// WithPlaceholderImage formato (con un %s) de la imagen por defecto de ítems nuevos.
func WithPlaceholderImage(format string) Option {
	return func(s *Store) {
		if format != "" {
			s.placeholder = format
		}
	}
}

// WithRollbackOnFailure revierte automáticamente el cambio local si la persistencia falla.
func WithRollbackOnFailure(enabled bool) Option { return func(s *Store) { s.rollback = enabled } }

// NewStore construye el store. Llamar Load para poblarlo.
func NewStore(gw repository.Gateway, session Session, opts ...Option) *Store {
	session = session.normalized()
	s := &Store{
		gw:          gw,
		session:     session,
		log:         zerolog.Nop(),
		rec:         nopRecorder{},
		now:         time.Now,
		placeholder: defaultPlaceholder,
		loading:     true,
		profile:     session.DefaultProfile,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Session devuelve la sesión con la que se construyó el store.
func (s *Store) Session() Session { return s.session }

// Now hora actual según el reloj del store.
func (s *Store) Now() time.Time { return s.now() }

// Load lee todas las tablas en paralelo. Los errores se registran y no impiden cargar
// el resto; se devuelven unidos para quien quiera reportarlos.
func (s *Store) Load(ctx context.Context) error {
	s.mu.Lock()
	s.loading = true
	s.mu.Unlock()

	var (
		wg       sync.WaitGroup
		items    []*entity.Item
		loans    []*entity.Loan
		logs     []*entity.ActivityLog
		labs     []*entity.Lab
		notifs   []*entity.Notification
		profile  *entity.UserProfile
		errItems error
		errLoans error
		errLogs  error
		errLabs  error
		errNotif error
		errProf  error
	)
	wg.Add(6)
	go func() { defer wg.Done(); items, errItems = s.gw.Items.List(ctx) }()
	go func() { defer wg.Done(); loans, errLoans = s.gw.Loans.List(ctx) }()
	go func() { defer wg.Done(); logs, errLogs = s.gw.Logs.List(ctx) }()
	go func() { defer wg.Done(); labs, errLabs = s.gw.Labs.List(ctx) }()
	go func() { defer wg.Done(); notifs, errNotif = s.gw.Notifications.List(ctx) }()
	go func() { defer wg.Done(); profile, errProf = s.gw.Profiles.Get(ctx, s.session.ProfileID) }()
	wg.Wait()

	var errs []error
	report := func(resource string, err error) bool {
		if err == nil {
			return true
		}
		s.log.Error().Err(err).Str("resource", resource).Msg("carga inicial fallida")
		errs = append(errs, fmt.Errorf("cargar %s: %w", resource, err))
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if report("items", errItems) {
		for _, it := range items {
			it.AcquisitionDate = s.session.calendarDatePtr(it.AcquisitionDate)
		}
		s.items = items
	}
	if report("loans", errLoans) {
		for _, l := range loans {
			l.BorrowDate = s.session.CalendarDate(l.BorrowDate)
			l.DueDate = s.session.CalendarDate(l.DueDate)
			l.ReturnDate = s.session.calendarDatePtr(l.ReturnDate)
		}
		s.loans = loans
	}
	if report("logs", errLogs) {
		s.logs = logs
	}
	if report("labs", errLabs) {
		s.labs = labs
	}
	if report("notifications", errNotif) {
		s.notifications = notifs
	}
	if report("profiles", errProf) && profile != nil {
		s.profile = *profile
	}
	s.loading = false
	return errors.Join(errs...)
}

// Loading es true hasta que termina la carga inicial (con o sin errores).
func (s *Store) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// ── Ítems ─────────────────────────────────────────────────────────────────────

// AddItem crea un ítem con identificador nuevo, estado derivado de la cantidad e imagen por defecto.
func (s *Store) AddItem(ctx context.Context, in entity.NewItem) (*Outcome, error) {
	s.mu.Lock()
	if err := s.validateNewItem(in); err != nil {
		s.mu.Unlock()
		return nil, err
	}
	item := s.buildItem(in)
	s.items = insertAt(s.items, 0, item)
	snapshot := item.Clone()
	s.mu.Unlock()

	o := newOutcome(s, "add_item", item.ID)
	o.Applied, o.Persisted = true, true
	o.onRevert(func() { s.items = removeWhere(s.items, func(it *entity.Item) bool { return it.ID == snapshot.ID }) })

	s.persist(ctx, o, "items", func(ctx context.Context) error { return s.gw.Items.Create(ctx, snapshot) })
	s.addLog(ctx, "Item baru ditambahkan: "+snapshot.Name, entity.LogTypeAdd)
	return s.finish(o), nil
}

// UpdateItem mezcla campos en el ítem. Un cambio de cantidad sin estado explícito recalcula
// el estado, salvo que el ítem esté en mantenimiento.
func (s *Store) UpdateItem(ctx context.Context, id string, patch entity.ItemPatch) (*Outcome, error) {
	if err := validateItemPatch(patch); err != nil {
		return nil, err
	}
	o := newOutcome(s, "update_item", id)

	s.mu.Lock()
	i := indexOf(s.items, func(it *entity.Item) bool { return it.ID == id })
	if i < 0 {
		s.mu.Unlock()
		return s.finish(o), nil
	}
	if patch.LabID != nil && !s.labExistsLocked(*patch.LabID) {
		s.mu.Unlock()
		return nil, fmt.Errorf("lab %q: %w", *patch.LabID, domain.ErrInvalidInput)
	}
	item := s.items[i]
	if patch.Quantity != nil && patch.Status == nil {
		st := domaininv.RecomputeStatus(item.Status, *patch.Quantity)
		patch.Status = &st
	}
	s.applyItemPatchLocked(o, item, patch)
	s.mu.Unlock()

	o.Applied, o.Persisted = true, true
	s.persist(ctx, o, "items", func(ctx context.Context) error { return s.gw.Items.Update(ctx, id, patch) })
	label := id
	if patch.Name != nil && *patch.Name != "" {
		label = *patch.Name
	}
	s.addLog(ctx, "Item diperbarui: "+label, entity.LogTypeEdit)
	return s.finish(o), nil
}

// DeleteItem elimina el ítem. Los préstamos que lo referencian no se tocan.
func (s *Store) DeleteItem(ctx context.Context, id string) (*Outcome, error) {
	o := newOutcome(s, "delete_item", id)

	s.mu.Lock()
	i := indexOf(s.items, func(it *entity.Item) bool { return it.ID == id })
	if i < 0 {
		s.mu.Unlock()
		return s.finish(o), nil
	}
	removed := s.items[i]
	s.items = removeAt(s.items, i)
	s.mu.Unlock()

	o.Applied, o.Persisted = true, true
	o.onRevert(func() { s.items = insertAt(s.items, i, removed) })
	s.persist(ctx, o, "items", func(ctx context.Context) error { return s.gw.Items.Delete(ctx, id) })
	s.addLog(ctx, "Item dihapus: "+removed.Name, entity.LogTypeDelete)
	return s.finish(o), nil
}

// ImportItems agrega un lote de ítems. Se valida todo el lote antes de tocar el estado:
// una fila inválida rechaza el lote completo. La inserción remota es una sola llamada que
// sí se espera; si falla se devuelve el error junto con el Outcome (el lote sigue en memoria
// salvo que se llame Revert o el store tenga rollback automático).
func (s *Store) ImportItems(ctx context.Context, rows []entity.NewItem) (*Outcome, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("lote vacío: %w", domain.ErrInvalidInput)
	}

	s.mu.Lock()
	for n, in := range rows {
		if err := s.validateNewItem(in); err != nil {
			s.mu.Unlock()
			return nil, fmt.Errorf("fila %d: %w", n+1, err)
		}
	}
	batch := make([]*entity.Item, 0, len(rows))
	for _, in := range rows {
		batch = append(batch, s.buildItem(in))
	}
	s.items = append(append(make([]*entity.Item, 0, len(batch)+len(s.items)), batch...), s.items...)
	snapshot := make([]*entity.Item, len(batch))
	ids := make(map[string]struct{}, len(batch))
	for i, it := range batch {
		snapshot[i] = it.Clone()
		ids[it.ID] = struct{}{}
	}
	s.mu.Unlock()

	o := newOutcome(s, "import_items", "")
	o.Applied, o.Persisted = true, true
	o.onRevert(func() {
		s.items = removeWhere(s.items, func(it *entity.Item) bool { _, ok := ids[it.ID]; return ok })
	})

	err := s.gw.Items.CreateMany(ctx, snapshot)
	if err != nil {
		s.log.Error().Err(err).Str("op", o.Op).Int("rows", len(snapshot)).Msg("importación no persistida")
		s.rec.PersistFailure(o.Op, "items")
		o.fail(err)
	}
	s.addLog(ctx, fmt.Sprintf("Import data: %d item ditambahkan", len(snapshot)), entity.LogTypeAdd)
	s.finish(o)
	if err != nil {
		return o, fmt.Errorf("importar ítems: %w", err)
	}
	return o, nil
}

// ── Préstamos ─────────────────────────────────────────────────────────────────

// BorrowRequest datos para registrar un préstamo. DueDate nil = hoy + 7 días.
type BorrowRequest struct {
	ItemID      string
	Borrower    string
	BorrowerID  string
	IDCardImage string
	Quantity    int
	DueDate     *time.Time
}

// BorrowItem crea el préstamo y descuenta la cantidad del ítem. Falla con
// domain.ErrInsufficientStock antes de mutar nada si la cantidad pedida supera el stock.
func (s *Store) BorrowItem(ctx context.Context, req BorrowRequest) (*Outcome, error) {
	if req.Quantity < 1 || strings.TrimSpace(req.Borrower) == "" {
		return nil, domain.ErrInvalidInput
	}
	o := newOutcome(s, "borrow_item", "")
	now := s.now()
	today := s.session.Today(now)
	due := today.AddDate(0, 0, defaultLoanDays)
	if req.DueDate != nil {
		due = s.session.Today(*req.DueDate)
	}

	s.mu.Lock()
	i := indexOf(s.items, func(it *entity.Item) bool { return it.ID == req.ItemID })
	if i < 0 {
		s.mu.Unlock()
		return s.finish(o), nil
	}
	item := s.items[i]
	if item.Quantity < req.Quantity {
		s.mu.Unlock()
		return nil, domain.ErrInsufficientStock
	}
	loan := &entity.Loan{
		ID:               newLoanID(),
		ItemID:           item.ID,
		ItemName:         item.Name,
		Borrower:         req.Borrower,
		BorrowerID:       req.BorrowerID,
		IDCardImage:      req.IDCardImage,
		BorrowDate:       today,
		DueDate:          due,
		Status:           entity.LoanStatusBorrowed,
		QuantityBorrowed: req.Quantity,
	}
	s.loans = insertAt(s.loans, 0, loan)
	loanCopy := loan.Clone()

	newQty := item.Quantity - req.Quantity
	status := domaininv.RecomputeStatus(item.Status, newQty)
	patch := entity.ItemPatch{Quantity: &newQty, Status: &status}
	s.applyItemPatchLocked(o, item, patch)
	itemName := item.Name
	s.mu.Unlock()

	o.EntityID = loan.ID
	o.Applied, o.Persisted = true, true
	o.onRevert(func() { s.loans = removeWhere(s.loans, func(l *entity.Loan) bool { return l.ID == loanCopy.ID }) })

	s.persist(ctx, o, "loans", func(ctx context.Context) error { return s.gw.Loans.Create(ctx, loanCopy) })
	s.persist(ctx, o, "items", func(ctx context.Context) error { return s.gw.Items.Update(ctx, req.ItemID, patch) })
	s.addLog(ctx, fmt.Sprintf("Peminjaman %dx %s oleh %s", req.Quantity, itemName, req.Borrower), entity.LogTypeBorrow)
	return s.finish(o), nil
}

// MarkLoanReturned marca el préstamo como devuelto hoy y repone la cantidad en el ítem
// usando el umbral de devolución. Devolver dos veces es domain.ErrConflict.
func (s *Store) MarkLoanReturned(ctx context.Context, loanID string) (*Outcome, error) {
	o := newOutcome(s, "return_loan", loanID)
	today := s.session.Today(s.now())

	s.mu.Lock()
	li := indexOf(s.loans, func(l *entity.Loan) bool { return l.ID == loanID })
	if li < 0 {
		s.mu.Unlock()
		return s.finish(o), nil
	}
	loan := s.loans[li]
	if loan.Status == entity.LoanStatusReturned {
		s.mu.Unlock()
		return nil, fmt.Errorf("préstamo %s ya devuelto: %w", loanID, domain.ErrConflict)
	}
	prevLoan := loan.Clone()
	returned := entity.LoanStatusReturned
	loanPatch := entity.LoanPatch{Status: &returned, ReturnDate: &today}
	loanPatch.Apply(loan)
	o.onRevert(func() {
		if j := indexOf(s.loans, func(l *entity.Loan) bool { return l.ID == prevLoan.ID }); j >= 0 {
			s.loans[j] = prevLoan.Clone()
		}
	})

	var (
		itemPatch entity.ItemPatch
		itemFound bool
	)
	if ii := indexOf(s.items, func(it *entity.Item) bool { return it.ID == loan.ItemID }); ii >= 0 {
		item := s.items[ii]
		newQty := item.Quantity + loan.QuantityBorrowed
		status := domaininv.ItemStatusAfterReturn(newQty)
		if item.Status == entity.ItemStatusMaintenance {
			status = item.Status
		}
		itemPatch = entity.ItemPatch{Quantity: &newQty, Status: &status}
		s.applyItemPatchLocked(o, item, itemPatch)
		itemFound = true
	}
	itemID, qty, name := loan.ItemID, loan.QuantityBorrowed, loan.ItemName
	s.mu.Unlock()

	o.Applied, o.Persisted = true, true
	s.persist(ctx, o, "loans", func(ctx context.Context) error { return s.gw.Loans.Update(ctx, loanID, loanPatch) })
	if itemFound {
		s.persist(ctx, o, "items", func(ctx context.Context) error { return s.gw.Items.Update(ctx, itemID, itemPatch) })
	}
	s.addLog(ctx, fmt.Sprintf("Pengembalian %dx %s", qty, name), entity.LogTypeReturn)
	return s.finish(o), nil
}

// DeleteLoan borra el registro del préstamo. No repone la cantidad del ítem: borrar no es devolver.
func (s *Store) DeleteLoan(ctx context.Context, id string) (*Outcome, error) {
	o := newOutcome(s, "delete_loan", id)

	s.mu.Lock()
	i := indexOf(s.loans, func(l *entity.Loan) bool { return l.ID == id })
	if i < 0 {
		s.mu.Unlock()
		return s.finish(o), nil
	}
	removed := s.loans[i]
	s.loans = removeAt(s.loans, i)
	s.mu.Unlock()

	o.Applied, o.Persisted = true, true
	o.onRevert(func() { s.loans = insertAt(s.loans, i, removed) })
	s.persist(ctx, o, "loans", func(ctx context.Context) error { return s.gw.Loans.Delete(ctx, id) })
	s.addLog(ctx, "Data peminjaman dihapus: "+removed.ItemName, entity.LogTypeDelete)
	return s.finish(o), nil
}

// ── Mantenimiento ─────────────────────────────────────────────────────────────

// ReportDamage pone el ítem en Maintenance sin tocar la cantidad. La descripción solo
// queda en el texto de la bitácora.
func (s *Store) ReportDamage(ctx context.Context, itemID, description string) (*Outcome, error) {
	status := entity.ItemStatusMaintenance
	name, o := s.setItemStatus(ctx, "report_damage", itemID, func(*entity.Item) entity.ItemStatus { return status })
	if !o.Applied {
		return s.finish(o), nil
	}
	action := "Kerusakan dilaporkan: " + name
	if d := strings.TrimSpace(description); d != "" {
		action += " (" + d + ")"
	}
	s.addLog(ctx, action, entity.LogTypeMaintenance)
	return s.finish(o), nil
}

// CompleteMaintenance recalcula el estado desde la cantidad (umbral de creación), saliendo de Maintenance.
func (s *Store) CompleteMaintenance(ctx context.Context, itemID string) (*Outcome, error) {
	name, o := s.setItemStatus(ctx, "complete_maintenance", itemID, func(it *entity.Item) entity.ItemStatus {
		return domaininv.ItemStatusFromQuantity(it.Quantity)
	})
	if !o.Applied {
		return s.finish(o), nil
	}
	s.addLog(ctx, "Maintenance selesai: "+name, entity.LogTypeMaintenance)
	return s.finish(o), nil
}

func (s *Store) setItemStatus(ctx context.Context, op, itemID string, next func(*entity.Item) entity.ItemStatus) (string, *Outcome) {
	o := newOutcome(s, op, itemID)
	s.mu.Lock()
	i := indexOf(s.items, func(it *entity.Item) bool { return it.ID == itemID })
	if i < 0 {
		s.mu.Unlock()
		return "", o
	}
	item := s.items[i]
	status := next(item)
	patch := entity.ItemPatch{Status: &status}
	s.applyItemPatchLocked(o, item, patch)
	name := item.Name
	s.mu.Unlock()

	o.Applied, o.Persisted = true, true
	s.persist(ctx, o, "items", func(ctx context.Context) error { return s.gw.Items.Update(ctx, itemID, patch) })
	return name, o
}

// ── Laboratorios y perfil ─────────────────────────────────────────────────────

// UpdateLab mezcla campos en el laboratorio.
func (s *Store) UpdateLab(ctx context.Context, id string, patch entity.LabPatch) (*Outcome, error) {
	if patch.Name != nil && strings.TrimSpace(*patch.Name) == "" {
		return nil, domain.ErrInvalidInput
	}
	o := newOutcome(s, "update_lab", id)

	s.mu.Lock()
	i := indexOf(s.labs, func(l *entity.Lab) bool { return l.ID == id })
	if i < 0 {
		s.mu.Unlock()
		return s.finish(o), nil
	}
	lab := s.labs[i]
	prev := *lab
	patch.Apply(lab)
	s.mu.Unlock()

	o.Applied, o.Persisted = true, true
	o.onRevert(func() {
		if j := indexOf(s.labs, func(l *entity.Lab) bool { return l.ID == prev.ID }); j >= 0 {
			restored := prev
			s.labs[j] = &restored
		}
	})
	s.persist(ctx, o, "labs", func(ctx context.Context) error { return s.gw.Labs.Update(ctx, id, patch) })
	s.addLog(ctx, "Detail Lab diperbarui: "+id, entity.LogTypeEdit)
	return s.finish(o), nil
}

// UpdateUserProfile mezcla campos en el perfil singleton y lo persiste completo.
func (s *Store) UpdateUserProfile(ctx context.Context, patch entity.UserProfilePatch) (*Outcome, error) {
	if patch.Name != nil && strings.TrimSpace(*patch.Name) == "" {
		return nil, domain.ErrInvalidInput
	}
	s.mu.Lock()
	prev := s.profile
	patch.Apply(&s.profile)
	if s.profile.ID == "" {
		s.profile.ID = s.session.ProfileID
	}
	updated := s.profile
	s.mu.Unlock()

	o := newOutcome(s, "update_profile", updated.ID)
	o.Applied, o.Persisted = true, true
	o.onRevert(func() { s.profile = prev })
	s.persist(ctx, o, "profiles", func(ctx context.Context) error { return s.gw.Profiles.Upsert(ctx, &updated) })
	s.addLog(ctx, "Profil pengguna diperbarui", entity.LogTypeEdit)
	return s.finish(o), nil
}

// ── Notificaciones ────────────────────────────────────────────────────────────

// MarkNotificationRead marca una notificación como leída.
func (s *Store) MarkNotificationRead(ctx context.Context, id string) (*Outcome, error) {
	o := newOutcome(s, "mark_notification_read", id)
	s.mu.Lock()
	i := indexOf(s.notifications, func(n *entity.Notification) bool { return n.ID == id })
	if i < 0 {
		s.mu.Unlock()
		return s.finish(o), nil
	}
	n := s.notifications[i]
	wasRead := n.Read
	n.Read = true
	s.mu.Unlock()

	o.Applied, o.Persisted = true, true
	o.onRevert(func() {
		if j := indexOf(s.notifications, func(x *entity.Notification) bool { return x.ID == id }); j >= 0 {
			s.notifications[j].Read = wasRead
		}
	})
	s.persist(ctx, o, "notifications", func(ctx context.Context) error { return s.gw.Notifications.MarkRead(ctx, id) })
	return s.finish(o), nil
}

// ClearNotifications descarta todas las notificaciones en memoria y también las borra
// en el gateway, para que no reaparezcan en la siguiente carga.
func (s *Store) ClearNotifications(ctx context.Context) (*Outcome, error) {
	s.mu.Lock()
	prev := s.notifications
	s.notifications = nil
	s.mu.Unlock()

	o := newOutcome(s, "clear_notifications", "")
	o.Applied, o.Persisted = true, true
	o.onRevert(func() { s.notifications = append(prev, s.notifications...) })
	s.persist(ctx, o, "notifications", s.gw.Notifications.DeleteAll)
	return s.finish(o), nil
}

// ── Internos ──────────────────────────────────────────────────────────────────

// persist ejecuta la llamada al gateway; un fallo no deshace el estado local, solo se registra.
func (s *Store) persist(ctx context.Context, o *Outcome, resource string, fn func(context.Context) error) {
	if err := fn(ctx); err != nil {
		s.log.Error().Err(err).
			Str("op", o.Op).
			Str("resource", resource).
			Str("id", o.EntityID).
			Msg("persistencia fallida, estado local conservado")
		s.rec.PersistFailure(o.Op, resource)
		o.fail(err)
	}
}

func (s *Store) finish(o *Outcome) *Outcome {
	if o.Err != nil && s.rollback {
		o.Revert()
	}
	s.rec.Mutation(o.Op, o.Applied, o.Applied && o.Persisted)
	return o
}

// applyItemPatchLocked aplica el patch y registra cómo deshacerlo. Requiere s.mu tomado.
func (s *Store) applyItemPatchLocked(o *Outcome, item *entity.Item, patch entity.ItemPatch) {
	prev := item.Clone()
	patch.Apply(item)
	o.onRevert(func() {
		if j := indexOf(s.items, func(it *entity.Item) bool { return it.ID == prev.ID }); j >= 0 {
			s.items[j] = prev.Clone()
		}
	})
}

func (s *Store) validateNewItem(in entity.NewItem) error {
	if strings.TrimSpace(in.Name) == "" {
		return fmt.Errorf("nombre requerido: %w", domain.ErrInvalidInput)
	}
	if in.Quantity < 0 {
		return fmt.Errorf("cantidad negativa: %w", domain.ErrInvalidInput)
	}
	if in.Category != "" {
		if _, ok := entity.ParseCategory(string(in.Category)); !ok {
			return fmt.Errorf("categoría %q: %w", in.Category, domain.ErrInvalidInput)
		}
	}
	if !s.labExistsLocked(in.LabID) {
		return fmt.Errorf("lab %q: %w", in.LabID, domain.ErrInvalidInput)
	}
	return nil
}

// labExistsLocked sin laboratorios cargados no se puede validar la referencia y se acepta.
func (s *Store) labExistsLocked(labID string) bool {
	if len(s.labs) == 0 {
		return true
	}
	return indexOf(s.labs, func(l *entity.Lab) bool { return l.ID == labID }) >= 0
}

func validateItemPatch(p entity.ItemPatch) error {
	if p.IsEmpty() {
		return fmt.Errorf("sin campos: %w", domain.ErrInvalidInput)
	}
	if p.Name != nil && strings.TrimSpace(*p.Name) == "" {
		return fmt.Errorf("nombre vacío: %w", domain.ErrInvalidInput)
	}
	if p.Quantity != nil && *p.Quantity < 0 {
		return fmt.Errorf("cantidad negativa: %w", domain.ErrInvalidInput)
	}
	if p.Status != nil && !p.Status.Valid() {
		return fmt.Errorf("estado %q: %w", *p.Status, domain.ErrInvalidInput)
	}
	if p.Category != nil {
		if _, ok := entity.ParseCategory(string(*p.Category)); !ok {
			return fmt.Errorf("categoría %q: %w", *p.Category, domain.ErrInvalidInput)
		}
	}
	return nil
}

func (s *Store) buildItem(in entity.NewItem) *entity.Item {
	id := newItemID()
	image := in.Image
	if image == "" {
		image = fmt.Sprintf(s.placeholder, strings.ToLower(id))
	}
	category := in.Category
	if category == "" {
		category = entity.CategoryEquipment
	}
	unit := in.Unit
	if unit == "" {
		unit = defaultUnit
	}
	status := domaininv.ItemStatusFromQuantity(in.Quantity)
	if in.Status == entity.ItemStatusMaintenance {
		status = entity.ItemStatusMaintenance
	}
	item := &entity.Item{
		ID:           id,
		LabID:        in.LabID,
		Name:         strings.TrimSpace(in.Name),
		Category:     category,
		Quantity:     in.Quantity,
		Unit:         unit,
		Location:     in.Location,
		Status:       status,
		Description:  in.Description,
		Supplier:     in.Supplier,
		SerialNumber: in.SerialNumber,
		Image:        image,
	}
	if in.AcquisitionDate != nil {
		d := *in.AcquisitionDate
		item.AcquisitionDate = &d
	}
	return item
}

func newItemID() string { return "ITEM-" + shortID() }
func newLoanID() string { return "L-" + shortID() }

func shortID() string {
	return strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
}

func indexOf[T any](list []*T, match func(*T) bool) int {
	for i, v := range list {
		if match(v) {
			return i
		}
	}
	return -1
}

// insertAt inserta v en la posición i (acotada a los límites del slice).
func insertAt[T any](list []*T, i int, v *T) []*T {
	if i < 0 {
		i = 0
	}
	if i > len(list) {
		i = len(list)
	}
	out := make([]*T, 0, len(list)+1)
	out = append(out, list[:i]...)
	out = append(out, v)
	return append(out, list[i:]...)
}

func removeAt[T any](list []*T, i int) []*T {
	out := make([]*T, 0, len(list)-1)
	out = append(out, list[:i]...)
	return append(out, list[i+1:]...)
}

func removeWhere[T any](list []*T, match func(*T) bool) []*T {
	out := list[:0:0]
	for _, v := range list {
		if !match(v) {
			out = append(out, v)
		}
	}
	return out
}
