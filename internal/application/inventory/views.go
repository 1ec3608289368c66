package inventory

import (
	"strings"
	"time"

	"github.com/jhoicas/labinventaris/internal/domain/entity"
	domaininv "github.com/jhoicas/labinventaris/internal/domain/inventory"
)

// Filtros de estado de la página de préstamos.
const (
	LoanFilterAll      = "Semua"
	LoanFilterBorrowed = string(entity.LoanStatusBorrowed)
	LoanFilterReturned = string(entity.LoanStatusReturned)
	LoanFilterOverdue  = string(entity.LoanStatusOverdue)
)

// Snapshot copia completa del estado en memoria.
type Snapshot struct {
	Loading       bool
	Items         []entity.Item
	Loans         []entity.Loan
	Logs          []entity.ActivityLog
	Labs          []entity.Lab
	Notifications []entity.Notification
	Profile       entity.UserProfile
}

// LoanFilter criterios de LoanViews. Campos vacíos no filtran.
type LoanFilter struct {
	Status string // Semua | Dipinjam | Dikembalikan | Terlambat
	Search string // nombre del ítem, prestatario o su NIM/NIP
	From   *time.Time
	To     *time.Time // inclusivo
}

// LoanView préstamo con el vencimiento calculado al momento de la lectura.
type LoanView struct {
	entity.Loan
	Overdue       bool
	DisplayStatus entity.LoanStatus
}

// Items devuelve copias de todos los ítems (más recientes primero).
func (s *Store) Items() []entity.Item {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copyItems(s.items, nil)
}

// ItemsByLab ítems de un laboratorio.
func (s *Store) ItemsByLab(labID string) []entity.Item {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copyItems(s.items, func(it *entity.Item) bool { return it.LabID == labID })
}

// Item busca un ítem por id.
func (s *Store) Item(id string) (entity.Item, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := indexOf(s.items, func(it *entity.Item) bool { return it.ID == id }); i >= 0 {
		return *s.items[i].Clone(), true
	}
	return entity.Item{}, false
}

// Loans devuelve copias de todos los préstamos.
func (s *Store) Loans() []entity.Loan {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]entity.Loan, 0, len(s.loans))
	for _, l := range s.loans {
		out = append(out, *l.Clone())
	}
	return out
}

// Loan busca un préstamo por id.
func (s *Store) Loan(id string) (entity.Loan, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := indexOf(s.loans, func(l *entity.Loan) bool { return l.ID == id }); i >= 0 {
		return *s.loans[i].Clone(), true
	}
	return entity.Loan{}, false
}

// Logs bitácora, más reciente primero.
func (s *Store) Logs() []entity.ActivityLog {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]entity.ActivityLog, 0, len(s.logs))
	for _, l := range s.logs {
		out = append(out, *l)
	}
	return out
}

// Labs devuelve los laboratorios en su orden de carga.
func (s *Store) Labs() []entity.Lab {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]entity.Lab, 0, len(s.labs))
	for _, l := range s.labs {
		out = append(out, *l)
	}
	return out
}

// Lab busca un laboratorio por id.
func (s *Store) Lab(id string) (entity.Lab, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := indexOf(s.labs, func(l *entity.Lab) bool { return l.ID == id }); i >= 0 {
		return *s.labs[i], true
	}
	return entity.Lab{}, false
}

// Notifications todas las notificaciones.
func (s *Store) Notifications() []entity.Notification {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]entity.Notification, 0, len(s.notifications))
	for _, n := range s.notifications {
		out = append(out, *n)
	}
	return out
}

// UnreadNotifications cantidad de notificaciones sin leer.
func (s *Store) UnreadNotifications() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := 0
	for _, x := range s.notifications {
		if !x.Read {
			n++
		}
	}
	return n
}

// Profile perfil del usuario actual.
func (s *Store) Profile() entity.UserProfile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.profile
}

// Snapshot copia consistente de todas las colecciones, tomada bajo un único lock.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snap := Snapshot{
		Loading:       s.loading,
		Items:         copyItems(s.items, nil),
		Loans:         make([]entity.Loan, 0, len(s.loans)),
		Logs:          make([]entity.ActivityLog, 0, len(s.logs)),
		Labs:          make([]entity.Lab, 0, len(s.labs)),
		Notifications: make([]entity.Notification, 0, len(s.notifications)),
		Profile:       s.profile,
	}
	for _, l := range s.loans {
		snap.Loans = append(snap.Loans, *l.Clone())
	}
	for _, l := range s.logs {
		snap.Logs = append(snap.Logs, *l)
	}
	for _, l := range s.labs {
		snap.Labs = append(snap.Labs, *l)
	}
	for _, n := range s.notifications {
		snap.Notifications = append(snap.Notifications, *n)
	}
	return snap
}

// LoanViews préstamos filtrados con su estado de vencimiento calculado respecto a now.
func (s *Store) LoanViews(f LoanFilter, now time.Time) []LoanView {
	search := strings.ToLower(strings.TrimSpace(f.Search))
	var from, to time.Time
	if f.From != nil {
		from = s.session.Today(*f.From)
	}
	if f.To != nil {
		to = s.session.Today(*f.To).AddDate(0, 0, 1)
	}

	out := make([]LoanView, 0)
	for _, l := range s.Loans() {
		overdue := domaininv.LoanIsOverdue(l.DueDate, l.Status, now)
		switch f.Status {
		case "", LoanFilterAll:
		case LoanFilterOverdue:
			if !overdue {
				continue
			}
		default:
			if string(l.Status) != f.Status {
				continue
			}
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(l.ItemName), search) &&
			!strings.Contains(strings.ToLower(l.Borrower), search) &&
			!strings.Contains(strings.ToLower(l.BorrowerID), search) {
			continue
		}
		if f.From != nil && l.BorrowDate.Before(from) {
			continue
		}
		if f.To != nil && !l.BorrowDate.Before(to) {
			continue
		}
		out = append(out, LoanView{
			Loan:          l,
			Overdue:       overdue,
			DisplayStatus: domaininv.DisplayLoanStatus(l.DueDate, l.Status, now),
		})
	}
	return out
}

func copyItems(list []*entity.Item, keep func(*entity.Item) bool) []entity.Item {
	out := make([]entity.Item, 0, len(list))
	for _, it := range list {
		if keep == nil || keep(it) {
			out = append(out, *it.Clone())
		}
	}
	return out
}
