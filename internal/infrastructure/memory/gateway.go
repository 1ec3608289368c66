// Package memory implementa el gateway de persistencia en memoria (modo desarrollo y tests).
package memory

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/jhoicas/labinventaris/internal/domain"
	"github.com/jhoicas/labinventaris/internal/domain/entity"
	"github.com/jhoicas/labinventaris/internal/domain/repository"
)

// DB tablas en memoria. Las listas se guardan más recientes primero, igual que el orden
// que devuelven los gateways SQL.
type DB struct {
	mu            sync.RWMutex
	items         []*entity.Item
	loans         []*entity.Loan
	logs          []*entity.ActivityLog
	labs          []*entity.Lab
	notifications []*entity.Notification
	profiles      map[string]entity.UserProfile
}

// NewDB crea una base vacía.
func NewDB() *DB {
	return &DB{profiles: make(map[string]entity.UserProfile)}
}

// Gateway expone la base como los seis repositorios del dominio.
func (db *DB) Gateway() repository.Gateway {
	return repository.Gateway{
		Items:         &ItemRepository{db: db},
		Loans:         &LoanRepository{db: db},
		Logs:          &ActivityLogRepository{db: db},
		Labs:          &LabRepository{db: db},
		Notifications: &NotificationRepository{db: db},
		Profiles:      &ProfileRepository{db: db},
	}
}

// NewGateway atajo para una base nueva.
func NewGateway() repository.Gateway { return NewDB().Gateway() }

func index[T any](list []*T, id string, key func(*T) string) int {
	for i, v := range list {
		if key(v) == id {
			return i
		}
	}
	return -1
}

func prepend[T any](list []*T, v ...*T) []*T {
	out := make([]*T, 0, len(list)+len(v))
	out = append(out, v...)
	return append(out, list...)
}

// newestFirst ordena por fecha descendente; a igual fecha conserva el orden de inserción.
func newestFirst[T any](list []*T, at func(*T) time.Time) {
	slices.SortStableFunc(list, func(a, b *T) int { return at(b).Compare(at(a)) })
}

func notFound(kind, id string) error {
	return fmt.Errorf("%s %s: %w", kind, id, domain.ErrNotFound)
}

// ── Items ─────────────────────────────────────────────────────────────────────

// ItemRepository implementa repository.ItemRepository.
type ItemRepository struct{ db *DB }

func itemKey(it *entity.Item) string { return it.ID }

func (r *ItemRepository) List(ctx context.Context) ([]*entity.Item, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	out := make([]*entity.Item, 0, len(r.db.items))
	for _, it := range r.db.items {
		out = append(out, it.Clone())
	}
	return out, nil
}

func (r *ItemRepository) Create(ctx context.Context, item *entity.Item) error {
	return r.CreateMany(ctx, []*entity.Item{item})
}

func (r *ItemRepository) CreateMany(ctx context.Context, items []*entity.Item) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	batch := make([]*entity.Item, 0, len(items))
	seen := make(map[string]struct{}, len(items))
	for _, it := range items {
		if _, dup := seen[it.ID]; dup || index(r.db.items, it.ID, itemKey) >= 0 {
			return fmt.Errorf("item %s: %w", it.ID, domain.ErrConflict)
		}
		seen[it.ID] = struct{}{}
		batch = append(batch, it.Clone())
	}
	r.db.items = prepend(r.db.items, batch...)
	return nil
}

func (r *ItemRepository) Update(ctx context.Context, id string, patch entity.ItemPatch) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	i := index(r.db.items, id, itemKey)
	if i < 0 {
		return notFound("item", id)
	}
	patch.Apply(r.db.items[i])
	return nil
}

func (r *ItemRepository) Delete(ctx context.Context, id string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	i := index(r.db.items, id, itemKey)
	if i < 0 {
		return notFound("item", id)
	}
	r.db.items = append(r.db.items[:i:i], r.db.items[i+1:]...)
	return nil
}

// ── Loans ─────────────────────────────────────────────────────────────────────

// LoanRepository implementa repository.LoanRepository.
type LoanRepository struct{ db *DB }

func loanKey(l *entity.Loan) string { return l.ID }

func (r *LoanRepository) List(ctx context.Context) ([]*entity.Loan, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	out := make([]*entity.Loan, 0, len(r.db.loans))
	for _, l := range r.db.loans {
		out = append(out, l.Clone())
	}
	return out, nil
}

func (r *LoanRepository) Create(ctx context.Context, loan *entity.Loan) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if index(r.db.loans, loan.ID, loanKey) >= 0 {
		return fmt.Errorf("loan %s: %w", loan.ID, domain.ErrConflict)
	}
	r.db.loans = prepend(r.db.loans, loan.Clone())
	return nil
}

func (r *LoanRepository) Update(ctx context.Context, id string, patch entity.LoanPatch) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	i := index(r.db.loans, id, loanKey)
	if i < 0 {
		return notFound("loan", id)
	}
	patch.Apply(r.db.loans[i])
	return nil
}

func (r *LoanRepository) Delete(ctx context.Context, id string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	i := index(r.db.loans, id, loanKey)
	if i < 0 {
		return notFound("loan", id)
	}
	r.db.loans = append(r.db.loans[:i:i], r.db.loans[i+1:]...)
	return nil
}

// ── Logs ──────────────────────────────────────────────────────────────────────

// ActivityLogRepository implementa repository.ActivityLogRepository.
type ActivityLogRepository struct{ db *DB }

func (r *ActivityLogRepository) List(ctx context.Context) ([]*entity.ActivityLog, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	out := make([]*entity.ActivityLog, 0, len(r.db.logs))
	for _, l := range r.db.logs {
		c := *l
		out = append(out, &c)
	}
	newestFirst(out, func(l *entity.ActivityLog) time.Time { return l.CreatedAt })
	return out, nil
}

func (r *ActivityLogRepository) Create(ctx context.Context, log *entity.ActivityLog) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if index(r.db.logs, log.ID, func(l *entity.ActivityLog) string { return l.ID }) >= 0 {
		return fmt.Errorf("log %s: %w", log.ID, domain.ErrConflict)
	}
	c := *log
	r.db.logs = prepend(r.db.logs, &c)
	return nil
}

// ── Labs ──────────────────────────────────────────────────────────────────────

// LabRepository implementa repository.LabRepository. Conserva el orden de inserción.
type LabRepository struct{ db *DB }

func labKey(l *entity.Lab) string { return l.ID }

func (r *LabRepository) List(ctx context.Context) ([]*entity.Lab, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	out := make([]*entity.Lab, 0, len(r.db.labs))
	for _, l := range r.db.labs {
		c := *l
		out = append(out, &c)
	}
	return out, nil
}

func (r *LabRepository) Create(ctx context.Context, lab *entity.Lab) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if index(r.db.labs, lab.ID, labKey) >= 0 {
		return fmt.Errorf("lab %s: %w", lab.ID, domain.ErrConflict)
	}
	c := *lab
	r.db.labs = append(r.db.labs, &c)
	return nil
}

func (r *LabRepository) Update(ctx context.Context, id string, patch entity.LabPatch) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	i := index(r.db.labs, id, labKey)
	if i < 0 {
		return notFound("lab", id)
	}
	patch.Apply(r.db.labs[i])
	return nil
}

// ── Notifications ─────────────────────────────────────────────────────────────

// NotificationRepository implementa repository.NotificationRepository.
type NotificationRepository struct{ db *DB }

func (r *NotificationRepository) List(ctx context.Context) ([]*entity.Notification, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	out := make([]*entity.Notification, 0, len(r.db.notifications))
	for _, n := range r.db.notifications {
		c := *n
		out = append(out, &c)
	}
	newestFirst(out, func(n *entity.Notification) time.Time { return n.CreatedAt })
	return out, nil
}

func (r *NotificationRepository) Create(ctx context.Context, n *entity.Notification) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if index(r.db.notifications, n.ID, func(x *entity.Notification) string { return x.ID }) >= 0 {
		return fmt.Errorf("notification %s: %w", n.ID, domain.ErrConflict)
	}
	c := *n
	r.db.notifications = prepend(r.db.notifications, &c)
	return nil
}

func (r *NotificationRepository) MarkRead(ctx context.Context, id string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	i := index(r.db.notifications, id, func(n *entity.Notification) string { return n.ID })
	if i < 0 {
		return notFound("notification", id)
	}
	r.db.notifications[i].Read = true
	return nil
}

func (r *NotificationRepository) DeleteAll(ctx context.Context) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	r.db.notifications = nil
	return nil
}

// ── Profiles ──────────────────────────────────────────────────────────────────

// ProfileRepository implementa repository.ProfileRepository.
type ProfileRepository struct{ db *DB }

func (r *ProfileRepository) Get(ctx context.Context, id string) (*entity.UserProfile, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	p, ok := r.db.profiles[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (r *ProfileRepository) Upsert(ctx context.Context, profile *entity.UserProfile) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	r.db.profiles[profile.ID] = *profile
	return nil
}
