package inventory

import (
	"errors"
	"sync"
)

// Outcome resultado de una mutación del store.
//
// El cambio local se aplica antes de persistir. Si la persistencia falla, Err queda con el
// error del gateway y Persisted en false; el caller decide si llamar Revert (o el store lo
// hace solo cuando se construyó con WithRollbackOnFailure).
type Outcome struct {
	Op        string
	EntityID  string
	Applied   bool // false si el identificador no existía (no-op silencioso)
	Persisted bool
	Err       error

	store    *Store
	once     sync.Once
	reverts  []func()
	Reverted bool
}

func newOutcome(s *Store, op, id string) *Outcome {
	return &Outcome{Op: op, EntityID: id, store: s}
}

func (o *Outcome) onRevert(fn func()) {
	o.reverts = append(o.reverts, fn)
}

func (o *Outcome) fail(err error) {
	o.Err = errors.Join(o.Err, err)
	o.Persisted = false
}

// Revert deshace el cambio optimista en memoria. No toca el gateway ni la bitácora.
// Solo tiene efecto la primera vez.
func (o *Outcome) Revert() {
	if o == nil || o.store == nil {
		return
	}
	o.once.Do(func() {
		o.store.mu.Lock()
		defer o.store.mu.Unlock()
		for i := len(o.reverts) - 1; i >= 0; i-- {
			o.reverts[i]()
		}
		o.Reverted = len(o.reverts) > 0
	})
}
