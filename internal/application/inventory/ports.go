package inventory

// Recorder recibe métricas de las mutaciones del store (implementado con Prometheus en infraestructura).
type Recorder interface {
	// Mutation registra el resultado de una operación: applied=false cuando el id no existía.
	Mutation(op string, applied, persisted bool)
	// PersistFailure registra una llamada fallida al gateway para un recurso (items, loans, ...).
	PersistFailure(op, resource string)
}

type nopRecorder struct{}

func (nopRecorder) Mutation(string, bool, bool)  {}
func (nopRecorder) PersistFailure(string, string) {}
