package repository

// Gateway agrupa los puertos de persistencia que consume el store.
// No hay transacciones entre repositorios: cada operación lógica puede emitir varias llamadas.
type Gateway struct {
	Items         ItemRepository
	Loans         LoanRepository
	Logs          ActivityLogRepository
	Labs          LabRepository
	Notifications NotificationRepository
	Profiles      ProfileRepository
}
