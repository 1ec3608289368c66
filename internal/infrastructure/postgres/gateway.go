package postgres

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/labinventaris/internal/domain/repository"
)

// NewGateway arma los seis repositorios sobre el pool.
func NewGateway(pool *pgxpool.Pool) repository.Gateway {
	return repository.Gateway{
		Items:         NewItemRepository(pool, NewTxRunner(pool)),
		Loans:         NewLoanRepository(pool),
		Logs:          NewActivityLogRepository(pool),
		Labs:          NewLabRepository(pool),
		Notifications: NewNotificationRepository(pool),
		Profiles:      NewProfileRepository(pool),
	}
}
