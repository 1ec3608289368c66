package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jhoicas/labinventaris/internal/domain/entity"
	"github.com/jhoicas/labinventaris/internal/domain/repository"
	"github.com/jhoicas/labinventaris/internal/infrastructure/sqlpatch"
)

var (
	_ repository.ItemRepository         = (*ItemRepo)(nil)
	_ repository.LoanRepository         = (*LoanRepo)(nil)
	_ repository.ActivityLogRepository  = (*ActivityLogRepo)(nil)
	_ repository.LabRepository          = (*LabRepo)(nil)
	_ repository.NotificationRepository = (*NotificationRepo)(nil)
	_ repository.ProfileRepository      = (*ProfileRepo)(nil)
)

// ── Items ─────────────────────────────────────────────────────────────────────

const itemColumns = `id, lab_id, name, category, quantity, unit, location, status,
	description, supplier, serial_number, acquisition_date, image`

// ItemRepo ítems sobre SQLite.
type ItemRepo struct{ db *sql.DB }

func (r *ItemRepo) List(ctx context.Context) ([]*entity.Item, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+itemColumns+` FROM items ORDER BY seq DESC`)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var list []*entity.Item
	for rows.Next() {
		var (
			it       entity.Item
			category string
			status   string
			acquired sql.NullString
		)
		if err := rows.Scan(&it.ID, &it.LabID, &it.Name, &category, &it.Quantity, &it.Unit, &it.Location,
			&status, &it.Description, &it.Supplier, &it.SerialNumber, &acquired, &it.Image); err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		if it.AcquisitionDate, err = parseDatePtr(acquired); err != nil {
			return nil, fmt.Errorf("item %s acquisition_date: %w", it.ID, err)
		}
		it.Category = entity.ItemCategory(category)
		it.Status = entity.ItemStatus(status)
		list = append(list, &it)
	}
	return list, rows.Err()
}

func (r *ItemRepo) Create(ctx context.Context, item *entity.Item) error {
	return insertItem(ctx, r.db, item)
}

// CreateMany inserta el lote en una transacción; la primera fila queda como la más reciente.
func (r *ItemRepo) CreateMany(ctx context.Context, items []*entity.Item) (retErr error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if retErr != nil {
			_ = tx.Rollback()
		}
	}()
	for i := len(items) - 1; i >= 0; i-- {
		if err := insertItem(ctx, tx, items[i]); err != nil {
			return err
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

func (r *ItemRepo) Update(ctx context.Context, id string, patch entity.ItemPatch) error {
	return update(ctx, r.db, "items", "item", id, sqlpatch.Item(patch))
}

func (r *ItemRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM items WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete item: %w", err)
	}
	return expectRow(res, "item", id)
}

func insertItem(ctx context.Context, db execer, it *entity.Item) error {
	_, err := db.ExecContext(ctx, `INSERT INTO items (`+itemColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		it.ID, it.LabID, it.Name, string(it.Category), it.Quantity, it.Unit, it.Location, string(it.Status),
		it.Description, it.Supplier, it.SerialNumber, formatDatePtr(it.AcquisitionDate), it.Image,
	)
	if err != nil {
		return wrapWrite("insert item "+it.ID, err)
	}
	return nil
}

// ── Loans ─────────────────────────────────────────────────────────────────────

const loanColumns = `id, item_id, item_name, borrower, borrower_id, id_card_image,
	borrow_date, due_date, return_date, status, quantity_borrowed`

// LoanRepo préstamos sobre SQLite.
type LoanRepo struct{ db *sql.DB }

func (r *LoanRepo) List(ctx context.Context) ([]*entity.Loan, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+loanColumns+` FROM loans ORDER BY seq DESC`)
	if err != nil {
		return nil, fmt.Errorf("list loans: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var list []*entity.Loan
	for rows.Next() {
		var (
			l             entity.Loan
			borrowed, due string
			returned      sql.NullString
			status        string
		)
		if err := rows.Scan(&l.ID, &l.ItemID, &l.ItemName, &l.Borrower, &l.BorrowerID, &l.IDCardImage,
			&borrowed, &due, &returned, &status, &l.QuantityBorrowed); err != nil {
			return nil, fmt.Errorf("scan loan: %w", err)
		}
		if l.BorrowDate, err = parseDate(borrowed); err != nil {
			return nil, fmt.Errorf("loan %s borrow_date: %w", l.ID, err)
		}
		if l.DueDate, err = parseDate(due); err != nil {
			return nil, fmt.Errorf("loan %s due_date: %w", l.ID, err)
		}
		if l.ReturnDate, err = parseDatePtr(returned); err != nil {
			return nil, fmt.Errorf("loan %s return_date: %w", l.ID, err)
		}
		l.Status = entity.LoanStatus(status)
		list = append(list, &l)
	}
	return list, rows.Err()
}

func (r *LoanRepo) Create(ctx context.Context, l *entity.Loan) error {
	_, err := r.db.ExecContext(ctx, `INSERT INTO loans (`+loanColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		l.ID, l.ItemID, l.ItemName, l.Borrower, l.BorrowerID, l.IDCardImage,
		formatDate(l.BorrowDate), formatDate(l.DueDate), formatDatePtr(l.ReturnDate), string(l.Status), l.QuantityBorrowed,
	)
	if err != nil {
		return wrapWrite("insert loan "+l.ID, err)
	}
	return nil
}

func (r *LoanRepo) Update(ctx context.Context, id string, patch entity.LoanPatch) error {
	return update(ctx, r.db, "loans", "loan", id, sqlpatch.Loan(patch))
}

func (r *LoanRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM loans WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete loan: %w", err)
	}
	return expectRow(res, "loan", id)
}

// ── Logs ──────────────────────────────────────────────────────────────────────

// ActivityLogRepo bitácora sobre SQLite.
type ActivityLogRepo struct{ db *sql.DB }

func (r *ActivityLogRepo) List(ctx context.Context) ([]*entity.ActivityLog, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, action, user_name, ts_label, log_type, created_at
		FROM activity_logs ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list activity logs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var list []*entity.ActivityLog
	for rows.Next() {
		var (
			l       entity.ActivityLog
			typ     string
			created string
		)
		if err := rows.Scan(&l.ID, &l.Action, &l.User, &l.Timestamp, &typ, &created); err != nil {
			return nil, fmt.Errorf("scan activity log: %w", err)
		}
		if l.CreatedAt, err = parseInstant(created); err != nil {
			return nil, fmt.Errorf("activity log %s created_at: %w", l.ID, err)
		}
		l.Type = entity.LogType(typ)
		list = append(list, &l)
	}
	return list, rows.Err()
}

func (r *ActivityLogRepo) Create(ctx context.Context, l *entity.ActivityLog) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO activity_logs (id, action, user_name, ts_label, log_type, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		l.ID, l.Action, l.User, l.Timestamp, string(l.Type), formatInstant(l.CreatedAt),
	)
	if err != nil {
		return wrapWrite("insert activity log", err)
	}
	return nil
}

// ── Labs ──────────────────────────────────────────────────────────────────────

// LabRepo laboratorios sobre SQLite, en orden de alta.
type LabRepo struct{ db *sql.DB }

func (r *LabRepo) List(ctx context.Context) ([]*entity.Lab, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, location, description, image FROM labs ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("list labs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var list []*entity.Lab
	for rows.Next() {
		var l entity.Lab
		if err := rows.Scan(&l.ID, &l.Name, &l.Location, &l.Description, &l.Image); err != nil {
			return nil, fmt.Errorf("scan lab: %w", err)
		}
		list = append(list, &l)
	}
	return list, rows.Err()
}

func (r *LabRepo) Create(ctx context.Context, l *entity.Lab) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO labs (id, name, location, description, image) VALUES (?, ?, ?, ?, ?)`,
		l.ID, l.Name, l.Location, l.Description, l.Image,
	)
	if err != nil {
		return wrapWrite("insert lab "+l.ID, err)
	}
	return nil
}

func (r *LabRepo) Update(ctx context.Context, id string, patch entity.LabPatch) error {
	return update(ctx, r.db, "labs", "lab", id, sqlpatch.Lab(patch))
}

// ── Notifications ─────────────────────────────────────────────────────────────

// NotificationRepo notificaciones sobre SQLite.
type NotificationRepo struct{ db *sql.DB }

func (r *NotificationRepo) List(ctx context.Context) ([]*entity.Notification, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, title, message, date_label, read, type, created_at
		FROM notifications ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var list []*entity.Notification
	for rows.Next() {
		var (
			n       entity.Notification
			typ     string
			created string
		)
		if err := rows.Scan(&n.ID, &n.Title, &n.Message, &n.Date, &n.Read, &typ, &created); err != nil {
			return nil, fmt.Errorf("scan notification: %w", err)
		}
		if n.CreatedAt, err = parseInstant(created); err != nil {
			return nil, fmt.Errorf("notification %s created_at: %w", n.ID, err)
		}
		n.Type = entity.NotificationType(typ)
		list = append(list, &n)
	}
	return list, rows.Err()
}

func (r *NotificationRepo) Create(ctx context.Context, n *entity.Notification) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO notifications (id, title, message, date_label, read, type, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		n.ID, n.Title, n.Message, n.Date, n.Read, string(n.Type), formatInstant(n.CreatedAt),
	)
	if err != nil {
		return wrapWrite("insert notification", err)
	}
	return nil
}

func (r *NotificationRepo) MarkRead(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `UPDATE notifications SET read = 1 WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("mark notification read: %w", err)
	}
	return expectRow(res, "notification", id)
}

func (r *NotificationRepo) DeleteAll(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM notifications`); err != nil {
		return fmt.Errorf("delete notifications: %w", err)
	}
	return nil
}

// ── Profiles ──────────────────────────────────────────────────────────────────

// ProfileRepo perfil singleton sobre SQLite.
type ProfileRepo struct{ db *sql.DB }

func (r *ProfileRepo) Get(ctx context.Context, id string) (*entity.UserProfile, error) {
	var p entity.UserProfile
	err := r.db.QueryRowContext(ctx, `SELECT id, name, role, avatar FROM profiles WHERE id = ?`, id).
		Scan(&p.ID, &p.Name, &p.Role, &p.Avatar)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get profile: %w", err)
	}
	return &p, nil
}

func (r *ProfileRepo) Upsert(ctx context.Context, p *entity.UserProfile) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO profiles (id, name, role, avatar) VALUES (?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET name = excluded.name, role = excluded.role, avatar = excluded.avatar`,
		p.ID, p.Name, p.Role, p.Avatar,
	)
	if err != nil {
		return fmt.Errorf("upsert profile: %w", err)
	}
	return nil
}
