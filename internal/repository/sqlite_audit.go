package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/alexanderramin/cocoon/internal/db"
	"github.com/alexanderramin/cocoon/internal/domain"
)

type SQLiteAuditLogRepo struct {
	db db.DBTX
}

func NewSQLiteAuditLogRepo(conn db.DBTX) *SQLiteAuditLogRepo {
	return &SQLiteAuditLogRepo{db: conn}
}

func (r *SQLiteAuditLogRepo) Create(ctx context.Context, e *domain.AuditLogEntry) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO audit_logs (id, item_id, user_id, action, old_value, new_value, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.ItemID, e.UserID, string(e.Action),
		nullableJSON(e.OldValue), nullableJSON(e.NewValue),
		formatTime(e.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting audit log: %w", err)
	}
	return nil
}

// ListByItem returns the item's audit entries newest first. Entries of a
// deleted item are still returned.
func (r *SQLiteAuditLogRepo) ListByItem(ctx context.Context, itemID string) ([]*domain.AuditLogEntry, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, item_id, user_id, action, old_value, new_value, created_at FROM audit_logs
		WHERE item_id = ? ORDER BY created_at DESC, rowid DESC`, itemID)
	if err != nil {
		return nil, fmt.Errorf("listing audit logs: %w", err)
	}
	defer rows.Close()

	var out []*domain.AuditLogEntry
	for rows.Next() {
		var e domain.AuditLogEntry
		var action, createdAt string
		var oldValue, newValue sql.NullString
		if err := rows.Scan(&e.ID, &e.ItemID, &e.UserID, &action, &oldValue, &newValue, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning audit log: %w", err)
		}
		e.Action = domain.AuditAction(action)
		if oldValue.Valid {
			e.OldValue = []byte(oldValue.String)
		}
		if newValue.Valid {
			e.NewValue = []byte(newValue.String)
		}
		if e.CreatedAt, err = parseTime(createdAt); err != nil {
			return nil, fmt.Errorf("parsing audit created_at: %w", err)
		}
		out = append(out, &e)
	}
	return out, rows.Err()
}

func nullableJSON(b []byte) any {
	if b == nil {
		return nil
	}
	return string(b)
}
