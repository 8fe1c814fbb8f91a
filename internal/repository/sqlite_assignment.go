package repository

import (
	"context"
	"fmt"

	"github.com/alexanderramin/cocoon/internal/db"
	"github.com/alexanderramin/cocoon/internal/domain"
)

type SQLiteAssignmentRepo struct {
	db db.DBTX
}

func NewSQLiteAssignmentRepo(conn db.DBTX) *SQLiteAssignmentRepo {
	return &SQLiteAssignmentRepo{db: conn}
}

// Create inserts a; a duplicate (node, member) pair violates the unique
// constraint and is returned as an error.
func (r *SQLiteAssignmentRepo) Create(ctx context.Context, a *domain.Assignment) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO member_assignments (id, node_id, member_id, assigned_at) VALUES (?, ?, ?, ?)`,
		a.ID, a.NodeID, a.MemberID, formatTime(a.AssignedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting assignment: %w", err)
	}
	return nil
}

func (r *SQLiteAssignmentRepo) Delete(ctx context.Context, nodeID, memberID string) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM member_assignments WHERE node_id = ? AND member_id = ?`, nodeID, memberID)
	if err != nil {
		return 0, fmt.Errorf("deleting assignment: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("deleting assignment: %w", err)
	}
	return n, nil
}

func (r *SQLiteAssignmentRepo) List(ctx context.Context) ([]domain.Assignment, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, node_id, member_id, assigned_at FROM member_assignments ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("listing assignments: %w", err)
	}
	defer rows.Close()

	var out []domain.Assignment
	for rows.Next() {
		var a domain.Assignment
		var assignedAt string
		if err := rows.Scan(&a.ID, &a.NodeID, &a.MemberID, &assignedAt); err != nil {
			return nil, fmt.Errorf("scanning assignment: %w", err)
		}
		if a.AssignedAt, err = parseTime(assignedAt); err != nil {
			return nil, fmt.Errorf("parsing assigned_at: %w", err)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *SQLiteAssignmentRepo) DeleteAll(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM member_assignments`); err != nil {
		return fmt.Errorf("deleting assignments: %w", err)
	}
	return nil
}
