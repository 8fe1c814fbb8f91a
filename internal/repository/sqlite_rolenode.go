package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/alexanderramin/cocoon/internal/db"
	"github.com/alexanderramin/cocoon/internal/domain"
)

type SQLiteRoleNodeRepo struct {
	db db.DBTX
}

func NewSQLiteRoleNodeRepo(conn db.DBTX) *SQLiteRoleNodeRepo {
	return &SQLiteRoleNodeRepo{db: conn}
}

func (r *SQLiteRoleNodeRepo) Create(ctx context.Context, n *domain.RoleNode) error {
	var parent any
	if n.ParentID != nil {
		parent = *n.ParentID
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO role_nodes (id, parent_id, title, description, level, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		n.ID, parent, n.Title, n.Description, n.Level,
		formatTime(n.CreatedAt), formatTime(n.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting role node: %w", err)
	}
	return nil
}

// List returns every node in insertion order, which is the sibling order
// of the projected tree.
func (r *SQLiteRoleNodeRepo) List(ctx context.Context) ([]domain.RoleNode, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, parent_id, title, description, level, created_at, updated_at
		FROM role_nodes ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("listing role nodes: %w", err)
	}
	defer rows.Close()

	var out []domain.RoleNode
	for rows.Next() {
		var n domain.RoleNode
		var parent sql.NullString
		var createdAt, updatedAt string
		if err := rows.Scan(&n.ID, &parent, &n.Title, &n.Description, &n.Level, &createdAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("scanning role node: %w", err)
		}
		n.ParentID = stringPtr(parent)
		if n.CreatedAt, err = parseTime(createdAt); err != nil {
			return nil, fmt.Errorf("parsing role node created_at: %w", err)
		}
		if n.UpdatedAt, err = parseTime(updatedAt); err != nil {
			return nil, fmt.Errorf("parsing role node updated_at: %w", err)
		}
		out = append(out, n)
	}
	return out, rows.Err()
}

// DeleteAll removes every node; their assignments cascade.
func (r *SQLiteRoleNodeRepo) DeleteAll(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM role_nodes`); err != nil {
		return fmt.Errorf("deleting role nodes: %w", err)
	}
	return nil
}
