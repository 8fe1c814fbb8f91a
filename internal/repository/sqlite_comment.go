package repository

import (
	"context"
	"fmt"

	"github.com/alexanderramin/cocoon/internal/db"
	"github.com/alexanderramin/cocoon/internal/domain"
)

type SQLiteCommentRepo struct {
	db db.DBTX
}

func NewSQLiteCommentRepo(conn db.DBTX) *SQLiteCommentRepo {
	return &SQLiteCommentRepo{db: conn}
}

func (r *SQLiteCommentRepo) Create(ctx context.Context, c *domain.Comment) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO comments (id, item_id, user_id, content, created_at) VALUES (?, ?, ?, ?, ?)`,
		c.ID, c.ItemID, c.UserID, c.Content, formatTime(c.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting comment: %w", err)
	}
	return nil
}

// ListByItem returns the item's comments oldest first.
func (r *SQLiteCommentRepo) ListByItem(ctx context.Context, itemID string) ([]*domain.Comment, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, item_id, user_id, content, created_at FROM comments
		WHERE item_id = ? ORDER BY created_at ASC, rowid ASC`, itemID)
	if err != nil {
		return nil, fmt.Errorf("listing comments: %w", err)
	}
	defer rows.Close()

	var out []*domain.Comment
	for rows.Next() {
		var c domain.Comment
		var createdAt string
		if err := rows.Scan(&c.ID, &c.ItemID, &c.UserID, &c.Content, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning comment: %w", err)
		}
		if c.CreatedAt, err = parseTime(createdAt); err != nil {
			return nil, fmt.Errorf("parsing comment created_at: %w", err)
		}
		out = append(out, &c)
	}
	return out, rows.Err()
}
