package repository

import (
	"context"
	"fmt"

	"github.com/alexanderramin/cocoon/internal/db"
	"github.com/alexanderramin/cocoon/internal/domain"
)

type SQLiteTeamMemberRepo struct {
	db db.DBTX
}

func NewSQLiteTeamMemberRepo(conn db.DBTX) *SQLiteTeamMemberRepo {
	return &SQLiteTeamMemberRepo{db: conn}
}

// Upsert inserts m or overwrites the profile of the member with the same id.
// The original created_at is kept.
func (r *SQLiteTeamMemberRepo) Upsert(ctx context.Context, m *domain.TeamMember) error {
	skills, err := encodeStrings(m.Skills)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx,
		`INSERT INTO team_members (id, name, email, photo_url, role_type, bio, skills, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			email = excluded.email,
			photo_url = excluded.photo_url,
			role_type = excluded.role_type,
			bio = excluded.bio,
			skills = excluded.skills`,
		m.ID, m.Name, m.Email, m.PhotoURL, m.RoleType, m.Bio, skills, formatTime(m.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("upserting team member: %w", err)
	}
	return nil
}

func (r *SQLiteTeamMemberRepo) List(ctx context.Context) ([]domain.TeamMember, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, email, photo_url, role_type, bio, skills, created_at
		FROM team_members ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("listing team members: %w", err)
	}
	defer rows.Close()

	var out []domain.TeamMember
	for rows.Next() {
		var m domain.TeamMember
		var skills, createdAt string
		if err := rows.Scan(&m.ID, &m.Name, &m.Email, &m.PhotoURL, &m.RoleType, &m.Bio, &skills, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning team member: %w", err)
		}
		if m.Skills, err = decodeStrings(skills); err != nil {
			return nil, err
		}
		if m.CreatedAt, err = parseTime(createdAt); err != nil {
			return nil, fmt.Errorf("parsing team member created_at: %w", err)
		}
		out = append(out, m)
	}
	return out, rows.Err()
}
