package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate applies every schema statement. Statements are idempotent, so it
// is safe to run on each start.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// ALTER TABLE ADD COLUMN has no IF NOT EXISTS form.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS items (
		id                  TEXT PRIMARY KEY,
		title               TEXT NOT NULL,
		status              TEXT NOT NULL DEFAULT 'status1'
		                    CHECK(status IN ('status1','status2','status3','status4')),
		owner_id            TEXT NOT NULL,
		created_at          TEXT NOT NULL,
		f1_locked_at        TEXT,
		problem             TEXT,
		user_ctx            TEXT,
		min_solution        TEXT,
		kpi_name            TEXT,
		kpi_baseline        TEXT,
		kpi_target          TEXT,
		first_measure_due   TEXT,
		risk_note           TEXT,
		pii_flag            INTEGER NOT NULL DEFAULT 0,
		rbac_note           TEXT,
		artefact_url        TEXT,
		timebox_from        TEXT,
		timebox_to          TEXT,
		good_enough_demo    INTEGER NOT NULL DEFAULT 0,
		good_enough_measure INTEGER NOT NULL DEFAULT 0,
		good_enough_log     INTEGER NOT NULL DEFAULT 0,
		stopp_reason        TEXT,
		ryg_status          TEXT CHECK(ryg_status IS NULL OR ryg_status IN ('red','yellow','green')),
		tags                TEXT NOT NULL DEFAULT '[]'
	)`,

	`CREATE INDEX IF NOT EXISTS idx_items_status ON items(status)`,
	`CREATE INDEX IF NOT EXISTS idx_items_created ON items(created_at)`,

	`CREATE TABLE IF NOT EXISTS comments (
		id         TEXT PRIMARY KEY,
		item_id    TEXT NOT NULL REFERENCES items(id) ON DELETE CASCADE,
		user_id    TEXT NOT NULL,
		content    TEXT NOT NULL,
		created_at TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_comments_item ON comments(item_id, created_at)`,

	// No foreign key: the delete audit row must outlive its item.
	`CREATE TABLE IF NOT EXISTS audit_logs (
		id         TEXT PRIMARY KEY,
		item_id    TEXT NOT NULL,
		user_id    TEXT NOT NULL,
		action     TEXT NOT NULL,
		old_value  TEXT,
		new_value  TEXT,
		created_at TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_audit_logs_item ON audit_logs(item_id, created_at)`,

	// parent_id is not a foreign key: unknown parents are kept as orphans.
	`CREATE TABLE IF NOT EXISTS role_nodes (
		id          TEXT PRIMARY KEY,
		parent_id   TEXT,
		title       TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		level       INTEGER NOT NULL DEFAULT 0,
		created_at  TEXT NOT NULL,
		updated_at  TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_role_nodes_parent ON role_nodes(parent_id)`,

	`CREATE TABLE IF NOT EXISTS team_members (
		id         TEXT PRIMARY KEY,
		name       TEXT NOT NULL,
		email      TEXT NOT NULL DEFAULT '',
		photo_url  TEXT NOT NULL DEFAULT '',
		role_type  TEXT NOT NULL DEFAULT '',
		bio        TEXT NOT NULL DEFAULT '',
		skills     TEXT NOT NULL DEFAULT '[]',
		created_at TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS member_assignments (
		id          TEXT PRIMARY KEY,
		node_id     TEXT NOT NULL REFERENCES role_nodes(id) ON DELETE CASCADE,
		member_id   TEXT NOT NULL REFERENCES team_members(id) ON DELETE CASCADE,
		assigned_at TEXT NOT NULL,
		UNIQUE(node_id, member_id)
	)`,

	`CREATE INDEX IF NOT EXISTS idx_member_assignments_member ON member_assignments(member_id)`,

	// Later additions to items.
	`ALTER TABLE items ADD COLUMN current_solution TEXT`,
	`ALTER TABLE items ADD COLUMN resource_assessment TEXT`,
}
