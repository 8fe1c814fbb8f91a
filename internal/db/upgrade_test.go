package db

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// A store created before current_solution and resource_assessment existed
// keeps its rows and gains both columns as NULL.
func TestMigrate_UpgradeFromItemsWithoutLateColumns(t *testing.T) {
	db, err := sql.Open("sqlite", MemoryPath)
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	_, err = db.Exec(`CREATE TABLE items (
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
		ryg_status          TEXT,
		tags                TEXT NOT NULL DEFAULT '[]'
	)`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO items (id, title, owner_id, created_at, tags)
		VALUES ('legacy', 'Old idea', 'user1', '2024-11-04T09:00:00Z', '["ops"]')`)
	require.NoError(t, err)

	require.NoError(t, Migrate(db))
	require.NoError(t, Migrate(db), "second run tolerates the existing columns")

	var title, tags string
	var current, resource sql.NullString
	err = db.QueryRow(`SELECT title, tags, current_solution, resource_assessment FROM items WHERE id = 'legacy'`).
		Scan(&title, &tags, &current, &resource)
	require.NoError(t, err)
	assert.Equal(t, "Old idea", title)
	assert.Equal(t, `["ops"]`, tags)
	assert.False(t, current.Valid)
	assert.False(t, resource.Valid)

	cols := columns(t, db, "items")
	assert.True(t, cols["current_solution"])
}
