package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/alexanderramin/cocoon/internal/db"
	"github.com/alexanderramin/cocoon/internal/domain"
)

// itemColumns is the canonical SELECT column list for items.
const itemColumns = `id, title, status, owner_id, created_at, f1_locked_at,
		problem, user_ctx, min_solution, current_solution, resource_assessment,
		kpi_name, kpi_baseline, kpi_target, first_measure_due,
		risk_note, pii_flag, rbac_note, artefact_url,
		timebox_from, timebox_to,
		good_enough_demo, good_enough_measure, good_enough_log,
		stopp_reason, ryg_status, tags`

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// SQLiteItemRepo implements ItemRepo.
type SQLiteItemRepo struct {
	db db.DBTX
}

func NewSQLiteItemRepo(conn db.DBTX) *SQLiteItemRepo {
	return &SQLiteItemRepo{db: conn}
}

func (r *SQLiteItemRepo) Create(ctx context.Context, it *domain.Item) error {
	tags, err := encodeStrings(it.Tags)
	if err != nil {
		return err
	}
	var ryg any
	if it.RYGStatus != nil {
		ryg = string(*it.RYGStatus)
	}

	query := `INSERT INTO items (` + itemColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err = r.db.ExecContext(ctx, query,
		it.ID,
		it.Title,
		string(it.Status),
		it.OwnerID,
		formatTime(it.CreatedAt),
		nullableTimeToString(it.F1LockedAt),
		nullableString(it.Problem),
		nullableString(it.UserContext),
		nullableString(it.MinSolution),
		nullableString(it.CurrentSolution),
		nullableString(it.ResourceAssessment),
		nullableString(it.KPIName),
		nullableString(it.KPIBaseline),
		nullableString(it.KPITarget),
		nullableTimeToString(it.FirstMeasureDue),
		nullableString(it.RiskNote),
		boolToInt(it.PIIFlag),
		nullableString(it.RBACNote),
		nullableString(it.ArtefactURL),
		nullableTimeToString(it.TimeboxFrom),
		nullableTimeToString(it.TimeboxTo),
		boolToInt(it.GoodEnoughDemo),
		boolToInt(it.GoodEnoughMeasure),
		boolToInt(it.GoodEnoughLog),
		nullableString(it.StopReason),
		ryg,
		tags,
	)
	if err != nil {
		return fmt.Errorf("inserting item: %w", err)
	}
	return nil
}

func (r *SQLiteItemRepo) GetByID(ctx context.Context, id string) (*domain.Item, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+itemColumns+` FROM items WHERE id = ?`, id)
	it, err := scanItem(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("item %s: %w", id, ErrNotFound)
	}
	return it, err
}

func (r *SQLiteItemRepo) List(ctx context.Context, q ItemQuery) ([]*domain.Item, error) {
	var where []string
	var args []any
	if q.Stage != "" {
		where = append(where, "status = ?")
		args = append(args, string(q.Stage))
	}
	if q.OwnerID != "" {
		where = append(where, "owner_id = ?")
		args = append(args, q.OwnerID)
	}

	query := `SELECT ` + itemColumns + ` FROM items`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	switch q.Sort {
	case SortCreatedAsc:
		query += " ORDER BY created_at ASC, rowid ASC"
	default:
		query += " ORDER BY created_at DESC, rowid DESC"
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing items: %w", err)
	}
	defer rows.Close()

	var items []*domain.Item
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating items: %w", err)
	}
	return items, nil
}

func (r *SQLiteItemRepo) Update(ctx context.Context, id string, patch domain.ItemPatch) (*domain.Item, error) {
	sets, args, err := itemPatchColumns(patch)
	if err != nil {
		return nil, err
	}
	if len(sets) == 0 {
		return r.GetByID(ctx, id)
	}

	query := `UPDATE items SET ` + strings.Join(sets, ", ") + ` WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query, append(args, id)...)
	if err != nil {
		return nil, fmt.Errorf("updating item: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return nil, fmt.Errorf("item %s: %w", id, ErrNotFound)
	}
	return r.GetByID(ctx, id)
}

func (r *SQLiteItemRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM items WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting item: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("item %s: %w", id, ErrNotFound)
	}
	return nil
}

// itemPatchColumns turns the set fields of patch into SET fragments.
func itemPatchColumns(p domain.ItemPatch) ([]string, []any, error) {
	var sets []string
	var args []any
	set := func(col string, v any) {
		sets = append(sets, col+" = ?")
		args = append(args, v)
	}
	text := func(col string, v *string) {
		if v != nil {
			set(col, nullableString(v))
		}
	}
	flag := func(col string, v *bool) {
		if v != nil {
			set(col, boolToInt(*v))
		}
	}
	stamp := func(col string, f domain.TimeField) {
		if f.Set {
			set(col, nullableTimeToString(f.Value))
		}
	}

	if p.Title != nil {
		set("title", *p.Title)
	}
	if p.Status != nil {
		set("status", string(*p.Status))
	}
	if p.OwnerID != nil {
		set("owner_id", *p.OwnerID)
	}
	stamp("f1_locked_at", p.F1LockedAt)
	text("problem", p.Problem)
	text("user_ctx", p.UserContext)
	text("min_solution", p.MinSolution)
	text("current_solution", p.CurrentSolution)
	text("resource_assessment", p.ResourceAssessment)
	text("kpi_name", p.KPIName)
	text("kpi_baseline", p.KPIBaseline)
	text("kpi_target", p.KPITarget)
	stamp("first_measure_due", p.FirstMeasureDue)
	text("risk_note", p.RiskNote)
	flag("pii_flag", p.PIIFlag)
	text("rbac_note", p.RBACNote)
	text("artefact_url", p.ArtefactURL)
	stamp("timebox_from", p.TimeboxFrom)
	stamp("timebox_to", p.TimeboxTo)
	flag("good_enough_demo", p.GoodEnoughDemo)
	flag("good_enough_measure", p.GoodEnoughMeasure)
	flag("good_enough_log", p.GoodEnoughLog)
	text("stopp_reason", p.StopReason)
	if p.RYGStatus != nil {
		if *p.RYGStatus == "" {
			set("ryg_status", nil)
		} else {
			set("ryg_status", string(*p.RYGStatus))
		}
	}
	if p.Tags != nil {
		tags, err := encodeStrings(*p.Tags)
		if err != nil {
			return nil, nil, err
		}
		set("tags", tags)
	}
	return sets, args, nil
}

func scanItem(s rowScanner) (*domain.Item, error) {
	var it domain.Item
	var status, createdAt, tags string
	var lockedAt, firstMeasure, boxFrom, boxTo, ryg sql.NullString
	var problem, userCtx, minSolution, currentSolution, resource sql.NullString
	var kpiName, kpiBaseline, kpiTarget, risk, rbac, artefact, stop sql.NullString
	var pii, demo, measure, logged int

	err := s.Scan(
		&it.ID, &it.Title, &status, &it.OwnerID, &createdAt, &lockedAt,
		&problem, &userCtx, &minSolution, &currentSolution, &resource,
		&kpiName, &kpiBaseline, &kpiTarget, &firstMeasure,
		&risk, &pii, &rbac, &artefact,
		&boxFrom, &boxTo,
		&demo, &measure, &logged,
		&stop, &ryg, &tags,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning item: %w", err)
	}

	it.Status = domain.Stage(status)
	it.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	it.F1LockedAt = parseNullableTime(lockedAt)
	it.Problem = stringPtr(problem)
	it.UserContext = stringPtr(userCtx)
	it.MinSolution = stringPtr(minSolution)
	it.CurrentSolution = stringPtr(currentSolution)
	it.ResourceAssessment = stringPtr(resource)
	it.KPIName = stringPtr(kpiName)
	it.KPIBaseline = stringPtr(kpiBaseline)
	it.KPITarget = stringPtr(kpiTarget)
	it.FirstMeasureDue = parseNullableTime(firstMeasure)
	it.RiskNote = stringPtr(risk)
	it.PIIFlag = intToBool(pii)
	it.RBACNote = stringPtr(rbac)
	it.ArtefactURL = stringPtr(artefact)
	it.TimeboxFrom = parseNullableTime(boxFrom)
	it.TimeboxTo = parseNullableTime(boxTo)
	it.GoodEnoughDemo = intToBool(demo)
	it.GoodEnoughMeasure = intToBool(measure)
	it.GoodEnoughLog = intToBool(logged)
	it.StopReason = stringPtr(stop)
	if ryg.Valid {
		v := domain.RYG(ryg.String)
		it.RYGStatus = &v
	}
	if it.Tags, err = decodeStrings(tags); err != nil {
		return nil, err
	}
	return &it, nil
}
