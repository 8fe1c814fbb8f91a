package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/cocoon/internal/app"
	"github.com/alexanderramin/cocoon/internal/db"
	"github.com/alexanderramin/cocoon/internal/domain"
	"github.com/alexanderramin/cocoon/internal/hierarchy"
	"github.com/alexanderramin/cocoon/internal/repository"
	"github.com/alexanderramin/cocoon/internal/seed"
)

// SeedSource returns the snapshot that reset restores.
type SeedSource func(now time.Time) (hierarchy.Snapshot, error)

// SeedFromFile reads the reset snapshot from a YAML file instead of the
// embedded default.
func SeedFromFile(path string) SeedSource {
	return func(now time.Time) (hierarchy.Snapshot, error) {
		return seed.FromFile(path, now)
	}
}

// orgService loads a hierarchy.Chart from the store for every operation and
// writes back only what the chart changed.
type orgService struct {
	conn     db.DBTX
	uow      db.UnitOfWork
	seed     SeedSource
	observer UseCaseObserver
}

func NewOrgService(conn db.DBTX, uow db.UnitOfWork, source SeedSource, observers ...UseCaseObserver) OrgService {
	if source == nil {
		source = seed.Default
	}
	return &orgService{
		conn:     conn,
		uow:      uow,
		seed:     source,
		observer: useCaseObserverOrNoop(observers),
	}
}

func loadSnapshot(ctx context.Context, conn db.DBTX) (hierarchy.Snapshot, error) {
	var snap hierarchy.Snapshot
	var err error
	if snap.Members, err = repository.NewSQLiteTeamMemberRepo(conn).List(ctx); err != nil {
		return snap, fmt.Errorf("loading members: %w", err)
	}
	if snap.Nodes, err = repository.NewSQLiteRoleNodeRepo(conn).List(ctx); err != nil {
		return snap, fmt.Errorf("loading role nodes: %w", err)
	}
	if snap.Assignments, err = repository.NewSQLiteAssignmentRepo(conn).List(ctx); err != nil {
		return snap, fmt.Errorf("loading assignments: %w", err)
	}
	return snap, nil
}

func (s *orgService) loadChart(ctx context.Context) (*hierarchy.Chart, error) {
	snap, err := loadSnapshot(ctx, s.conn)
	if err != nil {
		return nil, err
	}
	return hierarchy.NewChart(snap), nil
}

func (s *orgService) View(ctx context.Context) (*app.OrgChartView, error) {
	chart, err := s.loadChart(ctx)
	if err != nil {
		return nil, err
	}
	snap := chart.Snapshot()

	detachedIDs := map[string]bool{}
	for _, id := range hierarchy.Detached(snap.Nodes) {
		detachedIDs[id] = true
	}
	var detached []domain.RoleNode
	for _, n := range snap.Nodes {
		if detachedIDs[n.ID] {
			detached = append(detached, n)
		}
	}

	return &app.OrgChartView{
		Forest:   chart.Tree(),
		Detached: detached,
		Members:  snap.Members,
		Assigned: chart.AssignedMemberIDs(),
	}, nil
}

func (s *orgService) EnsureSeeded(ctx context.Context) (bool, error) {
	snap, err := loadSnapshot(ctx, s.conn)
	if err != nil {
		return false, err
	}
	if len(snap.Nodes) > 0 || len(snap.Members) > 0 {
		return false, nil
	}
	if _, err := s.Reset(ctx); err != nil {
		return false, err
	}
	return true, nil
}

// Assign places the member on the node. An existing pair is returned with
// false and nothing is written. A node or member missing from the store is
// skipped the same way, with a zero Assignment, and logged as a warning.
func (s *orgService) Assign(ctx context.Context, nodeID, memberID string) (a domain.Assignment, created bool, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"node_id": nodeID, "member_id": memberID}
	defer observe(ctx, s.observer, "org-assign", startedAt, fields, &err)

	chart, err := s.loadChart(ctx)
	if err != nil {
		return a, false, err
	}
	snap := chart.Snapshot()
	if !hasNode(snap.Nodes, nodeID) {
		fields[SkippedField] = "unknown role node"
		return a, false, nil
	}
	if !hasMember(snap.Members, memberID) {
		fields[SkippedField] = "unknown team member"
		return a, false, nil
	}

	a, created = chart.Assign(nodeID, memberID)
	if !created {
		return a, false, nil
	}
	if err = repository.NewSQLiteAssignmentRepo(s.conn).Create(ctx, &a); err != nil {
		return a, false, fmt.Errorf("assigning member: %w", err)
	}
	return a, true, nil
}

// Unassign removes the pair and reports how many assignments went. An
// unknown pair removes nothing.
func (s *orgService) Unassign(ctx context.Context, nodeID, memberID string) (removed int, err error) {
	startedAt := time.Now().UTC()
	defer observe(ctx, s.observer, "org-unassign", startedAt, map[string]any{"node_id": nodeID, "member_id": memberID}, &err)

	chart, err := s.loadChart(ctx)
	if err != nil {
		return 0, err
	}
	gone := chart.Unassign(nodeID, memberID)
	if len(gone) == 0 {
		return 0, nil
	}
	if _, err = repository.NewSQLiteAssignmentRepo(s.conn).Delete(ctx, nodeID, memberID); err != nil {
		return 0, fmt.Errorf("unassigning member: %w", err)
	}
	return len(gone), nil
}

// AddNode stores a placeholder role under parentID. An unknown parent is
// kept, so the node is stored as an orphan.
func (s *orgService) AddNode(ctx context.Context, parentID *string) (n domain.RoleNode, err error) {
	startedAt := time.Now().UTC()
	defer observe(ctx, s.observer, "org-add-node", startedAt, nil, &err)

	chart, err := s.loadChart(ctx)
	if err != nil {
		return n, err
	}
	n = chart.AddNode(parentID)
	if err = repository.NewSQLiteRoleNodeRepo(s.conn).Create(ctx, &n); err != nil {
		return n, fmt.Errorf("adding role node: %w", err)
	}
	return n, nil
}

func (s *orgService) Reset(ctx context.Context) (res *app.OrgResetResult, err error) {
	startedAt := time.Now().UTC()
	defer observe(ctx, s.observer, "org-reset", startedAt, nil, &err)

	initial, err := s.seed(startedAt)
	if err != nil {
		return nil, fmt.Errorf("loading org seed: %w", err)
	}
	return s.restore(ctx, initial)
}

func (s *orgService) Import(ctx context.Context, path string) (res *app.OrgResetResult, err error) {
	startedAt := time.Now().UTC()
	defer observe(ctx, s.observer, "org-import", startedAt, map[string]any{"path": path}, &err)

	initial, err := seed.FromFile(path, startedAt)
	if err != nil {
		return nil, err
	}
	return s.restore(ctx, initial)
}

// restore makes initial the chart's nodes and assignments in one
// transaction. Seed members are upserted; other members are kept.
func (s *orgService) restore(ctx context.Context, initial hierarchy.Snapshot) (*app.OrgResetResult, error) {
	res := &app.OrgResetResult{}
	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		current, err := loadSnapshot(ctx, tx)
		if err != nil {
			return err
		}
		chart := hierarchy.NewChart(initial)
		chart.Load(current)
		chart.Reset()
		next := chart.Snapshot()

		members := repository.NewSQLiteTeamMemberRepo(tx)
		nodes := repository.NewSQLiteRoleNodeRepo(tx)
		assignments := repository.NewSQLiteAssignmentRepo(tx)

		if err := assignments.DeleteAll(ctx); err != nil {
			return err
		}
		if err := nodes.DeleteAll(ctx); err != nil {
			return err
		}
		for i := range initial.Members {
			if err := members.Upsert(ctx, &initial.Members[i]); err != nil {
				return err
			}
		}
		for i := range next.Nodes {
			if err := nodes.Create(ctx, &next.Nodes[i]); err != nil {
				return err
			}
		}
		for i := range next.Assignments {
			if err := assignments.Create(ctx, &next.Assignments[i]); err != nil {
				return err
			}
		}
		res.Nodes = len(next.Nodes)
		res.Members = len(initial.Members)
		res.Assignments = len(next.Assignments)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("restoring org chart: %w", err)
	}
	return res, nil
}

func hasNode(nodes []domain.RoleNode, id string) bool {
	for _, n := range nodes {
		if n.ID == id {
			return true
		}
	}
	return false
}

func hasMember(members []domain.TeamMember, id string) bool {
	for _, m := range members {
		if m.ID == id {
			return true
		}
	}
	return false
}
