// Package hierarchy projects the flat org-chart lists (role nodes, team
// members, assignments) into a decorated forest, and holds the in-memory
// chart model that assign/unassign/add/reset operate on.
package hierarchy

import "github.com/alexanderramin/cocoon/internal/domain"

// MemberAssignment is an assignment joined to its member record.
type MemberAssignment struct {
	domain.Assignment
	Member domain.TeamMember
}

// TreeNode is a role node decorated with its resolved assignments and its
// derived children. Children are rebuilt on every projection.
type TreeNode struct {
	domain.RoleNode
	Assignments []MemberAssignment
	Children    []*TreeNode
}

type reach int

const (
	reachUnknown reach = iota
	reachRooted
	reachDetached
)

// BuildTree returns the forest rooted at every node whose parent is nil.
//
// Assignments are attached in list order; those whose member cannot be
// resolved are dropped. A node whose parent id is not in the node set is an
// orphan and does not appear, nor does anything beneath it. Nodes on a parent
// cycle never reach a root and are treated the same way. Roots and siblings
// keep the order of the input node list.
func BuildTree(nodes []domain.RoleNode, assignments []domain.Assignment, members []domain.TeamMember) []*TreeNode {
	order, byID := indexNodes(nodes)
	state := classify(order, byID)

	memberByID := make(map[string]domain.TeamMember, len(members))
	for _, m := range members {
		memberByID[m.ID] = m
	}
	assignmentsByNode := make(map[string][]MemberAssignment)
	for _, a := range assignments {
		m, ok := memberByID[a.MemberID]
		if !ok {
			continue
		}
		assignmentsByNode[a.NodeID] = append(assignmentsByNode[a.NodeID], MemberAssignment{Assignment: a, Member: m})
	}

	childIDs := make(map[string][]string)
	var rootIDs []string
	for _, id := range order {
		if state[id] != reachRooted {
			continue
		}
		n := byID[id]
		if n.ParentID == nil {
			rootIDs = append(rootIDs, id)
			continue
		}
		childIDs[*n.ParentID] = append(childIDs[*n.ParentID], id)
	}

	var build func(id string) *TreeNode
	build = func(id string) *TreeNode {
		tn := &TreeNode{
			RoleNode:    byID[id],
			Assignments: assignmentsByNode[id],
		}
		for _, cid := range childIDs[id] {
			tn.Children = append(tn.Children, build(cid))
		}
		return tn
	}

	forest := make([]*TreeNode, 0, len(rootIDs))
	for _, id := range rootIDs {
		forest = append(forest, build(id))
	}
	return forest
}

// Detached returns the ids of nodes that BuildTree leaves out: orphans, nodes
// on a parent cycle, and their descendants. Order follows the input list.
func Detached(nodes []domain.RoleNode) []string {
	order, byID := indexNodes(nodes)
	state := classify(order, byID)
	var out []string
	for _, id := range order {
		if state[id] == reachDetached {
			out = append(out, id)
		}
	}
	return out
}

// Walk visits the forest in pre-order. depth is 0 for roots; last reports
// whether the node is the final sibling at its level.
func Walk(forest []*TreeNode, fn func(n *TreeNode, depth int, last bool)) {
	var visit func(list []*TreeNode, depth int)
	visit = func(list []*TreeNode, depth int) {
		for i, n := range list {
			fn(n, depth, i == len(list)-1)
			visit(n.Children, depth+1)
		}
	}
	visit(forest, 0)
}

// Count returns the number of nodes in the forest.
func Count(forest []*TreeNode) int {
	n := 0
	Walk(forest, func(*TreeNode, int, bool) { n++ })
	return n
}

// indexNodes keys nodes by id. A repeated id keeps its first position and the
// last record seen.
func indexNodes(nodes []domain.RoleNode) ([]string, map[string]domain.RoleNode) {
	order := make([]string, 0, len(nodes))
	byID := make(map[string]domain.RoleNode, len(nodes))
	for _, n := range nodes {
		if _, seen := byID[n.ID]; !seen {
			order = append(order, n.ID)
		}
		byID[n.ID] = n
	}
	return order, byID
}

// classify follows each parent chain once. A chain reaching a nil parent is
// rooted; one hitting a missing id or revisiting itself is detached.
func classify(order []string, byID map[string]domain.RoleNode) map[string]reach {
	state := make(map[string]reach, len(order))
	for _, start := range order {
		if state[start] != reachUnknown {
			continue
		}
		var path []string
		onPath := make(map[string]bool)
		result := reachDetached
		id := start
		for {
			if s := state[id]; s != reachUnknown {
				result = s
				break
			}
			if onPath[id] {
				break
			}
			n, ok := byID[id]
			if !ok {
				break
			}
			path = append(path, id)
			onPath[id] = true
			if n.ParentID == nil {
				result = reachRooted
				break
			}
			id = *n.ParentID
		}
		for _, p := range path {
			state[p] = result
		}
	}
	return state
}
