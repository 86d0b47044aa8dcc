// Package catalog is the storefront catalog engine: the category forest,
// facet derivation, product filtering and the navigation state machine that
// ties them together. Everything except the Controller is pure.
package catalog

import (
	"sort"

	"github.com/IlyaBatulin/lesopilka/models"
	"github.com/sirupsen/logrus"
)

// Tree indexes a flat category list by id. Child lists are kept in display
// order. Parent links are never followed by pointer, so a malformed graph
// (dangling parent, cycle) can't make traversal loop.
type Tree struct {
	byID     map[int64]models.Category
	children map[int64][]int64
	roots    []int64
	log      *logrus.Entry
}

// NewTree indexes records in a single pass. Duplicate ids keep the first record.
func NewTree(records []models.Category) *Tree {
	t := &Tree{
		byID:     make(map[int64]models.Category, len(records)),
		children: make(map[int64][]int64),
		log:      logrus.WithField("component", "catalog.tree"),
	}

	for _, rec := range records {
		if _, dup := t.byID[rec.ID]; dup {
			t.log.WithField("category_id", rec.ID).Warn("duplicate category record ignored")
			continue
		}
		t.byID[rec.ID] = rec
		if rec.ParentID == nil {
			t.roots = append(t.roots, rec.ID)
		} else {
			t.children[*rec.ParentID] = append(t.children[*rec.ParentID], rec.ID)
		}
	}

	t.sortSiblings(t.roots)
	for parent, kids := range t.children {
		t.sortSiblings(kids)
		if _, ok := t.byID[parent]; !ok {
			t.log.WithFields(logrus.Fields{
				"parent_id": parent,
				"orphans":   kids,
			}).Warn("categories reference a missing parent")
		}
	}
	return t
}

// sortSiblings orders by position ascending; categories without a position
// come after positioned ones and are ordered by id among themselves.
func (t *Tree) sortSiblings(ids []int64) {
	sort.SliceStable(ids, func(i, j int) bool {
		a, b := t.byID[ids[i]], t.byID[ids[j]]
		switch {
		case a.Position == nil && b.Position == nil:
			return a.ID < b.ID
		case a.Position == nil:
			return false
		case b.Position == nil:
			return true
		case *a.Position != *b.Position:
			return *a.Position < *b.Position
		default:
			return a.ID < b.ID
		}
	})
}

func (t *Tree) Len() int { return len(t.byID) }

// Get returns the category with id
func (t *Tree) Get(id int64) (models.Category, bool) {
	c, ok := t.byID[id]
	return c, ok
}

func (t *Tree) Has(id int64) bool {
	_, ok := t.byID[id]
	return ok
}

func (t *Tree) HasChildren(id int64) bool {
	return len(t.children[id]) > 0
}

// Roots returns the top-level categories in display order
func (t *Tree) Roots() []models.Category {
	return t.collect(t.roots)
}

// Children returns the direct children of id in display order
func (t *Tree) Children(id int64) []models.Category {
	return t.collect(t.children[id])
}

func (t *Tree) collect(ids []int64) []models.Category {
	out := make([]models.Category, 0, len(ids))
	for _, id := range ids {
		out = append(out, t.byID[id])
	}
	return out
}

// Forest returns the nested root → leaf structure. Only categories with no
// parent are roots; orphans of a missing parent are left out.
func (t *Tree) Forest() []models.CategoryNode {
	visited := make(map[int64]bool, len(t.byID))
	return t.nodes(t.roots, visited)
}

func (t *Tree) nodes(ids []int64, visited map[int64]bool) []models.CategoryNode {
	out := make([]models.CategoryNode, 0, len(ids))
	for _, id := range ids {
		if visited[id] {
			t.log.WithField("category_id", id).Error("category graph revisits a node, skipping")
			continue
		}
		visited[id] = true
		out = append(out, models.CategoryNode{
			Category:      t.byID[id],
			Subcategories: t.nodes(t.children[id], visited),
		})
	}
	return out
}

// ForestWithCounts is Forest with ProductCount set to the number of products
// in each category's whole subtree. direct holds per-category counts.
func (t *Tree) ForestWithCounts(direct map[int64]int) []models.CategoryNode {
	forest := t.Forest()
	for i := range forest {
		sumCounts(&forest[i], direct)
	}
	return forest
}

func sumCounts(n *models.CategoryNode, direct map[int64]int) int {
	total := direct[n.ID]
	for i := range n.Subcategories {
		total += sumCounts(&n.Subcategories[i], direct)
	}
	n.ProductCount = total
	return total
}

// Descendants returns every category reachable downward from rootID, not
// including rootID, breadth first in display order. A node seen twice means
// the data contains a cycle; it is logged and skipped.
func (t *Tree) Descendants(rootID int64) []int64 {
	var out []int64
	visited := map[int64]bool{rootID: true}
	queue := append([]int64(nil), t.children[rootID]...)

	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		if visited[id] {
			t.log.WithFields(logrus.Fields{
				"root_id":     rootID,
				"category_id": id,
			}).Error("category cycle detected, skipping revisit")
			continue
		}
		visited[id] = true
		out = append(out, id)
		queue = append(queue, t.children[id]...)
	}
	return out
}

// Scope is the category filter for a selection: the category itself plus
// all of its descendants. ok is false for an unknown id.
func (t *Tree) Scope(id int64) (ids []int64, ok bool) {
	if !t.Has(id) {
		return nil, false
	}
	return append([]int64{id}, t.Descendants(id)...), true
}

// Path walks parent links from leafID up to its root and returns the crumbs
// root first. A missing parent or a cycle truncates the walk.
func (t *Tree) Path(leafID int64) []models.Crumb {
	var rev []models.Crumb
	seen := make(map[int64]bool)

	id, ok := leafID, true
	for ok {
		cat, found := t.byID[id]
		if !found {
			if len(rev) > 0 {
				t.log.WithField("category_id", id).Warn("breadcrumb parent missing, path truncated")
			}
			break
		}
		if seen[id] {
			t.log.WithField("category_id", id).Error("category cycle in parent chain, path truncated")
			break
		}
		seen[id] = true
		rev = append(rev, models.Crumb{ID: cat.ID, Name: cat.Name})

		if cat.ParentID == nil {
			break
		}
		id = *cat.ParentID
	}

	path := make([]models.Crumb, len(rev))
	for i, c := range rev {
		path[len(rev)-1-i] = c
	}
	return path
}

// IsAncestor reports whether ancestorID appears on the parent chain of id
func (t *Tree) IsAncestor(ancestorID, id int64) bool {
	for _, crumb := range t.Path(id) {
		if crumb.ID == ancestorID && crumb.ID != id {
			return true
		}
	}
	return false
}

// BuildTree arranges flat category records into the root → leaf forest
func BuildTree(records []models.Category) []models.CategoryNode {
	return NewTree(records).Forest()
}

// CollectDescendantIDs returns all category ids below rootID
func CollectDescendantIDs(rootID int64, records []models.Category) []int64 {
	return NewTree(records).Descendants(rootID)
}

// BuildPath returns root → leaf breadcrumbs for leafID
func BuildPath(leafID int64, records []models.Category) []models.Crumb {
	return NewTree(records).Path(leafID)
}
