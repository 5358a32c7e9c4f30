// Package treemap builds and lays out hierarchical treemaps.
//
// Input rows are aggregated into one [Group] per distinct key at every
// hierarchy level (root first, leaves last). [Layout] then assigns each
// group an absolute rectangle inside the root box by recursively
// applying the squarified partition of [squarify.Pack] to the children
// of every parent, with per-level padding between the levels.
//
// Layout is deterministic: identical input ordering and weights produce
// bit-for-bit identical rectangles.
package treemap

import (
	"sort"
	"strconv"
	"strings"

	"github.com/matzehuels/mosaic/pkg/errors"
	"github.com/matzehuels/mosaic/pkg/geom"
)

// keySep separates path components in group keys. It is a control
// character so that user-facing level values cannot collide with it.
const keySep = "\x1f"

// Item is one weighted input row. Levels holds one value per hierarchy
// level, root first; it stays empty for flat (single-level) treemaps.
type Item struct {
	Levels []string
	Area   float64
	Label  string
	Fill   string
}

// Group is the aggregate of all rows sharing one key at one level.
// It is created once per layout pass and mutated only by [Layout],
// which attaches its rectangle; it is immutable afterward.
type Group struct {
	Path  []string  // level values from root to this group
	Label string    // first label among the aggregated rows
	Fill  string    // first fill value among the aggregated rows
	Area  float64   // summed weight of all aggregated rows
	Rect  geom.Rect // absolute rectangle, set by Layout
}

// Key returns the unique key of the group within its level.
func (g *Group) Key() string { return strings.Join(g.Path, keySep) }

// ParentKey returns the key of the group's parent at the previous
// level, or "" for root-level groups.
func (g *Group) ParentKey() string {
	if len(g.Path) < 2 {
		return ""
	}
	return strings.Join(g.Path[:len(g.Path)-1], keySep)
}

// Name returns the last path component, used as the display label for
// non-leaf groups.
func (g *Group) Name() string {
	if len(g.Path) == 0 {
		return ""
	}
	return g.Path[len(g.Path)-1]
}

// ID returns a human-readable identifier for the group, suitable for
// SVG element ids and JSON output.
func (g *Group) ID() string { return strings.Join(g.Path, "/") }

// DisplayLabel returns the text to draw for the group: the explicit
// label when one was given, otherwise the group's path name.
func (g *Group) DisplayLabel() string {
	if g.Label != "" {
		return g.Label
	}
	return g.Name()
}

// Level is one entry in the ordered hierarchy.
type Level struct {
	Name   string
	Groups []*Group // first-appearance order of the input rows
}

// Tree is the aggregated hierarchy, root level first.
type Tree struct {
	Levels []Level
}

// Leaf returns the innermost level.
func (t *Tree) Leaf() *Level { return &t.Levels[len(t.Levels)-1] }

// Depth returns the number of hierarchy levels.
func (t *Tree) Depth() int { return len(t.Levels) }

// Build aggregates items into a tree with one level per name in
// levels. With no level names each item becomes its own group on a
// single anonymous level (a flat treemap).
//
// At every level, rows sharing a key prefix are merged: areas are
// summed and the first row's label and fill win, preserving
// first-appearance order.
func Build(items []Item, levels []string) (*Tree, error) {
	if len(levels) == 0 {
		return buildFlat(items), nil
	}

	t := &Tree{Levels: make([]Level, len(levels))}
	for i, name := range levels {
		t.Levels[i].Name = name
	}

	for idx, it := range items {
		if len(it.Levels) != len(levels) {
			return nil, errors.New(errors.ErrCodeInvalidInput,
				"row %d has %d level values, want %d", idx, len(it.Levels), len(levels))
		}
		for li := range levels {
			lv := &t.Levels[li]
			key := strings.Join(it.Levels[:li+1], keySep)
			g := findGroup(lv, key)
			if g == nil {
				g = &Group{
					Path:  append([]string(nil), it.Levels[:li+1]...),
					Label: it.Label,
					Fill:  it.Fill,
				}
				lv.Groups = append(lv.Groups, g)
			}
			g.Area += it.Area
		}
	}
	return t, nil
}

func buildFlat(items []Item) *Tree {
	lv := Level{}
	for i, it := range items {
		lv.Groups = append(lv.Groups, &Group{
			Path:  []string{strconv.Itoa(i)},
			Label: it.Label,
			Fill:  it.Fill,
			Area:  it.Area,
		})
	}
	return &Tree{Levels: []Level{lv}}
}

func findGroup(lv *Level, key string) *Group {
	for _, g := range lv.Groups {
		if g.Key() == key {
			return g
		}
	}
	return nil
}

// sortedByArea returns the groups in descending weight order, ties
// keeping their original order. The squarify quality heuristic
// requires descending input.
func sortedByArea(groups []*Group) []*Group {
	out := append([]*Group(nil), groups...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Area > out[j].Area
	})
	return out
}
