package engine

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// wallStoreConfig builds a 10x10 store split by a full-height wall at x=5
func wallStoreConfig() *StoreConfig {
	return &StoreConfig{
		Name:     "Wall Store",
		Grid:     GridSize{Width: 10, Height: 10},
		Entrance: StartLocation{X: 1, Y: 1},
		Sections: []Section{
			{ID: "wall", Name: "Wall", Bounds: Rect{X: 5, Y: 0, Width: 1, Height: 10}},
			{ID: "near", Name: "Near", Bounds: Rect{X: 1, Y: 4, Width: 3, Height: 3}},
			{ID: "far", Name: "Far", Bounds: Rect{X: 7, Y: 4, Width: 3, Height: 3}},
		},
		SectionPriority: []string{},
		Items: []Item{
			{ID: "n1", Name: "Near Thing", Category: "Test", Location: Location{Section: "near", Coordinates: Cell{X: 2, Y: 5}}},
			{ID: "f1", Name: "Far Thing", Category: "Test", Location: Location{Section: "far", Coordinates: Cell{X: 8, Y: 5}}},
		},
	}
}

func newDefaultEngine(t *testing.T) *StoreEngine {
	t.Helper()
	e, err := NewEngine(DefaultStoreConfig())
	require.NoError(t, err)
	return e
}

func mustItems(t *testing.T, e Engine, ids ...string) []Item {
	t.Helper()
	items, err := e.LookupItems(ids)
	require.NoError(t, err)
	return items
}

func itemIDs(items []Item) []string {
	ids := make([]string, len(items))
	for i, item := range items {
		ids[i] = item.ID
	}
	return ids
}

// requireContiguous asserts every consecutive pair of cells is 4-adjacent and no cell repeats
func requireContiguous(t *testing.T, path Path) {
	t.Helper()
	seen := make(map[Cell]bool, len(path))
	for i, c := range path {
		require.Falsef(t, seen[c], "cell %v revisited at index %d", c, i)
		seen[c] = true
		if i > 0 {
			require.Equalf(t, 1, ManhattanDistance(path[i-1], c), "cells %v and %v are not adjacent", path[i-1], c)
		}
	}
}
