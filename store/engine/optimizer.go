package engine

import (
	"errors"
	"fmt"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// ErrInvalidPathMode is returned by ParsePathMode for unknown modes
var ErrInvalidPathMode = errors.New("invalid path mode")

// ParsePathMode parses a path mode name; the empty string selects PathWalkable
func ParsePathMode(s string) (PathMode, error) {
	switch PathMode(s) {
	case "", PathWalkable:
		return PathWalkable, nil
	case PathManhattan:
		return PathManhattan, nil
	}
	return "", fmt.Errorf("%w: %q (use %q or %q)", ErrInvalidPathMode, s, PathWalkable, PathManhattan)
}

// VisitOrder decides the order in which items are picked up.
//
// Items are grouped by section. Sections are visited in priority-table order, then any
// sections missing from the table in the order they first appear in items. Inside a
// section the next item is always the one nearest (Manhattan) to the current position.
func (e *StoreEngine) VisitOrder(start Cell, items []Item) []Item {
	return orderBySectionPriority(start, items, e.priority)
}

// CalculateOptimalRoute orders items and stitches one leg per item into an itinerary
func (e *StoreEngine) CalculateOptimalRoute(start Cell, items []Item, mode PathMode) OptimalRoute {
	visitOrder := e.VisitOrder(start, items)

	result := OptimalRoute{
		VisitOrder: visitOrder,
		Segments:   make([]RouteSegment, 0, len(visitOrder)),
		FullPath:   Path{},
	}

	current := start
	for i, item := range visitOrder {
		segment := e.leg(current, item, mode)

		trail := segment.Path
		if !segment.Reachable {
			// Keep the itinerary contiguous; the segment itself still reports the failure
			trail = ManhattanDisplayPath(current, item.Cell())
			result.Unreachable = append(result.Unreachable, item.ID)
		}
		if i > 0 {
			trail = trail[1:]
		}
		result.FullPath = append(result.FullPath, trail...)

		result.Segments = append(result.Segments, segment)
		result.TotalDistance += segment.Distance
		current = item.Cell()
	}

	result.EstimatedTime = EstimateMinutes(result.TotalDistance, e.units.FeetPerMinute)
	return result
}

// Directions returns a single walkable leg from start to item
func (e *StoreEngine) Directions(start Cell, item Item) RouteSegment {
	return e.leg(start, item, PathWalkable)
}

func (e *StoreEngine) leg(from Cell, item Item, mode PathMode) RouteSegment {
	to := item.Cell()
	route := e.units.CalculateRoute(from, to)

	var path Path
	reachable := true
	switch mode {
	case PathManhattan:
		path = ManhattanDisplayPath(from, to)
	default:
		path = e.layout.FindPath(from, to)
		reachable = !IsUnreachable(path, from, to)
	}

	return RouteSegment{
		Destination: item,
		Steps:       route.Steps,
		Distance:    route.TotalDistance,
		Time:        route.EstimatedTime,
		Path:        path,
		Reachable:   reachable,
	}
}

func orderBySectionPriority(start Cell, items []Item, priority []string) []Item {
	ordered := make([]Item, 0, len(items))
	if len(items) == 0 {
		return ordered
	}

	groups := orderedmap.New[string, []Item]()
	for _, item := range items {
		group, _ := groups.Get(item.Location.Section)
		groups.Set(item.Location.Section, append(group, item))
	}

	current := start
	visit := func(group []Item) {
		walk := nearestNeighborOrder(current, group)
		ordered = append(ordered, walk...)
		current = walk[len(walk)-1].Cell()
	}

	for _, sectionID := range priority {
		group, ok := groups.Get(sectionID)
		if !ok {
			continue
		}
		visit(group)
		groups.Delete(sectionID)
	}

	for pair := groups.Oldest(); pair != nil; pair = pair.Next() {
		visit(pair.Value)
	}

	return ordered
}

// nearestNeighborOrder repeatedly moves to the closest unvisited item; ties keep input order
func nearestNeighborOrder(start Cell, items []Item) []Item {
	unvisited := make([]Item, len(items))
	copy(unvisited, items)
	visited := make([]Item, 0, len(items))
	current := start

	for len(unvisited) > 0 {
		nearest := 0
		nearestDistance := ManhattanDistance(current, unvisited[0].Cell())
		for i := 1; i < len(unvisited); i++ {
			if d := ManhattanDistance(current, unvisited[i].Cell()); d < nearestDistance {
				nearest = i
				nearestDistance = d
			}
		}

		item := unvisited[nearest]
		unvisited = append(unvisited[:nearest], unvisited[nearest+1:]...)
		visited = append(visited, item)
		current = item.Cell()
	}

	return visited
}
