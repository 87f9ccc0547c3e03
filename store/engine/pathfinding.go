package engine

import (
	"github.com/zyedidia/generic/mapset"
)

// neighborOffsets fixes the BFS visitation order: +x, -x, +y, -y
var neighborOffsets = [4]Cell{
	{X: 1, Y: 0},
	{X: -1, Y: 0},
	{X: 0, Y: 1},
	{X: 0, Y: -1},
}

// FindPath returns the shortest walkable path from start to end.
//
// Every section except the one containing end is an obstacle for horizontal moves;
// vertical moves are never blocked, which models main aisles that can be crossed
// front to back but not cut through sideways. When end cannot be reached the result
// is the single-cell path [start]; use IsUnreachable to detect that case.
func (l *Layout) FindPath(start, end Cell) Path {
	if start == end {
		return Path{start}
	}

	exempt := ""
	if s, ok := l.SectionAt(end); ok {
		exempt = s.ID
	}

	visited := mapset.New[Cell]()
	visited.Put(start)
	parent := make(map[Cell]Cell)
	queue := []Cell{start}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		if current == end {
			return reconstructPath(parent, start, end)
		}

		for _, d := range neighborOffsets {
			next := Cell{X: current.X + d.X, Y: current.Y + d.Y}
			if visited.Has(next) || !l.canEnter(current, next, exempt) {
				continue
			}
			visited.Put(next)
			parent[next] = current
			queue = append(queue, next)
		}
	}

	return Path{start}
}

// canEnter applies the traversal rules to a single 4-directional move
func (l *Layout) canEnter(from, to Cell, exemptSectionID string) bool {
	if !l.InBounds(to) {
		return false
	}
	if to.X != from.X && l.IsBlocked(to, exemptSectionID) {
		return false
	}
	return true
}

// reconstructPath walks parent links back from end and reverses them
func reconstructPath(parent map[Cell]Cell, start, end Cell) Path {
	path := Path{end}
	for current := end; current != start; {
		current = parent[current]
		path = append(path, current)
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

// ManhattanDisplayPath returns the obstacle-agnostic trail from start to end:
// horizontal first, then vertical.
func ManhattanDisplayPath(start, end Cell) Path {
	path := Path{start}

	if start.X != end.X {
		step := sign(end.X - start.X)
		for x := start.X + step; x != end.X+step; x += step {
			path = append(path, Cell{X: x, Y: start.Y})
		}
	}

	if start.Y != end.Y {
		step := sign(end.Y - start.Y)
		for y := start.Y + step; y != end.Y+step; y += step {
			path = append(path, Cell{X: end.X, Y: y})
		}
	}

	return path
}

// IsUnreachable reports whether path is the pathfinder's fail-closed result for start -> end
func IsUnreachable(path Path, start, end Cell) bool {
	return len(path) == 1 && start != end
}
