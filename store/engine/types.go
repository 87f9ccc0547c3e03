package engine

// PathMode selects how the optimizer draws each leg of an itinerary
type PathMode string

const (
	// PathWalkable uses the obstacle-aware breadth-first pathfinder
	PathWalkable PathMode = "walkable"
	// PathManhattan uses the straight horizontal-then-vertical display trail
	PathManhattan PathMode = "manhattan"

	DefaultFeetPerCell          = 10
	DefaultWalkingFeetPerMinute = 100
	DefaultGridMargin           = 2
	DefaultSearchLimit          = 8
	MaxGridSize                 = 500

	ArrivedInstruction = "You have arrived at your destination"
	EntranceName       = "Store Entrance"
)

// Cell identifies one grid square
type Cell struct {
	X int `json:"x" yaml:"x"`
	Y int `json:"y" yaml:"y"`
}

// Rect is an axis-aligned rectangle in cell units
type Rect struct {
	X      int `json:"x" yaml:"x"`
	Y      int `json:"y" yaml:"y"`
	Width  int `json:"width" yaml:"width"`
	Height int `json:"height" yaml:"height"`
}

// Contains reports whether c lies inside the half-open rectangle
func (r Rect) Contains(c Cell) bool {
	return c.X >= r.X && c.X < r.X+r.Width && c.Y >= r.Y && c.Y < r.Y+r.Height
}

// Overlaps reports whether two rectangles share at least one cell
func (r Rect) Overlaps(o Rect) bool {
	return r.X < o.X+o.Width && o.X < r.X+r.Width && r.Y < o.Y+o.Height && o.Y < r.Y+r.Height
}

// Center returns the cell at the middle of the rectangle, rounding down
func (r Rect) Center() Cell {
	return Cell{X: r.X + r.Width/2, Y: r.Y + r.Height/2}
}

// Section is a named store area
type Section struct {
	ID     string `json:"id" yaml:"id"`
	Name   string `json:"name" yaml:"name"`
	Color  string `json:"color,omitempty" yaml:"color,omitempty"`
	Bounds Rect   `json:"bounds" yaml:"bounds"`
}

// Location places an item inside a section
type Location struct {
	Section     string `json:"section" yaml:"section"`
	Aisle       int    `json:"aisle,omitempty" yaml:"aisle,omitempty"`
	Shelf       string `json:"shelf,omitempty" yaml:"shelf,omitempty"`
	Coordinates Cell   `json:"coordinates" yaml:"coordinates"`
}

// Item is a product that can be put on a shopping list
type Item struct {
	ID       string   `json:"id" yaml:"id"`
	Name     string   `json:"name" yaml:"name"`
	Category string   `json:"category" yaml:"category"`
	Deal     string   `json:"deal,omitempty" yaml:"deal,omitempty"`
	Location Location `json:"location" yaml:"location"`
}

// Cell returns the grid cell the item is shelved at
func (i Item) Cell() Cell {
	return i.Location.Coordinates
}

// StartLocation is a named starting point for a route
type StartLocation struct {
	X    int    `json:"x" yaml:"x"`
	Y    int    `json:"y" yaml:"y"`
	Name string `json:"name,omitempty" yaml:"name,omitempty"`
}

// Cell returns the start location's grid cell
func (s StartLocation) Cell() Cell {
	return Cell{X: s.X, Y: s.Y}
}

// GridSize overrides the derived grid bounds when non-zero
type GridSize struct {
	Width  int `json:"width" yaml:"width"`
	Height int `json:"height" yaml:"height"`
}

// StoreConfig represents a store layout loaded from JSON or YAML
type StoreConfig struct {
	Name                 string        `json:"name" yaml:"name"`
	Description          string        `json:"description" yaml:"description"`
	Grid                 GridSize      `json:"grid,omitempty" yaml:"grid,omitempty"`
	GridMargin           int           `json:"grid_margin,omitempty" yaml:"grid_margin,omitempty"`
	FeetPerCell          int           `json:"feet_per_cell,omitempty" yaml:"feet_per_cell,omitempty"`
	WalkingFeetPerMinute int           `json:"walking_feet_per_minute,omitempty" yaml:"walking_feet_per_minute,omitempty"`
	Entrance             StartLocation `json:"entrance" yaml:"entrance"`
	Sections             []Section     `json:"sections" yaml:"sections"`
	SectionPriority      []string      `json:"section_priority" yaml:"section_priority"`
	Items                []Item        `json:"items" yaml:"items"`
}

// Path is an ordered run of 4-adjacent cells
type Path []Cell

// RouteStep is one human-readable instruction
type RouteStep struct {
	Instruction string `json:"instruction"`
	Distance    int    `json:"distance"`
	Coordinates Cell   `json:"coordinates"`
}

// Route is the straight-line directions between two cells
type Route struct {
	Steps         []RouteStep `json:"steps"`
	TotalDistance int         `json:"total_distance"`
	EstimatedTime int         `json:"estimated_time"`
}

// RouteSegment is one leg of a multi-stop itinerary
type RouteSegment struct {
	Destination Item        `json:"destination"`
	Steps       []RouteStep `json:"steps"`
	Distance    int         `json:"distance"`
	Time        int         `json:"time"`
	Path        Path        `json:"path"`
	Reachable   bool        `json:"reachable"`
}

// OptimalRoute is the full itinerary for a shopping list
type OptimalRoute struct {
	VisitOrder    []Item         `json:"visit_order"`
	Segments      []RouteSegment `json:"segments"`
	TotalDistance int            `json:"total_distance"`
	EstimatedTime int            `json:"estimated_time"`
	FullPath      Path           `json:"full_path"`
	Unreachable   []string       `json:"unreachable,omitempty"`
}
