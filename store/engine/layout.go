package engine

import (
	"math"

	"github.com/paulmach/orb"
)

// Layout is the immutable grid and section model of one store
type Layout struct {
	sections []Section
	width    int
	height   int
}

// NewLayout creates a layout over a width x height grid. The section slice is copied.
func NewLayout(sections []Section, width, height int) *Layout {
	s := make([]Section, len(sections))
	copy(s, sections)
	return &Layout{
		sections: s,
		width:    width,
		height:   height,
	}
}

// Width returns the number of grid columns
func (l *Layout) Width() int {
	return l.width
}

// Height returns the number of grid rows
func (l *Layout) Height() int {
	return l.height
}

// Sections returns a copy of the configured sections in configuration order
func (l *Layout) Sections() []Section {
	s := make([]Section, len(l.sections))
	copy(s, l.sections)
	return s
}

// InBounds reports whether c lies on the grid
func (l *Layout) InBounds(c Cell) bool {
	return c.X >= 0 && c.X < l.width && c.Y >= 0 && c.Y < l.height
}

// SectionAt returns the first configured section containing c
func (l *Layout) SectionAt(c Cell) (Section, bool) {
	for _, s := range l.sections {
		if s.Bounds.Contains(c) {
			return s, true
		}
	}
	return Section{}, false
}

// IsBlocked reports whether c lies inside any section other than exemptSectionID
func (l *Layout) IsBlocked(c Cell, exemptSectionID string) bool {
	for _, s := range l.sections {
		if s.ID != exemptSectionID && s.Bounds.Contains(c) {
			return true
		}
	}
	return false
}

// DeriveBounds returns the grid size for a store: the explicit grid when configured,
// otherwise the bounding box of sections, items and entrance padded by the grid margin.
func DeriveBounds(config *StoreConfig) (width, height int) {
	if config.Grid.Width > 0 && config.Grid.Height > 0 {
		return config.Grid.Width, config.Grid.Height
	}

	margin := config.GridMargin
	if margin <= 0 {
		margin = DefaultGridMargin
	}

	bound := cellBound(config.Entrance.Cell())
	for _, s := range config.Sections {
		bound = bound.Union(rectBound(s.Bounds))
	}
	for _, item := range config.Items {
		bound = bound.Union(cellBound(item.Cell()))
	}

	// Grid origin is always (0,0); padding only grows the far edges
	padded := bound.Pad(float64(margin))
	return int(math.Ceil(padded.Max.X())), int(math.Ceil(padded.Max.Y()))
}

func cellBound(c Cell) orb.Bound {
	return rectBound(Rect{X: c.X, Y: c.Y, Width: 1, Height: 1})
}

func rectBound(r Rect) orb.Bound {
	return orb.Bound{
		Min: orb.Point{float64(r.X), float64(r.Y)},
		Max: orb.Point{float64(r.X + r.Width), float64(r.Y + r.Height)},
	}
}
