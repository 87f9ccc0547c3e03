package engine

// Engine provides the main interface for route planning operations
type Engine interface {
	// Configuration
	GetConfig() *StoreConfig
	Layout() *Layout
	Units() Units

	// Pathfinding and routes
	FindPath(start, end Cell) Path
	CalculateRoute(start, end Cell) Route
	Directions(start Cell, item Item) RouteSegment
	VisitOrder(start Cell, items []Item) []Item
	CalculateOptimalRoute(start Cell, items []Item, mode PathMode) OptimalRoute

	// Catalog
	GetItem(id string) (Item, bool)
	LookupItems(ids []string) ([]Item, error)
	SearchItems(query string, limit int) []Item
	Items() []Item
	StartLocations() []StartLocation
}

// StoreEngine implements the Engine interface for one store configuration
type StoreEngine struct {
	config   *StoreConfig
	layout   *Layout
	catalog  *Catalog
	units    Units
	priority []string
}

// NewEngine creates a route planning engine with the provided configuration
func NewEngine(config *StoreConfig) (*StoreEngine, error) {
	if err := ValidateStoreConfig(config); err != nil {
		return nil, err
	}
	return newStoreEngine(config), nil
}

// NewEngineWithDefaults creates an engine for the built-in demo store
func NewEngineWithDefaults() *StoreEngine {
	return newStoreEngine(DefaultStoreConfig())
}

func newStoreEngine(config *StoreConfig) *StoreEngine {
	width, height := DeriveBounds(config)

	units := DefaultUnits
	if config.FeetPerCell > 0 {
		units.FeetPerCell = config.FeetPerCell
	}
	if config.WalkingFeetPerMinute > 0 {
		units.FeetPerMinute = config.WalkingFeetPerMinute
	}

	return &StoreEngine{
		config:   config,
		layout:   NewLayout(config.Sections, width, height),
		catalog:  NewCatalog(config.Items),
		units:    units,
		priority: sectionPriority(config),
	}
}

// sectionPriority returns the configured table, or the default table restricted to
// sections this store actually has when none is configured
func sectionPriority(config *StoreConfig) []string {
	if config.SectionPriority != nil {
		priority := make([]string, len(config.SectionPriority))
		copy(priority, config.SectionPriority)
		return priority
	}

	known := make(map[string]bool, len(config.Sections))
	for _, s := range config.Sections {
		known[s.ID] = true
	}
	priority := make([]string, 0, len(DefaultSectionPriority))
	for _, id := range DefaultSectionPriority {
		if known[id] {
			priority = append(priority, id)
		}
	}
	return priority
}

// GetConfig returns the store configuration
func (e *StoreEngine) GetConfig() *StoreConfig {
	return e.config
}

// Layout returns the grid and its sections
func (e *StoreEngine) Layout() *Layout {
	return e.layout
}

// Units returns the distance and time units used for routes
func (e *StoreEngine) Units() Units {
	return e.units
}

// SectionPriority returns the section visiting order used by VisitOrder
func (e *StoreEngine) SectionPriority() []string {
	priority := make([]string, len(e.priority))
	copy(priority, e.priority)
	return priority
}

// FindPath returns the shortest walkable path between two cells
func (e *StoreEngine) FindPath(start, end Cell) Path {
	return e.layout.FindPath(start, end)
}

// CalculateRoute returns straight-line directions in this store's units
func (e *StoreEngine) CalculateRoute(start, end Cell) Route {
	return e.units.CalculateRoute(start, end)
}

// GetItem returns a catalog item by id
func (e *StoreEngine) GetItem(id string) (Item, bool) {
	return e.catalog.Get(id)
}

// LookupItems resolves item ids in order
func (e *StoreEngine) LookupItems(ids []string) ([]Item, error) {
	return e.catalog.Lookup(ids)
}

// SearchItems searches the catalog by name and category
func (e *StoreEngine) SearchItems(query string, limit int) []Item {
	return e.catalog.Search(query, limit)
}

// Items returns the whole catalog
func (e *StoreEngine) Items() []Item {
	return e.catalog.Items()
}

// StartLocations returns the selectable starting points
func (e *StoreEngine) StartLocations() []StartLocation {
	return StartLocations(e.config)
}
