package engine

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"
)

// DefaultSectionPriority is the typical walk through a grocery store, front to back
var DefaultSectionPriority = []string{
	"produce", "dairy", "meat", "deli", "bakery",
	"frozen", "pantry", "snacks", "beverages", "health",
}

// ValidateStoreConfig checks a store configuration and reports every problem found
func ValidateStoreConfig(config *StoreConfig) error {
	if config == nil {
		return fmt.Errorf("config validation: config is nil")
	}

	var err error
	fail := func(format string, args ...any) {
		err = multierr.Append(err, fmt.Errorf("config validation: "+format, args...))
	}

	if config.Name == "" {
		fail("name is required")
	}

	explicitGrid := config.Grid.Width != 0 || config.Grid.Height != 0
	if explicitGrid {
		if config.Grid.Width <= 0 || config.Grid.Height <= 0 {
			fail("grid width and height must both be positive, got %dx%d", config.Grid.Width, config.Grid.Height)
		}
		if config.Grid.Width > MaxGridSize || config.Grid.Height > MaxGridSize {
			fail("grid must be at most %dx%d, got %dx%d", MaxGridSize, MaxGridSize, config.Grid.Width, config.Grid.Height)
		}
	}
	if config.GridMargin < 0 {
		fail("grid_margin must not be negative, got %d", config.GridMargin)
	}
	if config.FeetPerCell < 0 {
		fail("feet_per_cell must not be negative, got %d", config.FeetPerCell)
	}
	if config.WalkingFeetPerMinute < 0 {
		fail("walking_feet_per_minute must not be negative, got %d", config.WalkingFeetPerMinute)
	}

	// Sections
	if len(config.Sections) == 0 {
		fail("at least one section is required")
	}
	sections := make(map[string]Section, len(config.Sections))
	accepted := make([]Section, 0, len(config.Sections))
	for i, s := range config.Sections {
		if s.ID == "" {
			fail("section %d: id is required", i+1)
			continue
		}
		if _, dup := sections[s.ID]; dup {
			fail("section %q: duplicate id", s.ID)
			continue
		}
		if s.Name == "" {
			fail("section %q: name is required", s.ID)
		}
		b := s.Bounds
		if b.X < 0 || b.Y < 0 {
			fail("section %q: origin (%d, %d) must not be negative", s.ID, b.X, b.Y)
		}
		if b.Width <= 0 || b.Height <= 0 {
			fail("section %q: width and height must be positive, got %dx%d", s.ID, b.Width, b.Height)
		}
		if explicitGrid && (b.X+b.Width > config.Grid.Width || b.Y+b.Height > config.Grid.Height) {
			fail("section %q: extends beyond the %dx%d grid", s.ID, config.Grid.Width, config.Grid.Height)
		}
		for _, other := range accepted {
			if b.Overlaps(other.Bounds) {
				fail("section %q overlaps section %q", s.ID, other.ID)
			}
		}
		sections[s.ID] = s
		accepted = append(accepted, s)
	}

	// Priority table must name live sections
	seenPriority := make(map[string]bool, len(config.SectionPriority))
	for _, id := range config.SectionPriority {
		if _, ok := sections[id]; !ok {
			fail("section_priority: unknown section %q", id)
		}
		if seenPriority[id] {
			fail("section_priority: section %q listed twice", id)
		}
		seenPriority[id] = true
	}

	// Items
	seenItems := make(map[string]bool, len(config.Items))
	for i, item := range config.Items {
		if item.ID == "" {
			fail("item %d: id is required", i+1)
			continue
		}
		if seenItems[item.ID] {
			fail("item %q: duplicate id", item.ID)
		}
		seenItems[item.ID] = true
		if item.Name == "" {
			fail("item %q: name is required", item.ID)
		}
		section, ok := sections[item.Location.Section]
		if !ok {
			fail("item %q: unknown section %q", item.ID, item.Location.Section)
			continue
		}
		if !section.Bounds.Contains(item.Cell()) {
			c := item.Cell()
			fail("item %q: coordinates (%d, %d) are outside section %q", item.ID, c.X, c.Y, section.ID)
		}
	}

	// Entrance
	if config.Entrance.X < 0 || config.Entrance.Y < 0 {
		fail("entrance (%d, %d) must not be negative", config.Entrance.X, config.Entrance.Y)
	}
	if explicitGrid && (config.Entrance.X >= config.Grid.Width || config.Entrance.Y >= config.Grid.Height) {
		fail("entrance (%d, %d) is outside the %dx%d grid", config.Entrance.X, config.Entrance.Y, config.Grid.Width, config.Grid.Height)
	}

	if err == nil && !explicitGrid {
		if w, h := DeriveBounds(config); w > MaxGridSize || h > MaxGridSize {
			fail("derived grid %dx%d exceeds %dx%d", w, h, MaxGridSize, MaxGridSize)
		}
	}

	return err
}

// ParseStoreConfig decodes a store configuration. format is a file extension:
// ".yaml" and ".yml" select YAML, anything else JSON.
func ParseStoreConfig(data []byte, format string) (*StoreConfig, error) {
	var config StoreConfig
	switch strings.ToLower(format) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &config); err != nil {
			return nil, fmt.Errorf("failed to parse yaml: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &config); err != nil {
			return nil, fmt.Errorf("failed to parse json: %w", err)
		}
	}
	return &config, nil
}

// LoadStoreConfig loads and validates a store configuration file
func LoadStoreConfig(filename string) (*StoreConfig, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}

	config, err := ParseStoreConfig(data, filepath.Ext(filename))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}

	if err := ValidateStoreConfig(config); err != nil {
		return nil, err
	}

	return config, nil
}

// DefaultStoreConfig returns the built-in demo grocery store
func DefaultStoreConfig() *StoreConfig {
	item := func(id, name, category, section string, aisle int, shelf string, x, y int) Item {
		return Item{
			ID:       id,
			Name:     name,
			Category: category,
			Location: Location{Section: section, Aisle: aisle, Shelf: shelf, Coordinates: Cell{X: x, Y: y}},
		}
	}
	section := func(id, name, color string, x, y, w, h int) Section {
		return Section{ID: id, Name: name, Color: color, Bounds: Rect{X: x, Y: y, Width: w, Height: h}}
	}

	priority := make([]string, len(DefaultSectionPriority))
	copy(priority, DefaultSectionPriority)

	return &StoreConfig{
		Name:                 "Demo Grocery",
		Description:          "Single-floor grocery store with twelve sections",
		GridMargin:           DefaultGridMargin,
		FeetPerCell:          DefaultFeetPerCell,
		WalkingFeetPerMinute: DefaultWalkingFeetPerMinute,
		Entrance:             StartLocation{X: 2, Y: 9, Name: EntranceName},
		Sections: []Section{
			section("entrance", "Entrance", "#6B7280", 1, 9, 2, 1),
			section("produce", "Fresh Produce", "#059669", 1, 1, 4, 3),
			section("dairy", "Dairy & Eggs", "#2563EB", 6, 1, 3, 2),
			section("meat", "Meat & Seafood", "#DC2626", 10, 1, 3, 2),
			section("bakery", "Bakery", "#D97706", 14, 1, 3, 2),
			section("deli", "Deli", "#7C3AED", 6, 4, 3, 2),
			section("frozen", "Frozen Foods", "#0891B2", 10, 4, 3, 2),
			section("pantry", "Pantry Staples", "#CA8A04", 14, 4, 3, 2),
			section("snacks", "Snacks & Candy", "#EC4899", 1, 5, 4, 2),
			section("beverages", "Beverages", "#8B5CF6", 6, 7, 5, 2),
			section("health", "Health & Beauty", "#F59E0B", 12, 7, 5, 2),
			section("checkout", "Checkout", "#374151", 4, 9, 9, 1),
		},
		SectionPriority: priority,
		Items: []Item{
			item("1", "Apples", "Fruit", "produce", 1, "A", 2, 2),
			item("2", "Bananas", "Fruit", "produce", 1, "B", 3, 2),
			item("3", "Carrots", "Vegetable", "produce", 2, "A", 2, 3),
			item("4", "Spinach", "Vegetable", "produce", 2, "B", 3, 3),
			item("5", "Tomatoes", "Vegetable", "produce", 1, "C", 4, 2),
			item("6", "Milk", "Dairy", "dairy", 3, "A", 7, 1),
			item("7", "Eggs", "Dairy", "dairy", 3, "B", 8, 1),
			item("8", "Cheese", "Dairy", "dairy", 3, "C", 7, 2),
			item("9", "Yogurt", "Dairy", "dairy", 3, "D", 8, 2),
			item("10", "Chicken Breast", "Meat", "meat", 4, "A", 11, 1),
			item("11", "Ground Beef", "Meat", "meat", 4, "B", 12, 1),
			item("12", "Salmon", "Seafood", "meat", 4, "C", 11, 2),
			item("13", "Bread", "Bakery", "bakery", 5, "A", 15, 1),
			item("14", "Croissants", "Bakery", "bakery", 5, "B", 16, 1),
			item("15", "Turkey Slices", "Deli", "deli", 6, "A", 7, 4),
			item("16", "Ham", "Deli", "deli", 6, "B", 8, 4),
			item("17", "Ice Cream", "Frozen", "frozen", 7, "A", 11, 4),
			item("18", "Frozen Pizza", "Frozen", "frozen", 7, "B", 12, 4),
			item("19", "Rice", "Pantry", "pantry", 8, "A", 15, 4),
			item("20", "Pasta", "Pantry", "pantry", 8, "B", 16, 4),
			item("21", "Chips", "Snacks", "snacks", 9, "A", 2, 5),
			item("22", "Cookies", "Snacks", "snacks", 9, "B", 3, 5),
			item("23", "Orange Juice", "Beverages", "beverages", 10, "A", 8, 7),
			item("24", "Soda", "Beverages", "beverages", 10, "B", 9, 7),
			item("25", "Shampoo", "Health", "health", 11, "A", 14, 7),
			item("26", "Toothpaste", "Health", "health", 11, "B", 15, 7),
		},
	}
}
