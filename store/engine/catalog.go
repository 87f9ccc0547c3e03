package engine

import (
	"errors"
	"fmt"
	"strings"
)

// ErrItemNotFound is returned when an item id is not in the catalog
var ErrItemNotFound = errors.New("item not found")

// Catalog is the read-only item list of a store
type Catalog struct {
	items []Item
	byID  map[string]int
}

// NewCatalog indexes items by id. The slice is copied.
func NewCatalog(items []Item) *Catalog {
	c := &Catalog{
		items: make([]Item, len(items)),
		byID:  make(map[string]int, len(items)),
	}
	copy(c.items, items)
	for i, item := range c.items {
		c.byID[item.ID] = i
	}
	return c
}

// Items returns every item in catalog order
func (c *Catalog) Items() []Item {
	items := make([]Item, len(c.items))
	copy(items, c.items)
	return items
}

// Len returns the number of items
func (c *Catalog) Len() int {
	return len(c.items)
}

// Get returns the item with the given id
func (c *Catalog) Get(id string) (Item, bool) {
	i, ok := c.byID[id]
	if !ok {
		return Item{}, false
	}
	return c.items[i], true
}

// Lookup resolves ids in order, failing on the first unknown id
func (c *Catalog) Lookup(ids []string) ([]Item, error) {
	items := make([]Item, 0, len(ids))
	for _, id := range ids {
		item, ok := c.Get(id)
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrItemNotFound, id)
		}
		items = append(items, item)
	}
	return items, nil
}

// Search matches query against item names and categories, case-insensitively.
// An empty query matches nothing; limit <= 0 means DefaultSearchLimit.
func (c *Catalog) Search(query string, limit int) []Item {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return []Item{}
	}
	if limit <= 0 {
		limit = DefaultSearchLimit
	}

	results := []Item{}
	for _, item := range c.items {
		if strings.Contains(strings.ToLower(item.Name), query) ||
			strings.Contains(strings.ToLower(item.Category), query) {
			results = append(results, item)
			if len(results) == limit {
				break
			}
		}
	}
	return results
}

// StartLocations lists the store entrance followed by the centre of every section
func StartLocations(config *StoreConfig) []StartLocation {
	entrance := config.Entrance
	if entrance.Name == "" {
		entrance.Name = EntranceName
	}

	locations := make([]StartLocation, 0, len(config.Sections)+1)
	locations = append(locations, entrance)
	for _, s := range config.Sections {
		center := s.Bounds.Center()
		locations = append(locations, StartLocation{X: center.X, Y: center.Y, Name: s.Name})
	}
	return locations
}
