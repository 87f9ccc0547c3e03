package service

import (
	"time"

	"github.com/wricardo/storenav/store/engine"
)

// SessionInfo provides information about a shopping session
type SessionInfo struct {
	ID             string                `json:"id"`
	ConfigName     string                `json:"config_name"`
	CreatedAt      time.Time             `json:"created_at"`
	LastAccessedAt time.Time             `json:"last_accessed_at"`
	Start          *engine.StartLocation `json:"start,omitempty"`
	ShoppingList   []engine.Item         `json:"shopping_list"`
	StoreConfig    *engine.StoreConfig   `json:"store_config,omitempty"`
}

// RoutePlan is an optimized itinerary for a session's shopping list
type RoutePlan struct {
	ID        string               `json:"id"`
	SessionID string               `json:"session_id"`
	Mode      engine.PathMode      `json:"mode"`
	Start     engine.StartLocation `json:"start"`
	PlannedAt time.Time            `json:"planned_at"`
	Route     engine.OptimalRoute  `json:"route"`
}

// DirectionsResult is the single-leg route to one item
type DirectionsResult struct {
	SessionID string               `json:"session_id"`
	Start     engine.StartLocation `json:"start"`
	Segment   engine.RouteSegment  `json:"segment"`
}

// ConfigInfo provides information about a store configuration
type ConfigInfo struct {
	Filename    string `json:"filename"`
	ConfigID    string `json:"config_id"` // The identifier to use for session creation
	Name        string `json:"name"`      // Display name
	Description string `json:"description"`
	GridWidth   int    `json:"grid_width"`
	GridHeight  int    `json:"grid_height"`
	Sections    int    `json:"sections"`
	Items       int    `json:"items"`
}

// NewConfigInfo summarizes a store configuration stored under filename
func NewConfigInfo(filename, configID string, config *engine.StoreConfig) *ConfigInfo {
	width, height := engine.DeriveBounds(config)
	return &ConfigInfo{
		Filename:    filename,
		ConfigID:    configID,
		Name:        config.Name,
		Description: config.Description,
		GridWidth:   width,
		GridHeight:  height,
		Sections:    len(config.Sections),
		Items:       len(config.Items),
	}
}
