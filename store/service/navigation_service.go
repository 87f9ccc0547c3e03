package service

import (
	"context"
	"time"

	"github.com/wricardo/storenav/store/engine"
)

// NavigationService defines all shopping and route planning operations
type NavigationService interface {
	// Session Management
	CreateSession(ctx context.Context, configName string) (*SessionInfo, error)
	GetSession(ctx context.Context, sessionID string) (*SessionInfo, error)
	ListSessions(ctx context.Context) ([]*SessionInfo, error)
	DeleteSession(ctx context.Context, sessionID string) error

	// Shopping list
	SetStart(ctx context.Context, sessionID string, start engine.StartLocation) (*SessionInfo, error)
	AddItems(ctx context.Context, sessionID string, itemIDs []string) (*SessionInfo, error)
	RemoveItem(ctx context.Context, sessionID, itemID string) (*SessionInfo, error)
	ClearList(ctx context.Context, sessionID string) (*SessionInfo, error)

	// Routing
	PlanRoute(ctx context.Context, sessionID string, mode engine.PathMode) (*RoutePlan, error)
	Directions(ctx context.Context, sessionID, itemID string) (*DirectionsResult, error)

	// Store lookups
	SearchItems(ctx context.Context, sessionID, query string, limit int) ([]engine.Item, error)
	StartLocations(ctx context.Context, sessionID string) ([]engine.StartLocation, error)

	// Configuration
	ListConfigs(ctx context.Context) ([]*ConfigInfo, error)
	LoadConfig(ctx context.Context, configName string) (*engine.StoreConfig, error)
	SaveConfig(ctx context.Context, configName string, config *engine.StoreConfig) error
}

// SessionManager defines session storage operations
type SessionManager interface {
	Create(id string, config *engine.StoreConfig) (*Session, error)
	Get(id string) (*Session, error)
	GetOrCreate(id string, config *engine.StoreConfig) (*Session, error)
	List() []*Session
	Delete(id string) error
	UpdateLastAccessed(id string) error
}

// ConfigManager handles store configuration loading
type ConfigManager interface {
	LoadConfig(name string) (*engine.StoreConfig, error)
	ListConfigs() ([]*ConfigInfo, error)
	GetDefault() *engine.StoreConfig
	SaveConfig(name string, config *engine.StoreConfig) error
}

// Session represents an active shopping session
type Session struct {
	ID             string
	ConfigID       string
	Engine         *engine.StoreEngine
	Config         *engine.StoreConfig
	Start          *engine.StartLocation
	ShoppingList   []string
	CreatedAt      time.Time
	LastAccessedAt time.Time
}
