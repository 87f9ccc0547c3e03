package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/inconshreveable/log15"
	"github.com/zyedidia/generic/mapset"

	"github.com/wricardo/storenav/store/engine"
)

var logger = log15.New("module", "service")

// CustomStartName names a start location that matches no predefined point
const CustomStartName = "Custom Location"

// navigationServiceImpl implements the NavigationService interface
type navigationServiceImpl struct {
	sessions SessionManager
	configs  ConfigManager
	mu       sync.RWMutex
}

// NewNavigationService creates a new navigation service instance
func NewNavigationService(sessions SessionManager, configs ConfigManager) NavigationService {
	return &navigationServiceImpl{
		sessions: sessions,
		configs:  configs,
	}
}

// getConfigID returns the config_id for a given display name, used for consistent API responses
func (s *navigationServiceImpl) getConfigID(configName string) string {
	availableConfigs, err := s.configs.ListConfigs()
	if err == nil {
		for _, cfg := range availableConfigs {
			if cfg.Name == configName {
				return cfg.ConfigID
			}
		}
	}
	return "default"
}

// CreateSession creates a new shopping session
func (s *navigationServiceImpl) CreateSession(ctx context.Context, configName string) (*SessionInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var config *engine.StoreConfig
	var err error
	configID := configName
	if configName != "" {
		config, err = s.configs.LoadConfig(configName)
		if err != nil {
			if errors.Is(err, ErrConfigNotFound) {
				availableConfigs, listErr := s.configs.ListConfigs()
				if listErr == nil && len(availableConfigs) > 0 {
					var configIDs []string
					for _, cfg := range availableConfigs {
						configIDs = append(configIDs, cfg.ConfigID)
					}
					return nil, fmt.Errorf("%w: '%s'. Available configs: %v", ErrConfigNotFound, configName, configIDs)
				}
				return nil, fmt.Errorf("%w: '%s'. Use /api/configs to list available configurations", ErrConfigNotFound, configName)
			}
			return nil, fmt.Errorf("failed to load config %s: %w", configName, err)
		}
	} else {
		config = s.configs.GetDefault()
		configID = s.getConfigID(config.Name)
	}

	// Let the session manager generate a 4-character ID
	sess, err := s.sessions.Create("", config)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}
	sess.ConfigID = configID

	logger.Info("session created", "session", sess.ID, "config", configID)
	return s.sessionInfo(sess), nil
}

// GetSession retrieves session information
func (s *navigationServiceImpl) GetSession(ctx context.Context, sessionID string) (*SessionInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.touch(sessionID)
	if err != nil {
		return nil, err
	}
	return s.sessionInfo(sess), nil
}

// ListSessions returns all active sessions
func (s *navigationServiceImpl) ListSessions(ctx context.Context) ([]*SessionInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sessions := s.sessions.List()
	result := make([]*SessionInfo, 0, len(sessions))
	for _, sess := range sessions {
		result = append(result, s.sessionInfo(sess))
	}
	return result, nil
}

// DeleteSession removes a session
func (s *navigationServiceImpl) DeleteSession(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.sessions.Delete(sessionID); err != nil {
		return fmt.Errorf("failed to delete session %s: %w", sessionID, err)
	}
	logger.Info("session deleted", "session", sessionID)
	return nil
}

// SetStart sets where the shopper begins. An unnamed start takes the name of the
// predefined start location at the same cell, if any.
func (s *navigationServiceImpl) SetStart(ctx context.Context, sessionID string, start engine.StartLocation) (*SessionInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.touch(sessionID)
	if err != nil {
		return nil, err
	}

	if !sess.Engine.Layout().InBounds(start.Cell()) {
		return nil, fmt.Errorf("%w: (%d, %d) is not on the %dx%d grid", ErrInvalidStart,
			start.X, start.Y, sess.Engine.Layout().Width(), sess.Engine.Layout().Height())
	}

	if start.Name == "" {
		start.Name = CustomStartName
		for _, loc := range sess.Engine.StartLocations() {
			if loc.Cell() == start.Cell() {
				start.Name = loc.Name
				break
			}
		}
	}

	sess.Start = &start
	logger.Debug("start set", "session", sess.ID, "x", start.X, "y", start.Y, "name", start.Name)
	return s.sessionInfo(sess), nil
}

// AddItems appends items to the shopping list. Items already on the list are skipped;
// an unknown id rejects the whole request.
func (s *navigationServiceImpl) AddItems(ctx context.Context, sessionID string, itemIDs []string) (*SessionInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.touch(sessionID)
	if err != nil {
		return nil, err
	}

	items, err := sess.Engine.LookupItems(itemIDs)
	if err != nil {
		return nil, err
	}

	onList := mapset.New[string]()
	for _, id := range sess.ShoppingList {
		onList.Put(id)
	}
	added := 0
	for _, item := range items {
		if onList.Has(item.ID) {
			continue
		}
		onList.Put(item.ID)
		sess.ShoppingList = append(sess.ShoppingList, item.ID)
		added++
	}

	logger.Debug("items added", "session", sess.ID, "added", added, "list", len(sess.ShoppingList))
	return s.sessionInfo(sess), nil
}

// RemoveItem removes one item from the shopping list
func (s *navigationServiceImpl) RemoveItem(ctx context.Context, sessionID, itemID string) (*SessionInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.touch(sessionID)
	if err != nil {
		return nil, err
	}

	for i, id := range sess.ShoppingList {
		if id == itemID {
			sess.ShoppingList = append(sess.ShoppingList[:i], sess.ShoppingList[i+1:]...)
			return s.sessionInfo(sess), nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrItemNotInList, itemID)
}

// ClearList empties the shopping list
func (s *navigationServiceImpl) ClearList(ctx context.Context, sessionID string) (*SessionInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.touch(sessionID)
	if err != nil {
		return nil, err
	}

	sess.ShoppingList = []string{}
	return s.sessionInfo(sess), nil
}

// PlanRoute orders the shopping list and computes the full itinerary from the start location
func (s *navigationServiceImpl) PlanRoute(ctx context.Context, sessionID string, mode engine.PathMode) (*RoutePlan, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.touch(sessionID)
	if err != nil {
		return nil, err
	}
	if sess.Start == nil {
		return nil, ErrStartNotSet
	}
	if mode == "" {
		mode = engine.PathWalkable
	}

	items, err := sess.Engine.LookupItems(sess.ShoppingList)
	if err != nil {
		return nil, err
	}

	began := time.Now()
	route := sess.Engine.CalculateOptimalRoute(sess.Start.Cell(), items, mode)

	plan := &RoutePlan{
		ID:        uuid.NewString(),
		SessionID: sess.ID,
		Mode:      mode,
		Start:     *sess.Start,
		PlannedAt: time.Now(),
		Route:     route,
	}

	logger.Info("route planned", "session", sess.ID, "plan", plan.ID, "mode", mode,
		"stops", len(route.VisitOrder), "distance", route.TotalDistance, "took", time.Since(began))
	if len(route.Unreachable) > 0 {
		logger.Warn("route has unreachable items", "session", sess.ID, "items", route.Unreachable)
	}
	return plan, nil
}

// Directions returns the walkable route from the start location to one item
func (s *navigationServiceImpl) Directions(ctx context.Context, sessionID, itemID string) (*DirectionsResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.touch(sessionID)
	if err != nil {
		return nil, err
	}
	if sess.Start == nil {
		return nil, ErrStartNotSet
	}

	item, ok := sess.Engine.GetItem(itemID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrItemNotFound, itemID)
	}

	return &DirectionsResult{
		SessionID: sess.ID,
		Start:     *sess.Start,
		Segment:   sess.Engine.Directions(sess.Start.Cell(), item),
	}, nil
}

// SearchItems searches the session's store catalog
func (s *navigationServiceImpl) SearchItems(ctx context.Context, sessionID, query string, limit int) ([]engine.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.touch(sessionID)
	if err != nil {
		return nil, err
	}
	return sess.Engine.SearchItems(query, limit), nil
}

// StartLocations lists the predefined start points of the session's store
func (s *navigationServiceImpl) StartLocations(ctx context.Context, sessionID string) ([]engine.StartLocation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.touch(sessionID)
	if err != nil {
		return nil, err
	}
	return sess.Engine.StartLocations(), nil
}

// ListConfigs returns available store configurations
func (s *navigationServiceImpl) ListConfigs(ctx context.Context) ([]*ConfigInfo, error) {
	return s.configs.ListConfigs()
}

// LoadConfig loads a specific store configuration
func (s *navigationServiceImpl) LoadConfig(ctx context.Context, configName string) (*engine.StoreConfig, error) {
	return s.configs.LoadConfig(configName)
}

// SaveConfig saves a store configuration to disk
func (s *navigationServiceImpl) SaveConfig(ctx context.Context, configName string, config *engine.StoreConfig) error {
	if err := s.configs.SaveConfig(configName, config); err != nil {
		return err
	}
	logger.Info("config saved", "config", configName, "name", config.Name)
	return nil
}

// touch fetches a session and records the access. It writes the session's
// LastAccessedAt, so callers hold s.mu for writing.
func (s *navigationServiceImpl) touch(sessionID string) (*Session, error) {
	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session %s: %w", sessionID, err)
	}
	if err := s.sessions.UpdateLastAccessed(sessionID); err != nil {
		logger.Warn("failed to update last access", "session", sessionID, "err", err)
	}
	return sess, nil
}

func (s *navigationServiceImpl) sessionInfo(sess *Session) *SessionInfo {
	list := make([]engine.Item, 0, len(sess.ShoppingList))
	for _, id := range sess.ShoppingList {
		if item, ok := sess.Engine.GetItem(id); ok {
			list = append(list, item)
		}
	}

	var start *engine.StartLocation
	if sess.Start != nil {
		copied := *sess.Start
		start = &copied
	}

	return &SessionInfo{
		ID:             sess.ID,
		ConfigName:     sess.ConfigID,
		CreatedAt:      sess.CreatedAt,
		LastAccessedAt: sess.LastAccessedAt,
		Start:          start,
		ShoppingList:   list,
		StoreConfig:    sess.Config,
	}
}
