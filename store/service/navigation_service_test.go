package service_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wricardo/storenav/store/engine"
	"github.com/wricardo/storenav/store/service"
	"github.com/wricardo/storenav/store/session"
)

// MockSessionManager implements service.SessionManager for testing
type MockSessionManager struct {
	sessions map[string]*service.Session
	mu       sync.Mutex
}

func NewMockSessionManager() *MockSessionManager {
	return &MockSessionManager{
		sessions: make(map[string]*service.Session),
	}
}

func (m *MockSessionManager) Create(id string, config *engine.StoreConfig) (*service.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if id == "" {
		id = fmt.Sprintf("test_%d", len(m.sessions)+1)
	}
	if _, exists := m.sessions[id]; exists {
		return nil, service.ErrSessionAlreadyExists
	}

	eng, err := engine.NewEngine(config)
	if err != nil {
		return nil, err
	}

	session := &service.Session{
		ID:             id,
		Engine:         eng,
		Config:         config,
		ShoppingList:   []string{},
		CreatedAt:      time.Now(),
		LastAccessedAt: time.Now(),
	}
	m.sessions[id] = session
	return session, nil
}

func (m *MockSessionManager) Get(id string) (*service.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	session, exists := m.sessions[id]
	if !exists {
		return nil, service.ErrSessionNotFound
	}
	return session, nil
}

func (m *MockSessionManager) GetOrCreate(id string, config *engine.StoreConfig) (*service.Session, error) {
	if session, err := m.Get(id); err == nil {
		return session, nil
	}
	return m.Create(id, config)
}

func (m *MockSessionManager) List() []*service.Session {
	m.mu.Lock()
	defer m.mu.Unlock()

	result := make([]*service.Session, 0, len(m.sessions))
	for _, session := range m.sessions {
		result = append(result, session)
	}
	return result
}

func (m *MockSessionManager) Delete(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.sessions[id]; !exists {
		return service.ErrSessionNotFound
	}
	delete(m.sessions, id)
	return nil
}

func (m *MockSessionManager) UpdateLastAccessed(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	session, exists := m.sessions[id]
	if !exists {
		return service.ErrSessionNotFound
	}
	session.LastAccessedAt = time.Now()
	return nil
}

// MockConfigManager implements service.ConfigManager for testing
type MockConfigManager struct {
	configs map[string]*engine.StoreConfig
	saved   map[string]*engine.StoreConfig
}

func NewMockConfigManager() *MockConfigManager {
	return &MockConfigManager{
		configs: map[string]*engine.StoreConfig{
			"default": engine.DefaultStoreConfig(),
			"walled":  walledStoreConfig(),
		},
		saved: make(map[string]*engine.StoreConfig),
	}
}

func (m *MockConfigManager) LoadConfig(name string) (*engine.StoreConfig, error) {
	config, exists := m.configs[name]
	if !exists {
		return nil, service.ErrConfigNotFound
	}
	return config, nil
}

func (m *MockConfigManager) ListConfigs() ([]*service.ConfigInfo, error) {
	return []*service.ConfigInfo{
		service.NewConfigInfo("default.json", "default", m.configs["default"]),
		service.NewConfigInfo("walled.yaml", "walled", m.configs["walled"]),
	}, nil
}

func (m *MockConfigManager) GetDefault() *engine.StoreConfig {
	return m.configs["default"]
}

func (m *MockConfigManager) SaveConfig(name string, config *engine.StoreConfig) error {
	if err := engine.ValidateStoreConfig(config); err != nil {
		return fmt.Errorf("%w: %v", service.ErrInvalidConfig, err)
	}
	m.saved[name] = config
	return nil
}

// walledStoreConfig has one item sealed behind a full-height wall
func walledStoreConfig() *engine.StoreConfig {
	return &engine.StoreConfig{
		Name:     "Walled",
		Grid:     engine.GridSize{Width: 10, Height: 10},
		Entrance: engine.StartLocation{X: 1, Y: 1, Name: "Door"},
		Sections: []engine.Section{
			{ID: "wall", Name: "Wall", Bounds: engine.Rect{X: 5, Y: 0, Width: 1, Height: 10}},
			{ID: "vault", Name: "Vault", Bounds: engine.Rect{X: 7, Y: 4, Width: 3, Height: 3}},
		},
		Items: []engine.Item{
			{ID: "gold", Name: "Gold", Category: "Valuables", Location: engine.Location{Section: "vault", Coordinates: engine.Cell{X: 8, Y: 5}}},
		},
	}
}

func newTestService(t *testing.T) (service.NavigationService, *MockConfigManager) {
	t.Helper()
	configs := NewMockConfigManager()
	return service.NewNavigationService(NewMockSessionManager(), configs), configs
}

func createSession(t *testing.T, svc service.NavigationService, configName string) *service.SessionInfo {
	t.Helper()
	info, err := svc.CreateSession(context.Background(), configName)
	require.NoError(t, err)
	return info
}

func TestCreateSession(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	t.Run("default config", func(t *testing.T) {
		info := createSession(t, svc, "")
		assert.NotEmpty(t, info.ID)
		assert.Equal(t, "default", info.ConfigName)
		assert.Equal(t, "Demo Grocery", info.StoreConfig.Name)
		assert.Nil(t, info.Start)
		assert.Empty(t, info.ShoppingList)
	})

	t.Run("named config", func(t *testing.T) {
		info := createSession(t, svc, "walled")
		assert.Equal(t, "walled", info.ConfigName)
	})

	t.Run("unknown config lists alternatives", func(t *testing.T) {
		_, err := svc.CreateSession(ctx, "warehouse")
		require.Error(t, err)
		assert.ErrorIs(t, err, service.ErrConfigNotFound)
		assert.Contains(t, err.Error(), "walled")
	})
}

func TestSessionLifecycle(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	info := createSession(t, svc, "")

	got, err := svc.GetSession(ctx, info.ID)
	require.NoError(t, err)
	assert.Equal(t, info.ID, got.ID)

	sessions, err := svc.ListSessions(ctx)
	require.NoError(t, err)
	assert.Len(t, sessions, 1)

	require.NoError(t, svc.DeleteSession(ctx, info.ID))
	_, err = svc.GetSession(ctx, info.ID)
	assert.ErrorIs(t, err, service.ErrSessionNotFound)
	assert.ErrorIs(t, svc.DeleteSession(ctx, info.ID), service.ErrSessionNotFound)
}

func TestSetStart(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	info := createSession(t, svc, "")

	t.Run("named after matching start location", func(t *testing.T) {
		got, err := svc.SetStart(ctx, info.ID, engine.StartLocation{X: 2, Y: 9})
		require.NoError(t, err)
		require.NotNil(t, got.Start)
		assert.Equal(t, engine.EntranceName, got.Start.Name)
	})

	t.Run("custom cell", func(t *testing.T) {
		got, err := svc.SetStart(ctx, info.ID, engine.StartLocation{X: 5, Y: 0})
		require.NoError(t, err)
		assert.Equal(t, service.CustomStartName, got.Start.Name)
	})

	t.Run("explicit name kept", func(t *testing.T) {
		got, err := svc.SetStart(ctx, info.ID, engine.StartLocation{X: 5, Y: 0, Name: "Cart Return"})
		require.NoError(t, err)
		assert.Equal(t, "Cart Return", got.Start.Name)
	})

	t.Run("off the grid", func(t *testing.T) {
		_, err := svc.SetStart(ctx, info.ID, engine.StartLocation{X: 99, Y: 0})
		assert.ErrorIs(t, err, service.ErrInvalidStart)
	})

	t.Run("unknown session", func(t *testing.T) {
		_, err := svc.SetStart(ctx, "missing", engine.StartLocation{})
		assert.ErrorIs(t, err, service.ErrSessionNotFound)
	})
}

func TestShoppingList(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	info := createSession(t, svc, "")

	got, err := svc.AddItems(ctx, info.ID, []string{"6", "1"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Milk", "Apples"}, itemNames(got.ShoppingList))

	got, err = svc.AddItems(ctx, info.ID, []string{"1", "13", "13"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Milk", "Apples", "Bread"}, itemNames(got.ShoppingList), "duplicates are skipped")

	_, err = svc.AddItems(ctx, info.ID, []string{"19", "999"})
	assert.ErrorIs(t, err, service.ErrItemNotFound)
	got, err = svc.GetSession(ctx, info.ID)
	require.NoError(t, err)
	assert.Len(t, got.ShoppingList, 3, "a rejected request adds nothing")

	got, err = svc.RemoveItem(ctx, info.ID, "6")
	require.NoError(t, err)
	assert.Equal(t, []string{"Apples", "Bread"}, itemNames(got.ShoppingList))

	_, err = svc.RemoveItem(ctx, info.ID, "6")
	assert.ErrorIs(t, err, service.ErrItemNotInList)

	got, err = svc.ClearList(ctx, info.ID)
	require.NoError(t, err)
	assert.Empty(t, got.ShoppingList)
}

func TestPlanRoute(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	info := createSession(t, svc, "")

	_, err := svc.PlanRoute(ctx, info.ID, engine.PathWalkable)
	assert.ErrorIs(t, err, service.ErrStartNotSet)

	_, err = svc.SetStart(ctx, info.ID, engine.StartLocation{X: 2, Y: 9})
	require.NoError(t, err)

	t.Run("empty list", func(t *testing.T) {
		plan, err := svc.PlanRoute(ctx, info.ID, "")
		require.NoError(t, err)
		assert.Equal(t, engine.PathWalkable, plan.Mode)
		assert.Empty(t, plan.Route.VisitOrder)
		assert.Zero(t, plan.Route.TotalDistance)
	})

	_, err = svc.AddItems(ctx, info.ID, []string{"6", "1"})
	require.NoError(t, err)

	t.Run("produce before dairy", func(t *testing.T) {
		plan, err := svc.PlanRoute(ctx, info.ID, engine.PathWalkable)
		require.NoError(t, err)

		_, err = uuid.Parse(plan.ID)
		assert.NoError(t, err)
		assert.Equal(t, info.ID, plan.SessionID)
		assert.Equal(t, engine.EntranceName, plan.Start.Name)
		assert.Equal(t, []string{"Apples", "Milk"}, itemNames(plan.Route.VisitOrder))
		assert.Equal(t, 130, plan.Route.TotalDistance)
		assert.Equal(t, engine.Cell{X: 2, Y: 9}, plan.Route.FullPath[0])
	})

	t.Run("each plan gets its own id", func(t *testing.T) {
		a, err := svc.PlanRoute(ctx, info.ID, engine.PathManhattan)
		require.NoError(t, err)
		b, err := svc.PlanRoute(ctx, info.ID, engine.PathManhattan)
		require.NoError(t, err)
		assert.NotEqual(t, a.ID, b.ID)
		assert.Equal(t, a.Route, b.Route)
	})
}

func TestPlanRouteUnreachable(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	info := createSession(t, svc, "walled")

	_, err := svc.SetStart(ctx, info.ID, engine.StartLocation{X: 1, Y: 1})
	require.NoError(t, err)
	_, err = svc.AddItems(ctx, info.ID, []string{"gold"})
	require.NoError(t, err)

	plan, err := svc.PlanRoute(ctx, info.ID, engine.PathWalkable)
	require.NoError(t, err)
	assert.Equal(t, []string{"gold"}, plan.Route.Unreachable)
	assert.False(t, plan.Route.Segments[0].Reachable)
}

func TestDirections(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	info := createSession(t, svc, "")

	_, err := svc.Directions(ctx, info.ID, "6")
	assert.ErrorIs(t, err, service.ErrStartNotSet)

	_, err = svc.SetStart(ctx, info.ID, engine.StartLocation{X: 2, Y: 9})
	require.NoError(t, err)

	result, err := svc.Directions(ctx, info.ID, "6")
	require.NoError(t, err)
	assert.Equal(t, "Milk", result.Segment.Destination.Name)
	assert.Equal(t, 130, result.Segment.Distance)
	assert.Equal(t, "Head east for 50 feet", result.Segment.Steps[0].Instruction)

	_, err = svc.Directions(ctx, info.ID, "999")
	assert.True(t, errors.Is(err, service.ErrItemNotFound))
}

func TestSearchAndStartLocations(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	info := createSession(t, svc, "")

	items, err := svc.SearchItems(ctx, info.ID, "frozen", 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"Ice Cream", "Frozen Pizza"}, itemNames(items))

	locations, err := svc.StartLocations(ctx, info.ID)
	require.NoError(t, err)
	assert.Len(t, locations, 13)

	_, err = svc.SearchItems(ctx, "missing", "milk", 0)
	assert.ErrorIs(t, err, service.ErrSessionNotFound)
}

func TestConfigOperations(t *testing.T) {
	svc, configs := newTestService(t)
	ctx := context.Background()

	list, err := svc.ListConfigs(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 2)

	config, err := svc.LoadConfig(ctx, "walled")
	require.NoError(t, err)
	assert.Equal(t, "Walled", config.Name)

	require.NoError(t, svc.SaveConfig(ctx, "copy", config))
	assert.Same(t, config, configs.saved["copy"])

	invalid := engine.DefaultStoreConfig()
	invalid.Name = ""
	assert.ErrorIs(t, svc.SaveConfig(ctx, "bad", invalid), service.ErrInvalidConfig)
}

func TestConcurrentSessionReads(t *testing.T) {
	svc := service.NewNavigationService(session.NewManager(), NewMockConfigManager())
	ctx := context.Background()
	info := createSession(t, svc, "")

	_, err := svc.SetStart(ctx, info.ID, engine.StartLocation{X: 2, Y: 9})
	require.NoError(t, err)
	_, err = svc.AddItems(ctx, info.ID, []string{"6", "1"})
	require.NoError(t, err)

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				var err error
				switch (g + i) % 4 {
				case 0:
					_, err = svc.GetSession(ctx, info.ID)
				case 1:
					_, err = svc.PlanRoute(ctx, info.ID, engine.PathWalkable)
				case 2:
					_, err = svc.SearchItems(ctx, info.ID, "milk", 0)
				default:
					_, err = svc.ListSessions(ctx)
				}
				assert.NoError(t, err)
			}
		}(g)
	}
	wg.Wait()

	got, err := svc.GetSession(ctx, info.ID)
	require.NoError(t, err)
	assert.False(t, got.LastAccessedAt.Before(got.CreatedAt))
	assert.Len(t, got.ShoppingList, 2)
}

func itemNames(items []engine.Item) []string {
	names := make([]string, len(items))
	for i, item := range items {
		names[i] = item.Name
	}
	return names
}
