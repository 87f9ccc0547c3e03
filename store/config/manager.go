package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/inconshreveable/log15"
	"gopkg.in/yaml.v3"

	"github.com/wricardo/storenav/store/engine"
	"github.com/wricardo/storenav/store/service"
)

var (
	ErrConfigNotFound = service.ErrConfigNotFound
	ErrInvalidConfig  = service.ErrInvalidConfig
)

// DefaultConfigName is the config id tried first when choosing the default store
const DefaultConfigName = "default"

// supportedExtensions lists store file formats in lookup order
var supportedExtensions = []string{".json", ".yaml", ".yml"}

var logger = log15.New("module", "config")

// Manager handles store configuration loading and caching
type Manager struct {
	configDir     string
	defaultConfig *engine.StoreConfig
	configs       map[string]*engine.StoreConfig
	mu            sync.RWMutex
}

// NewManager creates a new configuration manager
func NewManager(configDir string) (*Manager, error) {
	if _, err := os.Stat(configDir); os.IsNotExist(err) {
		return nil, fmt.Errorf("config directory does not exist: %s", configDir)
	}

	m := &Manager{
		configDir: configDir,
		configs:   make(map[string]*engine.StoreConfig),
	}

	m.loadDefaultConfig()
	return m, nil
}

// LoadConfig loads a configuration by name. The name may carry a .json, .yaml or
// .yml extension; without one each extension is tried in that order. The name
// "default" falls back to GetDefault when no such file exists.
func (m *Manager) LoadConfig(name string) (*engine.StoreConfig, error) {
	return m.load(name, true)
}

func (m *Manager) load(name string, resolveDefault bool) (*engine.StoreConfig, error) {
	id := configID(name)
	if id == "" || strings.ContainsAny(id, `/\`) {
		return nil, fmt.Errorf("%w: %q", ErrConfigNotFound, name)
	}

	m.mu.RLock()
	if config, exists := m.configs[id]; exists {
		m.mu.RUnlock()
		return config, nil
	}
	m.mu.RUnlock()

	m.mu.Lock()
	defer m.mu.Unlock()

	// Double-check after acquiring write lock
	if config, exists := m.configs[id]; exists {
		return config, nil
	}

	configPath, err := m.findConfigFile(name)
	if err != nil {
		// "default" always resolves, to the built-in store if nothing else
		if resolveDefault && errors.Is(err, ErrConfigNotFound) && id == DefaultConfigName && m.defaultConfig != nil {
			return m.defaultConfig, nil
		}
		return nil, err
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config, err := engine.ParseStoreConfig(data, filepath.Ext(configPath))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidConfig, filepath.Base(configPath), err)
	}

	if err := engine.ValidateStoreConfig(config); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	m.configs[id] = config
	logger.Debug("config loaded", "config", id, "file", configPath)
	return config, nil
}

// ListConfigs returns information about all valid configurations in the config directory
func (m *Manager) ListConfigs() ([]*service.ConfigInfo, error) {
	entries, err := os.ReadDir(m.configDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read config directory: %w", err)
	}

	var configs []*service.ConfigInfo
	seen := make(map[string]bool)

	for _, entry := range entries {
		if entry.IsDir() || !isConfigFile(entry.Name()) {
			continue
		}

		id := configID(entry.Name())
		if seen[id] {
			continue
		}

		config, err := m.LoadConfig(entry.Name())
		if err != nil {
			logger.Warn("skipping invalid config", "file", entry.Name(), "err", err)
			continue
		}
		seen[id] = true

		configs = append(configs, service.NewConfigInfo(entry.Name(), id, config))
	}

	sort.Slice(configs, func(i, j int) bool {
		return configs[i].ConfigID < configs[j].ConfigID
	})
	return configs, nil
}

// GetDefault returns the default configuration
func (m *Manager) GetDefault() *engine.StoreConfig {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.defaultConfig
}

// SetDefault sets the default configuration by name
func (m *Manager) SetDefault(name string) error {
	config, err := m.LoadConfig(name)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.defaultConfig = config
	return nil
}

// RefreshCache drops every cached configuration and re-selects the default
func (m *Manager) RefreshCache() {
	m.mu.Lock()
	m.configs = make(map[string]*engine.StoreConfig)
	m.mu.Unlock()

	m.loadDefaultConfig()
}

// SaveConfig validates and writes a configuration. Names ending in .yaml or .yml are
// written as YAML, everything else as indented JSON.
func (m *Manager) SaveConfig(name string, config *engine.StoreConfig) error {
	if err := engine.ValidateStoreConfig(config); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	id := configID(name)
	if id == "" || strings.ContainsAny(id, `/\`) {
		return fmt.Errorf("%w: invalid config name %q", ErrInvalidConfig, name)
	}

	filename := name
	if !isConfigFile(filename) {
		filename = name + ".json"
	}

	var data []byte
	var err error
	switch filepath.Ext(filename) {
	case ".yaml", ".yml":
		data, err = yaml.Marshal(config)
	default:
		data, err = json.MarshalIndent(config, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	configPath := filepath.Join(m.configDir, filename)
	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	m.mu.Lock()
	m.configs[id] = config
	m.mu.Unlock()

	return nil
}

// findConfigFile resolves a config name to an existing file; callers hold m.mu
func (m *Manager) findConfigFile(name string) (string, error) {
	candidates := []string{name}
	if !isConfigFile(name) {
		candidates = candidates[:0]
		for _, ext := range supportedExtensions {
			candidates = append(candidates, name+ext)
		}
	}

	for _, candidate := range candidates {
		configPath := filepath.Join(m.configDir, candidate)
		if _, err := os.Stat(configPath); err == nil {
			return configPath, nil
		} else if !os.IsNotExist(err) {
			return "", fmt.Errorf("failed to stat config file: %w", err)
		}
	}
	return "", fmt.Errorf("%w: %q", ErrConfigNotFound, name)
}

// loadDefaultConfig picks default.*, then the first valid file, then the built-in store
func (m *Manager) loadDefaultConfig() {
	config, err := m.load(DefaultConfigName, false)
	if err != nil {
		if !errors.Is(err, ErrConfigNotFound) {
			logger.Warn("default config is invalid", "err", err)
		}

		configs, listErr := m.ListConfigs()
		if listErr == nil && len(configs) > 0 {
			config, err = m.LoadConfig(configs[0].Filename)
		}
		if config == nil || err != nil {
			config = engine.DefaultStoreConfig()
		}
	}

	m.mu.Lock()
	m.defaultConfig = config
	m.mu.Unlock()
	logger.Debug("default config selected", "name", config.Name)
}

func isConfigFile(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, supported := range supportedExtensions {
		if ext == supported {
			return true
		}
	}
	return false
}

// configID strips a supported extension from a file or config name
func configID(name string) string {
	if isConfigFile(name) {
		return strings.TrimSuffix(name, filepath.Ext(name))
	}
	return name
}
