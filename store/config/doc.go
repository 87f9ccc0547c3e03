// Package config provides store layout configuration management.
//
// The config package handles:
//   - Loading store configurations from JSON or YAML files
//   - Validation through engine.ValidateStoreConfig
//   - Default configuration selection
//   - Configuration discovery and listing
//
// Configuration Format:
//
// Store configurations live in the configs directory as name.json, name.yaml or
// name.yml. Each one defines the store sections as rectangles, the catalog items
// with their shelf coordinates, the entrance and the section visiting priority.
//
// Default Configuration:
//
// The default store is default.* when present, otherwise the first valid file in
// the directory, otherwise the built-in demo grocery store.
//
// Usage:
//
//	manager, err := config.NewManager("configs")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	storeConfig, err := manager.LoadConfig("compact")
//	configs, err := manager.ListConfigs()
package config
