// Package engine provides the route planning core for indoor store navigation.
//
// The engine package implements:
//   - The grid and section model of a store layout
//   - The traversal rule that lets shoppers cross sections front to back but not sideways
//   - A breadth-first pathfinder that returns the shortest walkable path
//   - Straight-line turn-by-turn directions with distance and time estimates
//   - Multi-stop ordering by section priority and nearest neighbour
//   - Store configuration loading and validation (JSON or YAML)
//
// Core Types:
//
// The Engine interface defines the main contract for route planning, implemented
// by StoreEngine. StoreConfig describes the sections, items and entrance of a store.
// Layout answers grid questions and Catalog answers item questions.
//
// Usage:
//
//	config, err := engine.LoadStoreConfig("configs/default.json")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	storeEngine, err := engine.NewEngine(config)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	items, _ := storeEngine.LookupItems([]string{"1", "6"})
//	route := storeEngine.CalculateOptimalRoute(config.Entrance.Cell(), items, engine.PathWalkable)
//
// Coordinates:
//
// Cells are addressed by (x, y) with x growing east and y growing south. Every engine
// call is a pure function of its inputs and the immutable store configuration, so a
// single StoreEngine may be shared between goroutines.
package engine
