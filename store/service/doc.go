// Package service provides the business logic layer for store navigation.
//
// The service package implements:
//   - Multi-session shopping management
//   - Shopping list editing and start location selection
//   - Route planning and single-item directions
//   - Store configuration access
//
// Core Interfaces:
//
// NavigationService is the main service interface used by every transport.
// SessionManager handles session creation, retrieval, and lifecycle.
// ConfigManager manages store configuration loading and validation.
//
// Architecture:
//
// The service layer sits between the transport layer (HTTP/WebSocket/MCP) and
// the route planning engine. Each session owns an engine built from its store
// configuration, a start location and a shopping list of item ids.
//
// Usage:
//
//	sessionMgr := session.NewManager()
//	configMgr, _ := config.NewManager("configs")
//	nav := service.NewNavigationService(sessionMgr, configMgr)
//
//	info, err := nav.CreateSession(ctx, "default")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	nav.SetStart(ctx, info.ID, engine.StartLocation{X: 2, Y: 9})
//	nav.AddItems(ctx, info.ID, []string{"1", "6"})
//	plan, err := nav.PlanRoute(ctx, info.ID, engine.PathWalkable)
package service
