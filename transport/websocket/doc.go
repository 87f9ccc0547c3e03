// Package websocket provides WebSocket push updates for store navigation sessions.
//
// The websocket package implements:
//   - Session-aware WebSocket connections
//   - Route broadcasting after shopping list or start location changes
//   - Connection lifecycle management
//
// Architecture:
//
// A central Hub owns every connection. Each client has a read goroutine that keeps
// the connection alive and a write goroutine that drains its send queue.
//
// Message Protocol:
//
// Outgoing messages are JSON objects with a session_id and an event:
//   - route_update carries the recomputed route plan
//   - session_update carries the shopping list and start location
//
// Clients pick their session with ?session=<id> when connecting.
//
// Usage:
//
//	hub := websocket.NewHub()
//	go hub.Run()
//
//	hub.BroadcastRoute(sessionID, plan)
package websocket
