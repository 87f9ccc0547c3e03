// Package api provides HTTP REST API handlers for store navigation.
//
// The api package implements:
//   - Session management endpoints
//   - Shopping list and start location editing
//   - Route planning, single-item directions and catalog search
//   - Store configuration listing and upload
//   - WebSocket upgrade handling
//   - Static file serving
//
// Endpoints:
//
// Sessions:
//   - POST /api/sessions - Create a session ({"config_id": "default"})
//   - GET /api/sessions - List sessions (?sort=created|accessed&order=asc|desc&limit=N)
//   - GET /api/sessions/{id} - Get a session
//   - DELETE /api/sessions/{id} - Delete a session
//
// Shopping List:
//   - PUT /api/sessions/{id}/start - Set the start location ({"x": 2, "y": 9})
//   - POST /api/sessions/{id}/items - Add items ({"item_ids": ["1", "6"]})
//   - DELETE /api/sessions/{id}/items - Clear the list
//   - DELETE /api/sessions/{id}/items/{itemId} - Remove one item
//
// Routing:
//   - GET /api/sessions/{id}/route - Plan the route (?mode=walkable|manhattan)
//   - GET /api/sessions/{id}/directions/{itemId} - Directions to one item
//   - GET /api/sessions/{id}/search - Search the catalog (?q=milk&limit=8)
//   - GET /api/sessions/{id}/start-locations - Predefined start points
//
// Configuration:
//   - GET /api/configs - List store configurations
//   - POST /api/configs - Save a store configuration
//   - GET /api/configs/{name} - Get a store configuration
//
// Every change to a shopping list or start location is pushed to WebSocket
// clients of the session (GET /ws?session={id}).
//
// Error Handling:
//
// Errors are returned as JSON with an HTTP status derived from the service error:
//
//	{
//	  "error": "session abcd: session not found",
//	  "code": 404
//	}
package api
