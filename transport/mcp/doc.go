// Package mcp exposes the store navigator to AI agents over the Model Context Protocol.
//
// The Client is a thin proxy: every tool call is translated into a request against the
// REST API, and the JSON response is rendered as plain text for the agent. Tool
// arguments arrive as loosely typed JSON values and are coerced with spf13/cast, so
// "x": 2, "x": 2.0 and "x": "2" are all accepted.
//
// MCP Tools:
//   - create_session, get_session, list_sessions, delete_session
//   - set_start, start_locations
//   - search_items, add_items, remove_item, clear_list
//   - plan_route: visit order, per-leg directions and totals
//   - get_directions: a single leg from the start location
//   - list_configs: available store layouts
//
// Transport Modes:
//
// The same MCP server is served over stdio (see the stdio-mcp mode in main) and
// as a JSON-RPC endpoint at /mcp on the HTTP server.
//
// Usage:
//
//	client := mcp.NewClient("http://localhost:8080")
//	server.ServeStdio(client.GetMCPServer())
package mcp
