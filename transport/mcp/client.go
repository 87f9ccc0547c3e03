package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/inconshreveable/log15"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cast"

	"github.com/wricardo/storenav/store/engine"
	"github.com/wricardo/storenav/store/service"
)

var logger = log15.New("module", "mcp")

// Client is a thin MCP client that proxies to the REST API
type Client struct {
	baseURL    string
	httpClient *http.Client
	mcpServer  *server.MCPServer
}

// NewClient creates a new MCP client that calls the REST API
func NewClient(baseURL string) *Client {
	c := &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}

	c.initMCPServer()
	return c
}

// initMCPServer initializes the MCP server with all tools
func (c *Client) initMCPServer() {
	c.mcpServer = server.NewMCPServer(
		"Store Navigator",
		"1.0.0",
		server.WithToolCapabilities(true),
		server.WithInstructions(`Store Navigator - MCP Interface

This is a thin client that proxies all requests to the REST API server.

WORKFLOW:
1. create_session (optionally with a config_id from list_configs)
2. set_start with grid coordinates, or pick one from start_locations
3. search_items to find item ids, then add_items
4. plan_route to get the visit order, per-leg directions and the walking path

AVAILABLE TOOLS:
- create_session, get_session, list_sessions, delete_session
- set_start, start_locations
- search_items, add_items, remove_item, clear_list
- plan_route: full shopping route (mode "walkable" avoids aisles, "manhattan" ignores them)
- get_directions: directions from the start to a single item
- list_configs: available store layouts

Coordinates are grid cells: x grows east, y grows south.`),
	)

	c.registerTools()
}

func sessionIDProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": "Session ID",
	}
}

// registerTools registers all MCP tools
func (c *Client) registerTools() {
	// Session management
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "create_session",
		Description: "Create a new shopping session with optional store config selection",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"config_id": map[string]interface{}{
					"type":        "string",
					"description": "ID of the store config to use (optional)",
				},
			},
		},
	}, c.handleCreateSession)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_sessions",
		Description: "List all active shopping sessions",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleListSessions)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "get_session",
		Description: "Get the start location and shopping list of a session",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{"session_id": sessionIDProperty()},
			Required:   []string{"session_id"},
		},
	}, c.handleGetSession)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "delete_session",
		Description: "Delete a shopping session",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{"session_id": sessionIDProperty()},
			Required:   []string{"session_id"},
		},
	}, c.handleDeleteSession)

	// Start location
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "set_start",
		Description: "Set where the shopper starts walking",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionIDProperty(),
				"x": map[string]interface{}{
					"type":        "integer",
					"description": "Grid column",
				},
				"y": map[string]interface{}{
					"type":        "integer",
					"description": "Grid row",
				},
				"name": map[string]interface{}{
					"type":        "string",
					"description": "Display name for the location (optional)",
				},
			},
			Required: []string{"session_id", "x", "y"},
		},
	}, c.handleSetStart)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "start_locations",
		Description: "List the predefined start locations: the entrance and every section centre",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{"session_id": sessionIDProperty()},
			Required:   []string{"session_id"},
		},
	}, c.handleStartLocations)

	// Shopping list
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "search_items",
		Description: "Search the store catalog by item name or category",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionIDProperty(),
				"query": map[string]interface{}{
					"type":        "string",
					"description": "Text to match against names and categories",
				},
				"limit": map[string]interface{}{
					"type":        "integer",
					"description": "Maximum number of results (default 8)",
				},
			},
			Required: []string{"session_id", "query"},
		},
	}, c.handleSearchItems)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "add_items",
		Description: "Add catalog items to the shopping list",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionIDProperty(),
				"item_ids": map[string]interface{}{
					"type":        "array",
					"items":       map[string]interface{}{"type": "string"},
					"description": "Item IDs from search_items",
				},
			},
			Required: []string{"session_id", "item_ids"},
		},
	}, c.handleAddItems)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "remove_item",
		Description: "Remove one item from the shopping list",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionIDProperty(),
				"item_id": map[string]interface{}{
					"type":        "string",
					"description": "Item ID to remove",
				},
			},
			Required: []string{"session_id", "item_id"},
		},
	}, c.handleRemoveItem)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "clear_list",
		Description: "Empty the shopping list",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{"session_id": sessionIDProperty()},
			Required:   []string{"session_id"},
		},
	}, c.handleClearList)

	// Routing
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "plan_route",
		Description: "Plan the route through every item on the shopping list",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionIDProperty(),
				"mode": map[string]interface{}{
					"type":        "string",
					"enum":        []string{string(engine.PathWalkable), string(engine.PathManhattan)},
					"description": "Path mode (default walkable)",
				},
			},
			Required: []string{"session_id"},
		},
	}, c.handlePlanRoute)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "get_directions",
		Description: "Directions from the start location to a single item",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionIDProperty(),
				"item_id": map[string]interface{}{
					"type":        "string",
					"description": "Destination item ID",
				},
			},
			Required: []string{"session_id", "item_id"},
		},
	}, c.handleDirections)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_configs",
		Description: "List available store configurations",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleListConfigs)
}

// GetMCPServer returns the underlying MCP server for serving
func (c *Client) GetMCPServer() *server.MCPServer {
	return c.mcpServer
}

// Helper methods for API calls

func (c *Client) apiCall(ctx context.Context, method, path string, body interface{}, result interface{}) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reqBody = bytes.NewBuffer(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return err
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var errResp map[string]interface{}
		json.NewDecoder(resp.Body).Decode(&errResp)
		if msg, ok := errResp["error"].(string); ok {
			return fmt.Errorf("%s", msg)
		}
		return fmt.Errorf("API error: %d", resp.StatusCode)
	}

	if result != nil {
		return json.NewDecoder(resp.Body).Decode(result)
	}

	return nil
}

func arguments(request mcp.CallToolRequest) map[string]interface{} {
	args, _ := request.Params.Arguments.(map[string]interface{})
	if args == nil {
		return map[string]interface{}{}
	}
	return args
}

// requiredString reads a string argument, failing when it is missing or blank
func requiredString(args map[string]interface{}, name string) (string, error) {
	value := strings.TrimSpace(cast.ToString(args[name]))
	if value == "" {
		return "", fmt.Errorf("%s is required", name)
	}
	return value, nil
}

func sessionPath(sessionID string, parts ...string) string {
	path := "/api/sessions/" + url.PathEscape(sessionID)
	for _, part := range parts {
		path += "/" + url.PathEscape(part)
	}
	return path
}

// Tool handlers

func (c *Client) handleCreateSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)

	body := map[string]string{}
	if configID := cast.ToString(args["config_id"]); configID != "" {
		body["config_id"] = configID
	}

	var session service.SessionInfo
	if err := c.apiCall(ctx, "POST", "/api/sessions", body, &session); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	logger.Debug("session created", "session", session.ID, "config", session.ConfigName)
	result := fmt.Sprintf("Created session: %s\nStore: %s (config: %s)\n", session.ID, storeName(&session), session.ConfigName)
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleListSessions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var response struct {
		Count    int                   `json:"count"`
		Sessions []service.SessionInfo `json:"sessions"`
	}

	if err := c.apiCall(ctx, "GET", "/api/sessions", nil, &response); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var result strings.Builder
	fmt.Fprintf(&result, "Active Sessions (%d):\n\n", response.Count)
	for _, s := range response.Sessions {
		fmt.Fprintf(&result, "- %s (Config: %s, Items: %d, Created: %s)\n",
			s.ID, s.ConfigName, len(s.ShoppingList), s.CreatedAt.Format("15:04:05"))
	}

	return mcp.NewToolResultText(result.String()), nil
}

func (c *Client) handleGetSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID, err := requiredString(arguments(request), "session_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var session service.SessionInfo
	if err := c.apiCall(ctx, "GET", sessionPath(sessionID), nil, &session); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatSessionInfo(&session)), nil
}

func (c *Client) handleDeleteSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID, err := requiredString(arguments(request), "session_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if err := c.apiCall(ctx, "DELETE", sessionPath(sessionID), nil, nil); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("Deleted session %s", sessionID)), nil
}

func (c *Client) handleSetStart(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	sessionID, err := requiredString(args, "session_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	x, err := cast.ToIntE(args["x"])
	if err != nil || args["x"] == nil {
		return mcp.NewToolResultError("x must be an integer"), nil
	}
	y, err := cast.ToIntE(args["y"])
	if err != nil || args["y"] == nil {
		return mcp.NewToolResultError("y must be an integer"), nil
	}

	body := map[string]interface{}{"x": x, "y": y}
	if name := cast.ToString(args["name"]); name != "" {
		body["name"] = name
	}

	var session service.SessionInfo
	if err := c.apiCall(ctx, "PUT", sessionPath(sessionID, "start"), body, &session); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatSessionInfo(&session)), nil
}

func (c *Client) handleStartLocations(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID, err := requiredString(arguments(request), "session_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var locations []engine.StartLocation
	if err := c.apiCall(ctx, "GET", sessionPath(sessionID, "start-locations"), nil, &locations); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var result strings.Builder
	result.WriteString("Start Locations:\n\n")
	for _, l := range locations {
		fmt.Fprintf(&result, "- %s at (%d,%d)\n", l.Name, l.X, l.Y)
	}
	return mcp.NewToolResultText(result.String()), nil
}

func (c *Client) handleSearchItems(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	sessionID, err := requiredString(args, "session_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	query, err := requiredString(args, "query")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	params := url.Values{"q": {query}}
	if limit := cast.ToInt(args["limit"]); limit > 0 {
		params.Set("limit", cast.ToString(limit))
	}

	var response struct {
		Count int           `json:"count"`
		Items []engine.Item `json:"items"`
	}
	if err := c.apiCall(ctx, "GET", sessionPath(sessionID, "search")+"?"+params.Encode(), nil, &response); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if response.Count == 0 {
		return mcp.NewToolResultText(fmt.Sprintf("No items match %q", query)), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Found %d items:\n\n%s", response.Count, formatItems(response.Items))), nil
}

func (c *Client) handleAddItems(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	sessionID, err := requiredString(args, "session_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	itemIDs, err := cast.ToStringSliceE(args["item_ids"])
	if err != nil || len(itemIDs) == 0 {
		return mcp.NewToolResultError("item_ids must be a non-empty list of item IDs"), nil
	}

	var session service.SessionInfo
	body := map[string]interface{}{"item_ids": itemIDs}
	if err := c.apiCall(ctx, "POST", sessionPath(sessionID, "items"), body, &session); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatSessionInfo(&session)), nil
}

func (c *Client) handleRemoveItem(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	sessionID, err := requiredString(args, "session_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	itemID, err := requiredString(args, "item_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var session service.SessionInfo
	if err := c.apiCall(ctx, "DELETE", sessionPath(sessionID, "items", itemID), nil, &session); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatSessionInfo(&session)), nil
}

func (c *Client) handleClearList(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID, err := requiredString(arguments(request), "session_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var session service.SessionInfo
	if err := c.apiCall(ctx, "DELETE", sessionPath(sessionID, "items"), nil, &session); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatSessionInfo(&session)), nil
}

func (c *Client) handlePlanRoute(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	sessionID, err := requiredString(args, "session_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	path := sessionPath(sessionID, "route")
	if mode := cast.ToString(args["mode"]); mode != "" {
		path += "?" + url.Values{"mode": {mode}}.Encode()
	}

	var plan service.RoutePlan
	if err := c.apiCall(ctx, "GET", path, nil, &plan); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatRoutePlan(&plan)), nil
}

func (c *Client) handleDirections(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	sessionID, err := requiredString(args, "session_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	itemID, err := requiredString(args, "item_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var result service.DirectionsResult
	if err := c.apiCall(ctx, "GET", sessionPath(sessionID, "directions", itemID), nil, &result); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	text := fmt.Sprintf("From %s (%d,%d):\n%s", result.Start.Name, result.Start.X, result.Start.Y, formatSegment(1, result.Segment))
	return mcp.NewToolResultText(text), nil
}

func (c *Client) handleListConfigs(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var configs []service.ConfigInfo
	if err := c.apiCall(ctx, "GET", "/api/configs", nil, &configs); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var result strings.Builder
	result.WriteString("Available Configurations:\n\n")
	for _, config := range configs {
		fmt.Fprintf(&result, "• %s (%s)\n  %s\n  Grid: %dx%d, Sections: %d, Items: %d\n\n",
			config.Name, config.ConfigID, config.Description,
			config.GridWidth, config.GridHeight, config.Sections, config.Items)
	}

	return mcp.NewToolResultText(result.String()), nil
}

// Formatting helpers

func formatSessionInfo(session *service.SessionInfo) string {
	var result strings.Builder
	fmt.Fprintf(&result, "Session: %s\nStore: %s (config: %s)\nCreated: %s\n",
		session.ID, storeName(session), session.ConfigName,
		session.CreatedAt.Format("2006-01-02 15:04:05"))

	if session.Start != nil {
		fmt.Fprintf(&result, "Start: %s at (%d,%d)\n", session.Start.Name, session.Start.X, session.Start.Y)
	} else {
		result.WriteString("Start: not set (use set_start)\n")
	}

	fmt.Fprintf(&result, "\nShopping list (%d):\n", len(session.ShoppingList))
	if len(session.ShoppingList) == 0 {
		result.WriteString("  (empty)\n")
	} else {
		result.WriteString(formatItems(session.ShoppingList))
	}
	return result.String()
}

func storeName(session *service.SessionInfo) string {
	if session.StoreConfig == nil {
		return "unknown store"
	}
	return session.StoreConfig.Name
}

func formatItems(items []engine.Item) string {
	var result strings.Builder
	for _, item := range items {
		c := item.Cell()
		fmt.Fprintf(&result, "  [%s] %s (%s) - %s, aisle %d shelf %s at (%d,%d)\n",
			item.ID, item.Name, item.Category, item.Location.Section,
			item.Location.Aisle, item.Location.Shelf, c.X, c.Y)
	}
	return result.String()
}

func formatRoutePlan(plan *service.RoutePlan) string {
	route := plan.Route

	var result strings.Builder
	fmt.Fprintf(&result, "Route %s (%s) from %s (%d,%d)\n",
		plan.ID, plan.Mode, plan.Start.Name, plan.Start.X, plan.Start.Y)

	if len(route.VisitOrder) == 0 {
		result.WriteString("Shopping list is empty.\n")
		return result.String()
	}

	fmt.Fprintf(&result, "Total: %d feet, about %d min\n", route.TotalDistance, route.EstimatedTime)
	result.WriteString("Visit order: ")
	names := make([]string, len(route.VisitOrder))
	for i, item := range route.VisitOrder {
		names[i] = item.Name
	}
	result.WriteString(strings.Join(names, " → "))
	result.WriteString("\n\n")

	for i, segment := range route.Segments {
		result.WriteString(formatSegment(i+1, segment))
	}

	if len(route.Unreachable) > 0 {
		fmt.Fprintf(&result, "\nWARNING: no walkable path to items %s\n", strings.Join(route.Unreachable, ", "))
	}
	return result.String()
}

func formatSegment(n int, segment engine.RouteSegment) string {
	var result strings.Builder
	fmt.Fprintf(&result, "%d. %s (%d ft, %d min)", n, segment.Destination.Name, segment.Distance, segment.Time)
	if !segment.Reachable {
		result.WriteString(" [unreachable]")
	}
	result.WriteString("\n")
	for _, step := range segment.Steps {
		fmt.Fprintf(&result, "   - %s\n", step.Instruction)
	}
	return result.String()
}
