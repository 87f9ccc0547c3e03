package mcp

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wricardo/storenav/api"
	"github.com/wricardo/storenav/store/config"
	"github.com/wricardo/storenav/store/engine"
	"github.com/wricardo/storenav/store/service"
	"github.com/wricardo/storenav/store/session"
)

func newAPIServer(t *testing.T) *httptest.Server {
	t.Helper()
	configMgr, err := config.NewManager(t.TempDir())
	require.NoError(t, err)

	navService := service.NewNavigationService(session.NewManager(), configMgr)
	server := httptest.NewServer(api.NewServer(navService, nil))
	t.Cleanup(server.Close)
	return server
}

func callTool(name string, args map[string]interface{}) mcp.CallToolRequest {
	return mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name:      name,
			Arguments: args,
		},
	}
}

func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	require.NotNil(t, result)
	require.NotEmpty(t, result.Content)
	text, ok := result.Content[0].(mcp.TextContent)
	require.True(t, ok, "expected text content")
	return text.Text
}

func createSession(t *testing.T, server *httptest.Server) string {
	t.Helper()
	resp, err := http.Post(server.URL+"/api/sessions", "application/json", nil)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var info service.SessionInfo
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&info))
	return info.ID
}

func TestNewClient(t *testing.T) {
	client := NewClient("http://localhost:8080/")
	assert.Equal(t, "http://localhost:8080", client.baseURL)
	assert.NotNil(t, client.httpClient)
	require.NotNil(t, client.GetMCPServer())

	response := client.GetMCPServer().HandleMessage(context.Background(),
		json.RawMessage(`{"jsonrpc":"2.0","id":1,"method":"tools/list"}`))
	data, err := json.Marshal(response)
	require.NoError(t, err)
	tools := string(data)
	for _, name := range []string{
		"create_session", "list_sessions", "get_session", "delete_session",
		"set_start", "start_locations", "search_items", "add_items",
		"remove_item", "clear_list", "plan_route", "get_directions", "list_configs",
	} {
		assert.Contains(t, tools, `"name":"`+name+`"`)
	}
}

func TestShoppingWorkflow(t *testing.T) {
	server := newAPIServer(t)
	client := NewClient(server.URL)
	ctx := context.Background()

	result, err := client.handleCreateSession(ctx, callTool("create_session", nil))
	require.NoError(t, err)
	assert.False(t, result.IsError)
	assert.Contains(t, resultText(t, result), "Demo Grocery")

	sessionID := createSession(t, server)

	t.Run("route before start", func(t *testing.T) {
		result, err := client.handlePlanRoute(ctx, callTool("plan_route", map[string]interface{}{"session_id": sessionID}))
		require.NoError(t, err)
		assert.True(t, result.IsError)
	})

	t.Run("set start from json numbers", func(t *testing.T) {
		result, err := client.handleSetStart(ctx, callTool("set_start", map[string]interface{}{
			"session_id": sessionID, "x": float64(2), "y": "9",
		}))
		require.NoError(t, err)
		require.False(t, result.IsError, resultText(t, result))
		assert.Contains(t, resultText(t, result), "Start: Store Entrance at (2,9)")
	})

	t.Run("search", func(t *testing.T) {
		result, err := client.handleSearchItems(ctx, callTool("search_items", map[string]interface{}{
			"session_id": sessionID, "query": "frozen", "limit": 5,
		}))
		require.NoError(t, err)
		text := resultText(t, result)
		assert.Contains(t, text, "Found 2 items")
		assert.Contains(t, text, "[17] Ice Cream")
	})

	t.Run("add items", func(t *testing.T) {
		result, err := client.handleAddItems(ctx, callTool("add_items", map[string]interface{}{
			"session_id": sessionID, "item_ids": []interface{}{"6", "1"},
		}))
		require.NoError(t, err)
		require.False(t, result.IsError, resultText(t, result))
		assert.Contains(t, resultText(t, result), "Shopping list (2)")
	})

	t.Run("plan route", func(t *testing.T) {
		result, err := client.handlePlanRoute(ctx, callTool("plan_route", map[string]interface{}{"session_id": sessionID}))
		require.NoError(t, err)
		text := resultText(t, result)
		assert.Contains(t, text, "Total: 130 feet, about 2 min")
		assert.Contains(t, text, "Apples → Milk")
		assert.Contains(t, text, engine.ArrivedInstruction)
	})

	t.Run("directions", func(t *testing.T) {
		result, err := client.handleDirections(ctx, callTool("get_directions", map[string]interface{}{
			"session_id": sessionID, "item_id": "6",
		}))
		require.NoError(t, err)
		text := resultText(t, result)
		assert.Contains(t, text, "Milk (130 ft, 2 min)")
		assert.Contains(t, text, "Head east for 50 feet")
	})

	t.Run("remove and clear", func(t *testing.T) {
		result, err := client.handleRemoveItem(ctx, callTool("remove_item", map[string]interface{}{
			"session_id": sessionID, "item_id": "6",
		}))
		require.NoError(t, err)
		assert.Contains(t, resultText(t, result), "Shopping list (1)")

		result, err = client.handleClearList(ctx, callTool("clear_list", map[string]interface{}{"session_id": sessionID}))
		require.NoError(t, err)
		assert.Contains(t, resultText(t, result), "(empty)")
	})

	t.Run("list and delete", func(t *testing.T) {
		result, err := client.handleListSessions(ctx, callTool("list_sessions", nil))
		require.NoError(t, err)
		assert.Contains(t, resultText(t, result), "Active Sessions (2)")

		result, err = client.handleDeleteSession(ctx, callTool("delete_session", map[string]interface{}{"session_id": sessionID}))
		require.NoError(t, err)
		assert.False(t, result.IsError)

		result, err = client.handleGetSession(ctx, callTool("get_session", map[string]interface{}{"session_id": sessionID}))
		require.NoError(t, err)
		assert.True(t, result.IsError)
	})
}

func TestArgumentValidation(t *testing.T) {
	server := newAPIServer(t)
	client := NewClient(server.URL)
	ctx := context.Background()
	sessionID := createSession(t, server)

	tests := []struct {
		name    string
		handler func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error)
		args    map[string]interface{}
		want    string
	}{
		{"missing session", client.handleGetSession, nil, "session_id is required"},
		{"missing x", client.handleSetStart, map[string]interface{}{"session_id": sessionID, "y": 1}, "x must be an integer"},
		{"bad y", client.handleSetStart, map[string]interface{}{"session_id": sessionID, "x": 1, "y": "north"}, "y must be an integer"},
		{"no items", client.handleAddItems, map[string]interface{}{"session_id": sessionID, "item_ids": []interface{}{}}, "item_ids must be"},
		{"unknown item", client.handleAddItems, map[string]interface{}{"session_id": sessionID, "item_ids": []interface{}{"999"}}, "item not found"},
		{"bad mode", client.handlePlanRoute, map[string]interface{}{"session_id": sessionID, "mode": "teleport"}, "invalid path mode"},
		{"missing query", client.handleSearchItems, map[string]interface{}{"session_id": sessionID}, "query is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := tt.handler(ctx, callTool("tool", tt.args))
			require.NoError(t, err)
			assert.True(t, result.IsError)
			assert.Contains(t, resultText(t, result), tt.want)
		})
	}
}

func TestAPIErrorWithoutMessage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := NewClient(server.URL)
	err := client.apiCall(context.Background(), "GET", "/api/configs", nil, nil)
	require.Error(t, err)
	assert.Equal(t, "API error: 502", err.Error())
}

func TestFormatRoutePlan(t *testing.T) {
	plan := &service.RoutePlan{
		ID:    "plan-1",
		Mode:  engine.PathWalkable,
		Start: engine.StartLocation{X: 1, Y: 1, Name: "Door"},
		Route: engine.OptimalRoute{
			VisitOrder: []engine.Item{{ID: "g", Name: "Gold"}},
			Segments: []engine.RouteSegment{{
				Destination: engine.Item{ID: "g", Name: "Gold"},
				Distance:    70,
				Time:        1,
				Steps:       []engine.RouteStep{{Instruction: engine.ArrivedInstruction}},
			}},
			TotalDistance: 70,
			EstimatedTime: 1,
			Unreachable:   []string{"g"},
		},
	}

	text := formatRoutePlan(plan)
	assert.Contains(t, text, "Route plan-1 (walkable) from Door (1,1)")
	assert.Contains(t, text, "1. Gold (70 ft, 1 min) [unreachable]")
	assert.Contains(t, text, "WARNING: no walkable path to items g")

	empty := formatRoutePlan(&service.RoutePlan{Mode: engine.PathManhattan})
	assert.Contains(t, empty, "Shopping list is empty.")
}
