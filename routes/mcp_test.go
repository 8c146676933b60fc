package routes

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kevinelliott/henry-saloniq/models"
)

func rpc(method string, params gin.H) gin.H {
	req := gin.H{"jsonrpc": "2.0", "id": 1, "method": method}
	if params != nil {
		req["params"] = params
	}
	return req
}

func rpcErrorCode(t *testing.T, body map[string]any) float64 {
	t.Helper()
	errObj, ok := body["error"].(map[string]any)
	require.True(t, ok, "expected an error envelope, got %v", body)
	return errObj["code"].(float64)
}

func TestMcpInitialize(t *testing.T) {
	r, _ := newTestRouter(t, testConfig())

	w := doJSON(r, http.MethodPost, "/api/mcp", rpc("initialize", nil), nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, "2.0", body["jsonrpc"])

	result := body["result"].(map[string]any)
	assert.Equal(t, "2024-11-05", result["protocolVersion"])
	serverInfo := result["serverInfo"].(map[string]any)
	assert.Equal(t, "saloniq", serverInfo["name"])
}

func TestMcpToolsList(t *testing.T) {
	r, _ := newTestRouter(t, testConfig())

	w := doJSON(r, http.MethodPost, "/api/mcp", rpc("tools/list", nil), nil)
	require.Equal(t, http.StatusOK, w.Code)

	result := decode(t, w)["result"].(map[string]any)
	tools := result["tools"].([]any)
	require.Len(t, tools, 3)

	var names []string
	for _, tool := range tools {
		names = append(names, tool.(map[string]any)["name"].(string))
	}
	assert.Equal(t, []string{"get_stats", "add_appointment", "get_stylists"}, names)
}

func TestMcpUnknownToolAndMethod(t *testing.T) {
	r, _ := newTestRouter(t, testConfig())

	w := doJSON(r, http.MethodPost, "/api/mcp", rpc("tools/call", gin.H{
		"name":      "delete_everything",
		"arguments": gin.H{"user_id": uuid.NewString()},
	}), nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, -32601.0, rpcErrorCode(t, body))
	assert.Equal(t, "Unknown tool", body["error"].(map[string]any)["message"])

	w = doJSON(r, http.MethodPost, "/api/mcp", rpc("resources/list", nil), nil)
	require.Equal(t, http.StatusOK, w.Code)
	body = decode(t, w)
	assert.Equal(t, -32601.0, rpcErrorCode(t, body))
	assert.Equal(t, "Method not found", body["error"].(map[string]any)["message"])
}

func TestMcpToolErrorsAreInternal(t *testing.T) {
	r, _ := newTestRouter(t, testConfig())

	// add_appointment without its required arguments
	w := doJSON(r, http.MethodPost, "/api/mcp", rpc("tools/call", gin.H{
		"name":      "add_appointment",
		"arguments": gin.H{"user_id": uuid.NewString()},
	}), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, -32603.0, rpcErrorCode(t, decode(t, w)))
}

func toolText(t *testing.T, body map[string]any) string {
	t.Helper()
	result := body["result"].(map[string]any)
	content := result["content"].([]any)
	require.Len(t, content, 1)
	block := content[0].(map[string]any)
	assert.Equal(t, "text", block["type"])
	return block["text"].(string)
}

func TestMcpToolRoundTrip(t *testing.T) {
	r, st := newTestRouter(t, testConfig())
	userID := uuid.New()
	stylist := seedStylist(t, st, userID)

	w := doJSON(r, http.MethodPost, "/api/mcp", rpc("tools/call", gin.H{
		"name": "add_appointment",
		"arguments": gin.H{
			"user_id":      userID.String(),
			"stylist_id":   stylist.ID.String(),
			"client_name":  "Jessica M",
			"service":      "Highlights",
			"price":        160,
			"scheduled_at": time.Now().Format(time.RFC3339),
			"status":       "completed",
		},
	}), nil)
	require.Equal(t, http.StatusOK, w.Code)

	var created models.Appointment
	require.NoError(t, json.Unmarshal([]byte(toolText(t, decode(t, w))), &created))
	assert.Equal(t, "completed", created.Status)
	assert.Equal(t, 160.0, created.Price)

	w = doJSON(r, http.MethodPost, "/api/mcp", rpc("tools/call", gin.H{
		"name":      "get_stylists",
		"arguments": gin.H{"user_id": userID.String()},
	}), nil)
	require.Equal(t, http.StatusOK, w.Code)

	var stylists []models.Stylist
	require.NoError(t, json.Unmarshal([]byte(toolText(t, decode(t, w))), &stylists))
	require.Len(t, stylists, 1)
	assert.Equal(t, "Emma Chen", stylists[0].Name)

	w = doJSON(r, http.MethodPost, "/api/mcp", rpc("tools/call", gin.H{
		"name":      "get_stats",
		"arguments": gin.H{"user_id": userID.String()},
	}), nil)
	require.Equal(t, http.StatusOK, w.Code)

	var stats map[string]any
	require.NoError(t, json.Unmarshal([]byte(toolText(t, decode(t, w))), &stats))
	assert.Equal(t, 160.0, stats["todayRevenue"])
	assert.Equal(t, 1.0, stats["stylistCount"])
	_, hasMonth := stats["monthRevenue"]
	assert.False(t, hasMonth, "tool stats omit monthRevenue")
}

func TestMcpUsageIsRecorded(t *testing.T) {
	r, st := newTestRouter(t, testConfig())
	userID := uuid.NewString()

	for i := 0; i < 3; i++ {
		doJSON(r, http.MethodPost, "/api/mcp", rpc("tools/call", gin.H{
			"name":      "get_stylists",
			"arguments": gin.H{"user_id": userID},
		}), nil)
	}
	doJSON(r, http.MethodPost, "/api/mcp", rpc("tools/call", gin.H{
		"name":      "get_stats",
		"arguments": gin.H{"user_id": userID},
	}), nil)

	total, err := st.CountToolCalls()
	require.NoError(t, err)
	assert.Equal(t, int64(4), total)

	top, err := st.TopTools(5)
	require.NoError(t, err)
	require.NotEmpty(t, top)
	assert.Equal(t, "get_stylists", top[0])

	w := doJSON(r, http.MethodGet, "/api/admin/mcp-usage", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, 4.0, body["total"])
}

func TestMcpDescribe(t *testing.T) {
	r, _ := newTestRouter(t, testConfig())

	w := doJSON(r, http.MethodGet, "/api/mcp", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, "SalonIQ MCP", body["name"])
	assert.Len(t, body["tools"], 3)
}
