// controllers/mcp.go
//
// JSON-RPC 2.0 tool surface for programmatic/agent consumption. Three
// tools, all thin wrappers over the same store and insights code the
// HTTP endpoints use.
package controllers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/kevinelliott/henry-saloniq/config"
	"github.com/kevinelliott/henry-saloniq/models"
	"github.com/kevinelliott/henry-saloniq/services"
	"github.com/kevinelliott/henry-saloniq/store"
)

const (
	mcpProtocolVersion = "2024-11-05"
	mcpServerName      = "saloniq"
	mcpServerVersion   = "1.0.0"

	// JSON-RPC error codes
	codeMethodNotFound = -32601
	codeInternalError  = -32603
)

type toolSpec struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	InputSchema map[string]any `json:"inputSchema"`
}

var mcpTools = []toolSpec{
	{
		Name:        "get_stats",
		Description: "Get salon business intelligence stats including utilization, no-show rate, and revenue",
		InputSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"user_id": map[string]any{"type": "string", "description": "The user/salon ID"},
			},
			"required": []string{"user_id"},
		},
	},
	{
		Name:        "add_appointment",
		Description: "Add a new appointment to the salon",
		InputSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"user_id":      map[string]any{"type": "string"},
				"stylist_id":   map[string]any{"type": "string"},
				"client_name":  map[string]any{"type": "string"},
				"service":      map[string]any{"type": "string"},
				"price":        map[string]any{"type": "number"},
				"scheduled_at": map[string]any{"type": "string", "description": "ISO8601 datetime"},
				"status":       map[string]any{"type": "string", "enum": []string{"scheduled", "completed", "no_show", "cancelled"}},
			},
			"required": []string{"user_id", "stylist_id", "client_name", "service", "price", "scheduled_at"},
		},
	},
	{
		Name:        "get_stylists",
		Description: "Get list of active stylists for a salon",
		InputSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"user_id": map[string]any{"type": "string"},
			},
			"required": []string{"user_id"},
		},
	},
}

type McpController struct {
	store *store.Store
}

func NewMcpController(s *store.Store) *McpController {
	return &McpController{store: s}
}

type rpcRequest struct {
	JSONRPC string `json:"jsonrpc"`
	ID      any    `json:"id"`
	Method  string `json:"method"`
	Params  struct {
		Name      string         `json:"name"`
		Arguments map[string]any `json:"arguments"`
	} `json:"params"`
}

// Handle is the single POST endpoint dispatching initialize,
// tools/list and tools/call.
func (mc *McpController) Handle(c *gin.Context) {
	var req rpcRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		rpcError(c, nil, codeInternalError, "invalid JSON body")
		return
	}

	switch req.Method {
	case "initialize":
		rpcResult(c, req.ID, gin.H{
			"protocolVersion": mcpProtocolVersion,
			"capabilities":    gin.H{"tools": gin.H{}},
			"serverInfo":      gin.H{"name": mcpServerName, "version": mcpServerVersion},
		})
	case "tools/list":
		rpcResult(c, req.ID, gin.H{"tools": mcpTools})
	case "tools/call":
		mc.callTool(c, req)
	default:
		rpcError(c, req.ID, codeMethodNotFound, "Method not found")
	}
}

// Describe answers a plain GET with the server identity and tool names.
func (mc *McpController) Describe(c *gin.Context) {
	names := make([]string, len(mcpTools))
	for i, t := range mcpTools {
		names[i] = t.Name
	}
	c.JSON(http.StatusOK, gin.H{
		"name":    "SalonIQ MCP",
		"version": mcpServerVersion,
		"tools":   names,
	})
}

func (mc *McpController) callTool(c *gin.Context, req rpcRequest) {
	name := req.Params.Name
	args := req.Params.Arguments

	var payload any
	var err error
	switch name {
	case "get_stats":
		payload, err = mc.toolGetStats(args)
	case "add_appointment":
		payload, err = mc.toolAddAppointment(args)
	case "get_stylists":
		payload, err = mc.toolGetStylists(args)
	default:
		rpcError(c, req.ID, codeMethodNotFound, "Unknown tool")
		return
	}

	userID, _ := args["user_id"].(string)
	mc.record(name, userID, err == nil)

	if err != nil {
		rpcError(c, req.ID, codeInternalError, err.Error())
		return
	}

	text, err := json.Marshal(payload)
	if err != nil {
		rpcError(c, req.ID, codeInternalError, err.Error())
		return
	}
	rpcResult(c, req.ID, gin.H{
		"content": []gin.H{{"type": "text", "text": string(text)}},
	})
}

// mcpStats is the tool-facing snapshot; it omits monthRevenue, which
// only the HTTP stats endpoint reports.
type mcpStats struct {
	TodayRevenue   float64 `json:"todayRevenue"`
	UtilizationPct int     `json:"utilizationPct"`
	NoShowRate     int     `json:"noShowRate"`
	StylistCount   int     `json:"stylistCount"`
}

func (mc *McpController) toolGetStats(args map[string]any) (any, error) {
	userID, err := argUUID(args, "user_id")
	if err != nil {
		return nil, err
	}

	appts, err := mc.store.AppointmentsForUser(userID)
	if err != nil {
		return nil, err
	}
	stylists, err := mc.store.ActiveStylists(userID)
	if err != nil {
		return nil, err
	}

	snap := services.ComputeStats(appts, stylists, time.Now())
	return mcpStats{
		TodayRevenue:   snap.TodayRevenue,
		UtilizationPct: snap.UtilizationPct,
		NoShowRate:     snap.NoShowRate,
		StylistCount:   snap.StylistCount,
	}, nil
}

func (mc *McpController) toolAddAppointment(args map[string]any) (any, error) {
	userID, err := argUUID(args, "user_id")
	if err != nil {
		return nil, err
	}
	stylistID, err := argUUID(args, "stylist_id")
	if err != nil {
		return nil, err
	}
	clientName, err := argString(args, "client_name")
	if err != nil {
		return nil, err
	}
	service, err := argString(args, "service")
	if err != nil {
		return nil, err
	}
	price, err := argNumber(args, "price")
	if err != nil {
		return nil, err
	}
	scheduledRaw, err := argString(args, "scheduled_at")
	if err != nil {
		return nil, err
	}
	scheduledAt, err := time.Parse(time.RFC3339, scheduledRaw)
	if err != nil {
		return nil, fmt.Errorf("scheduled_at must be an ISO8601 datetime: %w", err)
	}

	status, _ := args["status"].(string)
	if status == "" {
		status = models.StatusScheduled
	}

	appt := models.Appointment{
		UserID:      userID,
		StylistID:   stylistID,
		ClientName:  clientName,
		Service:     service,
		Price:       price,
		ScheduledAt: scheduledAt,
		Status:      status,
	}
	if err := mc.store.CreateAppointment(&appt); err != nil {
		return nil, err
	}
	return appt, nil
}

func (mc *McpController) toolGetStylists(args map[string]any) (any, error) {
	userID, err := argUUID(args, "user_id")
	if err != nil {
		return nil, err
	}
	stylists, err := mc.store.ActiveStylists(userID)
	if err != nil {
		return nil, err
	}
	if stylists == nil {
		stylists = []models.Stylist{}
	}
	return stylists, nil
}

func (mc *McpController) record(tool, userID string, success bool) {
	config.McpToolCallsTotal.WithLabelValues(tool).Inc()
	if err := mc.store.RecordToolCall(tool, userID, success); err != nil {
		// usage accounting must not fail the call itself
		slog.Warn("failed to record tool call", "tool", tool, "error", err)
	}
}

func argString(args map[string]any, key string) (string, error) {
	v, ok := args[key].(string)
	if !ok || v == "" {
		return "", fmt.Errorf("missing required argument: %s", key)
	}
	return v, nil
}

func argUUID(args map[string]any, key string) (uuid.UUID, error) {
	raw, err := argString(args, key)
	if err != nil {
		return uuid.Nil, err
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%s is not a valid ID", key)
	}
	return id, nil
}

// argNumber accepts JSON numbers and numeric strings, matching the
// loose typing MCP clients send.
func argNumber(args map[string]any, key string) (float64, error) {
	switch v := args[key].(type) {
	case float64:
		if v == 0 {
			return 0, fmt.Errorf("missing required argument: %s", key)
		}
		return v, nil
	case string:
		var f float64
		if _, err := fmt.Sscanf(v, "%g", &f); err != nil {
			return 0, fmt.Errorf("%s is not a number", key)
		}
		return f, nil
	default:
		return 0, errors.New("missing required argument: " + key)
	}
}

func rpcResult(c *gin.Context, id any, result any) {
	c.JSON(http.StatusOK, gin.H{"jsonrpc": "2.0", "id": id, "result": result})
}

func rpcError(c *gin.Context, id any, code int, message string) {
	c.JSON(http.StatusOK, gin.H{
		"jsonrpc": "2.0",
		"id":      id,
		"error":   gin.H{"code": code, "message": message},
	})
}
