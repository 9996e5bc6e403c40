package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/vladislavdragonenkov/storedesk/internal/domain"
	"github.com/vladislavdragonenkov/storedesk/internal/service/lifecycle"
	"github.com/vladislavdragonenkov/storedesk/internal/transport/dto"
)

// MCP error codes
const (
	ErrorCodeInvalidParams = -32602
	ErrorCodeInternalError = -32603
	ErrorCodeNotFound      = -32001
	ErrorCodeConflict      = -32002
)

// MCPError — ошибка инструмента с JSON-RPC кодом.
type MCPError struct {
	Code    int
	Message string
	Data    interface{}
}

func (e *MCPError) Error() string {
	return fmt.Sprintf("MCP error %d: %s", e.Code, e.Message)
}

func newMCPError(code int, message string, data interface{}) error {
	return &MCPError{Code: code, Message: message, Data: data}
}

// toMCPError переводит категорию доменной ошибки в код MCP.
func toMCPError(err error) error {
	code := ErrorCodeInternalError
	switch domain.KindOf(err) {
	case domain.KindValidation:
		code = ErrorCodeInvalidParams
	case domain.KindNotFound:
		code = ErrorCodeNotFound
	case domain.KindConflict:
		code = ErrorCodeConflict
	}
	return newMCPError(code, err.Error(), map[string]interface{}{"kind": string(domain.KindOf(err))})
}

func arguments(request mcp.CallToolRequest) (map[string]interface{}, error) {
	if request.Params.Arguments == nil {
		return map[string]interface{}{}, nil
	}
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return nil, newMCPError(ErrorCodeInvalidParams, "invalid arguments", nil)
	}
	return args, nil
}

func (s *Server) handleSearchOrders(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, err := arguments(request)
	if err != nil {
		return nil, err
	}
	term, _ := args["term"].(string)
	status, _ := args["status"].(string)

	list, err := s.deps.Search.Search(ctx, term, status)
	if err != nil {
		return nil, toMCPError(err)
	}
	return textResult(map[string]interface{}{
		"count":  len(list),
		"orders": dto.FromSummaries(list),
	})
}

func (s *Server) handleGetOrder(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, err := arguments(request)
	if err != nil {
		return nil, err
	}
	id, ok := intArg(args, "id")
	if !ok || id <= 0 {
		return nil, newMCPError(ErrorCodeInvalidParams, "id parameter is required", map[string]interface{}{
			"param":  "id",
			"reason": "missing or not a positive integer",
		})
	}

	order, err := s.deps.Orders.GetOrder(ctx, id)
	if err != nil {
		return nil, toMCPError(err)
	}
	return textResult(dto.FromOrder(order))
}

func (s *Server) handleCountUrgent(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	report, err := s.deps.Tracker.CountUrgent(ctx)
	if err != nil {
		s.logger.WithError(err).Warn("count_urgent failed")
		return nil, toMCPError(err)
	}
	return textResult(map[string]interface{}{
		"overdue":       report.Overdue,
		"due_today":     report.DueToday,
		"due_tomorrow":  report.DueTomorrow,
		"total_pending": report.TotalPending,
		"summary":       lifecycle.Summary(report),
	})
}

func (s *Server) handleStoreStatistics(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	stats, err := s.deps.Reports.ComputeStatistics(ctx)
	if err != nil {
		s.logger.WithError(err).Warn("store_statistics failed")
		return nil, toMCPError(err)
	}
	return textResult(dto.FromStatistics(stats))
}

func intArg(args map[string]interface{}, name string) (int64, bool) {
	switch v := args[name].(type) {
	case float64:
		if v != float64(int64(v)) {
			return 0, false
		}
		return int64(v), true
	case int:
		return int64(v), true
	case int64:
		return v, true
	case json.Number:
		n, err := v.Int64()
		return n, err == nil
	default:
		return 0, false
	}
}

func textResult(v interface{}) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, newMCPError(ErrorCodeInternalError, "failed to encode result", nil)
	}
	return mcp.NewToolResultText(string(data)), nil
}
