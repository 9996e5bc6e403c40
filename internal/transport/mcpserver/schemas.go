package mcpserver

import (
	"github.com/mark3labs/mcp-go/mcp"

	"github.com/vladislavdragonenkov/storedesk/internal/domain"
)

// statusFilterValues перечисляет допустимые значения фильтра статуса.
func statusFilterValues() []string {
	values := []string{domain.StatusAll}
	for _, status := range domain.OrderStatuses() {
		values = append(values, string(status))
	}
	return values
}

func searchOrdersTool() mcp.Tool {
	return mcp.Tool{
		Name:        "search_orders",
		Description: "Search orders by customer name or order number, newest first",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"term": map[string]interface{}{
					"type":        "string",
					"description": "Case-insensitive substring of customer name or order id",
				},
				"status": map[string]interface{}{
					"type":        "string",
					"description": "Status filter",
					"enum":        statusFilterValues(),
					"default":     domain.StatusAll,
				},
			},
		},
	}
}

func getOrderTool() mcp.Tool {
	return mcp.Tool{
		Name:        "get_order",
		Description: "Load an order with its items",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"id": map[string]interface{}{
					"type":        "integer",
					"description": "Order id",
					"minimum":     1,
				},
			},
			Required: []string{"id"},
		},
	}
}

func countUrgentTool() mcp.Tool {
	return mcp.Tool{
		Name:        "count_urgent",
		Description: "Count pending orders that are overdue, due today or due tomorrow",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}
}

func storeStatisticsTool() mcp.Tool {
	return mcp.Tool{
		Name:        "store_statistics",
		Description: "Customer, product and order counts with total and average order value",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}
}
