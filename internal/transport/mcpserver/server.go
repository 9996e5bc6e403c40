// Package mcpserver публикует чтение заказов и статистики как MCP-инструменты.
package mcpserver

import (
	"context"

	"github.com/mark3labs/mcp-go/server"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/storedesk/internal/service/lifecycle"
	"github.com/vladislavdragonenkov/storedesk/internal/service/order"
	"github.com/vladislavdragonenkov/storedesk/internal/service/report"
	"github.com/vladislavdragonenkov/storedesk/internal/service/search"
)

// ServerName задаёт имя MCP-сервера.
const ServerName = "storedesk"

// Deps — сервисы ядра, доступные инструментам.
type Deps struct {
	Orders  *order.Manager
	Search  *search.Engine
	Tracker *lifecycle.Tracker
	Reports *report.Aggregator
	Logger  *log.Entry
}

// Server связывает MCP-сервер с сервисами магазина.
type Server struct {
	mcp    *server.MCPServer
	deps   Deps
	logger *log.Entry
}

// NewServer создаёт MCP-сервер и регистрирует инструменты.
func NewServer(version string, d Deps) *Server {
	logger := d.Logger
	if logger == nil {
		logger = log.WithField("component", "mcp-server")
	}

	s := &Server{
		mcp:    server.NewMCPServer(ServerName, version),
		deps:   d,
		logger: logger,
	}
	s.registerTools()
	return s
}

// MCP возвращает нижележащий сервер.
func (s *Server) MCP() *server.MCPServer {
	return s.mcp
}

// Serve обслуживает stdio до EOF или сигнала остановки.
func (s *Server) Serve(_ context.Context) error {
	return server.ServeStdio(s.mcp)
}

func (s *Server) registerTools() {
	s.mcp.AddTool(searchOrdersTool(), s.handleSearchOrders)
	s.mcp.AddTool(getOrderTool(), s.handleGetOrder)
	s.mcp.AddTool(countUrgentTool(), s.handleCountUrgent)
	s.mcp.AddTool(storeStatisticsTool(), s.handleStoreStatistics)
}
