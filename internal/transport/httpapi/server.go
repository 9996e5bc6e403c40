// Package httpapi публикует операции магазина через REST API на echo.
package httpapi

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/storedesk/internal/domain"
	"github.com/vladislavdragonenkov/storedesk/internal/service/admin"
	"github.com/vladislavdragonenkov/storedesk/internal/service/catalog"
	"github.com/vladislavdragonenkov/storedesk/internal/service/lifecycle"
	"github.com/vladislavdragonenkov/storedesk/internal/service/order"
	"github.com/vladislavdragonenkov/storedesk/internal/service/report"
	"github.com/vladislavdragonenkov/storedesk/internal/service/search"
	"github.com/vladislavdragonenkov/storedesk/internal/ticket"
	"github.com/vladislavdragonenkov/storedesk/internal/transport/dto"
)

// Deps — сервисы ядра, которые обслуживает API.
type Deps struct {
	Catalog *catalog.Service
	Orders  *order.Manager
	Search  *search.Engine
	Tracker *lifecycle.Tracker
	Reports *report.Aggregator
	Admin   *admin.Service
	Ticket  ticket.Options
	Logger  *log.Entry
}

type handler struct {
	Deps
}

// NewRouter собирает echo с middleware и всеми маршрутами.
func NewRouter(d Deps) *echo.Echo {
	if d.Logger == nil {
		d.Logger = log.WithField("component", "http-api")
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = errorHandler(d.Logger)

	e.Use(echomw.Recover())
	e.Use(echomw.RequestIDWithConfig(echomw.RequestIDConfig{Generator: uuid.NewString}))
	e.Use(requestLogger(d.Logger))

	Register(e, d)
	return e
}

// Register навешивает маршруты на e.
func Register(e *echo.Echo, d Deps) {
	h := &handler{Deps: d}

	customers := e.Group("/customers")
	customers.GET("", h.listCustomers)
	customers.POST("", h.createCustomer)
	customers.GET("/:name", h.getCustomer)
	customers.PUT("/:name", h.updateCustomer)

	products := e.Group("/products")
	products.GET("", h.listProducts)
	products.POST("", h.createProduct)
	products.GET("/:name", h.getProduct)
	products.PUT("/:name", h.updateProduct)

	orders := e.Group("/orders")
	orders.GET("", h.searchOrders)
	orders.POST("", h.createOrder)
	orders.GET("/urgency", h.urgency)
	orders.GET("/:id", h.getOrder)
	orders.PATCH("/:id", h.updateOrder)
	orders.GET("/:id/ticket", h.orderTicket)
	orders.GET("/:id/timeline", h.orderTimeline)

	e.GET("/stats", h.statistics)

	adminGroup := e.Group("/admin")
	adminGroup.POST("/backup", h.backup)
	adminGroup.POST("/reset", h.reset)
	adminGroup.POST("/purge-orders", h.purgeOrders)
}

// statusFor переводит категорию ошибки в HTTP-код.
func statusFor(err error) int {
	switch domain.KindOf(err) {
	case domain.KindValidation:
		return http.StatusBadRequest
	case domain.KindNotFound:
		return http.StatusNotFound
	case domain.KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func errorHandler(logger *log.Entry) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		var he *echo.HTTPError
		if errors.As(err, &he) {
			msg := fmt.Sprint(he.Message)
			_ = c.JSON(he.Code, dto.ErrorResponse{Error: msg, Kind: kindForHTTP(he.Code)})
			return
		}

		code := statusFor(err)
		if code == http.StatusInternalServerError {
			logger.WithError(err).WithField("path", c.Path()).Error("request failed")
		}
		_ = c.JSON(code, dto.NewError(err))
	}
}

func kindForHTTP(code int) string {
	switch code {
	case http.StatusBadRequest:
		return string(domain.KindValidation)
	case http.StatusNotFound:
		return string(domain.KindNotFound)
	case http.StatusConflict:
		return string(domain.KindConflict)
	}
	if code >= http.StatusInternalServerError {
		return string(domain.KindInternal)
	}
	return "http"
}

func requestLogger(logger *log.Entry) echo.MiddlewareFunc {
	return echomw.RequestLoggerWithConfig(echomw.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(_ echo.Context, v echomw.RequestLoggerValues) error {
			entry := logger.WithFields(log.Fields{
				"method":      v.Method,
				"path":        v.URI,
				"status":      v.Status,
				"duration_ms": v.Latency.Milliseconds(),
				"request_id":  v.RequestID,
			})
			if v.Error != nil {
				entry = entry.WithError(v.Error)
			}
			if v.Status >= http.StatusInternalServerError {
				entry.Warn("http request")
				return nil
			}
			entry.Debug("http request")
			return nil
		},
	})
}

func bind(c echo.Context, dst any) error {
	if err := c.Bind(dst); err != nil {
		return fmt.Errorf("%w: invalid request body", domain.ErrValidation)
	}
	return nil
}

func orderID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: invalid order id %q", domain.ErrValidation, c.Param("id"))
	}
	return id, nil
}

func nameParam(c echo.Context) string {
	raw := c.Param("name")
	if name, err := url.PathUnescape(raw); err == nil {
		return name
	}
	return raw
}
