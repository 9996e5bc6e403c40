package httpapi

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/vladislavdragonenkov/storedesk/internal/domain"
	"github.com/vladislavdragonenkov/storedesk/internal/service/lifecycle"
	"github.com/vladislavdragonenkov/storedesk/internal/service/order"
	"github.com/vladislavdragonenkov/storedesk/internal/ticket"
	"github.com/vladislavdragonenkov/storedesk/internal/transport/dto"
)

type urgencyResponse struct {
	domain.UrgencyReport
	Summary string `json:"summary"`
}

// createOrder собирает черновик по текущим ценам каталога и сохраняет заказ.
func (h *handler) createOrder(c echo.Context) error {
	var req dto.CreateOrderRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	ctx := c.Request().Context()

	draft := order.NewDraft(h.Catalog)
	for _, item := range req.Items {
		if err := draft.AddItem(ctx, item.Product, item.Quantity); err != nil {
			return err
		}
	}

	created, err := h.Orders.CreateOrder(ctx, req.Customer, req.DeliveryDate, draft.Items())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, dto.FromOrder(created))
}

func (h *handler) searchOrders(c echo.Context) error {
	list, err := h.Search.Search(c.Request().Context(), c.QueryParam("q"), c.QueryParam("status"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dto.FromSummaries(list))
}

func (h *handler) urgency(c echo.Context) error {
	report, err := h.Tracker.CountUrgent(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, urgencyResponse{UrgencyReport: report, Summary: lifecycle.Summary(report)})
}

func (h *handler) getOrder(c echo.Context) error {
	id, err := orderID(c)
	if err != nil {
		return err
	}
	o, err := h.Orders.GetOrder(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dto.FromOrder(o))
}

func (h *handler) updateOrder(c echo.Context) error {
	id, err := orderID(c)
	if err != nil {
		return err
	}
	var req dto.UpdateOrderRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	updated, err := h.Orders.UpdateOrder(c.Request().Context(), id, req.DeliveryDate, req.Status)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dto.FromOrder(updated))
}

func (h *handler) orderTicket(c echo.Context) error {
	id, err := orderID(c)
	if err != nil {
		return err
	}
	o, err := h.Orders.GetOrder(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.String(http.StatusOK, ticket.Render(o, h.Ticket))
}

func (h *handler) orderTimeline(c echo.Context) error {
	id, err := orderID(c)
	if err != nil {
		return err
	}
	events, err := h.Orders.Timeline(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dto.FromTimeline(events))
}
