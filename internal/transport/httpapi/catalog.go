package httpapi

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/vladislavdragonenkov/storedesk/internal/transport/dto"
)

func (h *handler) listCustomers(c echo.Context) error {
	names, err := h.Catalog.ListCustomers(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, names)
}

func (h *handler) getCustomer(c echo.Context) error {
	customer, err := h.Catalog.ResolveCustomer(c.Request().Context(), nameParam(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dto.FromCustomer(customer))
}

func (h *handler) createCustomer(c echo.Context) error {
	var req dto.CustomerRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	customer, err := h.Catalog.CreateCustomer(c.Request().Context(), req.Name, req.Phone, req.Address)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, dto.FromCustomer(customer))
}

func (h *handler) updateCustomer(c echo.Context) error {
	var req dto.CustomerRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	customer, err := h.Catalog.UpdateCustomer(c.Request().Context(), nameParam(c), req.Name, req.Phone, req.Address)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dto.FromCustomer(customer))
}

func (h *handler) listProducts(c echo.Context) error {
	refs, err := h.Catalog.ListProducts(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dto.FromProductRefs(refs))
}

func (h *handler) getProduct(c echo.Context) error {
	product, err := h.Catalog.ResolveProduct(c.Request().Context(), nameParam(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dto.FromProduct(product))
}

func (h *handler) createProduct(c echo.Context) error {
	var req dto.ProductRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	product, err := h.Catalog.CreateProduct(c.Request().Context(), req.Name, req.Price)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, dto.FromProduct(product))
}

func (h *handler) updateProduct(c echo.Context) error {
	var req dto.ProductRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	product, err := h.Catalog.UpdateProduct(c.Request().Context(), nameParam(c), req.Name, req.Price)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dto.FromProduct(product))
}
