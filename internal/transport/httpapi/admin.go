package httpapi

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/vladislavdragonenkov/storedesk/internal/transport/dto"
)

func (h *handler) statistics(c echo.Context) error {
	stats, err := h.Reports.ComputeStatistics(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dto.FromStatistics(stats))
}

func (h *handler) backup(c echo.Context) error {
	path, err := h.Admin.Backup(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, dto.BackupResponse{Path: path})
}

// reset сначала делает backup; при его сбое данные не трогаются.
func (h *handler) reset(c echo.Context) error {
	path, err := h.Admin.Reset(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dto.BackupResponse{Path: path})
}

func (h *handler) purgeOrders(c echo.Context) error {
	if err := h.Admin.PurgeOrders(c.Request().Context()); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
