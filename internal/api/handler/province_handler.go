package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/frenchreborn/province-chat/internal/core/ports"
)

// ProvinceHandler handles province listing, selection and stats.
type ProvinceHandler struct {
	service ports.ChatService
}

func NewProvinceHandler(service ports.ChatService) *ProvinceHandler {
	return &ProvinceHandler{service: service}
}

// List handles GET /v1/provinces.
func (h *ProvinceHandler) List(c echo.Context) error {
	if _, err := ctxUsername(c); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, provincesResponse{Provinces: h.service.Provinces()})
}

// Choose handles POST /v1/province. Idempotent.
func (h *ProvinceHandler) Choose(c echo.Context) error {
	username, err := ctxUsername(c)
	if err != nil {
		return err
	}

	var req chooseProvinceRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	if err := h.service.ChooseProvince(c.Request().Context(), username, req.Province); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, successResponse{Success: true})
}

// Stats handles GET /v1/provinces/stats — member count per province.
func (h *ProvinceHandler) Stats(c echo.Context) error {
	if _, err := ctxUsername(c); err != nil {
		return err
	}

	stats, err := h.service.ProvinceStats(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, stats)
}
