package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/frenchreborn/province-chat/internal/core/domain"
	"github.com/frenchreborn/province-chat/internal/core/ports"
)

// RoleHandler handles role management and permission introspection.
type RoleHandler struct {
	service ports.RoleService
}

func NewRoleHandler(service ports.RoleService) *RoleHandler {
	return &RoleHandler{service: service}
}

// Create handles POST /v1/roles.
func (h *RoleHandler) Create(c echo.Context) error {
	if _, err := ctxUsername(c); err != nil {
		return err
	}

	var req createRoleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	role, err := h.service.CreateRole(c.Request().Context(), ports.CreateRoleInput{
		Name:        req.Name,
		Province:    req.Province,
		Permissions: req.Permissions,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, role)
}

// Assign handles POST /v1/roles/assign.
func (h *RoleHandler) Assign(c echo.Context) error {
	if _, err := ctxUsername(c); err != nil {
		return err
	}

	var req assignRoleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	if err := h.service.AssignRole(c.Request().Context(), req.Username, req.Province, req.Role); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, successResponse{Success: true})
}

// List handles GET /v1/roles — roles owned by the caller's province, passed
// as the ?province query parameter.
func (h *RoleHandler) List(c echo.Context) error {
	if _, err := ctxUsername(c); err != nil {
		return err
	}

	province := c.QueryParam("province")
	if province == "" {
		return domain.ErrUnknownProvince
	}

	roles, err := h.service.ListRoles(c.Request().Context(), province)
	if err != nil {
		return err
	}
	if roles == nil {
		roles = []*domain.Role{}
	}
	return c.JSON(http.StatusOK, roles)
}

// MyPermissions handles GET /v1/me/permissions — the caller's effective
// permission set, the union across all assigned roles.
func (h *RoleHandler) MyPermissions(c echo.Context) error {
	username, err := ctxUsername(c)
	if err != nil {
		return err
	}

	perms, err := h.service.EffectivePermissions(c.Request().Context(), username)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, permissionsResponse{Permissions: perms})
}
