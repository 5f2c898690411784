package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/frenchreborn/province-chat/internal/core/ports"
)

// ModerationHandler handles mute and unmute. Permission gating happens in the
// router via the Permission middleware.
type ModerationHandler struct {
	service ports.ModerationService
}

func NewModerationHandler(service ports.ModerationService) *ModerationHandler {
	return &ModerationHandler{service: service}
}

// Mute handles POST /v1/moderation/mute.
func (h *ModerationHandler) Mute(c echo.Context) error {
	actor, req, err := h.bind(c)
	if err != nil {
		return err
	}

	result, err := h.service.Mute(c.Request().Context(), actor, req.Username)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, muteResponse{Success: true, AlreadyMuted: result.AlreadyMuted})
}

// Unmute handles POST /v1/moderation/unmute.
func (h *ModerationHandler) Unmute(c echo.Context) error {
	actor, req, err := h.bind(c)
	if err != nil {
		return err
	}

	result, err := h.service.Unmute(c.Request().Context(), actor, req.Username)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, muteResponse{Success: true, WasMuted: result.WasMuted})
}

func (h *ModerationHandler) bind(c echo.Context) (string, *muteRequest, error) {
	actor, err := ctxUsername(c)
	if err != nil {
		return "", nil, err
	}

	var req muteRequest
	if err := c.Bind(&req); err != nil {
		return "", nil, echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return "", nil, echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}
	return actor, &req, nil
}
