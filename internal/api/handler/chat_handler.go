package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/frenchreborn/province-chat/internal/core/ports"
)

// ChatHandler handles HTTP requests for messages.
type ChatHandler struct {
	service ports.ChatService
}

func NewChatHandler(service ports.ChatService) *ChatHandler {
	return &ChatHandler{service: service}
}

// Post handles POST /v1/messages. Content validation (trimming, emptiness)
// lives in the service; the central error handler maps its errors to 400/403/409.
func (h *ChatHandler) Post(c echo.Context) error {
	username, err := ctxUsername(c)
	if err != nil {
		return err
	}

	var req postMessageRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	result, err := h.service.PostMessage(c.Request().Context(), ports.PostMessageInput{
		Username: username,
		Content:  req.Content,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, postMessageResponse{
		ID:        result.ID,
		Province:  result.Province,
		CreatedAt: result.CreatedAt,
	})
}

// List handles GET /v1/messages — the caller's visible feed, oldest first.
func (h *ChatHandler) List(c echo.Context) error {
	username, err := ctxUsername(c)
	if err != nil {
		return err
	}

	views, err := h.service.ListMessages(c.Request().Context(), username)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, views)
}
