package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	deliverycontext "lapak/internal/delivery/context"
	"lapak/internal/delivery/http/middleware"
	"lapak/internal/delivery/http/response"
	"lapak/internal/usecase"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

const (
	wsWriteTimeout = 10 * time.Second
	wsPingInterval = 30 * time.Second
)

// ChatHandler holds dependencies for chat-related handlers.
type ChatHandler struct {
	uc       usecase.ChatUsecase
	logger   *slog.Logger
	upgrader websocket.Upgrader
}

// NewChatHandler is the constructor for ChatHandler, injected by Fx.
func NewChatHandler(uc usecase.ChatUsecase, logger *slog.Logger) *ChatHandler {
	return &ChatHandler{
		uc:     uc,
		logger: logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// Tokens already gate the endpoint; the API serves mobile clients
			// without a fixed origin.
			CheckOrigin: func(*http.Request) bool { return true },
		},
	}
}

type startSessionRequest struct {
	ReceiverID string `json:"receiverId"`
}

type sendMessageRequest struct {
	Text string `json:"text"`
}

// StartSession resolves the room for the caller and the receiver.
func (h *ChatHandler) StartSession(c echo.Context) error {
	var req startSessionRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid session input")
	}

	output, err := h.uc.StartSession(c.Request().Context(), middleware.UserID(c), req.ReceiverID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, output, "Chat session ready")
}

// ListIndex retrieves the caller's room listing.
func (h *ChatHandler) ListIndex(c echo.Context) error {
	entries, err := h.uc.ListIndex(c.Request().Context(), middleware.UserID(c))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, entries, "Chat index retrieved successfully")
}

// ListMessages retrieves the room's log.
func (h *ChatHandler) ListMessages(c echo.Context) error {
	messages, err := h.uc.ListMessages(c.Request().Context(), middleware.UserID(c), c.Param("roomId"))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, messages, "Messages retrieved successfully")
}

// SendMessage appends one message to the room.
func (h *ChatHandler) SendMessage(c echo.Context) error {
	var req sendMessageRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid message input")
	}

	message, err := h.uc.SendMessage(c.Request().Context(), middleware.UserID(c), usecase.SendMessageInput{
		RoomID: c.Param("roomId"),
		Text:   req.Text,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, message, "Message sent successfully")
}

// Stream upgrades to a websocket and pushes a full log snapshot on every
// change until the client disconnects.
func (h *ChatHandler) Stream(c echo.Context) error {
	ctx, cancel := context.WithCancel(c.Request().Context())
	defer cancel()

	stream, err := h.uc.StreamMessages(ctx, middleware.UserID(c), c.Param("roomId"))
	if err != nil {
		return errors.WithStack(err)
	}

	conn, err := h.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return errors.Wrap(err, "failed to upgrade websocket")
	}
	defer conn.Close()

	logger := deliverycontext.GetLoggerOrDefault(ctx, h.logger)

	// Reader goroutine: the client sends nothing, but reads surface close
	// frames and dead connections.
	go func() {
		defer cancel()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(wsPingInterval)
	defer ticker.Stop()

	for {
		select {
		case snapshot, ok := <-stream:
			if !ok {
				return nil
			}
			_ = conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout))
			if err := conn.WriteJSON(snapshot); err != nil {
				logger.DebugContext(ctx, "websocket write failed",
					slog.String("room_id", c.Param("roomId")),
					slog.Any("error", err),
				)

				return nil
			}
		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return nil
			}
		case <-ctx.Done():
			return nil
		}
	}
}
