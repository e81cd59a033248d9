package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/piresc/antar/internal/pkg/logger"
	"github.com/piresc/antar/internal/pkg/middleware"
	"github.com/piresc/antar/internal/pkg/models"
	"github.com/piresc/antar/services/dispatch"
)

const writeWait = 5 * time.Second

// EtaFrame is one message of the ETA stream
type EtaFrame struct {
	Eta   *models.EtaResult `json:"eta,omitempty"`
	Error string            `json:"error,omitempty"`
	Final bool              `json:"final,omitempty"`
}

// StreamEta pushes a fresh ETA over a WebSocket at a fixed interval until the
// order leaves transit, the client goes away or the request is cancelled.
func (h *DispatchHandler) StreamEta(c echo.Context) error {
	orderID := c.Param("orderID")
	middleware.SetOrderID(c, orderID)

	ws, release, err := h.streams.Upgrade(c, orderID)
	if err != nil {
		var httpErr *echo.HTTPError
		if errors.As(err, &httpErr) {
			return httpErr
		}
		// the upgrader has already answered the client
		logger.WarnCtx(c.Request().Context(), "WebSocket upgrade failed",
			logger.String("order_id", orderID),
			logger.Err(err))
		return nil
	}
	defer release()

	ctx := c.Request().Context()

	// the reader only exists to notice the client closing the socket
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := ws.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(h.streamInterval)
	defer ticker.Stop()

	for {
		frame, done := h.etaFrame(c, orderID)
		_ = ws.SetWriteDeadline(time.Now().Add(writeWait))
		if err := ws.WriteJSON(frame); err != nil {
			logger.DebugCtx(ctx, "ETA stream write failed", logger.String("order_id", orderID), logger.Err(err))
			return nil
		}
		if done {
			_ = ws.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, "stream ended"),
				time.Now().Add(writeWait))
			return nil
		}

		select {
		case <-ctx.Done():
			return nil
		case <-closed:
			return nil
		case <-ticker.C:
		}
	}
}

// etaFrame computes one frame and reports whether the stream should end
func (h *DispatchHandler) etaFrame(c echo.Context, orderID string) (EtaFrame, bool) {
	eta, err := h.dispatchUC.EstimateEta(c.Request().Context(), orderID)
	if err == nil {
		return EtaFrame{Eta: eta}, false
	}

	// a stale fix is transient, the driver may report again before the next tick
	if errors.Is(err, dispatch.ErrDriverLocationStale) {
		return EtaFrame{Error: err.Error()}, false
	}

	if statusFor(err) >= http.StatusInternalServerError {
		logger.ErrorCtx(c.Request().Context(), "ETA stream failed", logger.String("order_id", orderID), logger.Err(err))
		return EtaFrame{Error: http.StatusText(http.StatusInternalServerError), Final: true}, true
	}
	return EtaFrame{Error: err.Error(), Final: true}, true
}
