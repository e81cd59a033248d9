package websocket

import (
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/piresc/antar/internal/pkg/logger"
)

// ErrShuttingDown is returned by Upgrade once CloseAll has been called
var ErrShuttingDown = errors.New("websocket manager is shutting down")

const writeWait = 5 * time.Second

// Manager upgrades requests to WebSocket connections and tracks them so they can be
// closed on shutdown. http.Server.Shutdown does not wait for hijacked connections.
type Manager struct {
	sync.Mutex
	conns    map[*websocket.Conn]string
	closing  bool
	upgrader websocket.Upgrader
}

// NewManager creates a new WebSocket manager
func NewManager() *Manager {
	return &Manager{
		conns: make(map[*websocket.Conn]string),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

// Upgrade upgrades the request and registers the connection under key.
// The caller must call release when done; release closes the connection.
func (m *Manager) Upgrade(c echo.Context, key string) (*websocket.Conn, func(), error) {
	m.Lock()
	closing := m.closing
	m.Unlock()
	if closing {
		return nil, nil, echo.NewHTTPError(http.StatusServiceUnavailable, ErrShuttingDown.Error())
	}

	ws, err := m.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return nil, nil, err
	}

	m.Lock()
	if m.closing {
		m.Unlock()
		_ = ws.Close()
		return nil, nil, ErrShuttingDown
	}
	m.conns[ws] = key
	m.Unlock()

	release := func() {
		m.Lock()
		delete(m.conns, ws)
		m.Unlock()
		_ = ws.Close()
	}
	return ws, release, nil
}

// Count returns the number of open connections
func (m *Manager) Count() int {
	m.Lock()
	defer m.Unlock()
	return len(m.conns)
}

// CloseAll sends a going-away close frame to every open connection and closes it.
// Later upgrades are refused.
func (m *Manager) CloseAll() {
	m.Lock()
	m.closing = true
	conns := make(map[*websocket.Conn]string, len(m.conns))
	for ws, key := range m.conns {
		conns[ws] = key
	}
	m.Unlock()

	for ws, key := range conns {
		msg := websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down")
		if err := ws.WriteControl(websocket.CloseMessage, msg, time.Now().Add(writeWait)); err != nil {
			logger.Debug("Failed to send close frame", logger.String("key", key), logger.Err(err))
		}
		_ = ws.Close()
	}

	if len(conns) > 0 {
		logger.Info("Closed open WebSocket connections", logger.Int("count", len(conns)))
	}
}
