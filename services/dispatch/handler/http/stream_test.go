package http

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/gorilla/websocket"
	"github.com/piresc/antar/internal/pkg/models"
	"github.com/piresc/antar/services/dispatch"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dialStream(t *testing.T, srv *httptest.Server, orderID string) *websocket.Conn {
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/v1/orders/" + orderID + "/eta/stream"
	ws, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { ws.Close() })
	_ = ws.SetReadDeadline(time.Now().Add(2 * time.Second))
	return ws
}

func TestStreamEta_UntilDelivered(t *testing.T) {
	e, uc := setup(t)
	srv := httptest.NewServer(e)
	defer srv.Close()

	gomock.InOrder(
		uc.EXPECT().EstimateEta(gomock.Any(), "order-1").Return(&models.EtaResult{OrderID: "order-1", MinutesRemaining: 10}, nil),
		uc.EXPECT().EstimateEta(gomock.Any(), "order-1").Return(nil, dispatch.ErrDriverLocationStale),
		uc.EXPECT().EstimateEta(gomock.Any(), "order-1").Return(&models.EtaResult{OrderID: "order-1", MinutesRemaining: 9}, nil),
		uc.EXPECT().EstimateEta(gomock.Any(), "order-1").Return(nil, dispatch.ErrOrderNotInTransit),
	)

	ws := dialStream(t, srv, "order-1")

	var frames []EtaFrame
	for {
		var f EtaFrame
		if err := ws.ReadJSON(&f); err != nil {
			assert.True(t, websocket.IsCloseError(err, websocket.CloseNormalClosure), "unexpected error: %v", err)
			break
		}
		frames = append(frames, f)
	}

	require.Len(t, frames, 4)
	assert.Equal(t, 10, frames[0].Eta.MinutesRemaining)
	assert.Contains(t, frames[1].Error, "stale")
	assert.False(t, frames[1].Final)
	assert.Equal(t, 9, frames[2].Eta.MinutesRemaining)
	assert.True(t, frames[3].Final)
	assert.Contains(t, frames[3].Error, "not in transit")
}

func TestStreamEta_UnknownOrder(t *testing.T) {
	e, uc := setup(t)
	srv := httptest.NewServer(e)
	defer srv.Close()

	uc.EXPECT().EstimateEta(gomock.Any(), "ghost").Return(nil, dispatch.ErrOrderNotFound)

	ws := dialStream(t, srv, "ghost")

	var f EtaFrame
	require.NoError(t, ws.ReadJSON(&f))
	assert.True(t, f.Final)
	assert.Equal(t, "order not found", f.Error)
}
