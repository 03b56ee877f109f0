package upstream

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/muhammadchandra19/marketdepth/pkg/logger"
	feedv1 "github.com/muhammadchandra19/marketdepth/services/market-data-service/internal/domain/feed/v1"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeProvider struct {
	server   *httptest.Server
	query    chan string
	controls chan string
	frames   [][]byte
}

func newFakeProvider(t *testing.T, frames ...[]byte) *fakeProvider {
	t.Helper()

	p := &fakeProvider{
		query:    make(chan string, 1),
		controls: make(chan string, 16),
		frames:   frames,
	}
	upgrader := websocket.Upgrader{}
	p.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p.query <- r.URL.RawQuery
		ws, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer ws.Close()

		for _, frame := range p.frames {
			if err := ws.WriteMessage(websocket.TextMessage, frame); err != nil {
				return
			}
		}
		for {
			_, msg, err := ws.ReadMessage()
			if err != nil {
				return
			}
			p.controls <- string(msg)
		}
	}))
	t.Cleanup(p.server.Close)
	return p
}

func (p *fakeProvider) url() string {
	return "ws" + strings.TrimPrefix(p.server.URL, "http")
}

func TestDialer_ReadFrameSkipsHeartbeats(t *testing.T) {
	provider := newFakeProvider(t,
		[]byte{0x00},
		[]byte(`{"instrument_token":256265,"last_price":100}`),
	)

	dialer := NewDialer(Config{URL: provider.url(), APIKey: "key", AccessToken: "token"}, logger.NewNop())
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	conn, err := dialer.Dial(ctx)
	require.NoError(t, err)
	defer conn.Close()

	assert.Equal(t, "access_token=token&api_key=key", <-provider.query)

	frame, err := conn.ReadFrame(ctx)
	require.NoError(t, err)
	assert.JSONEq(t, `{"instrument_token":256265,"last_price":100}`, string(frame))
}

func TestDialer_ControlMessages(t *testing.T) {
	provider := newFakeProvider(t)

	dialer := NewDialer(Config{URL: provider.url()}, logger.NewNop())
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	conn, err := dialer.Dial(ctx)
	require.NoError(t, err)
	defer conn.Close()

	require.NoError(t, conn.Subscribe(ctx, []string{"256265", "NSE:INFY"}, feedv1.ModeFull))
	require.NoError(t, conn.Unsubscribe(ctx, []string{"256265"}))
	require.NoError(t, conn.Subscribe(ctx, nil, feedv1.ModeQuote))

	expected := []string{
		`{"a":"subscribe","v":[256265,"NSE:INFY"]}`,
		`{"a":"mode","v":["full",[256265,"NSE:INFY"]]}`,
		`{"a":"unsubscribe","v":[256265]}`,
	}
	for _, want := range expected {
		select {
		case got := <-provider.controls:
			assert.JSONEq(t, want, got)
		case <-ctx.Done():
			t.Fatal("control message not received")
		}
	}
}

func TestDialer_CloseUnblocksRead(t *testing.T) {
	provider := newFakeProvider(t)

	dialer := NewDialer(Config{URL: provider.url()}, logger.NewNop())
	conn, err := dialer.Dial(context.Background())
	require.NoError(t, err)

	errCh := make(chan error, 1)
	go func() {
		_, err := conn.ReadFrame(context.Background())
		errCh <- err
	}()

	require.NoError(t, conn.Close())
	select {
	case err := <-errCh:
		assert.Error(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("read did not return after close")
	}
	assert.NoError(t, conn.Close())
}

func TestDialer_Unreachable(t *testing.T) {
	dialer := NewDialer(Config{URL: "ws://127.0.0.1:1"}, logger.NewNop())
	_, err := dialer.Dial(context.Background())
	assert.Error(t, err)
}
