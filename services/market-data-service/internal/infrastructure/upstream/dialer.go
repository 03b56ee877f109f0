package upstream

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gorilla/websocket"
	"github.com/muhammadchandra19/marketdepth/pkg/errors"
	"github.com/muhammadchandra19/marketdepth/pkg/logger"
	feedv1 "github.com/muhammadchandra19/marketdepth/services/market-data-service/internal/domain/feed/v1"
)

const (
	writeWait      = 10 * time.Second
	maxMessageSize = 1 << 20
)

// Config holds the upstream connection settings.
type Config struct {
	URL          string
	APIKey       string
	AccessToken  string
	PingInterval time.Duration
	ReadTimeout  time.Duration
}

// Dialer opens websocket sessions to the market data provider.
type Dialer struct {
	config Config
	dialer *websocket.Dialer
	logger logger.Interface
}

// NewDialer creates a websocket dialer.
func NewDialer(config Config, logger logger.Interface) *Dialer {
	if config.PingInterval <= 0 {
		config.PingInterval = 15 * time.Second
	}
	if config.ReadTimeout <= 0 {
		config.ReadTimeout = 60 * time.Second
	}
	return &Dialer{
		config: config,
		dialer: &websocket.Dialer{
			Proxy:            http.ProxyFromEnvironment,
			HandshakeTimeout: 10 * time.Second,
		},
		logger: logger,
	}
}

// Endpoint returns the URL with the credentials attached as query parameters.
func (d *Dialer) Endpoint() (string, error) {
	u, err := url.Parse(d.config.URL)
	if err != nil {
		return "", errors.NewErrorDetails("invalid feed url", errors.GeneralBadRequestError.String(), "url").WithCause(err)
	}
	q := u.Query()
	if d.config.APIKey != "" {
		q.Set("api_key", d.config.APIKey)
	}
	if d.config.AccessToken != "" {
		q.Set("access_token", d.config.AccessToken)
	}
	u.RawQuery = q.Encode()
	return u.String(), nil
}

func (d *Dialer) Dial(ctx context.Context) (feedv1.Conn, error) {
	endpoint, err := d.Endpoint()
	if err != nil {
		return nil, err
	}

	ws, resp, err := d.dialer.DialContext(ctx, endpoint, nil)
	if resp != nil && resp.Body != nil {
		resp.Body.Close()
	}
	if err != nil {
		return nil, errors.TracerFromError(err)
	}

	ws.SetReadLimit(maxMessageSize)
	c := &conn{
		ws:          ws,
		readTimeout: d.config.ReadTimeout,
		done:        make(chan struct{}),
		logger:      d.logger,
	}
	ws.SetPongHandler(func(string) error {
		return ws.SetReadDeadline(time.Now().Add(c.readTimeout))
	})
	go c.pingLoop(d.config.PingInterval)

	return c, nil
}

type conn struct {
	ws          *websocket.Conn
	readTimeout time.Duration
	logger      logger.Interface

	writeMu   sync.Mutex
	done      chan struct{}
	closeOnce sync.Once
}

type control struct {
	A string `json:"a"`
	V any    `json:"v"`
}

// tokens sends numeric instrument ids as JSON numbers.
func tokens(instrumentIDs []string) []any {
	out := make([]any, 0, len(instrumentIDs))
	for _, id := range instrumentIDs {
		if n, err := strconv.ParseUint(id, 10, 64); err == nil {
			out = append(out, n)
			continue
		}
		out = append(out, id)
	}
	return out
}

func (c *conn) write(ctx context.Context, msg control) error {
	payload, err := sonic.Marshal(msg)
	if err != nil {
		return errors.TracerFromError(err)
	}

	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	deadline := time.Now().Add(writeWait)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}
	if err := c.ws.SetWriteDeadline(deadline); err != nil {
		return errors.TracerFromError(err)
	}
	if err := c.ws.WriteMessage(websocket.TextMessage, payload); err != nil {
		return errors.TracerFromError(err)
	}
	return nil
}

func (c *conn) Subscribe(ctx context.Context, instrumentIDs []string, mode feedv1.Mode) error {
	if len(instrumentIDs) == 0 {
		return nil
	}
	ids := tokens(instrumentIDs)
	if err := c.write(ctx, control{A: "subscribe", V: ids}); err != nil {
		return err
	}
	return c.write(ctx, control{A: "mode", V: []any{string(mode), ids}})
}

func (c *conn) Unsubscribe(ctx context.Context, instrumentIDs []string) error {
	if len(instrumentIDs) == 0 {
		return nil
	}
	return c.write(ctx, control{A: "unsubscribe", V: tokens(instrumentIDs)})
}

// ReadFrame skips heartbeats, which are frames of at most one byte.
func (c *conn) ReadFrame(ctx context.Context) ([]byte, error) {
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := c.ws.SetReadDeadline(time.Now().Add(c.readTimeout)); err != nil {
			return nil, errors.TracerFromError(err)
		}
		_, data, err := c.ws.ReadMessage()
		if err != nil {
			return nil, errors.TracerFromError(err)
		}
		if len(data) <= 1 {
			continue
		}
		return data, nil
	}
}

func (c *conn) pingLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-c.done:
			return
		case <-ticker.C:
			if err := c.ws.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				c.logger.Debug("upstream ping failed", logger.NewField("error", err.Error()))
				return
			}
		}
	}
}

func (c *conn) Close() error {
	var err error
	c.closeOnce.Do(func() {
		close(c.done)
		_ = c.ws.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
			time.Now().Add(time.Second))
		err = c.ws.Close()
	})
	return err
}
