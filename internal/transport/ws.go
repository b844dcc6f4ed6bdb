package transport

import (
	"context"
	"crypto/tls"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/coder/websocket"
)

const (
	defaultPingInterval = 30 * time.Second
	defaultSendTimeout  = 15 * time.Second
)

// WSSender carries prepared messages over one websocket connection in both
// directions, reconnecting on failure. One reconnect attempt per call; the
// protocol layer owns retry policy beyond that.
type WSSender struct {
	mu      sync.Mutex
	ws      *websocket.Conn
	url     string
	tlsConf *tls.Config
	headers http.Header

	pingInterval time.Duration
	sendTimeout  time.Duration
	cancelPings  context.CancelFunc
}

// WSOption configures a WSSender.
type WSOption func(*WSSender)

// WithPingInterval sets the keep-alive ping interval.
func WithPingInterval(d time.Duration) WSOption {
	return func(s *WSSender) { s.pingInterval = d }
}

// WithSendTimeout bounds each write.
func WithSendTimeout(d time.Duration) WSOption {
	return func(s *WSSender) { s.sendTimeout = d }
}

// WithWSHeaders sets HTTP headers for the upgrade request.
func WithWSHeaders(h http.Header) WSOption {
	return func(s *WSSender) { s.headers = h }
}

var (
	_ Sender   = (*WSSender)(nil)
	_ Receiver = (*WSSender)(nil)
)

// DialWS connects a sender to the given websocket URL.
func DialWS(ctx context.Context, url string, tlsConf *tls.Config, opts ...WSOption) (*WSSender, error) {
	s := &WSSender{
		url:          url,
		tlsConf:      tlsConf,
		pingInterval: defaultPingInterval,
		sendTimeout:  defaultSendTimeout,
	}
	for _, o := range opts {
		o(s)
	}

	ws, err := s.dial(ctx)
	if err != nil {
		return nil, err
	}
	s.ws = ws

	pingCtx, cancel := context.WithCancel(context.Background())
	s.cancelPings = cancel
	go s.pingLoop(pingCtx)

	return s, nil
}

func (s *WSSender) dial(ctx context.Context) (*websocket.Conn, error) {
	opts := &websocket.DialOptions{HTTPHeader: s.headers}
	if s.tlsConf != nil {
		opts.HTTPClient = &http.Client{
			Transport: &http.Transport{TLSClientConfig: s.tlsConf},
		}
	}
	ws, _, err := websocket.Dial(ctx, s.url, opts)
	if err != nil {
		return nil, fmt.Errorf("transport: dial %s: %w", s.url, err)
	}
	return ws, nil
}

// Send frames and writes one prepared message, reconnecting once if the
// current connection has gone stale.
func (s *WSSender) Send(ctx context.Context, p Prepared) error {
	data, err := EncodeFrame(p)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, s.sendTimeout)
	defer cancel()

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ws.Write(ctx, websocket.MessageBinary, data); err == nil {
		return nil
	}

	ws, err := s.dial(ctx)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSendFailed, err)
	}
	s.ws.Close(websocket.StatusAbnormalClosure, "stale")
	s.ws = ws
	if err := s.ws.Write(ctx, websocket.MessageBinary, data); err != nil {
		return fmt.Errorf("%w: %v", ErrSendFailed, err)
	}
	return nil
}

// Receive blocks for the next inbound frame. A read failure triggers one
// redial before giving up, so a dropped connection resumes quietly when the
// caller is looping.
func (s *WSSender) Receive(ctx context.Context) (Prepared, error) {
	s.mu.Lock()
	ws := s.ws
	s.mu.Unlock()

	_, data, err := ws.Read(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return Prepared{}, ctx.Err()
		}
		fresh, derr := s.dial(ctx)
		if derr != nil {
			return Prepared{}, fmt.Errorf("transport: receive: %w", err)
		}
		s.mu.Lock()
		s.ws.Close(websocket.StatusAbnormalClosure, "stale")
		s.ws = fresh
		s.mu.Unlock()
		if _, data, err = fresh.Read(ctx); err != nil {
			return Prepared{}, fmt.Errorf("transport: receive: %w", err)
		}
	}
	return DecodeFrame(data)
}

func (s *WSSender) pingLoop(ctx context.Context) {
	ticker := time.NewTicker(s.pingInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.mu.Lock()
			ws := s.ws
			s.mu.Unlock()
			pingCtx, cancel := context.WithTimeout(ctx, s.sendTimeout)
			// A failed ping is not fatal here; the next Send reconnects.
			_ = ws.Ping(pingCtx)
			cancel()
		}
	}
}

// Close stops keep-alives and closes the connection.
func (s *WSSender) Close() error {
	if s.cancelPings != nil {
		s.cancelPings()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ws.Close(websocket.StatusNormalClosure, "")
}
