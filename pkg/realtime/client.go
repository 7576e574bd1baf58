package realtime

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"golang.org/x/oauth2"
)

const (
	defaultHeartbeatInterval = 25 * time.Second
	defaultJoinTimeout       = 10 * time.Second
	writeTimeout             = 10 * time.Second
)

// Client opens channel subscriptions against a realtime websocket endpoint.
type Client struct {
	endpoint          string
	apiKey            string
	tokenSource       oauth2.TokenSource
	dialer            *websocket.Dialer
	heartbeatInterval time.Duration
	joinTimeout       time.Duration
}

type Option func(*Client)

// WithTokenSource supplies the access token sent on join. Defaults to the api key.
func WithTokenSource(ts oauth2.TokenSource) Option {
	return func(c *Client) { c.tokenSource = ts }
}

func WithHeartbeatInterval(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.heartbeatInterval = d
		}
	}
}

func WithJoinTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.joinTimeout = d
		}
	}
}

func WithDialer(d *websocket.Dialer) Option {
	return func(c *Client) { c.dialer = d }
}

// NewClient creates a realtime client for endpoint (ws:// or wss://, see EndpointFromURL).
func NewClient(endpoint, apiKey string, opts ...Option) *Client {
	c := &Client{
		endpoint:          endpoint,
		apiKey:            apiKey,
		dialer:            websocket.DefaultDialer,
		heartbeatInterval: defaultHeartbeatInterval,
		joinTimeout:       defaultJoinTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// EndpointFromURL derives the websocket endpoint from a project base URL,
// e.g. https://abc.supabase.co -> wss://abc.supabase.co/realtime/v1/websocket.
func EndpointFromURL(projectURL string) (string, error) {
	u, err := url.Parse(projectURL)
	if err != nil {
		return "", fmt.Errorf("realtime: parse project url: %w", err)
	}

	switch u.Scheme {
	case "https":
		u.Scheme = "wss"
	case "http":
		u.Scheme = "ws"
	case "ws", "wss":
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidURL, u.Scheme)
	}

	u.Path = strings.TrimRight(u.Path, "/") + "/realtime/v1/websocket"
	u.RawQuery = ""
	return u.String(), nil
}

// Subscribe connects, joins channel with a postgres_changes filter and starts
// delivering matching events to handler. ctx bounds the connect and join
// handshake only; the subscription lives until Unsubscribe or a server drop.
func (c *Client) Subscribe(ctx context.Context, channel string, filter ChangeFilter, handler Handler) (*Subscription, error) {
	token := c.apiKey
	if c.tokenSource != nil {
		tok, err := c.tokenSource.Token()
		if err != nil {
			return nil, fmt.Errorf("realtime: resolve access token: %w", err)
		}
		token = tok.AccessToken
	}

	u, err := url.Parse(c.endpoint)
	if err != nil {
		return nil, fmt.Errorf("realtime: parse endpoint: %w", err)
	}
	q := u.Query()
	q.Set("apikey", c.apiKey)
	q.Set("vsn", ProtocolVersion)
	u.RawQuery = q.Encode()

	conn, _, err := c.dialer.DialContext(ctx, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("realtime: dial: %w", err)
	}

	sub := newSubscription(conn, TopicPrefix+channel, uuid.NewString(), filter, handler)

	if err := sub.join(ctx, token, c.joinTimeout); err != nil {
		_ = conn.Close()
		return nil, err
	}

	sub.start(c.heartbeatInterval)
	return sub, nil
}

func (s *Subscription) join(ctx context.Context, token string, timeout time.Duration) error {
	payload, err := json.Marshal(joinPayload{
		Config: joinConfig{
			PostgresChanges: []ChangeFilter{s.filter},
		},
		AccessToken: token,
	})
	if err != nil {
		return fmt.Errorf("realtime: marshal join payload: %w", err)
	}

	if err := s.send(Message{
		Topic:   s.topic,
		Event:   EventJoin,
		Payload: payload,
		Ref:     s.joinRef,
		JoinRef: s.joinRef,
	}); err != nil {
		return fmt.Errorf("realtime: send join: %w", err)
	}

	deadline := time.Now().Add(timeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}
	if err := s.conn.SetReadDeadline(deadline); err != nil {
		return fmt.Errorf("realtime: set join deadline: %w", err)
	}
	defer s.conn.SetReadDeadline(time.Time{})

	for {
		msg, err := s.read()
		if err != nil {
			return fmt.Errorf("realtime: await join reply: %w", err)
		}
		if msg.Topic != s.topic || msg.Event != EventReply || msg.Ref != s.joinRef {
			continue
		}

		var reply replyPayload
		if err := json.Unmarshal(msg.Payload, &reply); err != nil {
			return fmt.Errorf("realtime: decode join reply: %w", err)
		}
		if reply.Status != StatusOK {
			return fmt.Errorf("%w: %s", ErrJoinRejected, string(reply.Response))
		}
		return nil
	}
}
