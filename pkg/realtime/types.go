package realtime

import (
	"encoding/json"
	"errors"
)

// Phoenix channel events used by the realtime server.
const (
	EventJoin            = "phx_join"
	EventLeave           = "phx_leave"
	EventReply           = "phx_reply"
	EventError           = "phx_error"
	EventClose           = "phx_close"
	EventHeartbeat       = "heartbeat"
	EventSystem          = "system"
	EventPostgresChanges = "postgres_changes"

	TopicPhoenix    = "phoenix"
	TopicPrefix     = "realtime:"
	ProtocolVersion = "1.0.0"

	StatusOK    = "ok"
	StatusError = "error"
)

var (
	ErrJoinRejected  = errors.New("realtime: channel join rejected")
	ErrChannelClosed = errors.New("realtime: channel closed by server")
	ErrInvalidURL    = errors.New("realtime: unsupported endpoint scheme")
)

// Message is the Phoenix wire envelope.
type Message struct {
	Topic   string          `json:"topic"`
	Event   string          `json:"event"`
	Payload json.RawMessage `json:"payload"`
	Ref     string          `json:"ref,omitempty"`
	JoinRef string          `json:"join_ref,omitempty"`
}

// ChangeFilter selects postgres_changes events. Event is INSERT, UPDATE, DELETE or "*".
type ChangeFilter struct {
	Event  string `json:"event"`
	Schema string `json:"schema"`
	Table  string `json:"table"`
	Filter string `json:"filter,omitempty"`
}

func (f ChangeFilter) matches(d ChangeData) bool {
	if f.Schema != "" && f.Schema != d.Schema {
		return false
	}
	if f.Table != "" && f.Table != d.Table {
		return false
	}
	return f.Event == "" || f.Event == "*" || f.Event == d.Type
}

// ChangeData is one row-level change delivered on a postgres_changes subscription.
// Record is set for INSERT/UPDATE, OldRecord for UPDATE/DELETE.
type ChangeData struct {
	Type            string          `json:"type"`
	Schema          string          `json:"schema"`
	Table           string          `json:"table"`
	CommitTimestamp string          `json:"commit_timestamp"`
	Record          json.RawMessage `json:"record"`
	OldRecord       json.RawMessage `json:"old_record"`
	Errors          json.RawMessage `json:"errors"`
}

// Handler receives change events in delivery order on the subscription's read goroutine.
type Handler func(ChangeData)

type joinPayload struct {
	Config      joinConfig `json:"config"`
	AccessToken string     `json:"access_token,omitempty"`
}

type joinConfig struct {
	Broadcast       broadcastConfig `json:"broadcast"`
	Presence        presenceConfig  `json:"presence"`
	PostgresChanges []ChangeFilter  `json:"postgres_changes"`
	Private         bool            `json:"private"`
}

type broadcastConfig struct {
	Ack  bool `json:"ack"`
	Self bool `json:"self"`
}

type presenceConfig struct {
	Key string `json:"key"`
}

type replyPayload struct {
	Status   string          `json:"status"`
	Response json.RawMessage `json:"response"`
}

type changesPayload struct {
	Data ChangeData `json:"data"`
	IDs  []int64    `json:"ids"`
}

type systemPayload struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

var emptyPayload = json.RawMessage(`{}`)
