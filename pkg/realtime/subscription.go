package realtime

import (
	"encoding/json"
	"fmt"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
)

// Subscription is one joined channel on its own websocket connection.
// It is released exactly once by Unsubscribe; Done is closed when the read
// loop stops for any reason.
type Subscription struct {
	conn    *websocket.Conn
	topic   string
	joinRef string
	filter  ChangeFilter
	handler Handler

	writeMu sync.Mutex
	refs    atomic.Uint64

	closing      atomic.Bool
	stop         chan struct{}
	done         chan struct{}
	wg           sync.WaitGroup
	shutdownOnce sync.Once
	leaveOnce    sync.Once

	errMu sync.Mutex
	err   error
}

func newSubscription(conn *websocket.Conn, topic, joinRef string, filter ChangeFilter, handler Handler) *Subscription {
	return &Subscription{
		conn:    conn,
		topic:   topic,
		joinRef: joinRef,
		filter:  filter,
		handler: handler,
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
	}
}

// Topic returns the joined topic, e.g. "realtime:tasks-channel".
func (s *Subscription) Topic() string {
	return s.topic
}

// Done is closed once the subscription stops delivering events.
func (s *Subscription) Done() <-chan struct{} {
	return s.done
}

// Err reports why the subscription stopped. It is nil after a clean Unsubscribe.
func (s *Subscription) Err() error {
	s.errMu.Lock()
	defer s.errMu.Unlock()
	return s.err
}

// Unsubscribe leaves the channel, closes the connection and waits for the
// read loop to exit. The handler is never invoked after Unsubscribe returns.
// Calling it from inside the handler deadlocks.
func (s *Subscription) Unsubscribe() error {
	var err error
	s.leaveOnce.Do(func() {
		s.closing.Store(true)

		select {
		case <-s.done:
		default:
			if sendErr := s.send(Message{
				Topic:   s.topic,
				Event:   EventLeave,
				Payload: emptyPayload,
				Ref:     s.nextRef(),
				JoinRef: s.joinRef,
			}); sendErr != nil {
				err = fmt.Errorf("realtime: send leave: %w", sendErr)
			}
			_ = s.conn.WriteControl(
				websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
				time.Now().Add(time.Second),
			)
		}

		s.shutdown()
		s.wg.Wait()
	})
	return err
}

func (s *Subscription) start(heartbeat time.Duration) {
	s.wg.Add(2)
	go s.readLoop()
	go s.heartbeatLoop(heartbeat)
}

func (s *Subscription) readLoop() {
	defer s.wg.Done()
	defer close(s.done)
	defer s.shutdown()

	for {
		msg, err := s.read()
		if err != nil {
			if !s.closing.Load() {
				s.setErr(fmt.Errorf("realtime: read: %w", err))
			}
			return
		}
		if msg.Topic != s.topic {
			continue
		}

		switch msg.Event {
		case EventPostgresChanges:
			s.dispatch(msg.Payload)
		case EventSystem:
			var sys systemPayload
			if json.Unmarshal(msg.Payload, &sys) == nil && sys.Status == StatusError {
				s.setErr(fmt.Errorf("%w: %s", ErrChannelClosed, sys.Message))
				return
			}
		case EventError, EventClose:
			if !s.closing.Load() {
				s.setErr(fmt.Errorf("%w: %s", ErrChannelClosed, msg.Event))
			}
			return
		}
	}
}

func (s *Subscription) dispatch(payload json.RawMessage) {
	var p changesPayload
	if err := json.Unmarshal(payload, &p); err != nil {
		return
	}
	if !s.filter.matches(p.Data) || s.closing.Load() {
		return
	}
	s.handler(p.Data)
}

func (s *Subscription) heartbeatLoop(interval time.Duration) {
	defer s.wg.Done()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stop:
			return
		case <-ticker.C:
			if err := s.send(Message{
				Topic:   TopicPhoenix,
				Event:   EventHeartbeat,
				Payload: emptyPayload,
				Ref:     s.nextRef(),
			}); err != nil {
				if !s.closing.Load() {
					s.setErr(fmt.Errorf("realtime: heartbeat: %w", err))
				}
				s.shutdown()
				return
			}
		}
	}
}

// read returns the next envelope. Frames that are not valid JSON come back as
// an empty Message so callers skip them.
func (s *Subscription) read() (Message, error) {
	_, data, err := s.conn.ReadMessage()
	if err != nil {
		return Message{}, err
	}
	var msg Message
	if err := json.Unmarshal(data, &msg); err != nil {
		return Message{}, nil
	}
	return msg, nil
}

func (s *Subscription) send(msg Message) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	if err := s.conn.SetWriteDeadline(time.Now().Add(writeTimeout)); err != nil {
		return err
	}
	return s.conn.WriteJSON(msg)
}

func (s *Subscription) nextRef() string {
	return strconv.FormatUint(s.refs.Add(1), 10)
}

func (s *Subscription) shutdown() {
	s.shutdownOnce.Do(func() {
		close(s.stop)
		_ = s.conn.Close()
	})
}

func (s *Subscription) setErr(err error) {
	s.errMu.Lock()
	defer s.errMu.Unlock()
	if s.err == nil {
		s.err = err
	}
}
