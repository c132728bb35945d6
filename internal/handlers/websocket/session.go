package websocket

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/looplab/fsm"
	"github.com/xpanvictor/linguabridge/internal/lang"
	"github.com/xpanvictor/linguabridge/pkg/Logger"
)

// Session states.
const (
	StateConnecting   = "connecting"
	StateAwaitingInit = "awaiting_init"
	StateJoined       = "joined"
	StateDisconnected = "disconnected"
)

// Session events.
const (
	EventAccept     = "accept"
	EventInit       = "init"
	EventDisconnect = "disconnect"
)

// Session is one live chat connection. Its lifecycle is a state machine:
// connecting -> awaiting_init -> joined -> disconnected; payloads are only
// deliverable while joined.
type Session struct {
	id      uuid.UUID
	userID  string
	tgtLang lang.Code

	conn    *websocket.Conn
	writeMu sync.Mutex
	machine *fsm.FSM
	logger  *Logger.Logger
}

func NewSession(conn *websocket.Conn, logger *Logger.Logger) *Session {
	return &Session{
		id:     uuid.New(),
		conn:   conn,
		logger: logger,
		machine: fsm.NewFSM(
			StateConnecting,
			fsm.Events{
				{Name: EventAccept, Src: []string{StateConnecting}, Dst: StateAwaitingInit},
				{Name: EventInit, Src: []string{StateAwaitingInit}, Dst: StateJoined},
				{Name: EventDisconnect, Src: []string{StateConnecting, StateAwaitingInit, StateJoined}, Dst: StateDisconnected},
			},
			fsm.Callbacks{},
		),
	}
}

// Accept acknowledges the transport handshake.
func (s *Session) Accept() error {
	return s.machine.Event(context.Background(), EventAccept)
}

// Init records the client identity and target language and marks the
// session joined.
func (s *Session) Init(userID string, tgtLang lang.Code) error {
	if err := s.machine.Event(context.Background(), EventInit); err != nil {
		return err
	}
	s.userID = userID
	s.tgtLang = tgtLang
	return nil
}

// MarkDisconnected moves the session to its terminal state. Safe to call
// from any state and more than once.
func (s *Session) MarkDisconnected() {
	if s.machine.Current() == StateDisconnected {
		return
	}
	if err := s.machine.Event(context.Background(), EventDisconnect); err != nil {
		s.logger.Debugf("session %s disconnect transition: %v", s.id, err)
	}
}

func (s *Session) State() string { return s.machine.Current() }

// ID implements chat.Recipient.
func (s *Session) ID() uuid.UUID { return s.id }

// UserID implements chat.Recipient.
func (s *Session) UserID() string { return s.userID }

// TargetLang implements chat.Recipient.
func (s *Session) TargetLang() lang.Code { return s.tgtLang }

// Deliver implements chat.Recipient. Writes are serialized; only joined
// sessions accept payloads.
func (s *Session) Deliver(payload any) error {
	if s.machine.Current() != StateJoined {
		return fmt.Errorf("session %s not joined", s.id)
	}
	if s.conn == nil {
		return fmt.Errorf("session %s has no transport", s.id)
	}
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	return s.conn.WriteJSON(payload)
}

// SendError reports a protocol error to the client regardless of state.
func (s *Session) SendError(msg string) {
	if s.conn == nil {
		return
	}
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	if err := s.conn.WriteJSON(ErrorFrame{Error: msg}); err != nil {
		s.logger.Debugf("session %s error frame: %v", s.id, err)
	}
}

// Close tears down the transport.
func (s *Session) Close() error {
	s.MarkDisconnected()
	if s.conn == nil {
		return nil
	}
	return s.conn.Close()
}
