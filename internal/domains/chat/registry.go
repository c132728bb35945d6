package chat

import (
	"sync"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"github.com/xpanvictor/linguabridge/internal/lang"
	"github.com/xpanvictor/linguabridge/pkg/Logger"
)

// Recipient is a live chat member able to receive payloads. Implemented by
// the websocket session.
type Recipient interface {
	ID() uuid.UUID
	UserID() string
	TargetLang() lang.Code
	Deliver(payload any) error
}

// Registry tracks room membership. Rooms exist exactly while they have
// members: the first Join creates a room, the last Leave removes it. The
// mutex is held only for membership bookkeeping, never across a send.
type Registry struct {
	mu     sync.RWMutex
	rooms  map[string]map[uuid.UUID]Recipient
	logger *Logger.Logger
}

func NewRegistry(logger *Logger.Logger) *Registry {
	return &Registry{
		rooms:  make(map[string]map[uuid.UUID]Recipient),
		logger: logger,
	}
}

// Join registers r in the room, creating the room if absent. Joining twice
// with the same connection ID replaces the previous entry, so a room never
// holds the same connection twice.
func (reg *Registry) Join(roomID string, r Recipient) {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	room, ok := reg.rooms[roomID]
	if !ok {
		room = make(map[uuid.UUID]Recipient)
		reg.rooms[roomID] = room
	}
	room[r.ID()] = r
	reg.logger.Infof("connection %s (%s) joined room %s", r.ID(), r.UserID(), roomID)
}

// Leave removes the connection from the room. Idempotent: leaving an
// unknown room or an already-removed connection is a no-op, so error-path
// cleanup can call it unconditionally.
func (reg *Registry) Leave(roomID string, connID uuid.UUID) {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	room, ok := reg.rooms[roomID]
	if !ok {
		return
	}
	if _, ok := room[connID]; !ok {
		return
	}
	delete(room, connID)
	reg.logger.Infof("connection %s left room %s", connID, roomID)
	if len(room) == 0 {
		delete(reg.rooms, roomID)
	}
}

// MembersOf returns a snapshot of current membership. Callers iterate the
// snapshot freely; members leaving mid-iteration only make sends fail, not
// corrupt iteration.
func (reg *Registry) MembersOf(roomID string) []Recipient {
	reg.mu.RLock()
	defer reg.mu.RUnlock()
	return lo.Values(reg.rooms[roomID])
}

// Broadcast delivers payload to every member of the room, optionally
// excluding one connection. Per-member failures are logged and do not abort
// delivery to the rest.
func (reg *Registry) Broadcast(roomID string, payload any, exclude *uuid.UUID) {
	for _, member := range reg.MembersOf(roomID) {
		if exclude != nil && member.ID() == *exclude {
			continue
		}
		if err := member.Deliver(payload); err != nil {
			reg.logger.Errorf("broadcast to %s in room %s failed: %v", member.ID(), roomID, err)
		}
	}
}

// RoomCount returns the number of live rooms.
func (reg *Registry) RoomCount() int {
	reg.mu.RLock()
	defer reg.mu.RUnlock()
	return len(reg.rooms)
}

// HasRoom reports whether the room currently exists.
func (reg *Registry) HasRoom(roomID string) bool {
	reg.mu.RLock()
	defer reg.mu.RUnlock()
	_, ok := reg.rooms[roomID]
	return ok
}
