package packet

import (
	"fmt"

	"go.uber.org/zap"
)

// SessionState represents the connection's role in the current session.
type SessionState int

const (
	StateObserver   SessionState = iota // receives snapshots only
	StateController                     // drives the human unit
	StateDisconnecting
)

func (s SessionState) String() string {
	switch s {
	case StateObserver:
		return "Observer"
	case StateController:
		return "Controller"
	case StateDisconnecting:
		return "Disconnecting"
	default:
		return fmt.Sprintf("Unknown(%d)", int(s))
	}
}

// HandlerFunc is the callback signature for message handlers.
// The session pointer is passed as an opaque interface to avoid import cycles.
type HandlerFunc func(sess any, r *Reader)

type handlerEntry struct {
	fn            HandlerFunc
	allowedStates map[SessionState]bool
}

// Registry maps message types to handlers with state-based access control.
type Registry struct {
	handlers map[string]*handlerEntry
	log      *zap.Logger
}

func NewRegistry(log *zap.Logger) *Registry {
	return &Registry{
		handlers: make(map[string]*handlerEntry),
		log:      log,
	}
}

// Register maps a message type to a handler, restricted to the given states.
func (reg *Registry) Register(typ string, states []SessionState, fn HandlerFunc) {
	allowed := make(map[SessionState]bool, len(states))
	for _, s := range states {
		allowed[s] = true
	}
	reg.handlers[typ] = &handlerEntry{
		fn:            fn,
		allowedStates: allowed,
	}
}

// Dispatch routes data by its "type" field, validates the session state and
// calls the handler. Unknown types are ignored.
func (reg *Registry) Dispatch(sess any, state SessionState, data []byte) error {
	if len(data) == 0 {
		return fmt.Errorf("empty message")
	}
	r := NewReader(data)
	if err := r.Err(); err != nil {
		return err
	}
	typ := r.Type()

	entry, ok := reg.handlers[typ]
	if !ok {
		reg.log.Debug("unknown message type", zap.String("type", typ), zap.String("state", state.String()))
		return nil
	}
	if !entry.allowedStates[state] {
		reg.log.Debug("message not allowed in state",
			zap.String("type", typ),
			zap.String("state", state.String()),
		)
		return fmt.Errorf("message %q not allowed in state %s", typ, state)
	}
	return reg.safeCall(entry.fn, sess, r, typ)
}

// safeCall executes a handler with panic recovery so a malformed message
// cannot take down the game loop.
func (reg *Registry) safeCall(fn HandlerFunc, sess any, r *Reader, typ string) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			reg.log.Error("handler panic recovered",
				zap.String("type", typ),
				zap.Any("panic", rec),
			)
			err = fmt.Errorf("handler panic for %q: %v", typ, rec)
		}
	}()
	fn(sess, r)
	return nil
}
