package net

import (
	"github.com/turfwar/server/internal/component"
	"github.com/turfwar/server/internal/net/packet"
	"github.com/turfwar/server/internal/world"
	"go.uber.org/zap"
)

// Gateway is the game-loop side of the transport. It owns the connected
// sessions, turns controller messages into input for the next tick and
// broadcasts snapshots to everyone. The first connected client controls
// the human unit; the rest observe. All methods run on the game loop.
type Gateway struct {
	server   *Server
	registry *packet.Registry

	sessions   map[uint64]*Session
	order      []uint64 // connection order, used to promote a new controller
	controller uint64

	maxObservers int
	maxPerTick   int
	defaultMode  world.Mode

	frame   component.InputFrame
	actions []component.Action
	start   *world.Mode

	log *zap.Logger
}

func NewGateway(server *Server, maxObservers, maxPerTick int, defaultMode world.Mode, log *zap.Logger) *Gateway {
	g := &Gateway{
		server:       server,
		registry:     packet.NewRegistry(log),
		sessions:     make(map[uint64]*Session),
		maxObservers: maxObservers,
		maxPerTick:   max(maxPerTick, 1),
		defaultMode:  defaultMode,
		log:          log,
	}
	g.registerHandlers()
	return g
}

func (g *Gateway) registerHandlers() {
	controller := []packet.SessionState{packet.StateController}

	g.registry.Register(packet.TypeInput, controller, func(_ any, r *packet.Reader) {
		var m packet.InputMsg
		if err := r.Decode(&m); err != nil {
			g.log.Debug("bad input message", zap.Error(err))
			return
		}
		m.InputFrame.Actions = nil
		g.frame = m.InputFrame
	})

	g.registry.Register(packet.TypeAction, controller, func(_ any, r *packet.Reader) {
		var m packet.ActionMsg
		if err := r.Decode(&m); err != nil {
			g.log.Debug("bad action message", zap.Error(err))
			return
		}
		g.actions = append(g.actions, m.Action)
	})

	g.registry.Register(packet.TypeStart, controller, func(sess any, r *packet.Reader) {
		var m packet.StartMsg
		if err := r.Decode(&m); err != nil {
			g.log.Debug("bad start message", zap.Error(err))
			return
		}
		mode := g.defaultMode
		if m.Mode != "" {
			parsed, err := world.ParseMode(m.Mode)
			if err != nil {
				sess.(*Session).Send(packet.Error(err.Error()))
				return
			}
			mode = parsed
		}
		g.start = &mode
	})
}

// Poll accepts new sessions, drops dead ones and dispatches up to
// maxPerTick queued messages per session.
func (g *Gateway) Poll() {
	for accepting := true; accepting; {
		select {
		case sess := <-g.server.NewSessions():
			g.attach(sess)
		default:
			accepting = false
		}
	}
	for draining := true; draining; {
		select {
		case id := <-g.server.DeadSessions():
			g.detach(id)
		default:
			draining = false
		}
	}

	for _, id := range append([]uint64(nil), g.order...) {
		sess := g.sessions[id]
		if sess.IsClosed() {
			// The dead channel is lossy; catch anything it dropped.
			g.detach(id)
			continue
		}
		for n := 0; n < g.maxPerTick; n++ {
			var data []byte
			select {
			case data = <-sess.InQueue:
			default:
			}
			if data == nil {
				break
			}
			if err := g.registry.Dispatch(sess, sess.State(), data); err != nil {
				sess.Send(packet.Error(err.Error()))
			}
		}
	}
}

func (g *Gateway) attach(sess *Session) {
	if g.controller != 0 && len(g.sessions)-1 >= g.maxObservers {
		sess.Send(packet.Error("observer limit reached"))
		sess.FlushOutput()
		sess.Close()
		return
	}
	g.sessions[sess.ID] = sess
	g.order = append(g.order, sess.ID)

	role := packet.RoleObserver
	if g.controller == 0 {
		g.controller = sess.ID
		sess.SetState(packet.StateController)
		role = packet.RoleController
	}
	sess.Send(packet.Welcome(sess.ID, role))
	g.log.Info("client joined", zap.Uint64("session", sess.ID), zap.String("role", role))
}

func (g *Gateway) detach(id uint64) {
	if _, ok := g.sessions[id]; !ok {
		return
	}
	delete(g.sessions, id)
	for i, o := range g.order {
		if o == id {
			g.order = append(g.order[:i], g.order[i+1:]...)
			break
		}
	}
	g.log.Info("client left", zap.Uint64("session", id))

	if id != g.controller {
		return
	}
	// The human stops when its controller leaves.
	g.controller = 0
	g.frame = component.InputFrame{}
	g.actions = nil
	for _, next := range g.order {
		sess := g.sessions[next]
		if sess.IsClosed() {
			continue
		}
		g.controller = next
		sess.SetState(packet.StateController)
		sess.Send(packet.Welcome(next, packet.RoleController))
		g.log.Info("controller promoted", zap.Uint64("session", next))
		break
	}
}

// Frame returns the controller's held input.
func (g *Gateway) Frame() component.InputFrame { return g.frame }

// TakeActions returns and clears the actions received since the last call.
func (g *Gateway) TakeActions() []component.Action {
	out := g.actions
	g.actions = nil
	return out
}

// TakeStart reports a pending session start request.
func (g *Gateway) TakeStart() (world.Mode, bool) {
	if g.start == nil {
		return "", false
	}
	mode := *g.start
	g.start = nil
	return mode, true
}

// Controller returns the controlling session ID, 0 when nobody controls.
func (g *Gateway) Controller() uint64 { return g.controller }

// Sessions returns the number of attached sessions.
func (g *Gateway) Sessions() int { return len(g.sessions) }

// PublishSnapshot broadcasts s to every session.
func (g *Gateway) PublishSnapshot(s world.Snapshot) {
	if len(g.sessions) == 0 {
		return
	}
	data, err := packet.Snapshot(s)
	if err != nil {
		g.log.Error("encode snapshot", zap.Error(err))
		return
	}
	g.broadcast(data)
}

// PublishEnded tells every session the run is over.
func (g *Gateway) PublishEnded(tick uint64) {
	g.broadcast(packet.Ended(tick))
}

func (g *Gateway) broadcast(data []byte) {
	for _, id := range g.order {
		g.sessions[id].Send(data)
	}
}

// Flush hands buffered output to the writer goroutines.
func (g *Gateway) Flush() {
	for _, id := range g.order {
		g.sessions[id].FlushOutput()
	}
}

// Close disconnects every client.
func (g *Gateway) Close() {
	for _, id := range g.order {
		g.sessions[id].Close()
	}
}
