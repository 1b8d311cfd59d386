package net

import (
	"encoding/json"
	"testing"

	"github.com/turfwar/server/internal/config"
	"github.com/turfwar/server/internal/net/packet"
	"github.com/turfwar/server/internal/world"
	"go.uber.org/zap"
)

func newTestGateway(maxObservers int) (*Gateway, *Server) {
	srv := &Server{
		newConns: make(chan *Session, 8),
		deadCh:   make(chan uint64, 8),
		log:      zap.NewNop(),
	}
	return NewGateway(srv, maxObservers, 4, world.ModeBasic, zap.NewNop()), srv
}

// connect queues an unconnected session as if a client had just dialed.
func connect(srv *Server, id uint64) *Session {
	s := NewSession(nil, id, config.NetworkConfig{InQueueSize: 8, OutQueueSize: 8}, zap.NewNop())
	s.onClose = srv.NotifyDead
	srv.newConns <- s
	return s
}

// sent returns the message types written to s so far.
func sent(t *testing.T, s *Session) []map[string]any {
	t.Helper()
	var out []map[string]any
	for {
		select {
		case data := <-s.OutQueue:
			var m map[string]any
			if err := json.Unmarshal(data, &m); err != nil {
				t.Fatalf("bad json %s: %v", data, err)
			}
			out = append(out, m)
		default:
			return out
		}
	}
}

func TestFirstClientControls(t *testing.T) {
	gw, srv := newTestGateway(1)
	a := connect(srv, 1)
	b := connect(srv, 2)
	c := connect(srv, 3)
	gw.Poll()
	gw.Flush()

	if gw.Controller() != a.ID || a.State() != packet.StateController {
		t.Fatalf("controller = %d, want %d", gw.Controller(), a.ID)
	}
	if b.State() != packet.StateObserver {
		t.Errorf("second client state = %s", b.State())
	}
	if msgs := sent(t, a); len(msgs) != 1 || msgs[0]["role"] != packet.RoleController {
		t.Errorf("controller welcome = %v", msgs)
	}
	if msgs := sent(t, b); len(msgs) != 1 || msgs[0]["role"] != packet.RoleObserver {
		t.Errorf("observer welcome = %v", msgs)
	}
	if !c.IsClosed() {
		t.Error("client over the observer limit was kept")
	}
	if msgs := sent(t, c); len(msgs) != 1 || msgs[0]["type"] != packet.TypeError {
		t.Errorf("rejected client got %v", msgs)
	}
	if gw.Sessions() != 2 {
		t.Errorf("sessions = %d, want 2", gw.Sessions())
	}
}

func TestOnlyControllerDrives(t *testing.T) {
	gw, srv := newTestGateway(4)
	a := connect(srv, 1)
	b := connect(srv, 2)
	gw.Poll()

	b.InQueue <- []byte(`{"type":"input","left":true}`)
	a.InQueue <- []byte(`{"type":"input","up":true,"fire":true,"px":10,"py":20}`)
	a.InQueue <- []byte(`{"type":"action","action":"purchase","key":"medkit"}`)
	a.InQueue <- []byte(`{"type":"start","mode":"extended"}`)
	gw.Poll()
	gw.Flush()

	f := gw.Frame()
	if !f.Up || !f.Fire || f.Left || f.PointerX != 10 || f.PointerY != 20 {
		t.Errorf("frame = %+v", f)
	}
	acts := gw.TakeActions()
	if len(acts) != 1 || acts[0].Key != "medkit" {
		t.Errorf("actions = %+v", acts)
	}
	if len(gw.TakeActions()) != 0 {
		t.Error("actions not cleared")
	}
	mode, ok := gw.TakeStart()
	if !ok || mode != world.ModeExtended {
		t.Errorf("start = %v/%v", mode, ok)
	}
	if _, ok := gw.TakeStart(); ok {
		t.Error("start request not cleared")
	}

	msgs := sent(t, b)
	if last := msgs[len(msgs)-1]; last["type"] != packet.TypeError {
		t.Errorf("observer input not refused: %v", msgs)
	}
}

func TestBadStartMode(t *testing.T) {
	gw, srv := newTestGateway(4)
	a := connect(srv, 1)
	gw.Poll()
	gw.Flush()
	if msgs := sent(t, a); len(msgs) != 1 || msgs[0]["type"] != packet.TypeWelcome {
		t.Fatalf("got %v, want only the welcome", msgs)
	}

	a.InQueue <- []byte(`{"type":"start","mode":"nightmare"}`)
	gw.Poll()
	gw.Flush()

	if _, ok := gw.TakeStart(); ok {
		t.Error("invalid mode accepted")
	}
	if msgs := sent(t, a); len(msgs) != 1 || msgs[0]["type"] != packet.TypeError {
		t.Errorf("got %v, want an error", msgs)
	}

	a.InQueue <- []byte(`{"type":"start"}`)
	gw.Poll()
	if mode, ok := gw.TakeStart(); !ok || mode != world.ModeBasic {
		t.Errorf("default start = %v/%v", mode, ok)
	}
}

func TestControllerHandoff(t *testing.T) {
	gw, srv := newTestGateway(4)
	a := connect(srv, 1)
	b := connect(srv, 2)
	gw.Poll()
	a.InQueue <- []byte(`{"type":"input","up":true}`)
	gw.Poll()

	a.Close()
	gw.Poll()
	gw.Flush()

	if gw.Controller() != b.ID || b.State() != packet.StateController {
		t.Fatalf("controller = %d, want %d", gw.Controller(), b.ID)
	}
	if gw.Frame().Up {
		t.Error("input of the departed controller still held")
	}
	msgs := sent(t, b)
	if last := msgs[len(msgs)-1]; last["role"] != packet.RoleController {
		t.Errorf("promotion not announced: %v", msgs)
	}
}

func TestBroadcast(t *testing.T) {
	gw, srv := newTestGateway(4)
	a := connect(srv, 1)
	b := connect(srv, 2)
	gw.Poll()
	gw.Flush()
	sent(t, a)
	sent(t, b)

	gw.PublishSnapshot(world.Snapshot{Tick: 9, Width: 3000, Height: 3000})
	gw.PublishEnded(9)
	gw.Flush()

	for _, s := range []*Session{a, b} {
		msgs := sent(t, s)
		if len(msgs) != 2 || msgs[0]["type"] != packet.TypeSnapshot || msgs[1]["type"] != packet.TypeEnded {
			t.Errorf("session %d got %v", s.ID, msgs)
			continue
		}
		if msgs[0]["tick"] != float64(9) {
			t.Errorf("snapshot tick = %v", msgs[0]["tick"])
		}
	}
}
