package packet

import (
	"strings"
	"testing"

	"github.com/turfwar/server/internal/component"
	"go.uber.org/zap"
)

func TestDispatchRoutesByType(t *testing.T) {
	reg := NewRegistry(zap.NewNop())
	var got ActionMsg
	reg.Register(TypeAction, []SessionState{StateController}, func(_ any, r *Reader) {
		if err := r.Decode(&got); err != nil {
			t.Errorf("decode: %v", err)
		}
	})

	msg := []byte(`{"type":"action","action":"purchase","key":"medkit"}`)
	if err := reg.Dispatch(nil, StateController, msg); err != nil {
		t.Fatalf("Dispatch: %v", err)
	}
	if got.Kind != component.ActionPurchase || got.Key != "medkit" {
		t.Errorf("decoded %+v", got.Action)
	}
}

func TestDispatchStateGate(t *testing.T) {
	reg := NewRegistry(zap.NewNop())
	called := false
	reg.Register(TypeInput, []SessionState{StateController}, func(any, *Reader) { called = true })

	err := reg.Dispatch(nil, StateObserver, []byte(`{"type":"input","up":true}`))
	if err == nil || called {
		t.Fatalf("observer input accepted (err %v, called %v)", err, called)
	}
}

func TestDispatchUnknownAndMalformed(t *testing.T) {
	reg := NewRegistry(zap.NewNop())
	if err := reg.Dispatch(nil, StateController, []byte(`{"type":"dance"}`)); err != nil {
		t.Errorf("unknown type: %v", err)
	}
	if err := reg.Dispatch(nil, StateController, []byte(`{not json`)); err == nil {
		t.Error("malformed message accepted")
	}
	if err := reg.Dispatch(nil, StateController, nil); err == nil {
		t.Error("empty message accepted")
	}
}

func TestDispatchRecoversPanic(t *testing.T) {
	reg := NewRegistry(zap.NewNop())
	reg.Register(TypeStart, []SessionState{StateObserver}, func(any, *Reader) { panic("boom") })

	err := reg.Dispatch(nil, StateObserver, []byte(`{"type":"start"}`))
	if err == nil || !strings.Contains(err.Error(), "boom") {
		t.Errorf("err = %v, want recovered panic", err)
	}
}

func TestInputMessageDecodesFrame(t *testing.T) {
	var m InputMsg
	r := NewReader([]byte(`{"type":"input","up":true,"fire":true,"px":120.5,"py":40}`))
	if err := r.Decode(&m); err != nil {
		t.Fatal(err)
	}
	if !m.Up || !m.Fire || m.PointerX != 120.5 || m.PointerY != 40 {
		t.Errorf("frame = %+v", m.InputFrame)
	}
}

func TestEncoders(t *testing.T) {
	if s := string(Ended(42)); s != `{"type":"ended","tick":42}` {
		t.Errorf("Ended = %s", s)
	}
	if s := string(Welcome(3, RoleObserver)); s != `{"type":"welcome","session":3,"role":"observer"}` {
		t.Errorf("Welcome = %s", s)
	}
}
