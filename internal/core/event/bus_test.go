package event

import "testing"

type ping struct{ n int }
type pong struct{ s string }

func TestBusDeliversAfterSwapInEmissionOrder(t *testing.T) {
	b := NewBus()
	var got []string
	Subscribe(b, func(p ping) { got = append(got, "ping") })
	Subscribe(b, func(p pong) { got = append(got, "pong:"+p.s) })

	Emit(b, ping{1})
	Emit(b, pong{"a"})
	Emit(b, ping{2})

	b.DispatchAll()
	if len(got) != 0 {
		t.Fatalf("events delivered before swap: %v", got)
	}
	if n := Pending[ping](b); n != 2 {
		t.Fatalf("pending pings = %d, want 2", n)
	}

	b.SwapBuffers()
	b.DispatchAll()
	want := []string{"ping", "pong:a", "ping"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}

	b.SwapBuffers()
	b.DispatchAll()
	if len(got) != 3 {
		t.Fatalf("events redelivered: %v", got)
	}
}

func TestBusReset(t *testing.T) {
	b := NewBus()
	count := 0
	Subscribe(b, func(ping) { count++ })
	Emit(b, ping{})
	b.Reset()
	b.SwapBuffers()
	b.DispatchAll()
	if count != 0 {
		t.Fatalf("reset bus still delivered %d events", count)
	}
	Emit(b, ping{})
	b.SwapBuffers()
	b.DispatchAll()
	if count != 1 {
		t.Fatalf("subscription lost after reset")
	}
}
