package component

// ActionKind names a discrete player action.
type ActionKind string

const (
	ActionVehicle  ActionKind = "vehicle"  // enter or exit the nearest vehicle
	ActionInteract ActionKind = "interact" // use the nearest service point
	ActionPurchase ActionKind = "purchase" // buy Key from a nearby shop
	ActionAlign    ActionKind = "align"    // switch alignment to faction Key
)

// Action is one discrete input event.
type Action struct {
	Kind ActionKind `json:"action"`
	Key  string     `json:"key,omitempty"`
}

// InputFrame is the input state sampled for one tick.
type InputFrame struct {
	Up       bool     `json:"up"`
	Down     bool     `json:"down"`
	Left     bool     `json:"left"`
	Right    bool     `json:"right"`
	Fire     bool     `json:"fire"`
	PointerX float64  `json:"px"`
	PointerY float64  `json:"py"`
	Actions  []Action `json:"-"`
}

// Axis returns the raw movement direction from the directional flags.
func (f InputFrame) Axis() (dx, dy float64) {
	if f.Up {
		dy--
	}
	if f.Down {
		dy++
	}
	if f.Left {
		dx--
	}
	if f.Right {
		dx++
	}
	return dx, dy
}

// Controller holds the latest input for the human-controlled unit. The
// directional state persists across ticks; actions are consumed once.
type Controller struct {
	frame   InputFrame
	pending []Action
}

// Set replaces the held directional state and queues the frame's actions.
func (c *Controller) Set(f InputFrame) {
	c.pending = append(c.pending, f.Actions...)
	f.Actions = nil
	c.frame = f
}

// Queue appends a single action.
func (c *Controller) Queue(a Action) {
	c.pending = append(c.pending, a)
}

// Frame returns the held directional state.
func (c *Controller) Frame() InputFrame { return c.frame }

// Drain returns and clears queued actions.
func (c *Controller) Drain() []Action {
	out := c.pending
	c.pending = nil
	return out
}

// Reset clears all held input.
func (c *Controller) Reset() {
	c.frame = InputFrame{}
	c.pending = nil
}
