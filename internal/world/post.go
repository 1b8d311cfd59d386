package world

import (
	"math"

	"github.com/turfwar/server/internal/core/ecs"
	"github.com/turfwar/server/internal/data"
)

const (
	PostSize         = 40.0
	PostMaxIntegrity = 100.0
	CaptureIntegrity = 10.0 // integrity right after an ownership flip
	NeutralIntegrity = 50.0
	OwnedIntegrity   = 100.0

	BlackzoneStartRadius = 50.0
	BlackzoneGrowth      = 0.5
	BlackzoneDamage      = 0.5
)

// Post is a capturable territory point. Pos is its center.
type Post struct {
	ID        ecs.EntityID
	Name      string
	Zone      int
	Pos       Vec
	Integrity float64
	Owner     data.FactionID

	Blackzone       bool
	BlackzoneRadius float64

	// LastThreat is the tick of the most recent hostile hit; defenders
	// guarding the post stand down once it has been quiet long enough.
	LastThreat uint64
}

// Capture describes an ownership flip.
type Capture struct {
	From, To data.FactionID
}

// Contains reports whether p lies strictly inside the post's box.
func (p *Post) Contains(v Vec) bool {
	return math.Abs(v.X-p.Pos.X) < PostSize/2 && math.Abs(v.Y-p.Pos.Y) < PostSize/2
}

// ApplyDamage resolves a hit by attacker. Hits from the owner repair the
// post up to PostMaxIntegrity. Any other faction wears it down; reaching
// zero flips ownership to the attacker and resets integrity to
// CaptureIntegrity. The second result is true exactly when a flip happened.
func (p *Post) ApplyDamage(amount float64, attacker data.FactionID) (Capture, bool) {
	if amount < 0 || math.IsNaN(amount) {
		amount = 0
	}
	if p.Owner == attacker {
		p.Integrity = math.Min(PostMaxIntegrity, p.Integrity+amount)
		return Capture{}, false
	}
	p.Integrity -= amount
	if p.Integrity > 0 {
		return Capture{}, false
	}
	c := Capture{From: p.Owner, To: attacker}
	p.Integrity = CaptureIntegrity
	p.Owner = attacker
	return c, true
}

// Activate starts the territorial event on this post.
func (p *Post) Activate() {
	p.Blackzone = true
	p.BlackzoneRadius = BlackzoneStartRadius
}

// Grow expands an active blackzone by one tick.
func (p *Post) Grow() {
	if p.Blackzone {
		p.BlackzoneRadius += BlackzoneGrowth
	}
}

// InBlackzone reports whether v is strictly inside the active radius.
func (p *Post) InBlackzone(v Vec) bool {
	return p.Blackzone && p.Pos.Dist(v) < p.BlackzoneRadius
}
