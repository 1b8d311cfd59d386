package world

import (
	"math"

	"github.com/turfwar/server/internal/core/ecs"
	"github.com/turfwar/server/internal/data"
)

// NearestUnit returns the closest live unit within radius of p accepted by
// match, or nil.
func (s *State) NearestUnit(p Vec, radius float64, match func(*Unit) bool) *Unit {
	var best *Unit
	bestDist := math.Inf(1)
	for _, id := range s.Grid.Nearby(p, radius) {
		u := s.Unit(id)
		if u == nil || !u.Alive() {
			continue
		}
		d := p.Dist(u.Pos)
		if d > radius || d >= bestDist {
			continue
		}
		if match != nil && !match(u) {
			continue
		}
		best, bestDist = u, d
	}
	return best
}

// UnitsWithin visits live units within radius of p in handle order.
func (s *State) UnitsWithin(p Vec, radius float64, fn func(*Unit)) {
	for _, id := range s.Grid.Nearby(p, radius) {
		u := s.Unit(id)
		if u == nil || !u.Alive() || p.Dist(u.Pos) > radius {
			continue
		}
		fn(u)
	}
}

// NearestPost returns the closest post accepted by match, or nil.
func (s *State) NearestPost(p Vec, match func(*Post) bool) *Post {
	var best *Post
	bestDist := math.Inf(1)
	s.Posts.Each(func(_ ecs.EntityID, post *Post) {
		if match != nil && !match(post) {
			return
		}
		if d := p.Dist(post.Pos); d < bestDist {
			best, bestDist = post, d
		}
	})
	return best
}

// PostsWhere returns every post accepted by match, in handle order.
func (s *State) PostsWhere(match func(*Post) bool) []*Post {
	var out []*Post
	s.Posts.Each(func(_ ecs.EntityID, post *Post) {
		if match(post) {
			out = append(out, post)
		}
	})
	return out
}

// NearestVehicle returns the closest unoccupied vehicle within radius.
func (s *State) NearestVehicle(p Vec, radius float64) *Vehicle {
	var best *Vehicle
	bestDist := radius
	s.Vehicles.Each(func(_ ecs.EntityID, v *Vehicle) {
		if v.Occupied() {
			return
		}
		if d := p.Dist(v.Pos); d <= bestDist {
			best, bestDist = v, d
		}
	})
	return best
}

// NearestService returns the index of the closest service point within
// radius, optionally restricted to kind. Index -1 means none.
func (s *State) NearestService(p Vec, radius float64, kind data.ServiceKind) int {
	best := -1
	bestDist := radius
	for i, sv := range s.Services {
		if kind != "" && sv.Kind != kind {
			continue
		}
		if d := p.Dist(sv.Pos); d <= bestDist {
			best, bestDist = i, d
		}
	}
	return best
}

// BuildingAt returns a building overlapping the circle at p, or nil.
func (s *State) BuildingAt(p Vec, radius float64) *Obstacle {
	_, o, ok := s.Obstacles.Find(func(_ ecs.EntityID, o *Obstacle) bool {
		return o.Kind == Building && o.Rect.Overlaps(p, math.Max(radius, 1e-9))
	})
	if !ok {
		return nil
	}
	return o
}

// PropAt returns a live prop overlapping the circle at p, or nil.
func (s *State) PropAt(p Vec, radius float64) *Obstacle {
	_, o, ok := s.Obstacles.Find(func(_ ecs.EntityID, o *Obstacle) bool {
		return o.Destructible() && o.Rect.Overlaps(p, math.Max(radius, 1e-9))
	})
	if !ok {
		return nil
	}
	return o
}

// PostCounts returns the number of posts owned per faction.
func (s *State) PostCounts() map[data.FactionID]int {
	out := make(map[data.FactionID]int, s.Tables.Factions.Count())
	s.Posts.Each(func(_ ecs.EntityID, p *Post) {
		out[p.Owner]++
	})
	return out
}
