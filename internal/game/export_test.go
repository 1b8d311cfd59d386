package game

// triggerBlackzone starts a territorial event without waiting for its timer.
func (g *Game) triggerBlackzone() { g.territory.Trigger() }
