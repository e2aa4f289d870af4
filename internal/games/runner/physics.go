package runner

import "github.com/vovakirdan/reef-runner/internal/config"

// PhysicsController integrates the player's vertical motion, resolves ground
// contact and detects pit falls.
type PhysicsController struct {
	phys   config.PhysicsConfig
	player config.PlayerConfig
	field  config.FieldConfig
}

// NewPhysicsController creates a physics controller for the given config.
func NewPhysicsController(cfg config.RunnerConfig) *PhysicsController {
	return &PhysicsController{
		phys:   cfg.Physics,
		player: cfg.Player,
		field:  cfg.Field,
	}
}

// ResetPlayer places the player standing on the ground with no momentum.
func (pc *PhysicsController) ResetPlayer(p *Player) {
	*p = Player{
		X:        pc.player.X,
		Y:        pc.field.GroundY - pc.player.Height,
		W:        pc.player.Width,
		H:        pc.player.Height,
		Grounded: true,
	}
}

// Jump applies a jump impulse if the budget allows it. The first jump from
// the ground is stronger than air jumps. Returns false for a no-op.
func (pc *PhysicsController) Jump(p *Player, budget int) bool {
	if p.pit != nil || p.JumpCount >= budget {
		return false
	}
	if p.JumpCount == 0 {
		p.VY = pc.phys.JumpImpulse
	} else {
		p.VY = pc.phys.AirJumpImpulse
	}
	p.JumpCount++
	p.Grounded = false
	return true
}

// Update advances the player by one tick. When the player has fallen through
// a pit past the fall limit it is placed back above the ground and the pit
// is returned so the caller can apply damage.
func (pc *PhysicsController) Update(p *Player, obstacles []*Obstacle) *Obstacle {
	p.VY += pc.phys.Gravity
	if p.VY > pc.phys.MaxFallSpeed {
		p.VY = pc.phys.MaxFallSpeed
	}
	p.Y += p.VY

	ground := pc.field.GroundY
	if p.pit == nil && p.Y+p.H >= ground {
		if pit := pc.pitUnder(p, obstacles); pit != nil {
			p.pit = pit
			p.Grounded = false
		} else {
			p.Y = ground - p.H
			p.VY = 0
			p.Grounded = true
			p.JumpCount = 0
		}
	}

	if p.pit != nil && p.Y > pc.field.FallLimitY {
		pit := p.pit
		pit.Consumed = true
		p.pit = nil
		p.Y = pc.field.RespawnY
		p.VY = 0
		p.Grounded = false
		p.JumpCount = 0
		return pit
	}
	return nil
}

// pitUnder returns an unconsumed pit overlapping the player's inset span.
func (pc *PhysicsController) pitUnder(p *Player, obstacles []*Obstacle) *Obstacle {
	span := p.Rect().Inset(pc.player.PitInset)
	for _, o := range obstacles {
		if o.Kind != KindPit || o.Consumed {
			continue
		}
		if span.SpanOverlaps(o.Rect()) {
			return o
		}
	}
	return nil
}
