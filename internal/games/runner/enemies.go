package runner

import (
	"math"
	"math/rand"

	"github.com/vovakirdan/reef-runner/internal/config"
)

// EnemyController advances per-kind obstacle behavior after scrolling.
type EnemyController struct {
	cfg   config.EnemyConfig
	field config.FieldConfig
	rng   *rand.Rand
	tele  func() int // Rolls a teleporter cooldown
}

// NewEnemyController creates an enemy controller sharing the spawn RNG.
func NewEnemyController(cfg config.RunnerConfig, rng *rand.Rand, spawner *SpawnDirector) *EnemyController {
	return &EnemyController{
		cfg:   cfg.Enemies,
		field: cfg.Field,
		rng:   rng,
		tele:  spawner.teleCooldown,
	}
}

// Update advances one obstacle by one tick. A shooter may return a new
// enemy projectile.
func (ec *EnemyController) Update(o *Obstacle, p *Player) *Projectile {
	o.Age++
	en := ec.cfg

	switch o.Kind {
	case KindBlock, KindTallBlock, KindSpike, KindFlying, KindPit:
		// Static hazards only scroll.

	case KindGroundWalker:
		w := o.Walker
		w.Timer++
		if w.Timer >= en.WalkerFlipTicks {
			w.Dir = -w.Dir
			w.Timer = 0
		}
		o.X += w.Dir * en.WalkerSpeed

	case KindShooter:
		s := o.Shooter
		s.Timer++
		if s.Timer >= en.ShooterInterval {
			s.Timer = 0
			cx, cy := o.Rect().Center()
			return &Projectile{
				Owner: OwnerEnemy,
				X:     cx - 5,
				Y:     cy - 3,
				W:     10,
				H:     6,
				VX:    -en.ShotSpeed,
			}
		}

	case KindFalling:
		f := o.Faller
		if !f.Active && math.Abs(p.Rect().CenterX()-o.Rect().CenterX()) <= en.FallerTrigger {
			f.Active = true
		}
		if f.Active {
			f.VY += en.FallerGravity
			o.Y += f.VY
		}

	case KindBouncer:
		b := o.Bouncer
		o.Y = b.BaseY + math.Sin(b.Phase+float64(o.Age)*en.BouncerSpeed)*en.BouncerAmplitude
		o.Y = math.Min(o.Y, ec.field.GroundY-o.H)

	case KindDasher:
		ec.updateDasher(o, p)

	case KindZigzagger:
		z := o.Zigzag
		o.Y = z.BaseY + math.Sin(z.Phase+float64(o.Age)*z.Speed)*z.Amplitude
		o.X -= en.ZigDrift

	case KindTeleporter:
		ec.updateTeleporter(o, p)
	}
	return nil
}

// updateDasher runs the idle, dash and cooldown cycle.
func (ec *EnemyController) updateDasher(o *Obstacle, p *Player) {
	d := o.Dasher
	en := ec.cfg
	playerX := p.Rect().CenterX()

	if d.Dashing {
		o.X += d.Dir * en.DasherSpeed
		d.Travelled += en.DasherSpeed
		past := (o.Rect().CenterX()-playerX)*d.Dir >= en.DasherPass
		if past || d.Travelled >= en.DasherMaxDistance {
			d.Dashing = false
			d.Travelled = 0
			d.Cooldown = en.DasherCooldown
		}
		return
	}

	if d.Cooldown > 0 {
		d.Cooldown--
		return
	}

	dx := playerX - o.Rect().CenterX()
	if math.Abs(dx) <= en.DasherTrigger {
		d.Dashing = true
		d.Travelled = 0
		d.Dir = -1
		if dx > 0 {
			d.Dir = 1
		}
	}
}

// updateTeleporter runs the visible, fade out, relocate and fade in cycle.
func (ec *EnemyController) updateTeleporter(o *Obstacle, p *Player) {
	t := o.Teleport
	en := ec.cfg

	switch t.Phase {
	case TeleVisible:
		t.Cooldown--
		if t.Cooldown <= 0 {
			t.Phase = TeleFadeOut
		}
	case TeleFadeOut:
		t.Alpha -= en.TeleFadeRate
		if t.Alpha <= 0 {
			t.Alpha = 0
			offset := en.TeleMinOffset + ec.rng.Float64()*(en.TeleMaxOffset-en.TeleMinOffset)
			o.X = p.X + offset
			t.Phase = TeleFadeIn
		}
	case TeleFadeIn:
		t.Alpha += en.TeleFadeRate
		if t.Alpha >= 1 {
			t.Alpha = 1
			t.Phase = TeleVisible
			t.Cooldown = ec.tele()
		}
	}
}

// Gone reports whether the obstacle has left the field for good.
func (ec *EnemyController) Gone(o *Obstacle) bool {
	if o.X+o.W < 0 {
		return true
	}
	return o.Kind == KindFalling && o.Y > ec.field.Height
}
