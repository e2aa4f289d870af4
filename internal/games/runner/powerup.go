package runner

import (
	"math/rand"

	"github.com/vovakirdan/reef-runner/internal/config"
)

// PowerUpKind identifies a timed buff.
type PowerUpKind int

const (
	PowerNone PowerUpKind = iota
	PowerTripleJump
	PowerShooting
	PowerInvulnerable
)

// PowerUpKinds lists the grantable kinds.
var PowerUpKinds = []PowerUpKind{PowerTripleJump, PowerShooting, PowerInvulnerable}

// String returns the power-up name.
func (k PowerUpKind) String() string {
	switch k {
	case PowerTripleJump:
		return "triple_jump"
	case PowerShooting:
		return "shooting"
	case PowerInvulnerable:
		return "invulnerable"
	default:
		return "none"
	}
}

// PowerUpManager holds at most one active power-up. Its countdown and the
// shooting cadence run on the session scheduler as gameplay timers.
type PowerUpManager struct {
	cfg   config.PowerUpConfig
	sched *Scheduler

	kind      PowerUpKind
	duration  int
	remaining int
	countdown TimerID
	cadence   TimerID

	onExpire func(PowerUpKind)
	onShoot  func()
}

// NewPowerUpManager creates a manager driven by sched. onExpire runs when a
// power-up runs out; onShoot runs on every shooting cadence tick.
func NewPowerUpManager(cfg config.PowerUpConfig, sched *Scheduler, onExpire func(PowerUpKind), onShoot func()) *PowerUpManager {
	return &PowerUpManager{
		cfg:      cfg,
		sched:    sched,
		onExpire: onExpire,
		onShoot:  onShoot,
	}
}

// Duration returns the configured duration of a kind in ticks.
func (pm *PowerUpManager) Duration(kind PowerUpKind) int {
	switch kind {
	case PowerTripleJump:
		return pm.cfg.TripleJumpTicks
	case PowerShooting:
		return pm.cfg.ShootingTicks
	case PowerInvulnerable:
		return pm.cfg.InvulnerableTicks
	default:
		return 0
	}
}

// Grant activates kind, fully replacing any current power-up.
func (pm *PowerUpManager) Grant(kind PowerUpKind) {
	pm.stop()
	pm.kind = kind
	pm.duration = pm.Duration(kind)
	pm.remaining = pm.duration

	pm.countdown = pm.sched.Every("powerup", ClockGameplay, 1, pm.tick)
	if kind == PowerShooting {
		pm.cadence = pm.sched.Every("powerup_shot", ClockGameplay, pm.cfg.ShotInterval, func() {
			if pm.onShoot != nil {
				pm.onShoot()
			}
		})
	}
}

// GrantRandom activates a uniformly chosen kind and returns it.
func (pm *PowerUpManager) GrantRandom(rng *rand.Rand) PowerUpKind {
	kind := PowerUpKinds[rng.Intn(len(PowerUpKinds))]
	pm.Grant(kind)
	return kind
}

func (pm *PowerUpManager) tick() {
	pm.remaining--
	if pm.remaining > 0 {
		return
	}
	expired := pm.kind
	pm.stop()
	if pm.onExpire != nil {
		pm.onExpire(expired)
	}
}

// stop clears the current power-up without notification.
func (pm *PowerUpManager) stop() {
	if pm.countdown != 0 {
		pm.sched.Cancel(pm.countdown)
	}
	if pm.cadence != 0 {
		pm.sched.Cancel(pm.cadence)
	}
	pm.countdown, pm.cadence = 0, 0
	pm.kind = PowerNone
	pm.duration, pm.remaining = 0, 0
}

// Clear drops any power-up silently; used on run reset.
func (pm *PowerUpManager) Clear() {
	pm.stop()
}

// Kind returns the active kind, or PowerNone.
func (pm *PowerUpManager) Kind() PowerUpKind { return pm.kind }

// Active reports whether kind is the active power-up.
func (pm *PowerUpManager) Active(kind PowerUpKind) bool {
	return pm.kind != PowerNone && pm.kind == kind
}

// Any reports whether any power-up is active.
func (pm *PowerUpManager) Any() bool { return pm.kind != PowerNone }

// Remaining returns the ticks left on the active power-up.
func (pm *PowerUpManager) Remaining() int { return pm.remaining }

// Fraction returns the remaining share of the active power-up in [0, 1].
func (pm *PowerUpManager) Fraction() float64 {
	if pm.duration <= 0 {
		return 0
	}
	return float64(pm.remaining) / float64(pm.duration)
}
