package runner

import "github.com/vovakirdan/reef-runner/internal/core"

// ObstacleKind identifies an obstacle variant. The set is closed; behavior is
// dispatched by a single switch in the enemy controller.
type ObstacleKind int

const (
	KindBlock ObstacleKind = iota
	KindTallBlock
	KindSpike
	KindFlying
	KindPit
	KindGroundWalker
	KindShooter
	KindFalling
	KindBouncer
	KindDasher
	KindZigzagger
	KindTeleporter
)

// String returns the wire name of the obstacle kind.
func (k ObstacleKind) String() string {
	switch k {
	case KindBlock:
		return "block"
	case KindTallBlock:
		return "tall_block"
	case KindSpike:
		return "spike"
	case KindFlying:
		return "flying"
	case KindPit:
		return "pit"
	case KindGroundWalker:
		return "ground_walker"
	case KindShooter:
		return "shooter"
	case KindFalling:
		return "falling"
	case KindBouncer:
		return "bouncer"
	case KindDasher:
		return "dasher"
	case KindZigzagger:
		return "zigzagger"
	case KindTeleporter:
		return "teleporter"
	default:
		return "unknown"
	}
}

// Advanced reports whether the kind is only reachable by tier promotion.
func (k ObstacleKind) Advanced() bool {
	return k >= KindGroundWalker
}

// WalkerState drives a ground_walker pacing back and forth.
type WalkerState struct {
	Dir   float64 // -1 or +1
	Timer int     // Ticks since last flip
}

// ShooterState drives a shooter's fire cadence.
type ShooterState struct {
	Timer int
}

// FallerState drives a falling hazard.
type FallerState struct {
	Active bool
	VY     float64
}

// BouncerState drives vertical sine motion.
type BouncerState struct {
	BaseY float64
	Phase float64
}

// DasherState drives the idle/dash/cooldown cycle of a dasher.
type DasherState struct {
	Dashing   bool
	Dir       float64
	Travelled float64
	Cooldown  int
}

// ZigzagState drives sine motion with a per-instance amplitude and speed.
type ZigzagState struct {
	BaseY     float64
	Amplitude float64
	Speed     float64
	Phase     float64
}

// TelePhase is a teleporter's position in its visibility cycle.
type TelePhase int

const (
	TeleVisible TelePhase = iota
	TeleFadeOut
	TeleFadeIn
)

// String returns the phase name.
func (p TelePhase) String() string {
	switch p {
	case TeleVisible:
		return "visible"
	case TeleFadeOut:
		return "fade_out"
	case TeleFadeIn:
		return "fade_in"
	default:
		return "unknown"
	}
}

// TeleportState drives the fade/relocate cycle of a teleporter.
type TeleportState struct {
	Phase    TelePhase
	Alpha    float64
	Cooldown int
}

// Obstacle is a hazard on the field. Only the behavior pointer matching
// Kind is non-nil.
type Obstacle struct {
	Kind       ObstacleKind
	X, Y, W, H float64
	Age        int  // Ticks since spawn
	Consumed   bool // Pit already swallowed the player once

	Walker   *WalkerState
	Shooter  *ShooterState
	Faller   *FallerState
	Bouncer  *BouncerState
	Dasher   *DasherState
	Zigzag   *ZigzagState
	Teleport *TeleportState
}

// Rect returns the obstacle's bounding box.
func (o *Obstacle) Rect() core.Rect {
	return core.NewRect(o.X, o.Y, o.W, o.H)
}

// Solid reports whether the obstacle can currently hurt the player.
func (o *Obstacle) Solid(solidAlpha float64) bool {
	switch o.Kind {
	case KindPit:
		return false
	case KindTeleporter:
		return o.Teleport.Alpha >= solidAlpha
	default:
		return true
	}
}

// Player is the single runner controlled by the user.
type Player struct {
	X, Y, VY     float64
	W, H         float64
	Grounded     bool
	JumpCount    int
	Invulnerable int // Remaining ticks of the post-hit window

	pit *Obstacle // Pit the player is falling into, if any
}

// Rect returns the player's bounding box.
func (p *Player) Rect() core.Rect {
	return core.NewRect(p.X, p.Y, p.W, p.H)
}

// Owner identifies who fired a projectile.
type Owner int

const (
	OwnerEnemy Owner = iota
	OwnerPlayer
)

// String returns the owner name.
func (o Owner) String() string {
	if o == OwnerPlayer {
		return "player"
	}
	return "enemy"
}

// Projectile is a shot moving with its own velocity.
type Projectile struct {
	Owner      Owner
	X, Y, W, H float64
	VX, VY     float64
}

// Rect returns the projectile's bounding box.
func (p *Projectile) Rect() core.Rect {
	return core.NewRect(p.X, p.Y, p.W, p.H)
}

// CollectibleKind identifies a pickup.
type CollectibleKind int

const (
	CollectPatty CollectibleKind = iota
	CollectRiddleOrb
)

// String returns the pickup name.
func (k CollectibleKind) String() string {
	if k == CollectRiddleOrb {
		return "riddle_orb"
	}
	return "patty"
}

// Collectible is a pickup scrolling with the field.
type Collectible struct {
	Kind       CollectibleKind
	X, Y, W, H float64
}

// Rect returns the pickup's bounding box.
func (c *Collectible) Rect() core.Rect {
	return core.NewRect(c.X, c.Y, c.W, c.H)
}

// Decoration is a background swimmer with no gameplay effect.
type Decoration struct {
	Variant int
	X, Y    float64
	Speed   float64
	Wobble  float64
	Phase   float64
}
