package runner

import (
	"math"
	"math/rand"
	"slices"

	"github.com/vovakirdan/reef-runner/internal/config"
)

// unlocks lists the advanced kinds that become available at each tier.
var unlocks = [...][]ObstacleKind{
	1: {KindZigzagger, KindGroundWalker},
	2: {KindShooter, KindFalling, KindDasher},
	3: {KindBouncer, KindTeleporter},
}

// UnlockedKinds returns the advanced kinds available at the given tier.
func UnlockedKinds(tier int) []ObstacleKind {
	var kinds []ObstacleKind
	for t := 1; t <= tier && t < len(unlocks); t++ {
		kinds = append(kinds, unlocks[t]...)
	}
	return kinds
}

// SpawnDirector decides when and what to spawn at the right edge.
type SpawnDirector struct {
	cfg     config.SpawnConfig
	field   config.FieldConfig
	enemies config.EnemyConfig
	rng     *rand.Rand
	last    *Obstacle // Most recently spawned obstacle, while it is still on the field
}

// NewSpawnDirector creates a spawn director drawing from rng.
func NewSpawnDirector(cfg config.RunnerConfig, rng *rand.Rand) *SpawnDirector {
	return &SpawnDirector{
		cfg:     cfg.Spawn,
		field:   cfg.Field,
		enemies: cfg.Enemies,
		rng:     rng,
	}
}

// Reset forgets the last spawned obstacle.
func (sd *SpawnDirector) Reset() {
	sd.last = nil
}

// SpawnDistance returns the minimum distance the last obstacle must have
// travelled from the right edge before another may spawn.
func (sd *SpawnDirector) SpawnDistance(tier int) float64 {
	return math.Max(sd.cfg.MinDistance, sd.cfg.BaseDistance-float64(tier)*sd.cfg.DistancePerTier)
}

// MaybeObstacle rolls for a new obstacle. It returns nil when the distance
// rule or the probability roll fails, or when the candidate would sit too
// close to an existing obstacle. A discarded candidate is not retried.
func (sd *SpawnDirector) MaybeObstacle(existing []*Obstacle, tier int, multiplier float64) *Obstacle {
	if ref := sd.reference(existing); ref != nil && sd.field.Width-ref.X <= sd.SpawnDistance(tier) {
		return nil
	}
	if sd.rng.Float64() >= sd.cfg.ObstacleRate*multiplier {
		return nil
	}

	o := sd.NewObstacle(sd.rollKind(tier), sd.field.Width)
	if !sd.clearOf(o, existing) {
		return nil
	}
	sd.last = o
	return o
}

// reference returns the obstacle the distance rule is measured from: the
// last spawn if it is still in existing, otherwise the newest live obstacle.
// An obstacle destroyed by a shot must not hold back spawning.
func (sd *SpawnDirector) reference(existing []*Obstacle) *Obstacle {
	if sd.last != nil && slices.Contains(existing, sd.last) {
		return sd.last
	}
	sd.last = nil
	if len(existing) == 0 {
		return nil
	}
	return existing[len(existing)-1]
}

// clearOf reports whether o keeps the minimum gap to every existing obstacle.
func (sd *SpawnDirector) clearOf(o *Obstacle, existing []*Obstacle) bool {
	for _, e := range existing {
		gap := sd.cfg.Gap
		if o.Kind == KindPit || e.Kind == KindPit {
			gap = sd.cfg.PitGap
		}
		if math.Abs(o.X-e.X) < gap {
			return false
		}
	}
	return true
}

// rollKind picks an obstacle kind from the type table.
func (sd *SpawnDirector) rollKind(tier int) ObstacleKind {
	r := sd.rng.Float64()
	kind := KindBlock
	switch {
	case r < sd.cfg.PitChance:
		return KindPit
	case r < sd.cfg.PitChance+sd.cfg.TallChance:
		kind = KindTallBlock
	default:
		r2 := sd.rng.Float64()
		switch {
		case r2 < sd.cfg.SpikeChance:
			return KindSpike
		case r2 < sd.cfg.SpikeChance+sd.cfg.FlyingChance:
			return KindFlying
		}
	}

	unlocked := UnlockedKinds(tier)
	if len(unlocked) > 0 && sd.rng.Float64() < sd.cfg.PromoteChance {
		return unlocked[sd.rng.Intn(len(unlocked))]
	}
	return kind
}

// NewObstacle builds an obstacle of the given kind at x with its shape and
// behavior state initialized.
func (sd *SpawnDirector) NewObstacle(kind ObstacleKind, x float64) *Obstacle {
	ground := sd.field.GroundY
	en := sd.enemies
	o := &Obstacle{Kind: kind, X: x}

	onGround := func(w, h float64) {
		o.W, o.H = w, h
		o.Y = ground - h
	}

	switch kind {
	case KindBlock:
		onGround(40, 40)
	case KindTallBlock:
		onGround(40, 60)
	case KindSpike:
		onGround(40, 25)
	case KindFlying:
		o.W, o.H = 40, 30
		o.Y = 250 + sd.rng.Float64()*50
	case KindPit:
		o.W = 90 + sd.rng.Float64()*40
		o.H = sd.field.Height - ground
		o.Y = ground
	case KindGroundWalker:
		onGround(40, 40)
		o.Walker = &WalkerState{Dir: -1}
	case KindShooter:
		onGround(40, 50)
		o.Shooter = &ShooterState{}
	case KindFalling:
		o.W, o.H = 36, 36
		o.Y = 20
		o.Faller = &FallerState{}
	case KindBouncer:
		o.W, o.H = 36, 36
		o.Bouncer = &BouncerState{BaseY: 300, Phase: sd.rng.Float64() * 2 * math.Pi}
		o.Y = o.Bouncer.BaseY + math.Sin(o.Bouncer.Phase)*en.BouncerAmplitude
		o.Y = math.Min(o.Y, ground-o.H)
	case KindDasher:
		onGround(44, 36)
		o.Dasher = &DasherState{}
	case KindZigzagger:
		o.W, o.H = 36, 30
		o.Zigzag = &ZigzagState{
			BaseY:     240 + sd.rng.Float64()*40,
			Amplitude: en.ZigMinAmplitude + sd.rng.Float64()*(en.ZigMaxAmplitude-en.ZigMinAmplitude),
			Speed:     en.ZigMinSpeed + sd.rng.Float64()*(en.ZigMaxSpeed-en.ZigMinSpeed),
			Phase:     sd.rng.Float64() * 2 * math.Pi,
		}
		o.Y = o.Zigzag.BaseY + math.Sin(o.Zigzag.Phase)*o.Zigzag.Amplitude
	case KindTeleporter:
		onGround(40, 50)
		o.Teleport = &TeleportState{
			Phase:    TeleVisible,
			Alpha:    1,
			Cooldown: sd.teleCooldown(),
		}
	}
	return o
}

// teleCooldown rolls a teleporter's visible duration.
func (sd *SpawnDirector) teleCooldown() int {
	span := sd.enemies.TeleMaxCooldown - sd.enemies.TeleMinCooldown
	if span <= 0 {
		return sd.enemies.TeleMinCooldown
	}
	return sd.enemies.TeleMinCooldown + sd.rng.Intn(span+1)
}

// MaybeCollectible rolls for a patty in the jump band.
func (sd *SpawnDirector) MaybeCollectible() *Collectible {
	if sd.rng.Float64() >= sd.cfg.CollectibleRate {
		return nil
	}
	y := sd.cfg.CollectibleMinY + sd.rng.Float64()*(sd.cfg.CollectibleMaxY-sd.cfg.CollectibleMinY)
	return &Collectible{Kind: CollectPatty, X: sd.field.Width, Y: y, W: 30, H: 30}
}

// MaybeRiddleOrb rolls for a riddle orb. blocked suppresses the roll while a
// power-up or quiz is active or another orb is on the field.
func (sd *SpawnDirector) MaybeRiddleOrb(blocked bool) *Collectible {
	if blocked {
		return nil
	}
	if sd.rng.Float64() >= sd.cfg.RiddleRate {
		return nil
	}
	y := sd.cfg.CollectibleMinY + sd.rng.Float64()*(sd.cfg.CollectibleMaxY-sd.cfg.CollectibleMinY)
	return &Collectible{Kind: CollectRiddleOrb, X: sd.field.Width, Y: y, W: 30, H: 30}
}

// MaybeDecoration rolls for a background swimmer, capped at the configured
// number of live decorations.
func (sd *SpawnDirector) MaybeDecoration(live int) *Decoration {
	if live >= sd.cfg.MaxDecorations {
		return nil
	}
	if sd.rng.Float64() >= sd.cfg.DecorationRate {
		return nil
	}
	return &Decoration{
		Variant: sd.rng.Intn(4),
		X:       sd.field.Width + 20,
		Y:       80 + sd.rng.Float64()*250,
		Speed:   0.6 + sd.rng.Float64()*0.8,
		Wobble:  0.02 + sd.rng.Float64()*0.03,
		Phase:   sd.rng.Float64() * 2 * math.Pi,
	}
}
