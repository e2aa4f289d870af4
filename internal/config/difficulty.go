package config

import "math"

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	RampTicks     int     `yaml:"ramp_ticks"`     // Active ticks until the curve is saturated
	CurveGain     float64 `yaml:"curve_gain"`     // Added to 1.0 at full ramp, before level scale
	MinMultiplier float64 `yaml:"min_multiplier"` // Lower clamp of the multiplier
	MaxMultiplier float64 `yaml:"max_multiplier"` // Upper clamp of the multiplier
	TierSeconds   []int   `yaml:"tier_seconds"`   // Elapsed seconds at which tiers 1..n unlock
	SceneTicks    int     `yaml:"scene_ticks"`    // Scene change cadence
	SceneBoost    float64 `yaml:"scene_boost"`    // Permanent scroll boost per scene change
}

// DifficultyManager tracks elapsed play time for one run and derives the
// speed multiplier, the enemy tier and the permanent scene boost from it.
type DifficultyManager struct {
	cfg      DifficultyConfig
	scale    float64
	tickRate int
	ticks    int
	boost    float64
	scenes   int
}

// NewDifficultyManager creates a difficulty manager for a run at the given level scale.
func NewDifficultyManager(cfg DifficultyConfig, levelScale float64, tickRate int) *DifficultyManager {
	if tickRate <= 0 {
		tickRate = 60
	}
	return &DifficultyManager{
		cfg:      cfg,
		scale:    levelScale,
		tickRate: tickRate,
	}
}

// Update advances one active tick.
func (d *DifficultyManager) Update() {
	d.ticks++
}

// AdvanceScene applies the permanent boost of one scene change and returns
// the number of scene changes so far.
func (d *DifficultyManager) AdvanceScene() int {
	d.boost += d.cfg.SceneBoost
	d.scenes++
	return d.scenes
}

// Ticks returns the number of active ticks played.
func (d *DifficultyManager) Ticks() int {
	return d.ticks
}

// Boost returns the accumulated scene boost. It never decreases during a run.
func (d *DifficultyManager) Boost() float64 {
	return d.boost
}

// Multiplier returns the current smooth speed multiplier.
func (d *DifficultyManager) Multiplier() float64 {
	return MultiplierAt(d.cfg, d.ticks, d.scale)
}

// Tier returns the current discrete difficulty tier.
func (d *DifficultyManager) Tier() int {
	return TierAt(d.cfg, d.ticks, d.tickRate)
}

// ScrollSpeed returns the leftward speed of foreground entities.
func (d *DifficultyManager) ScrollSpeed(base float64) float64 {
	return (base + d.boost) * d.Multiplier()
}

// MultiplierAt computes the smoothstep multiplier for the given elapsed ticks.
func MultiplierAt(cfg DifficultyConfig, ticks int, levelScale float64) float64 {
	ramp := float64(cfg.RampTicks)
	if ramp <= 0 {
		ramp = 1 // Prevent division by zero
	}
	t := clampF(float64(ticks)/ramp, 0.0, 1.0)
	curve := t * t * (3 - 2*t)
	m := (1 + curve*cfg.CurveGain) * levelScale
	return clampF(m, cfg.MinMultiplier, cfg.MaxMultiplier)
}

// TierAt maps elapsed ticks to a tier using the configured second thresholds.
func TierAt(cfg DifficultyConfig, ticks int, tickRate int) int {
	if tickRate <= 0 {
		tickRate = 60
	}
	seconds := ticks / tickRate
	tier := 0
	for _, threshold := range cfg.TierSeconds {
		if seconds < threshold {
			break
		}
		tier++
	}
	return tier
}

// clampF restricts a float64 to [min, max].
func clampF(val, min, max float64) float64 {
	return math.Max(min, math.Min(max, val))
}
