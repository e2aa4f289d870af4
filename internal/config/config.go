// Package config provides YAML-based runner configuration loading and
// difficulty management.
package config

import (
	"fmt"
	"strings"
)

// RunnerConfig contains all tunables of the endless runner simulation.
// Distances are field pixels, durations are ticks at 60 ticks per second.
type RunnerConfig struct {
	Field      FieldConfig      `yaml:"field"`
	Physics    PhysicsConfig    `yaml:"physics"`
	Player     PlayerConfig     `yaml:"player"`
	Spawn      SpawnConfig      `yaml:"spawn"`
	Enemies    EnemyConfig      `yaml:"enemies"`
	Collision  CollisionConfig  `yaml:"collision"`
	PowerUps   PowerUpConfig    `yaml:"powerups"`
	Scoring    ScoringConfig    `yaml:"scoring"`
	Levels     LevelsConfig     `yaml:"levels"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// FieldConfig defines the playfield geometry.
type FieldConfig struct {
	Width      float64 `yaml:"width"`
	Height     float64 `yaml:"height"`
	GroundY    float64 `yaml:"ground_y"`
	FallLimitY float64 `yaml:"fall_limit_y"` // Player top below this counts as a pit fall
	RespawnY   float64 `yaml:"respawn_y"`    // Player top after a pit fall
}

// PhysicsConfig defines player motion and scrolling.
type PhysicsConfig struct {
	Gravity        float64 `yaml:"gravity"`
	JumpImpulse    float64 `yaml:"jump_impulse"`
	AirJumpImpulse float64 `yaml:"air_jump_impulse"`
	MaxFallSpeed   float64 `yaml:"max_fall_speed"`
	BaseScroll     float64 `yaml:"base_scroll"`
}

// PlayerConfig defines the player body and health.
type PlayerConfig struct {
	X                 float64 `yaml:"x"`
	Width             float64 `yaml:"width"`
	Height            float64 `yaml:"height"`
	StartLives        int     `yaml:"start_lives"`
	MaxLives          int     `yaml:"max_lives"`
	InvulnerableTicks int     `yaml:"invulnerable_ticks"`
	JumpBudget        int     `yaml:"jump_budget"`
	PitInset          float64 `yaml:"pit_inset"` // Shrinks the player span for pit detection
}

// SpawnConfig defines procedural spawning probabilities and spacing.
type SpawnConfig struct {
	ObstacleRate    float64 `yaml:"obstacle_rate"`
	BaseDistance    float64 `yaml:"base_distance"`
	DistancePerTier float64 `yaml:"distance_per_tier"`
	MinDistance     float64 `yaml:"min_distance"`
	Gap             float64 `yaml:"gap"`
	PitGap          float64 `yaml:"pit_gap"`
	PitChance       float64 `yaml:"pit_chance"`
	TallChance      float64 `yaml:"tall_chance"`
	SpikeChance     float64 `yaml:"spike_chance"`
	FlyingChance    float64 `yaml:"flying_chance"`
	PromoteChance   float64 `yaml:"promote_chance"`
	CollectibleRate float64 `yaml:"collectible_rate"`
	CollectibleMinY float64 `yaml:"collectible_min_y"`
	CollectibleMaxY float64 `yaml:"collectible_max_y"`
	RiddleRate      float64 `yaml:"riddle_rate"`
	DecorationRate  float64 `yaml:"decoration_rate"`
	MaxDecorations  int     `yaml:"max_decorations"`
}

// EnemyConfig defines per-kind enemy behavior constants.
type EnemyConfig struct {
	WalkerFlipTicks   int     `yaml:"walker_flip_ticks"`
	WalkerSpeed       float64 `yaml:"walker_speed"`
	ShooterInterval   int     `yaml:"shooter_interval"`
	ShotSpeed         float64 `yaml:"shot_speed"`
	FallerTrigger     float64 `yaml:"faller_trigger"`
	FallerGravity     float64 `yaml:"faller_gravity"`
	BouncerAmplitude  float64 `yaml:"bouncer_amplitude"`
	BouncerSpeed      float64 `yaml:"bouncer_speed"`
	DasherTrigger     float64 `yaml:"dasher_trigger"`
	DasherSpeed       float64 `yaml:"dasher_speed"`
	DasherPass        float64 `yaml:"dasher_pass"`
	DasherMaxDistance float64 `yaml:"dasher_max_distance"`
	DasherCooldown    int     `yaml:"dasher_cooldown"`
	ZigMinAmplitude   float64 `yaml:"zig_min_amplitude"`
	ZigMaxAmplitude   float64 `yaml:"zig_max_amplitude"`
	ZigMinSpeed       float64 `yaml:"zig_min_speed"`
	ZigMaxSpeed       float64 `yaml:"zig_max_speed"`
	ZigDrift          float64 `yaml:"zig_drift"`
	TeleMinCooldown   int     `yaml:"tele_min_cooldown"`
	TeleMaxCooldown   int     `yaml:"tele_max_cooldown"`
	TeleFadeRate      float64 `yaml:"tele_fade_rate"`
	TeleMinOffset     float64 `yaml:"tele_min_offset"`
	TeleMaxOffset     float64 `yaml:"tele_max_offset"`
	TeleSolidAlpha    float64 `yaml:"tele_solid_alpha"`
}

// CollisionConfig defines the inward padding applied per pair type.
type CollisionConfig struct {
	ObstaclePadding    float64 `yaml:"obstacle_padding"`
	ProjectilePadding  float64 `yaml:"projectile_padding"`
	CollectiblePadding float64 `yaml:"collectible_padding"`
}

// PowerUpConfig defines timed buff durations and the shooting cadence.
type PowerUpConfig struct {
	TripleJumpTicks   int     `yaml:"triple_jump_ticks"`
	ShootingTicks     int     `yaml:"shooting_ticks"`
	InvulnerableTicks int     `yaml:"invulnerable_ticks"`
	ShotInterval      int     `yaml:"shot_interval"`
	ShotSpeed         float64 `yaml:"shot_speed"`
}

// ScoringConfig defines point rewards.
type ScoringConfig struct {
	CollectPoints int `yaml:"collect_points"`
	DestroyPoints int `yaml:"destroy_points"`
	QuizPoints    int `yaml:"quiz_points"`
}

// LevelsConfig holds per-level tuning.
type LevelsConfig struct {
	Easy   LevelConfig `yaml:"easy"`
	Medium LevelConfig `yaml:"medium"`
	Hard   LevelConfig `yaml:"hard"`
}

// LevelConfig defines how a selected level changes the rules.
type LevelConfig struct {
	SpeedScale     float64 `yaml:"speed_scale"`
	QuizSeconds    int     `yaml:"quiz_seconds"`     // 0 means damage is never gated by a quiz
	BonusLifeEvery int     `yaml:"bonus_life_every"` // Score multiple that grants a life
}

// For returns the tuning for the given level.
func (l LevelsConfig) For(level Level) LevelConfig {
	switch level {
	case LevelMedium:
		return l.Medium
	case LevelHard:
		return l.Hard
	default:
		return l.Easy
	}
}

// Level is the difficulty selected before a run.
type Level string

const (
	LevelEasy   Level = "easy"
	LevelMedium Level = "medium"
	LevelHard   Level = "hard"
)

// Levels lists the selectable levels in menu order.
var Levels = []Level{LevelEasy, LevelMedium, LevelHard}

// ParseLevel converts a user-supplied level name.
func ParseLevel(s string) (Level, error) {
	switch Level(strings.ToLower(strings.TrimSpace(s))) {
	case LevelEasy:
		return LevelEasy, nil
	case LevelMedium, "normal":
		return LevelMedium, nil
	case LevelHard:
		return LevelHard, nil
	default:
		return "", fmt.Errorf("config: unknown level %q (want easy, medium or hard)", s)
	}
}

// GatesDamage reports whether damage at this level is deferred to a quiz.
func (l Level) GatesDamage() bool {
	return l == LevelMedium || l == LevelHard
}

// Title returns the menu label for the level.
func (l Level) Title() string {
	switch l {
	case LevelEasy:
		return "Easy"
	case LevelMedium:
		return "Medium"
	case LevelHard:
		return "Hard"
	default:
		return string(l)
	}
}
