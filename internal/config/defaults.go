package config

import (
	_ "embed"
)

//go:embed defaults/runner.yaml
var defaultRunnerYAML []byte

// DefaultRunnerConfig returns the built-in runner configuration.
// It mirrors defaults/runner.yaml and is used when the embedded file cannot be parsed.
func DefaultRunnerConfig() RunnerConfig {
	return RunnerConfig{
		Field: FieldConfig{
			Width:      800,
			Height:     450,
			GroundY:    400,
			FallLimitY: 480,
			RespawnY:   250,
		},
		Physics: PhysicsConfig{
			Gravity:        0.4,
			JumpImpulse:    -14,
			AirJumpImpulse: -11,
			MaxFallSpeed:   16,
			BaseScroll:     3,
		},
		Player: PlayerConfig{
			X:                 100,
			Width:             50,
			Height:            50,
			StartLives:        5,
			MaxLives:          6,
			InvulnerableTicks: 60, // 1 second
			JumpBudget:        2,
			PitInset:          10,
		},
		Spawn: SpawnConfig{
			ObstacleRate:    0.01,
			BaseDistance:    300,
			DistancePerTier: 30,
			MinDistance:     180,
			Gap:             150,
			PitGap:          200,
			PitChance:       0.15,
			TallChance:      0.20,
			SpikeChance:     0.20,
			FlyingChance:    0.15,
			PromoteChance:   0.35,
			CollectibleRate: 0.01,
			CollectibleMinY: 200,
			CollectibleMaxY: 250,
			RiddleRate:      0.0015,
			DecorationRate:  0.005,
			MaxDecorations:  8,
		},
		Enemies: EnemyConfig{
			WalkerFlipTicks:   90,
			WalkerSpeed:       1,
			ShooterInterval:   120,
			ShotSpeed:         5,
			FallerTrigger:     120,
			FallerGravity:     0.5,
			BouncerAmplitude:  60,
			BouncerSpeed:      0.06,
			DasherTrigger:     250,
			DasherSpeed:       8,
			DasherPass:        100,
			DasherMaxDistance: 450,
			DasherCooldown:    120,
			ZigMinAmplitude:   30,
			ZigMaxAmplitude:   70,
			ZigMinSpeed:       0.03,
			ZigMaxSpeed:       0.08,
			ZigDrift:          0.6,
			TeleMinCooldown:   90,
			TeleMaxCooldown:   180,
			TeleFadeRate:      0.05,
			TeleMinOffset:     150,
			TeleMaxOffset:     300,
			TeleSolidAlpha:    0.3,
		},
		Collision: CollisionConfig{
			ObstaclePadding:    12,
			ProjectilePadding:  2,
			CollectiblePadding: 0,
		},
		PowerUps: PowerUpConfig{
			TripleJumpTicks:   600, // 10 seconds
			ShootingTicks:     480, // 8 seconds
			InvulnerableTicks: 360, // 6 seconds
			ShotInterval:      15,
			ShotSpeed:         9,
		},
		Scoring: ScoringConfig{
			CollectPoints: 1,
			DestroyPoints: 1,
			QuizPoints:    3,
		},
		Levels: LevelsConfig{
			Easy:   LevelConfig{SpeedScale: 0.8, QuizSeconds: 0, BonusLifeEvery: 10},
			Medium: LevelConfig{SpeedScale: 1.0, QuizSeconds: 10, BonusLifeEvery: 50},
			Hard:   LevelConfig{SpeedScale: 1.3, QuizSeconds: 5, BonusLifeEvery: 500},
		},
		Difficulty: DifficultyConfig{
			RampTicks:     9000, // 2.5 minutes at 60fps
			CurveGain:     2.0,
			MinMultiplier: 1.0,
			MaxMultiplier: 3.0,
			TierSeconds:   []int{20, 60, 120},
			SceneTicks:    1200, // 20 seconds
			SceneBoost:    0.3,
		},
	}
}

// DefaultRunnerYAML returns the embedded default YAML.
func DefaultRunnerYAML() []byte {
	return defaultRunnerYAML
}
