package runner

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/reef-runner/internal/config"
)

func TestSpawnDistance(t *testing.T) {
	sd := NewSpawnDirector(config.DefaultRunnerConfig(), rand.New(rand.NewSource(1)))

	tests := []struct {
		tier int
		want float64
	}{
		{0, 300},
		{1, 270},
		{2, 240},
		{3, 210},
		{5, 180},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, sd.SpawnDistance(tc.tier), "tier %d", tc.tier)
	}
}

func TestSpawnRespectsDistanceRule(t *testing.T) {
	cfg := config.DefaultRunnerConfig()
	cfg.Spawn.ObstacleRate = 1
	sd := NewSpawnDirector(cfg, rand.New(rand.NewSource(7)))

	var first *Obstacle
	for i := 0; i < 50 && first == nil; i++ {
		first = sd.MaybeObstacle(nil, 0, 1)
	}
	require.NotNil(t, first)
	existing := []*Obstacle{first}

	assert.Nil(t, sd.MaybeObstacle(existing, 0, 1), "last obstacle still at the right edge")

	first.X = cfg.Field.Width - 301
	var second *Obstacle
	for i := 0; i < 50 && second == nil; i++ {
		second = sd.MaybeObstacle(existing, 0, 1)
	}
	assert.NotNil(t, second)
}

func TestSpawnKeepsGaps(t *testing.T) {
	cfg := config.DefaultRunnerConfig()
	cfg.Spawn.ObstacleRate = 1
	// Only the gap rule may reject a candidate
	cfg.Spawn.BaseDistance = 0
	cfg.Spawn.MinDistance = 0
	rng := rand.New(rand.NewSource(99))
	sd := NewSpawnDirector(cfg, rng)

	for trial := 0; trial < 2000; trial++ {
		sd.Reset()
		var existing []*Obstacle
		for n := 0; n < 3; n++ {
			kind := KindBlock
			if rng.Intn(3) == 0 {
				kind = KindPit
			}
			existing = append(existing, &Obstacle{Kind: kind, X: 500 + rng.Float64()*300, W: 40})
		}

		o := sd.MaybeObstacle(existing, 3, 1)
		if o == nil {
			continue
		}
		for _, e := range existing {
			gap := cfg.Spawn.Gap
			if o.Kind == KindPit || e.Kind == KindPit {
				gap = cfg.Spawn.PitGap
			}
			require.GreaterOrEqual(t, math.Abs(o.X-e.X), gap, "%s spawned %.0f px from %s", o.Kind, math.Abs(o.X-e.X), e.Kind)
		}
	}
}

func TestSpawnDistanceUsesLiveObstacles(t *testing.T) {
	cfg := config.DefaultRunnerConfig()
	cfg.Spawn.ObstacleRate = 1
	sd := NewSpawnDirector(cfg, rand.New(rand.NewSource(11)))

	first := sd.MaybeObstacle(nil, 0, 1)
	require.NotNil(t, first)
	first.X = 790

	older := &Obstacle{Kind: KindBlock, X: 700, W: 40}
	assert.Nil(t, sd.MaybeObstacle([]*Obstacle{older, first}, 0, 1), "last spawn still close to the edge")

	// first was destroyed: the newest live obstacle becomes the reference
	assert.Nil(t, sd.MaybeObstacle([]*Obstacle{older}, 0, 1), "older obstacle still close to the edge")

	older.X = 400
	assert.NotNil(t, sd.MaybeObstacle([]*Obstacle{older}, 0, 1))
}

func TestSpawnResumesAfterShotKillsLastSpawn(t *testing.T) {
	cfg := quietConfig()
	cfg.Spawn.ObstacleRate = 1
	s, rec := startRun(t, cfg, config.LevelEasy)

	block := place(s, KindBlock, 790)
	s.spawner.last = block
	s.projectiles = append(s.projectiles, &Projectile{
		Owner: OwnerPlayer, X: block.X - 5, Y: block.Y, W: 10, H: block.H,
	})

	idle(s, 1)
	require.Equal(t, 1, rec.count(EventDestroyReward))
	require.Empty(t, s.obstacles)

	idle(s, 1)
	require.Len(t, s.obstacles, 1, "spawning resumes once the last spawn is gone")
	assert.Equal(t, cfg.Field.Width, s.obstacles[0].X)
}

func TestShootingRunKeepsSpawning(t *testing.T) {
	cfg := quietConfig()
	cfg.Spawn.ObstacleRate = 0.05
	// Obstacles and enemy shots cannot reach the player, so the run never ends
	cfg.Collision.ObstaclePadding = 1000
	cfg.Collision.ProjectilePadding = 1000
	cfg.Spawn.PitChance = 0
	s, rec := startRun(t, cfg, config.LevelEasy)

	const ticks = 6000
	seen := map[*Obstacle]bool{}
	spawned, lastSpawn := 0, 0
	for i := 1; i <= ticks; i++ {
		if !s.power.Active(PowerShooting) {
			s.power.Grant(PowerShooting)
		}
		idle(s, 1)
		require.Equal(t, PhasePlaying, s.Phase())

		for _, n := range s.obstacles {
			if seen[n] {
				continue
			}
			seen[n] = true
			spawned++
			lastSpawn = i
			for _, o := range s.obstacles {
				if o == n || !seen[o] {
					continue
				}
				gap := cfg.Spawn.Gap
				if o.Kind == KindPit || n.Kind == KindPit {
					gap = cfg.Spawn.PitGap
				}
				require.GreaterOrEqual(t, math.Abs(n.X-o.X), gap, "tick %d: %s spawned %.0f px from %s", i, n.Kind, math.Abs(n.X-o.X), o.Kind)
			}
		}
	}

	assert.Positive(t, rec.count(EventDestroyReward), "shots should destroy obstacles")
	assert.GreaterOrEqual(t, spawned, 20)
	assert.Greater(t, lastSpawn, ticks-1000, "obstacles still spawn late in the run")
}

func TestRollKindRespectsTier(t *testing.T) {
	cfg := config.DefaultRunnerConfig()
	sd := NewSpawnDirector(cfg, rand.New(rand.NewSource(3)))

	allowed := func(tier int) map[ObstacleKind]bool {
		m := map[ObstacleKind]bool{
			KindBlock: true, KindTallBlock: true, KindSpike: true, KindFlying: true, KindPit: true,
		}
		for _, k := range UnlockedKinds(tier) {
			m[k] = true
		}
		return m
	}

	for tier := 0; tier <= 3; tier++ {
		ok := allowed(tier)
		seen := map[ObstacleKind]bool{}
		for i := 0; i < 5000; i++ {
			k := sd.rollKind(tier)
			require.True(t, ok[k], "tier %d rolled locked kind %s", tier, k)
			seen[k] = true
		}
		for _, k := range UnlockedKinds(tier) {
			assert.True(t, seen[k], "tier %d never promoted to %s", tier, k)
		}
	}
}

func TestObstacleShapes(t *testing.T) {
	cfg := config.DefaultRunnerConfig()
	sd := NewSpawnDirector(cfg, rand.New(rand.NewSource(5)))

	for k := KindBlock; k <= KindTeleporter; k++ {
		o := sd.NewObstacle(k, cfg.Field.Width)
		assert.Equal(t, cfg.Field.Width, o.X)
		assert.Positive(t, o.W, "%s width", k)
		assert.Positive(t, o.H, "%s height", k)
		if k != KindPit {
			assert.LessOrEqual(t, o.Y+o.H, cfg.Field.GroundY, "%s must not sink into the ground", k)
		}
		assert.Equal(t, k == KindTeleporter, o.Teleport != nil)
		assert.Equal(t, k == KindDasher, o.Dasher != nil)
		assert.Equal(t, k == KindGroundWalker, o.Walker != nil)
	}
}

func TestDecorationCap(t *testing.T) {
	cfg := config.DefaultRunnerConfig()
	cfg.Spawn.DecorationRate = 1
	sd := NewSpawnDirector(cfg, rand.New(rand.NewSource(1)))

	assert.NotNil(t, sd.MaybeDecoration(7))
	assert.Nil(t, sd.MaybeDecoration(8))
}

func TestRiddleOrbSuppressed(t *testing.T) {
	cfg := config.DefaultRunnerConfig()
	cfg.Spawn.RiddleRate = 1
	sd := NewSpawnDirector(cfg, rand.New(rand.NewSource(1)))

	assert.Nil(t, sd.MaybeRiddleOrb(true))
	orb := sd.MaybeRiddleOrb(false)
	require.NotNil(t, orb)
	assert.Equal(t, CollectRiddleOrb, orb.Kind)
}
