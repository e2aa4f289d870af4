package runner

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/reef-runner/internal/config"
)

type enemyRig struct {
	cfg    config.RunnerConfig
	spawn  *SpawnDirector
	enemy  *EnemyController
	player Player
}

func newEnemyRig() *enemyRig {
	cfg := config.DefaultRunnerConfig()
	rng := rand.New(rand.NewSource(11))
	r := &enemyRig{cfg: cfg, spawn: NewSpawnDirector(cfg, rng)}
	r.enemy = NewEnemyController(cfg, rng, r.spawn)
	NewPhysicsController(cfg).ResetPlayer(&r.player)
	return r
}

func TestDasherDashAndCooldown(t *testing.T) {
	r := newEnemyRig()
	d := r.spawn.NewObstacle(KindDasher, 300)

	r.enemy.Update(d, &r.player)
	require.True(t, d.Dasher.Dashing, "player within trigger range")
	assert.Equal(t, -1.0, d.Dasher.Dir)

	ticks := 0
	for d.Dasher.Dashing {
		r.enemy.Update(d, &r.player)
		ticks++
		require.Less(t, ticks, 100)
	}
	assert.LessOrEqual(t, d.Rect().CenterX(), r.player.Rect().CenterX()-100, "dash ends past the player")
	assert.Equal(t, 120, d.Dasher.Cooldown)

	for i := 0; i < 120; i++ {
		r.enemy.Update(d, &r.player)
		require.False(t, d.Dasher.Dashing, "no dash during cooldown (tick %d)", i)
	}

	r.enemy.Update(d, &r.player)
	assert.True(t, d.Dasher.Dashing, "dashes again once the cooldown ends")
	assert.Equal(t, 1.0, d.Dasher.Dir)
}

func TestDasherMaxDistance(t *testing.T) {
	r := newEnemyRig()
	d := r.spawn.NewObstacle(KindDasher, 300)

	r.enemy.Update(d, &r.player)
	require.True(t, d.Dasher.Dashing)

	// Player far behind: the dash can never get past it
	r.player.X = -2000
	startX := d.X
	for d.Dasher.Dashing {
		r.enemy.Update(d, &r.player)
	}
	assert.GreaterOrEqual(t, startX-d.X, r.cfg.Enemies.DasherMaxDistance)
	assert.Equal(t, r.cfg.Enemies.DasherCooldown, d.Dasher.Cooldown)
}

func TestTeleporterCycle(t *testing.T) {
	r := newEnemyRig()
	o := r.spawn.NewObstacle(KindTeleporter, 600)
	tp := o.Teleport
	tp.Cooldown = 1

	r.enemy.Update(o, &r.player)
	require.Equal(t, TeleFadeOut, tp.Phase)

	for tp.Phase == TeleFadeOut {
		r.enemy.Update(o, &r.player)
	}
	assert.Equal(t, TeleFadeIn, tp.Phase)
	assert.Equal(t, 0.0, tp.Alpha)
	offset := o.X - r.player.X
	assert.GreaterOrEqual(t, offset, 150.0)
	assert.LessOrEqual(t, offset, 300.0)

	for tp.Phase == TeleFadeIn {
		r.enemy.Update(o, &r.player)
	}
	assert.Equal(t, TeleVisible, tp.Phase)
	assert.Equal(t, 1.0, tp.Alpha)
	assert.GreaterOrEqual(t, tp.Cooldown, 90)
	assert.LessOrEqual(t, tp.Cooldown, 180)
}

func TestTeleporterSolidity(t *testing.T) {
	o := &Obstacle{Kind: KindTeleporter, Teleport: &TeleportState{Alpha: 0.2}}
	assert.False(t, o.Solid(0.3))
	o.Teleport.Alpha = 0.3
	assert.True(t, o.Solid(0.3))
	assert.False(t, (&Obstacle{Kind: KindPit}).Solid(0.3))
}

func TestShooterFires(t *testing.T) {
	r := newEnemyRig()
	o := r.spawn.NewObstacle(KindShooter, 500)

	var shots []*Projectile
	for i := 0; i < 240; i++ {
		if p := r.enemy.Update(o, &r.player); p != nil {
			shots = append(shots, p)
		}
	}
	require.Len(t, shots, 2)
	assert.Equal(t, OwnerEnemy, shots[0].Owner)
	assert.Less(t, shots[0].VX, 0.0)
}

func TestWalkerFlips(t *testing.T) {
	r := newEnemyRig()
	o := r.spawn.NewObstacle(KindGroundWalker, 500)

	for i := 0; i < 89; i++ {
		r.enemy.Update(o, &r.player)
	}
	assert.Equal(t, -1.0, o.Walker.Dir)
	r.enemy.Update(o, &r.player)
	assert.Equal(t, 1.0, o.Walker.Dir)
}

func TestFallerTriggersAndLeaves(t *testing.T) {
	r := newEnemyRig()
	o := r.spawn.NewObstacle(KindFalling, 600)

	r.enemy.Update(o, &r.player)
	assert.False(t, o.Faller.Active, "far from the player")

	o.X = r.player.X
	for i := 0; i < 200 && !r.enemy.Gone(o); i++ {
		r.enemy.Update(o, &r.player)
	}
	assert.True(t, o.Faller.Active)
	assert.True(t, r.enemy.Gone(o), "removed once below the field")
}

func TestBouncerStaysAboveGround(t *testing.T) {
	r := newEnemyRig()
	o := r.spawn.NewObstacle(KindBouncer, 600)

	for i := 0; i < 500; i++ {
		r.enemy.Update(o, &r.player)
		require.LessOrEqual(t, o.Y+o.H, r.cfg.Field.GroundY)
	}
}

func TestStaticHazardsOnlyScroll(t *testing.T) {
	r := newEnemyRig()

	for _, k := range []ObstacleKind{KindBlock, KindTallBlock, KindSpike, KindFlying, KindPit} {
		o := r.spawn.NewObstacle(k, 500)
		x, y := o.X, o.Y
		for i := 0; i < 200; i++ {
			assert.Nil(t, r.enemy.Update(o, &r.player), "%s never fires", k)
		}
		assert.Equal(t, x, o.X, "%s x", k)
		assert.Equal(t, y, o.Y, "%s y", k)
		assert.Equal(t, 200, o.Age, "%s age", k)
	}
}
