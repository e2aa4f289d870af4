package runner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/reef-runner/internal/config"
	"github.com/vovakirdan/reef-runner/internal/core"
)

func newPowerRig() (*PowerUpManager, *Scheduler, *[]PowerUpKind, *int) {
	sched := NewScheduler()
	var expired []PowerUpKind
	shots := 0
	pm := NewPowerUpManager(config.DefaultRunnerConfig().PowerUps, sched,
		func(k PowerUpKind) { expired = append(expired, k) },
		func() { shots++ },
	)
	return pm, sched, &expired, &shots
}

func TestPowerUpExpires(t *testing.T) {
	pm, sched, expired, _ := newPowerRig()
	pm.Grant(PowerTripleJump)
	require.Equal(t, 600, pm.Remaining())
	assert.Equal(t, 1.0, pm.Fraction())

	for i := 0; i < 300; i++ {
		sched.Advance(false)
	}
	assert.InDelta(t, 0.5, pm.Fraction(), 1e-9)

	for i := 0; i < 299; i++ {
		sched.Advance(false)
	}
	assert.True(t, pm.Active(PowerTripleJump))
	assert.Empty(t, *expired)

	sched.Advance(false)
	assert.False(t, pm.Any())
	assert.Equal(t, []PowerUpKind{PowerTripleJump}, *expired)

	for i := 0; i < 100; i++ {
		sched.Advance(false)
	}
	assert.Len(t, *expired, 1, "expiry fires once")
	assert.Equal(t, 0, sched.Len())
}

func TestPowerUpReplacement(t *testing.T) {
	pm, sched, expired, _ := newPowerRig()
	pm.Grant(PowerShooting)
	for i := 0; i < 100; i++ {
		sched.Advance(false)
	}

	pm.Grant(PowerInvulnerable)
	assert.Empty(t, *expired, "replacement is silent")
	assert.True(t, pm.Active(PowerInvulnerable))
	assert.False(t, pm.Active(PowerShooting))
	assert.Equal(t, 360, pm.Remaining(), "timer restarts at the new kind's full duration")
	assert.Equal(t, []string{"powerup"}, sched.Names(), "shot cadence stops with the shooting power-up")
}

func TestPowerUpFrozenWhileSuspended(t *testing.T) {
	pm, sched, _, _ := newPowerRig()
	pm.Grant(PowerInvulnerable)
	for i := 0; i < 50; i++ {
		sched.Advance(true)
	}
	assert.Equal(t, 360, pm.Remaining())
}

func TestShootingCadence(t *testing.T) {
	pm, sched, _, shots := newPowerRig()
	pm.Grant(PowerShooting)

	for i := 0; i < 150; i++ {
		sched.Advance(false)
	}
	assert.Equal(t, 10, *shots)

	pm.Clear()
	for i := 0; i < 150; i++ {
		sched.Advance(false)
	}
	assert.Equal(t, 10, *shots)
}

func TestSessionShootingSpawnsProjectiles(t *testing.T) {
	s, rec := startRun(t, quietConfig(), config.LevelEasy)
	s.power.Grant(PowerShooting)

	idle(s, 15)
	require.Len(t, s.projectiles, 1)
	p := s.projectiles[0]
	assert.Equal(t, OwnerPlayer, p.Owner)
	assert.Greater(t, p.VX, 0.0)

	idle(s, 480)
	assert.Equal(t, 1, rec.count(EventPowerUpEnd))
	assert.False(t, s.power.Any())
}

func TestSessionTripleJump(t *testing.T) {
	s, rec := startRun(t, quietConfig(), config.LevelEasy)
	s.power.Grant(PowerTripleJump)

	press(s, core.ActionJump)
	press(s, core.ActionJump)
	press(s, core.ActionJump)
	press(s, core.ActionJump)
	assert.Equal(t, 3, rec.count(EventJump))
}
