package runner

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/reef-runner/internal/config"
	"github.com/vovakirdan/reef-runner/internal/core"
)

func TestSessionTransitions(t *testing.T) {
	s := NewSession(quietConfig(), core.RuntimeConfig{TickRate: 60, Seed: 1})
	assert.Equal(t, PhaseSelect, s.Phase())

	assert.ErrorIs(t, s.Start(), ErrInvalidTransition)
	assert.ErrorIs(t, s.SelectLevel(config.LevelEasy), ErrInvalidTransition)
	assert.ErrorIs(t, s.Back(), ErrInvalidTransition)
	assert.ErrorIs(t, s.TogglePause(), ErrInvalidTransition)
	assert.ErrorIs(t, s.SelectMode("atlantis"), ErrUnknownMode)
	assert.Equal(t, PhaseSelect, s.Phase())

	require.NoError(t, s.SelectMode(ModeReef))
	assert.Equal(t, PhaseLevel, s.Phase())
	assert.ErrorIs(t, s.SelectMode(ModeReef), ErrInvalidTransition)

	require.NoError(t, s.Back())
	assert.Equal(t, PhaseSelect, s.Phase())
	assert.Empty(t, s.Mode().ID)

	require.NoError(t, s.SelectMode("abyss"))
	require.NoError(t, s.SelectLevel(config.LevelMedium))
	assert.Equal(t, PhaseStart, s.Phase())
	assert.Equal(t, config.LevelMedium, s.Level())

	require.NoError(t, s.Start())
	assert.Equal(t, PhasePlaying, s.Phase())
	assert.Equal(t, "DEEP_OCEAN", s.Scene())
	assert.Equal(t, []string{"scene"}, s.sched.Names())
	assert.ErrorIs(t, s.Start(), ErrInvalidTransition)
}

func TestStepOutsidePlayIsInert(t *testing.T) {
	s := NewSession(quietConfig(), core.RuntimeConfig{TickRate: 60, Seed: 1})
	res := press(s, core.ActionJump)
	assert.Equal(t, "select", res.State.Phase)
	assert.Empty(t, res.Events)
	assert.Equal(t, 0, s.Ticks())
	assert.Equal(t, 5, res.State.Lives)
}

func TestResetCancelsEverything(t *testing.T) {
	s, _ := startRun(t, quietConfig(), config.LevelHard)
	s.power.Grant(PowerShooting)
	place(s, KindBlock, s.player.X)
	idle(s, 1)
	require.True(t, s.quiz.Active())
	require.NotZero(t, s.sched.Len())

	s.Reset()
	assert.Equal(t, PhaseSelect, s.Phase())
	assert.Equal(t, 0, s.sched.Len())
	assert.False(t, s.quiz.Active())
	assert.False(t, s.power.Any())
	assert.Empty(t, s.obstacles)
	assert.Empty(t, s.projectiles)
}

func TestRestartAfterGameOver(t *testing.T) {
	cfg := quietConfig()
	cfg.Player.StartLives = 1
	s, _ := startRun(t, cfg, config.LevelEasy)
	for i := 0; i < 3; i++ {
		s.collectibles = append(s.collectibles, &Collectible{
			Kind: CollectPatty, X: s.player.X, Y: s.player.Y, W: 30, H: 30,
		})
		idle(s, 1)
	}
	place(s, KindBlock, s.player.X)
	idle(s, 1)
	require.Equal(t, PhaseGameOver, s.Phase())
	assert.Equal(t, 3, s.State().Score)

	press(s, core.ActionRestart)
	require.Equal(t, PhaseSelect, s.Phase())

	require.NoError(t, s.SelectMode(ModeReef))
	require.NoError(t, s.SelectLevel(config.LevelEasy))
	require.NoError(t, s.Start())
	st := s.State()
	assert.Equal(t, 0, st.Score)
	assert.Equal(t, 1, st.Lives)
	assert.Equal(t, 0, s.Ticks())
	assert.Equal(t, "BIKINI_BOTTOM", s.Scene())
}

func TestSceneChange(t *testing.T) {
	s, rec := startRun(t, quietConfig(), config.LevelEasy)

	idle(s, 1199)
	assert.Equal(t, 0, rec.count(EventSceneChange))
	assert.Equal(t, "BIKINI_BOTTOM", s.Scene())

	idle(s, 1)
	require.Equal(t, 1, rec.count(EventSceneChange))
	last := rec.events[len(rec.events)-1]
	assert.Equal(t, EventSceneChange, last.Kind)
	assert.Equal(t, "KELP_FOREST", last.Detail)
	assert.InDelta(t, 0.3, s.difficulty.Boost(), 1e-9)

	idle(s, 1200)
	assert.Equal(t, 2, rec.count(EventSceneChange))
	assert.InDelta(t, 0.6, s.difficulty.Boost(), 1e-9)
	assert.Equal(t, "GOO_LAGOON", s.Scene())
}

func TestSceneTimerFreezesDuringQuiz(t *testing.T) {
	s, rec := startRun(t, quietConfig(), config.LevelMedium)
	idle(s, 1000)
	place(s, KindBlock, s.player.X)
	idle(s, 1)
	require.True(t, s.quiz.Active())

	// Longer than the remaining scene time, but the quiz suspends it
	idle(s, 300)
	assert.Equal(t, 0, rec.count(EventSceneChange))
}

func TestPauseFreezesQuiz(t *testing.T) {
	s, rec := startRun(t, quietConfig(), config.LevelHard)
	place(s, KindBlock, s.player.X)
	idle(s, 1)
	require.True(t, s.quiz.Active())
	idle(s, 30)

	res := press(s, core.ActionPause)
	require.True(t, res.State.Paused)
	before, _ := s.quiz.Current()

	idle(s, 1000)
	after, _ := s.quiz.Current()
	assert.Equal(t, before.Remaining, after.Remaining)
	assert.Equal(t, 0, rec.count(EventQuizTimeout))
	assert.ErrorIs(t, s.Answer(before.Question.Correct), ErrInvalidTransition)

	// The unpausing step already counts down
	press(s, core.ActionPause)
	idle(s, 10)
	after, _ = s.quiz.Current()
	assert.Equal(t, before.Remaining-11, after.Remaining)
}

func TestJumpIgnoredDuringQuiz(t *testing.T) {
	s, rec := startRun(t, quietConfig(), config.LevelHard)
	place(s, KindBlock, s.player.X)
	idle(s, 1)
	require.True(t, s.quiz.Active())

	press(s, core.ActionJump)
	assert.Equal(t, 0, rec.count(EventJump))
	assert.False(t, s.jumpQueued)
}

func TestSnapshotCarriesQuiz(t *testing.T) {
	s, _ := startRun(t, quietConfig(), config.LevelHard)
	snap := s.Snapshot()
	assert.Nil(t, snap.Quiz)
	assert.Equal(t, "playing", snap.Phase)
	assert.Equal(t, ModeReef, snap.Mode)

	place(s, KindBlock, s.player.X)
	idle(s, 1)
	snap = s.Snapshot()
	require.NotNil(t, snap.Quiz)
	assert.Equal(t, "quiz", snap.Phase)
	assert.True(t, snap.Quiz.Timed)
	assert.Len(t, snap.Quiz.Choices, 4)
	assert.Equal(t, 5, snap.Quiz.SecondsLeft)
}

func TestSessionsAreDeterministic(t *testing.T) {
	run := func() Snapshot {
		s := NewSession(config.DefaultRunnerConfig(), core.RuntimeConfig{TickRate: 60, Seed: 2024})
		require.NoError(t, s.SelectMode(ModeReef))
		require.NoError(t, s.SelectLevel(config.LevelEasy))
		require.NoError(t, s.Start())
		for i := 0; i < 3000; i++ {
			if i%45 == 0 {
				press(s, core.ActionJump)
			} else {
				idle(s, 1)
			}
		}
		return s.Snapshot()
	}
	assert.Equal(t, run(), run())
}

func TestLongRunKeepsInvariants(t *testing.T) {
	cfg := config.DefaultRunnerConfig()
	cfg.Spawn.ObstacleRate = 0.03
	cfg.Spawn.RiddleRate = 0.01
	s := NewSession(cfg, core.RuntimeConfig{TickRate: 60, Seed: 7})
	rec := &recorder{}
	s.SetEventSink(rec)
	require.NoError(t, s.SelectMode(ModeReef))
	require.NoError(t, s.SelectLevel(config.LevelHard))
	require.NoError(t, s.Start())

	input := rand.New(rand.NewSource(7))
	lastScore := 0
	for i := 0; i < 20000 && s.Phase() == PhasePlaying; i++ {
		in := core.NewInputFrame()
		switch {
		case s.quiz.Active() && input.Intn(40) == 0:
			in.Set(core.AnswerActions[input.Intn(4)])
		case input.Intn(20) == 0:
			in.Set(core.ActionJump)
		}
		res := s.Step(in)

		require.GreaterOrEqual(t, res.State.Lives, 0)
		require.LessOrEqual(t, res.State.Lives, cfg.Player.MaxLives)
		require.GreaterOrEqual(t, res.State.Score, lastScore, "score decreased at step %d", i)
		lastScore = res.State.Score

		if s.power.Any() {
			require.LessOrEqual(t, s.power.Remaining(), s.power.Duration(s.power.Kind()))
		}
	}

	opens := rec.count(EventQuizOpen)
	closes := rec.count(EventQuizCorrect) + rec.count(EventQuizWrong)
	if s.quiz.Active() {
		closes++
	}
	assert.Equal(t, opens, closes, "every quiz resolves exactly once")
}
