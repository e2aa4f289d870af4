package runner

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/reef-runner/internal/config"
	"github.com/vovakirdan/reef-runner/internal/core"
)

// quietConfig returns defaults with every random spawn disabled so tests
// control the field contents.
func quietConfig() config.RunnerConfig {
	cfg := config.DefaultRunnerConfig()
	cfg.Spawn.ObstacleRate = 0
	cfg.Spawn.CollectibleRate = 0
	cfg.Spawn.RiddleRate = 0
	cfg.Spawn.DecorationRate = 0
	return cfg
}

type recorder struct {
	events []Event
}

func (r *recorder) Emit(e Event) {
	r.events = append(r.events, e)
}

func (r *recorder) count(kind EventKind) int {
	n := 0
	for _, e := range r.events {
		if e.Kind == kind {
			n++
		}
	}
	return n
}

// startRun returns a playing session at level with a recording sink.
func startRun(t *testing.T, cfg config.RunnerConfig, level config.Level) (*Session, *recorder) {
	t.Helper()
	s := NewSession(cfg, core.RuntimeConfig{TickRate: 60, Seed: 42})
	rec := &recorder{}
	s.SetEventSink(rec)
	require.NoError(t, s.SelectMode(ModeReef))
	require.NoError(t, s.SelectLevel(level))
	require.NoError(t, s.Start())
	return s, rec
}

// place puts an obstacle of kind at x on the field.
func place(s *Session, kind ObstacleKind, x float64) *Obstacle {
	o := s.spawner.NewObstacle(kind, x)
	s.obstacles = append(s.obstacles, o)
	return o
}

// idle steps the session n times with no input.
func idle(s *Session, n int) {
	for i := 0; i < n; i++ {
		s.Step(core.NewInputFrame())
	}
}

func press(s *Session, a core.Action) StepResult {
	in := core.NewInputFrame()
	in.Set(a)
	return s.Step(in)
}
