package tui

import (
	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/reef-runner/internal/games/runner"
)

// LogSink writes every game event to a logger and keeps per-kind counts for
// the end-of-run summary.
type LogSink struct {
	logger *log.Logger
	runID  string
	counts map[runner.EventKind]int
}

// NewLogSink creates a sink for one run. A nil logger only counts.
func NewLogSink(logger *log.Logger) *LogSink {
	return &LogSink{
		logger: logger,
		runID:  uuid.NewString(),
		counts: make(map[runner.EventKind]int),
	}
}

// Emit implements runner.EventSink.
func (s *LogSink) Emit(e runner.Event) {
	s.counts[e.Kind]++
	if s.logger == nil {
		return
	}

	switch e.Kind {
	case runner.EventBankError:
		s.logger.Warn("question bank failed, using arithmetic quizzes", "run", s.runID, "error", e.Detail)
	case runner.EventGameOver, runner.EventSceneChange, runner.EventBonusLife:
		s.logger.Info(string(e.Kind), "run", s.runID, "tick", e.Tick, "detail", e.Detail, "value", e.Value)
	default:
		s.logger.Debug(string(e.Kind), "run", s.runID, "tick", e.Tick, "detail", e.Detail, "value", e.Value)
	}
}

// RunID returns the identifier used to correlate log lines and snapshots.
func (s *LogSink) RunID() string {
	return s.runID
}

// Count returns how many events of kind were emitted.
func (s *LogSink) Count(kind runner.EventKind) int {
	return s.counts[kind]
}

// NewRun starts a fresh run ID and clears the counts.
func (s *LogSink) NewRun() {
	s.runID = uuid.NewString()
	clear(s.counts)
}
