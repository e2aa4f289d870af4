package runner

import (
	"context"
	"errors"
	"math/rand"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/reef-runner/internal/config"
	"github.com/vovakirdan/reef-runner/internal/storage"
)

func TestBandFor(t *testing.T) {
	tests := []struct {
		fraction float64
		want     Band
	}{
		{1, BandOK},
		{0.51, BandOK},
		{0.5, BandWarn},
		{0.26, BandWarn},
		{0.25, BandDanger},
		{0, BandDanger},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, BandFor(tc.fraction), "fraction %v", tc.fraction)
	}
}

func TestQuizGateCountdown(t *testing.T) {
	sched := NewScheduler()
	var ticks []int
	timeouts := 0
	g := NewQuizGate(sched, 60, func(left int) { ticks = append(ticks, left) }, func() { timeouts++ })

	require.True(t, g.Open(Quiz{Kind: QuizMath, Total: 180}))
	assert.False(t, g.Open(Quiz{Kind: QuizTrivia, Total: 180}), "second quiz is rejected")
	q, _ := g.Current()
	assert.Equal(t, QuizMath, q.Kind)

	for i := 0; i < 179; i++ {
		sched.Advance(true)
	}
	assert.Equal(t, []int{2, 1}, ticks)
	assert.Equal(t, 0, timeouts)

	v, ok := g.View()
	require.True(t, ok)
	assert.Equal(t, BandDanger, v.Band)
	assert.Equal(t, 1, v.SecondsLeft)

	sched.Advance(true)
	assert.Equal(t, 1, timeouts)
	assert.Equal(t, 0, sched.Len())
}

func TestQuizGateUntimed(t *testing.T) {
	sched := NewScheduler()
	g := NewQuizGate(sched, 60, nil, nil)
	require.True(t, g.Open(Quiz{Kind: QuizRiddle}))
	assert.Equal(t, 0, sched.Len())

	v, _ := g.View()
	assert.False(t, v.Timed)
	assert.Equal(t, 1.0, v.Fraction)

	_, ok := g.Close()
	assert.True(t, ok)
	_, ok = g.Close()
	assert.False(t, ok)
}

func TestMathQuestion(t *testing.T) {
	r := rand.New(rand.NewSource(17))
	for _, level := range []config.Level{config.LevelEasy, config.LevelMedium, config.LevelHard} {
		for i := 0; i < 500; i++ {
			q := MathQuestion(r, level)
			require.Len(t, q.Choices, 4)

			seen := map[string]bool{}
			for _, c := range q.Choices {
				require.False(t, seen[c], "duplicate choice in %q: %v", q.Prompt, q.Choices)
				seen[c] = true
			}

			var a, b int
			var op string
			fields := strings.Fields(q.Prompt)
			require.Len(t, fields, 5, q.Prompt)
			a, _ = strconv.Atoi(fields[0])
			op = fields[1]
			b, _ = strconv.Atoi(fields[2])

			var want int
			switch op {
			case "+":
				want = a + b
			case "-":
				want = a - b
			case "×":
				want = a * b
			case "÷":
				require.Zero(t, a%b, "division must be exact: %s", q.Prompt)
				want = a / b
			default:
				t.Fatalf("unexpected operator in %q", q.Prompt)
			}
			assert.Equal(t, strconv.Itoa(want), q.Choices[q.Correct], q.Prompt)
			if level != config.LevelHard {
				assert.NotEqual(t, "÷", op)
			}
		}
	}
}

type fakeBank struct {
	questions map[string]storage.Question
	err       error
}

func (f fakeBank) Random(_ context.Context, kind string) (storage.Question, error) {
	if f.err != nil {
		return storage.Question{}, f.err
	}
	q, ok := f.questions[kind]
	if !ok {
		return storage.Question{}, storage.ErrNoQuestions
	}
	return q, nil
}

func TestDeckDraw(t *testing.T) {
	bank := fakeBank{questions: map[string]storage.Question{
		"trivia": {Kind: "trivia", Prompt: "Where does the fry cook work?", Choices: []string{"Krusty Krab", "Chum Bucket"}, Answer: 0},
		"riddle": {ID: 7, Kind: "riddle", Prompt: "broken", Choices: []string{"a"}, Answer: 3},
	}}
	d := NewDeck(rand.New(rand.NewSource(1)), bank)

	q, err := d.Draw(QuizTrivia, config.LevelMedium)
	require.NoError(t, err)
	assert.Equal(t, "Where does the fry cook work?", q.Prompt)
	assert.Equal(t, 0, q.Correct)

	// A kind with nothing stored falls back quietly
	q, err = d.Draw(QuizPicture, config.LevelMedium)
	assert.NoError(t, err)
	assert.Contains(t, q.Prompt, "= ?")

	// A malformed entry falls back and says why
	q, err = d.Draw(QuizRiddle, config.LevelMedium)
	assert.ErrorContains(t, err, "question 7")
	assert.Contains(t, q.Prompt, "= ?")

	q, err = NewDeck(rand.New(rand.NewSource(1)), nil).Draw(QuizTrivia, config.LevelEasy)
	assert.NoError(t, err)
	assert.Len(t, q.Choices, 4)
}

func TestDeckDrawReportsBankFailure(t *testing.T) {
	broken := errors.New("database is locked")
	d := NewDeck(rand.New(rand.NewSource(1)), fakeBank{err: broken})

	q, err := d.Draw(QuizTrivia, config.LevelMedium)
	require.ErrorIs(t, err, broken)
	assert.Contains(t, q.Prompt, "= ?", "the quiz still opens with arithmetic")
	assert.Len(t, q.Choices, 4)

	_, err = d.Draw(QuizMath, config.LevelMedium)
	assert.NoError(t, err, "math never touches the bank")
}

func TestSessionReportsBankFailureOnce(t *testing.T) {
	s, rec := startRun(t, quietConfig(), config.LevelMedium)
	s.SetQuestionBank(fakeBank{err: errors.New("disk I/O error")})

	for i := 0; i < 20; i++ {
		require.True(t, s.openQuiz(QuizTrivia, SourcePit))
		s.quiz.Close()
	}
	assert.Equal(t, 5, s.ledger.Lives())
	assert.Equal(t, 1, rec.count(EventBankError))
	for _, e := range rec.events {
		if e.Kind == EventBankError {
			assert.Contains(t, e.Detail, "disk I/O error")
		}
	}

	s.Reset()
	require.NoError(t, s.SelectMode(ModeReef))
	require.NoError(t, s.SelectLevel(config.LevelMedium))
	require.NoError(t, s.Start())
	require.True(t, s.openQuiz(QuizTrivia, SourcePit))
	assert.Equal(t, 2, rec.count(EventBankError), "a new run warns again")
}

func TestDeckDamageKindMix(t *testing.T) {
	d := NewDeck(rand.New(rand.NewSource(9)), nil)
	counts := map[QuizKind]int{}
	for i := 0; i < 8000; i++ {
		counts[d.DamageKind()]++
	}
	assert.InDelta(t, 4000, counts[QuizMath], 300)
	assert.InDelta(t, 2000, counts[QuizPicture], 250)
	assert.InDelta(t, 2000, counts[QuizTrivia], 250)
	assert.Zero(t, counts[QuizRiddle], "riddles never gate damage")
}
