package runner

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strconv"

	"github.com/vovakirdan/reef-runner/internal/config"
	"github.com/vovakirdan/reef-runner/internal/storage"
)

// QuizKind identifies the flavor of a quiz.
type QuizKind int

const (
	QuizMath QuizKind = iota
	QuizPicture
	QuizTrivia
	QuizRiddle
)

// String returns the quiz kind name, matching the question bank's kinds.
func (k QuizKind) String() string {
	switch k {
	case QuizMath:
		return "math"
	case QuizPicture:
		return "picture"
	case QuizTrivia:
		return "trivia"
	case QuizRiddle:
		return "riddle"
	default:
		return "unknown"
	}
}

// Question is one multiple-choice prompt.
type Question struct {
	Prompt  string
	Art     string // Optional picture shown above the prompt
	Choices []string
	Correct int
}

// QuestionBank supplies stored questions by kind.
type QuestionBank interface {
	Random(ctx context.Context, kind string) (storage.Question, error)
}

// Deck draws questions for quizzes. Math questions are generated; the other
// kinds come from the bank and fall back to math when the bank is missing
// or has nothing of that kind.
type Deck struct {
	rng  *rand.Rand
	bank QuestionBank
}

// NewDeck creates a deck. bank may be nil.
func NewDeck(rng *rand.Rand, bank QuestionBank) *Deck {
	return &Deck{rng: rng, bank: bank}
}

// DamageKind picks the kind of quiz that gates a hit: math half of the time,
// otherwise picture or trivia.
func (d *Deck) DamageKind() QuizKind {
	switch r := d.rng.Intn(4); r {
	case 0:
		return QuizPicture
	case 1:
		return QuizTrivia
	default:
		return QuizMath
	}
}

// Draw returns a question for kind at the given level. Kinds the bank
// cannot serve fall back to arithmetic. The returned error reports a bank
// failure behind that fallback; a kind with no stored questions is not one.
func (d *Deck) Draw(kind QuizKind, level config.Level) (Question, error) {
	if kind == QuizMath || d.bank == nil {
		return MathQuestion(d.rng, level), nil
	}

	stored, err := d.bank.Random(context.Background(), kind.String())
	switch {
	case errors.Is(err, storage.ErrNoQuestions):
		return MathQuestion(d.rng, level), nil
	case err != nil:
		return MathQuestion(d.rng, level), fmt.Errorf("runner: draw %s question: %w", kind, err)
	case stored.Answer < 0 || stored.Answer >= len(stored.Choices):
		return MathQuestion(d.rng, level), fmt.Errorf("runner: %s question %d: answer %d out of range", kind, stored.ID, stored.Answer)
	}
	return Question{
		Prompt:  stored.Prompt,
		Art:     stored.Art,
		Choices: append([]string(nil), stored.Choices...),
		Correct: stored.Answer,
	}, nil
}

// MathQuestion generates an arithmetic question with four distinct choices.
// Operand ranges and operators grow with the level.
func MathQuestion(r *rand.Rand, level config.Level) Question {
	var a, b, ans int
	var op string

	switch level {
	case config.LevelHard:
		a = 2 + r.Intn(18)
		b = 2 + r.Intn(18)
		switch r.Intn(4) {
		case 0:
			op, ans = "+", a+b
		case 1:
			op, ans = "-", a-b
		case 2:
			op, ans = "×", a*b
		default:
			// Keep division exact
			ans = a
			a = a * b
			op = "÷"
		}
	case config.LevelMedium:
		a = 1 + r.Intn(20)
		b = 1 + r.Intn(20)
		switch r.Intn(3) {
		case 0:
			op, ans = "+", a+b
		case 1:
			op, ans = "-", a-b
		default:
			a, b = 1+r.Intn(10), 1+r.Intn(10)
			op, ans = "×", a*b
		}
	default:
		a = 1 + r.Intn(12)
		b = 1 + r.Intn(12)
		if r.Intn(2) == 0 {
			op, ans = "+", a+b
		} else {
			op, ans = "-", a-b
		}
	}

	choices, correct := mathChoices(r, ans)
	return Question{
		Prompt:  fmt.Sprintf("%d %s %d = ?", a, op, b),
		Choices: choices,
		Correct: correct,
	}
}

// mathChoices builds four distinct answers around ans, shuffled.
func mathChoices(r *rand.Rand, ans int) ([]string, int) {
	values := []int{ans}
	seen := map[int]bool{ans: true}
	for len(values) < 4 {
		delta := 1 + r.Intn(10)
		if r.Intn(2) == 0 {
			delta = -delta
		}
		v := ans + delta
		if seen[v] {
			continue
		}
		seen[v] = true
		values = append(values, v)
	}

	r.Shuffle(len(values), func(i, j int) {
		values[i], values[j] = values[j], values[i]
	})

	choices := make([]string, len(values))
	correct := 0
	for i, v := range values {
		choices[i] = strconv.Itoa(v)
		if v == ans {
			correct = i
		}
	}
	return choices, correct
}
