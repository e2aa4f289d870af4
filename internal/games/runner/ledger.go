package runner

// ScoreLedger holds score and lives. Score never decreases and lives stay
// within [0, max].
type ScoreLedger struct {
	score     int
	lives     int
	maxLives  int
	bonusStep int // Score multiple that grants a bonus life
}

// NewScoreLedger creates a ledger with the starting lives.
func NewScoreLedger(lives, maxLives, bonusStep int) ScoreLedger {
	if lives > maxLives {
		lives = maxLives
	}
	return ScoreLedger{lives: lives, maxLives: maxLives, bonusStep: bonusStep}
}

// Score returns the current score.
func (l *ScoreLedger) Score() int { return l.score }

// Lives returns the remaining lives.
func (l *ScoreLedger) Lives() int { return l.lives }

// AddScore adds non-negative points and returns the number of bonus lives
// granted by crossing multiples of the bonus step.
func (l *ScoreLedger) AddScore(points int) int {
	if points <= 0 {
		return 0
	}
	before := l.score
	l.score += points
	if l.bonusStep <= 0 {
		return 0
	}

	crossed := l.score/l.bonusStep - before/l.bonusStep
	granted := 0
	for i := 0; i < crossed && l.lives < l.maxLives; i++ {
		l.lives++
		granted++
	}
	return granted
}

// LoseLife removes one life. Returns true when no lives remain.
func (l *ScoreLedger) LoseLife() bool {
	if l.lives > 0 {
		l.lives--
	}
	return l.lives == 0
}
