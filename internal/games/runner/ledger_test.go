package runner

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLedgerBonusLife(t *testing.T) {
	tests := []struct {
		name      string
		step      int
		lives     int
		points    []int
		wantLives int
		wantBonus int
	}{
		{"easy ten points", 10, 5, []int{1, 1, 1, 1, 1, 1, 1, 1, 1, 1}, 6, 1},
		{"capped at max", 10, 6, []int{10}, 6, 0},
		{"jump over two multiples", 10, 3, []int{25}, 5, 2},
		{"hard not reached", 500, 5, []int{499}, 5, 0},
		{"medium fifty", 50, 4, []int{30, 3, 17}, 5, 1},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			l := NewScoreLedger(tc.lives, 6, tc.step)
			bonus := 0
			for _, p := range tc.points {
				bonus += l.AddScore(p)
			}
			assert.Equal(t, tc.wantLives, l.Lives())
			assert.Equal(t, tc.wantBonus, bonus)
		})
	}
}

func TestLedgerBounds(t *testing.T) {
	l := NewScoreLedger(2, 6, 10)

	l.AddScore(5)
	l.AddScore(-3)
	l.AddScore(0)
	assert.Equal(t, 5, l.Score(), "score never decreases")

	assert.False(t, l.LoseLife())
	assert.True(t, l.LoseLife())
	assert.True(t, l.LoseLife(), "lives stay at zero")
	assert.Equal(t, 0, l.Lives())

	over := NewScoreLedger(9, 6, 10)
	assert.Equal(t, 6, over.Lives())
}
