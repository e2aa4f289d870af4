package runner

// Band is the urgency band of a running quiz countdown.
type Band int

const (
	BandOK Band = iota
	BandWarn
	BandDanger
)

// String returns the band name.
func (b Band) String() string {
	switch b {
	case BandOK:
		return "ok"
	case BandWarn:
		return "warn"
	default:
		return "danger"
	}
}

// BandFor maps a remaining fraction to its band.
func BandFor(fraction float64) Band {
	switch {
	case fraction > 0.5:
		return BandOK
	case fraction > 0.25:
		return BandWarn
	default:
		return BandDanger
	}
}

// DamageSource names what caused a hit.
type DamageSource string

const (
	SourcePit        DamageSource = "pit"
	SourceProjectile DamageSource = "projectile"
)

// sourceOf returns the damage source for an obstacle kind.
func sourceOf(k ObstacleKind) DamageSource {
	return DamageSource(k.String())
}

// Quiz is an open quiz instance.
type Quiz struct {
	Kind      QuizKind
	Question  Question
	Total     int // Countdown length in ticks; 0 when untimed
	Remaining int
	Pending   DamageSource // Deferred damage; empty for riddles
}

// QuizView is the overlay-facing view of an open quiz.
type QuizView struct {
	Kind        QuizKind
	Prompt      string
	Art         string
	Choices     []string
	Timed       bool
	Fraction    float64
	Band        Band
	SecondsLeft int
}

// QuizGate holds at most one quiz. Its countdown is an interrupt timer on
// the session scheduler so it keeps running while gameplay is suspended.
type QuizGate struct {
	sched    *Scheduler
	tickRate int

	active *Quiz
	timer  TimerID

	onTick    func(secondsLeft int)
	onTimeout func()
}

// NewQuizGate creates a gate. onTick runs on every whole second left;
// onTimeout runs once when the countdown reaches zero.
func NewQuizGate(sched *Scheduler, tickRate int, onTick func(int), onTimeout func()) *QuizGate {
	if tickRate <= 0 {
		tickRate = 60
	}
	return &QuizGate{
		sched:     sched,
		tickRate:  tickRate,
		onTick:    onTick,
		onTimeout: onTimeout,
	}
}

// Open activates q. Returns false, leaving the current quiz untouched, when
// one is already open.
func (g *QuizGate) Open(q Quiz) bool {
	if g.active != nil {
		return false
	}
	q.Remaining = q.Total
	g.active = &q
	if q.Total > 0 {
		g.timer = g.sched.Every("quiz", ClockInterrupt, 1, g.tick)
	}
	return true
}

func (g *QuizGate) tick() {
	q := g.active
	if q == nil {
		return
	}
	q.Remaining--
	if q.Remaining <= 0 {
		q.Remaining = 0
		g.sched.Cancel(g.timer)
		g.timer = 0
		if g.onTimeout != nil {
			g.onTimeout()
		}
		return
	}
	if q.Remaining%g.tickRate == 0 && g.onTick != nil {
		g.onTick(q.Remaining / g.tickRate)
	}
}

// Close removes the open quiz and stops its countdown.
func (g *QuizGate) Close() (Quiz, bool) {
	if g.active == nil {
		return Quiz{}, false
	}
	q := *g.active
	g.active = nil
	if g.timer != 0 {
		g.sched.Cancel(g.timer)
		g.timer = 0
	}
	return q, true
}

// Active reports whether a quiz is open.
func (g *QuizGate) Active() bool {
	return g.active != nil
}

// Current returns the open quiz.
func (g *QuizGate) Current() (Quiz, bool) {
	if g.active == nil {
		return Quiz{}, false
	}
	return *g.active, true
}

// View returns the overlay view of the open quiz.
func (g *QuizGate) View() (QuizView, bool) {
	q := g.active
	if q == nil {
		return QuizView{}, false
	}
	v := QuizView{
		Kind:     q.Kind,
		Prompt:   q.Question.Prompt,
		Art:      q.Question.Art,
		Choices:  append([]string(nil), q.Question.Choices...),
		Timed:    q.Total > 0,
		Fraction: 1,
		Band:     BandOK,
	}
	if v.Timed {
		v.Fraction = float64(q.Remaining) / float64(q.Total)
		v.Band = BandFor(v.Fraction)
		v.SecondsLeft = (q.Remaining + g.tickRate - 1) / g.tickRate
	}
	return v, true
}
