// Package runner implements the side-scrolling runner simulation: the
// session state machine, physics, spawning, enemy behavior, collisions,
// power-ups and the quiz gate that defers damage.
package runner

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/vovakirdan/reef-runner/internal/config"
	"github.com/vovakirdan/reef-runner/internal/core"
	"github.com/vovakirdan/reef-runner/internal/registry"
)

var (
	// ErrInvalidTransition is returned when an operation is not legal in the
	// current phase.
	ErrInvalidTransition = errors.New("runner: invalid transition")
	// ErrUnknownMode is returned when selecting an unregistered mode.
	ErrUnknownMode = errors.New("runner: unknown mode")
	// ErrNoQuiz is returned when answering with no quiz open.
	ErrNoQuiz = errors.New("runner: no quiz open")
	// ErrChoiceOutOfRange is returned for an answer index outside the choices.
	ErrChoiceOutOfRange = errors.New("runner: choice out of range")
)

// Phase is the session's top-level state.
type Phase int

const (
	PhaseSelect Phase = iota
	PhaseLevel
	PhaseStart
	PhasePlaying
	PhaseGameOver
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case PhaseSelect:
		return "select"
	case PhaseLevel:
		return "level"
	case PhaseStart:
		return "start"
	case PhasePlaying:
		return "playing"
	case PhaseGameOver:
		return "gameover"
	default:
		return "unknown"
	}
}

// StepResult is returned by Step with the state after the tick and the
// events emitted since the previous Step.
type StepResult struct {
	State  core.GameState
	Events []Event
}

// Session is the root aggregate of one player's game. It owns every entity
// and the single scheduler of all countdowns. It is not safe for concurrent
// use; each front-end drives its own session.
type Session struct {
	cfg      config.RunnerConfig
	runtime  core.RuntimeConfig
	rng      *rand.Rand
	tickRate int

	phase    Phase
	mode     registry.Mode
	level    config.Level
	levelCfg config.LevelConfig
	paused   bool
	ticks    int
	scene    int

	player       Player
	obstacles    []*Obstacle
	projectiles  []*Projectile
	collectibles []*Collectible
	decorations  []*Decoration

	sched      *Scheduler
	difficulty *config.DifficultyManager
	physics    *PhysicsController
	spawner    *SpawnDirector
	enemies    *EnemyController
	power      *PowerUpManager
	quiz       *QuizGate
	deck       *Deck
	ledger     ScoreLedger
	events     eventBuffer

	jumpQueued  bool
	invulnTimer TimerID
	bankFailed  bool
}

// NewSession creates a session in the mode select phase. A zero seed in
// runtime is replaced by the current time.
func NewSession(cfg config.RunnerConfig, runtime core.RuntimeConfig) *Session {
	seed := runtime.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	tickRate := runtime.TickRate
	if tickRate <= 0 {
		tickRate = 60
	}

	s := &Session{
		cfg:      cfg,
		runtime:  runtime,
		rng:      rand.New(rand.NewSource(seed)),
		tickRate: tickRate,
		sched:    NewScheduler(),
		physics:  NewPhysicsController(cfg),
	}
	s.spawner = NewSpawnDirector(cfg, s.rng)
	s.enemies = NewEnemyController(cfg, s.rng, s.spawner)
	s.deck = NewDeck(s.rng, nil)
	s.power = NewPowerUpManager(cfg.PowerUps, s.sched, s.onPowerExpire, s.onShoot)
	s.quiz = NewQuizGate(s.sched, tickRate, s.onQuizTick, s.onQuizTimeout)
	s.difficulty = config.NewDifficultyManager(cfg.Difficulty, 1.0, tickRate)
	s.ledger = NewScoreLedger(cfg.Player.StartLives, cfg.Player.MaxLives, 0)
	s.physics.ResetPlayer(&s.player)
	return s
}

// SetEventSink routes events to sink as they happen.
func (s *Session) SetEventSink(sink EventSink) {
	s.events.sink = sink
}

// SetQuestionBank sets the store used for picture, trivia and riddle quizzes.
func (s *Session) SetQuestionBank(bank QuestionBank) {
	s.deck = NewDeck(s.rng, bank)
}

// SelectMode chooses a registered mode. Legal only in the select phase.
func (s *Session) SelectMode(id string) error {
	if s.phase != PhaseSelect {
		return fmt.Errorf("%w: select mode in %s", ErrInvalidTransition, s.phase)
	}
	m, err := registry.Lookup(id)
	if err != nil {
		return fmt.Errorf("%w: %q", ErrUnknownMode, id)
	}
	s.mode = m
	s.phase = PhaseLevel
	return nil
}

// SelectLevel chooses the difficulty level. Legal only in the level phase.
func (s *Session) SelectLevel(level config.Level) error {
	if s.phase != PhaseLevel {
		return fmt.Errorf("%w: select level in %s", ErrInvalidTransition, s.phase)
	}
	s.level = level
	s.levelCfg = s.cfg.Levels.For(level)
	s.phase = PhaseStart
	return nil
}

// Back returns from level selection to mode selection.
func (s *Session) Back() error {
	if s.phase != PhaseLevel {
		return fmt.Errorf("%w: back in %s", ErrInvalidTransition, s.phase)
	}
	s.mode = registry.Mode{}
	s.phase = PhaseSelect
	return nil
}

// Start begins a run. All timers are cancelled and every per-run value is
// reinitialized before play resumes.
func (s *Session) Start() error {
	if s.phase != PhaseStart {
		return fmt.Errorf("%w: start in %s", ErrInvalidTransition, s.phase)
	}
	s.resetRun()
	s.phase = PhasePlaying
	s.sched.Every("scene", ClockGameplay, s.cfg.Difficulty.SceneTicks, s.changeScene)
	return nil
}

// Reset abandons whatever is in progress and returns to mode selection.
// Legal from any phase.
func (s *Session) Reset() {
	s.resetRun()
	s.mode = registry.Mode{}
	s.level = ""
	s.phase = PhaseSelect
}

// resetRun cancels every timer and clears per-run state.
func (s *Session) resetRun() {
	s.sched.CancelAll()
	s.quiz.Close()
	s.power.Clear()

	s.ledger = NewScoreLedger(s.cfg.Player.StartLives, s.cfg.Player.MaxLives, s.levelCfg.BonusLifeEvery)
	s.difficulty = config.NewDifficultyManager(s.cfg.Difficulty, s.levelCfg.SpeedScale, s.tickRate)
	s.physics.ResetPlayer(&s.player)
	s.spawner.Reset()

	s.obstacles = s.obstacles[:0]
	s.projectiles = s.projectiles[:0]
	s.collectibles = s.collectibles[:0]
	s.decorations = s.decorations[:0]

	s.ticks = 0
	s.scene = 0
	s.paused = false
	s.jumpQueued = false
	s.invulnTimer = 0
	s.bankFailed = false
}

// TogglePause pauses or resumes a run. Pausing freezes everything,
// including a quiz countdown.
func (s *Session) TogglePause() error {
	if s.phase != PhasePlaying {
		return fmt.Errorf("%w: pause in %s", ErrInvalidTransition, s.phase)
	}
	s.paused = !s.paused
	return nil
}

// RequestJump queues a jump for the next tick. Ignored unless play is
// running.
func (s *Session) RequestJump() {
	if s.phase != PhasePlaying || s.paused || s.quiz.Active() {
		return
	}
	s.jumpQueued = true
}

// Answer resolves the open quiz with the choice at index.
func (s *Session) Answer(index int) error {
	q, ok := s.quiz.Current()
	if !ok {
		return ErrNoQuiz
	}
	if s.paused {
		return fmt.Errorf("%w: answer while paused", ErrInvalidTransition)
	}
	if index < 0 || index >= len(q.Question.Choices) {
		return fmt.Errorf("%w: %d of %d", ErrChoiceOutOfRange, index, len(q.Question.Choices))
	}
	s.resolveQuiz(index == q.Question.Correct)
	return nil
}

// Step advances the session by one tick of input.
func (s *Session) Step(in core.InputFrame) StepResult {
	switch s.phase {
	case PhasePlaying:
	case PhaseGameOver:
		if in.Has(core.ActionRestart) {
			s.Reset()
		}
		return s.result()
	default:
		return s.result()
	}

	if in.Has(core.ActionPause) {
		s.paused = !s.paused
	}
	if s.paused {
		return s.result()
	}

	if s.quiz.Active() {
		for i, a := range core.AnswerActions {
			if in.Has(a) {
				_ = s.Answer(i)
				break
			}
		}
		if s.quiz.Active() {
			s.sched.Advance(true)
		}
		return s.result()
	}

	if in.Has(core.ActionJump) {
		s.RequestJump()
	}
	s.tick()
	return s.result()
}

// tick runs one active gameplay tick in component order.
func (s *Session) tick() {
	s.ticks++
	s.difficulty.Update()

	if s.jumpQueued {
		s.jumpQueued = false
		if s.physics.Jump(&s.player, s.jumpBudget()) {
			s.emit(EventJump, "", 0)
		}
	}
	if pit := s.physics.Update(&s.player, s.obstacles); pit != nil {
		s.applyOrDeferDamage(SourcePit)
		if s.interrupted() {
			return
		}
	}

	s.advanceEntities(s.difficulty.ScrollSpeed(s.cfg.Physics.BaseScroll))

	// Power-ups, invulnerability and the scene timer
	s.sched.Advance(false)

	s.spawn()
	s.resolveCollisions()
}

// interrupted reports whether the current tick must stop early.
func (s *Session) interrupted() bool {
	return s.phase != PhasePlaying || s.quiz.Active()
}

func (s *Session) jumpBudget() int {
	if s.power.Active(PowerTripleJump) {
		return s.cfg.Player.JumpBudget + 1
	}
	return s.cfg.Player.JumpBudget
}

// advanceEntities scrolls the field, runs enemy behavior and drops
// everything that has left the field.
func (s *Session) advanceEntities(scroll float64) {
	obstacles := s.obstacles[:0]
	for _, o := range s.obstacles {
		o.X -= scroll
		if shot := s.enemies.Update(o, &s.player); shot != nil {
			s.projectiles = append(s.projectiles, shot)
		}
		if !s.enemies.Gone(o) {
			obstacles = append(obstacles, o)
		}
	}
	clear(s.obstacles[len(obstacles):])
	s.obstacles = obstacles

	w, h := s.cfg.Field.Width, s.cfg.Field.Height
	projectiles := s.projectiles[:0]
	for _, p := range s.projectiles {
		p.X += p.VX
		p.Y += p.VY
		if p.X+p.W >= 0 && p.X <= w && p.Y+p.H >= 0 && p.Y <= h {
			projectiles = append(projectiles, p)
		}
	}
	clear(s.projectiles[len(projectiles):])
	s.projectiles = projectiles

	collectibles := s.collectibles[:0]
	for _, c := range s.collectibles {
		c.X -= scroll
		if c.X+c.W >= 0 {
			collectibles = append(collectibles, c)
		}
	}
	clear(s.collectibles[len(collectibles):])
	s.collectibles = collectibles

	decorations := s.decorations[:0]
	for _, d := range s.decorations {
		d.X -= d.Speed
		d.Y += math.Sin(float64(s.ticks)*d.Wobble+d.Phase) * 0.3
		if d.X > -60 {
			decorations = append(decorations, d)
		}
	}
	clear(s.decorations[len(decorations):])
	s.decorations = decorations
}

// spawn runs each independent spawn rule once.
func (s *Session) spawn() {
	if o := s.spawner.MaybeObstacle(s.obstacles, s.difficulty.Tier(), s.difficulty.Multiplier()); o != nil {
		s.obstacles = append(s.obstacles, o)
	}
	if c := s.spawner.MaybeCollectible(); c != nil {
		s.collectibles = append(s.collectibles, c)
	}
	blocked := s.power.Any() || s.quiz.Active() || s.orbOnField()
	if c := s.spawner.MaybeRiddleOrb(blocked); c != nil {
		s.collectibles = append(s.collectibles, c)
	}
	if d := s.spawner.MaybeDecoration(len(s.decorations)); d != nil {
		s.decorations = append(s.decorations, d)
	}
}

func (s *Session) orbOnField() bool {
	for _, c := range s.collectibles {
		if c.Kind == CollectRiddleOrb {
			return true
		}
	}
	return false
}

// changeScene applies a scene boost and moves to the next scene.
func (s *Session) changeScene() {
	s.scene = s.difficulty.AdvanceScene()
	s.emit(EventSceneChange, s.Scene(), s.scene)
}

// startInvulnerability opens the post-hit window as a gameplay timer.
func (s *Session) startInvulnerability() {
	if s.invulnTimer != 0 {
		s.sched.Cancel(s.invulnTimer)
	}
	s.player.Invulnerable = s.cfg.Player.InvulnerableTicks
	s.invulnTimer = s.sched.Every("invulnerability", ClockGameplay, 1, func() {
		s.player.Invulnerable--
		if s.player.Invulnerable <= 0 {
			s.player.Invulnerable = 0
			s.sched.Cancel(s.invulnTimer)
			s.invulnTimer = 0
		}
	})
}

// openQuiz opens a quiz of kind. Returns false when one is already open.
func (s *Session) openQuiz(kind QuizKind, pending DamageSource) bool {
	if s.quiz.Active() {
		return false
	}
	question, err := s.deck.Draw(kind, s.level)
	if err != nil && !s.bankFailed {
		s.bankFailed = true
		s.emit(EventBankError, err.Error(), 0)
	}
	q := Quiz{
		Kind:     kind,
		Question: question,
		Total:    s.levelCfg.QuizSeconds * s.tickRate,
		Pending:  pending,
	}
	if !s.quiz.Open(q) {
		return false
	}
	s.emit(EventQuizOpen, kind.String(), s.levelCfg.QuizSeconds)
	return true
}

// resolveQuiz closes the open quiz and applies its outcome.
func (s *Session) resolveQuiz(correct bool) {
	q, ok := s.quiz.Close()
	if !ok {
		return
	}

	if !correct {
		s.emit(EventQuizWrong, q.Kind.String(), 0)
		if q.Pending != "" {
			s.commitDamage(q.Pending)
		}
		return
	}

	s.emit(EventQuizCorrect, q.Kind.String(), 0)
	if q.Kind == QuizRiddle {
		s.grantRandomPowerUp()
		return
	}
	s.addScore(s.cfg.Scoring.QuizPoints)
}

func (s *Session) onQuizTick(secondsLeft int) {
	s.emit(EventQuizTick, "", secondsLeft)
}

func (s *Session) onQuizTimeout() {
	s.emit(EventQuizTimeout, "", 0)
	s.resolveQuiz(false)
}

func (s *Session) grantRandomPowerUp() {
	kind := s.power.GrantRandom(s.rng)
	s.emit(EventPowerUp, kind.String(), s.power.Duration(kind))
}

func (s *Session) onPowerExpire(kind PowerUpKind) {
	s.emit(EventPowerUpEnd, kind.String(), 0)
}

// onShoot fires a player projectile from the player's leading edge.
func (s *Session) onShoot() {
	p := &s.player
	s.projectiles = append(s.projectiles, &Projectile{
		Owner: OwnerPlayer,
		X:     p.X + p.W,
		Y:     p.Y + p.H/2 - 3,
		W:     10,
		H:     6,
		VX:    s.cfg.PowerUps.ShotSpeed,
	})
}

// addScore adds points and announces any bonus lives.
func (s *Session) addScore(points int) {
	for i := s.ledger.AddScore(points); i > 0; i-- {
		s.emit(EventBonusLife, "", s.ledger.Lives())
	}
}

// commitDamage removes a life and ends the run when none remain.
func (s *Session) commitDamage(source DamageSource) {
	dead := s.ledger.LoseLife()
	s.emit(EventHurt, string(source), s.ledger.Lives())
	if dead {
		s.gameOver()
	}
}

// gameOver ends the run and stops every timer.
func (s *Session) gameOver() {
	s.phase = PhaseGameOver
	s.sched.CancelAll()
	s.quiz.Close()
	s.power.Clear()
	s.invulnTimer = 0
	s.emit(EventGameOver, "", s.ledger.Score())
}

func (s *Session) emit(kind EventKind, detail string, value int) {
	s.events.emit(Event{Kind: kind, Tick: s.ticks, Detail: detail, Value: value})
}

func (s *Session) result() StepResult {
	return StepResult{State: s.State(), Events: s.events.drain()}
}

// State returns the externally visible status.
func (s *Session) State() core.GameState {
	phase := s.phase.String()
	if s.phase == PhasePlaying && s.quiz.Active() {
		phase = "quiz"
	}
	return core.GameState{
		Phase:    phase,
		Score:    s.ledger.Score(),
		Lives:    s.ledger.Lives(),
		GameOver: s.phase == PhaseGameOver,
		Paused:   s.paused,
	}
}

// Phase returns the current phase.
func (s *Session) Phase() Phase { return s.phase }

// Mode returns the selected mode.
func (s *Session) Mode() registry.Mode { return s.mode }

// Level returns the selected level.
func (s *Session) Level() config.Level { return s.level }

// Ticks returns the active ticks played in this run.
func (s *Session) Ticks() int { return s.ticks }

// Scene returns the name of the current scene.
func (s *Session) Scene() string { return s.mode.Scene(s.scene) }

// Quiz returns the overlay view of the open quiz.
func (s *Session) Quiz() (QuizView, bool) { return s.quiz.View() }

// PowerUp returns the active power-up and its remaining share.
func (s *Session) PowerUp() (PowerUpKind, float64) {
	return s.power.Kind(), s.power.Fraction()
}
