package runner

// EventKind names a discrete game event. Sound playback and logging consume
// these; the simulation never waits on a consumer.
type EventKind string

const (
	EventJump          EventKind = "jump"
	EventCollect       EventKind = "collect"
	EventHurt          EventKind = "hurt"
	EventGameOver      EventKind = "gameover"
	EventExplosion     EventKind = "explosion"
	EventPowerUp       EventKind = "powerup"
	EventPowerUpEnd    EventKind = "powerup_end"
	EventQuizTick      EventKind = "quiz_tick"
	EventQuizTimeout   EventKind = "quiz_timeout"
	EventDestroyReward EventKind = "destroy_reward"
	EventSceneChange   EventKind = "scene_change"
	EventQuizOpen      EventKind = "quiz_open"
	EventQuizCorrect   EventKind = "quiz_correct"
	EventQuizWrong     EventKind = "quiz_wrong"
	EventBonusLife     EventKind = "bonus_life"
	EventBankError     EventKind = "bank_error" // Detail carries the error; sent once per run
)

// Event is a single notification emitted during a tick.
type Event struct {
	Kind   EventKind
	Tick   int    // Active tick at which the event happened
	Detail string // Optional: obstacle kind, power-up, scene name
	Value  int    // Optional: seconds left, points awarded
}

// EventSink receives events as they happen.
type EventSink interface {
	Emit(Event)
}

// EventSinkFunc adapts a function to EventSink.
type EventSinkFunc func(Event)

// Emit calls f(e).
func (f EventSinkFunc) Emit(e Event) {
	f(e)
}

// eventBuffer collects the events of one tick and forwards them to a sink.
type eventBuffer struct {
	sink    EventSink
	pending []Event
}

func (b *eventBuffer) emit(e Event) {
	b.pending = append(b.pending, e)
	if b.sink != nil {
		b.sink.Emit(e)
	}
}

// drain returns the collected events and starts a new batch.
func (b *eventBuffer) drain() []Event {
	if len(b.pending) == 0 {
		return nil
	}
	out := b.pending
	b.pending = nil
	return out
}
