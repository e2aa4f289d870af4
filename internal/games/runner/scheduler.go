package runner

// ClockClass decides whether a timer keeps running while play is suspended
// by a quiz.
type ClockClass int

const (
	// ClockGameplay timers freeze while a quiz is open.
	ClockGameplay ClockClass = iota
	// ClockInterrupt timers keep running while a quiz is open.
	ClockInterrupt
)

// TimerID identifies a scheduled timer. The zero value is never issued.
type TimerID uint64

type timer struct {
	id        TimerID
	name      string
	class     ClockClass
	remaining int
	period    int // 0 for one-shot timers
	fn        func()
	cancelled bool
}

// Scheduler owns every countdown of a session and advances them once per
// tick. Callbacks run synchronously and may schedule or cancel timers.
type Scheduler struct {
	timers []*timer
	nextID TimerID
}

// NewScheduler creates an empty scheduler.
func NewScheduler() *Scheduler {
	return &Scheduler{}
}

// After runs fn once after the given number of ticks.
func (s *Scheduler) After(name string, class ClockClass, ticks int, fn func()) TimerID {
	return s.add(name, class, ticks, 0, fn)
}

// Every runs fn every period ticks until cancelled.
func (s *Scheduler) Every(name string, class ClockClass, period int, fn func()) TimerID {
	if period < 1 {
		period = 1
	}
	return s.add(name, class, period, period, fn)
}

func (s *Scheduler) add(name string, class ClockClass, ticks, period int, fn func()) TimerID {
	if ticks < 1 {
		ticks = 1
	}
	s.nextID++
	s.timers = append(s.timers, &timer{
		id:        s.nextID,
		name:      name,
		class:     class,
		remaining: ticks,
		period:    period,
		fn:        fn,
	})
	return s.nextID
}

// Cancel stops a timer. Returns false if it already fired or was cancelled.
func (s *Scheduler) Cancel(id TimerID) bool {
	for _, t := range s.timers {
		if t.id == id && !t.cancelled {
			t.cancelled = true
			return true
		}
	}
	return false
}

// CancelAll stops every outstanding timer.
func (s *Scheduler) CancelAll() {
	for _, t := range s.timers {
		t.cancelled = true
	}
	// Fresh backing array: Advance may still be iterating the old one.
	s.timers = nil
}

// Remaining returns the ticks left until the timer next fires.
func (s *Scheduler) Remaining(id TimerID) (int, bool) {
	for _, t := range s.timers {
		if t.id == id && !t.cancelled {
			return t.remaining, true
		}
	}
	return 0, false
}

// Len returns the number of live timers.
func (s *Scheduler) Len() int {
	n := 0
	for _, t := range s.timers {
		if !t.cancelled {
			n++
		}
	}
	return n
}

// Names returns the names of live timers in scheduling order.
func (s *Scheduler) Names() []string {
	var names []string
	for _, t := range s.timers {
		if !t.cancelled {
			names = append(names, t.name)
		}
	}
	return names
}

// Advance moves every eligible timer forward by one tick. When suspended
// is true only interrupt timers advance. Timers added by callbacks start
// counting on the next call.
func (s *Scheduler) Advance(suspended bool) {
	due := s.timers
	for _, t := range due {
		if t.cancelled {
			continue
		}
		if suspended && t.class == ClockGameplay {
			continue
		}
		t.remaining--
		if t.remaining > 0 {
			continue
		}
		if t.period > 0 {
			t.remaining = t.period
		} else {
			t.cancelled = true
		}
		t.fn()
	}
	s.compact()
}

func (s *Scheduler) compact() {
	live := s.timers[:0]
	for _, t := range s.timers {
		if !t.cancelled {
			live = append(live, t)
		}
	}
	for i := len(live); i < len(s.timers); i++ {
		s.timers[i] = nil
	}
	s.timers = live
}
