package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/oshokin/clock-widget/internal/logger"
)

// Name identifies an event kind and the handler that receives it.
type Name string

// Event is a single unit of work delivered to a handler.
type Event struct {
	// Name selects the handler.
	Name Name
	// At is when the event was produced (tick time or enqueue time).
	At time.Time
	// Payload carries input data, nil for ticks.
	Payload any

	// generation is the tick source generation; zero for input events.
	generation uint64
	// reply receives the handler result for Dispatch callers.
	reply chan result
}

// Handler processes an event on the loop goroutine and may return a value for Dispatch callers.
type Handler func(ctx context.Context, ev Event) (any, error)

// result is a handler outcome returned to a Dispatch caller.
type result struct {
	value any
	err   error
}

// tickSource is a running periodic producer.
type tickSource struct {
	// ticker is the clock-backed ticker.
	ticker clockwork.Ticker
	// stop is closed to end the producer goroutine.
	stop chan struct{}
	// generation tags every tick this source produces.
	generation uint64
}

var (
	// ErrClosed is returned when the loop has stopped or never started within the caller's context.
	ErrClosed = errors.New("scheduler is closed")
	// ErrNoHandler is returned for events nobody registered.
	ErrNoHandler = errors.New("no handler registered")
	// ErrAlreadyRunning is returned when Run is called twice.
	ErrAlreadyRunning = errors.New("scheduler is already running")
	// ErrInvalidInterval is returned for non-positive tick intervals.
	ErrInvalidInterval = errors.New("tick interval must be positive")
)

// Scheduler delivers named events to handlers on a single goroutine.
type Scheduler struct {
	// clock produces tickers and enqueue timestamps.
	clock clockwork.Clock
	// queue buffers events until the loop takes them.
	queue *eventQueue
	// done is closed when Run returns.
	done chan struct{}

	// mu guards the fields below.
	mu sync.Mutex
	// handlers maps event names to their handler.
	handlers map[Name]Handler
	// tickers holds running tick sources by event name.
	tickers map[Name]*tickSource
	// generations holds the current generation per tick name.
	generations map[Name]uint64
	// running is set once Run has started.
	running bool
}

// New creates a scheduler reading time from clock. A nil clock means the real clock.
func New(clock clockwork.Clock) *Scheduler {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}

	return &Scheduler{
		clock:       clock,
		queue:       newEventQueue(),
		done:        make(chan struct{}),
		handlers:    make(map[Name]Handler),
		tickers:     make(map[Name]*tickSource),
		generations: make(map[Name]uint64),
	}
}

// Clock returns the scheduler's time source.
//
//nolint:ireturn // clockwork.Clock is the abstraction callers need.
func (s *Scheduler) Clock() clockwork.Clock {
	return s.clock
}

// Handle registers h for events named name, replacing any previous handler.
func (s *Scheduler) Handle(name Name, h Handler) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.handlers[name] = h
}

// Every starts (or restarts) a tick source producing name every interval.
// Ticks queued by an earlier source of the same name are dropped.
func (s *Scheduler) Every(name Name, interval time.Duration) error {
	if interval <= 0 {
		return fmt.Errorf("%s: %w", name, ErrInvalidInterval)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	select {
	case <-s.done:
		return ErrClosed
	default:
	}

	s.stopTickerLocked(name)

	s.generations[name]++
	src := &tickSource{
		ticker:     s.clock.NewTicker(interval),
		stop:       make(chan struct{}),
		generation: s.generations[name],
	}
	s.tickers[name] = src

	go s.produce(name, src)

	return nil
}

// Stop halts the tick source for name. It is a no-op when none is running.
func (s *Scheduler) Stop(name Name) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stopTickerLocked(name) {
		// Invalidate ticks that are already queued.
		s.generations[name]++
	}
}

// Ticking reports whether a tick source for name is running.
func (s *Scheduler) Ticking(name Name) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok := s.tickers[name]

	return ok
}

// Post queues an input event without waiting for it to be handled.
func (s *Scheduler) Post(name Name, payload any) error {
	ev := Event{
		Name:    name,
		At:      s.clock.Now(),
		Payload: payload,
	}

	if !s.queue.enqueue(ev) {
		return ErrClosed
	}

	return nil
}

// Dispatch queues an input event and waits for its handler's result.
func (s *Scheduler) Dispatch(ctx context.Context, name Name, payload any) (any, error) {
	ev := Event{
		Name:    name,
		At:      s.clock.Now(),
		Payload: payload,
		reply:   make(chan result, 1),
	}

	if !s.queue.enqueue(ev) {
		return nil, ErrClosed
	}

	select {
	case res := <-ev.reply:
		return res.value, res.err
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-s.done:
		// The loop may have answered just before closing.
		select {
		case res := <-ev.reply:
			return res.value, res.err
		default:
			return nil, ErrClosed
		}
	}
}

// Pending returns the number of queued events.
func (s *Scheduler) Pending() int {
	return s.queue.len()
}

// Done is closed once Run has returned.
func (s *Scheduler) Done() <-chan struct{} {
	return s.done
}

// Run processes events until ctx is canceled. It must be called once.
func (s *Scheduler) Run(ctx context.Context) error {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()

		return ErrAlreadyRunning
	}

	s.running = true
	s.mu.Unlock()

	ctx = logger.WithName(ctx, "scheduler")

	defer s.shutdown(ctx)

	for {
		ev, ok := s.queue.tryDequeue()
		if !ok {
			select {
			case <-ctx.Done():
				return nil
			case <-s.queue.signal:
				continue
			}
		}

		if ctx.Err() != nil {
			s.reply(ev, nil, ErrClosed)

			return nil
		}

		s.deliver(ctx, ev)
	}
}

// deliver runs the handler for ev and answers its Dispatch caller, if any.
func (s *Scheduler) deliver(ctx context.Context, ev Event) {
	s.mu.Lock()
	handler, ok := s.handlers[ev.Name]
	stale := ev.generation != 0 && ev.generation != s.generations[ev.Name]
	s.mu.Unlock()

	if stale {
		logger.DebugKV(ctx, "Dropping stale tick", "event", ev.Name)

		return
	}

	if !ok {
		logger.WarnKV(ctx, "Event has no handler", "event", ev.Name)
		s.reply(ev, nil, fmt.Errorf("%s: %w", ev.Name, ErrNoHandler))

		return
	}

	value, err := handler(ctx, ev)
	s.reply(ev, value, err)
}

// reply answers a Dispatch caller.
func (s *Scheduler) reply(ev Event, value any, err error) {
	if ev.reply == nil {
		return
	}

	ev.reply <- result{value: value, err: err}
}

// produce forwards ticks from src into the queue until src or the scheduler stops.
func (s *Scheduler) produce(name Name, src *tickSource) {
	defer src.ticker.Stop()

	for {
		select {
		case <-src.stop:
			return
		case <-s.done:
			return
		case at := <-src.ticker.Chan():
			s.queue.enqueue(Event{
				Name:       name,
				At:         at,
				generation: src.generation,
			})
		}
	}
}

// stopTickerLocked stops the source for name and reports whether one was running.
func (s *Scheduler) stopTickerLocked(name Name) bool {
	src, ok := s.tickers[name]
	if !ok {
		return false
	}

	close(src.stop)
	delete(s.tickers, name)

	return true
}

// shutdown stops every tick source and fails pending Dispatch callers.
func (s *Scheduler) shutdown(ctx context.Context) {
	s.mu.Lock()
	for name := range s.tickers {
		s.stopTickerLocked(name)
	}
	s.mu.Unlock()

	rest := s.queue.close()
	for _, ev := range rest {
		s.reply(ev, nil, ErrClosed)
	}

	close(s.done)

	logger.DebugKV(ctx, "Scheduler stopped", "dropped_events", len(rest))
}
