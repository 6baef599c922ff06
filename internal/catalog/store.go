package catalog

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/jask/storefront/internal/logging"
)

// DefaultDisplayDelay keeps the loading indicator up long enough to avoid a
// flash on fast networks.
const DefaultDisplayDelay = 800 * time.Millisecond

type Phase string

const (
	PhaseIdle    Phase = "idle"
	PhaseLoading Phase = "loading"
	PhaseLoaded  Phase = "loaded"
)

// Outcome records how the single fetch of a session ended.
type Outcome string

const (
	OutcomeNone     Outcome = ""
	OutcomeApplied  Outcome = "applied"
	OutcomeRejected Outcome = "rejected"
	OutcomeFailed   Outcome = "failed"
)

// State is a point-in-time copy of the store.
type State struct {
	Phase   Phase
	Apps    []App
	Outcome Outcome
	// Err is the suppressed fetch error when Outcome is OutcomeFailed.
	Err error
}

// Loading reports whether the store has not finished its fetch yet.
func (s State) Loading() bool { return s.Phase != PhaseLoaded }

// StoreOptions tunes a Store. The zero value uses no display delay.
type StoreOptions struct {
	DisplayDelay time.Duration
	Logger       *slog.Logger
}

// Store owns the session catalog. It loads at most once and never revises
// the catalog afterwards.
type Store struct {
	fetcher Fetcher
	delay   time.Duration
	logger  *slog.Logger

	once sync.Once
	done chan struct{}

	started time.Time

	mu    sync.RWMutex
	state State
	subs  []func(State)
}

func NewStore(fetcher Fetcher, opts StoreOptions) *Store {
	delay := opts.DisplayDelay
	if delay < 0 {
		delay = 0
	}
	return &Store{
		fetcher: fetcher,
		delay:   delay,
		logger:  logging.Component(opts.Logger, "catalog"),
		done:    make(chan struct{}),
		state:   State{Phase: PhaseIdle, Apps: []App{}},
	}
}

// Load runs the session fetch and blocks until it finishes. Fetch failures
// are logged and recorded on the state, never returned. Calls after the first
// return the current state without fetching again.
func (s *Store) Load(ctx context.Context) State {
	s.once.Do(func() { s.load(ctx) })
	return s.State()
}

func (s *Store) load(ctx context.Context) {
	s.started = time.Now()
	s.mu.Lock()
	s.state.Phase = PhaseLoading
	s.mu.Unlock()
	s.notify()

	if s.delay > 0 {
		timer := time.NewTimer(s.delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			s.finish(OutcomeFailed, nil, ctx.Err())
			return
		case <-timer.C:
		}
	}

	if s.fetcher == nil {
		s.finish(OutcomeFailed, nil, ErrNoEndpoint)
		return
	}
	snap, err := s.fetcher.Fetch(ctx)
	switch {
	case err != nil:
		s.finish(OutcomeFailed, nil, err)
	case !snap.Success:
		s.finish(OutcomeRejected, nil, nil)
	default:
		s.finish(OutcomeApplied, cloneApps(snap.Apps), nil)
	}
}

// finish is the single transition out of PhaseLoading. apps replaces the
// catalog only for OutcomeApplied.
func (s *Store) finish(outcome Outcome, apps []App, err error) {
	s.mu.Lock()
	if outcome == OutcomeApplied {
		s.state.Apps = apps
	}
	s.state.Phase = PhaseLoaded
	s.state.Outcome = outcome
	s.state.Err = err
	count := len(s.state.Apps)
	s.mu.Unlock()

	elapsed := logging.Duration("elapsed", time.Since(s.started))
	delay := logging.Duration("display_delay", s.delay)
	switch outcome {
	case OutcomeApplied:
		s.logger.Info("catalog loaded", logging.Args(logging.String(logging.FieldOutcome, string(outcome)), logging.Int("apps", count), elapsed, delay)...)
	case OutcomeRejected:
		s.logger.Info("catalog response reported failure; keeping current catalog", logging.Args(logging.String(logging.FieldOutcome, string(outcome)), logging.Int("apps", count), elapsed, delay)...)
	default:
		s.logger.Warn("catalog fetch failed; keeping current catalog", logging.Args(logging.String(logging.FieldOutcome, string(outcome)), logging.Error(err), elapsed, delay)...)
	}

	close(s.done)
	s.notify()
}

func (s *Store) notify() {
	s.mu.RLock()
	subs := make([]func(State), len(s.subs))
	copy(subs, s.subs)
	s.mu.RUnlock()
	if len(subs) == 0 {
		return
	}
	st := s.State()
	for _, fn := range subs {
		fn(st)
	}
}

// Subscribe registers fn to be called after every phase transition.
func (s *Store) Subscribe(fn func(State)) {
	if fn == nil {
		return
	}
	s.mu.Lock()
	s.subs = append(s.subs, fn)
	s.mu.Unlock()
}

// State returns a copy of the current state.
func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	st := s.state
	st.Apps = cloneApps(s.state.Apps)
	return st
}

// Apps returns the current catalog in server order.
func (s *Store) Apps() []App {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneApps(s.state.Apps)
}

// Loading reports whether the session fetch is still outstanding.
func (s *Store) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Phase != PhaseLoaded
}

// Done is closed once loading has finished.
func (s *Store) Done() <-chan struct{} { return s.done }
