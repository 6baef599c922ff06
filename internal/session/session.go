// Package session wires the catalog store, navigation and install dispatch
// into one state container for a single storefront session.
//
// Navigation methods are meant to be called from one goroutine (the UI loop).
// Catalog reads are safe from any goroutine.
package session

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"github.com/jask/storefront/internal/catalog"
	"github.com/jask/storefront/internal/install"
	"github.com/jask/storefront/internal/logging"
	"github.com/jask/storefront/internal/navigation"
)

var (
	ErrNoSelection = errors.New("session: no app selected")
	ErrUnknownApp  = errors.New("session: app not in catalog")
)

// Session is one run of the storefront: one catalog fetch, one navigation
// state, one install dispatcher.
type Session struct {
	ID string

	store      *catalog.Store
	nav        *navigation.Controller
	dispatcher *install.Dispatcher
	logger     *slog.Logger
}

// New builds a session. The logger is tagged with a fresh session id.
func New(fetcher catalog.Fetcher, launcher install.Launcher, opts catalog.StoreOptions) *Session {
	id := uuid.NewString()
	logger := logging.OrNop(opts.Logger).With(slog.String(logging.FieldSessionID, id))
	opts.Logger = logger
	return &Session{
		ID:         id,
		store:      catalog.NewStore(fetcher, opts),
		nav:        navigation.NewController(),
		dispatcher: install.NewDispatcher(launcher, logger),
		logger:     logging.Component(logger, "session"),
	}
}

// Start performs the session's catalog fetch and blocks until it ends. It is
// safe to call more than once; only the first call fetches.
func (s *Session) Start(ctx context.Context) catalog.State {
	s.logger.Debug("session start")
	return s.store.Load(ctx)
}

func (s *Session) Store() *catalog.Store { return s.store }

func (s *Session) Catalog() []catalog.App { return s.store.Apps() }

func (s *Session) Loading() bool { return s.store.Loading() }

func (s *Session) View() navigation.View { return s.nav.View() }

// Select opens the detail view for app.
func (s *Session) Select(app catalog.App) {
	s.nav.Select(app)
	s.logger.Debug("detail view", logging.Args(logging.Int(logging.FieldAppID, app.ID), logging.Bool("featured", app.Featured))...)
}

// SelectID opens the detail view for the catalog entry with id.
func (s *Session) SelectID(id int) error {
	app, ok := catalog.FindByID(s.store.Apps(), id)
	if !ok {
		return ErrUnknownApp
	}
	s.Select(app)
	return nil
}

func (s *Session) Back() bool { return s.nav.Back() }

func (s *Session) Selected() (catalog.App, bool) { return s.nav.Selected() }

// Carousel returns the active detail view's carousel, nil on the list.
func (s *Session) Carousel() *navigation.Carousel { return s.nav.Carousel() }

// Install dispatches an install request for the selected app.
func (s *Session) Install() error {
	app, ok := s.nav.Selected()
	if !ok {
		return ErrNoSelection
	}
	return s.dispatcher.Dispatch(app)
}

// InstallApp dispatches an install request for app without changing views.
func (s *Session) InstallApp(app catalog.App) error {
	return s.dispatcher.Dispatch(app)
}
