package tui

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/storefront/internal/catalog"
	"github.com/jask/storefront/internal/config"
	"github.com/jask/storefront/internal/install"
	"github.com/jask/storefront/internal/navigation"
	"github.com/jask/storefront/internal/session"
)

const (
	defaultCardWidth = 28
	cardHeight       = 8 // content lines plus border
	chromeHeight     = 5 // title, blank, status, tab bar, help
)

// App is the bubbletea model for the storefront.
type App struct {
	ctx     context.Context
	session *session.Session

	keys    keyMap
	help    help.Model
	spinner spinner.Model
	styles  styles

	cardWidth int
	width     int
	height    int

	apps      []catalog.App
	loaded    bool
	cursor    int
	status    string
	statusErr bool
}

type catalogLoadedMsg catalog.State

func New(ctx context.Context, sess *session.Session, ui config.UIConfig) *App {
	st := newStyles(ui)
	sp := spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(st.spinner))
	width := ui.CardWidth
	if width <= 0 {
		width = defaultCardWidth
	}
	return &App{
		ctx:       ctx,
		session:   sess,
		keys:      defaultKeys(),
		help:      help.New(),
		spinner:   sp,
		styles:    st,
		cardWidth: width,
		width:     80,
		height:    24,
	}
}

func (a *App) Init() tea.Cmd {
	return tea.Batch(a.spinner.Tick, a.loadCatalog())
}

func (a *App) loadCatalog() tea.Cmd {
	return func() tea.Msg {
		return catalogLoadedMsg(a.session.Start(a.ctx))
	}
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = m.Width, m.Height
		a.help.Width = m.Width
		return a, nil
	case spinner.TickMsg:
		if a.loaded {
			return a, nil
		}
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(m)
		return a, cmd
	case catalogLoadedMsg:
		a.loaded = true
		a.apps = m.Apps
		a.cursor = 0
		return a, nil
	case tea.KeyMsg:
		if key.Matches(m, a.keys.Quit) {
			return a, tea.Quit
		}
		if !a.loaded {
			return a, nil
		}
		if a.session.View() == navigation.ViewDetail {
			return a.handleDetailKey(m)
		}
		return a.handleListKey(m)
	}
	return a, nil
}

func (a *App) columns() int {
	cols := a.width / (a.cardWidth + 2)
	if cols < 1 {
		return 1
	}
	return cols
}

func (a *App) handleListKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	if len(a.apps) == 0 {
		return a, nil
	}
	cols := a.columns()
	switch {
	case key.Matches(m, a.keys.Left):
		a.moveCursor(-1)
	case key.Matches(m, a.keys.Right):
		a.moveCursor(1)
	case key.Matches(m, a.keys.Up):
		a.moveCursor(-cols)
	case key.Matches(m, a.keys.Down):
		a.moveCursor(cols)
	case key.Matches(m, a.keys.Open), key.Matches(m, a.keys.Install):
		// the card's GET button opens the detail page, as tapping the card does
		a.session.Select(a.apps[a.cursor])
		a.setStatus("", false)
	}
	return a, nil
}

func (a *App) moveCursor(delta int) {
	next := a.cursor + delta
	if next < 0 || next >= len(a.apps) {
		return
	}
	a.cursor = next
}

func (a *App) handleDetailKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	car := a.session.Carousel()
	switch {
	case key.Matches(m, a.keys.Back):
		a.session.Back()
		a.setStatus("", false)
	case key.Matches(m, a.keys.Left):
		car.Prev()
	case key.Matches(m, a.keys.Right):
		car.Next()
	case key.Matches(m, a.keys.Page):
		if len(m.Runes) == 1 {
			car.GoTo(int(m.Runes[0]-'1'))
		}
	case key.Matches(m, a.keys.Install), key.Matches(m, a.keys.Open):
		a.install()
	}
	return a, nil
}

func (a *App) install() {
	app, ok := a.session.Selected()
	if !ok {
		return
	}
	err := a.session.Install()
	switch {
	case err == nil:
		a.setStatus(fmt.Sprintf("install requested: %s", app.Name), false)
	case errors.Is(err, install.ErrMissingPackageURL), errors.Is(err, install.ErrInvalidPackageURL):
		a.setStatus(fmt.Sprintf("%s has no installable package", app.Name), true)
	default:
		a.setStatus(err.Error(), true)
	}
}

func (a *App) setStatus(text string, isErr bool) {
	a.status = text
	a.statusErr = isErr
}

func (a *App) View() string {
	var body string
	switch {
	case !a.loaded:
		body = a.renderLoading()
	case a.session.View() == navigation.ViewDetail:
		body = a.renderDetail()
	default:
		body = a.renderList()
	}
	return a.frame(body)
}
