package main

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"sync"

	"github.com/jask/storefront/internal/catalog"
	"github.com/jask/storefront/internal/config"
	"github.com/jask/storefront/internal/install"
	"github.com/jask/storefront/internal/logging"
	"github.com/jask/storefront/internal/session"
)

type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     config.Config
	configErr  error

	logger   *slog.Logger
	closeLog func() error

	// overridable in tests
	httpClient catalog.HTTPDoer
	launcher   install.Launcher
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

func (c *commandContext) ensureConfig() (config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		logger, closeLog, err := logging.New(logging.Options{
			Level:  cfg.Log.Level,
			Format: cfg.Log.Format,
			Path:   cfg.Log.Path,
		})
		if err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
		c.logger = logger
		c.closeLog = closeLog
	})
	return c.config, c.configErr
}

func (c *commandContext) close() {
	if c.closeLog != nil {
		_ = c.closeLog()
	}
}

// newSession builds a session from config. interactive keeps the display
// delay; scripted commands fetch immediately.
func (c *commandContext) newSession(interactive bool) (*session.Session, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}

	var doer catalog.HTTPDoer = &http.Client{Timeout: cfg.Catalog.Timeout}
	if c.httpClient != nil {
		doer = c.httpClient
	}
	client := catalog.NewClient(cfg.Catalog.Endpoint, doer, cfg.Catalog.Timeout)

	launcher := c.launcher
	if launcher == nil {
		launcher, err = install.NewLauncher(cfg.Install.Launcher, cfg.Install.ADBPath, cfg.Install.ADBSerial, c.logger)
		if err != nil {
			return nil, err
		}
	}

	opts := catalog.StoreOptions{Logger: c.logger}
	// the display delay only keeps the TUI spinner from flashing
	if interactive {
		opts.DisplayDelay = cfg.Catalog.DisplayDelay
	}
	return session.New(client, launcher, opts), nil
}

// loadCatalog runs the session fetch for scripted commands.
func (c *commandContext) loadCatalog(ctx context.Context) (*session.Session, catalog.State, error) {
	sess, err := c.newSession(false)
	if err != nil {
		return nil, catalog.State{}, err
	}
	return sess, sess.Start(ctx), nil
}
