package install

import (
	"log/slog"

	"github.com/google/uuid"

	"github.com/jask/storefront/internal/catalog"
	"github.com/jask/storefront/internal/logging"
)

// Launcher hands a request to the host. Launch returns as soon as the request
// is handed off; outcomes are not reported back.
type Launcher interface {
	Launch(req Request)
}

// Dispatcher turns app selections into install requests.
type Dispatcher struct {
	launcher Launcher
	logger   *slog.Logger
	newID    func() string
}

func NewDispatcher(launcher Launcher, logger *slog.Logger) *Dispatcher {
	if launcher == nil {
		launcher = NewLogLauncher(logger)
	}
	return &Dispatcher{
		launcher: launcher,
		logger:   logging.Component(logger, "install"),
		newID:    uuid.NewString,
	}
}

// Dispatch sends exactly one install request for app. The only errors are
// package url validation failures, reported before anything is launched.
func (d *Dispatcher) Dispatch(app catalog.App) error {
	req, err := NewRequest(app)
	if err != nil {
		d.logger.Warn("install request rejected", logging.Args(logging.Int(logging.FieldAppID, app.ID), logging.Error(err))...)
		return err
	}
	req.ID = d.newID()
	d.logger.Info("install requested", logging.Args(
		logging.String(logging.FieldRequestID, req.ID),
		logging.Int(logging.FieldAppID, req.AppID),
		logging.String("package_url", req.Data),
	)...)
	d.launcher.Launch(req)
	return nil
}
