package install

import (
	"fmt"
	"log/slog"
	"os/exec"
	"runtime"
	"strings"
	"sync"

	"github.com/jask/storefront/internal/logging"
)

// Launcher names accepted in configuration.
const (
	LauncherLog  = "log"
	LauncherADB  = "adb"
	LauncherOpen = "open"
)

// starter launches a process without waiting for it. The returned wait
// function blocks until the process exits.
type starter func(name string, args ...string) (wait func() error, err error)

func startProcess(name string, args ...string) (func() error, error) {
	cmd := exec.Command(name, args...)
	if err := cmd.Start(); err != nil {
		return nil, err
	}
	return cmd.Wait, nil
}

// CommandLauncher runs a host command per request and reaps it in the
// background. Failures only reach the log.
type CommandLauncher struct {
	name   string
	argsFn func(Request) []string
	start  starter
	logger *slog.Logger
}

func (l *CommandLauncher) Launch(req Request) {
	args := l.argsFn(req)
	wait, err := l.start(l.name, args...)
	if err != nil {
		l.logger.Warn("install handler did not start", logging.Args(logging.String(logging.FieldRequestID, req.ID), logging.String("command", l.name), logging.Error(err))...)
		return
	}
	go func() {
		if err := wait(); err != nil {
			l.logger.Warn("install handler exited with error", logging.Args(logging.String(logging.FieldRequestID, req.ID), logging.Error(err))...)
			return
		}
		l.logger.Debug("install handler exited", logging.Args(logging.String(logging.FieldRequestID, req.ID))...)
	}()
}

// NewADBLauncher sends requests to a connected Android device through
// `adb shell am start`. serial selects a device when several are attached.
func NewADBLauncher(adbPath, serial string, logger *slog.Logger) *CommandLauncher {
	if strings.TrimSpace(adbPath) == "" {
		adbPath = "adb"
	}
	serial = strings.TrimSpace(serial)
	return &CommandLauncher{
		name:   adbPath,
		argsFn: func(req Request) []string { return ADBArgs(req, serial) },
		start:  startProcess,
		logger: logging.Component(logger, "install.adb"),
	}
}

// ADBArgs builds the adb argument list for req. adb shell joins everything
// after "shell" into one command line for the device's sh, so request values
// are single-quoted.
func ADBArgs(req Request, serial string) []string {
	args := make([]string, 0, 14)
	if serial != "" {
		args = append(args, "-s", serial)
	}
	args = append(args,
		"shell", "am", "start",
		"-a", shellQuote(req.Action),
		"-d", shellQuote(req.Data),
		"-t", shellQuote(req.MIMEType),
		"-f", req.Flags.Hex(),
	)
	if req.Flags.Has(FlagGrantReadURIPermission) {
		args = append(args, "--grant-read-uri-permission")
	}
	return args
}

func shellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

// NewOpenLauncher hands the package url to the desktop's default opener.
func NewOpenLauncher(logger *slog.Logger) *CommandLauncher {
	name, prefix := openerCommand(runtime.GOOS)
	return &CommandLauncher{
		name:   name,
		argsFn: func(req Request) []string { return append(append([]string(nil), prefix...), req.Data) },
		start:  startProcess,
		logger: logging.Component(logger, "install.open"),
	}
}

func openerCommand(goos string) (string, []string) {
	switch goos {
	case "darwin":
		return "open", nil
	case "windows":
		return "rundll32", []string{"url.dll,FileProtocolHandler"}
	default:
		return "xdg-open", nil
	}
}

// LogLauncher only logs requests. It is the default when no device tooling
// is configured.
type LogLauncher struct {
	logger *slog.Logger
}

func NewLogLauncher(logger *slog.Logger) *LogLauncher {
	return &LogLauncher{logger: logging.Component(logger, "install.log")}
}

func (l *LogLauncher) Launch(req Request) {
	l.logger.Info("install request", logging.Args(
		logging.String(logging.FieldRequestID, req.ID),
		logging.String("action", req.Action),
		logging.String("data", req.Data),
		logging.String("type", req.MIMEType),
		logging.String("flags", req.Flags.Hex()),
	)...)
}

// Recorder keeps every request it receives. Useful for dry runs and tests.
type Recorder struct {
	mu       sync.Mutex
	requests []Request
}

func (r *Recorder) Launch(req Request) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.requests = append(r.requests, req)
}

func (r *Recorder) Requests() []Request {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Request(nil), r.requests...)
}

// NewLauncher picks a launcher by configured name.
func NewLauncher(name, adbPath, adbSerial string, logger *slog.Logger) (Launcher, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", LauncherLog:
		return NewLogLauncher(logger), nil
	case LauncherADB:
		return NewADBLauncher(adbPath, adbSerial, logger), nil
	case LauncherOpen:
		return NewOpenLauncher(logger), nil
	default:
		return nil, fmt.Errorf("unknown install launcher %q", name)
	}
}
