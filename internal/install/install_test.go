package install

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jask/storefront/internal/catalog"
	"github.com/jask/storefront/internal/logging"
)

func TestDispatchSendsOneRequest(t *testing.T) {
	rec := &Recorder{}
	d := NewDispatcher(rec, logging.NewNop())
	app := catalog.App{ID: 4, Name: "Leaf", APKURL: "https://example.com/app.apk"}

	require.NoError(t, d.Dispatch(app))

	reqs := rec.Requests()
	require.Len(t, reqs, 1)
	req := reqs[0]
	require.Equal(t, "https://example.com/app.apk", req.Data)
	require.Equal(t, PackageMIME, req.MIMEType)
	require.Equal(t, ActionView, req.Action)
	require.True(t, req.Flags.Has(FlagActivityNewTask))
	require.True(t, req.Flags.Has(FlagGrantReadURIPermission))
	require.Equal(t, 4, req.AppID)
	require.NotEmpty(t, req.ID)

	time.Sleep(5 * time.Millisecond)
	require.Len(t, rec.Requests(), 1, "no retry without a second call")

	require.NoError(t, d.Dispatch(app))
	reqs = rec.Requests()
	require.Len(t, reqs, 2)
	require.NotEqual(t, reqs[0].ID, reqs[1].ID)
}

func TestDispatchRejectsMissingURL(t *testing.T) {
	rec := &Recorder{}
	d := NewDispatcher(rec, nil)

	err := d.Dispatch(catalog.App{ID: 1, APKURL: "   "})
	require.ErrorIs(t, err, ErrMissingPackageURL)

	err = d.Dispatch(catalog.App{ID: 2, APKURL: "not a url"})
	require.ErrorIs(t, err, ErrInvalidPackageURL)

	err = d.Dispatch(catalog.App{ID: 3, APKURL: "http://[::1"})
	require.True(t, errors.Is(err, ErrInvalidPackageURL))

	require.Empty(t, rec.Requests())
}

func TestFlagsHex(t *testing.T) {
	require.Equal(t, "0x10000001", (FlagActivityNewTask | FlagGrantReadURIPermission).Hex())
	require.Equal(t, "0x00000001", FlagGrantReadURIPermission.Hex())
}

func TestADBArgs(t *testing.T) {
	req, err := NewRequest(catalog.App{ID: 1, APKURL: "https://example.com/app.apk"})
	require.NoError(t, err)

	require.Equal(t, []string{
		"shell", "am", "start",
		"-a", "'android.intent.action.VIEW'",
		"-d", "'https://example.com/app.apk'",
		"-t", "'application/vnd.android.package-archive'",
		"-f", "0x10000001",
		"--grant-read-uri-permission",
	}, ADBArgs(req, ""))

	withSerial := ADBArgs(req, "emulator-5554")
	require.Equal(t, []string{"-s", "emulator-5554", "shell"}, withSerial[:3])
}

func dataArg(t *testing.T, args []string) string {
	t.Helper()
	for i, a := range args {
		if a == "-d" && i+1 < len(args) {
			return args[i+1]
		}
	}
	t.Fatalf("no -d argument in %v", args)
	return ""
}

func TestADBArgsQuotesShellMetacharacters(t *testing.T) {
	cases := map[string]string{
		"https://cdn.example.com/app.apk?a=1&b=2":           `'https://cdn.example.com/app.apk?a=1&b=2'`,
		"https://cdn.example.com/app.apk;touch${IFS}/tmp/x": `'https://cdn.example.com/app.apk;touch${IFS}/tmp/x'`,
		"https://cdn.example.com/it's.apk":                  `'https://cdn.example.com/it'\''s.apk'`,
		"https://cdn.example.com/$(reboot)/a b|c.apk":       `'https://cdn.example.com/$(reboot)/a b|c.apk'`,
	}
	for raw, want := range cases {
		req, err := NewRequest(catalog.App{ID: 1, APKURL: raw})
		require.NoError(t, err, raw)
		require.Equal(t, raw, req.Data, "request keeps the exact reference")
		require.Equal(t, want, dataArg(t, ADBArgs(req, "")), raw)
	}
}

func TestCommandLauncherDoesNotWait(t *testing.T) {
	release := make(chan struct{})
	var gotName string
	var gotArgs []string
	l := NewADBLauncher("/opt/adb", "", logging.NewNop())
	l.start = func(name string, args ...string) (func() error, error) {
		gotName = name
		gotArgs = args
		return func() error { <-release; return nil }, nil
	}

	req, err := NewRequest(catalog.App{APKURL: "https://example.com/app.apk"})
	require.NoError(t, err)

	done := make(chan struct{})
	go func() {
		l.Launch(req)
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("launch blocked on the handler process")
	}
	close(release)

	require.Equal(t, "/opt/adb", gotName)
	require.Contains(t, gotArgs, "'https://example.com/app.apk'")
}

func TestCommandLauncherSwallowsStartFailure(t *testing.T) {
	l := NewOpenLauncher(logging.NewNop())
	l.start = func(string, ...string) (func() error, error) {
		return nil, errors.New("executable file not found")
	}
	req, err := NewRequest(catalog.App{APKURL: "https://example.com/app.apk"})
	require.NoError(t, err)
	require.NotPanics(t, func() { l.Launch(req) })
}

func TestOpenerCommand(t *testing.T) {
	name, prefix := openerCommand("linux")
	require.Equal(t, "xdg-open", name)
	require.Empty(t, prefix)

	name, _ = openerCommand("darwin")
	require.Equal(t, "open", name)

	name, prefix = openerCommand("windows")
	require.Equal(t, "rundll32", name)
	require.Equal(t, []string{"url.dll,FileProtocolHandler"}, prefix)
}

func TestNewLauncher(t *testing.T) {
	l, err := NewLauncher("", "", "", nil)
	require.NoError(t, err)
	require.IsType(t, &LogLauncher{}, l)

	l, err = NewLauncher("ADB", "adb", "", nil)
	require.NoError(t, err)
	require.IsType(t, &CommandLauncher{}, l)

	_, err = NewLauncher("carrier-pigeon", "", "", nil)
	require.Error(t, err)
}
