package main

import (
	"bytes"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jask/storefront/internal/install"
	"github.com/jask/storefront/internal/testdata"
)

const catalogBody = `{"success": true, "apps": [
	{"id": 11, "name": "Leaf Timer", "subtitle": "Brew better", "icon": "https://cdn.example.com/i.png",
	 "screenshots": ["https://cdn.example.com/s1.png"], "description": "A timer.", "rating": 4.6,
	 "reviews": 1204, "size": "12 MB", "version": "1.2.0", "apk_url": "https://cdn.example.com/leaf.apk",
	 "category": "tools"},
	{"id": 12, "name": "Glow", "subtitle": "Lights", "icon": "", "screenshots": [], "description": "",
	 "rating": 3, "reviews": 0, "size": "3 MB", "version": "0.1", "apk_url": "", "category": "fun"}
]}`

type harness struct {
	configPath string
	recorder   *install.Recorder
	server     *testdata.Server
}

func newHarness(t *testing.T, body string, status int) harness {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("STOREFRONT_CONFIG", "")

	server := testdata.NewRawServer(t, status, body)

	path := filepath.Join(home, "config.toml")
	cfg := fmt.Sprintf("[catalog]\nendpoint = %q\ndisplay_delay = \"0s\"\n\n[log]\npath = %q\n",
		server.URL+"/api/index.php", filepath.Join(home, "storefront.log"))
	require.NoError(t, os.WriteFile(path, []byte(cfg), 0o600))

	return harness{configPath: path, recorder: &install.Recorder{}, server: server}
}

func (h harness) run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	configFlag := ""
	ctx := newCommandContext(&configFlag)
	ctx.launcher = h.recorder
	root := buildRootCommand(ctx)
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(append([]string{"--config", h.configPath}, args...))
	err := root.Execute()
	return out.String(), err
}

func TestListPrintsCatalogTable(t *testing.T) {
	h := newHarness(t, catalogBody, http.StatusOK)
	out, err := h.run(t, "list")
	require.NoError(t, err)
	require.Contains(t, out, "Leaf Timer")
	require.Contains(t, out, "1,204")
	require.Less(t, strings.Index(out, "Leaf Timer"), strings.Index(out, "Glow"))
	require.Equal(t, 1, h.server.Hits())
}

func TestScriptedCommandsSkipDisplayDelay(t *testing.T) {
	h := newHarness(t, catalogBody, http.StatusOK)
	cfg := fmt.Sprintf("[catalog]\nendpoint = %q\ndisplay_delay = \"30s\"\n", h.server.URL)
	require.NoError(t, os.WriteFile(h.configPath, []byte(cfg), 0o600))

	start := time.Now()
	out, err := h.run(t, "list")
	require.NoError(t, err)
	require.Contains(t, out, "Leaf Timer")
	require.Less(t, time.Since(start), 10*time.Second)
}

func TestRootWithoutTerminalPrintsTable(t *testing.T) {
	h := newHarness(t, catalogBody, http.StatusOK)
	out, err := h.run(t)
	require.NoError(t, err)
	require.Contains(t, out, "Glow")
}

func TestListSuppressesFetchFailure(t *testing.T) {
	h := newHarness(t, "oops", http.StatusInternalServerError)
	out, err := h.run(t, "list")
	require.NoError(t, err)
	require.Contains(t, out, "No apps available.")
}

func TestShowPrintsDetails(t *testing.T) {
	h := newHarness(t, catalogBody, http.StatusOK)
	out, err := h.run(t, "show", "11")
	require.NoError(t, err)
	require.Contains(t, out, "Leaf Timer")
	require.Contains(t, out, "Version 1.2.0 • 12 MB")
	require.Contains(t, out, "1. https://cdn.example.com/s1.png")
	require.Contains(t, out, "Icon: https://cdn.example.com/i.png")

	_, err = h.run(t, "show", "99")
	require.ErrorContains(t, err, "no app with id 99")

	_, err = h.run(t, "show", "abc")
	require.ErrorContains(t, err, "invalid app id")
}

func TestInstallDispatchesOnce(t *testing.T) {
	h := newHarness(t, catalogBody, http.StatusOK)
	out, err := h.run(t, "install", "11")
	require.NoError(t, err)
	require.Contains(t, out, "install requested: Leaf Timer")

	reqs := h.recorder.Requests()
	require.Len(t, reqs, 1)
	require.Equal(t, "https://cdn.example.com/leaf.apk", reqs[0].Data)
	require.Equal(t, install.PackageMIME, reqs[0].MIMEType)
}

func TestInstallWithoutPackageURLFails(t *testing.T) {
	h := newHarness(t, catalogBody, http.StatusOK)
	_, err := h.run(t, "install", "12")
	require.ErrorIs(t, err, install.ErrMissingPackageURL)
	require.Empty(t, h.recorder.Requests())
}

func TestConfigInitWritesDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	target := filepath.Join(t.TempDir(), "fresh", "config.toml")

	configFlag := ""
	root := buildRootCommand(newCommandContext(&configFlag))
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"--config", target, "config", "init"})
	require.NoError(t, root.Execute())
	require.Contains(t, out.String(), "wrote "+target)

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	require.Contains(t, string(data), "memeitizer.com")

	root = buildRootCommand(newCommandContext(&configFlag))
	root.SetArgs([]string{"--config", target, "config", "init"})
	require.ErrorContains(t, root.Execute(), "already exists")
}
