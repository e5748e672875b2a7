package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmylchreest/powerprof/internal/adapter/output"
	"github.com/jmylchreest/powerprof/internal/config"
	"github.com/jmylchreest/powerprof/internal/model"
)

func TestValidProfileNames(t *testing.T) {
	assert.Equal(t, []string{"power-saver", "balanced", "performance"}, validProfileNames())
}

func TestProfileArg(t *testing.T) {
	t.Cleanup(func() { setOpts.stdin = false; setOpts.separator = " | " })

	setOpts.stdin = false
	name, err := profileArg(nil, []string{"Performance"})
	require.NoError(t, err)
	assert.Equal(t, "Performance", name)

	setOpts.stdin = true
	setOpts.separator = " | "
	name, err = profileArg(strings.NewReader("balanced | Balanced | active\nignored\n"), nil)
	require.NoError(t, err)
	assert.Equal(t, "balanced", name)

	_, err = profileArg(strings.NewReader(""), nil)
	assert.Error(t, err)
}

func TestNewFormatter(t *testing.T) {
	cfg = config.DefaultConfig()
	t.Cleanup(func() { cfg = nil })

	f, err := newFormatter("", "", false)
	require.NoError(t, err)
	assert.IsType(t, &output.PlainFormatter{}, f)

	f, err = newFormatter("waybar", "", false)
	require.NoError(t, err)
	assert.IsType(t, &output.WaybarFormatter{}, f)

	_, err = newFormatter("xml", "", false)
	assert.ErrorIs(t, err, config.ErrInvalidFormat)

	var buf bytes.Buffer
	f, err = newFormatter("plain", "Active profile: {{.Profile}}", false)
	require.NoError(t, err)
	require.NoError(t, f.Format(&buf, []output.Entry{output.ActiveEntry(model.ProfileBalanced)}))
	assert.Equal(t, "Active profile: balanced\n", buf.String())
}

func TestConsoleReporter(t *testing.T) {
	var out, errOut bytes.Buffer
	r := consoleReporter(&out, &errOut)

	r.OnSuccess("Asked power-profiles-daemon to change active profile to: performance")
	r.OnError("set active profile: transport failure: denied")

	assert.Equal(t, "Asked power-profiles-daemon to change active profile to: performance\n", out.String())
	assert.Equal(t, "set active profile: transport failure: denied\n", errOut.String())
}

func TestNotifyRequested(t *testing.T) {
	cfg = config.DefaultConfig()
	t.Cleanup(func() { cfg = nil })

	assert.False(t, notifyRequested(false, false))
	assert.True(t, notifyRequested(true, true))

	cfg.Notify.Enabled = true
	assert.True(t, notifyRequested(false, false))
	assert.False(t, notifyRequested(true, false))
}

func TestWatchNotifyEnabled(t *testing.T) {
	t.Cleanup(func() { watchOpts.notify = false })

	c := config.DefaultConfig()
	assert.False(t, watchNotifyEnabled(c, false))

	c.Notify.Enabled = true
	c.Watch.NotifyOnChange = true
	assert.True(t, watchNotifyEnabled(c, false))

	watchOpts.notify = false
	assert.False(t, watchNotifyEnabled(c, true))
}

func TestNotifyOptions(t *testing.T) {
	c := config.DefaultConfig()
	opts := notifyOptions(c)
	assert.Equal(t, c.Notify.AppName, opts.AppName)
	assert.Equal(t, c.Notify.Icon, opts.Icon)
	assert.Equal(t, c.Notify.Timeout.Duration(), opts.Timeout)
	assert.Equal(t, c.Notify.MinInterval.Duration(), opts.MinInterval)
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, "exit status 1", exitCode(1).Error())
}
