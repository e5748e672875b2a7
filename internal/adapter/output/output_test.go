package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/jmylchreest/powerprof/internal/model"
)

func TestListEntries(t *testing.T) {
	entries := ListEntries(model.ProfileBalanced)

	require.Len(t, entries, 3)
	assert.Equal(t, model.ProfilePowerSaver, entries[0].Profile)
	assert.False(t, entries[0].Active)
	assert.Equal(t, "Balanced", entries[1].Label)
	assert.True(t, entries[1].Active)
	assert.False(t, entries[2].Active)
}

func TestActiveEntry(t *testing.T) {
	assert.Equal(t, Entry{Profile: model.ProfilePerformance, Label: "Performance", Active: true},
		ActiveEntry(model.ProfilePerformance))
	assert.False(t, ActiveEntry(model.ProfileInvalid).Active)
}

func TestPlainFormatter(t *testing.T) {
	t.Run("default prints wire string", func(t *testing.T) {
		var buf bytes.Buffer
		err := NewPlainFormatter(FormatterOptions{}).Format(&buf, []Entry{ActiveEntry(model.ProfilePowerSaver)})
		require.NoError(t, err)
		assert.Equal(t, "power-saver\n", buf.String())
	})

	t.Run("template", func(t *testing.T) {
		var buf bytes.Buffer
		f := NewPlainFormatter(FormatterOptions{Template: "Active profile: {{.Profile}} ({{.Label}})"})
		require.NoError(t, f.Format(&buf, []Entry{ActiveEntry(model.ProfileBalanced)}))
		assert.Equal(t, "Active profile: balanced (Balanced)\n", buf.String())
	})

	t.Run("bad template falls back", func(t *testing.T) {
		var buf bytes.Buffer
		f := NewPlainFormatter(FormatterOptions{Template: "{{.Profile"})
		require.NoError(t, f.Format(&buf, []Entry{ActiveEntry(model.ProfileBalanced)}))
		assert.Equal(t, "balanced\n", buf.String())
	})

	t.Run("mark active", func(t *testing.T) {
		var buf bytes.Buffer
		f := NewPlainFormatter(FormatterOptions{MarkActive: true})
		require.NoError(t, f.Format(&buf, ListEntries(model.ProfilePerformance)))
		assert.Equal(t, "  power-saver\n  balanced\n* performance\n", buf.String())
	})
}

func TestJSONFormatter(t *testing.T) {
	t.Run("single entry is an object", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, NewJSONFormatter(FormatterOptions{}).Format(&buf, []Entry{ActiveEntry(model.ProfileBalanced)}))
		assert.JSONEq(t, `{"profile":"balanced","label":"Balanced","active":true}`, buf.String())
	})

	t.Run("list is an array", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, NewJSONFormatter(FormatterOptions{}).Format(&buf, ListEntries(model.ProfilePowerSaver)))

		var decoded []map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
		require.Len(t, decoded, 3)
		assert.Equal(t, "power-saver", decoded[0]["profile"])
		assert.Equal(t, true, decoded[0]["active"])
	})
}

func TestYAMLFormatter(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewYAMLFormatter(FormatterOptions{}).Format(&buf, ListEntries(model.ProfileBalanced)))

	var decoded []map[string]any
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded, 3)
	assert.Equal(t, "balanced", decoded[1]["profile"])
	assert.Equal(t, true, decoded[1]["active"])
	assert.Equal(t, "Power Saver", decoded[0]["label"])
}

func TestWaybarFormatter(t *testing.T) {
	tests := []struct {
		name    string
		entries []Entry
		want    WaybarStatus
	}{
		{
			name:    "active profile",
			entries: []Entry{ActiveEntry(model.ProfilePerformance)},
			want: WaybarStatus{
				Text:    "Performance",
				Alt:     "performance",
				Tooltip: "Power profile: Performance",
				Class:   "performance",
			},
		},
		{
			name:    "invalid profile",
			entries: []Entry{ActiveEntry(model.ProfileInvalid)},
			want: WaybarStatus{
				Alt:     "error",
				Tooltip: "Failed to fetch active profile. Is power-profiles-daemon running?",
				Class:   "error",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, NewWaybarFormatter(FormatterOptions{}).Format(&buf, tt.entries))

			var got WaybarStatus
			require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("list tooltip names alternatives", func(t *testing.T) {
		status := WaybarStatusFor(ListEntries(model.ProfileBalanced))
		assert.Equal(t, "Balanced", status.Text)
		assert.Contains(t, status.Tooltip, "Available: Power Saver")
		assert.Contains(t, status.Tooltip, "Available: Performance")
	})
}

func TestDmenuFormatter(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewDmenuFormatter(FormatterOptions{}).Format(&buf, ListEntries(model.ProfileBalanced)))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "power-saver | Power Saver", lines[0])
	assert.Equal(t, "balanced | Balanced | active", lines[1])

	for _, line := range lines {
		p := model.ParseProfile(ParseDmenuLine(line, " | "))
		assert.True(t, p.Valid(), line)
	}
}

func TestParseDmenuLine(t *testing.T) {
	assert.Equal(t, "performance", ParseDmenuLine("performance | Performance\n", ""))
	assert.Equal(t, "balanced", ParseDmenuLine("balanced", " | "))
	assert.Equal(t, "power-saver", ParseDmenuLine("  power-saver;x", ";"))
}

func TestNewFormatter(t *testing.T) {
	opts := DefaultFormatterOptions()
	assert.IsType(t, &PlainFormatter{}, NewFormatter(FormatPlain, opts))
	assert.IsType(t, &JSONFormatter{}, NewFormatter(FormatJSON, opts))
	assert.IsType(t, &YAMLFormatter{}, NewFormatter(FormatYAML, opts))
	assert.IsType(t, &WaybarFormatter{}, NewFormatter(FormatWaybar, opts))
	assert.IsType(t, &DmenuFormatter{}, NewFormatter(FormatDmenu, opts))
	assert.IsType(t, &PlainFormatter{}, NewFormatter("bogus", opts))
}
