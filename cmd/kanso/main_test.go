package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/comitanigiacomo/kanso-habit-engine/internal/core/domain"
	"github.com/comitanigiacomo/kanso-habit-engine/internal/core/services"
)

func runCLI(t *testing.T, dataPath string, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--data", dataPath}, args...))

	err := cmd.Execute()
	return out.String(), err
}

func addedID(t *testing.T, out string) string {
	t.Helper()
	start := strings.Index(out, "(")
	end := strings.Index(out, ")")
	require.True(t, start >= 0 && end > start, "unexpected add output: %q", out)
	return out[start+1 : end]
}

func TestCLI_HabitLifecycle(t *testing.T) {
	dataPath := filepath.Join(t.TempDir(), "kanso.json")
	today := domain.DayOf(services.SystemClock{}.Now()).String()

	out, err := runCLI(t, dataPath, "add", "Read", "--color", "#3366ff")
	require.NoError(t, err)
	assert.Contains(t, out, "added Read")
	id := addedID(t, out)

	t.Run("Success: List shows the new habit", func(t *testing.T) {
		out, err := runCLI(t, dataPath, "list")
		require.NoError(t, err)
		assert.Contains(t, out, "[ ] "+id+"\tRead")
	})

	t.Run("Success: Toggle marks today done and survives reload", func(t *testing.T) {
		out, err := runCLI(t, dataPath, "toggle", id)
		require.NoError(t, err)
		assert.Equal(t, today+" done\n", out)

		out, err = runCLI(t, dataPath, "list")
		require.NoError(t, err)
		assert.Contains(t, out, "[x] "+id)
	})

	t.Run("Success: Stats as YAML", func(t *testing.T) {
		out, err := runCLI(t, dataPath, "stats", id, "-o", "yaml")
		require.NoError(t, err)

		var stats domain.HabitStats
		require.NoError(t, yaml.Unmarshal([]byte(out), &stats))
		assert.Equal(t, id, stats.HabitID)
		assert.Equal(t, 1, stats.CurrentStreak)
		assert.True(t, stats.CompletedToday)
	})

	t.Run("Success: Overview as text", func(t *testing.T) {
		out, err := runCLI(t, dataPath, "stats")
		require.NoError(t, err)
		assert.Contains(t, out, "active: 1")
		assert.Contains(t, out, "completed today: 1")
	})

	t.Run("Fail: Unknown output format", func(t *testing.T) {
		_, err := runCLI(t, dataPath, "stats", id, "--output", "json")
		assert.Error(t, err)
	})

	t.Run("Fail: Unknown habit", func(t *testing.T) {
		_, err := runCLI(t, dataPath, "toggle", "missing")
		assert.True(t, errors.Is(err, domain.ErrHabitNotFound))
	})

	t.Run("Success: Archive, restore, delete", func(t *testing.T) {
		_, err := runCLI(t, dataPath, "archive", id)
		require.NoError(t, err)

		out, err := runCLI(t, dataPath, "list", "--archived")
		require.NoError(t, err)
		assert.Contains(t, out, id)

		out, err = runCLI(t, dataPath, "sweep")
		require.NoError(t, err)
		assert.Equal(t, "purged 0\n", out)

		_, err = runCLI(t, dataPath, "restore", id)
		require.NoError(t, err)

		_, err = runCLI(t, dataPath, "delete", id)
		require.NoError(t, err)

		out, err = runCLI(t, dataPath, "list")
		require.NoError(t, err)
		assert.Equal(t, "no habits\n", out)
	})
}

func TestCLI_Preferences(t *testing.T) {
	dataPath := filepath.Join(t.TempDir(), "kanso.json")

	out, err := runCLI(t, dataPath, "prefs")
	require.NoError(t, err)
	assert.Contains(t, out, "weekStartsOnMonday: false")

	out, err = runCLI(t, dataPath, "prefs", "toggle", domain.PrefWeekStartsOnMonday)
	require.NoError(t, err)
	assert.Contains(t, out, "weekStartsOnMonday: true")

	out, err = runCLI(t, dataPath, "prefs")
	require.NoError(t, err)
	assert.Contains(t, out, "weekStartsOnMonday: true")

	_, err = runCLI(t, dataPath, "prefs", "toggle", "dark-mode")
	assert.True(t, errors.Is(err, domain.ErrValidation))
}

func TestCLI_CorruptDataFile(t *testing.T) {
	dataPath := filepath.Join(t.TempDir(), "kanso.json")
	require.NoError(t, os.WriteFile(dataPath, []byte("{not json"), 0o644))

	out, err := runCLI(t, dataPath, "list")
	require.NoError(t, err)
	assert.Equal(t, "no habits\n", out)

	out, err = runCLI(t, dataPath, "add", "Read")
	require.NoError(t, err)
	id := addedID(t, out)

	out, err = runCLI(t, dataPath, "list")
	require.NoError(t, err)
	assert.Contains(t, out, id+"\tRead", "the first save replaces the corrupt file")
}
