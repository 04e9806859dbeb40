package main

import (
	"bytes"
	"image"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"

	"inkcal/raster"
)

func run(t *testing.T, args ...string) error {
	t.Helper()
	app := newApp()
	app.Writer = &bytes.Buffer{}
	app.ErrWriter = &bytes.Buffer{}
	app.ExitErrHandler = func(*cli.Context, error) {}
	return app.Run(append([]string{"inkcal"}, args...))
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
}

func TestRenderCommand(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "config.json"), `{"holidays_file": "holidays.json", "timezone": "UTC"}`)
	writeFile(t, filepath.Join(dir, "holidays.json"), `{"2024-04-29": "Showa Day"}`)
	agenda := filepath.Join(dir, "agenda.txt")
	writeFile(t, agenda, "04/18 10:00~11:00\n Dentist\n")
	out := filepath.Join(dir, "out", "frame.png")

	args := []string{"--config-dir", dir, "render", "--agenda-file", agenda, "--date", "2024-04-17", "--output", out}
	require.NoError(t, run(t, args...))

	m, err := raster.Load(out)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 250, 122), m.Rect)

	b, err := os.ReadFile(filepath.Join(dir, "current_events.txt"))
	require.NoError(t, err)
	assert.Equal(t, "04/18 10:00~11:00\n Dentist", string(b))

	// Unchanged agenda on the same day: nothing is written.
	require.NoError(t, os.Remove(out))
	require.NoError(t, run(t, args...))
	assert.NoFileExists(t, out)

	require.NoError(t, run(t, append(args, "--force")...))
	assert.FileExists(t, out)
}

func TestRenderCommandSmallDisplay(t *testing.T) {
	dir := t.TempDir()
	agenda := filepath.Join(dir, "agenda.txt")
	writeFile(t, agenda, "")
	out := filepath.Join(dir, "frame.png")

	require.NoError(t, run(t, "--config-dir", dir, "render", "--offline", "--agenda-file", agenda,
		"--width", "212", "--height", "104", "--output", out))

	m, err := raster.Load(out)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 212, 104), m.Rect)
}

func TestRenderCommandUnsupportedResolution(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "frame.png")

	err := run(t, "--config-dir", dir, "render", "--offline", "--agenda-file", os.DevNull,
		"--width", "640", "--height", "384", "--output", out)
	assert.Error(t, err)
	assert.NoFileExists(t, out)
}

func TestRenderCommandBadDate(t *testing.T) {
	dir := t.TempDir()
	err := run(t, "--config-dir", dir, "render", "--offline", "--agenda-file", os.DevNull, "--date", "17/04/2024")
	assert.Error(t, err)
}

func TestRenderCommandFailedWriteIsRetried(t *testing.T) {
	dir := t.TempDir()
	agenda := filepath.Join(dir, "agenda.txt")
	writeFile(t, agenda, "04/18 10:00~11:00\n Dentist")

	// The output directory cannot be created below a regular file.
	bad := filepath.Join(agenda, "frame.png")
	err := run(t, "--config-dir", dir, "render", "--offline", "--agenda-file", agenda, "--output", bad)
	assert.Error(t, err)

	b, err := os.ReadFile(filepath.Join(dir, "current_events.txt"))
	require.NoError(t, err)
	assert.Empty(t, string(b))

	out := filepath.Join(dir, "frame.png")
	require.NoError(t, run(t, "--config-dir", dir, "render", "--offline", "--agenda-file", agenda, "--output", out))
	assert.FileExists(t, out)
}
