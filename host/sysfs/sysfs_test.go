package sysfs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fakeLEDs(t *testing.T, names ...string) string {
	t.Helper()
	root := t.TempDir()
	for _, name := range names {
		dir := filepath.Join(root, name)
		require.NoError(t, os.MkdirAll(dir, 0755))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "trigger"), []byte("heartbeat"), 0644))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "brightness"), []byte("1"), 0644))
	}
	return root
}

func readFile(t *testing.T, path ...string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(path...))
	require.NoError(t, err)
	return string(data)
}

func TestNewSetsTriggerNone(t *testing.T) {
	root := fakeLEDs(t, "led0", "led1")
	_, err := New(root, []string{"led0", "led1"})
	require.NoError(t, err)

	assert.Equal(t, "none", readFile(t, root, "led0", "trigger"))
	assert.Equal(t, "none", readFile(t, root, "led1", "trigger"))
}

func TestNewMissingLED(t *testing.T) {
	root := fakeLEDs(t, "led0")
	_, err := New(root, []string{"led0", "ghost"})
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = New(root, nil)
	assert.Error(t, err)
}

func TestDrive(t *testing.T) {
	root := fakeLEDs(t, "a", "b")
	sink, err := New(root, []string{"a", "b"})
	require.NoError(t, err)

	require.NoError(t, sink.Drive(0, false))
	require.NoError(t, sink.Drive(1, true))
	assert.Equal(t, "0", readFile(t, root, "a", "brightness"))
	assert.Equal(t, "1", readFile(t, root, "b", "brightness"))

	assert.Error(t, sink.Drive(2, true))

	require.NoError(t, sink.Shutdown())
	assert.Equal(t, "0", readFile(t, root, "b", "brightness"))
}

func TestShutdownVisitsEveryLED(t *testing.T) {
	root := fakeLEDs(t, "a", "b", "c")
	sink, err := New(root, []string{"a", "b", "c"})
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		require.NoError(t, sink.Drive(i, true))
	}

	// A directory in place of the brightness file makes the write fail
	brokenPath := filepath.Join(root, "a", "brightness")
	require.NoError(t, os.Remove(brokenPath))
	require.NoError(t, os.Mkdir(brokenPath, 0755))

	assert.Error(t, sink.Shutdown())
	assert.Equal(t, "0", readFile(t, root, "b", "brightness"))
	assert.Equal(t, "0", readFile(t, root, "c", "brightness"))
}
