package embedded

import (
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInit(t *testing.T) {
	Reset()
	assert.False(t, IsInitialized())

	Init(fstest.MapFS{})
	assert.True(t, IsInitialized())

	Reset()
	assert.False(t, IsInitialized())
}

func TestReadFile_RejectsUnknownPrefix(t *testing.T) {
	Init(fstest.MapFS{})
	defer Reset()

	_, err := ReadFile("assets/test.png")
	require.ErrorIs(t, err, ErrUnknownPrefix)
	assert.False(t, Exists("assets/test.png"))
}

func TestReadFile_FromEmbeddedFS(t *testing.T) {
	Init(fstest.MapFS{
		"data/levels/level1.yaml": {Data: []byte("nodes: []")},
	})
	defer Reset()

	data, err := ReadFile("./data/levels/level1.yaml")
	require.NoError(t, err)
	assert.Equal(t, "nodes: []", string(data))
	assert.True(t, Exists("data/levels/level1.yaml"))
	assert.False(t, Exists("data/levels/level2.yaml"))
}

func TestReadFile_FallsBackToDisk(t *testing.T) {
	Reset()

	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	defer os.Chdir(wd)

	require.NoError(t, os.MkdirAll(filepath.Join(dir, "data"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "data", "assets.yaml"), []byte("assets: {}"), 0o644))

	data, err := ReadFile("data/assets.yaml")
	require.NoError(t, err)
	assert.Equal(t, "assets: {}", string(data))
	assert.True(t, Exists("data/assets.yaml"))

	_, err = ReadFile("data/missing.yaml")
	assert.Error(t, err)
}
