package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default, *cfg)
}

func TestLoadExplicitFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	data := "lipo_path: /opt/bin/lipo\nclassifier: file\nfile_path: /usr/bin/file\n"
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/opt/bin/lipo", cfg.LipoPath)
	assert.Equal(t, ClassifierFile, cfg.Classifier)
	assert.Equal(t, "/usr/bin/file", cfg.FilePath)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("HOME", t.TempDir())
	t.Setenv("UNIBIN_LIPO_PATH", "/tmp/fake-lipo")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "/tmp/fake-lipo", cfg.LipoPath)
}

func TestLoadRejectsUnknownClassifier(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("HOME", t.TempDir())
	t.Setenv("UNIBIN_CLASSIFIER", "magic")

	_, err := Load("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown classifier")
}
