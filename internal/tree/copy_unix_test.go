//go:build unix

package tree

import (
	"os"
	"path/filepath"
	"syscall"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCopySkipsFifo(t *testing.T) {
	src := t.TempDir()
	require.NoError(t, syscall.Mkfifo(filepath.Join(src, "pipe"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(src, "plain"), []byte("x"), 0644))

	dst := filepath.Join(t.TempDir(), "out")
	stats, err := Copy(src, dst)
	require.NoError(t, err)

	assert.Equal(t, 1, stats.Skipped)
	assert.Equal(t, 1, stats.Files)

	_, err = os.Lstat(filepath.Join(dst, "pipe"))
	assert.True(t, os.IsNotExist(err))
}
