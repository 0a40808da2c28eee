package macho

import (
	"context"
	"debug/macho"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"unibin/internal/exec"
	"unibin/internal/macho/machotest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHeaderClassifier(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()
	c := NewHeaderClassifier()

	exe := filepath.Join(dir, "tool")
	machotest.WriteExecutable(t, exe, macho.CpuArm64)

	dylib := filepath.Join(dir, "libfoo.dylib")
	machotest.WriteFile(t, dylib, machotest.Thin(macho.CpuArm64, macho.TypeDylib))

	universal := filepath.Join(dir, "universal")
	machotest.WriteFile(t, universal, machotest.Fat(
		machotest.Thin(macho.CpuArm64, macho.TypeExec),
		machotest.Thin(macho.CpuAmd64, macho.TypeExec),
	))

	script := filepath.Join(dir, "run.sh")
	machotest.WriteFile(t, script, []byte("#!/bin/sh\necho hi\n"))

	empty := filepath.Join(dir, "empty")
	machotest.WriteFile(t, empty, nil)

	link := filepath.Join(dir, "link")
	require.NoError(t, os.Symlink("tool", link))

	tests := []struct {
		name string
		path string
		want bool
	}{
		{"thin executable", exe, true},
		{"dylib", dylib, false},
		{"universal executable", universal, true},
		{"shell script", script, false},
		{"empty file", empty, false},
		{"symlink to executable", link, true},
		{"directory", dir, false},
		{"missing", filepath.Join(dir, "missing"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, c.IsExecutable(ctx, tt.path))
		})
	}
}

func TestHeaderClassifierIsStable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tool")
	machotest.WriteExecutable(t, path, macho.CpuAmd64)

	c := NewHeaderClassifier()
	first := c.IsExecutable(context.Background(), path)
	second := c.IsExecutable(context.Background(), path)
	assert.True(t, first)
	assert.Equal(t, first, second)
}

func TestCommandClassifier(t *testing.T) {
	dir := t.TempDir()
	exe := filepath.Join(dir, "tool")
	lib := filepath.Join(dir, "lib.dylib")
	broken := filepath.Join(dir, "broken")
	for _, p := range []string{exe, lib, broken} {
		machotest.WriteFile(t, p, []byte("x"))
	}

	mock := exec.NewMockExecutor()
	mock.AddExactMatch("file", []string{"-b", exe}, exec.MockResponse{
		Output: []byte("Mach-O 64-bit executable arm64\n"),
	})
	mock.AddExactMatch("file", []string{"-b", lib}, exec.MockResponse{
		Output: []byte("Mach-O 64-bit dynamically linked shared library arm64\n"),
	})
	mock.AddExactMatch("file", []string{"-b", broken}, exec.MockResponse{
		Output: []byte("Mach-O 64-bit executable arm64\n"),
		Err:    errors.New("exit status 1"),
	})

	c := NewCommandClassifier("file", mock)
	ctx := context.Background()

	assert.True(t, c.IsExecutable(ctx, exe))
	assert.False(t, c.IsExecutable(ctx, lib))
	assert.False(t, c.IsExecutable(ctx, broken))
	assert.False(t, c.IsExecutable(ctx, dir))
	assert.False(t, c.IsExecutable(ctx, filepath.Join(dir, "missing")))

	// Directories and missing paths never reach the tool.
	assert.Len(t, mock.CallsTo("file"), 3)
}
