// Package macho decides whether a file is a Mach-O executable.
//
// Two strategies are available. HeaderClassifier parses the Mach-O header
// in-process and is the default. CommandClassifier asks file(1) and matches
// its description, for hosts where that is preferred.
package macho

import (
	"context"
	"debug/macho"
	"errors"
	"os"
	"strings"

	"unibin/internal/exec"
	"unibin/internal/logger"

	"go.uber.org/zap"
)

// Classifier reports whether path is a Mach-O executable. Errors of any kind
// classify as false.
type Classifier interface {
	IsExecutable(ctx context.Context, path string) bool
}

// isRegular follows symlinks, so a link to a regular file qualifies.
func isRegular(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

type HeaderClassifier struct{}

func NewHeaderClassifier() *HeaderClassifier {
	return &HeaderClassifier{}
}

func (c *HeaderClassifier) IsExecutable(_ context.Context, path string) bool {
	if !isRegular(path) {
		return false
	}

	ok, err := inspect(path)
	if err != nil {
		logger.Log.Debug("not a mach-o file",
			zap.String("path", path),
			zap.Error(err))
		return false
	}

	return ok
}

// inspect accepts a thin executable, or a universal file whose slices are executables.
func inspect(path string) (bool, error) {
	fat, err := macho.OpenFat(path)
	if err == nil {
		defer func(fat *macho.FatFile) {
			_ = fat.Close()
		}(fat)

		for _, arch := range fat.Arches {
			if arch.Type == macho.TypeExec {
				return true, nil
			}
		}
		return false, nil
	}

	if !errors.Is(err, macho.ErrNotFat) {
		return false, err
	}

	f, err := macho.Open(path)
	if err != nil {
		return false, err
	}

	defer func(f *macho.File) {
		_ = f.Close()
	}(f)

	return f.Type == macho.TypeExec, nil
}

// CommandClassifier runs a file(1)-compatible tool and requires both
// "Mach-O" and "executable" in its output.
type CommandClassifier struct {
	tool     string
	executor exec.CommandExecutor
}

func NewCommandClassifier(tool string, executor exec.CommandExecutor) *CommandClassifier {
	return &CommandClassifier{
		tool:     tool,
		executor: executor,
	}
}

func (c *CommandClassifier) IsExecutable(ctx context.Context, path string) bool {
	if !isRegular(path) {
		return false
	}

	// -b keeps the file name out of the description.
	out, err := c.executor.CombinedOutput(ctx, c.tool, "-b", path)
	if err != nil {
		logger.Log.Debug("file type check failed",
			zap.String("path", path),
			zap.String("tool", c.tool),
			zap.Error(err))
		return false
	}

	desc := string(out)
	return strings.Contains(desc, "Mach-O") && strings.Contains(desc, "executable")
}

var _ Classifier = (*HeaderClassifier)(nil)
var _ Classifier = (*CommandClassifier)(nil)
