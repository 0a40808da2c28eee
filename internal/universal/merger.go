// Package universal combines two single-architecture build trees into one
// tree of universal binaries.
package universal

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"unibin/internal/exec"
	"unibin/internal/logger"
	"unibin/internal/macho"
	"unibin/internal/tree"
	"unibin/internal/util"

	"go.uber.org/zap"
)

// Reporter receives the user-facing progress lines of a run.
type Reporter interface {
	Infof(format string, args ...any)
}

// LogReporter sends progress lines to the zap logger.
type LogReporter struct{}

func (LogReporter) Infof(format string, args ...any) {
	logger.Log.Info(fmt.Sprintf(format, args...))
}

type Report struct {
	Stage  Stage
	Copied tree.Stats
	// Merged lists relative paths in walk order.
	Merged []string
	// Skipped counts regular files left as copied.
	Skipped int
}

type Merger struct {
	lipo       string
	classifier macho.Classifier
	executor   exec.CommandExecutor
	reporter   Reporter
}

func NewMerger(lipo string, classifier macho.Classifier, executor exec.CommandExecutor, reporter Reporter) *Merger {
	if reporter == nil {
		reporter = LogReporter{}
	}

	return &Merger{
		lipo:       lipo,
		classifier: classifier,
		executor:   executor,
		reporter:   reporter,
	}
}

// Run copies folder1 to output and merges every executable that also has an
// executable counterpart in folder2. On failure the returned error is a
// *StageError and output is left as it is.
func (m *Merger) Run(ctx context.Context, folder1, folder2, output string) (*Report, error) {
	report := &Report{Stage: StageValidating}

	if err := validate(folder1, folder2, output); err != nil {
		return report, &StageError{Stage: StageValidating, Err: err}
	}

	report.Stage = StageCopying
	logger.Log.Info("copying tree",
		zap.String("src", folder1),
		zap.String("dst", output))

	stats, err := tree.Copy(folder1, output)
	report.Copied = stats
	if err != nil {
		return report, &StageError{Stage: StageCopying, Err: err}
	}

	report.Stage = StageMerging
	merged, skipped, err := m.MergeWalk(ctx, output, folder2)
	report.Merged = merged
	report.Skipped = skipped
	if err != nil {
		return report, &StageError{Stage: StageMerging, Err: err}
	}

	report.Stage = StageDone
	m.reporter.Infof("Universal binary merge complete.")

	return report, nil
}

func validate(folder1, folder2, output string) error {
	for _, dir := range []string{folder1, folder2} {
		if _, err := os.Stat(dir); err != nil {
			return fmt.Errorf("%w: %q not found", ErrInputMissing, dir)
		}
	}

	if util.Exists(output) {
		return fmt.Errorf("%w: %s", ErrOutputExists, output)
	}

	return nil
}

// MergeWalk visits every regular file under output and replaces it with a
// universal binary when both it and the file at the same relative path in
// other are Mach-O executables. It returns the merged relative paths and the
// number of regular files left untouched.
func (m *Merger) MergeWalk(ctx context.Context, output, other string) ([]string, int, error) {
	var merged []string
	var skipped int

	err := filepath.WalkDir(output, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		if !d.Type().IsRegular() {
			return nil
		}

		rel, err := filepath.Rel(output, path)
		if err != nil {
			return fmt.Errorf("failed to resolve %s: %w", path, err)
		}
		otherPath := filepath.Join(other, rel)

		if !m.shouldMerge(ctx, path, otherPath) {
			skipped++
			return nil
		}

		m.reporter.Infof("Merging %s", rel)
		if err := exec.Run(ctx, m.executor, m.lipo, "-create", "-output", path, path, otherPath); err != nil {
			logger.Log.Error("merge failed",
				zap.String("path", rel),
				zap.Error(err))
			return fmt.Errorf("failed to merge %s: %w", rel, err)
		}

		merged = append(merged, rel)
		return nil
	})

	return merged, skipped, err
}

func (m *Merger) shouldMerge(ctx context.Context, path, otherPath string) bool {
	if !m.classifier.IsExecutable(ctx, path) {
		return false
	}

	if _, err := os.Stat(otherPath); err != nil {
		logger.Log.Debug("no counterpart",
			zap.String("path", otherPath))
		return false
	}

	return m.classifier.IsExecutable(ctx, otherPath)
}
