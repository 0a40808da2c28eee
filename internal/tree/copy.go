// Package tree duplicates a directory hierarchy without following symlinks.
package tree

import (
	"fmt"
	"os"
	"path/filepath"

	"unibin/internal/logger"
	"unibin/internal/util"

	"go.uber.org/zap"
)

type Stats struct {
	Files    int
	Symlinks int
	Dirs     int
	Skipped  int
}

// Copy mirrors src into dst. Symlinks are recreated with their original
// target string, regular files are copied with their permission bits, and
// other entry types are skipped. dst and its parents are created as needed.
func Copy(src, dst string) (Stats, error) {
	var stats Stats
	err := copyDir(src, dst, &stats)
	return stats, err
}

func copyDir(src, dst string, stats *Stats) error {
	if err := os.MkdirAll(dst, 0755); err != nil {
		return fmt.Errorf("failed to create dir %s: %w", dst, err)
	}
	stats.Dirs++

	entries, err := os.ReadDir(src)
	if err != nil {
		return fmt.Errorf("failed to read dir %s: %w", src, err)
	}

	for _, entry := range entries {
		srcPath := filepath.Join(src, entry.Name())
		dstPath := filepath.Join(dst, entry.Name())

		switch mode := entry.Type(); {
		case mode&os.ModeSymlink != 0:
			target, err := os.Readlink(srcPath)
			if err != nil {
				return fmt.Errorf("failed to read link %s: %w", srcPath, err)
			}
			if err := os.Symlink(target, dstPath); err != nil {
				return fmt.Errorf("failed to create link %s: %w", dstPath, err)
			}
			stats.Symlinks++

		case mode.IsDir():
			if err := copyDir(srcPath, dstPath, stats); err != nil {
				return err
			}

		case mode.IsRegular():
			if err := copyFile(srcPath, dstPath); err != nil {
				return err
			}
			stats.Files++

		default:
			logger.Log.Debug("skipping special file",
				zap.String("path", srcPath),
				zap.String("mode", mode.String()))
			stats.Skipped++
		}
	}

	return nil
}

func copyFile(src, dst string) error {
	f, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", src, err)
	}

	defer func(f *os.File) {
		_ = f.Close()
	}(f)

	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("failed to stat %s: %w", src, err)
	}

	if err := util.AtomicWrite(dst, f, info.Mode().Perm()); err != nil {
		return fmt.Errorf("failed to copy %s: %w", src, err)
	}

	return nil
}
