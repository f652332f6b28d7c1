package storage

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	mterrors "github.com/mtplates/mtplates/internal/errors"
)

// DiskSpaceInfo is the space available to the current user on the
// filesystem holding Path.
type DiskSpaceInfo struct {
	Path      string
	FreeBytes uint64
}

// CheckDiskSpace checks that at least minFree bytes are available at path.
// A zero minFree disables the check.
func CheckDiskSpace(path string, minFree uint64) error {
	if minFree == 0 {
		return nil
	}

	info, err := GetDiskSpace(path)
	if err != nil {
		// If we can't check disk space, let the write itself fail
		return nil
	}

	if info.FreeBytes < minFree {
		return mterrors.NewSystemError(
			fmt.Sprintf("insufficient disk space: %d KB free, need at least %d KB",
				info.FreeBytes/1024, minFree/1024),
			mterrors.ErrDiskFull,
		)
	}

	return nil
}

// EnsureDirectory creates a directory with safe permissions if it doesn't exist.
func EnsureDirectory(path string) error {
	if err := os.MkdirAll(path, 0700); err != nil {
		return classifyWriteError(err)
	}
	return nil
}

// classifyWriteError attaches the disk full or permission sentinel to err
// when the cause can be recognized.
func classifyWriteError(err error) error {
	switch {
	case err == nil:
		return nil
	case isDiskFullError(err):
		return fmt.Errorf("%w: %w", mterrors.ErrDiskFull, err)
	case errors.Is(err, fs.ErrPermission):
		return fmt.Errorf("%w: %w", mterrors.ErrPermissionDenied, err)
	default:
		return err
	}
}

// existingAncestor walks up from path to the nearest existing directory.
func existingAncestor(path string) string {
	for {
		if _, err := os.Stat(path); err == nil {
			return path
		}
		parent := filepath.Dir(path)
		if parent == path {
			return path
		}
		path = parent
	}
}
