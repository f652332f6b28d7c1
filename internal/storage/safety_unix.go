//go:build !windows

package storage

import (
	"errors"
	"fmt"
	"syscall"
)

// GetDiskSpace returns disk space information for the given path.
func GetDiskSpace(path string) (*DiskSpaceInfo, error) {
	path = existingAncestor(path)

	var stat syscall.Statfs_t
	if err := syscall.Statfs(path, &stat); err != nil {
		return nil, fmt.Errorf("failed to get disk space: %w", err)
	}

	return &DiskSpaceInfo{
		Path:      path,
		FreeBytes: stat.Bavail * uint64(stat.Bsize),
	}, nil
}

// isDiskFullError checks if an error indicates disk full condition.
func isDiskFullError(err error) bool {
	var errno syscall.Errno
	if errors.As(err, &errno) {
		return errno == syscall.ENOSPC
	}
	return false
}
