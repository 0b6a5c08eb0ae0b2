package fixer

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// ensureCapacity verifies the backup volume can hold the bytes the fix
// pass may need to copy before any file is touched.
func ensureCapacity(backupRoot string, needed int64) error {
	var stat unix.Statfs_t
	if err := unix.Statfs(backupRoot, &stat); err != nil {
		return fmt.Errorf("statfs backup root: %w", err)
	}
	free := stat.Bavail * uint64(stat.Bsize)
	if uint64(needed) > free {
		return fmt.Errorf("backup volume has %d bytes free, need %d", free, needed)
	}
	return nil
}
