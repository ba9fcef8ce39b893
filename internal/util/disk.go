package util

import "golang.org/x/sys/unix"

// AvailableDiskBytes returns the free space on the filesystem holding path.
// Returns 0 if the filesystem cannot be queried.
func AvailableDiskBytes(path string) uint64 {
	var stat unix.Statfs_t
	if err := unix.Statfs(path, &stat); err != nil {
		return 0
	}
	return stat.Bavail * uint64(stat.Bsize)
}
