//go:build linux

package util

import "golang.org/x/sys/unix"

// memAvailableSysinfo reads free memory through the sysinfo syscall when
// /proc/meminfo is unreadable.
func memAvailableSysinfo() uint64 {
	var info unix.Sysinfo_t
	if err := unix.Sysinfo(&info); err != nil {
		return 0
	}
	return uint64(info.Freeram) * uint64(info.Unit)
}

// GetAvailableSpace returns the free space in bytes on the filesystem
// containing path. Returns 0 if it cannot be determined.
func GetAvailableSpace(path string) uint64 {
	var stat unix.Statfs_t
	if err := unix.Statfs(path, &stat); err != nil {
		return 0
	}
	return stat.Bavail * uint64(stat.Bsize)
}
