//go:build !linux

package util

// memAvailableSysinfo has no portable equivalent; callers treat 0 as
// "cannot determine" and fall back to conservative sizing.
func memAvailableSysinfo() uint64 {
	return 0
}

// GetAvailableSpace returns 0 off Linux; CheckDiskSpace treats that as
// indeterminate and does not warn.
func GetAvailableSpace(path string) uint64 {
	return 0
}
