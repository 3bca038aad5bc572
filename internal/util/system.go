package util

import (
	"bufio"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
)

// minFreeSpaceBytes is the threshold below which CheckDiskSpace warns.
const minFreeSpaceBytes = 2 * GiB

// AvailableMemoryBytes returns the available memory in bytes.
// On Linux, this reads MemAvailable from /proc/meminfo and falls back to
// sysinfo free memory when the file is unreadable.
// Returns 0 if memory cannot be determined.
func AvailableMemoryBytes() uint64 {
	if mem := memAvailableProcfs(); mem > 0 {
		return mem
	}
	return memAvailableSysinfo()
}

func memAvailableProcfs() uint64 {
	f, err := os.Open("/proc/meminfo")
	if err != nil {
		return 0
	}
	defer func() { _ = f.Close() }()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.HasPrefix(line, "MemAvailable:") {
			fields := strings.Fields(line)
			if len(fields) >= 2 {
				kb, err := strconv.ParseUint(fields[1], 10, 64)
				if err == nil {
					return kb * 1024 // Convert KB to bytes
				}
			}
		}
	}
	return 0
}

// MaxPermitsForMemory calculates the maximum safe number of in-flight jobs
// based on available memory and estimated memory per job.
// jobMemBytes is the estimated memory per in-flight job (encoder process plus
// pipe buffers). memFraction is the fraction of available memory to use
// (e.g., 0.7 for 70%). Returns at least 1.
func MaxPermitsForMemory(jobMemBytes uint64, memFraction float64) int {
	available := AvailableMemoryBytes()
	if available == 0 {
		return 1 // Can't determine memory, be conservative
	}

	usable := uint64(float64(available) * memFraction)
	if usable < jobMemBytes {
		return 1
	}

	permits := int(usable / jobMemBytes)
	return max(permits, 1)
}

// CheckDiskSpace reports whether the filesystem containing path has a
// comfortable amount of free space, warning through logger when it does not.
func CheckDiskSpace(path string, logger func(format string, args ...any)) bool {
	free := GetAvailableSpace(path)
	if free == 0 {
		return true // Can't determine, don't block
	}
	if free < minFreeSpaceBytes {
		if logger != nil {
			logger("Low disk space at %s: %s free", path, FormatBytes(int64(free)))
		}
		return false
	}
	return true
}

// LogicalCores returns the number of logical CPU cores (includes hyperthreads).
func LogicalCores() int {
	return runtime.NumCPU()
}

// PhysicalCores returns the number of physical CPU cores.
// On systems with SMT/hyperthreading, this will be less than LogicalCores().
// Falls back to LogicalCores()/2 if detection fails.
func PhysicalCores() int {
	switch runtime.GOOS {
	case "linux":
		if cores := physicalCoresLinux(); cores > 0 {
			return cores
		}
	case "darwin":
		if cores := physicalCoresDarwin(); cores > 0 {
			return cores
		}
	}
	// Fallback: assume hyperthreading (2 threads per core)
	logical := LogicalCores()
	if logical > 1 {
		return logical / 2
	}
	return 1
}

// physicalCoresLinux reads physical core count from sysfs topology.
// Returns 0 if detection fails.
func physicalCoresLinux() int {
	// Count unique physical core IDs across all CPUs
	cpuDir := "/sys/devices/system/cpu"
	entries, err := os.ReadDir(cpuDir)
	if err != nil {
		return 0
	}

	coreIDs := make(map[string]struct{})
	for _, entry := range entries {
		name := entry.Name()
		if !strings.HasPrefix(name, "cpu") {
			continue
		}
		suffix := name[3:]
		if len(suffix) == 0 {
			continue
		}
		if _, err := strconv.Atoi(suffix); err != nil {
			continue
		}

		coreIDPath := filepath.Join(cpuDir, name, "topology", "core_id")
		data, err := os.ReadFile(coreIDPath)
		if err != nil {
			continue
		}

		// physical_package_id disambiguates multi-socket systems
		pkgIDPath := filepath.Join(cpuDir, name, "topology", "physical_package_id")
		pkgData, err := os.ReadFile(pkgIDPath)
		if err != nil {
			coreIDs[strings.TrimSpace(string(data))] = struct{}{}
		} else {
			key := strings.TrimSpace(string(pkgData)) + ":" + strings.TrimSpace(string(data))
			coreIDs[key] = struct{}{}
		}
	}

	if len(coreIDs) > 0 {
		return len(coreIDs)
	}
	return 0
}

// physicalCoresDarwin uses sysctl to get physical core count on macOS.
// Returns 0 if detection fails.
func physicalCoresDarwin() int {
	out, err := exec.Command("sysctl", "-n", "hw.physicalcpu").Output()
	if err != nil {
		return 0
	}
	cores, err := strconv.Atoi(strings.TrimSpace(string(out)))
	if err != nil || cores <= 0 {
		return 0
	}
	return cores
}
