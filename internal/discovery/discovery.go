// Package discovery provides source file discovery for the sweep.
package discovery

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/five82/vqsweep/internal/errors"
	"github.com/five82/vqsweep/internal/util"
)

// Logger defines the interface for discovery logging.
type Logger interface {
	Info(format string, args ...any)
	Debug(format string, args ...any)
}

// FindSourceFiles finds source video files in the given directory, sorted
// case-insensitively by filename for reproducible enumeration order. Hidden
// files and unsupported extensions are skipped. The logger may be nil.
func FindSourceFiles(sourceDir string, logger Logger) ([]string, error) {
	info, err := os.Stat(sourceDir)
	if err != nil {
		return nil, errors.NewIOError("source directory does not exist: "+sourceDir, err)
	}
	if !info.IsDir() {
		return nil, errors.NewConfigurationError(sourceDir + " is not a directory")
	}

	entries, err := os.ReadDir(sourceDir)
	if err != nil {
		return nil, errors.NewIOError("cannot read source directory "+sourceDir, err)
	}

	var files []string
	skipped := 0

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		name := entry.Name()

		// Skip hidden files
		if strings.HasPrefix(name, ".") {
			continue
		}

		fullPath := filepath.Join(sourceDir, name)
		if util.IsSourceFile(fullPath) {
			files = append(files, fullPath)
		} else {
			skipped++
		}
	}

	if len(files) == 0 {
		return nil, errors.NewNoFilesFoundError(sourceDir)
	}

	sort.Slice(files, func(i, j int) bool {
		return strings.ToLower(filepath.Base(files[i])) < strings.ToLower(filepath.Base(files[j]))
	})

	if logger != nil {
		logDiscoveredFiles(files, skipped, logger)
	}

	return files, nil
}

// logDiscoveredFiles logs the first 5 discovered files plus a count.
func logDiscoveredFiles(files []string, skipped int, logger Logger) {
	logger.Info("Found %d source file(s)", len(files))
	if skipped > 0 {
		logger.Debug("Skipped %d non-video file(s)", skipped)
	}

	maxToLog := min(5, len(files))
	for i := 0; i < maxToLog; i++ {
		logger.Debug("  %s", filepath.Base(files[i]))
	}

	if len(files) > 5 {
		logger.Debug("  ... and %d more", len(files)-5)
	}
}
