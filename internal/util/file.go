package util

import (
	"os"
	"path/filepath"
	"strings"
)

// SourceExtensions is the set of supported source video extensions.
var SourceExtensions = map[string]bool{
	".mp4":  true,
	".mkv":  true,
	".avi":  true,
	".mov":  true,
	".webm": true,
	".y4m":  true,
}

// IsSourceFile checks if the given path is a supported source video file.
func IsSourceFile(path string) bool {
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return false
	}

	ext := strings.ToLower(filepath.Ext(path))
	return SourceExtensions[ext]
}

// GetFilename returns the filename from a path.
func GetFilename(path string) string {
	return filepath.Base(path)
}

// GetFileStem returns the filename without extension.
func GetFileStem(path string) string {
	base := filepath.Base(path)
	ext := filepath.Ext(base)
	return strings.TrimSuffix(base, ext)
}

// GetFileSize returns the size of a file in bytes.
func GetFileSize(path string) (int64, error) {
	info, err := os.Stat(path)
	if err != nil {
		return 0, err
	}
	return info.Size(), nil
}

// EnsureDirectory creates a directory if it doesn't exist.
func EnsureDirectory(path string) error {
	return os.MkdirAll(path, 0755)
}

// FileExists checks if a file exists.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// NonEmptyFileExists checks if a file exists with nonzero size.
func NonEmptyFileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir() && info.Size() > 0
}

// SiblingWithSuffix derives a path in dir from another file's stem plus a
// suffix, e.g. ("reports", "out/clip_qp24.vvc", "_vmaf.json") becomes
// "reports/clip_qp24_vmaf.json".
func SiblingWithSuffix(dir, path, suffix string) string {
	return filepath.Join(dir, GetFileStem(path)+suffix)
}
