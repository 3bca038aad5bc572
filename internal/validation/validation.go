// Package validation confirms that an encode chain actually produced the
// artifact it promised.
package validation

import (
	"os"

	"github.com/five82/vqsweep/internal/chain"
	"github.com/five82/vqsweep/internal/errors"
)

// Artifact describes a confirmed output file.
type Artifact struct {
	Path      string
	SizeBytes int64
}

// Confirm checks a finished chain against its expected output path. The
// chain's own failure always wins; a clean chain that left no file, or an
// empty one, is reported as a distinct output failure. Only a clean chain
// with a nonzero-size output yields an Artifact.
func Confirm(res chain.Result, expectedPath string) (Artifact, error) {
	if res.Err != nil {
		return Artifact{}, res.Err
	}
	info, err := os.Stat(expectedPath)
	if err != nil {
		if os.IsNotExist(err) {
			return Artifact{}, errors.NewMissingOutputError(expectedPath)
		}
		return Artifact{}, errors.NewIOError("could not stat expected output", err)
	}
	if info.Size() == 0 {
		return Artifact{}, errors.NewEmptyOutputError(expectedPath)
	}
	return Artifact{Path: expectedPath, SizeBytes: info.Size()}, nil
}
