// Package tools verifies the external binaries and model files a run needs
// before any job starts. Failing fast here turns an hour-later encoder error
// into an immediate, actionable message.
package tools

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/five82/vqsweep/internal/config"
	"github.com/five82/vqsweep/internal/errors"
	ffmpegargs "github.com/five82/vqsweep/internal/ffmpeg"
	"github.com/five82/vqsweep/internal/logging"
)

// vmafModelURL is where the 4K model can be fetched when it is missing.
const vmafModelURL = "https://github.com/Netflix/vmaf/tree/master/model"

// VerifySweep checks every tool an encode sweep for the configured codec
// will invoke.
func VerifySweep(ctx context.Context, cfg *config.Config, logger *logging.Logger) error {
	ffmpeg, err := lookPath(cfg.Tools.FFmpeg, "encoding")
	if err != nil {
		return err
	}
	logger.Debug("found ffmpeg", "path", ffmpeg)

	if _, err := lookPath(cfg.Tools.FFprobe, "source probing"); err != nil {
		return err
	}

	switch cfg.Codec {
	case config.CodecAV1, config.CodecH265:
		if err := checkEncoder(ctx, ffmpeg, cfg.Codec.EncoderLib()); err != nil {
			return err
		}
	case config.CodecVVC:
		vvenc, err := lookPath(cfg.Tools.VVEncApp, "vvc encoding")
		if err != nil {
			return err
		}
		if err := checkRuns(ctx, vvenc, "vvc encoding"); err != nil {
			return err
		}
	}
	return nil
}

// VerifyEvaluation checks every tool a quality evaluation will invoke,
// including the VMAF model file.
func VerifyEvaluation(ctx context.Context, cfg *config.Config, logger *logging.Logger) error {
	ffmpeg, err := lookPath(cfg.Tools.FFmpeg, "quality scoring")
	if err != nil {
		return err
	}
	logger.Debug("found ffmpeg", "path", ffmpeg)

	if _, err := lookPath(cfg.Tools.FFprobe, "bitrate probing"); err != nil {
		return err
	}

	if cfg.Codec == config.CodecVVC {
		vvdec, err := lookPath(cfg.Tools.VVDecApp, "vvc decoding")
		if err != nil {
			return err
		}
		if err := checkRuns(ctx, vvdec, "vvc decoding"); err != nil {
			return err
		}
	}

	return CheckVMAFModel(cfg.VMAFModelPath)
}

// CheckVMAFModel verifies the model file exists, pointing at the upstream
// download when it does not.
func CheckVMAFModel(path string) error {
	if _, err := os.Stat(path); err != nil {
		return errors.NewConfigurationError(fmt.Sprintf(
			"VMAF model not found at %s; download it from %s", path, vmafModelURL))
	}
	return nil
}

// lookPath resolves a tool through PATH, or directly when the configured
// value carries a path separator.
func lookPath(bin, feature string) (string, error) {
	path, err := exec.LookPath(bin)
	if err != nil {
		return "", errors.NewMissingToolError(bin, feature)
	}
	return path, nil
}

// checkEncoder confirms ffmpeg was built with the given encoder library by
// scanning its encoder list.
func checkEncoder(ctx context.Context, ffmpeg, lib string) error {
	cmd := exec.CommandContext(ctx, ffmpeg, ffmpegargs.EncoderListArgs()...)
	out, err := cmd.Output()
	if err != nil {
		return errors.WrapExecError(ffmpeg+" -encoders", err, "")
	}
	for _, line := range strings.Split(string(out), "\n") {
		fields := strings.Fields(line)
		if len(fields) >= 2 && fields[1] == lib {
			return nil
		}
	}
	return errors.NewMissingToolError("ffmpeg with "+lib, "encoding")
}

// checkRuns confirms the binary actually executes. vvencapp and vvdecapp
// are often present but dynamically unlinkable after toolchain upgrades.
func checkRuns(ctx context.Context, bin, feature string) error {
	cmd := exec.CommandContext(ctx, bin, "--version")
	if err := cmd.Run(); err != nil {
		return errors.NewMissingToolError(bin, feature)
	}
	return nil
}
