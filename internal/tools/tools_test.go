package tools

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/five82/vqsweep/internal/config"
	"github.com/five82/vqsweep/internal/errors"
	"github.com/five82/vqsweep/internal/logging"
)

// stubTool writes an executable shell script and returns its path.
func stubTool(t *testing.T, dir, name, script string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("stub tools require a POSIX shell")
	}
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+script+"\n"), 0o755))
	return path
}

func quietLogger() *logging.Logger {
	return logging.New(logging.Config{Enabled: false})
}

func testConfig(t *testing.T, codec config.Codec) *config.Config {
	t.Helper()
	cfg := config.NewConfig("/src", "/out", "/results")
	cfg.Codec = codec
	return cfg
}

func TestVerifySweepMissingFFmpeg(t *testing.T) {
	cfg := testConfig(t, config.CodecAV1)
	cfg.Tools.FFmpeg = filepath.Join(t.TempDir(), "no_such_ffmpeg")

	err := VerifySweep(context.Background(), cfg, quietLogger())
	require.Error(t, err)
	assert.True(t, errors.IsKind(err, errors.KindMissingTool))
}

func TestVerifySweepEncoderPresent(t *testing.T) {
	dir := t.TempDir()
	encoders := ` V....D libaom-av1           libaom AV1 (codec av1)
 V....D libx265              libx265 H.265 / HEVC`
	cfg := testConfig(t, config.CodecAV1)
	cfg.Tools.FFmpeg = stubTool(t, dir, "ffmpeg", `printf '%s\n' "`+encoders+`"`)
	cfg.Tools.FFprobe = stubTool(t, dir, "ffprobe", "exit 0")

	require.NoError(t, VerifySweep(context.Background(), cfg, quietLogger()))

	cfg.Codec = config.CodecH265
	require.NoError(t, VerifySweep(context.Background(), cfg, quietLogger()))
}

func TestVerifySweepEncoderAbsent(t *testing.T) {
	dir := t.TempDir()
	cfg := testConfig(t, config.CodecAV1)
	cfg.Tools.FFmpeg = stubTool(t, dir, "ffmpeg", `printf ' V....D libx264  x264\n'`)
	cfg.Tools.FFprobe = stubTool(t, dir, "ffprobe", "exit 0")

	err := VerifySweep(context.Background(), cfg, quietLogger())
	require.Error(t, err)
	assert.True(t, errors.IsKind(err, errors.KindMissingTool))
	assert.Contains(t, err.Error(), "libaom-av1")
}

func TestVerifySweepVVCEncoder(t *testing.T) {
	dir := t.TempDir()
	cfg := testConfig(t, config.CodecVVC)
	cfg.Tools.FFmpeg = stubTool(t, dir, "ffmpeg", "exit 0")
	cfg.Tools.FFprobe = stubTool(t, dir, "ffprobe", "exit 0")
	cfg.Tools.VVEncApp = stubTool(t, dir, "vvencapp", "exit 0")

	require.NoError(t, VerifySweep(context.Background(), cfg, quietLogger()))

	cfg.Tools.VVEncApp = stubTool(t, dir, "vvencapp_broken", "exit 127")
	err := VerifySweep(context.Background(), cfg, quietLogger())
	require.Error(t, err)
	assert.True(t, errors.IsKind(err, errors.KindMissingTool))
}

func TestVerifyEvaluationChecksModel(t *testing.T) {
	dir := t.TempDir()
	cfg := testConfig(t, config.CodecAV1)
	cfg.Tools.FFmpeg = stubTool(t, dir, "ffmpeg", "exit 0")
	cfg.Tools.FFprobe = stubTool(t, dir, "ffprobe", "exit 0")
	cfg.VMAFModelPath = filepath.Join(dir, "vmaf_4k_v0.6.1.json")

	err := VerifyEvaluation(context.Background(), cfg, quietLogger())
	require.Error(t, err)
	assert.True(t, errors.IsKind(err, errors.KindConfiguration))
	assert.Contains(t, err.Error(), "download")

	require.NoError(t, os.WriteFile(cfg.VMAFModelPath, []byte("{}"), 0o644))
	require.NoError(t, VerifyEvaluation(context.Background(), cfg, quietLogger()))
}

func TestVerifyEvaluationVVCNeedsDecoder(t *testing.T) {
	dir := t.TempDir()
	cfg := testConfig(t, config.CodecVVC)
	cfg.Tools.FFmpeg = stubTool(t, dir, "ffmpeg", "exit 0")
	cfg.Tools.FFprobe = stubTool(t, dir, "ffprobe", "exit 0")
	cfg.Tools.VVDecApp = filepath.Join(dir, "no_such_vvdecapp")
	cfg.VMAFModelPath = filepath.Join(dir, "model.json")
	require.NoError(t, os.WriteFile(cfg.VMAFModelPath, []byte("{}"), 0o644))

	err := VerifyEvaluation(context.Background(), cfg, quietLogger())
	require.Error(t, err)
	assert.True(t, errors.IsKind(err, errors.KindMissingTool))
}
