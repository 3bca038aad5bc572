// Package ffmpeg builds the argument vectors for the external encode, decode,
// and scoring tools. Commands are always explicit argv lists, never shell
// strings.
package ffmpeg

import (
	"fmt"
	"strconv"

	"github.com/five82/vqsweep/internal/config"
	"github.com/five82/vqsweep/internal/util"
)

// AV1EncodeArgs builds the libaom-av1 encode command for one grid cell.
// FPS and duration come from the per-source probe so the derivative matches
// the source timeline exactly.
func AV1EncodeArgs(src string, res config.Resolution, crf int, fps, durationSecs float64, out string) []string {
	return []string{
		"-y",
		"-i", src,
		"-vf", scaleFilter(res),
		"-r", util.FormatFPS(fps),
		"-t", fmt.Sprintf("%.3f", durationSecs),
		"-c:v", "libaom-av1",
		"-crf", strconv.Itoa(crf),
		"-b:v", "0",
		"-cpu-used", strconv.Itoa(config.AV1CPUUsed),
		"-pix_fmt", "yuv420p",
		out,
	}
}

// H265EncodeArgs builds the libx265 encode command for one grid cell.
func H265EncodeArgs(src string, res config.Resolution, qp int, fps float64, out string) []string {
	rate := util.FormatFPS(fps)
	return []string{
		"-y",
		"-r", rate,
		"-i", src,
		"-vf", scaleFilter(res),
		"-r", rate,
		"-c:v", "libx265",
		"-x265-params", fmt.Sprintf("qp=%d", qp),
		"-preset", config.H265Preset,
		"-pix_fmt", "yuv420p",
		"-shortest",
		out,
	}
}

// Y4MPipeArgs builds the ffmpeg half of a VVC encode: scale and emit
// yuv4mpegpipe on stdout for vvencapp to consume.
func Y4MPipeArgs(src string, res config.Resolution) []string {
	return []string{
		"-i", src,
		"-vf", scaleFilter(res),
		"-pix_fmt", "yuv420p",
		"-f", "yuv4mpegpipe",
		"-",
	}
}

// VVEncArgs builds the vvencapp command reading y4m from stdin.
func VVEncArgs(res config.Resolution, qp int, out string) []string {
	return []string{
		"-s", res.Size(),
		"--qp", strconv.Itoa(qp),
		"--preset", config.VVCPreset,
		"-i", "-",
		"-o", out,
	}
}

// VVDecArgs builds the vvdecapp command decoding a raw VVC bitstream to YUV.
func VVDecArgs(in, yuvOut string) []string {
	return []string{
		"-b", in,
		"-o", yuvOut,
		"-v", "0",
	}
}

// UpscaleDecodedArgs builds the ffmpeg command that wraps a decoded raw YUV
// stream back into a 4K container for scoring. res is the resolution the
// bitstream was encoded at; it fixes the rawvideo frame geometry.
func UpscaleDecodedArgs(yuvIn string, res config.Resolution, out string) []string {
	return []string{
		"-y",
		"-f", "rawvideo",
		"-video_size", res.Size(),
		"-pixel_format", "yuv420p",
		"-i", yuvIn,
		"-vf", fmt.Sprintf("scale=%d:%d:flags=lanczos", config.VMAFComparisonWidth, config.VMAFComparisonHeight),
		"-c:v", "libx264",
		"-crf", strconv.Itoa(config.DecodeUpscaleCRF),
		"-preset", config.DecodeUpscalePreset,
		"-pix_fmt", "yuv420p",
		out,
	}
}

// EncoderListArgs builds the ffmpeg invocation used by the pre-flight
// encoder scan.
func EncoderListArgs() []string {
	return []string{"-hide_banner", "-encoders"}
}

func scaleFilter(res config.Resolution) string {
	return fmt.Sprintf("scale=%d:%d", res.Width, res.Height)
}
