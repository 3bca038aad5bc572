package ffmpeg

import (
	"reflect"
	"strings"
	"testing"

	"github.com/five82/vqsweep/internal/config"
)

var res720 = config.Resolution{Name: "720p", Width: 1280, Height: 720}

func TestAV1EncodeArgs(t *testing.T) {
	got := AV1EncodeArgs("src.mp4", res720, 30, 29.97002997, 12.48, "out.mkv")
	want := []string{
		"-y",
		"-i", "src.mp4",
		"-vf", "scale=1280:720",
		"-r", "29.97003",
		"-t", "12.480",
		"-c:v", "libaom-av1",
		"-crf", "30",
		"-b:v", "0",
		"-cpu-used", "6",
		"-pix_fmt", "yuv420p",
		"out.mkv",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("AV1EncodeArgs = %v, want %v", got, want)
	}
}

func TestH265EncodeArgs(t *testing.T) {
	got := H265EncodeArgs("src.mp4", res720, 24, 25, "out.mp4")
	want := []string{
		"-y",
		"-r", "25",
		"-i", "src.mp4",
		"-vf", "scale=1280:720",
		"-r", "25",
		"-c:v", "libx265",
		"-x265-params", "qp=24",
		"-preset", "fast",
		"-pix_fmt", "yuv420p",
		"-shortest",
		"out.mp4",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("H265EncodeArgs = %v, want %v", got, want)
	}
}

func TestY4MPipeAndVVEncArgs(t *testing.T) {
	pipe := Y4MPipeArgs("src.mp4", res720)
	want := []string{"-i", "src.mp4", "-vf", "scale=1280:720", "-pix_fmt", "yuv420p", "-f", "yuv4mpegpipe", "-"}
	if !reflect.DeepEqual(pipe, want) {
		t.Errorf("Y4MPipeArgs = %v, want %v", pipe, want)
	}

	enc := VVEncArgs(res720, 36, "out.vvc")
	wantEnc := []string{"-s", "1280x720", "--qp", "36", "--preset", "faster", "-i", "-", "-o", "out.vvc"}
	if !reflect.DeepEqual(enc, wantEnc) {
		t.Errorf("VVEncArgs = %v, want %v", enc, wantEnc)
	}
}

func TestVVDecAndUpscaleArgs(t *testing.T) {
	dec := VVDecArgs("in.vvc", "tmp.yuv")
	if !reflect.DeepEqual(dec, []string{"-b", "in.vvc", "-o", "tmp.yuv", "-v", "0"}) {
		t.Errorf("VVDecArgs = %v", dec)
	}

	up := UpscaleDecodedArgs("tmp.yuv", res720, "decoded.mp4")
	want := []string{
		"-y",
		"-f", "rawvideo",
		"-video_size", "1280x720",
		"-pixel_format", "yuv420p",
		"-i", "tmp.yuv",
		"-vf", "scale=3840:2160:flags=lanczos",
		"-c:v", "libx264",
		"-crf", "18",
		"-preset", "medium",
		"-pix_fmt", "yuv420p",
		"decoded.mp4",
	}
	if !reflect.DeepEqual(up, want) {
		t.Errorf("UpscaleDecodedArgs = %v, want %v", up, want)
	}
}

func TestVMAFFilter(t *testing.T) {
	filter := VMAFFilter("models/vmaf_4k_v0.6.1.json", "report.json")

	if !strings.HasPrefix(filter, "[0:v]scale=3840:2160:flags=bicubic,fps=60[dis];") {
		t.Errorf("distorted leg malformed: %s", filter)
	}
	if !strings.Contains(filter, "[1:v]scale=3840:2160:flags=bicubic,fps=60[ref];") {
		t.Errorf("reference leg malformed: %s", filter)
	}
	if !strings.Contains(filter, "libvmaf=model=path=models/vmaf_4k_v0.6.1.json:log_fmt=json:log_path=report.json") {
		t.Errorf("libvmaf leg malformed: %s", filter)
	}
}

func TestVMAFFilterEscapesSeparators(t *testing.T) {
	filter := VMAFFilter("C:/models/m.json", "r.json")
	if !strings.Contains(filter, `path=C\:/models/m.json`) {
		t.Errorf("colon in model path not escaped: %s", filter)
	}
}

func TestVMAFArgs(t *testing.T) {
	got := VMAFArgs("dist.mkv", "ref.mp4", "FILTER")
	want := []string{"-i", "dist.mkv", "-i", "ref.mp4", "-lavfi", "FILTER", "-f", "null", "-"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("VMAFArgs = %v, want %v", got, want)
	}
}
