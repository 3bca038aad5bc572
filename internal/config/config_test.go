package config

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigDefaults(t *testing.T) {
	cfg := NewConfig("src", "out", "results")

	assert.Equal(t, CodecAV1, cfg.Codec)
	assert.Len(t, cfg.Resolutions, 4)
	assert.Empty(t, cfg.QualityParams)
	assert.Equal(t, DefaultWorkers, cfg.Workers)
	assert.Equal(t, DefaultChainTimeout, cfg.ChainTimeout)
	assert.Equal(t, DefaultVMAFModelPath, cfg.VMAFModelPath)
	assert.Equal(t, "ffmpeg", cfg.Tools.FFmpeg)
	assert.Equal(t, "vvencapp", cfg.Tools.VVEncApp)

	require.NoError(t, cfg.Validate())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{
			name:    "missing source dir",
			mutate:  func(c *Config) { c.SourceDir = "" },
			wantErr: ErrMissingSourceDir,
		},
		{
			name:    "missing output dir",
			mutate:  func(c *Config) { c.OutputDir = "" },
			wantErr: ErrMissingOutputDir,
		},
		{
			name:    "missing results dir",
			mutate:  func(c *Config) { c.ResultsDir = "" },
			wantErr: ErrMissingResultsDir,
		},
		{
			name:    "unknown codec",
			mutate:  func(c *Config) { c.Codec = Codec("mpeg2") },
			wantErr: ErrUnknownCodec,
		},
		{
			name:    "no resolutions",
			mutate:  func(c *Config) { c.Resolutions = nil },
			wantErr: ErrNoResolutions,
		},
		{
			name:    "nonstandard resolution",
			mutate:  func(c *Config) { c.Resolutions = []Resolution{{Name: "480p", Width: 854, Height: 480}} },
			wantErr: ErrUnknownResolution,
		},
		{
			name:    "quality param over av1 max",
			mutate:  func(c *Config) { c.QualityParams = []int{64} },
			wantErr: ErrInvalidQualityParam,
		},
		{
			name:    "negative quality param",
			mutate:  func(c *Config) { c.QualityParams = []int{-1} },
			wantErr: ErrInvalidQualityParam,
		},
		{
			name: "quality param over h265 max",
			mutate: func(c *Config) {
				c.Codec = CodecH265
				c.QualityParams = []int{52}
			},
			wantErr: ErrInvalidQualityParam,
		},
		{
			name:    "negative workers",
			mutate:  func(c *Config) { c.Workers = -1 },
			wantErr: ErrInvalidWorkers,
		},
		{
			name:    "workers over cap",
			mutate:  func(c *Config) { c.Workers = MaxWorkers + 1 },
			wantErr: ErrInvalidWorkers,
		},
		{
			name:    "negative timeout",
			mutate:  func(c *Config) { c.ChainTimeout = -time.Second },
			wantErr: ErrInvalidTimeout,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewConfig("src", "out", "results")
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestValidateAcceptsH265Range(t *testing.T) {
	cfg := NewConfig("src", "out", "results")
	cfg.Codec = CodecH265
	cfg.QualityParams = []int{0, 28, 51}
	require.NoError(t, cfg.Validate())
}

func TestParseCodec(t *testing.T) {
	tests := []struct {
		input   string
		want    Codec
		wantErr bool
	}{
		{input: "av1", want: CodecAV1},
		{input: "AV1", want: CodecAV1},
		{input: "h265", want: CodecH265},
		{input: "hevc", want: CodecH265},
		{input: "vvc", want: CodecVVC},
		{input: "H266", want: CodecVVC},
		{input: "av2", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseCodec(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnknownCodec)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCodecProperties(t *testing.T) {
	assert.Equal(t, "libaom-av1", CodecAV1.EncoderLib())
	assert.Equal(t, "libx265", CodecH265.EncoderLib())
	assert.Empty(t, CodecVVC.EncoderLib())

	assert.Equal(t, ".mkv", CodecAV1.Container())
	assert.Equal(t, ".mp4", CodecH265.Container())
	assert.Equal(t, ".vvc", CodecVVC.Container())

	assert.Equal(t, "qp", CodecAV1.ParamTag())
	assert.Equal(t, "qp", CodecH265.ParamTag())
	assert.Equal(t, "crf", CodecVVC.ParamTag())

	assert.Equal(t, MaxQPAV1, CodecAV1.MaxQualityParam())
	assert.Equal(t, MaxQPH265, CodecH265.MaxQualityParam())
	assert.Equal(t, MaxQPAV1, CodecVVC.MaxQualityParam())
}

func TestDefaultQualityParams(t *testing.T) {
	// AV1 and H265 sweep a reduced set at 360p; VVC sweeps the same CRF
	// ladder everywhere.
	assert.Equal(t, []int{24, 30}, CodecAV1.DefaultQualityParams("360p"))
	assert.Equal(t, []int{24, 30, 36}, CodecAV1.DefaultQualityParams("720p"))
	assert.Equal(t, []int{24, 30}, CodecH265.DefaultQualityParams("360p"))
	assert.Equal(t, []int{24, 30, 36}, CodecH265.DefaultQualityParams("2160p"))
	assert.Equal(t, []int{18, 24, 30, 36}, CodecVVC.DefaultQualityParams("360p"))
	assert.Equal(t, []int{18, 24, 30, 36}, CodecVVC.DefaultQualityParams("1080p"))
}

func TestQualityParamsForOverride(t *testing.T) {
	cfg := NewConfig("src", "out", "results")
	res, err := ResolutionByName("360p")
	require.NoError(t, err)

	assert.Equal(t, []int{24, 30}, cfg.QualityParamsFor(res))

	cfg.QualityParams = []int{20, 40}
	params := cfg.QualityParamsFor(res)
	assert.Equal(t, []int{20, 40}, params)

	// Returned slice is a copy; mutating it must not leak into the config.
	params[0] = 99
	assert.Equal(t, []int{20, 40}, cfg.QualityParams)
}

func TestParseResolutionList(t *testing.T) {
	resolutions, err := ParseResolutionList("720p, 360p")
	require.NoError(t, err)
	require.Len(t, resolutions, 2)
	assert.Equal(t, "720p", resolutions[0].Name)
	assert.Equal(t, "360p", resolutions[1].Name)

	_, err = ParseResolutionList("720p,720p")
	assert.ErrorIs(t, err, ErrUnknownResolution)

	_, err = ParseResolutionList("540p")
	assert.ErrorIs(t, err, ErrUnknownResolution)

	_, err = ParseResolutionList(" , ,")
	assert.ErrorIs(t, err, ErrNoResolutions)
}

func TestParseQualityParams(t *testing.T) {
	params, err := ParseQualityParams("36, 24,30")
	require.NoError(t, err)
	assert.Equal(t, []int{36, 24, 30}, params)

	_, err = ParseQualityParams("24,24")
	assert.ErrorIs(t, err, ErrInvalidQualityParam)

	_, err = ParseQualityParams("twenty")
	assert.ErrorIs(t, err, ErrInvalidQualityParam)

	_, err = ParseQualityParams("")
	assert.ErrorIs(t, err, ErrNoQualityParams)
}

func TestResolutionHelpers(t *testing.T) {
	res, err := ResolutionByName("1080p")
	require.NoError(t, err)
	assert.Equal(t, "1920x1080", res.Size())
	assert.Equal(t, "1080p", res.String())
}

func TestPathHelpers(t *testing.T) {
	cfg := NewConfig("src", "out", "results")

	assert.Equal(t, filepath.Join("out", "av1_encoded"), cfg.EncodedDir())
	assert.Equal(t, filepath.Join("out", "vvc_decoded"), cfg.DecodedDir())
	assert.Equal(t, filepath.Join("results", "clip"), cfg.SourceResultsDir("clip"))
	assert.Equal(t, filepath.Join("results", "clip", "vmaf"), cfg.ReportDir("clip"))
	assert.Equal(t, filepath.Join("results", "clip", "vmaf_results_av1.csv"), cfg.CSVPath("clip"))

	cfg.Codec = CodecVVC
	assert.Equal(t, filepath.Join("out", "vvc_encoded"), cfg.EncodedDir())
	assert.Equal(t, filepath.Join("results", "clip", "vmaf_results_vvc.csv"), cfg.CSVPath("clip"))
}
