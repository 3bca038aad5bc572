package sweep

import (
	"github.com/five82/vqsweep/internal/chain"
	"github.com/five82/vqsweep/internal/config"
	"github.com/five82/vqsweep/internal/ffmpeg"
	"github.com/five82/vqsweep/internal/ffprobe"
	"github.com/five82/vqsweep/internal/grid"
)

// encodeChain builds the process chain for one grid job. AV1 and H265 are a
// single ffmpeg invocation; VVC pipes ffmpeg's y4m output into vvencapp.
func encodeChain(cfg *config.Config, job grid.Job, info *ffprobe.SourceInfo) chain.Chain {
	var stages []chain.Stage
	switch job.Codec {
	case config.CodecVVC:
		stages = []chain.Stage{
			{
				Name:   "y4m pipe",
				Bin:    cfg.Tools.FFmpeg,
				Args:   ffmpeg.Y4MPipeArgs(job.Source, job.Resolution),
				Stdout: chain.StdoutPipeNext,
			},
			{
				Name:  "vvc encode",
				Bin:   cfg.Tools.VVEncApp,
				Args:  ffmpeg.VVEncArgs(job.Resolution, job.QualityParam, job.OutputPath),
				Stdin: chain.StdinFromPrev,
			},
		}
	case config.CodecH265:
		stages = []chain.Stage{{
			Name: "h265 encode",
			Bin:  cfg.Tools.FFmpeg,
			Args: ffmpeg.H265EncodeArgs(job.Source, job.Resolution, job.QualityParam, info.FPS, job.OutputPath),
		}}
	default:
		stages = []chain.Stage{{
			Name: "av1 encode",
			Bin:  cfg.Tools.FFmpeg,
			Args: ffmpeg.AV1EncodeArgs(job.Source, job.Resolution, job.QualityParam, info.FPS, info.DurationSecs, job.OutputPath),
		}}
	}
	return chain.Chain{Stages: stages, Timeout: cfg.ChainTimeout}
}

// decodeChain builds the chain that turns a raw VVC bitstream into a scorable
// 4K derivative: vvdecapp writes raw YUV, then ffmpeg upscales and wraps it.
// The two stages run sequentially through the yuvPath intermediate because
// vvdecapp cannot stream planar output.
func decodeChain(cfg *config.Config, job grid.Job, yuvPath, decodedPath string) chain.Chain {
	return chain.Chain{
		Stages: []chain.Stage{
			{
				Name: "vvc decode",
				Bin:  cfg.Tools.VVDecApp,
				Args: ffmpeg.VVDecArgs(job.OutputPath, yuvPath),
			},
			{
				Name: "upscale decoded",
				Bin:  cfg.Tools.FFmpeg,
				Args: ffmpeg.UpscaleDecodedArgs(yuvPath, job.Resolution, decodedPath),
			},
		},
		Timeout: cfg.ChainTimeout,
	}
}

// vmafChain builds the single-stage scoring chain for one encoded artifact.
func vmafChain(cfg *config.Config, distorted, reference, reportPath string) chain.Chain {
	filter := ffmpeg.VMAFFilter(cfg.VMAFModelPath, reportPath)
	return chain.Chain{
		Stages: []chain.Stage{{
			Name: "vmaf score",
			Bin:  cfg.Tools.FFmpeg,
			Args: ffmpeg.VMAFArgs(distorted, reference, filter),
		}},
		Timeout: cfg.ChainTimeout,
	}
}
