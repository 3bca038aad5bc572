// Package main provides the CLI entry point for vqsweep.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/five82/vqsweep/internal/config"
	"github.com/five82/vqsweep/internal/logging"
	"github.com/five82/vqsweep/internal/reporter"
	"github.com/five82/vqsweep/internal/sweep"
)

// Build metadata, set by the release linker flags.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// errJobsFailed signals a finished run with failed jobs; the failure details
// have already been reported.
var errJobsFailed = errors.New("one or more jobs failed")

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		if !errors.Is(err, errJobsFailed) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}

// runFlags holds the flags shared by the sweep and evaluate commands.
type runFlags struct {
	sourceDir   string
	outputDir   string
	resultsDir  string
	logDir      string
	codec       string
	resolutions string
	params      string
	workers     int
	timeout     time.Duration
	vmafModel   string
	ffmpegBin   string
	ffprobeBin  string
	vvencBin    string
	vvdecBin    string
	jsonOutput  bool
	verbose     bool
	noLog       bool
}

func (f *runFlags) register(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringVarP(&f.sourceDir, "source", "s", "video_source", "directory containing source videos")
	flags.StringVarP(&f.outputDir, "output", "o", "encodes", "directory for encoded artifacts")
	flags.StringVarP(&f.resultsDir, "results", "r", "results", "directory for reports and CSV tables")
	flags.StringVar(&f.logDir, "log-dir", "logs", "directory for run logs")
	flags.StringVarP(&f.codec, "codec", "c", "av1", "codec to sweep: av1, h265, or vvc")
	flags.StringVar(&f.resolutions, "resolutions", "360p,720p,1080p,2160p", "comma-separated resolutions to sweep")
	flags.StringVarP(&f.params, "quality-params", "q", "", "comma-separated quality parameters, overriding the codec defaults")
	flags.IntVarP(&f.workers, "workers", "w", 0, "concurrent encode jobs, 0 for automatic")
	flags.DurationVar(&f.timeout, "timeout", 0, "wall-clock budget per process chain, 0 for none")
	flags.StringVar(&f.vmafModel, "vmaf-model", config.DefaultVMAFModelPath, "path to the libvmaf model JSON")
	flags.StringVar(&f.ffmpegBin, "ffmpeg", "", "ffmpeg binary override")
	flags.StringVar(&f.ffprobeBin, "ffprobe", "", "ffprobe binary override")
	flags.StringVar(&f.vvencBin, "vvencapp", "", "vvencapp binary override")
	flags.StringVar(&f.vvdecBin, "vvdecapp", "", "vvdecapp binary override")
	flags.BoolVar(&f.jsonOutput, "json", false, "emit NDJSON progress events instead of terminal output")
	flags.BoolVarP(&f.verbose, "verbose", "v", false, "enable debug detail in the run log")
	flags.BoolVar(&f.noLog, "no-log", false, "disable the run log file")
}

// buildConfig turns parsed flags into a validated run configuration.
func (f *runFlags) buildConfig() (*config.Config, error) {
	cfg := config.NewConfig(f.sourceDir, f.outputDir, f.resultsDir)
	cfg.LogDir = f.logDir
	cfg.Workers = f.workers
	cfg.ChainTimeout = f.timeout
	cfg.VMAFModelPath = f.vmafModel

	codec, err := config.ParseCodec(f.codec)
	if err != nil {
		return nil, err
	}
	cfg.Codec = codec

	resolutions, err := config.ParseResolutionList(f.resolutions)
	if err != nil {
		return nil, err
	}
	cfg.Resolutions = resolutions

	if f.params != "" {
		params, err := config.ParseQualityParams(f.params)
		if err != nil {
			return nil, err
		}
		cfg.QualityParams = params
	}

	if f.ffmpegBin != "" {
		cfg.Tools.FFmpeg = f.ffmpegBin
	}
	if f.ffprobeBin != "" {
		cfg.Tools.FFprobe = f.ffprobeBin
	}
	if f.vvencBin != "" {
		cfg.Tools.VVEncApp = f.vvencBin
	}
	if f.vvdecBin != "" {
		cfg.Tools.VVDecApp = f.vvdecBin
	}

	return cfg, cfg.Validate()
}

func (f *runFlags) reporter() reporter.Reporter {
	if f.jsonOutput {
		return reporter.NewJSONReporter()
	}
	return reporter.NewTerminalReporter()
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "vqsweep",
		Short:         "Codec quality sweeps with VMAF scoring",
		Long:          "vqsweep encodes a grid of resolution and quality-parameter combinations\nper source video and scores each encode against its source with VMAF.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newSweepCmd(), newEvaluateCmd(), newVersionCmd())
	return root
}

func newSweepCmd() *cobra.Command {
	var flags runFlags
	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "Encode the full parameter grid",
		Long:  "Encode every source at every configured resolution and quality parameter.\nJobs whose output already exists are skipped, so an interrupted sweep\ncan be resumed by rerunning it.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.buildConfig()
			if err != nil {
				return err
			}

			if flags.verbose {
				logging.Init(slog.LevelDebug, os.Stderr)
			}
			runLog, err := logging.Setup(cfg.LogDir, flags.verbose, flags.noLog)
			if err != nil {
				return err
			}
			defer runLog.Close()

			rep := flags.reporter()
			rs, err := sweep.RunSweep(cmd.Context(), cfg, rep, runLog)
			if err != nil {
				reportRunError(rep, "sweep could not run", err)
				return errJobsFailed
			}
			if !rs.AllSucceeded() {
				return errJobsFailed
			}
			return nil
		},
	}
	flags.register(cmd)
	return cmd
}

func newEvaluateCmd() *cobra.Command {
	var flags runFlags
	cmd := &cobra.Command{
		Use:   "evaluate",
		Short: "Score encoded artifacts with VMAF and write CSV tables",
		Long:  "Score every encoded artifact of the grid against its source with VMAF,\nprobe artifact bitrates, and write one CSV results table per source.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.buildConfig()
			if err != nil {
				return err
			}

			if flags.verbose {
				logging.Init(slog.LevelDebug, os.Stderr)
			}
			runLog, err := logging.Setup(cfg.LogDir, flags.verbose, flags.noLog)
			if err != nil {
				return err
			}
			defer runLog.Close()

			rep := flags.reporter()
			summary, err := sweep.RunEvaluation(cmd.Context(), cfg, rep, runLog)
			if err != nil {
				reportRunError(rep, "evaluation could not run", err)
				return errJobsFailed
			}
			if !summary.AllScored() {
				return errJobsFailed
			}
			return nil
		},
	}
	flags.register(cmd)
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("vqsweep %s (commit %s, built %s)\n", version, commit, date)
		},
	}
}

func reportRunError(rep reporter.Reporter, title string, err error) {
	rep.Error(reporter.RunError{Title: title, Message: err.Error()})
}
