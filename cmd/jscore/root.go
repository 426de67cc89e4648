package main

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"jscore/internal/config"
	jserrors "jscore/internal/errors"
	"jscore/internal/output"
	"jscore/internal/slogutil"
	"jscore/internal/version"
)

// skipConfigAnnotation marks commands that must run even when the
// configuration file is broken.
const skipConfigAnnotation = "jscore/skip-config"

var (
	configPathFlag string
	logLevelFlag   string
	verbosityFlag  int
	quietFlag      bool
	logFileFlag    string
	formatFlag     string
	cacheFlag      string
)

// runState is what PersistentPreRunE resolves for the running command.
type runState struct {
	cfg       *config.Config
	cfgPath   string
	format    output.Format
	cachePath string
	logger    *slog.Logger
	closer    io.Closer
}

var state = runState{logger: slogutil.NewDiscardLogger()}

func (s *runState) close() {
	if s.closer != nil {
		_ = s.closer.Close()
		s.closer = nil
	}
}

var rootCmd = &cobra.Command{
	Use:   "jscore",
	Short: "jscore - readability scores for JavaScript and TypeScript",
	Long: `jscore scores how hard a piece of JavaScript or TypeScript is to read.

Every syntax construct carries a weight (branches, jumps, loops, implicit
calls, destructuring); the score is the sum over the whole syntax tree.`,
	Version:           version.Version,
	SilenceErrors:     true,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.SetVersionTemplate("jscore version {{.Version}}\n")
	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return jserrors.New(jserrors.InvalidArgument, "invalid flag", err)
	})

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configPathFlag, "config", "", "Config file (default: ./jscore.{toml,yaml,json} or ~/.config/jscore/)")
	flags.StringVar(&logLevelFlag, "log-level", "", "Log level: debug, info, warn, error (overrides -v and config)")
	flags.CountVarP(&verbosityFlag, "verbose", "v", "Increase log verbosity (-v info, -vv debug)")
	flags.BoolVarP(&quietFlag, "quiet", "q", false, "Suppress all log output")
	flags.StringVar(&logFileFlag, "log-file", "", "Also write debug logs to this file")
	flags.StringVar(&formatFlag, "format", "", "Output format: human, json, yaml, toml (default from config)")
	flags.StringVar(&cacheFlag, "cache", "", "Score cache database (default from cache.path; empty disables)")
}

// setup loads configuration and builds the logger for the command.
func setup(cmd *cobra.Command, _ []string) error {
	cfg := config.DefaultConfig()
	cfgPath := ""
	if cmd.Annotations[skipConfigAnnotation] == "" {
		result, err := config.LoadConfig(configPathFlag)
		if err != nil {
			return err
		}
		cfg, cfgPath = result.Config, result.Path
	}

	formatName := cfg.Output.Format
	if formatFlag != "" {
		formatName = formatFlag
	}
	format, err := output.ParseFormat(formatName)
	if err != nil {
		return jserrors.New(jserrors.InvalidArgument, "invalid --format", err)
	}

	logger, closer, err := slogutil.Setup(slogutil.Options{
		Stderr:     cmd.ErrOrStderr(),
		Level:      resolveLevel(cmd, cfg),
		File:       logFileFlag,
		FileLevel:  slog.LevelDebug,
		MaxSize:    cfg.Logging.MaxSize,
		MaxBackups: cfg.Logging.MaxBackups,
	})
	if err != nil {
		return jserrors.New(jserrors.InternalError, "cannot open log file", err)
	}

	cachePath := cfg.Cache.Path
	if cmd.Flags().Changed("cache") {
		cachePath = cacheFlag
	}

	state.close()
	state = runState{
		cfg:       cfg,
		cfgPath:   cfgPath,
		format:    format,
		cachePath: cachePath,
		logger:    logger.With("runId", uuid.NewString()),
		closer:    closer,
	}

	state.logger.Debug("Configuration loaded",
		"version", version.Get().Short(),
		"command", cmd.CommandPath(),
		"config", describePath(cfgPath),
		"format", string(format),
		"cache", cachePath,
	)
	return nil
}

// resolveLevel picks the terminal log level: --log-level, then -v/--quiet,
// then the configured level.
func resolveLevel(cmd *cobra.Command, cfg *config.Config) slog.Level {
	flags := cmd.Flags()
	switch {
	case flags.Changed("log-level"):
		return slogutil.LevelFromString(logLevelFlag)
	case flags.Changed("verbose"), flags.Changed("quiet"):
		return slogutil.LevelFromVerbosity(verbosityFlag, quietFlag)
	}
	return slogutil.LevelFromString(cfg.Logging.Level)
}

// argsRange is cobra.RangeArgs reporting INVALID_ARGUMENT.
func argsRange(min, max int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := cobra.RangeArgs(min, max)(cmd, args); err != nil {
			return jserrors.New(jserrors.InvalidArgument, fmt.Sprintf("usage: %s", cmd.UseLine()), err)
		}
		return nil
	}
}

func describePath(path string) string {
	if path == "" {
		return "(defaults)"
	}
	return path
}

// encode writes v to w in the format chosen for this run.
func encode(w io.Writer, v interface{}) error {
	return output.Encode(w, v, state.format)
}
