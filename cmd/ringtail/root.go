package main

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	ringbuffer "github.com/jonoton/go-fifo"
)

const (
	defaultCapacity = 10
	defaultLogLevel = "warn"
	envPrefix       = "RINGTAIL"
)

type cliOptions struct {
	configFile string
	capacity   int
	skip       int
	resize     int
	jsonOutput bool
	metrics    bool
	logger     *zap.Logger
}

func newRootCommand() *cobra.Command {
	opts := cliOptions{
		logger: zap.NewNop(),
	}
	v := viper.New()

	root := &cobra.Command{
		Use:   "ringtail [file...]",
		Short: "Print the last lines of the input, kept in a fixed-size ring buffer",
		Long: "ringtail reads lines from the given files (or stdin, or - for stdin) into a\n" +
			"ring buffer of --capacity lines, so only the newest lines are kept, and\n" +
			"prints what is held oldest first.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := loadConfig(v, cmd.Flags(), &opts); err != nil {
				return err
			}
			logger, err := newLogger(v.GetString("log-level"))
			if err != nil {
				return usageError("invalid --log-level: %v", err)
			}
			opts.logger = logger
			return nil
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			_ = opts.logger.Sync()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTail(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout(), cmd.ErrOrStderr(), args, &opts)
		},
	}

	flags := root.Flags()
	flags.StringVar(&opts.configFile, "config", "", "config file (yaml, toml or json)")
	flags.String("capacity", "", "number of lines to keep (default 10)")
	flags.Int("skip", 0, "drop this many of the oldest kept lines before printing")
	flags.Int("resize", 0, "resize the buffer to this capacity after reading")
	flags.Bool("json", false, "output JSON")
	flags.Bool("metrics", false, "write ring buffer metrics to stderr after printing")
	flags.String("log-level", defaultLogLevel, "log level (debug, info, warn, error)")

	return root
}

// loadConfig resolves settings from flags, RINGTAIL_* environment variables,
// the config file and defaults, in that order of precedence.
func loadConfig(v *viper.Viper, flags *pflag.FlagSet, opts *cliOptions) error {
	v.SetDefault("capacity", defaultCapacity)
	v.SetDefault("skip", 0)
	v.SetDefault("resize", 0)
	v.SetDefault("json", false)
	v.SetDefault("metrics", false)
	v.SetDefault("log-level", defaultLogLevel)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	// Unchanged flags rank below the defaults set above, so an empty
	// --capacity never shadows the environment or the config file.
	if err := v.BindPFlags(flags); err != nil {
		return errors.Wrap(err, "bind flags")
	}

	if opts.configFile != "" {
		v.SetConfigFile(opts.configFile)
		if err := v.ReadInConfig(); err != nil {
			return errors.Wrapf(err, "read config %s", opts.configFile)
		}
	}

	capacity, err := ringbuffer.ParseCapacity(v.Get("capacity"))
	if err != nil {
		return usageError("invalid capacity: %v", err)
	}
	opts.capacity = capacity

	skip, err := ringbuffer.ParseCount(v.Get("skip"))
	if err != nil {
		return usageError("invalid skip: %v", err)
	}
	opts.skip = skip

	resize, err := parseResize(v.Get("resize"))
	if err != nil {
		return usageError("invalid resize: %v", err)
	}
	opts.resize = resize

	opts.jsonOutput = v.GetBool("json")
	opts.metrics = v.GetBool("metrics")
	return nil
}

// parseResize returns 0 when no resize is requested, otherwise a validated
// capacity.
func parseResize(raw any) (int, error) {
	if n, err := ringbuffer.ParseCount(raw); err == nil && n == 0 {
		return 0, nil
	}
	return ringbuffer.ParseCapacity(raw)
}

func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	return cfg.Build()
}
