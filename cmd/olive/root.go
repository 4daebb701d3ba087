package main

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/olive-web/olive"
	"github.com/olive-web/olive/config"
)

type options struct {
	root        string
	configFile  string
	logLevel    string
	readTimeout time.Duration
}

func newRootCmd() *cobra.Command {
	var opts options

	cmd := &cobra.Command{
		Use:           "olive <port>",
		Short:         "Serve static files and CGI programs over HTTP/1.0",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := newLogger(cmd.ErrOrStderr(), opts.logLevel)
			if err != nil {
				return err
			}

			if err = run(args[0], cmd.Flags(), opts, logger); err != nil {
				logger.Error().Err(err).Msg("olive stopped")
			}

			return err
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.root, "root", ".", "document root, prepended to every request target")
	flags.StringVar(&opts.configFile, "config", "", "JSON config file applied on top of the defaults")
	flags.StringVar(&opts.logLevel, "log-level", "info", "one of trace, debug, info, warn, error")
	flags.DurationVar(&opts.readTimeout, "read-timeout", config.Default().NET.ReadTimeout,
		"per-connection read deadline, 0 disables it")

	return cmd
}

// loadConfig builds the config from the file, if any. Explicitly set flags override it.
func loadConfig(flags *pflag.FlagSet, opts options) (*config.Config, error) {
	cfg := config.Default()
	if len(opts.configFile) > 0 {
		var err error
		if cfg, err = config.Load(opts.configFile); err != nil {
			return nil, err
		}
	}

	if len(opts.configFile) == 0 || flags.Changed("root") {
		cfg.Static.Root = opts.root
	}

	if len(opts.configFile) == 0 || flags.Changed("read-timeout") {
		cfg.NET.ReadTimeout = opts.readTimeout
	}

	return cfg, config.Validate(cfg)
}

func run(port string, flags *pflag.FlagSet, opts options, logger zerolog.Logger) error {
	cfg, err := loadConfig(flags, opts)
	if err != nil {
		return err
	}

	app, err := olive.New(port)
	if err != nil {
		return err
	}

	app.Tune(cfg).
		Logger(printfLogger{logger}).
		NotifyOnStart(func() {
			logger.Info().
				Str("addr", app.Addr().String()).
				Str("root", cfg.Static.Root).
				Msg("listening")
		}).
		NotifyOnStop(func() {
			logger.Info().Uint64("served", app.Served()).Msg("stopped")
		})

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(signals)

	go func() {
		sig := <-signals
		logger.Info().Str("signal", sig.String()).Msg("shutting down")
		app.Stop()
	}()

	return errors.Wrap(app.Serve(), "serve")
}
