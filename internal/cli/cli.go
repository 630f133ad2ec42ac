package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/vk/phasegrid/internal/app"
)

// EnvPrefix is the prefix of environment variables mirroring the flags, e.g.
// PHASEGRID_LOG_LEVEL for --log-level.
const EnvPrefix = "PHASEGRID"

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

func usageError(format string, args ...any) *ExitError {
	return &ExitError{Code: 2, Message: fmt.Sprintf(format, args...)}
}

// Execute runs the phasegrid command line. System output goes to outW, logs
// and diagnostics to errW. Usage problems return an *ExitError with code 2,
// runtime failures one with code 1.
func Execute(ctx context.Context, args []string, outW, errW io.Writer) error {
	root := NewRootCommand(outW, errW)
	root.SetArgs(args)

	err := root.ExecuteContext(ctx)
	if err == nil {
		return nil
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr
	}
	// Anything cobra reports itself (unknown flags, bad args) is a usage error.
	return usageError("%v", err)
}

// NewRootCommand builds the command tree. Each call gets its own viper
// instance so commands can be built repeatedly in tests.
func NewRootCommand(outW, errW io.Writer) *cobra.Command {
	v := viper.New()

	root := &cobra.Command{
		Use:   "phasegrid",
		Short: "Run per-frame pipelines in dependency order",
		Long: `phasegrid loads systems and tags from .hcl and .yaml pipeline files,
orders them by their before/after/tag constraints and runs them
frame after frame in that order.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return initConfig(v, cmd)
		},
	}
	root.SetOut(outW)
	root.SetErr(errW)

	pf := root.PersistentFlags()
	pf.StringP("config", "c", "", "config file providing flag values (yaml)")
	pf.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	pf.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	pf.Bool("no-color", false, "Disable colored output.")

	root.AddCommand(
		newRunCommand(v, outW, errW),
		newPlanCommand(v, outW, errW),
		newGraphCommand(v, outW, errW),
	)
	return root
}

func newRunCommand(v *viper.Viper, outW, errW io.Writer) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run [PATH...]",
		Short: "Run the pipeline frame after frame",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(v, args, outW, errW)
			if err != nil {
				return err
			}
			if err := a.Run(cmd.Context()); err != nil {
				return &ExitError{Code: 1, Message: err.Error()}
			}
			return nil
		},
	}
	f := cmd.Flags()
	f.Int("frames", 1, "Number of frames to run. 0 runs until interrupted.")
	f.Duration("interval", 0, "Minimum time between frame starts, e.g. 16ms.")
	f.String("cron", "", "Start frames on a cron schedule instead of an interval.")
	f.Int("healthcheck-port", 0, "Port for the HTTP health check server. 0 is disabled.")
	return cmd
}

func newPlanCommand(v *viper.Viper, outW, errW io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "plan [PATH...]",
		Short: "Print the run order",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(v, args, outW, errW)
			if err != nil {
				return err
			}
			return a.Plan(outW)
		},
	}
}

func newGraphCommand(v *viper.Viper, outW, errW io.Writer) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "graph [PATH...]",
		Short: "Print the dependency graph, tag sentinels included",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(v, args, outW, errW)
			if err != nil {
				return err
			}
			return a.Graph(outW, v.GetBool("reduce"))
		},
	}
	cmd.Flags().Bool("reduce", false, "Drop edges implied by longer paths before printing.")
	return cmd
}

// initConfig binds the flags of the executing command to viper, then layers
// environment variables and the optional config file underneath them.
func initConfig(v *viper.Viper, cmd *cobra.Command) error {
	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return err
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if cfgFile := v.GetString("config"); cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return usageError("cannot read config file %s: %v", cfgFile, err)
		}
	}
	return nil
}

// parseConfig validates the merged settings into an app.Config.
func parseConfig(v *viper.Viper, args []string) (*app.Config, error) {
	slog.Debug("CLI parser started.")

	paths := args
	if len(paths) == 0 {
		paths = v.GetStringSlice("paths")
	}
	if len(paths) == 0 {
		return nil, usageError("no pipeline path given: pass PATH or set 'paths' in the config file")
	}

	logFormat := strings.ToLower(v.GetString("log-format"))
	if logFormat != "text" && logFormat != "json" {
		return nil, usageError("invalid log-format: must be 'text' or 'json'")
	}

	logLevel := strings.ToLower(v.GetString("log-level"))
	switch logLevel {
	case "debug", "info", "warn", "error":
		// valid
	default:
		return nil, usageError("invalid log-level: must be 'debug', 'info', 'warn', or 'error'")
	}

	cfg, err := app.NewConfig(app.Config{
		Paths:           paths,
		LogFormat:       logFormat,
		LogLevel:        logLevel,
		NoColor:         v.GetBool("no-color"),
		Frames:          v.GetInt("frames"),
		Interval:        v.GetDuration("interval"),
		Cron:            v.GetString("cron"),
		HealthcheckPort: v.GetInt("healthcheck-port"),
	})
	if err != nil {
		return nil, usageError("%v", err)
	}

	slog.Debug("CLI parser finished successfully.", "paths", cfg.Paths, "frames", cfg.Frames, "interval", cfg.Interval.String())
	return cfg, nil
}

func newApp(v *viper.Viper, args []string, outW, errW io.Writer) (*app.App, error) {
	cfg, err := parseConfig(v, args)
	if err != nil {
		return nil, err
	}
	a, err := app.NewApp(outW, errW, cfg)
	if err != nil {
		return nil, &ExitError{Code: 1, Message: err.Error()}
	}
	return a, nil
}
