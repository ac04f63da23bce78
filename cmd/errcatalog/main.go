package main

import (
	"fmt"
	"os"

	"github.com/go-logr/zapr"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"errcatalog/internal/cli"
	"errcatalog/internal/modules"
	"errcatalog/pkg/catalog"
)

var (
	version    = "dev"
	commit     = "none"
	date       = "unknown"
	debug      = false
	configPath = ""
)

// logLevel is raised to debug by the --debug flag once flags are parsed.
var logLevel = zap.NewAtomicLevelAt(zap.ErrorLevel)

func main() {
	logger, err := newConsoleLogger(logLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	initCommands(logger)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "errcatalog",
	Short: "Error catalog inspection CLI",
	Long: `errcatalog inspects the error codes registered by every package of the program:
- List and show registered codes
- Check the catalog for duplicate or incomplete registrations
- Export the catalog as JSON, YAML, Markdown or a ConfigMap
- Compare exported catalogs and publish them to a cluster`,
	Version:       fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Set debug mode globally so logStructuredError can check it
		cli.SetDebugMode(debug)
		if debug {
			logLevel.SetLevel(zap.DebugLevel)
		}
		cli.ConfigureColor(os.Stdout)

		cfg, err := cli.LoadConfig(configPath)
		if err != nil {
			return err
		}
		*cli.DefaultCLIConfig = *cfg
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug mode with structured error logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default errcatalog.yaml in . or $HOME/.config/errcatalog)")
}

// catalogSource is the accessor the subcommands read the catalog from.
var catalogSource *catalog.Accessor

func initCommands(logger *zap.Logger) {
	catalogSource = modules.Init(zapr.NewLogger(logger))
	rootCmd.AddCommand(cli.NewCatalogCmds(catalogSource, logger)...)
}

// newConsoleLogger returns a human-friendly console logger with timestamps.
// The level starts at ErrorLevel so structured error logs (when the debug
// flag is enabled) show; --debug lowers it to DebugLevel.
func newConsoleLogger(level zap.AtomicLevel) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Encoding = "console"
	cfg.Level = level
	cfg.EncoderConfig = zapcore.EncoderConfig{
		TimeKey:        "ts",
		LevelKey:       "level",
		NameKey:        "",
		CallerKey:      "",
		MessageKey:     "msg",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.CapitalColorLevelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
	}
	cfg.OutputPaths = []string{"stdout"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	cfg.DisableCaller = true
	cfg.DisableStacktrace = true
	return cfg.Build()
}
