package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/thushan/llmsource/internal/app"
	"github.com/thushan/llmsource/internal/config"
	"github.com/thushan/llmsource/internal/logger"
	"github.com/thushan/llmsource/internal/util"
	"github.com/thushan/llmsource/internal/version"
)

type options struct {
	configFile string
	logLevel   string
}

// session is one loaded configuration with its application started
type session struct {
	app     *app.Application
	cfg     *config.Config
	log     *logger.StyledLogger
	cleanup func()
}

func (s *session) Close() {
	if err := s.app.Stop(context.Background()); err != nil {
		s.log.Error("Error during shutdown", "error", err)
	}
	s.cleanup()
}

type sessionMode struct {
	// terminal logging, off whenever stdout belongs to something else
	terminal bool
	// watch the setup file for edits made outside this process
	watch bool
}

func NewRootCommand() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:   version.ShortName,
		Short: version.Description,
		Long: `llmsource configures LocalAI sources and discovers the models they serve.

Examples:
  llmsource setup localai           # edit the host URL and fetch models
  llmsource fetch --all             # list the models of every source
  llmsource fetch localai --json    # machine readable output
  llmsource sources                 # show configured sources`,
		Version:       version.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if !util.ShouldUseColors() {
				pterm.DisableColor()
			}
		},
	}

	root.PersistentFlags().StringVarP(&opts.configFile, "config", "c", "", "Configuration file (default ./config.yaml)")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "Override the configured log level")

	root.AddCommand(newSetupCommand(opts))
	root.AddCommand(newFetchCommand(opts))
	root.AddCommand(newSourcesCommand(opts))
	root.AddCommand(newVersionCommand())

	return root
}

// Execute runs the CLI and returns the process exit code
func Execute() int {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := NewRootCommand().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func openSession(ctx context.Context, opts *options, mode sessionMode) (*session, error) {
	cfg, err := config.Load(opts.configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	if opts.logLevel != "" {
		cfg.Logging.Level = opts.logLevel
	}
	if !mode.watch {
		cfg.Store.Watch = false
	}

	logInstance, styledLogger, cleanup, err := logger.NewWithTheme(buildLoggerConfig(cfg, mode.terminal))
	if err != nil {
		return nil, fmt.Errorf("failed to initialise logger: %w", err)
	}
	slog.SetDefault(logInstance)

	if cfg.Filename != "" {
		styledLogger.Debug("Loaded configuration", "file", cfg.Filename)
	}

	application, err := app.New(cfg, styledLogger)
	if err != nil {
		cleanup()
		return nil, err
	}
	if err := application.Start(ctx); err != nil {
		_ = application.Stop(ctx)
		cleanup()
		return nil, fmt.Errorf("failed to start: %w", err)
	}

	return &session{
		app:     application,
		cfg:     cfg,
		log:     styledLogger,
		cleanup: cleanup,
	}, nil
}

func buildLoggerConfig(cfg *config.Config, terminal bool) *logger.Config {
	return &logger.Config{
		Level:          cfg.Logging.Level,
		LogDir:         cfg.Logging.Dir,
		Theme:          cfg.Logging.Theme,
		MaxSize:        cfg.Logging.MaxSize,
		MaxBackups:     cfg.Logging.MaxBackups,
		MaxAge:         cfg.Logging.MaxAge,
		FileOutput:     cfg.Logging.FileOutput,
		TerminalOutput: terminal,
	}
}
