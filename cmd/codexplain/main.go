// cmd/codexplain/main.go
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/julianshen/codexplain/internal/api"
	"github.com/julianshen/codexplain/internal/config"
	"github.com/julianshen/codexplain/internal/i18n"
	"github.com/julianshen/codexplain/internal/logger"
	"github.com/julianshen/codexplain/internal/runner"
	"github.com/julianshen/codexplain/internal/store"
	"github.com/julianshen/codexplain/internal/tui"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"

	configPath  string
	apiURLFlag  string
	debugFlag   bool
	verboseFlag bool
)

func versionString() string {
	return fmt.Sprintf("codexplain %s (commit: %s, built: %s)", version, commit, date)
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		var exitErr *runner.ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.Code)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "codexplain [path]",
		Short: "Turn a codebase into a tutorial",
		Long: "codexplain submits a repository to the tutorial generator backend and lets you read\n" +
			"the result: chapters, diagrams and code snippets. Without a subcommand it starts the\n" +
			"interactive client at path (/, /generate or /tutorial/ID).",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			start := "/"
			if len(args) == 1 {
				start = args[0]
			}
			return runInteractive(commandContext(cmd), start)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file (default ~/.config/codexplain/config.toml)")
	rootCmd.PersistentFlags().StringVar(&apiURLFlag, "api-url", "", "override the backend base URL")
	rootCmd.PersistentFlags().BoolVar(&debugFlag, "debug", false, "log debug output")
	rootCmd.PersistentFlags().BoolVar(&verboseFlag, "verbose", false, "log informational output")

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), versionString())
		},
	}

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(generateCmd())
	rootCmd.AddCommand(showCmd())
	rootCmd.AddCommand(exportCmd())
	rootCmd.AddCommand(healthCmd())
	rootCmd.AddCommand(historyCmd())

	return rootCmd
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// loadConfig resolves the config path, loads the file, then applies the
// environment and flag overrides in that order.
func loadConfig() (*config.Config, string, error) {
	path := configPath
	if path == "" {
		path = config.DefaultPath()
	}

	cfg, err := config.Load(path)
	if err != nil {
		return nil, "", fmt.Errorf("loading config: %w", err)
	}
	if err := config.ApplyEnv(cfg); err != nil {
		return nil, "", fmt.Errorf("applying environment: %w", err)
	}
	if apiURLFlag != "" {
		cfg.API.BaseURL = apiURLFlag
	}
	if err := cfg.Validate(); err != nil {
		return nil, "", fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, path, nil
}

// newClient builds the backend client from the api section of cfg.
func newClient(cfg *config.Config) *api.Client {
	return api.NewClient(cfg.API.BaseURL,
		api.WithTimeouts(cfg.API.Timeout, cfg.API.FetchTimeout),
		api.WithUserAgent("codexplain/"+version),
		api.WithCompatibleVersions(cfg.API.CompatibleVersions),
	)
}

// openHistory opens the local history database, or returns nil when
// history is disabled.
func openHistory(cfg *config.Config) (*store.Store, error) {
	if !cfg.History.Enabled {
		return nil, nil
	}
	s, err := store.NewStore(cfg.History.Path)
	if err != nil {
		return nil, fmt.Errorf("opening history: %w", err)
	}
	return s, nil
}

// isTerminal reports whether w writes to a terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func runInteractive(ctx context.Context, start string) error {
	if !isTerminal(os.Stdout) {
		return fmt.Errorf("the interactive client needs a terminal; use codexplain generate, show or export instead")
	}

	cfg, path, err := loadConfig()
	if err != nil {
		return err
	}

	logFile, err := logger.InitializeFile(cfg.Log.File, debugFlag, verboseFlag)
	if err != nil {
		return err
	}
	defer logFile.Close()

	tr, err := i18n.New(cfg.UI.Locale)
	if err != nil {
		logger.Warn(ctx, "falling back to English", "locale", cfg.UI.Locale, "error", err)
		tr = i18n.MustNew("en")
	}

	opts := tui.Options{
		Backend:      newClient(cfg),
		Config:       cfg,
		ConfigPath:   path,
		Translations: tr,
		NewBackend:   func(c *config.Config) tui.Backend { return newClient(c) },
		Start:        tui.ParseRoute(start),
		Version:      version,
	}

	history, err := openHistory(cfg)
	if err != nil {
		logger.Warn(ctx, "history unavailable", "error", err)
	}
	if history != nil {
		defer history.Close()
		opts.History = history
	}

	logger.Info(ctx, "starting interactive client", "start", opts.Start.Path(), "backend", cfg.API.BaseURL)
	prog := tea.NewProgram(tui.NewModel(opts), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := prog.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("running TUI: %w", err)
	}
	return nil
}
