package cmd

import (
	"fmt"

	tea "charm.land/bubbletea/v2"
	"github.com/spf13/cobra"

	"github.com/citedapp/cited/internal/app"
	"github.com/citedapp/cited/internal/clipboard"
	"github.com/citedapp/cited/internal/config"
	"github.com/citedapp/cited/internal/logger"
)

var (
	debugMode             bool
	quietMode             bool
	backendURL            string
	version, commit, date string
)

// SetVersionInfo sets version information from ldflags
func SetVersionInfo(v, c, d string) {
	version, commit, date = v, c, d
}

var rootCmd = &cobra.Command{
	Use:   "cited",
	Short: "TUI for chatting with a retrieval backend, citations included",
	Long: `Cited is a TUI client for a retrieval-augmented chat backend.
Ask questions, read answers with inline citation markers, jump between
the cited passages, and open the source documents they came from.`,
	RunE:          runTUI,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().BoolVarP(&quietMode, "quiet", "q", false, "Reduce logging to info level only")
	rootCmd.Flags().StringVar(&backendURL, "backend", "", "Backend base URL (overrides the config file)")
}

func initConfig() {
	if quietMode {
		logger.SetDebug(false)
	} else if debugMode {
		logger.SetDebug(true)
	}
}

// Execute runs the root command
func Execute() error {
	// Set version dynamically
	rootCmd.Version = version
	rootCmd.SetVersionTemplate(versionTemplate())
	return rootCmd.Execute()
}

func versionTemplate() string {
	if commit != "none" && commit != "" {
		return fmt.Sprintf("cited %s\n  commit: %s\n  built:  %s\n", version, commit, date)
	}
	return fmt.Sprintf("cited %s\n", version)
}

func runTUI(cmd *cobra.Command, args []string) error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}

	if backendURL != "" {
		cfg.SetBackendURL(backendURL)
	}

	// Ensure logger is closed on exit
	defer logger.Close()

	// Clipboard init can fail on headless systems; copy degrades gracefully
	if err := clipboard.Init(); err != nil {
		logger.Warn("Cmd: Clipboard unavailable: %v", err)
	}

	// Create and run the app
	m := app.New(cfg, version)
	p := tea.NewProgram(m)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running app: %w", err)
	}
	return nil
}
