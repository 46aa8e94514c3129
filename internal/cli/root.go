// Package cli builds the versedrop command line interface.
package cli

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/sraja/versedrop/internal/clip"
	"github.com/sraja/versedrop/internal/desktop"
	"github.com/sraja/versedrop/internal/handoff"
	"github.com/sraja/versedrop/internal/logging"
	"github.com/sraja/versedrop/internal/settings"
	"github.com/sraja/versedrop/internal/theme"
	"github.com/sraja/versedrop/internal/tui"
	"github.com/sraja/versedrop/internal/verse"
)

// Version is stamped by the build; "dev" otherwise.
var Version = "dev"

func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		dataPath    string
		logFile     string
		debug       bool
		noAltScreen bool
	)

	cmd := &cobra.Command{
		Use:          "versedrop",
		Short:        "Copy a verse to the clipboard and paste it wherever focus lands",
		Version:      Version,
		SilenceUsage: true,
		RunE: func(_ *cobra.Command, _ []string) error {
			return run(dataPath, logFile, debug, noAltScreen)
		},
	}

	cmd.Flags().StringVar(&dataPath, "data", defaultDataPath(), "verse dataset: a chapter directory or a .db module")
	cmd.Flags().StringVar(&logFile, "log-file", "", "write logs to this file instead of the user cache dir")
	cmd.Flags().BoolVar(&debug, "debug", false, "enable verbose logging")
	cmd.Flags().BoolVar(&noAltScreen, "no-alt-screen", false, "render inline instead of on the alternate screen")
	return cmd
}

func defaultDataPath() string {
	if env := os.Getenv("VERSEDROP_DATA"); env != "" {
		return env
	}
	return "data"
}

func run(dataPath, logFile string, debug, noAltScreen bool) error {
	if logFile == "" {
		if p, err := logging.DefaultPath(); err == nil {
			logFile = p
		}
	}
	if logFile != "" {
		cleanup, err := logging.Setup(logFile, debug)
		if err == nil {
			defer func() { _ = cleanup() }()
		}
	}

	store, err := verse.Open(dataPath)
	if err != nil {
		return fmt.Errorf("open verse data: %w", err)
	}
	defer func() { _ = store.Close() }()

	clipboard, err := clip.NewSystem()
	if err != nil {
		return err
	}

	injector := desktop.NewInjector()
	session := handoff.New(clipboard, injector)

	settingsPath, pathErr := settings.DefaultPath()
	loaded := settings.Default()
	if pathErr == nil {
		loaded = settings.Load(settingsPath)
	}

	cfg := tui.Config{
		Store:          store,
		Session:        session,
		Clipboard:      clipboard,
		Hide:           desktop.HideWindow,
		Settings:       loaded,
		Theme:          theme.Get(loaded.Theme),
		PasteAvailable: injector.Available(),
	}

	opts := []tea.ProgramOption{tea.WithReportFocus()}
	if !noAltScreen {
		opts = append(opts, tea.WithAltScreen())
	}

	program := tea.NewProgram(tui.New(cfg), opts...)
	finalModel, runErr := program.Run()

	// Flush settings on every exit path.
	if pathErr == nil {
		final := loaded
		if s, ok := tui.FinalSettings(finalModel); ok {
			final = s
		}
		if err := settings.Save(settingsPath, final); err != nil {
			logging.L().Warn("settings.save_failed", "err", err)
		}
	}
	if runErr != nil {
		return fmt.Errorf("run ui: %w", runErr)
	}
	return nil
}
