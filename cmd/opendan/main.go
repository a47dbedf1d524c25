// opendan is a terminal rhythm-game shell driven by a fixed-step simulation
// loop with a frame-rate limited renderer.
//
// Usage:
//
//	opendan                      - Open the main menu (same as play)
//	opendan play [--lanes N]     - Play, optionally starting directly in an N-lane song
//	opendan keys                 - List key layouts
//	opendan keys set <n> <k>...  - Store the key layout for n lanes
//	opendan history [scene]      - Show recorded sessions
//	opendan serve                - Start SSH server for remote play
//
// Global flags:
//
//	--settings <path>  - Settings file (default: ~/.opendan/settings.yaml)
//	--fps <rate>       - In-game render cap; 0 or less means unlimited
//	--db <path>        - Session database (default: ~/.opendan/sessions.db)
//	--debug            - Verbose logging
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/opendan/opendan/internal/config"
	"github.com/opendan/opendan/internal/storage"
)

var (
	// Global flags
	flagSettings string
	flagFPS      float64
	flagDBPath   string
	flagDebug    bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "opendan",
	Short: "OpenDan - a rhythm game shell for your terminal",
	Long: `OpenDan runs a fixed 1000 Hz simulation with a frame-rate limited renderer
and maps your keyboard to note lanes.

Available commands:
  play     - Open the menu or start a song directly (default)
  keys     - Show or change key layouts
  history  - Browse recorded play sessions
  serve    - Start SSH server for remote play

Examples:
  opendan
  opendan play --lanes 7 --fps 240
  opendan keys set 4 d f j k
  opendan history play-7
  opendan serve --ssh :2222`,
	Run: runPlay,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().StringVar(&flagSettings, "settings", "", "Path to settings file (default ~/.opendan/settings.yaml)")
	rootCmd.PersistentFlags().Float64Var(&flagFPS, "fps", 0, "In-game render cap in Hz (<= 0 means unlimited; clamped to [1, 2000])")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.opendan/sessions.db", "Path to session database")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Enable debug logging")

	registerPlayFlags(rootCmd)

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(keysCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(serveCmd)
}

// newLogger creates the command logger writing to w.
func newLogger(w io.Writer) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "opendan",
	})
	if flagDebug {
		logger.SetLevel(log.DebugLevel)
	}
	return logger
}

// openLogFile opens ~/.opendan/opendan.log for appending. The TUI owns the
// terminal while it runs, so logs go there instead of stderr.
func openLogFile() (*os.File, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}
	dir := filepath.Join(home, ".opendan")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return os.OpenFile(filepath.Join(dir, "opendan.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
}

// loadSettings loads (or creates) the settings file and applies --fps when
// it was given on the command line.
func loadSettings(cmd *cobra.Command, logger *log.Logger) (config.Settings, string) {
	settings, path := config.LoadOrCreateDefault(flagSettings, logger)
	if cmd.Flags().Changed("fps") {
		settings.SetIngameCap(flagFPS)
		logger.Debug("in-game render cap overridden", "hz", settings.IngameCap())
	}
	return settings, path
}

// openStore opens the session database. Failures are logged and the caller
// continues without session records.
func openStore(logger *log.Logger) *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open session database", "path", flagDBPath, "error", err)
		return nil
	}
	return store
}
