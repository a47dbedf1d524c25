package main

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/opendan/opendan/internal/config"
	"github.com/opendan/opendan/internal/platform/tui"
	"github.com/opendan/opendan/internal/scene"
	"github.com/opendan/opendan/internal/timing"
)

var (
	flagLanes    int
	flagHeadless bool
	flagDuration time.Duration
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Open the menu or start a song",
	Long: `Start the shell. Without --lanes the main menu opens.

Controls:
  Up/Down     - Select (menu)
  Enter       - Confirm (menu)
  Lane keys   - From the settings layout (see 'opendan keys')
  Esc         - Back to menu / quit from the menu
  Alt+Enter   - Toggle fullscreen
  Ctrl+C      - Quit

Headless mode drives the loop with the system clock for --duration and
prints the timing statistics instead of drawing.

Examples:
  opendan play
  opendan play --lanes 4
  opendan play --lanes 7 --fps 144
  opendan play --headless --lanes 4 --duration 2s`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	registerPlayFlags(playCmd)
}

func registerPlayFlags(cmd *cobra.Command) {
	cmd.Flags().IntVar(&flagLanes, "lanes", 0, "Start directly in a song with this many lanes (0 = menu)")
	cmd.Flags().BoolVar(&flagHeadless, "headless", false, "Run without a terminal and print timing stats")
	cmd.Flags().DurationVar(&flagDuration, "duration", 2*time.Second, "How long a headless run lasts")
}

func runPlay(cmd *cobra.Command, _ []string) {
	if flagLanes != 0 && (flagLanes < config.MinLanes || flagLanes > config.MaxLanes) {
		fmt.Fprintf(os.Stderr, "Error: --lanes must be between %d and %d\n", config.MinLanes, config.MaxLanes)
		os.Exit(1)
	}

	if flagHeadless {
		runHeadless(cmd)
		return
	}

	// The TUI owns the terminal; log to a file unless that fails.
	logOut := os.Stderr
	if f, err := openLogFile(); err == nil {
		defer f.Close()
		logOut = f
	}
	logger := newLogger(logOut)

	settings, _ := loadSettings(cmd, logger)

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	store := openStore(logger)
	if store != nil {
		defer store.Close()
	}

	host, err := tui.NewHost(tui.HostConfig{
		Settings: settings,
		Store:    store,
		Logger:   logger,
		User:     os.Getenv("USER"),
		Width:    width,
		Height:   height,
		Start:    startScene(),
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if err := tui.Run(host); err != nil {
		fmt.Fprintf(os.Stderr, "Error running shell: %v\n", err)
		os.Exit(1)
	}
}

func startScene() string {
	if flagLanes == 0 {
		return scene.MenuID
	}
	return scene.PlayID(flagLanes)
}

// runHeadless polls the host at the configured poll rate for --duration and
// prints what the loop did.
func runHeadless(cmd *cobra.Command) {
	logger := newLogger(os.Stderr)
	settings, _ := loadSettings(cmd, logger)

	if flagLanes == 0 {
		flagLanes = 4
	}

	store := openStore(logger)
	if store != nil {
		defer store.Close()
	}

	host, err := tui.NewHost(tui.HostConfig{
		Settings: settings,
		Store:    store,
		Logger:   logger,
		User:     os.Getenv("USER"),
		Width:    80,
		Height:   24,
		Start:    startScene(),
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	poll := settings.PollInterval()
	deadline := time.Now().Add(flagDuration)
	for time.Now().Before(deadline) {
		if _, done := host.Poll(); done {
			break
		}
		time.Sleep(poll)
	}
	host.Close()

	printStats(host.Loop(), logger)
}

func printStats(loop *timing.Loop, logger *log.Logger) {
	stats := loop.Stats()
	cfg := loop.Config()

	fmt.Printf("Fixed tick:      %.0f Hz (max %d per advance)\n", cfg.FixedTickHz, cfg.MaxTicksPerAdvance)
	fmt.Printf("Render cap:      %s\n", tui.FormatCap(cfg.RenderCapHz))
	fmt.Printf("Wall time:       %.3fs\n", stats.WallSeconds)
	fmt.Printf("Simulated time:  %.3fs\n", stats.SimulatedSeconds)
	fmt.Printf("Ticks:           %d\n", stats.Ticks)
	fmt.Printf("Frames rendered: %d\n", stats.FramesRendered)
	fmt.Printf("Frames skipped:  %d\n", stats.FramesSkipped)
	fmt.Printf("Saturated:       %d\n", stats.SaturatedFrames)
	if stats.ClockAnomalies > 0 {
		logger.Warn("clock anomalies observed", "count", stats.ClockAnomalies)
	}
}
