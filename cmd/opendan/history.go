package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/opendan/opendan/internal/platform/tui"
	"github.com/opendan/opendan/internal/storage"
)

var (
	flagPlain bool
	flagLimit int
	flagClear bool
)

var historyCmd = &cobra.Command{
	Use:   "history [scene]",
	Short: "Show recorded play sessions",
	Long: `Browse the timing records of past sessions: ticks simulated, frames
rendered and skipped, and how often the simulation fell behind.

An interactive table opens when stdout is a terminal; use --plain for text.

Examples:
  opendan history
  opendan history play-7 --plain
  opendan history --clear menu`,
	Args: cobra.MaximumNArgs(1),
	Run:  runHistory,
}

func init() {
	historyCmd.Flags().BoolVar(&flagPlain, "plain", false, "Print a plain text table")
	historyCmd.Flags().IntVar(&flagLimit, "limit", 20, "Number of sessions to print in plain mode")
	historyCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete the records of the scene (all scenes when omitted)")
}

func runHistory(_ *cobra.Command, args []string) {
	scene := ""
	if len(args) == 1 {
		scene = args[0]
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening session database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagClear {
		if err := store.ClearSessions(scene); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Session records cleared.")
		return
	}

	fd := int(os.Stdout.Fd())
	if !flagPlain && scene == "" && term.IsTerminal(fd) {
		width, height := 100, 30
		if w, h, err := term.GetSize(fd); err == nil {
			width, height = w, h
		}
		if err := tui.RunHistory(store, width, height); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := printHistory(store, scene); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printHistory(store *storage.Store, scene string) error {
	sessions, err := store.RecentSessions(scene, flagLimit)
	if err != nil {
		return err
	}

	title := "all scenes"
	if scene != "" {
		title = scene
	}
	fmt.Printf("Sessions - %s\n", title)
	fmt.Println()

	if len(sessions) == 0 {
		fmt.Println("No sessions recorded yet.")
		fmt.Println()
		fmt.Println("Play 'opendan play' to record one!")
		return nil
	}

	fmt.Printf("  %-16s  %-8s  %-5s  %-8s  %-7s  %-8s  %-4s  %s\n",
		"Date", "Scene", "Cap", "Ticks", "FPS", "Skipped", "Sat", "Wall")
	fmt.Printf("  %-16s  %-8s  %-5s  %-8s  %-7s  %-8s  %-4s  %s\n",
		"----", "-----", "---", "-----", "---", "-------", "---", "----")

	for _, s := range sessions {
		fmt.Printf("  %-16s  %-8s  %-5s  %-8d  %-7.1f  %-8d  %-4d  %.1fs\n",
			s.CreatedAt.Format("2006-01-02 15:04"),
			s.Scene,
			tui.FormatCap(s.RenderCapHz),
			s.Ticks,
			s.FPS(),
			s.FramesSkipped,
			s.SaturatedFrames,
			s.WallSeconds,
		)
	}

	if scene != "" {
		sum, err := store.Summarize(scene)
		if err == nil {
			fmt.Println()
			fmt.Printf("Total: %d sessions, %d ticks, %.1fs, avg %.1f fps\n",
				sum.Sessions, sum.Ticks, sum.WallSeconds, sum.AvgFPS)
		}
	}
	return nil
}
