package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/opendan/opendan/internal/config"
)

var keysCmd = &cobra.Command{
	Use:   "keys",
	Short: "List key layouts",
	Long: `Show the key bound to each lane for every configured lane count.

Examples:
  opendan keys
  opendan keys set 4 d f j k
  opendan keys set 5 d f space j k`,
	Args: cobra.NoArgs,
	Run:  runKeys,
}

var keysSetCmd = &cobra.Command{
	Use:   "set <lanes> <key>...",
	Short: "Store the key layout for a lane count",
	Long: `Store the key layout for a lane count in the settings file.
The number of keys must equal the lane count. Use "space" for the space bar.`,
	Args: cobra.MinimumNArgs(2),
	Run:  runKeysSet,
}

func init() {
	keysCmd.AddCommand(keysSetCmd)
}

func runKeys(cmd *cobra.Command, _ []string) {
	logger := newLogger(os.Stderr)
	settings, path := loadSettings(cmd, logger)

	fmt.Printf("Key layouts (%s)\n", path)
	fmt.Println()

	counts := settings.LaneCounts()
	if len(counts) == 0 {
		fmt.Println("No layouts stored; generated layouts are used.")
		return
	}

	for _, n := range counts {
		fmt.Printf("  %2dK  %s\n", n, strings.Join(settings.KeysForLanes(n), " "))
	}
}

func runKeysSet(cmd *cobra.Command, args []string) {
	lanes, err := strconv.Atoi(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid lane count %q\n", args[0])
		os.Exit(1)
	}

	logger := newLogger(os.Stderr)
	settings, path := config.LoadOrCreateDefault(flagSettings, logger)

	if err := settings.SetKeysForLanes(lanes, args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if err := settings.Save(path); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("%dK: %s\n", lanes, strings.Join(settings.KeysForLanes(lanes), " "))
}
