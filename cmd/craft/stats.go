package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-craft/internal/platform/tui"
	"github.com/vovakirdan/tui-craft/internal/storage"
)

var (
	flagStatsLimit int
	flagStatsBoard bool
	flagStatsClear bool
)

var statsCmd = &cobra.Command{
	Use:   "stats [mode]",
	Short: "Show recorded sessions",
	Long: `Display totals and the most recent sessions, for one mode or all of them.
A session is stored when you quit or regenerate a world you played in.

Examples:
  craft stats
  craft stats caverns --limit 20
  craft stats --board
  craft stats flat --clear`,
	Args: cobra.MaximumNArgs(1),
	Run:  runStats,
}

func init() {
	statsCmd.Flags().IntVar(&flagStatsLimit, "limit", 10, "Number of recent sessions to show")
	statsCmd.Flags().BoolVar(&flagStatsBoard, "board", false, "Open the interactive stats board")
	statsCmd.Flags().BoolVar(&flagStatsClear, "clear", false, "Delete the stored sessions instead of printing them")
}

func runStats(_ *cobra.Command, args []string) {
	mode := ""
	if len(args) == 1 {
		mode = args[0]
		requireMode(mode)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening sessions database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	switch {
	case flagStatsBoard:
		cfg := runtimeConfig()
		if _, err := tui.RunStatsboard(store, cfg.ScreenW, cfg.ScreenH); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		return
	case flagStatsClear:
		if err := store.ClearSessions(mode); err != nil {
			fmt.Fprintf(os.Stderr, "Error clearing sessions: %v\n", err)
			return
		}
		fmt.Println("Sessions cleared.")
		return
	}

	if err := printStats(store, mode); err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving sessions: %v\n", err)
	}
}

func printStats(store *storage.Store, mode string) error {
	all, err := store.GetAllModeStats()
	if err != nil {
		return err
	}
	modes := make([]string, 0, len(all))
	for m := range all {
		if mode == "" || m == mode {
			modes = append(modes, m)
		}
	}
	sort.Strings(modes)

	if len(modes) == 0 {
		fmt.Println("No sessions recorded yet.")
		fmt.Println()
		fmt.Println("Play 'craft play classic' and dig something!")
		return nil
	}

	fmt.Println("Totals")
	fmt.Println()
	fmt.Printf("  %-10s  %-8s  %-8s  %-6s  %-6s  %-6s  %s\n", "Mode", "Sessions", "Ticks", "Dug", "Built", "Picked", "Last played")
	fmt.Printf("  %-10s  %-8s  %-8s  %-6s  %-6s  %-6s  %s\n", "----", "--------", "-----", "---", "-----", "------", "-----------")
	for _, m := range modes {
		st := all[m]
		fmt.Printf("  %-10s  %-8d  %-8d  %-6d  %-6d  %-6d  %s\n",
			m, st.Sessions, st.Ticks, st.Dug, st.Built, st.Picked, st.LastPlayed.Format("2006-01-02 15:04"))
	}

	sessions, err := store.RecentSessions(mode, flagStatsLimit)
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Println("Recent sessions")
	fmt.Println()
	fmt.Printf("  %-10s  %-20s  %-8s  %-6s  %-6s  %-6s  %s\n", "Mode", "Seed", "Ticks", "Dug", "Built", "Picked", "Date")
	fmt.Printf("  %-10s  %-20s  %-8s  %-6s  %-6s  %-6s  %s\n", "----", "----", "-----", "---", "-----", "------", "----")
	for _, s := range sessions {
		fmt.Printf("  %-10s  %-20d  %-8d  %-6d  %-6d  %-6d  %s\n",
			s.Mode, s.Seed, s.Stats.Ticks, s.Stats.Dug, s.Stats.Built, s.Stats.Picked, s.CreatedAt.Format("2006-01-02 15:04"))
	}
	return nil
}
