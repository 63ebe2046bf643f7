package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-craft/internal/core"
	"github.com/vovakirdan/tui-craft/internal/recorder"
)

var eventsCmd = &cobra.Command{
	Use:   "events <file|dir>",
	Short: "Summarize an activity log",
	Long: `Decode activity logs written by 'craft play --record <dir>' and print a
summary: event counts by type and the kinds dug and built. A directory is
read in hour order.

Examples:
  craft events ~/.craft/events
  craft events ~/.craft/events/events-2026-10-14-09.jsonl.zst`,
	Args: cobra.ExactArgs(1),
	Run:  runEvents,
}

func runEvents(_ *cobra.Command, args []string) {
	path, err := expandHome(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	entries, err := recorder.Read(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading activity log: %v\n", err)
		os.Exit(1)
	}

	sum := recorder.Summarize(entries)
	if sum.Entries == 0 {
		fmt.Println("No events recorded.")
		return
	}

	fmt.Printf("%d events across %d worlds\n", sum.Entries, sum.Worlds)
	fmt.Printf("From %s to %s\n", sum.First.Format("2006-01-02 15:04:05"), sum.Last.Format("2006-01-02 15:04:05"))
	fmt.Println()

	types := []core.EventType{
		core.EventSpawn, core.EventJump, core.EventHit, core.EventDig, core.EventPick, core.EventBuild,
	}
	for _, t := range types {
		fmt.Printf("  %-6s  %d\n", t, sum.ByType[t])
	}

	printCounts("Dug", sum.Dug)
	printCounts("Built", sum.Built)
}

func printCounts(title string, counts map[string]int) {
	if len(counts) == 0 {
		return
	}
	names := make([]string, 0, len(counts))
	for name := range counts {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Println()
	fmt.Println(title)
	for _, name := range names {
		fmt.Printf("  %-10s  %d\n", name, counts[name])
	}
}
