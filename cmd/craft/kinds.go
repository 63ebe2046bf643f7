package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-craft/internal/kinds"
)

var flagKindsSchema bool

var kindsCmd = &cobra.Command{
	Use:   "kinds",
	Short: "Show the loaded kind registry",
	Long: `List every kind definition of the registry the configuration points at,
followed by the registry digest. Two registries with the same digest render
and behave identically.

Examples:
  craft kinds
  craft kinds --config ./my-craft.yaml
  craft kinds --schema > kinds.schema.json`,
	Run: runKinds,
}

func init() {
	kindsCmd.Flags().BoolVar(&flagKindsSchema, "schema", false, "Print the JSON schema kind documents are validated against")
}

func runKinds(_ *cobra.Command, _ []string) {
	if flagKindsSchema {
		fmt.Println(kinds.Schema())
		return
	}

	logger, err := newLogger(os.Stderr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	env, err := loadEnv("", logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	reg := env.Kinds

	fmt.Printf("  %-3s  %-10s  %-5s  %-6s  %-13s  %-5s  %-10s  %s\n",
		"ID", "Name", "Solid", "Health", "Color", "Glyph", "Drop", "Frames")
	fmt.Printf("  %-3s  %-10s  %-5s  %-6s  %-13s  %-5s  %-10s  %s\n",
		"--", "----", "-----", "------", "-----", "-----", "----", "------")

	for _, d := range reg.Defs() {
		drop := "-"
		if d.Drop != kinds.Air {
			drop = reg.Name(d.Drop)
		}
		frames := "-"
		if len(d.Frames) > 0 {
			frames = string(d.Frames)
		}
		fmt.Printf("  %-3d  %-10s  %-5t  %-6d  %-13s  %-5s  %-10s  %s\n",
			d.ID, d.Name, d.Solid, d.Health, d.Color, strconv.Quote(string(d.Glyph)), drop, frames)
	}

	fmt.Println()
	fmt.Printf("%d kinds, digest %s\n", reg.Len(), reg.Digest())
}
