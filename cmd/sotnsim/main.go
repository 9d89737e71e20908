// Command sotnsim is the consolidated diagnostic CLI replacing the
// teacher's one-tool-per-concern cmd/* layout with subcommands of a single
// Cobra binary, per SPEC_FULL.md §2.3.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// extraCommands holds build-tag-gated subcommands (view, behind "sdl")
// registered via init() in their own file so the default build has no
// hard SDL dependency.
var extraCommands []*cobra.Command

func main() {
	root := &cobra.Command{
		Use:   "sotnsim",
		Short: "Reverse-engineering sandbox for Symphony of the Night room/entity state",
	}

	root.AddCommand(
		newSimulateCmd(),
		newDumpFramebufferCmd(),
		newInspectEntityCmd(),
		newTraceGTECmd(),
	)
	root.AddCommand(extraCommands...)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
