// ABOUTME: CLI entry point for termweb: browse a web page as sixel frames inside the terminal
// ABOUTME: Builds the cobra command tree and prints fatal errors only after the terminal is restored

package main

import (
	"context"
	"fmt"
	"os"

	// termfix must be imported before anything that styles output, so lipgloss
	// never sends OSC 10/11 queries whose replies would land in the key stream.
	_ "github.com/mauromedda/termweb/internal/termfix"

	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	root := newRootCmd()
	if err := root.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var flags cliFlags

	root := &cobra.Command{
		Use:   "termweb [url]",
		Short: "View a web page in a sixel-capable terminal",
		Long: "termweb loads a page in headless Chrome and paints its viewport as sixel graphics.\n" +
			"Up and Down scroll, Escape quits.",
		Args:          cobra.MaximumNArgs(1),
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, flags, args)
			if err != nil {
				return err
			}
			closeLog, err := setupLogging(flags)
			if err != nil {
				return err
			}
			defer closeLog()
			return run(cmd.Context(), cfg)
		},
	}
	flags.register(root)

	root.AddCommand(newVersionCmd())
	root.AddCommand(newConfigCmd(&flags))
	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "termweb %s (%s) built %s\n", version, commit, date)
			return err
		},
	}
}
