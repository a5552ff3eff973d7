// Package cli implements the headless front-end: cobra commands that drive
// the same coordinator as the desktop window, printing progress to the
// terminal instead of a widget.
package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/phinix/phinix-downloader/internal/platform"
	"github.com/phinix/phinix-downloader/internal/resolver"
)

// BuildInfo carries version information set at build time
type BuildInfo struct {
	Version string
}

// IOStreams bundles the process streams so commands stay testable
type IOStreams struct {
	In     io.Reader
	Out    io.Writer
	ErrOut io.Writer
}

// AppContext is shared by all commands. Resolver and Reveal may be overridden
// in tests; when nil the yt-dlp resolver and the system file manager are used.
type AppContext struct {
	Build    BuildInfo
	IO       IOStreams
	Resolver resolver.Resolver
	Reveal   func(path string) error
}

func (app *AppContext) resolverOrDefault() resolver.Resolver {
	if app.Resolver != nil {
		return app.Resolver
	}
	return resolver.NewYTDLP()
}

func (app *AppContext) revealOrDefault() func(string) error {
	if app.Reveal != nil {
		return app.Reveal
	}
	return platform.RevealInManager
}

// Execute runs the CLI and returns the process exit code
func Execute(build BuildInfo, streams IOStreams) int {
	app := &AppContext{Build: build, IO: streams}
	root := newRootCommand(app)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(streams.ErrOut, "ERROR:", err)
		return 1
	}
	return 0
}

func newRootCommand(app *AppContext) *cobra.Command {
	showVersion := false

	root := &cobra.Command{
		Use:   "phinixdl",
		Short: "Download videos and inspect metadata from the terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			if showVersion {
				fmt.Fprintf(app.IO.Out, "phinixdl %s\n", app.Build.Version)
				return nil
			}
			return cmd.Help()
		},
		SilenceErrors:     true,
		SilenceUsage:      true,
		CompletionOptions: cobra.CompletionOptions{DisableDefaultCmd: true},
	}

	root.SetOut(app.IO.Out)
	root.SetErr(app.IO.ErrOut)
	root.Flags().BoolVar(&showVersion, "version", false, "Print version info")

	root.AddCommand(newFetchCommand(app))
	root.AddCommand(newDownloadCommand(app))
	return root
}
