package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/CerenB/miss-hit/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "mhstyle",
	Short: "MATLAB and Octave style checker",
	Long:  `mhstyle checks MATLAB and Octave source for style issues and can fix most of them`,
}

// exitStatus carries the run outcome out of the check command: 0 clean,
// 1 issues found, 2 fatal condition.
var exitStatus int

func main() {
	rootCmd.Version = version.Version
	rootCmd.SilenceUsage = true

	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(tokenizeCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Bool("quiet", false, "suppress non-essential output")
	rootCmd.PersistentFlags().Bool("timings", false, "show timing information")
	rootCmd.PersistentFlags().Int("max-diagnostics", 500, "maximum number of diagnostics per file")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(2)
	}
	os.Exit(exitStatus)
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

func useColor(cmd *cobra.Command, f *os.File) bool {
	colorFlag, _ := cmd.Root().PersistentFlags().GetString("color")
	return colorFlag == "on" || (colorFlag == "auto" && isTerminal(f))
}
