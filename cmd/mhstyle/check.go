package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/CerenB/miss-hit/internal/diag"
	"github.com/CerenB/miss-hit/internal/diagfmt"
	"github.com/CerenB/miss-hit/internal/driver"
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] [path...]",
	Short: "Check MATLAB files for style issues",
	Long: `Check analyzes the given files and directories (or the project
paths from mhstyle.toml when none are given) and reports style issues.
With --fix most issues are corrected in place.`,
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().Bool("fix", false, "apply autofixes and write files back")
	checkCmd.Flags().Int("jobs", 0, "number of parallel workers (0 = number of CPUs)")
	checkCmd.Flags().String("format", "pretty", "output format (pretty|json)")
	checkCmd.Flags().Bool("brief", false, "one line per finding, no source context")
	checkCmd.Flags().Bool("cache", false, "reuse results for unchanged files")
	checkCmd.Flags().String("ui", "auto", "live progress display (auto|on|off)")
}

func runCheck(cmd *cobra.Command, args []string) error {
	fixFlag, _ := cmd.Flags().GetBool("fix")
	jobs, _ := cmd.Flags().GetInt("jobs")
	format, _ := cmd.Flags().GetString("format")
	brief, _ := cmd.Flags().GetBool("brief")
	cacheFlag, _ := cmd.Flags().GetBool("cache")
	uiFlag, _ := cmd.Flags().GetString("ui")
	quiet, _ := cmd.Root().PersistentFlags().GetBool("quiet")
	timings, _ := cmd.Root().PersistentFlags().GetBool("timings")
	maxDiagnostics, _ := cmd.Root().PersistentFlags().GetInt("max-diagnostics")

	if format != "pretty" && format != "json" {
		return fmt.Errorf("unknown format: %s", format)
	}
	mode, err := parseUIMode(uiFlag)
	if err != nil {
		return err
	}

	roots := args
	if len(roots) == 0 {
		manifest, ok, err := loadProjectManifest(".")
		if err != nil {
			return err
		}
		if ok {
			roots = manifest.AbsPaths()
		} else {
			roots = []string{"."}
		}
	}

	opts := driver.RunOptions{
		Roots:          roots,
		Fix:            fixFlag,
		Jobs:           jobs,
		MaxDiagnostics: maxDiagnostics,
	}
	if cacheFlag && !fixFlag {
		cache, err := driver.OpenDiskCache("mhstyle")
		if err != nil {
			return fmt.Errorf("cannot open result cache: %w", err)
		}
		opts.Cache = cache
	}

	var report *driver.Report
	if format == "pretty" && mode.wantProgressView() {
		report, err = runCheckWithUI(cmd.Context(), "mhstyle check", opts)
	} else {
		report, err = driver.Run(cmd.Context(), opts)
	}
	if err != nil {
		return err
	}

	if format == "json" {
		merged := mergeBags(report, maxDiagnostics)
		if err := diagfmt.WriteJSON(os.Stdout, merged, report.FileSet, diagfmt.JSONOpts{
			IncludePositions: true,
			IncludeFixes:     true,
		}); err != nil {
			return err
		}
		exitStatus = report.ExitCode()
		return nil
	}

	popts := diagfmt.PrettyOpts{
		Color:     useColor(cmd, os.Stdout),
		Context:   !brief,
		ShowFixes: !fixFlag,
	}
	diagfmt.Pretty(os.Stdout, report.Config, report.FileSet, popts)

	issues := report.Config.Len()
	fixed := 0
	for i := range report.Files {
		res := &report.Files[i]
		diagfmt.Pretty(os.Stdout, res.Bag, report.FileSet, popts)
		issues += res.Bag.Len()
		if res.Fixed != nil {
			fixed++
		}
	}

	if !quiet {
		diagfmt.Summary(os.Stdout, len(report.Files), issues, fixed, popts.Color)
	}
	if timings {
		printTimings(os.Stderr, report.Timings)
	}

	exitStatus = report.ExitCode()
	return nil
}

func mergeBags(report *driver.Report, maxDiagnostics int) *diag.Bag {
	merged := diag.NewBag(maxDiagnostics * (len(report.Files) + 1))
	merged.Merge(report.Config)
	for i := range report.Files {
		if report.Files[i].Bag != nil {
			merged.Merge(report.Files[i].Bag)
		}
	}
	return merged
}
