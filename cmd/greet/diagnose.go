package main

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/spf13/cobra"

	"greet/internal/diag"
	"greet/internal/diagfmt"
	"greet/internal/driver"
	"greet/internal/project"
	"greet/internal/version"
)

var diagCmd = &cobra.Command{
	Use:   "diag [flags] <file.greet|directory>",
	Short: "Run diagnostics on a greeting file or directory",
	Long:  `Run diagnostics to find syntax issues in a greeting file or all *.greet files within a directory`,
	Args:  cobra.ExactArgs(1),
	RunE:  runDiagnose,
}

// init registers the diag flags. Unset format and max-diagnostics fall back
// to the [diagnostics] section of greet.toml.
func init() {
	diagCmd.Flags().String("format", "pretty", "output format (pretty|short|json|sarif)")
	diagCmd.Flags().Int("jobs", 0, "max parallel workers for directory processing (0=auto)")
	diagCmd.Flags().Bool("with-notes", false, "include diagnostic notes in output")
	diagCmd.Flags().Bool("suggest", false, "include fix suggestions in output")
	diagCmd.Flags().Bool("preview", false, "preview fix edits inline")
	diagCmd.Flags().String("path-mode", "auto", "how to print file paths (auto|absolute|relative|basename)")
	diagCmd.Flags().Bool("cache", false, "reuse results from the on-disk cache")
	diagCmd.Flags().Bool("clear-cache", false, "drop the on-disk cache before running")
	diagCmd.Flags().String("ui", "off", "progress view (auto|on|off)")
}

// runDiagnose executes the "diag" command: it checks the file or directory,
// prints diagnostics in the chosen format and exits with status 1 when any
// error diagnostic was reported.
func runDiagnose(cmd *cobra.Command, args []string) error {
	target := args[0]

	// Получаем флаги
	flags, err := readCommonFlags(cmd)
	if err != nil {
		return err
	}
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return fmt.Errorf("failed to get jobs flag: %w", err)
	}
	withNotes, err := cmd.Flags().GetBool("with-notes")
	if err != nil {
		return fmt.Errorf("failed to get with-notes flag: %w", err)
	}
	suggest, err := cmd.Flags().GetBool("suggest")
	if err != nil {
		return fmt.Errorf("failed to get suggest flag: %w", err)
	}
	preview, err := cmd.Flags().GetBool("preview")
	if err != nil {
		return fmt.Errorf("failed to get preview flag: %w", err)
	}
	pathModeStr, err := cmd.Flags().GetString("path-mode")
	if err != nil {
		return fmt.Errorf("failed to get path-mode flag: %w", err)
	}
	useCache, err := cmd.Flags().GetBool("cache")
	if err != nil {
		return fmt.Errorf("failed to get cache flag: %w", err)
	}
	clearCache, err := cmd.Flags().GetBool("clear-cache")
	if err != nil {
		return fmt.Errorf("failed to get clear-cache flag: %w", err)
	}
	uiStr, err := cmd.Flags().GetString("ui")
	if err != nil {
		return fmt.Errorf("failed to get ui flag: %w", err)
	}
	mode, err := parseTriState("ui", uiStr)
	if err != nil {
		return err
	}

	g, manifest, err := loadGrammar(cmd, flags, target)
	if err != nil {
		return err
	}
	// [diagnostics] из greet.toml применяется, только если флаг не задан явно
	if manifest != nil {
		if !cmd.Flags().Changed("format") && manifest.Config.Diagnostics.Format != "" {
			format = manifest.Config.Diagnostics.Format
		}
		if !cmd.Root().PersistentFlags().Changed("max-diagnostics") && manifest.Config.Diagnostics.Max > 0 {
			flags.maxDiagnostics = manifest.Config.Diagnostics.Max
		}
	}
	if !slices.Contains(project.DiagnosticFormats, format) {
		return fmt.Errorf("unknown format: %s", format)
	}

	opts := driver.DiagnoseOptions{
		MaxDiagnostics: flags.maxDiagnostics,
		Jobs:           jobs,
		EnableTimings:  flags.timings,
	}
	if useCache || clearCache {
		cache, err := driver.OpenDiskCache("greet")
		if err != nil {
			return fmt.Errorf("failed to open cache: %w", err)
		}
		if clearCache {
			if err := cache.DropAll(); err != nil {
				return fmt.Errorf("failed to clear cache: %w", err)
			}
		}
		if useCache {
			opts.Cache = cache
		}
	}

	var result *driver.DiagnoseResult
	if mode.resolve(os.Stderr) && format == "pretty" {
		files, err := diagnoseTargets(target)
		if err != nil {
			return err
		}
		title := fmt.Sprintf("greet diag %s", filepath.Base(target))
		result, err = runDiagnoseWithUI(cmd.Context(), title, files, target, g, opts)
		if err != nil {
			return fmt.Errorf("diagnosis failed: %w", err)
		}
	} else {
		result, err = driver.Diagnose(cmd.Context(), target, g, opts)
		if err != nil {
			return fmt.Errorf("diagnosis failed: %w", err)
		}
	}

	bag := result.Merged()
	pathMode := diagfmt.ParsePathMode(pathModeStr)
	showFixes := suggest || preview

	switch format {
	case "pretty":
		color, err := useColor(cmd, os.Stdout)
		if err != nil {
			return err
		}
		diagfmt.Pretty(os.Stdout, bag, result.FileSet, diagfmt.PrettyOpts{
			Color:       color,
			Context:     2,
			PathMode:    pathMode,
			ShowNotes:   withNotes || flags.timings,
			ShowFixes:   showFixes,
			ShowPreview: preview,
		})
		if !flags.quiet {
			printDiagSummary(result, bag)
		}
	case "short":
		output := diag.FormatShortDiagnostics(bag.Items(), result.FileSet, withNotes)
		if output != "" {
			fmt.Fprintln(os.Stdout, output)
		}
	case "json":
		jsonOpts := diagfmt.JSONOpts{
			IncludePositions: true,
			PathMode:         pathMode,
			IncludeNotes:     withNotes || flags.timings,
			IncludeFixes:     showFixes,
			IncludePreviews:  preview,
		}
		if err := diagfmt.JSON(os.Stdout, bag, result.FileSet, jsonOpts); err != nil {
			return fmt.Errorf("failed to format diagnostics: %w", err)
		}
	case "sarif":
		meta := diagfmt.SarifRunMeta{
			ToolName:       "greet",
			ToolVersion:    version.Version,
			InvocationArgs: os.Args,
		}
		if err := diagfmt.Sarif(os.Stdout, bag, result.FileSet, meta); err != nil {
			return fmt.Errorf("failed to format diagnostics: %w", err)
		}
	}

	if result.HasErrors() {
		exit(1)
	}
	return nil
}

func diagnoseTargets(target string) ([]string, error) {
	st, err := os.Stat(target)
	if err != nil {
		return nil, fmt.Errorf("failed to stat path: %w", err)
	}
	if !st.IsDir() {
		return []string{target}, nil
	}
	return driver.ListGreetFiles(target)
}

func printDiagSummary(result *driver.DiagnoseResult, bag *diag.Bag) {
	var errs, infos, cached int
	for _, d := range bag.Items() {
		switch d.Severity {
		case diag.SevError:
			errs++
		case diag.SevInfo:
			infos++
		}
	}
	for i := range result.Files {
		if result.Files[i].Cached {
			cached++
		}
	}
	fmt.Fprintf(os.Stderr, "%d file(s), %d greeting(s), %d error(s), %d note(s)", len(result.Files), result.Greetings(), errs, infos)
	if cached > 0 {
		fmt.Fprintf(os.Stderr, ", %d cached", cached)
	}
	fmt.Fprintln(os.Stderr)
}
