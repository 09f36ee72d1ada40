package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"greet/internal/driver"
	"greet/internal/fix"
)

var fixCmd = &cobra.Command{
	Use:   "fix [flags] <file.greet|directory>",
	Short: "Apply suggested fixes to a greeting file or directory",
	Long:  "Run diagnostics, surface the fixes they suggest, and apply them according to the chosen strategy.",
	Args:  cobra.ExactArgs(1),
	RunE:  runFix,
}

func init() {
	fixCmd.Flags().Bool("all", false, "apply every non-conflicting fix")
	fixCmd.Flags().Bool("once", false, "apply the first available fix (default)")
	fixCmd.Flags().String("id", "", "apply the fix with a specific identifier")
	fixCmd.Flags().Bool("list", false, "list available fixes without applying them")
	fixCmd.Flags().Bool("dry-run", false, "print the fixed sources instead of writing them")
}

func runFix(cmd *cobra.Command, args []string) error {
	target := args[0]

	applyAll, err := cmd.Flags().GetBool("all")
	if err != nil {
		return err
	}
	applyOnce, err := cmd.Flags().GetBool("once")
	if err != nil {
		return err
	}
	targetID, err := cmd.Flags().GetString("id")
	if err != nil {
		return err
	}
	list, err := cmd.Flags().GetBool("list")
	if err != nil {
		return err
	}
	dryRun, err := cmd.Flags().GetBool("dry-run")
	if err != nil {
		return err
	}
	if targetID != "" && (applyAll || applyOnce) {
		return fmt.Errorf("--id cannot be combined with --all or --once")
	}
	if applyAll && applyOnce {
		return fmt.Errorf("--all and --once are mutually exclusive")
	}

	mode := fix.ApplyModeOnce
	if targetID != "" {
		mode = fix.ApplyModeID
	} else if applyAll {
		mode = fix.ApplyModeAll
	}

	flags, err := readCommonFlags(cmd)
	if err != nil {
		return err
	}
	g, _, err := loadGrammar(cmd, flags, target)
	if err != nil {
		return err
	}
	result, err := driver.Diagnose(cmd.Context(), target, g, driver.DiagnoseOptions{MaxDiagnostics: flags.maxDiagnostics})
	if err != nil {
		return fmt.Errorf("fix: diagnose failed: %w", err)
	}
	diagnostics := result.Merged().Items()

	if list {
		for _, c := range fix.Candidates(diagnostics) {
			fmt.Fprintf(os.Stdout, "%s  %s (%s: %s)\n", c.ID, c.Title, c.Code.ID(), c.Message)
		}
		return nil
	}

	res, applyErr := fix.Apply(result.FileSet, diagnostics, fix.ApplyOptions{Mode: mode, TargetID: targetID, DryRun: dryRun})
	if errors.Is(applyErr, fix.ErrNoFixes) {
		for _, s := range res.Skipped {
			fmt.Fprintf(os.Stderr, "skipped %s: %s\n", s.ID, s.Reason)
		}
		if !flags.quiet {
			fmt.Fprintln(os.Stdout, "no fixes applied")
		}
		return nil
	}
	if applyErr != nil {
		return fmt.Errorf("fix: %w", applyErr)
	}

	for _, a := range res.Applied {
		fmt.Fprintf(os.Stdout, "applied %s: %s (%s)\n", a.ID, a.Title, a.PrimaryPath)
	}
	for _, s := range res.Skipped {
		fmt.Fprintf(os.Stderr, "skipped %s: %s\n", s.ID, s.Reason)
	}
	for _, ch := range res.FileChanges {
		if dryRun {
			fmt.Fprintf(os.Stdout, "== %s ==\n%s", ch.Path, ch.Content)
			continue
		}
		if !flags.quiet {
			fmt.Fprintf(os.Stdout, "updated %s (%d edit(s))\n", ch.Path, ch.EditCount)
		}
	}
	return nil
}
