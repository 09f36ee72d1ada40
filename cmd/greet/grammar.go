package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"greet/internal/grammar"
)

var grammarCmd = &cobra.Command{
	Use:   "grammar [dir]",
	Short: "Print the active grammar rules",
	Long: `Print the rule table used for [dir] (default: the current directory):
the --grammar flag, else the [grammar] section of greet.toml, else the default preset.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runGrammar,
}

func init() {
	grammarCmd.Flags().Bool("list", false, "list the built-in presets instead")
}

func runGrammar(cmd *cobra.Command, args []string) error {
	list, err := cmd.Flags().GetBool("list")
	if err != nil {
		return fmt.Errorf("failed to get list flag: %w", err)
	}
	if list {
		for _, name := range grammar.Presets() {
			marker := " "
			if name == grammar.DefaultPreset {
				marker = "*"
			}
			fmt.Fprintf(os.Stdout, "%s %s\n", marker, name)
		}
		return nil
	}

	flags, err := readCommonFlags(cmd)
	if err != nil {
		return err
	}
	dir := "."
	if len(args) == 1 {
		dir = args[0]
	}
	g, manifest, err := loadGrammar(cmd, flags, dir)
	if err != nil {
		return err
	}
	if !flags.quiet {
		origin := "default preset"
		switch {
		case flags.grammar != "":
			origin = "--grammar " + flags.grammar
		case manifest != nil:
			origin = manifest.Path
		}
		fmt.Fprintf(os.Stderr, "// grammar %q from %s\n", g.Name, origin)
	}
	out := g.Describe()
	if !strings.HasSuffix(out, "\n") {
		out += "\n"
	}
	_, err = fmt.Fprint(os.Stdout, out)
	return err
}
