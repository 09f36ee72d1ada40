package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"fortio.org/safecast"
	"github.com/spf13/cobra"

	"greet/internal/diag"
	"greet/internal/diagfmt"
	"greet/internal/grammar"
	"greet/internal/project"
	"greet/internal/source"
)

// triState is the auto|on|off switch shared by --color and --ui.
type triState string

const (
	stateAuto triState = "auto"
	stateOn   triState = "on"
	stateOff  triState = "off"
)

func parseTriState(flag, value string) (triState, error) {
	switch strings.TrimSpace(strings.ToLower(value)) {
	case "", "auto":
		return stateAuto, nil
	case "on", "always":
		return stateOn, nil
	case "off", "never":
		return stateOff, nil
	default:
		return "", fmt.Errorf("invalid --%s value %q (expected auto|on|off)", flag, value)
	}
}

// resolve turns auto into a terminal check on out.
func (s triState) resolve(out *os.File) bool {
	switch s {
	case stateOn:
		return true
	case stateOff:
		return false
	default:
		return isTerminal(out)
	}
}

// useColor resolves the --color flag against the stream the output goes to.
func useColor(cmd *cobra.Command, out *os.File) (bool, error) {
	value, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return false, fmt.Errorf("failed to get color flag: %w", err)
	}
	mode, err := parseTriState("color", value)
	if err != nil {
		return false, err
	}
	return mode.resolve(out), nil
}

type commonFlags struct {
	maxDiagnostics int
	quiet          bool
	timings        bool
	grammar        string
}

func readCommonFlags(cmd *cobra.Command) (commonFlags, error) {
	var (
		out commonFlags
		err error
	)
	pf := cmd.Root().PersistentFlags()
	if out.maxDiagnostics, err = pf.GetInt("max-diagnostics"); err != nil {
		return out, fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	if out.maxDiagnostics < 0 {
		return out, fmt.Errorf("--max-diagnostics must be >= 0, got %d", out.maxDiagnostics)
	}
	if out.quiet, err = pf.GetBool("quiet"); err != nil {
		return out, fmt.Errorf("failed to get quiet flag: %w", err)
	}
	if out.timings, err = pf.GetBool("timings"); err != nil {
		return out, fmt.Errorf("failed to get timings flag: %w", err)
	}
	if out.grammar, err = pf.GetString("grammar"); err != nil {
		return out, fmt.Errorf("failed to get grammar flag: %w", err)
	}
	return out, nil
}

// manifestError is a greet.toml that exists but could not be used.
type manifestError struct {
	path string
	err  error
}

func (e *manifestError) Error() string { return e.err.Error() }
func (e *manifestError) Unwrap() error { return e.err }

// resolveGrammar picks the grammar for target: the --grammar flag wins, then
// the [grammar] section of the nearest greet.toml, then the default preset.
func resolveGrammar(flagValue, target string) (*grammar.Grammar, *project.Manifest, error) {
	startDir := target
	if st, err := os.Stat(target); err == nil && !st.IsDir() {
		startDir = filepath.Dir(target)
	}
	manifest, found, err := project.Load(startDir)
	if err != nil {
		path, _, _ := project.FindManifest(startDir)
		return nil, nil, &manifestError{path: path, err: err}
	}
	if !found {
		manifest = nil
	}

	if flagValue != "" {
		g, err := grammar.Lookup(flagValue)
		return g, manifest, err
	}
	if manifest != nil {
		g, err := manifest.Grammar()
		if err != nil {
			return nil, nil, &manifestError{path: manifest.Path, err: err}
		}
		return g, manifest, nil
	}
	return grammar.Default(), nil, nil
}

// reportManifestError renders a broken greet.toml as a PRJ5001 diagnostic
// pointing at the offending line when the TOML decoder knows it.
func reportManifestError(cmd *cobra.Command, me *manifestError) error {
	fs := source.NewFileSet()
	id, loadErr := fs.Load(me.path)
	if loadErr != nil {
		return fmt.Errorf("%s: %w", me.path, me.err)
	}
	file := fs.Get(id)
	primary := source.Span{File: id}
	if line, ok := project.ErrorPosition(me.err); ok {
		ln, errLn := safecast.Conv[uint32](line)
		width, errW := safecast.Conv[uint32](len(file.GetLine(ln)))
		if errLn == nil && errW == nil {
			primary.Start = file.LineStart(ln)
			primary.End = primary.Start + width
		}
	}
	bag := diag.NewBag(1)
	bag.Add(diag.NewError(diag.ProjManifest, primary, me.err.Error()))

	color, err := useColor(cmd, os.Stderr)
	if err != nil {
		return err
	}
	diagfmt.Pretty(os.Stderr, bag, fs, diagfmt.PrettyOpts{Color: color, Context: 1})
	return fmt.Errorf("invalid manifest %s", me.path)
}

// loadGrammar is resolveGrammar with manifest problems reported as diagnostics.
func loadGrammar(cmd *cobra.Command, flags commonFlags, target string) (*grammar.Grammar, *project.Manifest, error) {
	g, manifest, err := resolveGrammar(flags.grammar, target)
	if err != nil {
		var me *manifestError
		if errors.As(err, &me) && me.path != "" {
			return nil, nil, reportManifestError(cmd, me)
		}
		return nil, nil, err
	}
	return g, manifest, nil
}
