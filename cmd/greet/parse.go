package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"greet/internal/ast"
	"greet/internal/diagfmt"
	"greet/internal/driver"
	"greet/internal/observ"
	"greet/internal/source"
)

var parseCmd = &cobra.Command{
	Use:   "parse [flags] <file.greet|directory>",
	Short: "Parse a greeting file or directory and print the syntax tree",
	Long:  `Parse analyzes a greeting file or all *.greet files in a directory and prints their syntax trees`,
	Args:  cobra.ExactArgs(1),
	RunE:  runParse,
}

func init() {
	parseCmd.Flags().String("format", "pretty", "output format (pretty|sexp|json)")
	parseCmd.Flags().Int("jobs", 0, "max parallel workers for directory processing (0=auto)")
}

func runParse(cmd *cobra.Command, args []string) error {
	filePath := args[0]

	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	switch format {
	case "pretty", "sexp", "json":
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
	flags, err := readCommonFlags(cmd)
	if err != nil {
		return err
	}
	g, _, err := loadGrammar(cmd, flags, filePath)
	if err != nil {
		return err
	}
	color, err := useColor(cmd, os.Stderr)
	if err != nil {
		return err
	}
	prettyOpts := diagfmt.PrettyOpts{Color: color, Context: 2}

	// Проверяем, файл это или директория
	st, err := os.Stat(filePath)
	if err != nil {
		return fmt.Errorf("failed to stat path: %w", err)
	}

	timer := observ.NewTimer()
	if !st.IsDir() {
		// Парсинг одного файла
		idx := timer.Begin("parse")
		result, err := driver.Parse(cmd.Context(), filePath, g, flags.maxDiagnostics)
		if err != nil {
			return fmt.Errorf("parsing failed: %w", err)
		}
		timer.End(idx, fmt.Sprintf("greetings=%d", result.Greetings))

		if !flags.quiet && result.Bag.Len() > 0 {
			diagfmt.Pretty(os.Stderr, result.Bag, result.FileSet, prettyOpts)
		}
		if err := printTree(format, result.Builder.Tree(result.FileID), result.FileSet); err != nil {
			return err
		}
		if flags.timings {
			fmt.Fprint(os.Stderr, timer.Summary())
		}
		return nil
	}

	// Парсинг директории
	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return fmt.Errorf("failed to get jobs flag: %w", err)
	}

	idx := timer.Begin("parse-dir")
	fs, results, err := driver.ParseDir(cmd.Context(), filePath, g, flags.maxDiagnostics, jobs, nil)
	if err != nil {
		return fmt.Errorf("parsing failed: %w", err)
	}
	timer.End(idx, fmt.Sprintf("files=%d", len(results)))

	// Обрабатываем результаты (они уже отсортированы)
	if !flags.quiet {
		for _, r := range results {
			if r.Bag.Len() > 0 {
				diagfmt.Pretty(os.Stderr, r.Bag, fs, prettyOpts)
			}
		}
	}

	if format == "json" {
		type fileTree struct {
			Path string           `json:"path"`
			Tree diagfmt.NodeJSON `json:"tree"`
		}
		out := make([]fileTree, 0, len(results))
		for _, r := range results {
			if r.Builder == nil {
				continue
			}
			out = append(out, fileTree{Path: r.Path, Tree: diagfmt.BuildNodeJSON(r.Builder.Tree(r.ASTFile))})
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(out); err != nil {
			return err
		}
	} else {
		for _, r := range results {
			if r.Builder == nil {
				continue
			}
			fmt.Fprintf(os.Stdout, "== %s ==\n", r.Path)
			if err := printTree(format, r.Builder.Tree(r.ASTFile), fs); err != nil {
				return err
			}
		}
	}
	if flags.timings {
		fmt.Fprint(os.Stderr, timer.Summary())
	}
	return nil
}

func printTree(format string, root ast.Node, fs *source.FileSet) error {
	switch format {
	case "sexp":
		return diagfmt.FormatTreeSExpr(os.Stdout, root)
	case "json":
		return diagfmt.FormatTreeJSON(os.Stdout, root)
	default:
		return diagfmt.FormatTreePretty(os.Stdout, root, fs)
	}
}
