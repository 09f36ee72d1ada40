package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"greet/internal/diagfmt"
	"greet/internal/driver"
	"greet/internal/observ"
)

var tokenizeCmd = &cobra.Command{
	Use:   "tokenize [flags] file.greet",
	Short: "Tokenize a greeting source file",
	Long:  `Tokenize breaks a greeting source file down into salutation, name and invalid tokens`,
	Args:  cobra.ExactArgs(1),
	RunE:  runTokenize,
}

func init() {
	tokenizeCmd.Flags().String("format", "pretty", "output format (pretty|json)")
}

func runTokenize(cmd *cobra.Command, args []string) error {
	filePath := args[0]

	// Получаем флаги
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	if format != "pretty" && format != "json" {
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

	timer := observ.NewTimer()
	idx := timer.Begin("tokenize")
	result, err := driver.Tokenize(filePath, g, flags.maxDiagnostics)
	if err != nil {
		return fmt.Errorf("tokenization failed: %w", err)
	}
	timer.End(idx, fmt.Sprintf("tokens=%d", len(result.Tokens)))

	// Выводим диагностику в stderr, если есть
	if !flags.quiet && result.Bag.Len() > 0 {
		color, err := useColor(cmd, os.Stderr)
		if err != nil {
			return err
		}
		diagfmt.Pretty(os.Stderr, result.Bag, result.FileSet, diagfmt.PrettyOpts{Color: color, Context: 2})
	}

	// Выводим токены в выбранном формате
	if format == "json" {
		err = diagfmt.FormatTokensJSON(os.Stdout, result.Tokens)
	} else {
		err = diagfmt.FormatTokensPretty(os.Stdout, result.Tokens, result.FileSet)
	}
	if err != nil {
		return err
	}
	if flags.timings {
		fmt.Fprint(os.Stderr, timer.Summary())
	}
	return nil
}
