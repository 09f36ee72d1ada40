package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"greet/internal/version"
)

var rootCmd = &cobra.Command{
	Use:          "greet",
	Short:        "Greeting language parser and diagnostic tools",
	Long:         `greet tokenizes, parses and checks files written in the greeting language`,
	SilenceUsage: true,

	PersistentPreRunE: startProfiling,
	PersistentPostRun: func(*cobra.Command, []string) { stopProfiling() },
}

// main registers subcommands and persistent flags and runs the root command.
// Any error from a command exits with status 1.
func main() {
	// Устанавливаем версию для автоматического флага --version
	rootCmd.Version = version.Version

	// Добавляем команды
	rootCmd.AddCommand(tokenizeCmd)
	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(diagCmd)
	rootCmd.AddCommand(fixCmd)
	rootCmd.AddCommand(grammarCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(versionCmd)

	// Глобальные флаги
	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Bool("quiet", false, "suppress non-essential output")
	rootCmd.PersistentFlags().Bool("timings", false, "show timing information")
	rootCmd.PersistentFlags().Int("max-diagnostics", 100, "maximum number of diagnostics to show")
	rootCmd.PersistentFlags().String("cpu-profile", "", "write a CPU profile to file")
	rootCmd.PersistentFlags().String("mem-profile", "", "write a heap profile to file on exit")
	rootCmd.PersistentFlags().String("runtime-trace", "", "write a runtime trace to file")
	rootCmd.PersistentFlags().String("grammar", "", "grammar preset or path to a grammar .toml (default: greet.toml, then regex)")

	if err := rootCmd.Execute(); err != nil {
		exit(1)
	}
}

// isTerminal проверяет, является ли файл терминалом
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
