package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"canonfmt/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "canonfmt",
	Short: "Canonical formatter for JSONC and YAML that keeps your comments",
	Long:  `canonfmt rewrites JSONC and YAML files into a canonical layout while keeping every comment attached to the key it annotates`,
}

// main initializes the CLI by setting the command version, registering
// subcommands and persistent flags, and then executes the root command.
// If command execution returns an error, the process exits with status code 1.
func main() {
	// Версия для автоматического флага --version
	rootCmd.Version = version.Version

	// Регистрируем подкоманды
	rootCmd.AddCommand(fmtCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(cacheCmd)
	rootCmd.AddCommand(versionCmd)

	// Глобальные флаги
	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Bool("quiet", false, "suppress non-essential output")
	rootCmd.PersistentFlags().Bool("timings", false, "show timing information")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// isTerminal сообщает, подключён ли файл к терминалу
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
