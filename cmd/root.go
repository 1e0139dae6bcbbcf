package cmd

import (
	"io"
	"log/slog"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

//nolint:gochecknoglobals // Cobra boilerplate
var verbose bool

//nolint:gochecknoglobals // Cobra boilerplate
var configFile string

//nolint:gochecknoglobals // Cobra boilerplate
var rootCmd = &cobra.Command{
	Use:   "interview-roadmap",
	Short: "Generate interview preparation roadmaps",
	Long: `interview-roadmap builds a structured interview preparation roadmap for a
company and role. It looks up public information about the company's interview
process, asks an LLM (Gemini or Claude) for a roadmap, and saves the result as JSON.

If the model is unreachable or its answer cannot be parsed, a generic roadmap is
saved instead, marked with a note.`,
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (default is $HOME/.interview-roadmap/config.json)")
}

// getVerbose returns the verbose flag value.
func getVerbose() (result bool) {
	result = verbose
	return result
}

// getConfigFile returns the config file path.
func getConfigFile() (result string) {
	result = configFile
	return result
}

// newLogger builds the diagnostic logger for one run, tagged with a run id.
func newLogger(w io.Writer, debug bool) (logger *slog.Logger) {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
	logger = slog.New(handler).With(slog.String("run_id", uuid.NewString()))
	return logger
}
