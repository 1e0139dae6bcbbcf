package cmd

import (
	"fmt"

	"github.com/nikogura/interview-roadmap/pkg/config"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

//nolint:gochecknoglobals // Cobra boilerplate
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a default config file",
	Long: `Create a default config file at $HOME/.interview-roadmap/config.json
(or the path given with --config). API keys may be left empty in the file and
supplied through GOOGLE_API_KEY / ANTHROPIC_API_KEY or a .env file instead.`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) (err error) {
	var path string
	path, err = config.InitConfig(getConfigFile())
	if err != nil {
		err = errors.Wrap(err, "failed to create config")
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Config written to: %s\n", path)
	return err
}
