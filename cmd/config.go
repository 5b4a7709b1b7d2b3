package cmd

import (
	"os"

	"ytbatch/infrastructure/config"

	"github.com/spf13/cobra"
)

// DefaultOutput is where config subcommands print
var DefaultOutput OutputWriter = os.Stdout

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	Long: `Prints the configuration a run would use: built-in defaults, then the
config file, then YTBATCH_* environment variables. Command line flags are
applied per run and are not shown.`,
	Args: cobra.NoArgs,
	RunE: runConfigShow,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	cfg, err := requireConfig()
	if err != nil {
		return err
	}
	return RunConfigShowWithDependencies(cfg, DefaultOutput)
}

// RunConfigShowWithDependencies prints cfg as YAML (for testing)
func RunConfigShowWithDependencies(cfg *config.Config, out OutputWriter) error {
	data, err := config.Marshal(cfg)
	if err != nil {
		return err
	}
	_, err = out.Write(data)
	return err
}
