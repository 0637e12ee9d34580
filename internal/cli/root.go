package cli

import (
	"catalogue/internal/config"
	"github.com/juju/errors"
	"github.com/juju/loggo/v2"
	"github.com/spf13/cobra"
)

var logger = loggo.GetLogger("catalogue")

var (
	configPath string
	envPath    string
	verbose    bool

	// cfg is loaded before any subcommand runs.
	cfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "catalogue",
	Short: "Course catalogue service",
	Long: `Manages a catalogue of courses and serves it over REST, SOAP and
server-rendered web forms.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		if cmd.Name() == versionCmd.Name() {
			return nil
		}
		loaded, err := config.LoadConfig(configPath, envPath)
		if err != nil {
			return errors.Annotate(err, "loading configuration")
		}
		cfg = loaded
		return configureLogging(cfg.Log, verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "config/config.yaml", "path to the YAML configuration file")
	rootCmd.PersistentFlags().StringVar(&envPath, "env", "config/.env", "path to an optional .env file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log at DEBUG level")
}

func configureLogging(c config.LogConfig, verbose bool) error {
	spec := c.Level
	if verbose {
		spec = "<root>=DEBUG"
	}
	return errors.Annotatef(loggo.ConfigureLoggers(spec), "log level %q", spec)
}

// Execute runs the command line.
func Execute() error {
	return rootCmd.Execute()
}
