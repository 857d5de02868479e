package cli

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/toolchest-labs/toolchest/internal/branding"
	"github.com/toolchest-labs/toolchest/internal/release"
	"github.com/toolchest-labs/toolchest/internal/settings"
)

var (
	buildVersion string
	buildCommit  string
	buildDate    string
)

var (
	flagConfigDir string
	flagVerbose   bool
)

// logger carries debug tracing for the resolver and executor. It stays at
// warn level unless --verbose raises it.
var logger = log.NewWithOptions(os.Stderr, log.Options{
	Level:  log.WarnLevel,
	Prefix: "toolchest",
})

var rootCmd = &cobra.Command{
	Use:   branding.CLIName() + " [command]",
	Short: branding.Description(),
	Long: branding.DisplayName() + ` installs, updates, builds, and runs third-party command-line
tools from declarative JSONC manifests. Manifests are looked up across
configured sources (local directories, git repositories, URL endpoints) in
priority order.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if flagVerbose {
			logger.SetLevel(log.DebugLevel)
		}

		// Non-blocking update banner from the cached release check.
		// Dev builds have no comparable version.
		if buildVersion != "" && buildVersion != "dev" && cmd.Name() != "version" {
			checker := &release.Checker{Version: buildVersion}
			checker.Banner(os.Stderr, configDir())
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfigDir, "config-dir", "", "Override the configuration directory")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Enable debug logging")
}

// configDir resolves the effective config directory, honoring --config-dir.
func configDir() string {
	if flagConfigDir != "" {
		return flagConfigDir
	}
	return settings.DefaultConfigDir()
}

// Execute runs the root command with build info injected via ldflags.
func Execute(version, commit, date string) error {
	buildVersion = version
	buildCommit = commit
	buildDate = date
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	return nil
}
