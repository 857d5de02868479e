package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"

	"github.com/toolchest-labs/toolchest/internal/settings"
)

var (
	configShow  bool
	configReset bool
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the application configuration file",
	Long: `Without flags, config prints the configuration file location and creates
it with defaults if missing. --show dumps the effective configuration;
--reset rewrites the file with defaults.`,
	Args: cobra.NoArgs,
	RunE: runConfig,
}

func init() {
	configCmd.Flags().BoolVar(&configShow, "show", false, "Show current configuration")
	configCmd.Flags().BoolVar(&configReset, "reset", false, "Reset to default configuration")
	rootCmd.AddCommand(configCmd)
}

func runConfig(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	if configReset {
		st := settings.Default()
		if err := st.Save(); err != nil {
			return err
		}
		fmt.Fprintln(out, "App configuration reset to defaults")
		return nil
	}

	st, err := loadSettings()
	if err != nil {
		return err
	}

	if configShow {
		data, err := yaml.Marshal(st)
		if err != nil {
			return fmt.Errorf("encoding settings: %w", err)
		}
		fmt.Fprintln(out, "Current app configuration:")
		fmt.Fprint(out, string(data))
		fmt.Fprintf(out, "location: %s\n", st.FilePath())
		return nil
	}

	fmt.Fprintf(out, "App configuration file: %s\n", st.FilePath())
	if _, err := os.Stat(st.FilePath()); os.IsNotExist(err) {
		if err := st.Save(); err != nil {
			return err
		}
		fmt.Fprintln(out, "Created default app configuration")
	}
	return nil
}
