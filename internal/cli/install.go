package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/toolchest-labs/toolchest/internal/executor"
	"github.com/toolchest-labs/toolchest/internal/manifest"
)

var installCmd = &cobra.Command{
	Use:   "install <tool>",
	Short: "Install a tool using its manifest",
	Long: `Install runs the manifest's installation actions in seq-id order inside
the tools directory. The manifest is looked up across the configured
manifest sources; the first source that has it wins.`,
	Args: cobra.ExactArgs(1),
	RunE: runInstall,
}

func init() {
	rootCmd.AddCommand(installCmd)
}

func runInstall(cmd *cobra.Command, args []string) error {
	tool := args[0]
	fmt.Fprintf(cmd.OutOrStdout(), "Installing %s...\n", tool)
	if _, err := executeGroup(cmd, tool, manifest.GroupInstallation, executor.Options{}); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Installation of %s completed successfully!\n", tool)
	return nil
}
