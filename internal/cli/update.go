package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/toolchest-labs/toolchest/internal/executor"
	"github.com/toolchest-labs/toolchest/internal/manifest"
)

var updateCmd = &cobra.Command{
	Use:   "update <tool>",
	Short: "Update an installed tool",
	Long: `Update runs the manifest's update actions inside the tool's installation
directory. The tool must already be installed.`,
	Args: cobra.ExactArgs(1),
	RunE: runUpdate,
}

func init() {
	rootCmd.AddCommand(updateCmd)
}

func runUpdate(cmd *cobra.Command, args []string) error {
	tool := args[0]
	fmt.Fprintf(cmd.OutOrStdout(), "Updating %s...\n", tool)
	if _, err := executeGroup(cmd, tool, manifest.GroupUpdate, executor.Options{}); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Update of %s completed successfully!\n", tool)
	return nil
}
