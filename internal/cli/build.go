package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/toolchest-labs/toolchest/internal/executor"
	"github.com/toolchest-labs/toolchest/internal/manifest"
)

var buildCmd = &cobra.Command{
	Use:   "build <tool>",
	Short: "Build an installed tool from source",
	Long: `Build runs the manifest's build actions inside the tool's installation
directory. The tool must already be installed.`,
	Args: cobra.ExactArgs(1),
	RunE: runBuild,
}

func init() {
	rootCmd.AddCommand(buildCmd)
}

func runBuild(cmd *cobra.Command, args []string) error {
	tool := args[0]
	fmt.Fprintf(cmd.OutOrStdout(), "Building %s...\n", tool)
	if _, err := executeGroup(cmd, tool, manifest.GroupBuild, executor.Options{}); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Build of %s completed successfully!\n", tool)
	return nil
}
