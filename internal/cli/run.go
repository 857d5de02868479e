package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/toolchest-labs/toolchest/internal/executor"
	"github.com/toolchest-labs/toolchest/internal/manifest"
)

var (
	runSpawn bool
	runWait  bool
)

var runCmd = &cobra.Command{
	Use:   "run <tool> [args...]",
	Short: "Run an installed tool",
	Long: `Run executes the manifest's run actions inside the tool's installation
directory. Arguments after the tool name are appended to each command.

Actions marked "spawn" detach by default when invoked without arguments;
informational arguments (--help, --version, ...) make them wait and show
output instead. --spawn and --wait override the decision, with --wait
taking precedence.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runRun,
}

func init() {
	runCmd.Flags().BoolVar(&runSpawn, "spawn", false, "Detach spawn-marked actions even when arguments are present")
	runCmd.Flags().BoolVar(&runWait, "wait", false, "Wait for spawn-marked actions and capture their output")
	// Stop flag parsing at the tool name so flag-looking arguments
	// (--help, --port, ...) pass through to the tool instead of being
	// rejected as unknown flags. --spawn/--wait go before the tool name.
	runCmd.Flags().SetInterspersed(false)
	rootCmd.AddCommand(runCmd)
}

func runRun(cmd *cobra.Command, args []string) error {
	tool := args[0]
	fmt.Fprintf(cmd.OutOrStdout(), "Running %s...\n", tool)

	opts := executor.Options{
		ExtraArgs:  args[1:],
		ForceSpawn: runSpawn,
		ForceWait:  runWait,
	}
	report, err := executeGroup(cmd, tool, manifest.GroupRun, opts)
	if err != nil {
		return err
	}
	// Waited actions captured their output; show it.
	for _, result := range report.Results {
		if !result.Spawned && result.Stdout != "" {
			fmt.Fprint(cmd.OutOrStdout(), result.Stdout)
		}
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s execution completed!\n", tool)
	return nil
}
