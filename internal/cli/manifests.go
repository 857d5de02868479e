package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/toolchest-labs/toolchest/internal/manifest"
	"github.com/toolchest-labs/toolchest/internal/source"
)

var manifestsCmd = &cobra.Command{
	Use:   "manifests",
	Short: "Manage manifest sources",
	Long: `Manifest sources are consulted in configuration order when a tool
manifest is looked up: local directories first-hand, git repositories and
URL endpoints through a local cache.`,
}

var (
	addSourceType         string
	addSourceBranch       string
	addSourceNoAutoUpdate bool
)

var addSourceCmd = &cobra.Command{
	Use:   "add-source <path-or-url>",
	Short: "Add a manifest source to the configuration",
	Args:  cobra.ExactArgs(1),
	RunE:  runAddSource,
}

var listSourcesCmd = &cobra.Command{
	Use:   "list",
	Short: "List all configured manifest sources",
	Args:  cobra.NoArgs,
	RunE:  runListSources,
}

var manifestInfoSource string

var manifestInfoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show available tools for each manifest source",
	Args:  cobra.NoArgs,
	RunE:  runManifestInfo,
}

func init() {
	addSourceCmd.Flags().StringVarP(&addSourceType, "type", "t", "", "Type of source: local, git, or url")
	addSourceCmd.Flags().StringVarP(&addSourceBranch, "branch", "b", "", "Branch for git sources")
	addSourceCmd.Flags().BoolVar(&addSourceNoAutoUpdate, "no-auto-update", false, "Disable automatic updates for this source")
	_ = addSourceCmd.MarkFlagRequired("type")

	manifestInfoCmd.Flags().StringVarP(&manifestInfoSource, "source", "s", "", "Only show sources matching this filter")

	manifestsCmd.AddCommand(addSourceCmd)
	manifestsCmd.AddCommand(listSourcesCmd)
	manifestsCmd.AddCommand(manifestInfoCmd)
	rootCmd.AddCommand(manifestsCmd)
}

func runAddSource(cmd *cobra.Command, args []string) error {
	st, err := loadSettings()
	if err != nil {
		return err
	}

	location, err := st.AddSource(source.Kind(addSourceType), args[0], addSourceBranch, !addSourceNoAutoUpdate)
	if err != nil {
		return err
	}
	if err := st.Save(); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Added %s manifest source: %s\n", addSourceType, location)
	if addSourceBranch != "" {
		fmt.Fprintf(out, "  branch: %s\n", addSourceBranch)
	}
	if addSourceNoAutoUpdate {
		fmt.Fprintln(out, "  auto-update: disabled")
	}
	return nil
}

func runListSources(cmd *cobra.Command, args []string) error {
	st, err := loadSettings()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(st.ManifestSources) == 0 {
		fmt.Fprintln(out, "No manifest sources configured.")
		return nil
	}

	fmt.Fprintln(out, "Configured manifest sources:")
	for i, src := range st.ManifestSources {
		line := fmt.Sprintf("%d. %s %s", i+1, src.Kind, src.Location)
		if src.Branch != "" {
			line += fmt.Sprintf(" (branch: %s)", src.Branch)
		}
		fmt.Fprintln(out, line)
	}
	return nil
}

func runManifestInfo(cmd *cobra.Command, args []string) error {
	st, err := loadSettings()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "Manifest source information:")

	matched := 0
	for i, src := range st.ManifestSources {
		if manifestInfoSource != "" &&
			!strings.Contains(src.Location, manifestInfoSource) &&
			!strings.Contains(string(src.Kind), manifestInfoSource) {
			continue
		}
		matched++

		fmt.Fprintf(out, "\nSource %d: %s %s\n", i+1, src.Kind, src.Location)
		switch src.Kind {
		case source.KindLocal:
			printLocalManifests(out, src.Location)
		case source.KindGit:
			fmt.Fprintln(out, "  Git repository source")
			if src.Branch != "" {
				fmt.Fprintf(out, "  Branch: %s\n", src.Branch)
			}
			fmt.Fprintf(out, "  Auto-update: %s\n", enabledOrDisabled(src.AutoUpdate))
		case source.KindURL:
			fmt.Fprintln(out, "  URL source")
			fmt.Fprintf(out, "  Auto-update: %s\n", enabledOrDisabled(src.AutoUpdate))
			fmt.Fprintln(out, "  Note: remote manifest content is cached locally")
		default:
			fmt.Fprintf(out, "  Unknown source type: %s\n", src.Kind)
		}
	}

	if manifestInfoSource != "" && matched == 0 {
		fmt.Fprintf(out, "No sources found matching filter: %s\n", manifestInfoSource)
	}
	return nil
}

// printLocalManifests lists the *.jsonc files of a local source and flags
// the ones that fail schema validation.
func printLocalManifests(out io.Writer, dir string) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		fmt.Fprintf(out, "  Directory not found: %s\n", dir)
		return
	}

	fmt.Fprintln(out, "  Available manifests:")
	count := 0
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != manifest.ManifestExt {
			continue
		}
		name := strings.TrimSuffix(entry.Name(), manifest.ManifestExt)
		count++

		result, err := manifest.ValidateFile(filepath.Join(dir, entry.Name()))
		switch {
		case err != nil:
			fmt.Fprintf(out, "    - %s (unreadable: %v)\n", name, err)
		case !result.Valid:
			fmt.Fprintf(out, "    - %s (invalid: %d issues)\n", name, len(result.Issues))
			for _, issue := range result.Issues {
				fmt.Fprintf(out, "        %s: %s\n", issue.Path, issue.Message)
			}
		default:
			fmt.Fprintf(out, "    - %s\n", name)
		}
	}
	if count == 0 {
		fmt.Fprintln(out, "    No manifest files found")
	}
}

func enabledOrDisabled(on bool) string {
	if on {
		return "enabled"
	}
	return "disabled"
}
