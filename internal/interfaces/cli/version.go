package cli

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

// BuildInfo holds version information injected at build time.
type BuildInfo struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	BuildDate string `json:"build_date"`
	GoVersion string `json:"go_version"`
}

// NewVersionCmd creates the version command.
func NewVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:         "version",
		Short:       "Print version information",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{annotationSkipInit: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			info := BuildInfo{Version: Version, Commit: GitCommit, BuildDate: BuildDate, GoVersion: runtime.Version()}
			if output, _ := cmd.Flags().GetString("output"); output == OutputJSON {
				return printJSON(cmd, info)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "molgraph %s (commit: %s, built: %s, %s)\n",
				info.Version, info.Commit, info.BuildDate, info.GoVersion)
			return nil
		},
	}
}

//Personal.AI order the ending
