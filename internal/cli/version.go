package cli

import (
	"encoding/json"
	"runtime"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/yaklabco/checkmark/internal/logging"
)

type versionOutput struct {
	Version string `json:"version"`
	Commit  string `json:"commit"`
	Built   string `json:"built"`
	Go      string `json:"go"`
}

func newVersionCommand(info BuildInfo) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long:  `Print the version, commit hash, build date and Go version of checkmark.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := versionOutput{
				Version: info.Version,
				Commit:  info.Commit,
				Built:   info.Date,
				Go:      runtime.Version(),
			}

			if outputFormat, _ := cmd.Flags().GetString("format"); outputFormat == formatJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(out)
			}

			logger := log.NewWithOptions(cmd.OutOrStdout(), log.Options{Level: log.InfoLevel})
			logger.Info("checkmark",
				logging.FieldVersion, out.Version,
				logging.FieldCommit, out.Commit,
				logging.FieldBuilt, out.Built,
				logging.FieldGo, out.Go,
			)
			return nil
		},
	}
}
