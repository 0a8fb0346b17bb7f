package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yaklabco/checkmark/internal/configloader"
	"github.com/yaklabco/checkmark/internal/logging"
	"github.com/yaklabco/checkmark/pkg/config"
)

// stdoutPath selects standard output instead of a file.
const stdoutPath = "-"

type generateFlags struct {
	force  bool
	format string
	output string
}

func newGenerateConfigCommand() *cobra.Command {
	flags := &generateFlags{}

	cmd := &cobra.Command{
		Use:   "generate-config",
		Short: "Write a configuration file with the default settings",
		Long: `Create a configuration file holding every setting at its default value.

Examples:
  checkmark generate-config                  Create checkmark.toml
  checkmark generate-config --format yaml    Create .checkmark.yml
  checkmark generate-config -o -             Print to standard output`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runGenerateConfig(cmd, flags)
		},
	}

	cmd.Flags().BoolVarP(&flags.force, "force", "f", false, "overwrite an existing file")
	cmd.Flags().StringVar(&flags.format, "format", "toml", "file format: toml or yaml")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "",
		"output path, - for stdout (default: checkmark.toml or .checkmark.yml)")

	return cmd
}

func runGenerateConfig(cmd *cobra.Command, flags *generateFlags) error {
	var fileFormat config.FileFormat
	outputPath := flags.output

	switch flags.format {
	case "toml":
		fileFormat = config.FileFormatTOML
		if outputPath == "" {
			outputPath = "checkmark.toml"
		}
	case "yaml", "yml":
		fileFormat = config.FileFormatYAML
		if outputPath == "" {
			outputPath = ".checkmark.yml"
		}
	default:
		return usageError(fmt.Errorf("invalid format %q: must be toml or yaml", flags.format))
	}

	content, err := config.GenerateTemplate(config.TemplateOptions{Format: fileFormat})
	if err != nil {
		return runtimeError(err)
	}

	if outputPath == stdoutPath {
		_, err := cmd.OutOrStdout().Write(content)
		return err
	}

	written, err := configloader.WriteConfig(cmd.Context(), outputPath, content, flags.force)
	if err != nil {
		return usageError(err)
	}

	if !written {
		logging.Default().Info("configuration file unchanged", logging.FieldPath, outputPath)
		return nil
	}
	logging.Default().Info("created configuration file", logging.FieldPath, outputPath)
	return nil
}
