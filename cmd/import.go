package cmd

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/bigdbm/extractreg/internal/manifest"
	"github.com/bigdbm/extractreg/internal/presentation"
)

var importFile string

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Register extract types from a YAML manifest",
	Long: `Register every extract type listed in a YAML manifest, in file order.

The manifest is checked against a schema before anything is written. Import
stops at the first entry that fails; entries before it stay registered.

Manifest format:
  extract_types:
    - layout_id: 1001
      delimiter: tab sep
      fully_qualified: ""
      split_by_size: One file
      storage_files: "no"
      archive_type: "no"
      extension: tsv
      internal_name: daily sales

Examples:
  extractreg import -f extracts.yaml
  extractreg import -f extracts.yaml -o table`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		reqs, err := manifest.LoadFile(importFile)
		if err != nil {
			return err
		}

		reg, err := openRegistry(cfg)
		if err != nil {
			return err
		}
		defer func() { _ = reg.Close() }()

		result := reg.service.Import(cmd.Context(), reqs)

		formatter, err := newFormatter(cmd.OutOrStdout())
		if err != nil {
			return errors.Join(err, result.Err)
		}
		if err := formatter.FormatImportResult(presentation.FromImportResult(result)); err != nil {
			return err
		}
		return result.Err
	},
}

func init() {
	importCmd.Flags().StringVarP(&importFile, "file", "f", "", "manifest file (required)")
	_ = importCmd.MarkFlagRequired("file")
	rootCmd.AddCommand(importCmd)
}
