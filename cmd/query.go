package cmd

import (
	"github.com/spf13/cobra"

	"github.com/bigdbm/extractreg/internal/extracttype/domain"
	"github.com/bigdbm/extractreg/internal/presentation"
)

var queryCmd = &cobra.Command{
	Use:   "query",
	Short: "List extract types matching attribute filters",
	Long: `List stored extract types whose attributes equal every supplied filter.

Filters are combined with AND. With no filters every extract type is listed.
An empty result is not an error; an empty registry is.

Examples:
  # Everything
  extractreg query

  # All gzipped CSV extracts of layout 1001
  extractreg query --layout-id 1001 --extension csv --archive-type gz

  # Human-readable table
  extractreg query -o table --delimiter "tab sep"

  # Parse specific fields with jq
  extractreg query | jq '.[].extract_type_uid'`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		var filter domain.QueryFilter
		for attr, value := range changedAttributes(cmd.Flags()) {
			filter.Set(attr, value)
		}

		reg, err := openRegistry(cfg)
		if err != nil {
			return err
		}
		defer func() { _ = reg.Close() }()

		records, err := reg.service.Query(cmd.Context(), filter)
		if err != nil {
			return err
		}

		formatter, err := newFormatter(cmd.OutOrStdout())
		if err != nil {
			return err
		}
		return formatter.FormatExtractTypes(presentation.FromDomainExtractTypes(records))
	},
}

func init() {
	addAttributeFlags(queryCmd, vocabularyUsage("filter on "))
	rootCmd.AddCommand(queryCmd)
}
