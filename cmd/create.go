package cmd

import (
	"github.com/spf13/cobra"

	"github.com/bigdbm/extractreg/internal/extracttype/domain"
	"github.com/bigdbm/extractreg/internal/presentation"
)

var createCmd = &cobra.Command{
	Use:   "create",
	Short: "Register a new extract type",
	Long: `Register a new extract type and print it with its generated uid.

Every enum attribute and --layout-id are required. The layout must exist in the
configured layout catalog. Free-text attributes default to empty. Creating an
extract type whose attributes all match an existing one fails.

Examples:
  extractreg create --layout-id 1001 --delimiter "tab sep" --fully-qualified "" \
    --split-by-size "One file" --storage-files no --archive-type no --extension tsv

  # Quote every field and gzip the output
  extractreg create --layout-id 1001 --delimiter "comma sep" --fully-qualified '"' \
    --split-by-size 250MB --storage-files yes --archive-type gz --extension csv \
    --internal-name "daily sales"`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		req := createRequestFromFlags(changedAttributes(cmd.Flags()))

		reg, err := openRegistry(cfg)
		if err != nil {
			return err
		}
		defer func() { _ = reg.Close() }()

		record, err := reg.service.Create(cmd.Context(), req)
		if err != nil {
			return err
		}

		formatter, err := newFormatter(cmd.OutOrStdout())
		if err != nil {
			return err
		}
		return formatter.FormatExtractType(presentation.FromDomainExtractType(record))
	},
}

func init() {
	addAttributeFlags(createCmd, vocabularyUsage("value of "))
	rootCmd.AddCommand(createCmd)
}

// createRequestFromFlags leaves unset enum attributes nil so validation reports them.
func createRequestFromFlags(set map[domain.Attribute]string) domain.CreateRequest {
	ptr := func(attr domain.Attribute) *string {
		if v, ok := set[attr]; ok {
			return &v
		}
		return nil
	}
	return domain.CreateRequest{
		LayoutID:         ptr(domain.AttrLayoutID),
		Delimiter:        ptr(domain.AttrDelimiter),
		FullyQualified:   ptr(domain.AttrFullyQualified),
		SplitBySize:      ptr(domain.AttrSplitBySize),
		StorageFiles:     ptr(domain.AttrStorageFiles),
		ArchiveType:      ptr(domain.AttrArchiveType),
		Extension:        ptr(domain.AttrExtension),
		InternalName:     set[domain.AttrInternalName],
		NamingConvention: set[domain.AttrNamingConvention],
		Example:          set[domain.AttrExample],
		Observation:      set[domain.AttrObservation],
	}
}
