package cmd

import (
	"github.com/spf13/cobra"

	"github.com/bigdbm/extractreg/internal/extracttype/domain"
	"github.com/bigdbm/extractreg/internal/presentation"
)

var vocabularyCmd = &cobra.Command{
	Use:   "vocabulary",
	Short: "Show the allowed values of each attribute",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		formatter, err := newFormatter(cmd.OutOrStdout())
		if err != nil {
			return err
		}
		return formatter.FormatVocabulary(presentation.FromVocabulary(domain.DefaultVocabulary()))
	},
}

func init() {
	rootCmd.AddCommand(vocabularyCmd)
}
