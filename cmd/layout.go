package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bigdbm/extractreg/internal/config"
)

var layoutDescription string

var layoutRegisterCmd = &cobra.Command{
	Use:   "layout:register <layout-id>",
	Short: "Record a layout so extract types can reference it",
	Long: `Record a layout in the configured catalog.

Only the filesystem and sqlite layout backends are writable. The filesystem
backend creates <layouts.root>/extractlayoutid=<id>/layout.txt.

Examples:
  extractreg layout:register 1001 --description "daily sales"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		reg, err := openRegistry(cfg)
		if err != nil {
			return err
		}
		defer func() { _ = reg.Close() }()

		registrar := reg.Registrar()
		if registrar == nil {
			return fmt.Errorf("layouts backend %q is read-only; use %q or %q",
				cfg.Layouts.Backend, config.LayoutsFilesystem, config.LayoutsSQLite)
		}
		if err := registrar.RegisterLayout(cmd.Context(), args[0], layoutDescription); err != nil {
			return err
		}
		_, err = fmt.Fprintf(cmd.OutOrStdout(), "registered layout %s\n", args[0])
		return err
	},
}

var layoutListCmd = &cobra.Command{
	Use:   "layout:list",
	Short: "List layouts in the sqlite catalog",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg.Layouts.Backend != config.LayoutsSQLite {
			return fmt.Errorf("layout:list needs the %q layouts backend, got %q",
				config.LayoutsSQLite, cfg.Layouts.Backend)
		}
		reg, err := openRegistry(cfg)
		if err != nil {
			return err
		}
		defer func() { _ = reg.Close() }()

		ids, err := reg.db.LayoutCatalog().ListLayouts(cmd.Context())
		if err != nil {
			return err
		}
		formatter, err := newFormatter(cmd.OutOrStdout())
		if err != nil {
			return err
		}
		return formatter.FormatLayouts(ids)
	},
}

func init() {
	layoutRegisterCmd.Flags().StringVarP(&layoutDescription, "description", "d", "", "free-text description of the layout")
	rootCmd.AddCommand(layoutRegisterCmd)
	rootCmd.AddCommand(layoutListCmd)
}
