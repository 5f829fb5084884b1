package cmd

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/bigdbm/extractreg/internal/extracttype/domain"
)

// attributeFlag returns the flag name for attr, e.g. "layout-id".
func attributeFlag(attr domain.Attribute) string {
	return strings.ReplaceAll(attr.String(), "_", "-")
}

// addAttributeFlags registers one string flag per attribute.
func addAttributeFlags(cmd *cobra.Command, usage func(domain.Attribute) string) {
	for _, attr := range domain.Attributes() {
		cmd.Flags().String(attributeFlag(attr), "", usage(attr))
	}
}

// changedAttributes returns the attributes whose flags were set on the command line.
// A flag set to the empty string counts as supplied.
func changedAttributes(flags *pflag.FlagSet) map[domain.Attribute]string {
	out := make(map[domain.Attribute]string)
	for _, attr := range domain.Attributes() {
		f := flags.Lookup(attributeFlag(attr))
		if f != nil && f.Changed {
			out[attr] = f.Value.String()
		}
	}
	return out
}

func vocabularyUsage(prefix string) func(domain.Attribute) string {
	vocab := domain.DefaultVocabulary()
	return func(attr domain.Attribute) string {
		if allowed, ok := vocab.Allowed(attr); ok {
			quoted := make([]string, len(allowed))
			for i, v := range allowed {
				quoted[i] = `"` + v + `"`
			}
			return prefix + attr.String() + " (" + strings.Join(quoted, ", ") + ")"
		}
		return prefix + attr.String()
	}
}
