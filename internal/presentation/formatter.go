package presentation

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/muesli/reflow/truncate"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Output formats.
const (
	FormatJSON  = "json"
	FormatTable = "table"
)

// maxCellWidth bounds free-text cells in table output.
const maxCellWidth = 32

var printer = message.NewPrinter(language.English)

// Formatter handles output formatting
type Formatter struct {
	writer   io.Writer
	format   string
	renderer *lipgloss.Renderer
}

// NewFormatter creates a formatter writing format ("json" or "table") to writer.
func NewFormatter(writer io.Writer, format string) (*Formatter, error) {
	switch format {
	case FormatJSON, "":
		format = FormatJSON
	case FormatTable:
	default:
		return nil, fmt.Errorf("unknown output format %q (want %q or %q)", format, FormatJSON, FormatTable)
	}
	return &Formatter{
		writer:   writer,
		format:   format,
		renderer: lipgloss.NewRenderer(writer),
	}, nil
}

// Renderer exposes the lipgloss renderer so callers can pin a color profile.
func (f *Formatter) Renderer() *lipgloss.Renderer {
	return f.renderer
}

// FormatExtractTypes writes a list of extract types.
func (f *Formatter) FormatExtractTypes(records []ExtractTypeDTO) error {
	if f.format == FormatJSON {
		return f.encodeJSON(records)
	}
	headers := []string{"extract_type_uid", "layout_id", "delimiter", "fully_qualified",
		"split_by_size", "storage_files", "archive_type", "extension", "internal_name"}
	rows := make([][]string, len(records))
	for i, r := range records {
		rows[i] = []string{r.UID, r.LayoutID, cell(r.Delimiter), cell(r.FullyQualified),
			cell(r.SplitBySize), cell(r.StorageFiles), cell(r.ArchiveType), cell(r.Extension),
			cell(r.InternalName)}
	}
	if err := f.writeTable(headers, rows); err != nil {
		return err
	}
	_, err := printer.Fprintf(f.writer, "%d extract types\n", len(records))
	return err
}

// FormatExtractType writes a single created extract type.
func (f *Formatter) FormatExtractType(record ExtractTypeDTO) error {
	if f.format == FormatJSON {
		return f.encodeJSON(record)
	}
	rows := [][]string{
		{"extract_type_uid", record.UID},
		{"layout_id", record.LayoutID},
		{"delimiter", cell(record.Delimiter)},
		{"fully_qualified", cell(record.FullyQualified)},
		{"split_by_size", cell(record.SplitBySize)},
		{"storage_files", cell(record.StorageFiles)},
		{"archive_type", cell(record.ArchiveType)},
		{"extension", cell(record.Extension)},
		{"internal_name", cell(record.InternalName)},
		{"naming_convention", cell(record.NamingConvention)},
		{"example", cell(record.Example)},
		{"observation", cell(record.Observation)},
	}
	return f.writeTable([]string{"attribute", "value"}, rows)
}

// FormatVocabulary writes the allowed values per attribute.
func (f *Formatter) FormatVocabulary(vocab []VocabularyDTO) error {
	if f.format == FormatJSON {
		return f.encodeJSON(vocab)
	}
	rows := make([][]string, len(vocab))
	for i, v := range vocab {
		quoted := make([]string, len(v.Values))
		for j, value := range v.Values {
			quoted[j] = fmt.Sprintf("%q", value)
		}
		rows[i] = []string{v.Attribute, strings.Join(quoted, ", ")}
	}
	return f.writeTable([]string{"attribute", "allowed values"}, rows)
}

// FormatImportResult writes the outcome of a batch import.
func (f *Formatter) FormatImportResult(result ImportResultDTO) error {
	if f.format == FormatJSON {
		return f.encodeJSON(result)
	}
	if len(result.Created) > 0 {
		if err := f.FormatExtractTypes(result.Created); err != nil {
			return err
		}
	}
	if result.Failed != nil {
		_, err := printer.Fprintf(f.writer, "stopped at entry %d after creating %d: %s\n",
			*result.Failed, len(result.Created), result.Error)
		return err
	}
	_, err := printer.Fprintf(f.writer, "imported %d extract types\n", len(result.Created))
	return err
}

// FormatLayouts writes registered layout ids.
func (f *Formatter) FormatLayouts(ids []string) error {
	if f.format == FormatJSON {
		if ids == nil {
			ids = []string{}
		}
		return f.encodeJSON(ids)
	}
	rows := make([][]string, len(ids))
	for i, id := range ids {
		rows[i] = []string{id}
	}
	return f.writeTable([]string{"layout_id"}, rows)
}

// FormatError writes err in the configured format.
func (f *Formatter) FormatError(dto ErrorDTO) error {
	if f.format == FormatJSON {
		return f.encodeJSON(map[string]ErrorDTO{"error": dto})
	}
	style := f.renderer.NewStyle().Bold(true).Foreground(lipgloss.Color("#EF4444"))
	_, err := fmt.Fprintf(f.writer, "%s %s\n", style.Render(dto.Kind+" error:"), dto.Message)
	return err
}

func (f *Formatter) encodeJSON(v any) error {
	encoder := json.NewEncoder(f.writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

func (f *Formatter) writeTable(headers []string, rows [][]string) error {
	headerStyle := f.renderer.NewStyle().Bold(true).Padding(0, 1)
	cellStyle := f.renderer.NewStyle().Padding(0, 1)

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(f.renderer.NewStyle().Foreground(lipgloss.Color("#6B7280"))).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		}).
		Headers(headers...).
		Rows(rows...)

	_, err := fmt.Fprintln(f.writer, t.String())
	return err
}

// cell renders empty values visibly and shortens long free text.
func cell(s string) string {
	if s == "" {
		return `""`
	}
	return truncate.StringWithTail(s, maxCellWidth, "…")
}
