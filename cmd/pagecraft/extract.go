package main

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"pagecraft-hq/callisto/pkg/cli"
	"pagecraft-hq/callisto/pkg/placeholder"
	"pagecraft-hq/callisto/pkg/placeholder/engine"
	"pagecraft-hq/callisto/pkg/template/parser"
)

var extractFlags struct {
	file     string
	format   string
	output   string
	sections bool
}

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Extract placeholders from a template file",
	Long: `Scan an Elementor-style template export for {{KEY}} placeholder tokens.

Each unique key is reported once, in document order, with its inferred
semantic type, required flag, and suggested fallback value.

Examples:
  # List placeholders as a table
  pagecraft extract --file landing.json

  # Full registry as JSON, including section grouping
  pagecraft extract --file landing.json --format json

  # Export for a spreadsheet
  pagecraft extract --file landing.json --format csv --output placeholders.csv

  # Include section grouping in text output
  pagecraft extract --file landing.json --sections`,
	RunE: runExtract,
}

func init() {
	rootCmd.AddCommand(extractCmd)

	extractCmd.Flags().StringVarP(&extractFlags.file, "file", "f", "", "template JSON file (required)")
	extractCmd.Flags().StringVar(&extractFlags.format, "format", "text", "output format: text, json, csv")
	extractCmd.Flags().StringVarP(&extractFlags.output, "output", "o", "", "output file (default: stdout)")
	extractCmd.Flags().BoolVar(&extractFlags.sections, "sections", false, "include section grouping in text output")
	_ = extractCmd.MarkFlagRequired("file")
}

func runExtract(cmd *cobra.Command, args []string) error {
	doc, err := parser.NewParser().Parse(extractFlags.file)
	if err != nil {
		return cli.NewCommandError("extract", err)
	}

	registry := engine.New().Extract(doc)

	report := &placeholderReport{
		TemplatePlaceholders: registry,
		showSections:         extractFlags.sections,
	}

	out, cleanup, err := openOutput(extractFlags.output)
	if err != nil {
		return cli.NewCommandError("extract", err)
	}
	defer cleanup()

	formatter := cli.NewFormatter(cli.OutputFormat(extractFlags.format))
	if err := formatter.FormatTo(out, report); err != nil {
		return cli.NewCommandError("extract", err)
	}
	return nil
}

// placeholderReport renders an extraction result for the CLI formatters.
type placeholderReport struct {
	*placeholder.TemplatePlaceholders
	showSections bool
}

func (r *placeholderReport) MarshalText() (string, error) {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Template: %s\n", r.TemplateID)
	fmt.Fprintf(&sb, "Placeholders: %d\n\n", r.Count())

	if r.Count() == 0 {
		return sb.String(), nil
	}

	fmt.Fprintf(&sb, "%-32s %-8s %-9s %s\n", "KEY", "TYPE", "REQUIRED", "FALLBACK")
	for _, m := range r.Placeholders {
		required := ""
		if m.Required {
			required = "yes"
		}
		fmt.Fprintf(&sb, "%-32s %-8s %-9s %s\n", m.Key, m.Type, required, m.Fallback)
	}

	if r.showSections && len(r.Sections) > 0 {
		sb.WriteString("\nSections:\n")
		names := make([]string, 0, len(r.Sections))
		for name := range r.Sections {
			names = append(names, name)
		}
		sort.Slice(names, func(i, j int) bool {
			a, b := r.Sections[names[i]], r.Sections[names[j]]
			if a.Priority != b.Priority {
				return a.Priority < b.Priority
			}
			return names[i] < names[j]
		})
		for _, name := range names {
			fmt.Fprintf(&sb, "  %s: %s\n", name, strings.Join(r.Sections[name].Placeholders, ", "))
		}
	}

	return sb.String(), nil
}

func (r *placeholderReport) CSVHeader() []string {
	return []string{"key", "type", "required", "fallback", "context"}
}

func (r *placeholderReport) CSVRows() [][]string {
	rows := make([][]string, 0, r.Count())
	for _, m := range r.Placeholders {
		rows = append(rows, []string{
			m.Key,
			string(m.Type),
			strconv.FormatBool(m.Required),
			m.Fallback,
			m.Context,
		})
	}
	return rows
}

// openOutput returns the writer for command output. The cleanup function
// closes the file when one was opened and is a no-op for stdout.
func openOutput(path string) (io.Writer, func(), error) {
	if path == "" {
		return os.Stdout, func() {}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("create output file: %w", err)
	}
	return f, func() { f.Close() }, nil
}
