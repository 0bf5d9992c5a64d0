package main

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"pagecraft-hq/callisto/pkg/cli"
	"pagecraft-hq/callisto/pkg/placeholder"
	"pagecraft-hq/callisto/pkg/placeholder/engine"
	"pagecraft-hq/callisto/pkg/template/parser"
)

var checkFlags struct {
	file       string
	valuesFile string
	sets       []string
	format     string
}

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check a value set against a template's placeholders",
	Long: `Check supplied values against a template's placeholder requirements.

The check reports:
  - required placeholders with no supplied value
  - values that fail their placeholder's validation pattern
  - supplied keys the template never uses

The command exits non-zero when a required placeholder is missing or a
value fails validation. Unknown keys are reported but not fatal.

Examples:
  # Check a values file
  pagecraft check --file landing.json --values values.json

  # Check inline values
  pagecraft check --file landing.json --set BUSINESS_NAME="Acme"

  # Machine-readable result
  pagecraft check --file landing.json --values values.json --format json`,
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)

	checkCmd.Flags().StringVarP(&checkFlags.file, "file", "f", "", "template JSON file (required)")
	checkCmd.Flags().StringVar(&checkFlags.valuesFile, "values", "", "YAML or JSON file with a key to value object")
	checkCmd.Flags().StringArrayVar(&checkFlags.sets, "set", nil, "value as KEY=VALUE (repeatable)")
	checkCmd.Flags().StringVar(&checkFlags.format, "format", "text", "output format: text, json")
	_ = checkCmd.MarkFlagRequired("file")
}

func runCheck(cmd *cobra.Command, args []string) error {
	values, err := collectValues(checkFlags.valuesFile, checkFlags.sets)
	if err != nil {
		return cli.NewCommandError("check", err)
	}

	doc, err := parser.NewParser().Parse(checkFlags.file)
	if err != nil {
		return cli.NewCommandError("check", err)
	}

	registry := engine.New().Extract(doc)
	report := buildCheckReport(registry, values)

	formatter := cli.NewFormatter(cli.OutputFormat(checkFlags.format))
	if err := formatter.FormatTo(cmd.OutOrStdout(), report); err != nil {
		return cli.NewCommandError("check", err)
	}

	if !report.OK {
		problems := len(report.MissingRequired) + len(report.InvalidValues)
		return cli.NewCommandError("check", fmt.Errorf("%d problem(s) found", problems))
	}
	return nil
}

// checkReport is the result of validating a value set against a template.
type checkReport struct {
	TemplateID      string       `json:"template_id"`
	OK              bool         `json:"ok"`
	MissingRequired []string     `json:"missing_required,omitempty"`
	InvalidValues   []valueIssue `json:"invalid_values,omitempty"`
	UnknownKeys     []string     `json:"unknown_keys,omitempty"`
}

type valueIssue struct {
	Key     string `json:"key"`
	Value   string `json:"value"`
	Pattern string `json:"pattern"`
}

func buildCheckReport(registry *placeholder.TemplatePlaceholders, values map[string]string) *checkReport {
	report := &checkReport{TemplateID: registry.TemplateID}

	for _, m := range registry.Placeholders {
		value, supplied := values[m.Key]
		if !supplied {
			if m.Required {
				report.MissingRequired = append(report.MissingRequired, m.Key)
			}
			continue
		}
		if m.Validation == "" {
			continue
		}
		// Patterns ship with the classifier; an unparseable one counts
		// as a pass.
		re, err := regexp.Compile(m.Validation)
		if err != nil {
			continue
		}
		if !re.MatchString(value) {
			report.InvalidValues = append(report.InvalidValues, valueIssue{
				Key:     m.Key,
				Value:   value,
				Pattern: m.Validation,
			})
		}
	}

	for key := range values {
		if !registry.Has(key) {
			report.UnknownKeys = append(report.UnknownKeys, key)
		}
	}
	sort.Strings(report.UnknownKeys)

	report.OK = len(report.MissingRequired) == 0 && len(report.InvalidValues) == 0
	return report
}

func (r *checkReport) MarshalText() (string, error) {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Template: %s\n", r.TemplateID)

	if r.OK && len(r.UnknownKeys) == 0 {
		sb.WriteString("All checks passed\n")
		return sb.String(), nil
	}

	for _, key := range r.MissingRequired {
		fmt.Fprintf(&sb, "MISSING  %s (required)\n", key)
	}
	for _, issue := range r.InvalidValues {
		fmt.Fprintf(&sb, "INVALID  %s = %q does not match %s\n", issue.Key, issue.Value, issue.Pattern)
	}
	for _, key := range r.UnknownKeys {
		fmt.Fprintf(&sb, "UNKNOWN  %s (not used by this template)\n", key)
	}
	return sb.String(), nil
}
