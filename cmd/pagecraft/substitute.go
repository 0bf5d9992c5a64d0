package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
	"pagecraft-hq/callisto/pkg/cli"
	"pagecraft-hq/callisto/pkg/placeholder/engine"
	"pagecraft-hq/callisto/pkg/template/parser"
)

var substituteFlags struct {
	file       string
	valuesFile string
	sets       []string
	output     string
	strict     bool
}

var substituteCmd = &cobra.Command{
	Use:   "substitute",
	Short: "Substitute placeholder values into a template",
	Long: `Replace {{KEY}} tokens in a template with supplied values and print
the resulting document as template JSON.

Tokens without a supplied value are left in place verbatim and reported
on stderr. Fallback values are never applied automatically.

Values come from --set flags, a JSON values file, or both. --set wins
when a key appears in both.

Examples:
  # Inline values
  pagecraft substitute --file landing.json --set BUSINESS_NAME="Acme" --set CONTACT_PHONE="(11) 98765-4321"

  # Values from a file
  pagecraft substitute --file landing.json --values values.json --output page.json

  # Fail when any token stays unresolved
  pagecraft substitute --file landing.json --values values.json --strict`,
	RunE: runSubstitute,
}

func init() {
	rootCmd.AddCommand(substituteCmd)

	substituteCmd.Flags().StringVarP(&substituteFlags.file, "file", "f", "", "template JSON file (required)")
	substituteCmd.Flags().StringVar(&substituteFlags.valuesFile, "values", "", "YAML or JSON file with a key to value object")
	substituteCmd.Flags().StringArrayVar(&substituteFlags.sets, "set", nil, "value as KEY=VALUE (repeatable)")
	substituteCmd.Flags().StringVarP(&substituteFlags.output, "output", "o", "", "output file (default: stdout)")
	substituteCmd.Flags().BoolVar(&substituteFlags.strict, "strict", false, "exit with an error if any token stays unresolved")
	_ = substituteCmd.MarkFlagRequired("file")
}

func runSubstitute(cmd *cobra.Command, args []string) error {
	values, err := collectValues(substituteFlags.valuesFile, substituteFlags.sets)
	if err != nil {
		return cli.NewCommandError("substitute", err)
	}

	doc, err := parser.NewParser().Parse(substituteFlags.file)
	if err != nil {
		return cli.NewCommandError("substitute", err)
	}

	eng := engine.New()
	result := eng.Substitute(doc, values)
	unresolved := eng.Unresolved(result)

	out, cleanup, err := openOutput(substituteFlags.output)
	if err != nil {
		return cli.NewCommandError("substitute", err)
	}
	defer cleanup()

	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	encoder.SetEscapeHTML(false)
	if err := encoder.Encode(result); err != nil {
		return cli.NewCommandError("substitute", err)
	}

	if len(unresolved) > 0 {
		fmt.Fprintf(os.Stderr, "warning: %d unresolved placeholder(s): %s\n",
			len(unresolved), strings.Join(unresolved, ", "))
		if substituteFlags.strict {
			return cli.NewCommandError("substitute",
				fmt.Errorf("%d placeholder(s) unresolved", len(unresolved)))
		}
	}
	return nil
}

// collectValues merges the values file and --set flags, flags winning.
// The file may be YAML or JSON; YAML is a superset so one decoder covers
// both.
func collectValues(valuesFile string, sets []string) (map[string]string, error) {
	values := make(map[string]string)

	if valuesFile != "" {
		data, err := os.ReadFile(valuesFile)
		if err != nil {
			return nil, fmt.Errorf("read values file: %w", err)
		}
		if err := yaml.Unmarshal(data, &values); err != nil {
			return nil, fmt.Errorf("parse values file: %w", err)
		}
	}

	for _, set := range sets {
		key, value, ok := strings.Cut(set, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid --set %q, want KEY=VALUE", set)
		}
		values[key] = value
	}

	return values, nil
}
