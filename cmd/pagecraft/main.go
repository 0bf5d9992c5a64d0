// Pagecraft Callisto is a placeholder extraction and substitution engine
// for Elementor-style page templates.
//
// It scans exported template JSON for {{KEY}} tokens, classifies each
// placeholder by semantic type, and substitutes caller-supplied values
// into deep copies of the template:
//   - Token extraction with section grouping and type classification
//   - Value substitution with unresolved-token reporting
//   - Template library with memory and SQLite backends
//   - HTTP API with audit recording and Prometheus metrics
//
// Usage:
//
//	# Start server with default configuration
//	pagecraft run
//
//	# Start with custom configuration file
//	pagecraft run --config /path/to/config.yaml
//
//	# Extract placeholders from a template export
//	pagecraft extract --file landing.json --format json
//
//	# Substitute values into a template
//	pagecraft substitute --file landing.json --set BUSINESS_NAME="Acme"
//
//	# Check a value set against a template's requirements
//	pagecraft check --file landing.json --values values.json
//
//	# Query the audit trail
//	pagecraft audit query --operation extract --limit 20
//
// For complete documentation, see: https://github.com/pagecraft-hq/callisto
package main

func main() {
	Execute()
}
