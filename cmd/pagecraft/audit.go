package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"pagecraft-hq/callisto/pkg/audit"
	"pagecraft-hq/callisto/pkg/audit/storage"
	"pagecraft-hq/callisto/pkg/cli"
	"pagecraft-hq/callisto/pkg/config"
)

var auditFlags struct {
	backend   string
	timeRange string
	operation string
	template  string
	status    string
	limit     int
	offset    int
	format    string
	output    string
}

var auditCmd = &cobra.Command{
	Use:   "audit",
	Short: "Query the audit trail",
	Long: `Query recorded extraction, substitution, and reload operations.

Subcommands:
  query - Query audit records with filters
  prune - Delete records older than the configured retention window

Examples:
  # Recent extractions
  pagecraft audit query --operation extract --limit 20

  # Records for one template
  pagecraft audit query --template landing-page

  # Export a time window to CSV
  pagecraft audit query --time-range "2026-08-01T00:00:00Z/2026-08-26T00:00:00Z" --format csv --output audit.csv`,
}

var auditQueryCmd = &cobra.Command{
	Use:   "query",
	Short: "Query audit records",
	Long: `Query audit records with various filters.

Time Range Format:
  RFC3339 interval format: "start/end"
  Example: "2026-08-25T00:00:00Z/2026-08-26T00:00:00Z"

Examples:
  # Query a time range
  pagecraft audit query --time-range "2026-08-25T00:00:00Z/2026-08-26T00:00:00Z"

  # Failed operations only
  pagecraft audit query --status error

  # Export to JSON
  pagecraft audit query --format json --output audit.json`,
	RunE: runAuditQuery,
}

var auditPruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Delete audit records past the retention window",
	Long: `Delete audit records older than the retention window in the
configuration. This is the same pruning the scheduled job performs.`,
	RunE: runAuditPrune,
}

func init() {
	rootCmd.AddCommand(auditCmd)
	auditCmd.AddCommand(auditQueryCmd, auditPruneCmd)

	auditQueryCmd.Flags().StringVar(&auditFlags.backend, "backend", "", "backend: sqlite, memory (uses config if not specified)")
	auditQueryCmd.Flags().StringVar(&auditFlags.timeRange, "time-range", "", "time range (RFC3339 interval: start/end)")
	auditQueryCmd.Flags().StringVar(&auditFlags.operation, "operation", "", "filter by operation (extract, substitute, reload)")
	auditQueryCmd.Flags().StringVar(&auditFlags.template, "template", "", "filter by template ID")
	auditQueryCmd.Flags().StringVar(&auditFlags.status, "status", "", "filter by status (ok, error)")
	auditQueryCmd.Flags().IntVar(&auditFlags.limit, "limit", 100, "max results")
	auditQueryCmd.Flags().IntVar(&auditFlags.offset, "offset", 0, "pagination offset")
	auditQueryCmd.Flags().StringVar(&auditFlags.format, "format", "text", "output format: text, json, csv")
	auditQueryCmd.Flags().StringVarP(&auditFlags.output, "output", "o", "", "output file (default: stdout)")

	auditPruneCmd.Flags().StringVar(&auditFlags.backend, "backend", "", "backend: sqlite, memory (uses config if not specified)")
}

func runAuditQuery(cmd *cobra.Command, args []string) error {
	store, err := openAuditStorage()
	if err != nil {
		return err
	}
	defer store.Close()

	query := &audit.Query{
		Operation:  audit.Operation(auditFlags.operation),
		TemplateID: auditFlags.template,
		Status:     auditFlags.status,
		Limit:      auditFlags.limit,
		Offset:     auditFlags.offset,
	}
	if auditFlags.timeRange != "" {
		start, end, err := parseTimeRange(auditFlags.timeRange)
		if err != nil {
			return cli.NewCommandError("audit query", err)
		}
		query.StartTime = &start
		query.EndTime = &end
	}

	ctx := context.Background()
	records, err := store.Query(ctx, query)
	if err != nil {
		return cli.NewCommandError("audit query", err)
	}
	total, err := store.Count(ctx, query)
	if err != nil {
		return cli.NewCommandError("audit query", err)
	}

	out, cleanup, err := openOutput(auditFlags.output)
	if err != nil {
		return cli.NewCommandError("audit query", err)
	}
	defer cleanup()

	report := &auditReport{Records: records, Total: total}
	formatter := cli.NewFormatter(cli.OutputFormat(auditFlags.format))
	if err := formatter.FormatTo(out, report); err != nil {
		return cli.NewCommandError("audit query", err)
	}
	return nil
}

func runAuditPrune(cmd *cobra.Command, args []string) error {
	if err := config.Initialize(cfgFile); err != nil {
		return cli.NewConfigError("", fmt.Sprintf("failed to load config: %v", err))
	}
	cfg := config.GetConfig()

	store, err := openAuditStorage()
	if err != nil {
		return err
	}
	defer store.Close()

	if cfg.Audit.Retention.Days <= 0 {
		fmt.Println("Retention disabled (audit.retention.days is 0), nothing to prune")
		return nil
	}

	cutoff := time.Now().AddDate(0, 0, -cfg.Audit.Retention.Days)
	deleted, err := store.Delete(context.Background(), &audit.Query{EndTime: &cutoff})
	if err != nil {
		return cli.NewCommandError("audit prune", err)
	}

	fmt.Printf("Deleted %d record(s) older than %s\n", deleted, cutoff.Format(time.RFC3339))
	return nil
}

func openAuditStorage() (audit.Storage, error) {
	if err := config.Initialize(cfgFile); err != nil {
		return nil, cli.NewConfigError("", fmt.Sprintf("failed to load config: %v", err))
	}
	cfg := config.GetConfig()

	backend := auditFlags.backend
	if backend == "" {
		backend = cfg.Audit.Backend
	}

	switch backend {
	case "sqlite":
		sqliteConfig := storage.DefaultSQLiteConfig()
		if cfg.Audit.SQLitePath != "" {
			sqliteConfig.Path = cfg.Audit.SQLitePath
		}
		store, err := storage.NewSQLiteStorage(sqliteConfig)
		if err != nil {
			return nil, fmt.Errorf("open audit storage: %w", err)
		}
		return store, nil
	case "memory":
		return storage.NewMemoryStorage(), nil
	default:
		return nil, fmt.Errorf("unsupported audit backend: %s", backend)
	}
}

// parseTimeRange parses an RFC3339 interval like "start/end".
func parseTimeRange(s string) (time.Time, time.Time, error) {
	startStr, endStr, ok := strings.Cut(s, "/")
	if !ok {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid time range %q, want start/end", s)
	}
	start, err := time.Parse(time.RFC3339, startStr)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid start time: %w", err)
	}
	end, err := time.Parse(time.RFC3339, endStr)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid end time: %w", err)
	}
	if !start.Before(end) {
		return time.Time{}, time.Time{}, fmt.Errorf("start time must be before end time")
	}
	return start, end, nil
}

// auditReport renders an audit query result for the CLI formatters.
type auditReport struct {
	Records []*audit.Record `json:"records"`
	Total   int64           `json:"total"`
}

func (r *auditReport) MarshalText() (string, error) {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Records: %d of %d\n\n", len(r.Records), r.Total)

	if len(r.Records) == 0 {
		return sb.String(), nil
	}

	fmt.Fprintf(&sb, "%-20s %-11s %-24s %-6s %s\n", "RECORDED", "OPERATION", "TEMPLATE", "STATUS", "DETAIL")
	for _, rec := range r.Records {
		detail := fmt.Sprintf("placeholders=%d", rec.PlaceholderCount)
		if rec.Operation == audit.OperationSubstitute {
			detail = fmt.Sprintf("values=%d unresolved=%d", rec.ValuesProvided, rec.UnresolvedCount)
		}
		if rec.Error != "" {
			detail = rec.Error
		}
		fmt.Fprintf(&sb, "%-20s %-11s %-24s %-6s %s\n",
			rec.RecordedAt.Format("2006-01-02 15:04:05"),
			rec.Operation,
			rec.TemplateID,
			rec.Status,
			detail,
		)
	}
	return sb.String(), nil
}

func (r *auditReport) CSVHeader() []string {
	return []string{
		"id", "request_id", "operation", "template_id", "template_revision",
		"placeholder_count", "values_provided", "unresolved_count",
		"cache_hit", "duration_ns", "status", "error", "recorded_at",
	}
}

func (r *auditReport) CSVRows() [][]string {
	rows := make([][]string, 0, len(r.Records))
	for _, rec := range r.Records {
		rows = append(rows, []string{
			rec.ID,
			rec.RequestID,
			string(rec.Operation),
			rec.TemplateID,
			rec.TemplateRevision,
			fmt.Sprintf("%d", rec.PlaceholderCount),
			fmt.Sprintf("%d", rec.ValuesProvided),
			fmt.Sprintf("%d", rec.UnresolvedCount),
			fmt.Sprintf("%t", rec.CacheHit),
			fmt.Sprintf("%d", rec.Duration),
			rec.Status,
			rec.Error,
			rec.RecordedAt.Format(time.RFC3339Nano),
		})
	}
	return rows
}
