package cli

import (
	"errors"
	"strings"
	"testing"
)

type fakeReport struct {
	rows [][]string
}

func (r fakeReport) MarshalText() (string, error) {
	var sb strings.Builder
	for _, row := range r.rows {
		sb.WriteString(strings.Join(row, "  "))
		sb.WriteByte('\n')
	}
	return sb.String(), nil
}

func (r fakeReport) CSVHeader() []string {
	return []string{"key", "type"}
}

func (r fakeReport) CSVRows() [][]string {
	return r.rows
}

func TestNewFormatter(t *testing.T) {
	tests := []struct {
		format OutputFormat
		want   string
	}{
		{FormatText, "*cli.TextFormatter"},
		{FormatJSON, "*cli.JSONFormatter"},
		{FormatCSV, "*cli.CSVFormatter"},
		{OutputFormat("bogus"), "*cli.TextFormatter"},
	}

	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			f := NewFormatter(tt.format)
			if got := typeName(f); got != tt.want {
				t.Errorf("NewFormatter(%q) = %s, want %s", tt.format, got, tt.want)
			}
		})
	}
}

func typeName(f Formatter) string {
	switch f.(type) {
	case *TextFormatter:
		return "*cli.TextFormatter"
	case *JSONFormatter:
		return "*cli.JSONFormatter"
	case *CSVFormatter:
		return "*cli.CSVFormatter"
	default:
		return "unknown"
	}
}

func TestTextFormatter_UsesMarshaler(t *testing.T) {
	f := &TextFormatter{}
	out, err := f.Format(fakeReport{rows: [][]string{{"BUSINESS_NAME", "text"}}})
	if err != nil {
		t.Fatalf("Format() error = %v", err)
	}
	if got := string(out); got != "BUSINESS_NAME  text\n" {
		t.Errorf("Format() = %q, want %q", got, "BUSINESS_NAME  text\n")
	}
}

func TestJSONFormatter_Indent(t *testing.T) {
	f := &JSONFormatter{Indent: true}
	out, err := f.Format(map[string]int{"count": 3})
	if err != nil {
		t.Fatalf("Format() error = %v", err)
	}
	if !strings.Contains(string(out), "\n  \"count\": 3") {
		t.Errorf("Format() = %q, want indented JSON", out)
	}
}

func TestCSVFormatter(t *testing.T) {
	f := &CSVFormatter{}
	report := fakeReport{rows: [][]string{
		{"BUSINESS_NAME", "text"},
		{"CONTACT_PHONE", "phone"},
	}}

	out, err := f.Format(report)
	if err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	want := "key,type\nBUSINESS_NAME,text\nCONTACT_PHONE,phone\n"
	if got := string(out); got != want {
		t.Errorf("Format() = %q, want %q", got, want)
	}
}

func TestCSVFormatter_Unsupported(t *testing.T) {
	f := &CSVFormatter{}
	if _, err := f.Format(map[string]int{"count": 3}); err == nil {
		t.Error("Format() should fail for data without CSV support")
	}
}

func TestCommandError_Unwrap(t *testing.T) {
	cause := errors.New("file missing")
	err := NewCommandError("extract", cause)

	if !errors.Is(err, cause) {
		t.Error("errors.Is should find the wrapped cause")
	}
	if got := err.Error(); !strings.Contains(got, "extract") {
		t.Errorf("Error() = %q, want command name included", got)
	}
}

func TestConfigError_Message(t *testing.T) {
	err := NewConfigError("server.port", "must be between 1 and 65535")
	want := "config error in server.port: must be between 1 and 65535"
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}
