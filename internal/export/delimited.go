package export

import (
	"strings"
	"time"

	"github.com/Rehab-Center/Admin-Service/internal/finance"
	"github.com/Rehab-Center/Admin-Service/internal/models"
)

// Header defines one export column. Key is a dotted path into the record
// ("" selects the record itself); Format names the normalizer applied to the
// resolved value.
type Header struct {
	Key    string `yaml:"key" json:"key"`
	Label  string `yaml:"label" json:"label"`
	Format string `yaml:"format,omitempty" json:"format,omitempty"`
}

// Formatter renders a resolved value for display.
type Formatter func(v any, now time.Time) string

var formatters = map[string]Formatter{
	"name":     func(v any, _ time.Time) string { return FormatName(v) },
	"location": func(v any, _ time.Time) string { return FormatLocation(v) },
	"status":   func(v any, _ time.Time) string { return FormatStatus(v) },
	"gender":   func(v any, _ time.Time) string { return FormatGender(v) },
	"document": func(v any, _ time.Time) string { return FormatDocument(v) },
	"currency": func(v any, _ time.Time) string { return Currency(v) },
	"date":     func(v any, _ time.Time) string { return Date(v) },
	"age":      func(v any, now time.Time) string { return Age(v, now).Or("") },
	"month": func(v any, _ time.Time) string {
		if n, ok := numeric(v); ok {
			return finance.MonthLabel(int(n))
		}
		return text(v)
	},
	"payment": func(v any, _ time.Time) string {
		return finance.StatusLabel(models.PaymentStatus(text(v)))
	},
}

// Cell resolves and formats one column of a record. Missing values render
// as "" unless the column's normalizer supplies a sentinel.
func Cell(record models.Record, h Header, now time.Time) string {
	value, found := GetNestedValue(record, h.Key)
	if f, ok := formatters[h.Format]; ok {
		if !found {
			value = nil
		}
		return f(value, now)
	}
	if !found {
		return ""
	}
	return text(value)
}

// Rows renders every record into display strings, in header order.
func Rows(records []models.Record, headers []Header, now time.Time) [][]string {
	rows := make([][]string, 0, len(records))
	for _, r := range records {
		row := make([]string, len(headers))
		for i, h := range headers {
			row[i] = Cell(r, h, now)
		}
		rows = append(rows, row)
	}
	return rows
}

// ToDelimitedText renders a header line plus one comma-separated line per
// record. It returns "" when there are no records.
func ToDelimitedText(records []models.Record, headers []Header) string {
	return toDelimitedText(records, headers, time.Now())
}

func toDelimitedText(records []models.Record, headers []Header, now time.Time) string {
	if len(records) == 0 {
		return ""
	}

	var b strings.Builder
	labels := make([]string, len(headers))
	for i, h := range headers {
		labels[i] = h.Label
	}
	writeLine(&b, labels)
	for _, row := range Rows(records, headers, now) {
		b.WriteByte('\n')
		writeLine(&b, row)
	}
	return b.String()
}

func writeLine(b *strings.Builder, fields []string) {
	for i, f := range fields {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(EscapeField(f))
	}
}

// EscapeField quotes a field only when it contains a comma, a double quote
// or a line break; inner quotes are doubled.
func EscapeField(field string) string {
	if !strings.ContainsAny(field, ",\"\n\r") {
		return field
	}
	return `"` + strings.ReplaceAll(field, `"`, `""`) + `"`
}
