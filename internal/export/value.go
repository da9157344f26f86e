// Package export turns domain records into display strings and serializes
// them as spreadsheet-friendly CSV or XLSX.
package export

// Value is the outcome of a field normalizer: either a present display
// string or nothing. Callers decide the sentinel with Or.
type Value struct {
	text string
	ok   bool
}

// Some wraps a present value.
func Some(text string) Value { return Value{text: text, ok: true} }

// None is the missing value.
func None() Value { return Value{} }

// Present reports whether the normalizer produced a value.
func (v Value) Present() bool { return v.ok }

// Or returns the value or def when missing.
func (v Value) Or(def string) string {
	if !v.ok {
		return def
	}
	return v.text
}

// NotAvailable is the sentinel shown for missing fields.
const NotAvailable = "N/A"
