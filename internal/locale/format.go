// Package locale renders amounts and dates the way the dashboard shows them:
// Colombian pesos without decimals and Spanish short dates.
package locale

import (
	"math"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// CurrencySymbol precedes COP amounts, separated by a no-break space.
const CurrencySymbol = "$"

const nbsp = "\u00a0"

// Spanish uses "." for thousands and "," for decimals, like es-CO.
var (
	printer = message.NewPrinter(language.Spanish)
	upper   = cases.Upper(language.Spanish)
)

// Currency formats amount as COP with no fractional digits, e.g. "$ 1.500.000".
func Currency(amount float64) string {
	rounded := math.Round(amount)
	sign := ""
	if rounded < 0 {
		sign = "-"
		rounded = -rounded
	}
	digits := printer.Sprint(number.Decimal(rounded, number.MaxFractionDigits(0)))
	return sign + CurrencySymbol + nbsp + digits
}

// ShortDate renders t as d/M/yyyy.
func ShortDate(t time.Time) string {
	return t.Format("2/1/2006")
}

// Upper upper-cases s with Spanish rules (keeps accents and ñ).
func Upper(s string) string {
	return upper.String(strings.TrimSpace(s))
}
