// Package finance holds the helpers behind the mensualidades screens:
// calendars, payment status handling, validation and aggregates.
package finance

import (
	"strconv"
)

var monthNames = [...]string{
	"Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio",
	"Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre",
}

// Month is an entry of the month selector.
type Month struct {
	Value int    `json:"value"`
	Label string `json:"label"`
}

// GenerateYears returns count consecutive years starting at start.
func GenerateYears(start, count int) []int {
	if count <= 0 {
		return []int{}
	}
	years := make([]int, count)
	for i := range years {
		years[i] = start + i
	}
	return years
}

// MonthLabel maps 1-12 to the Spanish month name. Other values are returned
// as their decimal text.
func MonthLabel(n int) string {
	if n < 1 || n > len(monthNames) {
		return strconv.Itoa(n)
	}
	return monthNames[n-1]
}

// Months lists the twelve months for selectors.
func Months() []Month {
	out := make([]Month, len(monthNames))
	for i, name := range monthNames {
		out[i] = Month{Value: i + 1, Label: name}
	}
	return out
}
