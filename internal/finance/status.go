package finance

import (
	"github.com/Rehab-Center/Admin-Service/internal/locale"
	"github.com/Rehab-Center/Admin-Service/internal/models"
)

// Style is the badge styling of a payment status.
type Style struct {
	Color string `json:"color"`
	Icon  string `json:"icon"`
}

// ToggleStatus flips PAGADO to PENDIENTE; every other status, VENCIDA
// included, becomes PAGADO.
func ToggleStatus(current models.PaymentStatus) models.PaymentStatus {
	if current == models.StatusPaid {
		return models.StatusPending
	}
	return models.StatusPaid
}

// StatusLabel returns the display label of a payment status. Unknown values
// pass through.
func StatusLabel(status models.PaymentStatus) string {
	switch models.PaymentStatus(locale.Upper(string(status))) {
	case models.StatusPaid:
		return "Pagado"
	case models.StatusPending:
		return "Pendiente"
	case models.StatusOverdue:
		return "Vencida"
	case "":
		return "N/A"
	default:
		return string(status)
	}
}

// StatusStyle returns the badge style for a payment status.
func StatusStyle(status models.PaymentStatus) Style {
	switch status {
	case models.StatusPaid:
		return Style{Color: "green", Icon: "check-circle"}
	case models.StatusPending:
		return Style{Color: "yellow", Icon: "clock"}
	case models.StatusOverdue:
		return Style{Color: "red", Icon: "alert-circle"}
	default:
		return Style{Color: "gray", Icon: "help-circle"}
	}
}

// ParseStatus normalizes user input to a known status.
func ParseStatus(raw string) (models.PaymentStatus, bool) {
	switch s := models.PaymentStatus(locale.Upper(raw)); s {
	case models.StatusPaid, models.StatusPending, models.StatusOverdue:
		return s, true
	default:
		return "", false
	}
}

// FormatCurrency formats an optional amount as COP; nil counts as 0.
func FormatCurrency(amount *float64) string {
	if amount == nil {
		return locale.Currency(0)
	}
	return locale.Currency(*amount)
}
