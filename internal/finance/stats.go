package finance

import (
	"github.com/Rehab-Center/Admin-Service/internal/models"
)

// CalculatePaymentStats counts and sums mensualidades per status in one pass.
// PaymentRate is the paid share in percent, 0 for an empty list.
func CalculatePaymentStats(list []models.Mensualidad) models.PaymentStats {
	var stats models.PaymentStats
	for _, m := range list {
		stats.Total++
		stats.TotalAmount += m.Valor
		switch m.Estado {
		case models.StatusPaid:
			stats.Paid++
			stats.PaidAmount += m.Valor
		case models.StatusPending:
			stats.Pending++
			stats.PendingAmount += m.Valor
		case models.StatusOverdue:
			stats.Overdue++
			stats.OverdueAmount += m.Valor
		}
	}
	if stats.Total > 0 {
		stats.PaymentRate = float64(stats.Paid) / float64(stats.Total) * 100
	}
	return stats
}

// ToRecord flattens a mensualidad for the export layer.
func ToRecord(m models.Mensualidad) models.Record {
	r := models.Record{
		"id":             m.ID,
		"participant_id": m.ParticipantID,
		"valor":          m.Valor,
		"mes":            float64(m.Mes),
		"año":            float64(m.Anio),
		"estado":         string(m.Estado),
		"observaciones":  m.Observaciones,
	}
	if m.FechaPago != nil {
		r["fecha_pago"] = *m.FechaPago
	}
	return r
}

// IsPastDue reports whether a mensualidad's period ended before now's month.
func IsPastDue(m models.Mensualidad, year int, month int) bool {
	if m.Anio != year {
		return m.Anio < year
	}
	return m.Mes < month
}
