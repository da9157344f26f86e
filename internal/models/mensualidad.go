package models

import (
	"encoding/json"
	"time"
)

// PaymentStatus is the state of a monthly payment.
type PaymentStatus string

const (
	StatusPaid    PaymentStatus = "PAGADO"
	StatusPending PaymentStatus = "PENDIENTE"
	StatusOverdue PaymentStatus = "VENCIDA"
)

// Mensualidad is a monthly payment owed by a participant.
type Mensualidad struct {
	ID            string        `json:"id"`
	ParticipantID string        `json:"participant_id"`
	Valor         float64       `json:"valor"`
	Mes           int           `json:"mes"`
	Anio          int           `json:"año"`
	Estado        PaymentStatus `json:"estado"`
	FechaPago     *time.Time    `json:"fecha_pago,omitempty"`
	Observaciones string        `json:"observaciones,omitempty"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}

// MensualidadForm is the raw payload of the create form. Numeric fields keep
// their textual form so that structural validation can report them.
type MensualidadForm struct {
	ParticipantID string     `json:"participant_id"`
	Valor         FormNumber `json:"valor"`
	Mes           FormNumber `json:"mes"`
	Anio          FormNumber `json:"año"`
	Estado        string     `json:"estado"`
	Observaciones string     `json:"observaciones"`
}

// FormNumber is a numeric form field kept as typed. It accepts JSON
// numbers, strings and null.
type FormNumber string

func (n *FormNumber) UnmarshalJSON(b []byte) error {
	switch {
	case string(b) == "null":
		*n = ""
	case len(b) > 0 && b[0] == '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*n = FormNumber(s)
	default:
		*n = FormNumber(b)
	}
	return nil
}

func (n FormNumber) String() string { return string(n) }

// MensualidadFilter narrows a mensualidad listing. Zero values mean "any".
type MensualidadFilter struct {
	ParticipantID string
	Anio          int
	Mes           int
	Estado        PaymentStatus
}
