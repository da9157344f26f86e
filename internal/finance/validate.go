package finance

import (
	"strconv"
	"strings"
	"time"

	"github.com/Rehab-Center/Admin-Service/internal/models"
)

// MinYear is the first year mensualidades can be registered for.
const MinYear = 2020

// FieldErrors maps a form field to its message. Empty means valid.
type FieldErrors map[string]string

// ValidateMensualidadData checks the structure of a mensualidad form against
// the current date.
func ValidateMensualidadData(form models.MensualidadForm) FieldErrors {
	return validateMensualidad(form, time.Now())
}

func validateMensualidad(form models.MensualidadForm, now time.Time) FieldErrors {
	errs := FieldErrors{}

	if strings.TrimSpace(form.ParticipantID) == "" {
		errs["participant_id"] = "El participante es requerido"
	}

	valor := strings.TrimSpace(form.Valor.String())
	if valor == "" {
		errs["valor"] = "El valor es requerido"
	} else if v, err := strconv.ParseFloat(valor, 64); err != nil {
		errs["valor"] = "El valor debe ser numérico"
	} else if v <= 0 {
		errs["valor"] = "El valor debe ser mayor a 0"
	}

	mes, err := strconv.Atoi(strings.TrimSpace(form.Mes.String()))
	if err != nil || mes < 1 || mes > 12 {
		errs["mes"] = "El mes debe estar entre 1 y 12"
	}

	maxYear := now.Year() + 1
	anio, err := strconv.Atoi(strings.TrimSpace(form.Anio.String()))
	if err != nil || anio < MinYear || anio > maxYear {
		errs["año"] = "El año debe estar entre " + strconv.Itoa(MinYear) + " y " + strconv.Itoa(maxYear)
	}

	return errs
}

// Valid reports whether no field failed.
func (e FieldErrors) Valid() bool {
	return len(e) == 0
}

// ToMensualidad converts a validated form. Callers must check
// ValidateMensualidadData first.
func ToMensualidad(form models.MensualidadForm) models.Mensualidad {
	valor, _ := strconv.ParseFloat(strings.TrimSpace(form.Valor.String()), 64)
	mes, _ := strconv.Atoi(strings.TrimSpace(form.Mes.String()))
	anio, _ := strconv.Atoi(strings.TrimSpace(form.Anio.String()))

	estado := models.StatusPending
	if s, ok := ParseStatus(form.Estado); ok {
		estado = s
	}
	return models.Mensualidad{
		ParticipantID: strings.TrimSpace(form.ParticipantID),
		Valor:         valor,
		Mes:           mes,
		Anio:          anio,
		Estado:        estado,
		Observaciones: form.Observaciones,
	}
}
