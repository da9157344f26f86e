// Package validation checks form input against the record listings:
// document uniqueness, referential existence, email and past dates.
package validation

import (
	"context"
	"fmt"
	"log"
	"regexp"
	"strings"
	"time"

	"github.com/Rehab-Center/Admin-Service/internal/configuration"
	"github.com/Rehab-Center/Admin-Service/internal/models"
)

// RecordSource lists the records of a kind. Every call is a fresh fetch.
type RecordSource interface {
	List(ctx context.Context, kind models.Kind) ([]models.Record, error)
}

// DocumentField holds the document number in participant and guardian records.
const DocumentField = "numero_documento"

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Validator runs the checks. It keeps no state between calls.
type Validator struct {
	source RecordSource
	diag   *configuration.Diagnostics
	now    func() time.Time
}

// NewValidator builds a validator over source. diag may be nil.
func NewValidator(source RecordSource, diag *configuration.Diagnostics) *Validator {
	return &Validator{source: source, diag: diag, now: time.Now}
}

// DocumentUniqueness fails when another record of kind, other than
// excludedID, holds number. A failed fetch is logged and treated as valid.
func (v *Validator) DocumentUniqueness(ctx context.Context, kind models.Kind, number, excludedID string) models.ValidationResult {
	number = strings.TrimSpace(number)
	if number == "" {
		return models.Invalid("El número de documento es requerido")
	}

	records, err := v.source.List(ctx, kind)
	if err != nil {
		log.Printf("[VALIDATION] document check for %s skipped: %v", kind, err)
		return models.Valid()
	}

	for _, r := range records {
		if excludedID != "" && r.ID() == excludedID {
			continue
		}
		if strings.TrimSpace(r.String(DocumentField)) == number {
			v.diag.Debugf("[VALIDATION] document %s already used by %s %s", number, kind.Label(), r.ID())
			return models.Invalid("Este número de documento ya está registrado")
		}
	}
	return models.Valid()
}

// Existence fails when no record of kind has id. A failed fetch is an error
// result.
func (v *Validator) Existence(ctx context.Context, kind models.Kind, id string) models.ValidationResult {
	id = strings.TrimSpace(id)
	if id == "" {
		return models.Invalid(fmt.Sprintf("El %s es requerido", kind.Label()))
	}

	records, err := v.source.List(ctx, kind)
	if err != nil {
		log.Printf("[VALIDATION] existence check for %s %s failed: %v", kind, id, err)
		return models.Invalid(fmt.Sprintf("Error al verificar el %s", kind.Label()))
	}

	for _, r := range records {
		if r.ID() == id {
			return models.Valid()
		}
	}
	return models.Invalid(fmt.Sprintf("El %s seleccionado no existe", kind.Label()))
}

// Relational checks that both the participant and the guardian exist,
// stopping at the first failure.
func (v *Validator) Relational(ctx context.Context, participantID, guardianID string) models.ValidationResult {
	if res := v.Existence(ctx, models.KindParticipant, participantID); !res.IsValid {
		return res
	}
	return v.Existence(ctx, models.KindGuardian, guardianID)
}

// Email checks presence and shape.
func Email(value string) models.ValidationResult {
	value = strings.TrimSpace(value)
	if value == "" {
		return models.Invalid("El correo electrónico es requerido")
	}
	if !emailPattern.MatchString(value) {
		return models.Invalid("El correo electrónico no es válido")
	}
	return models.Valid()
}

// PastDate accepts any date up to the end of today.
func (v *Validator) PastDate(value, label string) models.ValidationResult {
	return pastDate(value, label, v.now())
}

func pastDate(value, label string, now time.Time) models.ValidationResult {
	value = strings.TrimSpace(value)
	if value == "" {
		return models.Invalid(fmt.Sprintf("La %s es requerida", label))
	}
	t, ok := ParseDate(value, now.Location())
	if !ok {
		return models.Invalid(fmt.Sprintf("La %s no es válida", label))
	}
	endOfDay := time.Date(now.Year(), now.Month(), now.Day(), 23, 59, 59, 999999999, now.Location())
	if t.After(endOfDay) {
		return models.Invalid(fmt.Sprintf("La %s no puede ser una fecha futura", label))
	}
	return models.Valid()
}

var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2/1/2006",
}

// ParseDate reads form dates. Date-only values are taken in loc.
func ParseDate(value string, loc *time.Location) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, value, loc); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
