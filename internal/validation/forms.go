package validation

import (
	"context"
	"strings"

	"github.com/Rehab-Center/Admin-Service/internal/models"
)

// Labels used in date messages.
const (
	LabelBirthDate = "fecha de nacimiento"
	LabelEntryDate = "fecha de ingreso"
)

// ValidateRecord runs every check that applies to a record of kind and
// returns the failures by field. excludedID is the record's own id on update.
func (v *Validator) ValidateRecord(ctx context.Context, kind models.Kind, r models.Record, excludedID string) map[string]string {
	errs := map[string]string{}
	check := func(field string, res models.ValidationResult) {
		if !res.IsValid {
			errs[field] = res.Message()
		}
	}

	switch kind {
	case models.KindParticipant, models.KindGuardian:
		check(DocumentField, v.DocumentUniqueness(ctx, kind, r.String(DocumentField), excludedID))
		if email := r.String("email"); strings.TrimSpace(email) != "" {
			check("email", Email(email))
		}
	}

	if kind == models.KindParticipant {
		check("fecha_nacimiento", v.PastDate(r.String("fecha_nacimiento"), LabelBirthDate))
		if entry := r.String("fecha_ingreso"); entry != "" {
			check("fecha_ingreso", v.PastDate(entry, LabelEntryDate))
		}
		if sede := r.String("sede_id"); sede != "" {
			check("sede_id", v.Existence(ctx, models.KindSede, sede))
		}
		if guardian := r.String("acudiente_id"); guardian != "" {
			check("acudiente_id", v.Existence(ctx, models.KindGuardian, guardian))
		}
	}

	return errs
}
