package export

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/Rehab-Center/Admin-Service/internal/locale"
	"github.com/Rehab-Center/Admin-Service/internal/models"
)

var statusLabels = map[string]string{
	"ACTIVO":    "Activo",
	"INACTIVO":  "Inactivo",
	"PAGADA":    "Pagada",
	"PENDIENTE": "Pendiente",
	"VENCIDA":   "Vencida",
}

var genderLabels = map[string]string{
	"MASCULINO": "Masculino",
	"FEMENINO":  "Femenino",
}

// DefaultDocumentType is assumed when a record has a number but no type.
const DefaultDocumentType = "CC"

// Name joins nombres and apellidos, falling back to nombre.
func Name(v any) Value {
	m, ok := asMap(v)
	if !ok {
		return None()
	}
	full := strings.TrimSpace(text(m["nombres"]) + " " + text(m["apellidos"]))
	if full != "" {
		return Some(full)
	}
	if nombre := strings.TrimSpace(text(m["nombre"])); nombre != "" {
		return Some(nombre)
	}
	return None()
}

// Location renders a sede given either as an object or as plain text.
// Objects prefer their address over their name.
func Location(v any) Value {
	if s, ok := v.(string); ok {
		if strings.TrimSpace(s) == "" {
			return None()
		}
		return Some(s)
	}
	m, ok := asMap(v)
	if !ok {
		return None()
	}
	if dir := strings.TrimSpace(text(m["direccion"])); dir != "" {
		return Some(dir)
	}
	if nombre := strings.TrimSpace(text(m["nombre"])); nombre != "" {
		return Some(nombre)
	}
	return None()
}

// Status maps known upper-case statuses to their label. Unknown values pass
// through untouched.
func Status(v any) Value {
	return labelled(v, statusLabels)
}

// Gender maps MASCULINO/FEMENINO to their label. Unknown values pass through.
func Gender(v any) Value {
	return labelled(v, genderLabels)
}

func labelled(v any, labels map[string]string) Value {
	raw := text(v)
	if strings.TrimSpace(raw) == "" {
		return None()
	}
	if label, ok := labels[locale.Upper(raw)]; ok {
		return Some(label)
	}
	return Some(raw)
}

// Document renders "{tipo}: {numero}" from a record holding tipo_documento
// and numero_documento.
func Document(v any) Value {
	m, ok := asMap(v)
	if !ok {
		return None()
	}
	numero := strings.TrimSpace(text(m["numero_documento"]))
	if numero == "" {
		return None()
	}
	tipo := strings.TrimSpace(text(m["tipo_documento"]))
	if tipo == "" {
		tipo = DefaultDocumentType
	}
	return Some(fmt.Sprintf("%s: %s", tipo, numero))
}

// Currency formats numeric amounts as COP. Anything else is rendered as text.
func Currency(v any) string {
	if amount, ok := numeric(v); ok {
		return locale.Currency(amount)
	}
	return text(v)
}

// Date formats a date as d/M/yyyy. Unparseable input is rendered as text.
func Date(v any) string {
	if t, ok := parseDate(v); ok {
		return locale.ShortDate(t)
	}
	return text(v)
}

// Age computes whole years between birth and today, as "N años".
// Missing, unparseable or non-positive ages produce None.
func Age(birth any, today time.Time) Value {
	t, ok := parseDate(birth)
	if !ok {
		return None()
	}
	years := today.Year() - t.Year()
	if today.Month() < t.Month() || (today.Month() == t.Month() && today.Day() < t.Day()) {
		years--
	}
	if years <= 0 {
		return None()
	}
	return Some(fmt.Sprintf("%d años", years))
}

// CalculateAge is Age against the current date, defaulting to "".
func CalculateAge(birth any) string {
	return Age(birth, time.Now()).Or("")
}

// FormatName, FormatLocation, FormatStatus, FormatGender and FormatDocument
// apply the "N/A" sentinel.
func FormatName(v any) string     { return Name(v).Or(NotAvailable) }
func FormatLocation(v any) string { return Location(v).Or(NotAvailable) }
func FormatStatus(v any) string   { return Status(v).Or(NotAvailable) }
func FormatGender(v any) string   { return Gender(v).Or(NotAvailable) }
func FormatDocument(v any) string { return Document(v).Or(NotAvailable) }

var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

func parseDate(v any) (time.Time, bool) {
	switch t := v.(type) {
	case time.Time:
		return t, !t.IsZero()
	case *time.Time:
		if t == nil || t.IsZero() {
			return time.Time{}, false
		}
		return *t, true
	case string:
		s := strings.TrimSpace(t)
		for _, layout := range dateLayouts {
			if parsed, err := time.Parse(layout, s); err == nil {
				return parsed, true
			}
		}
	}
	return time.Time{}, false
}

func numeric(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		return f, err == nil
	default:
		return 0, false
	}
}

func text(v any) string {
	if v == nil {
		return ""
	}
	if t, ok := v.(time.Time); ok {
		return t.Format(time.RFC3339)
	}
	return models.Stringify(v)
}
