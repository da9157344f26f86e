package models

import (
	"fmt"
	"strconv"
	"strings"
)

// Record is a loosely-typed domain record (participant, guardian, sede) as the
// data service returns it. Nested objects decode to map[string]any.
type Record map[string]any

// idFields are the identifier keys a record may carry.
var idFields = []string{"id", "_id"}

// ID returns the record identifier as a string, accepting either "id" or "_id".
func (r Record) ID() string {
	for _, key := range idFields {
		if v, ok := r[key]; ok && v != nil {
			if s := Stringify(v); s != "" {
				return s
			}
		}
	}
	return ""
}

// String returns the value at key as a trimmed string ("" when absent).
func (r Record) String(key string) string {
	v, ok := r[key]
	if !ok || v == nil {
		return ""
	}
	return strings.TrimSpace(Stringify(v))
}

// Stringify converts decoded JSON scalars to their canonical string form.
// Whole float64 values (JSON numbers) print without a fractional part.
func Stringify(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(t), 'f', -1, 32)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case bool:
		return strconv.FormatBool(t)
	case fmt.Stringer:
		return t.String()
	default:
		return fmt.Sprint(t)
	}
}

// ListResponse is the envelope of the data service list endpoints.
type ListResponse struct {
	Data []Record `json:"data"`
}
