package export

import (
	"strings"

	"github.com/Rehab-Center/Admin-Service/internal/models"
)

// GetNestedValue resolves a dotted path such as "sede.nombre" by successive
// map lookups. A missing segment, a non-object along the way or a nil root
// yields (nil, false). An empty path returns obj itself.
func GetNestedValue(obj any, path string) (any, bool) {
	if obj == nil {
		return nil, false
	}
	if path == "" {
		return obj, true
	}

	current := obj
	for _, segment := range strings.Split(path, ".") {
		m, ok := asMap(current)
		if !ok {
			return nil, false
		}
		next, found := m[segment]
		if !found || next == nil {
			return nil, false
		}
		current = next
	}
	return current, true
}

func asMap(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case models.Record:
		return m, m != nil
	case map[string]any:
		return m, m != nil
	default:
		return nil, false
	}
}
