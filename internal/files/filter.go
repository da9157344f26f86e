package files

import (
	"cmp"
	"slices"
	"strings"
	"time"

	"github.com/Rehab-Center/Admin-Service/internal/models"
)

// SearchField selects which part of a file a search term is matched against.
type SearchField string

const (
	FieldName      SearchField = "name"
	FieldExtension SearchField = "extension"
	FieldCategory  SearchField = "category"
)

// SortKey selects the sort comparator.
type SortKey string

const (
	SortByName SortKey = "name"
	SortBySize SortKey = "size"
	SortByDate SortKey = "date"
	SortByType SortKey = "type"
)

// SortOrder is ascending or descending.
type SortOrder string

const (
	Asc  SortOrder = "asc"
	Desc SortOrder = "desc"
)

// AllCategories disables category filtering.
const AllCategories = "all"

// FilterByCategory keeps the files whose classified category equals category.
// "all" returns the input unchanged. Relative order is preserved.
func FilterByCategory(list []models.FileMetadata, category string) []models.FileMetadata {
	if category == AllCategories {
		return list
	}
	out := make([]models.FileMetadata, 0, len(list))
	for _, f := range list {
		if string(CategoryOf(f.Name)) == category {
			out = append(out, f)
		}
	}
	return out
}

// Search keeps files where term is a case-insensitive substring of any of the
// selected fields. A blank term returns the input unchanged; no fields means
// name only.
func Search(list []models.FileMetadata, term string, fields []SearchField) []models.FileMetadata {
	needle := strings.ToLower(strings.TrimSpace(term))
	if needle == "" {
		return list
	}
	if len(fields) == 0 {
		fields = []SearchField{FieldName}
	}

	out := make([]models.FileMetadata, 0, len(list))
	for _, f := range list {
		for _, field := range fields {
			if strings.Contains(searchValue(f, field), needle) {
				out = append(out, f)
				break
			}
		}
	}
	return out
}

func searchValue(f models.FileMetadata, field SearchField) string {
	switch field {
	case FieldName:
		return strings.ToLower(f.Name)
	case FieldExtension:
		// last dot-separated segment; a name without dots is its own segment
		parts := strings.Split(f.Name, ".")
		return strings.ToLower(parts[len(parts)-1])
	case FieldCategory:
		return string(CategoryOf(f.Name))
	default:
		return ""
	}
}

// ParseSearchFields reads a comma-separated field list, dropping unknown names.
func ParseSearchFields(raw string) []SearchField {
	var fields []SearchField
	for _, part := range strings.Split(raw, ",") {
		switch f := SearchField(strings.TrimSpace(strings.ToLower(part))); f {
		case FieldName, FieldExtension, FieldCategory:
			fields = append(fields, f)
		}
	}
	return fields
}

// Sort returns a sorted copy of list; the input is never modified. Desc
// negates the ascending comparator. Ties keep their input order.
func Sort(list []models.FileMetadata, key SortKey, order SortOrder) []models.FileMetadata {
	out := slices.Clone(list)
	compare := comparator(key)
	if order == Desc {
		asc := compare
		compare = func(a, b models.FileMetadata) int { return -asc(a, b) }
	}
	slices.SortStableFunc(out, compare)
	return out
}

func comparator(key SortKey) func(a, b models.FileMetadata) int {
	switch key {
	case SortBySize:
		return func(a, b models.FileMetadata) int {
			return cmp.Compare(a.Size(), b.Size())
		}
	case SortByDate:
		return func(a, b models.FileMetadata) int {
			return cmp.Compare(createdUnix(a.CreatedAt), createdUnix(b.CreatedAt))
		}
	case SortByType:
		return func(a, b models.FileMetadata) int {
			return cmp.Compare(CategoryOf(a.Name), CategoryOf(b.Name))
		}
	default:
		return func(a, b models.FileMetadata) int {
			return cmp.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name))
		}
	}
}

// createdUnix treats an unset timestamp as the epoch.
func createdUnix(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.UnixMilli()
}
