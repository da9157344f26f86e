package export

import (
	_ "embed"
	"fmt"
	"slices"
	"sort"

	"gopkg.in/yaml.v3"
)

//go:embed presets.yaml
var presetsYAML []byte

var presets map[string][]Header

func init() {
	if err := yaml.Unmarshal(presetsYAML, &presets); err != nil {
		panic(fmt.Sprintf("export: invalid presets.yaml: %v", err))
	}
	for name, headers := range presets {
		for _, h := range headers {
			if h.Format != "" {
				if _, ok := formatters[h.Format]; !ok {
					panic(fmt.Sprintf("export: preset %s uses unknown format %q", name, h.Format))
				}
			}
		}
	}
}

// Preset returns the column set registered under name.
func Preset(name string) ([]Header, bool) {
	headers, ok := presets[name]
	if !ok {
		return nil, false
	}
	return slices.Clone(headers), true
}

// PresetNames lists the registered presets in alphabetical order.
func PresetNames() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// LoadHeaders parses a YAML column list, as found in presets.yaml, and
// rejects unknown formats.
func LoadHeaders(data []byte) ([]Header, error) {
	var headers []Header
	if err := yaml.Unmarshal(data, &headers); err != nil {
		return nil, fmt.Errorf("failed to parse headers: %w", err)
	}
	for _, h := range headers {
		if h.Format == "" {
			continue
		}
		if _, ok := formatters[h.Format]; !ok {
			return nil, fmt.Errorf("unknown format %q for column %q", h.Format, h.Label)
		}
	}
	return headers, nil
}
