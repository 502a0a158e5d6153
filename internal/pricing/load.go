package pricing

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// overridesFile is the YAML shape deployments use to adjust pricing without
// a rebuild. Entries replace the built-in record with the same id; new ids
// are appended.
type overridesFile struct {
	WorkCategories []Profile      `yaml:"work_categories"`
	RoomTemplates  []RoomTemplate `yaml:"room_templates"`
	QualityTiers   []QualityTier  `yaml:"quality_tiers"`
}

// Load builds the catalog from the built-in defaults merged with an optional
// YAML overrides file. An empty path returns the defaults unchanged.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog overrides: %w", err)
	}

	var overrides overridesFile
	if err := yaml.Unmarshal(data, &overrides); err != nil {
		return nil, fmt.Errorf("parse catalog overrides: %w", err)
	}

	profiles := mergeByID(defaultProfiles(), overrides.WorkCategories, func(p Profile) string { return p.ID })
	rooms := mergeByID(defaultRooms(), overrides.RoomTemplates, func(r RoomTemplate) string { return r.ID })
	tiers := mergeByID(defaultTiers(), overrides.QualityTiers, func(t QualityTier) string { return t.ID })

	return New(profiles, rooms, tiers), nil
}

// mergeByID replaces base entries whose id matches an override and appends
// overrides with new ids, preserving base ordering.
func mergeByID[T any](base, overrides []T, id func(T) string) []T {
	byID := make(map[string]T, len(overrides))
	for _, o := range overrides {
		byID[id(o)] = o
	}

	out := make([]T, 0, len(base)+len(overrides))
	seen := make(map[string]bool, len(base))
	for _, b := range base {
		if o, ok := byID[id(b)]; ok {
			out = append(out, o)
		} else {
			out = append(out, b)
		}
		seen[id(b)] = true
	}
	for _, o := range overrides {
		if !seen[id(o)] {
			out = append(out, o)
		}
	}
	return out
}
