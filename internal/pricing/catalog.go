// Package pricing provides the static reference data used by the estimation
// engine: per-work-category pricing profiles, room templates and quality
// tiers. A Catalog is built once at startup and injected into the services
// that need it; it is never mutated afterwards.
package pricing

import (
	"renoquote_backend/platform/apperr"
)

// Well-known fallback identifiers. Room and tier lookups are total: an
// unknown id resolves to these instead of failing.
const (
	DefaultRoomID = "other"
	DefaultTierID = "standard"
)

// MaterialSpec describes one material a work category typically needs.
type MaterialSpec struct {
	Name            string  `yaml:"name"`
	Unit            string  `yaml:"unit"`
	UnitPrice       float64 `yaml:"unit_price"`
	DefaultQuantity float64 `yaml:"default_quantity"`
}

// Profile holds the pricing reference data for one work category.
type Profile struct {
	ID                  string         `yaml:"id"`
	DisplayName         string         `yaml:"display_name"`
	LaborRatePerHour    float64        `yaml:"labor_rate_per_hour"`
	HoursPerSquareMeter float64        `yaml:"hours_per_square_meter"`
	Materials           []MaterialSpec `yaml:"materials"`
}

// RoomTemplate holds default size and complexity assumptions for a room type.
type RoomTemplate struct {
	ID                 string   `yaml:"id"`
	DisplayName        string   `yaml:"display_name"`
	TypicalCategories  []string `yaml:"typical_categories"`
	AverageSurfaceArea float64  `yaml:"average_surface_area"`
	ComplexityFactor   float64  `yaml:"complexity_factor"`
}

// QualityTier is a cost-multiplier preset applied to materials and labor.
type QualityTier struct {
	ID                  string  `yaml:"id"`
	MaterialsMultiplier float64 `yaml:"materials_multiplier"`
	LaborMultiplier     float64 `yaml:"labor_multiplier"`
}

// Catalog is an immutable lookup table over the three reference data sets.
type Catalog struct {
	profiles      map[string]Profile
	rooms         map[string]RoomTemplate
	tiers         map[string]QualityTier
	categoryOrder []string
	roomOrder     []string
	tierOrder     []string
}

// New builds a Catalog from the given reference data. Input slices are
// copied so later mutation by the caller cannot leak into the catalog.
func New(profiles []Profile, rooms []RoomTemplate, tiers []QualityTier) *Catalog {
	c := &Catalog{
		profiles: make(map[string]Profile, len(profiles)),
		rooms:    make(map[string]RoomTemplate, len(rooms)),
		tiers:    make(map[string]QualityTier, len(tiers)),
	}
	for _, p := range profiles {
		p.Materials = append([]MaterialSpec(nil), p.Materials...)
		if _, seen := c.profiles[p.ID]; !seen {
			c.categoryOrder = append(c.categoryOrder, p.ID)
		}
		c.profiles[p.ID] = p
	}
	for _, r := range rooms {
		r.TypicalCategories = append([]string(nil), r.TypicalCategories...)
		if _, seen := c.rooms[r.ID]; !seen {
			c.roomOrder = append(c.roomOrder, r.ID)
		}
		c.rooms[r.ID] = r
	}
	for _, t := range tiers {
		if _, seen := c.tiers[t.ID]; !seen {
			c.tierOrder = append(c.tierOrder, t.ID)
		}
		c.tiers[t.ID] = t
	}
	return c
}

// WorkCategory looks up the pricing profile for a work category.
// Unknown ids fail with the typed unknown_work_category error so batch
// callers can detect the miss and skip the category.
func (c *Catalog) WorkCategory(id string) (Profile, error) {
	profile, ok := c.profiles[id]
	if !ok {
		return Profile{}, apperr.UnknownWorkCategory(id)
	}
	return profile, nil
}

// RoomTemplate looks up a room template. The lookup is total: unknown ids
// resolve to the "other" template.
func (c *Catalog) RoomTemplate(id string) RoomTemplate {
	if room, ok := c.rooms[id]; ok {
		return room
	}
	return c.rooms[DefaultRoomID]
}

// QualityTier looks up a quality tier. The lookup is total: unknown ids
// resolve to the standard tier (multipliers 1.0/1.0).
func (c *Catalog) QualityTier(id string) QualityTier {
	if tier, ok := c.tiers[id]; ok {
		return tier
	}
	if tier, ok := c.tiers[DefaultTierID]; ok {
		return tier
	}
	return QualityTier{ID: DefaultTierID, MaterialsMultiplier: 1.0, LaborMultiplier: 1.0}
}

// HasWorkCategory reports whether a work category exists without the error.
func (c *Catalog) HasWorkCategory(id string) bool {
	_, ok := c.profiles[id]
	return ok
}

// WorkCategories returns all pricing profiles in declaration order.
func (c *Catalog) WorkCategories() []Profile {
	out := make([]Profile, 0, len(c.categoryOrder))
	for _, id := range c.categoryOrder {
		out = append(out, c.profiles[id])
	}
	return out
}

// RoomTemplates returns all room templates in declaration order.
func (c *Catalog) RoomTemplates() []RoomTemplate {
	out := make([]RoomTemplate, 0, len(c.roomOrder))
	for _, id := range c.roomOrder {
		out = append(out, c.rooms[id])
	}
	return out
}

// QualityTiers returns all quality tiers in declaration order.
func (c *Catalog) QualityTiers() []QualityTier {
	out := make([]QualityTier, 0, len(c.tierOrder))
	for _, id := range c.tierOrder {
		out = append(out, c.tiers[id])
	}
	return out
}
