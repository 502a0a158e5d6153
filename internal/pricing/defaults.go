package pricing

// Default returns the built-in pricing catalog. Prices are in euros,
// labor rates per hour, hours per square meter of treated surface.
func Default() *Catalog {
	return New(defaultProfiles(), defaultRooms(), defaultTiers())
}

func defaultProfiles() []Profile {
	return []Profile{
		{
			ID:                  "painting",
			DisplayName:         "Painting & Decorating",
			LaborRatePerHour:    50,
			HoursPerSquareMeter: 0.4,
			Materials: []MaterialSpec{
				{Name: "Wall paint", Unit: "liter", UnitPrice: 8.5, DefaultQuantity: 10},
				{Name: "Primer", Unit: "liter", UnitPrice: 6.9, DefaultQuantity: 5},
				{Name: "Masking tape", Unit: "roll", UnitPrice: 4.2, DefaultQuantity: 3},
				{Name: "Protective film", Unit: "sqm", UnitPrice: 0.8},
			},
		},
		{
			ID:                  "plumbing",
			DisplayName:         "Plumbing",
			LaborRatePerHour:    65,
			HoursPerSquareMeter: 0.6,
			Materials: []MaterialSpec{
				{Name: "Copper pipe", Unit: "meter", UnitPrice: 12.5},
				{Name: "PVC drain pipe", Unit: "meter", UnitPrice: 6.8},
				{Name: "Fittings kit", Unit: "piece", UnitPrice: 45, DefaultQuantity: 2},
				{Name: "Shut-off valve", Unit: "piece", UnitPrice: 28, DefaultQuantity: 2},
			},
		},
		{
			ID:                  "electrical",
			DisplayName:         "Electrical Work",
			LaborRatePerHour:    60,
			HoursPerSquareMeter: 0.5,
			Materials: []MaterialSpec{
				{Name: "Electrical cable", Unit: "meter", UnitPrice: 2.4},
				{Name: "Wall outlet", Unit: "piece", UnitPrice: 14.5, DefaultQuantity: 8},
				{Name: "Circuit breaker", Unit: "piece", UnitPrice: 32, DefaultQuantity: 4},
				{Name: "Junction box", Unit: "piece", UnitPrice: 9.5, DefaultQuantity: 6},
			},
		},
		{
			ID:                  "flooring",
			DisplayName:         "Flooring",
			LaborRatePerHour:    45,
			HoursPerSquareMeter: 0.7,
			Materials: []MaterialSpec{
				{Name: "Laminate flooring", Unit: "sqm", UnitPrice: 24},
				{Name: "Underlay", Unit: "sqm", UnitPrice: 4.5},
				{Name: "Skirting board", Unit: "meter", UnitPrice: 8.2},
				{Name: "Transition strip", Unit: "piece", UnitPrice: 15, DefaultQuantity: 2},
			},
		},
		{
			ID:                  "tiling",
			DisplayName:         "Tiling",
			LaborRatePerHour:    55,
			HoursPerSquareMeter: 1.1,
			Materials: []MaterialSpec{
				{Name: "Ceramic tiles", Unit: "sqm", UnitPrice: 32},
				{Name: "Tile adhesive", Unit: "bag", UnitPrice: 18, DefaultQuantity: 4},
				{Name: "Grout", Unit: "bag", UnitPrice: 9.8, DefaultQuantity: 3},
				{Name: "Tile spacers", Unit: "bag", UnitPrice: 3.5, DefaultQuantity: 2},
			},
		},
		{
			ID:                  "carpentry",
			DisplayName:         "Carpentry",
			LaborRatePerHour:    52,
			HoursPerSquareMeter: 0.5,
			Materials: []MaterialSpec{
				{Name: "Timber board", Unit: "meter", UnitPrice: 11},
				{Name: "Wood screws", Unit: "box", UnitPrice: 7.5, DefaultQuantity: 2},
				{Name: "Wood glue", Unit: "piece", UnitPrice: 6.4, DefaultQuantity: 1},
				{Name: "Varnish", Unit: "liter", UnitPrice: 13.5, DefaultQuantity: 2},
			},
		},
		{
			ID:                  "demolition",
			DisplayName:         "Demolition & Removal",
			LaborRatePerHour:    40,
			HoursPerSquareMeter: 0.3,
			Materials: []MaterialSpec{
				{Name: "Rubble bags", Unit: "piece", UnitPrice: 1.2, DefaultQuantity: 30},
				{Name: "Disposal container", Unit: "piece", UnitPrice: 280, DefaultQuantity: 1},
				{Name: "Dust sheeting", Unit: "sqm", UnitPrice: 0.6},
			},
		},
		{
			ID:                  "insulation",
			DisplayName:         "Insulation",
			LaborRatePerHour:    48,
			HoursPerSquareMeter: 0.45,
			Materials: []MaterialSpec{
				{Name: "Insulation batts", Unit: "sqm", UnitPrice: 14.5},
				{Name: "Vapor barrier", Unit: "sqm", UnitPrice: 2.1},
				{Name: "Sealing tape", Unit: "roll", UnitPrice: 9.9, DefaultQuantity: 2},
			},
		},
		{
			ID:                  "kitchen",
			DisplayName:         "Kitchen Installation",
			LaborRatePerHour:    58,
			HoursPerSquareMeter: 1.4,
			Materials: []MaterialSpec{
				{Name: "Base cabinets", Unit: "piece", UnitPrice: 210, DefaultQuantity: 4},
				{Name: "Wall cabinets", Unit: "piece", UnitPrice: 160, DefaultQuantity: 3},
				{Name: "Countertop", Unit: "meter", UnitPrice: 95},
				{Name: "Sink and tap set", Unit: "piece", UnitPrice: 240, DefaultQuantity: 1},
			},
		},
		{
			ID:                  "bathroom",
			DisplayName:         "Bathroom Installation",
			LaborRatePerHour:    62,
			HoursPerSquareMeter: 1.6,
			Materials: []MaterialSpec{
				{Name: "Shower set", Unit: "piece", UnitPrice: 320, DefaultQuantity: 1},
				{Name: "Vanity unit", Unit: "piece", UnitPrice: 380, DefaultQuantity: 1},
				{Name: "Toilet", Unit: "piece", UnitPrice: 260, DefaultQuantity: 1},
				{Name: "Waterproof membrane", Unit: "sqm", UnitPrice: 7.5},
			},
		},
	}
}

func defaultRooms() []RoomTemplate {
	return []RoomTemplate{
		{ID: "living_room", DisplayName: "Living Room", TypicalCategories: []string{"painting", "flooring", "electrical"}, AverageSurfaceArea: 25, ComplexityFactor: 1.0},
		{ID: "bedroom", DisplayName: "Bedroom", TypicalCategories: []string{"painting", "flooring"}, AverageSurfaceArea: 14, ComplexityFactor: 0.9},
		{ID: "kitchen", DisplayName: "Kitchen", TypicalCategories: []string{"kitchen", "plumbing", "electrical", "tiling"}, AverageSurfaceArea: 12, ComplexityFactor: 1.3},
		{ID: "bathroom", DisplayName: "Bathroom", TypicalCategories: []string{"bathroom", "plumbing", "tiling"}, AverageSurfaceArea: 6, ComplexityFactor: 1.4},
		{ID: "toilet", DisplayName: "Toilet", TypicalCategories: []string{"plumbing", "tiling"}, AverageSurfaceArea: 2, ComplexityFactor: 1.2},
		{ID: "hallway", DisplayName: "Hallway", TypicalCategories: []string{"painting", "flooring"}, AverageSurfaceArea: 8, ComplexityFactor: 1.0},
		{ID: "attic", DisplayName: "Attic", TypicalCategories: []string{"insulation", "carpentry"}, AverageSurfaceArea: 20, ComplexityFactor: 1.2},
		{ID: "basement", DisplayName: "Basement", TypicalCategories: []string{"insulation", "electrical"}, AverageSurfaceArea: 18, ComplexityFactor: 1.1},
		{ID: "exterior", DisplayName: "Exterior", TypicalCategories: []string{"painting", "carpentry"}, AverageSurfaceArea: 40, ComplexityFactor: 1.1},
		{ID: "other", DisplayName: "Other", TypicalCategories: []string{"painting"}, AverageSurfaceArea: 15, ComplexityFactor: 1.0},
	}
}

func defaultTiers() []QualityTier {
	return []QualityTier{
		{ID: "economy", MaterialsMultiplier: 0.8, LaborMultiplier: 0.9},
		{ID: "standard", MaterialsMultiplier: 1.0, LaborMultiplier: 1.0},
		{ID: "premium", MaterialsMultiplier: 1.35, LaborMultiplier: 1.2},
		{ID: "luxury", MaterialsMultiplier: 1.8, LaborMultiplier: 1.45},
	}
}
