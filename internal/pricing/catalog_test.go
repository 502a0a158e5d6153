package pricing

import (
	"os"
	"path/filepath"
	"testing"

	"renoquote_backend/platform/apperr"
)

func TestWorkCategoryUnknownIsTypedError(t *testing.T) {
	c := Default()

	_, err := c.WorkCategory("underwater_welding")
	if err == nil {
		t.Fatal("expected error for unknown work category")
	}
	if !apperr.IsCode(err, apperr.CodeUnknownWorkCategory) {
		t.Fatalf("expected code %s, got %s", apperr.CodeUnknownWorkCategory, apperr.GetCode(err))
	}
}

func TestRoomTemplateLookupIsTotal(t *testing.T) {
	c := Default()

	room := c.RoomTemplate("spaceship_bridge")
	if room.ID != DefaultRoomID {
		t.Fatalf("expected fallback to %q, got %q", DefaultRoomID, room.ID)
	}
	if room.AverageSurfaceArea <= 0 {
		t.Fatalf("fallback room must carry a usable average surface area, got %v", room.AverageSurfaceArea)
	}
}

func TestQualityTierLookupIsTotal(t *testing.T) {
	c := Default()

	tier := c.QualityTier("platinum")
	if tier.ID != DefaultTierID {
		t.Fatalf("expected fallback to %q, got %q", DefaultTierID, tier.ID)
	}
	if tier.MaterialsMultiplier != 1.0 || tier.LaborMultiplier != 1.0 {
		t.Fatalf("standard tier must be neutral, got %v/%v", tier.MaterialsMultiplier, tier.LaborMultiplier)
	}
}

func TestDefaultCatalogIsComplete(t *testing.T) {
	c := Default()

	for _, id := range []string{"painting", "plumbing", "electrical", "flooring", "tiling", "carpentry", "demolition", "insulation", "kitchen", "bathroom"} {
		profile, err := c.WorkCategory(id)
		if err != nil {
			t.Fatalf("missing built-in category %q: %v", id, err)
		}
		if profile.LaborRatePerHour <= 0 || profile.HoursPerSquareMeter <= 0 {
			t.Errorf("category %q has unusable labor parameters", id)
		}
		if len(profile.Materials) == 0 {
			t.Errorf("category %q has no materials", id)
		}
	}

	if len(c.QualityTiers()) != 4 {
		t.Fatalf("expected 4 quality tiers, got %d", len(c.QualityTiers()))
	}
}

func TestLoadMergesOverridesOverDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "catalog.yaml")
	content := `
work_categories:
  - id: painting
    display_name: Painting
    labor_rate_per_hour: 75
    hours_per_square_meter: 0.4
    materials:
      - name: Wall paint
        unit: liter
        unit_price: 12
        default_quantity: 10
  - id: roofing
    display_name: Roofing
    labor_rate_per_hour: 70
    hours_per_square_meter: 0.8
    materials:
      - name: Roof tiles
        unit: sqm
        unit_price: 28
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	painting, err := c.WorkCategory("painting")
	if err != nil {
		t.Fatal(err)
	}
	if painting.LaborRatePerHour != 75 {
		t.Fatalf("override not applied: labor rate %v", painting.LaborRatePerHour)
	}
	if len(painting.Materials) != 1 {
		t.Fatalf("override must replace the material list, got %d materials", len(painting.Materials))
	}

	if _, err := c.WorkCategory("roofing"); err != nil {
		t.Fatalf("appended category not found: %v", err)
	}

	// Untouched categories keep their defaults.
	plumbing, err := c.WorkCategory("plumbing")
	if err != nil {
		t.Fatal(err)
	}
	if plumbing.LaborRatePerHour != 65 {
		t.Fatalf("default category was modified: %v", plumbing.LaborRatePerHour)
	}
}

func TestLoadEmptyPathReturnsDefaults(t *testing.T) {
	c, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\"): %v", err)
	}
	if !c.HasWorkCategory("painting") {
		t.Fatal("defaults missing painting")
	}
}
