package domain

import "testing"

func TestMaterialTotal(t *testing.T) {
	if got := MaterialTotal(10, 35); got != 350 {
		t.Fatalf("expected 350, got %v", got)
	}
	if got := MaterialTotal(3, 8.555); got != 25.67 {
		t.Fatalf("expected 25.67, got %v", got)
	}
}

func TestSubQuoteTotals(t *testing.T) {
	costs := SubQuoteTotals(10, 50, []float64{350, 125})
	if costs.LaborCost != 500 {
		t.Fatalf("expected labor cost 500, got %v", costs.LaborCost)
	}
	if costs.MaterialsCost != 475 {
		t.Fatalf("expected materials cost 475, got %v", costs.MaterialsCost)
	}
	if costs.TotalCost != 975 {
		t.Fatalf("expected total cost 975, got %v", costs.TotalCost)
	}
}

func TestSubQuoteTotals_NoMaterials(t *testing.T) {
	costs := SubQuoteTotals(4, 65, nil)
	if costs.MaterialsCost != 0 {
		t.Fatalf("expected zero materials cost, got %v", costs.MaterialsCost)
	}
	if costs.TotalCost != costs.LaborCost {
		t.Fatalf("expected total %v to equal labor %v", costs.TotalCost, costs.LaborCost)
	}
}

func TestSubQuoteTotals_DerivedAfterMaterialRemoval(t *testing.T) {
	first := MaterialTotal(10, 35)
	second := MaterialTotal(5, 25)

	before := SubQuoteTotals(0, 0, []float64{first, second})
	if before.MaterialsCost != 475 {
		t.Fatalf("expected materials cost 475, got %v", before.MaterialsCost)
	}

	// Deleting the first material and re-deriving must not leave any trace
	// of it in the roll-up.
	after := SubQuoteTotals(0, 0, []float64{second})
	if after.MaterialsCost != 125 {
		t.Fatalf("expected materials cost 125 after removal, got %v", after.MaterialsCost)
	}

	quote := QuoteTotals([]SubQuoteCosts{after})
	if quote.MaterialsTotal != 125 || quote.TotalAmount != 125 {
		t.Fatalf("expected quote totals 125 after removal, got %+v", quote)
	}
}

func TestQuoteTotals_DerivesFromChildren(t *testing.T) {
	totals := QuoteTotals([]SubQuoteCosts{
		{LaborCost: 500, MaterialsCost: 475, TotalCost: 975},
		{LaborCost: 260, MaterialsCost: 0, TotalCost: 260},
	})
	if totals.MaterialsTotal != 475 {
		t.Fatalf("expected materials total 475, got %v", totals.MaterialsTotal)
	}
	if totals.LaborTotal != 760 {
		t.Fatalf("expected labor total 760, got %v", totals.LaborTotal)
	}
	if totals.TotalAmount != totals.MaterialsTotal+totals.LaborTotal {
		t.Fatalf("total %v != materials %v + labor %v", totals.TotalAmount, totals.MaterialsTotal, totals.LaborTotal)
	}
}

func TestQuoteTotals_Idempotent(t *testing.T) {
	children := []SubQuoteCosts{
		{LaborCost: 123.45, MaterialsCost: 67.89, TotalCost: 191.34},
		{LaborCost: 10.1, MaterialsCost: 20.2, TotalCost: 30.3},
	}
	first := QuoteTotals(children)
	second := QuoteTotals(children)
	if first != second {
		t.Fatalf("recomputation changed totals: %+v vs %+v", first, second)
	}
}

func TestQuoteTotals_Empty(t *testing.T) {
	totals := QuoteTotals(nil)
	if totals.MaterialsTotal != 0 || totals.LaborTotal != 0 || totals.TotalAmount != 0 {
		t.Fatalf("expected zero totals for empty quote, got %+v", totals)
	}
}
