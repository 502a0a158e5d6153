package domain

import "testing"

func sampleEstimates() []CategoryEstimate {
	return []CategoryEstimate{
		{
			WorkCategory:  "painting",
			LaborHours:    10,
			LaborRate:     45,
			LaborCost:     450,
			MaterialsCost: 120.5,
			TotalCost:     570.5,
			Materials: []GeneratedMaterial{
				{Name: "wall paint", Quantity: 5, Unit: "liter", UnitPrice: 24.1, TotalPrice: 120.5},
			},
		},
		{
			WorkCategory:  "flooring",
			LaborHours:    16,
			LaborRate:     50,
			LaborCost:     800,
			MaterialsCost: 640,
			TotalCost:     1440,
			Materials: []GeneratedMaterial{
				{Name: "laminate", Quantity: 20, Unit: "m2", UnitPrice: 28, TotalPrice: 560},
				{Name: "underlay", Quantity: 20, Unit: "m2", UnitPrice: 4, TotalPrice: 80},
			},
		},
		{
			WorkCategory:  "electrical",
			LaborHours:    6,
			LaborRate:     60,
			LaborCost:     360,
			MaterialsCost: 95.25,
			TotalCost:     455.25,
			Materials: []GeneratedMaterial{
				{Name: "outlets", Quantity: 5, Unit: "piece", UnitPrice: 19.05, TotalPrice: 95.25},
			},
		},
	}
}

func TestGenerateSubQuotes_PriorityFollowsInputOrder(t *testing.T) {
	estimates := sampleEstimates()
	generated := GenerateSubQuotes(estimates)
	if len(generated) != len(estimates) {
		t.Fatalf("expected %d sub-quotes, got %d", len(estimates), len(generated))
	}
	for i, sq := range generated {
		if sq.Priority != i+1 {
			t.Fatalf("sub-quote %d: expected priority %d, got %d", i, i+1, sq.Priority)
		}
		if sq.WorkCategory != estimates[i].WorkCategory {
			t.Fatalf("sub-quote %d: expected category %q, got %q", i, estimates[i].WorkCategory, sq.WorkCategory)
		}
		if sq.Title != SubQuoteTitle(estimates[i].WorkCategory) {
			t.Fatalf("sub-quote %d: unexpected title %q", i, sq.Title)
		}
	}
}

func TestGenerateSubQuotes_RollUpMatchesEstimateTotal(t *testing.T) {
	estimates := sampleEstimates()

	var expected float64
	for _, e := range estimates {
		expected += e.TotalCost
	}
	expected = Round2(expected)

	costs := make([]SubQuoteCosts, 0, len(estimates))
	for _, sq := range GenerateSubQuotes(estimates) {
		var lineTotals []float64
		for _, m := range sq.Materials {
			lineTotals = append(lineTotals, m.TotalPrice)
		}
		costs = append(costs, SubQuoteTotals(sq.LaborHours, sq.LaborRate, lineTotals))
	}

	totals := QuoteTotals(costs)
	if totals.TotalAmount != expected {
		t.Fatalf("expected quote total %v, got %v", expected, totals.TotalAmount)
	}
}

func TestGenerateSubQuotes_Empty(t *testing.T) {
	if got := GenerateSubQuotes(nil); len(got) != 0 {
		t.Fatalf("expected no sub-quotes, got %d", len(got))
	}
}

func TestSubQuoteTitle(t *testing.T) {
	if got := SubQuoteTitle("plumbing"); got != "plumbing works" {
		t.Fatalf("unexpected title %q", got)
	}
}
