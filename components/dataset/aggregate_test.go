package dataset

import "testing"

func TestAggregateSum(t *testing.T) {
	result := Aggregate([]string{"10", "20", "5"}, AggSum)
	if result.Value != 35 {
		t.Fatalf("expected 35, got %v", result.Value)
	}
	if result.ExcludedRows != 0 {
		t.Fatalf("expected no exclusions, got %d", result.ExcludedRows)
	}
}

func TestAggregateDropsNonNumeric(t *testing.T) {
	result := Aggregate([]string{"10", "oops", "20", ""}, AggAvg)
	if result.Value != 15 {
		t.Fatalf("expected avg over valid values, got %v", result.Value)
	}
	if result.ExcludedRows != 2 {
		t.Fatalf("expected 2 excluded rows, got %d", result.ExcludedRows)
	}
}

func TestAggregateCountOnlyNumeric(t *testing.T) {
	result := Aggregate([]string{"1", "x", "3"}, AggCount)
	if result.Value != 2 {
		t.Fatalf("expected count of numeric-coercible rows, got %v", result.Value)
	}
}

func TestAggregateMinMax(t *testing.T) {
	if got := Aggregate([]string{"7", "2", "9"}, AggMin).Value; got != 2 {
		t.Fatalf("expected min 2, got %v", got)
	}
	if got := Aggregate([]string{"7", "2", "9"}, AggMax).Value; got != 9 {
		t.Fatalf("expected max 9, got %v", got)
	}
}

func TestAggregateEmptyYieldsZero(t *testing.T) {
	if got := Aggregate(nil, AggSum).Value; got != 0 {
		t.Fatalf("expected 0 over no values, got %v", got)
	}
	if got := Aggregate([]string{"nope"}, AggMax).Value; got != 0 {
		t.Fatalf("expected 0 over zero valid values, got %v", got)
	}
}

func TestAggregateDefaultsToAvg(t *testing.T) {
	if got := AggregateNumbers([]float64{2, 4}, Aggregation("unknown")); got != 3 {
		t.Fatalf("expected avg fallback, got %v", got)
	}
}
