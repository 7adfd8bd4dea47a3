package dataset

// AggregateResult carries an aggregate value plus how many rows were
// excluded because they did not coerce to a number. Callers that used to
// infer silent drops can now observe them directly.
type AggregateResult struct {
	Value        float64 `json:"value"`
	ExcludedRows int     `json:"excludedRows"`
}

// Aggregate reduces raw cell values with the given aggregation.
// Non-numeric values are dropped from the aggregate rather than
// aborting it; an aggregate over zero valid values yields 0.
func Aggregate(values []string, agg Aggregation) AggregateResult {
	var result AggregateResult
	nums := make([]float64, 0, len(values))
	for _, value := range values {
		n, ok := ParseNumber(value)
		if !ok {
			result.ExcludedRows++
			continue
		}
		nums = append(nums, n)
	}
	result.Value = reduce(nums, agg)
	return result
}

// AggregateNumbers reduces already-coerced values with the given aggregation.
func AggregateNumbers(nums []float64, agg Aggregation) float64 {
	return reduce(nums, agg)
}

func reduce(nums []float64, agg Aggregation) float64 {
	if len(nums) == 0 {
		return 0
	}
	switch agg {
	case AggCount:
		return float64(len(nums))
	case AggMin:
		min := nums[0]
		for _, n := range nums[1:] {
			if n < min {
				min = n
			}
		}
		return min
	case AggMax:
		max := nums[0]
		for _, n := range nums[1:] {
			if n > max {
				max = n
			}
		}
		return max
	case AggSum:
		return sum(nums)
	case AggAvg:
		return sum(nums) / float64(len(nums))
	default:
		return sum(nums) / float64(len(nums))
	}
}

func sum(nums []float64) float64 {
	total := 0.0
	for _, n := range nums {
		total += n
	}
	return total
}
