package draws

import "math"

// FrequencyDistribution tallies how often each value in [1, Range] occurs.
// Counts and Percentages are indexed by value; index 0 is never counted.
type FrequencyDistribution struct {
	Range       int
	Counts      []int
	Percentages []float64
	// Total is the length of the source sequence, invalid entries included.
	Total int
}

// ComputeFrequencies buckets values into [1, rng] and converts the counts to
// percentages of len(values), rounded to two decimals. Values outside the
// range, including invalid ones, are ignored but still count toward Total.
func ComputeFrequencies(values []Number, rng int) FrequencyDistribution {
	if rng < 0 {
		rng = 0
	}
	fd := FrequencyDistribution{
		Range:       rng,
		Counts:      make([]int, rng+1),
		Percentages: make([]float64, rng+1),
		Total:       len(values),
	}
	for _, v := range values {
		if v.InRange(rng) {
			fd.Counts[v.Value]++
		}
	}
	if fd.Total == 0 {
		return fd
	}
	for i, c := range fd.Counts {
		fd.Percentages[i] = round2(float64(c) / float64(fd.Total) * 100)
	}
	return fd
}

// Counted is the number of source values that landed in a bucket.
func (fd FrequencyDistribution) Counted() int {
	n := 0
	for _, c := range fd.Counts {
		n += c
	}
	return n
}

// Map returns value -> percentage for every bucket, 0 included.
func (fd FrequencyDistribution) Map() map[int]float64 {
	out := make(map[int]float64, len(fd.Percentages))
	for i, p := range fd.Percentages {
		out[i] = p
	}
	return out
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}
