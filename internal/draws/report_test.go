package draws

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestProbabilityListingDropsZeroBucket(t *testing.T) {
	probs := map[int]float64{0: 0, 1: 50, 2: 0, 10: 50}
	got := ProbabilityListing(probs)
	want := "1: 50.00%; 2: 0.00%; 10: 50.00%"
	if got != want {
		t.Fatalf("listing = %q, want %q", got, want)
	}
	if _, ok := probs[0]; !ok {
		t.Fatalf("listing must not mutate the mapping")
	}
}

func TestProbabilityEntriesKeepsNonZeroBucketZero(t *testing.T) {
	// bucket 0 is only hidden while its percentage is zero
	entries := ProbabilityEntries(map[int]float64{0: 1.5, 3: 0})
	if len(entries) != 2 || entries[0].Value != 0 {
		t.Fatalf("entries = %+v", entries)
	}
}

func TestStatsReportJSON(t *testing.T) {
	ds := GameDataset{GameName: "G", LatestDate: "01/02/2024", Rows: 1}
	rep := FormatReport(ds,
		ComputeFrequencies(ns(1, 2, 3, 4), 5),
		ComputeFrequencies(ns(5), 5),
		[]Number{N(1), Invalid}, ns(5))
	b, err := json.Marshal(rep)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	s := string(b)
	if !strings.Contains(s, `"predicted_main_numbers":[1,null]`) {
		t.Fatalf("invalid number should encode as null: %s", s)
	}
	if !strings.Contains(s, `"bonus_probabilities":{"0":0,"1":0,"2":0,"3":0,"4":0,"5":100}`) {
		t.Fatalf("unexpected bonus probabilities: %s", s)
	}
	var back StatsReport
	if err := json.Unmarshal(b, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if back.PredictedMainNumbers[1].Valid {
		t.Fatalf("null should decode to the invalid sentinel")
	}
}

func TestJoinNumbers(t *testing.T) {
	if got := JoinNumbers([]Number{N(3), Invalid, N(12)}); got != "3, NaN, 12" {
		t.Fatalf("got %q", got)
	}
}
