package draws

import (
	"reflect"
	"testing"
)

func TestMostFrequent(t *testing.T) {
	cases := []struct {
		name   string
		values []Number
		k      int
		want   []Number
	}{
		{"tie keeps first seen", ns(5, 5, 9, 9), 1, ns(5)},
		{"tie order later value first", ns(9, 5, 5, 9), 2, ns(9, 5)},
		{"count wins", ns(1, 2, 2, 3, 3, 3), 2, ns(3, 2)},
		{"fewer distinct than k", ns(4, 4, 8), 5, ns(4, 8)},
		{"empty", nil, 3, []Number{}},
		{"zero k", ns(1, 2), 0, []Number{}},
		{"invalid is its own bucket", []Number{Invalid, Invalid, N(3)}, 1, []Number{Invalid}},
	}
	for _, c := range cases {
		got := MostFrequent(c.values, c.k)
		if !reflect.DeepEqual(got, c.want) {
			t.Errorf("%s: got %v, want %v", c.name, got, c.want)
		}
	}
}

func TestMostFrequentLengthBound(t *testing.T) {
	values := ns(1, 2, 3, 1, 2, 1, 7, 8)
	distinct := 5
	for k := 0; k <= 8; k++ {
		got := MostFrequent(values, k)
		want := k
		if want > distinct {
			want = distinct
		}
		if len(got) != want {
			t.Fatalf("k=%d: len=%d want %d", k, len(got), want)
		}
	}
}

func TestValidOnly(t *testing.T) {
	got := ValidOnly([]Number{N(1), Invalid, N(2)})
	if !reflect.DeepEqual(got, ns(1, 2)) {
		t.Fatalf("got %v", got)
	}
}
