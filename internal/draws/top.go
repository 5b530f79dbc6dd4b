package draws

import "sort"

// MostFrequent returns up to k distinct values ordered by descending count.
// Equal counts keep the order in which values were first seen. Invalid
// numbers form a single bucket of their own and can be selected.
func MostFrequent(values []Number, k int) []Number {
	if k <= 0 || len(values) == 0 {
		return []Number{}
	}
	type item struct {
		n     Number
		count int
	}
	index := make(map[Number]int)
	var items []item
	for _, v := range values {
		if !v.Valid {
			v = Invalid
		}
		if i, ok := index[v]; ok {
			items[i].count++
			continue
		}
		index[v] = len(items)
		items = append(items, item{n: v, count: 1})
	}
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].count > items[j].count
	})
	if k > len(items) {
		k = len(items)
	}
	out := make([]Number, 0, k)
	for i := 0; i < k; i++ {
		out = append(out, items[i].n)
	}
	return out
}

// ValidOnly drops invalid entries, preserving order.
func ValidOnly(values []Number) []Number {
	out := make([]Number, 0, len(values))
	for _, v := range values {
		if v.Valid {
			out = append(out, v)
		}
	}
	return out
}
