package draws

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Number is a parsed numeric cell. A cell that does not hold an integer is
// kept as an invalid Number instead of being coerced to zero.
type Number struct {
	Value int
	Valid bool
}

// Invalid is the sentinel for a cell that failed numeric parsing.
var Invalid = Number{}

// N returns a valid Number.
func N(v int) Number { return Number{Value: v, Valid: true} }

// InRange reports whether n is valid and within [1, max].
func (n Number) InRange(max int) bool {
	return n.Valid && n.Value >= 1 && n.Value <= max
}

func (n Number) String() string {
	if !n.Valid {
		return "NaN"
	}
	return strconv.Itoa(n.Value)
}

// MarshalJSON encodes invalid numbers as null.
func (n Number) MarshalJSON() ([]byte, error) {
	if !n.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(n.Value)
}

// UnmarshalJSON accepts an integer or null.
func (n *Number) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*n = Invalid
		return nil
	}
	var v int
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	*n = N(v)
	return nil
}

// MarshalYAML encodes invalid numbers as null.
func (n Number) MarshalYAML() (interface{}, error) {
	if !n.Valid {
		return nil, nil
	}
	return n.Value, nil
}

// ParseNumber parses a whole cell. Surrounding whitespace is ignored and
// integral decimals such as "7.0" are accepted; anything else, including
// values outside the int32 range, is Invalid.
func ParseNumber(s string) Number {
	s = strings.TrimSpace(s)
	if s == "" {
		return Invalid
	}
	if v, err := strconv.ParseInt(s, 10, 32); err == nil {
		return N(int(v))
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return Invalid
	}
	if f > math.MaxInt32 || f < math.MinInt32 {
		return Invalid
	}
	return N(int(f))
}

// parseLeadingInt reads an optionally signed base-10 integer prefix, so
// " 12abc" yields 12 while "abc" is Invalid.
func parseLeadingInt(s string) Number {
	s = strings.TrimSpace(s)
	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return Invalid
	}
	v, err := strconv.Atoi(s[:end])
	if err != nil {
		return Invalid
	}
	return N(v)
}
