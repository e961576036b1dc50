// Package chart converts financial display strings into chart-ready numbers.
package chart

import (
	"strconv"
	"strings"
)

// ParseFinancialValue converts financial shorthand like "100B", "$20.5M" or
// "15%" into a numeric magnitude. Numeric inputs pass through unchanged.
// Anything unparseable normalizes to 0: charts must never crash on a single
// bad field, so the lenient fallback is deliberate.
//
// Suffix precedence: 'b' (x1e9) is checked before 'm' (x1e6), first match
// wins. A value containing both is treated as billions. Thousands ("10K")
// are not supported; such values fall through to 0.
func ParseFinancialValue(value interface{}) float64 {
	switch v := value.(type) {
	case float64:
		return v
	case float32:
		return float64(v)
	case int:
		return float64(v)
	case int64:
		return float64(v)
	case string:
		return parseString(v)
	default:
		return 0
	}
}

func parseString(s string) float64 {
	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, "$", "")
	s = strings.ReplaceAll(s, ",", "")
	s = strings.ReplaceAll(s, "%", "")

	multiplier := 1.0
	if strings.Contains(s, "b") {
		multiplier = 1_000_000_000
		s = strings.ReplaceAll(s, "b", "")
	} else if strings.Contains(s, "m") {
		multiplier = 1_000_000
		s = strings.ReplaceAll(s, "m", "")
	}

	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return f * multiplier
}
