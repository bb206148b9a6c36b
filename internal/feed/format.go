package feed

import (
	"strconv"
	"strings"
)

// FormatNumber renders counts compactly: 999, 1.2K, 12K, 3.4M.
func FormatNumber(n int) string {
	if n < 0 {
		return "-" + FormatNumber(-n)
	}
	switch {
	case n < 1_000:
		return strconv.Itoa(n)
	case n < 1_000_000:
		return compact(float64(n)/1_000, "K")
	case n < 1_000_000_000:
		return compact(float64(n)/1_000_000, "M")
	default:
		return compact(float64(n)/1_000_000_000, "B")
	}
}

func compact(v float64, suffix string) string {
	prec := 1
	if v >= 10 {
		prec = 0
	}
	s := strconv.FormatFloat(v, 'f', prec, 64)
	s = strings.TrimSuffix(s, ".0")
	return s + suffix
}
