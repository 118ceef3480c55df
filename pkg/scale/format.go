package scale

import (
	"strconv"
	"strings"
)

// formatG formats v with the given number of significant digits, trimming
// trailing zeros. formatG(0.30000000000000004, 1) is "0.3".
func formatG(v float64, digits int) string {
	s := strconv.FormatFloat(v, 'g', digits, 64)
	if strings.ContainsAny(s, "e") {
		return s
	}
	if strings.Contains(s, ".") {
		s = strings.TrimRight(s, "0")
		s = strings.TrimSuffix(s, ".")
	}
	return s
}

// FormatValue formats a record value for display with seven significant
// digits, the precision of the tooltip.
func FormatValue(v float64) string {
	return formatG(v, 7)
}
