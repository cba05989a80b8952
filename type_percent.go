package tradelens

import "fmt"

// Percent is a percentage value where 5.0 renders as "5.00%". Renderers use
// it to format fractional returns and rates once scaled by 100.
type Percent float64

// Equal compares two percentages with a fixed tolerance, since they usually
// come out of float arithmetic.
func (p Percent) Equal(q Percent) bool {
	const precision = 0.0001
	diff := p - q
	if diff < 0 {
		diff = -diff
	}
	return diff < precision
}

func (p Percent) String() string {
	return fmt.Sprintf("%.2f%%", p)
}

// SignedString renders with an explicit sign, and a plain dash when zero so
// flat rows read as empty in tables.
func (p Percent) SignedString() string {
	res := fmt.Sprintf("%+.2f%%", p)
	if res == "+0.00%" {
		return "-"
	}
	return res
}
