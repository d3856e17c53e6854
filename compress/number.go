package compress

import "strings"

// Numeric minification is pure text surgery, never a float round-trip, so
// it cannot lose precision.

// zeroDroppableUnits are length units where a zero value means the same
// with and without the unit. Times, angles and percentages keep theirs.
var zeroDroppableUnits = map[string]bool{
	"px": true, "em": true, "rem": true, "ex": true, "ch": true,
	"vw": true, "vh": true, "vmin": true, "vmax": true,
	"cm": true, "mm": true, "in": true, "pt": true, "pc": true, "q": true,
}

// compressNumber rewrites numeric text to its shortest equivalent form:
// no plus sign, no leading integer zero, no trailing fraction zeros.
// Scientific notation is left alone.
func compressNumber(s string) string {
	if s == "" || strings.ContainsAny(s, "eE") {
		return s
	}

	neg := false
	switch s[0] {
	case '+':
		s = s[1:]
	case '-':
		neg = true
		s = s[1:]
	}

	intPart, fracPart, hasDot := strings.Cut(s, ".")
	intPart = strings.TrimLeft(intPart, "0")
	if hasDot {
		fracPart = strings.TrimRight(fracPart, "0")
	}

	out := intPart
	if fracPart != "" {
		out += "." + fracPart
	}
	if out == "" {
		return "0"
	}
	if neg {
		out = "-" + out
	}
	return out
}

// splitDimension separates the numeric and unit parts of a dimension
// token ("1.5px" -> "1.5", "px").
func splitDimension(s string) (num, unit string) {
	i := len(s)
	for i > 0 {
		c := s[i-1]
		if c >= '0' && c <= '9' || c == '.' {
			break
		}
		i--
	}
	return s[:i], s[i:]
}

// compressDimension returns the shortest form of a dimension token and
// whether it collapsed to a bare number. topLevel guards the zero-unit
// drop: inside functions (calc and friends) units are grammatically
// significant even on zero.
func compressDimension(s string, topLevel bool) (text string, bare bool) {
	num, unit := splitDimension(s)
	num = compressNumber(num)
	if num == "0" && topLevel && zeroDroppableUnits[strings.ToLower(unit)] {
		return "0", true
	}
	return num + unit, false
}
