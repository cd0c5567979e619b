package document

import (
	"math"
	"strconv"
	"strings"
)

// formatNumber renders a JSON number literal for the CSV. Integer literals
// come out unchanged (bar "-0"). Anything with a fraction or exponent is
// read as a float64 and written in its shortest round-trip form: plain
// decimal with at least one fractional digit while the decimal point sits
// within 16 places, scientific with a signed two-digit exponent beyond that.
func formatNumber(literal string) string {
	if !strings.ContainsAny(literal, ".eE") {
		if literal == "-0" {
			return "0"
		}
		return literal
	}

	f, err := strconv.ParseFloat(literal, 64)
	if math.IsInf(f, 0) {
		if f > 0 {
			return "inf"
		}
		return "-inf"
	}
	if err != nil {
		return literal
	}

	// d.ddde±XX
	short := strconv.FormatFloat(f, 'e', -1, 64)
	sign := ""
	if short[0] == '-' {
		sign, short = "-", short[1:]
	}
	mantissa, exp, _ := strings.Cut(short, "e")
	digits := strings.Replace(mantissa, ".", "", 1)
	e, _ := strconv.Atoi(exp)
	point := e + 1

	if point <= -4 || point > 16 {
		out := digits[:1]
		if len(digits) > 1 {
			out += "." + digits[1:]
		}
		expSign := "+"
		if e < 0 {
			expSign, e = "-", -e
		}
		expDigits := strconv.Itoa(e)
		if len(expDigits) < 2 {
			expDigits = "0" + expDigits
		}
		return sign + out + "e" + expSign + expDigits
	}

	switch {
	case point <= 0:
		return sign + "0." + strings.Repeat("0", -point) + digits
	case point >= len(digits):
		return sign + digits + strings.Repeat("0", point-len(digits)) + ".0"
	default:
		return sign + digits[:point] + "." + digits[point:]
	}
}
