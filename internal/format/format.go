// =============================================================================
// Order Code Filter - Value Formatting
// =============================================================================
//
// This module converts cell values into the text shown to the user.
//
// RULES:
//   1. Absent values (nil, NaN, empty text) display as "".
//   2. Values in a currency column are parsed as numbers and shown as
//      "$" + grouped thousands + two fraction digits: 1234.5 -> "$1,234.50".
//      A value that does not parse is shown unchanged. Floats and numeric
//      text are rounded as binary doubles, so 2.675 -> "$2.67" and
//      0.125 -> "$0.12". Decimal values round half away from zero.
//   3. Every other value is shown as its text form.
//
// Formatting is pure and never fails.
//
// =============================================================================

package format

import (
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/ginjaninja78/order-code-filter/internal/table"
)

// CurrencySymbol prefixes every formatted amount.
const CurrencySymbol = "$"

// Value returns the display form of v.
func Value(v any, isCurrency bool) string {
	if table.IsMissing(v) {
		return ""
	}
	text := table.Text(v)
	if text == "" {
		return ""
	}
	if !isCurrency {
		return text
	}

	amount, ok := parseAmount(v)
	if !ok {
		return text
	}
	return Currency(amount)
}

// Currency renders an amount as "$1,234.50". Negative amounts keep the sign
// after the symbol ("$-1,234.50").
func Currency(amount decimal.Decimal) string {
	fixed := amount.StringFixed(2)

	sign := ""
	if strings.HasPrefix(fixed, "-") {
		sign = "-"
		fixed = fixed[1:]
	}

	whole, frac, _ := strings.Cut(fixed, ".")
	return CurrencySymbol + sign + groupThousands(whole) + "." + frac
}

// parseAmount converts a cell value to a decimal amount.
func parseAmount(v any) (decimal.Decimal, bool) {
	switch x := v.(type) {
	case float64:
		return fromFloat(x)
	case int:
		return decimal.NewFromInt(int64(x)), true
	case int64:
		return decimal.NewFromInt(x), true
	case decimal.Decimal:
		return x, true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
		if err != nil {
			return decimal.Decimal{}, false
		}
		return fromFloat(f)
	default:
		return decimal.Decimal{}, false
	}
}

// fromFloat rounds x to cents on its exact binary value. Infinities and NaN
// are not amounts.
func fromFloat(x float64) (decimal.Decimal, bool) {
	if math.IsInf(x, 0) || math.IsNaN(x) {
		return decimal.Decimal{}, false
	}
	d, err := decimal.NewFromString(strconv.FormatFloat(x, 'f', 2, 64))
	if err != nil {
		return decimal.Decimal{}, false
	}
	return d, true
}

// groupThousands inserts a comma every three digits from the right.
func groupThousands(digits string) string {
	if len(digits) <= 3 {
		return digits
	}

	var b strings.Builder
	head := len(digits) % 3
	if head > 0 {
		b.WriteString(digits[:head])
	}
	for i := head; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}
