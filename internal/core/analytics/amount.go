package analytics

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// NormalizeAmount turns a stored amount into a non-negative number.
//
// Strings are reduced to their digits and decimal points and parsed as a
// leading float ("$1,200.50" -> 1200.50), so a sign is dropped. Numbers get
// the same treatment: -50 and "-$50" both normalize to 50. Anything that does
// not yield a finite number normalizes to 0.
func NormalizeAmount(v interface{}) float64 {
	switch a := v.(type) {
	case nil:
		return 0
	case float64:
		return finite(math.Abs(a))
	case float32:
		return finite(math.Abs(float64(a)))
	case int:
		return math.Abs(float64(a))
	case int64:
		return math.Abs(float64(a))
	case json.Number:
		return NormalizeAmountString(a.String())
	case decimal.Decimal:
		return a.Abs().InexactFloat64()
	case string:
		return NormalizeAmountString(a)
	default:
		return 0
	}
}

// NormalizeAmountString parses a display-formatted currency string
func NormalizeAmountString(s string) float64 {
	var b strings.Builder
	seenDot := false
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.':
			// a second point ends the number, as a leading-float parse would
			if seenDot {
				return parseOrZero(b.String())
			}
			seenDot = true
			b.WriteRune(r)
		}
	}
	return parseOrZero(b.String())
}

func parseOrZero(s string) float64 {
	s = strings.TrimSuffix(s, ".")
	if s == "" || s == "." {
		return 0
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return finite(f)
}

func finite(f float64) float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

var currencySymbols = map[string]string{
	"USD": "$",
	"EUR": "€",
	"GBP": "£",
	"JPY": "¥",
	"INR": "₹",
	"CAD": "C$",
	"AUD": "A$",
}

// CurrencySymbol returns the display symbol for an ISO currency code.
// Unknown codes are returned with a trailing space.
func CurrencySymbol(code string) string {
	code = strings.ToUpper(strings.TrimSpace(code))
	if sym, ok := currencySymbols[code]; ok {
		return sym
	}
	if code == "" {
		return "$"
	}
	return code + " "
}

// SupportedCurrency reports whether code has a known symbol
func SupportedCurrency(code string) bool {
	_, ok := currencySymbols[strings.ToUpper(strings.TrimSpace(code))]
	return ok
}

// FormatMoney renders an amount with its currency symbol and thousands separators
func FormatMoney(amount float64, currency string) string {
	s := FormatNumber(amount)
	if strings.HasPrefix(s, "-") {
		return "-" + CurrencySymbol(currency) + s[1:]
	}
	return CurrencySymbol(currency) + s
}

// FormatNumber renders an amount with two decimals and thousands separators
func FormatNumber(amount float64) string {
	d := decimal.NewFromFloat(amount).Round(2)
	neg := d.IsNegative()
	s := d.Abs().StringFixed(2)

	intPart, frac := s, ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		intPart, frac = s[:i], s[i:]
	}

	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	b.WriteString(frac)
	return b.String()
}
