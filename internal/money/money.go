// Package money converts between decimal amounts and integer minor units (cents)
// and formats minor units for display.
package money

import (
	"errors"
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

var ErrInvalidAmount = errors.New("invalid amount")

type Locale struct {
	Tag       string
	Symbol    string
	Thousands string
	Decimal   string
}

var (
	PtBR = Locale{Tag: "pt-BR", Symbol: "R$", Thousands: ".", Decimal: ","}
	EnUS = Locale{Tag: "en-US", Symbol: "$", Thousands: ",", Decimal: "."}

	Default = PtBR
)

func LocaleFor(tag string) Locale {
	switch strings.ToLower(tag) {
	case "en-us", "en_us", "en":
		return EnUS
	default:
		return PtBR
	}
}

// ToMinorUnits rounds v to the nearest cent, half away from zero.
func ToMinorUnits(v float64) (int64, error) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, ErrInvalidAmount
	}
	return FromDecimal(decimal.NewFromFloat(v)), nil
}

func FromDecimal(d decimal.Decimal) int64 {
	return d.Shift(2).Round(0).IntPart()
}

// Parse accepts "49.90", "49,90", "1.234,56" and "1.234.567" style input with
// an optional leading minus. At most two decimal places are allowed, so a lone
// dot followed by three digits ("1.234") is rejected as ambiguous.
func Parse(s string) (int64, error) {
	s = strings.TrimSpace(s)
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimSpace(strings.TrimPrefix(s, "-"))
	s = strings.TrimSpace(strings.TrimPrefix(s, PtBR.Symbol))

	var intPart, frac string
	switch dots := strings.Count(s, "."); {
	case strings.Contains(s, ","):
		var ok bool
		intPart, frac, ok = strings.Cut(s, ",")
		if !ok || frac == "" {
			return 0, ErrInvalidAmount
		}
	case dots == 1:
		intPart, frac, _ = strings.Cut(s, ".")
		if len(frac) == 3 || frac == "" {
			return 0, ErrInvalidAmount
		}
	default:
		intPart = s
	}
	if !grouped(intPart) || !digits(frac) || len(frac) > 2 {
		return 0, ErrInvalidAmount
	}

	num := strings.ReplaceAll(intPart, ".", "")
	if frac != "" {
		num += "." + frac
	}
	d, err := decimal.NewFromString(num)
	if err != nil {
		return 0, ErrInvalidAmount
	}
	if d.Shift(2).GreaterThan(decimal.NewFromInt(math.MaxInt64)) {
		return 0, ErrInvalidAmount
	}
	if neg {
		d = d.Neg()
	}
	return FromDecimal(d), nil
}

// grouped reports whether s is a non-empty digit run, optionally split by dots
// into thousands groups.
func grouped(s string) bool {
	if s == "" {
		return false
	}
	parts := strings.Split(s, ".")
	for i, p := range parts {
		if p == "" || !digits(p) {
			return false
		}
		if len(parts) > 1 && ((i == 0 && len(p) > 3) || (i > 0 && len(p) != 3)) {
			return false
		}
	}
	return true
}

func digits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func ToDecimal(minor int64) decimal.Decimal {
	return decimal.New(minor, -2)
}

func Format(minor int64, loc Locale) string {
	d := ToDecimal(minor)
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Abs()
	}
	fixed := d.StringFixed(2)
	intPart, frac, _ := strings.Cut(fixed, ".")
	return sign + loc.Symbol + " " + group(intPart, loc.Thousands) + loc.Decimal + frac
}

func group(digits, sep string) string {
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
			b.WriteString(sep)
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}
