package entities

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Money - сумма в центавос (1/100 реала).
type Money int64

func (m Money) String() string {
	sign := ""
	v := int64(m)
	if v < 0 {
		sign = "-"
		v = -v
	}
	return fmt.Sprintf("%s%d.%02d", sign, v/100, v%100)
}

// maxMoneyUnits - наибольшая целая часть, при которой сумма в центавос помещается в int64.
const maxMoneyUnits = (math.MaxInt64 - 99) / 100

// ParseMoney разбирает "12.50", "12,50" или "12".
// Допустим только один ведущий минус, остальное - цифры ASCII.
func ParseMoney(s string) (Money, error) {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", "."))
	if s == "" {
		return 0, fmt.Errorf("parse money: empty value")
	}

	negative := strings.HasPrefix(s, "-")
	whole, frac, hasFrac := strings.Cut(strings.TrimPrefix(s, "-"), ".")
	if !isDigits(whole) {
		return 0, fmt.Errorf("parse money %q: invalid whole part", s)
	}
	if hasFrac && (len(frac) == 0 || len(frac) > 2 || !isDigits(frac)) {
		return 0, fmt.Errorf("parse money %q: expected at most 2 decimal digits", s)
	}
	for len(frac) < 2 {
		frac += "0"
	}

	units, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse money %q: %w", s, err)
	}
	if units > maxMoneyUnits {
		return 0, fmt.Errorf("parse money %q: value out of range", s)
	}
	cents, err := strconv.ParseInt(frac, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse money %q: %w", s, err)
	}

	total := units*100 + cents
	if negative {
		total = -total
	}
	return Money(total), nil
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
