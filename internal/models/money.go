package models

import (
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// Cents is an amount of money in minor currency units. All arithmetic on
// prices and totals happens on Cents; decimals only appear when an amount is
// parsed from or written to JSON, flags or the terminal.
type Cents int64

// NewCents rounds d to the nearest cent.
func NewCents(d decimal.Decimal) Cents {
	return Cents(d.Shift(2).Round(0).IntPart())
}

var (
	maxCents = decimal.NewFromInt(math.MaxInt64)
	minCents = decimal.NewFromInt(math.MinInt64)
)

// ParseCents parses a decimal amount such as "149.99". Amounts whose cent
// value does not fit in an int64 are rejected.
func ParseCents(s string) (Cents, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	shifted := d.Shift(2).Round(0)
	if shifted.GreaterThan(maxCents) || shifted.LessThan(minCents) {
		return 0, fmt.Errorf("invalid amount %q: out of range", s)
	}
	return Cents(shifted.IntPart()), nil
}

// MustCents is ParseCents for literals known to be valid.
func MustCents(s string) Cents {
	c, err := ParseCents(s)
	if err != nil {
		panic(err)
	}
	return c
}

// Decimal returns c as a decimal with two places.
func (c Cents) Decimal() decimal.Decimal {
	return decimal.New(int64(c), -2)
}

func (c Cents) String() string {
	return c.Decimal().StringFixed(2)
}

// Times multiplies c by a quantity.
func (c Cents) Times(qty int) Cents {
	return c * Cents(qty)
}

// MarshalJSON writes c as a bare JSON number with two decimals, the layout
// the storefront has always persisted prices in.
func (c Cents) MarshalJSON() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalJSON accepts a JSON number or a quoted decimal string.
func (c *Cents) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "null" || s == `""` {
		*c = 0
		return nil
	}
	parsed, err := ParseCents(strings.Trim(s, `"`))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
