// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package money provides a currency amount with 2-digit precision.

Amounts are exact decimals (shopspring/decimal) so that cart and order totals
never drift the way binary floats do. Storage keeps whole cents; the JSON form
is a number with exactly two decimals (e.g. 160.00).

Rounding:

  - Arithmetic ([Amount.Add], [Amount.Times]) is exact.
  - [Amount.Round] rounds half-up (away from zero) to 2 places. Callers round
    once, on the final total.
*/
package money

import (
	"fmt"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// Places is the currency precision.
const Places = 2

// Amount is an exact currency value.
type Amount struct {
	value decimal.Decimal
}

// Zero is the empty amount.
var Zero = Amount{value: decimal.Zero}

// # Constructors

// FromCents builds an amount from whole cents.
func FromCents(cents int64) Amount {
	return Amount{value: decimal.New(cents, -Places)}
}

// Parse reads a decimal string such as "65" or "65.00".
func Parse(text string) (Amount, error) {
	value, err := decimal.NewFromString(text)
	if err != nil {
		return Zero, fmt.Errorf("money: invalid amount %q: %w", text, err)
	}
	return Amount{value: value}, nil
}

// MustParse is [Parse] for literals known to be valid.
func MustParse(text string) Amount {
	amount, err := Parse(text)
	if err != nil {
		panic(err)
	}
	return amount
}

// # Arithmetic

// Add returns a + other without rounding.
func (a Amount) Add(other Amount) Amount {
	return Amount{value: a.value.Add(other.value)}
}

// Times returns a multiplied by a whole quantity without rounding.
func (a Amount) Times(quantity int) Amount {
	return Amount{value: a.value.Mul(decimal.NewFromInt(int64(quantity)))}
}

// Round rounds half-up to [Places] decimals.
func (a Amount) Round() Amount {
	return Amount{value: a.value.Round(Places)}
}

// Cents returns the rounded amount in whole cents.
func (a Amount) Cents() int64 {
	return a.value.Round(Places).Shift(Places).IntPart()
}

// # Comparison

func (a Amount) IsNegative() bool { return a.value.IsNegative() }

func (a Amount) IsZero() bool { return a.value.IsZero() }

// Equal compares values, ignoring representation (65 == 65.00).
func (a Amount) Equal(other Amount) bool { return a.value.Equal(other.value) }

// HasSubCents reports whether the amount carries more than [Places] decimals.
func (a Amount) HasSubCents() bool {
	return !a.value.Equal(a.value.Round(Places))
}

// String renders the amount with exactly two decimals.
func (a Amount) String() string {
	return a.value.StringFixed(Places)
}

// # Encoding

// MarshalJSON writes the amount as a JSON number with two decimals.
func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalJSON accepts a JSON number or a quoted decimal string.
func (a *Amount) UnmarshalJSON(data []byte) error {
	var value decimal.Decimal
	if err := value.UnmarshalJSON(data); err != nil {
		return fmt.Errorf("money: %w", err)
	}
	a.value = value
	return nil
}

// UnmarshalYAML reads a scalar such as `65.00` from a catalog file.
func (a *Amount) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("money: line %d: price must be a scalar", node.Line)
	}
	parsed, err := Parse(node.Value)
	if err != nil {
		return fmt.Errorf("money: line %d: %w", node.Line, err)
	}
	*a = parsed
	return nil
}
