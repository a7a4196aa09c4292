package listing

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var ErrNegativePrice = errors.New("price must not be negative")

// ParsePrice parses a non-negative decimal price such as "10" or "10.00"
func ParsePrice(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero, err
	}
	if d.IsNegative() {
		return decimal.Zero, ErrNegativePrice
	}
	return d, nil
}

// PriceDecimal128 converts d to the stored priceValue representation
func PriceDecimal128(d decimal.Decimal) (primitive.Decimal128, error) {
	return primitive.ParseDecimal128(d.String())
}

// PriceRange is an inclusive price interval, a nil bound is open
type PriceRange struct {
	Min *decimal.Decimal
	Max *decimal.Decimal
}

// NewPriceRange parses optional bounds, empty strings leave the side open
func NewPriceRange(min, max string) (PriceRange, error) {
	res := PriceRange{}
	if strings.TrimSpace(min) != "" {
		d, err := ParsePrice(min)
		if err != nil {
			return res, err
		}
		res.Min = &d
	}
	if strings.TrimSpace(max) != "" {
		d, err := ParsePrice(max)
		if err != nil {
			return res, err
		}
		res.Max = &d
	}
	return res, nil
}

func (r PriceRange) IsEmpty() bool {
	return r.Min == nil && r.Max == nil
}

// Contains reports whether price lies within the range. An unparseable price
// is only accepted by a range without bounds.
func (r PriceRange) Contains(price string) bool {
	if r.IsEmpty() {
		return true
	}
	d, err := decimal.NewFromString(strings.TrimSpace(price))
	if err != nil {
		return false
	}
	if r.Min != nil && d.LessThan(*r.Min) {
		return false
	}
	if r.Max != nil && d.GreaterThan(*r.Max) {
		return false
	}
	return true
}
