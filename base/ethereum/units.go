package ethereum

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/shopspring/decimal"
)

// Decimals of the payment token and of ether
const Decimals = 18

// ToWei converts a decimal amount such as "1.5" to its smallest unit.
// Amounts finer than one wei are rejected.
func ToWei(amount string) (*big.Int, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(amount))
	if err != nil {
		return nil, err
	}
	if d.IsNegative() {
		return nil, fmt.Errorf("negative amount %s", amount)
	}
	wei := d.Shift(Decimals)
	if !wei.Equal(wei.Truncate(0)) {
		return nil, fmt.Errorf("amount %s is finer than one wei", amount)
	}
	return wei.BigInt(), nil
}

// FromWei is the inverse of ToWei, trailing zeros are dropped
func FromWei(wei *big.Int) string {
	return decimal.NewFromBigInt(wei, -Decimals).String()
}
