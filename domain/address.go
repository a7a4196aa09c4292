package domain

import "strings"

// Address is a 0x prefixed hex account or contract address. Addresses are
// stored lower cased so lookups do not depend on the checksum casing.
type Address string

func (a Address) ToLower() Address {
	return Address(strings.ToLower(string(a)))
}

func (a Address) ToLowerStr() string {
	return strings.ToLower(string(a))
}

func (a Address) IsEmpty() bool {
	return len(a) == 0
}

// Short abbreviates the address for display, e.g. 0x5324...5fa4
func (a Address) Short() string {
	if len(a) <= 12 {
		return string(a)
	}
	return string(a[:6]) + "..." + string(a[len(a)-4:])
}

type TxHash string

func (h TxHash) String() string {
	return string(h)
}
