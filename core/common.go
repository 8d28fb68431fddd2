package core

import (
	"github.com/shopspring/decimal"
)

// Instead of implementing full value objects, I'm using some alias types and helper methods here ...

// ClientID identifies an account; it doubles as the aggregate's identity.
type ClientID = uint16

// TransactionID identifies the genesis command (deposit or withdraw)
// a later dispute, resolve or chargeback refers to.
type TransactionID = uint32

// Money is a fixed-point decimal value, carried with 4 fractional digits on
// the wire. Decimal arithmetic avoids the rounding drift of binary floats.
// Compare with Equal, never with ==.
type Money = decimal.Decimal

// ZeroMoney returns 0.0000.
func ZeroMoney() Money {
	return decimal.New(0, -4)
}

// MoneyFromString parses a decimal amount like "99.0000".
func MoneyFromString(value string) (Money, error) {
	return decimal.NewFromString(value)
}
