package types

import (
	"errors"
	"fmt"
	"math/big"
)

// FeeDenominator is the basis-point denominator used by fee rates.
const FeeDenominator = 10000

var ErrUnderflow = errors.New("unsigned underflow")

var (
	feeDenominator = big.NewInt(FeeDenominator)
	one            = big.NewInt(1)
)

// Zero returns a fresh zero value.
func Zero() *big.Int {
	return new(big.Int)
}

// Copy returns a copy of x, treating nil as zero.
func Copy(x *big.Int) *big.Int {
	if x == nil {
		return new(big.Int)
	}
	return new(big.Int).Set(x)
}

// Add returns a+b without mutating either argument.
func Add(a, b *big.Int) *big.Int {
	return new(big.Int).Add(Copy(a), Copy(b))
}

// Inc returns a+1.
func Inc(a *big.Int) *big.Int {
	return Add(a, one)
}

// Sub returns a-b, or ErrUnderflow if the result would be negative.
func Sub(a, b *big.Int) (*big.Int, error) {
	ret := new(big.Int).Sub(Copy(a), Copy(b))
	if ret.Sign() < 0 {
		return nil, fmt.Errorf("%w: %s - %s", ErrUnderflow, Copy(a), Copy(b))
	}
	return ret, nil
}

// Fee computes amount * rate / 10000, truncating.
func Fee(amount, rateBps *big.Int) *big.Int {
	ret := new(big.Int).Mul(Copy(amount), Copy(rateBps))
	return ret.Quo(ret, feeDenominator)
}

// Equal compares two values treating nil as zero.
func Equal(a, b *big.Int) bool {
	return Copy(a).Cmp(Copy(b)) == 0
}
