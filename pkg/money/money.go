package money

import (
	"errors"
	"math/bits"
)

// ErrOverflow is returned whenever a checked operation would wrap.
var ErrOverflow = errors.New("math overflow")

const (
	// BpsDenominator: 10,000 basis points = 100%.
	BpsDenominator = 10_000
	// SecondsPerYear for simple interest (365 days).
	SecondsPerYear = 365 * 24 * 60 * 60
)

// Add returns a+b or ErrOverflow.
func Add(a, b uint64) (uint64, error) {
	sum, carry := bits.Add64(a, b, 0)
	if carry != 0 {
		return 0, ErrOverflow
	}
	return sum, nil
}

// Sub returns a-b or ErrOverflow when b > a.
func Sub(a, b uint64) (uint64, error) {
	diff, borrow := bits.Sub64(a, b, 0)
	if borrow != 0 {
		return 0, ErrOverflow
	}
	return diff, nil
}

// AccrueInterest computes simple interest for an outstanding principal:
//
//	principal * aprBps * elapsedSecs / (10_000 * secondsPerYear)
//
// The intermediate product is carried in 128 bits so realistic principals
// never overflow; the truncated quotient must fit in 64 bits or
// ErrOverflow is returned. Zero or negative elapsed time accrues nothing.
func AccrueInterest(principal uint64, aprBps uint32, elapsedSecs int64) (uint64, error) {
	if elapsedSecs <= 0 || principal == 0 || aprBps == 0 {
		return 0, nil
	}

	elapsed := uint64(elapsedSecs)
	hi, lo := bits.Mul64(principal, uint64(aprBps))
	hiHi, hiLo := bits.Mul64(hi, elapsed)
	loHi, loLo := bits.Mul64(lo, elapsed)
	sumHi, carry := bits.Add64(loHi, hiLo, 0)
	if hiHi != 0 || carry != 0 {
		return 0, ErrOverflow
	}

	const denom = uint64(BpsDenominator) * uint64(SecondsPerYear)
	if sumHi >= denom {
		// quotient would not fit in 64 bits
		return 0, ErrOverflow
	}
	quo, _ := bits.Div64(sumHi, loLo, denom)
	return quo, nil
}

// ProRataBps returns a contribution's share of a total in basis points,
// rounded down. total must be nonzero and contribution <= total.
func ProRataBps(contribution, total uint64) (uint32, error) {
	if total == 0 || contribution > total {
		return 0, ErrOverflow
	}
	hi, lo := bits.Mul64(contribution, BpsDenominator)
	if hi >= total {
		return 0, ErrOverflow
	}
	quo, _ := bits.Div64(hi, lo, total)
	return uint32(quo), nil
}

// ShareOf returns amount * bps / 10_000 rounded down.
func ShareOf(amount uint64, bps uint32) (uint64, error) {
	hi, lo := bits.Mul64(amount, uint64(bps))
	if hi >= BpsDenominator {
		return 0, ErrOverflow
	}
	quo, _ := bits.Div64(hi, lo, BpsDenominator)
	return quo, nil
}

// Min of two unsigned amounts.
func Min(a, b uint64) uint64 {
	if a < b {
		return a
	}
	return b
}
