package dlmm

import (
	"github.com/solana-zh/dlmm-quoter/pkg/fixedpoint"
	"lukechampine.com/uint128"
)

// one is 1.0 represented in 64.64 fixed point.
var one = uint128.From64(1).Lsh(ScaleOffset)

var maxU128 = uint128.Max

// getBase returns (1 + bin_step/10_000) in 64.64, the per-bin price ratio.
func getBase(binStep uint8) (uint128.Uint128, error) {
	if binStep == 0 {
		return uint128.Zero, newErr(ErrDivideByZero, "bin_step is zero")
	}
	step, ok := fixedpoint.MulDiv(uint128.From64(uint64(binStep)), one, uint128.From64(BasisPointMax), fixedpoint.Down)
	if !ok {
		return uint128.Zero, newErr(ErrMulShrMathError, "getBase: bin_step/BASIS_POINT_MAX overflow")
	}
	return one.Add(step), nil
}

// Price returns price(bin_step, bin_id) = base(bin_step)^(bin_id - MIDDLE_BIN_ID)
// in 64.64 fixed point, via iterated square-and-multiply.
func Price(binStep uint8, binID uint32) (uint128.Uint128, error) {
	base, err := getBase(binStep)
	if err != nil {
		return uint128.Zero, err
	}
	exponent := int64(binID) - int64(MiddleBinID)
	return pow(base, exponent)
}

// pow computes base^exp in 64.64 fixed point, exp possibly negative, by
// repeated squaring with the accumulator scaled down by ScaleOffset after
// every multiplication. Mirrors the square-and-multiply loop of the
// original curve's fixed-point exponentiation.
func pow(base uint128.Uint128, exp int64) (uint128.Uint128, error) {
	if exp == 0 {
		return one, nil
	}

	invert := false
	if exp < 0 {
		exp = -exp
		invert = true
	}

	squaredBase := base
	result := one

	if squaredBase.Cmp(result) >= 0 {
		if squaredBase.IsZero() {
			return uint128.Zero, newErr(ErrDivideByZero, "pow: zero base")
		}
		squaredBase = maxU128.Div(squaredBase)
		invert = !invert
	}

	if exp&0x1 > 0 {
		next, ok := fixedpoint.MulShr(squaredBase, result, ScaleOffset, fixedpoint.Down)
		if !ok {
			return uint128.Zero, newErr(ErrMulShrMathError, "pow: initial multiply overflow")
		}
		result = next
	}

	exp >>= 1
	for exp > 0 {
		next, ok := fixedpoint.MulShr(squaredBase, squaredBase, ScaleOffset, fixedpoint.Down)
		if !ok {
			return uint128.Zero, newErr(ErrMulShrMathError, "pow: squaring overflow")
		}
		squaredBase = next

		if exp&0x1 > 0 {
			next, ok := fixedpoint.MulShr(squaredBase, result, ScaleOffset, fixedpoint.Down)
			if !ok {
				return uint128.Zero, newErr(ErrMulShrMathError, "pow: multiply overflow")
			}
			result = next
		}
		exp >>= 1
	}

	if result.IsZero() {
		return uint128.Zero, newErr(ErrNumberCastError, "pow: result underflowed to zero")
	}

	if invert {
		result = maxU128.Div(result)
	}
	return result, nil
}
