package dlmm

import "lukechampine.com/uint128"

// These helpers mirror Rust's checked_add/checked_mul/checked_sub: each
// reports overflow/underflow via ok=false instead of panicking, so callers
// can translate it into the matching ErrorCode the way the original crate
// maps None onto AmountOverflow/AmountUnderflow.

func uint128From64(v uint64) uint128.Uint128 { return uint128.From64(v) }

func addU128(x, y uint128.Uint128) (uint128.Uint128, bool) {
	sum := x.Add(y)
	if sum.Cmp(x) < 0 {
		return uint128.Zero, false
	}
	return sum, true
}

func subU128(x, y uint128.Uint128) (uint128.Uint128, bool) {
	if x.Cmp(y) < 0 {
		return uint128.Zero, false
	}
	return x.Sub(y), true
}

func mulU128(x, y uint128.Uint128) (uint128.Uint128, bool) {
	if x.IsZero() || y.IsZero() {
		return uint128.Zero, true
	}
	prod := x.Big()
	prod.Mul(prod, y.Big())
	if prod.BitLen() > 128 {
		return uint128.Zero, false
	}
	return uint128.FromBig(prod), true
}

func addU64(x, y uint64) (uint64, bool) {
	sum := x + y
	if sum < x {
		return 0, false
	}
	return sum, true
}

func subU64(x, y uint64) (uint64, bool) {
	if x < y {
		return 0, false
	}
	return x - y, true
}

func mulU64(x, y uint64) (uint64, bool) {
	if x == 0 || y == 0 {
		return 0, true
	}
	product := x * y
	if product/y != x {
		return 0, false
	}
	return product, true
}

// u64FromU128 downcasts a uint128 result, reporting code if it doesn't fit.
func u64FromU128(v uint128.Uint128, code ErrorCode) (uint64, error) {
	if v.Hi != 0 {
		return 0, newErr(code, "value does not fit in u64")
	}
	return v.Lo, nil
}
