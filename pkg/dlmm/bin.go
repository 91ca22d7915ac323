package dlmm

import (
	"github.com/solana-zh/dlmm-quoter/pkg/fixedpoint"
	"lukechampine.com/uint128"
)

// Bin holds one discretized price level's liquidity: the LP total supply
// and the two token reserves actually available to trade against.
type Bin struct {
	TotalSupply uint128.Uint128
	ReserveX    uint64
	ReserveY    uint64
}

// IsEmpty reports whether the bin has no liquidity on the side a swap
// would draw from.
func (b *Bin) IsEmpty(swapForY bool) bool {
	if swapForY {
		return b.ReserveY == 0
	}
	return b.ReserveX == 0
}

// SwapResult is the outcome of trading against a single bin.
type SwapResult struct {
	AmountInWithFees uint64
	AmountOut        uint64
	FeeAmount        uint64
	ProtocolFee      uint64
}

// SwapExactIn consumes up to amountInLeft from the bin, returning how much
// was actually taken (including fees), how much of the output token was
// paid out, and the fee/protocol-fee split. Mutates the bin's reserves.
func (b *Bin) SwapExactIn(binStep uint8, binID uint32, amountInLeft, fee, protocolShare uint64, swapForY bool) (SwapResult, error) {
	price, err := Price(binStep, binID)
	if err != nil {
		return SwapResult{}, err
	}

	binReserveOut := b.ReserveX
	if swapForY {
		binReserveOut = b.ReserveY
	}
	if binReserveOut == 0 {
		return SwapResult{}, nil
	}

	var maxAmountIn uint64
	if swapForY {
		v, ok := fixedpoint.ShlDiv(uint128From64(binReserveOut), price, ScaleOffset, fixedpoint.Up)
		if !ok {
			return SwapResult{}, newErr(ErrShlDivMathError, "swap_exact_in: max_amount_in")
		}
		maxAmountIn, err = u64FromU128(v, ErrU64ConversionOverflow)
	} else {
		v, ok := fixedpoint.MulShr(uint128From64(binReserveOut), price, ScaleOffset, fixedpoint.Up)
		if !ok {
			return SwapResult{}, newErr(ErrMulShrMathError, "swap_exact_in: max_amount_in")
		}
		maxAmountIn, err = u64FromU128(v, ErrU64ConversionOverflow)
	}
	if err != nil {
		return SwapResult{}, err
	}

	maxFeeAmount, err := feeForAmount(maxAmountIn, fee)
	if err != nil {
		return SwapResult{}, err
	}
	maxAmountIn, ok := addU64(maxAmountIn, maxFeeAmount)
	if !ok {
		return SwapResult{}, newErr(ErrAmountOverflow, "swap_exact_in: max_amount_in + fee")
	}

	var amountIn, feeAmt, amountOut uint64

	if amountInLeft >= maxAmountIn {
		feeAmt = maxFeeAmount
		amountIn, ok = subU64(maxAmountIn, feeAmt)
		if !ok {
			return SwapResult{}, newErr(ErrAmountUnderflow, "swap_exact_in: amount_in")
		}
		amountOut = binReserveOut
	} else {
		feeAmt, err = feeAmount(amountInLeft, fee)
		if err != nil {
			return SwapResult{}, err
		}
		amountIn, ok = subU64(amountInLeft, feeAmt)
		if !ok {
			return SwapResult{}, newErr(ErrAmountUnderflow, "swap_exact_in: amount_in")
		}

		var v uint128.Uint128
		var ok2 bool
		if swapForY {
			v, ok2 = fixedpoint.MulShr(uint128From64(amountIn), price, ScaleOffset, fixedpoint.Down)
		} else {
			v, ok2 = fixedpoint.ShlDiv(uint128From64(amountIn), price, ScaleOffset, fixedpoint.Down)
		}
		if !ok2 {
			return SwapResult{}, newErr(ErrMulShrMathError, "swap_exact_in: amount_out")
		}
		amountOut, err = u64FromU128(v, ErrU64ConversionOverflow)
		if err != nil {
			return SwapResult{}, err
		}
		if amountOut > binReserveOut {
			amountOut = binReserveOut
		}
	}

	var protocolFeeAmount uint64
	if protocolShare > 0 {
		protocolFeeAmount, err = protocolFeeOf(feeAmt, protocolShare)
		if err != nil {
			return SwapResult{}, err
		}
	}

	amountInWithFees, ok := addU64(amountIn, feeAmt)
	if !ok {
		return SwapResult{}, newErr(ErrAmountOverflow, "swap_exact_in: amount_in_with_fees")
	}

	if err := b.applyReserveDelta(swapForY, amountInWithFees, amountOut, protocolFeeAmount); err != nil {
		return SwapResult{}, err
	}

	return SwapResult{
		AmountInWithFees: amountInWithFees,
		AmountOut:        amountOut,
		FeeAmount:        feeAmt,
		ProtocolFee:      protocolFeeAmount,
	}, nil
}

// SwapExactOut pays out up to amountOutLeft from the bin, returning how
// much input (including fees) that cost. Mutates the bin's reserves.
func (b *Bin) SwapExactOut(binStep uint8, binID uint32, amountOutLeft, fee, protocolShare uint64, swapForY bool) (SwapResult, error) {
	price, err := Price(binStep, binID)
	if err != nil {
		return SwapResult{}, err
	}

	binReserveOut := b.ReserveX
	if swapForY {
		binReserveOut = b.ReserveY
	}
	if binReserveOut == 0 {
		return SwapResult{}, nil
	}

	amountOut := amountOutLeft
	if amountOut > binReserveOut {
		amountOut = binReserveOut
	}

	var amountInWithoutFee uint64
	if swapForY {
		v, ok := fixedpoint.ShlDiv(uint128From64(amountOut), price, ScaleOffset, fixedpoint.Up)
		if !ok {
			return SwapResult{}, newErr(ErrShlDivMathError, "swap_exact_out: amount_in_without_fee")
		}
		amountInWithoutFee, err = u64FromU128(v, ErrU64ConversionOverflow)
	} else {
		v, ok := fixedpoint.MulShr(uint128From64(amountOut), price, ScaleOffset, fixedpoint.Up)
		if !ok {
			return SwapResult{}, newErr(ErrMulShrMathError, "swap_exact_out: amount_in_without_fee")
		}
		amountInWithoutFee, err = u64FromU128(v, ErrU64ConversionOverflow)
	}
	if err != nil {
		return SwapResult{}, err
	}

	feeAmt, err := feeForAmount(amountInWithoutFee, fee)
	if err != nil {
		return SwapResult{}, err
	}

	amountIn, ok := addU64(amountInWithoutFee, feeAmt)
	if !ok {
		return SwapResult{}, newErr(ErrAmountOverflow, "swap_exact_out: amount_in")
	}

	protocolFeeAmount, err := protocolFeeOf(feeAmt, protocolShare)
	if err != nil {
		return SwapResult{}, err
	}

	if err := b.applyReserveDelta(swapForY, amountIn, amountOut, protocolFeeAmount); err != nil {
		return SwapResult{}, err
	}

	return SwapResult{
		AmountInWithFees: amountIn,
		AmountOut:        amountOut,
		FeeAmount:        feeAmt,
		ProtocolFee:      protocolFeeAmount,
	}, nil
}

func (b *Bin) applyReserveDelta(swapForY bool, amountIn, amountOut, protocolFeeAmount uint64) error {
	var ok bool
	if swapForY {
		b.ReserveX, ok = addU64(b.ReserveX, amountIn)
		if !ok {
			return newErr(ErrAmountOverflow, "reserve_x overflow")
		}
		b.ReserveX, ok = subU64(b.ReserveX, protocolFeeAmount)
		if !ok {
			return newErr(ErrAmountUnderflow, "reserve_x underflow")
		}
		b.ReserveY, ok = subU64(b.ReserveY, amountOut)
		if !ok {
			return newErr(ErrAmountUnderflow, "reserve_y underflow")
		}
	} else {
		b.ReserveX, ok = subU64(b.ReserveX, amountOut)
		if !ok {
			return newErr(ErrAmountUnderflow, "reserve_x underflow")
		}
		b.ReserveY, ok = addU64(b.ReserveY, amountIn)
		if !ok {
			return newErr(ErrAmountOverflow, "reserve_y overflow")
		}
		b.ReserveY, ok = subU64(b.ReserveY, protocolFeeAmount)
		if !ok {
			return newErr(ErrAmountUnderflow, "reserve_y underflow")
		}
	}
	return nil
}
