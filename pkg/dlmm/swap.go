package dlmm

// SwapMode selects whether the caller specifies the input or output amount.
type SwapMode int

const (
	ExactIn SwapMode = iota
	ExactOut
)

// SwapOutcome is the aggregate result of a (possibly multi-bin) swap.
type SwapOutcome struct {
	AmountIn          uint64
	AmountOut         uint64
	TotalFeeAmount    uint64
	TotalProtocolFee  uint64
	BinsCrossed       uint32
}

// RunSwap drives the cross-bin swap loop: it repeatedly trades against the
// pair's active bin, advancing to the next bin when the current one is
// exhausted, until the requested amount is satisfied. A swap that needs
// more than MAX_BIN_CROSSING bins fails with ErrSwapCrossesTooManyBins.
// Mutates pair and binArray in place.
func RunSwap(pair *Pair, binArray *BinArrayPair, amount uint64, swapForY bool, mode SwapMode, blockTimestamp uint64) (SwapOutcome, error) {
	if err := pair.UpdateReferences(blockTimestamp); err != nil {
		return SwapOutcome{}, err
	}

	switch mode {
	case ExactIn:
		return runSwapExactIn(pair, binArray, amount, swapForY)
	case ExactOut:
		return runSwapExactOut(pair, binArray, amount, swapForY)
	default:
		return SwapOutcome{}, newErr(ErrInvalidAmountIn, "unknown swap mode")
	}
}

func runSwapExactIn(pair *Pair, binArray *BinArrayPair, amount uint64, swapForY bool) (SwapOutcome, error) {
	amountInLeft := amount
	var out SwapOutcome

	for amountInLeft > 0 {
		if out.BinsCrossed >= MaxBinCrossing {
			return SwapOutcome{}, newErr(ErrSwapCrossesTooManyBins, "swap crossed more than MAX_BIN_CROSSING bins")
		}
		if err := pair.UpdateVolatilityAccumulator(); err != nil {
			return SwapOutcome{}, err
		}

		bin, err := binArray.GetBin(pair.ActiveID)
		if err != nil {
			return SwapOutcome{}, err
		}

		fee, err := pair.TotalFee()
		if err != nil {
			return SwapOutcome{}, err
		}

		res, err := bin.SwapExactIn(pair.BinStep, pair.ActiveID, amountInLeft, fee, pair.ProtocolShare(), swapForY)
		if err != nil {
			return SwapOutcome{}, err
		}

		out.AmountOut, _ = addU64(out.AmountOut, res.AmountOut)
		var ok bool
		amountInLeft, ok = subU64(amountInLeft, res.AmountInWithFees)
		if !ok {
			return SwapOutcome{}, newErr(ErrAmountUnderflow, "amount_in_left underflow")
		}
		out.TotalProtocolFee, _ = addU64(out.TotalProtocolFee, res.ProtocolFee)
		out.TotalFeeAmount, _ = addU64(out.TotalFeeAmount, res.FeeAmount)
		if err := pair.accrueProtocolFee(swapForY, res.ProtocolFee); err != nil {
			return SwapOutcome{}, err
		}

		if amountInLeft == 0 {
			break
		}
		if err := pair.MoveActiveID(swapForY); err != nil {
			return SwapOutcome{}, err
		}
		out.BinsCrossed++
	}

	out.AmountIn = amount
	return out, nil
}

func runSwapExactOut(pair *Pair, binArray *BinArrayPair, amount uint64, swapForY bool) (SwapOutcome, error) {
	amountOutLeft := amount
	var out SwapOutcome

	for amountOutLeft > 0 {
		if out.BinsCrossed >= MaxBinCrossing {
			return SwapOutcome{}, newErr(ErrSwapCrossesTooManyBins, "swap crossed more than MAX_BIN_CROSSING bins")
		}
		if err := pair.UpdateVolatilityAccumulator(); err != nil {
			return SwapOutcome{}, err
		}

		bin, err := binArray.GetBin(pair.ActiveID)
		if err != nil {
			return SwapOutcome{}, err
		}

		fee, err := pair.TotalFee()
		if err != nil {
			return SwapOutcome{}, err
		}

		res, err := bin.SwapExactOut(pair.BinStep, pair.ActiveID, amountOutLeft, fee, pair.ProtocolShare(), swapForY)
		if err != nil {
			return SwapOutcome{}, err
		}

		out.AmountIn, _ = addU64(out.AmountIn, res.AmountInWithFees)
		var ok bool
		amountOutLeft, ok = subU64(amountOutLeft, res.AmountOut)
		if !ok {
			return SwapOutcome{}, newErr(ErrAmountUnderflow, "amount_out_left underflow")
		}
		out.TotalProtocolFee, _ = addU64(out.TotalProtocolFee, res.ProtocolFee)
		out.TotalFeeAmount, _ = addU64(out.TotalFeeAmount, res.FeeAmount)
		if err := pair.accrueProtocolFee(swapForY, res.ProtocolFee); err != nil {
			return SwapOutcome{}, err
		}

		if amountOutLeft == 0 {
			break
		}
		if err := pair.MoveActiveID(swapForY); err != nil {
			return SwapOutcome{}, err
		}
		out.BinsCrossed++
	}

	out.AmountOut = amount
	return out, nil
}
