package dlmm

import (
	cosmosmath "cosmossdk.io/math"
	"github.com/gagliardetto/solana-go"
)

// QuoteResult is the outcome of a full quote: the user-facing in/out
// amounts (transfer-fee inclusive) and the swap fee charged by the pair,
// using cosmossdk.io/math.Int the way the teacher's Pool.Quote does, so a
// caller routing across multiple AMM families sees one common amount type.
type QuoteResult struct {
	AmountIn    cosmosmath.Int
	AmountOut   cosmosmath.Int
	FeeAmount   cosmosmath.Int
	FeeMint     solana.PublicKey
	SwapForY    bool
	BinsCrossed uint32
}

// Quote simulates a swap end to end: it wraps the transfer-fee adjustment
// around the bin-level swap math, matching the order the on-chain program
// applies SPL Token-2022 transfer fees relative to the swap itself.
//
// ExactIn: the trader's `amount` arrives pre-transfer-fee; the swap only
// ever sees what the mint actually delivers, and the output is reported
// net of the outbound transfer fee.
// ExactOut: `amount` is what the trader wants to net after the outbound
// transfer fee, so the swap is run against the grossed-up expected
// output, and the computed input is itself grossed up by the inbound
// transfer fee to tell the trader what they must send.
func Quote(pair *Pair, binArray *BinArrayPair, fees TokenTransferFee, inputMint solana.PublicKey, amount cosmosmath.Int, mode SwapMode, blockTimestamp uint64) (QuoteResult, error) {
	if !amount.IsUint64() {
		return QuoteResult{}, newErr(ErrU64ConversionOverflow, "quote amount does not fit in u64")
	}

	// Simulate against a copy: quoting must not mutate the caller's view
	// of on-chain state (active id, volatility accumulator, bin reserves).
	pairCopy := *pair
	pair = &pairCopy
	binArrayCopy := *binArray
	binArray = &binArrayCopy

	swapForY, err := pair.ResolveSwapForY(inputMint, mode)
	if err != nil {
		return QuoteResult{}, err
	}

	var feeIn, feeOut *TransferFeeConfig
	var mintIn solana.PublicKey
	if swapForY {
		feeIn, feeOut = fees.X, fees.Y
		mintIn = pair.TokenMintX
	} else {
		feeIn, feeOut = fees.Y, fees.X
		mintIn = pair.TokenMintY
	}

	rawAmount := amount.Uint64()

	switch mode {
	case ExactIn:
		amountInAfterFee, _, err := ComputeTransferFee(feeIn, rawAmount)
		if err != nil {
			return QuoteResult{}, err
		}

		out, err := RunSwap(pair, binArray, amountInAfterFee, swapForY, ExactIn, blockTimestamp)
		if err != nil {
			return QuoteResult{}, err
		}

		amountOutAfterFee, _, err := ComputeTransferFee(feeOut, out.AmountOut)
		if err != nil {
			return QuoteResult{}, err
		}

		return QuoteResult{
			AmountIn:    amount,
			AmountOut:   cosmosmath.NewIntFromUint64(amountOutAfterFee),
			FeeAmount:   cosmosmath.NewIntFromUint64(out.TotalFeeAmount),
			FeeMint:     mintIn,
			SwapForY:    swapForY,
			BinsCrossed: out.BinsCrossed,
		}, nil

	case ExactOut:
		amountOutBeforeFee, _, err := ComputeTransferAmountForExpectedOutput(feeOut, rawAmount)
		if err != nil {
			return QuoteResult{}, err
		}

		out, err := RunSwap(pair, binArray, amountOutBeforeFee, swapForY, ExactOut, blockTimestamp)
		if err != nil {
			return QuoteResult{}, err
		}

		amountInBeforeFee, _, err := ComputeTransferAmountForExpectedOutput(feeIn, out.AmountIn)
		if err != nil {
			return QuoteResult{}, err
		}

		return QuoteResult{
			AmountIn:    cosmosmath.NewIntFromUint64(amountInBeforeFee),
			AmountOut:   amount,
			FeeAmount:   cosmosmath.NewIntFromUint64(out.TotalFeeAmount),
			FeeMint:     mintIn,
			SwapForY:    swapForY,
			BinsCrossed: out.BinsCrossed,
		}, nil

	default:
		return QuoteResult{}, newErr(ErrInvalidAmountIn, "unknown swap mode")
	}
}
