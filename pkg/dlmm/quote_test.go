package dlmm

import (
	"testing"

	cosmosmath "cosmossdk.io/math"
	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/require"
)

func zeroFeePair(binStep uint8) *Pair {
	x := solana.NewWallet().PublicKey()
	y := solana.NewWallet().PublicKey()
	return &Pair{
		TokenMintX: x,
		TokenMintY: y,
		BinStep:    binStep,
		ActiveID:   MiddleBinID,
		StaticFeeParameters: StaticFeeParameters{
			BaseFactor:               0,
			FilterPeriod:             30,
			DecayPeriod:              600,
			ReductionFactor:          5_000,
			VariableFeeControl:       0,
			MaxVolatilityAccumulator: 350_000,
			ProtocolShare:            0,
		},
		DynamicFeeParameters: DynamicFeeParameters{IDReference: MiddleBinID},
	}
}

func intOf(v uint64) cosmosmath.Int { return cosmosmath.NewIntFromUint64(v) }

// Scenario 1: exact-in, centre bin, single bin consumed.
func TestScenarioExactInCentreBinSingleBinConsumed(t *testing.T) {
	pair := zeroFeePair(10)
	pair.StaticFeeParameters.BaseFactor = 10_000 // non-zero base fee to check it's applied
	binArray := seedBinArrayPair(pair.ActiveID, 10_000_000_000, 10_000_000_000)

	res, err := Quote(pair, binArray, TokenTransferFee{}, pair.TokenMintX, intOf(1_000_000), ExactIn, 1_000)
	require.NoError(t, err)
	require.Equal(t, uint32(0), res.BinsCrossed)
	require.True(t, res.SwapForY)
	require.True(t, res.AmountIn.Equal(intOf(1_000_000)))
	require.True(t, res.AmountOut.IsPositive())
	// base fee = 10_000 * 10 * 10 = 1_000_000 (0.1%) of 1_000_000 input.
	require.True(t, res.FeeAmount.Equal(intOf(1_000)))
	// original pair is untouched: quoting must not mutate caller state.
	require.Equal(t, uint32(MiddleBinID), pair.ActiveID)
}

// seedDescendingBinArrayPair seeds the centre bin plus belowCount bins
// below it (the direction swap_for_y walks active_id) with a single unit
// of reserve_y each. The centre bin sits at offset 0 of its own BinArray
// (MIDDLE_BIN_ID is a multiple of BinArraySize), so the bins below it
// belong to the preceding array, not the one above.
func seedDescendingBinArrayPair(activeID uint32, belowCount uint32) *BinArrayPair {
	lowerIdx := activeID/BinArraySize - 1
	lower := BinArray{Index: lowerIdx}
	for k := uint32(1); k <= belowCount; k++ {
		lower.Bins[BinArraySize-k].ReserveY = 1
	}
	upper := BinArray{Index: lowerIdx + 1}
	upper.Bins[activeID%BinArraySize].ReserveY = 1

	pair, err := MergeBinArrays(lower, upper)
	if err != nil {
		panic(err)
	}
	return &pair
}

// Scenario 2: exact-in using exactly MAX_BIN_CROSSING bins: the centre bin
// plus MAX_BIN_CROSSING-1 bins below it, so the active id moves
// MAX_BIN_CROSSING-1 times. The centre bin's price is exactly 1.0, so its
// single unit of reserve_y drains for exactly 1 unit of input; each bin
// below it has price base^-j < 1.0, so draining its single unit of
// reserve_y costs ceil(base^j) input units, which is 2 for every j in
// [1, MAX_BIN_CROSSING-1] at bin_step=10 (base^29 is still well under 2.0).
func TestScenarioExactInCrossesExactlyMaxBinCrossing(t *testing.T) {
	pair := zeroFeePair(10)
	binArray := seedDescendingBinArrayPair(pair.ActiveID, MaxBinCrossing-1)

	const amountIn = 1 + (MaxBinCrossing-1)*2
	const expectedOut = MaxBinCrossing

	res, err := Quote(pair, binArray, TokenTransferFee{}, pair.TokenMintX, intOf(amountIn), ExactIn, 1_000)
	require.NoError(t, err)
	require.True(t, res.AmountOut.Equal(intOf(expectedOut)))
	require.Equal(t, uint32(MaxBinCrossing-1), res.BinsCrossed)
}

// Scenario 3: the input outlasts the first MAX_BIN_CROSSING bins (31 are
// seeded), so the swap has to reach a 31st bin, which the crossing cap
// rejects.
func TestScenarioExactInCrossing31BinsFails(t *testing.T) {
	pair := zeroFeePair(10)
	binArray := seedDescendingBinArrayPair(pair.ActiveID, MaxBinCrossing)

	const amountIn = 1 + MaxBinCrossing*2 + 1

	_, err := Quote(pair, binArray, TokenTransferFee{}, pair.TokenMintX, intOf(amountIn), ExactIn, 1_000)
	require.ErrorIs(t, err, ErrSwapCrossesTooManyBins)
}

// Scenario 4: exact-out full drain across the active side of a short run
// of bins (kept within MAX_BIN_CROSSING so the drain itself, not the
// crossing cap, is what's under test).
func TestScenarioExactOutFullDrain(t *testing.T) {
	pair := zeroFeePair(10)
	const perBin = 1_000
	const liveBins = 10

	lowerIdx := pair.ActiveID / BinArraySize
	lower := BinArray{Index: lowerIdx}
	upper := BinArray{Index: lowerIdx + 1}
	var total uint64
	for i := 0; i < liveBins; i++ {
		lower.Bins[i].ReserveX = perBin
		total += perBin
	}
	binArray, err := MergeBinArrays(lower, upper)
	require.NoError(t, err)

	res, err := Quote(pair, &binArray, TokenTransferFee{}, pair.TokenMintX, intOf(total), ExactOut, 1_000)
	require.NoError(t, err)
	require.True(t, res.AmountOut.Equal(intOf(total)))
	require.True(t, res.AmountIn.IsPositive())
}

// Scenario 5: transfer-fee wrap, 5% on the input side, 1% on the output.
func TestScenarioTransferFeeWrap(t *testing.T) {
	pair := zeroFeePair(10)
	binArray := seedBinArrayPair(pair.ActiveID, 10_000_000_000, 10_000_000_000)

	fees := TokenTransferFee{
		X: &TransferFeeConfig{TransferFeeBasisPoints: 500, MaximumFee: ^uint64(0)},
		Y: &TransferFeeConfig{TransferFeeBasisPoints: 100, MaximumFee: ^uint64(0)},
	}

	res, err := Quote(pair, binArray, fees, pair.TokenMintX, intOf(1_000), ExactIn, 1_000)
	require.NoError(t, err)
	require.Equal(t, pair.TokenMintX, res.FeeMint)
	// internal_in = 1000 - 5% = 950, verified indirectly via AmountOut > 0
	// and strictly less than the fee-free equivalent.
	require.True(t, res.AmountOut.IsPositive())

	noFeeRes, err := Quote(pair, binArray, TokenTransferFee{}, pair.TokenMintX, intOf(1_000), ExactIn, 1_000)
	require.NoError(t, err)
	require.True(t, res.AmountOut.LT(noFeeRes.AmountOut))
}

// Scenario 6: volatility reference decays to zero after decay_period.
func TestScenarioVolatilityReferenceDecaysOverTime(t *testing.T) {
	pair := zeroFeePair(10)
	pair.StaticFeeParameters.BaseFactor = 0
	pair.StaticFeeParameters.VariableFeeControl = 40_000
	binArray := seedBinArrayPair(pair.ActiveID, 10_000_000_000, 10_000_000_000)

	// Move the active id away from the reference so volatility accrues,
	// then quote once at the end of the filter period (reference scaled by
	// reduction_factor) and once at the decay period (reference reset).
	pair.ActiveID = MiddleBinID + 50
	pair.DynamicFeeParameters.VolatilityAccumulator = 200_000
	pair.DynamicFeeParameters.TimeLastUpdated = 1_000

	beforeDecay := *pair
	resBefore, err := Quote(&beforeDecay, binArray, TokenTransferFee{}, pair.TokenMintX, intOf(1_000_000), ExactIn,
		1_000+uint64(pair.StaticFeeParameters.FilterPeriod))
	require.NoError(t, err)

	afterDecay := *pair
	resAfter, err := Quote(&afterDecay, binArray, TokenTransferFee{}, pair.TokenMintX, intOf(1_000_000), ExactIn,
		1_000+uint64(pair.StaticFeeParameters.DecayPeriod))
	require.NoError(t, err)

	require.True(t, resBefore.FeeAmount.GTE(resAfter.FeeAmount))
}
