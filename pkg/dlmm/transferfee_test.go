package dlmm

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestComputeTransferFeeNilConfig(t *testing.T) {
	transferred, fee, err := ComputeTransferFee(nil, 1_000)
	require.NoError(t, err)
	require.Equal(t, uint64(1_000), transferred)
	require.Zero(t, fee)
}

func TestComputeTransferFeeBasic(t *testing.T) {
	cfg := &TransferFeeConfig{TransferFeeBasisPoints: 100, MaximumFee: 1_000_000}
	transferred, fee, err := ComputeTransferFee(cfg, 10_000)
	require.NoError(t, err)
	require.Equal(t, uint64(100), fee)
	require.Equal(t, uint64(9_900), transferred)
}

func TestComputeTransferFeeCapsAtMaximum(t *testing.T) {
	cfg := &TransferFeeConfig{TransferFeeBasisPoints: 10_000, MaximumFee: 50}
	transferred, fee, err := ComputeTransferFee(cfg, 10_000)
	require.NoError(t, err)
	require.Equal(t, uint64(50), fee)
	require.Equal(t, uint64(9_950), transferred)
}

func TestComputeTransferAmountForExpectedOutputRoundTrips(t *testing.T) {
	cfg := &TransferFeeConfig{TransferFeeBasisPoints: 250, MaximumFee: 1_000_000}
	gross, fee, err := ComputeTransferAmountForExpectedOutput(cfg, 100_000)
	require.NoError(t, err)

	transferred, verifyFee, err := ComputeTransferFee(cfg, gross)
	require.NoError(t, err)
	require.Equal(t, fee, verifyFee)
	require.Equal(t, uint64(100_000), transferred)
}

func TestComputeTransferAmountForExpectedOutputZero(t *testing.T) {
	cfg := &TransferFeeConfig{TransferFeeBasisPoints: 250, MaximumFee: 1_000_000}
	gross, fee, err := ComputeTransferAmountForExpectedOutput(cfg, 0)
	require.NoError(t, err)
	require.Zero(t, gross)
	require.Zero(t, fee)
}

func TestComputeTransferAmountForExpectedOutputHundredPercentFeeUsesMaximumFee(t *testing.T) {
	// SPL's inverse-fee formula is undefined at 100% bps; the wrapper must
	// fall back to MaximumFee instead of dividing by a zero denominator.
	cfg := &TransferFeeConfig{TransferFeeBasisPoints: 10_000, MaximumFee: 500}
	gross, fee, err := ComputeTransferAmountForExpectedOutput(cfg, 1_000)
	require.NoError(t, err)
	require.Equal(t, uint64(500), fee)
	require.Equal(t, uint64(1_500), gross)
}

func TestComputeTransferAmountForExpectedOutputNilConfig(t *testing.T) {
	gross, fee, err := ComputeTransferAmountForExpectedOutput(nil, 12_345)
	require.NoError(t, err)
	require.Equal(t, uint64(12_345), gross)
	require.Zero(t, fee)
}
