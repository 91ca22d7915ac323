// Package dlmm implements the quoting and execution-simulation core of a
// discretized-liquidity (bin-based) constant-sum-per-bin AMM: fixed-point
// price derivation, dynamic volatility fee, cross-bin swap loop, and
// transfer-fee wrapping, reproducing the on-chain arithmetic bit-exactly.
package dlmm

// BinArraySize is the fixed number of consecutive bins held by one
// BinArray account.
const BinArraySize = 256

// MiddleBinID is the "centre" bin: the identity price (1.0 in 64.64) sits
// here regardless of bin step.
const MiddleBinID = 1 << 23 // 2^23

// MaxActiveID is the largest valid active bin id.
const MaxActiveID = 1<<24 - 1 // 2^24 - 1

// MaxBinCrossing bounds how many bins a single swap may traverse.
const MaxBinCrossing = 30

// BasisPointMax is the basis-point denominator (100%).
const BasisPointMax = 10_000

// Precision is the fixed-point unit fee rates are expressed in.
const Precision = 1_000_000_000

// SquaredPrecision is Precision^2, used by the composition-fee formula.
const SquaredPrecision = 1_000_000_000_000_000_000

// VariableFeePrecision scales the variable-fee polynomial.
const VariableFeePrecision = 100_000_000_000

// MaxProtocolShare caps the protocol's basis-point cut of the swap fee.
const MaxProtocolShare = 2_500

// ScaleOffset is the 64.64 fixed-point shift.
const ScaleOffset = 64
