package dlmm

// TransferFeeConfig mirrors the SPL Token-2022 TransferFee extension's
// per-epoch fee configuration: a basis-point rate capped at a maximum
// absolute fee.
type TransferFeeConfig struct {
	TransferFeeBasisPoints uint16
	MaximumFee             uint64
}

// CalculateFee returns the fee withheld when transferring amount,
// ⌈amount * bps / BASIS_POINT_MAX⌉ capped at MaximumFee.
func (c TransferFeeConfig) CalculateFee(amount uint64) (uint64, error) {
	if c.TransferFeeBasisPoints == 0 {
		return 0, nil
	}
	raw, ok := mulU64(amount, uint64(c.TransferFeeBasisPoints))
	if !ok {
		// amount * bps can exceed 64 bits for large transfers; widen via u128.
		wide := uint128From64(amount).Mul(uint128From64(uint64(c.TransferFeeBasisPoints)))
		q := wide.Add(uint128From64(BasisPointMax - 1)).Div(uint128From64(BasisPointMax))
		fee, err := u64FromU128(q, ErrTransferFeeCalculationErr)
		if err != nil {
			return 0, err
		}
		if fee > c.MaximumFee {
			return c.MaximumFee, nil
		}
		return fee, nil
	}
	fee := raw / BasisPointMax
	if raw%BasisPointMax != 0 {
		fee++
	}
	if fee > c.MaximumFee {
		return c.MaximumFee, nil
	}
	return fee, nil
}

// CalculateInverseFee returns ⌈netAmount * bps / (BASIS_POINT_MAX - bps)⌉
// capped at MaximumFee: the fee owed on a transfer of netAmount + fee so
// that the recipient nets `netAmount` post-fee. Reports ok=false when bps
// is 100% or more, or on overflow.
func (c TransferFeeConfig) CalculateInverseFee(netAmount uint64) (uint64, bool) {
	if c.TransferFeeBasisPoints == 0 {
		return 0, true
	}
	if uint64(c.TransferFeeBasisPoints) >= BasisPointMax {
		return 0, false
	}

	numerator := uint128From64(netAmount).Mul(uint128From64(uint64(c.TransferFeeBasisPoints)))
	denominator := uint128From64(BasisPointMax - uint64(c.TransferFeeBasisPoints))

	rawFee, ok := addU128(numerator, denominator)
	if !ok {
		return 0, false
	}
	rawFee, ok = subU128(rawFee, uint128From64(1))
	if !ok {
		return 0, false
	}
	rawFee = rawFee.Div(denominator)

	fee, err := u64FromU128(rawFee, ErrTransferFeeCalculationErr)
	if err != nil {
		return 0, false
	}
	if fee > c.MaximumFee {
		return c.MaximumFee, true
	}
	return fee, true
}

// TokenTransferFee bundles the transfer-fee config observed for each side
// of a pair at the epoch the quote is computed against; nil means that
// mint is plain SPL Token with no transfer fee.
type TokenTransferFee struct {
	X *TransferFeeConfig
	Y *TransferFeeConfig
}

// ComputeTransferFee splits a raw transfer amount into what the recipient
// actually receives and what Token-2022 withholds.
func ComputeTransferFee(cfg *TransferFeeConfig, amount uint64) (transferred, fee uint64, err error) {
	if cfg == nil {
		return amount, 0, nil
	}
	fee, err = cfg.CalculateFee(amount)
	if err != nil {
		return 0, 0, err
	}
	transferred, ok := subU64(amount, fee)
	if !ok {
		return 0, 0, newErr(ErrTransferFeeCalculationErr, "fee exceeds amount")
	}
	return transferred, fee, nil
}

// ComputeTransferAmountForExpectedOutput grosses up expectedOutput so that,
// after Token-2022 withholds its transfer fee, the recipient still nets
// expectedOutput. Handles the 100%-fee edge case where the inverse-fee
// formula is undefined and SPL instead falls back to MaximumFee, and
// verifies the result forward before returning it.
func ComputeTransferAmountForExpectedOutput(cfg *TransferFeeConfig, expectedOutput uint64) (grossAmount, fee uint64, err error) {
	if expectedOutput == 0 {
		return 0, 0, nil
	}
	if cfg == nil {
		return expectedOutput, 0, nil
	}

	var transferFee uint64
	if uint64(cfg.TransferFeeBasisPoints) == BasisPointMax {
		transferFee = cfg.MaximumFee
	} else {
		var ok bool
		transferFee, ok = cfg.CalculateInverseFee(expectedOutput)
		if !ok {
			return 0, 0, newErr(ErrTransferFeeCalculationErr, "inverse fee calculation failed")
		}
	}

	grossAmount, ok := addU64(expectedOutput, transferFee)
	if !ok {
		return 0, 0, newErr(ErrTransferFeeCalculationErr, "gross amount overflow")
	}

	verifyFee, err := cfg.CalculateFee(grossAmount)
	if err != nil {
		return 0, 0, err
	}
	if verifyFee != transferFee {
		return 0, 0, newErr(ErrTransferFeeCalculationErr, "forward fee recomputation mismatch")
	}

	return grossAmount, transferFee, nil
}
