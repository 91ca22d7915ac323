package dlmm

// feeAmount returns the fee portion of an input amount that already
// includes the fee, rounding up so the protocol never under-collects.
func feeAmount(amount, fee uint64) (uint64, error) {
	num := uint128From64(amount).Mul(uint128From64(fee))
	num, ok := addU128(num, uint128From64(Precision))
	if !ok {
		return 0, newErr(ErrAmountOverflow, "get_fee_amount: overflow")
	}
	num, ok = subU128(num, uint128From64(1))
	if !ok {
		return 0, newErr(ErrAmountUnderflow, "get_fee_amount: underflow")
	}
	q := num.Div(uint128From64(Precision))
	return u64FromU128(q, ErrAmountOverflow)
}

// feeForAmount returns the fee owed so that, after deducting it, the
// remaining amount equals exactly `amount` (used by exact-out quoting).
func feeForAmount(amount, fee uint64) (uint64, error) {
	if fee >= Precision {
		return 0, newErr(ErrAmountUnderflow, "get_fee_for_amount: fee rate >= precision")
	}
	denominator := Precision - fee

	num := uint128From64(amount).Mul(uint128From64(fee))
	num, ok := addU128(num, uint128From64(denominator))
	if !ok {
		return 0, newErr(ErrAmountOverflow, "get_fee_for_amount: overflow")
	}
	num, ok = subU128(num, uint128From64(1))
	if !ok {
		return 0, newErr(ErrAmountUnderflow, "get_fee_for_amount: underflow")
	}
	if denominator == 0 {
		return 0, newErr(ErrDivideByZero, "get_fee_for_amount: zero denominator")
	}
	q := num.Div(uint128From64(denominator))
	return u64FromU128(q, ErrAmountOverflow)
}

// protocolFeeOf returns the protocol's basis-point cut of a fee amount.
func protocolFeeOf(fee, protocolShare uint64) (uint64, error) {
	q := uint128From64(fee).Mul(uint128From64(protocolShare)).Div(uint128From64(BasisPointMax))
	return u64FromU128(q, ErrAmountOverflow)
}

// BaseFee is the constant component of the swap fee, in PRECISION units:
// base_factor * bin_step * 10.
func (p *Pair) BaseFee() (uint64, error) {
	bf := uint64(p.StaticFeeParameters.BaseFactor)
	bf, ok := mulU64(bf, uint64(p.BinStep))
	if !ok {
		return 0, newErr(ErrAmountOverflow, "base_fee: overflow")
	}
	bf, ok = mulU64(bf, 10)
	if !ok {
		return 0, newErr(ErrAmountOverflow, "base_fee: overflow")
	}
	return bf, nil
}

// VariableFee is the volatility-driven component of the swap fee, rounded
// up: ceil((volatility_accumulator * bin_step)^2 * variable_fee_control / VARIABLE_FEE_PRECISION).
func (p *Pair) VariableFee() (uint64, error) {
	control := p.StaticFeeParameters.VariableFeeControl
	if control == 0 {
		return 0, nil
	}

	prod := uint128From64(uint64(p.DynamicFeeParameters.VolatilityAccumulator)).Mul(uint128From64(uint64(p.BinStep)))
	squared := prod.Mul(prod)

	variableFee, ok := mulU128(squared, uint128From64(uint64(control)))
	if !ok {
		return 0, newErr(ErrAmountOverflow, "variable_fee: overflow")
	}
	variableFee, ok = addU128(variableFee, uint128From64(VariableFeePrecision))
	if !ok {
		return 0, newErr(ErrAmountOverflow, "variable_fee: overflow")
	}
	variableFee, ok = subU128(variableFee, uint128From64(1))
	if !ok {
		return 0, newErr(ErrAmountUnderflow, "variable_fee: underflow")
	}
	variableFee = variableFee.Div(uint128From64(VariableFeePrecision))

	return u64FromU128(variableFee, ErrU64ConversionOverflow)
}

// TotalFee is base_fee + variable_fee, in PRECISION units.
func (p *Pair) TotalFee() (uint64, error) {
	base, err := p.BaseFee()
	if err != nil {
		return 0, err
	}
	variable, err := p.VariableFee()
	if err != nil {
		return 0, err
	}
	total, ok := addU64(base, variable)
	if !ok {
		return 0, newErr(ErrAmountOverflow, "total_fee: overflow")
	}
	return total, nil
}

// CompositionFee is the extra fee charged on liquidity-composition deposits
// that rebalance a bin: amount * fee * (fee + PRECISION) / PRECISION^2.
func (p *Pair) CompositionFee(amount uint64) (uint64, error) {
	fee, err := p.TotalFee()
	if err != nil {
		return 0, err
	}
	feePlusPrecision, ok := addU64(fee, Precision)
	if !ok {
		return 0, newErr(ErrAmountOverflow, "composition_fee: overflow")
	}

	product, ok := mulU128(uint128From64(amount), uint128From64(fee))
	if !ok {
		return 0, newErr(ErrAmountOverflow, "composition_fee: overflow")
	}
	product, ok = mulU128(product, uint128From64(feePlusPrecision))
	if !ok {
		return 0, newErr(ErrAmountOverflow, "composition_fee: overflow")
	}
	result := product.Div(uint128From64(SquaredPrecision))

	return u64FromU128(result, ErrU64ConversionOverflow)
}

// ProtocolShare is the protocol's cut of the swap fee, in basis points.
func (p *Pair) ProtocolShare() uint64 {
	return uint64(p.StaticFeeParameters.ProtocolShare)
}
