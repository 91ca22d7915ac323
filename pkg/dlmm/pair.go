package dlmm

import "github.com/gagliardetto/solana-go"

// StaticFeeParameters are the pool creator's fixed fee configuration,
// unpacked from the Pair account's static_fee_parameters field.
type StaticFeeParameters struct {
	BaseFactor               uint16
	FilterPeriod             uint16
	DecayPeriod              uint16
	ReductionFactor          uint16
	VariableFeeControl       uint32
	MaxVolatilityAccumulator uint32
	ProtocolShare            uint16
}

// DynamicFeeParameters are the volatility state the fee curve evolves on
// every swap and on each new block it observes.
type DynamicFeeParameters struct {
	TimeLastUpdated       uint64
	VolatilityAccumulator uint32
	VolatilityReference   uint32
	IDReference           uint32
}

// Pair is one bin-step market between two mints.
type Pair struct {
	Bump                  uint8
	LiquidityBookConfig   solana.PublicKey
	BinStep               uint8
	TokenMintX            solana.PublicKey
	TokenMintY            solana.PublicKey
	StaticFeeParameters   StaticFeeParameters
	ActiveID              uint32
	DynamicFeeParameters  DynamicFeeParameters
	ProtocolFeesX         uint64
	ProtocolFeesY         uint64
	Hook                  *solana.PublicKey
}

// BinArrayIndex returns the index of the BinArray holding the active bin.
func (p *Pair) BinArrayIndex() uint32 {
	return p.ActiveID / BinArraySize
}

// ResolveSwapForY derives the swap direction from the input mint and swap
// mode: for ExactIn the input mint tells you which side the trader is
// selling; for ExactOut it tells you which side they're buying, so the
// sense flips.
func (p *Pair) ResolveSwapForY(inputMint solana.PublicKey, mode SwapMode) (bool, error) {
	switch mode {
	case ExactIn:
		switch inputMint {
		case p.TokenMintX:
			return true, nil
		case p.TokenMintY:
			return false, nil
		default:
			return false, newErr(ErrInvalidMint, "input mint matches neither side of the pair")
		}
	case ExactOut:
		switch inputMint {
		case p.TokenMintX:
			return false, nil
		case p.TokenMintY:
			return true, nil
		default:
			return false, newErr(ErrInvalidMint, "input mint matches neither side of the pair")
		}
	default:
		return false, newErr(ErrInvalidAmountIn, "unknown swap mode")
	}
}

// UpdateReferences refreshes the volatility reference point ahead of a
// swap if enough time has elapsed since the last update. Must run once
// per swap before the per-bin-crossing volatility accumulator update.
func (p *Pair) UpdateReferences(blockTimestamp uint64) error {
	// A clock regression (blockTimestamp before the last recorded update)
	// is treated as a no-op window rather than wrapping to a huge delta.
	var timeDelta uint64
	if blockTimestamp > p.DynamicFeeParameters.TimeLastUpdated {
		timeDelta = blockTimestamp - p.DynamicFeeParameters.TimeLastUpdated
	}

	if timeDelta >= uint64(p.StaticFeeParameters.FilterPeriod) {
		p.DynamicFeeParameters.IDReference = p.ActiveID

		if timeDelta >= uint64(p.StaticFeeParameters.DecayPeriod) {
			p.DynamicFeeParameters.VolatilityReference = 0
		} else if err := p.updateVolatilityReference(); err != nil {
			return err
		}
	}

	p.DynamicFeeParameters.TimeLastUpdated = blockTimestamp
	return nil
}

func (p *Pair) updateVolatilityReference() error {
	accumulator := uint64(p.DynamicFeeParameters.VolatilityAccumulator)
	scaled, ok := mulU64(accumulator, uint64(p.StaticFeeParameters.ReductionFactor))
	if !ok {
		return newErr(ErrAmountOverflow, "update_volatility_reference: overflow")
	}
	p.DynamicFeeParameters.VolatilityReference = uint32(scaled / BasisPointMax)
	return nil
}

// UpdateVolatilityAccumulator recomputes the volatility accumulator from
// the distance between the active bin and the reference bin, clamped to
// MaxVolatilityAccumulator. Runs on every bin crossing within a swap.
func (p *Pair) UpdateVolatilityAccumulator() error {
	deltaID := absDiffU32(p.ActiveID, p.DynamicFeeParameters.IDReference)

	acc, ok := mulU64(uint64(deltaID), BasisPointMax)
	if !ok {
		return newErr(ErrAmountOverflow, "update_volatility_accumulator: overflow")
	}
	acc, ok = addU64(acc, uint64(p.DynamicFeeParameters.VolatilityReference))
	if !ok {
		return newErr(ErrAmountOverflow, "update_volatility_accumulator: overflow")
	}

	maxAcc := uint64(p.StaticFeeParameters.MaxVolatilityAccumulator)
	if acc > maxAcc {
		p.DynamicFeeParameters.VolatilityAccumulator = p.StaticFeeParameters.MaxVolatilityAccumulator
		return nil
	}
	p.DynamicFeeParameters.VolatilityAccumulator = uint32(acc)
	return nil
}

// MoveActiveID shifts the active bin one step in the direction the swap
// is consuming liquidity: left (down) when selling X for Y, right (up)
// otherwise.
func (p *Pair) MoveActiveID(swapForY bool) error {
	if swapForY {
		if p.ActiveID == 0 {
			return newErr(ErrActiveIDUnderflow, "active id cannot go below zero")
		}
		p.ActiveID--
		return nil
	}
	if p.ActiveID >= MaxActiveID {
		return newErr(ErrActiveIDOverflow, "active id cannot exceed MAX_ACTIVE_ID")
	}
	p.ActiveID++
	return nil
}

// accrueProtocolFee adds a bin crossing's protocol-fee share into the
// pair's running total on the side the swap is selling into.
func (p *Pair) accrueProtocolFee(swapForY bool, protocolFee uint64) error {
	var ok bool
	if swapForY {
		p.ProtocolFeesX, ok = addU64(p.ProtocolFeesX, protocolFee)
	} else {
		p.ProtocolFeesY, ok = addU64(p.ProtocolFeesY, protocolFee)
	}
	if !ok {
		return newErr(ErrAmountOverflow, "accrue_protocol_fee: overflow")
	}
	return nil
}

func absDiffU32(a, b uint32) uint32 {
	if a > b {
		return a - b
	}
	return b - a
}
