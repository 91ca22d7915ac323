package dlmm

import (
	"encoding/binary"

	"github.com/gagliardetto/solana-go"
	"github.com/solana-zh/dlmm-quoter/pkg/anchor"
	"lukechampine.com/uint128"
)

const (
	pairLen                 = 204
	binLen                  = 32
	binArrayLen             = 8 + 32 + int(BinArraySize)*binLen + 4 + 12
	staticFeeParametersLen  = 20
	dynamicFeeParametersLen = 24
)

var (
	pairDiscriminator     = anchor.GetDiscriminator("account", "Pair")
	binArrayDiscriminator = anchor.GetDiscriminator("account", "BinArray")
)

// DecodeStaticFeeParameters unpacks the 20-byte static_fee_parameters
// field embedded in a Pair account, matching Rust's #[repr] field order.
func DecodeStaticFeeParameters(b []byte) (StaticFeeParameters, error) {
	if len(b) < staticFeeParametersLen {
		return StaticFeeParameters{}, newErr(ErrDecodeError, "static fee parameters: short buffer")
	}
	return StaticFeeParameters{
		BaseFactor:               binary.LittleEndian.Uint16(b[0:2]),
		FilterPeriod:             binary.LittleEndian.Uint16(b[2:4]),
		DecayPeriod:              binary.LittleEndian.Uint16(b[4:6]),
		ReductionFactor:          binary.LittleEndian.Uint16(b[6:8]),
		VariableFeeControl:       binary.LittleEndian.Uint32(b[8:12]),
		MaxVolatilityAccumulator: binary.LittleEndian.Uint32(b[12:16]),
		ProtocolShare:            binary.LittleEndian.Uint16(b[16:18]),
		// b[18:20] is reserved padding.
	}, nil
}

// EncodeStaticFeeParameters packs StaticFeeParameters back to its 20-byte
// on-chain layout.
func EncodeStaticFeeParameters(p StaticFeeParameters) []byte {
	out := make([]byte, staticFeeParametersLen)
	binary.LittleEndian.PutUint16(out[0:2], p.BaseFactor)
	binary.LittleEndian.PutUint16(out[2:4], p.FilterPeriod)
	binary.LittleEndian.PutUint16(out[4:6], p.DecayPeriod)
	binary.LittleEndian.PutUint16(out[6:8], p.ReductionFactor)
	binary.LittleEndian.PutUint32(out[8:12], p.VariableFeeControl)
	binary.LittleEndian.PutUint32(out[12:16], p.MaxVolatilityAccumulator)
	binary.LittleEndian.PutUint16(out[16:18], p.ProtocolShare)
	return out
}

// DecodeDynamicFeeParameters unpacks the 24-byte dynamic_fee_parameters
// field embedded in a Pair account.
func DecodeDynamicFeeParameters(b []byte) (DynamicFeeParameters, error) {
	if len(b) < dynamicFeeParametersLen {
		return DynamicFeeParameters{}, newErr(ErrDecodeError, "dynamic fee parameters: short buffer")
	}
	return DynamicFeeParameters{
		TimeLastUpdated:       binary.LittleEndian.Uint64(b[0:8]),
		VolatilityAccumulator: binary.LittleEndian.Uint32(b[8:12]),
		VolatilityReference:   binary.LittleEndian.Uint32(b[12:16]),
		IDReference:           binary.LittleEndian.Uint32(b[16:20]),
		// b[20:24] is reserved padding.
	}, nil
}

// EncodeDynamicFeeParameters packs DynamicFeeParameters back to its
// 24-byte on-chain layout.
func EncodeDynamicFeeParameters(p DynamicFeeParameters) []byte {
	out := make([]byte, dynamicFeeParametersLen)
	binary.LittleEndian.PutUint64(out[0:8], p.TimeLastUpdated)
	binary.LittleEndian.PutUint32(out[8:12], p.VolatilityAccumulator)
	binary.LittleEndian.PutUint32(out[12:16], p.VolatilityReference)
	binary.LittleEndian.PutUint32(out[16:20], p.IDReference)
	return out
}

// DecodePair unpacks a 204-byte Pair account, verifying its discriminator.
func DecodePair(b []byte) (*Pair, error) {
	if len(b) < pairLen {
		return nil, newErr(ErrDecodeError, "pair: short buffer")
	}
	if !bytesEqual(b[0:8], pairDiscriminator) {
		return nil, newErr(ErrDecodeError, "pair: discriminator mismatch")
	}

	off := 8
	bump := b[off]
	off++
	liquidityBookConfig := solana.PublicKeyFromBytes(b[off : off+32])
	off += 32
	binStep := b[off]
	off++
	binStepSeed := b[off]
	off++
	tokenMintX := solana.PublicKeyFromBytes(b[off : off+32])
	off += 32
	tokenMintY := solana.PublicKeyFromBytes(b[off : off+32])
	off += 32

	staticFee, err := DecodeStaticFeeParameters(b[off : off+staticFeeParametersLen])
	if err != nil {
		return nil, err
	}
	off += staticFeeParametersLen

	activeID := binary.LittleEndian.Uint32(b[off : off+4])
	off += 4

	dynamicFee, err := DecodeDynamicFeeParameters(b[off : off+dynamicFeeParametersLen])
	if err != nil {
		return nil, err
	}
	off += dynamicFeeParametersLen

	protocolFeesX := binary.LittleEndian.Uint64(b[off : off+8])
	off += 8
	protocolFeesY := binary.LittleEndian.Uint64(b[off : off+8])
	off += 8

	hookFlag := b[off]
	off++
	var hook *solana.PublicKey
	switch hookFlag {
	case 0:
		hook = nil
	case 1:
		h := solana.PublicKeyFromBytes(b[off : off+32])
		hook = &h
	default:
		return nil, newErr(ErrDecodeError, "pair: invalid hook flag")
	}
	off += 32

	_ = binStepSeed // on-chain PDA bump seed, not used by the pure quoting core

	return &Pair{
		Bump:                 bump,
		LiquidityBookConfig:  liquidityBookConfig,
		BinStep:              binStep,
		TokenMintX:           tokenMintX,
		TokenMintY:           tokenMintY,
		StaticFeeParameters:  staticFee,
		ActiveID:             activeID,
		DynamicFeeParameters: dynamicFee,
		ProtocolFeesX:        protocolFeesX,
		ProtocolFeesY:        protocolFeesY,
		Hook:                 hook,
	}, nil
}

// EncodePair packs a Pair back into its 204-byte on-chain layout.
func EncodePair(p *Pair) []byte {
	out := make([]byte, pairLen)
	off := 0
	copy(out[off:off+8], pairDiscriminator)
	off += 8
	out[off] = p.Bump
	off++
	copy(out[off:off+32], p.LiquidityBookConfig[:])
	off += 32
	out[off] = p.BinStep
	off++
	off++ // bin_step_seed, left zero: not used by the pure quoting core
	copy(out[off:off+32], p.TokenMintX[:])
	off += 32
	copy(out[off:off+32], p.TokenMintY[:])
	off += 32
	copy(out[off:off+staticFeeParametersLen], EncodeStaticFeeParameters(p.StaticFeeParameters))
	off += staticFeeParametersLen
	binary.LittleEndian.PutUint32(out[off:off+4], p.ActiveID)
	off += 4
	copy(out[off:off+dynamicFeeParametersLen], EncodeDynamicFeeParameters(p.DynamicFeeParameters))
	off += dynamicFeeParametersLen
	binary.LittleEndian.PutUint64(out[off:off+8], p.ProtocolFeesX)
	off += 8
	binary.LittleEndian.PutUint64(out[off:off+8], p.ProtocolFeesY)
	off += 8
	if p.Hook != nil {
		out[off] = 1
		off++
		copy(out[off:off+32], (*p.Hook)[:])
	} else {
		out[off] = 0
	}
	return out
}

// DecodeBin unpacks a 32-byte Bin.
func DecodeBin(b []byte) (Bin, error) {
	if len(b) < binLen {
		return Bin{}, newErr(ErrDecodeError, "bin: short buffer")
	}
	return Bin{
		TotalSupply: uint128.New(binary.LittleEndian.Uint64(b[0:8]), binary.LittleEndian.Uint64(b[8:16])),
		ReserveX:    binary.LittleEndian.Uint64(b[16:24]),
		ReserveY:    binary.LittleEndian.Uint64(b[24:32]),
	}, nil
}

// EncodeBin packs a Bin back into its 32-byte on-chain layout.
func EncodeBin(bin Bin) []byte {
	out := make([]byte, binLen)
	binary.LittleEndian.PutUint64(out[0:8], bin.TotalSupply.Lo)
	binary.LittleEndian.PutUint64(out[8:16], bin.TotalSupply.Hi)
	binary.LittleEndian.PutUint64(out[16:24], bin.ReserveX)
	binary.LittleEndian.PutUint64(out[24:32], bin.ReserveY)
	return out
}

// DecodeBinArray unpacks a BinArray account, verifying its discriminator.
func DecodeBinArray(b []byte) (*BinArray, error) {
	if len(b) < binArrayLen {
		return nil, newErr(ErrDecodeError, "bin array: short buffer")
	}
	if !bytesEqual(b[0:8], binArrayDiscriminator) {
		return nil, newErr(ErrDecodeError, "bin array: discriminator mismatch")
	}

	off := 8
	pair := solana.PublicKeyFromBytes(b[off : off+32])
	off += 32

	var a BinArray
	a.Pair = pair
	for i := 0; i < int(BinArraySize); i++ {
		bin, err := DecodeBin(b[off : off+binLen])
		if err != nil {
			return nil, err
		}
		a.Bins[i] = bin
		off += binLen
	}

	a.Index = binary.LittleEndian.Uint32(b[off : off+4])
	return &a, nil
}

// EncodeBinArray packs a BinArray back into its on-chain layout.
func EncodeBinArray(a *BinArray) []byte {
	out := make([]byte, binArrayLen)
	off := 0
	copy(out[off:off+8], binArrayDiscriminator)
	off += 8
	copy(out[off:off+32], a.Pair[:])
	off += 32
	for i := 0; i < int(BinArraySize); i++ {
		copy(out[off:off+binLen], EncodeBin(a.Bins[i]))
		off += binLen
	}
	binary.LittleEndian.PutUint32(out[off:off+4], a.Index)
	return out
}

func bytesEqual(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
