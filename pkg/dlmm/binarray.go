package dlmm

import "github.com/gagliardetto/solana-go"

// BinArray holds BinArraySize consecutive bins for one pair.
type BinArray struct {
	Pair  solana.PublicKey
	Bins  [BinArraySize]Bin
	Index uint32
}

// binArrayIndexFromBinID returns the index of the BinArray that owns binID.
func binArrayIndexFromBinID(binID uint32) uint32 {
	return binID / BinArraySize
}

// Contains reports whether binID falls within this array's range.
func (a *BinArray) Contains(binID uint32) bool {
	return binArrayIndexFromBinID(binID) == a.Index
}

// GetBin returns the bin at binID, or ErrBinNotFound if out of range.
func (a *BinArray) GetBin(binID uint32) (*Bin, error) {
	if !a.Contains(binID) {
		return nil, newErr(ErrBinNotFound, "bin id outside bin array range")
	}
	return &a.Bins[binID%BinArraySize], nil
}

// BinArrayPair merges two adjacent BinArrays (lower, lower+1) so a swap
// can cross the boundary between them without a second account fetch.
type BinArrayPair struct {
	Lower BinArray
	Upper BinArray
}

// MergeBinArrays builds a BinArrayPair from two adjacent arrays, failing
// if they are not consecutive.
func MergeBinArrays(lower, upper BinArray) (BinArrayPair, error) {
	if upper.Index != lower.Index+1 {
		return BinArrayPair{}, newErr(ErrBinArrayIndexMismatch, "bin arrays are not adjacent")
	}
	return BinArrayPair{Lower: lower, Upper: upper}, nil
}

// GetBin returns the bin at binID from whichever half of the pair owns it.
func (p *BinArrayPair) GetBin(binID uint32) (*Bin, error) {
	if b, err := p.Lower.GetBin(binID); err == nil {
		return b, nil
	}
	return p.Upper.GetBin(binID)
}
