package arc

const (
	topValue = 0xFFFFFFFF
	firstQtr = 0x40000000
	half     = 0x80000000
	thirdQtr = 0xC0000000
)

// An encoder carries the interval state required during encoding.
type encoder struct {
	low     uint32
	high    uint32
	pending int
	code    *Code
}

// bitPlusFollow emits bit followed by the deferred complementary bits
// accumulated by the underflow case.
func (e *encoder) bitPlusFollow(bit int) {
	e.code.AddBit(bit)
	for ; e.pending > 0; e.pending-- {
		e.code.AddBit(1 - bit)
	}
}

// Encode arithmetic-codes src against a fresh adaptive model.
// It returns the resulting code and the model in its final state,
// which callers may use for reporting.
func Encode(src []byte) (*Code, *Model) {
	model := NewModel()
	e := &encoder{high: topValue, code: &Code{Chars: len(src)}}

	for _, c := range src {
		arange := uint64(e.high) - uint64(e.low) + 1
		e.high = uint32(uint64(e.low) + arange*model.High(c)/model.Total() - 1)
		e.low = uint32(uint64(e.low) + arange*model.Low(c)/model.Total())

		for {
			if e.high < half {
				// Interval settled in the lower half.
				e.bitPlusFollow(0)
				e.low <<= 1
				e.high = e.high<<1 | 1
			} else if e.low >= half {
				// Interval settled in the upper half.
				e.bitPlusFollow(1)
				e.low <<= 1
				e.high = e.high<<1 | 1
			} else if e.low >= firstQtr && e.high < thirdQtr {
				// Underflow: the interval straddles the midpoint too
				// tightly to decide. Shift out the second bit and defer
				// the decision.
				e.pending++
				e.low = e.low << 1 & (half - 1)
				e.high = e.high<<1 | (half | 1)
			} else {
				break
			}
		}

		model.Observe(c)
	}

	// One final bit pins the remaining interval. The decoder never needs
	// more than this because it stops at the known symbol count.
	e.bitPlusFollow(1)
	return e.code, model
}

// A decoder carries the interval state required during decoding.
// value is the window over the incoming bits, kept within [low, high].
type decoder struct {
	low   uint32
	high  uint32
	value uint32
	code  *Code
}

func (d *decoder) shiftIn() {
	d.low <<= 1
	d.high = d.high<<1 | 1
	d.value = d.value<<1 | uint32(d.code.NextBit())
}

// decodeSymbol finds the symbol whose sub-interval contains value.
// The boundaries must replicate the encoder's truncating division
// exactly, so they are computed the same way as the narrowing step.
func (d *decoder) decodeSymbol(arange uint64, model *Model) byte {
	for s := 0; s < numSymbols-1; s++ {
		if uint64(d.value) < uint64(d.low)+arange*model.High(byte(s))/model.Total() {
			return byte(s)
		}
	}
	return numSymbols - 1
}

// Decode reconstructs the symbols of code against a fresh adaptive
// model, which evolves through the exact same states as the encoder's.
// It produces exactly code.Chars symbols; a corrupt payload therefore
// yields divergent output rather than an error.
func Decode(code *Code) ([]byte, *Model) {
	model := NewModel()
	d := &decoder{high: topValue, code: code}
	for i := 0; i < 32; i++ {
		d.value = d.value<<1 | uint32(code.NextBit())
	}

	out := make([]byte, 0, code.Chars)
	for i := 0; i < code.Chars; i++ {
		arange := uint64(d.high) - uint64(d.low) + 1
		c := d.decodeSymbol(arange, model)
		out = append(out, c)

		d.high = uint32(uint64(d.low) + arange*model.High(c)/model.Total() - 1)
		d.low = uint32(uint64(d.low) + arange*model.Low(c)/model.Total())

		for {
			if d.high < half {
				// Top bits already agree, just shift them out.
			} else if d.low >= half {
				d.value -= half
				d.low -= half
				d.high -= half
			} else if d.low >= firstQtr && d.high < thirdQtr {
				d.value -= firstQtr
				d.low -= firstQtr
				d.high -= firstQtr
			} else {
				break
			}
			d.shiftIn()
		}

		model.Observe(c)
	}
	return out, model
}
