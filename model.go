package arc

import (
	"fmt"
	"math"
)

const (
	// numSymbols is the size of the byte alphabet.
	numSymbols = 256

	// precision is the denominator all probabilities are expressed over after a rescale.
	// It must leave enough headroom below 1<<32 for the interval arithmetic in the coder,
	// and enough headroom above numSymbols for the +1 smoothing in rescale.
	precision = 1 << 30

	// rescaleCycle is the number of observed symbols between rescales.
	rescaleCycle = 64
)

// A Model is an adaptive probabilistic model on a sequence of bytes.
// It maintains a cumulative frequency table over the byte alphabet,
// rebuilt every rescaleCycle symbols from the lifetime symbol counts.
//
// The encoder and decoder each own a Model and feed it the exact same
// symbol sequence, which keeps the two tables synchronized without any
// model state ever being transmitted.
type Model struct {
	// cum[s] is the cumulative frequency of all symbols below s, so that
	// symbol s owns the sub-interval [cum[s], cum[s+1]) out of total.
	cum   [numSymbols + 1]uint64
	total uint64

	// counts holds lifetime occurrence counts. They are never reset;
	// every rescale works from the full history, so the table grows more
	// stable the longer the sequence runs.
	counts [numSymbols]uint64

	sinceRescale int
}

// NewModel returns a Model in its cold-start state,
// assigning every symbol the same frequency of one.
func NewModel() *Model {
	m := &Model{}
	for i := range m.cum {
		m.cum[i] = uint64(i)
	}
	m.total = numSymbols
	return m
}

// Low returns the lower cumulative frequency bound of symbol c.
func (m *Model) Low(c byte) uint64 {
	return m.cum[c]
}

// High returns the upper cumulative frequency bound of symbol c.
func (m *Model) High(c byte) uint64 {
	return m.cum[int(c)+1]
}

// Total returns the denominator of the current probabilities.
// It is numSymbols before the first rescale and exactly precision after.
func (m *Model) Total() uint64 {
	return m.total
}

// Observe informs the Model that symbol c is the next in the sequence.
func (m *Model) Observe(c byte) {
	m.counts[c]++
	m.sinceRescale++
	if m.sinceRescale >= rescaleCycle {
		m.sinceRescale = 0
		m.rescale()
	}
}

// rescale rebuilds the cumulative table from the lifetime counts,
// scaled so it sums to precision exactly.
//
// Each symbol gets floor(count*k)+1 so that unseen symbols keep a
// non-zero frequency and stay encodable. The flooring leaves a deficit
// of less than numSymbols below precision, which is handed out one unit
// at a time to the first symbols in index order. This also absorbs any
// rounding from the floating point scale factor.
func (m *Model) rescale() {
	var sum uint64
	for _, n := range m.counts {
		sum += n
	}
	k := float64(precision-numSymbols) / float64(sum)

	var freq [numSymbols]uint64
	var all uint64
	for i, n := range m.counts {
		freq[i] = uint64(float64(n)*k) + 1
		all += freq[i]
	}
	deficit := precision - all
	for i := uint64(0); i < deficit; i++ {
		freq[i]++
	}

	var cum uint64
	for i, f := range freq {
		cum += f
		m.cum[i+1] = cum
	}
	if m.cum[numSymbols] != precision {
		// An inexact total desynchronizes the encoder and decoder
		// irrecoverably, so there is no point continuing.
		panic(fmt.Sprintf("arc: rescaled frequencies sum to %d, want %d", m.cum[numSymbols], uint64(precision)))
	}
	m.total = precision
}

// Entropy returns the Shannon entropy in bits per symbol of the
// distribution observed so far, or 0 if nothing has been observed.
func (m *Model) Entropy() float64 {
	var sum uint64
	for _, n := range m.counts {
		sum += n
	}
	if sum == 0 {
		return 0
	}
	var h float64
	for _, n := range m.counts {
		if n == 0 {
			continue
		}
		p := float64(n) / float64(sum)
		h -= p * math.Log2(p)
	}
	return h
}
