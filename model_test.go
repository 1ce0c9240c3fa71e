package arc

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestModelColdStart(t *testing.T) {
	m := NewModel()
	require.Equal(t, uint64(numSymbols), m.Total())
	for i := 0; i <= numSymbols; i++ {
		require.Equal(t, uint64(i), m.cum[i])
	}

	// Observing fewer symbols than a full cycle must not disturb the
	// uniform table.
	for i := 0; i < rescaleCycle-1; i++ {
		m.Observe('x')
	}
	require.Equal(t, uint64(numSymbols), m.Total())
	require.Equal(t, uint64(1), m.High('x')-m.Low('x'))
}

func TestModelRescaleInvariants(t *testing.T) {
	m := NewModel()
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < rescaleCycle; i++ {
		m.Observe(byte(rng.Intn(numSymbols)))
	}

	require.Equal(t, uint64(precision), m.Total())
	require.Equal(t, uint64(0), m.cum[0])
	require.Equal(t, uint64(precision), m.cum[numSymbols])
	for s := 0; s < numSymbols; s++ {
		freq := m.cum[s+1] - m.cum[s]
		require.GreaterOrEqual(t, freq, uint64(1), "symbol %d lost its probability", s)
	}
}

func TestModelRescaleDominantSymbol(t *testing.T) {
	m := NewModel()
	for i := 0; i < rescaleCycle; i++ {
		m.Observe(0)
	}

	// 64 observations of symbol 0 and none of anything else: symbol 0
	// takes the whole scaled budget, every other symbol keeps the
	// smoothing unit.
	require.Equal(t, uint64(precision), m.Total())
	require.Equal(t, uint64(precision-numSymbols+1), m.High(0)-m.Low(0))
	for s := 1; s < numSymbols; s++ {
		require.Equal(t, uint64(1), m.cum[s+1]-m.cum[s])
	}
}

func TestModelLifetimeCounts(t *testing.T) {
	// The second rescale must work from the full history, not from the
	// counts since the first rescale: after 64 'a' then 64 'b', both
	// symbols have equal lifetime counts and must get equal frequencies.
	m := NewModel()
	for i := 0; i < rescaleCycle; i++ {
		m.Observe('a')
	}
	for i := 0; i < rescaleCycle; i++ {
		m.Observe('b')
	}

	require.Equal(t, uint64(precision), m.Total())
	require.Equal(t, m.High('a')-m.Low('a'), m.High('b')-m.Low('b'))
}

func TestModelEntropy(t *testing.T) {
	m := NewModel()
	require.Equal(t, 0.0, m.Entropy())

	for i := 0; i < 32; i++ {
		m.Observe('a')
		m.Observe('b')
	}
	require.InDelta(t, 1.0, m.Entropy(), 1e-12)

	m = NewModel()
	for i := 0; i < 100; i++ {
		m.Observe(0)
	}
	require.Equal(t, 0.0, m.Entropy())
}
