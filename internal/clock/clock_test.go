package clock

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMicrosTruncatesTo32Bits(t *testing.T) {
	assert.Equal(t, uint32(1500), Micros(int64(1500*time.Microsecond)))

	// 2^32 µs wraps back to zero.
	wrap := int64(math.MaxUint32+1) * 1000
	assert.Equal(t, uint32(0), Micros(wrap))
	assert.Equal(t, uint32(7), Micros(wrap+7000))
}

func TestMonotonicAdvances(t *testing.T) {
	m, err := NewMonotonic()
	require.NoError(t, err)

	a := m.Micros()
	time.Sleep(2 * time.Millisecond)
	b := m.Micros()

	assert.GreaterOrEqual(t, b-a, uint32(2000), "elapsed ticks across sleep")
}

func TestFakeSourceWraps(t *testing.T) {
	f := NewFakeSource(math.MaxUint32 - 10)
	assert.Equal(t, uint32(math.MaxUint32-10), f.Micros())

	f.Advance(20)
	assert.Equal(t, uint32(9), f.Micros())

	f.Set(42)
	assert.Equal(t, uint32(42), f.Micros())
}
