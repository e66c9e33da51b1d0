package debug

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryDumpValueAndCounter(t *testing.T) {
	var irq Interrupts
	x := NewValue("X")
	c := NewCounter("C", &irq)
	reg := NewRegistry(x, c)

	x.Set(42)
	c.Inc()
	c.Inc()
	c.Inc()
	reg.Tick1secPeriod()
	reg.Tick10secPeriod()

	assert.Equal(t, "X = 42\nC = 3 / 3 / 3\n", string(reg.Dump(nil)))
}

func TestRegistryDumpClearsSink(t *testing.T) {
	reg := NewRegistry(NewValue("A"))
	buf := []byte("stale contents\n")

	buf = reg.Dump(buf)
	assert.Equal(t, "A = 0\n", string(buf))
}

func TestRegistryDumpReusesCapacity(t *testing.T) {
	reg := NewRegistry(NewValue("A"), NewDuration("B", nil))
	buf := make([]byte, 0, 256)

	out := reg.Dump(buf)
	assert.Equal(t, &buf[:1][0], &out[:1][0], "dump should append in place")
}

func TestRegistryDumpUntouchedDuration(t *testing.T) {
	reg := NewRegistry(NewDuration("D", nil))
	reg.Tick1secPeriod()

	assert.Equal(t, "D = 0 0 0 / 0 0 0 / 4294967295 0\n", string(reg.Dump(nil)))
}

func TestRegistryOrderIsInsertionOrder(t *testing.T) {
	reg := NewRegistry(NewValue("B"), NewValue("A"), NewValue("C"))
	assert.Equal(t, "B = 0\nA = 0\nC = 0\n", string(reg.Dump(nil)))
	assert.Equal(t, 3, reg.Len())
}

func TestRegistryBroadcastSkipsValues(t *testing.T) {
	v := NewValue("V")
	d := NewDuration("D", nil)
	reg := NewRegistry(v, d)

	v.Set(7)
	d.Tick(0)
	d.Tick(10)
	reg.Tick1secPeriod()

	assert.Equal(t, "V = 7\nD = 10 10 10 / 0 0 0 / 10 10\n", string(reg.Dump(nil)))
}

func TestRegistryLookup(t *testing.T) {
	c := NewCounter("ADC_COUNTER", nil)
	reg := NewRegistry(NewValue("CH1 U_DAC"), c)

	assert.Same(t, c, reg.Lookup("ADC_COUNTER"))
	assert.Nil(t, reg.Lookup("missing"))
}

func TestRegistryRead(t *testing.T) {
	v := NewValue("V")
	d := NewDuration("D", nil)
	c := NewCounter("C", nil)
	reg := NewRegistry(v, d, c)

	v.Set(-5)
	d.Tick(100)
	d.Tick(130)
	c.Inc()
	c.Inc()
	reg.Tick1secPeriod()

	got := reg.Read(nil)
	require.Len(t, got, 3)

	assert.Equal(t, Reading{Name: "V", Kind: KindValue, Value: -5}, got[0])
	assert.Equal(t, Reading{
		Name:       "D",
		Kind:       KindDuration,
		Duration1s: Stats{Min: 30, Avg: 30, Max: 30},
		MinTotal:   30,
		MaxTotal:   30,
	}, got[1])
	assert.Equal(t, Reading{Name: "C", Kind: KindCounter, Count1s: 2, Total: 2}, got[2])
}
