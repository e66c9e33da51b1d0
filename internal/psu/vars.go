// Package psu holds the power supply's fixed set of debug variables and the
// ADC interrupt handler that feeds them.
package psu

import "github.com/sweeney/psu-debug/internal/debug"

// Channels is the number of output channels.
const Channels = 2

// Vars is the process-wide debug variable set. Create it once at startup.
type Vars struct {
	UDac    [Channels]*debug.Value
	UMon    [Channels]*debug.Value
	UMonDac [Channels]*debug.Value
	IDac    [Channels]*debug.Value
	IMon    [Channels]*debug.Value
	IMonDac [Channels]*debug.Value

	MainLoopDuration *debug.Duration
	ListTickDuration *debug.Duration
	ADCCounter       *debug.Counter

	registry *debug.Registry
}

func channelValues(suffix string) [Channels]*debug.Value {
	return [Channels]*debug.Value{
		debug.NewValue("CH1 " + suffix),
		debug.NewValue("CH2 " + suffix),
	}
}

// NewVars builds the variable set. ticks times LIST_TICK_DURATION sections and
// irq guards counter window resets.
func NewVars(ticks debug.TickSource, irq *debug.Interrupts) *Vars {
	v := &Vars{
		UDac:    channelValues("U_DAC"),
		UMon:    channelValues("U_MON"),
		UMonDac: channelValues("U_MON_DAC"),
		IDac:    channelValues("I_DAC"),
		IMon:    channelValues("I_MON"),
		IMonDac: channelValues("I_MON_DAC"),

		MainLoopDuration: debug.NewDuration("MAIN_LOOP_DURATION", ticks),
		ListTickDuration: debug.NewDuration("LIST_TICK_DURATION", ticks),
		ADCCounter:       debug.NewCounter("ADC_COUNTER", irq),
	}

	// Dump order is read by external tools; append only.
	v.registry = debug.NewRegistry(
		v.UDac[0], v.UDac[1],
		v.UMon[0], v.UMon[1],
		v.UMonDac[0], v.UMonDac[1],
		v.IDac[0], v.IDac[1],
		v.IMon[0], v.IMon[1],
		v.IMonDac[0], v.IMonDac[1],

		v.MainLoopDuration,
		v.ListTickDuration,
		v.ADCCounter,
	)
	return v
}

// Registry returns the ordered registry over the variable set.
func (v *Vars) Registry() *debug.Registry {
	return v.registry
}
