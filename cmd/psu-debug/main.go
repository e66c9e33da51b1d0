// Command psu-debug runs the power supply's debug instrumentation loop: it
// times the main loop, counts ADC interrupts, rolls 1 s and 10 s windows and
// answers dump requests typed on the console.
package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sweeney/psu-debug/internal/clock"
	"github.com/sweeney/psu-debug/internal/config"
	"github.com/sweeney/psu-debug/internal/console"
	"github.com/sweeney/psu-debug/internal/datetime"
	"github.com/sweeney/psu-debug/internal/debug"
	"github.com/sweeney/psu-debug/internal/export"
	"github.com/sweeney/psu-debug/internal/gpio"
	"github.com/sweeney/psu-debug/internal/logging"
	"github.com/sweeney/psu-debug/internal/psu"
	"github.com/sweeney/psu-debug/internal/status"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		configPath string
		printVars  bool
		flagCfg    = config.Default()
	)

	cmd := &cobra.Command{
		Use:          "psu-debug",
		Short:        "Power supply debug variable instrumentation",
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			applyFlags(cmd, &cfg, flagCfg)
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("invalid flags: %w", err)
			}

			if printVars {
				vars := psu.NewVars(nil, nil)
				_, err := os.Stdout.Write(vars.Registry().Dump(nil))
				return err
			}
			return run(cmd.Context(), cfg)
		},
	}

	f := cmd.Flags()
	f.StringVar(&configPath, "config", "", "YAML config file")
	f.BoolVar(&printVars, "print-vars", false, "Print the empty variable dump and exit")
	f.DurationVar(&flagCfg.LoopInterval, "loop", flagCfg.LoopInterval, "Main loop period")
	f.StringVar(&flagCfg.GPIOChip, "gpio-chip", flagCfg.GPIOChip, "GPIO chip for the ADC data-ready line")
	f.IntVar(&flagCfg.ADCPin, "adc-pin", flagCfg.ADCPin, "BCM pin of the ADC data-ready line (-1 to disable)")
	f.StringVar(&flagCfg.NTPServer, "ntp", flagCfg.NTPServer, "NTP server for trace timestamps (empty uses the system clock)")
	f.StringVar(&flagCfg.TraceFile, "trace-file", flagCfg.TraceFile, "Also append trace lines to this rotating file")
	f.StringVar(&flagCfg.Textfile, "textfile", flagCfg.Textfile, "Prometheus textfile to rewrite every 10s window (empty to disable)")
	f.StringVar(&flagCfg.Log.Level, "log-level", flagCfg.Log.Level, "Log level: debug, info, warn, error")
	return cmd
}

// applyFlags copies explicitly set flags over the file configuration.
func applyFlags(cmd *cobra.Command, cfg *config.Config, flags config.Config) {
	f := cmd.Flags()
	if f.Changed("loop") {
		cfg.LoopInterval = flags.LoopInterval
	}
	if f.Changed("gpio-chip") {
		cfg.GPIOChip = flags.GPIOChip
	}
	if f.Changed("adc-pin") {
		cfg.ADCPin = flags.ADCPin
	}
	if f.Changed("ntp") {
		cfg.NTPServer = flags.NTPServer
	}
	if f.Changed("trace-file") {
		cfg.TraceFile = flags.TraceFile
	}
	if f.Changed("textfile") {
		cfg.Textfile = flags.Textfile
	}
	if f.Changed("log-level") {
		cfg.Log.Level = flags.Log.Level
	}
}

func run(ctx context.Context, cfg config.Config) error {
	logger, err := logging.New(cfg.Log)
	if err != nil {
		return fmt.Errorf("init logging: %w", err)
	}
	defer logger.Sync()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	ticks, err := clock.NewMonotonic()
	if err != nil {
		return fmt.Errorf("init tick source: %w", err)
	}

	// Process-wide debug state, created once and never torn down.
	var irq debug.Interrupts
	vars := psu.NewVars(ticks, &irq)

	var dt datetime.Source = datetime.NewSystem()
	if cfg.NTPServer != "" {
		ntpClock := datetime.NewNTPClock(cfg.NTPServer, cfg.NTPInterval, logger)
		go ntpClock.Run(ctx)
		dt = ntpClock
	}

	var tee io.Writer
	if cfg.TraceFile != "" {
		tee = logging.RotatingFile(cfg.TraceFile, cfg.Log.MaxSizeMB, cfg.Log.MaxBackups)
	}
	out := console.NewOutput(os.Stdout, tee)
	tracer := debug.NewTracer(out, dt.DateTime)

	adc := psu.NewADC(vars, tracer)
	if cfg.ADCPin >= 0 {
		watcher, err := gpio.NewRealWatcher(cfg.GPIOChip, cfg.ADCPin, func(seq uint32) {
			irq.Serve(func(ic debug.Context) { adc.OnDataReady(ic, seq) })
		})
		if err != nil {
			return fmt.Errorf("init adc interrupt: %w", err)
		}
		defer watcher.Close()
	}

	tracker := status.NewTracker(time.Now())
	exportCh := make(chan struct{}, 1)
	if cfg.Textfile != "" {
		go export.NewTextfile(cfg.Textfile, tracker, logger).Run(ctx, exportCh)
	}

	cmds := make(chan console.Command)
	go func() {
		if err := console.Read(ctx, os.Stdin, cmds); err != nil && ctx.Err() == nil {
			logger.Warn("console read failed", zap.Error(err))
		}
	}()

	logger.Info("started",
		zap.Duration("loop", cfg.LoopInterval),
		zap.Int("adc_pin", cfg.ADCPin),
		zap.String("ntp", cfg.NTPServer),
		zap.String("textfile", cfg.Textfile))

	ticker := time.NewTicker(cfg.LoopInterval)
	defer ticker.Stop()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	d := newDaemon(vars, tracer, ticks, tracker, exportCh, out, logger)
	return runLoop(d, ticker.C, cmds, sigCh)
}

// daemon is the main-loop state. Everything on it is touched only from the
// goroutine running runLoop, except what the debug package makes interrupt safe.
type daemon struct {
	vars     *psu.Vars
	disp     *debug.Dispatcher
	tracer   *debug.Tracer
	ticks    clock.Source
	tracker  *status.Tracker
	exportCh chan<- struct{}
	out      *bufio.Writer
	logger   *zap.Logger

	dumpBuf []byte
}

func newDaemon(vars *psu.Vars, tracer *debug.Tracer, ticks clock.Source, tracker *status.Tracker, exportCh chan<- struct{}, out *bufio.Writer, logger *zap.Logger) *daemon {
	return &daemon{
		vars:     vars,
		disp:     debug.NewDispatcher(vars.Registry(), vars.MainLoopDuration, tracer),
		tracer:   tracer,
		ticks:    ticks,
		tracker:  tracker,
		exportCh: exportCh,
		out:      out,
		logger:   logger,
		dumpBuf:  make([]byte, 0, 2048),
	}
}

func runLoop(d *daemon, tick <-chan time.Time, cmds <-chan console.Command, sig <-chan os.Signal) error {
	for {
		select {
		case s := <-sig:
			d.logger.Info("shutting down", zap.String("signal", s.String()))
			d.tracer.Trace(debug.Thread, "shutdown on %s", s)
			d.dump()
			return nil

		case <-tick:
			d.step()

		case cmd, ok := <-cmds:
			if !ok {
				cmds = nil
				continue
			}
			d.handle(cmd)
		}
	}
}

// step is one main-loop iteration. The dispatcher runs first so a trace
// deferred by the interrupt handler is out before any other work.
func (d *daemon) step() {
	closed := d.disp.Tick(d.ticks.Micros())
	if closed == 0 {
		return
	}

	d.tracker.Update(d.vars.Registry(), closed)
	if closed.Has(debug.Window10s) {
		select {
		case d.exportCh <- struct{}{}:
		default:
			d.logger.Debug("textfile export still busy, skipping window")
		}
	}
}

func (d *daemon) handle(cmd console.Command) {
	d.vars.ListTickDuration.Start()
	defer d.vars.ListTickDuration.Finish()

	switch cmd.Op {
	case console.OpDump:
		d.dump()
	case console.OpTrace:
		d.tracer.Trace(debug.Thread, "%s", cmd.Arg)
	case console.OpHelp:
		d.write(console.Help)
	default:
		d.write(fmt.Sprintf("unknown command %q, try help\n", cmd.Raw))
	}
}

func (d *daemon) dump() {
	d.dumpBuf = d.vars.Registry().Dump(d.dumpBuf)
	d.out.Write(d.dumpBuf)
	if err := d.out.Flush(); err != nil {
		d.logger.Warn("console write failed", zap.Error(err))
	}
}

func (d *daemon) write(s string) {
	d.out.WriteString(s)
	if err := d.out.Flush(); err != nil {
		d.logger.Warn("console write failed", zap.Error(err))
	}
}
