// Command poppyemu runs the Odin32K core against one or two ROM images.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"

	"github.com/poppyemu/poppyemu/bus"
	"github.com/poppyemu/poppyemu/config"
	"github.com/poppyemu/poppyemu/cpu"
	"github.com/poppyemu/poppyemu/pacer"
	"github.com/poppyemu/poppyemu/trace"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("poppyemu", flag.ContinueOnError)
	fs.SetOutput(stderr)
	clockHz := fs.Int64("clock", config.Default().ClockHz, "CPU clock rate in Hz")
	random := fs.Bool("random-ram", false, "seed system RAM with pseudo-random bytes instead of zero")
	verbose := fs.Int("verbose", 0, "trace verbosity: 0 silent .. 3 full bus log")

	if err := fs.Parse(args); err != nil {
		return 1
	}

	roms := fs.Args()
	if len(roms) < 1 || len(roms) > 2 {
		fmt.Fprintln(stderr, "usage: poppyemu [flags] ROM0 [ROM1]")
		return 1
	}

	cfg := config.Default()
	cfg.ClockHz = *clockHz
	cfg.Verbose = *verbose
	if *random {
		cfg.RAMInit = config.RAMRandom
	}

	fmt.Fprintln(stderr, "PoppyEMU - A research emulator for the Odin32K.")

	if err := boot(cfg, roms, stdout); err != nil {
		fmt.Fprintf(stderr, "poppyemu: %v\n", err)
		return 1
	}
	return 0
}

func boot(cfg *config.Settings, roms []string, stdout io.Writer) error {
	rom0, err := os.Open(roms[0])
	if err != nil {
		return errors.Wrap(err, "opening ROM0")
	}
	defer rom0.Close()

	p := pacer.New(pacer.WithClockHz(cfg.ClockHz))
	b := bus.New(p)

	ramInit := bus.RAMZero
	if cfg.RAMInit == config.RAMRandom {
		ramInit = bus.RAMRandom
	}
	b.Reset(ramInit)

	if err := b.LoadROM0(rom0); err != nil {
		return errors.Wrap(err, "loading ROM0")
	}

	if len(roms) == 2 {
		rom1, err := os.Open(roms[1])
		if err != nil {
			return errors.Wrap(err, "opening ROM1")
		}
		defer rom1.Close()
		if err := b.LoadROM1(rom1); err != nil {
			return errors.Wrap(err, "loading ROM1")
		}
	}

	logger := trace.New(stdout, trace.Level(cfg.Verbose))
	logger.Init(cfg.ClockHz, string(cfg.RAMInit))
	if cfg.Verbose >= int(trace.BusLog) {
		b.AttachObserver(logger)
	}

	c := cpu.NewCPU(b)
	c.AttachTracer(logger)
	c.Reset()

	for c.Step() {
	}

	return nil
}
