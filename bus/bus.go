// Package bus implements the Odin32K memory bus: address decode across
// system RAM, the two ROM banks, and the stubbed I/O regions, with every
// access ticking the attached clock pacer by exactly one cycle.
package bus

import (
	"io"
	"math/rand"

	"github.com/pkg/errors"

	"github.com/poppyemu/poppyemu/pacer"
)

const (
	ramSize = 32 * 1024
	romSize = 8 * 1024

	romMask = romSize - 1
)

// Address ranges, by top nibble of a 16-bit address.
const (
	ioCtrlBase    = 0x8000
	serial0Base   = 0x9000
	serial1Base   = 0xA000
	unmappedBase  = 0xB000
	rom1Base      = 0xC000
	rom0Base      = 0xE000
	ramLimit      = 0x8000
	stubRegionEnd = 0xC000
)

// RAMInit selects how system RAM is seeded at Reset.
type RAMInit int

const (
	// RAMZero zeroes system RAM.
	RAMZero RAMInit = iota
	// RAMRandom fills system RAM with pseudo-random bytes.
	RAMRandom
)

// AccessObserver receives a notification for every bus access, in order,
// for use by a trace emitter. Implementations must not block or mutate
// bus state.
type AccessObserver interface {
	BusAccess(write bool, addr uint16, value byte)
}

// Bus is the Odin32K memory bus. It owns the RAM and ROM backing arrays
// exclusively; nothing else may write to them directly.
type Bus struct {
	ram  [ramSize]byte
	rom0 [romSize]byte
	rom1 [romSize]byte

	pacer *pacer.Pacer
	obs   AccessObserver

	rng           *rand.Rand
	deterministic bool
	fixedOpenBus  byte

	Cycles uint64
}

// Option configures a Bus at construction time.
type Option func(*Bus)

// WithDeterministicOpenBus fixes the open-bus/stub placeholder byte to a
// single reproducible value instead of drawing from a PRNG. The value is
// clamped away from $00 and $FF.
func WithDeterministicOpenBus(value byte) Option {
	return func(b *Bus) {
		if value == 0x00 || value == 0xFF {
			value = 0x5A
		}
		b.deterministic = true
		b.fixedOpenBus = value
	}
}

// WithOpenBusSeed seeds the open-bus PRNG for reproducible non-deterministic
// runs (e.g. golden-output tests that still want to exercise the random
// path).
func WithOpenBusSeed(seed int64) Option {
	return func(b *Bus) { b.rng = rand.New(rand.NewSource(seed)) }
}

// New creates a Bus bound to the given pacer. Every Read/Write advances
// the pacer by one cycle.
func New(p *pacer.Pacer, opts ...Option) *Bus {
	b := &Bus{
		pacer: p,
		rng:   rand.New(rand.NewSource(1)),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// AttachObserver installs a trace sink that is notified of every bus
// access. Pass nil to detach.
func (b *Bus) AttachObserver(obs AccessObserver) {
	b.obs = obs
}

// Reset reseeds system RAM according to mode. ROM contents are untouched.
func (b *Bus) Reset(mode RAMInit) {
	switch mode {
	case RAMRandom:
		b.rng.Read(b.ram[:])
	default:
		for i := range b.ram {
			b.ram[i] = 0
		}
	}
}

// LoadROM0 reads r into the ROM0 bank (mapped $E000-$FFFF). Short reads
// are zero-padded; data beyond 8192 bytes is truncated. A read error other
// than io.EOF is reported.
func (b *Bus) LoadROM0(r io.Reader) error {
	return loadROM(r, b.rom0[:])
}

// LoadROM1 reads r into the ROM1 bank (mapped $C000-$DFFF). Same padding
// and truncation rules as LoadROM0.
func (b *Bus) LoadROM1(r io.Reader) error {
	return loadROM(r, b.rom1[:])
}

func loadROM(r io.Reader, dst []byte) error {
	for i := range dst {
		dst[i] = 0
	}
	// ReadFull stops at len(dst), so oversized images are truncated for
	// free; a short read leaves the zeroed tail in place.
	_, err := io.ReadFull(r, dst)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return errors.Wrap(err, "reading ROM image")
	}
	return nil
}

// Read loads the byte at addr and ticks the pacer by one cycle.
func (b *Bus) Read(addr uint16) byte {
	v := b.peek(addr)
	b.tick(false, addr, v)
	return v
}

// Write stores v at addr and ticks the pacer by one cycle. Writes to ROM
// or stub/unmapped regions are accepted but discarded.
func (b *Bus) Write(addr uint16, v byte) {
	if addr < ramLimit {
		b.ram[addr] = v
	}
	b.tick(true, addr, v)
}

func (b *Bus) peek(addr uint16) byte {
	switch {
	case addr < ramLimit:
		return b.ram[addr]
	case addr < stubRegionEnd:
		return b.openBusByte()
	case addr < rom0Base:
		return b.rom1[addr&romMask]
	default:
		return b.rom0[addr&romMask]
	}
}

func (b *Bus) tick(write bool, addr uint16, v byte) {
	b.Cycles++
	if b.obs != nil {
		b.obs.BusAccess(write, addr, v)
	}
	b.pacer.Advance(1)
}

// openBusByte returns the placeholder value for I/O stubs and unmapped
// reads. It is guaranteed never to be $00 or $FF so tests can distinguish
// mapped-zero from open bus.
func (b *Bus) openBusByte() byte {
	if b.deterministic {
		return b.fixedOpenBus
	}
	return byte(1 + b.rng.Intn(254))
}
