package bus

import (
	"bytes"
	"testing"

	"github.com/poppyemu/poppyemu/pacer"
)

func newTestBus(opts ...Option) *Bus {
	p := pacer.New(pacer.WithPacingEnabled(false))
	return New(p, opts...)
}

func TestRAMReadWrite(t *testing.T) {
	b := newTestBus()
	b.Write(0x1234, 0x42)
	if v := b.Read(0x1234); v != 0x42 {
		t.Errorf("Read(0x1234) = $%02X, want $42", v)
	}
}

func TestEveryAccessTicksOneCycle(t *testing.T) {
	b := newTestBus()
	b.Read(0x0000)
	b.Write(0x0000, 1)
	if b.Cycles != 2 {
		t.Errorf("Cycles = %d, want 2", b.Cycles)
	}
}

func TestStubRegionsDiscardWrites(t *testing.T) {
	b := newTestBus(WithDeterministicOpenBus(0x5A))
	b.Write(0x8500, 0x99) // I/O ctrl stub
	if v := b.Read(0x8500); v != 0x5A {
		t.Errorf("I/O ctrl read = $%02X, want $5A", v)
	}
	b.Write(0x9500, 0x99) // Serial0 stub
	if v := b.Read(0x9500); v != 0x5A {
		t.Errorf("Serial0 read = $%02X, want $5A", v)
	}
	b.Write(0xB500, 0x99) // unmapped
	if v := b.Read(0xB500); v != 0x5A {
		t.Errorf("unmapped read = $%02X, want $5A", v)
	}
}

func TestOpenBusNeverZeroOrFF(t *testing.T) {
	b := newTestBus()
	for addr := uint16(0xB000); addr < 0xC000; addr++ {
		v := b.Read(addr)
		if v == 0x00 || v == 0xFF {
			t.Fatalf("open-bus byte at $%04X = $%02X, must not be $00 or $FF", addr, v)
		}
	}
}

func TestROM0LoadAndMapping(t *testing.T) {
	b := newTestBus()
	img := make([]byte, 8192)
	img[0] = 0xAB
	img[8191] = 0xCD
	if err := b.LoadROM0(bytes.NewReader(img)); err != nil {
		t.Fatal(err)
	}
	if v := b.Read(0xE000); v != 0xAB {
		t.Errorf("ROM0[$E000] = $%02X, want $AB", v)
	}
	if v := b.Read(0xFFFF); v != 0xCD {
		t.Errorf("ROM0[$FFFF] = $%02X, want $CD", v)
	}
}

func TestROM0ShortReadIsZeroPadded(t *testing.T) {
	b := newTestBus()
	short := []byte{0x11, 0x22, 0x33}
	if err := b.LoadROM0(bytes.NewReader(short)); err != nil {
		t.Fatal(err)
	}
	if v := b.Read(0xE000); v != 0x11 {
		t.Errorf("ROM0[0] = $%02X, want $11", v)
	}
	if v := b.Read(0xE003); v != 0 {
		t.Errorf("ROM0[3] = $%02X, want $00 (zero-padded)", v)
	}
}

func TestROM0OversizedIsTruncated(t *testing.T) {
	b := newTestBus()
	oversized := make([]byte, 9000)
	oversized[8191] = 0x7E
	oversized[8192] = 0x11 // must never be visible
	if err := b.LoadROM0(bytes.NewReader(oversized)); err != nil {
		t.Fatal(err)
	}
	if v := b.Read(0xFFFF); v != 0x7E {
		t.Errorf("ROM0[8191] = $%02X, want $7E", v)
	}
}

func TestROM1MappingAndWritesDiscarded(t *testing.T) {
	b := newTestBus()
	img := make([]byte, 8192)
	img[0] = 0x55
	if err := b.LoadROM1(bytes.NewReader(img)); err != nil {
		t.Fatal(err)
	}
	if v := b.Read(0xC000); v != 0x55 {
		t.Errorf("ROM1[$C000] = $%02X, want $55", v)
	}
	b.Write(0xC000, 0xFF)
	if v := b.Read(0xC000); v != 0x55 {
		t.Errorf("write to ROM1 must be discarded, got $%02X", v)
	}
}

func TestResetZeroesRAM(t *testing.T) {
	b := newTestBus()
	b.Write(0x0010, 0xFF)
	b.Reset(RAMZero)
	if v := b.Read(0x0010); v != 0 {
		t.Errorf("RAM after Reset(RAMZero) = $%02X, want $00", v)
	}
}

type recordingObserver struct {
	accesses []string
}

func (r *recordingObserver) BusAccess(write bool, addr uint16, value byte) {
	kind := "R"
	if write {
		kind = "W"
	}
	r.accesses = append(r.accesses, kind)
}

func TestObserverSeesEveryAccess(t *testing.T) {
	b := newTestBus()
	obs := &recordingObserver{}
	b.AttachObserver(obs)
	b.Read(0x0000)
	b.Write(0x0000, 1)
	if len(obs.accesses) != 2 || obs.accesses[0] != "R" || obs.accesses[1] != "W" {
		t.Errorf("accesses = %v, want [R W]", obs.accesses)
	}
}
