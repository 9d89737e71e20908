package entity

import (
	"github.com/KernelEquinox/sotn-sim/internal/config"
	"github.com/KernelEquinox/sotn-sim/internal/diag"
	"github.com/KernelEquinox/sotn-sim/internal/errs"
	"github.com/KernelEquinox/sotn-sim/internal/framebuffer"
	"github.com/KernelEquinox/sotn-sim/internal/gte"
	"github.com/KernelEquinox/sotn-sim/internal/hooks"
	"github.com/KernelEquinox/sotn-sim/internal/layout"
	"github.com/KernelEquinox/sotn-sim/internal/memory"
	"github.com/KernelEquinox/sotn-sim/internal/mips"
)

// Driver coordinates C1 memory, C2 CPU, C3 GTE, and C4 hooks/framebuffer to
// run a room's entity update routines and lift the result into a Room
// scene graph. Structured after the teacher's pkg/nes NES type: unexported
// fields, a constructor, Reset, and verb methods driving the simulation.
type Driver struct {
	mem *memory.Memory
	cpu *mips.CPU
	gte *gte.GTE
	fb  *framebuffer.Framebuffer
	hk  *hooks.Table

	// FunctionTable maps entity_id -> update-function address, populated by
	// Init from the game binary's entity-function table.
	FunctionTable map[uint16]uint32
}

// New wires a fresh Driver: memory substrate (C1), GTE (C3), framebuffer
// and hook table (C4), then the CPU (C2) that takes all three, using
// default construction-time options.
func New() *Driver {
	return NewWithOptions(config.New())
}

// NewWithOptions wires a Driver the same way New does, but honors config
// overrides (a tighter instruction budget for tests, CPU debug tracing).
func NewWithOptions(opts config.Options) *Driver {
	mem := memory.New()
	g := gte.New()
	fb := framebuffer.New()
	hk := hooks.New(fb)
	budget := opts.InstructionBudget
	if budget == 0 {
		budget = layout.InstructionBudget
	}
	cpu := mips.New(mem, g, hk, budget)
	cpu.SetDebug(opts.Debug)
	return &Driver{mem: mem, cpu: cpu, gte: g, fb: fb, hk: hk, FunctionTable: map[uint16]uint32{}}
}

// Init runs spec.md §4.5's pre-simulation: load both binaries, populate the
// pointer table, run CLUT initialization, and snapshot RAM as the reset
// point for every subsequent room.
func (d *Driver) Init(psxBin, gameBin []byte, clutInitEntry uint32) error {
	d.cpu.Reset()
	d.gte.Reset()

	if err := d.mem.CopyIn(layout.PSXRAMOffset, psxBin); err != nil {
		return err
	}
	if err := d.mem.CopyIn(layout.SotNRAMOffset, gameBin); err != nil {
		return err
	}

	// original_source/src/mips.cpp copies PointerTableWords words starting
	// one word into the game binary, not from its very first byte.
	ptr := make([]byte, layout.PointerTableWords*4)
	const srcOff = 4
	n := layout.PointerTableWords * 4
	if srcOff+n > len(gameBin) {
		n = len(gameBin) - srcOff
	}
	if n > 0 {
		copy(ptr, gameBin[srcOff:srcOff+n])
	}
	if err := d.mem.CopyIn(layout.PointerTableAddr, ptr); err != nil {
		return err
	}

	if clutInitEntry != 0 {
		if err := d.cpu.Run(clutInitEntry); err != nil {
			diag.Warnf("clut init: %v", err)
		}
	}

	d.mem.Snapshot()
	return nil
}

// LoadMap copies a map image into RAM at MapRAMOffset.
func (d *Driver) LoadMap(mapBytes []byte) error {
	return d.mem.CopyIn(layout.MapRAMOffset, mapBytes)
}

// StoreCLUT installs a palette block at CLUTBaseAddr+offset.
func (d *Driver) StoreCLUT(offset uint32, data []byte) error {
	return d.mem.StoreCLUT(offset, data)
}

// ReadU32 and CopyOut expose raw memory to upstream per spec.md §6.
func (d *Driver) ReadU32(addr uint32) (uint32, error) { return d.mem.Read32(addr) }
func (d *Driver) CopyOut(addr uint32, buf []byte) error { return d.mem.CopyOut(addr, buf) }

// Framebuffer exposes the C4 framebuffer for upstream inspection.
func (d *Driver) Framebuffer() *framebuffer.Framebuffer { return d.fb }

// Reset clears the CPU/GTE state without discarding the loaded binaries or
// snapshot, matching spec.md §4.5's "Reset is not called between per-room
// passes."
func (d *Driver) Reset() {
	d.cpu.Reset()
	d.gte.Reset()
}

// SimulateRoom runs spec.md §4.5's per-room simulation: restore RAM,
// seed entity slots, run each slot's update function twice, then lift the
// resulting entity table into a Room.
func (d *Driver) SimulateRoom(meta Meta, seeds []Seed) (*Room, error) {
	d.mem.Restore()

	if err := d.clearEntitySlots(); err != nil {
		return nil, err
	}
	if err := d.writeRoomMeta(meta); err != nil {
		return nil, err
	}
	if err := d.seedEntities(seeds); err != nil {
		return nil, err
	}

	entities, err := d.runSlots()
	if err != nil {
		return nil, err
	}

	room := newRoom(meta)
	room.Entities = entities
	for i := range entities {
		if err := d.liftEntity(room, &entities[i]); err != nil {
			diag.Warnf("lift slot %d: %v", entities[i].Slot, err)
		}
	}
	return room, nil
}

// clearEntitySlots zeroes the user-entity range (slots 0x40..0xFF) before
// re-seeding, per spec.md §4.5 step 2.
func (d *Driver) clearEntitySlots() error {
	zero := make([]byte, layout.EntitySize)
	for slot := layout.EntityReservedSlots; slot < layout.EntityTotalSlots; slot++ {
		addr := layout.EntityListStart + uint32(slot)*layout.EntitySize
		if err := d.mem.CopyIn(addr, zero); err != nil {
			return err
		}
	}
	return nil
}

// roomMetaAddr is the well-known RAM offset room dimensions/tile-layer
// indices are published at, read back by update routines. Grounded on
// spec.md §4.5 step 4's "well-known RAM offsets"; placed just below the
// pointer table where original_source keeps transient room state.
const roomMetaAddr = layout.PointerTableAddr - 0x20

func (d *Driver) writeRoomMeta(meta Meta) error {
	buf := make([]byte, 16)
	put16 := func(off int, v uint16) {
		buf[off], buf[off+1] = byte(v), byte(v>>8)
	}
	put16(0, uint16(meta.XStart))
	put16(2, uint16(meta.YStart))
	put16(4, uint16(meta.XEnd))
	put16(6, uint16(meta.YEnd))
	put16(8, meta.TileLayoutID)
	put16(10, meta.LoadFlag)
	put16(12, meta.EntityLayoutID)
	put16(14, meta.EntityGraphicsID)
	return d.mem.CopyIn(roomMetaAddr, buf)
}

// seedEntities constructs and writes one fresh entity record per seed, per
// spec.md §4.5 step 3.
func (d *Driver) seedEntities(seeds []Seed) error {
	for _, seed := range seeds {
		fn := d.FunctionTable[seed.EntityID&0x3FF]
		rec := NewSeededRecord(seed, fn)
		addr := layout.EntityListStart + uint32(seed.Slot)*layout.EntitySize
		raw := rec.Bytes()
		if err := d.mem.CopyIn(addr, raw[:]); err != nil {
			return err
		}
	}
	return nil
}

// runSlots iterates every entity slot in order, running each non-empty
// slot's update function twice (spec.md §4.5 step 5), then emits one
// Entity per non-empty slot (step 6).
func (d *Driver) runSlots() ([]Entity, error) {
	var out []Entity
	for slot := 0; slot < layout.EntityTotalSlots; slot++ {
		addr := layout.EntityListStart + uint32(slot)*layout.EntitySize
		var raw [layout.EntitySize]byte
		if err := d.mem.CopyOut(addr, raw[:]); err != nil {
			return nil, err
		}
		rec := NewRecord(raw)
		if rec.UpdateFunction() == 0 {
			continue
		}

		budgetExhausted := false
		for pass := 0; pass < 2; pass++ {
			if err := d.cpu.Run(rec.UpdateFunction()); err != nil {
				if _, ok := err.(*errs.BudgetExhaustedError); ok {
					budgetExhausted = true
					continue
				}
				return nil, err
			}
		}

		if err := d.mem.CopyOut(addr, raw[:]); err != nil {
			return nil, err
		}
		out = append(out, Entity{Slot: slot, Raw: NewRecord(raw), BudgetExhausted: budgetExhausted})
	}
	return out, nil
}
