// Package hooks implements the BIOS/graphics routine interception table
// (spec component C4): a jump-target -> handler map the interpreter
// consults on every jal/jalr/j before it would otherwise transfer control.
// A match runs the handler against RAM and the framebuffer and reports
// true, so the call behaves as if the hooked routine ran and returned
// instantly.
//
// Grounded on the teacher's pkg/cartridge Mapper-selected-by-table pattern,
// generalized from "select a mapper by iNES mapper number" to "select a
// handler by jump target." The four image-primitive handlers are ported
// field-for-field from original_source/src/mips.cpp's LoadImage/StoreImage/
// MoveImage/ClearImage and their call sites in r_jalr.
package hooks

import (
	"github.com/KernelEquinox/sotn-sim/internal/framebuffer"
	"github.com/KernelEquinox/sotn-sim/internal/layout"
	"github.com/KernelEquinox/sotn-sim/internal/memory"
	"github.com/KernelEquinox/sotn-sim/internal/mips"
)

// handler runs a hooked routine's effect against memory/registers/the
// framebuffer. It never transfers control; the interpreter resumes at the
// instruction following the delay slot regardless.
type handler func(fb *framebuffer.Framebuffer, mem *memory.Memory, regs *[32]uint32) error

// Table is the C4 hook table, keyed on hooked jump target. Implements
// mips.Hooks.
type Table struct {
	fb   *framebuffer.Framebuffer
	hook map[uint32]handler
}

// New builds the hook table bound to fb; additional no-op BIOS entry
// points can be registered via Register.
func New(fb *framebuffer.Framebuffer) *Table {
	t := &Table{fb: fb, hook: map[uint32]handler{}}
	t.hook[layout.LoadImageAddr] = loadImage
	t.hook[layout.StoreImageAddr] = storeImage
	t.hook[layout.MoveImageAddr] = moveImage
	t.hook[layout.ClearImageAddr] = clearImage
	return t
}

// Register installs an additional no-op (or custom) hook, used for BIOS
// entry points that must not fall through to the interpreted routine
// (sound driver calls, VSync waits) but carry no observable RAM effect the
// lifter cares about.
func (t *Table) Register(addr uint32, h func(fb *framebuffer.Framebuffer, mem *memory.Memory, regs *[32]uint32) error) {
	t.hook[addr] = h
}

// Dispatch implements mips.Hooks. Errors from a handler are swallowed
// (matching spec.md §7: a hook failure must not abort a room's
// simulation); the instruction-budget backstop still limits total work.
func (t *Table) Dispatch(target uint32, mem *memory.Memory, regs *[32]uint32) bool {
	h, ok := t.hook[target]
	if !ok {
		return false
	}
	_ = h(t.fb, mem, regs)
	return true
}

func readRect(mem *memory.Memory, addr uint32) (framebuffer.Rect, error) {
	var r framebuffer.Rect
	for i, field := range []*int16{&r.X, &r.Y, &r.W, &r.H} {
		v, err := mem.Read16(addr + uint32(i*2))
		if err != nil {
			return r, err
		}
		*field = int16(v)
	}
	return r, nil
}

// loadImage implements LoadImage(RECT* rect, byte* src): rect's address is
// in A0, the source RAM address in A1.
func loadImage(fb *framebuffer.Framebuffer, mem *memory.Memory, regs *[32]uint32) error {
	rect, err := readRect(mem, regs[mips.A0])
	if err != nil {
		return err
	}
	buf := make([]byte, int(rect.W)*int(rect.H)*2)
	if err := mem.CopyOut(regs[mips.A1], buf); err != nil {
		return err
	}
	fb.Load(rect, buf)
	return nil
}

// storeImage implements StoreImage(RECT* rect, byte* dst).
func storeImage(fb *framebuffer.Framebuffer, mem *memory.Memory, regs *[32]uint32) error {
	rect, err := readRect(mem, regs[mips.A0])
	if err != nil {
		return err
	}
	buf := make([]byte, int(rect.W)*int(rect.H)*2)
	fb.Store(rect, buf)
	return mem.CopyIn(regs[mips.A1], buf)
}

// moveImage implements MoveImage(RECT* rect, int x, int y): x and y are
// read through pointers held in A1/A2, not passed by value.
func moveImage(fb *framebuffer.Framebuffer, mem *memory.Memory, regs *[32]uint32) error {
	rect, err := readRect(mem, regs[mips.A0])
	if err != nil {
		return err
	}
	x, err := mem.Read32(regs[mips.A1])
	if err != nil {
		return err
	}
	y, err := mem.Read32(regs[mips.A2])
	if err != nil {
		return err
	}
	fb.Move(rect, int(int32(x)), int(int32(y)))
	return nil
}

// clearImage implements ClearImage(RECT* rect, byte r, byte g, byte b): the
// three color bytes are likewise read through pointers in A1/A2/A3.
func clearImage(fb *framebuffer.Framebuffer, mem *memory.Memory, regs *[32]uint32) error {
	rect, err := readRect(mem, regs[mips.A0])
	if err != nil {
		return err
	}
	r, err := mem.Read8(regs[mips.A1])
	if err != nil {
		return err
	}
	g, err := mem.Read8(regs[mips.A2])
	if err != nil {
		return err
	}
	b, err := mem.Read8(regs[mips.A3])
	if err != nil {
		return err
	}
	fb.Clear(rect, r, g, b)
	return nil
}
