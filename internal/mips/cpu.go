package mips

import (
	"github.com/KernelEquinox/sotn-sim/internal/errs"
	"github.com/KernelEquinox/sotn-sim/internal/layout"
	"github.com/KernelEquinox/sotn-sim/internal/memory"
)

// Cop2 is the subset of the GTE's surface the interpreter needs to route
// MFC2/CFC2/MTC2/CTC2 and GTE-operation-execute instructions to. Declared
// here rather than in the gte package so mips never imports gte; *gte.GTE
// satisfies this interface implicitly, without importing mips.
type Cop2 interface {
	ReadData(n uint32) uint32
	WriteData(n uint32, v uint32)
	ReadControl(n uint32) uint32
	WriteControl(n uint32, v uint32)
	Execute(opcode uint32)
}

// Hooks resolves a jal/jalr/j target against a table of intercepted BIOS
// graphics/entry-point addresses. A match runs the hook and reports true;
// the interpreter then does not transfer control into the hooked routine.
type Hooks interface {
	Dispatch(target uint32, mem *memory.Memory, regs *[32]uint32) bool
}

// CPU holds the R3000A integer register file and drives instruction
// fetch/decode/execute. GPR[0] is always read as zero; writes to it are
// silently discarded.
type CPU struct {
	regs [32]uint32
	pc   uint32
	hi   uint32
	lo   uint32

	mem   *memory.Memory
	cop2  Cop2
	hooks Hooks

	budget int
	debug  bool
}

// New returns a CPU wired to the given memory substrate, GTE, and hook
// table. budget overrides layout.InstructionBudget when non-zero.
func New(mem *memory.Memory, cop2 Cop2, hooks Hooks, budget int) *CPU {
	if budget <= 0 {
		budget = layout.InstructionBudget
	}
	return &CPU{mem: mem, cop2: cop2, hooks: hooks, budget: budget}
}

// SetDebug toggles verbose per-instruction tracing (used by cmd/sotnsim
// simulate's --debug flag).
func (c *CPU) SetDebug(v bool) { c.debug = v }

// GPR reads general-purpose register n (0..31); register 0 always reads 0.
func (c *CPU) GPR(n int) uint32 {
	if n == ZERO {
		return 0
	}
	return c.regs[n]
}

// SetGPR writes general-purpose register n; writes to register 0 are
// discarded.
func (c *CPU) SetGPR(n int, v uint32) {
	if n == ZERO {
		return
	}
	c.regs[n] = v
}

// PC returns the current program counter.
func (c *CPU) PC() uint32 { return c.pc }

// SetPC overrides the program counter (used by the driver before a fresh
// call and by tests constructing literal scenarios).
func (c *CPU) SetPC(pc uint32) { c.pc = pc }

// Reset clears the register file, HI/LO, and PC. Called once by the driver
// during pre-simulation, not between per-room passes (which restore RAM via
// snapshot and re-seed entities instead).
func (c *CPU) Reset() {
	c.regs = [32]uint32{}
	c.hi, c.lo, c.pc = 0, 0, 0
	c.regs[SP] = layout.StackTop
	c.regs[RA] = layout.ReturnSentinel
}

// Run executes instructions starting at entry until the sentinel return
// address is reached or the instruction budget is exhausted. Partial
// effects on RAM and the framebuffer are kept either way.
func (c *CPU) Run(entry uint32) error {
	c.regs[RA] = layout.ReturnSentinel
	c.pc = entry

	remaining := c.budget
	for remaining > 0 {
		if c.pc == layout.ReturnSentinel {
			return nil
		}
		if err := c.step(); err != nil {
			return err
		}
		remaining--
	}
	return &errs.BudgetExhaustedError{Entry: entry, Budget: c.budget}
}

// step fetches, decodes, and executes exactly one instruction, updating pc
// per the decoded instruction's control-flow effect (or pc+4 by default).
func (c *CPU) step() error {
	word, err := c.mem.Read32(c.pc)
	if err != nil {
		return &errs.OutOfRangeAccessError{Addr: c.pc, PC: c.pc}
	}
	instr := Decode(word)
	next := c.pc + 4
	if err := c.execute(instr, &next); err != nil {
		return err
	}
	c.pc = next
	c.regs[ZERO] = 0
	return nil
}

// runDelaySlot executes the single instruction textually following a taken
// branch or jump, exactly once, before the branch's own target becomes the
// new PC. Implements the recursive-inline pattern of original_source's
// i_beq/r_jr/r_jalr/j_j/j_jal. Jumps inside a delay slot are not supported,
// matching spec.md §4.2 (none occur in the target binary).
func (c *CPU) runDelaySlot() error {
	word, err := c.mem.Read32(c.pc + 4)
	if err != nil {
		return &errs.OutOfRangeAccessError{Addr: c.pc + 4, PC: c.pc}
	}
	instr := Decode(word)
	var discard uint32
	if err := c.execute(instr, &discard); err != nil {
		return err
	}
	c.regs[ZERO] = 0
	return nil
}
