package mips

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/KernelEquinox/sotn-sim/internal/layout"
	"github.com/KernelEquinox/sotn-sim/internal/memory"
)

func iType(opcode, rs, rt uint32, imm uint16) uint32 {
	return opcode<<26 | rs<<21 | rt<<16 | uint32(imm)
}

func rType(rs, rt, rd, shamt, funct uint32) uint32 {
	return rs<<21 | rt<<16 | rd<<11 | shamt<<6 | funct
}

const (
	opADDIU = 0x09
	opBEQ   = 0x04
	functJR = 0x08
)

// nilCop2/nilHooks satisfy mips.New's interfaces for tests that never
// touch GTE or BIOS hooks.
type nilCop2 struct{}

func (nilCop2) ReadData(uint32) uint32    { return 0 }
func (nilCop2) WriteData(uint32, uint32)  {}
func (nilCop2) ReadControl(uint32) uint32 { return 0 }
func (nilCop2) WriteControl(uint32, uint32) {}
func (nilCop2) Execute(uint32)            {}

type nilHooks struct{}

func (nilHooks) Dispatch(uint32, *memory.Memory, *[32]uint32) bool { return false }

func newTestCPU() (*CPU, *memory.Memory) {
	mem := memory.New()
	cpu := New(mem, nilCop2{}, nilHooks{}, 16)
	return cpu, mem
}

// TestDelaySlotOverwrite is spec.md S2: a branch's delay slot executes
// once before the branch redirects control, so the instruction after the
// delay slot (addiu r2, r0, 9) never runs.
func TestDelaySlotOverwrite(t *testing.T) {
	cpu, mem := newTestCPU()

	require.NoError(t, mem.Write32(0, iType(opADDIU, ZERO, 2, 1)))   // addiu r2, r0, 1
	require.NoError(t, mem.Write32(4, iType(opBEQ, 2, 2, 2)))        // beq r2, r2, +2
	require.NoError(t, mem.Write32(8, iType(opADDIU, ZERO, 2, 7)))   // addiu r2, r0, 7 (delay slot)
	require.NoError(t, mem.Write32(12, iType(opADDIU, ZERO, 2, 9)))  // addiu r2, r0, 9 (skipped)
	require.NoError(t, mem.Write32(16, rType(RA, 0, 0, 0, functJR))) // jr ra, reached via the taken branch

	err := cpu.Run(0)
	require.NoError(t, err)
	require.Equal(t, uint32(7), cpu.GPR(2))
	require.Equal(t, uint32(layout.ReturnSentinel), cpu.PC())
}

// TestRegisterZeroInvariant is spec.md §8.6: GPR[0] reads 0 no matter what
// is written to it.
func TestRegisterZeroInvariant(t *testing.T) {
	cpu, mem := newTestCPU()
	require.NoError(t, mem.Write32(0, iType(opADDIU, ZERO, ZERO, 5))) // addiu r0, r0, 5
	require.NoError(t, mem.Write32(4, rType(RA, 0, 0, 0, functJR)))   // jr ra

	require.NoError(t, cpu.Run(0))
	require.Equal(t, uint32(0), cpu.GPR(0))

	cpu.SetGPR(0, 42)
	require.Equal(t, uint32(0), cpu.GPR(0))
}

func TestBudgetExhausted(t *testing.T) {
	cpu, mem := newTestCPU()
	// An infinite loop: beq r0, r0, -1 targets itself forever.
	require.NoError(t, mem.Write32(0, iType(opBEQ, ZERO, ZERO, 0xFFFF)))
	require.NoError(t, mem.Write32(4, rType(0, 0, 0, 0, 0))) // sll r0,r0,0 (nop delay slot)

	err := cpu.Run(0)
	require.Error(t, err)
}
