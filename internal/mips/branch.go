package mips

// execBranch implements the beq/bne/blez/bgtz/bltz/bgez(+al) family. The
// delay-slot instruction always executes next in program order; it is only
// run *inline* here (ahead of the normal fetch loop) when the branch is
// taken, because in that case control skips past it. When not taken, the
// ordinary fetch loop reaches it next with no special handling needed —
// matching original_source/src/mips.cpp's i_beq/i_bne/i_blez/i_bgtz.
func (c *CPU) execBranch(in Instruction, next *uint32) error {
	link := in.Op == OpBLTZAL || in.Op == OpBGEZAL
	if link {
		// Link value is set unconditionally, whether or not the branch
		// is taken, per the R3000A ISA.
		c.SetGPR(RA, c.pc+8)
	}

	var taken bool
	rs := int32(c.GPR(int(in.Rs)))
	switch in.Op {
	case OpBEQ:
		taken = c.GPR(int(in.Rs)) == c.GPR(int(in.Rt))
	case OpBNE:
		taken = c.GPR(int(in.Rs)) != c.GPR(int(in.Rt))
	case OpBLEZ:
		taken = rs <= 0
	case OpBGTZ:
		taken = rs > 0
	case OpBLTZ, OpBLTZAL:
		taken = rs < 0
	case OpBGEZ, OpBGEZAL:
		taken = rs >= 0
	}

	if !taken {
		return nil
	}
	if err := c.runDelaySlot(); err != nil {
		return err
	}
	offset := uint32(in.SignExtImm() << 2)
	*next = c.pc + 4 + offset
	return nil
}

// execJump implements j/jal/jr/jalr. jal/jalr consult the hook table
// before transferring control; a match runs the hook and leaves control at
// the instruction following the delay slot, per spec.md §4.2. j also
// consults the hook table, matching original_source's j_j.
func (c *CPU) execJump(in Instruction, next *uint32) error {
	switch in.Op {
	case OpJ:
		target := (c.pc + 4) & 0xF0000000 | (in.Target << 2)
		if err := c.runDelaySlot(); err != nil {
			return err
		}
		if c.hooks != nil && c.hooks.Dispatch(target, c.mem, &c.regs) {
			*next = c.pc + 8
			return nil
		}
		*next = target

	case OpJAL:
		target := (c.pc + 4) & 0xF0000000 | (in.Target << 2)
		link := c.pc + 8
		if err := c.runDelaySlot(); err != nil {
			return err
		}
		// Original_source rewrites a local copy of $a1 relative to the
		// scratchpad base inside the LoadImage branch only; it never
		// touches the register a normal callee reads. internal/memory's
		// region translation already resolves a raw scratchpad-range
		// address generically, so hooks pass regs[A1] through untouched.
		if c.hooks != nil && c.hooks.Dispatch(target, c.mem, &c.regs) {
			*next = link
			return nil
		}
		c.SetGPR(RA, link)
		*next = target

	case OpJR:
		dest := c.GPR(int(in.Rs)) - 0x80000000
		if err := c.runDelaySlot(); err != nil {
			return err
		}
		if dest >= 0x00010000 && dest < 0x00200000 {
			*next = dest
		} else {
			// Out of the executable range: fall back to the return
			// sentinel carried in RA, signalling top-level return.
			*next = c.GPR(RA)
		}

	case OpJALR:
		funcStart := c.GPR(int(in.Rs)) - 0x80000000
		link := c.pc + 8
		if err := c.runDelaySlot(); err != nil {
			return err
		}
		if c.hooks != nil && c.hooks.Dispatch(funcStart, c.mem, &c.regs) {
			*next = link
			return nil
		}
		if funcStart >= 0x00010000 && funcStart < 0x00200000 {
			c.SetGPR(RA, link)
			*next = funcStart
		} else {
			*next = c.GPR(RA)
		}
	}
	return nil
}
