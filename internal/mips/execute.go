package mips

import "github.com/KernelEquinox/sotn-sim/internal/diag"

// execute runs one decoded instruction. next holds the caller's default
// successor PC (pc+4) on entry; control-flow instructions overwrite it.
func (c *CPU) execute(in Instruction, next *uint32) error {
	if c.debug {
		diag.Infof("exec %#08x (op %d)", in.Raw, in.Op)
	}
	switch in.Op {
	case OpADDI, OpADDIU:
		c.SetGPR(int(in.Rt), c.GPR(int(in.Rs))+uint32(in.SignExtImm()))
	case OpSLTI:
		if int32(c.GPR(int(in.Rs))) < in.SignExtImm() {
			c.SetGPR(int(in.Rt), 1)
		} else {
			c.SetGPR(int(in.Rt), 0)
		}
	case OpSLTIU:
		if c.GPR(int(in.Rs)) < uint32(in.SignExtImm()) {
			c.SetGPR(int(in.Rt), 1)
		} else {
			c.SetGPR(int(in.Rt), 0)
		}
	case OpANDI:
		c.SetGPR(int(in.Rt), c.GPR(int(in.Rs))&in.ZeroExtImm())
	case OpORI:
		c.SetGPR(int(in.Rt), c.GPR(int(in.Rs))|in.ZeroExtImm())
	case OpXORI:
		c.SetGPR(int(in.Rt), c.GPR(int(in.Rs))^in.ZeroExtImm())
	case OpLUI:
		c.SetGPR(int(in.Rt), in.ZeroExtImm()<<16)

	case OpSLL:
		c.SetGPR(int(in.Rd), c.GPR(int(in.Rt))<<in.Shamt)
	case OpSRL:
		c.SetGPR(int(in.Rd), c.GPR(int(in.Rt))>>in.Shamt)
	case OpSRA:
		c.SetGPR(int(in.Rd), uint32(int32(c.GPR(int(in.Rt)))>>in.Shamt))
	case OpSLLV:
		c.SetGPR(int(in.Rd), c.GPR(int(in.Rt))<<(c.GPR(int(in.Rs))&0x1F))
	case OpSRLV:
		c.SetGPR(int(in.Rd), c.GPR(int(in.Rt))>>(c.GPR(int(in.Rs))&0x1F))
	case OpSRAV:
		c.SetGPR(int(in.Rd), uint32(int32(c.GPR(int(in.Rt)))>>(c.GPR(int(in.Rs))&0x1F)))

	case OpADD, OpADDU:
		c.SetGPR(int(in.Rd), c.GPR(int(in.Rs))+c.GPR(int(in.Rt)))
	case OpSUB, OpSUBU:
		c.SetGPR(int(in.Rd), c.GPR(int(in.Rs))-c.GPR(int(in.Rt)))
	case OpAND:
		c.SetGPR(int(in.Rd), c.GPR(int(in.Rs))&c.GPR(int(in.Rt)))
	case OpOR:
		c.SetGPR(int(in.Rd), c.GPR(int(in.Rs))|c.GPR(int(in.Rt)))
	case OpXOR:
		c.SetGPR(int(in.Rd), c.GPR(int(in.Rs))^c.GPR(int(in.Rt)))
	case OpNOR:
		c.SetGPR(int(in.Rd), ^(c.GPR(int(in.Rs)) | c.GPR(int(in.Rt))))
	case OpSLT:
		if int32(c.GPR(int(in.Rs))) < int32(c.GPR(int(in.Rt))) {
			c.SetGPR(int(in.Rd), 1)
		} else {
			c.SetGPR(int(in.Rd), 0)
		}
	case OpSLTU:
		if c.GPR(int(in.Rs)) < c.GPR(int(in.Rt)) {
			c.SetGPR(int(in.Rd), 1)
		} else {
			c.SetGPR(int(in.Rd), 0)
		}

	case OpMFHI:
		c.SetGPR(int(in.Rd), c.hi)
	case OpMTHI:
		c.hi = c.GPR(int(in.Rs))
	case OpMFLO:
		c.SetGPR(int(in.Rd), c.lo)
	case OpMTLO:
		c.lo = c.GPR(int(in.Rs))
	case OpMULT:
		prod := int64(int32(c.GPR(int(in.Rs)))) * int64(int32(c.GPR(int(in.Rt))))
		c.hi, c.lo = uint32(uint64(prod)>>32), uint32(uint64(prod))
	case OpMULTU:
		prod := uint64(c.GPR(int(in.Rs))) * uint64(c.GPR(int(in.Rt)))
		c.hi, c.lo = uint32(prod>>32), uint32(prod)
	case OpDIV:
		n, d := int32(c.GPR(int(in.Rs))), int32(c.GPR(int(in.Rt)))
		if d == 0 {
			// Result is implementation-defined per spec.md §4.2; the
			// driver must not depend on it. HI/LO left unchanged.
			break
		}
		c.lo, c.hi = uint32(n/d), uint32(n%d)
	case OpDIVU:
		n, d := c.GPR(int(in.Rs)), c.GPR(int(in.Rt))
		if d == 0 {
			break
		}
		c.lo, c.hi = n/d, n%d

	case OpLB, OpLBU, OpLH, OpLHU, OpLW, OpLWL, OpLWR:
		if err := c.execLoad(in); err != nil {
			return err
		}
	case OpSB, OpSH, OpSW, OpSWL, OpSWR:
		if err := c.execStore(in); err != nil {
			return err
		}

	case OpBEQ, OpBNE, OpBLEZ, OpBGTZ, OpBLTZ, OpBGEZ, OpBLTZAL, OpBGEZAL:
		return c.execBranch(in, next)
	case OpJ, OpJAL, OpJR, OpJALR:
		return c.execJump(in, next)

	case OpMFC2:
		if c.cop2 != nil {
			c.SetGPR(int(in.Rt), c.cop2.ReadData(uint32(in.Rd)))
		}
	case OpCFC2:
		if c.cop2 != nil {
			c.SetGPR(int(in.Rt), c.cop2.ReadControl(uint32(in.Rd)))
		}
	case OpMTC2:
		if c.cop2 != nil {
			c.cop2.WriteData(uint32(in.Rd), c.GPR(int(in.Rt)))
		}
	case OpCTC2:
		if c.cop2 != nil {
			c.cop2.WriteControl(uint32(in.Rd), c.GPR(int(in.Rt)))
		}
	case OpCOP2:
		if c.cop2 != nil {
			c.cop2.Execute(in.Copop)
		}

	case OpUnsupportedCop:
		// Logged and treated as a NOP per spec.md §7; the driver is not
		// interrupted.
		diag.Warnf("unsupported coprocessor instruction at pc=%#x (opcode %#x)", c.pc, in.Raw)
	case OpNOP, OpInvalid:
		// No effect. OpInvalid covers reserved encodings, also a NOP.
	}
	return nil
}
