package mips

import "encoding/binary"

func (c *CPU) effAddr(in Instruction) uint32 {
	return c.GPR(int(in.Rs)) + uint32(in.SignExtImm())
}

func (c *CPU) execLoad(in Instruction) error {
	addr := c.effAddr(in)
	switch in.Op {
	case OpLB:
		v, err := c.mem.Read8(addr)
		if err != nil {
			return err
		}
		c.SetGPR(int(in.Rt), uint32(int32(int8(v))))
	case OpLBU:
		v, err := c.mem.Read8(addr)
		if err != nil {
			return err
		}
		c.SetGPR(int(in.Rt), uint32(v))
	case OpLH:
		v, err := c.mem.Read16(addr)
		if err != nil {
			return err
		}
		c.SetGPR(int(in.Rt), uint32(int32(int16(v))))
	case OpLHU:
		v, err := c.mem.Read16(addr)
		if err != nil {
			return err
		}
		c.SetGPR(int(in.Rt), uint32(v))
	case OpLW:
		v, err := c.mem.Read32(addr)
		if err != nil {
			return err
		}
		c.SetGPR(int(in.Rt), v)
	case OpLWL:
		return c.execLWL(in, addr)
	case OpLWR:
		return c.execLWR(in, addr)
	}
	return nil
}

func (c *CPU) execStore(in Instruction) error {
	addr := c.effAddr(in)
	switch in.Op {
	case OpSB:
		return c.mem.Write8(addr, uint8(c.GPR(int(in.Rt))))
	case OpSH:
		return c.mem.Write16(addr, uint16(c.GPR(int(in.Rt))))
	case OpSW:
		return c.mem.Write32(addr, c.GPR(int(in.Rt)))
	case OpSWL:
		return c.execSWL(in, addr)
	case OpSWR:
		return c.execSWR(in, addr)
	}
	return nil
}

// execLWL merges the bytes of the aligned word at addr, from the
// addressed byte up to the word's most significant byte, into the
// corresponding high bytes of rt, leaving rt's low bytes untouched.
// Matches spec.md §4.2's LWL/LWR description verbatim.
func (c *CPU) execLWL(in Instruction, addr uint32) error {
	aligned := addr &^ 3
	var word [4]byte
	if err := c.mem.CopyOut(aligned, word[:]); err != nil {
		return err
	}
	var rt [4]byte
	binary.LittleEndian.PutUint32(rt[:], c.GPR(int(in.Rt)))
	b := addr & 3
	for i := b; i <= 3; i++ {
		rt[i] = word[i]
	}
	c.SetGPR(int(in.Rt), binary.LittleEndian.Uint32(rt[:]))
	return nil
}

// execLWR merges the bytes of the aligned word at addr, from its first
// byte up to the addressed byte, into the corresponding low bytes of rt.
func (c *CPU) execLWR(in Instruction, addr uint32) error {
	aligned := addr &^ 3
	var word [4]byte
	if err := c.mem.CopyOut(aligned, word[:]); err != nil {
		return err
	}
	var rt [4]byte
	binary.LittleEndian.PutUint32(rt[:], c.GPR(int(in.Rt)))
	b := addr & 3
	for i := uint32(0); i <= b; i++ {
		rt[i] = word[i]
	}
	c.SetGPR(int(in.Rt), binary.LittleEndian.Uint32(rt[:]))
	return nil
}

// execSWL mirrors execLWL: writes rt's high bytes into the corresponding
// high bytes of the aligned memory word, leaving the word's low bytes
// untouched.
func (c *CPU) execSWL(in Instruction, addr uint32) error {
	aligned := addr &^ 3
	var word [4]byte
	if err := c.mem.CopyOut(aligned, word[:]); err != nil {
		return err
	}
	var rt [4]byte
	binary.LittleEndian.PutUint32(rt[:], c.GPR(int(in.Rt)))
	b := addr & 3
	for i := b; i <= 3; i++ {
		word[i] = rt[i]
	}
	return c.mem.CopyIn(aligned, word[:])
}

// execSWR mirrors execLWR for stores.
func (c *CPU) execSWR(in Instruction, addr uint32) error {
	aligned := addr &^ 3
	var word [4]byte
	if err := c.mem.CopyOut(aligned, word[:]); err != nil {
		return err
	}
	var rt [4]byte
	binary.LittleEndian.PutUint32(rt[:], c.GPR(int(in.Rt)))
	b := addr & 3
	for i := uint32(0); i <= b; i++ {
		word[i] = rt[i]
	}
	return c.mem.CopyIn(aligned, word[:])
}
