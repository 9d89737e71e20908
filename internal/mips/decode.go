package mips

// Op is the exhaustive instruction tag decode produces, replacing the
// original's four function-pointer tables (itype_funcs/rtype_funcs/
// jtype_funcs/ctype_funcs) with one sum type matched in a single switch.
type Op int

const (
	OpInvalid Op = iota

	// I-type arithmetic/logic immediate.
	OpADDI
	OpADDIU
	OpSLTI
	OpSLTIU
	OpANDI
	OpORI
	OpXORI
	OpLUI

	// I-type loads/stores.
	OpLB
	OpLBU
	OpLH
	OpLHU
	OpLW
	OpLWL
	OpLWR
	OpSB
	OpSH
	OpSW
	OpSWL
	OpSWR

	// I-type branches.
	OpBEQ
	OpBNE
	OpBLEZ
	OpBGTZ
	OpBLTZ
	OpBGEZ
	OpBLTZAL
	OpBGEZAL

	// J-type.
	OpJ
	OpJAL

	// R-type shifts.
	OpSLL
	OpSRL
	OpSRA
	OpSLLV
	OpSRLV
	OpSRAV

	// R-type jumps.
	OpJR
	OpJALR

	// R-type HI/LO.
	OpMFHI
	OpMTHI
	OpMFLO
	OpMTLO
	OpMULT
	OpMULTU
	OpDIV
	OpDIVU

	// R-type arithmetic/logic.
	OpADD
	OpADDU
	OpSUB
	OpSUBU
	OpAND
	OpOR
	OpXOR
	OpNOR
	OpSLT
	OpSLTU

	// Coprocessor.
	OpMFC2
	OpCFC2
	OpMTC2
	OpCTC2
	OpCOP2 // GTE operation execute (word bit 25 set).
	OpUnsupportedCop

	OpNOP
)

// Instruction is the decoded form of one 32-bit word.
type Instruction struct {
	Raw    uint32
	Op     Op
	Rs     uint8
	Rt     uint8
	Rd     uint8
	Shamt  uint8
	Funct  uint8
	Imm16  uint16 // raw, un-extended
	Target uint32 // 26-bit jump target field
	Copop  uint32 // low 25 bits of a COP2 execute opcode
}

// SignExtImm sign-extends the 16-bit immediate field.
func (i Instruction) SignExtImm() int32 {
	return int32(int16(i.Imm16))
}

// ZeroExtImm zero-extends the 16-bit immediate field.
func (i Instruction) ZeroExtImm() uint32 {
	return uint32(i.Imm16)
}

// Decode splits a 32-bit instruction word into its bitfields and resolves
// the Op tag in one pass.
func Decode(word uint32) Instruction {
	in := Instruction{
		Raw:    word,
		Rs:     uint8((word >> 21) & 0x1F),
		Rt:     uint8((word >> 16) & 0x1F),
		Rd:     uint8((word >> 11) & 0x1F),
		Shamt:  uint8((word >> 6) & 0x1F),
		Funct:  uint8(word & 0x3F),
		Imm16:  uint16(word & 0xFFFF),
		Target: word & 0x03FFFFFF,
	}

	opcode := (word >> 26) & 0x3F
	switch opcode {
	case 0x00:
		in.Op = decodeRType(in)
	case 0x01:
		switch in.Rt {
		case 0x00:
			in.Op = OpBLTZ
		case 0x01:
			in.Op = OpBGEZ
		case 0x10:
			in.Op = OpBLTZAL
		case 0x11:
			in.Op = OpBGEZAL
		default:
			in.Op = OpInvalid
		}
	case 0x02:
		in.Op = OpJ
	case 0x03:
		in.Op = OpJAL
	case 0x04:
		in.Op = OpBEQ
	case 0x05:
		in.Op = OpBNE
	case 0x06:
		in.Op = OpBLEZ
	case 0x07:
		in.Op = OpBGTZ
	case 0x08:
		in.Op = OpADDI
	case 0x09:
		in.Op = OpADDIU
	case 0x0A:
		in.Op = OpSLTI
	case 0x0B:
		in.Op = OpSLTIU
	case 0x0C:
		in.Op = OpANDI
	case 0x0D:
		in.Op = OpORI
	case 0x0E:
		in.Op = OpXORI
	case 0x0F:
		in.Op = OpLUI
	case 0x10, 0x11, 0x13:
		// Coprocessor 0/1/3: not implemented, decodes to a NOP.
		in.Op = OpUnsupportedCop
	case 0x12:
		if word&(1<<25) != 0 {
			in.Copop = word & 0x01FFFFFF
			in.Op = OpCOP2
		} else {
			in.Op = decodeCop2(in)
		}
	case 0x20:
		in.Op = OpLB
	case 0x21:
		in.Op = OpLH
	case 0x22:
		in.Op = OpLWL
	case 0x23:
		in.Op = OpLW
	case 0x24:
		in.Op = OpLBU
	case 0x25:
		in.Op = OpLHU
	case 0x26:
		in.Op = OpLWR
	case 0x28:
		in.Op = OpSB
	case 0x29:
		in.Op = OpSH
	case 0x2A:
		in.Op = OpSWL
	case 0x2B:
		in.Op = OpSW
	case 0x2E:
		in.Op = OpSWR
	default:
		in.Op = OpInvalid
	}
	return in
}

func decodeRType(in Instruction) Op {
	switch in.Funct {
	case 0x00:
		return OpSLL
	case 0x02:
		return OpSRL
	case 0x03:
		return OpSRA
	case 0x04:
		return OpSLLV
	case 0x06:
		return OpSRLV
	case 0x07:
		return OpSRAV
	case 0x08:
		return OpJR
	case 0x09:
		return OpJALR
	case 0x0C, 0x0D:
		return OpNOP // syscall/break: no observable kernel, treated as no-op.
	case 0x10:
		return OpMFHI
	case 0x11:
		return OpMTHI
	case 0x12:
		return OpMFLO
	case 0x13:
		return OpMTLO
	case 0x18:
		return OpMULT
	case 0x19:
		return OpMULTU
	case 0x1A:
		return OpDIV
	case 0x1B:
		return OpDIVU
	case 0x20:
		return OpADD
	case 0x21:
		return OpADDU
	case 0x22:
		return OpSUB
	case 0x23:
		return OpSUBU
	case 0x24:
		return OpAND
	case 0x25:
		return OpOR
	case 0x26:
		return OpXOR
	case 0x27:
		return OpNOR
	case 0x2A:
		return OpSLT
	case 0x2B:
		return OpSLTU
	default:
		return OpInvalid
	}
}

// decodeCop2 distinguishes register-transfer forms (MFC2/CFC2/MTC2/CTC2)
// from BC2F/BC2T, mirroring original_source's ctype_funcs dispatch on the
// coprocessor "rs" sub-field. GTE operation-execute forms are handled by
// the caller before reaching this function.
func decodeCop2(in Instruction) Op {
	switch in.Rs {
	case 0x00:
		return OpMFC2
	case 0x02:
		return OpCFC2
	case 0x04:
		return OpMTC2
	case 0x06:
		return OpCTC2
	default:
		return OpNOP // BC2F/BC2T and reserved forms: no observable effect here.
	}
}
