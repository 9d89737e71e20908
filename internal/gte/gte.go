// Package gte implements the Geometry Transformation Engine (spec
// component C3, coprocessor 2): 32 data registers, 32 control registers,
// and the 22-operation function table the interpreter's MFC2/CFC2/MTC2/
// CTC2/COP2-execute instructions route into.
//
//	Data registers                      Control registers
//	---------------------------------   ---------------------------------
//	0-1   V0 (x,y / z)                  0-4   ROT   3x3 signed-16 matrix
//	2-3   V1                            5-7   TR    i32 translation vector
//	4-5   V2                            8-12  LIGHT 3x3 signed-16 matrix
//	6     RGBC                          13-15 BG    i32 vector
//	7     OTZ                           16-20 LCOL  3x3 signed-16 matrix
//	8-11  IR0..IR3                      21-23 FC    i32 far-color vector
//	12-14 SXY0..SXY2 (SXYP mirrors 14)  24-25 OFX,OFY i32
//	16-19 SZ0..SZ3                      26    H     u16
//	20-22 RGB0..RGB2 (FIFO)             27    DQA   i16
//	23    RES1 (reserved, reads 0)      28    DQB   i32
//	24-27 MAC0..MAC3                    29-30 ZSF3,ZSF4 i16
//	28-29 IRGB/ORGB (5-5-5 packed)      31    FLAG
//	30-31 LZCS/LZCR
//
// Every operation clears FLAG on entry and, on exit, ORs the disjunction of
// whatever stage bits it set into bit 31. Grounded field-for-field on
// original_source/include/gte.h and src/gte.cpp; no teacher analog exists
// (the NES has no geometry coprocessor), so this package is structured
// after the teacher's pkg/ppu convention of a package-doc register map plus
// one file per operation family rather than reusing any teacher code.
package gte

// Vec3 is a general 3-component vector, used both for i16 (VX/VY/VZ, IR)
// and i32 (MAC, translation vectors) values depending on context.
type Vec3 struct{ X, Y, Z int32 }

type Mat3 [3][3]int16

// GTE holds all data and control register state.
type GTE struct {
	// Data registers.
	V        [3]Vec3 // only X,Y,Z used as i16-range values
	RGBC     [4]uint8
	OTZ       uint16
	IR       [4]int32
	SXYFIFO  [4][2]int16
	SZFIFO   [4]uint16
	RGBFIFO  [3][4]uint8
	MAC      [4]int64
	LZCS     int32
	LZCR     uint32

	// Control registers.
	ROT   Mat3
	TR    Vec3
	LIGHT Mat3
	BK    Vec3
	LCOL  Mat3
	FC    Vec3
	OFX   int32
	OFY   int32
	H     uint16
	DQA   int16
	DQB   int32
	ZSF3  int16
	ZSF4  int16
	FLAG  uint32
}

// New returns a zeroed GTE.
func New() *GTE {
	return &GTE{}
}

// Reset zeroes every register.
func (g *GTE) Reset() { *g = GTE{} }

// Execute dispatches a 25-bit GTE command word to the appropriate
// operation, keyed on its low 6 bits per spec.md §4.3.
func (g *GTE) Execute(word uint32) {
	lm := (word>>10)&1 != 0
	mx := (word >> 17) & 0x3
	v := (word >> 15) & 0x3
	cv := (word >> 13) & 0x3
	sf := uint(0)
	if (word>>19)&1 != 0 {
		sf = 12
	}
	op := word & 0x3F

	g.FLAG = 0
	if fn, ok := gteFuncs[op]; ok {
		fn(g, lm, cv, v, mx, sf)
	}
	g.finishFlag()
}

var gteFuncs = map[uint32]func(g *GTE, lm bool, cv, v, mx uint32, sf uint){
	0x01: (*GTE).opRTPS,
	0x06: (*GTE).opNCLIP,
	0x0C: (*GTE).opOP,
	0x10: (*GTE).opDPCS,
	0x11: (*GTE).opINTPL,
	0x12: (*GTE).opMVMVA,
	0x13: (*GTE).opNCDS,
	0x14: (*GTE).opCDP,
	0x16: (*GTE).opNCDT,
	0x1B: (*GTE).opNCCS,
	0x1C: (*GTE).opCC,
	0x1E: (*GTE).opNCS,
	0x20: (*GTE).opNCT,
	0x28: (*GTE).opSQR,
	0x29: (*GTE).opDCPL,
	0x2A: (*GTE).opDPCT,
	0x2D: (*GTE).opAVSZ3,
	0x2E: (*GTE).opAVSZ4,
	0x30: (*GTE).opRTPT,
	0x3D: (*GTE).opGPF,
	0x3E: (*GTE).opGPL,
	0x3F: (*GTE).opNCCT,
}
