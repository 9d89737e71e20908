package gte

// FLAG bit positions, per spec.md §4.3's saturation/overflow table.
const (
	flagIR0Sat   = 12
	flagDSat2    = 13
	flagDSat1    = 14
	flagMAC3Neg  = 25
	flagMAC2Neg  = 26
	flagMAC1Neg  = 27
	flagMAC3Pos  = 28
	flagMAC2Pos  = 29
	flagMAC1Pos  = 30
	flagCSat     = 18
	flagB3Sat    = 19
	flagB2Sat    = 20
	flagB1Sat    = 21
	flagA3Sat    = 22
	flagA2Sat    = 23
	flagA1Sat    = 24
	flagDivOvf   = 17
	flagMAC0Neg  = 15
	flagMAC0Pos  = 16
	flagError    = 31
)

// limit clamps x to [lo, hi], setting bit in FLAG if x fell outside the
// range. Backs all ten named limiters (A1s..E) from spec.md's table.
func (g *GTE) limit(x int64, lo, hi int64, bit uint) int64 {
	if x < lo {
		g.FLAG |= 1 << bit
		return lo
	}
	if x > hi {
		g.FLAG |= 1 << bit
		return hi
	}
	return x
}

func (g *GTE) limA1(x int64, lm bool) int16 {
	if lm {
		return int16(g.limit(x, 0, 0x7FFF, flagA1Sat))
	}
	return int16(g.limit(x, -0x8000, 0x7FFF, flagA1Sat))
}
func (g *GTE) limA2(x int64, lm bool) int16 {
	if lm {
		return int16(g.limit(x, 0, 0x7FFF, flagA2Sat))
	}
	return int16(g.limit(x, -0x8000, 0x7FFF, flagA2Sat))
}
func (g *GTE) limA3(x int64, lm bool) int16 {
	if lm {
		return int16(g.limit(x, 0, 0x7FFF, flagA3Sat))
	}
	return int16(g.limit(x, -0x8000, 0x7FFF, flagA3Sat))
}

func (g *GTE) limB1(x int64) uint8 { return uint8(g.limit(x, 0, 0xFF, flagB1Sat)) }
func (g *GTE) limB2(x int64) uint8 { return uint8(g.limit(x, 0, 0xFF, flagB2Sat)) }
func (g *GTE) limB3(x int64) uint8 { return uint8(g.limit(x, 0, 0xFF, flagB3Sat)) }

func (g *GTE) limC(x int64) uint16 { return uint16(g.limit(x, 0, 0xFFFF, flagCSat)) }

func (g *GTE) limD1(x int64) int16 { return int16(g.limit(x, -0x400, 0x3FF, flagDSat1)) }
func (g *GTE) limD2(x int64) int16 { return int16(g.limit(x, -0x400, 0x3FF, flagDSat2)) }

func (g *GTE) limE(x int64) uint16 { return uint16(g.limit(x, 0, 0xFFF, flagIR0Sat)) }

// checkMAC applies the 44-bit two's-complement overflow envelope to a
// MAC1/MAC2/MAC3 accumulation, setting the matching positive/negative
// overflow bit.
func (g *GTE) checkMAC(idx int, x int64) {
	const bound = int64(1) << 43
	posBit, negBit := [3]uint{flagMAC1Pos, flagMAC2Pos, flagMAC3Pos}[idx], [3]uint{flagMAC1Neg, flagMAC2Neg, flagMAC3Neg}[idx]
	if x >= bound {
		g.FLAG |= 1 << posBit
	} else if x < -bound {
		g.FLAG |= 1 << negBit
	}
}

// checkMAC0 applies MAC0's narrower 32-bit overflow check.
func (g *GTE) checkMAC0(x int64) {
	if x > 0x7FFFFFFF {
		g.FLAG |= 1 << flagMAC0Pos
	} else if x < -0x80000000 {
		g.FLAG |= 1 << flagMAC0Neg
	}
}

// finishFlag ORs the disjunction of every stage bit an operation may have
// set into the summary bit 31, per spec.md §4.3 and the quantified
// invariant in spec.md §8.2.
func (g *GTE) finishFlag() {
	const mask = 0x7FFFF000 // bits 12..18, 19..24, 25..30
	if g.FLAG&mask != 0 {
		g.FLAG |= 1 << flagError
	}
}
