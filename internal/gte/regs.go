package gte

// ReadData implements mips.Cop2's MFC2, returning data register n's 32-bit
// packed value per the table in the package doc.
func (g *GTE) ReadData(n uint32) uint32 {
	switch n {
	case 0:
		return pack16(uint16(g.V[0].X), uint16(g.V[0].Y))
	case 1:
		return uint32(int32(int16(g.V[0].Z)))
	case 2:
		return pack16(uint16(g.V[1].X), uint16(g.V[1].Y))
	case 3:
		return uint32(int32(int16(g.V[1].Z)))
	case 4:
		return pack16(uint16(g.V[2].X), uint16(g.V[2].Y))
	case 5:
		return uint32(int32(int16(g.V[2].Z)))
	case 6:
		return uint32(g.RGBC[0]) | uint32(g.RGBC[1])<<8 | uint32(g.RGBC[2])<<16 | uint32(g.RGBC[3])<<24
	case 7:
		return uint32(g.OTZ)
	case 8:
		return uint32(int32(g.IR[0]))
	case 9:
		return uint32(int32(g.IR[1]))
	case 10:
		return uint32(int32(g.IR[2]))
	case 11:
		return uint32(int32(g.IR[3]))
	case 12:
		return pack16(uint16(g.SXYFIFO[0][0]), uint16(g.SXYFIFO[0][1]))
	case 13:
		return pack16(uint16(g.SXYFIFO[1][0]), uint16(g.SXYFIFO[1][1]))
	case 14:
		return pack16(uint16(g.SXYFIFO[2][0]), uint16(g.SXYFIFO[2][1]))
	case 15:
		return pack16(uint16(g.SXYFIFO[3][0]), uint16(g.SXYFIFO[3][1]))
	case 16:
		return uint32(g.SZFIFO[0])
	case 17:
		return uint32(g.SZFIFO[1])
	case 18:
		return uint32(g.SZFIFO[2])
	case 19:
		return uint32(g.SZFIFO[3])
	case 20:
		return rgbFIFOWord(g.RGBFIFO[0])
	case 21:
		return rgbFIFOWord(g.RGBFIFO[1])
	case 22:
		return rgbFIFOWord(g.RGBFIFO[2])
	case 23:
		return 0 // RES1, reserved.
	case 24:
		return uint32(g.MAC[0])
	case 25:
		return uint32(g.MAC[1])
	case 26:
		return uint32(g.MAC[2])
	case 27:
		return uint32(g.MAC[3])
	case 28, 29:
		return g.packIRGB()
	case 30:
		return uint32(g.LZCS)
	case 31:
		return g.LZCR
	}
	return 0
}

// WriteData implements mips.Cop2's MTC2.
func (g *GTE) WriteData(n uint32, val uint32) {
	switch n {
	case 0:
		g.V[0].X, g.V[0].Y = int32(int16(val)), int32(int16(val>>16))
	case 1:
		g.V[0].Z = int32(int16(val))
	case 2:
		g.V[1].X, g.V[1].Y = int32(int16(val)), int32(int16(val>>16))
	case 3:
		g.V[1].Z = int32(int16(val))
	case 4:
		g.V[2].X, g.V[2].Y = int32(int16(val)), int32(int16(val>>16))
	case 5:
		g.V[2].Z = int32(int16(val))
	case 6:
		g.RGBC = [4]uint8{byte(val), byte(val >> 8), byte(val >> 16), byte(val >> 24)}
	case 7:
		g.OTZ = uint16(val)
	case 8:
		g.IR[0] = int32(int16(val))
	case 9:
		g.IR[1] = int32(int16(val))
	case 10:
		g.IR[2] = int32(int16(val))
	case 11:
		g.IR[3] = int32(int16(val))
	case 12:
		g.SXYFIFO[0] = [2]int16{int16(val), int16(val >> 16)}
	case 13:
		g.SXYFIFO[1] = [2]int16{int16(val), int16(val >> 16)}
	case 14:
		g.SXYFIFO[2] = [2]int16{int16(val), int16(val >> 16)}
	case 15:
		// Writing SXYP pushes the FIFO, matching the original's "write
		// to SXYP shifts SXY0<-SXY1<-SXY2<-new" behavior.
		g.SXYFIFO[3] = [2]int16{int16(val), int16(val >> 16)}
		g.SXYFIFO[0], g.SXYFIFO[1], g.SXYFIFO[2] = g.SXYFIFO[1], g.SXYFIFO[2], g.SXYFIFO[3]
	case 16:
		g.SZFIFO[0] = uint16(val)
	case 17:
		g.SZFIFO[1] = uint16(val)
	case 18:
		g.SZFIFO[2] = uint16(val)
	case 19:
		g.SZFIFO[3] = uint16(val)
	case 20:
		g.RGBFIFO[0] = unpackRGBFIFO(val)
	case 21:
		g.RGBFIFO[1] = unpackRGBFIFO(val)
	case 22:
		g.RGBFIFO[2] = unpackRGBFIFO(val)
	case 23:
		// RES1 ignores writes.
	case 24:
		g.MAC[0] = int64(int32(val))
	case 25:
		g.MAC[1] = int64(int32(val))
	case 26:
		g.MAC[2] = int64(int32(val))
	case 27:
		g.MAC[3] = int64(int32(val))
	case 28:
		g.unpackIRGB(val)
	case 29:
		// ORGB is read-only.
	case 30:
		g.LZCS = int32(val)
		if g.LZCS >= 0 {
			g.LZCR = leadingZeroBits(uint32(g.LZCS), 32)
		} else {
			g.LZCR = leadingZeroBits(^uint32(g.LZCS), 32)
		}
	case 31:
		// LZCR is read-only.
	}
}

// ReadControl implements mips.Cop2's CFC2.
func (g *GTE) ReadControl(n uint32) uint32 {
	switch n {
	case 0, 1, 2, 3, 4:
		return readMat3(g.ROT, n)
	case 5:
		return uint32(g.TR.X)
	case 6:
		return uint32(g.TR.Y)
	case 7:
		return uint32(g.TR.Z)
	case 8, 9, 10, 11, 12:
		return readMat3(g.LIGHT, n-8)
	case 13:
		return uint32(g.BK.X)
	case 14:
		return uint32(g.BK.Y)
	case 15:
		return uint32(g.BK.Z)
	case 16, 17, 18, 19, 20:
		return readMat3(g.LCOL, n-16)
	case 21:
		return uint32(g.FC.X)
	case 22:
		return uint32(g.FC.Y)
	case 23:
		return uint32(g.FC.Z)
	case 24:
		return uint32(g.OFX)
	case 25:
		return uint32(g.OFY)
	case 26:
		return uint32(int32(int16(g.H)))
	case 27:
		return uint32(int32(g.DQA))
	case 28:
		return uint32(g.DQB)
	case 29:
		return uint32(int32(g.ZSF3))
	case 30:
		return uint32(int32(g.ZSF4))
	case 31:
		return g.FLAG
	}
	return 0
}

// WriteControl implements mips.Cop2's CTC2.
func (g *GTE) WriteControl(n uint32, val uint32) {
	switch n {
	case 0, 1, 2, 3, 4:
		writeMat3(&g.ROT, n, val)
	case 5:
		g.TR.X = int32(val)
	case 6:
		g.TR.Y = int32(val)
	case 7:
		g.TR.Z = int32(val)
	case 8, 9, 10, 11, 12:
		writeMat3(&g.LIGHT, n-8, val)
	case 13:
		g.BK.X = int32(val)
	case 14:
		g.BK.Y = int32(val)
	case 15:
		g.BK.Z = int32(val)
	case 16, 17, 18, 19, 20:
		writeMat3(&g.LCOL, n-16, val)
	case 21:
		g.FC.X = int32(val)
	case 22:
		g.FC.Y = int32(val)
	case 23:
		g.FC.Z = int32(val)
	case 24:
		g.OFX = int32(val)
	case 25:
		g.OFY = int32(val)
	case 26:
		g.H = uint16(val)
	case 27:
		g.DQA = int16(val)
	case 28:
		g.DQB = int32(val)
	case 29:
		g.ZSF3 = int16(val)
	case 30:
		g.ZSF4 = int16(val)
	case 31:
		g.FLAG = val
	}
}

func pack16(lo, hi uint16) uint32 { return uint32(lo) | uint32(hi)<<16 }

func rgbFIFOWord(c [4]uint8) uint32 {
	return uint32(c[0]) | uint32(c[1])<<8 | uint32(c[2])<<16 | uint32(c[3])<<24
}

func unpackRGBFIFO(val uint32) [4]uint8 {
	return [4]uint8{byte(val), byte(val >> 8), byte(val >> 16), byte(val >> 24)}
}

// packIRGB packs IR1-3 down to 5-5-5, the format both IRGB and ORGB read
// back as.
func (g *GTE) packIRGB() uint32 {
	clamp5 := func(x int32) uint32 {
		x >>= 7
		if x < 0 {
			x = 0
		}
		if x > 0x1F {
			x = 0x1F
		}
		return uint32(x)
	}
	return clamp5(g.IR[1]) | clamp5(g.IR[2])<<5 | clamp5(g.IR[3])<<10
}

// unpackIRGB expands a 5-5-5 write to IRGB back out to IR1-3, scaled by
// 0x80 per channel as the original hardware does.
func (g *GTE) unpackIRGB(val uint32) {
	g.IR[1] = int32((val & 0x1F)) * 0x80
	g.IR[2] = int32((val >> 5) & 0x1F) * 0x80
	g.IR[3] = int32((val >> 10) & 0x1F) * 0x80
}

// readMat3 reads one of a packed 3x3 signed-16 matrix's five 32-bit
// control registers (four pairs plus a lone trailing element).
func readMat3(m Mat3, reg uint32) uint32 {
	flat := [9]int16{m[0][0], m[0][1], m[0][2], m[1][0], m[1][1], m[1][2], m[2][0], m[2][1], m[2][2]}
	switch reg {
	case 0:
		return pack16(uint16(flat[0]), uint16(flat[1]))
	case 1:
		return pack16(uint16(flat[2]), uint16(flat[3]))
	case 2:
		return pack16(uint16(flat[4]), uint16(flat[5]))
	case 3:
		return pack16(uint16(flat[6]), uint16(flat[7]))
	default:
		return uint32(int32(flat[8]))
	}
}

func writeMat3(m *Mat3, reg uint32, val uint32) {
	flat := [9]int16{m[0][0], m[0][1], m[0][2], m[1][0], m[1][1], m[1][2], m[2][0], m[2][1], m[2][2]}
	switch reg {
	case 0:
		flat[0], flat[1] = int16(val), int16(val>>16)
	case 1:
		flat[2], flat[3] = int16(val), int16(val>>16)
	case 2:
		flat[4], flat[5] = int16(val), int16(val>>16)
	case 3:
		flat[6], flat[7] = int16(val), int16(val>>16)
	default:
		flat[8] = int16(val)
	}
	*m = Mat3{
		{flat[0], flat[1], flat[2]},
		{flat[3], flat[4], flat[5]},
		{flat[6], flat[7], flat[8]},
	}
}
