package gte

// opRTPS perspective-transforms V0 through ROT/TR, pushes the result onto
// the SZ/SXY FIFOs, and computes the projected screen coordinates via the
// fast-reciprocal divide. Grounded field-for-field on original_source's
// RTPS handler; this is the operation exercised by spec.md's S3 scenario.
func (g *GTE) opRTPS(lm bool, cv, v, mx uint32, sf uint) {
	g.rtp(g.V[0], lm, sf)
}

// opRTPT runs RTPS across all three input vectors in sequence, matching
// the original's loop over V0..V2.
func (g *GTE) opRTPT(lm bool, cv, v, mx uint32, sf uint) {
	for i := 0; i < 3; i++ {
		g.rtp(g.V[i], lm, sf)
	}
}

func (g *GTE) rtp(vec Vec3, lm bool, sf uint) {
	g.mxv(g.TR, g.ROT, vec, lm, sf, false)

	szShift := 12 - int(sf)
	sz := g.MAC[3] >> szShift
	g.SZFIFO[0], g.SZFIFO[1], g.SZFIFO[2] = g.SZFIFO[1], g.SZFIFO[2], g.SZFIFO[3]
	g.SZFIFO[3] = g.limC(sz)

	quotient := int64(g.divide(uint32(g.H), uint32(g.SZFIFO[3])))

	mac0X := quotient*int64(g.IR[1]) + int64(g.OFX)
	mac0Y := quotient*int64(g.IR[2]) + int64(g.OFY)
	g.checkMAC0(mac0X)
	g.checkMAC0(mac0Y)

	sx := g.limD1(mac0X >> 16)
	sy := g.limD2(mac0Y >> 16)
	g.SXYFIFO[3] = [2]int16{sx, sy}
	g.SXYFIFO[0], g.SXYFIFO[1], g.SXYFIFO[2] = g.SXYFIFO[1], g.SXYFIFO[2], g.SXYFIFO[3]

	mac0D := quotient*int64(g.DQA) + int64(g.DQB)
	g.checkMAC0(mac0D)
	g.MAC[0] = mac0D
	g.IR[0] = int32(g.limE(mac0D))
}

// opNCLIP computes the cross-product area of the three most recent screen
// points in SXYFIFO, used by the driver to cull back-facing polygons.
func (g *GTE) opNCLIP(lm bool, cv, v, mx uint32, sf uint) {
	x0, y0 := int64(g.SXYFIFO[0][0]), int64(g.SXYFIFO[0][1])
	x1, y1 := int64(g.SXYFIFO[1][0]), int64(g.SXYFIFO[1][1])
	x2, y2 := int64(g.SXYFIFO[2][0]), int64(g.SXYFIFO[2][1])

	mac0 := x0*(y1-y2) + x1*(y2-y0) + x2*(y0-y1)
	g.checkMAC0(mac0)
	g.MAC[0] = mac0
}

// opOP computes the "outer product" of IR against the diagonal of the ROT
// matrix, used for lighting-normal transforms.
func (g *GTE) opOP(lm bool, cv, v, mx uint32, sf uint) {
	d1, d2, d3 := int64(g.ROT[0][0]), int64(g.ROT[1][1]), int64(g.ROT[2][2])
	ir1, ir2, ir3 := int64(g.IR[1]), int64(g.IR[2]), int64(g.IR[3])

	m1 := (ir3*d2 - ir2*d3) >> int(sf)
	m2 := (ir1*d3 - ir3*d1) >> int(sf)
	m3 := (ir2*d1 - ir1*d2) >> int(sf)

	g.checkMAC(0, m1)
	g.checkMAC(1, m2)
	g.checkMAC(2, m3)
	g.MAC[1], g.MAC[2], g.MAC[3] = m1, m2, m3
	g.IR[1] = int32(g.limA1(m1, lm))
	g.IR[2] = int32(g.limA2(m2, lm))
	g.IR[3] = int32(g.limA3(m3, lm))
}
