package gte

// mvmvaMatrix selects which 3x3 matrix MVMVA multiplies by, keyed on the
// command word's mx field (bits 17-18).
func (g *GTE) mvmvaMatrix(mx uint32) Mat3 {
	switch mx {
	case 0:
		return g.ROT
	case 1:
		return g.LIGHT
	case 2:
		return g.LCOL
	default:
		return g.garbageMatrix()
	}
}

// garbageMatrix reconstructs the bug-compatible "matrix" MVMVA uses when
// mx==3: RGBC's red byte, IR0 and specific elements of ROT, reproduced verbatim from
// original_source rather than rationalized (spec.md §9 Open Questions).
func (g *GTE) garbageMatrix() Mat3 {
	var m Mat3
	m[0][0] = -int16(uint16(g.RGBC[0]) << 4)
	m[0][1] = int16(uint16(g.RGBC[0]) << 4)
	m[0][2] = int16(g.IR[0])
	m[1][0] = g.ROT[0][2]
	m[1][1] = g.ROT[0][2]
	m[1][2] = g.ROT[0][2]
	m[2][0] = g.ROT[1][1]
	m[2][1] = g.ROT[1][2]
	m[2][2] = g.ROT[2][0]
	return m
}

// mvmvaVector selects the multiplier vector, keyed on the command word's
// v field (bits 15-16).
func (g *GTE) mvmvaVector(v uint32) Vec3 {
	switch v {
	case 0:
		return g.V[0]
	case 1:
		return g.V[1]
	case 2:
		return g.V[2]
	default:
		return Vec3{X: int32(g.IR[1]), Y: int32(g.IR[2]), Z: int32(g.IR[3])}
	}
}

// mvmvaTranslation selects the translation vector, keyed on the command
// word's cv field (bits 13-14).
func (g *GTE) mvmvaTranslation(cv uint32) (Vec3, bool) {
	switch cv {
	case 0:
		return g.TR, false
	case 1:
		return g.BK, false
	case 2:
		return g.FC, true // far-color mode: triggers the MVMVA hardware quirk.
	default:
		return Vec3{}, false
	}
}

// mxv computes one row i of (translation<<12 + M*v) >> sf, through MAC
// overflow checks, honoring the Far-Color quirk: when farColor is set, the
// first two partial-sum terms are evaluated solely to update MAC-overflow
// flags, then discarded, keeping only the M[i][2]*v[2] term. This quirk is
// load-bearing for game-visible output (spec.md §4.3).
func (g *GTE) mxv(t Vec3, m Mat3, v Vec3, lm bool, sf uint, farColor bool) {
	tArr := [3]int32{t.X, t.Y, t.Z}
	vArr := [3]int32{v.X, v.Y, v.Z}
	for i := 0; i < 3; i++ {
		base := int64(tArr[i]) << 12
		term0 := int64(m[i][0]) * int64(vArr[0])
		term1 := int64(m[i][1]) * int64(vArr[1])
		term2 := int64(m[i][2]) * int64(vArr[2])

		if farColor {
			// Evaluate the partial sums purely to set overflow bits, then
			// discard them: only the last term survives. The original checks
			// the two discarded partial sums against MAC1's overflow bits
			// regardless of row, then checks the surviving term against this
			// row's own index.
			g.checkMAC(0, base+term0)
			g.checkMAC(0, base+term0+term1)
			full := term2
			g.checkMAC(i, full)
			g.MAC[i+1] = full >> int(sf)
		} else {
			full := base + term0 + term1 + term2
			g.checkMAC(i, full)
			g.MAC[i+1] = full >> int(sf)
		}
		g.IR[i+1] = int32(g.limA(i, g.MAC[i+1], lm))
	}
}

// limA dispatches to the correctly-indexed A-limiter.
func (g *GTE) limA(i int, x int64, lm bool) int16 {
	switch i {
	case 0:
		return g.limA1(x, lm)
	case 1:
		return g.limA2(x, lm)
	default:
		return g.limA3(x, lm)
	}
}
