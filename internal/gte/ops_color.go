package gte

// opMVMVA performs the general "multiply matrix by vector and add vector"
// used by the lighting pipeline: the command word's mx/v/cv fields pick the
// three operands independently, including the mx==3 hardware-bug matrix and
// the cv==2 far-color mode that triggers the MAC-overflow-only quirk
// (spec.md §4.3, §9 Open Questions).
func (g *GTE) opMVMVA(lm bool, cv, v, mx uint32, sf uint) {
	m := g.mvmvaMatrix(mx)
	vec := g.mvmvaVector(v)
	tr, farColor := g.mvmvaTranslation(cv)
	g.mxv(tr, m, vec, lm, sf, farColor)
}

// colorDepthCue implements the shared depth-cue interpolation at the heart
// of DPCS/DPCT/INTPL/DCPL/NCDS/NCDT/CDP: blend an
// 8.4-fixed input color towards FC by a fraction given in IR0, shifted by
// sf, with MAC overflow checked at every stage.
func (g *GTE) colorDepthCue(rgb [3]int64, ir0 int64, sf uint) [3]int64 {
	var mac [3]int64
	fc := [3]int64{int64(g.FC.X), int64(g.FC.Y), int64(g.FC.Z)}
	for i := 0; i < 3; i++ {
		base := rgb[i] << 4
		delta := (fc[i] << 12) - base
		g.checkMAC(i, delta)
		scaled := delta * ir0
		g.checkMAC(i, scaled)
		full := scaled + (rgb[i] << 12)
		g.checkMAC(i, full)
		mac[i] = full >> int(sf)
	}
	return mac
}

// pushRGB clamps mac/16 through the B limiters, pushes the result onto the
// RGB FIFO tagged with RGBC's code byte, and updates IR1-3.
func (g *GTE) pushRGB(mac [3]int64, lm bool) {
	g.MAC[1], g.MAC[2], g.MAC[3] = mac[0], mac[1], mac[2]
	g.IR[1] = int32(g.limA1(mac[0], lm))
	g.IR[2] = int32(g.limA2(mac[1], lm))
	g.IR[3] = int32(g.limA3(mac[2], lm))

	r := g.limB1(mac[0] >> 4)
	gg := g.limB2(mac[1] >> 4)
	b := g.limB3(mac[2] >> 4)
	g.RGBFIFO[0], g.RGBFIFO[1] = g.RGBFIFO[1], g.RGBFIFO[2]
	g.RGBFIFO[2] = [4]uint8{r, gg, b, g.RGBC[3]}
}

func (g *GTE) rgbcVec() [3]int64 {
	return [3]int64{int64(g.RGBC[0]), int64(g.RGBC[1]), int64(g.RGBC[2])}
}

func (g *GTE) irVec() [3]int64 {
	return [3]int64{int64(g.IR[1]), int64(g.IR[2]), int64(g.IR[3])}
}

// opDPCS depth-cues the RGBC color by IR0 towards FC.
func (g *GTE) opDPCS(lm bool, cv, v, mx uint32, sf uint) {
	g.pushRGB(g.colorDepthCue(g.rgbcVec(), int64(g.IR[0]), sf), lm)
}

// opDPCT applies DPCS's blend three times across the RGB FIFO, matching
// RTPT's "run the single op across the triple" pattern.
func (g *GTE) opDPCT(lm bool, cv, v, mx uint32, sf uint) {
	for i := 0; i < 3; i++ {
		rgb := [3]int64{int64(g.RGBFIFO[0][0]), int64(g.RGBFIFO[0][1]), int64(g.RGBFIFO[0][2])}
		g.pushRGB(g.colorDepthCue(rgb, int64(g.IR[0]), sf), lm)
	}
}

// opINTPL blends the current IR vector towards FC, rather than RGBC.
func (g *GTE) opINTPL(lm bool, cv, v, mx uint32, sf uint) {
	g.pushRGB(g.colorDepthCue(g.irVec(), int64(g.IR[0]), sf), lm)
}

// opDCPL depth-cues the elementwise product of RGBC and the current IR
// vector, used for lit-and-cued single-color shading.
func (g *GTE) opDCPL(lm bool, cv, v, mx uint32, sf uint) {
	rgbc := g.rgbcVec()
	ir := g.irVec()
	prod := [3]int64{rgbc[0] * ir[0], rgbc[1] * ir[1], rgbc[2] * ir[2]}
	for i := range prod {
		g.checkMAC(i, prod[i])
	}
	g.pushRGB(g.colorDepthCue(prod, int64(g.IR[0]), sf), lm)
}

// lightAndColor runs a vector through the LIGHT matrix, then the LCOL
// matrix plus the BK background color, and scales the result by RGBC,
// producing the shared first stage of NCDS/NCDT/NCCS/NCCT.
func (g *GTE) lightAndColor(vec Vec3, lm bool, sf uint) [3]int64 {
	g.mxv(Vec3{}, g.LIGHT, vec, lm, sf, false)
	lit := Vec3{X: g.IR[1], Y: g.IR[2], Z: g.IR[3]}
	g.mxv(g.BK, g.LCOL, lit, lm, sf, false)

	rgbc := g.rgbcVec()
	ir := g.irVec()
	var mac [3]int64
	for i := 0; i < 3; i++ {
		v := rgbc[i] * ir[i] << 4
		g.checkMAC(i, v)
		mac[i] = v >> int(sf)
	}
	return mac
}

// opNCDS: normal color depth-cue, single vector.
func (g *GTE) opNCDS(lm bool, cv, v, mx uint32, sf uint) {
	lit := g.lightAndColor(g.V[0], lm, sf)
	g.pushRGB(g.colorDepthCue(lit, int64(g.IR[0]), sf), lm)
}

// opNCDT runs NCDS across all three input vectors.
func (g *GTE) opNCDT(lm bool, cv, v, mx uint32, sf uint) {
	for i := 0; i < 3; i++ {
		lit := g.lightAndColor(g.V[i], lm, sf)
		g.pushRGB(g.colorDepthCue(lit, int64(g.IR[0]), sf), lm)
	}
}

// opNCCS: normal color, single vector, no depth cue.
func (g *GTE) opNCCS(lm bool, cv, v, mx uint32, sf uint) {
	g.pushRGB(g.lightAndColor(g.V[0], lm, sf), lm)
}

// opNCCT runs NCCS across all three input vectors.
func (g *GTE) opNCCT(lm bool, cv, v, mx uint32, sf uint) {
	for i := 0; i < 3; i++ {
		g.pushRGB(g.lightAndColor(g.V[i], lm, sf), lm)
	}
}

// opCC: color with a precomputed IR vector rather than LIGHT-transformed
// normal; used when the caller has already run MVMVA against LIGHT.
func (g *GTE) opCC(lm bool, cv, v, mx uint32, sf uint) {
	rgbc := g.rgbcVec()
	ir := g.irVec()
	var mac [3]int64
	for i := 0; i < 3; i++ {
		val := rgbc[i]*ir[i]<<4 >> int(sf)
		g.checkMAC(i, val)
		mac[i] = val
	}
	g.pushRGB(mac, lm)
}

// opCDP: color depth-cue from the current IR vector, i.e. NCDS without the
// LIGHT stage: LCOL*IR plus BK, scaled by RGBC, then the same depth-cue
// stage NCDS uses.
func (g *GTE) opCDP(lm bool, cv, v, mx uint32, sf uint) {
	g.mxv(g.BK, g.LCOL, Vec3{X: g.IR[1], Y: g.IR[2], Z: g.IR[3]}, lm, sf, false)
	rgbc := g.rgbcVec()
	ir := g.irVec()
	var mac [3]int64
	for i := 0; i < 3; i++ {
		val := rgbc[i] * ir[i] << 4
		g.checkMAC(i, val)
		mac[i] = val >> int(sf)
	}
	g.pushRGB(g.colorDepthCue(mac, int64(g.IR[0]), sf), lm)
}

// opNCS: normal-only color (no RGBC base), single vector.
func (g *GTE) opNCS(lm bool, cv, v, mx uint32, sf uint) {
	g.mxv(Vec3{}, g.LIGHT, g.V[0], lm, sf, false)
	lit := Vec3{X: g.IR[1], Y: g.IR[2], Z: g.IR[3]}
	g.mxv(g.BK, g.LCOL, lit, lm, sf, false)
	g.pushRGB([3]int64{int64(g.MAC[1]), int64(g.MAC[2]), int64(g.MAC[3])}, lm)
}

// opNCT runs NCS across all three input vectors.
func (g *GTE) opNCT(lm bool, cv, v, mx uint32, sf uint) {
	for i := 0; i < 3; i++ {
		g.mxv(Vec3{}, g.LIGHT, g.V[i], lm, sf, false)
		lit := Vec3{X: g.IR[1], Y: g.IR[2], Z: g.IR[3]}
		g.mxv(g.BK, g.LCOL, lit, lm, sf, false)
		g.pushRGB([3]int64{int64(g.MAC[1]), int64(g.MAC[2]), int64(g.MAC[3])}, lm)
	}
}

// opGPF: general interpolation, scaling the IR1-3 vector by IR0
// uniformly across all three channels.
func (g *GTE) opGPF(lm bool, cv, v, mx uint32, sf uint) {
	ir0 := int64(g.IR[0])
	ir := g.irVec()
	var mac [3]int64
	for i := 0; i < 3; i++ {
		val := (ir[i] * ir0) >> int(sf)
		g.checkMAC(i, val)
		mac[i] = val
	}
	g.pushRGB(mac, lm)
}

// opGPL: like GPF, but adds the accumulated MAC1-3 (left by a prior OP)
// rather than starting from zero.
func (g *GTE) opGPL(lm bool, cv, v, mx uint32, sf uint) {
	ir0 := int64(g.IR[0])
	ir := g.irVec()
	prior := [3]int64{g.MAC[1] << int(sf), g.MAC[2] << int(sf), g.MAC[3] << int(sf)}
	var mac [3]int64
	for i := 0; i < 3; i++ {
		val := (prior[i] + ir[i]*ir0) >> int(sf)
		g.checkMAC(i, val)
		mac[i] = val
	}
	g.pushRGB(mac, lm)
}
