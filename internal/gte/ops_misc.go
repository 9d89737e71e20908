package gte

// opSQR squares IR1-3 elementwise, used by the driver for distance/length
// calculations ahead of lighting.
func (g *GTE) opSQR(lm bool, cv, v, mx uint32, sf uint) {
	ir := g.irVec()
	for i := 0; i < 3; i++ {
		val := (ir[i] * ir[i]) >> int(sf)
		g.checkMAC(i, val)
		g.MAC[i+1] = val
		g.IR[i+1] = int32(g.limA(i, val, lm))
	}
}

// opAVSZ3 averages the three most recent SZ-FIFO depths, weighted by ZSF3,
// into OTZ: the ordering-table bucket key the driver sorts primitives by.
func (g *GTE) opAVSZ3(lm bool, cv, v, mx uint32, sf uint) {
	sum := int64(g.SZFIFO[1]) + int64(g.SZFIFO[2]) + int64(g.SZFIFO[3])
	mac0 := int64(g.ZSF3) * sum
	g.checkMAC0(mac0)
	g.MAC[0] = mac0
	g.OTZ = g.limC(mac0 >> 12)
}

// opAVSZ4 is AVSZ3 over all four SZ-FIFO entries, weighted by ZSF4.
func (g *GTE) opAVSZ4(lm bool, cv, v, mx uint32, sf uint) {
	sum := int64(g.SZFIFO[0]) + int64(g.SZFIFO[1]) + int64(g.SZFIFO[2]) + int64(g.SZFIFO[3])
	mac0 := int64(g.ZSF4) * sum
	g.checkMAC0(mac0)
	g.MAC[0] = mac0
	g.OTZ = g.limC(mac0 >> 12)
}
