package entity

import "encoding/binary"

// PrimitiveKind classifies a 32-byte primitive by its code byte, per
// spec.md §4.5's list. The same 32 bytes are reinterpreted differently per
// kind, matching original_source's POLY_GT4-shaped union.
type PrimitiveKind int

const (
	KindUnknown PrimitiveKind = iota
	KindSprite
	KindTile
	KindPolyG4
	KindPolyGT4
	KindPolyGT3
	KindLineG2
	KindDrawEnv
)

// ClassifyCode maps a primitive's code byte (low nibble + high bits, per
// the PSX GPU primitive tag convention) to a PrimitiveKind.
func ClassifyCode(code uint8) PrimitiveKind {
	switch code >> 5 {
	case 0x1: // 0x20-0x3F: flat/gouraud polygons.
		if code&0x04 != 0 {
			if code&0x10 != 0 {
				return KindPolyGT4
			}
			return KindPolyGT3
		}
		return KindPolyG4
	case 0x3: // 0x60-0x7F: sprites (rectangles).
		return KindSprite
	case 0x4: // 0x80-0x9F: lines.
		return KindLineG2
	case 0x0: // 0x00-0x1F: draw-environment / misc GPU state.
		return KindDrawEnv
	default:
		return KindTile
	}
}

// Raw is the decoded primitive, field-for-field per original_source's
// POLY_GT4: the RawSize-byte header every kind carries (Tag through P2)
// followed by the RawExtSize-byte extension only quad kinds decode.
type Raw struct {
	Tag                uint32
	R0, G0, B0, Code   uint8
	X0, Y0             int16
	U0, V0             uint8
	Clut               uint16
	R1, G1, B1, P1     uint8
	X1, Y1             int16
	U1, V1             uint8
	Tpage              uint16
	R2, G2, B2, P2     uint8
	X2, Y2             int16
	U2, V2             uint8
	Pad2               uint16
	R3, G3, B3, P3     uint8
	X3, Y3             int16
	U3, V3             uint8
	Pad3               uint16
}

// RawSize is the 32-byte header every primitive carries regardless of
// kind. Quad kinds (G4/GT4/GT3) extend into RawExtSize more bytes holding
// the remaining two corners; simple kinds (sprite/tile/line/drawenv) never
// read past RawSize. This matches original_source's POLY_GT4 (52 bytes)
// being the on-disk size for quad primitives while spec.md's "32-byte
// struct" describes the common header shared by every kind.
const (
	RawSize    = 32
	RawExtSize = 20
)

// DecodeRaw parses a primitive record's fixed 32-byte header out of a RAM
// slice. Callers needing the extended quad corners call DecodeExt on the
// bytes immediately following.
func DecodeRaw(b []byte) Raw {
	le := binary.LittleEndian
	var p Raw
	p.Tag = le.Uint32(b[0x00:])
	p.R0, p.G0, p.B0, p.Code = b[0x04], b[0x05], b[0x06], b[0x07]
	p.X0, p.Y0 = int16(le.Uint16(b[0x08:])), int16(le.Uint16(b[0x0A:]))
	p.U0, p.V0 = b[0x0C], b[0x0D]
	p.Clut = le.Uint16(b[0x0E:])
	p.R1, p.G1, p.B1, p.P1 = b[0x10], b[0x11], b[0x12], b[0x13]
	p.X1, p.Y1 = int16(le.Uint16(b[0x14:])), int16(le.Uint16(b[0x16:]))
	p.U1, p.V1 = b[0x18], b[0x19]
	p.Tpage = le.Uint16(b[0x1A:])
	p.R2, p.G2, p.B2, p.P2 = b[0x1C], b[0x1D], b[0x1E], b[0x1F]
	return p
}

// DecodeExt fills in a quad kind's remaining two corners from the
// RawExtSize bytes immediately following its 32-byte header.
func (p *Raw) DecodeExt(b []byte) {
	le := binary.LittleEndian
	p.X2, p.Y2 = int16(le.Uint16(b[0x00:])), int16(le.Uint16(b[0x02:]))
	p.U2, p.V2 = b[0x04], b[0x05]
	p.Pad2 = le.Uint16(b[0x06:])
	p.R3, p.G3, p.B3, p.P3 = b[0x08], b[0x09], b[0x0A], b[0x0B]
	p.X3, p.Y3 = int16(le.Uint16(b[0x0C:])), int16(le.Uint16(b[0x0E:]))
	p.U3, p.V3 = b[0x10], b[0x11]
	p.Pad3 = le.Uint16(b[0x12:])
}

// NodeSize reports how many bytes this kind occupies in RAM, for
// advancing past a primitive that has no explicit next-pointer semantics
// of its own (the lifter instead follows Tag).
func (p Raw) NodeSize() int {
	switch p.Kind() {
	case KindPolyG4, KindPolyGT4, KindPolyGT3:
		return RawSize + RawExtSize
	default:
		return RawSize
	}
}

// Kind resolves this raw primitive's classification.
func (p Raw) Kind() PrimitiveKind { return ClassifyCode(p.Code) }

// ZKey is the primitive's ordering-table bucket key: Pad2 for quad kinds
// that carry an extended region, or the header's P2 byte for simple kinds
// that never decode one, per spec.md §4.5 ("the primitive's pad2 is its
// z-key").
func (p Raw) ZKey() uint16 {
	if p.NodeSize() > RawSize {
		return p.Pad2
	}
	return uint16(p.P2)
}
