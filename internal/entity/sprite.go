package entity

// BlendMode selects how a SpritePart's pixels combine with whatever is
// already in the framebuffer, per spec.md §3.
type BlendMode int

const (
	BlendOpaque BlendMode = iota
	BlendLighten
	BlendFadeLight
)

// blendFromCode maps a primitive's high code bits to a BlendMode, matching
// the PSX GPU semi-transparency mode encoded in the same byte NodeSize
// dispatches on.
func blendFromCode(code uint8) BlendMode {
	switch (code >> 1) & 0x3 {
	case 1:
		return BlendLighten
	case 2:
		return BlendFadeLight
	default:
		return BlendOpaque
	}
}

// SpritePart is the lifted, renderer-ready primitive spec.md §3 describes.
type SpritePart struct {
	Kind PrimitiveKind

	OffsetX, OffsetY int16
	Width, Height    int16

	TexturePage uint16
	CLUTIndex   uint16
	// SourceAddr is set instead of TexturePage for special object kinds
	// (pickup/candle) whose texture source is a fixed RAM table rather
	// than a GPU texture-page slot.
	SourceAddr uint32

	FlipX, FlipY bool
	Blend        BlendMode
	OTKey        uint16

	// Shaded/textured-quad extras; zero for simple sprite/tile kinds.
	CornerColors [4][3]uint8
	CornerDX     [4]int16
	CornerDY     [4]int16
	Rotation     int16
	AnchorX      int16
	AnchorY      int16
}

// spritePartFromPrimitive builds a SpritePart from a decoded primitive,
// per kind, as spec.md §4.5 and §3 describe. Non-sprite/quad kinds
// (line, drawenv) are parsed but never emitted by the caller.
func spritePartFromPrimitive(p Raw) SpritePart {
	sp := SpritePart{
		Kind:        p.Kind(),
		TexturePage: p.Tpage,
		CLUTIndex:   p.Clut,
		Blend:       blendFromCode(p.Code),
		OTKey:       p.ZKey(),
		OffsetX:     p.X0,
		OffsetY:     p.Y0,
	}
	switch sp.Kind {
	case KindSprite:
		// Sprites reuse u1/v1 as width/height per spec.md §3.
		sp.Width = int16(p.U1)
		sp.Height = int16(p.V1)
		sp.FlipX = p.U1&0x80 != 0
		sp.FlipY = p.V1&0x80 != 0
	case KindTile:
		sp.Width = int16(p.U1)
		sp.Height = int16(p.V1)
	case KindPolyGT4, KindPolyG4:
		sp.CornerColors = [4][3]uint8{
			{p.R0, p.G0, p.B0}, {p.R1, p.G1, p.B1}, {p.R2, p.G2, p.B2}, {p.R3, p.G3, p.B3},
		}
		sp.CornerDX = [4]int16{0, p.X1 - p.X0, p.X2 - p.X0, p.X3 - p.X0}
		sp.CornerDY = [4]int16{0, p.Y1 - p.Y0, p.Y2 - p.Y0, p.Y3 - p.Y0}
	case KindPolyGT3:
		sp.CornerColors = [4][3]uint8{
			{p.R0, p.G0, p.B0}, {p.R1, p.G1, p.B1}, {p.R2, p.G2, p.B2}, {},
		}
		sp.CornerDX = [4]int16{0, p.X1 - p.X0, p.X2 - p.X0, 0}
		sp.CornerDY = [4]int16{0, p.Y1 - p.Y0, p.Y2 - p.Y0, 0}
	}
	return sp
}
