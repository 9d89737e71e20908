package entity

import "github.com/KernelEquinox/sotn-sim/internal/memory"

// bankPartSize is sizeof(SpritePart) in original_source/include/sprites.h:
// flags, offset_x, offset_y, width, height, clut_offset, texture_page,
// texture_start_x/y, texture_end_x/y — eleven u16 fields, 22 bytes.
const bankPartSize = 22

// rawBankPart is one 22-byte entry inside a sprite's parts list.
type rawBankPart struct {
	Flags                      uint16
	OffsetX, OffsetY           int16
	Width, Height              int16
	CLUTOffset                 uint16
	TexturePage                uint16
	TexStartX, TexStartY       uint16
	TexEndX, TexEndY           uint16
}

func decodeBankPart(mem *memory.Memory, addr uint32) (rawBankPart, error) {
	var p rawBankPart
	read16 := func(off uint32) (uint16, error) { return mem.Read16(addr + off) }
	var flags, ox, oy, w, h, clut, tpage, tsx, tsy, tex, tey uint16
	for i, dst := range []*uint16{&flags, &ox, &oy, &w, &h, &clut, &tpage, &tsx, &tsy, &tex, &tey} {
		v, err := read16(uint32(i * 2))
		if err != nil {
			return p, err
		}
		*dst = v
	}
	p.Flags, p.OffsetX, p.OffsetY = flags, int16(ox), int16(oy)
	p.Width, p.Height = int16(w), int16(h)
	p.CLUTOffset, p.TexturePage = clut, tpage
	p.TexStartX, p.TexStartY, p.TexEndX, p.TexEndY = tsx, tsy, tex, tey
	return p, nil
}

// isRAMPointer reports whether val looks like a valid RAM-region pointer
// (KUSEG or KSEG0 alias), used to detect a bank/sprite table's terminator
// the way original_source's ReadSpriteBanks does.
func isRAMPointer(val uint32) bool {
	addr := val
	if addr&0x80000000 != 0 {
		addr &^= 0x80000000
	}
	return addr != 0 && addr < 0x00200000
}

// ResolveSpriteParts walks a sprite's part list: a u16 part-count prefix at
// spriteAddr followed by that many bankPartSize records, per
// original_source/src/sprites.cpp's Sprite::ReadSpriteBanks inner loop.
func ResolveSpriteParts(mem *memory.Memory, spriteAddr uint32) ([]SpritePart, error) {
	count, err := mem.Read16(spriteAddr)
	if err != nil {
		return nil, err
	}
	parts := make([]SpritePart, 0, count)
	for i := uint16(0); i < count; i++ {
		addr := spriteAddr + 2 + uint32(i)*bankPartSize
		raw, err := decodeBankPart(mem, addr)
		if err != nil {
			return parts, err
		}
		parts = append(parts, SpritePart{
			Kind:        KindSprite,
			OffsetX:     raw.OffsetX,
			OffsetY:     raw.OffsetY,
			Width:       raw.Width,
			Height:      raw.Height,
			TexturePage: raw.TexturePage,
			CLUTIndex:   raw.CLUTOffset,
		})
	}
	return parts, nil
}

// ResolveSpriteBank resolves bankAddr (an entry in the top-level bank
// pointer table) to the sprite address stored at spriteIndex within it.
func ResolveSpriteBank(mem *memory.Memory, bankAddr uint32, spriteIndex uint16) (uint32, bool, error) {
	entryAddr := bankAddr + uint32(spriteIndex)*4
	ptr, err := mem.Read32(entryAddr)
	if err != nil {
		return 0, false, err
	}
	if !isRAMPointer(ptr) {
		return 0, false, nil
	}
	return ptr &^ 0x80000000, true, nil
}

// ResolveBankTableEntry resolves the top-level bank-table entry at index
// bankIndex within the bank-table located at tableAddr, per
// original_source's two-level pointer-table walk.
func ResolveBankTableEntry(mem *memory.Memory, tableAddr uint32, bankIndex uint16) (uint32, bool, error) {
	return ResolveSpriteBank(mem, tableAddr, bankIndex)
}
