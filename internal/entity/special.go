package entity

import "github.com/KernelEquinox/sotn-sim/internal/layout"

// descEntrySize is the assumed stride of the weapon/equip/relic/item
// descriptor tables: a name pointer, a description pointer, a sprite
// index, and a CLUT index (12 bytes). original_source names these tables'
// addresses (WEAPON_NAMES_DESC_ADDR etc.) but its available source does
// not expose the C struct itself; this stride is a documented assumption,
// not a recovered fact (see DESIGN.md).
const descEntrySize = 12

type descEntry struct {
	NamePtr, DescPtr   uint32
	SpriteIndex        uint16
	CLUTIndex          uint16
}

func (d *Driver) readDescEntry(tableAddr uint32, index uint16) (descEntry, error) {
	addr := tableAddr + uint32(index)*descEntrySize
	var e descEntry
	nameP, err := d.mem.Read32(addr)
	if err != nil {
		return e, err
	}
	descP, err := d.mem.Read32(addr + 4)
	if err != nil {
		return e, err
	}
	sprite, err := d.mem.Read16(addr + 8)
	if err != nil {
		return e, err
	}
	clut, err := d.mem.Read16(addr + 10)
	if err != nil {
		return e, err
	}
	e.NamePtr, e.DescPtr, e.SpriteIndex, e.CLUTIndex = nameP, descP, sprite, clut
	return e, nil
}

func (d *Driver) readCString(addr uint32) string {
	if addr == 0 {
		return ""
	}
	var out []byte
	for i := 0; i < 256; i++ {
		b, err := d.mem.Read8(addr + uint32(i))
		if err != nil || b == 0 {
			break
		}
		out = append(out, b)
	}
	return string(out)
}

// liftPickup resolves object ids TYPE_PICKUP/TYPE_RELIC against the relic
// and item descriptor tables named in original_source's common.h, per
// spec.md §4.5's "Special object kinds"; the weapon and equip tables are
// not consulted.
func (d *Driver) liftPickup(room *Room, e *Entity) error {
	info := uint16(e.Raw.InfoIdx())
	tableAddr := uint32(layout.RelicTableAddr)
	if e.Raw.ObjectID() == layout.TypePickup {
		tableAddr = layout.ItemNamesDescAddr
	}

	entry, err := d.readDescEntry(tableAddr, info)
	if err != nil {
		return err
	}
	e.Name = d.readCString(entry.NamePtr)
	e.Description = d.readCString(entry.DescPtr)

	// Life-Max-Up/Heart-Max-Up are pickups distinguished by initial_state,
	// not object_id (original_source/include/common.h: "States for Life Max
	// Up and Heart Max Up"), with fixed CLUTs per spec.md §4.5.
	clut := uint16(entry.CLUTIndex)
	switch e.Raw.InitialState() {
	case layout.LifeMaxUpID:
		clut = layout.LifeMaxUpCLUT
	case layout.HeartMaxUpID:
		clut = layout.HeartMaxUpCLUT
	}

	sp := SpritePart{
		Kind:       KindSprite,
		SourceAddr: layout.ItemSpritesAddr,
		CLUTIndex:  clut,
		OffsetX:    e.Raw.PosX(),
		OffsetY:    e.Raw.PosY(),
	}
	room.bucket(0, sp)
	e.Sprites = append(e.Sprites, sp)
	return nil
}

// liftCandle handles object id TYPE_CANDLE: a fixed generic sprite and
// CLUT (CandleCLUT), per spec.md §4.5.
func (d *Driver) liftCandle(room *Room, e *Entity) error {
	sp := SpritePart{
		Kind:       KindSprite,
		SourceAddr: layout.GenericSpriteBanksAddr,
		CLUTIndex:  layout.CandleCLUT,
		OffsetX:    e.Raw.PosX(),
		OffsetY:    e.Raw.PosY(),
	}
	room.bucket(0, sp)
	e.Sprites = append(e.Sprites, sp)
	return nil
}
