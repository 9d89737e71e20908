package entity

import (
	"github.com/KernelEquinox/sotn-sim/internal/errs"
	"github.com/KernelEquinox/sotn-sim/internal/layout"
)

// liftEntity resolves an entity's visible geometry: the primitive-list
// walk when it emits its own GPU commands, sprite-bank resolution for
// static entities, or one of the special object-kind lookups (pickup,
// relic, candle), and buckets every resulting SpritePart into the room's
// ordering tables.
func (d *Driver) liftEntity(room *Room, e *Entity) error {
	switch e.Raw.ObjectID() {
	case layout.TypePickup, layout.TypeRelic:
		return d.liftPickup(room, e)
	case layout.TypeCandle:
		return d.liftCandle(room, e)
	}

	if e.Raw.IsPrimitiveDriven() && e.Raw.PrimitiveListHead() != 0 {
		return d.liftPrimitiveList(room, e)
	}
	if e.Raw.SpriteImage() != 0 {
		return d.liftSpriteImage(room, e)
	}
	return nil
}

// liftPrimitiveList walks the singly-linked primitive chain starting at
// the entity's segment_root, per spec.md §4.5's "Primitive-list lifting".
func (d *Driver) liftPrimitiveList(room *Room, e *Entity) error {
	addr := e.Raw.PrimitiveListHead()
	for i := 0; i < layout.PrimitiveChainLimit; i++ {
		if addr < layout.RAMBaseOffset || addr >= layout.RAMBaseOffset+layout.RAMSize {
			if addr != 0 {
				return &errs.LiftingAnomalyError{Slot: e.Slot, Addr: addr, Kind: "chain-out-of-range"}
			}
			return nil
		}
		local := addr - layout.RAMBaseOffset

		var hdr [primitiveRawSize]byte
		if err := d.mem.CopyOut(local, hdr[:]); err != nil {
			return err
		}
		p := DecodeRaw(hdr[:])

		switch p.Kind() {
		case KindLineG2, KindDrawEnv:
			// Parsed but never emitted, per spec.md §4.5.
		case KindPolyG4, KindPolyGT4, KindPolyGT3:
			var ext [primitiveExtSize]byte
			if err := d.mem.CopyOut(local+primitiveRawSize, ext[:]); err != nil {
				return err
			}
			p.DecodeExt(ext[:])
			sp := spritePartFromPrimitive(p)
			room.bucket(sp.OTKey, sp)
			e.Sprites = append(e.Sprites, sp)
		default:
			sp := spritePartFromPrimitive(p)
			room.bucket(sp.OTKey, sp)
			e.Sprites = append(e.Sprites, sp)
		}

		if p.Tag == 0 {
			return nil
		}
		addr = p.Tag
	}
	return &errs.LiftingAnomalyError{Slot: e.Slot, Addr: addr, Kind: "chain-too-long"}
}

// liftSpriteImage resolves a static, non-primitive-driven entity's sprite
// through the sprite-bank pointer table, the supplemented feature recovered
// from original_source/src/sprites.cpp (see SPEC_FULL.md §4.5).
func (d *Driver) liftSpriteImage(room *Room, e *Entity) error {
	bankAddr, ok, err := ResolveBankTableEntry(d.mem, layout.GenericSpriteBanksAddr, e.Raw.SpriteBank())
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}
	spriteAddr, ok, err := ResolveSpriteBank(d.mem, bankAddr, e.Raw.SpriteImage())
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}
	parts, err := ResolveSpriteParts(d.mem, spriteAddr)
	if err != nil {
		return err
	}
	for _, sp := range parts {
		sp.CLUTIndex = e.Raw.CLUTIndex()
		room.bucket(0, sp)
		e.Sprites = append(e.Sprites, sp)
	}
	return nil
}

const (
	primitiveRawSize = RawSize
	primitiveExtSize = RawExtSize
)
