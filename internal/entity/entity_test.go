package entity

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/KernelEquinox/sotn-sim/internal/layout"
)

func TestRecordFieldRoundTrip(t *testing.T) {
	seed := Seed{X: 100, Y: 100, EntityID: 1, Slot: 80, InitialState: 0}
	rec := NewSeededRecord(seed, 0x000A1000)

	require.Equal(t, int16(100), rec.PosX())
	require.Equal(t, int16(100), rec.PosY())
	require.Equal(t, uint16(1), rec.ObjectID())
	require.Equal(t, uint32(0x000A1000), rec.UpdateFunction())
	require.Equal(t, uint16(80), rec.RoomSlot())

	raw := rec.Bytes()
	rec2 := NewRecord(raw)
	require.Equal(t, rec.PosX(), rec2.PosX())
	require.Equal(t, rec.ObjectID(), rec2.ObjectID())
}

// writeQuadPrimitive encodes a quad primitive's 52 bytes (header + extension)
// into buf at offset 0, tagging it to link to next.
func writeQuadPrimitive(code uint8, pad2 uint16, next uint32) []byte {
	buf := make([]byte, RawSize+RawExtSize)
	le := binary.LittleEndian
	le.PutUint32(buf[0x00:], next) // tag
	buf[0x07] = code               // code byte selects kind
	le.PutUint16(buf[RawSize+0x06:], pad2)
	return buf
}

func quadCode() uint8 {
	// 0x20-0x3F range with bit 0x04 set and 0x10 set selects PolyGT4, per
	// ClassifyCode.
	return 0x3C
}

func TestPrimitiveQuadKindDecodesExtension(t *testing.T) {
	buf := writeQuadPrimitive(quadCode(), 0x40, 0)
	p := DecodeRaw(buf[:RawSize])
	require.Equal(t, KindPolyGT4, p.Kind())
	require.Equal(t, RawSize+RawExtSize, p.NodeSize())

	p.DecodeExt(buf[RawSize:])
	require.Equal(t, uint16(0x40), p.ZKey())
}

func TestPrimitiveSimpleKindHasNoExtension(t *testing.T) {
	buf := make([]byte, RawSize)
	buf[0x07] = 0x64 // sprite range (0x60-0x7F)
	buf[0x1F] = 0x10 // P2 byte doubles as the z-key for simple kinds
	p := DecodeRaw(buf)
	require.Equal(t, KindSprite, p.Kind())
	require.Equal(t, RawSize, p.NodeSize())
	require.Equal(t, uint16(0x10), p.ZKey())
}

// TestOrderingTableBucketing is spec.md S6.
func TestOrderingTableBucketing(t *testing.T) {
	room := newRoom(Meta{BGZ: 0x20, FGZ: 0x60})

	room.bucket(0x10, SpritePart{Kind: KindSprite})
	room.bucket(0x40, SpritePart{Kind: KindSprite})
	room.bucket(0x80, SpritePart{Kind: KindSprite})

	require.Len(t, room.BG[0x10], 1)
	require.Len(t, room.Mid[0x40], 1)
	require.Len(t, room.FG[0x80], 1)
}

func TestBucketPreservesInsertionOrder(t *testing.T) {
	room := newRoom(Meta{BGZ: 0x20, FGZ: 0x60})
	room.bucket(0x10, SpritePart{OffsetX: 1})
	room.bucket(0x10, SpritePart{OffsetX: 2})
	room.bucket(0x10, SpritePart{OffsetX: 3})

	got := room.BG[0x10]
	require.Len(t, got, 3)
	require.Equal(t, int16(1), got[0].OffsetX)
	require.Equal(t, int16(2), got[1].OffsetX)
	require.Equal(t, int16(3), got[2].OffsetX)
}

// TestPrimitiveChainLifting is spec.md §8.4: a finite tag chain lifts
// exactly chain_length SpriteParts, in walk order, skipping DrawEnv/LineG2.
func TestPrimitiveChainLifting(t *testing.T) {
	d := New()
	const base = layout.RAMBaseOffset + 0x1000
	const stride = RawSize + RawExtSize

	nodes := []struct {
		code uint8
		pad2 uint16
	}{
		{quadCode(), 0x10},
		{quadCode(), 0x40},
		{quadCode(), 0x80},
	}
	for i, n := range nodes {
		addr := uint32(base + i*stride)
		var next uint32
		if i+1 < len(nodes) {
			next = base + uint32((i+1)*stride)
		}
		buf := writeQuadPrimitive(n.code, n.pad2, next)
		require.NoError(t, d.mem.CopyIn(addr, buf))
	}

	room := newRoom(Meta{BGZ: 0x20, FGZ: 0x60})
	e := &Entity{Slot: 80}
	e.Raw = NewSeededRecord(Seed{Slot: 80}, 0)
	e.Raw.setU32(0x5C, base) // segment_root -> first primitive
	e.Raw.raw[0x19] = 0x01   // transform_flags bit 0: primitive-driven

	require.NoError(t, d.liftPrimitiveList(room, e))
	require.Len(t, e.Sprites, 3)
	require.Equal(t, uint16(0x10), e.Sprites[0].OTKey)
	require.Equal(t, uint16(0x40), e.Sprites[1].OTKey)
	require.Equal(t, uint16(0x80), e.Sprites[2].OTKey)

	require.Len(t, room.BG[0x10], 1)
	require.Len(t, room.Mid[0x40], 1)
	require.Len(t, room.FG[0x80], 1)
}

func TestIsPrimitiveDrivenBit(t *testing.T) {
	var r Record
	require.False(t, r.IsPrimitiveDriven())
	r.raw[0x19] = 0x01
	require.True(t, r.IsPrimitiveDriven())
}
