// Package entity implements the Entity Driver & Lifter (spec component
// C5): the fixed-layout in-RAM entity record, the 32-byte primitive chain
// each entity's update routine can emit, sprite-bank resolution for
// entities that never emit a primitive list, and the per-room simulation
// loop that drives C2 across every occupied slot and lifts the result into
// a structured scene graph.
//
// Grounded on original_source/include/entities.h for the entity record's
// byte layout (reproduced exactly — compiled update routines address these
// fields positionally) and original_source/include/rooms.h for the Room
// shape. The orchestration struct (Driver) follows the teacher's pkg/nes
// NES pattern: private fields, a constructor, and verb methods.
package entity

import (
	"encoding/binary"

	"github.com/KernelEquinox/sotn-sim/internal/layout"
)

// Record is a decoded view over one EntitySize-byte in-RAM entity. Byte
// offsets match original_source/include/entities.h's EntityData exactly;
// fields nobody ever decoded keep their unkNN name rather than invented
// meaning.
type Record struct {
	raw [layout.EntitySize]byte
}

func NewRecord(raw [layout.EntitySize]byte) Record { return Record{raw: raw} }

func (r Record) Bytes() [layout.EntitySize]byte { return r.raw }

func (r *Record) i16(off int) int16  { return int16(binary.LittleEndian.Uint16(r.raw[off:])) }
func (r *Record) u16(off int) uint16 { return binary.LittleEndian.Uint16(r.raw[off:]) }
func (r *Record) i32(off int) int32  { return int32(binary.LittleEndian.Uint32(r.raw[off:])) }
func (r *Record) u32(off int) uint32 { return binary.LittleEndian.Uint32(r.raw[off:]) }
func (r *Record) u8(off int) uint8   { return r.raw[off] }

func (r *Record) setI16(off int, v int16)  { binary.LittleEndian.PutUint16(r.raw[off:], uint16(v)) }
func (r *Record) setU16(off int, v uint16) { binary.LittleEndian.PutUint16(r.raw[off:], v) }
func (r *Record) setI32(off int, v int32)  { binary.LittleEndian.PutUint32(r.raw[off:], uint32(v)) }
func (r *Record) setU32(off int, v uint32) { binary.LittleEndian.PutUint32(r.raw[off:], v) }

func (r Record) PosXSub() int16    { return r.i16(0x00) }
func (r Record) PosX() int16       { return r.i16(0x02) }
func (r Record) PosYSub() int16    { return r.i16(0x04) }
func (r Record) PosY() int16       { return r.i16(0x06) }
func (r Record) AccelX() int32     { return r.i32(0x08) }
func (r Record) AccelY() int32     { return r.i32(0x0C) }
func (r Record) HitboxOffX() int16 { return r.i16(0x10) }
func (r Record) HitboxOffY() int16 { return r.i16(0x12) }
func (r Record) Facing() uint16    { return r.u16(0x14) }
func (r Record) CLUTIndex() uint16 { return r.u16(0x16) }
func (r Record) BlendMode() uint8  { return r.u8(0x18) }
func (r Record) TransformFlags() uint8 { return r.u8(0x19) }
func (r Record) ScaleX() int16     { return r.i16(0x1A) }
func (r Record) ScaleY() int16     { return r.i16(0x1C) }
func (r Record) Rotation() int16   { return r.i16(0x1E) }
func (r Record) TranslateX() int16 { return r.i16(0x20) }
func (r Record) TranslateY() int16 { return r.i16(0x22) }
func (r Record) ZDepth() int16     { return r.i16(0x24) }
func (r Record) ObjectID() uint16  { return r.u16(0x26) }
func (r Record) UpdateFunction() uint32 { return r.u32(0x28) }
func (r Record) CurrentState() uint16    { return r.u16(0x2C) }
func (r Record) CurrentSubstate() int16  { return r.i16(0x2E) }
func (r Record) InitialState() uint16    { return r.u16(0x30) }
func (r Record) RoomSlot() uint16        { return r.u16(0x32) }
func (r Record) InfoIdx() int16          { return r.i16(0x3A) }
func (r Record) HitboxType() int16       { return r.i16(0x3C) }
func (r Record) HitPoints() int16        { return r.i16(0x3E) }
func (r Record) AttackDamage() int16     { return r.i16(0x40) }
func (r Record) DamageType() int16       { return r.i16(0x42) }
func (r Record) HitboxWidth() uint8      { return r.u8(0x46) }
func (r Record) HitboxHeight() uint8     { return r.u8(0x47) }
func (r Record) FrameIndex() uint16      { return r.u16(0x50) }
func (r Record) FrameDuration() uint16   { return r.u16(0x52) }
func (r Record) SpriteBank() uint16      { return r.u16(0x54) }
func (r Record) SpriteImage() uint16     { return r.u16(0x56) }
func (r Record) Tileset() uint16         { return r.u16(0x5A) }
func (r Record) SegmentRoot() int32      { return r.i32(0x5C) }
func (r Record) SegmentNext() int32      { return r.i32(0x60) }
func (r Record) PolygonID() int32        { return r.i32(0x64) }
func (r Record) PickupFlag() uint16      { return r.u16(0xB4) }

// PrimitiveListHead is the entry point for C5's primitive-chain walk:
// segment_root, reused as a RAM pointer per spec.md §4.5 when
// transform_flags marks the entity as primitive-driven.
func (r Record) PrimitiveListHead() uint32 { return uint32(r.SegmentRoot()) }

// IsPrimitiveDriven reports whether this entity emits its own GPU command
// chain (bit 0 of transform_flags, per original_source's rendering dispatch)
// rather than relying on static sprite-bank resolution.
func (r Record) IsPrimitiveDriven() bool { return r.TransformFlags()&0x01 != 0 }

func (r *Record) SetPos(x, y int16)          { r.setI16(0x02, x); r.setI16(0x06, y) }
func (r *Record) SetObjectID(v uint16)       { r.setU16(0x26, v) }
func (r *Record) SetUpdateFunction(v uint32) { r.setU32(0x28, v) }
func (r *Record) SetCurrentState(v uint16)   { r.setU16(0x2C, v) }
func (r *Record) SetInitialState(v uint16)   { r.setU16(0x30, v) }
func (r *Record) SetRoomSlot(v uint16)       { r.setU16(0x32, v) }

// Seed is the per-placement input the driver consumes from a room's
// layout data, per spec.md §4.5 step 3.
type Seed struct {
	X, Y         int16
	EntityID     uint16
	Slot         int
	InitialState uint16
}

// NewSeededRecord builds a fresh, zeroed entity record from a placement
// seed and its resolved update-function address.
func NewSeededRecord(seed Seed, updateFn uint32) Record {
	var r Record
	r.SetPos(seed.X, seed.Y)
	r.SetObjectID(seed.EntityID & 0x3FF)
	r.SetUpdateFunction(updateFn)
	r.SetCurrentState(seed.InitialState)
	r.SetInitialState(seed.InitialState)
	r.SetRoomSlot(uint16(seed.Slot))
	return r
}

// Entity is the lifted, emitted record spec.md §3/§6 describes: slot, raw
// image, resolved sprite parts, and optional semantic metadata.
type Entity struct {
	Slot            int
	Raw             Record
	Sprites         []SpritePart
	Name            string
	Description     string
	BudgetExhausted bool
}
