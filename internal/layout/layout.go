// Package layout centralizes the fixed RAM addresses that compiled SotN
// code depends on. Every component reaches into RAM through one of these
// named constants rather than a repeated magic number.
//
//	Region                       Address            Size
//	-------------------------------------------------------------
//	PSX binary image             0x0000F800         variable
//	SotN (DRA.BIN) binary image  0x000A0000         variable
//	Map binary image             0x00180000         variable
//	Pointer table                0x0003C774         0x50 words
//	Entity table                 0x000733D8         0x100 * EntitySize
//	CLUT store                   0x0006CBCC         0x6000
//	CLUT index table             0x0003C104         variable
//	Pickup flag array            0x0003BEEC         variable
//	Polygon-GT4 list             0x00086FEC         variable
//	Ordering table               0x00054770         variable
package layout

const (
	// PSXRAMOffset is where the PSX BIOS/kernel binary lands in RAM. Its
	// link-time virtual base is 0x80010000-0x800, so this offset plus that
	// base recovers the original pointer.
	PSXRAMOffset = 0x00010000 - 0x800

	// SotNRAMOffset is where the main SotN binary (DRA.BIN) lands in RAM.
	SotNRAMOffset = 0x000A0000

	// MapRAMOffset is where a loaded map image lands in RAM.
	MapRAMOffset = 0x00180000

	RAMBaseOffset = 0x80000000

	// PointerTableAddr holds the first 0x50 words copied from the start of
	// the SotN binary; game code indexes into it as a jump/data table.
	PointerTableAddr = 0x0003C774
	PointerTableWords = 0x50

	// EntityListStart is the base of the 256-slot entity table. Slots
	// 0x00..0x3F are reserved; user entities occupy 0x40..0xFF.
	EntityListStart      = 0x000733D8
	EntitySize            = 0xB8
	EntityReservedSlots   = 0x40
	EntityTotalSlots      = 0x100
	EntityAllocationStart = EntityListStart + EntitySize*EntityReservedSlots

	CLUTBaseAddr  = 0x0006CBCC
	CLUTIndexAddr = 0x0003C104
	CLUTDataSize  = 0x6000

	PickupFlagAddr = 0x0003BEEC

	PolyGT4ListAddr = 0x00086FEC
	OTOffset        = 0x00054770

	OTFGTileLayer = 0x60
	OTBGTileLayer = 0x20

	// Entity object-id type values for special-cased lifting.
	TypeRelic  = 0x000B
	TypePickup = 0x000C
	TypeCandle = 0x0001

	WeaponNamesDescAddr = 0x000A4B04
	EquipNamesDescAddr  = 0x000A7718
	RelicTableAddr      = 0x000A8720
	ItemNamesDescAddr   = 0x000DD18C
	EnemyDataAddr       = 0x000A8900
	EnemyNamesAddr      = 0x000E05D8

	GenericSpriteBanksAddr = 0x000A3B70
	GenericClutsAddr       = 0x000D6914
	ItemSpritesAddr        = 0x000C5324
	ItemClutsAddr          = 0x000D88D4
	RelicClutsAddr         = 0x000D68D0

	CandleCLUT      = 144
	LifeMaxUpCLUT   = 128
	HeartMaxUpCLUT  = 145
	LifeMaxUpID     = 0x8017
	HeartMaxUpID    = 0x800C

	// InstructionBudget is the per-call execution ceiling for C2.run.
	InstructionBudget = 1 << 20

	// PrimitiveChainLimit bounds the primitive linked-list walk; a chain
	// longer than this is a LiftingAnomaly, not an infinite loop.
	PrimitiveChainLimit = 256

	// ReturnSentinel is written into RA before a top-level call; reaching
	// PC == ReturnSentinel means the call returned.
	ReturnSentinel = 0xFFFFFFFF

	// StackTop is where SP is initialized: top of RAM minus 64 bytes.
	StackTop = RAMSize - 64

	RAMSize        = 0x00200000
	ScratchpadBase = 0x1F800000
	ScratchpadSize = 0x400

	// Compiled BIOS graphics-routine entry points C4's hook table
	// intercepts, verbatim from original_source/include/mips.h.
	LoadImageAddr  = 0x00012B24
	StoreImageAddr = 0x00012B88
	MoveImageAddr  = 0x00012BEC
	ClearImageAddr = 0x00012A90
)
