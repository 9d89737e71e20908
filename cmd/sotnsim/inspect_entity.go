package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/KernelEquinox/sotn-sim/internal/config"
	"github.com/KernelEquinox/sotn-sim/internal/entity"
	"github.com/KernelEquinox/sotn-sim/internal/layout"
)

func newInspectEntityCmd() *cobra.Command {
	var psxPath, sotnPath, mapPath string
	var roomID, slot int
	var seedFlags []string

	cmd := &cobra.Command{
		Use:   "inspect-entity",
		Short: "Print one entity slot's raw field table after a room simulation",
		RunE: func(cmd *cobra.Command, args []string) error {
			psxBin, err := os.ReadFile(psxPath)
			if err != nil {
				return fmt.Errorf("reading psx image: %w", err)
			}
			sotnBin, err := os.ReadFile(sotnPath)
			if err != nil {
				return fmt.Errorf("reading sotn image: %w", err)
			}

			d := entity.NewWithOptions(config.New())
			if err := d.Init(psxBin, sotnBin, 0); err != nil {
				return fmt.Errorf("init: %w", err)
			}

			var meta entity.Meta
			if mapPath != "" {
				mapBin, err := os.ReadFile(mapPath)
				if err != nil {
					return fmt.Errorf("reading map image: %w", err)
				}
				if err := d.LoadMap(mapBin); err != nil {
					return fmt.Errorf("loading map: %w", err)
				}
				meta, err = readRoomHeader(mapBin, roomID)
				if err != nil {
					return err
				}
			}
			meta.BGZ = layout.OTBGTileLayer
			meta.FGZ = layout.OTFGTileLayer

			seeds, err := parseSeeds(seedFlags)
			if err != nil {
				return err
			}

			room, err := d.SimulateRoom(meta, seeds)
			if err != nil {
				return fmt.Errorf("simulate room: %w", err)
			}

			for _, e := range room.Entities {
				if e.Slot != slot {
					continue
				}
				printEntity(e)
				return nil
			}
			return fmt.Errorf("slot %d is empty after simulating room %d", slot, roomID)
		},
	}

	cmd.Flags().StringVar(&psxPath, "psx", "", "path to the PSX BIOS/kernel image")
	cmd.Flags().StringVar(&sotnPath, "sotn", "", "path to the SotN (DRA.BIN) binary")
	cmd.Flags().StringVar(&mapPath, "map", "", "path to the room's map image")
	cmd.Flags().IntVar(&roomID, "room", 0, "room index within the map image")
	cmd.Flags().IntVar(&slot, "slot", 0, "entity slot to inspect")
	cmd.Flags().StringArrayVar(&seedFlags, "seed", nil, "x,y,entityID,slot,initialState (repeatable)")
	cmd.MarkFlagRequired("psx")
	cmd.MarkFlagRequired("sotn")

	return cmd
}

func printEntity(e entity.Entity) {
	r := e.Raw
	fmt.Printf("slot %d (budget exhausted: %v)\n", e.Slot, e.BudgetExhausted)
	fmt.Printf("  pos          = (%d.%04x, %d.%04x)\n", r.PosX(), uint16(r.PosXSub()), r.PosY(), uint16(r.PosYSub()))
	fmt.Printf("  accel        = (%d, %d)\n", r.AccelX(), r.AccelY())
	fmt.Printf("  hitbox_off   = (%d, %d)  size = %dx%d  type = %d\n",
		r.HitboxOffX(), r.HitboxOffY(), r.HitboxWidth(), r.HitboxHeight(), r.HitboxType())
	fmt.Printf("  facing       = 0x%04X\n", r.Facing())
	fmt.Printf("  clut_index   = %d  blend_mode = %d  xform_flags = 0x%02X\n", r.CLUTIndex(), r.BlendMode(), r.TransformFlags())
	fmt.Printf("  scale        = (%d, %d)  rotation = %d\n", r.ScaleX(), r.ScaleY(), r.Rotation())
	fmt.Printf("  translate    = (%d, %d)  z_depth = %d\n", r.TranslateX(), r.TranslateY(), r.ZDepth())
	fmt.Printf("  object_id    = 0x%04X  update_fn = 0x%08X\n", r.ObjectID(), r.UpdateFunction())
	fmt.Printf("  state        = cur=%d.%d init=%d  room_slot = %d\n",
		r.CurrentState(), r.CurrentSubstate(), r.InitialState(), r.RoomSlot())
	fmt.Printf("  info_idx     = %d\n", r.InfoIdx())
	fmt.Printf("  hit_points   = %d  attack_damage = %d  damage_type = %d\n", r.HitPoints(), r.AttackDamage(), r.DamageType())
	fmt.Printf("  frame        = index=%d duration=%d\n", r.FrameIndex(), r.FrameDuration())
	fmt.Printf("  sprite_bank  = %d  sprite_image = %d  tileset = %d\n", r.SpriteBank(), r.SpriteImage(), r.Tileset())
	fmt.Printf("  segment      = root=0x%08X next=0x%08X  polygon_id = 0x%08X\n", r.SegmentRoot(), r.SegmentNext(), r.PolygonID())
	fmt.Printf("  pickup_flag  = 0x%04X\n", r.PickupFlag())
	if e.Name != "" || e.Description != "" {
		fmt.Printf("  name = %q  description = %q\n", e.Name, e.Description)
	}
	fmt.Printf("  sprite parts = %d\n", len(e.Sprites))
	for i, sp := range e.Sprites {
		fmt.Printf("    [%d] kind=%v offset=(%d,%d) size=%dx%d tpage=%d clut=%d ot_key=%d\n",
			i, sp.Kind, sp.OffsetX, sp.OffsetY, sp.Width, sp.Height, sp.TexturePage, sp.CLUTIndex, sp.OTKey)
	}
}
