package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/KernelEquinox/sotn-sim/internal/config"
	"github.com/KernelEquinox/sotn-sim/internal/entity"
	"github.com/KernelEquinox/sotn-sim/internal/layout"
)

// roomHeaderSize is original_source/include/rooms.h's Room header: eight
// packed bytes (x_start, y_start, x_end, y_end, tile_layout_id, load_flag,
// entity_layout_id, entity_graphics_id) read directly out of the loaded
// map binary at room_id*roomHeaderSize. The layout file format itself is
// out of scope (spec.md §1's "supplied by an external parser"); this CLI
// reads the header bytes only, as a convenience for driving SimulateRoom
// without a full room-table parser.
const roomHeaderSize = 8

func newSimulateCmd() *cobra.Command {
	var psxPath, sotnPath, mapPath string
	var roomID, budget int
	var debug bool
	var seedFlags []string

	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Run a room's entity update routines and summarize the lifted scene",
		RunE: func(cmd *cobra.Command, args []string) error {
			psxBin, err := os.ReadFile(psxPath)
			if err != nil {
				return fmt.Errorf("reading psx image: %w", err)
			}
			sotnBin, err := os.ReadFile(sotnPath)
			if err != nil {
				return fmt.Errorf("reading sotn image: %w", err)
			}

			d := entity.NewWithOptions(config.New(config.WithBudget(budget), config.WithDebug(debug)))
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

			fmt.Printf("room %d: %dx%d, %d entities\n", roomID,
				int(room.XEnd)-int(room.XStart), int(room.YEnd)-int(room.YStart), len(room.Entities))
			budget := 0
			for _, e := range room.Entities {
				if e.BudgetExhausted {
					budget++
				}
			}
			if budget > 0 {
				fmt.Printf("  %d entities hit the instruction budget\n", budget)
			}
			fmt.Printf("  ordering tables: bg=%d keys / %d parts, mid=%d keys / %d parts, fg=%d keys / %d parts\n",
				len(room.BG), partCount(room.BG), len(room.Mid), partCount(room.Mid), len(room.FG), partCount(room.FG))
			return nil
		},
	}

	cmd.Flags().StringVar(&psxPath, "psx", "", "path to the PSX BIOS/kernel image")
	cmd.Flags().StringVar(&sotnPath, "sotn", "", "path to the SotN (DRA.BIN) binary")
	cmd.Flags().StringVar(&mapPath, "map", "", "path to the room's map image")
	cmd.Flags().IntVar(&roomID, "room", 0, "room index within the map image")
	cmd.Flags().StringArrayVar(&seedFlags, "seed", nil, "x,y,entityID,slot,initialState (repeatable)")
	cmd.Flags().IntVar(&budget, "budget", 0, "per-entity instruction budget override (0 = default)")
	cmd.Flags().BoolVar(&debug, "debug", false, "trace every CPU instruction to stderr")
	cmd.MarkFlagRequired("psx")
	cmd.MarkFlagRequired("sotn")

	return cmd
}

func partCount(table map[uint16][]entity.SpritePart) int {
	n := 0
	for _, parts := range table {
		n += len(parts)
	}
	return n
}

func readRoomHeader(mapBin []byte, roomID int) (entity.Meta, error) {
	off := roomID * roomHeaderSize
	if off+roomHeaderSize > len(mapBin) {
		return entity.Meta{}, fmt.Errorf("room %d header out of range of map image", roomID)
	}
	h := mapBin[off : off+roomHeaderSize]
	return entity.Meta{
		XStart:           int16(h[0]),
		YStart:           int16(h[1]),
		XEnd:             int16(h[2]),
		YEnd:             int16(h[3]),
		TileLayoutID:     uint16(h[4]),
		LoadFlag:         uint16(h[5]),
		EntityLayoutID:   uint16(h[6]),
		EntityGraphicsID: uint16(h[7]),
	}, nil
}

func parseSeeds(flags []string) ([]entity.Seed, error) {
	seeds := make([]entity.Seed, 0, len(flags))
	for _, f := range flags {
		parts := strings.Split(f, ",")
		if len(parts) != 5 {
			return nil, fmt.Errorf("--seed %q: want x,y,entityID,slot,initialState", f)
		}
		vals := make([]int, 5)
		for i, p := range parts {
			v, err := strconv.Atoi(strings.TrimSpace(p))
			if err != nil {
				return nil, fmt.Errorf("--seed %q: %w", f, err)
			}
			vals[i] = v
		}
		seeds = append(seeds, entity.Seed{
			X: int16(vals[0]), Y: int16(vals[1]),
			EntityID: uint16(vals[2]), Slot: vals[3], InitialState: uint16(vals[4]),
		})
	}
	return seeds, nil
}
