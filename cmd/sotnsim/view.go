//go:build sdl

package main

import (
	"fmt"
	"log"
	"os"
	"unsafe"

	"github.com/spf13/cobra"
	"github.com/veandco/go-sdl2/sdl"

	"github.com/KernelEquinox/sotn-sim/internal/config"
	"github.com/KernelEquinox/sotn-sim/internal/entity"
	"github.com/KernelEquinox/sotn-sim/internal/framebuffer"
	"github.com/KernelEquinox/sotn-sim/internal/layout"
)

const windowScale = 1 // the framebuffer is already 1024x512; no scale needed

func init() {
	extraCommands = append(extraCommands, newViewCmd())
}

func newViewCmd() *cobra.Command {
	var psxPath, sotnPath, mapPath string
	var roomID int
	var seedFlags []string

	cmd := &cobra.Command{
		Use:   "view",
		Short: "Simulate a room and open a live SDL window on its framebuffer",
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
			fmt.Printf("room %d: %d entities lifted\n", roomID, len(room.Entities))

			return runViewer(d.Framebuffer())
		},
	}

	cmd.Flags().StringVar(&psxPath, "psx", "", "path to the PSX BIOS/kernel image")
	cmd.Flags().StringVar(&sotnPath, "sotn", "", "path to the SotN (DRA.BIN) binary")
	cmd.Flags().StringVar(&mapPath, "map", "", "path to the room's map image")
	cmd.Flags().IntVar(&roomID, "room", 0, "room index within the map image")
	cmd.Flags().StringArrayVar(&seedFlags, "seed", nil, "x,y,entityID,slot,initialState (repeatable)")
	cmd.MarkFlagRequired("psx")
	cmd.MarkFlagRequired("sotn")

	return cmd
}

// runViewer blits the framebuffer into an SDL texture once and keeps the
// window open until the user quits, adapted from cmd/sdl-display's
// event/texture-update loop: the room here is already fully simulated
// (there is no per-frame CPU stepping to drive), so the loop just repaints
// the same texture and waits for input.
func runViewer(fb *framebuffer.Framebuffer) error {
	if err := sdl.Init(sdl.INIT_VIDEO); err != nil {
		log.Fatalf("failed to initialize SDL: %v", err)
	}
	defer sdl.Quit()

	window, err := sdl.CreateWindow(
		"sotnsim view",
		sdl.WINDOWPOS_UNDEFINED, sdl.WINDOWPOS_UNDEFINED,
		framebuffer.Width*windowScale, framebuffer.Height*windowScale,
		sdl.WINDOW_SHOWN,
	)
	if err != nil {
		log.Fatalf("failed to create window: %v", err)
	}
	defer window.Destroy()

	renderer, err := sdl.CreateRenderer(window, -1, sdl.RENDERER_ACCELERATED)
	if err != nil {
		log.Fatalf("failed to create renderer: %v", err)
	}
	defer renderer.Destroy()

	texture, err := renderer.CreateTexture(
		sdl.PIXELFORMAT_RGB24, sdl.TEXTUREACCESS_STREAMING,
		framebuffer.Width, framebuffer.Height,
	)
	if err != nil {
		log.Fatalf("failed to create texture: %v", err)
	}
	defer texture.Destroy()

	pixels := make([]byte, framebuffer.Width*framebuffer.Height*3)
	for y := 0; y < framebuffer.Height; y++ {
		for x := 0; x < framebuffer.Width; x++ {
			v := fb.At(x, y)
			i := (y*framebuffer.Width + x) * 3
			pixels[i+0] = expand5(v)
			pixels[i+1] = expand5(v >> 5)
			pixels[i+2] = expand5(v >> 10)
		}
	}
	texture.Update(nil, unsafe.Pointer(&pixels[0]), framebuffer.Width*3)

	fmt.Println("sotnsim view: ESC or window close to quit")
	running := true
	for running {
		for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
			switch e := event.(type) {
			case *sdl.QuitEvent:
				running = false
			case *sdl.KeyboardEvent:
				if e.Type == sdl.KEYDOWN && e.Keysym.Sym == sdl.K_ESCAPE {
					running = false
				}
			}
		}
		renderer.Clear()
		renderer.Copy(texture, nil, nil)
		renderer.Present()
		sdl.Delay(16)
	}
	return nil
}
