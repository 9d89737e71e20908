package main

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"

	"github.com/spf13/cobra"

	"github.com/KernelEquinox/sotn-sim/internal/entity"
	"github.com/KernelEquinox/sotn-sim/internal/framebuffer"
)

// expand5 widens a 5-bit PSX color channel to 8 bits the way the original
// GPU's DAC does: replicate the top 3 bits into the low bits rather than a
// flat shift, so pure white (0x1F) maps to 0xFF instead of 0xF8.
func expand5(v uint16) uint8 {
	v &= 0x1F
	return uint8(v<<3 | v>>2)
}

func newDumpFramebufferCmd() *cobra.Command {
	var psxPath, sotnPath, outPath string

	cmd := &cobra.Command{
		Use:   "dump-framebuffer",
		Short: "Drain the C4 framebuffer to a PNG",
		RunE: func(cmd *cobra.Command, args []string) error {
			psxBin, err := os.ReadFile(psxPath)
			if err != nil {
				return fmt.Errorf("reading psx image: %w", err)
			}
			sotnBin, err := os.ReadFile(sotnPath)
			if err != nil {
				return fmt.Errorf("reading sotn image: %w", err)
			}

			d := entity.New()
			if err := d.Init(psxBin, sotnBin, 0); err != nil {
				return fmt.Errorf("init: %w", err)
			}

			img := framebufferImage(d.Framebuffer())

			out, err := os.Create(outPath)
			if err != nil {
				return err
			}
			defer out.Close()
			return png.Encode(out, img)
		},
	}

	cmd.Flags().StringVar(&psxPath, "psx", "", "path to the PSX BIOS/kernel image")
	cmd.Flags().StringVar(&sotnPath, "sotn", "", "path to the SotN (DRA.BIN) binary")
	cmd.Flags().StringVar(&outPath, "out", "framebuffer.png", "output PNG path")
	cmd.MarkFlagRequired("psx")
	cmd.MarkFlagRequired("sotn")

	return cmd
}

// framebufferImage decodes every pixel as a PSX 5-5-5 BGR word, the format
// ClearImage packs directly and LoadImage/StoreImage copy verbatim, per
// spec.md §7. A pixel that instead holds a raw CLUT index rather than a
// resolved color round-trips through this decode as a dim constant shade;
// resolving indices through the installed CLUT is future work for a tile-
// layer renderer, out of this command's scope.
func framebufferImage(fb *framebuffer.Framebuffer) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, framebuffer.Width, framebuffer.Height))
	for y := 0; y < framebuffer.Height; y++ {
		for x := 0; x < framebuffer.Width; x++ {
			v := fb.At(x, y)
			r := expand5(v)
			g := expand5(v >> 5)
			b := expand5(v >> 10)
			img.Set(x, y, color.RGBA{R: r, G: g, B: b, A: 0xFF})
		}
	}
	return img
}
