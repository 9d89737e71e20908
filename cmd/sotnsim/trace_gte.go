package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/KernelEquinox/sotn-sim/internal/gte"
)

// opCodes mirrors gte's private opcode dispatch table so this tool can
// resolve --op by name without exporting gte's internals.
var opCodes = map[string]uint32{
	"rtps": 0x01, "nclip": 0x06, "op": 0x0C, "dpcs": 0x10, "intpl": 0x11,
	"mvmva": 0x12, "ncds": 0x13, "cdp": 0x14, "ncdt": 0x16, "nccs": 0x1B,
	"cc": 0x1C, "ncs": 0x1E, "nct": 0x20, "sqr": 0x28, "dcpl": 0x29,
	"dpct": 0x2A, "avsz3": 0x2D, "avsz4": 0x2E, "rtpt": 0x30, "gpf": 0x3D,
	"gpl": 0x3E, "ncct": 0x3F,
}

func newTraceGTECmd() *cobra.Command {
	var op string
	var lm bool
	var mx, v, cv uint32
	var sfFlag bool
	var v0, v1, v2, rgbc, ir, rot, light, lcol, tr, bk, fc []string
	var ofx, ofy, h, dqa, dqb, zsf3, zsf4 int

	cmd := &cobra.Command{
		Use:   "trace-gte",
		Short: "Run one GTE operation with literal register inputs and print its resulting state",
		RunE: func(cmd *cobra.Command, args []string) error {
			code, ok := opCodes[strings.ToLower(op)]
			if !ok {
				return fmt.Errorf("unknown op %q", op)
			}

			g := gte.New()
			if err := setVec3(&g.V[0], v0); err != nil {
				return err
			}
			if err := setVec3(&g.V[1], v1); err != nil {
				return err
			}
			if err := setVec3(&g.V[2], v2); err != nil {
				return err
			}
			if err := setBytes(g.RGBC[:], rgbc); err != nil {
				return err
			}
			if err := setIR(g.IR[:], ir); err != nil {
				return err
			}
			if err := setMat3(&g.ROT, rot); err != nil {
				return err
			}
			if err := setMat3(&g.LIGHT, light); err != nil {
				return err
			}
			if err := setMat3(&g.LCOL, lcol); err != nil {
				return err
			}
			if err := setVec3I32(&g.TR, tr); err != nil {
				return err
			}
			if err := setVec3I32(&g.BK, bk); err != nil {
				return err
			}
			if err := setVec3I32(&g.FC, fc); err != nil {
				return err
			}
			g.OFX, g.OFY = int32(ofx), int32(ofy)
			g.H = uint16(h)
			g.DQA, g.DQB = int16(dqa), int32(dqb)
			g.ZSF3, g.ZSF4 = int16(zsf3), int16(zsf4)

			word := code
			if lm {
				word |= 1 << 10
			}
			word |= (mx & 0x3) << 17
			word |= (v & 0x3) << 15
			word |= (cv & 0x3) << 13
			if sfFlag {
				word |= 1 << 19
			}

			g.Execute(word)

			fmt.Printf("FLAG = 0x%08X\n", g.FLAG)
			fmt.Printf("MAC  = %v\n", g.MAC)
			fmt.Printf("IR   = %v\n", g.IR)
			fmt.Printf("OTZ  = %d\n", g.OTZ)
			fmt.Printf("SXYFIFO = %v\n", g.SXYFIFO)
			fmt.Printf("SZFIFO  = %v\n", g.SZFIFO)
			fmt.Printf("RGBFIFO = %v\n", g.RGBFIFO)
			return nil
		},
	}

	cmd.Flags().StringVar(&op, "op", "", "GTE operation name (e.g. rtps, mvmva, ncds)")
	cmd.Flags().BoolVar(&lm, "lm", false, "command word lm bit")
	cmd.Flags().Uint32Var(&mx, "mx", 0, "command word mx field")
	cmd.Flags().Uint32Var(&v, "v", 0, "command word v field")
	cmd.Flags().Uint32Var(&cv, "cv", 0, "command word cv field")
	cmd.Flags().BoolVar(&sfFlag, "sf", false, "command word sf bit (shift fraction by 12)")
	cmd.Flags().StringArrayVar(&v0, "v0", nil, "x,y,z")
	cmd.Flags().StringArrayVar(&v1, "v1", nil, "x,y,z")
	cmd.Flags().StringArrayVar(&v2, "v2", nil, "x,y,z")
	cmd.Flags().StringArrayVar(&rgbc, "rgbc", nil, "r,g,b,code")
	cmd.Flags().StringArrayVar(&ir, "ir", nil, "ir0,ir1,ir2,ir3")
	cmd.Flags().StringArrayVar(&rot, "rot", nil, "9 packed row-major entries")
	cmd.Flags().StringArrayVar(&light, "light", nil, "9 packed row-major entries")
	cmd.Flags().StringArrayVar(&lcol, "lcol", nil, "9 packed row-major entries")
	cmd.Flags().StringArrayVar(&tr, "tr", nil, "x,y,z")
	cmd.Flags().StringArrayVar(&bk, "bk", nil, "x,y,z")
	cmd.Flags().StringArrayVar(&fc, "fc", nil, "x,y,z")
	cmd.Flags().IntVar(&ofx, "ofx", 0, "")
	cmd.Flags().IntVar(&ofy, "ofy", 0, "")
	cmd.Flags().IntVar(&h, "h", 0, "")
	cmd.Flags().IntVar(&dqa, "dqa", 0, "")
	cmd.Flags().IntVar(&dqb, "dqb", 0, "")
	cmd.Flags().IntVar(&zsf3, "zsf3", 0, "")
	cmd.Flags().IntVar(&zsf4, "zsf4", 0, "")
	cmd.MarkFlagRequired("op")

	return cmd
}

func splitInts(vals []string) ([]int64, error) {
	var out []int64
	for _, v := range vals {
		for _, f := range strings.Split(v, ",") {
			n, err := strconv.ParseInt(strings.TrimSpace(f), 0, 64)
			if err != nil {
				return nil, err
			}
			out = append(out, n)
		}
	}
	return out, nil
}

func setVec3(dst *gte.Vec3, vals []string) error {
	n, err := splitInts(vals)
	if err != nil || len(n) == 0 {
		return err
	}
	if len(n) != 3 {
		return fmt.Errorf("want 3 values, got %d", len(n))
	}
	dst.X, dst.Y, dst.Z = int32(n[0]), int32(n[1]), int32(n[2])
	return nil
}

func setVec3I32(dst *gte.Vec3, vals []string) error { return setVec3(dst, vals) }

func setBytes(dst []uint8, vals []string) error {
	n, err := splitInts(vals)
	if err != nil || len(n) == 0 {
		return err
	}
	if len(n) != len(dst) {
		return fmt.Errorf("want %d values, got %d", len(dst), len(n))
	}
	for i, v := range n {
		dst[i] = uint8(v)
	}
	return nil
}

func setIR(dst []int32, vals []string) error {
	n, err := splitInts(vals)
	if err != nil || len(n) == 0 {
		return err
	}
	if len(n) != len(dst) {
		return fmt.Errorf("want %d values, got %d", len(dst), len(n))
	}
	for i, v := range n {
		dst[i] = int32(v)
	}
	return nil
}

func setMat3(dst *gte.Mat3, vals []string) error {
	n, err := splitInts(vals)
	if err != nil || len(n) == 0 {
		return err
	}
	if len(n) != 9 {
		return fmt.Errorf("want 9 values, got %d", len(n))
	}
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			dst[i][j] = int16(n[i*3+j])
		}
	}
	return nil
}
