// Package mips implements the R3000A integer core (spec component C2):
// instruction decode into a single sum type, delay-slot execution, HI/LO
// multiply/divide, wrapping arithmetic, and the unaligned LWL/LWR/SWL/SWR
// load/store family. Coprocessor 2 (GTE) ops and the hook-check-before-
// control-transfer on jal/jalr are delegated to the Cop2 and Hooks
// interfaces so this package never imports the GTE or hook packages
// directly.
//
// Grounded on original_source/include/mips.h and src/mips.cpp for every
// semantic (register mnemonics, delay-slot pattern, budget loop, jump/hook
// interplay); structured the way the teacher's pkg/nes orchestrates a CPU
// (private register state behind New/Step/Reset), generalized from a
// function-pointer-table dispatch to a decode-then-switch dispatch per
// spec.md §9's design note.
package mips

// General-purpose register mnemonics, matching original_source/include/mips.h.
const (
	ZERO = iota
	AT
	V0
	V1
	A0
	A1
	A2
	A3
	T0
	T1
	T2
	T3
	T4
	T5
	T6
	T7
	S0
	S1
	S2
	S3
	S4
	S5
	S6
	S7
	T8
	T9
	K0
	K1
	GP
	SP
	FP
	RA
)
