// Package config holds the small set of construction-time options the
// driver accepts: binary paths and budget overrides. No config-file format
// is used; every example repo in the pack configures itself through plain
// constructor parameters, so this module follows suit (see DESIGN.md).
package config

import "github.com/KernelEquinox/sotn-sim/internal/layout"

// Options collects the values a Driver needs to initialize. Zero value is
// valid: a zero InstructionBudget selects layout.InstructionBudget. The
// three binary paths are carried for callers only; the Driver does not read
// them, since Driver.Init takes the binary contents directly.
type Options struct {
	PSXBinaryPath  string
	SotNBinaryPath string
	MapBinaryPath  string

	// InstructionBudget overrides layout.InstructionBudget when non-zero;
	// useful for tests that want a tighter ceiling than production.
	InstructionBudget int

	Debug bool
}

// Option mutates Options during construction.
type Option func(*Options)

// New builds an Options value from zero or more Option funcs.
func New(opts ...Option) Options {
	o := Options{InstructionBudget: layout.InstructionBudget}
	for _, apply := range opts {
		apply(&o)
	}
	return o
}

func WithPSXBinary(path string) Option {
	return func(o *Options) { o.PSXBinaryPath = path }
}

func WithSotNBinary(path string) Option {
	return func(o *Options) { o.SotNBinaryPath = path }
}

func WithMapBinary(path string) Option {
	return func(o *Options) { o.MapBinaryPath = path }
}

func WithBudget(n int) Option {
	return func(o *Options) { o.InstructionBudget = n }
}

func WithDebug(v bool) Option {
	return func(o *Options) { o.Debug = v }
}
