// Package diag provides the level-tagged logging helpers used throughout
// the core. It wraps the standard library's log.Logger rather than a
// structured-logging library: none appears anywhere in the example pack
// this project was grounded on (see DESIGN.md).
package diag

import (
	"log"
	"os"
)

var std = log.New(os.Stderr, "", log.LstdFlags)

// SetOutput lets a caller (e.g. a CLI with a -quiet flag) redirect or
// silence diagnostic output.
func SetOutput(l *log.Logger) {
	std = l
}

func Infof(format string, args ...any) {
	std.Printf("INFO  "+format, args...)
}

func Warnf(format string, args ...any) {
	std.Printf("WARN  "+format, args...)
}

func Errorf(format string, args ...any) {
	std.Printf("ERROR "+format, args...)
}
