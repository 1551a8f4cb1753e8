//go:build windows

// Package ansi switches the console into a mode that understands ANSI colors.
package ansi

import (
	"os"

	"golang.org/x/sys/windows"
)

const enableVirtualTerminalProcessing = 0x0004

// EnableANSI turns on virtual terminal processing for stdout and stderr.
func EnableANSI() {
	for _, f := range []*os.File{os.Stdout, os.Stderr} {
		handle := windows.Handle(f.Fd())

		var mode uint32
		if err := windows.GetConsoleMode(handle, &mode); err != nil {
			continue
		}
		_ = windows.SetConsoleMode(handle, mode|enableVirtualTerminalProcessing)
	}
}
