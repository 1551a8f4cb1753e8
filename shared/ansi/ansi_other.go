//go:build !windows

// Package ansi switches the console into a mode that understands ANSI colors.
package ansi

// EnableANSI does nothing outside Windows.
func EnableANSI() {
}
