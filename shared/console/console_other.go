//go:build !windows

package console

import (
	"os"
	"strings"
)

// IsBlueBackground reports whether COLORFGBG names a blue background.
func IsBlueBackground() bool {
	return isBlueColorFgBg(os.Getenv("COLORFGBG"))
}

func isBlueColorFgBg(raw string) bool {
	if raw == "" {
		return false
	}
	parts := strings.Split(raw, ";")
	bg := strings.TrimSpace(parts[len(parts)-1])

	// 4 is blue, 12 bright blue.
	return bg == "4" || bg == "12"
}
