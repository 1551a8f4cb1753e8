// Package banner draws the application title.
package banner

import (
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/thirukguru/version-sync/shared/ansi"
	"github.com/thirukguru/version-sync/shared/console"
	"golang.org/x/term"
)

type bannerColor int

const (
	bannerElmBlue bannerColor = iota
	bannerElmTeal
	bannerNodeGreen
	bannerNpmRed
	bannerAmber
)

var bannerTitleColors = []string{
	"\x1b[38;2;96;181;204m", // Elm Blue
	"\x1b[38;2;90;190;160m", // Elm Teal
	"\x1b[38;2;104;160;99m", // Node Green
	"\x1b[38;2;203;56;55m",  // npm Red
	"\x1b[38;2;255;176;0m",  // Amber
}

var bannerTitleColorNames = []string{
	"ElmBlue",
	"ElmTeal",
	"NodeGreen",
	"NpmRed",
	"Amber",
}

const (
	bannerTitleColorDefault        = bannerElmBlue
	bannerTitleColorBlueBackground = bannerAmber
	bannerTitleColorEnv            = "VERSION_SYNC_BANNER_COLOR"
)

var titleLines = []string{
	" ██╗   ██╗ ███████╗ ██████╗  ███████╗ ██╗  ██████╗  ███╗   ██╗        ███████╗ ██╗   ██╗ ███╗   ██╗  ██████╗",
	" ██║   ██║ ██╔════╝ ██╔══██╗ ██╔════╝ ██║ ██╔═══██╗ ████╗  ██║        ██╔════╝ ╚██╗ ██╔╝ ████╗  ██║ ██╔════╝",
	" ██║   ██║ █████╗   ██████╔╝ ███████╗ ██║ ██║   ██║ ██╔██╗ ██║ █████╗ ███████╗  ╚████╔╝  ██╔██╗ ██║ ██║     ",
	" ╚██╗ ██╔╝ ██╔══╝   ██╔══██╗ ╚════██║ ██║ ██║   ██║ ██║╚██╗██║ ╚════╝ ╚════██║   ╚██╔╝   ██║╚██╗██║ ██║     ",
	"  ╚████╔╝  ███████╗ ██║  ██║ ███████║ ██║ ╚██████╔╝ ██║ ╚████║        ███████║    ██║    ██║ ╚████║ ╚██████╗",
	"   ╚═══╝   ╚══════╝ ╚═╝  ╚═╝ ╚══════╝ ╚═╝  ╚═════╝  ╚═╝  ╚═══╝        ╚══════╝    ╚═╝    ╚═╝  ╚═══╝  ╚═════╝",
}

func printCenteredLines(w io.Writer, lines []string, width int) {
	for _, line := range lines {
		pad := 0
		if n := utf8.RuneCountInString(line); width > n {
			pad = (width - n) / 2
		}
		if pad > 0 {
			fmt.Fprint(w, strings.Repeat(" ", pad))
		}
		fmt.Fprintln(w, line)
	}
}

func bannerTitleColor() bannerColor {
	if color, ok := bannerTitleColorFromEnv(); ok {
		return color
	}
	if console.IsBlueBackground() {
		return bannerTitleColorBlueBackground
	}
	return bannerTitleColorDefault
}

func bannerTitleColorFromEnv() (bannerColor, bool) {
	raw := strings.TrimSpace(os.Getenv(bannerTitleColorEnv))
	if raw == "" {
		return 0, false
	}

	for idx, color := range bannerTitleColors {
		if strings.EqualFold(raw, bannerTitleColorNames[idx]) || raw == color {
			return bannerColor(idx), true
		}
	}
	return 0, false
}

// DrawBannerTitle prints the application title banner to stdout.
// Nothing is printed when stdout is not a terminal.
func DrawBannerTitle() {
	if !console.IsTerminal(os.Stdout) {
		return
	}
	ansi.EnableANSI()

	width := 80
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
	}
	writeBanner(os.Stdout, width, bannerTitleColor())
}

func writeBanner(w io.Writer, width int, color bannerColor) {
	fmt.Fprint(w, bannerTitleColors[color])
	printCenteredLines(w, titleLines, width)
	fmt.Fprint(w, "\x1b[0m")
}
