package tui

import (
	"fmt"

	"github.com/muesli/termenv"
)

// PrintBanner outputs the ASCII art banner shown by long-running
// commands.
func PrintBanner(version string) {
	p := termenv.ColorProfile()
	// Using a subtle gradient-like color scheme (Indigo/Violet)
	s1 := termenv.String("              _       _     _                ").Foreground(p.Color("#818cf8"))
	s2 := termenv.String("  _ __   __ _| |_ ___| |__ | |__   __ _ _   _").Foreground(p.Color("#a78bfa"))
	s3 := termenv.String(" | '_ \\ / _` | __/ __| '_ \\| '_ \\ / _` | | | |").Foreground(p.Color("#c084fc"))
	s4 := termenv.String(" | |_) | (_| | || (__| | | | |_) | (_| | |_| |").Foreground(p.Color("#e879f9"))
	s5 := termenv.String(" | .__/ \\__,_|\\__\\___|_| |_|_.__/ \\__,_|\\__, |").Foreground(p.Color("#f472b6"))
	s6 := termenv.String(" |_|                                    |___/").Foreground(p.Color("#fb7185"))

	fmt.Println()
	fmt.Println(s1)
	fmt.Println(s2)
	fmt.Println(s3)
	fmt.Println(s4)
	fmt.Println(s5)
	fmt.Println(s6)
	if version != "" {
		fmt.Println(termenv.String("  v" + version).Faint())
	}
	fmt.Println()
}
