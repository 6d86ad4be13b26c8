package scene

import "strings"

var asciiReplacer = strings.NewReplacer(
	"·", "*",
	"²", "^2",
	"³", "^3",
	"⁹", "^9",
	"×", "x",
	"≈", "~",
	"µ", "u",
	"û", "u",
	"…", "...",
	"—", "-",
)

// ASCII rewrites s for fonts limited to printable ASCII, such as bitmap faces.
// Known symbols get a spelled-out form; any other rune becomes '?'.
func ASCII(s string) string {
	s = asciiReplacer.Replace(s)
	return strings.Map(func(r rune) rune {
		if r < 0x20 || r > 0x7e {
			return '?'
		}
		return r
	}, s)
}
