package render

import (
	"strconv"
	"strings"
)

// Foreground colors paired against the configurable header background.
const (
	foregroundDark  = "#111827"
	foregroundLight = "#ffffff"
)

// ContrastColor picks a readable foreground for the given hex background
// using perceived brightness (YIQ): dark text on bright backgrounds,
// light text on dark ones. Any unparseable input yields the dark
// foreground, never an error.
func ContrastColor(hex string) string {
	c := strings.TrimPrefix(strings.TrimSpace(hex), "#")
	if len(c) == 3 {
		var b strings.Builder
		for _, ch := range c {
			b.WriteRune(ch)
			b.WriteRune(ch)
		}
		c = b.String()
	}
	if len(c) != 6 {
		return foregroundDark
	}

	r, err1 := strconv.ParseUint(c[0:2], 16, 8)
	g, err2 := strconv.ParseUint(c[2:4], 16, 8)
	b, err3 := strconv.ParseUint(c[4:6], 16, 8)
	if err1 != nil || err2 != nil || err3 != nil {
		return foregroundDark
	}

	yiq := (float64(r)*299 + float64(g)*587 + float64(b)*114) / 1000
	if yiq >= 128 {
		return foregroundDark
	}
	return foregroundLight
}
