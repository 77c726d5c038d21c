package overlay

import (
	"image/color"
	"strconv"
	"strings"
)

// DefaultColor is used when a detection's color string does not parse.
// The server may put class names in that field, so this is a normal
// path, not an error.
var DefaultColor = color.NRGBA{R: 255, G: 255, B: 255, A: 255}

var namedColors = map[string]color.NRGBA{
	"black":   {0, 0, 0, 255},
	"white":   {255, 255, 255, 255},
	"red":     {255, 0, 0, 255},
	"green":   {0, 128, 0, 255},
	"lime":    {0, 255, 0, 255},
	"blue":    {0, 0, 255, 255},
	"yellow":  {255, 255, 0, 255},
	"cyan":    {0, 255, 255, 255},
	"magenta": {255, 0, 255, 255},
	"orange":  {255, 165, 0, 255},
	"purple":  {128, 0, 128, 255},
	"pink":    {255, 192, 203, 255},
	"brown":   {165, 42, 42, 255},
	"gray":    {128, 128, 128, 255},
	"grey":    {128, 128, 128, 255},
	"navy":    {0, 0, 128, 255},
	"teal":    {0, 128, 128, 255},
	"maroon":  {128, 0, 0, 255},
	"olive":   {128, 128, 0, 255},
	"silver":  {192, 192, 192, 255},
	"gold":    {255, 215, 0, 255},
}

// ParseColor resolves a color string to NRGBA. It accepts the common
// color names and #RGB/#RRGGBB/#RRGGBBAA hex forms, case-insensitive.
// Unknown strings return DefaultColor and ok=false; they never fail.
func ParseColor(s string) (color.NRGBA, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if c, ok := namedColors[s]; ok {
		return c, true
	}
	if strings.HasPrefix(s, "#") {
		if c, ok := parseHex(s[1:]); ok {
			return c, true
		}
	}
	return DefaultColor, false
}

func parseHex(s string) (color.NRGBA, bool) {
	switch len(s) {
	case 3: // #rgb
		v, err := strconv.ParseUint(s, 16, 16)
		if err != nil {
			return color.NRGBA{}, false
		}
		r := uint8(v >> 8 & 0xF)
		g := uint8(v >> 4 & 0xF)
		b := uint8(v & 0xF)
		return color.NRGBA{R: r*16 + r, G: g*16 + g, B: b*16 + b, A: 255}, true
	case 6: // #rrggbb
		v, err := strconv.ParseUint(s, 16, 32)
		if err != nil {
			return color.NRGBA{}, false
		}
		return color.NRGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 255}, true
	case 8: // #rrggbbaa
		v, err := strconv.ParseUint(s, 16, 64)
		if err != nil {
			return color.NRGBA{}, false
		}
		return color.NRGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, true
	}
	return color.NRGBA{}, false
}
