package scene

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// Theme is the two-state presentation mode
type Theme int

const (
	ThemeLight Theme = iota
	ThemeDark
)

// Toggle returns the other theme
func (t Theme) Toggle() Theme {
	if t == ThemeLight {
		return ThemeDark
	}
	return ThemeLight
}

func (t Theme) String() string {
	if t == ThemeDark {
		return "dark"
	}
	return "light"
}

// ParseTheme accepts "light" or "dark"
func ParseTheme(s string) (Theme, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "light":
		return ThemeLight, nil
	case "dark":
		return ThemeDark, nil
	default:
		return ThemeLight, fmt.Errorf("unknown theme %q", s)
	}
}

// Colors is the color set of one theme
type Colors struct {
	Background color.NRGBA // 3D viewport clear color
	Chroma     color.NRGBA // surrounding UI surfaces
	Tint       color.NRGBA // default mesh color
}

// Palette pairs the light and dark color sets
type Palette struct {
	Light Colors
	Dark  Colors
}

// DefaultPalette is light grey with a blue body, dark grey with a silver body
var DefaultPalette = Palette{
	Light: Colors{
		Background: MustParseHex("#f0f0f0"),
		Chroma:     MustParseHex("#f0f0f0"),
		Tint:       MustParseHex("#0077ff"),
	},
	Dark: Colors{
		Background: MustParseHex("#282828"),
		Chroma:     MustParseHex("#282828"),
		Tint:       MustParseHex("#c0c0c0"),
	},
}

// For returns the colors of the given theme
func (p Palette) For(t Theme) Colors {
	if t == ThemeDark {
		return p.Dark
	}
	return p.Light
}

// ParseHex parses "#rrggbb", "rrggbb" or "0xrrggbb"
func ParseHex(s string) (color.NRGBA, error) {
	h := strings.TrimSpace(s)
	h = strings.TrimPrefix(h, "#")
	h = strings.TrimPrefix(strings.ToLower(h), "0x")
	if len(h) != 6 {
		return color.NRGBA{}, fmt.Errorf("invalid color %q", s)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return color.NRGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 255}, nil
}

// MustParseHex is ParseHex for constants
func MustParseHex(s string) color.NRGBA {
	c, err := ParseHex(s)
	if err != nil {
		panic(err)
	}
	return c
}

// Hex formats a color as "#rrggbb"
func Hex(c color.NRGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
