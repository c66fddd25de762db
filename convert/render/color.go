package render

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"pptxhtml/pptx"
)

// defaultColor is returned when color kind is known but value cannot be
// recovered.
const defaultColor = "FFF"

// colorResolver turns color references into hex strings using document color
// map and slide theme.
type colorResolver struct {
	theme    *pptx.Theme
	colorMap pptx.ColorMap
}

// resolve returns six hex digits of the color (upper case) or defaultColor.
// Empty string means no color was given at all.
func (r colorResolver) resolve(c *pptx.Color) string {
	if c == nil {
		return ""
	}
	switch c.Kind {
	case pptx.ColorRGB:
		return hexOrDefault(c.Val)
	case pptx.ColorScheme:
		return r.scheme(c.Val)
	case pptx.ColorScRGB:
		return fmt.Sprintf("%02X%02X%02X", percentChannel(c.R), percentChannel(c.G), percentChannel(c.B))
	case pptx.ColorPreset:
		return presetColor(c.Val)
	case pptx.ColorHSL:
		red, green, blue := hslToRGB(hueDegrees(c.Hue), percentValue(c.Sat)/100, percentValue(c.Lum)/100)
		return fmt.Sprintf("%02X%02X%02X", red, green, blue)
	case pptx.ColorSystem:
		return systemColor(c.Val, c.LastClr)
	}
	return defaultColor
}

// scheme resolves theme slot. Logical names (tx1, bg1, ...) go through the
// color map first.
func (r colorResolver) scheme(slot string) string {
	switch slot {
	case "tx1", "tx2", "bg1", "bg2":
		if mapped, ok := r.colorMap[slot]; ok && mapped != "" {
			slot = mapped
		}
	}
	if r.theme == nil {
		return defaultColor
	}
	ref, ok := r.theme.Colors[slot]
	if !ok {
		return defaultColor
	}
	switch ref.Kind {
	case pptx.ColorRGB:
		return hexOrDefault(ref.Val)
	case pptx.ColorSystem:
		return systemColor(ref.Val, ref.LastClr)
	}
	return defaultColor
}

// opacity returns tint of the color in 0..1 range, 0 when absent.
func opacity(c *pptx.Color) float64 {
	if c == nil || c.Tint == nil {
		return 0
	}
	return float64(*c.Tint) / 100000
}

func hexOrDefault(val string) string {
	if len(val) != 6 {
		return defaultColor
	}
	if _, err := strconv.ParseUint(val, 16, 32); err != nil {
		return defaultColor
	}
	return strings.ToUpper(val)
}

func systemColor(name, last string) string {
	if last != "" {
		return hexOrDefault(last)
	}
	switch name {
	case "window":
		return "FFFFFF"
	case "windowText":
		return "000000"
	}
	return defaultColor
}

// presetColor looks name up in CSS color table. DrawingML abbreviates dark,
// light and medium variants (dkBlue, ltGray, medPurple).
func presetColor(name string) string {
	name = strings.ToLower(name)
	for short, long := range map[string]string{"dk": "dark", "lt": "light", "med": "medium"} {
		if rest, ok := strings.CutPrefix(name, short); ok {
			if _, known := presetColors[name]; !known {
				name = long + rest
			}
			break
		}
	}
	if hex, ok := presetColors[name]; ok {
		return hex
	}
	return defaultColor
}

// percentValue parses "50%" as 50 and "50000" (thousandths of percent) as 50.
// Garbage is 0.
func percentValue(s string) float64 {
	if p, ok := strings.CutSuffix(strings.TrimSpace(s), "%"); ok {
		v, err := strconv.ParseFloat(p, 64)
		if err != nil {
			return 0
		}
		return v
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return v / 1000
}

func percentChannel(s string) int {
	return clampChannel(255 * percentValue(s) / 100)
}

func clampChannel(v float64) int {
	return int(math.Round(math.Max(0, math.Min(255, v))))
}

// hueDegrees converts hue in 60000ths of a degree.
func hueDegrees(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return math.Mod(v/60000, 360)
}

// hslToRGB converts hue in degrees, saturation and luminance in 0..1.
func hslToRGB(hue, sat, lum float64) (int, int, int) {
	var t2 float64
	if lum <= 0.5 {
		t2 = lum * (sat + 1)
	} else {
		t2 = lum + sat - lum*sat
	}
	t1 := lum*2 - t2
	h := hue / 60
	return clampChannel(hueToChannel(t1, t2, h+2) * 255),
		clampChannel(hueToChannel(t1, t2, h) * 255),
		clampChannel(hueToChannel(t1, t2, h-2) * 255)
}

func hueToChannel(t1, t2, h float64) float64 {
	if h < 0 {
		h += 6
	}
	if h >= 6 {
		h -= 6
	}
	switch {
	case h < 1:
		return (t2-t1)*h + t1
	case h < 3:
		return t2
	case h < 4:
		return (t2-t1)*(4-h) + t1
	}
	return t1
}
