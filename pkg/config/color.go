// color.go — Role color lookup.
package config

import "image/color"

// Color returns the configured color for a role as NRGBA. A 3-component
// color gets full alpha. Validate guarantees every role the renderer asks
// for is present and in range, so lookup never fails after load.
func (c *Config) Color(role string) color.NRGBA {
	comps := c.Colors[role]
	out := color.NRGBA{A: 255}
	if len(comps) >= 3 {
		out.R = uint8(comps[0])
		out.G = uint8(comps[1])
		out.B = uint8(comps[2])
	}
	if len(comps) == 4 {
		out.A = uint8(comps[3])
	}
	return out
}
