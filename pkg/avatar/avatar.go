// Package avatar generates inline SVG initials avatars, used as the
// default profile image when a user uploads none.
package avatar

import (
	"encoding/base64"
	"fmt"
	"hash/fnv"
	"strings"
)

const svgTemplate = `<svg xmlns="http://www.w3.org/2000/svg" width="96" height="96">` +
	`<defs><linearGradient id="g" x1="0" y1="0" x2="1" y2="1">` +
	`<stop offset="0%%" stop-color="hsl(%d,70%%,55%%)"/>` +
	`<stop offset="100%%" stop-color="hsl(%d,70%%,45%%)"/>` +
	`</linearGradient></defs>` +
	`<rect width="100%%" height="100%%" rx="16" fill="url(#g)"/>` +
	`<text x="50%%" y="54%%" dominant-baseline="middle" text-anchor="middle" ` +
	`font-family="system-ui, sans-serif" font-size="40" fill="white">%s</text>` +
	`</svg>`

// DataURL returns a deterministic data: URL holding an SVG avatar with the
// initials of label on a gradient derived from the label's hash.
func DataURL(label string) string {
	hue := int(hash(label) % 360)
	svg := fmt.Sprintf(svgTemplate, hue, (hue+40)%360, Initials(label))
	return "data:image/svg+xml;base64," + base64.StdEncoding.EncodeToString([]byte(svg))
}

// Initials extracts up to two uppercase initials from label, splitting on
// whitespace and common email/username separators. Falls back to "?".
func Initials(label string) string {
	fields := strings.FieldsFunc(label, func(r rune) bool {
		switch r {
		case ' ', '\t', '.', '@', '_', '+', '-':
			return true
		}
		return false
	})

	initials := make([]rune, 0, 2)
	for _, f := range fields {
		initials = append(initials, []rune(strings.ToUpper(f))[0])
		if len(initials) == 2 {
			break
		}
	}
	if len(initials) == 0 {
		return "?"
	}
	return string(initials)
}

func hash(s string) uint32 {
	h := fnv.New32a()
	_, _ = h.Write([]byte(s))
	return h.Sum32()
}
