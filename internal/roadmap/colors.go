package roadmap

import (
	"regexp"
	"strings"
	"unicode/utf16"
)

// TagPalette is the fixed set of default tag colors.
var TagPalette = []string{
	"#FF6B6B",
	"#FF9F43",
	"#FDCB6E",
	"#6C5CE7",
	"#74B9FF",
	"#00B894",
	"#00CEC9",
	"#E17055",
	"#FAB1A0",
	"#55A3FF",
	"#A29BFE",
	"#FD79A8",
}

var hexColorRe = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

// ValidateColor checks for a #RRGGBB hex code.
func ValidateColor(color string) error {
	if !hexColorRe.MatchString(color) {
		return Validationf("Color must be a valid hex code (e.g., #FF5733), received '%s'", color)
	}
	return nil
}

// DefaultTagColor derives a stable palette color from a tag name.
// Case and surrounding whitespace do not affect the result.
func DefaultTagColor(name string) string {
	normalized := strings.ToLower(strings.TrimSpace(name))
	if normalized == "" {
		return TagPalette[0]
	}
	return TagPalette[hashTagName(normalized)%uint32(len(TagPalette))]
}

// hashTagName is djb2 with xor over UTF-16 code units.
func hashTagName(s string) uint32 {
	h := uint32(5381)
	for _, c := range utf16.Encode([]rune(s)) {
		h = h*33 ^ uint32(c)
	}
	return h
}
