package register

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/zjrosen/casier/internal/host"
)

// DefaultTerseWidth is how many columns of text a terse description shows.
// The original tied this to live display width; it is fixed here so the same
// value renders the same everywhere, and hosts that want width-responsive
// truncation override it through Descriptor.
const DefaultTerseWidth = 20

// Descriptor renders human-readable descriptions of values. Markers is only
// consulted for position markers; every other kind renders purely from the
// value itself.
type Descriptor struct {
	Markers    host.Markers
	TerseWidth int
}

// NewDescriptor returns a descriptor with the default terse width.
func NewDescriptor(markers host.Markers) Descriptor {
	return Descriptor{Markers: markers, TerseWidth: DefaultTerseWidth}
}

func (d Descriptor) width() int {
	if d.TerseWidth > 0 {
		return d.TerseWidth
	}
	return DefaultTerseWidth
}

// Describe renders a one-line (terse) or full (verbose) description of a
// value, dispatching on its kind.
func (d Descriptor) Describe(v Value, verbose bool) string {
	switch v.Kind() {
	case KindFrameConfig:
		return "a frame configuration."
	case KindWindowConfig:
		return "a window configuration."
	case KindMarker:
		return d.describeMarker(v.marker)
	case KindFile:
		return fmt.Sprintf("the file %q.", v.path)
	case KindDeferredFile:
		return fmt.Sprintf("the file %q at position %d.", v.path, v.offset)
	case KindRectangle:
		return d.describeRectangle(v.lines, verbose)
	case KindNumber:
		return strconv.Itoa(v.number)
	case KindText:
		return d.describeText(v.text, verbose)
	default:
		if verbose {
			return fmt.Sprintf("Garbage:\n%#v", v.raw)
		}
		return "Garbage"
	}
}

func (d Descriptor) describeMarker(m host.Marker) string {
	if d.Markers == nil || !d.Markers.IsBound(m) {
		return "a marker in no buffer"
	}
	src, _ := d.Markers.Source(m)
	return fmt.Sprintf("position %d in source %s", d.Markers.Position(m), src)
}

func (d Descriptor) describeRectangle(lines []string, verbose bool) string {
	if len(lines) == 0 {
		return "an empty rectangle"
	}
	if verbose {
		return strings.Join(lines, "\n")
	}
	return "a rectangle starting with " + runewidth.Truncate(lines[0], d.width(), "")
}

func (d Descriptor) describeText(s string, verbose bool) string {
	if verbose {
		return s
	}
	if s == "" {
		return "the empty string"
	}
	trimmed := strings.TrimLeft(s, " \t\n\r")
	if trimmed == "" {
		return "whitespace"
	}
	return "text starting with " + runewidth.Truncate(trimmed, d.width(), "")
}
