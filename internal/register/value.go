// Package register defines the register value object: a keyed, immutable
// pairing of an application value with optional print/restore/insert
// behavior overrides.
//
// Values are a closed tagged union. The kind is assigned at construction by
// the operation that creates the value, never inferred from shape, so an
// arbitrary list of strings is only a rectangle when the rectangle
// constructor said so.
package register

import "github.com/zjrosen/casier/internal/host"

// Kind names the semantic kind of a stored value. The declaration order is
// the classification priority: when a value could plausibly satisfy more
// than one shape, the earlier kind wins at construction time.
type Kind int

const (
	// KindFrameConfig is a frame layout snapshot paired with a saved position.
	KindFrameConfig Kind = iota
	// KindWindowConfig is a window layout snapshot paired with a saved position.
	KindWindowConfig
	// KindMarker is a position marker, possibly unbound.
	KindMarker
	// KindFile is a direct file reference, openable without confirmation.
	KindFile
	// KindDeferredFile is a (path, offset) pair requiring confirmation
	// before reopening.
	KindDeferredFile
	// KindRectangle is an ordered sequence of independent text lines.
	KindRectangle
	// KindNumber is a numeric scalar.
	KindNumber
	// KindText is a plain string.
	KindText
	// KindGarbage is anything the store holds but cannot name.
	KindGarbage
)

func (k Kind) String() string {
	switch k {
	case KindFrameConfig:
		return "frame-config"
	case KindWindowConfig:
		return "window-config"
	case KindMarker:
		return "marker"
	case KindFile:
		return "file"
	case KindDeferredFile:
		return "deferred-file"
	case KindRectangle:
		return "rectangle"
	case KindNumber:
		return "number"
	case KindText:
		return "text"
	case KindGarbage:
		return "garbage"
	default:
		return "unknown"
	}
}

// Value is one stored register payload. The zero Value is garbage holding
// nil. Values are immutable; mutation operations build replacements.
type Value struct {
	kind   Kind
	text   string
	number int
	lines  []string
	marker host.Marker
	window host.WindowLayout
	frame  host.FrameLayout
	path   string
	offset int
	raw    any
}

// Text builds a text value.
func Text(s string) Value {
	return Value{kind: KindText, text: s}
}

// Number builds a numeric value.
func Number(n int) Value {
	return Value{kind: KindNumber, number: n}
}

// Rectangle builds a rectangle value from its lines. The slice is copied so
// later caller mutation cannot reach the stored value.
func Rectangle(lines []string) Value {
	cp := make([]string, len(lines))
	copy(cp, lines)
	return Value{kind: KindRectangle, lines: cp}
}

// Position builds a position-marker value.
func Position(m host.Marker) Value {
	return Value{kind: KindMarker, marker: m}
}

// WindowConfig builds a window layout snapshot paired with a saved position.
func WindowConfig(layout host.WindowLayout, saved host.Marker) Value {
	return Value{kind: KindWindowConfig, window: layout, marker: saved}
}

// FrameConfig builds a frame layout snapshot paired with a saved position.
func FrameConfig(layout host.FrameLayout, saved host.Marker) Value {
	return Value{kind: KindFrameConfig, frame: layout, marker: saved}
}

// FileRef builds a direct file reference.
func FileRef(path string) Value {
	return Value{kind: KindFile, path: path}
}

// DeferredFileRef builds a deferred file reference: a path plus the offset
// to return to once the file is reopened.
func DeferredFileRef(path string, offset int) Value {
	return Value{kind: KindDeferredFile, path: path, offset: offset}
}

// Garbage wraps an arbitrary payload the classifier cannot name. The store
// still holds and round-trips it.
func Garbage(v any) Value {
	return Value{kind: KindGarbage, raw: v}
}

// Kind returns the value's semantic kind.
func (v Value) Kind() Kind { return v.kind }

// AsText returns the string payload, false when the value is not text.
func (v Value) AsText() (string, bool) {
	return v.text, v.kind == KindText
}

// AsNumber returns the numeric payload, false when the value is not a number.
func (v Value) AsNumber() (int, bool) {
	return v.number, v.kind == KindNumber
}

// AsRectangle returns a copy of the rectangle lines, false when the value is
// not a rectangle.
func (v Value) AsRectangle() ([]string, bool) {
	if v.kind != KindRectangle {
		return nil, false
	}
	cp := make([]string, len(v.lines))
	copy(cp, v.lines)
	return cp, true
}

// AsMarker returns the position marker, false when the value is not one.
// For window and frame configs use SavedPosition instead.
func (v Value) AsMarker() (host.Marker, bool) {
	return v.marker, v.kind == KindMarker
}

// AsWindowConfig returns the window layout and its saved position.
func (v Value) AsWindowConfig() (host.WindowLayout, host.Marker, bool) {
	return v.window, v.marker, v.kind == KindWindowConfig
}

// AsFrameConfig returns the frame layout and its saved position.
func (v Value) AsFrameConfig() (host.FrameLayout, host.Marker, bool) {
	return v.frame, v.marker, v.kind == KindFrameConfig
}

// AsFileRef returns the file path, false when the value is not a direct
// file reference.
func (v Value) AsFileRef() (string, bool) {
	return v.path, v.kind == KindFile
}

// AsDeferredFileRef returns the path and offset of a deferred file
// reference.
func (v Value) AsDeferredFileRef() (string, int, bool) {
	return v.path, v.offset, v.kind == KindDeferredFile
}

// Raw returns the opaque payload of a garbage value, false otherwise.
func (v Value) Raw() (any, bool) {
	return v.raw, v.kind == KindGarbage
}
