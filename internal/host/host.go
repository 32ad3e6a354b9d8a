// Package host declares the services a text-editing host must supply to the
// register core. The core never inspects the opaque handle types; it stores
// and forwards them, and asks the host everything it needs to know about them.
package host

// SourceID identifies an open source (a buffer, in editor terms).
type SourceID string

// Marker is an opaque handle bound to a location in a source. The host owns
// it and keeps it valid; it may become unbound when its source is destroyed.
type Marker any

// WindowLayout is an opaque snapshot of the window arrangement inside a frame.
type WindowLayout any

// FrameLayout is an opaque snapshot of the full frame arrangement.
type FrameLayout any

// Markers answers questions about position markers.
type Markers interface {
	// IsBound reports whether the marker still points into a live source.
	IsBound(m Marker) bool
	// Source returns the source a marker points into, false if unbound.
	Source(m Marker) (SourceID, bool)
	// Position returns the marker's offset within its source.
	// The value is unspecified for unbound markers.
	Position(m Marker) int
}

// Editor is the text-editing surface the core reads from and writes to.
type Editor interface {
	Markers

	// CurrentPosition returns a marker for the cursor position.
	CurrentPosition() Marker
	// SwitchToSource makes the given source current.
	SwitchToSource(id SourceID)
	// MoveTo moves the cursor to an offset in the current source.
	MoveTo(offset int)

	// ExtractRegion returns the text between two markers.
	ExtractRegion(start, end Marker) string
	// ExtractRectangle returns the rectangular block between two markers,
	// one string per line. When destructive is true the block is removed.
	ExtractRectangle(start, end Marker, destructive bool) []string
	// DeleteRegion removes the text between two markers.
	DeleteRegion(start, end Marker)

	// InsertText inserts text at the cursor.
	InsertText(text string)
	// InsertRectangle inserts a rectangular block at the cursor.
	InsertRectangle(lines []string)

	// ScanNumberAtPoint scans forward from the cursor for a decimal
	// literal. Returns false if none is found.
	ScanNumberAtPoint() (int, bool)
}

// Windows manages window and frame layout snapshots.
type Windows interface {
	CurrentWindowLayout() WindowLayout
	CurrentFrameLayout() FrameLayout
	ApplyWindowLayout(layout WindowLayout)
	// ApplyFrameLayout restores a frame snapshot. When keepOthers is true,
	// frames created since the snapshot are left alone instead of deleted.
	ApplyFrameLayout(layout FrameLayout, keepOthers bool)
}

// Files opens and locates file-backed sources. ConfirmReopen is a blocking
// call: the operation that needs an answer waits for it.
type Files interface {
	Open(path string) error
	FindOpen(path string) (SourceID, bool)
	ConfirmReopen(path string) bool
}

// Services bundles everything the core consumes from the host.
type Services struct {
	Editor  Editor
	Windows Windows
	Files   Files
}
