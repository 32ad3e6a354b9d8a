package memory

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHost_StartsWithScratchBuffer(t *testing.T) {
	h := New()
	require.Equal(t, "scratch", string(h.CurrentSource()))
	require.Equal(t, 0, h.Point())
}

func TestHost_InsertAndExtract(t *testing.T) {
	h := New()
	h.InsertText("hello world")
	require.Equal(t, "hello world", h.Text(h.CurrentSource()))
	require.Equal(t, 11, h.Point())

	start := h.MarkerAt(h.CurrentSource(), 0)
	end := h.MarkerAt(h.CurrentSource(), 5)
	require.Equal(t, "hello", h.ExtractRegion(start, end))

	// Reversed markers still give the same region.
	require.Equal(t, "hello", h.ExtractRegion(end, start))
}

func TestHost_DeleteRegion(t *testing.T) {
	h := New()
	h.InsertText("hello world")

	start := h.MarkerAt(h.CurrentSource(), 5)
	end := h.MarkerAt(h.CurrentSource(), 11)
	h.DeleteRegion(start, end)
	require.Equal(t, "hello", h.Text(h.CurrentSource()))
}

func TestHost_MarkersTrackBinding(t *testing.T) {
	h := New()
	id := h.NewBuffer("notes", "some text")
	m := h.MarkerAt(id, 4)

	require.True(t, h.IsBound(m))
	src, ok := h.Source(m)
	require.True(t, ok)
	require.Equal(t, id, src)
	require.Equal(t, 4, h.Position(m))

	h.Destroy(id)
	require.False(t, h.IsBound(m))
	_, ok = h.Source(m)
	require.False(t, ok)
}

func TestHost_CurrentPositionFollowsPoint(t *testing.T) {
	h := New()
	h.InsertText("abcdef")
	h.MoveTo(3)

	m := h.CurrentPosition()
	require.True(t, h.IsBound(m))
	require.Equal(t, 3, h.Position(m))
}

func TestHost_ExtractRectangle(t *testing.T) {
	h := New()
	h.NewBuffer("grid", "abcdef\nghijkl\nmnopqr")

	start := h.MarkerAt(h.CurrentSource(), 1)  // row 0, col 1
	end := h.MarkerAt(h.CurrentSource(), 18)   // row 2, col 4
	block := h.ExtractRectangle(start, end, false)
	require.Equal(t, []string{"bcd", "hij", "nop"}, block)

	// Non-destructive extraction leaves the buffer alone.
	require.Equal(t, "abcdef\nghijkl\nmnopqr", h.Text(h.CurrentSource()))

	h.ExtractRectangle(start, end, true)
	require.Equal(t, "aef\ngkl\nmqr", h.Text(h.CurrentSource()))
}

func TestHost_InsertRectangle(t *testing.T) {
	h := New()
	h.NewBuffer("grid", "ad\nbe\ncf")
	h.MoveTo(1) // between a and d

	h.InsertRectangle([]string{"X", "Y", "Z"})
	require.Equal(t, "aXd\nbYe\ncZf", h.Text(h.CurrentSource()))
}

func TestHost_InsertRectangle_EmptyBlock(t *testing.T) {
	h := New()
	h.NewBuffer("grid", "ad\nbe")
	h.MoveTo(1)

	h.InsertRectangle(nil)
	require.Equal(t, "ad\nbe", h.Text(h.CurrentSource()))
	require.Equal(t, 1, h.Point())
}

func TestHost_ExtractRectangle_DegenerateMarkers(t *testing.T) {
	h := New()
	one := h.NewBuffer("one", "abcdef")
	two := h.NewBuffer("two", "ghijkl")

	// Markers in different buffers bound no rectangle.
	require.Nil(t, h.ExtractRectangle(h.MarkerAt(one, 0), h.MarkerAt(two, 3), false))

	// Neither does an unbound marker.
	doomed := h.NewBuffer("doomed", "text")
	m := h.MarkerAt(doomed, 1)
	h.Destroy(doomed)
	require.Nil(t, h.ExtractRectangle(m, h.MarkerAt(one, 2), false))
}

func TestHost_ScanNumberAtPoint(t *testing.T) {
	h := New()
	h.NewBuffer("nums", "abc 123 def")

	n, ok := h.ScanNumberAtPoint()
	require.True(t, ok)
	require.Equal(t, 123, n)

	h.NewBuffer("none", "no digits here")
	_, ok = h.ScanNumberAtPoint()
	require.False(t, ok)
}

func TestHost_LayoutRoundTrip(t *testing.T) {
	h := New()
	first := h.NewBuffer("one", "first buffer")
	h.MoveTo(5)
	snap := h.CurrentWindowLayout()

	h.NewBuffer("two", "second buffer")
	require.NotEqual(t, first, h.CurrentSource())

	h.ApplyWindowLayout(snap)
	require.Equal(t, first, h.CurrentSource())
	require.Equal(t, 5, h.Point())
}

func TestHost_OpenFiles(t *testing.T) {
	h := New()
	h.SetFileContents("/tmp/f.txt", "file content")

	require.NoError(t, h.Open("/tmp/f.txt"))
	require.Equal(t, "file content", h.Text(h.CurrentSource()))

	id, ok := h.FindOpen("/tmp/f.txt")
	require.True(t, ok)
	require.Equal(t, h.CurrentSource(), id)

	// Reopening an open file switches rather than duplicating.
	h.NewBuffer("other", "")
	require.NoError(t, h.Open("/tmp/f.txt"))
	require.Equal(t, id, h.CurrentSource())

	require.Error(t, h.Open("/tmp/missing.txt"))
}

func TestHost_ConfirmReopenDefaultsToYes(t *testing.T) {
	h := New()
	require.True(t, h.ConfirmReopen("/tmp/f.txt"))

	h.ConfirmFunc = func(path string) bool { return false }
	require.False(t, h.ConfirmReopen("/tmp/f.txt"))
}

func TestHost_DestroyCurrentFallsBack(t *testing.T) {
	h := New()
	id := h.NewBuffer("doomed", "text")
	h.Destroy(id)

	require.NotEqual(t, id, h.CurrentSource())
	require.NotEmpty(t, h.CurrentSource())
}
