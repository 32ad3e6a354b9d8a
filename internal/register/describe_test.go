package register

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zjrosen/casier/internal/host"
)

// fakeMarkers answers marker queries from a fixed table.
type fakeMarkers struct {
	bound  map[host.Marker]bool
	source map[host.Marker]host.SourceID
	pos    map[host.Marker]int
}

func (f fakeMarkers) IsBound(m host.Marker) bool { return f.bound[m] }
func (f fakeMarkers) Source(m host.Marker) (host.SourceID, bool) {
	src, ok := f.source[m]
	return src, ok
}
func (f fakeMarkers) Position(m host.Marker) int { return f.pos[m] }

func testDescriptor() Descriptor {
	return NewDescriptor(fakeMarkers{
		bound:  map[host.Marker]bool{"m1": true},
		source: map[host.Marker]host.SourceID{"m1": "scratch"},
		pos:    map[host.Marker]int{"m1": 42},
	})
}

func TestDescribe_TerseText(t *testing.T) {
	d := testDescriptor()

	tests := []struct {
		name string
		text string
		want string
	}{
		{"leading whitespace skipped", "   The quick brown fox jumps over the lazy dog", "text starting with The quick brown fox "},
		{"short text", "hi", "text starting with hi"},
		{"all whitespace", " \t\n ", "whitespace"},
		{"empty", "", "the empty string"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, d.Describe(Text(tc.text), false))
		})
	}
}

func TestDescribe_TerseTextWidthCap(t *testing.T) {
	d := testDescriptor()

	got := d.Describe(Text("   The quick brown fox jumps over the lazy dog"), false)
	require.True(t, strings.HasPrefix(got, "text starting with The"))

	tail := strings.TrimPrefix(got, "text starting with ")
	require.LessOrEqual(t, len([]rune(tail)), DefaultTerseWidth)
}

func TestDescribe_VerboseTextIsFull(t *testing.T) {
	d := testDescriptor()
	long := strings.Repeat("hello world ", 20)
	require.Equal(t, long, d.Describe(Text(long), true))
}

func TestDescribe_CustomTerseWidth(t *testing.T) {
	d := testDescriptor()
	d.TerseWidth = 5
	require.Equal(t, "text starting with abcde", d.Describe(Text("abcdefghij"), false))
}

func TestDescribe_Number(t *testing.T) {
	d := testDescriptor()
	require.Equal(t, "42", d.Describe(Number(42), false))
	require.Equal(t, "-7", d.Describe(Number(-7), true))
}

func TestDescribe_Marker(t *testing.T) {
	d := testDescriptor()

	require.Equal(t, "position 42 in source scratch", d.Describe(Position("m1"), false))
	require.Equal(t, "a marker in no buffer", d.Describe(Position("dead"), false))
}

func TestDescribe_Layouts(t *testing.T) {
	d := testDescriptor()
	require.Equal(t, "a window configuration.", d.Describe(WindowConfig("w", "m1"), false))
	require.Equal(t, "a frame configuration.", d.Describe(FrameConfig("f", "m1"), true))
}

func TestDescribe_FileRefs(t *testing.T) {
	d := testDescriptor()
	require.Equal(t, `the file "/etc/hosts".`, d.Describe(FileRef("/etc/hosts"), false))
	require.Equal(t, `the file "/etc/hosts" at position 7.`, d.Describe(DeferredFileRef("/etc/hosts", 7), false))
}

func TestDescribe_Rectangle(t *testing.T) {
	d := testDescriptor()
	rect := Rectangle([]string{"first line of block", "second"})

	require.Equal(t, "a rectangle starting with first line of block", d.Describe(rect, false))
	require.Equal(t, "first line of block\nsecond", d.Describe(rect, true))
	require.Equal(t, "an empty rectangle", d.Describe(Rectangle(nil), false))
}

func TestDescribe_Garbage(t *testing.T) {
	d := testDescriptor()
	v := Garbage([]int{1, 2, 3})

	require.Equal(t, "Garbage", d.Describe(v, false))

	verbose := d.Describe(v, true)
	require.True(t, strings.HasPrefix(verbose, "Garbage:\n"))
	require.Contains(t, verbose, "[]int{1, 2, 3}")
}

func TestDescribe_NilMarkersTreatsMarkerAsUnbound(t *testing.T) {
	d := Descriptor{}
	require.Equal(t, "a marker in no buffer", d.Describe(Position("m1"), false))
}
