package testutil

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zjrosen/casier/internal/register"
)

func TestBuilder_WithRegister(t *testing.T) {
	_, st := NewBuilder(t).
		WithRegister("a", register.Text("hello")).
		WithRegister("n", register.Number(7)).
		Build()

	require.Equal(t, 2, st.Len())

	r, ok := st.Get("a")
	require.True(t, ok)
	text, _ := r.Value().AsText()
	require.Equal(t, "hello", text)
}

func TestBuilder_WithMarkerRegister(t *testing.T) {
	h, st := NewBuilder(t).
		WithBuffer("notes", "0123456789").
		WithMarkerRegister("p", 6).
		Build()

	r, ok := st.Get("p")
	require.True(t, ok)
	m, ok := r.Value().AsMarker()
	require.True(t, ok)
	require.True(t, h.IsBound(m))
	require.Equal(t, 6, h.Position(m))
}

func TestBuilder_LastBufferIsCurrent(t *testing.T) {
	h, _ := NewBuilder(t).
		WithBuffer("first", "aaa").
		WithBuffer("second", "bbb").
		Build()

	require.Equal(t, "bbb", h.Text(h.CurrentSource()))
}

func TestSeedKitchenSink(t *testing.T) {
	h, st := SeedKitchenSink(t)

	require.Equal(t, 8, st.Len())

	kinds := map[register.Kind]bool{}
	st.ForEach(func(r register.Register) {
		kinds[r.Value().Kind()] = true
	})
	require.True(t, kinds[register.KindText])
	require.True(t, kinds[register.KindNumber])
	require.True(t, kinds[register.KindRectangle])
	require.True(t, kinds[register.KindFile])
	require.True(t, kinds[register.KindDeferredFile])
	require.True(t, kinds[register.KindMarker])
	require.True(t, kinds[register.KindWindowConfig])
	require.True(t, kinds[register.KindFrameConfig])

	m, _ := st.Get("m")
	marker, ok := m.Value().AsMarker()
	require.True(t, ok)
	require.True(t, h.IsBound(marker))
}
