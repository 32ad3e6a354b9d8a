package register

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNew_Defaults(t *testing.T) {
	r := New("a", Text("hello"))

	require.Equal(t, Key("a"), r.Key())
	require.Equal(t, KindText, r.Value().Kind())
	require.Nil(t, r.PrintOverride())
	require.Nil(t, r.RestoreOverride())
	require.Nil(t, r.InsertOverride())
}

func TestNew_Overrides(t *testing.T) {
	printed := false
	r := New("a", Number(5),
		WithPrint(func(v Value, verbose bool) string {
			printed = true
			return "custom"
		}),
		WithRestore(func(v Value) error { return nil }),
		WithInsert(func(v Value) (string, error) { return "5", nil }),
	)

	require.NotNil(t, r.PrintOverride())
	require.NotNil(t, r.RestoreOverride())
	require.NotNil(t, r.InsertOverride())

	require.Equal(t, "custom", r.PrintOverride()(r.Value(), false))
	require.True(t, printed)
}

func TestWithValue_LeavesOriginalUntouched(t *testing.T) {
	r1 := New("a", Number(5), WithPrint(func(Value, bool) string { return "p" }))
	r2 := r1.WithValue(Number(8))

	n1, _ := r1.Value().AsNumber()
	n2, _ := r2.Value().AsNumber()
	require.Equal(t, 5, n1)
	require.Equal(t, 8, n2)

	// Overrides carry over to the replacement.
	require.NotNil(t, r2.PrintOverride())
	require.Equal(t, r1.Key(), r2.Key())
}
