package flags

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRegistry_Enabled(t *testing.T) {
	tests := []struct {
		name     string
		registry *Registry
		flag     string
		expected bool
	}{
		{
			name:     "known flag set to true returns true",
			registry: New(map[string]bool{FlagLiveReload: true}),
			flag:     FlagLiveReload,
			expected: true,
		},
		{
			name:     "known flag set to false returns false",
			registry: New(map[string]bool{FlagDeleteKey: false}),
			flag:     FlagDeleteKey,
			expected: false,
		},
		{
			name:     "unknown flag returns false",
			registry: New(map[string]bool{FlagLiveReload: true}),
			flag:     "unknown-flag",
			expected: false,
		},
		{
			name:     "nil registry returns false",
			registry: nil,
			flag:     FlagLiveReload,
			expected: false,
		},
		{
			name:     "nil flags map returns false",
			registry: New(nil),
			flag:     FlagLiveReload,
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.expected, tt.registry.Enabled(tt.flag))
		})
	}
}

func TestRegistry_All_ReturnsCopy(t *testing.T) {
	r := New(map[string]bool{FlagLiveReload: true})

	all := r.All()
	all[FlagLiveReload] = false

	require.True(t, r.Enabled(FlagLiveReload), "mutating the copy must not affect the registry")
}

func TestRegistry_All_NilRegistry(t *testing.T) {
	var r *Registry
	require.Empty(t, r.All())
}
