package testutil

import (
	"testing"

	"github.com/zjrosen/casier/internal/host/memory"
	"github.com/zjrosen/casier/internal/register"
	"github.com/zjrosen/casier/internal/store"
)

// SeedKitchenSink builds a host and store with one register of every
// printable kind. Useful for browser and dispatcher tests that want a
// fully populated listing.
func SeedKitchenSink(t *testing.T) (*memory.Host, *store.Store) {
	t.Helper()

	b := NewBuilder(t).
		WithBuffer("notes", "The quick brown fox jumps over the lazy dog").
		WithRegister("t", register.Text("some saved text")).
		WithRegister("n", register.Number(42)).
		WithRegister("r", register.Rectangle([]string{"col one", "col two"})).
		WithRegister("f", register.FileRef("/etc/hosts")).
		WithRegister("d", register.DeferredFileRef("/var/log/syslog", 120)).
		WithMarkerRegister("m", 4)

	h, st := b.Build()

	// Layout registers need live host state, seeded after Build
	st.Make("w", register.WindowConfig(h.CurrentWindowLayout(), h.CurrentPosition()))
	st.Make("F", register.FrameConfig(h.CurrentFrameLayout(), h.CurrentPosition()))

	return h, st
}
