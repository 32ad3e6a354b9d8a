// Package demo seeds an in-memory host and store so the browser has
// something to show without a real editor behind it.
package demo

import (
	"github.com/zjrosen/casier/internal/host/memory"
	"github.com/zjrosen/casier/internal/register"
	"github.com/zjrosen/casier/internal/store"
)

// Seed builds a host with a couple of buffers and a store holding one
// register of every kind worth looking at.
func Seed() (*memory.Host, *store.Store) {
	h := memory.New()
	h.SetFileContents("/etc/hosts", "127.0.0.1 localhost\n")

	h.NewBuffer("notes", "The quick brown fox jumps over the lazy dog.\nPack my box with five dozen liquor jugs.")
	h.MoveTo(4)

	st := store.New()
	st.Make("t", register.Text("the saved snippet of text"))
	st.Make("n", register.Number(42))
	st.Make("r", register.Rectangle([]string{"first column", "second column", "third column"}))
	st.Make("f", register.FileRef("/etc/hosts"))
	st.Make("d", register.DeferredFileRef("/var/log/syslog", 120))
	st.Make("m", register.Position(h.CurrentPosition()))
	st.Make("w", register.WindowConfig(h.CurrentWindowLayout(), h.CurrentPosition()))
	st.Make("F", register.FrameConfig(h.CurrentFrameLayout(), h.CurrentPosition()))

	return h, st
}
