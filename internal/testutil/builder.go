// Package testutil provides fixture builders for store and host state.
package testutil

import (
	"testing"

	"github.com/zjrosen/casier/internal/host"
	"github.com/zjrosen/casier/internal/host/memory"
	"github.com/zjrosen/casier/internal/register"
	"github.com/zjrosen/casier/internal/store"
)

// seedData holds one register to be created.
type seedData struct {
	key   register.Key
	value func(h *memory.Host) register.Value
	opts  []register.Option
}

// bufferData holds one buffer to be created before registers are seeded.
type bufferData struct {
	name    string
	content string
}

// Builder accumulates buffers and registers and seeds them in order:
// buffers first, then registers, so marker seeds can reference buffers
// created in the same builder.
type Builder struct {
	t       *testing.T
	host    *memory.Host
	store   *store.Store
	buffers []bufferData
	seeds   []seedData
}

// NewBuilder creates a builder over a fresh host and store. The store is
// closed on test cleanup.
func NewBuilder(t *testing.T) *Builder {
	t.Helper()
	st := store.New()
	t.Cleanup(st.Close)
	return &Builder{t: t, host: memory.New(), store: st}
}

// WithBuffer adds a buffer. The last buffer added becomes current.
func (b *Builder) WithBuffer(name, content string) *Builder {
	b.buffers = append(b.buffers, bufferData{name, content})
	return b
}

// WithRegister adds a register with a fixed value.
func (b *Builder) WithRegister(key register.Key, v register.Value, opts ...register.Option) *Builder {
	b.seeds = append(b.seeds, seedData{
		key:   key,
		value: func(*memory.Host) register.Value { return v },
		opts:  opts,
	})
	return b
}

// WithMarkerRegister adds a position register bound to the current buffer
// at the given offset. Resolved at Build time, after buffers exist.
func (b *Builder) WithMarkerRegister(key register.Key, offset int) *Builder {
	b.seeds = append(b.seeds, seedData{
		key: key,
		value: func(h *memory.Host) register.Value {
			return register.Position(h.MarkerAt(h.CurrentSource(), offset))
		},
	})
	return b
}

// Build creates the buffers and registers, returning the host and store.
func (b *Builder) Build() (*memory.Host, *store.Store) {
	b.t.Helper()
	for _, buf := range b.buffers {
		b.host.NewBuffer(buf.name, buf.content)
	}
	for _, seed := range b.seeds {
		b.store.Make(seed.key, seed.value(b.host), seed.opts...)
	}
	return b.host, b.store
}

// Services is a convenience for Build callers that only need the host's
// service bundle.
func (b *Builder) Services() host.Services {
	return b.host.Services()
}
