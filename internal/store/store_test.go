package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/zjrosen/casier/internal/pubsub"
	"github.com/zjrosen/casier/internal/register"
)

func TestStore_PutGet(t *testing.T) {
	s := New()
	defer s.Close()

	s.Make("a", register.Text("hello"))

	r, ok := s.Get("a")
	require.True(t, ok)
	text, _ := r.Value().AsText()
	require.Equal(t, "hello", text)

	_, ok = s.Get("b")
	require.False(t, ok)
}

func TestStore_GetOrFail(t *testing.T) {
	s := New()
	defer s.Close()

	_, err := s.GetOrFail("z")
	require.ErrorIs(t, err, ErrNotFound)
	require.Contains(t, err.Error(), `"z"`)

	s.Make("z", register.Number(1))
	r, err := s.GetOrFail("z")
	require.NoError(t, err)
	require.Equal(t, register.Key("z"), r.Key())
}

func TestStore_ReplaceNotMutate(t *testing.T) {
	s := New()
	defer s.Close()

	r1 := s.Make("k", register.Number(5))
	r2 := s.Make("k", register.Number(8))

	// The store yields the latest.
	current, ok := s.Get("k")
	require.True(t, ok)
	n, _ := current.Value().AsNumber()
	require.Equal(t, 8, n)

	// The old register is orphaned, not mutated.
	old, _ := r1.Value().AsNumber()
	require.Equal(t, 5, old)

	latest, _ := r2.Value().AsNumber()
	require.Equal(t, 8, latest)
	require.Equal(t, 1, s.Len())
}

func TestStore_ForEachVisitsAll(t *testing.T) {
	s := New()
	defer s.Close()

	s.Make("a", register.Text("1"))
	s.Make("b", register.Number(2))
	s.Make("c", register.Rectangle([]string{"x"}))

	seen := map[register.Key]register.Kind{}
	s.ForEach(func(r register.Register) {
		seen[r.Key()] = r.Value().Kind()
	})

	require.Len(t, seen, 3)
	require.Equal(t, register.KindText, seen["a"])
	require.Equal(t, register.KindNumber, seen["b"])
	require.Equal(t, register.KindRectangle, seen["c"])
}

func TestStore_Clear(t *testing.T) {
	s := New()
	defer s.Close()

	s.Make("a", register.Text("1"))
	s.Make("b", register.Number(2))
	s.Clear()

	require.Equal(t, 0, s.Len())
	_, ok := s.Get("a")
	require.False(t, ok)
}

func TestStore_Delete(t *testing.T) {
	s := New()
	defer s.Close()

	s.Make("a", register.Text("1"))
	s.Delete("a")

	require.Equal(t, 0, s.Len())
	_, ok := s.Get("a")
	require.False(t, ok)

	// Deleting an absent key is a no-op.
	s.Delete("a")
	require.Equal(t, 0, s.Len())
}

func TestStore_GarbageRoundTrip(t *testing.T) {
	s := New()
	defer s.Close()

	payload := struct {
		Name string
		Tags []string
	}{"odd", []string{"x", "y"}}

	s.Make("g", register.Garbage(payload))

	r, ok := s.Get("g")
	require.True(t, ok)
	raw, ok := r.Value().Raw()
	require.True(t, ok)
	require.Equal(t, payload, raw)
}

func TestStore_PublishesChangeEvents(t *testing.T) {
	s := New()
	defer s.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	ch := s.Events().Subscribe(ctx)

	s.Make("a", register.Text("1"))
	s.Make("a", register.Text("2"))
	s.Delete("a")
	s.Clear()

	expect := []pubsub.EventType{pubsub.CreatedEvent, pubsub.UpdatedEvent, pubsub.DeletedEvent, pubsub.ClearedEvent}
	for _, want := range expect {
		select {
		case ev := <-ch:
			require.Equal(t, want, ev.Type)
		case <-time.After(time.Second):
			t.Fatalf("timed out waiting for %s event", want)
		}
	}
}

func TestStore_PutGetProperties(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		s := New()
		defer s.Close()

		keys := rapid.SliceOfN(rapid.StringMatching(`[a-z0-9]`), 1, 20).Draw(rt, "keys")
		latest := map[register.Key]string{}

		for i, k := range keys {
			key := register.Key(k)
			text := rapid.String().Draw(rt, "text")
			s.Make(key, register.Text(text))
			latest[key] = text

			// The store never grows beyond the distinct key count.
			require.LessOrEqual(rt, s.Len(), i+1)
		}

		require.Equal(rt, len(latest), s.Len())
		for key, want := range latest {
			r, ok := s.Get(key)
			require.True(rt, ok)
			got, _ := r.Value().AsText()
			require.Equal(rt, want, got)
		}
	})
}
