// Package store holds the live registers, keyed and replaceable.
package store

import (
	"errors"
	"fmt"
	"sync"

	"github.com/zjrosen/casier/internal/log"
	"github.com/zjrosen/casier/internal/pubsub"
	"github.com/zjrosen/casier/internal/register"
)

// ErrNotFound is returned by GetOrFail for absent keys. Callers that
// tolerate a missing register use Get instead.
var ErrNotFound = errors.New("register not found")

// Change describes a store mutation for event subscribers.
type Change struct {
	Key  register.Key
	Kind register.Kind
}

// Store maps keys to registers. Writes replace wholesale: a reader that
// captured the previous register keeps seeing it unchanged, while the store
// always yields the latest. The core contract is single-threaded; the
// internal lock is there so an embedding UI needs no extra exclusion.
type Store struct {
	mu     sync.RWMutex
	regs   map[register.Key]register.Register
	broker *pubsub.Broker[Change]
}

// New creates an empty store.
func New() *Store {
	return &Store{
		regs:   make(map[register.Key]register.Register),
		broker: pubsub.NewBroker[Change](),
	}
}

// Put unconditionally inserts or replaces the register under its key.
func (s *Store) Put(r register.Register) {
	s.mu.Lock()
	_, existed := s.regs[r.Key()]
	s.regs[r.Key()] = r
	s.mu.Unlock()

	eventType := pubsub.CreatedEvent
	if existed {
		eventType = pubsub.UpdatedEvent
	}
	s.broker.Publish(eventType, Change{Key: r.Key(), Kind: r.Value().Kind()})
	log.Debug(log.CatStore, "register stored", "key", r.Key(), "kind", r.Value().Kind())
}

// Make builds a register and stores it in one step. There is no public way
// to construct a register that is not reachable by key.
func (s *Store) Make(key register.Key, v register.Value, opts ...register.Option) register.Register {
	r := register.New(key, v, opts...)
	s.Put(r)
	return r
}

// Get returns the current register for key, false when absent.
func (s *Store) Get(key register.Key) (register.Register, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.regs[key]
	return r, ok
}

// GetOrFail returns the register for key or a wrapped ErrNotFound. Used by
// operations that require an existing register.
func (s *Store) GetOrFail(key register.Key) (register.Register, error) {
	r, ok := s.Get(key)
	if !ok {
		return register.Register{}, fmt.Errorf("register %q: %w", string(key), ErrNotFound)
	}
	return r, nil
}

// ForEach applies the visitor to every register. Order is unspecified;
// consumers that need ordering sort the keys themselves.
func (s *Store) ForEach(visit func(r register.Register)) {
	s.mu.RLock()
	snapshot := make([]register.Register, 0, len(s.regs))
	for _, r := range s.regs {
		snapshot = append(snapshot, r)
	}
	s.mu.RUnlock()

	for _, r := range snapshot {
		visit(r)
	}
}

// Delete removes the register under key. Deleting an absent key is a no-op
// and publishes nothing.
func (s *Store) Delete(key register.Key) {
	s.mu.Lock()
	r, existed := s.regs[key]
	if existed {
		delete(s.regs, key)
	}
	s.mu.Unlock()

	if !existed {
		return
	}
	s.broker.Publish(pubsub.DeletedEvent, Change{Key: key, Kind: r.Value().Kind()})
	log.Debug(log.CatStore, "register deleted", "key", key)
}

// Keys returns every stored key in unspecified order.
func (s *Store) Keys() []register.Key {
	s.mu.RLock()
	defer s.mu.RUnlock()
	keys := make([]register.Key, 0, len(s.regs))
	for k := range s.regs {
		keys = append(keys, k)
	}
	return keys
}

// Len returns the number of live registers.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.regs)
}

// Clear drops every register.
func (s *Store) Clear() {
	s.mu.Lock()
	s.regs = make(map[register.Key]register.Register)
	s.mu.Unlock()

	s.broker.Publish(pubsub.ClearedEvent, Change{})
	log.Debug(log.CatStore, "store cleared")
}

// Events exposes the change broker for subscription.
func (s *Store) Events() *pubsub.Broker[Change] {
	return s.broker
}

// Close shuts down the change broker.
func (s *Store) Close() {
	s.broker.Close()
}
