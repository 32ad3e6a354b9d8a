// Package ops implements the higher-level register operations: capturing
// positions, layouts, regions and rectangles into registers, and the
// read-transform-replace mutations (increment, append, prepend, swap-out).
// Every write goes through the store; registers are replaced, never mutated.
package ops

import (
	"context"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/zjrosen/casier/internal/host"
	"github.com/zjrosen/casier/internal/log"
	"github.com/zjrosen/casier/internal/register"
	"github.com/zjrosen/casier/internal/store"
)

var (
	// ErrNotANumber means increment was asked of a non-numeric register.
	ErrNotANumber = errors.New("register does not contain a number")
	// ErrNotText means append/prepend found a non-text value in the way.
	ErrNotText = errors.New("register does not contain text")
)

// Service runs register operations against a store and a host.
type Service struct {
	store     *store.Store
	services  host.Services
	separator string
	tracer    trace.Tracer
}

// Option configures the service.
type Option func(*Service)

// WithSeparator sets the string placed between existing text and
// appended/prepended text.
func WithSeparator(sep string) Option {
	return func(s *Service) { s.separator = sep }
}

// WithTracer attaches a tracer; spans wrap each operation.
func WithTracer(t trace.Tracer) Option {
	return func(s *Service) { s.tracer = t }
}

// NewService creates an operation service.
func NewService(st *store.Store, services host.Services, opts ...Option) *Service {
	s := &Service{
		store:    st,
		services: services,
		tracer:   noop.NewTracerProvider().Tracer("ops"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) span(ctx context.Context, op string, key register.Key) trace.Span {
	_, sp := s.tracer.Start(ctx, op,
		trace.WithAttributes(attribute.String("register.key", string(key))))
	return sp
}

// SavePosition stores a marker for the current cursor position.
func (s *Service) SavePosition(ctx context.Context, key register.Key) {
	defer s.span(ctx, "ops.SavePosition", key).End()
	m := s.services.Editor.CurrentPosition()
	s.store.Make(key, register.Position(m))
	log.Debug(log.CatOps, "position saved", "key", key)
}

// SaveWindowConfig stores the current window layout with the cursor
// position to return to.
func (s *Service) SaveWindowConfig(ctx context.Context, key register.Key) {
	defer s.span(ctx, "ops.SaveWindowConfig", key).End()
	layout := s.services.Windows.CurrentWindowLayout()
	s.store.Make(key, register.WindowConfig(layout, s.services.Editor.CurrentPosition()))
}

// SaveFrameConfig stores the current frame layout with the cursor position.
func (s *Service) SaveFrameConfig(ctx context.Context, key register.Key) {
	defer s.span(ctx, "ops.SaveFrameConfig", key).End()
	layout := s.services.Windows.CurrentFrameLayout()
	s.store.Make(key, register.FrameConfig(layout, s.services.Editor.CurrentPosition()))
}

// SaveFileRef stores a direct file reference.
func (s *Service) SaveFileRef(ctx context.Context, key register.Key, path string) {
	defer s.span(ctx, "ops.SaveFileRef", key).End()
	s.store.Make(key, register.FileRef(path))
}

// CopyRegion stores the text between two markers. When delete is true the
// region is removed from the source afterwards.
func (s *Service) CopyRegion(ctx context.Context, key register.Key, start, end host.Marker, delete bool) {
	defer s.span(ctx, "ops.CopyRegion", key).End()
	text := s.services.Editor.ExtractRegion(start, end)
	if delete {
		s.services.Editor.DeleteRegion(start, end)
	}
	s.store.Make(key, register.Text(text))
}

// CopyRectangle stores the rectangular block between two markers. This is
// the only way a rectangle register comes to exist: the kind is assigned
// here, never inferred from a value's shape.
func (s *Service) CopyRectangle(ctx context.Context, key register.Key, start, end host.Marker, delete bool) {
	defer s.span(ctx, "ops.CopyRectangle", key).End()
	lines := s.services.Editor.ExtractRectangle(start, end, delete)
	s.store.Make(key, register.Rectangle(lines))
}

// StoreNumber stores n when given. With a nil n it scans forward from the
// cursor for a decimal literal and stores that, or 0 when none is found.
func (s *Service) StoreNumber(ctx context.Context, key register.Key, n *int) {
	defer s.span(ctx, "ops.StoreNumber", key).End()
	value := 0
	switch {
	case n != nil:
		value = *n
	default:
		if scanned, ok := s.services.Editor.ScanNumberAtPoint(); ok {
			value = scanned
		}
	}
	s.store.Make(key, register.Number(value))
}

// Increment adds delta to a numeric register. The register must exist and
// hold a number; on failure it is left untouched.
func (s *Service) Increment(ctx context.Context, key register.Key, delta int) error {
	defer s.span(ctx, "ops.Increment", key).End()

	r, err := s.store.GetOrFail(key)
	if err != nil {
		return err
	}
	n, ok := r.Value().AsNumber()
	if !ok {
		return fmt.Errorf("register %q: %w", string(key), ErrNotANumber)
	}
	s.store.Put(r.WithValue(register.Number(n + delta)))
	return nil
}

// Append concatenates text after the register's current text. An absent
// register counts as empty text; a present non-text value is an error.
func (s *Service) Append(ctx context.Context, key register.Key, text string) error {
	defer s.span(ctx, "ops.Append", key).End()
	return s.spliceText(key, func(current string) string {
		if current == "" {
			return text
		}
		return current + s.separator + text
	})
}

// Prepend concatenates text before the register's current text.
func (s *Service) Prepend(ctx context.Context, key register.Key, text string) error {
	defer s.span(ctx, "ops.Prepend", key).End()
	return s.spliceText(key, func(current string) string {
		if current == "" {
			return text
		}
		return text + s.separator + current
	})
}

// AppendRegion extracts the region and appends it, optionally deleting it
// from the source.
func (s *Service) AppendRegion(ctx context.Context, key register.Key, start, end host.Marker, delete bool) error {
	text := s.services.Editor.ExtractRegion(start, end)
	if err := s.Append(ctx, key, text); err != nil {
		return err
	}
	if delete {
		s.services.Editor.DeleteRegion(start, end)
	}
	return nil
}

// PrependRegion extracts the region and prepends it, optionally deleting it
// from the source.
func (s *Service) PrependRegion(ctx context.Context, key register.Key, start, end host.Marker, delete bool) error {
	text := s.services.Editor.ExtractRegion(start, end)
	if err := s.Prepend(ctx, key, text); err != nil {
		return err
	}
	if delete {
		s.services.Editor.DeleteRegion(start, end)
	}
	return nil
}

func (s *Service) spliceText(key register.Key, splice func(current string) string) error {
	r, ok := s.store.Get(key)
	if !ok {
		s.store.Make(key, register.Text(splice("")))
		return nil
	}
	current, isText := r.Value().AsText()
	if !isText {
		return fmt.Errorf("register %q: %w", string(key), ErrNotText)
	}
	s.store.Put(r.WithValue(register.Text(splice(current))))
	return nil
}

// SwapOutOnSourceDestroyed replaces every register whose marker is bound to
// the dying source with a deferred file reference capturing the marker's
// position at destruction time. Jumping keeps working after the source is
// gone, behind a reopen confirmation. Never fails; non-matching registers
// are left alone.
func (s *Service) SwapOutOnSourceDestroyed(ctx context.Context, id host.SourceID, path string) {
	defer s.span(ctx, "ops.SwapOut", register.Key("")).End()
	ed := s.services.Editor

	var replacements []register.Register
	s.store.ForEach(func(r register.Register) {
		m, ok := r.Value().AsMarker()
		if !ok || !ed.IsBound(m) {
			return
		}
		src, _ := ed.Source(m)
		if src != id {
			return
		}
		deferred := register.DeferredFileRef(path, ed.Position(m))
		replacements = append(replacements, r.WithValue(deferred))
	})

	for _, r := range replacements {
		s.store.Put(r)
		log.Info(log.CatOps, "marker swapped for deferred file ref",
			"key", r.Key(), "path", path)
	}
}
