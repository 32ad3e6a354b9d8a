// Package dispatch resolves what printing, restoring, or inserting a
// register actually does: a behavior override on the register always wins,
// otherwise the value's kind picks the default.
package dispatch

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/zjrosen/casier/internal/host"
	"github.com/zjrosen/casier/internal/log"
	"github.com/zjrosen/casier/internal/register"
)

var (
	// ErrNoRestoreTarget means the value's kind has no restore semantics.
	ErrNoRestoreTarget = errors.New("register has no restore target")
	// ErrNoInsertableContent means the value's kind has no insert semantics.
	ErrNoInsertableContent = errors.New("register has no insertable content")
	// ErrDeadReference means a marker's source is gone and no deferred
	// reference replaced it.
	ErrDeadReference = errors.New("marker points into a destroyed source")
	// ErrAccessAborted means the user declined a reopen confirmation.
	ErrAccessAborted = errors.New("reopen declined")
)

// Dispatcher executes register behavior against a host.
type Dispatcher struct {
	services host.Services
	desc     register.Descriptor
	tracer   trace.Tracer
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithTerseWidth overrides the terse description width.
func WithTerseWidth(w int) Option {
	return func(d *Dispatcher) { d.desc.TerseWidth = w }
}

// WithTracer attaches a tracer; spans wrap restore and insert.
func WithTracer(t trace.Tracer) Option {
	return func(d *Dispatcher) { d.tracer = t }
}

// New creates a dispatcher over the given host services.
func New(services host.Services, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		services: services,
		desc:     register.NewDescriptor(services.Editor),
		tracer:   noop.NewTracerProvider().Tracer("dispatch"),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Print renders the register's description, terse or verbose. A print
// override bypasses classification entirely.
func (d *Dispatcher) Print(r register.Register, verbose bool) string {
	if f := r.PrintOverride(); f != nil {
		return f(r.Value(), verbose)
	}
	return d.desc.Describe(r.Value(), verbose)
}

// Restore applies the register's value to the host: layouts are reapplied,
// markers jumped to, files opened. Values with no restore semantics fail
// with ErrNoRestoreTarget.
func (d *Dispatcher) Restore(ctx context.Context, r register.Register) error {
	_, span := d.tracer.Start(ctx, "dispatch.Restore",
		trace.WithAttributes(
			attribute.String("register.key", string(r.Key())),
			attribute.String("register.kind", r.Value().Kind().String()),
		))
	defer span.End()

	if f := r.RestoreOverride(); f != nil {
		return f(r.Value())
	}

	v := r.Value()
	switch v.Kind() {
	case register.KindFrameConfig:
		layout, saved, _ := v.AsFrameConfig()
		d.services.Windows.ApplyFrameLayout(layout, false)
		d.jumpIfBound(saved)
		return nil

	case register.KindWindowConfig:
		layout, saved, _ := v.AsWindowConfig()
		d.services.Windows.ApplyWindowLayout(layout)
		d.jumpIfBound(saved)
		return nil

	case register.KindMarker:
		m, _ := v.AsMarker()
		return d.jumpTo(m)

	case register.KindFile:
		path, _ := v.AsFileRef()
		return d.services.Files.Open(path)

	case register.KindDeferredFile:
		return d.restoreDeferred(v)

	default:
		return ErrNoRestoreTarget
	}
}

func (d *Dispatcher) restoreDeferred(v register.Value) error {
	path, offset, _ := v.AsDeferredFileRef()

	if id, ok := d.services.Files.FindOpen(path); ok {
		d.services.Editor.SwitchToSource(id)
		d.services.Editor.MoveTo(offset)
		return nil
	}

	// Blocking query; the operation waits for the answer.
	if !d.services.Files.ConfirmReopen(path) {
		log.Info(log.CatDispatch, "reopen declined", "path", path)
		return ErrAccessAborted
	}
	if err := d.services.Files.Open(path); err != nil {
		return err
	}
	d.services.Editor.MoveTo(offset)
	return nil
}

func (d *Dispatcher) jumpTo(m host.Marker) error {
	ed := d.services.Editor
	if !ed.IsBound(m) {
		return ErrDeadReference
	}
	src, _ := ed.Source(m)
	ed.SwitchToSource(src)
	ed.MoveTo(ed.Position(m))
	return nil
}

// jumpIfBound moves to a layout's saved position when it still exists.
// Layout restoration itself succeeded, so a dead saved position is not an
// error the way it is for a bare marker register.
func (d *Dispatcher) jumpIfBound(m host.Marker) {
	if d.services.Editor.IsBound(m) {
		_ = d.jumpTo(m)
	}
}

// Insert puts the register's content into the host at the cursor and
// returns the inserted payload. Text goes in verbatim, numbers and bound
// marker positions as decimal text, rectangles as a block.
func (d *Dispatcher) Insert(ctx context.Context, r register.Register) (string, error) {
	_, span := d.tracer.Start(ctx, "dispatch.Insert",
		trace.WithAttributes(
			attribute.String("register.key", string(r.Key())),
			attribute.String("register.kind", r.Value().Kind().String()),
		))
	defer span.End()

	if f := r.InsertOverride(); f != nil {
		return f(r.Value())
	}

	v := r.Value()
	switch v.Kind() {
	case register.KindText:
		s, _ := v.AsText()
		d.services.Editor.InsertText(s)
		return s, nil

	case register.KindNumber:
		n, _ := v.AsNumber()
		s := strconv.Itoa(n)
		d.services.Editor.InsertText(s)
		return s, nil

	case register.KindMarker:
		m, _ := v.AsMarker()
		if !d.services.Editor.IsBound(m) {
			return "", ErrNoInsertableContent
		}
		s := strconv.Itoa(d.services.Editor.Position(m))
		d.services.Editor.InsertText(s)
		return s, nil

	case register.KindRectangle:
		lines, _ := v.AsRectangle()
		d.services.Editor.InsertRectangle(lines)
		return strings.Join(lines, "\n"), nil

	default:
		return "", ErrNoInsertableContent
	}
}
