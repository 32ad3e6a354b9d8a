package register

// Key addresses a register in the store. Conventionally a single character,
// but nothing here assumes that.
type Key string

// PrintFunc overrides how a register describes itself. It receives the value
// and the verbose flag and returns the rendered description.
type PrintFunc func(v Value, verbose bool) string

// RestoreFunc overrides what restoring a register does.
type RestoreFunc func(v Value) error

// InsertFunc overrides what inserting a register does. It returns the
// payload that was inserted.
type InsertFunc func(v Value) (string, error)

// Register pairs a key with a value and optional behavior overrides. Its
// fields are fixed at construction; updating a register means building a new
// one and replacing the old under the same key.
type Register struct {
	key     Key
	value   Value
	print   PrintFunc
	restore RestoreFunc
	insert  InsertFunc
}

// Option configures behavior overrides during construction.
type Option func(*Register)

// WithPrint sets a print behavior override.
func WithPrint(f PrintFunc) Option {
	return func(r *Register) { r.print = f }
}

// WithRestore sets a restore behavior override.
func WithRestore(f RestoreFunc) Option {
	return func(r *Register) { r.restore = f }
}

// WithInsert sets an insert behavior override.
func WithInsert(f InsertFunc) Option {
	return func(r *Register) { r.insert = f }
}

// New builds a register. Callers normally go through Store.Make so that
// construction and registration are one step.
func New(key Key, v Value, opts ...Option) Register {
	r := Register{key: key, value: v}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

// Key returns the register's key.
func (r Register) Key() Key { return r.key }

// Value returns the stored value.
func (r Register) Value() Value { return r.value }

// PrintOverride returns the print behavior override, nil when absent.
func (r Register) PrintOverride() PrintFunc { return r.print }

// RestoreOverride returns the restore behavior override, nil when absent.
func (r Register) RestoreOverride() RestoreFunc { return r.restore }

// InsertOverride returns the insert behavior override, nil when absent.
func (r Register) InsertOverride() InsertFunc { return r.insert }

// WithValue returns a copy of the register holding a different value. The
// behavior overrides carry over; the original is untouched.
func (r Register) WithValue(v Value) Register {
	r.value = v
	return r
}
