package argparse

// Wrappers are the typed accessors returned by every declaration. They carry
// the configuration surface (before parsing) and the read surface (after),
// while the registries keep ownership of the holders underneath.

// applyShort binds a single-character alias to an already-registered holder
// after checking every namespace the owning parser resolves against.
func applyShort(reg *Registry, p *Parser, h holder, short rune) {
	b := h.base()
	if short == 0 {
		failConfig("short name can't be the zero rune (`%s`)", b.fullName)
	}
	if b.short != 0 {
		failConfig("argument already has a short name (`%s`)", b.fullName)
	}
	reg.checkShort(short)
	if p != nil && p.mergeGlobals {
		p.globals.checkShort(short)
	}
	reg.indexShort(short, h)
}

// FlagArg is the accessor for a declared flag: presence only, counted per
// occurrence, never a payload.
type FlagArg struct {
	h   *flagHolder
	reg *Registry
	p   *Parser // nil for registry-scoped declarations
}

// Short binds a single-character alias to the flag.
func (f *FlagArg) Short(short rune) *FlagArg {
	applyShort(f.reg, f.p, f.h, short)
	return f
}

// Count returns how many times the flag appeared.
func (f *FlagArg) Count() int {
	return f.h.count
}

// IsSet reports whether the flag appeared at least once.
func (f *FlagArg) IsSet() bool {
	return f.h.count > 0
}

// Arg is the accessor for a single-value argument of type T.
type Arg[T any] struct {
	h          *argHolder[T]
	reg        *Registry
	p          *Parser
	positional bool
}

// Short binds a single-character alias to the argument. Positional
// arguments have no names at all, so no short name either.
func (a *Arg[T]) Short(short rune) *Arg[T] {
	if a.positional {
		failConfig("positional arguments can't have a short name (`%s`)", a.h.fullName)
	}
	applyShort(a.reg, a.p, a.h, short)
	return a
}

// Required marks the argument as mandatory; the post-parse check fails when
// no default, environment fallback or token ever supplied a value.
func (a *Arg[T]) Required() *Arg[T] {
	a.h.setRequired()
	return a
}

// Default stores a placeholder value that the first real token overwrites.
func (a *Arg[T]) Default(v T) *Arg[T] {
	a.h.setDefault(v)
	return a
}

// Options restricts the argument to the given values. T needs an equality
// capability, either a comparable type or an EqualsUsing override installed
// beforehand.
func (a *Arg[T]) Options(vs ...T) *Arg[T] {
	a.h.setOptions(vs)
	return a
}

// CastUsing replaces the built-in caster for this argument.
func (a *Arg[T]) CastUsing(fn func(string) (T, error)) *Arg[T] {
	a.h.cast = fn
	return a
}

// EqualsUsing replaces the equality used for Options membership. Install it
// before Options.
func (a *Arg[T]) EqualsUsing(fn func(a, b T) bool) *Arg[T] {
	a.h.eq = fn
	return a
}

// FromEnv names an environment variable consulted at parse start when no
// token supplies a value. Tokens still win; a required argument is
// satisfied by it.
func (a *Arg[T]) FromEnv(key string) *Arg[T] {
	a.h.envKey = key
	return a
}

// HasValue reports whether a default, the environment or a token supplied a
// value.
func (a *Arg[T]) HasValue() bool {
	return a.h.hasValue()
}

// Get returns the value and whether one is present.
func (a *Arg[T]) Get() (T, bool) {
	if !a.h.hasValue() {
		var zero T
		return zero, false
	}
	return a.h.value, true
}

// Value returns the value and panics when none is present; use Get or
// HasValue when absence is a legal state.
func (a *Arg[T]) Value() T {
	v, ok := a.Get()
	if !ok {
		panic(parseErrorf(ErrorTypeConfiguration, "argument has no value (`%s`)", a.h.fullName))
	}
	return v
}

// MultiArg is the accessor for a multi-value argument with element type T.
type MultiArg[T any] struct {
	h   *multiHolder[T]
	reg *Registry
	p   *Parser
}

// Short binds a single-character alias to the argument.
func (m *MultiArg[T]) Short(short rune) *MultiArg[T] {
	applyShort(m.reg, m.p, m.h, short)
	return m
}

// Required marks the argument as mandatory.
func (m *MultiArg[T]) Required() *MultiArg[T] {
	m.h.setRequired()
	return m
}

// Default stores a placeholder list that the first real token discards.
func (m *MultiArg[T]) Default(vs ...T) *MultiArg[T] {
	m.h.setDefault(vs)
	return m
}

// Options restricts every element to the given values.
func (m *MultiArg[T]) Options(vs ...T) *MultiArg[T] {
	m.h.setOptions(vs)
	return m
}

// CastUsing replaces the built-in caster for this argument.
func (m *MultiArg[T]) CastUsing(fn func(string) (T, error)) *MultiArg[T] {
	m.h.cast = fn
	return m
}

// EqualsUsing replaces the equality used for Options membership. Install it
// before Options.
func (m *MultiArg[T]) EqualsUsing(fn func(a, b T) bool) *MultiArg[T] {
	m.h.eq = fn
	return m
}

// FromEnv names an environment variable consulted at parse start when no
// token supplies a value; its value becomes a one-element placeholder list.
func (m *MultiArg[T]) FromEnv(key string) *MultiArg[T] {
	m.h.envKey = key
	return m
}

// HasValue reports whether a default, the environment or a token supplied
// values.
func (m *MultiArg[T]) HasValue() bool {
	return m.h.hasValue()
}

// Values returns the accumulated values in token order. The slice is owned
// by the argument; treat it as read-only.
func (m *MultiArg[T]) Values() []T {
	return m.h.values
}

// Len returns the number of accumulated values.
func (m *MultiArg[T]) Len() int {
	return len(m.h.values)
}

// Empty reports whether no values accumulated.
func (m *MultiArg[T]) Empty() bool {
	return len(m.h.values) == 0
}

// At returns the i-th accumulated value.
func (m *MultiArg[T]) At(i int) T {
	return m.h.values[i]
}
