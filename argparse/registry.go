package argparse

// Registry is a named collection of argument holders: full-name lookup,
// short-name lookup and declaration order for usage rendering. The parser
// owns two (named options and positionals); one more is shared process-wide
// (see Global).
type Registry struct {
	holders    map[string]holder
	shortNames map[rune]string // O(1) short-name resolution
	ordered    []holder        // declaration order, drives usage output
}

// NewRegistry creates an empty Registry. Tests inject one through
// NewParserWithGlobals to keep their global namespace isolated.
func NewRegistry() *Registry {
	return &Registry{
		holders:    make(map[string]holder),
		shortNames: make(map[rune]string),
	}
}

// AddFlag declares a presence flag (repetition-counted, no payload) on the
// registry and returns its accessor.
func (r *Registry) AddFlag(name, help string) *FlagArg {
	r.checkEntry(name)
	h := &flagHolder{holderBase: holderBase{fullName: name, help: help}}
	r.register(h)
	return &FlagArg{h: h, reg: r}
}

// AddArgTo declares a single-value argument of type T on the registry.
func AddArgTo[T any](r *Registry, name, help string) *Arg[T] {
	r.checkEntry(name)
	h := newArgHolder[T](name, help)
	r.register(h)
	return &Arg[T]{h: h, reg: r}
}

// AddMultiArgTo declares a multi-value argument of element type T on the
// registry.
func AddMultiArgTo[T any](r *Registry, name, help string) *MultiArg[T] {
	r.checkEntry(name)
	h := newMultiHolder[T](name, help)
	r.register(h)
	return &MultiArg[T]{h: h, reg: r}
}

// checkEntry rejects names the registry can't accept: empty, reserved, or
// already taken.
func (r *Registry) checkEntry(name string) {
	if name == "" {
		failConfig("argument name can't be empty")
	}
	if name == helpName {
		failConfig("`%s` is a predefined option", helpName)
	}
	if _, taken := r.holders[name]; taken {
		failConfig("argument is already defined (`%s`)", name)
	}
}

// checkShort rejects an already-mapped short name.
func (r *Registry) checkShort(short rune) {
	if owner, taken := r.shortNames[short]; taken {
		failConfig("argument with shortname is already defined (`%c`), used by `%s`", short, owner)
	}
}

func (r *Registry) register(h holder) {
	r.holders[h.base().fullName] = h
	r.ordered = append(r.ordered, h)
}

// indexShort binds an already-registered holder to a short name. Callers
// have run the uniqueness checks for every visible namespace.
func (r *Registry) indexShort(short rune, h holder) {
	h.base().short = short
	r.shortNames[short] = h.base().fullName
}

// holderByFullName returns the holder registered under name, nil on miss.
func (r *Registry) holderByFullName(name string) holder {
	return r.holders[name]
}

// holderByShortName returns the holder mapped to the short rune, nil on miss.
func (r *Registry) holderByShortName(short rune) holder {
	if name, ok := r.shortNames[short]; ok {
		return r.holders[name]
	}
	return nil
}

// applyEnv runs the environment fallback over every holder, declaration
// order, first failure wins.
func (r *Registry) applyEnv() error {
	for _, h := range r.ordered {
		if err := h.applyEnv(); err != nil {
			return err
		}
	}
	return nil
}

// postParseCheck reports the first required holder that the finished scan
// left without a value.
func (r *Registry) postParseCheck() error {
	for _, h := range r.ordered {
		b := h.base()
		if b.required && !h.hasValue() {
			return parseErrorf(ErrorTypePostParse, "no value provided for option `%s`", b.fullName).WithArg(b.fullName)
		}
	}
	return nil
}

// names returns every registered full name, declaration order. Feeds the
// suggestion engine and the usage renderer.
func (r *Registry) names() []string {
	out := make([]string, 0, len(r.ordered))
	for _, h := range r.ordered {
		out = append(out, h.base().fullName)
	}
	return out
}

func (r *Registry) size() int {
	return len(r.ordered)
}
