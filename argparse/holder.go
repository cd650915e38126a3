package argparse

import (
	"fmt"
	"os"
	"strings"
)

// holder is the closed variant set behind every declared argument: flag,
// single-value and multi-value. Registries own holders; wrappers give
// callers typed access to them. All mutation after registration happens
// through processFlag/processValue during the scan.
type holder interface {
	base() *holderBase
	hasValue() bool
	requiresValue() bool
	processFlag() error
	processValue(token string) error
	applyEnv() error
}

// holderBase carries the identity and constraints shared by all variants.
type holderBase struct {
	fullName string
	short    rune // 0 means no short name
	help     string
	required bool
	envKey   string

	// Pre-rendered constraint descriptions for usage output, captured at
	// configuration time so rendering never needs the element type.
	defaultDesc string
	optionsDesc string
}

func (b *holderBase) base() *holderBase { return b }

// Flag variant: presence counter, no payload.

type flagHolder struct {
	holderBase
	count int
}

func (h *flagHolder) hasValue() bool      { return true }
func (h *flagHolder) requiresValue() bool { return false }

func (h *flagHolder) processFlag() error {
	h.count++
	return nil
}

func (h *flagHolder) processValue(string) error {
	return parseErrorf(ErrorTypeSyntax, "flags don't accept values (`%s`)", h.fullName).WithArg(h.fullName)
}

func (h *flagHolder) applyEnv() error { return nil }

// Single-value variant.

type argHolder[T any] struct {
	holderBase
	cast    func(string) (T, error)
	eq      func(a, b T) bool // nil when T lacks equality and no override was set
	options []T
	value   T

	// State machine: unset -> defaulted -> set. A default (or an
	// environment fallback) is a placeholder the first real token
	// overwrites; a second real token is an error.
	set       bool
	defaulted bool
}

func newArgHolder[T any](name string, help string) *argHolder[T] {
	return &argHolder[T]{
		holderBase: holderBase{fullName: name, help: help},
		cast:       Cast[T],
		eq:         equalsFor[T](),
	}
}

func (h *argHolder[T]) hasValue() bool      { return h.set || h.defaulted }
func (h *argHolder[T]) requiresValue() bool { return true }

func (h *argHolder[T]) processFlag() error {
	return parseErrorf(ErrorTypeSyntax, "argument requires a value (`%s`)", h.fullName).WithArg(h.fullName)
}

func (h *argHolder[T]) processValue(token string) error {
	if h.set {
		return parseErrorf(ErrorTypeSemantic, "argument accepts only one value (`%s`)", h.fullName).WithArg(h.fullName)
	}
	v, err := h.cast(token)
	if err != nil {
		return parseErrorf(ErrorTypeSemantic,
			"failed to cast argument string to value type (`%s`): %v", h.fullName, err).
			WithArg(h.fullName).WithCause(err)
	}
	if len(h.options) > 0 && !isValidValue(h.eq, v, h.options) {
		return parseErrorf(ErrorTypeSemantic,
			"provided argument string casts to an illegal value (`%s`)", h.fullName).WithArg(h.fullName)
	}
	h.value = v
	h.set = true
	h.defaulted = false
	return nil
}

func (h *argHolder[T]) applyEnv() error {
	if h.envKey == "" || h.set {
		return nil
	}
	raw, ok := os.LookupEnv(h.envKey)
	if !ok || raw == "" {
		return nil
	}
	v, err := h.cast(raw)
	if err != nil {
		return parseErrorf(ErrorTypeSemantic,
			"failed to cast environment variable to value type (`%s`): %v", h.envKey, err).
			WithArg(h.fullName).WithCause(err)
	}
	if len(h.options) > 0 && !isValidValue(h.eq, v, h.options) {
		return parseErrorf(ErrorTypeSemantic,
			"environment variable casts to an illegal value (`%s`)", h.envKey).WithArg(h.fullName)
	}
	h.value = v
	h.defaulted = true
	return nil
}

func (h *argHolder[T]) setRequired() {
	if h.hasValue() {
		failConfig("argument with a default value can't be required (`%s`)", h.fullName)
	}
	h.required = true
}

func (h *argHolder[T]) setDefault(v T) {
	if h.required {
		failConfig("required argument can't have a default value (`%s`)", h.fullName)
	}
	if len(h.options) > 0 && !isValidValue(h.eq, v, h.options) {
		failConfig("default value is not among the valid options (`%s`)", h.fullName)
	}
	h.value = v
	h.defaulted = true
	h.defaultDesc = formatValue(v)
}

func (h *argHolder[T]) setOptions(vs []T) {
	if len(vs) == 0 {
		failConfig("set of options can't be empty (`%s`)", h.fullName)
	}
	if h.eq == nil {
		failConfig("no equality defined for the argument type (`%s`)", h.fullName)
	}
	if h.hasValue() && !isValidValue(h.eq, h.value, vs) {
		failConfig("default value is not among the valid options (`%s`)", h.fullName)
	}
	h.options = vs
	h.optionsDesc = formatValues(vs)
}

// Multi-value variant.

type multiHolder[T any] struct {
	holderBase
	cast    func(string) (T, error)
	eq      func(a, b T) bool
	options []T
	values  []T

	set       bool
	defaulted bool
}

func newMultiHolder[T any](name string, help string) *multiHolder[T] {
	return &multiHolder[T]{
		holderBase: holderBase{fullName: name, help: help},
		cast:       Cast[T],
		eq:         equalsFor[T](),
	}
}

func (h *multiHolder[T]) hasValue() bool      { return h.set || h.defaulted }
func (h *multiHolder[T]) requiresValue() bool { return true }

func (h *multiHolder[T]) processFlag() error {
	// The reset half of value processing: a still-defaulted container is
	// cleared, nothing is appended.
	if h.defaulted && !h.set {
		h.values = nil
		h.defaulted = false
		h.set = true
	}
	return nil
}

func (h *multiHolder[T]) processValue(token string) error {
	// The default list is a placeholder; drop it before the first real
	// value is even cast.
	if h.defaulted && !h.set {
		h.values = nil
		h.defaulted = false
	}
	v, err := h.cast(token)
	if err != nil {
		return parseErrorf(ErrorTypeSemantic,
			"failed to cast argument string to value type (`%s`): %v", h.fullName, err).
			WithArg(h.fullName).WithCause(err)
	}
	if len(h.options) > 0 && !isValidValue(h.eq, v, h.options) {
		return parseErrorf(ErrorTypeSemantic,
			"provided argument string casts to an illegal value (`%s`)", h.fullName).WithArg(h.fullName)
	}
	h.values = append(h.values, v)
	h.set = true
	return nil
}

func (h *multiHolder[T]) applyEnv() error {
	if h.envKey == "" || h.set {
		return nil
	}
	raw, ok := os.LookupEnv(h.envKey)
	if !ok || raw == "" {
		return nil
	}
	v, err := h.cast(raw)
	if err != nil {
		return parseErrorf(ErrorTypeSemantic,
			"failed to cast environment variable to value type (`%s`): %v", h.envKey, err).
			WithArg(h.fullName).WithCause(err)
	}
	if len(h.options) > 0 && !isValidValue(h.eq, v, h.options) {
		return parseErrorf(ErrorTypeSemantic,
			"environment variable casts to an illegal value (`%s`)", h.envKey).WithArg(h.fullName)
	}
	h.values = []T{v}
	h.defaulted = true
	return nil
}

func (h *multiHolder[T]) setRequired() {
	if h.hasValue() {
		failConfig("argument with a default value can't be required (`%s`)", h.fullName)
	}
	h.required = true
}

func (h *multiHolder[T]) setDefault(vs []T) {
	if h.required {
		failConfig("required argument can't have a default value (`%s`)", h.fullName)
	}
	if len(h.options) > 0 {
		for _, v := range vs {
			if !isValidValue(h.eq, v, h.options) {
				failConfig("default value is not among the valid options (`%s`)", h.fullName)
			}
		}
	}
	h.values = append([]T(nil), vs...)
	h.defaulted = true
	h.defaultDesc = formatValues(vs)
}

func (h *multiHolder[T]) setOptions(vs []T) {
	if len(vs) == 0 {
		failConfig("set of options can't be empty (`%s`)", h.fullName)
	}
	if h.eq == nil {
		failConfig("no equality defined for the argument type (`%s`)", h.fullName)
	}
	if h.hasValue() {
		for _, v := range h.values {
			if !isValidValue(h.eq, v, vs) {
				failConfig("contained values are not among the valid options (`%s`)", h.fullName)
			}
		}
	}
	h.options = vs
	h.optionsDesc = formatValues(vs)
}

// formatValue renders a configured default for usage output.
func formatValue(v any) string {
	return fmt.Sprintf("%v", v)
}

// formatValues renders a value list as "a, b, c" for usage output.
func formatValues[T any](vs []T) string {
	parts := make([]string, len(vs))
	for i, v := range vs {
		parts[i] = fmt.Sprintf("%v", v)
	}
	return strings.Join(parts, ", ")
}
