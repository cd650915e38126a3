package argparse

import (
	"encoding"
	"reflect"
	"strconv"
	"strings"
	"unicode"
)

var textUnmarshalerType = reflect.TypeOf((*encoding.TextUnmarshaler)(nil)).Elem()

// Bind declares one argument per exported field of the struct dest points
// to and schedules write-back for after a successful parse:
//
//	type serveFlags struct {
//		Host    string   `flag:"host" short:"H" help:"bind address" default:"127.0.0.1"`
//		Port    int      `flag:"port" env:"SERVE_PORT" required:"true"`
//		Mode    string   `flag:"mode" options:"dev,prod"`
//		Verbose bool     `flag:"verbose" short:"v"`
//		Level   int      `flag:"level" count:"true"`
//		Tags    []string `flag:"tag" help:"may repeat"`
//	}
//
// A missing flag tag derives the name from the field (RPCPort becomes
// rpc-port); flag:"-" skips the field. bool fields become flags, int fields
// with count:"true" become repetition counters, scalar and slice fields
// become single- and multi-value arguments. A field whose pointer type
// implements encoding.TextUnmarshaler parses through UnmarshalText.
// Malformed tags and unsupported field types are configuration errors.
func Bind(p *Parser, dest any) {
	v := reflect.ValueOf(dest)
	if !v.IsValid() || v.Kind() != reflect.Pointer || v.IsNil() || v.Elem().Kind() != reflect.Struct {
		failConfig("bind destination must be a non-nil pointer to a struct")
	}
	sv := v.Elem()
	st := sv.Type()
	for i := 0; i < st.NumField(); i++ {
		field := st.Field(i)
		if !field.IsExported() || field.Tag.Get("flag") == "-" {
			continue
		}
		bindField(p, field, sv.Field(i))
	}
}

// tagSpec is one field's parsed tag set.
type tagSpec struct {
	name       string
	help       string
	env        string
	options    string
	defaultVal string
	hasDefault bool
	short      rune
	required   bool
	count      bool
}

func parseTagSpec(field reflect.StructField) tagSpec {
	spec := tagSpec{
		name: field.Tag.Get("flag"),
		help: field.Tag.Get("help"),
		env:  field.Tag.Get("env"),
	}
	if spec.name == "" {
		spec.name = fieldNameToFlag(field.Name)
	}
	spec.options = field.Tag.Get("options")
	spec.defaultVal, spec.hasDefault = field.Tag.Lookup("default")

	if shortTag, ok := field.Tag.Lookup("short"); ok {
		runes := []rune(shortTag)
		if len(runes) != 1 {
			failConfig("short tag must be a single character (field %s)", field.Name)
		}
		spec.short = runes[0]
	}
	spec.required = parseBoolTag(field, "required")
	spec.count = parseBoolTag(field, "count")
	return spec
}

func parseBoolTag(field reflect.StructField, tag string) bool {
	raw, ok := field.Tag.Lookup(tag)
	if !ok {
		return false
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		failConfig("invalid %s tag on field %s: %q", tag, field.Name, raw)
	}
	return b
}

func bindField(p *Parser, field reflect.StructField, fv reflect.Value) {
	spec := parseTagSpec(field)

	if spec.count {
		if field.Type.Kind() != reflect.Int {
			failConfig("count tag requires an int field (field %s)", field.Name)
		}
		f := bindFlag(p, field, spec)
		p.binders = append(p.binders, func() error {
			fv.SetInt(int64(f.Count()))
			return nil
		})
		return
	}

	if field.Type.Kind() == reflect.Bool {
		f := bindFlag(p, field, spec)
		p.binders = append(p.binders, func() error {
			fv.SetBool(f.IsSet())
			return nil
		})
		return
	}

	if reflect.PointerTo(field.Type).Implements(textUnmarshalerType) {
		bindTextUnmarshaler(p, field, fv, spec)
		return
	}

	if field.Type.Kind() == reflect.Slice {
		bindSlice(p, field, fv, spec)
		return
	}

	switch field.Type.Kind() {
	case reflect.String:
		bindScalar[string](p, fv, spec)
	case reflect.Int:
		bindScalar[int](p, fv, spec)
	case reflect.Int8:
		bindScalar[int8](p, fv, spec)
	case reflect.Int16:
		bindScalar[int16](p, fv, spec)
	case reflect.Int32:
		bindScalar[int32](p, fv, spec)
	case reflect.Int64:
		bindScalar[int64](p, fv, spec)
	case reflect.Uint:
		bindScalar[uint](p, fv, spec)
	case reflect.Uint8:
		bindScalar[uint8](p, fv, spec)
	case reflect.Uint16:
		bindScalar[uint16](p, fv, spec)
	case reflect.Uint32:
		bindScalar[uint32](p, fv, spec)
	case reflect.Uint64:
		bindScalar[uint64](p, fv, spec)
	case reflect.Float32:
		bindScalar[float32](p, fv, spec)
	case reflect.Float64:
		bindScalar[float64](p, fv, spec)
	default:
		failConfig("unsupported bind field type %s (field %s)", field.Type, field.Name)
	}
}

// bindFlag handles the two flag-backed shapes, bool and counted int. Flags
// carry no payload, so the value-oriented tags are rejected outright.
func bindFlag(p *Parser, field reflect.StructField, spec tagSpec) *FlagArg {
	if spec.env != "" {
		failConfig("env tag is not supported for flag fields (field %s)", field.Name)
	}
	if spec.hasDefault {
		failConfig("default tag is not supported for flag fields (field %s)", field.Name)
	}
	if spec.options != "" {
		failConfig("options tag is not supported for flag fields (field %s)", field.Name)
	}
	if spec.required {
		failConfig("required tag is not supported for flag fields (field %s)", field.Name)
	}
	f := p.AddFlag(spec.name, spec.help)
	if spec.short != 0 {
		f.Short(spec.short)
	}
	return f
}

func bindScalar[T any](p *Parser, fv reflect.Value, spec tagSpec) {
	a := AddArg[T](p, spec.name, spec.help)
	applyValueTags(a, spec)
	p.binders = append(p.binders, func() error {
		if v, ok := a.Get(); ok {
			fv.Set(reflect.ValueOf(v).Convert(fv.Type()))
		}
		return nil
	})
}

// applyValueTags configures a single-value argument from its tag set.
// Options comes before Default so a tagged default is validated against the
// tagged options.
func applyValueTags[T any](a *Arg[T], spec tagSpec) {
	if spec.short != 0 {
		a.Short(spec.short)
	}
	if spec.options != "" {
		a.Options(castTagList[T](spec.name, spec.options)...)
	}
	if spec.hasDefault {
		a.Default(castTagValue[T](spec.name, spec.defaultVal))
	}
	if spec.required {
		a.Required()
	}
	if spec.env != "" {
		a.FromEnv(spec.env)
	}
}

func bindSlice(p *Parser, field reflect.StructField, fv reflect.Value, spec tagSpec) {
	switch field.Type.Elem() {
	case reflect.TypeOf(""):
		bindMulti[string](p, fv, spec)
	case reflect.TypeOf(int(0)):
		bindMulti[int](p, fv, spec)
	case reflect.TypeOf(int64(0)):
		bindMulti[int64](p, fv, spec)
	case reflect.TypeOf(uint(0)):
		bindMulti[uint](p, fv, spec)
	case reflect.TypeOf(uint64(0)):
		bindMulti[uint64](p, fv, spec)
	case reflect.TypeOf(float64(0)):
		bindMulti[float64](p, fv, spec)
	default:
		failConfig("unsupported bind slice element type %s (field %s)", field.Type.Elem(), field.Name)
	}
}

func bindMulti[T any](p *Parser, fv reflect.Value, spec tagSpec) {
	m := AddMultiArg[T](p, spec.name, spec.help)
	if spec.short != 0 {
		m.Short(spec.short)
	}
	if spec.options != "" {
		m.Options(castTagList[T](spec.name, spec.options)...)
	}
	if spec.hasDefault {
		m.Default(castTagList[T](spec.name, spec.defaultVal)...)
	}
	if spec.required {
		m.Required()
	}
	if spec.env != "" {
		m.FromEnv(spec.env)
	}
	p.binders = append(p.binders, func() error {
		if m.HasValue() {
			fv.Set(reflect.ValueOf(append([]T(nil), m.Values()...)))
		}
		return nil
	})
}

// bindTextUnmarshaler declares a string argument whose caster validates the
// token by unmarshaling into a scratch value, then unmarshals into the real
// field after the parse.
func bindTextUnmarshaler(p *Parser, field reflect.StructField, fv reflect.Value, spec tagSpec) {
	validate := func(token string) (string, error) {
		scratch := reflect.New(field.Type)
		if err := scratch.Interface().(encoding.TextUnmarshaler).UnmarshalText([]byte(token)); err != nil {
			return "", err
		}
		return token, nil
	}

	a := AddArg[string](p, spec.name, spec.help).CastUsing(validate)
	if spec.short != 0 {
		a.Short(spec.short)
	}
	if spec.options != "" {
		a.Options(strings.Split(spec.options, ",")...)
	}
	if spec.hasDefault {
		if _, err := validate(spec.defaultVal); err != nil {
			failConfig("invalid default value in bind tag (`%s`): %v", spec.name, err)
		}
		a.Default(spec.defaultVal)
	}
	if spec.required {
		a.Required()
	}
	if spec.env != "" {
		a.FromEnv(spec.env)
	}

	p.binders = append(p.binders, func() error {
		raw, ok := a.Get()
		if !ok {
			return nil
		}
		if err := fv.Addr().Interface().(encoding.TextUnmarshaler).UnmarshalText([]byte(raw)); err != nil {
			return parseErrorf(ErrorTypeSemantic,
				"failed to cast argument string to value type (`%s`): %v", spec.name, err).
				WithArg(spec.name).WithCause(err)
		}
		return nil
	})
}

func castTagValue[T any](name, raw string) T {
	v, err := Cast[T](raw)
	if err != nil {
		failConfig("invalid default value in bind tag (`%s`): %v", name, err)
	}
	return v
}

func castTagList[T any](name, raw string) []T {
	parts := strings.Split(raw, ",")
	out := make([]T, 0, len(parts))
	for _, part := range parts {
		v, err := Cast[T](strings.TrimSpace(part))
		if err != nil {
			failConfig("invalid value list in bind tag (`%s`): %v", name, err)
		}
		out = append(out, v)
	}
	return out
}

// fieldNameToFlag derives a kebab-case flag name from a Go field name:
// RPCPort becomes rpc-port, AllLocal becomes all-local.
func fieldNameToFlag(name string) string {
	var b strings.Builder
	runes := []rune(name)
	for i, r := range runes {
		if unicode.IsUpper(r) {
			boundary := i > 0 && (!unicode.IsUpper(runes[i-1]) ||
				(i+1 < len(runes) && unicode.IsLower(runes[i+1])))
			if boundary {
				b.WriteByte('-')
			}
			b.WriteRune(unicode.ToLower(r))
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}
