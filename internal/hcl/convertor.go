package hcl

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"strings"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/zclconf/go-cty/cty/gocty"

	"github.com/vk/lmfeatures/internal/config"
	"github.com/vk/lmfeatures/internal/ctxlog"
)

// FieldTag is the struct tag binding a Go field to its declared feature name.
const FieldTag = "lmf"

// Converter is the HCL-side implementation of config.Converter. It holds the
// loaded catalog model so enum references can be resolved during binding.
type Converter struct {
	model *config.Model
}

// NewConverter creates a converter bound to the given catalog model.
func NewConverter(model *config.Model) *Converter {
	return &Converter{model: model}
}

// DecodeRecord coerces a raw record into the target struct, which must be a
// non-nil pointer to the Go type registered for the class. Field-level
// failures are accumulated so a caller sees every problem in one pass.
func (c *Converter) DecodeRecord(ctx context.Context, target any, raw map[string]any, class *config.ClassDefinition) error {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Decoding raw record.", "class", class.Name, "raw_keys", len(raw))

	fields, err := taggedFields(target)
	if err != nil {
		return err
	}

	var errs *multierror.Error

	// The declared schema is closed: a raw key outside it is a mistake in
	// the producing pipeline, not something to silently drop.
	for key := range raw {
		if _, declared := class.Fields[key]; !declared {
			errs = multierror.Append(errs, fmt.Errorf("record key %q is not declared on class %q", key, class.Name))
		}
	}

	for _, def := range class.OrderedFields() {
		fieldVal, bound := fields[def.Name]
		if !bound {
			errs = multierror.Append(errs, fmt.Errorf("class %q: no Go field is tagged for feature %q", class.Name, def.Name))
			continue
		}

		rawVal, provided := raw[def.Name]
		if !provided {
			if def.Default != nil {
				if err := c.applyDefault(def, fieldVal); err != nil {
					errs = multierror.Append(errs, fmt.Errorf("feature %q: %w", def.Name, err))
				}
				continue
			}
			if !def.Optional {
				errs = multierror.Append(errs, fmt.Errorf("missing required feature %q", def.Name))
			}
			// Optional without a default keeps the zero value.
			continue
		}

		if err := c.coerce(def, rawVal, fieldVal); err != nil {
			errs = multierror.Append(errs, fmt.Errorf("feature %q: %w", def.Name, err))
		}
	}

	return errs.ErrorOrNil()
}

// EncodeRecord renders an instance back into its canonical raw form: enum
// members as wire strings, timestamps as RFC 3339.
func (c *Converter) EncodeRecord(ctx context.Context, instance any, class *config.ClassDefinition) (map[string]any, error) {
	fields, err := taggedFields(instance)
	if err != nil {
		return nil, err
	}

	out := make(map[string]any, len(class.Fields))
	for _, def := range class.OrderedFields() {
		fieldVal, bound := fields[def.Name]
		if !bound {
			return nil, fmt.Errorf("class %q: no Go field is tagged for feature %q", class.Name, def.Name)
		}

		switch def.Type.Kind {
		case config.KindString, config.KindEnum:
			out[def.Name] = fieldVal.String()
		case config.KindInt:
			out[def.Name] = fieldVal.Int()
		case config.KindFloat:
			out[def.Name] = fieldVal.Float()
		case config.KindBool:
			out[def.Name] = fieldVal.Bool()
		case config.KindTimestamp:
			t, ok := fieldVal.Interface().(time.Time)
			if !ok {
				return nil, fmt.Errorf("feature %q: Go field is not a time.Time", def.Name)
			}
			out[def.Name] = t.Format(time.RFC3339)
		default:
			return nil, fmt.Errorf("feature %q: invalid semantic type", def.Name)
		}
	}
	return out, nil
}

// taggedFields maps declared feature names to settable struct field values
// via the lmf tag. The target must be a non-nil pointer to a struct.
func taggedFields(target any) (map[string]reflect.Value, error) {
	v := reflect.ValueOf(target)
	if v.Kind() != reflect.Ptr || v.IsNil() {
		return nil, fmt.Errorf("record target must be a non-nil pointer, got %T", target)
	}
	v = v.Elem()
	if v.Kind() != reflect.Struct {
		return nil, fmt.Errorf("record target must point to a struct, got %T", target)
	}

	fields := make(map[string]reflect.Value)
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}
		tag := field.Tag.Get(FieldTag)
		name := strings.Split(tag, ",")[0]
		if name == "" || name == "-" {
			continue
		}
		fields[name] = v.Field(i)
	}
	return fields, nil
}

// coerce converts one raw value into the Go field according to the feature's
// semantic type.
func (c *Converter) coerce(def *config.FieldDefinition, rawVal any, fieldVal reflect.Value) error {
	switch def.Type.Kind {
	case config.KindString:
		s, ok := rawVal.(string)
		if !ok {
			return fmt.Errorf("expected string, got %T", rawVal)
		}
		if fieldVal.Kind() != reflect.String {
			return fmt.Errorf("Go field kind %s cannot hold a string", fieldVal.Kind())
		}
		fieldVal.SetString(s)
		return nil

	case config.KindInt:
		f, ok := rawNumber(rawVal)
		if !ok {
			return fmt.Errorf("expected number, got %T", rawVal)
		}
		if f != math.Trunc(f) {
			return fmt.Errorf("expected integer, got %v", rawVal)
		}
		n := int64(f)
		if fieldVal.Kind() != reflect.Int && fieldVal.Kind() != reflect.Int64 {
			return fmt.Errorf("Go field kind %s cannot hold an int", fieldVal.Kind())
		}
		if fieldVal.OverflowInt(n) {
			return fmt.Errorf("value %d overflows Go field", n)
		}
		fieldVal.SetInt(n)
		return nil

	case config.KindFloat:
		f, ok := rawNumber(rawVal)
		if !ok {
			return fmt.Errorf("expected number, got %T", rawVal)
		}
		if fieldVal.Kind() != reflect.Float64 {
			return fmt.Errorf("Go field kind %s cannot hold a float", fieldVal.Kind())
		}
		fieldVal.SetFloat(f)
		return nil

	case config.KindBool:
		b, ok := rawVal.(bool)
		if !ok {
			return fmt.Errorf("expected bool, got %T", rawVal)
		}
		if fieldVal.Kind() != reflect.Bool {
			return fmt.Errorf("Go field kind %s cannot hold a bool", fieldVal.Kind())
		}
		fieldVal.SetBool(b)
		return nil

	case config.KindTimestamp:
		s, ok := rawVal.(string)
		if !ok {
			return fmt.Errorf("expected RFC 3339 string, got %T", rawVal)
		}
		t, err := time.Parse(time.RFC3339, s)
		if err != nil {
			return fmt.Errorf("invalid timestamp %q: %w", s, err)
		}
		if fieldVal.Type() != reflect.TypeOf(time.Time{}) {
			return fmt.Errorf("Go field type %s cannot hold a timestamp", fieldVal.Type())
		}
		fieldVal.Set(reflect.ValueOf(t))
		return nil

	case config.KindEnum:
		s, ok := rawVal.(string)
		if !ok {
			return fmt.Errorf("expected enum wire string, got %T", rawVal)
		}
		enum, ok := c.model.Enums[def.Type.EnumName]
		if !ok {
			return fmt.Errorf("references undeclared enum %q", def.Type.EnumName)
		}
		member, ok := enum.MemberByWire(s)
		if !ok {
			return fmt.Errorf("%q is not a member of enum %q (permitted: %s)",
				s, enum.Name, strings.Join(enum.Wires(), ", "))
		}
		if fieldVal.Kind() != reflect.String {
			return fmt.Errorf("Go field kind %s cannot hold enum %q", fieldVal.Kind(), enum.Name)
		}
		fieldVal.Set(reflect.ValueOf(member.Wire).Convert(fieldVal.Type()))
		return nil

	default:
		return fmt.Errorf("invalid semantic type")
	}
}

// rawNumber normalises the numeric representations a raw record may carry
// after JSON decoding.
func rawNumber(rawVal any) (float64, bool) {
	switch v := rawVal.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

// applyDefault writes a declared default into the Go field. Defaults are
// cty values validated against the field type at load time.
func (c *Converter) applyDefault(def *config.FieldDefinition, fieldVal reflect.Value) error {
	val := *def.Default

	switch def.Type.Kind {
	case config.KindString, config.KindEnum:
		if fieldVal.Kind() != reflect.String {
			return fmt.Errorf("Go field kind %s cannot hold a string default", fieldVal.Kind())
		}
		fieldVal.Set(reflect.ValueOf(val.AsString()).Convert(fieldVal.Type()))
		return nil
	case config.KindInt:
		var n int64
		if err := gocty.FromCtyValue(val, &n); err != nil {
			return fmt.Errorf("cannot apply default: %w", err)
		}
		fieldVal.SetInt(n)
		return nil
	case config.KindFloat:
		var f float64
		if err := gocty.FromCtyValue(val, &f); err != nil {
			return fmt.Errorf("cannot apply default: %w", err)
		}
		fieldVal.SetFloat(f)
		return nil
	case config.KindBool:
		fieldVal.SetBool(val.True())
		return nil
	case config.KindTimestamp:
		t, err := time.Parse(time.RFC3339, val.AsString())
		if err != nil {
			return fmt.Errorf("invalid timestamp default: %w", err)
		}
		fieldVal.Set(reflect.ValueOf(t))
		return nil
	default:
		return fmt.Errorf("invalid semantic type")
	}
}
