package registry

import (
	"context"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/samber/lo"

	"github.com/vk/lmfeatures/internal/config"
	"github.com/vk/lmfeatures/internal/ctxlog"
)

// uidSuffix marks identifier features; their type is pinned to string so
// documentation-level linkages stay type-compatible across classes.
const uidSuffix = "_uid"

// ValidateRegistry performs a strict parity and consistency check between
// the loaded declarations and the compiled Go code. All findings are
// accumulated so one run reports every problem.
func (r *Registry) ValidateRegistry(ctx context.Context) error {
	logger := ctxlog.FromContext(ctx)
	var errs *multierror.Error

	classNames := r.ClassNames()
	logger.Debug("Validating registry.", "classes", len(classNames), "enums", len(r.EnumDefinitionRegistry))

	for _, name := range lo.Keys(r.ClassRegistry) {
		if _, ok := r.ClassDefinitionRegistry[name]; !ok {
			errs = multierror.Append(errs, fmt.Errorf("class %q: Go struct registered but no manifest declares it", name))
		}
	}

	for _, name := range classNames {
		def := r.ClassDefinitionRegistry[name]
		errs = multierror.Append(errs, r.validateClassShape(def)...)

		rc, ok := r.ClassRegistry[name]
		if !ok {
			errs = multierror.Append(errs, fmt.Errorf("class %q: declared in a manifest but no Go struct is registered", name))
			continue
		}
		errs = multierror.Append(errs, r.validateClassParity(def, rc)...)
	}

	for _, name := range lo.Keys(r.EnumRegistry) {
		if _, ok := r.EnumDefinitionRegistry[name]; !ok {
			errs = multierror.Append(errs, fmt.Errorf("enum %q: Go type registered but no manifest declares it", name))
		}
	}

	for _, name := range r.EnumNames() {
		errs = multierror.Append(errs, r.validateEnum(name)...)
	}

	return errs.ErrorOrNil()
}

// validateClassShape checks the declaration itself, independent of Go code:
// a non-empty field set, string-typed identifiers, exactly one key field,
// and resolvable documentation-level linkages.
func (r *Registry) validateClassShape(def *config.ClassDefinition) []error {
	var errs []error

	if len(def.FieldOrder) == 0 {
		errs = append(errs, fmt.Errorf("class %q: declares no features", def.Name))
		return errs
	}

	keyCount := 0
	for _, field := range def.OrderedFields() {
		if strings.HasSuffix(field.Name, uidSuffix) && field.Type.Kind != config.KindString {
			errs = append(errs, fmt.Errorf("class %q, feature %q: identifier features must be strings, got %s",
				def.Name, field.Name, field.Type.FriendlyName()))
		}

		if field.Key {
			keyCount++
			if field.Type.Kind != config.KindString {
				errs = append(errs, fmt.Errorf("class %q: key feature %q must be a string, got %s",
					def.Name, field.Name, field.Type.FriendlyName()))
			}
		}

		if field.Type.Kind == config.KindEnum {
			if _, ok := r.EnumDefinitionRegistry[field.Type.EnumName]; !ok {
				errs = append(errs, fmt.Errorf("class %q, feature %q: references undeclared enum %q",
					def.Name, field.Name, field.Type.EnumName))
			}
		}

		if field.Ref != "" {
			errs = append(errs, r.validateRef(def, field)...)
		}
	}

	if keyCount != 1 {
		errs = append(errs, fmt.Errorf("class %q: must declare exactly one key feature, found %d", def.Name, keyCount))
	}

	return errs
}

// validateRef checks a "Class.feature" linkage: the target must exist and
// carry an identical semantic type. The linkage itself stays advisory.
func (r *Registry) validateRef(def *config.ClassDefinition, field *config.FieldDefinition) []error {
	parts := strings.SplitN(field.Ref, ".", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return []error{fmt.Errorf("class %q, feature %q: ref %q must have the form \"Class.feature\"",
			def.Name, field.Name, field.Ref)}
	}

	targetClass, ok := r.ClassDefinitionRegistry[parts[0]]
	if !ok {
		return []error{fmt.Errorf("class %q, feature %q: ref targets unknown class %q",
			def.Name, field.Name, parts[0])}
	}
	targetField, ok := targetClass.Fields[parts[1]]
	if !ok {
		return []error{fmt.Errorf("class %q, feature %q: ref targets unknown feature %q on class %q",
			def.Name, field.Name, parts[1], parts[0])}
	}
	if !field.Type.Equals(targetField.Type) {
		return []error{fmt.Errorf("class %q, feature %q: ref target %s is a %s but the feature is a %s",
			def.Name, field.Name, field.Ref, targetField.Type.FriendlyName(), field.Type.FriendlyName())}
	}
	return nil
}

// validateClassParity checks the manifest against the registered Go struct:
// presence of lmf-tagged fields both ways and per-kind type compatibility.
func (r *Registry) validateClassParity(def *config.ClassDefinition, rc *RegisteredClass) []error {
	var errs []error

	goFields := make(map[string]reflect.StructField)
	for i := 0; i < rc.GoType.NumField(); i++ {
		field := rc.GoType.Field(i)
		if !field.IsExported() {
			continue
		}
		tag := field.Tag.Get("lmf")
		tagName := strings.Split(tag, ",")[0]
		if tagName != "" && tagName != "-" {
			goFields[tagName] = field
		}
	}

	for _, name := range lo.Keys(goFields) {
		if _, ok := def.Fields[name]; !ok {
			errs = append(errs, fmt.Errorf("class %q: Go struct has field for feature %q which is not declared in the manifest",
				def.Name, name))
		}
	}

	for _, fieldDef := range def.OrderedFields() {
		goField, ok := goFields[fieldDef.Name]
		if !ok {
			errs = append(errs, fmt.Errorf("class %q: manifest declares feature %q which has no lmf-tagged Go field",
				def.Name, fieldDef.Name))
			continue
		}
		if err := r.checkGoFieldType(def.Name, fieldDef, goField); err != nil {
			errs = append(errs, err)
		}
	}

	return errs
}

// checkGoFieldType is the core semantic-type-to-Go-type compatibility check.
func (r *Registry) checkGoFieldType(className string, def *config.FieldDefinition, goField reflect.StructField) error {
	mismatch := func(want string) error {
		return fmt.Errorf("class %q, feature %q: type mismatch, manifest requires %s but Go field %q is %s (want %s)",
			className, def.Name, def.Type.FriendlyName(), goField.Name, goField.Type.String(), want)
	}

	switch def.Type.Kind {
	case config.KindString:
		if goField.Type.Kind() != reflect.String {
			return mismatch("string")
		}
	case config.KindInt:
		if k := goField.Type.Kind(); k != reflect.Int && k != reflect.Int64 {
			return mismatch("int")
		}
	case config.KindFloat:
		if goField.Type.Kind() != reflect.Float64 {
			return mismatch("float64")
		}
	case config.KindBool:
		if goField.Type.Kind() != reflect.Bool {
			return mismatch("bool")
		}
	case config.KindTimestamp:
		if goField.Type != reflect.TypeOf(time.Time{}) {
			return mismatch("time.Time")
		}
	case config.KindEnum:
		re, ok := r.EnumRegistry[def.Type.EnumName]
		if !ok {
			return fmt.Errorf("class %q, feature %q: enum %q has no registered Go type",
				className, def.Name, def.Type.EnumName)
		}
		if goField.Type != re.GoType {
			return mismatch(re.GoType.String())
		}
	default:
		return fmt.Errorf("class %q, feature %q: invalid semantic type", className, def.Name)
	}
	return nil
}

// validateEnum checks a declared enumeration and its Go backing: a
// non-empty, duplicate-free member set with unique wire values, and exact
// wire coverage by the Go constants.
func (r *Registry) validateEnum(name string) []error {
	var errs []error
	def := r.EnumDefinitionRegistry[name]

	if len(def.Members) == 0 {
		errs = append(errs, fmt.Errorf("enum %q: declares no members", name))
		return errs
	}

	wires := make(map[string]struct{}, len(def.Members))
	for _, m := range def.Members {
		if m.Wire == "" {
			errs = append(errs, fmt.Errorf("enum %q, member %q: wire value must not be empty", name, m.Name))
			continue
		}
		if _, dup := wires[m.Wire]; dup {
			errs = append(errs, fmt.Errorf("enum %q: duplicate wire value %q", name, m.Wire))
		}
		wires[m.Wire] = struct{}{}
	}

	re, ok := r.EnumRegistry[name]
	if !ok {
		errs = append(errs, fmt.Errorf("enum %q: declared in a manifest but no Go type is registered", name))
		return errs
	}
	if re.GoType.Kind() != reflect.String {
		errs = append(errs, fmt.Errorf("enum %q: Go type %s must have string kind", name, re.GoType.String()))
	}

	goWires := make(map[string]struct{}, len(re.Wires))
	for _, w := range re.Wires {
		goWires[w] = struct{}{}
	}
	for _, m := range def.Members {
		if _, ok := goWires[m.Wire]; !ok {
			errs = append(errs, fmt.Errorf("enum %q: manifest member %q (wire %q) has no Go constant", name, m.Name, m.Wire))
		}
	}
	for _, w := range re.Wires {
		if _, ok := wires[w]; !ok {
			errs = append(errs, fmt.Errorf("enum %q: Go constant with wire %q is not declared in the manifest", name, w))
		}
	}

	return errs
}
