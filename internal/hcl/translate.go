// This file contains the logic for translating HCL manifest structs (from
// the schema package) into the format-agnostic catalog model defined in the
// config package.

package hcl

import (
	"context"
	"fmt"

	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"

	"github.com/vk/lmfeatures/internal/config"
	"github.com/vk/lmfeatures/internal/schema"
)

// translateClassDefinition converts a `feature_class` block into the
// agnostic model, preserving feature declaration order and rejecting
// duplicate feature names within the class.
func (l *Loader) translateClassDefinition(ctx context.Context, s *schema.ClassDefinition) (*config.ClassDefinition, error) {
	c := &config.ClassDefinition{
		Name:        s.Name,
		Description: s.Description,
		Fields:      make(map[string]*config.FieldDefinition, len(s.Features)),
		FieldOrder:  make([]string, 0, len(s.Features)),
	}

	for _, f := range s.Features {
		def, err := translateFeatureDefinition(ctx, f, s.Name)
		if err != nil {
			return nil, err
		}
		if _, exists := c.Fields[def.Name]; exists {
			return nil, fmt.Errorf("feature_class %q: duplicate feature %q", s.Name, def.Name)
		}
		c.Fields[def.Name] = def
		c.FieldOrder = append(c.FieldOrder, def.Name)
	}

	return c, nil
}

// translateFeatureDefinition processes a single `feature` block, handling
// its type expression and default value.
func translateFeatureDefinition(ctx context.Context, f *schema.FeatureDefinition, className string) (*config.FieldDefinition, error) {
	fieldType, err := typeExprToFieldType(ctx, f.Type)
	if err != nil {
		return nil, fmt.Errorf("feature_class %q, feature %q: %w", className, f.Name, err)
	}

	def := &config.FieldDefinition{
		Name:        f.Name,
		Type:        fieldType,
		Description: f.Description,
		Optional:    f.Optional,
		Key:         f.Key,
		Ref:         f.Ref,
	}

	if f.Default != nil {
		val, diags := f.Default.Value(nil)
		if diags.HasErrors() {
			return nil, fmt.Errorf("feature_class %q, feature %q: invalid default value: %w", className, f.Name, diags)
		}
		// A null default is treated as absent.
		if !val.IsNull() {
			converted, err := convert.Convert(val, fieldType.CtyType())
			if err != nil {
				return nil, fmt.Errorf("feature_class %q, feature %q: default value is not a %s: %w",
					className, f.Name, fieldType.FriendlyName(), err)
			}
			if err := checkDefaultValue(fieldType, converted); err != nil {
				return nil, fmt.Errorf("feature_class %q, feature %q: %w", className, f.Name, err)
			}
			def.Default = &converted
			// A valid default makes the feature optional.
			def.Optional = true
		}
	}

	return def, nil
}

// checkDefaultValue applies the semantic checks a plain cty conversion
// cannot express: integral defaults for int features.
func checkDefaultValue(t config.FieldType, val cty.Value) error {
	if t.Kind != config.KindInt {
		return nil
	}
	bf := val.AsBigFloat()
	if !bf.IsInt() {
		return fmt.Errorf("default value %s is not an integer", bf.String())
	}
	return nil
}

// translateEnumDefinition converts an `enum` block into the agnostic model,
// rejecting duplicate member names within the enumeration.
func (l *Loader) translateEnumDefinition(s *schema.EnumDefinition) (*config.EnumDefinition, error) {
	e := &config.EnumDefinition{
		Name:        s.Name,
		Description: s.Description,
		Members:     make([]config.EnumMember, 0, len(s.Members)),
	}

	seen := make(map[string]struct{}, len(s.Members))
	for _, m := range s.Members {
		if _, exists := seen[m.Name]; exists {
			return nil, fmt.Errorf("enum %q: duplicate member %q", s.Name, m.Name)
		}
		seen[m.Name] = struct{}{}
		e.Members = append(e.Members, config.EnumMember{Name: m.Name, Wire: m.Value})
	}

	return e, nil
}
