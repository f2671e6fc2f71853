package config

import (
	"github.com/zclconf/go-cty/cty"
)

// Model is the unified, format-agnostic representation of the entire feature
// catalog: every declared feature class and every supporting enumeration.
type Model struct {
	Classes map[string]*ClassDefinition
	Enums   map[string]*EnumDefinition
}

// NewModel creates an empty catalog model.
func NewModel() *Model {
	return &Model{
		Classes: make(map[string]*ClassDefinition),
		Enums:   make(map[string]*EnumDefinition),
	}
}

// ClassDefinition is the format-agnostic representation of one feature
// class: a named record type with a fixed, ordered set of typed fields.
type ClassDefinition struct {
	Name        string
	Description string
	Fields      map[string]*FieldDefinition
	// FieldOrder preserves declaration order; consumers that present the
	// schema must not depend on map iteration.
	FieldOrder []string
}

// OrderedFields returns the class's fields in declaration order.
func (c *ClassDefinition) OrderedFields() []*FieldDefinition {
	out := make([]*FieldDefinition, 0, len(c.FieldOrder))
	for _, name := range c.FieldOrder {
		out = append(out, c.Fields[name])
	}
	return out
}

// KeyField returns the field marked as the class's primary identifier, or
// nil if the declaration is missing one. Registry validation rejects
// catalogs where this is nil or ambiguous.
func (c *ClassDefinition) KeyField() *FieldDefinition {
	for _, name := range c.FieldOrder {
		if c.Fields[name].Key {
			return c.Fields[name]
		}
	}
	return nil
}

// FieldDefinition defines a single feature of a class: the (name, semantic
// type, optional default) tuple plus its documentation string.
type FieldDefinition struct {
	Name        string
	Type        FieldType
	Description string
	Default     *cty.Value
	Optional    bool
	// Key marks the class's primary identifier.
	Key bool
	// Ref records a documentation-level linkage target ("Route.route_uid").
	// It is never enforced as a constraint; the external platform resolves
	// these joins.
	Ref string
}

// EnumDefinition is a closed set of symbolic values with stable string
// representations.
type EnumDefinition struct {
	Name        string
	Description string
	Members     []EnumMember
}

// EnumMember is one permitted symbol of an enumeration. Wire is the stable
// string representation used in raw records.
type EnumMember struct {
	Name string
	Wire string
}

// MemberByWire looks up a member by its wire value.
func (e *EnumDefinition) MemberByWire(wire string) (EnumMember, bool) {
	for _, m := range e.Members {
		if m.Wire == wire {
			return m, true
		}
	}
	return EnumMember{}, false
}

// Wires returns the enumeration's wire values in declaration order.
func (e *EnumDefinition) Wires() []string {
	out := make([]string, 0, len(e.Members))
	for _, m := range e.Members {
		out = append(out, m.Wire)
	}
	return out
}
