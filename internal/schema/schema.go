package schema

import (
	"github.com/hashicorp/hcl/v2"
)

// --- Feature Manifest Schemas ---

// FeatureDefinition defines a single feature (field) of a feature class.
type FeatureDefinition struct {
	Name        string         `hcl:"name,label"`
	Type        hcl.Expression `hcl:"type"`
	Description string         `hcl:"description,optional"`
	Default     hcl.Expression `hcl:"default,optional"`
	Optional    bool           `hcl:"optional,optional"`
	Key         bool           `hcl:"key,optional"`
	Ref         string         `hcl:"ref,optional"`
}

// ClassDefinition represents a `feature_class` block: a named record type
// with an ordered list of feature declarations.
type ClassDefinition struct {
	Name        string               `hcl:"name,label"`
	Description string               `hcl:"description,optional"`
	Features    []*FeatureDefinition `hcl:"feature,block"`
}

// EnumMemberDefinition represents a `member` block: one permitted symbol of
// an enumeration and its stable wire value.
type EnumMemberDefinition struct {
	Name  string `hcl:"name,label"`
	Value string `hcl:"value"`
}

// EnumDefinition represents an `enum` block: a closed set of symbols.
type EnumDefinition struct {
	Name        string                  `hcl:"name,label"`
	Description string                  `hcl:"description,optional"`
	Members     []*EnumMemberDefinition `hcl:"member,block"`
}

// FileRoot represents the top-level structure of a manifest file.
type FileRoot struct {
	Classes []*ClassDefinition `hcl:"feature_class,block"`
	Enums   []*EnumDefinition  `hcl:"enum,block"`
	Body    hcl.Body           `hcl:",remain"`
}
