package registry

import (
	"sort"

	"github.com/samber/lo"

	"github.com/vk/lmfeatures/internal/config"
)

// Module is the interface each feature-class package implements to be
// compiled into the catalog.
type Module interface {
	Register(r *Registry)
}

// Registry holds all registered Go types and declared definitions for a
// single catalog instance.
type Registry struct {
	ClassRegistry           map[string]*RegisteredClass
	EnumRegistry            map[string]*RegisteredEnum
	ClassDefinitionRegistry map[string]*config.ClassDefinition
	EnumDefinitionRegistry  map[string]*config.EnumDefinition
}

// New creates and initializes a new Registry instance.
func New() *Registry {
	return &Registry{
		ClassRegistry:           make(map[string]*RegisteredClass),
		EnumRegistry:            make(map[string]*RegisteredEnum),
		ClassDefinitionRegistry: make(map[string]*config.ClassDefinition),
		EnumDefinitionRegistry:  make(map[string]*config.EnumDefinition),
	}
}

// PopulateDefinitionsFromModel copies the loaded declarations from the
// catalog model into the registry for lookup during validation and binding.
func (r *Registry) PopulateDefinitionsFromModel(model *config.Model) {
	for key, val := range model.Classes {
		r.ClassDefinitionRegistry[key] = val
	}
	for key, val := range model.Enums {
		r.EnumDefinitionRegistry[key] = val
	}
}

// LookupClass returns the declaration for a class name.
func (r *Registry) LookupClass(name string) (*config.ClassDefinition, bool) {
	def, ok := r.ClassDefinitionRegistry[name]
	return def, ok
}

// LookupEnum returns the declaration for an enumeration name.
func (r *Registry) LookupEnum(name string) (*config.EnumDefinition, bool) {
	def, ok := r.EnumDefinitionRegistry[name]
	return def, ok
}

// NewInstance returns a fresh pointer to the Go struct registered for the
// class, or false if the class has no compiled backing.
func (r *Registry) NewInstance(name string) (any, bool) {
	rc, ok := r.ClassRegistry[name]
	if !ok {
		return nil, false
	}
	return rc.New(), true
}

// ClassNames returns the declared class names in sorted order.
func (r *Registry) ClassNames() []string {
	names := lo.Keys(r.ClassDefinitionRegistry)
	sort.Strings(names)
	return names
}

// EnumNames returns the declared enumeration names in sorted order.
func (r *Registry) EnumNames() []string {
	names := lo.Keys(r.EnumDefinitionRegistry)
	sort.Strings(names)
	return names
}
