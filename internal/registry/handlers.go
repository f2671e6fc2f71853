package registry

import (
	"fmt"
	"log/slog"
	"reflect"
)

// RegisteredClass holds the compiled Go side of a feature class.
type RegisteredClass struct {
	// New returns a pointer to a zero instance of the class's Go struct.
	New func() any
	// GoType is the struct type itself, used for tag parity checks.
	GoType reflect.Type
}

// RegisterClass registers the Go struct backing a declared feature class.
func (r *Registry) RegisterClass(name string, rc *RegisteredClass) {
	if _, exists := r.ClassRegistry[name]; exists {
		panic(fmt.Sprintf("feature class %q already registered", name))
	}
	slog.Debug("Registering feature class.", "name", name, "go_type", rc.GoType.String())
	r.ClassRegistry[name] = rc
}

// RegisteredEnum holds the compiled Go side of an enumeration: the named
// string type and the wire values its constants cover.
type RegisteredEnum struct {
	GoType reflect.Type
	Wires  []string
}

// RegisterEnum registers the Go type backing a declared enumeration.
func (r *Registry) RegisterEnum(name string, re *RegisteredEnum) {
	if _, exists := r.EnumRegistry[name]; exists {
		panic(fmt.Sprintf("enum %q already registered", name))
	}
	slog.Debug("Registering enum.", "name", name, "go_type", re.GoType.String())
	r.EnumRegistry[name] = re
}
