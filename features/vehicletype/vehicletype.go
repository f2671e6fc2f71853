// Package vehicletype declares the closed set of courier transport vehicle
// types used by the Courier feature class.
package vehicletype

import (
	_ "embed"
	"fmt"
	"reflect"

	"github.com/vk/lmfeatures/internal/registry"
)

// EnumName is the name this enumeration is declared under.
const EnumName = "VehicleType"

// Manifest is the embedded declaration for this enumeration.
//
//go:embed manifest.hcl
var Manifest string

// VehicleType is a courier's transport vehicle type. The underlying string
// is the stable wire representation.
type VehicleType string

const (
	Car   VehicleType = "car"
	Moped VehicleType = "moped"
	EBike VehicleType = "ebike"
	Van   VehicleType = "van"
)

// Values returns every permitted vehicle type, in declaration order.
func Values() []VehicleType {
	return []VehicleType{Car, Moped, EBike, Van}
}

// Wires returns the stable wire representations, in declaration order.
func Wires() []string {
	values := Values()
	wires := make([]string, len(values))
	for i, v := range values {
		wires[i] = string(v)
	}
	return wires
}

// Wire returns the stable string representation of the vehicle type.
func (v VehicleType) Wire() string {
	return string(v)
}

// Parse resolves a wire string to its vehicle type.
func Parse(wire string) (VehicleType, error) {
	for _, v := range Values() {
		if string(v) == wire {
			return v, nil
		}
	}
	return "", fmt.Errorf("%q is not a vehicle type", wire)
}

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register registers the enumeration's Go type with the catalog.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterEnum(EnumName, &registry.RegisteredEnum{
		GoType: reflect.TypeOf(VehicleType("")),
		Wires:  Wires(),
	})
}
