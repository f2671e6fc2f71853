// Package courier declares the courier-level feature class for the Last
// Mile Durations model. Courier features affect all route components:
// collection (bag capacity, loading), travel (speed profiles, routing), and
// handover (parking proximity, delivery approach).
package courier

import (
	_ "embed"
	"reflect"

	"github.com/vk/lmfeatures/features/vehicletype"
	"github.com/vk/lmfeatures/internal/registry"
)

// ClassName is the name this feature class is declared under.
const ClassName = "Courier"

// Manifest is the embedded declaration for this feature class.
//
//go:embed manifest.hcl
var Manifest string

// Courier is the Go instance type for the Courier feature class.
type Courier struct {
	CourierUID           string                  `lmf:"courier_uid"`
	TransportVehicleType vehicletype.VehicleType `lmf:"courier_transport_vehicle_type"`
	ExperienceLevel      string                  `lmf:"courier_experience_level"`
	RouteIndex           int                     `lmf:"courier_route_index"`
}

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register registers the class's Go struct with the catalog.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterClass(ClassName, &registry.RegisteredClass{
		New:    func() any { return new(Courier) },
		GoType: reflect.TypeOf(Courier{}),
	})
}
