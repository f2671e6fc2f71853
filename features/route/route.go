// Package route declares the route-level feature class for the Last Mile
// Durations model: composition, timing, geography, and spatial context for
// one courier's planned set of collections and deliveries.
package route

import (
	_ "embed"
	"reflect"
	"time"

	"github.com/vk/lmfeatures/internal/registry"
)

// ClassName is the name this feature class is declared under.
const ClassName = "Route"

// Manifest is the embedded declaration for this feature class.
//
//go:embed manifest.hcl
var Manifest string

// Route is the Go instance type for the Route feature class.
type Route struct {
	RouteUID string `lmf:"route_uid"`

	CompositionTotalShipments      int `lmf:"composition_total_shipments"`
	CompositionCountContainers     int `lmf:"composition_count_containers"`
	CompositionCountLooseShipments int `lmf:"composition_count_loose_shipments"`

	TargetStartAtLocal time.Time `lmf:"target_start_at_local"`
	RouteDate          string    `lmf:"route_date"`

	CollectionPitstopUID      string `lmf:"collection_pitstop_uid"`
	CollectionPitstopPostcode string `lmf:"collection_pitstop_postcode"`

	CourierUID    string `lmf:"courier_uid"`
	TransportType string `lmf:"transport_type"`

	AvgPopulationDensity float64 `lmf:"avg_population_density"`
	DensityTier          string  `lmf:"density_tier"`

	TimeOfDay int `lmf:"time_of_day"`
}

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register registers the class's Go struct with the catalog.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterClass(ClassName, &registry.RegisteredClass{
		New:    func() any { return new(Route) },
		GoType: reflect.TypeOf(Route{}),
	})
}
