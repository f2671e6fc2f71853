// Package delivery declares the delivery/attempt-level feature class for
// the Last Mile Durations model: parcel characteristics, building access,
// temporal context, and route progression for a single delivery attempt,
// including failed attempts.
package delivery

import (
	_ "embed"
	"reflect"
	"time"

	"github.com/vk/lmfeatures/internal/registry"
)

// ClassName is the name this feature class is declared under.
const ClassName = "Delivery"

// Manifest is the embedded declaration for this feature class.
//
//go:embed manifest.hcl
var Manifest string

// Delivery is the Go instance type for the Delivery feature class.
type Delivery struct {
	ShipmentUID string `lmf:"shipment_uid"`
	RouteUID    string `lmf:"route_uid"`
	AttemptUID  string `lmf:"attempt_uid"`

	ParcelWeightGrams  float64 `lmf:"parcel_weight_grams"`
	ParcelDimensionsCM string  `lmf:"parcel_dimensions_cm"`

	DestinationAddressContainsFlat bool   `lmf:"destination_address_contains_flat"`
	BuildingTypeHandoverComplexity string `lmf:"building_type_handover_complexity"`
	EstimatedFloorNumber           int    `lmf:"estimated_floor_number"`
	DeliveryNoteSafePlaceAvailable bool   `lmf:"delivery_note_safe_place_available"`

	TimeOfDay      int       `lmf:"time_of_day"`
	OutcomeAtLocal time.Time `lmf:"lm_delivery_outcome_at_local"`

	SequenceNumber         int `lmf:"sequence_number"`
	RemainingParcelsBurden int `lmf:"remaining_parcels_burden"`

	DestinationPostcode  string  `lmf:"destination_postcode"`
	DestinationOutcode   string  `lmf:"destination_outcode"`
	AvgPopulationDensity float64 `lmf:"avg_population_density"`
}

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register registers the class's Go struct with the catalog.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterClass(ClassName, &registry.RegisteredClass{
		New:    func() any { return new(Delivery) },
		GoType: reflect.TypeOf(Delivery{}),
	})
}
