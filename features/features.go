// Package features ties the built-in catalog together: the three feature
// classes and their supporting enumeration, each as an embedded manifest
// plus a registered Go type.
package features

import (
	"github.com/vk/lmfeatures/features/courier"
	"github.com/vk/lmfeatures/features/delivery"
	"github.com/vk/lmfeatures/features/route"
	"github.com/vk/lmfeatures/features/vehicletype"
	"github.com/vk/lmfeatures/internal/registry"
)

// Modules is the definitive list of feature-class packages compiled into
// the binary.
func Modules() []registry.Module {
	return []registry.Module{
		&vehicletype.Module{},
		&courier.Module{},
		&delivery.Module{},
		&route.Module{},
	}
}

// Manifests returns the embedded declarations, keyed by a diagnostic
// filename, for loaders that read in-memory sources.
func Manifests() map[string]string {
	return map[string]string{
		"vehicletype/manifest.hcl": vehicletype.Manifest,
		"courier/manifest.hcl":     courier.Manifest,
		"delivery/manifest.hcl":    delivery.Manifest,
		"route/manifest.hcl":       route.Manifest,
	}
}
