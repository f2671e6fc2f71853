package config

import (
	"context"
)

// Loader is the interface for a format-specific declaration loader.
type Loader interface {
	// Load reads declarations from the given paths, translates them into
	// the format-agnostic model, and returns a matching Converter.
	Load(ctx context.Context, paths ...string) (*Model, Converter, error)

	// LoadSources behaves like Load but reads declarations from in-memory
	// sources keyed by a filename used in diagnostics. This is how the
	// embedded catalog and tests feed the loader.
	LoadSources(ctx context.Context, sources map[string]string) (*Model, Converter, error)
}

// Converter is the interface for binding raw records to the Go types
// registered for a class. It is the bridge between the external platform's
// untyped rows and the declared schema.
type Converter interface {
	// DecodeRecord coerces a raw record into the target instance, which
	// must be a pointer to the Go struct registered for the class. Every
	// field-level failure is reported; decoding does not stop at the first.
	DecodeRecord(ctx context.Context, target any, raw map[string]any, class *ClassDefinition) error

	// EncodeRecord renders an instance back into its canonical raw form:
	// enum members as wire strings, timestamps as RFC 3339.
	EncodeRecord(ctx context.Context, instance any, class *ClassDefinition) (map[string]any, error)
}
