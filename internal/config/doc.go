// Package config defines the format-agnostic declaration model for the
// feature catalog, along with the core interfaces (Loader, Converter) for
// loading declarations from various sources and binding raw records to the
// registered Go types.
//
// The `config.Model` is the single source of truth for the `registry` and
// `app` packages. Concrete implementations of the interfaces, such as for
// HCL, are provided in separate packages.
package config
