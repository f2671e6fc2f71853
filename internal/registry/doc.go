// Package registry provides the central catalog of feature classes.
//
// The Registry stores the declared, format-agnostic definitions loaded from
// manifests alongside the compiled Go types that back each class and
// enumeration. During startup the registry is populated and then validated
// to ensure the manifests and the Go code are perfectly in sync, preventing
// a wide class of binding errors before any record is ever decoded.
//
// The registry is populated once at process start and is read-only
// afterwards; lookup-by-name is the only runtime operation.
package registry
