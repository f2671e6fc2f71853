// Package hcl provides the concrete HCL implementation for the declaration
// loading and record binding interfaces defined in the `config` package.
// It is responsible for all manifest parsing, HCL-to-model translation, and
// raw-record-to-Go data binding.
package hcl
