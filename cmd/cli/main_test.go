package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRun_PanicRecovery(t *testing.T) {
	t.Parallel()

	// A manifest with a syntax error is guaranteed to panic during catalog
	// loading inside app.NewApp(); run must recover it into an error.
	invalidHCL := `
		feature_class "Broken" {
			feature "a" {
		// Missing closing braces here
	`
	tempDir := t.TempDir()
	filePath := filepath.Join(tempDir, "broken.hcl")
	err := os.WriteFile(filePath, []byte(invalidHCL), 0o600)
	require.NoError(t, err, "failed to set up test file")

	out := &bytes.Buffer{}
	runErr := run(out, []string{"-manifests", tempDir, "validate"})

	require.Error(t, runErr, "run() should have returned an error after recovering from a panic")

	errStr := runErr.Error()
	require.True(t, strings.Contains(errStr, "application startup panicked"), "The error message should indicate that a panic was recovered.")
	require.True(t, strings.Contains(errStr, "failed to parse"), "The error message should contain the underlying reason for the panic.")
}

func TestRun_ShouldExit(t *testing.T) {
	t.Parallel()

	// The "-h" (help) flag should cause cli.Parse to return `shouldExit=true`.
	out := &bytes.Buffer{}
	err := run(out, []string{"-h"})

	require.NoError(t, err, "run() should return a nil error when shouldExit is true")
	require.Contains(t, out.String(), "Usage:", "Expected help text to be printed to the output buffer")
}

func TestRun_NoArgsPrintsUsage(t *testing.T) {
	t.Parallel()

	out := &bytes.Buffer{}
	err := run(out, nil)

	require.NoError(t, err)
	require.Contains(t, out.String(), "Usage:")
}

func TestRun_ListEmbeddedCatalog(t *testing.T) {
	t.Parallel()

	out := &bytes.Buffer{}
	err := run(out, []string{"list"})

	require.NoError(t, err)
	output := out.String()
	require.Contains(t, output, "feature_class Courier")
	require.Contains(t, output, "feature_class Delivery")
	require.Contains(t, output, "feature_class Route")
	require.Contains(t, output, "enum VehicleType")
}

func TestRun_ValidateExternalManifests(t *testing.T) {
	t.Parallel()

	// A well-formed external catalog that does not match the compiled Go
	// classes must fail registry validation at startup.
	manifest := `
	feature_class "Unrelated" {
		feature "unrelated_uid" {
			type = string
			key  = true
		}
	}`
	tempDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tempDir, "unrelated.hcl"), []byte(manifest), 0o600))

	out := &bytes.Buffer{}
	err := run(out, []string{"-manifests", tempDir, "validate"})

	require.Error(t, err)
	require.Contains(t, err.Error(), "application startup panicked")
	require.Contains(t, err.Error(), `no manifest declares it`)
}
