package cli_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vk/lmfeatures/internal/cli"
)

func TestParse(t *testing.T) {
	t.Run("command with arguments", func(t *testing.T) {
		out := &bytes.Buffer{}
		inv, shouldExit, err := cli.Parse([]string{"-log-level", "debug", "describe", "Courier"}, out)
		require.NoError(t, err)
		require.False(t, shouldExit)
		require.Equal(t, "describe", inv.Command)
		require.Equal(t, []string{"Courier"}, inv.Args)
		require.Equal(t, "debug", inv.Config.LogLevel)
		require.Equal(t, "text", inv.Config.LogFormat)
		require.Equal(t, "", inv.Config.ManifestsPath)
	})

	t.Run("manifests flag", func(t *testing.T) {
		out := &bytes.Buffer{}
		inv, _, err := cli.Parse([]string{"-manifests", "/tmp/schemas", "validate"}, out)
		require.NoError(t, err)
		require.Equal(t, "/tmp/schemas", inv.Config.ManifestsPath)
		require.Equal(t, "validate", inv.Command)
	})

	t.Run("no command prints usage and exits cleanly", func(t *testing.T) {
		out := &bytes.Buffer{}
		inv, shouldExit, err := cli.Parse(nil, out)
		require.NoError(t, err)
		require.True(t, shouldExit)
		require.Nil(t, inv)
		require.Contains(t, out.String(), "Usage:")
	})

	t.Run("help flag exits cleanly", func(t *testing.T) {
		out := &bytes.Buffer{}
		_, shouldExit, err := cli.Parse([]string{"-h"}, out)
		require.NoError(t, err)
		require.True(t, shouldExit)
	})

	t.Run("invalid log format", func(t *testing.T) {
		out := &bytes.Buffer{}
		_, _, err := cli.Parse([]string{"-log-format", "xml", "list"}, out)
		require.Error(t, err)

		exitErr, ok := err.(*cli.ExitError)
		require.True(t, ok)
		require.Equal(t, 2, exitErr.Code)
		require.Contains(t, exitErr.Message, "invalid log format")
	})

	t.Run("invalid log level", func(t *testing.T) {
		out := &bytes.Buffer{}
		_, _, err := cli.Parse([]string{"-log-level", "verbose", "list"}, out)
		require.Error(t, err)
		require.ErrorContains(t, err, "invalid log level")
	})

	t.Run("unknown flag", func(t *testing.T) {
		out := &bytes.Buffer{}
		_, _, err := cli.Parse([]string{"-bogus"}, out)
		require.Error(t, err)

		exitErr, ok := err.(*cli.ExitError)
		require.True(t, ok)
		require.Equal(t, 2, exitErr.Code)
	})

	t.Run("env variables supply defaults", func(t *testing.T) {
		t.Setenv("LMF_LOG_LEVEL", "warn")
		t.Setenv("LMF_MANIFESTS", "/srv/manifests")

		out := &bytes.Buffer{}
		inv, _, err := cli.Parse([]string{"list"}, out)
		require.NoError(t, err)
		require.Equal(t, "warn", inv.Config.LogLevel)
		require.Equal(t, "/srv/manifests", inv.Config.ManifestsPath)
	})
}
