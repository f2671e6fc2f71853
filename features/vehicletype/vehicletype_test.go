package vehicletype_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vk/lmfeatures/features/vehicletype"
)

func TestParse(t *testing.T) {
	t.Parallel()

	for _, v := range vehicletype.Values() {
		parsed, err := vehicletype.Parse(v.Wire())
		require.NoError(t, err)
		require.Equal(t, v, parsed)
	}

	_, err := vehicletype.Parse("bicycle")
	require.Error(t, err)
	require.ErrorContains(t, err, `"bicycle" is not a vehicle type`)
}

func TestWires(t *testing.T) {
	t.Parallel()

	require.Equal(t, []string{"car", "moped", "ebike", "van"}, vehicletype.Wires())
	require.Len(t, vehicletype.Values(), 4)
}
