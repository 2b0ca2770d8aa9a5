package kernel_test

import (
	"testing"

	"travelagency/internal/core/domain/model/kernel"
	"travelagency/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleID = "6a1f0c52-8d3b-4a77-9c1e-2f4b5d6e7a80"

func TestNewUUID(t *testing.T) {
	id := kernel.NewUUID()

	require.NoError(t, id.Validate())
	assert.Regexp(t, `^[0-9a-f]{8}-[0-9a-f]{4}-4[0-9a-f]{3}-[0-9a-f]{4}-[0-9a-f]{12}$`, id.String())
	assert.False(t, id.IsEqual(kernel.NewUUID()))
}

func TestUUIDFromString(t *testing.T) {
	t.Run("parses canonical form", func(t *testing.T) {
		id, err := kernel.UUIDFromString(sampleID)

		require.NoError(t, err)
		assert.Equal(t, sampleID, id.String())
	})

	t.Run("rejects garbage", func(t *testing.T) {
		for _, input := range []string{"", "abc", "6a1f0c52-8d3b-4a77-9c1e", sampleID + "-00"} {
			_, err := kernel.UUIDFromString(input)

			require.Error(t, err, input)
			require.ErrorIs(t, err, errs.ErrValueIsInvalid)
			assert.Contains(t, err.Error(), "invalid UUID format")
		}
	})

	t.Run("rejects the nil UUID", func(t *testing.T) {
		_, err := kernel.UUIDFromString("00000000-0000-0000-0000-000000000000")

		assert.Equal(t, kernel.ErrUUIDIsNotConstructed, err)
	})
}

func TestUUIDFromBytes(t *testing.T) {
	original := kernel.NewUUID()
	raw := original.Bytes()

	restored, err := kernel.UUIDFromBytes(raw[:])

	require.NoError(t, err)
	assert.True(t, restored.IsEqual(original))

	_, err = kernel.UUIDFromBytes([]byte{1, 2, 3})
	require.Error(t, err)
}

func TestUUID_Validate(t *testing.T) {
	var zero kernel.UUID

	assert.Equal(t, kernel.ErrUUIDIsNotConstructed, zero.Validate())
	assert.NoError(t, kernel.NewUUID().Validate())
}
