package catalog

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoad_PopulatesBothEnumerations(t *testing.T) {
	cat, err := Load()
	require.NoError(t, err)

	require.Len(t, cat.Popimar, 16)
	require.Len(t, cat.Purpose, 15)
}

func TestDescribe_KnownAndUnknownTags(t *testing.T) {
	cat, err := Load()
	require.NoError(t, err)

	desc, ok := cat.Describe("Risk Control")
	require.True(t, ok)
	require.NotEmpty(t, desc)

	_, ok = cat.Describe("Not A Real Tag")
	require.False(t, ok)
}
