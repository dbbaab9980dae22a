package entity

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCanonicalRoomName(t *testing.T) {
	require.Equal(t, "a-b", CanonicalRoomName([]string{"a", "b"}))
	require.Equal(t, "a-b", CanonicalRoomName([]string{"b", "a"}))
	require.Equal(t, "a-b-c", CanonicalRoomName([]string{"c", "a", "b"}))
	require.NotEqual(t,
		CanonicalRoomName([]string{"a", "b"}),
		CanonicalRoomName([]string{"a", "b", "c"}),
	)
}

func TestCanonicalRoomNameDeduplicates(t *testing.T) {
	require.Equal(t, "a-b", CanonicalRoomName([]string{"a", "b", "a"}))
}
