package scene

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeRoomType(t *testing.T) {
	assert.Equal(t, "bathroom", NormalizeRoomType("Toilet"))
	assert.Equal(t, "bedroom", NormalizeRoomType("Guest_Room"))
	assert.Equal(t, "living_room", NormalizeRoomType("Living_Room"))
	assert.Equal(t, "hallway", NormalizeRoomType("Hallway"))
}

func TestParseTargetRoomType(t *testing.T) {
	rt, err := ParseTargetRoomType("TOILET")
	require.NoError(t, err)
	assert.Equal(t, Bathroom, rt)

	rt, err = ParseTargetRoomType("kitchen")
	require.NoError(t, err)
	assert.Equal(t, Kitchen, rt)

	_, err = ParseTargetRoomType("office")
	assert.True(t, errors.Is(err, ErrUnsupportedRoomType))
}

func TestPredictionBit(t *testing.T) {
	assert.Equal(t, BitKitchen, PredictionBit("Kitchen"))
	assert.Equal(t, BitBathroom, PredictionBit("toilet"))
	assert.Equal(t, BitBedroom, PredictionBit("guest_room"))
	assert.Equal(t, BitStorage, PredictionBit("Storage"))
	assert.Equal(t, BitIndoor, PredictionBit("Hallway"))
	assert.Equal(t, BitOutdoor, PredictionBit("outdoor"))
}
