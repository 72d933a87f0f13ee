package scene

import (
	"errors"
	"fmt"
	"strings"
)

// RoomType is a normalised target room type.
type RoomType string

const (
	Kitchen    RoomType = "kitchen"
	DiningRoom RoomType = "dining_room"
	LivingRoom RoomType = "living_room"
	Bathroom   RoomType = "bathroom"
	Bedroom    RoomType = "bedroom"
)

// AllowedTargets lists the room types a distance field can be built for, in
// the order used to pick a house's default target.
var AllowedTargets = []RoomType{Kitchen, DiningRoom, LivingRoom, Bathroom, Bedroom}

// ErrUnsupportedRoomType is returned for a target outside AllowedTargets.
var ErrUnsupportedRoomType = errors.New("room type not supported as a target")

// NormalizeRoomType lower-cases a room label and folds the aliases
// toilet -> bathroom and guest_room -> bedroom.
func NormalizeRoomType(s string) string {
	s = strings.ToLower(s)
	switch s {
	case "toilet":
		return string(Bathroom)
	case "guest_room":
		return string(Bedroom)
	}
	return s
}

// ParseTargetRoomType normalises s and checks it against AllowedTargets.
func ParseTargetRoomType(s string) (RoomType, error) {
	n := RoomType(NormalizeRoomType(s))
	for _, t := range AllowedTargets {
		if n == t {
			return t, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedRoomType, s)
}

// Bit positions of the room type bitmask map.
const (
	BitOutdoor = iota
	BitIndoor
	BitKitchen
	BitDiningRoom
	BitLivingRoom
	BitBathroom
	BitBedroom
	BitOffice
	BitStorage
)

var predictionBits = map[string]int{
	"outdoor":     BitOutdoor,
	"indoor":      BitIndoor,
	"kitchen":     BitKitchen,
	"dining_room": BitDiningRoom,
	"living_room": BitLivingRoom,
	"bathroom":    BitBathroom,
	"bedroom":     BitBedroom,
	"office":      BitOffice,
	"storage":     BitStorage,
}

// PredictionBit maps a room label to its bit in the room type map. Labels
// without a dedicated bit count as plain indoor space.
func PredictionBit(label string) int {
	if b, ok := predictionBits[NormalizeRoomType(label)]; ok {
		return b
	}
	return BitIndoor
}
